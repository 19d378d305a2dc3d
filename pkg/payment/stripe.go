package payment

import (
	"context"
	"fmt"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/client"
)

// StripeCharger handles the card path for FASTag recharges.
type StripeCharger struct {
	client *client.API
}

func NewStripeCharger(secretKey string) *StripeCharger {
	sc := &client.API{}
	sc.Init(secretKey, nil)

	return &StripeCharger{
		client: sc,
	}
}

func (s *StripeCharger) ChargeCard(ctx context.Context, request *CardChargeRequest) (*CardChargeResponse, error) {
	params := &stripe.PaymentIntentParams{
		Amount:             stripe.Int64(int64(request.Amount * 100)),
		Currency:           stripe.String(request.Currency),
		PaymentMethod:      stripe.String(request.PaymentMethodID),
		Description:        stripe.String(request.Description),
		ConfirmationMethod: stripe.String("automatic"),
		Confirm:            stripe.Bool(true),
	}

	pi, err := s.client.PaymentIntents.New(params)
	if err != nil {
		return nil, fmt.Errorf("failed to create payment intent: %w", err)
	}

	return &CardChargeResponse{
		TransactionID: pi.ID,
		Status:        string(pi.Status),
		Amount:        float64(pi.Amount) / 100,
		Currency:      string(pi.Currency),
		CreatedAt:     pi.Created,
	}, nil
}
