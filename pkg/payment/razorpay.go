package payment

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"github.com/razorpay/razorpay-go"
)

type RazorpayGateway struct {
	client    *razorpay.Client
	keySecret string
}

func NewRazorpayGateway(keyID, keySecret string) *RazorpayGateway {
	client := razorpay.NewClient(keyID, keySecret)

	return &RazorpayGateway{
		client:    client,
		keySecret: keySecret,
	}
}

func (r *RazorpayGateway) CreateOrder(ctx context.Context, request *OrderRequest) (*Order, error) {
	orderData := map[string]interface{}{
		"amount":   int(request.Amount * 100), // amount in paise
		"currency": request.Currency,
		"receipt":  request.Receipt,
		"notes":    request.Notes,
	}

	order, err := r.client.Order.Create(orderData, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	return &Order{
		OrderID:   order["id"].(string),
		Status:    "created",
		Amount:    request.Amount,
		Currency:  request.Currency,
		CreatedAt: int64(order["created_at"].(int)),
	}, nil
}

// VerifyPaymentSignature recomputes HMAC-SHA256 over "orderID|paymentID"
// with the key secret and compares it in constant time against the
// signature the client handed back.
func (r *RazorpayGateway) VerifyPaymentSignature(orderID, paymentID, signature string) bool {
	h := hmac.New(sha256.New, []byte(r.keySecret))
	h.Write([]byte(orderID + "|" + paymentID))
	expected := hex.EncodeToString(h.Sum(nil))

	return hmac.Equal([]byte(expected), []byte(signature))
}

func (r *RazorpayGateway) RefundPayment(ctx context.Context, request *RefundRequest) (*RefundResponse, error) {
	amount := int(request.Amount * 100)
	refundData := map[string]interface{}{
		"amount": amount,
		"notes": map[string]interface{}{
			"reason": request.Reason,
		},
	}

	refund, err := r.client.Payment.Refund(request.PaymentID, amount, refundData, map[string]string{})
	if err != nil {
		return nil, fmt.Errorf("failed to create refund: %w", err)
	}

	return &RefundResponse{
		RefundID:  refund["id"].(string),
		Status:    refund["status"].(string),
		Amount:    float64(refund["amount"].(int)) / 100,
		Currency:  refund["currency"].(string),
		CreatedAt: int64(refund["created_at"].(int)),
	}, nil
}
