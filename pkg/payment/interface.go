package payment

import (
	"context"
)

// Gateway abstracts the payment provider used for booking payments and
// FASTag recharges. Orders are created server-side; the payment itself is
// authorized on the client and verified here afterwards.
type Gateway interface {
	CreateOrder(ctx context.Context, request *OrderRequest) (*Order, error)

	// VerifyPaymentSignature checks the provider's signature over the
	// (orderID, paymentID) pair. A false return means the payment claim
	// cannot be trusted.
	VerifyPaymentSignature(orderID, paymentID, signature string) bool

	RefundPayment(ctx context.Context, request *RefundRequest) (*RefundResponse, error)
}

type OrderRequest struct {
	Amount   float64                `json:"amount"`
	Currency string                 `json:"currency"`
	Receipt  string                 `json:"receipt"`
	Notes    map[string]interface{} `json:"notes"`
}

type Order struct {
	OrderID   string  `json:"order_id"`
	Status    string  `json:"status"`
	Amount    float64 `json:"amount"`
	Currency  string  `json:"currency"`
	CreatedAt int64   `json:"created_at"`
}

type RefundRequest struct {
	PaymentID string  `json:"payment_id"`
	Amount    float64 `json:"amount"`
	Reason    string  `json:"reason"`
}

type RefundResponse struct {
	RefundID  string  `json:"refund_id"`
	Status    string  `json:"status"`
	Amount    float64 `json:"amount"`
	Currency  string  `json:"currency"`
	CreatedAt int64   `json:"created_at"`
}

// CardCharger is the card path used for FASTag wallet recharges. It is a
// separate seam from Gateway because card payments settle synchronously.
type CardCharger interface {
	ChargeCard(ctx context.Context, request *CardChargeRequest) (*CardChargeResponse, error)
}

type CardChargeRequest struct {
	Amount          float64 `json:"amount"`
	Currency        string  `json:"currency"`
	PaymentMethodID string  `json:"payment_method_id"`
	Description     string  `json:"description"`
}

type CardChargeResponse struct {
	TransactionID string  `json:"transaction_id"`
	Status        string  `json:"status"`
	Amount        float64 `json:"amount"`
	Currency      string  `json:"currency"`
	CreatedAt     int64   `json:"created_at"`
}
