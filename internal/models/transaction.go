package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type TransactionType string

const (
	TransactionTypeRecharge    TransactionType = "recharge"
	TransactionTypeTollPayment TransactionType = "toll_payment"
	TransactionTypeRefund      TransactionType = "refund"
	TransactionTypeDeduction   TransactionType = "deduction"
)

type TransactionMethod string

const (
	TransactionMethodUPI           TransactionMethod = "upi"
	TransactionMethodCard          TransactionMethod = "card"
	TransactionMethodWallet        TransactionMethod = "wallet"
	TransactionMethodAutoDeduction TransactionMethod = "auto-deduction"
	TransactionMethodRazorpay      TransactionMethod = "razorpay"
)

type TransactionStatus string

const (
	TransactionStatusCompleted TransactionStatus = "completed"
	TransactionStatusPending   TransactionStatus = "pending"
	TransactionStatusFailed    TransactionStatus = "failed"
)

// FastagTransaction records a wallet movement on a vehicle's FASTag.
// Recharges start out pending and are completed by payment confirmation;
// only completed transactions have touched the wallet balance.
type FastagTransaction struct {
	ID            primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	VehicleID     primitive.ObjectID `json:"vehicle_id" bson:"vehicleId"`
	UserID        primitive.ObjectID `json:"user_id" bson:"userId"`
	VehicleNumber string             `json:"vehicle_number" bson:"vehicleNumber"`
	Type          TransactionType    `json:"type" bson:"type" validate:"required"`
	Amount        float64            `json:"amount" bson:"amount" validate:"gte=0"`
	Method        TransactionMethod  `json:"method" bson:"method" validate:"required"`
	Location      string             `json:"location,omitempty" bson:"location,omitempty"`
	Status        TransactionStatus  `json:"status" bson:"status" default:"completed"`
	TxnID         string             `json:"txn_id" bson:"txnId" validate:"required"`
	Description   string             `json:"description,omitempty" bson:"description,omitempty"`
	Date          time.Time          `json:"date" bson:"date"`
	CreatedAt     time.Time          `json:"created_at" bson:"createdAt"`
	UpdatedAt     time.Time          `json:"updated_at" bson:"updatedAt"`
}
