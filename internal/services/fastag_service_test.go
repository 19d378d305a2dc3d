package services

import (
	"context"
	"strings"
	"testing"

	"parkpro/internal/models"
	"parkpro/pkg/payment"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type fastagFixture struct {
	transactionRepo *mockTransactionRepo
	vehicleRepo     *mockVehicleRepo
	userRepo        *mockUserRepo
	gateway         *mockGateway
	cardCharger     *mockCardCharger

	userID  primitive.ObjectID
	vehicle *models.Vehicle
	service *FastagService
}

func newFastagFixture() *fastagFixture {
	f := &fastagFixture{
		userID: primitive.NewObjectID(),
	}
	f.vehicle = &models.Vehicle{ID: primitive.NewObjectID(), UserID: f.userID, Number: "KA01AB1234"}

	f.transactionRepo = &mockTransactionRepo{
		CreateFn: func(ctx context.Context, txn *models.FastagTransaction) error {
			txn.ID = primitive.NewObjectID()
			return nil
		},
	}
	f.vehicleRepo = &mockVehicleRepo{
		GetFirstByUserIDFn: func(ctx context.Context, userID primitive.ObjectID) (*models.Vehicle, error) {
			return f.vehicle, nil
		},
	}
	f.userRepo = &mockUserRepo{
		CreditWalletFn: func(ctx context.Context, id primitive.ObjectID, amount float64) (float64, error) {
			return 500 + amount, nil
		},
	}
	f.gateway = &mockGateway{}
	f.cardCharger = &mockCardCharger{}

	f.service = NewFastagService(
		f.transactionRepo, f.vehicleRepo, f.userRepo,
		f.gateway, f.cardCharger, newTestNotifications(), newTestPaymentConfig(), newTestLogger(),
	)
	return f
}

func TestRechargeAmountBounds(t *testing.T) {
	f := newFastagFixture()

	_, err := f.service.Recharge(context.Background(), f.userID, &RechargeRequest{
		Amount: 50,
		Method: models.TransactionMethodUPI,
	})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = f.service.Recharge(context.Background(), f.userID, &RechargeRequest{
		Amount: 50000,
		Method: models.TransactionMethodUPI,
	})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestRechargeWithCardCreditsImmediately(t *testing.T) {
	f := newFastagFixture()

	f.cardCharger.ChargeCardFn = func(ctx context.Context, req *payment.CardChargeRequest) (*payment.CardChargeResponse, error) {
		assert.Equal(t, 300.0, req.Amount)
		assert.Equal(t, "pm_123", req.PaymentMethodID)
		return &payment.CardChargeResponse{TransactionID: "pi_abc"}, nil
	}

	var credited float64
	f.userRepo.CreditWalletFn = func(ctx context.Context, id primitive.ObjectID, amount float64) (float64, error) {
		credited = amount
		return 800, nil
	}

	resp, err := f.service.Recharge(context.Background(), f.userID, &RechargeRequest{
		Amount:          300,
		Method:          models.TransactionMethodCard,
		PaymentMethodID: "pm_123",
	})
	require.NoError(t, err)

	assert.Equal(t, models.TransactionStatusCompleted, resp.Transaction.Status)
	assert.Equal(t, "pi_abc", resp.Transaction.TxnID)
	assert.Equal(t, 300.0, credited)
	assert.Equal(t, 800.0, resp.WalletBalance)
}

func TestRechargeWithCardRequiresPaymentMethod(t *testing.T) {
	f := newFastagFixture()

	_, err := f.service.Recharge(context.Background(), f.userID, &RechargeRequest{
		Amount: 300,
		Method: models.TransactionMethodCard,
	})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestRechargeWithRazorpayStaysPending(t *testing.T) {
	f := newFastagFixture()

	f.gateway.CreateOrderFn = func(ctx context.Context, req *payment.OrderRequest) (*payment.Order, error) {
		return &payment.Order{OrderID: "order_rc1"}, nil
	}

	resp, err := f.service.Recharge(context.Background(), f.userID, &RechargeRequest{
		Amount: 200,
		Method: models.TransactionMethodRazorpay,
	})
	require.NoError(t, err)

	assert.Equal(t, models.TransactionStatusPending, resp.Transaction.Status)
	assert.Equal(t, "order_rc1", resp.Transaction.TxnID)
	assert.Equal(t, "order_rc1", resp.RazorpayOrderID)
	assert.Zero(t, resp.WalletBalance, "wallet is untouched until confirmation")
}

func TestRechargeWithUPIIssuesIntent(t *testing.T) {
	f := newFastagFixture()

	resp, err := f.service.Recharge(context.Background(), f.userID, &RechargeRequest{
		Amount: 150,
		Method: models.TransactionMethodUPI,
	})
	require.NoError(t, err)

	assert.Equal(t, models.TransactionStatusPending, resp.Transaction.Status)
	assert.True(t, strings.HasPrefix(resp.Transaction.TxnID, "upi_"))
	assert.Contains(t, resp.UPIIntent, "upi://pay?")
	assert.Contains(t, resp.UPIIntent, "tr="+resp.Transaction.TxnID)
}

func TestConfirmRazorpayRecharge(t *testing.T) {
	f := newFastagFixture()

	txn := &models.FastagTransaction{
		ID:     primitive.NewObjectID(),
		UserID: f.userID,
		Amount: 200,
		TxnID:  "order_rc1",
		Status: models.TransactionStatusPending,
	}
	f.transactionRepo.GetPendingRechargeFn = func(ctx context.Context, txnID string, userID primitive.ObjectID) (*models.FastagTransaction, error) {
		assert.Equal(t, "order_rc1", txnID)
		assert.Equal(t, f.userID, userID)
		return txn, nil
	}

	completed := false
	f.transactionRepo.MarkCompletedFn = func(ctx context.Context, id primitive.ObjectID) error {
		completed = true
		return nil
	}
	f.gateway.VerifyPaymentSignatureFn = func(orderID, paymentID, signature string) bool {
		return signature == "good"
	}

	resp, err := f.service.ConfirmRazorpayRecharge(context.Background(), f.userID, "order_rc1", "pay_1", "good")
	require.NoError(t, err)

	assert.True(t, completed)
	assert.Equal(t, models.TransactionStatusCompleted, resp.Transaction.Status)
	assert.Equal(t, 700.0, resp.WalletBalance)
}

func TestConfirmRazorpayRechargeBadSignature(t *testing.T) {
	f := newFastagFixture()

	txn := &models.FastagTransaction{ID: primitive.NewObjectID(), UserID: f.userID, TxnID: "order_rc1"}
	f.transactionRepo.GetPendingRechargeFn = func(ctx context.Context, txnID string, userID primitive.ObjectID) (*models.FastagTransaction, error) {
		return txn, nil
	}

	failed := false
	f.transactionRepo.MarkFailedFn = func(ctx context.Context, id primitive.ObjectID) error {
		failed = true
		return nil
	}

	_, err := f.service.ConfirmRazorpayRecharge(context.Background(), f.userID, "order_rc1", "pay_1", "tampered")
	assert.ErrorIs(t, err, ErrValidation)
	assert.True(t, failed)
}

func TestConfirmRazorpayRechargeIdempotent(t *testing.T) {
	f := newFastagFixture()

	// A completed recharge is no longer pending, so the lookup misses and
	// the wallet cannot be credited twice.
	f.transactionRepo.GetPendingRechargeFn = func(ctx context.Context, txnID string, userID primitive.ObjectID) (*models.FastagTransaction, error) {
		return nil, errNotMocked
	}

	_, err := f.service.ConfirmRazorpayRecharge(context.Background(), f.userID, "order_rc1", "pay_1", "good")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestConfirmUpiRechargeGatedByConfig(t *testing.T) {
	f := newFastagFixture()

	_, err := f.service.ConfirmUpiRecharge(context.Background(), f.userID, "upi_abc")
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestConfirmUpiRechargeWhenEnabled(t *testing.T) {
	f := newFastagFixture()
	f.service.paymentCfg.AllowManualUPI = true

	txn := &models.FastagTransaction{
		ID:     primitive.NewObjectID(),
		UserID: f.userID,
		Amount: 150,
		TxnID:  "upi_abc",
		Status: models.TransactionStatusPending,
	}
	f.transactionRepo.GetPendingRechargeFn = func(ctx context.Context, txnID string, userID primitive.ObjectID) (*models.FastagTransaction, error) {
		return txn, nil
	}
	f.transactionRepo.MarkCompletedFn = func(ctx context.Context, id primitive.ObjectID) error {
		return nil
	}

	resp, err := f.service.ConfirmUpiRecharge(context.Background(), f.userID, "upi_abc")
	require.NoError(t, err)
	assert.Equal(t, models.TransactionStatusCompleted, resp.Transaction.Status)
	assert.Equal(t, 650.0, resp.WalletBalance)
}

func TestBalance(t *testing.T) {
	f := newFastagFixture()

	f.userRepo.GetByIDFn = func(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
		return &models.User{ID: id, WalletBalance: 420}, nil
	}

	balance, err := f.service.Balance(context.Background(), f.userID)
	require.NoError(t, err)
	assert.Equal(t, 420.0, balance)
}
