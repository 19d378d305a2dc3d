package services

import (
	"context"
	"fmt"
	"net/url"

	"parkpro/internal/config"
	"parkpro/internal/models"
	"parkpro/internal/repositories/interfaces"
	"parkpro/internal/utils"
	"parkpro/pkg/logger"
	"parkpro/pkg/payment"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type FastagService struct {
	transactionRepo interfaces.TransactionRepository
	vehicleRepo     interfaces.VehicleRepository
	userRepo        interfaces.UserRepository
	gateway         payment.Gateway
	cardCharger     payment.CardCharger
	notifications   *NotificationService
	paymentCfg      *config.PaymentConfig
	logger          *logger.Logger
}

func NewFastagService(
	transactionRepo interfaces.TransactionRepository,
	vehicleRepo interfaces.VehicleRepository,
	userRepo interfaces.UserRepository,
	gateway payment.Gateway,
	cardCharger payment.CardCharger,
	notifications *NotificationService,
	paymentCfg *config.PaymentConfig,
	logger *logger.Logger,
) *FastagService {
	return &FastagService{
		transactionRepo: transactionRepo,
		vehicleRepo:     vehicleRepo,
		userRepo:        userRepo,
		gateway:         gateway,
		cardCharger:     cardCharger,
		notifications:   notifications,
		paymentCfg:      paymentCfg,
		logger:          logger,
	}
}

type RechargeRequest struct {
	VehicleID       string                   `json:"vehicle_id" validate:"omitempty,object_id"`
	Amount          float64                  `json:"amount" binding:"required" validate:"gt=0"`
	Method          models.TransactionMethod `json:"method" binding:"required"`
	PaymentMethodID string                   `json:"payment_method_id"`
}

type RechargeResponse struct {
	Transaction     *models.FastagTransaction `json:"transaction"`
	WalletBalance   float64                   `json:"wallet_balance,omitempty"`
	RazorpayOrderID string                    `json:"razorpay_order_id,omitempty"`
	RazorpayKeyID   string                    `json:"razorpay_key_id,omitempty"`
	UPIIntent       string                    `json:"upi_intent,omitempty"`
}

// Recharge tops up the user's FASTag wallet. Card payments settle
// synchronously and credit the wallet at once; razorpay and UPI recharges
// start out pending and credit only on confirmation.
func (s *FastagService) Recharge(ctx context.Context, userID primitive.ObjectID, req *RechargeRequest) (*RechargeResponse, error) {
	if req.Amount < s.paymentCfg.MinRechargeAmount {
		return nil, fmt.Errorf("%w: minimum recharge is %.0f", ErrValidation, s.paymentCfg.MinRechargeAmount)
	}
	if req.Amount > utils.MaxRechargeAmount {
		return nil, fmt.Errorf("%w: maximum recharge is %.0f", ErrValidation, utils.MaxRechargeAmount)
	}

	vehicle, err := s.resolveVehicle(ctx, userID, req.VehicleID)
	if err != nil {
		return nil, err
	}

	txn := &models.FastagTransaction{
		VehicleID:     vehicle.ID,
		UserID:        userID,
		VehicleNumber: vehicle.Number,
		Type:          models.TransactionTypeRecharge,
		Amount:        req.Amount,
		Method:        req.Method,
		Description:   "FASTag wallet recharge",
	}

	resp := &RechargeResponse{}

	switch req.Method {
	case models.TransactionMethodRazorpay:
		order, err := s.gateway.CreateOrder(ctx, &payment.OrderRequest{
			Amount:   req.Amount,
			Currency: s.paymentCfg.Currency,
			Receipt:  fmt.Sprintf("recharge_%s", userID.Hex()),
			Notes:    map[string]interface{}{"vehicle": vehicle.Number},
		})
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrGateway, err)
		}
		txn.Status = models.TransactionStatusPending
		txn.TxnID = order.OrderID
		resp.RazorpayOrderID = order.OrderID
		resp.RazorpayKeyID = s.paymentCfg.Razorpay.KeyID

	case models.TransactionMethodCard:
		if req.PaymentMethodID == "" {
			return nil, fmt.Errorf("%w: payment method id required for card recharge", ErrValidation)
		}
		charge, err := s.cardCharger.ChargeCard(ctx, &payment.CardChargeRequest{
			Amount:          req.Amount,
			Currency:        s.paymentCfg.Currency,
			PaymentMethodID: req.PaymentMethodID,
			Description:     fmt.Sprintf("FASTag recharge for %s", vehicle.Number),
		})
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrGateway, err)
		}
		txn.Status = models.TransactionStatusCompleted
		txn.TxnID = charge.TransactionID

	case models.TransactionMethodUPI:
		txn.Status = models.TransactionStatusPending
		txn.TxnID = fmt.Sprintf("upi_%s", utils.GenerateRandomString(16))
		resp.UPIIntent = s.upiIntent(req.Amount, txn.TxnID)

	default:
		return nil, fmt.Errorf("%w: unsupported recharge method", ErrValidation)
	}

	if err := s.transactionRepo.Create(ctx, txn); err != nil {
		return nil, err
	}

	if txn.Status == models.TransactionStatusCompleted {
		balance, err := s.credit(ctx, txn)
		if err != nil {
			return nil, err
		}
		resp.WalletBalance = balance
	}

	resp.Transaction = txn
	return resp, nil
}

// ConfirmRazorpayRecharge verifies the gateway signature for a pending
// razorpay recharge and credits the wallet. A recharge already completed
// is not found pending, which keeps the operation idempotent.
func (s *FastagService) ConfirmRazorpayRecharge(ctx context.Context, userID primitive.ObjectID, orderID, paymentID, signature string) (*RechargeResponse, error) {
	txn, err := s.transactionRepo.GetPendingRecharge(ctx, orderID, userID)
	if err != nil {
		return nil, fmt.Errorf("%w: pending recharge %s", ErrNotFound, orderID)
	}

	if !s.gateway.VerifyPaymentSignature(orderID, paymentID, signature) {
		if err := s.transactionRepo.MarkFailed(ctx, txn.ID); err != nil {
			return nil, err
		}
		return nil, fmt.Errorf("%w: payment signature mismatch", ErrValidation)
	}

	return s.complete(ctx, txn)
}

// ConfirmUpiRecharge completes a pending manual UPI recharge. Like the
// manual booking confirmation, it takes the caller's word that the payment
// happened, so it is gated off by default.
func (s *FastagService) ConfirmUpiRecharge(ctx context.Context, userID primitive.ObjectID, txnID string) (*RechargeResponse, error) {
	if !s.paymentCfg.AllowManualUPI {
		return nil, fmt.Errorf("%w: manual payment confirmation is disabled", ErrForbidden)
	}

	txn, err := s.transactionRepo.GetPendingRecharge(ctx, txnID, userID)
	if err != nil {
		return nil, fmt.Errorf("%w: pending recharge %s", ErrNotFound, txnID)
	}

	return s.complete(ctx, txn)
}

func (s *FastagService) complete(ctx context.Context, txn *models.FastagTransaction) (*RechargeResponse, error) {
	if err := s.transactionRepo.MarkCompleted(ctx, txn.ID); err != nil {
		return nil, err
	}
	txn.Status = models.TransactionStatusCompleted

	balance, err := s.credit(ctx, txn)
	if err != nil {
		return nil, err
	}

	return &RechargeResponse{
		Transaction:   txn,
		WalletBalance: balance,
	}, nil
}

func (s *FastagService) credit(ctx context.Context, txn *models.FastagTransaction) (float64, error) {
	balance, err := s.userRepo.CreditWallet(ctx, txn.UserID, txn.Amount)
	if err != nil {
		return 0, err
	}

	s.logger.WithUserID(txn.UserID).WithFields(map[string]interface{}{
		"txn_id": txn.TxnID,
		"amount": txn.Amount,
	}).Info("FASTag wallet credited")

	s.notifications.NotifyPayment(ctx, txn.UserID,
		"Wallet recharged",
		fmt.Sprintf("%.2f %s added to your FASTag wallet.", txn.Amount, s.paymentCfg.Currency))

	return balance, nil
}

func (s *FastagService) Balance(ctx context.Context, userID primitive.ObjectID) (float64, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("%w: user %s", ErrNotFound, userID.Hex())
	}
	return user.WalletBalance, nil
}

func (s *FastagService) History(ctx context.Context, userID primitive.ObjectID, limit int64) ([]*models.FastagTransaction, error) {
	if limit <= 0 {
		limit = utils.RecentBookingsLimit
	}
	return s.transactionRepo.GetRecentByUser(ctx, userID, limit)
}

func (s *FastagService) resolveVehicle(ctx context.Context, userID primitive.ObjectID, vehicleID string) (*models.Vehicle, error) {
	if vehicleID != "" {
		id, err := primitive.ObjectIDFromHex(vehicleID)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid vehicle id", ErrValidation)
		}
		vehicle, err := s.vehicleRepo.GetByID(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("%w: vehicle %s", ErrNotFound, vehicleID)
		}
		if vehicle.UserID != userID {
			return nil, fmt.Errorf("%w: vehicle belongs to another user", ErrForbidden)
		}
		return vehicle, nil
	}

	vehicle, err := s.vehicleRepo.GetFirstByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%w: no vehicle registered", ErrValidation)
	}
	return vehicle, nil
}

func (s *FastagService) upiIntent(amount float64, ref string) string {
	q := url.Values{}
	q.Set("pa", s.paymentCfg.UPIMerchantVPA)
	q.Set("pn", "FASTag Recharge")
	q.Set("am", fmt.Sprintf("%.2f", amount))
	q.Set("tn", "FastagRecharge")
	q.Set("tr", ref)
	return "upi://pay?" + q.Encode()
}
