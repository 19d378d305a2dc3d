package services

import (
	"context"
	"errors"
	"time"

	"parkpro/internal/config"
	"parkpro/internal/models"
	"parkpro/internal/utils"
	"parkpro/pkg/logger"
	"parkpro/pkg/mailer"
	"parkpro/pkg/payment"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Function-field mocks. Tests set only the functions the code under test
// is expected to call; an unset function fails loudly.

var errNotMocked = errors.New("not mocked")

type mockBookingRepo struct {
	CreateFn                  func(ctx context.Context, booking *models.Booking) error
	GetByIDFn                 func(ctx context.Context, id primitive.ObjectID) (*models.Booking, error)
	UpdateFn                  func(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) error
	CreateIfNoOverlapFn       func(ctx context.Context, booking *models.Booking, statuses []models.BookingStatus) (bool, error)
	GetForSlotOnDayFn         func(ctx context.Context, slotID primitive.ObjectID, dayStart, dayEnd time.Time, statuses []models.BookingStatus) ([]*models.Booking, error)
	GetForStationOnDayFn      func(ctx context.Context, stationID primitive.ObjectID, dayStart, dayEnd time.Time, statuses []models.BookingStatus) ([]*models.Booking, error)
	GetBySlotIDFn             func(ctx context.Context, slotID primitive.ObjectID) ([]*models.Booking, error)
	GetByUserIDFn             func(ctx context.Context, userID primitive.ObjectID) ([]*models.Booking, error)
	GetRecentByStationFn      func(ctx context.Context, stationID primitive.ObjectID, statuses []models.BookingStatus, limit int64) ([]*models.Booking, error)
	GetByRazorpayOrderIDFn    func(ctx context.Context, orderID string) (*models.Booking, error)
	ExpireStaleReservationsFn func(ctx context.Context, now time.Time) (int64, error)
	GetStationStatsFn         func(ctx context.Context, stationID primitive.ObjectID, dayStart, dayEnd time.Time) (*models.StationStats, error)
}

func (m *mockBookingRepo) Create(ctx context.Context, booking *models.Booking) error {
	if m.CreateFn == nil {
		return errNotMocked
	}
	return m.CreateFn(ctx, booking)
}

func (m *mockBookingRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Booking, error) {
	if m.GetByIDFn == nil {
		return nil, errNotMocked
	}
	return m.GetByIDFn(ctx, id)
}

func (m *mockBookingRepo) Update(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) error {
	if m.UpdateFn == nil {
		return errNotMocked
	}
	return m.UpdateFn(ctx, id, updates)
}

func (m *mockBookingRepo) CreateIfNoOverlap(ctx context.Context, booking *models.Booking, statuses []models.BookingStatus) (bool, error) {
	if m.CreateIfNoOverlapFn == nil {
		return false, errNotMocked
	}
	return m.CreateIfNoOverlapFn(ctx, booking, statuses)
}

func (m *mockBookingRepo) GetForSlotOnDay(ctx context.Context, slotID primitive.ObjectID, dayStart, dayEnd time.Time, statuses []models.BookingStatus) ([]*models.Booking, error) {
	if m.GetForSlotOnDayFn == nil {
		return nil, errNotMocked
	}
	return m.GetForSlotOnDayFn(ctx, slotID, dayStart, dayEnd, statuses)
}

func (m *mockBookingRepo) GetForStationOnDay(ctx context.Context, stationID primitive.ObjectID, dayStart, dayEnd time.Time, statuses []models.BookingStatus) ([]*models.Booking, error) {
	if m.GetForStationOnDayFn == nil {
		return nil, errNotMocked
	}
	return m.GetForStationOnDayFn(ctx, stationID, dayStart, dayEnd, statuses)
}

func (m *mockBookingRepo) GetBySlotID(ctx context.Context, slotID primitive.ObjectID) ([]*models.Booking, error) {
	if m.GetBySlotIDFn == nil {
		return nil, errNotMocked
	}
	return m.GetBySlotIDFn(ctx, slotID)
}

func (m *mockBookingRepo) GetByUserID(ctx context.Context, userID primitive.ObjectID) ([]*models.Booking, error) {
	if m.GetByUserIDFn == nil {
		return nil, errNotMocked
	}
	return m.GetByUserIDFn(ctx, userID)
}

func (m *mockBookingRepo) GetRecentByStation(ctx context.Context, stationID primitive.ObjectID, statuses []models.BookingStatus, limit int64) ([]*models.Booking, error) {
	if m.GetRecentByStationFn == nil {
		return nil, errNotMocked
	}
	return m.GetRecentByStationFn(ctx, stationID, statuses, limit)
}

func (m *mockBookingRepo) GetByRazorpayOrderID(ctx context.Context, orderID string) (*models.Booking, error) {
	if m.GetByRazorpayOrderIDFn == nil {
		return nil, errNotMocked
	}
	return m.GetByRazorpayOrderIDFn(ctx, orderID)
}

func (m *mockBookingRepo) ExpireStaleReservations(ctx context.Context, now time.Time) (int64, error) {
	if m.ExpireStaleReservationsFn == nil {
		return 0, errNotMocked
	}
	return m.ExpireStaleReservationsFn(ctx, now)
}

func (m *mockBookingRepo) GetStationStats(ctx context.Context, stationID primitive.ObjectID, dayStart, dayEnd time.Time) (*models.StationStats, error) {
	if m.GetStationStatsFn == nil {
		return nil, errNotMocked
	}
	return m.GetStationStatsFn(ctx, stationID, dayStart, dayEnd)
}

type mockSlotRepo struct {
	CreateFn         func(ctx context.Context, slot *models.Slot) error
	GetByIDFn        func(ctx context.Context, id primitive.ObjectID) (*models.Slot, error)
	GetBySlotCodeFn  func(ctx context.Context, slotCode string) (*models.Slot, error)
	UpdateFn         func(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) error
	DeleteFn         func(ctx context.Context, id primitive.ObjectID) error
	ListFn           func(ctx context.Context) ([]*models.Slot, error)
	GetByStationIDFn func(ctx context.Context, stationID string) ([]*models.Slot, error)
	CountByStationFn func(ctx context.Context, stationID string) (int64, error)
}

func (m *mockSlotRepo) Create(ctx context.Context, slot *models.Slot) error {
	if m.CreateFn == nil {
		return errNotMocked
	}
	return m.CreateFn(ctx, slot)
}

func (m *mockSlotRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Slot, error) {
	if m.GetByIDFn == nil {
		return nil, errNotMocked
	}
	return m.GetByIDFn(ctx, id)
}

func (m *mockSlotRepo) GetBySlotCode(ctx context.Context, slotCode string) (*models.Slot, error) {
	if m.GetBySlotCodeFn == nil {
		return nil, errNotMocked
	}
	return m.GetBySlotCodeFn(ctx, slotCode)
}

func (m *mockSlotRepo) Update(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) error {
	if m.UpdateFn == nil {
		return errNotMocked
	}
	return m.UpdateFn(ctx, id, updates)
}

func (m *mockSlotRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	if m.DeleteFn == nil {
		return errNotMocked
	}
	return m.DeleteFn(ctx, id)
}

func (m *mockSlotRepo) List(ctx context.Context) ([]*models.Slot, error) {
	if m.ListFn == nil {
		return nil, errNotMocked
	}
	return m.ListFn(ctx)
}

func (m *mockSlotRepo) GetByStationID(ctx context.Context, stationID string) ([]*models.Slot, error) {
	if m.GetByStationIDFn == nil {
		return nil, errNotMocked
	}
	return m.GetByStationIDFn(ctx, stationID)
}

func (m *mockSlotRepo) CountByStation(ctx context.Context, stationID string) (int64, error) {
	if m.CountByStationFn == nil {
		return 0, errNotMocked
	}
	return m.CountByStationFn(ctx, stationID)
}

type mockStationRepo struct {
	CreateFn               func(ctx context.Context, station *models.Station) error
	GetByIDFn              func(ctx context.Context, id primitive.ObjectID) (*models.Station, error)
	GetByStationCodeFn     func(ctx context.Context, code string) (*models.Station, error)
	ResolveFn              func(ctx context.Context, idOrCode string) (*models.Station, error)
	UpdateFn               func(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) error
	UpdateOperatingHoursFn func(ctx context.Context, id primitive.ObjectID, openAt, closeAt string) error
	ListFn                 func(ctx context.Context) ([]*models.Station, error)
}

func (m *mockStationRepo) Create(ctx context.Context, station *models.Station) error {
	if m.CreateFn == nil {
		return errNotMocked
	}
	return m.CreateFn(ctx, station)
}

func (m *mockStationRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Station, error) {
	if m.GetByIDFn == nil {
		return nil, errNotMocked
	}
	return m.GetByIDFn(ctx, id)
}

func (m *mockStationRepo) GetByStationCode(ctx context.Context, code string) (*models.Station, error) {
	if m.GetByStationCodeFn == nil {
		return nil, errNotMocked
	}
	return m.GetByStationCodeFn(ctx, code)
}

func (m *mockStationRepo) Resolve(ctx context.Context, idOrCode string) (*models.Station, error) {
	if m.ResolveFn == nil {
		return nil, errNotMocked
	}
	return m.ResolveFn(ctx, idOrCode)
}

func (m *mockStationRepo) Update(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) error {
	if m.UpdateFn == nil {
		return errNotMocked
	}
	return m.UpdateFn(ctx, id, updates)
}

func (m *mockStationRepo) UpdateOperatingHours(ctx context.Context, id primitive.ObjectID, openAt, closeAt string) error {
	if m.UpdateOperatingHoursFn == nil {
		return errNotMocked
	}
	return m.UpdateOperatingHoursFn(ctx, id, openAt, closeAt)
}

func (m *mockStationRepo) List(ctx context.Context) ([]*models.Station, error) {
	if m.ListFn == nil {
		return nil, errNotMocked
	}
	return m.ListFn(ctx)
}

type mockVehicleRepo struct {
	CreateFn             func(ctx context.Context, vehicle *models.Vehicle) error
	GetByIDFn            func(ctx context.Context, id primitive.ObjectID) (*models.Vehicle, error)
	GetByUserIDFn        func(ctx context.Context, userID primitive.ObjectID) ([]*models.Vehicle, error)
	GetFirstByUserIDFn   func(ctx context.Context, userID primitive.ObjectID) (*models.Vehicle, error)
	GetByUserAndNumberFn func(ctx context.Context, userID primitive.ObjectID, number string) (*models.Vehicle, error)
	UpdateFn             func(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) error
}

func (m *mockVehicleRepo) Create(ctx context.Context, vehicle *models.Vehicle) error {
	if m.CreateFn == nil {
		return errNotMocked
	}
	return m.CreateFn(ctx, vehicle)
}

func (m *mockVehicleRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Vehicle, error) {
	if m.GetByIDFn == nil {
		return nil, errNotMocked
	}
	return m.GetByIDFn(ctx, id)
}

func (m *mockVehicleRepo) GetByUserID(ctx context.Context, userID primitive.ObjectID) ([]*models.Vehicle, error) {
	if m.GetByUserIDFn == nil {
		return nil, errNotMocked
	}
	return m.GetByUserIDFn(ctx, userID)
}

func (m *mockVehicleRepo) GetFirstByUserID(ctx context.Context, userID primitive.ObjectID) (*models.Vehicle, error) {
	if m.GetFirstByUserIDFn == nil {
		return nil, errNotMocked
	}
	return m.GetFirstByUserIDFn(ctx, userID)
}

func (m *mockVehicleRepo) GetByUserAndNumber(ctx context.Context, userID primitive.ObjectID, number string) (*models.Vehicle, error) {
	if m.GetByUserAndNumberFn == nil {
		return nil, errNotMocked
	}
	return m.GetByUserAndNumberFn(ctx, userID, number)
}

func (m *mockVehicleRepo) Update(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) error {
	if m.UpdateFn == nil {
		return errNotMocked
	}
	return m.UpdateFn(ctx, id, updates)
}

type mockUserRepo struct {
	CreateFn       func(ctx context.Context, user *models.User) error
	GetByIDFn      func(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	GetByEmailFn   func(ctx context.Context, email string) (*models.User, error)
	UpdateFn       func(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) error
	CreditWalletFn func(ctx context.Context, id primitive.ObjectID, amount float64) (float64, error)
}

func (m *mockUserRepo) Create(ctx context.Context, user *models.User) error {
	if m.CreateFn == nil {
		return errNotMocked
	}
	return m.CreateFn(ctx, user)
}

func (m *mockUserRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	if m.GetByIDFn == nil {
		return nil, errNotMocked
	}
	return m.GetByIDFn(ctx, id)
}

func (m *mockUserRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	if m.GetByEmailFn == nil {
		return nil, errNotMocked
	}
	return m.GetByEmailFn(ctx, email)
}

func (m *mockUserRepo) Update(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) error {
	if m.UpdateFn == nil {
		return errNotMocked
	}
	return m.UpdateFn(ctx, id, updates)
}

func (m *mockUserRepo) CreditWallet(ctx context.Context, id primitive.ObjectID, amount float64) (float64, error) {
	if m.CreditWalletFn == nil {
		return 0, errNotMocked
	}
	return m.CreditWalletFn(ctx, id, amount)
}

type mockNotificationRepo struct {
	CreateFn         func(ctx context.Context, notification *models.Notification) error
	GetByUserIDFn    func(ctx context.Context, userID primitive.ObjectID, params *utils.PaginationParams) ([]*models.Notification, int64, error)
	GetUnreadCountFn func(ctx context.Context, userID primitive.ObjectID) (int64, error)
	MarkAsReadFn     func(ctx context.Context, id, userID primitive.ObjectID) error
	MarkAllAsReadFn  func(ctx context.Context, userID primitive.ObjectID) (int64, error)
	DeleteFn         func(ctx context.Context, id, userID primitive.ObjectID) error
}

func (m *mockNotificationRepo) Create(ctx context.Context, notification *models.Notification) error {
	if m.CreateFn == nil {
		return nil
	}
	return m.CreateFn(ctx, notification)
}

func (m *mockNotificationRepo) GetByUserID(ctx context.Context, userID primitive.ObjectID, params *utils.PaginationParams) ([]*models.Notification, int64, error) {
	if m.GetByUserIDFn == nil {
		return nil, 0, errNotMocked
	}
	return m.GetByUserIDFn(ctx, userID, params)
}

func (m *mockNotificationRepo) GetUnreadCount(ctx context.Context, userID primitive.ObjectID) (int64, error) {
	if m.GetUnreadCountFn == nil {
		return 0, errNotMocked
	}
	return m.GetUnreadCountFn(ctx, userID)
}

func (m *mockNotificationRepo) MarkAsRead(ctx context.Context, id, userID primitive.ObjectID) error {
	if m.MarkAsReadFn == nil {
		return errNotMocked
	}
	return m.MarkAsReadFn(ctx, id, userID)
}

func (m *mockNotificationRepo) MarkAllAsRead(ctx context.Context, userID primitive.ObjectID) (int64, error) {
	if m.MarkAllAsReadFn == nil {
		return 0, errNotMocked
	}
	return m.MarkAllAsReadFn(ctx, userID)
}

func (m *mockNotificationRepo) Delete(ctx context.Context, id, userID primitive.ObjectID) error {
	if m.DeleteFn == nil {
		return errNotMocked
	}
	return m.DeleteFn(ctx, id, userID)
}

type mockTransactionRepo struct {
	CreateFn             func(ctx context.Context, txn *models.FastagTransaction) error
	GetByIDFn            func(ctx context.Context, id primitive.ObjectID) (*models.FastagTransaction, error)
	GetPendingRechargeFn func(ctx context.Context, txnID string, userID primitive.ObjectID) (*models.FastagTransaction, error)
	MarkCompletedFn      func(ctx context.Context, id primitive.ObjectID) error
	MarkFailedFn         func(ctx context.Context, id primitive.ObjectID) error
	GetRecentByUserFn    func(ctx context.Context, userID primitive.ObjectID, limit int64) ([]*models.FastagTransaction, error)
}

func (m *mockTransactionRepo) Create(ctx context.Context, txn *models.FastagTransaction) error {
	if m.CreateFn == nil {
		return errNotMocked
	}
	return m.CreateFn(ctx, txn)
}

func (m *mockTransactionRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*models.FastagTransaction, error) {
	if m.GetByIDFn == nil {
		return nil, errNotMocked
	}
	return m.GetByIDFn(ctx, id)
}

func (m *mockTransactionRepo) GetPendingRecharge(ctx context.Context, txnID string, userID primitive.ObjectID) (*models.FastagTransaction, error) {
	if m.GetPendingRechargeFn == nil {
		return nil, errNotMocked
	}
	return m.GetPendingRechargeFn(ctx, txnID, userID)
}

func (m *mockTransactionRepo) MarkCompleted(ctx context.Context, id primitive.ObjectID) error {
	if m.MarkCompletedFn == nil {
		return errNotMocked
	}
	return m.MarkCompletedFn(ctx, id)
}

func (m *mockTransactionRepo) MarkFailed(ctx context.Context, id primitive.ObjectID) error {
	if m.MarkFailedFn == nil {
		return errNotMocked
	}
	return m.MarkFailedFn(ctx, id)
}

func (m *mockTransactionRepo) GetRecentByUser(ctx context.Context, userID primitive.ObjectID, limit int64) ([]*models.FastagTransaction, error) {
	if m.GetRecentByUserFn == nil {
		return nil, errNotMocked
	}
	return m.GetRecentByUserFn(ctx, userID, limit)
}

type mockFavoriteRepo struct {
	AddFn         func(ctx context.Context, userID, stationID primitive.ObjectID) error
	RemoveFn      func(ctx context.Context, userID, stationID primitive.ObjectID) error
	GetByUserIDFn func(ctx context.Context, userID primitive.ObjectID) ([]*models.Favorite, error)
	ExistsFn      func(ctx context.Context, userID, stationID primitive.ObjectID) (bool, error)
}

func (m *mockFavoriteRepo) Add(ctx context.Context, userID, stationID primitive.ObjectID) error {
	if m.AddFn == nil {
		return errNotMocked
	}
	return m.AddFn(ctx, userID, stationID)
}

func (m *mockFavoriteRepo) Remove(ctx context.Context, userID, stationID primitive.ObjectID) error {
	if m.RemoveFn == nil {
		return errNotMocked
	}
	return m.RemoveFn(ctx, userID, stationID)
}

func (m *mockFavoriteRepo) GetByUserID(ctx context.Context, userID primitive.ObjectID) ([]*models.Favorite, error) {
	if m.GetByUserIDFn == nil {
		return nil, errNotMocked
	}
	return m.GetByUserIDFn(ctx, userID)
}

func (m *mockFavoriteRepo) Exists(ctx context.Context, userID, stationID primitive.ObjectID) (bool, error) {
	if m.ExistsFn == nil {
		return false, errNotMocked
	}
	return m.ExistsFn(ctx, userID, stationID)
}

type mockGateway struct {
	CreateOrderFn            func(ctx context.Context, request *payment.OrderRequest) (*payment.Order, error)
	VerifyPaymentSignatureFn func(orderID, paymentID, signature string) bool
	RefundPaymentFn          func(ctx context.Context, request *payment.RefundRequest) (*payment.RefundResponse, error)
}

func (m *mockGateway) CreateOrder(ctx context.Context, request *payment.OrderRequest) (*payment.Order, error) {
	if m.CreateOrderFn == nil {
		return nil, errNotMocked
	}
	return m.CreateOrderFn(ctx, request)
}

func (m *mockGateway) VerifyPaymentSignature(orderID, paymentID, signature string) bool {
	if m.VerifyPaymentSignatureFn == nil {
		return false
	}
	return m.VerifyPaymentSignatureFn(orderID, paymentID, signature)
}

func (m *mockGateway) RefundPayment(ctx context.Context, request *payment.RefundRequest) (*payment.RefundResponse, error) {
	if m.RefundPaymentFn == nil {
		return nil, errNotMocked
	}
	return m.RefundPaymentFn(ctx, request)
}

type mockCardCharger struct {
	ChargeCardFn func(ctx context.Context, request *payment.CardChargeRequest) (*payment.CardChargeResponse, error)
}

func (m *mockCardCharger) ChargeCard(ctx context.Context, request *payment.CardChargeRequest) (*payment.CardChargeResponse, error) {
	if m.ChargeCardFn == nil {
		return nil, errNotMocked
	}
	return m.ChargeCardFn(ctx, request)
}

type mockMailer struct {
	SendBookingConfirmationFn func(toEmail, toName string, details *mailer.BookingDetails) error
}

func (m *mockMailer) SendBookingConfirmation(toEmail, toName string, details *mailer.BookingDetails) error {
	if m.SendBookingConfirmationFn == nil {
		return nil
	}
	return m.SendBookingConfirmationFn(toEmail, toName, details)
}

func newTestLogger() *logger.Logger {
	log, _ := logger.NewLogger(&logger.Config{Level: logger.ErrorLevel, Format: "text", Output: "stderr"})
	return log
}

func newTestPaymentConfig() *config.PaymentConfig {
	return &config.PaymentConfig{
		DefaultProvider:   "razorpay",
		Razorpay:          &config.RazorpayConfig{KeyID: "rzp_test_key", KeySecret: "secret"},
		Stripe:            &config.StripeConfig{},
		Currency:          "INR",
		AllowManualUPI:    false,
		UPIMerchantVPA:    "merchant@upi",
		MinRechargeAmount: 100,
	}
}

func newTestNotifications() *NotificationService {
	return NewNotificationService(&mockNotificationRepo{}, newTestLogger())
}
