package services

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"parkpro/internal/config"
	"parkpro/internal/models"
	"parkpro/internal/repositories/interfaces"
	"parkpro/internal/utils"
	"parkpro/pkg/logger"
	"parkpro/pkg/mailer"
	"parkpro/pkg/payment"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// bookingGuardStatuses are the states that hold a slot-window at insert
// time. Any non-terminal booking blocks, so a reservation hold or an
// unverified payment cannot be overrun while it is live.
var bookingGuardStatuses = []models.BookingStatus{
	models.BookingStatusReserved,
	models.BookingStatusPending,
	models.BookingStatusActive,
	models.BookingStatusConfirmed,
}

type BookingService struct {
	bookingRepo   interfaces.BookingRepository
	slotRepo      interfaces.SlotRepository
	stationRepo   interfaces.StationRepository
	vehicleRepo   interfaces.VehicleRepository
	userRepo      interfaces.UserRepository
	gateway       payment.Gateway
	mailer        mailer.Mailer
	notifications *NotificationService
	paymentCfg    *config.PaymentConfig
	logger        *logger.Logger
}

func NewBookingService(
	bookingRepo interfaces.BookingRepository,
	slotRepo interfaces.SlotRepository,
	stationRepo interfaces.StationRepository,
	vehicleRepo interfaces.VehicleRepository,
	userRepo interfaces.UserRepository,
	gateway payment.Gateway,
	mail mailer.Mailer,
	notifications *NotificationService,
	paymentCfg *config.PaymentConfig,
	logger *logger.Logger,
) *BookingService {
	return &BookingService{
		bookingRepo:   bookingRepo,
		slotRepo:      slotRepo,
		stationRepo:   stationRepo,
		vehicleRepo:   vehicleRepo,
		userRepo:      userRepo,
		gateway:       gateway,
		mailer:        mail,
		notifications: notifications,
		paymentCfg:    paymentCfg,
		logger:        logger,
	}
}

type CreateBookingRequest struct {
	SlotCode      string               `json:"slot_id" binding:"required" validate:"required,slot_code"`
	VehicleID     string               `json:"vehicle_id" validate:"omitempty,object_id"`
	StartTime     time.Time            `json:"booking_start_time" binding:"required"`
	DurationHours float64              `json:"duration_hours" binding:"required" validate:"gt=0"`
	Amount        float64              `json:"amount" validate:"gte=0"`
	PaymentMethod models.PaymentMethod `json:"payment_method" binding:"required"`
}

// EndTime derives the booking end from the start and requested duration.
func (r *CreateBookingRequest) EndTime() time.Time {
	return r.StartTime.Add(time.Duration(r.DurationHours * float64(time.Hour)))
}

type CreateBookingResponse struct {
	Booking         *models.Booking `json:"booking"`
	RazorpayOrderID string          `json:"razorpay_order_id,omitempty"`
	RazorpayKeyID   string          `json:"razorpay_key_id,omitempty"`
	UPIIntent       string          `json:"upi_intent,omitempty"`
}

// Create books a slot. Coupon and direct UPI bookings confirm
// immediately; razorpay bookings come back pending with a gateway order
// the client must pay and verify. The reserve-then-verify UPI flow goes
// through Reserve instead.
func (s *BookingService) Create(ctx context.Context, userID primitive.ObjectID, req *CreateBookingRequest) (*CreateBookingResponse, error) {
	booking, station, err := s.prepare(ctx, userID, req)
	if err != nil {
		return nil, err
	}

	resp := &CreateBookingResponse{}

	switch req.PaymentMethod {
	case models.PaymentMethodCoupon, models.PaymentMethodUPI:
		booking.Status = models.BookingStatusActive
		booking.PaymentStatus = models.PaymentStatusSuccess

	case models.PaymentMethodRazorpay:
		order, err := s.gateway.CreateOrder(ctx, &payment.OrderRequest{
			Amount:   req.Amount,
			Currency: s.paymentCfg.Currency,
			Receipt:  fmt.Sprintf("booking_%s", booking.ID.Hex()),
			Notes: map[string]interface{}{
				"slot_id": req.SlotCode,
				"user_id": userID.Hex(),
			},
		})
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrGateway, err)
		}
		booking.Status = models.BookingStatusPending
		booking.PaymentStatus = models.PaymentStatusPending
		booking.RazorpayOrderID = order.OrderID
		resp.RazorpayOrderID = order.OrderID
		resp.RazorpayKeyID = s.paymentCfg.Razorpay.KeyID

	default:
		return nil, fmt.Errorf("%w: unsupported payment method", ErrValidation)
	}

	created, err := s.bookingRepo.CreateIfNoOverlap(ctx, booking, bookingGuardStatuses)
	if err != nil {
		return nil, err
	}
	if !created {
		return nil, fmt.Errorf("%w: %s", ErrConflict, utils.ErrSlotUnavailable)
	}

	s.logger.LogBookingEvent(booking.ID, utils.EventBookingCreated, map[string]interface{}{
		"slot_id": req.SlotCode,
		"method":  string(req.PaymentMethod),
		"amount":  req.Amount,
	})

	if booking.Status == models.BookingStatusActive {
		s.afterConfirmation(ctx, booking, station, req.SlotCode)
	}

	resp.Booking = booking
	return resp, nil
}

// Reserve places a short hold on the slot-window and hands back a UPI
// intent the client can pay against. The hold lapses unless the payment is
// verified before the expiry sweep reaches it.
func (s *BookingService) Reserve(ctx context.Context, userID primitive.ObjectID, req *CreateBookingRequest) (*CreateBookingResponse, error) {
	if req.PaymentMethod != models.PaymentMethodUPI {
		return nil, fmt.Errorf("%w: only upi bookings can be reserved", ErrValidation)
	}

	booking, station, err := s.prepare(ctx, userID, req)
	if err != nil {
		return nil, err
	}

	expiry := time.Now().Add(utils.ReservationHold)
	booking.Status = models.BookingStatusReserved
	booking.PaymentStatus = models.PaymentStatusPending
	booking.ReservationExpiry = &expiry

	created, err := s.bookingRepo.CreateIfNoOverlap(ctx, booking, bookingGuardStatuses)
	if err != nil {
		return nil, err
	}
	if !created {
		return nil, fmt.Errorf("%w: %s", ErrConflict, utils.ErrSlotUnavailable)
	}

	s.logger.LogBookingEvent(booking.ID, utils.EventBookingReserved, map[string]interface{}{
		"slot_id":    req.SlotCode,
		"expires_at": expiry,
	})

	return &CreateBookingResponse{
		Booking:   booking,
		UPIIntent: s.upiIntent(station.Name, req.Amount, booking.ID.Hex()),
	}, nil
}

func (s *BookingService) upiIntent(stationName string, amount float64, ref string) string {
	q := url.Values{}
	q.Set("pa", s.paymentCfg.UPIMerchantVPA)
	q.Set("pn", stationName)
	q.Set("am", fmt.Sprintf("%.2f", amount))
	q.Set("tn", "BookingSlot")
	q.Set("tr", ref)
	return "upi://pay?" + q.Encode()
}

// prepare validates the request and assembles the unsaved booking.
func (s *BookingService) prepare(ctx context.Context, userID primitive.ObjectID, req *CreateBookingRequest) (*models.Booking, *models.Station, error) {
	if err := validateBookingWindow(req.StartTime, req.EndTime()); err != nil {
		return nil, nil, err
	}
	if err := validateAmount(req.PaymentMethod, req.Amount); err != nil {
		return nil, nil, err
	}

	slot, err := s.slotRepo.GetBySlotCode(ctx, req.SlotCode)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: slot %s", ErrNotFound, req.SlotCode)
	}
	if slot.Status != models.SlotStatusEnabled {
		return nil, nil, fmt.Errorf("%w: slot %s is disabled", ErrConflict, req.SlotCode)
	}

	station, err := s.stationRepo.Resolve(ctx, slot.StationID)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: station for slot %s", ErrNotFound, req.SlotCode)
	}

	vehicle, err := s.resolveVehicle(ctx, userID, req.VehicleID)
	if err != nil {
		return nil, nil, err
	}

	return &models.Booking{
		SlotID:           &slot.ID,
		UserID:           userID,
		VehicleID:        vehicle.ID,
		StationID:        station.ID,
		BookingStartTime: req.StartTime,
		BookingEndTime:   req.EndTime(),
		AmountPaid:       req.Amount,
		PaymentMethod:    req.PaymentMethod,
	}, station, nil
}

func (s *BookingService) resolveVehicle(ctx context.Context, userID primitive.ObjectID, vehicleID string) (*models.Vehicle, error) {
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

// validateBookingWindow enforces the fixed platform booking window. The
// window is deliberately independent of a station's configured hours.
func validateBookingWindow(start, end time.Time) error {
	if !start.Before(end) {
		return fmt.Errorf("%w: start time must be before end time", ErrValidation)
	}
	if start.Before(time.Now()) {
		return fmt.Errorf("%w: start time is in the past", ErrValidation)
	}
	if end.Sub(start) > utils.MaxBookingDuration {
		return fmt.Errorf("%w: booking exceeds maximum duration", ErrValidation)
	}

	dayStart := utils.StartOfDay(start)
	if !utils.StartOfDay(end).Equal(dayStart) && !end.Equal(dayStart.AddDate(0, 0, 1)) {
		return fmt.Errorf("%w: booking must fall within a single day", ErrValidation)
	}

	open := utils.AtHourMinute(dayStart, utils.BookingOpenHour, 0)
	closing := utils.AtHourMinute(dayStart, utils.BookingCloseHour, 0)
	if start.Before(open) || end.After(closing) {
		return fmt.Errorf("%w: bookings are accepted between %02d:00 and %02d:00", ErrValidation, utils.BookingOpenHour, utils.BookingCloseHour)
	}

	return nil
}

func validateAmount(method models.PaymentMethod, amount float64) error {
	switch method {
	case models.PaymentMethodCoupon:
		if amount != 0 {
			return fmt.Errorf("%w: coupon bookings must have zero amount", ErrValidation)
		}
	case models.PaymentMethodUPI, models.PaymentMethodRazorpay:
		if amount <= 0 {
			return fmt.Errorf("%w: amount must be positive", ErrValidation)
		}
	default:
		return fmt.Errorf("%w: unsupported payment method", ErrValidation)
	}
	return nil
}

// VerifyRazorpayPayment reconciles a client-side razorpay payment against
// the gateway signature. A valid signature moves the booking from pending
// to active; an invalid one cancels it and marks the payment failed.
// Only pending bookings can be verified, so a replayed verification is
// rejected rather than acknowledged.
func (s *BookingService) VerifyRazorpayPayment(ctx context.Context, userID primitive.ObjectID, orderID, paymentID, signature string) (*models.Booking, error) {
	booking, err := s.bookingRepo.GetByRazorpayOrderID(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("%w: order %s", ErrNotFound, orderID)
	}
	if booking.UserID != userID {
		return nil, fmt.Errorf("%w: booking belongs to another user", ErrForbidden)
	}

	if booking.Status != models.BookingStatusPending {
		return nil, fmt.Errorf("%w: booking is %s", ErrConflict, booking.Status)
	}

	if !s.gateway.VerifyPaymentSignature(orderID, paymentID, signature) {
		reason := models.CancelReasonSystem
		updates := map[string]interface{}{
			"status":        models.BookingStatusCancelled,
			"paymentStatus": models.PaymentStatusFailed,
			"cancelReason":  reason,
		}
		if err := s.bookingRepo.Update(ctx, booking.ID, updates); err != nil {
			return nil, err
		}

		s.logger.LogBookingEvent(booking.ID, utils.EventPaymentFailed, map[string]interface{}{
			"order_id": orderID,
		})

		return nil, fmt.Errorf("%w: payment signature mismatch", ErrValidation)
	}

	updates := map[string]interface{}{
		"status":            models.BookingStatusActive,
		"paymentStatus":     models.PaymentStatusSuccess,
		"razorpayPaymentId": paymentID,
	}
	if err := s.bookingRepo.Update(ctx, booking.ID, updates); err != nil {
		return nil, err
	}

	booking.Status = models.BookingStatusActive
	booking.PaymentStatus = models.PaymentStatusSuccess
	booking.RazorpayPaymentID = paymentID

	s.logger.LogPaymentEvent(booking.ID, utils.EventPaymentProcessed, booking.AmountPaid, s.paymentCfg.Currency)

	s.confirmSideEffects(ctx, booking)

	return booking, nil
}

// VerifyPayment is the manual UPI confirmation path. It trusts the
// caller's report of whether the out-of-band payment succeeded, so it is
// disabled unless explicitly configured on. A successful report moves the
// reservation to confirmed; a failed one cancels it and marks the payment
// failed. Only reserved bookings transition either way.
func (s *BookingService) VerifyPayment(ctx context.Context, userID primitive.ObjectID, bookingID primitive.ObjectID, succeeded bool) (*models.Booking, error) {
	if !s.paymentCfg.AllowManualUPI {
		return nil, fmt.Errorf("%w: manual payment confirmation is disabled", ErrForbidden)
	}

	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, fmt.Errorf("%w: booking %s", ErrNotFound, bookingID.Hex())
	}
	if booking.UserID != userID {
		return nil, fmt.Errorf("%w: booking belongs to another user", ErrForbidden)
	}
	if booking.Status != models.BookingStatusReserved {
		return nil, fmt.Errorf("%w: booking is %s", ErrConflict, booking.Status)
	}
	if booking.ReservationExpiry != nil && booking.ReservationExpiry.Before(time.Now()) {
		return nil, fmt.Errorf("%w: reservation has expired", ErrConflict)
	}

	if !succeeded {
		reason := models.CancelReasonSystem
		updates := map[string]interface{}{
			"status":        models.BookingStatusCancelled,
			"paymentStatus": models.PaymentStatusFailed,
			"cancelReason":  reason,
		}
		if err := s.bookingRepo.Update(ctx, booking.ID, updates); err != nil {
			return nil, err
		}

		booking.Status = models.BookingStatusCancelled
		booking.PaymentStatus = models.PaymentStatusFailed
		booking.CancelReason = &reason

		s.logger.LogBookingEvent(booking.ID, utils.EventPaymentFailed, map[string]interface{}{
			"method": string(booking.PaymentMethod),
		})

		return booking, nil
	}

	updates := map[string]interface{}{
		"status":               models.BookingStatusConfirmed,
		"paymentStatus":        models.PaymentStatusSuccess,
		"reservationExpiresAt": nil,
	}
	if err := s.bookingRepo.Update(ctx, booking.ID, updates); err != nil {
		return nil, err
	}

	booking.Status = models.BookingStatusConfirmed
	booking.PaymentStatus = models.PaymentStatusSuccess
	booking.ReservationExpiry = nil

	s.logger.LogPaymentEvent(booking.ID, utils.EventPaymentProcessed, booking.AmountPaid, s.paymentCfg.Currency)

	s.confirmSideEffects(ctx, booking)

	return booking, nil
}

// Cancel is the user-initiated transition into cancelled. Terminal
// bookings stay as they are. Razorpay bookings that already collected a
// payment get a best-effort refund request; a refund failure is logged
// but does not block the cancellation.
func (s *BookingService) Cancel(ctx context.Context, userID primitive.ObjectID, bookingID primitive.ObjectID) (*models.Booking, error) {
	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, fmt.Errorf("%w: booking %s", ErrNotFound, bookingID.Hex())
	}
	if booking.UserID != userID {
		return nil, fmt.Errorf("%w: booking belongs to another user", ErrForbidden)
	}
	if booking.Status.IsTerminal() {
		return nil, fmt.Errorf("%w: booking is already %s", ErrConflict, booking.Status)
	}

	reason := models.CancelReasonUser
	updates := map[string]interface{}{
		"status":       models.BookingStatusCancelled,
		"cancelReason": reason,
	}
	if err := s.bookingRepo.Update(ctx, booking.ID, updates); err != nil {
		return nil, err
	}

	booking.Status = models.BookingStatusCancelled
	booking.CancelReason = &reason

	s.logger.LogBookingEvent(booking.ID, utils.EventBookingCancelled, map[string]interface{}{
		"reason": string(reason),
	})

	s.refundIfPaid(ctx, booking)

	s.notifications.NotifyBooking(ctx, booking.UserID, booking.ID,
		"Booking cancelled", "Your parking booking has been cancelled.")

	return booking, nil
}

// refundIfPaid asks the gateway to return a collected razorpay payment.
func (s *BookingService) refundIfPaid(ctx context.Context, booking *models.Booking) {
	if booking.PaymentMethod != models.PaymentMethodRazorpay ||
		booking.PaymentStatus != models.PaymentStatusSuccess ||
		booking.RazorpayPaymentID == "" {
		return
	}

	refund, err := s.gateway.RefundPayment(ctx, &payment.RefundRequest{
		PaymentID: booking.RazorpayPaymentID,
		Amount:    booking.AmountPaid,
		Reason:    string(models.CancelReasonUser),
	})
	if err != nil {
		s.logger.WithError(err).WithBookingID(booking.ID).Warn("Refund request failed")
		return
	}

	s.logger.LogPaymentEvent(booking.ID, utils.EventPaymentRefunded, refund.Amount, s.paymentCfg.Currency)
}

func (s *BookingService) ListForUser(ctx context.Context, userID primitive.ObjectID) ([]*models.Booking, error) {
	return s.bookingRepo.GetByUserID(ctx, userID)
}

func (s *BookingService) ListForSlot(ctx context.Context, slotCode string) ([]*models.Booking, error) {
	slot, err := s.slotRepo.GetBySlotCode(ctx, slotCode)
	if err != nil {
		return nil, fmt.Errorf("%w: slot %s", ErrNotFound, slotCode)
	}
	return s.bookingRepo.GetBySlotID(ctx, slot.ID)
}

func (s *BookingService) Get(ctx context.Context, userID, bookingID primitive.ObjectID) (*models.Booking, error) {
	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, fmt.Errorf("%w: booking %s", ErrNotFound, bookingID.Hex())
	}
	if booking.UserID != userID {
		return nil, fmt.Errorf("%w: booking belongs to another user", ErrForbidden)
	}
	return booking, nil
}

func (s *BookingService) RecentForStation(ctx context.Context, stationIDOrCode string, limit int64) ([]*models.Booking, error) {
	station, err := s.stationRepo.Resolve(ctx, stationIDOrCode)
	if err != nil {
		return nil, fmt.Errorf("%w: station %s", ErrNotFound, stationIDOrCode)
	}

	if limit <= 0 {
		limit = utils.RecentBookingsLimit
	}

	return s.bookingRepo.GetRecentByStation(ctx, station.ID, slotBlockingStatuses, limit)
}

// StationStats assembles the station dashboard aggregate for today.
func (s *BookingService) StationStats(ctx context.Context, stationIDOrCode string) (*models.StationStats, error) {
	station, err := s.stationRepo.Resolve(ctx, stationIDOrCode)
	if err != nil {
		return nil, fmt.Errorf("%w: station %s", ErrNotFound, stationIDOrCode)
	}

	dayStart := utils.StartOfDay(time.Now())
	dayEnd := dayStart.AddDate(0, 0, 1)

	stats, err := s.bookingRepo.GetStationStats(ctx, station.ID, dayStart, dayEnd)
	if err != nil {
		return nil, err
	}

	for _, ref := range []string{station.StationID, station.ID.Hex()} {
		if ref == "" {
			continue
		}
		count, err := s.slotRepo.CountByStation(ctx, ref)
		if err != nil {
			return nil, err
		}
		stats.TotalSlots += count
	}

	return stats, nil
}

// confirmSideEffects runs the notification and email fan-out after a
// booking reaches active. Both are best effort.
func (s *BookingService) confirmSideEffects(ctx context.Context, booking *models.Booking) {
	station, err := s.stationRepo.GetByID(ctx, booking.StationID)
	if err != nil {
		s.logger.WithError(err).WithBookingID(booking.ID).Warn("Station lookup failed during confirmation fan-out")
		return
	}

	slotCode := ""
	if booking.SlotID != nil {
		if slot, err := s.slotRepo.GetByID(ctx, *booking.SlotID); err == nil {
			slotCode = slot.SlotID
		}
	}

	s.afterConfirmation(ctx, booking, station, slotCode)
}

func (s *BookingService) afterConfirmation(ctx context.Context, booking *models.Booking, station *models.Station, slotCode string) {
	s.notifications.NotifyBooking(ctx, booking.UserID, booking.ID,
		"Booking confirmed",
		fmt.Sprintf("Your slot at %s is booked from %s.", station.Name, booking.BookingStartTime.Format("02 Jan 15:04")))

	if s.mailer == nil {
		return
	}

	user, err := s.userRepo.GetByID(ctx, booking.UserID)
	if err != nil {
		s.logger.WithError(err).WithBookingID(booking.ID).Warn("User lookup failed, skipping confirmation email")
		return
	}

	details := &mailer.BookingDetails{
		BookingID:   booking.ID.Hex(),
		StationName: station.Name,
		SlotCode:    slotCode,
		StartTime:   booking.BookingStartTime,
		EndTime:     booking.BookingEndTime,
		Amount:      booking.AmountPaid,
		Currency:    s.paymentCfg.Currency,
	}
	if err := s.mailer.SendBookingConfirmation(user.Email, user.Name, details); err != nil {
		s.logger.WithError(err).WithBookingID(booking.ID).Warn("Failed to send confirmation email")
	}
}
