package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type BookingStatus string

const (
	BookingStatusReserved  BookingStatus = "reserved"
	BookingStatusPending   BookingStatus = "pending"
	BookingStatusActive    BookingStatus = "active"
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusCancelled BookingStatus = "cancelled"
	BookingStatusExpired   BookingStatus = "expired"
)

// IsTerminal reports whether no further transition may leave the status.
func (s BookingStatus) IsTerminal() bool {
	return s == BookingStatusCancelled || s == BookingStatusExpired
}

type PaymentMethod string

const (
	PaymentMethodUPI      PaymentMethod = "upi"
	PaymentMethodCoupon   PaymentMethod = "coupon"
	PaymentMethodRazorpay PaymentMethod = "razorpay"
)

type PaymentStatus string

const (
	PaymentStatusPending PaymentStatus = "pending"
	PaymentStatusSuccess PaymentStatus = "success"
	PaymentStatusFailed  PaymentStatus = "failed"
)

type CancelReason string

const (
	CancelReasonUser    CancelReason = "user_cancelled"
	CancelReasonTimeout CancelReason = "timeout"
	CancelReasonSystem  CancelReason = "system_error"
)

// Booking is a user's claim on a slot for a specific time window.
//
// Invariant: for a given slot, no two bookings with status active or
// confirmed may have overlapping [BookingStartTime, BookingEndTime)
// intervals. The booking repository enforces this at insert time.
type Booking struct {
	ID                primitive.ObjectID  `json:"id" bson:"_id,omitempty"`
	SlotID            *primitive.ObjectID `json:"slot_id" bson:"slotId"`
	UserID            primitive.ObjectID  `json:"user_id" bson:"userId"`
	VehicleID         primitive.ObjectID  `json:"vehicle_id" bson:"vehicleId"`
	StationID         primitive.ObjectID  `json:"station_id" bson:"stationId"`
	BookingStartTime  time.Time           `json:"booking_start_time" bson:"bookingStartTime"`
	BookingEndTime    time.Time           `json:"booking_end_time" bson:"bookingEndTime"`
	AmountPaid        float64             `json:"amount_paid" bson:"amountPaid"`
	PaymentMethod     PaymentMethod       `json:"payment_method" bson:"paymentMethod"`
	PaymentStatus     PaymentStatus       `json:"payment_status" bson:"paymentStatus" default:"pending"`
	Status            BookingStatus       `json:"status" bson:"status" default:"reserved"`
	ReservationExpiry *time.Time          `json:"reservation_expires_at,omitempty" bson:"reservationExpiresAt,omitempty"`
	CancelReason      *CancelReason       `json:"cancel_reason,omitempty" bson:"cancelReason,omitempty"`
	RazorpayOrderID   string              `json:"razorpay_order_id,omitempty" bson:"razorpayOrderId,omitempty"`
	RazorpayPaymentID string              `json:"razorpay_payment_id,omitempty" bson:"razorpayPaymentId,omitempty"`
	CreatedAt         time.Time           `json:"created_at" bson:"createdAt"`
	UpdatedAt         time.Time           `json:"updated_at" bson:"updatedAt"`
}

// Overlaps applies the open-interval test against another time window.
// Touching endpoints do not count as overlap.
func (b *Booking) Overlaps(start, end time.Time) bool {
	return b.BookingStartTime.Before(end) && b.BookingEndTime.After(start)
}
