package utils

import "time"

// Application Constants
const (
	AppName    = "ParkPro"
	AppVersion = "1.0.0"

	// Default values
	DefaultCurrency = "INR"
	DefaultTimeZone = "UTC"

	// Pagination
	DefaultPageSize = 20
	MaxPageSize     = 100
	MinPageSize     = 1

	// Authentication
	JWTAccessTokenTTL  = 24 * time.Hour
	JWTRefreshTokenTTL = 7 * 24 * time.Hour
	PasswordMinLength  = 8
	PasswordMaxLength  = 128

	// Booking Constants
	BookingOpenHour      = 10 // bookings accepted from 10:00
	BookingCloseHour     = 23 // through 23:00
	ReservationHold      = 10 * time.Minute
	MaxBookingDuration   = 12 * time.Hour
	RecentBookingsLimit  = 10
	SlotCodeWidth        = 3
	SlotCodeMaxRetries   = 5
	DashboardRecentLimit = 5

	// Payment Constants
	MinRechargeAmount = 100.0
	MaxRechargeAmount = 10000.0
	UPIMerchantVPA    = "merchant@upi"

	// Rate Limiting
	DefaultRateLimit = 100
	LoginRateLimit   = 5
)

// HTTP Status Messages
const (
	StatusSuccess = "success"
	StatusError   = "error"
	StatusFailed  = "failed"
)

// Error Messages
const (
	ErrInvalidCredentials = "invalid credentials"
	ErrUserNotFound       = "user not found"
	ErrUserExists         = "user already exists"
	ErrInvalidToken       = "invalid token"
	ErrTokenExpired       = "token expired"
	ErrInvalidInput       = "invalid input"
	ErrInternalServer     = "internal server error"
	ErrUnauthorized       = "unauthorized"
	ErrForbidden          = "forbidden"
	ErrNotFound           = "not found"
	ErrConflict           = "conflict"
	ErrValidationFailed   = "validation failed"
	ErrPaymentFailed      = "payment failed"
	ErrSlotNotFound       = "slot not found"
	ErrStationNotFound    = "station not found"
	ErrBookingNotFound    = "booking not found"
	ErrSlotUnavailable    = "slot is not available for the selected time"
)

// Cache Keys
const (
	CacheUserPrefix      = "user:"
	CacheStationPrefix   = "station:"
	CacheSlotPrefix      = "slot:"
	CacheRateLimitPrefix = "rate_limit:"
	CacheSessionPrefix   = "session:"
)

// Event Types
const (
	EventUserRegistered    = "user_registered"
	EventUserLogin         = "user_login"
	EventBookingCreated    = "booking_created"
	EventBookingReserved   = "booking_reserved"
	EventBookingConfirmed  = "booking_confirmed"
	EventBookingCancelled  = "booking_cancelled"
	EventBookingExpired    = "booking_expired"
	EventPaymentProcessed  = "payment_processed"
	EventPaymentFailed     = "payment_failed"
	EventPaymentRefunded   = "payment_refunded"
	EventFastagRecharged   = "fastag_recharged"
	EventNotificationSent  = "notification_sent"
	EventStationHoursSaved = "station_hours_saved"
)
