package interfaces

import (
	"context"
	"time"

	"parkpro/internal/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type BookingRepository interface {
	// Basic CRUD operations
	Create(ctx context.Context, booking *models.Booking) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Booking, error)
	Update(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) error

	// CreateIfNoOverlap atomically re-checks the open-interval overlap
	// condition against bookings for the same slot with the given statuses
	// and inserts only when none conflict. Returns false when a conflicting
	// booking exists; nothing is written in that case.
	CreateIfNoOverlap(ctx context.Context, booking *models.Booking, statuses []models.BookingStatus) (bool, error)

	// Availability queries
	GetForSlotOnDay(ctx context.Context, slotID primitive.ObjectID, dayStart, dayEnd time.Time, statuses []models.BookingStatus) ([]*models.Booking, error)
	GetForStationOnDay(ctx context.Context, stationID primitive.ObjectID, dayStart, dayEnd time.Time, statuses []models.BookingStatus) ([]*models.Booking, error)

	// Listing
	GetBySlotID(ctx context.Context, slotID primitive.ObjectID) ([]*models.Booking, error)
	GetByUserID(ctx context.Context, userID primitive.ObjectID) ([]*models.Booking, error)
	GetRecentByStation(ctx context.Context, stationID primitive.ObjectID, statuses []models.BookingStatus, limit int64) ([]*models.Booking, error)

	// Payment reconciliation
	GetByRazorpayOrderID(ctx context.Context, orderID string) (*models.Booking, error)

	// Reservation expiry: reserved holds whose expiry passed become expired.
	// Returns the number of holds transitioned.
	ExpireStaleReservations(ctx context.Context, now time.Time) (int64, error)

	// Dashboard aggregates
	GetStationStats(ctx context.Context, stationID primitive.ObjectID, dayStart, dayEnd time.Time) (*models.StationStats, error)
}
