package mongodb

import (
	"context"
	"fmt"
	"time"

	"parkpro/internal/models"
	"parkpro/internal/repositories/interfaces"
	"parkpro/pkg/database"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type bookingRepository struct {
	db         *database.MongoDB
	collection *mongo.Collection
}

func NewBookingRepository(db *database.MongoDB) interfaces.BookingRepository {
	return &bookingRepository{
		db:         db,
		collection: db.Database.Collection("slotbookings"),
	}
}

func (r *bookingRepository) Create(ctx context.Context, booking *models.Booking) error {
	booking.ID = primitive.NewObjectID()
	booking.CreatedAt = time.Now()
	booking.UpdatedAt = booking.CreatedAt

	_, err := r.collection.InsertOne(ctx, booking)
	if err != nil {
		return fmt.Errorf("failed to create booking: %w", err)
	}

	return nil
}

func (r *bookingRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Booking, error) {
	var booking models.Booking
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&booking)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, fmt.Errorf("booking not found")
		}
		return nil, fmt.Errorf("failed to get booking: %w", err)
	}

	return &booking, nil
}

func (r *bookingRepository) Update(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) error {
	updates["updatedAt"] = time.Now()

	_, err := r.collection.UpdateOne(
		ctx,
		bson.M{"_id": id},
		bson.M{"$set": updates},
	)
	if err != nil {
		return fmt.Errorf("failed to update booking: %w", err)
	}

	return nil
}

func overlapFilter(slotID primitive.ObjectID, start, end time.Time, statuses []models.BookingStatus) bson.M {
	return bson.M{
		"slotId":           slotID,
		"status":           bson.M{"$in": statuses},
		"bookingStartTime": bson.M{"$lt": end},
		"bookingEndTime":   bson.M{"$gt": start},
	}
}

// CreateIfNoOverlap re-runs the overlap check and the insert inside one
// transaction so two concurrent requests for the same slot and window
// cannot both pass the check before either write lands.
func (r *bookingRepository) CreateIfNoOverlap(ctx context.Context, booking *models.Booking, statuses []models.BookingStatus) (bool, error) {
	if booking.SlotID == nil {
		return false, fmt.Errorf("booking has no slot")
	}

	booking.ID = primitive.NewObjectID()
	booking.CreatedAt = time.Now()
	booking.UpdatedAt = booking.CreatedAt

	result, err := r.db.WithTransaction(ctx, func(sessCtx mongo.SessionContext) (interface{}, error) {
		count, err := r.collection.CountDocuments(sessCtx, overlapFilter(*booking.SlotID, booking.BookingStartTime, booking.BookingEndTime, statuses))
		if err != nil {
			return nil, err
		}
		if count > 0 {
			return false, nil
		}

		if _, err := r.collection.InsertOne(sessCtx, booking); err != nil {
			return nil, err
		}
		return true, nil
	})
	if err != nil {
		return false, fmt.Errorf("failed to create booking: %w", err)
	}

	return result.(bool), nil
}

func (r *bookingRepository) GetForSlotOnDay(ctx context.Context, slotID primitive.ObjectID, dayStart, dayEnd time.Time, statuses []models.BookingStatus) ([]*models.Booking, error) {
	filter := bson.M{
		"slotId":           slotID,
		"status":           bson.M{"$in": statuses},
		"bookingStartTime": bson.M{"$gte": dayStart, "$lt": dayEnd},
	}

	return r.find(ctx, filter, options.Find().SetSort(bson.D{{Key: "bookingStartTime", Value: 1}}))
}

func (r *bookingRepository) GetForStationOnDay(ctx context.Context, stationID primitive.ObjectID, dayStart, dayEnd time.Time, statuses []models.BookingStatus) ([]*models.Booking, error) {
	filter := bson.M{
		"stationId":        stationID,
		"status":           bson.M{"$in": statuses},
		"bookingStartTime": bson.M{"$gte": dayStart, "$lt": dayEnd},
	}

	return r.find(ctx, filter, options.Find().SetSort(bson.D{{Key: "bookingStartTime", Value: 1}}))
}

func (r *bookingRepository) GetBySlotID(ctx context.Context, slotID primitive.ObjectID) ([]*models.Booking, error) {
	filter := bson.M{"slotId": slotID}

	return r.find(ctx, filter, options.Find().SetSort(bson.D{{Key: "bookingStartTime", Value: -1}}))
}

func (r *bookingRepository) GetByUserID(ctx context.Context, userID primitive.ObjectID) ([]*models.Booking, error) {
	filter := bson.M{"userId": userID}

	return r.find(ctx, filter, options.Find().SetSort(bson.D{{Key: "bookingStartTime", Value: -1}}))
}

func (r *bookingRepository) GetRecentByStation(ctx context.Context, stationID primitive.ObjectID, statuses []models.BookingStatus, limit int64) ([]*models.Booking, error) {
	filter := bson.M{
		"stationId": stationID,
		"status":    bson.M{"$in": statuses},
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetLimit(limit)

	return r.find(ctx, filter, opts)
}

func (r *bookingRepository) GetByRazorpayOrderID(ctx context.Context, orderID string) (*models.Booking, error) {
	var booking models.Booking
	err := r.collection.FindOne(ctx, bson.M{"razorpayOrderId": orderID}).Decode(&booking)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, fmt.Errorf("booking not found for order")
		}
		return nil, fmt.Errorf("failed to get booking by order id: %w", err)
	}

	return &booking, nil
}

// ExpireStaleReservations is the only writer of the reserved -> expired
// transition. The filter pins status to reserved so bookings in any other
// state are never touched.
func (r *bookingRepository) ExpireStaleReservations(ctx context.Context, now time.Time) (int64, error) {
	filter := bson.M{
		"status":               models.BookingStatusReserved,
		"reservationExpiresAt": bson.M{"$lt": now},
	}

	update := bson.M{"$set": bson.M{
		"status":       models.BookingStatusExpired,
		"cancelReason": models.CancelReasonTimeout,
		"updatedAt":    now,
	}}

	result, err := r.collection.UpdateMany(ctx, filter, update)
	if err != nil {
		return 0, fmt.Errorf("failed to expire reservations: %w", err)
	}

	return result.ModifiedCount, nil
}

func (r *bookingRepository) GetStationStats(ctx context.Context, stationID primitive.ObjectID, dayStart, dayEnd time.Time) (*models.StationStats, error) {
	stats := &models.StationStats{}

	activeStatuses := []models.BookingStatus{models.BookingStatusActive, models.BookingStatusConfirmed}

	var err error
	stats.SlotsBookedToday, err = r.collection.CountDocuments(ctx, bson.M{
		"stationId":        stationID,
		"status":           bson.M{"$in": activeStatuses},
		"bookingStartTime": bson.M{"$gte": dayStart, "$lt": dayEnd},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to count today's bookings: %w", err)
	}

	stats.RevenueToday, err = r.sumAmount(ctx, bson.M{
		"stationId":        stationID,
		"status":           bson.M{"$in": activeStatuses},
		"bookingStartTime": bson.M{"$gte": dayStart, "$lt": dayEnd},
	})
	if err != nil {
		return nil, err
	}

	stats.TotalEarnings, err = r.sumAmount(ctx, bson.M{
		"stationId": stationID,
		"status":    bson.M{"$in": activeStatuses},
	})
	if err != nil {
		return nil, err
	}

	return stats, nil
}

func (r *bookingRepository) sumAmount(ctx context.Context, match bson.M) (float64, error) {
	pipeline := []bson.M{
		{"$match": match},
		{"$group": bson.M{
			"_id":   nil,
			"total": bson.M{"$sum": "$amountPaid"},
		}},
	}

	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return 0, fmt.Errorf("failed to aggregate bookings: %w", err)
	}
	defer cursor.Close(ctx)

	var results []struct {
		Total float64 `bson:"total"`
	}
	if err := cursor.All(ctx, &results); err != nil {
		return 0, fmt.Errorf("failed to decode aggregation: %w", err)
	}

	if len(results) == 0 {
		return 0, nil
	}
	return results[0].Total, nil
}

func (r *bookingRepository) find(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]*models.Booking, error) {
	var cursor *mongo.Cursor
	var err error
	if opts != nil {
		cursor, err = r.collection.Find(ctx, filter, opts)
	} else {
		cursor, err = r.collection.Find(ctx, filter)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find bookings: %w", err)
	}
	defer cursor.Close(ctx)

	var bookings []*models.Booking
	for cursor.Next(ctx) {
		var booking models.Booking
		if err := cursor.Decode(&booking); err != nil {
			return nil, fmt.Errorf("failed to decode booking: %w", err)
		}
		bookings = append(bookings, &booking)
	}

	return bookings, nil
}
