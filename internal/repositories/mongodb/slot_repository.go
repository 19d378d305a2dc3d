package mongodb

import (
	"context"
	"fmt"
	"time"

	"parkpro/internal/models"
	"parkpro/internal/repositories/interfaces"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type slotRepository struct {
	collection *mongo.Collection
	cache      CacheService
}

func NewSlotRepository(db *mongo.Database, cache CacheService) interfaces.SlotRepository {
	return &slotRepository{
		collection: db.Collection("slots"),
		cache:      cache,
	}
}

func (r *slotRepository) Create(ctx context.Context, slot *models.Slot) error {
	slot.ID = primitive.NewObjectID()
	slot.CreatedAt = time.Now()
	slot.UpdatedAt = slot.CreatedAt

	_, err := r.collection.InsertOne(ctx, slot)
	if err != nil {
		return fmt.Errorf("failed to create slot: %w", err)
	}

	return nil
}

func (r *slotRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Slot, error) {
	var slot models.Slot
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&slot)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, fmt.Errorf("slot not found")
		}
		return nil, fmt.Errorf("failed to get slot: %w", err)
	}

	return &slot, nil
}

func (r *slotRepository) GetBySlotCode(ctx context.Context, slotCode string) (*models.Slot, error) {
	cacheKey := fmt.Sprintf("slot_code_%s", slotCode)
	if r.cache != nil {
		var slot models.Slot
		if err := r.cache.Get(ctx, cacheKey, &slot); err == nil {
			return &slot, nil
		}
	}

	var slot models.Slot
	err := r.collection.FindOne(ctx, bson.M{"slotId": slotCode}).Decode(&slot)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, fmt.Errorf("slot not found")
		}
		return nil, fmt.Errorf("failed to get slot by code: %w", err)
	}

	if r.cache != nil {
		r.cache.Set(ctx, cacheKey, slot, 10*time.Minute)
	}

	return &slot, nil
}

func (r *slotRepository) Update(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) error {
	updates["updatedAt"] = time.Now()

	_, err := r.collection.UpdateOne(
		ctx,
		bson.M{"_id": id},
		bson.M{"$set": updates},
	)
	if err != nil {
		return fmt.Errorf("failed to update slot: %w", err)
	}

	r.invalidate(ctx, id)

	return nil
}

func (r *slotRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete slot: %w", err)
	}
	if result.DeletedCount == 0 {
		return fmt.Errorf("slot not found")
	}

	r.invalidate(ctx, id)

	return nil
}

func (r *slotRepository) List(ctx context.Context) ([]*models.Slot, error) {
	return r.find(ctx, bson.M{})
}

func (r *slotRepository) GetByStationID(ctx context.Context, stationID string) ([]*models.Slot, error) {
	return r.find(ctx, bson.M{"stationId": stationID})
}

func (r *slotRepository) CountByStation(ctx context.Context, stationID string) (int64, error) {
	count, err := r.collection.CountDocuments(ctx, bson.M{"stationId": stationID})
	if err != nil {
		return 0, fmt.Errorf("failed to count slots: %w", err)
	}
	return count, nil
}

func (r *slotRepository) find(ctx context.Context, filter bson.M) ([]*models.Slot, error) {
	cursor, err := r.collection.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("failed to find slots: %w", err)
	}
	defer cursor.Close(ctx)

	var slots []*models.Slot
	for cursor.Next(ctx) {
		var slot models.Slot
		if err := cursor.Decode(&slot); err != nil {
			return nil, fmt.Errorf("failed to decode slot: %w", err)
		}
		slots = append(slots, &slot)
	}

	return slots, nil
}

func (r *slotRepository) invalidate(ctx context.Context, id primitive.ObjectID) {
	if r.cache == nil {
		return
	}

	// Cache entries are keyed by slot code, so look it up before deleting.
	var slot models.Slot
	if err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&slot); err == nil {
		r.cache.Delete(ctx, fmt.Sprintf("slot_code_%s", slot.SlotID))
	}
}
