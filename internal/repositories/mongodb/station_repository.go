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

type stationRepository struct {
	collection *mongo.Collection
	cache      CacheService
}

func NewStationRepository(db *mongo.Database, cache CacheService) interfaces.StationRepository {
	return &stationRepository{
		collection: db.Collection("stations"),
		cache:      cache,
	}
}

func (r *stationRepository) Create(ctx context.Context, station *models.Station) error {
	station.ID = primitive.NewObjectID()
	station.CreatedAt = time.Now()
	station.UpdatedAt = station.CreatedAt

	_, err := r.collection.InsertOne(ctx, station)
	if err != nil {
		return fmt.Errorf("failed to create station: %w", err)
	}

	return nil
}

func (r *stationRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Station, error) {
	cacheKey := fmt.Sprintf("station_%s", id.Hex())
	if r.cache != nil {
		var station models.Station
		if err := r.cache.Get(ctx, cacheKey, &station); err == nil {
			return &station, nil
		}
	}

	var station models.Station
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&station)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, fmt.Errorf("station not found")
		}
		return nil, fmt.Errorf("failed to get station: %w", err)
	}

	if r.cache != nil {
		r.cache.Set(ctx, cacheKey, station, 15*time.Minute)
	}

	return &station, nil
}

func (r *stationRepository) GetByStationCode(ctx context.Context, code string) (*models.Station, error) {
	var station models.Station
	err := r.collection.FindOne(ctx, bson.M{"stationId": code}).Decode(&station)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, fmt.Errorf("station not found")
		}
		return nil, fmt.Errorf("failed to get station by code: %w", err)
	}

	return &station, nil
}

// Resolve is the compatibility shim for the two identifier forms found in
// historical slot documents: the short station code and the raw hex _id.
// Code lookup wins; the _id form is only tried when that misses.
func (r *stationRepository) Resolve(ctx context.Context, idOrCode string) (*models.Station, error) {
	station, err := r.GetByStationCode(ctx, idOrCode)
	if err == nil {
		return station, nil
	}

	id, idErr := primitive.ObjectIDFromHex(idOrCode)
	if idErr != nil {
		return nil, fmt.Errorf("station not found")
	}

	return r.GetByID(ctx, id)
}

func (r *stationRepository) Update(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) error {
	updates["updatedAt"] = time.Now()

	_, err := r.collection.UpdateOne(
		ctx,
		bson.M{"_id": id},
		bson.M{"$set": updates},
	)
	if err != nil {
		return fmt.Errorf("failed to update station: %w", err)
	}

	if r.cache != nil {
		r.cache.Delete(ctx, fmt.Sprintf("station_%s", id.Hex()))
	}

	return nil
}

func (r *stationRepository) UpdateOperatingHours(ctx context.Context, id primitive.ObjectID, openAt, closeAt string) error {
	return r.Update(ctx, id, map[string]interface{}{
		"openAt":  openAt,
		"closeAt": closeAt,
	})
}

func (r *stationRepository) List(ctx context.Context) ([]*models.Station, error) {
	cursor, err := r.collection.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("failed to find stations: %w", err)
	}
	defer cursor.Close(ctx)

	var stations []*models.Station
	for cursor.Next(ctx) {
		var station models.Station
		if err := cursor.Decode(&station); err != nil {
			return nil, fmt.Errorf("failed to decode station: %w", err)
		}
		stations = append(stations, &station)
	}

	return stations, nil
}
