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

type favoriteRepository struct {
	collection *mongo.Collection
}

func NewFavoriteRepository(db *mongo.Database) interfaces.FavoriteRepository {
	return &favoriteRepository{
		collection: db.Collection("favorites"),
	}
}

func (r *favoriteRepository) Add(ctx context.Context, userID, stationID primitive.ObjectID) error {
	favorite := models.Favorite{
		ID:        primitive.NewObjectID(),
		UserID:    userID,
		StationID: stationID,
		CreatedAt: time.Now(),
	}

	_, err := r.collection.InsertOne(ctx, favorite)
	if err != nil {
		// The unique (userId, stationId) index turns a double-add into a
		// duplicate key error.
		if mongo.IsDuplicateKeyError(err) {
			return fmt.Errorf("station already in favorites")
		}
		return fmt.Errorf("failed to add favorite: %w", err)
	}

	return nil
}

func (r *favoriteRepository) Remove(ctx context.Context, userID, stationID primitive.ObjectID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"userId": userID, "stationId": stationID})
	if err != nil {
		return fmt.Errorf("failed to remove favorite: %w", err)
	}
	if result.DeletedCount == 0 {
		return fmt.Errorf("favorite not found")
	}

	return nil
}

func (r *favoriteRepository) GetByUserID(ctx context.Context, userID primitive.ObjectID) ([]*models.Favorite, error) {
	cursor, err := r.collection.Find(ctx, bson.M{"userId": userID}, options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("failed to find favorites: %w", err)
	}
	defer cursor.Close(ctx)

	var favorites []*models.Favorite
	for cursor.Next(ctx) {
		var favorite models.Favorite
		if err := cursor.Decode(&favorite); err != nil {
			return nil, fmt.Errorf("failed to decode favorite: %w", err)
		}
		favorites = append(favorites, &favorite)
	}

	return favorites, nil
}

func (r *favoriteRepository) Exists(ctx context.Context, userID, stationID primitive.ObjectID) (bool, error) {
	count, err := r.collection.CountDocuments(ctx, bson.M{"userId": userID, "stationId": stationID})
	if err != nil {
		return false, fmt.Errorf("failed to check favorite: %w", err)
	}

	return count > 0, nil
}
