package interfaces

import (
	"context"

	"parkpro/internal/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type FavoriteRepository interface {
	Add(ctx context.Context, userID, stationID primitive.ObjectID) error
	Remove(ctx context.Context, userID, stationID primitive.ObjectID) error
	GetByUserID(ctx context.Context, userID primitive.ObjectID) ([]*models.Favorite, error)
	Exists(ctx context.Context, userID, stationID primitive.ObjectID) (bool, error)
}
