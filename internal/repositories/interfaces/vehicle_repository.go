package interfaces

import (
	"context"

	"parkpro/internal/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type VehicleRepository interface {
	Create(ctx context.Context, vehicle *models.Vehicle) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Vehicle, error)
	GetByUserID(ctx context.Context, userID primitive.ObjectID) ([]*models.Vehicle, error)
	GetFirstByUserID(ctx context.Context, userID primitive.ObjectID) (*models.Vehicle, error)
	GetByUserAndNumber(ctx context.Context, userID primitive.ObjectID, number string) (*models.Vehicle, error)
	Update(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) error
}
