package interfaces

import (
	"context"

	"parkpro/internal/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type SlotRepository interface {
	Create(ctx context.Context, slot *models.Slot) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Slot, error)
	GetBySlotCode(ctx context.Context, slotCode string) (*models.Slot, error)
	Update(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) error
	Delete(ctx context.Context, id primitive.ObjectID) error

	List(ctx context.Context) ([]*models.Slot, error)
	GetByStationID(ctx context.Context, stationID string) ([]*models.Slot, error)
	CountByStation(ctx context.Context, stationID string) (int64, error)
}
