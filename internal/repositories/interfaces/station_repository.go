package interfaces

import (
	"context"

	"parkpro/internal/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type StationRepository interface {
	Create(ctx context.Context, station *models.Station) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Station, error)
	GetByStationCode(ctx context.Context, code string) (*models.Station, error)

	// Resolve looks a station up by its short code first and falls back to
	// treating the value as a hex _id. Slot documents historically store
	// either form in their stationId field.
	Resolve(ctx context.Context, idOrCode string) (*models.Station, error)

	Update(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) error
	UpdateOperatingHours(ctx context.Context, id primitive.ObjectID, openAt, closeAt string) error
	List(ctx context.Context) ([]*models.Station, error)
}
