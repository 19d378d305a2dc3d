package interfaces

import (
	"context"

	"parkpro/internal/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	Update(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) error

	// CreditWallet atomically adds amount to the user's wallet balance and
	// returns the new balance.
	CreditWallet(ctx context.Context, id primitive.ObjectID, amount float64) (float64, error)
}
