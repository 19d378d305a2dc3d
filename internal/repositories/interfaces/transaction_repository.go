package interfaces

import (
	"context"

	"parkpro/internal/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type TransactionRepository interface {
	Create(ctx context.Context, txn *models.FastagTransaction) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.FastagTransaction, error)

	// GetPendingRecharge finds the user's pending recharge with the given
	// txn id. Confirmation paths require this pre-state; a completed
	// transaction is no longer found, which is what makes them idempotent.
	GetPendingRecharge(ctx context.Context, txnID string, userID primitive.ObjectID) (*models.FastagTransaction, error)

	MarkCompleted(ctx context.Context, id primitive.ObjectID) error
	MarkFailed(ctx context.Context, id primitive.ObjectID) error
	GetRecentByUser(ctx context.Context, userID primitive.ObjectID, limit int64) ([]*models.FastagTransaction, error)
}
