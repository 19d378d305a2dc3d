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

type transactionRepository struct {
	collection *mongo.Collection
}

func NewTransactionRepository(db *mongo.Database) interfaces.TransactionRepository {
	return &transactionRepository{
		collection: db.Collection("fastagtransactions"),
	}
}

func (r *transactionRepository) Create(ctx context.Context, txn *models.FastagTransaction) error {
	txn.ID = primitive.NewObjectID()
	txn.CreatedAt = time.Now()
	txn.UpdatedAt = txn.CreatedAt
	if txn.Date.IsZero() {
		txn.Date = txn.CreatedAt
	}

	_, err := r.collection.InsertOne(ctx, txn)
	if err != nil {
		return fmt.Errorf("failed to create transaction: %w", err)
	}

	return nil
}

func (r *transactionRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.FastagTransaction, error) {
	var txn models.FastagTransaction
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&txn)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, fmt.Errorf("transaction not found")
		}
		return nil, fmt.Errorf("failed to get transaction: %w", err)
	}

	return &txn, nil
}

func (r *transactionRepository) GetPendingRecharge(ctx context.Context, txnID string, userID primitive.ObjectID) (*models.FastagTransaction, error) {
	var txn models.FastagTransaction
	err := r.collection.FindOne(ctx, bson.M{
		"txnId":  txnID,
		"userId": userID,
		"status": models.TransactionStatusPending,
		"type":   models.TransactionTypeRecharge,
	}).Decode(&txn)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, fmt.Errorf("pending transaction not found")
		}
		return nil, fmt.Errorf("failed to get pending transaction: %w", err)
	}

	return &txn, nil
}

func (r *transactionRepository) MarkCompleted(ctx context.Context, id primitive.ObjectID) error {
	return r.setStatus(ctx, id, models.TransactionStatusCompleted)
}

func (r *transactionRepository) MarkFailed(ctx context.Context, id primitive.ObjectID) error {
	return r.setStatus(ctx, id, models.TransactionStatusFailed)
}

func (r *transactionRepository) setStatus(ctx context.Context, id primitive.ObjectID, status models.TransactionStatus) error {
	result, err := r.collection.UpdateOne(
		ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"status": status, "updatedAt": time.Now()}},
	)
	if err != nil {
		return fmt.Errorf("failed to update transaction status: %w", err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("transaction not found")
	}

	return nil
}

func (r *transactionRepository) GetRecentByUser(ctx context.Context, userID primitive.ObjectID, limit int64) ([]*models.FastagTransaction, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "date", Value: -1}}).
		SetLimit(limit)

	cursor, err := r.collection.Find(ctx, bson.M{"userId": userID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find transactions: %w", err)
	}
	defer cursor.Close(ctx)

	var txns []*models.FastagTransaction
	for cursor.Next(ctx) {
		var txn models.FastagTransaction
		if err := cursor.Decode(&txn); err != nil {
			return nil, fmt.Errorf("failed to decode transaction: %w", err)
		}
		txns = append(txns, &txn)
	}

	return txns, nil
}
