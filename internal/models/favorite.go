package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Favorite links a user to a starred station. The (userId, stationId)
// pair carries a unique index.
type Favorite struct {
	ID        primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	UserID    primitive.ObjectID `json:"user_id" bson:"userId"`
	StationID primitive.ObjectID `json:"station_id" bson:"stationId"`
	CreatedAt time.Time          `json:"created_at" bson:"createdAt"`
}
