package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type VehicleType string

const (
	VehicleTypeCar       VehicleType = "car"
	VehicleTypeBike      VehicleType = "bike"
	VehicleTypeEV        VehicleType = "ev"
	VehicleTypeLCV       VehicleType = "lcv"
	VehicleTypeBus       VehicleType = "bus"
	VehicleTypeThreeAxle VehicleType = "3axle"
	VehicleTypeFourAxle  VehicleType = "4axle"
	VehicleTypeHeavy     VehicleType = "heavy"
)

type FastTagStatus string

const (
	FastTagStatusActive   FastTagStatus = "active"
	FastTagStatusDisabled FastTagStatus = "disabled"
)

type FastTag struct {
	TagID   string        `json:"tag_id" bson:"tagId,omitempty"`
	Balance float64       `json:"balance" bson:"balance"`
	Status  FastTagStatus `json:"status" bson:"status" default:"active"`
}

type Vehicle struct {
	ID        primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	UserID    primitive.ObjectID `json:"user_id" bson:"userId" validate:"required"`
	Type      VehicleType        `json:"type" bson:"type" validate:"required"`
	Number    string             `json:"number" bson:"number" validate:"required"`
	IsPrimary bool               `json:"is_primary" bson:"isPrimary"`
	FastTag   FastTag            `json:"fast_tag" bson:"fastTag"`
	CreatedAt time.Time          `json:"created_at" bson:"createdAt"`
	UpdatedAt time.Time          `json:"updated_at" bson:"updatedAt"`
}
