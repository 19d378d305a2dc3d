package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type SlotStatus string

const (
	SlotStatusEnabled  SlotStatus = "Enabled"
	SlotStatusDisabled SlotStatus = "Disabled"
)

// SlotAvailability is the coarse administrative flag on a slot. It is
// independent of time-windowed bookings: a Free slot can still be fully
// booked for specific hours.
type SlotAvailability string

const (
	SlotAvailabilityFree     SlotAvailability = "Free"
	SlotAvailabilityOccupied SlotAvailability = "Occupied"
)

type Slot struct {
	ID   primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	// SlotID is the short display code in the form slXXX, unique across stations.
	SlotID string `json:"slot_id" bson:"slotId"`
	// StationID may hold either the station's short code or its hex _id;
	// historical data contains both. Resolve through StationRepository.Resolve.
	StationID    string           `json:"station_id" bson:"stationId" validate:"required"`
	Type         string           `json:"type" bson:"type" validate:"required"`
	Price        float64          `json:"price" bson:"price"`
	Status       SlotStatus       `json:"status" bson:"status" default:"Enabled"`
	Availability SlotAvailability `json:"availability" bson:"availability" default:"Free"`
	Images       []string         `json:"images" bson:"images"`
	CreatedAt    time.Time        `json:"created_at" bson:"createdAt"`
	UpdatedAt    time.Time        `json:"updated_at" bson:"updatedAt"`
}
