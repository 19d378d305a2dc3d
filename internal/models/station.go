package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type StationStatus string

const (
	StationStatusPending  StationStatus = "pending"
	StationStatusApproved StationStatus = "approved"
	StationStatusRejected StationStatus = "rejected"
)

// Default operating hours applied when a station has none configured.
const (
	DefaultOpenAt  = "10:00"
	DefaultCloseAt = "23:00"
)

type Station struct {
	ID               primitive.ObjectID  `json:"id" bson:"_id,omitempty"`
	StationID        string              `json:"station_id" bson:"stationId"`
	Name             string              `json:"name" bson:"name" validate:"required"`
	Address          string              `json:"address" bson:"address"`
	City             string              `json:"city" bson:"city"`
	OpenAt           string              `json:"open_at" bson:"openAt"`
	CloseAt          string              `json:"close_at" bson:"closeAt"`
	PublicVisibility bool                `json:"public_visibility" bson:"publicVisibility"`
	Status           StationStatus       `json:"status" bson:"status" default:"pending"`
	OwnerID          *primitive.ObjectID `json:"owner_id,omitempty" bson:"ownerId,omitempty"`
	ApprovedAt       *time.Time          `json:"approved_at,omitempty" bson:"approvedAt,omitempty"`
	CreatedAt        time.Time           `json:"created_at" bson:"createdAt"`
	UpdatedAt        time.Time           `json:"updated_at" bson:"updatedAt"`
}

// OperatingHours returns the station's open/close pair, falling back to the
// platform defaults when either side is unset.
func (s *Station) OperatingHours() (string, string) {
	openAt := s.OpenAt
	closeAt := s.CloseAt
	if openAt == "" {
		openAt = DefaultOpenAt
	}
	if closeAt == "" {
		closeAt = DefaultCloseAt
	}
	return openAt, closeAt
}
