package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type UserRole string

const (
	UserRoleUser         UserRole = "user"
	UserRoleStationAdmin UserRole = "station_admin"
	UserRoleAdmin        UserRole = "admin"
)

type User struct {
	ID            primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Name          string             `json:"name" bson:"name" validate:"required"`
	Email         string             `json:"email" bson:"email" validate:"required,email"`
	Password      string             `json:"-" bson:"password"`
	Phone         string             `json:"phone,omitempty" bson:"phone,omitempty"`
	Role          UserRole           `json:"role" bson:"role" default:"user"`
	WalletBalance float64            `json:"wallet_balance" bson:"walletBalance"`
	FastagID      string             `json:"fastag_id,omitempty" bson:"fastagId,omitempty"`
	CreatedAt     time.Time          `json:"created_at" bson:"createdAt"`
	UpdatedAt     time.Time          `json:"updated_at" bson:"updatedAt"`
}
