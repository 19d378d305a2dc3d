package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type NotificationType string

const (
	NotificationTypeBooking   NotificationType = "booking"
	NotificationTypePromotion NotificationType = "promotion"
	NotificationTypeReminder  NotificationType = "reminder"
	NotificationTypePayment   NotificationType = "payment"
	NotificationTypeSystem    NotificationType = "system"
	NotificationTypeSecurity  NotificationType = "security"
)

type NotificationAction string

const (
	NotificationActionViewBooking NotificationAction = "view_booking"
	NotificationActionViewOffer   NotificationAction = "view_offer"
	NotificationActionViewPayment NotificationAction = "view_payment"
	NotificationActionViewProfile NotificationAction = "view_profile"
	NotificationActionNone        NotificationAction = "none"
)

type NotificationPriority string

const (
	NotificationPriorityLow    NotificationPriority = "low"
	NotificationPriorityMedium NotificationPriority = "medium"
	NotificationPriorityHigh   NotificationPriority = "high"
)

// NotificationTTL is how long a notification stays visible before the
// TTL index reaps it.
const NotificationTTL = 30 * 24 * time.Hour

type Notification struct {
	ID         primitive.ObjectID   `json:"id" bson:"_id,omitempty"`
	UserID     primitive.ObjectID   `json:"user_id" bson:"userId"`
	Type       NotificationType     `json:"type" bson:"type" validate:"required"`
	Title      string               `json:"title" bson:"title" validate:"required"`
	Message    string               `json:"message" bson:"message" validate:"required"`
	IsRead     bool                 `json:"is_read" bson:"isRead"`
	Action     NotificationAction   `json:"action" bson:"action" default:"none"`
	RelatedID  *primitive.ObjectID  `json:"related_id,omitempty" bson:"relatedId,omitempty"`
	RelatedRef string               `json:"related_model,omitempty" bson:"relatedModel,omitempty"`
	Priority   NotificationPriority `json:"priority" bson:"priority" default:"medium"`
	ExpiresAt  time.Time            `json:"expires_at" bson:"expiresAt"`
	CreatedAt  time.Time            `json:"created_at" bson:"createdAt"`
	UpdatedAt  time.Time            `json:"updated_at" bson:"updatedAt"`
}
