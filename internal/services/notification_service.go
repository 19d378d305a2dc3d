package services

import (
	"context"
	"fmt"

	"parkpro/internal/models"
	"parkpro/internal/repositories/interfaces"
	"parkpro/internal/utils"
	"parkpro/pkg/logger"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type NotificationService struct {
	notificationRepo interfaces.NotificationRepository
	logger           *logger.Logger
}

func NewNotificationService(
	notificationRepo interfaces.NotificationRepository,
	logger *logger.Logger,
) *NotificationService {
	return &NotificationService{
		notificationRepo: notificationRepo,
		logger:           logger,
	}
}

// Notify writes an in-app notification. Failures are logged and swallowed;
// a missed notification never fails the operation that triggered it.
func (s *NotificationService) Notify(ctx context.Context, notification *models.Notification) {
	if err := s.notificationRepo.Create(ctx, notification); err != nil {
		s.logger.WithError(err).WithUserID(notification.UserID).Warn("Failed to create notification")
		return
	}

	s.logger.WithUserID(notification.UserID).WithFields(map[string]interface{}{
		"notification_type": notification.Type,
		"title":             notification.Title,
	}).Debug("Notification created")
}

func (s *NotificationService) NotifyBooking(ctx context.Context, userID, bookingID primitive.ObjectID, title, message string) {
	s.Notify(ctx, &models.Notification{
		UserID:     userID,
		Type:       models.NotificationTypeBooking,
		Title:      title,
		Message:    message,
		Action:     models.NotificationActionViewBooking,
		RelatedID:  &bookingID,
		RelatedRef: "SlotBooking",
		Priority:   models.NotificationPriorityHigh,
	})
}

func (s *NotificationService) NotifyPayment(ctx context.Context, userID primitive.ObjectID, title, message string) {
	s.Notify(ctx, &models.Notification{
		UserID:   userID,
		Type:     models.NotificationTypePayment,
		Title:    title,
		Message:  message,
		Action:   models.NotificationActionViewPayment,
		Priority: models.NotificationPriorityMedium,
	})
}

func (s *NotificationService) List(ctx context.Context, userID primitive.ObjectID, params *utils.PaginationParams) ([]*models.Notification, int64, error) {
	return s.notificationRepo.GetByUserID(ctx, userID, params)
}

func (s *NotificationService) UnreadCount(ctx context.Context, userID primitive.ObjectID) (int64, error) {
	return s.notificationRepo.GetUnreadCount(ctx, userID)
}

func (s *NotificationService) MarkRead(ctx context.Context, id, userID primitive.ObjectID) error {
	if err := s.notificationRepo.MarkAsRead(ctx, id, userID); err != nil {
		return fmt.Errorf("%w: notification %s", ErrNotFound, id.Hex())
	}
	return nil
}

func (s *NotificationService) MarkAllRead(ctx context.Context, userID primitive.ObjectID) (int64, error) {
	return s.notificationRepo.MarkAllAsRead(ctx, userID)
}

func (s *NotificationService) Delete(ctx context.Context, id, userID primitive.ObjectID) error {
	if err := s.notificationRepo.Delete(ctx, id, userID); err != nil {
		return fmt.Errorf("%w: notification %s", ErrNotFound, id.Hex())
	}
	return nil
}
