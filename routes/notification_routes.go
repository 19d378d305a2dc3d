package routes

import (
	"parkpro/internal/handlers"

	"github.com/gin-gonic/gin"
)

func SetupNotificationRoutes(api *gin.RouterGroup, notification *handlers.NotificationHandler, auth gin.HandlerFunc) {
	notifications := api.Group("/notifications", auth)
	{
		notifications.GET("", notification.ListNotifications)
		notifications.GET("/unread-count", notification.GetUnreadCount)
		notifications.PUT("/read-all", notification.MarkAllAsRead)
		notifications.PUT("/:id/read", notification.MarkAsRead)
		notifications.DELETE("/:id", notification.DeleteNotification)
	}
}
