package routes

import (
	"net/http"

	"parkpro/internal/config"
	"parkpro/internal/handlers"
	"parkpro/internal/middleware"
	"parkpro/pkg/logger"

	"github.com/gin-gonic/gin"
)

type Handlers struct {
	Slot         *handlers.SlotHandler
	Booking      *handlers.BookingHandler
	Station      *handlers.StationHandler
	Notification *handlers.NotificationHandler
	Fastag       *handlers.FastagHandler
	Favorite     *handlers.FavoriteHandler
}

// SetupRouter builds the HTTP router with all API routes mounted under
// /api/v1.
func SetupRouter(cfg *config.Config, log *logger.Logger, h *Handlers) *gin.Engine {
	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.CORSMiddleware())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.RequestLogger(log))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"service": cfg.App.Name,
			"version": cfg.App.Version,
		})
	})

	api := router.Group("/api/v1")
	auth := middleware.AuthRequired(cfg.Security.JWTSecret)

	SetupSlotRoutes(api, h.Slot, h.Booking, auth)
	SetupBookingRoutes(api, h.Booking, auth)
	SetupStationRoutes(api, h.Station, h.Favorite, auth)
	SetupNotificationRoutes(api, h.Notification, auth)
	SetupFastagRoutes(api, h.Fastag, auth)

	return router
}
