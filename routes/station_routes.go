package routes

import (
	"parkpro/internal/handlers"
	"parkpro/internal/middleware"

	"github.com/gin-gonic/gin"
)

func SetupStationRoutes(api *gin.RouterGroup, station *handlers.StationHandler, favorite *handlers.FavoriteHandler, auth gin.HandlerFunc) {
	stations := api.Group("/stations")
	{
		stations.GET("", station.ListStations)
		stations.GET("/:id", station.GetStation)
		stations.GET("/:id/availability", station.GetStationAvailability)
		stations.GET("/:id/operating-hours", station.GetOperatingHours)

		stations.POST("/:id/favorite", auth, favorite.AddFavorite)
		stations.DELETE("/:id/favorite", auth, favorite.RemoveFavorite)

		admin := stations.Group("", auth, middleware.StationAdminRequired())
		{
			admin.PUT("/:id/operating-hours", station.SetOperatingHours)
			admin.GET("/:id/dashboard-stats", station.GetDashboardStats)
			admin.GET("/:id/recent-bookings", station.GetRecentBookings)
		}
	}

	api.GET("/favorites", auth, favorite.ListFavorites)
}
