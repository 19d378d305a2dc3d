package routes

import (
	"parkpro/internal/handlers"
	"parkpro/internal/middleware"

	"github.com/gin-gonic/gin"
)

func SetupSlotRoutes(api *gin.RouterGroup, slot *handlers.SlotHandler, booking *handlers.BookingHandler, auth gin.HandlerFunc) {
	slots := api.Group("/slots")
	{
		slots.GET("", slot.ListSlots)
		slots.GET("/:id", slot.GetSlot)
		slots.GET("/:id/availability", slot.GetSlotAvailability)
		slots.GET("/:id/bookings", booking.GetSlotBookings)

		slots.POST("/:id/bookings", auth, booking.CreateBooking)

		admin := slots.Group("", auth, middleware.StationAdminRequired())
		{
			admin.POST("", slot.CreateSlot)
			admin.PUT("/:id", slot.UpdateSlot)
			admin.DELETE("/:id", slot.DeleteSlot)
		}
	}
}
