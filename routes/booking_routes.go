package routes

import (
	"parkpro/internal/handlers"

	"github.com/gin-gonic/gin"
)

func SetupBookingRoutes(api *gin.RouterGroup, booking *handlers.BookingHandler, auth gin.HandlerFunc) {
	bookings := api.Group("/bookings", auth)
	{
		bookings.POST("/reserve", booking.ReserveBooking)
		bookings.GET("/:bookingId", booking.GetBooking)
		bookings.PUT("/:bookingId/cancel", booking.CancelBooking)
	}

	// Historical path kept for clients listing a user's booking history.
	api.GET("/slotbookings/:userId", auth, booking.GetUserBookings)

	payments := api.Group("/payments", auth)
	{
		payments.POST("/razorpay/verify", booking.VerifyRazorpayPayment)
		payments.POST("/verify", booking.VerifyPayment)
	}
}
