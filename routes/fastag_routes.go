package routes

import (
	"parkpro/internal/handlers"

	"github.com/gin-gonic/gin"
)

func SetupFastagRoutes(api *gin.RouterGroup, fastag *handlers.FastagHandler, auth gin.HandlerFunc) {
	group := api.Group("/fastag", auth)
	{
		group.POST("/recharge", fastag.Recharge)
		group.POST("/recharge/razorpay/confirm", fastag.ConfirmRazorpayRecharge)
		group.POST("/recharge/upi/confirm", fastag.ConfirmUpiRecharge)
		group.GET("/balance", fastag.GetBalance)
		group.GET("/transactions", fastag.GetHistory)
	}
}
