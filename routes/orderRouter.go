package routes

import (
	controller "food-ordering-backend/controllers"

	"github.com/gin-gonic/gin"
)

func OrderRoutes(incomingRoutes *gin.Engine, ctrl *controller.OrderController, notifier *controller.Notifier, authenticate gin.HandlerFunc, parseUser gin.HandlerFunc) {
	incomingRoutes.GET("/order", authenticate, parseUser, ctrl.GetMyOrders())
	incomingRoutes.POST("/order/checkout/create-checkout-session", authenticate, parseUser, ctrl.CreateCheckoutSession())
	// the webhook is authenticated by its signature, not a bearer token
	incomingRoutes.POST("/order/checkout/webhook", ctrl.StripeWebhookHandler())
	incomingRoutes.GET("/ws", notifier.HandleWebSocket())
}
