package routes

import (
	controller "food-ordering-backend/controllers"

	"github.com/gin-gonic/gin"
)

func MyRestaurantRoutes(incomingRoutes *gin.Engine, ctrl *controller.MyRestaurantController, authenticate gin.HandlerFunc, parseUser gin.HandlerFunc) {
	incomingRoutes.GET("/my/restaurant", authenticate, parseUser, ctrl.GetMyRestaurant())
	incomingRoutes.POST("/my/restaurant", authenticate, parseUser, ctrl.CreateMyRestaurant())
	incomingRoutes.PUT("/my/restaurant", authenticate, parseUser, ctrl.UpdateMyRestaurant())
	incomingRoutes.GET("/my/restaurant/orders", authenticate, parseUser, ctrl.GetMyRestaurantOrders())
	incomingRoutes.PATCH("/my/restaurant/order/:order_id/status", authenticate, parseUser, ctrl.UpdateOrderStatus())
}
