package routes

import (
	controller "food-ordering-backend/controllers"

	"github.com/gin-gonic/gin"
)

func RestaurantRoutes(incomingRoutes *gin.Engine, ctrl *controller.RestaurantController) {
	incomingRoutes.GET("/restaurant/:restaurant_id", ctrl.GetRestaurant())
	incomingRoutes.GET("/restaurant/search/:city", ctrl.SearchRestaurants())
}
