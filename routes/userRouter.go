package routes

import (
	controller "food-ordering-backend/controllers"

	"github.com/gin-gonic/gin"
)

func UserRoutes(incomingRoutes *gin.Engine, ctrl *controller.UserController, authenticate gin.HandlerFunc, parseUser gin.HandlerFunc) {
	incomingRoutes.GET("/my/user", authenticate, parseUser, ctrl.GetCurrentUser())
	incomingRoutes.POST("/my/user", authenticate, ctrl.CreateCurrentUser())
	incomingRoutes.PUT("/my/user", authenticate, parseUser, ctrl.UpdateCurrentUser())
}
