package routes

import (
	"strokesense/internal/controllers"
	"strokesense/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterUserRoutes(router *gin.Engine, userController *controllers.UserController) {
	userRoutes := router.Group("/users")
	if middleware.AuthEnabled() {
		userRoutes.Use(middleware.AuthMiddleware())
	}
	{
		userRoutes.POST("", userController.CreateUser)
		userRoutes.GET("/:user_id", userController.GetUser)
	}
}
