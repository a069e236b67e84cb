package routes

import (
	"strokesense/internal/controllers"
	"strokesense/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterReadingRoutes(router *gin.Engine, readingController *controllers.ReadingController) {
	readingRoutes := router.Group("/readings")
	if middleware.AuthEnabled() {
		readingRoutes.Use(middleware.AuthMiddleware())
	}
	{
		readingRoutes.POST("", readingController.CreateReading)
		readingRoutes.GET("/:user_id/latest", readingController.GetLatestReading)
	}
}
