package routes

import (
	"strokesense/internal/controllers"
	"strokesense/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterPredictionRoutes(router *gin.Engine, predictionController *controllers.PredictionController) {
	predictionRoutes := router.Group("/prediction")
	predictionRoutes.GET("/health", predictionController.HealthCheck)
	if middleware.AuthEnabled() {
		predictionRoutes.Use(middleware.AuthMiddleware())
	}
	{
		predictionRoutes.POST("", predictionController.MakePrediction)
		predictionRoutes.GET("/:user_id", predictionController.PredictForUser)
		predictionRoutes.GET("/:user_id/latest", predictionController.GetLatestPrediction)
	}
}
