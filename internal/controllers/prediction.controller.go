package controllers

import (
	"log"
	"net/http"
	"time"

	"strokesense/internal/cache"
	"strokesense/internal/models"
	"strokesense/internal/repository"
	"strokesense/internal/services"

	"github.com/gin-gonic/gin"
)

const latestResultTTL = 15 * time.Minute

type PredictionController struct {
	orchestrator   *services.Orchestrator
	userRepo       repository.UserAttributesRepository
	predictionRepo repository.PredictionRepository
	resultCache    *cache.RedisClient
}

// NewPredictionController wires the prediction endpoints. resultCache may
// be nil; the latest-result endpoint then always hits the database.
func NewPredictionController(
	orchestrator *services.Orchestrator,
	userRepo repository.UserAttributesRepository,
	predictionRepo repository.PredictionRepository,
	resultCache *cache.RedisClient,
) *PredictionController {
	return &PredictionController{
		orchestrator:   orchestrator,
		userRepo:       userRepo,
		predictionRepo: predictionRepo,
		resultCache:    resultCache,
	}
}

// MakePrediction godoc
// @Summary Run a combined heart-disease / stroke-risk prediction
// @Description Validates the demographic payload, runs the inference workflow on the user's stored ECG reading, persists and returns the result
// @Tags prediction
// @Accept json
// @Produce json
// @Param request body models.PredictionRequest true "User id and demographic attributes"
// @Success 200 {object} models.PredictionResponse "Prediction result"
// @Failure 400 {object} map[string]interface{} "Validation failure, one detail per violated field"
// @Failure 404 {object} map[string]interface{} "No ECG reading for the user"
// @Failure 504 {object} map[string]interface{} "Store timeout"
// @Router /prediction [post]
func (pc *PredictionController) MakePrediction(c *gin.Context) {
	var req models.PredictionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "Malformed request body",
			"error":   err.Error(),
		})
		return
	}

	if err := req.Validate(); err != nil {
		respondError(c, err)
		return
	}

	pc.runPrediction(c, req.UserID, req.Attributes())
}

// PredictForUser godoc
// @Summary Run a prediction using the user's stored demographic attributes
// @Description Fetches the demographic snapshot from the store, then runs the same inference workflow
// @Tags prediction
// @Produce json
// @Param user_id path string true "User ID"
// @Success 200 {object} models.PredictionResponse "Prediction result"
// @Failure 400 {object} map[string]interface{} "Stored attributes fail validation"
// @Failure 404 {object} map[string]interface{} "No user record or no ECG reading"
// @Router /prediction/{user_id} [get]
func (pc *PredictionController) PredictForUser(c *gin.Context) {
	userID := c.Param("user_id")

	attrs, err := pc.userRepo.GetByUserID(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	if err := models.ValidateAttributes(attrs); err != nil {
		respondError(c, err)
		return
	}

	pc.runPrediction(c, userID, attrs)
}

func (pc *PredictionController) runPrediction(c *gin.Context, userID string, attrs *models.UserAttributes) {
	outcome, err := pc.orchestrator.Predict(c.Request.Context(), userID, attrs)
	if err != nil {
		respondError(c, err)
		return
	}

	if pc.resultCache != nil {
		if err := pc.resultCache.StoreLatestResult(userID, outcome.Prediction, latestResultTTL); err != nil {
			log.Printf("Failed to cache latest result for user %s: %v", userID, err)
		}
	}

	response := outcome.Prediction.Response()
	if outcome.PersistenceErr != nil {
		// The computed result is still authoritative; the client learns the
		// save failed rather than losing the prediction.
		c.JSON(http.StatusOK, gin.H{
			"predictedStrokeProba":   response.PredictedStrokeProba,
			"predictedHeartDisease":  response.PredictedHeartDisease,
			"medicalAttentionNeeded": response.MedicalAttentionNeeded,
			"warning":                "prediction computed but not persisted",
		})
		return
	}

	c.JSON(http.StatusOK, response)
}

// GetLatestPrediction godoc
// @Summary Get the most recent persisted prediction for a user
// @Tags prediction
// @Produce json
// @Param user_id path string true "User ID"
// @Success 200 {object} models.PredictionResponse "Latest prediction"
// @Failure 404 {object} map[string]interface{} "No prediction recorded"
// @Router /prediction/{user_id}/latest [get]
func (pc *PredictionController) GetLatestPrediction(c *gin.Context) {
	userID := c.Param("user_id")

	if pc.resultCache != nil {
		cached, err := pc.resultCache.GetLatestResult(userID)
		if err != nil {
			log.Printf("Result cache lookup failed for user %s: %v", userID, err)
		} else if cached != nil {
			c.JSON(http.StatusOK, cached.Response())
			return
		}
	}

	prediction, err := pc.predictionRepo.GetLatestByUserID(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, prediction.Response())
}

// HealthCheck godoc
// @Summary Model registry readiness probe
// @Tags prediction
// @Produce json
// @Success 200 {object} map[string]interface{} "Registry is loaded"
// @Router /prediction/health [get]
func (pc *PredictionController) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "success",
		"message":   "Model registry is loaded",
		"timestamp": time.Now(),
	})
}
