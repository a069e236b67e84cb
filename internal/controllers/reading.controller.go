package controllers

import (
	"net/http"

	"strokesense/internal/models"
	"strokesense/internal/repository"

	"github.com/gin-gonic/gin"
)

type ReadingController struct {
	readingRepo repository.ReadingRepository
}

func NewReadingController(readingRepo repository.ReadingRepository) *ReadingController {
	return &ReadingController{readingRepo: readingRepo}
}

// CreateReading godoc
// @Summary Store a raw ECG capture for a user
// @Tags readings
// @Accept json
// @Produce json
// @Param request body models.ReadingRequest true "User id and raw samples"
// @Success 201 {object} map[string]interface{} "Reading stored"
// @Failure 400 {object} map[string]interface{} "Malformed body"
// @Router /readings [post]
func (rc *ReadingController) CreateReading(c *gin.Context) {
	var req models.ReadingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "Malformed request body",
			"error":   err.Error(),
		})
		return
	}

	if len(req.Samples) > models.MaxECGSamples {
		req.Samples = req.Samples[:models.MaxECGSamples]
	}

	reading := &models.ECGReading{
		UserID:  req.UserID,
		Samples: req.Samples,
	}
	if err := rc.readingRepo.SaveReading(c.Request.Context(), reading); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"status":  "success",
		"message": "Reading stored",
		"data": gin.H{
			"id":      reading.ID,
			"user_id": reading.UserID,
			"samples": len(reading.Samples),
		},
	})
}

// GetLatestReading godoc
// @Summary Get the most recent ECG capture for a user
// @Tags readings
// @Produce json
// @Param user_id path string true "User ID"
// @Success 200 {object} models.ECGReading "Latest reading"
// @Failure 404 {object} map[string]interface{} "No readings"
// @Router /readings/{user_id}/latest [get]
func (rc *ReadingController) GetLatestReading(c *gin.Context) {
	reading, err := rc.readingRepo.GetLatestReading(c.Request.Context(), c.Param("user_id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "success",
		"data":   reading,
	})
}
