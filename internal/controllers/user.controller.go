package controllers

import (
	"net/http"

	"strokesense/internal/models"
	"strokesense/internal/repository"

	"github.com/gin-gonic/gin"
)

type UserController struct {
	userRepo repository.UserAttributesRepository
}

func NewUserController(userRepo repository.UserAttributesRepository) *UserController {
	return &UserController{userRepo: userRepo}
}

// CreateUser godoc
// @Summary Register or replace a user's demographic attributes
// @Description Upserts the demographic snapshot keyed by user id
// @Tags users
// @Accept json
// @Produce json
// @Param request body models.PredictionRequest true "User id and demographic attributes"
// @Success 201 {object} models.UserAttributes "Stored attributes"
// @Failure 400 {object} map[string]interface{} "Validation failure"
// @Router /users [post]
func (uc *UserController) CreateUser(c *gin.Context) {
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

	attrs := req.Attributes()
	if err := uc.userRepo.SaveAttributes(c.Request.Context(), attrs); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"status":  "success",
		"message": "User attributes saved",
		"data":    attrs,
	})
}

// GetUser godoc
// @Summary Get a user's demographic attributes
// @Tags users
// @Produce json
// @Param user_id path string true "User ID"
// @Success 200 {object} models.UserAttributes "Stored attributes"
// @Failure 404 {object} map[string]interface{} "No user record"
// @Router /users/{user_id} [get]
func (uc *UserController) GetUser(c *gin.Context) {
	attrs, err := uc.userRepo.GetByUserID(c.Request.Context(), c.Param("user_id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "success",
		"data":   attrs,
	})
}
