package controllers

import (
	"errors"
	"net/http"

	"strokesense/internal/errs"

	"github.com/gin-gonic/gin"
)

// respondError maps the error taxonomy onto HTTP statuses. Every taxonomy
// class gets a distinct, documented response shape; nothing is swallowed.
func respondError(c *gin.Context, err error) {
	var validationErr *errs.ValidationError
	if errors.As(err, &validationErr) {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":     "error",
			"message":    "Invalid request",
			"violations": validationErr.Violations,
		})
		return
	}

	var notFoundErr *errs.NotFoundError
	if errors.As(err, &notFoundErr) {
		c.JSON(http.StatusNotFound, gin.H{
			"status":  "error",
			"message": notFoundErr.Error(),
		})
		return
	}

	var timeoutErr *errs.TimeoutError
	if errors.As(err, &timeoutErr) {
		c.JSON(http.StatusGatewayTimeout, gin.H{
			"status":  "error",
			"message": "Store operation timed out",
			"error":   timeoutErr.Error(),
		})
		return
	}

	var upstreamErr *errs.TransientUpstreamError
	if errors.As(err, &upstreamErr) {
		c.JSON(http.StatusBadGateway, gin.H{
			"status":  "error",
			"message": "Upstream store error",
			"error":   upstreamErr.Error(),
		})
		return
	}

	c.JSON(http.StatusInternalServerError, gin.H{
		"status":  "error",
		"message": "Prediction failed",
		"error":   err.Error(),
	})
}
