package response

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/pollwise/survey-intake-api/internal/models"
	appErrors "github.com/pollwise/survey-intake-api/pkg/errors"
)

// Ping sends the health-check body with the current UTC time.
func Ping(c *gin.Context, message string, now time.Time) {
	c.JSON(http.StatusOK, gin.H{
		"status":   "ok",
		"message":  message,
		"utc_time": now.UTC().Format(time.RFC3339),
	})
}

// Created acknowledges an accepted submission with its effective identifier.
func Created(c *gin.Context, submissionID string) {
	c.JSON(http.StatusCreated, gin.H{
		"status":        "ok",
		"submission_id": submissionID,
	})
}

// InvalidJSON reports an unparseable request body.
func InvalidJSON(c *gin.Context, detail string) {
	c.JSON(http.StatusBadRequest, gin.H{
		"error":  appErrors.ErrInvalidJSON.Code,
		"detail": detail,
	})
}

// ValidationFailed reports every failed field constraint at once.
func ValidationFailed(c *gin.Context, fieldErrors []models.FieldError) {
	c.JSON(http.StatusUnprocessableEntity, gin.H{
		"error":  appErrors.ErrValidation.Code,
		"detail": fieldErrors,
	})
}

// Error sends an error response converting the error to the common structure.
func Error(c *gin.Context, err error) {
	appErr := appErrors.FromError(err)
	c.JSON(appErr.Status, gin.H{
		"error":  appErr.Code,
		"detail": appErr.Message,
	})
}
