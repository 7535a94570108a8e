package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/pollwise/survey-intake-api/internal/models"
	"github.com/pollwise/survey-intake-api/internal/service"
	"github.com/pollwise/survey-intake-api/pkg/response"
)

type submissionSubmitter interface {
	Submit(ctx context.Context, raw map[string]any, clientIP string) (*models.StoredSurveyRecord, []models.FieldError, error)
}

// SurveyHandler exposes the survey intake endpoints.
type SurveyHandler struct {
	submissions submissionSubmitter
	metrics     *service.MetricsService
}

// NewSurveyHandler constructs SurveyHandler.
func NewSurveyHandler(submissions submissionSubmitter, metrics *service.MetricsService) *SurveyHandler {
	return &SurveyHandler{submissions: submissions, metrics: metrics}
}

// Ping godoc
// @Summary Health check
// @Tags System
// @Produce json
// @Success 200 {object} map[string]string
// @Router /ping [get]
func (h *SurveyHandler) Ping(c *gin.Context) {
	response.Ping(c, "API is alive", time.Now())
}

// Submit godoc
// @Summary Submit a survey response
// @Tags Survey
// @Accept json
// @Produce json
// @Param payload body models.SurveySubmission true "Survey payload"
// @Success 201 {object} map[string]string
// @Failure 400 {object} map[string]string
// @Failure 422 {object} map[string]interface{}
// @Router /v1/survey [post]
func (h *SurveyHandler) Submit(c *gin.Context) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil || len(bytes.TrimSpace(body)) == 0 {
		h.metrics.RecordSubmission("invalid_json")
		response.InvalidJSON(c, "body must be application/json")
		return
	}

	var raw map[string]any
	if err := json.Unmarshal(body, &raw); err != nil {
		h.metrics.RecordSubmission("invalid_json")
		response.InvalidJSON(c, "body must be a JSON object")
		return
	}

	record, fieldErrs, err := h.submissions.Submit(c.Request.Context(), raw, clientAddr(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	if len(fieldErrs) > 0 {
		response.ValidationFailed(c, fieldErrs)
		return
	}

	response.Created(c, record.SubmissionID)
}

// clientAddr resolves the client address best-effort: the first
// X-Forwarded-For entry when present, else the transport peer, else "".
func clientAddr(c *gin.Context) string {
	if fwd := c.GetHeader("X-Forwarded-For"); fwd != "" {
		first := strings.TrimSpace(strings.Split(fwd, ",")[0])
		if first != "" {
			return first
		}
	}
	if host, _, err := net.SplitHostPort(c.Request.RemoteAddr); err == nil && host != "" {
		return host
	}
	return strings.TrimSpace(c.Request.RemoteAddr)
}
