package handler

import (
	"context"
	"net/http"

	"github.com/developer-overheid-nl/bottles-api/pkg/webservice/helpers/problem"
	"github.com/developer-overheid-nl/bottles-api/pkg/webservice/models"
	"github.com/gin-gonic/gin"
)

type HealthChecker interface {
	Health(ctx context.Context) models.Health
}

type HealthController struct {
	checker HealthChecker
}

func NewHealthController(checker HealthChecker) *HealthController {
	return &HealthController{checker: checker}
}

// Health handles GET /health
func (h *HealthController) Health(ctx *gin.Context) (*models.Health, error) {
	health := h.checker.Health(ctx.Request.Context())
	if health.Status != "ok" {
		return nil, problem.APIError{
			Title:  "Service Unavailable",
			Status: http.StatusServiceUnavailable,
			Detail: health.Database,
		}
	}
	return &health, nil
}
