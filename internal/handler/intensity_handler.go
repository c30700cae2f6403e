package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/crowdmap/crowd-heatmap/internal/models"
	"github.com/crowdmap/crowd-heatmap/internal/service"
	"github.com/crowdmap/crowd-heatmap/pkg/response"
)

// IntensityHandler handles crowd intensity requests
type IntensityHandler struct {
	service *service.IntensityService
}

// NewIntensityHandler creates a new intensity handler
func NewIntensityHandler(service *service.IntensityService) *IntensityHandler {
	return &IntensityHandler{service: service}
}

// Analyze handles POST /api/v1/intensity/analyze
func (h *IntensityHandler) Analyze(c *gin.Context) {
	var req models.CenterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	result, err := h.service.Analyze(c.Request.Context(), req.Point())
	if err != nil {
		respondServiceError(c, err)
		return
	}

	response.Success(c, result)
}
