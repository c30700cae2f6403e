package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/crowdmap/crowd-heatmap/internal/models"
	"github.com/crowdmap/crowd-heatmap/internal/service"
	"github.com/crowdmap/crowd-heatmap/pkg/response"
)

// PlaceHandler handles location search and popular places
type PlaceHandler struct {
	service *service.PlaceService
}

// NewPlaceHandler creates a new place handler
func NewPlaceHandler(service *service.PlaceService) *PlaceHandler {
	return &PlaceHandler{service: service}
}

// Search handles POST /api/v1/locations/search
func (h *PlaceHandler) Search(c *gin.Context) {
	var req models.PlaceSearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	places, err := h.service.Search(c.Request.Context(), req.Query)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	response.Success(c, gin.H{
		"results": places,
		"count":   len(places),
	})
}

// Popular handles POST /api/v1/places/popular
func (h *PlaceHandler) Popular(c *gin.Context) {
	var req models.CenterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	result, err := h.service.Popular(c.Request.Context(), req.Point())
	if err != nil {
		respondServiceError(c, err)
		return
	}

	response.Success(c, result)
}
