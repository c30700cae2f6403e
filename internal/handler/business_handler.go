package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/crowdmap/crowd-heatmap/internal/models"
	"github.com/crowdmap/crowd-heatmap/internal/service"
	"github.com/crowdmap/crowd-heatmap/pkg/response"
)

// BusinessHandler handles HTTP requests for business profiles
type BusinessHandler struct {
	service *service.BusinessService
}

// NewBusinessHandler creates a new business profile handler
func NewBusinessHandler(service *service.BusinessService) *BusinessHandler {
	return &BusinessHandler{service: service}
}

// Submit handles POST /api/v1/businesses
// Accepts JSON or form-encoded bodies.
func (h *BusinessHandler) Submit(c *gin.Context) {
	var in models.BusinessProfileInput
	if err := c.ShouldBind(&in); err != nil {
		respondBindError(c, err)
		return
	}

	profile, err := h.service.Submit(c.Request.Context(), in)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	response.Created(c, "Form submitted successfully!", profile)
}

// List handles GET /api/v1/admin/businesses
func (h *BusinessHandler) List(c *gin.Context) {
	var filter models.BusinessProfileFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	result, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	response.Success(c, result)
}

// Get handles GET /api/v1/admin/businesses/:id
func (h *BusinessHandler) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	profile, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	response.Success(c, profile)
}

// Delete handles DELETE /api/v1/admin/businesses/:id
func (h *BusinessHandler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		respondServiceError(c, err)
		return
	}

	response.Success(c, gin.H{"id": id})
}

// Summary handles GET /api/v1/admin/businesses/summary
func (h *BusinessHandler) Summary(c *gin.Context) {
	summary, err := h.service.Summary(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}

	response.Success(c, summary)
}

func parseID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id < 1 {
		response.BadRequest(c, "Invalid business profile ID")
		return 0, false
	}
	return id, true
}
