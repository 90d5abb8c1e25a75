package api

import (
	"net/http"
	"strconv"

	"github.com/business-directory-api/internal/models"
	"github.com/business-directory-api/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// BusinessHandler handles business listing endpoints
type BusinessHandler struct {
	services *service.Services
	log      zerolog.Logger
}

// NewBusinessHandler creates a new business handler
func NewBusinessHandler(services *service.Services, log zerolog.Logger) *BusinessHandler {
	return &BusinessHandler{
		services: services,
		log:      log.With().Str("handler", "business").Logger(),
	}
}

// List handles GET /v1/businesses
func (h *BusinessHandler) List(c *gin.Context) {
	var filter models.BusinessFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid query parameters"})
		return
	}

	page, err := h.services.Business.List(c.Request.Context(), &filter)
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to list businesses")
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, page)
}

// Random handles GET /v1/businesses/random
func (h *BusinessHandler) Random(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "0"))

	rows, err := h.services.Business.Random(c.Request.Context(), limit)
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to get random businesses")
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"rows": rows})
}

// Featured handles GET /v1/businesses/featured
func (h *BusinessHandler) Featured(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "0"))

	rows, err := h.services.Business.Featured(c.Request.Context(), limit)
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to get featured businesses")
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"rows": rows})
}

// Get handles GET /v1/businesses/:id
func (h *BusinessHandler) Get(c *gin.Context) {
	b, err := h.services.Business.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}

// Create handles POST /v1/businesses
func (h *BusinessHandler) Create(c *gin.Context) {
	var in models.BusinessInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	b, err := h.services.Business.Create(c.Request.Context(), &in)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, b)
}

// Update handles PUT /v1/businesses/:id
func (h *BusinessHandler) Update(c *gin.Context) {
	var in models.BusinessInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	b, err := h.services.Business.Update(c.Request.Context(), c.Param("id"), &in)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, b)
}

// Delete handles DELETE /v1/businesses/:id
func (h *BusinessHandler) Delete(c *gin.Context) {
	if err := h.services.Business.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
