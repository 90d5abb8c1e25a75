package api

import (
	"net/http"

	"github.com/business-directory-api/internal/models"
	"github.com/business-directory-api/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// ClaimHandler handles ownership-claim endpoints
type ClaimHandler struct {
	services *service.Services
	log      zerolog.Logger
}

// NewClaimHandler creates a new claim handler
func NewClaimHandler(services *service.Services, log zerolog.Logger) *ClaimHandler {
	return &ClaimHandler{
		services: services,
		log:      log.With().Str("handler", "claim").Logger(),
	}
}

// Create handles POST /v1/claims
func (h *ClaimHandler) Create(c *gin.Context) {
	var in models.ClaimInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	claim, err := h.services.Claim.Create(c.Request.Context(), &in)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, claim)
}

// Review handles POST /v1/claims/:id/review
func (h *ClaimHandler) Review(c *gin.Context) {
	var in models.ClaimReviewInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	claim, err := h.services.Claim.Review(c.Request.Context(), c.Param("id"), &in)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, claim)
}

// Get handles GET /v1/claims/:id
func (h *ClaimHandler) Get(c *gin.Context) {
	claim, err := h.services.Claim.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, claim)
}

// ListPending handles GET /v1/claims/pending
func (h *ClaimHandler) ListPending(c *gin.Context) {
	claims, err := h.services.Claim.ListPending(c.Request.Context())
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to list pending claims")
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"rows": claims})
}

// ListForBusiness handles GET /v1/businesses/:id/claims
func (h *ClaimHandler) ListForBusiness(c *gin.Context) {
	claims, err := h.services.Claim.ListByBusiness(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"rows": claims})
}

// Ownership handles GET /v1/businesses/:id/ownership
func (h *ClaimHandler) Ownership(c *gin.Context) {
	ownership, err := h.services.Claim.ResolveOwnership(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, ownership)
}
