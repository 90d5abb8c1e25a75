package api

import (
	"net/http"

	"github.com/business-directory-api/internal/models"
	"github.com/business-directory-api/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// LeadHandler handles lead endpoints
type LeadHandler struct {
	services *service.Services
	log      zerolog.Logger
}

// NewLeadHandler creates a new lead handler
func NewLeadHandler(services *service.Services, log zerolog.Logger) *LeadHandler {
	return &LeadHandler{
		services: services,
		log:      log.With().Str("handler", "lead").Logger(),
	}
}

// Create handles POST /v1/leads
func (h *LeadHandler) Create(c *gin.Context) {
	var in models.LeadInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	lead, err := h.services.Lead.Create(c.Request.Context(), &in)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, lead)
}

// List handles GET /v1/leads. The actor is either the platform admin
// (?actor=admin) or a business owner (?owner_id=<user id>); which leads
// come back is decided entirely by ownership resolution.
func (h *LeadHandler) List(c *gin.Context) {
	var actor models.Actor
	switch {
	case c.Query("actor") == "admin":
		actor = models.AdminActor()
	case c.Query("owner_id") != "":
		actor = models.OwnerActor(c.Query("owner_id"))
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "specify actor=admin or owner_id"})
		return
	}

	leads, err := h.services.Lead.LeadsFor(c.Request.Context(), actor)
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to list leads")
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"rows": leads})
}

// UpdateStatus handles PATCH /v1/leads/:id/status
func (h *LeadHandler) UpdateStatus(c *gin.Context) {
	var in struct {
		Status models.LeadStatus `json:"status"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if err := h.services.Lead.UpdateStatus(c.Request.Context(), c.Param("id"), in.Status); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
