package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/business-directory-api/internal/config"
	"github.com/business-directory-api/internal/models"
	"github.com/business-directory-api/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// NewRouter creates and configures the Gin router
func NewRouter(services *service.Services, cfg *config.Config, log zerolog.Logger) *gin.Engine {
	// Set Gin mode
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()

	// Middleware
	router.Use(recoveryMiddleware(log))
	router.Use(loggingMiddleware(log))
	router.Use(corsMiddleware())

	// Handlers
	businessHandler := NewBusinessHandler(services, log)
	claimHandler := NewClaimHandler(services, log)
	leadHandler := NewLeadHandler(services, log)
	siteHandler := NewSiteHandler(services, log)

	// Health check
	router.GET("/health", healthCheck)
	router.GET("/metrics", metricsHandler(services, log))

	// API v1
	v1 := router.Group("/v1")
	{
		// Business endpoints
		businesses := v1.Group("/businesses")
		{
			businesses.GET("", businessHandler.List)
			businesses.GET("/random", businessHandler.Random)
			businesses.GET("/featured", businessHandler.Featured)
			businesses.GET("/:id", businessHandler.Get)
			businesses.POST("", businessHandler.Create)
			businesses.PUT("/:id", businessHandler.Update)
			businesses.DELETE("/:id", businessHandler.Delete)
			businesses.GET("/:id/ownership", claimHandler.Ownership)
			businesses.GET("/:id/claims", claimHandler.ListForBusiness)
		}

		// Category endpoints
		categories := v1.Group("/categories")
		{
			categories.GET("", siteHandler.ListCategories)
			categories.GET("/match", siteHandler.MatchCategory)
			categories.POST("", siteHandler.CreateCategory)
			categories.PUT("/:id", siteHandler.UpdateCategory)
			categories.DELETE("/:id", siteHandler.DeleteCategory)
		}

		// Ownership-claim endpoints
		claims := v1.Group("/claims")
		{
			claims.POST("", claimHandler.Create)
			claims.GET("/pending", claimHandler.ListPending)
			claims.GET("/:id", claimHandler.Get)
			claims.POST("/:id/review", claimHandler.Review)
		}

		// Lead endpoints
		leads := v1.Group("/leads")
		{
			leads.POST("", leadHandler.Create)
			leads.GET("", leadHandler.List)
			leads.PATCH("/:id/status", leadHandler.UpdateStatus)
		}

		// Page endpoints
		pages := v1.Group("/pages")
		{
			pages.GET("", siteHandler.ListPages)
			pages.GET("/:id", siteHandler.GetPage)
			pages.POST("", siteHandler.CreatePage)
			pages.PUT("/:id", siteHandler.UpdatePage)
			pages.DELETE("/:id", siteHandler.DeletePage)
		}

		// User endpoints
		users := v1.Group("/users")
		{
			users.GET("", siteHandler.ListUsers)
			users.GET("/:id", siteHandler.GetUser)
			users.DELETE("/:id", siteHandler.DeleteUser)
		}
	}

	return router
}

// healthCheck returns the health status
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"timestamp": time.Now().Format(time.RFC3339),
		"service":   "business-directory-api",
	})
}

// metricsHandler returns directory row counts
func metricsHandler(services *service.Services, log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		categories, err := services.Category.List(ctx)
		if err != nil {
			log.Error().Err(err).Msg("Failed to count categories for metrics")
		}
		pending, err := services.Claim.ListPending(ctx)
		if err != nil {
			log.Error().Err(err).Msg("Failed to count pending claims for metrics")
		}

		c.JSON(http.StatusOK, gin.H{
			"database": gin.H{
				"categories":     len(categories),
				"pending_claims": len(pending),
			},
			"timestamp": time.Now().Format(time.RFC3339),
		})
	}
}

// respondError maps domain errors onto HTTP status codes
func respondError(c *gin.Context, err error) {
	var verr *models.ValidationError
	switch {
	case errors.As(err, &verr):
		c.JSON(http.StatusBadRequest, gin.H{"error": verr.Error(), "fields": verr.Fields})
	case errors.Is(err, models.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	case errors.Is(err, models.ErrDuplicateClaim):
		c.JSON(http.StatusConflict, gin.H{"error": "a pending or approved claim already exists for this business and user"})
	case errors.Is(err, models.ErrClaimReviewed):
		c.JSON(http.StatusConflict, gin.H{"error": "claim has already been reviewed"})
	case errors.Is(err, models.ErrLastAdmin):
		c.JSON(http.StatusConflict, gin.H{"error": "cannot delete the last admin user"})
	case errors.Is(err, models.ErrSlugConflict):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "temporary conflict, please retry"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}

// recoveryMiddleware handles panics
func recoveryMiddleware(log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				log.Error().Interface("error", err).Msg("Panic recovered")
				c.JSON(http.StatusInternalServerError, gin.H{
					"error": "Internal server error",
				})
				c.Abort()
			}
		}()
		c.Next()
	}
}

// loggingMiddleware logs requests
func loggingMiddleware(log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		c.Next()

		duration := time.Since(start)
		statusCode := c.Writer.Status()

		event := log.Info()
		if statusCode >= 400 {
			event = log.Warn()
		}
		if statusCode >= 500 {
			event = log.Error()
		}

		event.
			Str("method", c.Request.Method).
			Str("path", path).
			Int("status", statusCode).
			Dur("duration", duration).
			Str("client_ip", c.ClientIP()).
			Msg("Request completed")
	}
}

// corsMiddleware handles CORS
func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}
