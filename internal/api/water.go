package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/nutriflow/backend/internal/middleware"
	"github.com/nutriflow/backend/internal/service"
)

// WaterHandler handles the water-intake tracker.
type WaterHandler struct {
	water    service.IWaterService
	profiles service.IProfileService
	auth     middleware.TokenValidator
	log      zerolog.Logger
}

// NewWaterHandler creates a new WaterHandler instance
func NewWaterHandler(water service.IWaterService, profiles service.IProfileService, auth middleware.TokenValidator, log zerolog.Logger) *WaterHandler {
	return &WaterHandler{water: water, profiles: profiles, auth: auth, log: log}
}

// RegisterRoutes registers the water-tracker routes
func (h *WaterHandler) RegisterRoutes(router *gin.Engine) {
	water := router.Group("/api/water")
	water.Use(middleware.AuthMiddleware(h.auth))
	{
		water.POST("", h.Log)
		water.GET("/today", h.Today)
		water.DELETE("/today", h.Reset)
	}
}

// Log appends one intake entry.
func (h *WaterHandler) Log(c *gin.Context) {
	userID, ok := userIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": errUnauthored})
		return
	}

	var req struct {
		AmountML int `json:"amount_ml" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidInput, "details": decodeViolations(err)})
		return
	}

	if err := h.water.Log(c.Request.Context(), userID, req.AmountML); err != nil {
		if errors.Is(err, service.ErrInvalidAmount) {
			c.JSON(http.StatusBadRequest, gin.H{
				"error":   errInvalidInput,
				"details": []FieldViolation{{Field: "amount_ml", Message: "deve essere un numero positivo"}},
			})
			return
		}
		h.log.Error().Err(err).Msg("water log failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.Status(http.StatusCreated)
}

// Today returns the day's total, the goal and the hourly chart data.
func (h *WaterHandler) Today(c *gin.Context) {
	userID, ok := userIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": errUnauthored})
		return
	}

	summary, err := h.water.TodaySummary(c.Request.Context(), userID)
	if err != nil {
		h.log.Error().Err(err).Msg("water summary failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	// The goal lives on the profile; fall back to the default when the
	// row is missing or the column was never set.
	goal := 2500
	if profile, err := h.profiles.GetProfile(c.Request.Context(), userID); err == nil && profile.WaterGoalML > 0 {
		goal = profile.WaterGoalML
	}

	c.JSON(http.StatusOK, gin.H{
		"total_ml": summary.TotalML,
		"goal_ml":  goal,
		"hourly":   summary.Hourly,
	})
}

// Reset deletes today's entries for the caller.
func (h *WaterHandler) Reset(c *gin.Context) {
	userID, ok := userIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": errUnauthored})
		return
	}

	if err := h.water.ResetToday(c.Request.Context(), userID); err != nil {
		h.log.Error().Err(err).Msg("water reset failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.Status(http.StatusNoContent)
}
