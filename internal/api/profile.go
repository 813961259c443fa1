package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/nutriflow/backend/internal/middleware"
	"github.com/nutriflow/backend/internal/service"
	"github.com/nutriflow/backend/internal/types"
)

// ProfileHandler handles onboarding saves and settings updates.
type ProfileHandler struct {
	profiles service.IProfileService
	auth     middleware.TokenValidator
	log      zerolog.Logger
}

// NewProfileHandler creates a new ProfileHandler instance
func NewProfileHandler(profiles service.IProfileService, auth middleware.TokenValidator, log zerolog.Logger) *ProfileHandler {
	return &ProfileHandler{profiles: profiles, auth: auth, log: log}
}

// RegisterRoutes registers the profile routes
func (h *ProfileHandler) RegisterRoutes(router *gin.Engine) {
	profile := router.Group("/api/profile")
	profile.Use(middleware.AuthMiddleware(h.auth))
	{
		profile.GET("", h.Get)
		profile.POST("", h.Upsert)
		profile.PUT("", h.Update)
	}
}

// Get returns the caller's profile; a user who never completed
// onboarding gets an empty one.
func (h *ProfileHandler) Get(c *gin.Context) {
	userID, ok := userIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": errUnauthored})
		return
	}

	profile, err := h.profiles.GetProfile(c.Request.Context(), userID)
	if err != nil {
		h.log.Error().Err(err).Msg("profile fetch failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, profile)
}

// Upsert is the onboarding save: first call creates the row, setting the
// username completes onboarding.
func (h *ProfileHandler) Upsert(c *gin.Context) {
	userID, ok := userIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": errUnauthored})
		return
	}

	var req types.UpsertProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidInput, "details": decodeViolations(err)})
		return
	}
	if details := checkStruct(&req); details != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidInput, "details": details})
		return
	}

	profile, err := h.profiles.UpsertProfile(c.Request.Context(), userID, &req)
	if err != nil {
		h.log.Error().Err(err).Msg("profile upsert failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, profile)
}

// Update is the settings save; only the provided fields change.
func (h *ProfileHandler) Update(c *gin.Context) {
	userID, ok := userIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": errUnauthored})
		return
	}

	var req types.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidInput, "details": decodeViolations(err)})
		return
	}
	if details := checkStruct(&req); details != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidInput, "details": details})
		return
	}

	profile, err := h.profiles.UpdateProfile(c.Request.Context(), userID, &req)
	if err != nil {
		h.log.Error().Err(err).Msg("profile update failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, profile)
}
