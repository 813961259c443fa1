package api

import (
	"errors"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/nutriflow/backend/internal/middleware"
	"github.com/nutriflow/backend/internal/service"
	"github.com/nutriflow/backend/internal/types"
)

const sessionMaxAge = 24 * 60 * 60

// callbackError matches the query string the login page knows how to
// render.
const callbackError = "Authentication failed. Please try again."

// AuthHandler handles registration, login and the auth callback.
type AuthHandler struct {
	auth service.IAuthService
	log  zerolog.Logger
}

// NewAuthHandler creates a new AuthHandler instance
func NewAuthHandler(auth service.IAuthService, log zerolog.Logger) *AuthHandler {
	return &AuthHandler{auth: auth, log: log}
}

// RegisterRoutes registers the auth routes. The callback lives outside
// /api because the browser hits it directly from the confirmation link.
func (h *AuthHandler) RegisterRoutes(router *gin.Engine) {
	auth := router.Group("/api/auth")
	{
		auth.POST("/signup", h.Signup)
		auth.POST("/login", h.Login)
		auth.POST("/logout", h.Logout)
	}
	router.GET("/auth/callback", h.Callback)
}

// Signup creates the account and issues the one-time confirmation code.
// Delivery of the code is an out-of-band concern; the response carries it
// so a client without a mail channel can complete the flow.
func (h *AuthHandler) Signup(c *gin.Context) {
	var req types.AuthRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidInput, "details": decodeViolations(err)})
		return
	}

	code, err := h.auth.Register(c.Request.Context(), req.Email, req.Password)
	if errors.Is(err, service.ErrUserExists) {
		c.JSON(http.StatusConflict, gin.H{"error": "Un account con questa email esiste già."})
		return
	}
	if err != nil {
		h.log.Error().Err(err).Msg("signup failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"code": code})
}

// Login verifies credentials, sets the session cookie and returns the
// token for bearer use against the API.
func (h *AuthHandler) Login(c *gin.Context) {
	var req types.AuthRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidInput, "details": decodeViolations(err)})
		return
	}

	token, err := h.auth.Login(c.Request.Context(), req.Email, req.Password)
	if errors.Is(err, service.ErrInvalidCredentials) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Credenziali non valide."})
		return
	}
	if err != nil {
		h.log.Error().Err(err).Msg("login failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	setSessionCookie(c, token)
	c.JSON(http.StatusOK, gin.H{"token": token})
}

// Logout clears the session cookie. Token invalidation is client-side;
// the cookie is what the route guard checks.
func (h *AuthHandler) Logout(c *gin.Context) {
	c.SetCookie(middleware.SessionCookie, "", -1, "/", "", false, true)
	c.Status(http.StatusNoContent)
}

// Callback exchanges the one-time code for a session. The cookie rides
// on the redirect response, so the very next navigation is already
// authenticated.
func (h *AuthHandler) Callback(c *gin.Context) {
	code := c.Query("code")
	next := c.Query("next")
	if next == "" {
		next = "/"
	}

	if code != "" {
		token, err := h.auth.ExchangeCode(c.Request.Context(), code)
		if err == nil {
			setSessionCookie(c, token)
			c.Redirect(http.StatusFound, next)
			return
		}
		h.log.Error().Err(err).Msg("auth code exchange failed")
	} else {
		h.log.Error().Msg("auth callback hit without a code")
	}

	c.Redirect(http.StatusFound, "/login?error="+url.QueryEscape(callbackError))
}

func setSessionCookie(c *gin.Context, token string) {
	c.SetCookie(middleware.SessionCookie, token, sessionMaxAge, "/", "", false, true)
}
