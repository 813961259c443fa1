package api

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/nutriflow/backend/internal/middleware"
	"github.com/nutriflow/backend/internal/models"
	"github.com/nutriflow/backend/internal/prompt"
	"github.com/nutriflow/backend/internal/service"
	"github.com/nutriflow/backend/internal/types"
)

const (
	errInvalidInput  = "Dati di input non validi."
	errUnauthored    = "Utente non autenticato o token non valido"
	errBadUpstream   = "Risposta del modello non valida. Riprova."
	errEmptyUpstream = "Il modello non ha restituito un piano valido."
)

// GenerateHandler runs the recipe-generation pipeline: rate limit,
// validation, authentication, profile fetch, prompt composition, model
// call, response.
type GenerateHandler struct {
	limiter  *middleware.RateLimiter
	auth     middleware.TokenValidator
	profiles service.IProfileService
	llm      service.IGenerationService
	log      zerolog.Logger
}

// NewGenerateHandler creates a new GenerateHandler instance
func NewGenerateHandler(
	limiter *middleware.RateLimiter,
	auth middleware.TokenValidator,
	profiles service.IProfileService,
	llm service.IGenerationService,
	log zerolog.Logger,
) *GenerateHandler {
	return &GenerateHandler{
		limiter:  limiter,
		auth:     auth,
		profiles: profiles,
		llm:      llm,
		log:      log,
	}
}

// RegisterRoutes registers the generation routes. The main route is
// bound to every method so non-POST requests get a proper 405.
func (h *GenerateHandler) RegisterRoutes(router *gin.Engine) {
	router.Any("/api/generate-recipes", h.Generate)
	router.GET("/api/generate-recipes/latest", middleware.AuthMiddleware(h.auth), h.Latest)
}

// Generate handles POST /api/generate-recipes.
func (h *GenerateHandler) Generate(c *gin.Context) {
	if c.Request.Method != http.MethodPost {
		c.Header("Allow", http.MethodPost)
		c.JSON(http.StatusMethodNotAllowed, gin.H{"error": "Method " + c.Request.Method + " Not Allowed"})
		return
	}

	if !h.limiter.Allow(c.ClientIP()) {
		c.JSON(http.StatusTooManyRequests, gin.H{"error": middleware.RateLimitMessage})
		return
	}

	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidInput, "details": decodeViolations(err)})
		return
	}

	kind, planReq, regenReq, details := decodeGenerateRequest(body)
	if details != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidInput, "details": details})
		return
	}

	userID, ok := h.authenticate(c)
	if !ok {
		return
	}

	profileRow, err := h.profiles.GetProfile(c.Request.Context(), userID)
	if err != nil {
		h.log.Error().Err(err).Str("user_id", userID.String()).Msg("profile fetch failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	profile := promptProfile(profileRow)

	var composed string
	switch kind {
	case types.KindRegenerateMeal:
		composed = prompt.RegenerateMeal(profile, *regenReq)
	default:
		composed = prompt.FullPlan(profile, *planReq)
	}

	raw, err := h.llm.Generate(c.Request.Context(), composed)
	if err != nil {
		h.generationError(c, err)
		return
	}

	switch kind {
	case types.KindRegenerateMeal:
		var resp types.MealResponse
		if err := json.Unmarshal(raw, &resp); err != nil || resp.Recipe.Title == "" {
			h.log.Error().Err(err).RawJSON("payload", raw).Msg("regeneration payload missing recipe")
			c.JSON(http.StatusInternalServerError, gin.H{"error": errEmptyUpstream})
			return
		}
		if resp.Recipe.Meal == "" {
			resp.Recipe.Meal = regenReq.MealToRegenerate
		}
		c.JSON(http.StatusOK, resp)
	default:
		var resp types.PlanResponse
		if err := json.Unmarshal(raw, &resp); err != nil || len(resp.Recipes) == 0 {
			h.log.Error().Err(err).RawJSON("payload", raw).Msg("plan payload missing recipes")
			c.JSON(http.StatusInternalServerError, gin.H{"error": errEmptyUpstream})
			return
		}
		if err := h.llm.CachePlan(c.Request.Context(), userID, raw); err != nil {
			// The plan still goes out; only the /latest endpoint suffers.
			h.log.Warn().Err(err).Str("user_id", userID.String()).Msg("plan cache write failed")
		}
		c.JSON(http.StatusOK, resp)
	}
}

// Latest returns the most recently generated plan for the caller.
func (h *GenerateHandler) Latest(c *gin.Context) {
	userID, ok := userIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": errUnauthored})
		return
	}

	plan, err := h.llm.LatestPlan(c.Request.Context(), userID)
	if errors.Is(err, service.ErrNoCachedPlan) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Nessun piano generato."})
		return
	}
	if err != nil {
		h.log.Error().Err(err).Msg("plan cache read failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.Data(http.StatusOK, "application/json", plan)
}

// decodeGenerateRequest selects the schema by the presence of
// mealToRegenerate and validates strictly. Selection is a pure function
// of that single field.
func decodeGenerateRequest(body []byte) (types.RequestKind, *types.GeneratePlanRequest, *types.RegenerateMealRequest, []FieldViolation) {
	var probe struct {
		MealToRegenerate *string `json:"mealToRegenerate"`
	}
	if err := json.Unmarshal(body, &probe); err != nil {
		return types.KindFullPlan, nil, nil, decodeViolations(err)
	}

	if probe.MealToRegenerate != nil {
		var req types.RegenerateMealRequest
		if err := json.Unmarshal(body, &req); err != nil {
			return types.KindRegenerateMeal, nil, nil, decodeViolations(err)
		}
		if details := checkStruct(&req); details != nil {
			return types.KindRegenerateMeal, nil, nil, details
		}
		return types.KindRegenerateMeal, nil, &req, nil
	}

	var req types.GeneratePlanRequest
	if err := json.Unmarshal(body, &req); err != nil {
		return types.KindFullPlan, nil, nil, decodeViolations(err)
	}
	if details := checkStruct(&req); details != nil {
		return types.KindFullPlan, nil, nil, details
	}
	return types.KindFullPlan, &req, nil, nil
}

// authenticate resolves the bearer token. The generation route handles
// auth inline because rate limiting and validation must run first.
func (h *GenerateHandler) authenticate(c *gin.Context) (uuid.UUID, bool) {
	authHeader := c.GetHeader("Authorization")
	parts := strings.Split(authHeader, " ")
	if authHeader == "" || len(parts) != 2 || parts[0] != "Bearer" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": errUnauthored})
		return uuid.Nil, false
	}

	claims, err := h.auth.ValidateToken(parts[1])
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": errUnauthored})
		return uuid.Nil, false
	}
	return claims.UserID, true
}

func (h *GenerateHandler) generationError(c *gin.Context, err error) {
	if errors.Is(err, service.ErrUpstreamResponse) {
		c.JSON(http.StatusInternalServerError, gin.H{"error": errBadUpstream})
		return
	}
	h.log.Error().Err(err).Msg("generation failed")
	c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
}

// promptProfile maps the stored row to the composer's view of it.
func promptProfile(p *models.Profile) prompt.Profile {
	return prompt.Profile{
		DietType:      p.DietType,
		Allergies:     p.Allergies,
		DislikedFoods: p.DislikedFoods,
		Goals:         p.Goals,
	}
}
