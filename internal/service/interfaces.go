package service

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"

	"github.com/nutriflow/backend/internal/models"
	"github.com/nutriflow/backend/internal/types"
)

// IProfileService defines the profile operations handlers depend on.
type IProfileService interface {
	GetProfile(ctx context.Context, userID uuid.UUID) (*models.Profile, error)
	UpsertProfile(ctx context.Context, userID uuid.UUID, req *types.UpsertProfileRequest) (*models.Profile, error)
	UpdateProfile(ctx context.Context, userID uuid.UUID, req *types.UpdateProfileRequest) (*models.Profile, error)
	OnboardingComplete(ctx context.Context, userID uuid.UUID) (bool, error)
}

// IGenerationService defines the generation operations handlers depend on.
type IGenerationService interface {
	Generate(ctx context.Context, prompt string) (json.RawMessage, error)
	CachePlan(ctx context.Context, userID uuid.UUID, plan json.RawMessage) error
	LatestPlan(ctx context.Context, userID uuid.UUID) (json.RawMessage, error)
}

// IAuthService defines the auth operations handlers depend on.
type IAuthService interface {
	Register(ctx context.Context, email, password string) (string, error)
	Login(ctx context.Context, email, password string) (string, error)
	ExchangeCode(ctx context.Context, code string) (string, error)
	ValidateToken(token string) (*types.TokenClaims, error)
}

// IWaterService defines the water-tracker operations handlers depend on.
type IWaterService interface {
	Log(ctx context.Context, userID uuid.UUID, amountML int) error
	TodaySummary(ctx context.Context, userID uuid.UUID) (*WaterSummary, error)
	ResetToday(ctx context.Context, userID uuid.UUID) error
}

var (
	_ IGenerationService = (*LLMService)(nil)
	_ IAuthService       = (*AuthService)(nil)
	_ IWaterService      = (*WaterService)(nil)
)
