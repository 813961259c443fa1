package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/nutriflow/backend/internal/models"
	"github.com/nutriflow/backend/internal/types"
)

// ProfileService handles user profile operations
type ProfileService struct {
	db *gorm.DB
}

// Ensure ProfileService implements IProfileService
var _ IProfileService = (*ProfileService)(nil)

// NewProfileService creates a new ProfileService instance
func NewProfileService(db *gorm.DB) *ProfileService {
	return &ProfileService{db: db}
}

// GetProfile retrieves a user's profile. A missing row is not an error:
// callers get an empty profile and apply their own defaults, which is
// what the generation pipeline relies on for users who skipped parts of
// onboarding.
func (s *ProfileService) GetProfile(ctx context.Context, userID uuid.UUID) (*models.Profile, error) {
	var profile models.Profile
	err := s.db.WithContext(ctx).Where("user_id = ?", userID).First(&profile).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return &models.Profile{UserID: userID}, nil
	}
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

// UpsertProfile saves the onboarding result. The first save creates the
// row; re-running onboarding overwrites the same columns.
func (s *ProfileService) UpsertProfile(ctx context.Context, userID uuid.UUID, req *types.UpsertProfileRequest) (*models.Profile, error) {
	username := req.Username
	profile := models.Profile{
		ID:            uuid.New(),
		UserID:        userID,
		Username:      &username,
		DietType:      req.DietType,
		Allergies:     models.StringArray(req.Allergies),
		DislikedFoods: models.StringArray(req.DislikedFoods),
	}

	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"username", "diet_type", "allergies", "disliked_foods", "updated_at"}),
	}).Create(&profile).Error
	if err != nil {
		return nil, err
	}

	return s.GetProfile(ctx, userID)
}

// UpdateProfile applies a settings change. Nil fields are left as they
// are; slices are replaced when present.
func (s *ProfileService) UpdateProfile(ctx context.Context, userID uuid.UUID, req *types.UpdateProfileRequest) (*models.Profile, error) {
	var profile models.Profile
	if err := s.db.WithContext(ctx).Where("user_id = ?", userID).First(&profile).Error; err != nil {
		return nil, err
	}

	if req.Username != nil {
		profile.Username = req.Username
	}
	if req.DietType != nil {
		profile.DietType = *req.DietType
	}
	if req.Allergies != nil {
		profile.Allergies = models.StringArray(req.Allergies)
	}
	if req.DislikedFoods != nil {
		profile.DislikedFoods = models.StringArray(req.DislikedFoods)
	}
	if req.Goals != nil {
		profile.Goals = *req.Goals
	}
	if req.WaterGoalML != nil {
		profile.WaterGoalML = *req.WaterGoalML
	}

	if err := s.db.WithContext(ctx).Save(&profile).Error; err != nil {
		return nil, err
	}

	return &profile, nil
}

// OnboardingComplete reports whether the user finished onboarding, i.e.
// the profile row exists and has a username.
func (s *ProfileService) OnboardingComplete(ctx context.Context, userID uuid.UUID) (bool, error) {
	var profile models.Profile
	err := s.db.WithContext(ctx).Select("username").Where("user_id = ?", userID).First(&profile).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return profile.OnboardingComplete(), nil
}
