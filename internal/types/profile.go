package types

// UpsertProfileRequest is the onboarding save. The client splits the
// comma-separated form fields before sending, so lists arrive as arrays.
type UpsertProfileRequest struct {
	Username      string   `json:"username" validate:"required,min=3,max=50"`
	DietType      string   `json:"diet_type" validate:"required,max=50"`
	Allergies     []string `json:"allergies"`
	DislikedFoods []string `json:"disliked_foods"`
}

// UpdateProfileRequest is the settings update; nil fields are left
// untouched.
type UpdateProfileRequest struct {
	Username      *string  `json:"username" validate:"omitempty,min=3,max=50"`
	DietType      *string  `json:"diet_type" validate:"omitempty,max=50"`
	Allergies     []string `json:"allergies"`
	DislikedFoods []string `json:"disliked_foods"`
	Goals         *string  `json:"goals" validate:"omitempty,max=500"`
	WaterGoalML   *int     `json:"water_goal_ml" validate:"omitempty,min=1"`
}

// AuthRequest is the login/register body.
type AuthRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}
