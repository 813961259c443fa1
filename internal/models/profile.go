package models

import (
	"database/sql/driver"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// StringArray stores a list of strings as a JSON document so the same
// model works against postgres (jsonb) and the sqlite test database.
type StringArray []string

// Value implements the driver.Valuer interface
func (a StringArray) Value() (driver.Value, error) {
	if len(a) == 0 {
		return "[]", nil
	}
	return json.Marshal(a)
}

// Scan implements the sql.Scanner interface
func (a *StringArray) Scan(value interface{}) error {
	if value == nil {
		*a = StringArray{}
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return nil
	}

	return json.Unmarshal(bytes, a)
}

// Profile holds a user's dietary preferences and goals. Username is only
// set once the onboarding flow has been completed, which is how the rest
// of the app decides whether to send the user back to /onboarding.
type Profile struct {
	ID            uuid.UUID      `gorm:"type:varchar(36);primarykey" json:"id"`
	UserID        uuid.UUID      `gorm:"type:varchar(36);not null;uniqueIndex" json:"user_id"`
	Username      *string        `gorm:"size:50;uniqueIndex" json:"username"`
	DietType      string         `gorm:"size:50" json:"diet_type"`
	Allergies     StringArray    `gorm:"type:jsonb;not null;default:'[]'" json:"allergies"`
	DislikedFoods StringArray    `gorm:"type:jsonb;not null;default:'[]'" json:"disliked_foods"`
	Goals         string         `gorm:"type:text" json:"goals"`
	WaterGoalML   int            `gorm:"not null;default:2500" json:"water_goal_ml"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Profile) TableName() string {
	return "profiles"
}

// OnboardingComplete reports whether the profile finished onboarding.
func (p *Profile) OnboardingComplete() bool {
	return p != nil && p.Username != nil && *p.Username != ""
}
