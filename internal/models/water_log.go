package models

import (
	"time"

	"github.com/google/uuid"
)

// WaterLog is a single append-only intake entry. Rows are never updated;
// the same-day reset deletes them instead.
type WaterLog struct {
	ID        uuid.UUID `gorm:"type:varchar(36);primarykey" json:"id"`
	UserID    uuid.UUID `gorm:"type:varchar(36);not null;index" json:"user_id"`
	AmountML  int       `gorm:"not null" json:"amount_ml"`
	CreatedAt time.Time `json:"created_at"`
}

func (WaterLog) TableName() string {
	return "water_logs"
}
