package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/nutriflow/backend/internal/models"
)

var ErrInvalidAmount = errors.New("amount must be positive")

// Chart bounds: the dashboard renders intake between 07:00 and 23:00.
const (
	chartStartHour = 7
	chartEndHour   = 23
)

// HourlyIntake is one bar of the daily chart.
type HourlyIntake struct {
	Time string `json:"time"`
	ML   int    `json:"ml"`
}

// WaterSummary is today's intake aggregated for the dashboard.
type WaterSummary struct {
	TotalML int            `json:"total_ml"`
	Hourly  []HourlyIntake `json:"hourly"`
}

// WaterService owns the append-only intake log.
type WaterService struct {
	db  *gorm.DB
	now func() time.Time
}

func NewWaterService(db *gorm.DB) *WaterService {
	return &WaterService{db: db, now: time.Now}
}

// Log appends one intake entry.
func (s *WaterService) Log(ctx context.Context, userID uuid.UUID, amountML int) error {
	if amountML <= 0 {
		return ErrInvalidAmount
	}
	entry := models.WaterLog{
		ID:       uuid.New(),
		UserID:   userID,
		AmountML: amountML,
	}
	return s.db.WithContext(ctx).Create(&entry).Error
}

// TodaySummary returns the running total and the hourly aggregation for
// the current day.
func (s *WaterService) TodaySummary(ctx context.Context, userID uuid.UUID) (*WaterSummary, error) {
	var logs []models.WaterLog
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND created_at >= ?", userID, s.startOfDay()).
		Find(&logs).Error
	if err != nil {
		return nil, err
	}

	summary := &WaterSummary{}
	hourly := make(map[int]int)
	for _, log := range logs {
		summary.TotalML += log.AmountML
		hourly[log.CreatedAt.Hour()] += log.AmountML
	}

	for hour := chartStartHour; hour <= chartEndHour; hour++ {
		summary.Hourly = append(summary.Hourly, HourlyIntake{
			Time: formatHour(hour),
			ML:   hourly[hour],
		})
	}

	return summary, nil
}

// ResetToday deletes the current day's entries for the user. Past days
// are never touched.
func (s *WaterService) ResetToday(ctx context.Context, userID uuid.UUID) error {
	return s.db.WithContext(ctx).
		Where("user_id = ? AND created_at >= ?", userID, s.startOfDay()).
		Delete(&models.WaterLog{}).Error
}

func (s *WaterService) startOfDay() time.Time {
	now := s.now()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
}

// formatHour matches the chart's axis labels ("7:00", not "07:00").
func formatHour(hour int) string {
	return fmt.Sprintf("%d:00", hour)
}
