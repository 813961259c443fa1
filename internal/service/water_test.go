package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/nutriflow/backend/internal/models"
)

func insertWaterLog(t *testing.T, db *gorm.DB, userID uuid.UUID, amount int, at time.Time) {
	t.Helper()
	entry := models.WaterLog{
		ID:        uuid.New(),
		UserID:    userID,
		AmountML:  amount,
		CreatedAt: at,
	}
	require.NoError(t, db.Create(&entry).Error)
}

func TestWaterLog_RejectsNonPositiveAmounts(t *testing.T) {
	svc := NewWaterService(newTestDB(t))

	assert.ErrorIs(t, svc.Log(context.Background(), uuid.New(), 0), ErrInvalidAmount)
	assert.ErrorIs(t, svc.Log(context.Background(), uuid.New(), -250), ErrInvalidAmount)
}

func TestTodaySummary_AggregatesByHour(t *testing.T) {
	db := newTestDB(t)
	svc := NewWaterService(db)

	day := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return day.Add(20 * time.Hour) }

	userID := uuid.New()
	insertWaterLog(t, db, userID, 250, day.Add(8*time.Hour))
	insertWaterLog(t, db, userID, 250, day.Add(8*time.Hour+30*time.Minute))
	insertWaterLog(t, db, userID, 500, day.Add(13*time.Hour))

	summary, err := svc.TodaySummary(context.Background(), userID)
	require.NoError(t, err)

	assert.Equal(t, 1000, summary.TotalML)
	// Fixed chart window, one bucket per hour.
	require.Len(t, summary.Hourly, 17)
	assert.Equal(t, "7:00", summary.Hourly[0].Time)
	assert.Equal(t, "23:00", summary.Hourly[16].Time)
	assert.Equal(t, HourlyIntake{Time: "8:00", ML: 500}, summary.Hourly[1])
	assert.Equal(t, HourlyIntake{Time: "13:00", ML: 500}, summary.Hourly[6])
	assert.Equal(t, 0, summary.Hourly[2].ML)
}

func TestTodaySummary_IgnoresOtherDaysAndUsers(t *testing.T) {
	db := newTestDB(t)
	svc := NewWaterService(db)

	day := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return day.Add(12 * time.Hour) }

	userID := uuid.New()
	insertWaterLog(t, db, userID, 300, day.Add(9*time.Hour))
	insertWaterLog(t, db, userID, 400, day.Add(-5*time.Hour)) // yesterday
	insertWaterLog(t, db, uuid.New(), 700, day.Add(9*time.Hour))

	summary, err := svc.TodaySummary(context.Background(), userID)
	require.NoError(t, err)
	assert.Equal(t, 300, summary.TotalML)
}

func TestResetToday_LeavesHistoryAlone(t *testing.T) {
	db := newTestDB(t)
	svc := NewWaterService(db)

	day := time.Date(2025, 6, 3, 0, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return day.Add(15 * time.Hour) }

	userID := uuid.New()
	insertWaterLog(t, db, userID, 250, day.Add(10*time.Hour))
	insertWaterLog(t, db, userID, 500, day.Add(-10*time.Hour)) // yesterday

	require.NoError(t, svc.ResetToday(context.Background(), userID))

	var remaining []models.WaterLog
	require.NoError(t, db.Where("user_id = ?", userID).Find(&remaining).Error)
	require.Len(t, remaining, 1)
	assert.Equal(t, 500, remaining[0].AmountML)

	summary, err := svc.TodaySummary(context.Background(), userID)
	require.NoError(t, err)
	assert.Equal(t, 0, summary.TotalML)
}

func TestWaterLog_Persists(t *testing.T) {
	db := newTestDB(t)
	svc := NewWaterService(db)
	userID := uuid.New()

	require.NoError(t, svc.Log(context.Background(), userID, 330))

	var count int64
	require.NoError(t, db.Model(&models.WaterLog{}).Where("user_id = ?", userID).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}
