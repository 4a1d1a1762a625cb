package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/pageza/pantry-chef/backend/internal/models"
)

// UsageStore persists generation records with gorm
type UsageStore struct {
	db *gorm.DB
}

// NewUsageStore creates a new UsageStore instance
func NewUsageStore(db *gorm.DB) *UsageStore {
	return &UsageStore{db: db}
}

// Record inserts one generation record
func (s *UsageStore) Record(ctx context.Context, rec *models.GenerationRecord) error {
	if rec.ID == uuid.Nil {
		rec.ID = uuid.New()
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now().UTC()
	}
	if err := s.db.WithContext(ctx).Create(rec).Error; err != nil {
		return fmt.Errorf("failed to record generation: %w", err)
	}
	return nil
}

// Summary returns per-outcome counts and token totals for records created at or after since
func (s *UsageStore) Summary(ctx context.Context, since time.Time) ([]models.OutcomeSummary, error) {
	var rows []models.OutcomeSummary
	err := s.db.WithContext(ctx).
		Model(&models.GenerationRecord{}).
		Select("outcome, COUNT(*) AS count, COALESCE(SUM(feasibility_tokens), 0) AS feasibility_tokens, COALESCE(SUM(recipe_tokens), 0) AS recipe_tokens").
		Where("created_at >= ?", since).
		Group("outcome").
		Order("outcome").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to summarise generations: %w", err)
	}
	return rows, nil
}

// noopUsageRecorder is used when no database is configured
type noopUsageRecorder struct{}

func (noopUsageRecorder) Record(context.Context, *models.GenerationRecord) error { return nil }

// NewNoopUsageRecorder returns a recorder that discards every record
func NewNoopUsageRecorder() UsageRecorder {
	return noopUsageRecorder{}
}
