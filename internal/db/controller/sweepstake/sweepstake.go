// Package sweepstake provides queries over sweepstakes.
package sweepstake

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/CashGlitch/CashGlitch/internal/db/models"
)

// ErrDBNil is returned when the database connection is nil.
var ErrDBNil = errors.New("database connection is nil")

// ListActive returns active sweepstakes, featured ones first and then newest first.
func ListActive(ctx context.Context, db *gorm.DB) ([]models.Sweepstake, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var sweepstakes []models.Sweepstake

	err := db.WithContext(ctx).
		Where("status = ?", models.SweepstakeActive).
		Order("is_featured DESC").
		Order("created_at DESC").
		Find(&sweepstakes).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list sweepstakes: %w", err)
	}

	return sweepstakes, nil
}

// Count returns the number of sweepstakes in the given status.
func Count(ctx context.Context, db *gorm.DB, status models.SweepstakeStatus) (int64, error) {
	if db == nil {
		return 0, ErrDBNil
	}

	var n int64

	err := db.WithContext(ctx).
		Model(&models.Sweepstake{}).
		Where("status = ?", status).
		Count(&n).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count sweepstakes: %w", err)
	}

	return n, nil
}
