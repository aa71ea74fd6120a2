// Package intro provides queries over onboarding intro screens.
package intro

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/CashGlitch/CashGlitch/internal/db/models"
)

// ErrDBNil is returned when the database connection is nil.
var ErrDBNil = errors.New("database connection is nil")

// ListActive returns active intro screens in display order.
func ListActive(ctx context.Context, db *gorm.DB) ([]models.IntroScreen, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var screens []models.IntroScreen

	err := db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("sort_order ASC").
		Order("id ASC").
		Find(&screens).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list intro screens: %w", err)
	}

	return screens, nil
}
