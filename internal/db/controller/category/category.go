// Package category provides queries and click tracking for landing page categories.
package category

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/CashGlitch/CashGlitch/internal/db/models"
)

var (
	// ErrCategoryNotFound is returned when no category has the given id.
	ErrCategoryNotFound = errors.New("category not found")
	// ErrInvalidID is returned for ids that are not positive.
	ErrInvalidID = errors.New("category id must be a positive integer")
	// ErrTitleEmpty is returned when creating a category without a title.
	ErrTitleEmpty = errors.New("category title cannot be empty")
	// ErrDBNil is returned when the database connection is nil.
	ErrDBNil = errors.New("database connection is nil")
)

// ClickStat is the click counter of one category.
type ClickStat struct {
	ID         uint64
	Title      string
	ClickCount int64
	IsActive   bool
}

// ListActive returns active categories ordered by sort order.
func ListActive(ctx context.Context, db *gorm.DB) ([]models.Category, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var categories []models.Category

	err := db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("sort_order ASC").
		Order("id ASC").
		Find(&categories).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}

	return categories, nil
}

// TrackClick increments the click counter of a category by one.
// The increment happens in SQL so concurrent clicks are never lost.
func TrackClick(ctx context.Context, db *gorm.DB, id uint64) error {
	if db == nil {
		return ErrDBNil
	}

	if id == 0 {
		return ErrInvalidID
	}

	result := db.WithContext(ctx).
		Model(&models.Category{}).
		Where("id = ?", id).
		UpdateColumn("click_count", gorm.Expr("click_count + ?", 1))
	if result.Error != nil {
		return fmt.Errorf("failed to track click for category %d: %w", id, result.Error)
	}

	if result.RowsAffected == 0 {
		return ErrCategoryNotFound
	}

	return nil
}

// Create stores a new category. The icon must be part of the icon set.
func Create(ctx context.Context, db *gorm.DB, category *models.Category) error {
	if db == nil {
		return ErrDBNil
	}

	if category.Title == "" {
		return ErrTitleEmpty
	}

	icon, err := models.ParseIcon(string(category.Icon))
	if err != nil {
		return err
	}

	category.Icon = icon
	category.ClickCount = 0

	if err := db.WithContext(ctx).Create(category).Error; err != nil {
		return fmt.Errorf("failed to create category: %w", err)
	}

	return nil
}

// Stats returns the click counters of all categories, most clicked first.
func Stats(ctx context.Context, db *gorm.DB) ([]ClickStat, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var stats []ClickStat

	err := db.WithContext(ctx).
		Model(&models.Category{}).
		Select("id", "title", "click_count", "is_active").
		Order("click_count DESC").
		Order("sort_order ASC").
		Scan(&stats).Error
	if err != nil {
		return nil, fmt.Errorf("failed to read category stats: %w", err)
	}

	return stats, nil
}

// Count returns the number of categories.
func Count(ctx context.Context, db *gorm.DB) (int64, error) {
	if db == nil {
		return 0, ErrDBNil
	}

	var n int64
	if err := db.WithContext(ctx).Model(&models.Category{}).Count(&n).Error; err != nil {
		return 0, fmt.Errorf("failed to count categories: %w", err)
	}

	return n, nil
}
