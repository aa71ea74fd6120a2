// Package page provides queries over editable static pages.
package page

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/CashGlitch/CashGlitch/internal/db/models"
)

var (
	// ErrPageNotFound is returned when no page has the given slug.
	ErrPageNotFound = errors.New("page not found")
	// ErrSlugEmpty is returned when a slug is empty.
	ErrSlugEmpty = errors.New("slug cannot be empty")
	// ErrDBNil is returned when the database connection is nil.
	ErrDBNil = errors.New("database connection is nil")
)

// GetBySlug returns a page with its items in display order.
func GetBySlug(ctx context.Context, db *gorm.DB, slug string) (*models.PageContent, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	if slug == "" {
		return nil, ErrSlugEmpty
	}

	var page models.PageContent

	err := db.WithContext(ctx).
		Preload("Items", func(tx *gorm.DB) *gorm.DB {
			return tx.Order("sort_order ASC").Order("id ASC")
		}).
		Where("slug = ?", slug).
		First(&page).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPageNotFound
		}

		return nil, fmt.Errorf("failed to get page %q: %w", slug, err)
	}

	return &page, nil
}
