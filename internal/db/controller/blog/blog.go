// Package blog provides queries over blog posts.
package blog

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/CashGlitch/CashGlitch/internal/db/models"
)

var (
	// ErrPostNotFound is returned when no published post matches a slug.
	ErrPostNotFound = errors.New("blog post not found")
	// ErrSlugEmpty is returned when a slug is empty.
	ErrSlugEmpty = errors.New("slug cannot be empty")
	// ErrDBNil is returned when the database connection is nil.
	ErrDBNil = errors.New("database connection is nil")
)

// ListPublished returns every published post, newest first.
func ListPublished(ctx context.Context, db *gorm.DB) ([]models.BlogPost, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var posts []models.BlogPost

	err := db.WithContext(ctx).
		Where("published = ?", true).
		Order("created_at DESC").
		Order("id DESC").
		Find(&posts).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list blog posts: %w", err)
	}

	return posts, nil
}

// GetPublishedBySlug returns the published post with the given slug.
// Unpublished posts are reported as ErrPostNotFound.
func GetPublishedBySlug(ctx context.Context, db *gorm.DB, slug string) (*models.BlogPost, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	if slug == "" {
		return nil, ErrSlugEmpty
	}

	var post models.BlogPost

	err := db.WithContext(ctx).
		Where("slug = ? AND published = ?", slug, true).
		First(&post).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPostNotFound
		}

		return nil, fmt.Errorf("failed to get blog post %q: %w", slug, err)
	}

	return &post, nil
}

// SetPublished publishes or unpublishes the post with the given slug, whatever its current state.
func SetPublished(ctx context.Context, db *gorm.DB, slug string, published bool) error {
	if db == nil {
		return ErrDBNil
	}

	if slug == "" {
		return ErrSlugEmpty
	}

	result := db.WithContext(ctx).
		Model(&models.BlogPost{}).
		Where("slug = ?", slug).
		Update("published", published)
	if result.Error != nil {
		return fmt.Errorf("failed to update blog post %q: %w", slug, result.Error)
	}

	if result.RowsAffected == 0 {
		return ErrPostNotFound
	}

	return nil
}

// Count returns the number of posts, published or not.
func Count(ctx context.Context, db *gorm.DB) (int64, error) {
	if db == nil {
		return 0, ErrDBNil
	}

	var n int64
	if err := db.WithContext(ctx).Model(&models.BlogPost{}).Count(&n).Error; err != nil {
		return 0, fmt.Errorf("failed to count blog posts: %w", err)
	}

	return n, nil
}
