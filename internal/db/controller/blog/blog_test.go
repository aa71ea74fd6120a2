package blog

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/CashGlitch/CashGlitch/internal/db/dbtest"
	"github.com/CashGlitch/CashGlitch/internal/db/models"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db := dbtest.New(t, &models.BlogPost{})

	base := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	posts := []models.BlogPost{
		{Slug: "older", Title: "Older", Published: true, CreatedAt: base},
		{Slug: "newer", Title: "Newer", Published: true, CreatedAt: base.Add(time.Hour)},
		{Slug: "draft", Title: "Draft", Published: false, CreatedAt: base.Add(2 * time.Hour)},
	}
	require.NoError(t, db.Create(&posts).Error)

	return db
}

func TestListPublished(t *testing.T) {
	db := setupTestDB(t)

	posts, err := ListPublished(context.Background(), db)
	require.NoError(t, err)
	require.Len(t, posts, 2)
	assert.Equal(t, "newer", posts[0].Slug)
	assert.Equal(t, "older", posts[1].Slug)
}

func TestGetPublishedBySlug(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	testCases := []struct {
		name          string
		slug          string
		expectedError error
	}{
		{name: "published", slug: "older"},
		{name: "unpublished is hidden", slug: "draft", expectedError: ErrPostNotFound},
		{name: "missing", slug: "nope", expectedError: ErrPostNotFound},
		{name: "empty slug", slug: "", expectedError: ErrSlugEmpty},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			post, err := GetPublishedBySlug(ctx, db, tc.slug)
			if tc.expectedError != nil {
				require.ErrorIs(t, err, tc.expectedError)
				assert.Nil(t, post)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tc.slug, post.Slug)
		})
	}

	_, err := GetPublishedBySlug(ctx, nil, "older")
	require.ErrorIs(t, err, ErrDBNil)
}

func TestSetPublished(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	require.NoError(t, SetPublished(ctx, db, "draft", true))

	post, err := GetPublishedBySlug(ctx, db, "draft")
	require.NoError(t, err)
	assert.True(t, post.Published)

	require.NoError(t, SetPublished(ctx, db, "draft", false))
	_, err = GetPublishedBySlug(ctx, db, "draft")
	require.ErrorIs(t, err, ErrPostNotFound)

	require.ErrorIs(t, SetPublished(ctx, db, "ghost", true), ErrPostNotFound)
}

func TestCount(t *testing.T) {
	db := setupTestDB(t)

	n, err := Count(context.Background(), db)
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)
}
