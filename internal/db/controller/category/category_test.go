package category

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/CashGlitch/CashGlitch/internal/db/dbtest"
	"github.com/CashGlitch/CashGlitch/internal/db/models"
)

func setupTestDB(t *testing.T) (*gorm.DB, []models.Category) {
	t.Helper()

	db := dbtest.New(t, &models.Category{})

	categories := []models.Category{
		{Title: "Second", Icon: models.IconHeart, SortOrder: 2, IsActive: true},
		{Title: "First", Icon: models.IconGift, SortOrder: 1, IsActive: true},
		{Title: "Hidden", Icon: models.IconZap, SortOrder: 0, IsActive: false},
	}
	require.NoError(t, db.Create(&categories).Error)

	return db, categories
}

func clickCount(t *testing.T, db *gorm.DB, id uint64) int64 {
	t.Helper()

	var c models.Category
	require.NoError(t, db.First(&c, id).Error)

	return c.ClickCount
}

func TestListActive(t *testing.T) {
	db, _ := setupTestDB(t)

	categories, err := ListActive(context.Background(), db)
	require.NoError(t, err)
	require.Len(t, categories, 2)
	assert.Equal(t, "First", categories[0].Title)
	assert.Equal(t, "Second", categories[1].Title)

	for _, c := range categories {
		assert.True(t, c.IsActive)
	}
}

func TestTrackClick(t *testing.T) {
	db, categories := setupTestDB(t)
	ctx := context.Background()

	target := categories[0].ID
	other := categories[1].ID

	const clicks = 5
	for range clicks {
		require.NoError(t, TrackClick(ctx, db, target))
	}

	assert.Equal(t, int64(clicks), clickCount(t, db, target))
	assert.Equal(t, int64(0), clickCount(t, db, other))
}

func TestTrackClickConcurrent(t *testing.T) {
	db, categories := setupTestDB(t)
	ctx := context.Background()

	target := categories[1].ID

	const clicks = 20

	var wg sync.WaitGroup
	for range clicks {
		wg.Add(1)

		go func() {
			defer wg.Done()
			assert.NoError(t, TrackClick(ctx, db, target))
		}()
	}

	wg.Wait()

	assert.Equal(t, int64(clicks), clickCount(t, db, target))
}

func TestTrackClickErrors(t *testing.T) {
	db, _ := setupTestDB(t)
	ctx := context.Background()

	require.ErrorIs(t, TrackClick(ctx, db, 0), ErrInvalidID)
	require.ErrorIs(t, TrackClick(ctx, db, 9999), ErrCategoryNotFound)
	require.ErrorIs(t, TrackClick(ctx, nil, 1), ErrDBNil)
}

func TestCreate(t *testing.T) {
	db, _ := setupTestDB(t)
	ctx := context.Background()

	c := &models.Category{Title: "Raffles", Icon: "Ticket", SortOrder: 4, IsActive: true, ClickCount: 99}
	require.NoError(t, Create(ctx, db, c))
	assert.NotZero(t, c.ID)
	assert.Equal(t, models.IconTicket, c.Icon)
	assert.Equal(t, int64(0), clickCount(t, db, c.ID))

	err := Create(ctx, db, &models.Category{Title: "Bad", Icon: "rocket"})
	require.ErrorIs(t, err, models.ErrUnknownIcon)

	err = Create(ctx, db, &models.Category{Icon: models.IconGift})
	require.ErrorIs(t, err, ErrTitleEmpty)
}

func TestStats(t *testing.T) {
	db, categories := setupTestDB(t)
	ctx := context.Background()

	require.NoError(t, TrackClick(ctx, db, categories[2].ID))
	require.NoError(t, TrackClick(ctx, db, categories[2].ID))
	require.NoError(t, TrackClick(ctx, db, categories[0].ID))

	stats, err := Stats(ctx, db)
	require.NoError(t, err)
	require.Len(t, stats, 3)
	assert.Equal(t, "Hidden", stats[0].Title)
	assert.Equal(t, int64(2), stats[0].ClickCount)
	assert.Equal(t, "Second", stats[1].Title)

	n, err := Count(ctx, db)
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)
}
