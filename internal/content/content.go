// Package content makes sure the content tables exist and carry their default rows.
//
// Every Initialize method is cheap after its first success: the table check
// runs once per process and later calls only read a flag. Seed methods insert
// canonical rows only when they are absent, so both can be called on every request.
package content

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/CashGlitch/CashGlitch/internal/db/models"
)

// ErrDBNil is returned when the database connection is nil.
var ErrDBNil = errors.New("database connection is nil")

const (
	groupBlog        = "blog"
	groupCategories  = "categories"
	groupSweepstakes = "sweepstakes"
	groupSiteContent = "site_content"
)

// Initializer ensures schema and default content for one database.
type Initializer struct {
	db *gorm.DB

	mu    sync.Mutex
	ready map[string]bool
}

// New returns an Initializer for db.
func New(db *gorm.DB) *Initializer {
	return &Initializer{
		db:    db,
		ready: make(map[string]bool),
	}
}

// DB returns the database the initializer works on.
func (i *Initializer) DB() *gorm.DB {
	return i.db
}

// ensure creates the tables of a group unless this process already did.
func (i *Initializer) ensure(ctx context.Context, group string, tables ...interface{}) error {
	if i == nil || i.db == nil {
		return ErrDBNil
	}

	i.mu.Lock()
	defer i.mu.Unlock()

	if i.ready[group] {
		return nil
	}

	tx := i.db.WithContext(ctx)

	for _, table := range tables {
		if tx.Migrator().HasTable(table) {
			continue
		}

		if err := tx.AutoMigrate(table); err != nil {
			return fmt.Errorf("failed to create %s tables: %w", group, err)
		}

		log.Info().Str("group", group).Str("table", tableName(tx, table)).Msg("table created")
	}

	i.ready[group] = true

	return nil
}

func tableName(tx *gorm.DB, model interface{}) string {
	stmt := &gorm.Statement{DB: tx}
	if err := stmt.Parse(model); err != nil {
		return fmt.Sprintf("%T", model)
	}

	return stmt.Schema.Table
}

// InitializeBlog ensures the blog_posts table exists.
func (i *Initializer) InitializeBlog(ctx context.Context) error {
	return i.ensure(ctx, groupBlog, &models.BlogPost{})
}

// InitializeCategories ensures the categories table exists.
func (i *Initializer) InitializeCategories(ctx context.Context) error {
	return i.ensure(ctx, groupCategories, &models.Category{})
}

// InitializeSweepstakes ensures the sweepstakes table exists.
func (i *Initializer) InitializeSweepstakes(ctx context.Context) error {
	return i.ensure(ctx, groupSweepstakes, &models.Sweepstake{})
}

// InitializeSiteContent ensures the settings, intro screen and page tables exist.
func (i *Initializer) InitializeSiteContent(ctx context.Context) error {
	return i.ensure(ctx, groupSiteContent,
		&models.SiteSetting{},
		&models.IntroScreen{},
		&models.PageContent{},
		&models.PageItem{},
	)
}

// InitializeAll creates every content table and seeds the defaults.
func (i *Initializer) InitializeAll(ctx context.Context) error {
	steps := []struct {
		name string
		fn   func(context.Context) error
	}{
		{"blog", i.InitializeBlog},
		{"categories", i.InitializeCategories},
		{"sweepstakes", i.InitializeSweepstakes},
		{"site content", i.InitializeSiteContent},
		{"default categories", i.SeedDefaultCategories},
		{"default intro screens", i.SeedDefaultIntroScreens},
		{"default settings", i.SeedDefaultSettings},
		{"default pages", i.SeedDefaultPageContent},
	}

	for _, step := range steps {
		if err := step.fn(ctx); err != nil {
			return fmt.Errorf("initialize %s: %w", step.name, err)
		}
	}

	return nil
}
