package content

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/CashGlitch/CashGlitch/internal/db/controller/setting"
	"github.com/CashGlitch/CashGlitch/internal/db/models"
)

// DefaultCategories are the landing page tiles of a fresh installation.
var DefaultCategories = []models.Category{
	{
		Title:       "Win Cash Prizes",
		Description: "Enter sweepstakes for a chance to win life changing cash.",
		Link:        "/sweepstakes",
		Icon:        models.IconDollar,
		SortOrder:   1,
		IsActive:    true,
	},
	{
		Title:       "Support a Cause",
		Description: "Every entry sends a share of the proceeds to charity partners.",
		Link:        "/donate",
		Icon:        models.IconHeart,
		SortOrder:   2,
		IsActive:    true,
	},
	{
		Title:       "Daily Giveaways",
		Description: "Free daily drawings for gift cards and gadgets.",
		Link:        "/giveaways",
		Icon:        models.IconGift,
		SortOrder:   3,
		IsActive:    true,
	},
	{
		Title:       "Community Winners",
		Description: "Meet the people who already won with CashGlitch.",
		Link:        "/winners",
		Icon:        models.IconTrophy,
		SortOrder:   4,
		IsActive:    true,
	},
}

// DefaultIntroScreens are the onboarding steps of a fresh installation.
var DefaultIntroScreens = []models.IntroScreen{
	{
		Title:      "Welcome to CashGlitch",
		Body:       "Sweepstakes that give back. Enter, win and help others at the same time.",
		ButtonText: "Next",
		SortOrder:  1,
		IsActive:   true,
	},
	{
		Title:      "Every ticket counts",
		Body:       "A part of every ticket goes straight to our charity partners.",
		ButtonText: "Next",
		SortOrder:  2,
		IsActive:   true,
	},
	{
		Title:      "Ready to play?",
		Body:       "Enter your access code to see the current sweepstakes.",
		ButtonText: "Get started",
		SortOrder:  3,
		IsActive:   true,
	},
}

// DefaultSettings are the site settings of a fresh installation.
var DefaultSettings = map[string]string{
	"site_name":     "CashGlitch",
	"hero_title":    "Win big. Give bigger.",
	"hero_subtitle": "Sweepstakes and giveaways that support good causes.",
	"support_email": "support@cashglitch.com",
	"currency":      "USD",
}

// DefaultPages are the static pages of a fresh installation.
var DefaultPages = []models.PageContent{
	{
		Slug:     "about",
		Title:    "About CashGlitch",
		Subtitle: "Sweepstakes with a purpose",
		Body:     "CashGlitch runs transparent sweepstakes and shares the proceeds with charity partners.",
		Items: []models.PageItem{
			{Title: "Transparent draws", Body: "Every draw is logged and published.", Icon: models.IconStar, SortOrder: 1},
			{Title: "Real impact", Body: "Partners receive their share after every draw.", Icon: models.IconHeart, SortOrder: 2},
		},
	},
	{
		Slug:     "how-it-works",
		Title:    "How it works",
		Subtitle: "Three steps to your next win",
		Items: []models.PageItem{
			{Title: "Pick a sweepstake", Body: "Browse the active sweepstakes.", Icon: models.IconTicket, SortOrder: 1},
			{Title: "Get your tickets", Body: "Every ticket is one more chance to win.", Icon: models.IconZap, SortOrder: 2},
			{Title: "Win and give", Body: "Winners are drawn on the announced date.", Icon: models.IconTrophy, SortOrder: 3},
		},
	},
}

// SeedDefaultCategories inserts the default categories when the table is empty.
func (i *Initializer) SeedDefaultCategories(ctx context.Context) error {
	if err := i.InitializeCategories(ctx); err != nil {
		return err
	}

	rows := make([]models.Category, len(DefaultCategories))
	copy(rows, DefaultCategories)

	return seedIfEmpty(i.db.WithContext(ctx), &models.Category{}, &rows, len(rows))
}

// SeedDefaultIntroScreens inserts the default intro screens when the table is empty.
func (i *Initializer) SeedDefaultIntroScreens(ctx context.Context) error {
	if err := i.InitializeSiteContent(ctx); err != nil {
		return err
	}

	rows := make([]models.IntroScreen, len(DefaultIntroScreens))
	copy(rows, DefaultIntroScreens)

	return seedIfEmpty(i.db.WithContext(ctx), &models.IntroScreen{}, &rows, len(rows))
}

// SeedDefaultSettings inserts every default setting whose key is missing.
// Existing values are never overwritten.
func (i *Initializer) SeedDefaultSettings(ctx context.Context) error {
	if err := i.InitializeSiteContent(ctx); err != nil {
		return err
	}

	tx := i.db.WithContext(ctx)

	for key, value := range DefaultSettings {
		inserted, err := setting.EnsureDefault(tx, key, value)
		if err != nil {
			return fmt.Errorf("failed to seed setting %q: %w", key, err)
		}

		if inserted {
			log.Debug().Str("key", key).Msg("default setting seeded")
		}
	}

	return nil
}

// SeedDefaultPageContent inserts every default page whose slug is missing, together with its items.
func (i *Initializer) SeedDefaultPageContent(ctx context.Context) error {
	if err := i.InitializeSiteContent(ctx); err != nil {
		return err
	}

	return i.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, def := range DefaultPages {
			var existing models.PageContent

			err := tx.Where("slug = ?", def.Slug).First(&existing).Error
			if err == nil {
				continue
			}

			if !errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("failed to look up page %q: %w", def.Slug, err)
			}

			page := def
			page.Items = make([]models.PageItem, len(def.Items))
			copy(page.Items, def.Items)

			// items are created through the has-many association
			if err := tx.Create(&page).Error; err != nil {
				return fmt.Errorf("failed to seed page %q: %w", def.Slug, err)
			}

			log.Debug().Str("slug", def.Slug).Int("items", len(page.Items)).Msg("default page seeded")
		}

		return nil
	})
}

// seedIfEmpty creates rows only when the model's table has no rows at all.
func seedIfEmpty(tx *gorm.DB, model, rows interface{}, n int) error {
	var count int64
	if err := tx.Model(model).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to count rows: %w", err)
	}

	if count > 0 || n == 0 {
		return nil
	}

	if err := tx.Create(rows).Error; err != nil {
		return fmt.Errorf("failed to seed rows: %w", err)
	}

	log.Info().Int("rows", n).Msgf("seeded %T", model)

	return nil
}
