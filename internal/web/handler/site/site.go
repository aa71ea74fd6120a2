// Package site serves site settings, intro screens and static pages.
package site

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/CashGlitch/CashGlitch/internal/db/controller/intro"
	"github.com/CashGlitch/CashGlitch/internal/db/controller/page"
	"github.com/CashGlitch/CashGlitch/internal/db/controller/setting"
	"github.com/CashGlitch/CashGlitch/internal/db/models"
	"github.com/CashGlitch/CashGlitch/internal/web/handler"
)

const (
	// SettingsPath serves the site settings.
	SettingsPath = handler.APIPrefix + "/settings"
	// IntroPath serves the onboarding screens.
	IntroPath = handler.APIPrefix + "/intro"
	// PagesPath is the prefix of the static page routes.
	PagesPath = handler.APIPrefix + "/pages"
)

// IntroScreen is the JSON shape of an intro screen.
type IntroScreen struct {
	ID         uint64 `json:"id"`
	Title      string `json:"title"`
	Body       string `json:"body"`
	ButtonText string `json:"buttonText"`
	SortOrder  int    `json:"sortOrder"`
}

// PageItem is the JSON shape of a page item.
type PageItem struct {
	ID        uint64      `json:"id"`
	Title     string      `json:"title"`
	Body      string      `json:"body"`
	Icon      models.Icon `json:"icon"`
	SortOrder int         `json:"sortOrder"`
}

// Page is the JSON shape of a static page.
type Page struct {
	ID        uint64     `json:"id"`
	Slug      string     `json:"slug"`
	Title     string     `json:"title"`
	Subtitle  string     `json:"subtitle"`
	Body      string     `json:"body"`
	Items     []PageItem `json:"items"`
	UpdatedAt time.Time  `json:"updatedAt"`
}

func toPage(p *models.PageContent) Page {
	items := make([]PageItem, 0, len(p.Items))
	for _, it := range p.Items {
		items = append(items, PageItem{
			ID:        it.ID,
			Title:     it.Title,
			Body:      it.Body,
			Icon:      it.Icon.OrFallback(),
			SortOrder: it.SortOrder,
		})
	}

	return Page{
		ID:        p.ID,
		Slug:      p.Slug,
		Title:     p.Title,
		Subtitle:  p.Subtitle,
		Body:      p.Body,
		Items:     items,
		UpdatedAt: p.UpdatedAt,
	}
}

// Service is the site content handler service.
type Service struct {
	handler.Service
	deps *handler.Deps
}

// Init registers the site content routes.
func (s *Service) Init(app *fiber.App, deps *handler.Deps) error {
	if err := deps.Validate(app); err != nil {
		return err
	}

	s.deps = deps

	app.Get(SettingsPath, s.Settings)
	app.Get(IntroPath, s.Intro)
	app.Get(PagesPath+"/:slug", s.Page)

	return nil
}

// Settings returns every site setting as a key to value object.
func (s *Service) Settings(c *fiber.Ctx) error {
	if err := s.deps.Content.InitializeSiteContent(c.UserContext()); err != nil {
		return handler.Internal(c, err, "Failed to fetch settings")
	}

	settings, err := setting.AsMap(s.deps.DB.WithContext(c.UserContext()))
	if err != nil {
		return handler.Internal(c, err, "Failed to fetch settings")
	}

	return c.JSON(settings)
}

// Intro returns the active intro screens in display order.
func (s *Service) Intro(c *fiber.Ctx) error {
	ctx := c.UserContext()

	if err := s.deps.Content.InitializeSiteContent(ctx); err != nil {
		return handler.Internal(c, err, "Failed to fetch intro screens")
	}

	screens, err := intro.ListActive(ctx, s.deps.DB)
	if err != nil {
		return handler.Internal(c, err, "Failed to fetch intro screens")
	}

	out := make([]IntroScreen, 0, len(screens))
	for _, sc := range screens {
		out = append(out, IntroScreen{
			ID:         sc.ID,
			Title:      sc.Title,
			Body:       sc.Body,
			ButtonText: sc.ButtonText,
			SortOrder:  sc.SortOrder,
		})
	}

	return c.JSON(out)
}

// Page returns one static page with its items.
func (s *Service) Page(c *fiber.Ctx) error {
	ctx := c.UserContext()

	if err := s.deps.Content.InitializeSiteContent(ctx); err != nil {
		return handler.Internal(c, err, "Failed to fetch page")
	}

	p, err := page.GetBySlug(ctx, s.deps.DB, c.Params("slug"))
	if err != nil {
		if errors.Is(err, page.ErrPageNotFound) || errors.Is(err, page.ErrSlugEmpty) {
			return handler.NotFound("Page not found")
		}

		return handler.Internal(c, err, "Failed to fetch page")
	}

	return c.JSON(toPage(p))
}
