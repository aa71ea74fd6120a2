// Package admin implements the admin dashboard and the admin JSON API.
package admin

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	blogctl "github.com/CashGlitch/CashGlitch/internal/db/controller/blog"
	categoryctl "github.com/CashGlitch/CashGlitch/internal/db/controller/category"
	sweepstakectl "github.com/CashGlitch/CashGlitch/internal/db/controller/sweepstake"
	"github.com/CashGlitch/CashGlitch/internal/db/models"
	"github.com/CashGlitch/CashGlitch/internal/web/handler"
	"github.com/CashGlitch/CashGlitch/internal/web/handler/categories"
	"github.com/CashGlitch/CashGlitch/internal/web/middleware/auth"
	"github.com/CashGlitch/CashGlitch/internal/web/navigation"
)

const (
	// Path is the prefix of the server rendered admin pages.
	Path = handler.RootPath + "admin"

	// APIPath is the prefix of the admin JSON API.
	APIPath = handler.APIPrefix + "/admin"

	// TemplateName is the dashboard template.
	TemplateName = "admin/dashboard"
)

// CategoryRequest is the body of a category creation.
type CategoryRequest struct {
	Title       string `json:"title" validate:"required,max=255"`
	Description string `json:"description" validate:"max=1000"`
	Link        string `json:"link" validate:"omitempty,max=500"`
	Icon        string `json:"icon" validate:"required"`
	SortOrder   int    `json:"sortOrder" validate:"gte=0"`
	IsActive    *bool  `json:"isActive"`
}

// PublishRequest is the body of a publish toggle.
type PublishRequest struct {
	Published *bool `json:"published" validate:"required"`
}

// Counts are the totals shown on the dashboard.
type Counts struct {
	Posts             int64
	Categories        int64
	ActiveSweepstakes int64
}

// Service is the admin handler service.
type Service struct {
	handler.Service
	deps      *handler.Deps
	validator *validator.Validate
}

// Init registers the admin pages behind AdminGuard and the admin API behind AdminAPIGuard.
func (s *Service) Init(app *fiber.App, deps *handler.Deps) error {
	if err := deps.Validate(app); err != nil {
		return err
	}

	s.deps = deps
	s.validator = validator.New()

	pages := app.Group(Path, auth.AdminGuard(deps.Session))
	pages.Get(handler.RootPath, s.Dashboard)

	api := app.Group(APIPath, auth.AdminAPIGuard(deps.Session))
	api.Post("/categories", s.CreateCategory)
	api.Patch("/blog/:slug/publish", s.SetPublished)

	api.Get(SettingsPath, s.ListSettings)
	api.Post(SettingsPath, s.CreateSetting)
	api.Get(SettingsPath+"/:key", s.GetSetting)
	api.Put(SettingsPath+"/:key", s.PutSetting)
	api.Delete(SettingsPath+"/:key", s.DeleteSetting)

	return nil
}

// Dashboard renders the admin overview.
func (s *Service) Dashboard(c *fiber.Ctx) error {
	ctx := c.UserContext()

	nav := navigation.NewContext("Dashboard", navigation.SectionDashboard, "overview").
		AddBreadcrumb("Admin", Path, true)

	if err := s.deps.Content.InitializeAll(ctx); err != nil {
		return handler.Internal(c, err, "Failed to load dashboard")
	}

	var counts Counts

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		n, err := blogctl.Count(gctx, s.deps.DB)
		counts.Posts = n

		return err
	})
	g.Go(func() error {
		n, err := categoryctl.Count(gctx, s.deps.DB)
		counts.Categories = n

		return err
	})
	g.Go(func() error {
		n, err := sweepstakectl.Count(gctx, s.deps.DB, models.SweepstakeActive)
		counts.ActiveSweepstakes = n

		return err
	})

	if err := g.Wait(); err != nil {
		return handler.Internal(c, err, "Failed to load dashboard")
	}

	stats, err := categoryctl.Stats(ctx, s.deps.DB)
	if err != nil {
		return handler.Internal(c, err, "Failed to load dashboard")
	}

	email := ""
	if data, ok := auth.CurrentSession(c); ok {
		email = data.Email
	}

	return c.Render(TemplateName, fiber.Map{
		"Title":      s.deps.Cfg.Title,
		"Navigation": nav,
		"Email":      email,
		"Counts":     counts,
		"Stats":      stats,
		"Icons":      models.Icons(),
	}, handler.BaseLayout)
}

// CreateCategory stores a new category. Icons outside the icon set are rejected.
func (s *Service) CreateCategory(c *fiber.Ctx) error {
	req := new(CategoryRequest)
	if err := c.BodyParser(req); err != nil {
		return handler.BadRequest("Invalid request body")
	}

	req.Title = strings.TrimSpace(req.Title)

	if err := s.validator.Struct(req); err != nil {
		return handler.BadRequest("Invalid category: " + firstFieldError(err))
	}

	icon, err := models.ParseIcon(req.Icon)
	if err != nil {
		return handler.BadRequest("Unknown icon")
	}

	ctx := c.UserContext()

	if err := s.deps.Content.InitializeCategories(ctx); err != nil {
		return handler.Internal(c, err, "Failed to create category")
	}

	row := &models.Category{
		Title:       req.Title,
		Description: req.Description,
		Link:        req.Link,
		Icon:        icon,
		SortOrder:   req.SortOrder,
		IsActive:    req.IsActive == nil || *req.IsActive,
	}

	if err := categoryctl.Create(ctx, s.deps.DB, row); err != nil {
		return handler.Internal(c, err, "Failed to create category")
	}

	log.Info().Uint64("id", row.ID).Str("title", row.Title).Msg("category created")

	return c.Status(fiber.StatusCreated).JSON(categories.ToCategory(row))
}

// SetPublished publishes or unpublishes a blog post.
func (s *Service) SetPublished(c *fiber.Ctx) error {
	req := new(PublishRequest)
	if err := c.BodyParser(req); err != nil {
		return handler.BadRequest("Invalid request body")
	}

	if err := s.validator.Struct(req); err != nil {
		return handler.BadRequest("published is required")
	}

	ctx := c.UserContext()
	slug := c.Params("slug")

	if err := s.deps.Content.InitializeBlog(ctx); err != nil {
		return handler.Internal(c, err, "Failed to update post")
	}

	if err := blogctl.SetPublished(ctx, s.deps.DB, slug, *req.Published); err != nil {
		if errors.Is(err, blogctl.ErrPostNotFound) {
			return handler.NotFound("Post not found")
		}

		return handler.Internal(c, err, "Failed to update post")
	}

	return c.JSON(fiber.Map{"success": true, "slug": slug, "published": *req.Published})
}

func firstFieldError(err error) string {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		return strings.ToLower(verrs[0].Field())
	}

	return "validation failed"
}
