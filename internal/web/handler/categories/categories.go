// Package categories serves the landing page categories and tracks their clicks.
package categories

import (
	"encoding/json"
	"errors"
	"math"
	"strconv"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	categoryctl "github.com/CashGlitch/CashGlitch/internal/db/controller/category"
	"github.com/CashGlitch/CashGlitch/internal/db/models"
	"github.com/CashGlitch/CashGlitch/internal/web/handler"
)

const (
	// Path is the route prefix of the categories API.
	Path = handler.APIPrefix + "/categories"

	// TrackPath is the click tracking route below Path.
	TrackPath = "/track"

	maxSafeInteger = 1<<53 - 1
)

// ErrInvalidID is returned when the tracked id is not a positive integer JSON number.
var ErrInvalidID = errors.New("id must be a positive integer")

var (
	clicks     *prometheus.CounterVec //nolint:gochecknoglobals
	clicksOnce sync.Once              //nolint:gochecknoglobals
)

func clickCounter() *prometheus.CounterVec {
	clicksOnce.Do(func() {
		clicks = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "category_clicks_total",
				Help: "Number of tracked category clicks.",
			},
			[]string{"category_id"},
		)
	})

	return clicks
}

// Category is the JSON shape of a category.
type Category struct {
	ID          uint64      `json:"id"`
	Title       string      `json:"title"`
	Description string      `json:"description"`
	Link        string      `json:"link"`
	Icon        models.Icon `json:"icon"`
	SortOrder   int         `json:"sortOrder"`
	IsActive    bool        `json:"isActive"`
	ClickCount  int64       `json:"clickCount"`
	CreatedAt   time.Time   `json:"createdAt"`
	UpdatedAt   time.Time   `json:"updatedAt"`
}

// ToCategory maps a category row to its JSON shape.
func ToCategory(c *models.Category) Category {
	return Category{
		ID:          c.ID,
		Title:       c.Title,
		Description: c.Description,
		Link:        c.Link,
		Icon:        c.Icon.OrFallback(),
		SortOrder:   c.SortOrder,
		IsActive:    c.IsActive,
		ClickCount:  c.ClickCount,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}

// TrackRequest is the body of a click tracking request.
type TrackRequest struct {
	ID json.RawMessage `json:"id"`
}

// ParseID accepts only JSON numbers holding a positive integer.
func ParseID(raw json.RawMessage) (uint64, error) {
	if len(raw) == 0 {
		return 0, ErrInvalidID
	}

	// strings, booleans, objects and arrays fail to decode into a float
	var f float64
	if err := json.Unmarshal(raw, &f); err != nil {
		return 0, ErrInvalidID
	}

	if f < 1 || f > maxSafeInteger || f != math.Trunc(f) {
		return 0, ErrInvalidID
	}

	return uint64(f), nil
}

// Service is the categories handler service.
type Service struct {
	handler.Service
	deps *handler.Deps
}

// Init registers the categories routes.
func (s *Service) Init(app *fiber.App, deps *handler.Deps) error {
	if err := deps.Validate(app); err != nil {
		return err
	}

	s.deps = deps

	clickCounter()

	app.Route(Path, func(router fiber.Router) {
		router.Get(handler.RootPath, s.List)
		router.Post(TrackPath, deps.ClickLimited(s.Track)...)
	})

	return nil
}

// List returns the active categories in display order.
func (s *Service) List(c *fiber.Ctx) error {
	ctx := c.UserContext()

	if err := s.deps.Content.InitializeCategories(ctx); err != nil {
		return handler.Internal(c, err, "Failed to fetch categories")
	}

	rows, err := categoryctl.ListActive(ctx, s.deps.DB)
	if err != nil {
		return handler.Internal(c, err, "Failed to fetch categories")
	}

	out := make([]Category, 0, len(rows))
	for i := range rows {
		out = append(out, ToCategory(&rows[i]))
	}

	return c.JSON(out)
}

// Track increments the click counter of one category.
func (s *Service) Track(c *fiber.Ctx) error {
	var req TrackRequest
	if err := json.Unmarshal(c.Body(), &req); err != nil {
		return handler.BadRequest("Invalid request body")
	}

	id, err := ParseID(req.ID)
	if err != nil {
		return handler.BadRequest("Invalid category id")
	}

	ctx := c.UserContext()

	if err := s.deps.Content.InitializeCategories(ctx); err != nil {
		return handler.Internal(c, err, "Failed to track click")
	}

	if err := categoryctl.TrackClick(ctx, s.deps.DB, id); err != nil {
		if errors.Is(err, categoryctl.ErrCategoryNotFound) {
			return handler.NotFound("Category not found")
		}

		return handler.Internal(c, err, "Failed to track click")
	}

	clickCounter().WithLabelValues(strconv.FormatUint(id, 10)).Inc()

	return c.JSON(fiber.Map{"success": true})
}
