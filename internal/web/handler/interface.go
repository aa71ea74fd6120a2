package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/CashGlitch/CashGlitch/internal/config"
	"github.com/CashGlitch/CashGlitch/internal/content"
	"github.com/CashGlitch/CashGlitch/internal/web/session"
)

// ErrNilDeps is returned by Init when a required dependency is missing.
var ErrNilDeps = errors.New(ErrNilACDFatalLogMsg)

// Deps bundles what route handlers are built from.
type Deps struct {
	Cfg     *config.Config
	DB      *gorm.DB
	Content *content.Initializer
	Session *session.Store

	// Limiter throttles dev-login and the access gate. Nil disables throttling.
	Limiter fiber.Handler
	// ClickLimiter throttles click tracking. Nil disables throttling.
	ClickLimiter fiber.Handler
}

// Validate reports ErrNilDeps when app or one of the core dependencies is nil.
func (d *Deps) Validate(app *fiber.App) error {
	if app == nil || d == nil || d.Cfg == nil || d.DB == nil || d.Content == nil || d.Session == nil {
		return ErrNilDeps
	}

	return nil
}

// Limited prepends the limiter, when configured, to a route's handlers.
func (d *Deps) Limited(handlers ...fiber.Handler) []fiber.Handler {
	return chain(d.Limiter, handlers)
}

// ClickLimited prepends the click limiter, when configured, to a route's handlers.
func (d *Deps) ClickLimited(handlers ...fiber.Handler) []fiber.Handler {
	return chain(d.ClickLimiter, handlers)
}

func chain(first fiber.Handler, handlers []fiber.Handler) []fiber.Handler {
	if first == nil {
		return handlers
	}

	return append([]fiber.Handler{first}, handlers...)
}

// Service is the interface for a web handler service.
type Service interface {
	Init(app *fiber.App, deps *Deps) error
}
