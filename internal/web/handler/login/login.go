// Package login renders the login page of the admin area.
package login

import (
	"github.com/gofiber/fiber/v2"

	"github.com/CashGlitch/CashGlitch/internal/web/handler"
	"github.com/CashGlitch/CashGlitch/internal/web/handler/admin"
	authhandler "github.com/CashGlitch/CashGlitch/internal/web/handler/auth"
	"github.com/CashGlitch/CashGlitch/internal/web/middleware/auth"
)

const (
	// Path is the path to the login page.
	Path = auth.LoginPath

	// TemplateName is the login template.
	TemplateName = "login"
)

// Service is the login handler service.
type Service struct {
	handler.Service
	deps *handler.Deps
}

// Init registers the login page.
func (s *Service) Init(app *fiber.App, deps *handler.Deps) error {
	if err := deps.Validate(app); err != nil {
		return err
	}

	s.deps = deps

	app.Get(Path, s.Get)

	return nil
}

// Get renders the login page. Admins with a valid session go straight to the dashboard.
func (s *Service) Get(c *fiber.Ctx) error {
	data, ok := s.deps.Session.Get(c)
	if ok && data.IsAdmin {
		return c.Redirect(admin.Path, fiber.StatusFound)
	}

	m := fiber.Map{
		"Title":           s.deps.Cfg.Title,
		"DevLoginEnabled": !s.deps.Cfg.IsProduction(),
		"DevLoginURL":     authhandler.Path + authhandler.DevLoginPath,
		"RedirectURL":     admin.Path,
		"Email":           "",
	}

	if ok {
		m["Email"] = data.Email
		m["error"] = "Your account has no access to the admin area"
	}

	return c.Render(TemplateName, m, handler.BaseLayout)
}
