// Package initialize exposes the content initializer over HTTP.
package initialize

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/CashGlitch/CashGlitch/internal/web/handler"
)

// Path is the route of the initializer.
const Path = handler.APIPrefix + "/init"

// Response is the body returned by the initializer route.
type Response struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// Service is the initializer handler service.
type Service struct {
	handler.Service
	deps *handler.Deps
}

// Init registers GET and POST on Path.
func (s *Service) Init(app *fiber.App, deps *handler.Deps) error {
	if err := deps.Validate(app); err != nil {
		return err
	}

	s.deps = deps

	app.Get(Path, s.Run)
	app.Post(Path, s.Run)

	return nil
}

// Run creates all content tables and seeds the defaults.
func (s *Service) Run(c *fiber.Ctx) error {
	if err := s.deps.Content.InitializeAll(c.UserContext()); err != nil {
		return handler.Internal(c, err, "Failed to initialize database")
	}

	log.Info().Str("ip", c.IP()).Msg("content initialized")

	return c.JSON(Response{
		Success: true,
		Message: "Database initialized successfully",
	})
}
