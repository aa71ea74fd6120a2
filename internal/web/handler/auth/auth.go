// Package auth implements the dev login, logout and session routes.
package auth

import (
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/CashGlitch/CashGlitch/internal/web/handler"
)

const (
	// Path is the route prefix of the auth API.
	Path = handler.APIPrefix + "/auth"

	// DevLoginPath signs in with an email only. Disabled in production.
	DevLoginPath = "/dev-login"
	// LogoutPath clears the session and access cookies.
	LogoutPath = "/logout"
	// SessionPath reports the current session.
	SessionPath = "/session"
)

// DevLoginRequest is the body of a dev login.
type DevLoginRequest struct {
	Email string `json:"email" form:"email" validate:"required,email,max=254"`
}

// DevLoginResponse is returned after a successful dev login.
type DevLoginResponse struct {
	Success bool   `json:"success"`
	Email   string `json:"email"`
	IsAdmin bool   `json:"isAdmin"`
	Message string `json:"message"`
}

// LogoutResponse is returned by the logout route.
type LogoutResponse struct {
	Success bool `json:"success"`
}

// SessionResponse describes the session of the caller.
type SessionResponse struct {
	Authenticated bool   `json:"authenticated"`
	HasAccess     bool   `json:"hasAccess"`
	Email         string `json:"email"`
	IsAdmin       bool   `json:"isAdmin"`
}

// Service is the auth handler service.
type Service struct {
	handler.Service
	deps      *handler.Deps
	validator *validator.Validate
}

// Init registers the auth routes.
func (s *Service) Init(app *fiber.App, deps *handler.Deps) error {
	if err := deps.Validate(app); err != nil {
		return err
	}

	s.deps = deps
	s.validator = validator.New()

	devLogin := deps.Limited(s.DevLogin)
	if deps.Cfg.IsProduction() {
		// disabled route: always 403, never 429
		devLogin = []fiber.Handler{s.DevLogin}
	}

	app.Route(Path, func(router fiber.Router) {
		router.Post(DevLoginPath, devLogin...)
		router.Post(LogoutPath, s.Logout)
		router.Get(SessionPath, s.Session)
	})

	return nil
}

// DevLogin signs the caller in as the given email and opens the site gate.
func (s *Service) DevLogin(c *fiber.Ctx) error {
	if s.deps.Cfg.IsProduction() {
		return fiber.NewError(fiber.StatusForbidden, "Dev login is disabled in production")
	}

	req := new(DevLoginRequest)
	if err := c.BodyParser(req); err != nil {
		return handler.BadRequest("Invalid request body")
	}

	req.Email = strings.TrimSpace(req.Email)

	if err := s.validator.Struct(req); err != nil {
		return handler.BadRequest("A valid email is required")
	}

	if err := s.deps.Session.Set(c, req.Email); err != nil {
		return handler.Internal(c, err, "Failed to create session")
	}

	if err := s.deps.Session.GrantAccess(c); err != nil {
		return handler.Internal(c, err, "Failed to create session")
	}

	isAdmin := s.deps.Session.IsAdmin(req.Email)

	log.Info().Str("email", req.Email).Bool("admin", isAdmin).Msg("dev login")

	return c.JSON(DevLoginResponse{
		Success: true,
		Email:   req.Email,
		IsAdmin: isAdmin,
		Message: "Logged in successfully",
	})
}

// Logout clears the session and access cookies.
func (s *Service) Logout(c *fiber.Ctx) error {
	s.deps.Session.Clear(c)
	s.deps.Session.RevokeAccess(c)

	return c.JSON(LogoutResponse{Success: true})
}

// Session reports who the caller is and whether the site gate is open.
func (s *Service) Session(c *fiber.Ctx) error {
	out := SessionResponse{
		HasAccess: s.deps.Session.HasAccess(c),
	}

	if data, ok := s.deps.Session.Get(c); ok {
		out.Authenticated = true
		out.Email = data.Email
		out.IsAdmin = data.IsAdmin
	}

	return c.JSON(out)
}
