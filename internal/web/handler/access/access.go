// Package access implements the site access gate.
//
// When an access code hash is configured the visitor has to present the
// matching code; without one the gate opens for everybody who asks.
package access

import (
	"github.com/alexedwards/argon2id"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/CashGlitch/CashGlitch/internal/web/handler"
)

// Path is the route of the access gate.
const Path = handler.APIPrefix + "/access"

// Request is the body of an access request.
type Request struct {
	Code string `json:"code" form:"code"`
}

// Response reports the gate state after a request.
type Response struct {
	Success   bool `json:"success"`
	HasAccess bool `json:"hasAccess"`
}

// Service is the access gate handler service.
type Service struct {
	handler.Service
	deps *handler.Deps
}

// Init registers the access gate routes.
func (s *Service) Init(app *fiber.App, deps *handler.Deps) error {
	if err := deps.Validate(app); err != nil {
		return err
	}

	s.deps = deps

	app.Get(Path, s.Status)
	app.Post(Path, deps.Limited(s.Grant)...)
	app.Delete(Path, s.Revoke)

	return nil
}

// Status reports whether the caller passed the gate.
func (s *Service) Status(c *fiber.Ctx) error {
	has := s.deps.Session.HasAccess(c)

	return c.JSON(Response{Success: true, HasAccess: has})
}

// Grant checks the access code and sets the access cookie.
func (s *Service) Grant(c *fiber.Ctx) error {
	hash := s.deps.Cfg.Auth.AccessCodeHash

	if hash != "" {
		req := new(Request)
		if err := c.BodyParser(req); err != nil || req.Code == "" {
			return handler.BadRequest("Access code is required")
		}

		match, err := argon2id.ComparePasswordAndHash(req.Code, hash)
		if err != nil {
			return handler.Internal(c, err, "Failed to verify access code")
		}

		if !match {
			log.Info().Str("ip", c.IP()).Msg("wrong access code")
			return fiber.NewError(fiber.StatusForbidden, "Invalid access code")
		}
	}

	if err := s.deps.Session.GrantAccess(c); err != nil {
		return handler.Internal(c, err, "Failed to grant access")
	}

	return c.JSON(Response{Success: true, HasAccess: true})
}

// Revoke closes the gate for the caller.
func (s *Service) Revoke(c *fiber.Ctx) error {
	s.deps.Session.RevokeAccess(c)

	return c.JSON(Response{Success: true, HasAccess: false})
}

// HashCode returns the argon2id hash to configure for code.
func HashCode(code string) (string, error) {
	return argon2id.CreateHash(code, argon2id.DefaultParams)
}
