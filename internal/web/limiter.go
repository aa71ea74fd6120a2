package web

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"

	"github.com/CashGlitch/CashGlitch/internal/config"
	"github.com/CashGlitch/CashGlitch/internal/web/handler"
)

const defaultLimiterExpiration = time.Minute

// NewLimiter returns the per-IP limiter for dev-login and the access gate, or
// nil when Webserver.RateLimit.Max is not positive. Counters live in storage;
// a nil storage keeps them in process memory.
func NewLimiter(cfg *config.Config, storage fiber.Storage) fiber.Handler {
	return newLimiter(cfg.Webserver.RateLimit.Max, cfg.Webserver.RateLimit.Expiration, storage)
}

// NewClickLimiter returns the per-IP limiter for click tracking, or nil when
// Webserver.RateLimit.ClickMax is not positive.
func NewClickLimiter(cfg *config.Config, storage fiber.Storage) fiber.Handler {
	return newLimiter(cfg.Webserver.RateLimit.ClickMax, cfg.Webserver.RateLimit.Expiration, storage)
}

func newLimiter(limit int, expiration time.Duration, storage fiber.Storage) fiber.Handler {
	if limit <= 0 {
		return nil
	}

	if expiration <= 0 {
		expiration = defaultLimiterExpiration
	}

	return limiter.New(limiter.Config{
		Max:        limit,
		Expiration: expiration,
		// each limited route has its own budget
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.Route().Path + "|" + c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(handler.ErrorResponse{
				Error: "Too many requests, please try again later",
			})
		},
		Storage: storage,
	})
}
