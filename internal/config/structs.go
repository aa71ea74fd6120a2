package config

import (
	"strings"
	"time"

	"github.com/CashGlitch/CashGlitch/internal/logger"
)

// EnvProduction is the deployment environment name that disables dev-only routes.
const EnvProduction = "production"

// Session settings.
type Session struct {
	ExpiryTime time.Duration
}

// Auth holds identity related settings.
type Auth struct {
	AdminEmail     string // the single operator email treated as admin
	AccessCodeHash string // argon2id hash of the site access code, empty = open gate
}

// Payment holds payment provider credentials.
type Payment struct {
	StripeSecretKey string
}

// RateLimit configures the per-IP limiters on mutating public routes.
type RateLimit struct {
	Max        int           // requests per window for dev-login and the access gate
	ClickMax   int           // requests per window for click tracking
	Expiration time.Duration // window length
}

// Config overall data structure.
type Config struct {
	DevMode     bool   // enable dev mode for development
	Environment string // deployment environment, mirrors NODE_ENV
	DB          DB
	Log         logger.Log
	Title       string
	Webserver   Webserver
	Auth        Auth
	Payment     Payment
}

// IsProduction reports whether the deployment environment is production.
func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.Environment, EnvProduction)
}

// Webserver implement webserver settings.
type Webserver struct {
	DisableRecover      bool      // disable recover middleware
	Domain              string    // cookie domain, empty means the request host
	Port                int       // listening port for the webserver
	ShutDownTime        int       // wait time for shutdown
	URL                 string    // base url for the webserver
	CookieEncryptionKey string    // base64 key for encrypted cookies, empty disables encryption
	SessionSecret       string    // HMAC secret for signed session and access cookies
	AllowOrigins        string    // CORS allowed origins
	Session             Session   // session settings
	RateLimit           RateLimit // limiter for dev-login and click tracking
}
