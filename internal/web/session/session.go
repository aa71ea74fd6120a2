// Package session keeps the signed identity and access cookies.
//
// Nothing is stored server side: the session cookie holds an HS256 signed
// token with the visitor email, the access cookie a token proving the site
// gate was passed. Both are independent of each other.
package session

import (
	"crypto/rand"
	"errors"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog/log"

	"github.com/CashGlitch/CashGlitch/internal/config"
)

const (
	issuer = "cashglitch"

	kindSession = "session"
	kindAccess  = "access"

	secretSize        = 32
	defaultExpiryTime = 7 * 24 * time.Hour
)

var (
	// ErrSecretRequired is returned when no signing secret is configured outside dev mode.
	ErrSecretRequired = errors.New("session secret is required in production")
	// ErrEmailEmpty is returned when a session is created without an email.
	ErrEmailEmpty = errors.New("session email cannot be empty")
)

// Cookies names the session and access cookies and their shared attributes.
type Cookies struct {
	Session  string
	Access   string
	Path     string
	Domain   string
	SameSite string
	HTTPOnly bool
	Secure   bool
}

// DefaultCookies is the cookie configuration used by every handler.
var DefaultCookies = Cookies{
	Session:  "cg_session",
	Access:   "cg_access",
	Path:     "/",
	SameSite: fiber.CookieSameSiteLaxMode,
	HTTPOnly: true,
	Secure:   true,
}

// Data is the identity read from a valid session cookie.
type Data struct {
	Email     string
	IsAdmin   bool
	ExpiresAt time.Time
}

type claims struct {
	Kind string `json:"knd"`
	jwt.RegisteredClaims
}

// Store signs, reads and clears the session and access cookies.
type Store struct {
	cookies    Cookies
	secret     []byte
	adminEmail string
	expiry     time.Duration
	now        func() time.Time
}

// New creates a Store from the webserver and auth configuration.
func New(cfg *config.Config) (*Store, error) {
	if cfg == nil {
		return nil, errors.New("config is nil")
	}

	secret := []byte(cfg.Webserver.SessionSecret)

	if len(secret) == 0 {
		if cfg.IsProduction() && !cfg.DevMode {
			return nil, ErrSecretRequired
		}

		secret = make([]byte, secretSize)
		if _, err := rand.Read(secret); err != nil {
			return nil, err
		}

		log.Warn().Msg("no session secret configured: using a random secret, sessions end on restart")
	}

	expiry := cfg.Webserver.Session.ExpiryTime
	if expiry <= 0 {
		expiry = defaultExpiryTime
	}

	cookies := DefaultCookies
	cookies.Domain = cfg.Webserver.Domain

	if cfg.DevMode {
		cookies.Secure = false
	}

	return &Store{
		cookies:    cookies,
		secret:     secret,
		adminEmail: strings.TrimSpace(cfg.Auth.AdminEmail),
		expiry:     expiry,
		now:        time.Now,
	}, nil
}

// Cookies returns the cookie configuration of the store.
func (s *Store) Cookies() Cookies {
	return s.cookies
}

// IsAdmin reports whether email is the configured admin email. Case is ignored.
func (s *Store) IsAdmin(email string) bool {
	if s.adminEmail == "" || email == "" {
		return false
	}

	return strings.EqualFold(strings.TrimSpace(email), s.adminEmail)
}

// Get returns the identity of the request. A missing, tampered or expired cookie yields false.
func (s *Store) Get(c *fiber.Ctx) (*Data, bool) {
	cl, ok := s.read(c, s.cookies.Session, kindSession)
	if !ok || cl.Subject == "" {
		return nil, false
	}

	data := &Data{
		Email:   cl.Subject,
		IsAdmin: s.IsAdmin(cl.Subject),
	}

	if cl.ExpiresAt != nil {
		data.ExpiresAt = cl.ExpiresAt.Time
	}

	return data, true
}

// Set writes a session cookie for email.
func (s *Store) Set(c *fiber.Ctx, email string) error {
	if email == "" {
		return ErrEmailEmpty
	}

	return s.write(c, s.cookies.Session, kindSession, email)
}

// Clear expires the session cookie.
func (s *Store) Clear(c *fiber.Ctx) {
	s.expire(c, s.cookies.Session)
}

// GrantAccess writes the access cookie.
func (s *Store) GrantAccess(c *fiber.Ctx) error {
	return s.write(c, s.cookies.Access, kindAccess, "")
}

// HasAccess reports whether the request carries a valid access cookie.
func (s *Store) HasAccess(c *fiber.Ctx) bool {
	_, ok := s.read(c, s.cookies.Access, kindAccess)
	return ok
}

// RevokeAccess expires the access cookie.
func (s *Store) RevokeAccess(c *fiber.Ctx) {
	s.expire(c, s.cookies.Access)
}

func (s *Store) write(c *fiber.Ctx, name, kind, subject string) error {
	now := s.now()
	expiresAt := now.Add(s.expiry)

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		Kind: kind,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	})

	signed, err := token.SignedString(s.secret)
	if err != nil {
		return err
	}

	c.Cookie(&fiber.Cookie{
		Name:     name,
		Value:    signed,
		Path:     s.cookies.Path,
		Domain:   s.cookies.Domain,
		Expires:  expiresAt,
		MaxAge:   int(s.expiry.Seconds()),
		Secure:   s.cookies.Secure,
		HTTPOnly: s.cookies.HTTPOnly,
		SameSite: s.cookies.SameSite,
	})

	return nil
}

func (s *Store) read(c *fiber.Ctx, name, kind string) (*claims, bool) {
	raw := c.Cookies(name)
	if raw == "" {
		return nil, false
	}

	cl := &claims{}

	token, err := jwt.ParseWithClaims(raw, cl,
		func(_ *jwt.Token) (interface{}, error) {
			return s.secret, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil || !token.Valid {
		log.Debug().Err(err).Str("cookie", name).Msg("rejected cookie")
		return nil, false
	}

	if cl.Kind != kind {
		return nil, false
	}

	return cl, true
}

func (s *Store) expire(c *fiber.Ctx, name string) {
	c.Cookie(&fiber.Cookie{
		Name:     name,
		Value:    "",
		Path:     s.cookies.Path,
		Domain:   s.cookies.Domain,
		Expires:  s.now().Add(-24 * time.Hour),
		Secure:   s.cookies.Secure,
		HTTPOnly: s.cookies.HTTPOnly,
		SameSite: s.cookies.SameSite,
	})
}
