// Package handlertest builds fiber apps and dependencies for handler tests.
package handlertest

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"

	"github.com/CashGlitch/CashGlitch/internal/config"
	"github.com/CashGlitch/CashGlitch/internal/content"
	"github.com/CashGlitch/CashGlitch/internal/db/dbtest"
	"github.com/CashGlitch/CashGlitch/internal/web/handler"
	"github.com/CashGlitch/CashGlitch/internal/web/session"
)

// AdminEmail is the admin identity configured by NewConfig.
const AdminEmail = "admin@cashglitch.com"

// NoOpViews is a minimal fiber views engine. It writes the template name
// followed by the "error" value of a fiber.Map, if present.
type NoOpViews struct{}

// Load implements fiber.Views.
func (NoOpViews) Load() error { return nil }

// Render implements fiber.Views.
func (NoOpViews) Render(w io.Writer, name string, data interface{}, _ ...string) error {
	_, _ = io.WriteString(w, name)

	if m, ok := data.(fiber.Map); ok {
		if v, exists := m["error"]; exists && v != nil {
			if s, isString := v.(string); isString {
				_, _ = io.WriteString(w, ":"+s)
			}
		}
	}

	return nil
}

// NewConfig returns a development config with a fixed session secret.
func NewConfig() *config.Config {
	return &config.Config{
		Environment: "development",
		Webserver: config.Webserver{
			URL:           "http://localhost",
			Port:          3000,
			SessionSecret: "handler-test-secret-handler-test-secret",
			Session:       config.Session{ExpiryTime: time.Hour},
		},
		Auth: config.Auth{AdminEmail: AdminEmail},
	}
}

// NewDeps returns handler dependencies on a fresh in-memory database.
func NewDeps(t *testing.T, cfg *config.Config) *handler.Deps {
	t.Helper()

	if cfg == nil {
		cfg = NewConfig()
	}

	db := dbtest.New(t)

	store, err := session.New(cfg)
	require.NoError(t, err)

	return &handler.Deps{
		Cfg:     cfg,
		DB:      db,
		Content: content.New(db),
		Session: store,
	}
}

// NewApp returns a fiber app using the JSON error handler and NoOpViews.
func NewApp() *fiber.App {
	return fiber.New(fiber.Config{
		ErrorHandler: handler.ErrorHandler,
		Views:        NoOpViews{},
	})
}

// Do sends a request with an optional JSON body and cookies.
func Do(t *testing.T, app *fiber.App, method, target string, body interface{}, cookies ...*http.Cookie) *http.Response {
	t.Helper()

	var reader io.Reader

	switch b := body.(type) {
	case nil:
	case string:
		reader = bytes.NewBufferString(b)
	default:
		raw, err := json.Marshal(b)
		require.NoError(t, err)

		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, target, reader)
	if reader != nil {
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	}

	for _, ck := range cookies {
		if ck != nil {
			req.AddCookie(&http.Cookie{Name: ck.Name, Value: ck.Value})
		}
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	return resp
}

// DecodeJSON decodes the response body into v.
func DecodeJSON(t *testing.T, resp *http.Response, v interface{}) {
	t.Helper()

	defer resp.Body.Close()

	require.NoError(t, json.NewDecoder(resp.Body).Decode(v))
}

// Cookie returns the named cookie set by resp, or nil.
func Cookie(resp *http.Response, name string) *http.Cookie {
	for _, ck := range resp.Cookies() {
		if ck.Name == name {
			return ck
		}
	}

	return nil
}

// SessionCookie issues a valid session cookie for email.
func SessionCookie(t *testing.T, store *session.Store, email string) *http.Cookie {
	t.Helper()

	app := fiber.New()
	app.Get("/", func(c *fiber.Ctx) error {
		return store.Set(c, email)
	})

	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/", nil))
	require.NoError(t, err)

	ck := Cookie(resp, store.Cookies().Session)
	require.NotNil(t, ck, "session cookie not issued")

	return ck
}
