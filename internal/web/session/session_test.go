package session

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CashGlitch/CashGlitch/internal/config"
)

func newTestConfig() *config.Config {
	return &config.Config{
		Environment: "development",
		Webserver: config.Webserver{
			SessionSecret: "test-secret-test-secret-test-secret",
			Session:       config.Session{ExpiryTime: time.Hour},
		},
		Auth: config.Auth{AdminEmail: "Admin@CashGlitch.com"},
	}
}

func newTestApp(t *testing.T, store *Store) *fiber.App {
	t.Helper()

	app := fiber.New()

	app.Post("/set", func(c *fiber.Ctx) error {
		return store.Set(c, c.Query("email"))
	})
	app.Get("/get", func(c *fiber.Ctx) error {
		data, ok := store.Get(c)
		if !ok {
			return c.SendStatus(fiber.StatusUnauthorized)
		}

		return c.JSON(fiber.Map{"email": data.Email, "isAdmin": data.IsAdmin})
	})
	app.Post("/clear", func(c *fiber.Ctx) error {
		store.Clear(c)
		return nil
	})
	app.Post("/grant", func(c *fiber.Ctx) error {
		return store.GrantAccess(c)
	})
	app.Post("/revoke", func(c *fiber.Ctx) error {
		store.RevokeAccess(c)
		return nil
	})
	app.Get("/access", func(c *fiber.Ctx) error {
		if store.HasAccess(c) {
			return c.SendStatus(fiber.StatusOK)
		}

		return c.SendStatus(fiber.StatusForbidden)
	})

	return app
}

func do(t *testing.T, app *fiber.App, method, target string, cookies ...*http.Cookie) *http.Response {
	t.Helper()

	req := httptest.NewRequest(method, target, nil)
	for _, ck := range cookies {
		req.AddCookie(&http.Cookie{Name: ck.Name, Value: ck.Value})
	}

	resp, err := app.Test(req)
	require.NoError(t, err)

	return resp
}

func cookieNamed(t *testing.T, resp *http.Response, name string) *http.Cookie {
	t.Helper()

	for _, ck := range resp.Cookies() {
		if ck.Name == name {
			return ck
		}
	}

	t.Fatalf("cookie %q not set", name)

	return nil
}

func TestSetThenGet(t *testing.T) {
	store, err := New(newTestConfig())
	require.NoError(t, err)

	app := newTestApp(t, store)

	resp := do(t, app, fiber.MethodPost, "/set?email=Player@Example.com")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	ck := cookieNamed(t, resp, DefaultCookies.Session)
	assert.True(t, ck.HttpOnly)
	assert.True(t, ck.Secure)
	assert.Equal(t, "/", ck.Path)

	resp = do(t, app, fiber.MethodGet, "/get", ck)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var body struct {
		Email   string `json:"email"`
		IsAdmin bool   `json:"isAdmin"`
	}
	decodeJSON(t, resp, &body)
	assert.Equal(t, "Player@Example.com", body.Email, "email case is preserved")
	assert.False(t, body.IsAdmin)
}

func TestAdminFlag(t *testing.T) {
	store, err := New(newTestConfig())
	require.NoError(t, err)

	app := newTestApp(t, store)

	resp := do(t, app, fiber.MethodPost, "/set?email=admin@cashglitch.com")
	resp = do(t, app, fiber.MethodGet, "/get", cookieNamed(t, resp, DefaultCookies.Session))
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var body struct {
		IsAdmin bool `json:"isAdmin"`
	}
	decodeJSON(t, resp, &body)
	assert.True(t, body.IsAdmin)
}

func TestIsAdmin(t *testing.T) {
	store, err := New(newTestConfig())
	require.NoError(t, err)

	assert.True(t, store.IsAdmin("admin@cashglitch.com"))
	assert.True(t, store.IsAdmin("ADMIN@CASHGLITCH.COM"))
	assert.False(t, store.IsAdmin("admin@cashglitch.co"))
	assert.False(t, store.IsAdmin(""))

	cfg := newTestConfig()
	cfg.Auth.AdminEmail = ""
	store, err = New(cfg)
	require.NoError(t, err)
	assert.False(t, store.IsAdmin(""), "no admin configured means nobody is admin")
	assert.False(t, store.IsAdmin("admin@cashglitch.com"))
}

func TestGetRejectsBadCookies(t *testing.T) {
	store, err := New(newTestConfig())
	require.NoError(t, err)

	app := newTestApp(t, store)

	// no cookie
	resp := do(t, app, fiber.MethodGet, "/get")
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	// garbage
	resp = do(t, app, fiber.MethodGet, "/get", &http.Cookie{Name: DefaultCookies.Session, Value: "not-a-token"})
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	// signed with another secret
	otherCfg := newTestConfig()
	otherCfg.Webserver.SessionSecret = "another-secret-another-secret"
	other, err := New(otherCfg)
	require.NoError(t, err)

	resp = do(t, newTestApp(t, other), fiber.MethodPost, "/set?email=a@b.c")
	resp = do(t, app, fiber.MethodGet, "/get", cookieNamed(t, resp, DefaultCookies.Session))
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	// an access token is not a session
	resp = do(t, app, fiber.MethodPost, "/grant")
	access := cookieNamed(t, resp, DefaultCookies.Access)
	resp = do(t, app, fiber.MethodGet, "/get", &http.Cookie{Name: DefaultCookies.Session, Value: access.Value})
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestExpiredSession(t *testing.T) {
	store, err := New(newTestConfig())
	require.NoError(t, err)

	app := newTestApp(t, store)

	resp := do(t, app, fiber.MethodPost, "/set?email=a@b.c")
	ck := cookieNamed(t, resp, DefaultCookies.Session)

	store.now = func() time.Time { return time.Now().Add(2 * time.Hour) }

	resp = do(t, app, fiber.MethodGet, "/get", ck)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestClear(t *testing.T) {
	store, err := New(newTestConfig())
	require.NoError(t, err)

	app := newTestApp(t, store)

	resp := do(t, app, fiber.MethodPost, "/clear")
	ck := cookieNamed(t, resp, DefaultCookies.Session)
	assert.Empty(t, ck.Value)
	assert.True(t, ck.Expires.Before(time.Now()))
}

func TestSetRequiresEmail(t *testing.T) {
	store, err := New(newTestConfig())
	require.NoError(t, err)

	app := newTestApp(t, store)

	resp := do(t, app, fiber.MethodPost, "/set")
	assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)
	assert.Empty(t, resp.Cookies())
}

func TestAccessCookie(t *testing.T) {
	store, err := New(newTestConfig())
	require.NoError(t, err)

	app := newTestApp(t, store)

	resp := do(t, app, fiber.MethodGet, "/access")
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)

	resp = do(t, app, fiber.MethodPost, "/grant")
	access := cookieNamed(t, resp, DefaultCookies.Access)

	resp = do(t, app, fiber.MethodGet, "/access", access)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	// a session token does not open the gate
	resp = do(t, app, fiber.MethodPost, "/set?email=a@b.c")
	sess := cookieNamed(t, resp, DefaultCookies.Session)
	resp = do(t, app, fiber.MethodGet, "/access", &http.Cookie{Name: DefaultCookies.Access, Value: sess.Value})
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)

	resp = do(t, app, fiber.MethodPost, "/revoke")
	assert.Empty(t, cookieNamed(t, resp, DefaultCookies.Access).Value)
}

func TestNew(t *testing.T) {
	t.Run("production requires secret", func(t *testing.T) {
		cfg := newTestConfig()
		cfg.Environment = config.EnvProduction
		cfg.Webserver.SessionSecret = ""

		_, err := New(cfg)
		require.ErrorIs(t, err, ErrSecretRequired)
	})

	t.Run("dev mode generates secret and drops secure flag", func(t *testing.T) {
		cfg := newTestConfig()
		cfg.Environment = config.EnvProduction
		cfg.DevMode = true
		cfg.Webserver.SessionSecret = ""

		store, err := New(cfg)
		require.NoError(t, err)
		assert.Len(t, store.secret, secretSize)
		assert.False(t, store.Cookies().Secure)
	})

	t.Run("default expiry", func(t *testing.T) {
		cfg := newTestConfig()
		cfg.Webserver.Session.ExpiryTime = 0

		store, err := New(cfg)
		require.NoError(t, err)
		assert.Equal(t, defaultExpiryTime, store.expiry)
	})

	t.Run("nil config", func(t *testing.T) {
		_, err := New(nil)
		require.Error(t, err)
	})
}
