package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CashGlitch/CashGlitch/internal/config"
	"github.com/CashGlitch/CashGlitch/internal/web/session"
)

func newTestApp(t *testing.T) (*fiber.App, *session.Store) {
	t.Helper()

	store, err := session.New(&config.Config{
		Webserver: config.Webserver{
			SessionSecret: "guard-test-secret-guard-test-secret",
			Session:       config.Session{ExpiryTime: time.Hour},
		},
		Auth: config.Auth{AdminEmail: "admin@cashglitch.com"},
	})
	require.NoError(t, err)

	app := fiber.New()

	app.Post("/login-as", func(c *fiber.Ctx) error {
		return store.Set(c, c.Query("email"))
	})

	app.Group("/admin", AdminGuard(store)).Get("/", func(c *fiber.Ctx) error {
		data, ok := CurrentSession(c)
		if !ok {
			return c.SendStatus(fiber.StatusInternalServerError)
		}

		return c.SendString(data.Email)
	})

	app.Group("/api/admin", AdminAPIGuard(store)).Get("/ping", func(c *fiber.Ctx) error {
		return c.SendString("pong")
	})

	return app, store
}

func sessionCookie(t *testing.T, app *fiber.App, email string) *http.Cookie {
	t.Helper()

	resp, err := app.Test(httptest.NewRequest(fiber.MethodPost, "/login-as?email="+email, nil))
	require.NoError(t, err)

	for _, ck := range resp.Cookies() {
		if ck.Name == session.DefaultCookies.Session {
			return ck
		}
	}

	t.Fatal("no session cookie issued")

	return nil
}

func request(t *testing.T, app *fiber.App, target string, ck *http.Cookie) *http.Response {
	t.Helper()

	req := httptest.NewRequest(fiber.MethodGet, target, nil)
	if ck != nil {
		req.AddCookie(&http.Cookie{Name: ck.Name, Value: ck.Value})
	}

	resp, err := app.Test(req)
	require.NoError(t, err)

	return resp
}

func TestAdminGuard(t *testing.T) {
	app, _ := newTestApp(t)

	testCases := []struct {
		name             string
		email            string
		expectedStatus   int
		expectedLocation string
	}{
		{name: "no session", expectedStatus: fiber.StatusFound, expectedLocation: LoginPath},
		{name: "non admin", email: "player@example.com", expectedStatus: fiber.StatusFound, expectedLocation: LoginPath},
		{name: "admin", email: "ADMIN@cashglitch.com", expectedStatus: fiber.StatusOK},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var ck *http.Cookie
			if tc.email != "" {
				ck = sessionCookie(t, app, tc.email)
			}

			resp := request(t, app, "/admin", ck)
			assert.Equal(t, tc.expectedStatus, resp.StatusCode)
			assert.Equal(t, tc.expectedLocation, resp.Header.Get(fiber.HeaderLocation))
		})
	}
}

func TestAdminAPIGuard(t *testing.T) {
	app, _ := newTestApp(t)

	resp := request(t, app, "/api/admin/ping", nil)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	resp = request(t, app, "/api/admin/ping", sessionCookie(t, app, "player@example.com"))
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)

	resp = request(t, app, "/api/admin/ping", sessionCookie(t, app, "admin@cashglitch.com"))
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestTamperedCookieIsRedirected(t *testing.T) {
	app, _ := newTestApp(t)

	ck := sessionCookie(t, app, "admin@cashglitch.com")
	ck.Value += "x"

	resp := request(t, app, "/admin", ck)
	assert.Equal(t, fiber.StatusFound, resp.StatusCode)
}
