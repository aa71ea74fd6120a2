package access

import (
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CashGlitch/CashGlitch/internal/web/handler/handlertest"
	"github.com/CashGlitch/CashGlitch/internal/web/session"
)

func newTestApp(t *testing.T, code string) *fiber.App {
	t.Helper()

	cfg := handlertest.NewConfig()

	if code != "" {
		hash, err := HashCode(code)
		require.NoError(t, err)

		cfg.Auth.AccessCodeHash = hash
	}

	deps := handlertest.NewDeps(t, cfg)
	app := handlertest.NewApp()

	require.NoError(t, (&Service{}).Init(app, deps))

	return app
}

func TestOpenGate(t *testing.T) {
	app := newTestApp(t, "")

	resp := handlertest.Do(t, app, fiber.MethodPost, Path, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	ck := handlertest.Cookie(resp, session.DefaultCookies.Access)
	require.NotNil(t, ck)

	resp = handlertest.Do(t, app, fiber.MethodGet, Path, nil, ck)

	var out Response
	handlertest.DecodeJSON(t, resp, &out)
	assert.True(t, out.HasAccess)
}

func TestCodeGate(t *testing.T) {
	app := newTestApp(t, "glitch-2024")

	testCases := []struct {
		name           string
		body           interface{}
		expectedStatus int
	}{
		{name: "no code", body: map[string]string{}, expectedStatus: fiber.StatusBadRequest},
		{name: "wrong code", body: map[string]string{"code": "guess"}, expectedStatus: fiber.StatusForbidden},
		{name: "right code", body: map[string]string{"code": "glitch-2024"}, expectedStatus: fiber.StatusOK},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			resp := handlertest.Do(t, app, fiber.MethodPost, Path, tc.body)
			require.Equal(t, tc.expectedStatus, resp.StatusCode)

			ck := handlertest.Cookie(resp, session.DefaultCookies.Access)
			if tc.expectedStatus == fiber.StatusOK {
				assert.NotNil(t, ck)
			} else {
				assert.Nil(t, ck)
			}
		})
	}
}

func TestRevoke(t *testing.T) {
	app := newTestApp(t, "")

	resp := handlertest.Do(t, app, fiber.MethodDelete, Path, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	ck := handlertest.Cookie(resp, session.DefaultCookies.Access)
	require.NotNil(t, ck)
	assert.Empty(t, ck.Value)

	resp = handlertest.Do(t, app, fiber.MethodGet, Path, nil)

	var out Response
	handlertest.DecodeJSON(t, resp, &out)
	assert.False(t, out.HasAccess)
}
