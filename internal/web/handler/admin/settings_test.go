package admin

import (
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CashGlitch/CashGlitch/internal/content"
	"github.com/CashGlitch/CashGlitch/internal/db/controller/setting"
	"github.com/CashGlitch/CashGlitch/internal/web/handler/handlertest"
)

func TestSettingsGuard(t *testing.T) {
	env := newTestEnv(t)
	target := APIPath + SettingsPath + "/site_name"

	resp := handlertest.Do(t, env.app, fiber.MethodGet, target, nil)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	resp = handlertest.Do(t, env.app, fiber.MethodPut, target, map[string]string{"value": "x"}, env.player)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)

	resp = handlertest.Do(t, env.app, fiber.MethodDelete, target, nil, env.player)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}

func TestListAndGetSettings(t *testing.T) {
	env := newTestEnv(t)

	resp := handlertest.Do(t, env.app, fiber.MethodGet, APIPath+SettingsPath, nil, env.admin)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var list []Setting
	handlertest.DecodeJSON(t, resp, &list)
	assert.Len(t, list, len(content.DefaultSettings))

	resp = handlertest.Do(t, env.app, fiber.MethodGet, APIPath+SettingsPath+"/site_name", nil, env.admin)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var got Setting
	handlertest.DecodeJSON(t, resp, &got)
	assert.Equal(t, Setting{Key: "site_name", Value: content.DefaultSettings["site_name"]}, got)

	resp = handlertest.Do(t, env.app, fiber.MethodGet, APIPath+SettingsPath+"/nope", nil, env.admin)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestCreateSetting(t *testing.T) {
	env := newTestEnv(t)
	target := APIPath + SettingsPath

	testCases := []struct {
		name           string
		body           interface{}
		expectedStatus int
	}{
		{name: "created", body: map[string]string{"key": "banner", "value": "Spring promo"}, expectedStatus: fiber.StatusCreated},
		{name: "duplicate", body: map[string]string{"key": "banner", "value": "again"}, expectedStatus: fiber.StatusConflict},
		{name: "missing key", body: map[string]string{"value": "x"}, expectedStatus: fiber.StatusBadRequest},
		{name: "blank key", body: map[string]string{"key": "  ", "value": "x"}, expectedStatus: fiber.StatusBadRequest},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			resp := handlertest.Do(t, env.app, fiber.MethodPost, target, tc.body, env.admin)
			assert.Equal(t, tc.expectedStatus, resp.StatusCode)
		})
	}

	row, err := setting.Get(env.deps.DB, "banner")
	require.NoError(t, err)
	assert.Equal(t, "Spring promo", row.Value)
}

func TestPutSetting(t *testing.T) {
	env := newTestEnv(t)

	resp := handlertest.Do(t, env.app, fiber.MethodPut, APIPath+SettingsPath+"/hero_title", map[string]string{}, env.admin)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	resp = handlertest.Do(t, env.app, fiber.MethodPut, APIPath+SettingsPath+"/hero_title", map[string]string{"value": "Win big"}, env.admin)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var got Setting
	handlertest.DecodeJSON(t, resp, &got)
	assert.Equal(t, Setting{Key: "hero_title", Value: "Win big"}, got)

	// unknown keys are created
	resp = handlertest.Do(t, env.app, fiber.MethodPut, APIPath+SettingsPath+"/footer", map[string]string{"value": ""}, env.admin)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	values, err := setting.AsMap(env.deps.DB)
	require.NoError(t, err)
	assert.Equal(t, "Win big", values["hero_title"])
	assert.Contains(t, values, "footer")
}

func TestDeleteSetting(t *testing.T) {
	env := newTestEnv(t)
	target := APIPath + SettingsPath + "/support_email"

	resp := handlertest.Do(t, env.app, fiber.MethodDelete, target, nil, env.admin)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	_, err := setting.Get(env.deps.DB, "support_email")
	require.ErrorIs(t, err, setting.ErrSettingNotFound)

	resp = handlertest.Do(t, env.app, fiber.MethodDelete, target, nil, env.admin)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}
