package initialize

import (
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CashGlitch/CashGlitch/internal/content"
	"github.com/CashGlitch/CashGlitch/internal/db/models"
	"github.com/CashGlitch/CashGlitch/internal/web/handler/handlertest"
)

func TestRun(t *testing.T) {
	deps := handlertest.NewDeps(t, nil)
	app := handlertest.NewApp()

	require.NoError(t, (&Service{}).Init(app, deps))

	for _, method := range []string{fiber.MethodGet, fiber.MethodPost, fiber.MethodPost} {
		resp := handlertest.Do(t, app, method, Path, nil)
		require.Equal(t, fiber.StatusOK, resp.StatusCode)

		var body Response
		handlertest.DecodeJSON(t, resp, &body)
		assert.True(t, body.Success)
		assert.NotEmpty(t, body.Message)
	}

	var n int64
	require.NoError(t, deps.DB.Model(&models.Category{}).Count(&n).Error)
	assert.Equal(t, int64(len(content.DefaultCategories)), n, "repeated runs do not duplicate seeds")
}

func TestRunFailure(t *testing.T) {
	deps := handlertest.NewDeps(t, nil)
	app := handlertest.NewApp()

	require.NoError(t, (&Service{}).Init(app, deps))

	sqlDB, err := deps.DB.DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.Close())

	resp := handlertest.Do(t, app, fiber.MethodPost, Path, nil)
	assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)
}
