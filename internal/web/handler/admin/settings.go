package admin

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/CashGlitch/CashGlitch/internal/db/controller/setting"
	"github.com/CashGlitch/CashGlitch/internal/db/models"
	"github.com/CashGlitch/CashGlitch/internal/web/handler"
)

// SettingsPath is the admin API route of the site settings, relative to APIPath.
const SettingsPath = "/settings"

// Setting is the JSON shape of a site setting.
type Setting struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// SettingRequest is the body of a setting creation.
type SettingRequest struct {
	Key   string `json:"key" validate:"required,max=191"`
	Value string `json:"value" validate:"max=10000"`
}

// SettingValueRequest is the body of a setting update.
type SettingValueRequest struct {
	Value *string `json:"value" validate:"required"`
}

func toSetting(row *models.SiteSetting) Setting {
	return Setting{Key: row.Key, Value: row.Value}
}

// ListSettings returns every setting ordered by key.
func (s *Service) ListSettings(c *fiber.Ctx) error {
	ctx := c.UserContext()

	if err := s.deps.Content.InitializeSiteContent(ctx); err != nil {
		return handler.Internal(c, err, "Failed to fetch settings")
	}

	rows, err := setting.GetAll(s.deps.DB.WithContext(ctx))
	if err != nil {
		return handler.Internal(c, err, "Failed to fetch settings")
	}

	out := make([]Setting, 0, len(rows))
	for i := range rows {
		out = append(out, toSetting(&rows[i]))
	}

	return c.JSON(out)
}

// GetSetting returns one setting.
func (s *Service) GetSetting(c *fiber.Ctx) error {
	ctx := c.UserContext()

	if err := s.deps.Content.InitializeSiteContent(ctx); err != nil {
		return handler.Internal(c, err, "Failed to fetch setting")
	}

	row, err := setting.Get(s.deps.DB.WithContext(ctx), c.Params("key"))
	if err != nil {
		return settingError(c, err, "Failed to fetch setting")
	}

	return c.JSON(toSetting(row))
}

// CreateSetting adds a setting. An existing key is a conflict.
func (s *Service) CreateSetting(c *fiber.Ctx) error {
	req := new(SettingRequest)
	if err := c.BodyParser(req); err != nil {
		return handler.BadRequest("Invalid request body")
	}

	req.Key = strings.TrimSpace(req.Key)

	if err := s.validator.Struct(req); err != nil {
		return handler.BadRequest("Invalid setting: " + firstFieldError(err))
	}

	ctx := c.UserContext()

	if err := s.deps.Content.InitializeSiteContent(ctx); err != nil {
		return handler.Internal(c, err, "Failed to create setting")
	}

	row, err := setting.Create(s.deps.DB.WithContext(ctx), req.Key, req.Value)
	if err != nil {
		return settingError(c, err, "Failed to create setting")
	}

	log.Info().Str("key", row.Key).Msg("setting created")

	return c.Status(fiber.StatusCreated).JSON(toSetting(row))
}

// PutSetting creates or replaces the value of a setting.
func (s *Service) PutSetting(c *fiber.Ctx) error {
	req := new(SettingValueRequest)
	if err := c.BodyParser(req); err != nil {
		return handler.BadRequest("Invalid request body")
	}

	if err := s.validator.Struct(req); err != nil {
		return handler.BadRequest("value is required")
	}

	ctx := c.UserContext()

	if err := s.deps.Content.InitializeSiteContent(ctx); err != nil {
		return handler.Internal(c, err, "Failed to save setting")
	}

	row, err := setting.Set(s.deps.DB.WithContext(ctx), c.Params("key"), *req.Value)
	if err != nil {
		return settingError(c, err, "Failed to save setting")
	}

	log.Info().Str("key", row.Key).Msg("setting saved")

	return c.JSON(toSetting(row))
}

// DeleteSetting removes a setting.
func (s *Service) DeleteSetting(c *fiber.Ctx) error {
	ctx := c.UserContext()
	key := c.Params("key")

	if err := s.deps.Content.InitializeSiteContent(ctx); err != nil {
		return handler.Internal(c, err, "Failed to delete setting")
	}

	if err := setting.DeleteByKey(s.deps.DB.WithContext(ctx), key); err != nil {
		return settingError(c, err, "Failed to delete setting")
	}

	log.Info().Str("key", key).Msg("setting deleted")

	return c.JSON(fiber.Map{"success": true, "key": key})
}

func settingError(c *fiber.Ctx, err error, msg string) error {
	switch {
	case errors.Is(err, setting.ErrSettingNotFound):
		return handler.NotFound("Setting not found")
	case errors.Is(err, setting.ErrSettingKeyEmpty):
		return handler.BadRequest("Setting key is required")
	case errors.Is(err, setting.ErrSettingAlreadyExists):
		return fiber.NewError(fiber.StatusConflict, "Setting already exists")
	default:
		return handler.Internal(c, err, msg)
	}
}
