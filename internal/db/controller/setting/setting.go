// Package setting provides CRUD operations for managing site settings.
package setting

import (
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/CashGlitch/CashGlitch/internal/db/models"
)

const (
	keyQueryPattern = "setting_key = ?"
)

var (
	// ErrSettingNotFound is returned when a setting is not found.
	ErrSettingNotFound = errors.New("setting not found")
	// ErrSettingKeyEmpty is returned when attempting to create/update a setting with an empty key.
	ErrSettingKeyEmpty = errors.New("setting key cannot be empty")
	// ErrSettingAlreadyExists is returned when attempting to create a setting that already exists.
	ErrSettingAlreadyExists = errors.New("setting already exists")
	// ErrDBNil is returned when the database connection is nil.
	ErrDBNil = errors.New("database connection is nil")
)

// Get retrieves a setting by its key.
func Get(db *gorm.DB, key string) (*models.SiteSetting, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	if key == "" {
		return nil, ErrSettingKeyEmpty
	}

	var setting models.SiteSetting

	result := db.Where(keyQueryPattern, key).First(&setting)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrSettingNotFound
		}

		return nil, result.Error
	}

	return &setting, nil
}

// GetAll retrieves all settings ordered by key.
func GetAll(db *gorm.DB) ([]models.SiteSetting, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var settings []models.SiteSetting

	result := db.Order("setting_key ASC").Find(&settings)
	if result.Error != nil {
		return nil, result.Error
	}

	return settings, nil
}

// AsMap returns all settings as key → value.
func AsMap(db *gorm.DB) (map[string]string, error) {
	settings, err := GetAll(db)
	if err != nil {
		return nil, err
	}

	out := make(map[string]string, len(settings))
	for _, s := range settings {
		out[s.Key] = s.Value
	}

	return out, nil
}

// Create creates a new setting in the database.
func Create(db *gorm.DB, key, value string) (*models.SiteSetting, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	if key == "" {
		return nil, ErrSettingKeyEmpty
	}

	var existing models.SiteSetting

	result := db.Where(keyQueryPattern, key).First(&existing)
	if result.Error == nil {
		return nil, ErrSettingAlreadyExists
	}

	if !errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return nil, result.Error
	}

	setting := &models.SiteSetting{
		Key:   key,
		Value: value,
	}

	if err := db.Create(setting).Error; err != nil {
		return nil, err
	}

	return setting, nil
}

// EnsureDefault inserts key with value only when the key does not exist yet.
// It reports whether a row was inserted.
func EnsureDefault(db *gorm.DB, key, value string) (bool, error) {
	if db == nil {
		return false, ErrDBNil
	}

	if key == "" {
		return false, ErrSettingKeyEmpty
	}

	setting := models.SiteSetting{Key: key, Value: value}

	result := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&setting)
	if result.Error != nil {
		return false, result.Error
	}

	return result.RowsAffected > 0, nil
}

// Set creates or updates a setting by key (upsert operation).
func Set(db *gorm.DB, key, value string) (*models.SiteSetting, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	if key == "" {
		return nil, ErrSettingKeyEmpty
	}

	var setting models.SiteSetting

	result := db.Where(keyQueryPattern, key).First(&setting)
	if errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return Create(db, key, value)
	}

	if result.Error != nil {
		return nil, result.Error
	}

	setting.Value = value
	if err := db.Save(&setting).Error; err != nil {
		return nil, err
	}

	return &setting, nil
}

// DeleteByKey deletes a setting by key.
func DeleteByKey(db *gorm.DB, key string) error {
	if db == nil {
		return ErrDBNil
	}

	if key == "" {
		return ErrSettingKeyEmpty
	}

	result := db.Where(keyQueryPattern, key).Delete(&models.SiteSetting{})
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return ErrSettingNotFound
	}

	return nil
}
