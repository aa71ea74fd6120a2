// Package models contains database model definitions.
package models

import "time"

// SiteSetting is a named site wide value, e.g. the hero headline.
type SiteSetting struct {
	ID        uint64 `gorm:"primaryKey"`
	Key       string `gorm:"column:setting_key;size:191;uniqueIndex;not null"`
	Value     string `gorm:"type:text"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName specifies the database table name for the SiteSetting model.
func (SiteSetting) TableName() string {
	return "site_settings"
}
