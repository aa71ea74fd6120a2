package models

import "time"

// IntroScreen is one step of the onboarding carousel shown before the access gate.
type IntroScreen struct {
	ID         uint64 `gorm:"primaryKey"`
	Title      string `gorm:"size:255;not null"`
	Body       string `gorm:"type:text"`
	ButtonText string `gorm:"size:100"`
	SortOrder  int    `gorm:"index;not null"`
	IsActive   bool   `gorm:"index;not null"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// TableName specifies the database table name for the IntroScreen model.
func (IntroScreen) TableName() string {
	return "intro_screens"
}
