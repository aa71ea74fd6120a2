package models

import "time"

// Category is a tile on the landing page linking to a donation or sweepstake target.
type Category struct {
	ID          uint64 `gorm:"primaryKey"`
	Title       string `gorm:"size:255;not null"`
	Description string `gorm:"size:1000"`
	Link        string `gorm:"size:500"`
	Icon        Icon   `gorm:"size:32;not null"`
	SortOrder   int    `gorm:"index;not null"`
	IsActive    bool   `gorm:"index;not null"`
	// ClickCount only ever grows through an atomic column increment.
	ClickCount int64 `gorm:"not null"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// TableName specifies the database table name for the Category model.
func (Category) TableName() string {
	return "categories"
}
