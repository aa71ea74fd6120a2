package models

import "time"

// PageContent is an editable static page such as "about" or "how-it-works".
type PageContent struct {
	ID        uint64 `gorm:"primaryKey"`
	Slug      string `gorm:"size:191;uniqueIndex;not null"`
	Title     string `gorm:"size:255;not null"`
	Subtitle  string `gorm:"size:500"`
	Body      string `gorm:"type:text"`
	Items     []PageItem
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName specifies the database table name for the PageContent model.
func (PageContent) TableName() string {
	return "page_contents"
}

// PageItem is a bullet, card or step belonging to a page.
type PageItem struct {
	ID            uint64 `gorm:"primaryKey"`
	PageContentID uint64 `gorm:"index;not null"`
	Title         string `gorm:"size:255;not null"`
	Body          string `gorm:"type:text"`
	Icon          Icon   `gorm:"size:32;not null"`
	SortOrder     int    `gorm:"not null"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// TableName specifies the database table name for the PageItem model.
func (PageItem) TableName() string {
	return "page_items"
}
