package models

import "time"

// BlogPost is an article of the public blog. Only published posts are served publicly.
type BlogPost struct {
	ID          uint64  `gorm:"primaryKey"`
	Slug        string  `gorm:"size:191;uniqueIndex;not null"`
	Title       string  `gorm:"size:255;not null"`
	Content     string  `gorm:"type:text"`
	Excerpt     string  `gorm:"size:500"`
	Published   bool    `gorm:"index;not null"`
	AuthorEmail string  `gorm:"size:255"`
	ImageURL    *string `gorm:"size:500"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TableName specifies the database table name for the BlogPost model.
func (BlogPost) TableName() string {
	return "blog_posts"
}
