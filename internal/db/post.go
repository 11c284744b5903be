package db

import "gorm.io/gorm"

// BlogPost is an authored article, published or draft.
type BlogPost struct {
	gorm.Model
	Title       string `gorm:"not null"`
	Slug        string `gorm:"uniqueIndex;not null"`
	Description string
	Content     string
	ImageURL    string
	UserID      uint `gorm:"index;not null"`
	User        User
	CategoryID  uint `gorm:"index;not null"`
	Category    Category
	IsPublished bool `gorm:"index;default:false"`

	// Derived on read from relation cardinality, never stored.
	LikesCount    int64 `gorm:"->;-:migration"`
	CommentsCount int64 `gorm:"->;-:migration"`
}
