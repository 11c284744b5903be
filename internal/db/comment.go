package db

import "gorm.io/gorm"

// Comment belongs to a post; the parent self-reference forms the reply tree.
type Comment struct {
	gorm.Model
	Content    string `gorm:"not null"`
	UserID     uint   `gorm:"index;not null"`
	User       User
	BlogPostID uint `gorm:"index;not null"`
	BlogPost   BlogPost
	ParentID   *uint `gorm:"index"`
	Replies    []Comment `gorm:"foreignKey:ParentID"`

	// Direct child count, derived on read.
	RepliesCount int64 `gorm:"->;-:migration"`
}
