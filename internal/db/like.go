package db

import "time"

// Like is a join row between a user and a post. The composite unique index
// guarantees at most one like per (user, post) pair even under racing
// toggle requests. No DeletedAt here: the toggle hard-deletes the row, and a
// soft-deleted like would keep the unique index slot occupied.
type Like struct {
	ID         uint `gorm:"primaryKey"`
	UserID     uint `gorm:"not null;uniqueIndex:idx_likes_user_post"`
	BlogPostID uint `gorm:"not null;uniqueIndex:idx_likes_user_post"`
	CreatedAt  time.Time
	User       User
	BlogPost   BlogPost
}
