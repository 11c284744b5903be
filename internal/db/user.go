package db

import "gorm.io/gorm"

// User is an account holder.
type User struct {
	gorm.Model
	Email     string `gorm:"uniqueIndex;not null"`
	Username  string `gorm:"uniqueIndex;not null"`
	Password  string `gorm:"not null"`
	FirstName string
	LastName  string
	Bio       string
	AvatarURL string
}

// AuthToken is the opaque bearer credential for a user. One row per user;
// issued get-or-create at register/login and deleted at logout.
type AuthToken struct {
	gorm.Model
	Key    string `gorm:"uniqueIndex;not null"`
	UserID uint   `gorm:"uniqueIndex;not null"`
	User   User
}
