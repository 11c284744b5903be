package db

import "gorm.io/gorm"

// Category groups posts under a unique, slugged name.
type Category struct {
	gorm.Model
	Name        string `gorm:"uniqueIndex;not null"`
	Slug        string `gorm:"uniqueIndex;not null"`
	Description string
}
