package service

import (
	"fmt"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/inkpress/internal/db"
)

// setupServiceTestDB opens a fresh in-memory database with the same
// configuration as db.Init, TranslateError included, so uniqueness
// violations behave like production.
func setupServiceTestDB(t *testing.T) (*gorm.DB, func()) {
	t.Helper()

	dsn := fmt.Sprintf("file:service-%d?mode=memory&cache=shared", time.Now().UnixNano())
	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}

	if err := gdb.AutoMigrate(&db.User{}, &db.AuthToken{}, &db.Category{}, &db.BlogPost{}, &db.Like{}, &db.Comment{}); err != nil {
		t.Fatalf("failed to migrate test db: %v", err)
	}

	return gdb, func() {
		sqlDB, err := gdb.DB()
		if err == nil {
			_ = sqlDB.Close()
		}
	}
}

func seedUser(t *testing.T, gdb *gorm.DB, email, username string) db.User {
	t.Helper()

	user := db.User{Email: email, Username: username, Password: "hashed"}
	if err := gdb.Create(&user).Error; err != nil {
		t.Fatalf("failed to seed user %s: %v", username, err)
	}
	return user
}

func seedCategory(t *testing.T, gdb *gorm.DB, name string) db.Category {
	t.Helper()

	category := db.Category{Name: name, Slug: Slugify(name)}
	if err := gdb.Create(&category).Error; err != nil {
		t.Fatalf("failed to seed category %s: %v", name, err)
	}
	return category
}

func seedPost(t *testing.T, gdb *gorm.DB, user db.User, category db.Category, title string, published bool) db.BlogPost {
	t.Helper()

	post := db.BlogPost{
		Title:       title,
		Slug:        Slugify(title),
		Description: "desc",
		Content:     "content",
		UserID:      user.ID,
		CategoryID:  category.ID,
		IsPublished: published,
	}
	if err := gdb.Create(&post).Error; err != nil {
		t.Fatalf("failed to seed post %s: %v", title, err)
	}
	return post
}
