package db

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// DB is the global database connection.
var DB *gorm.DB

// Init opens the sqlite database and runs auto migration for the core
// models. databasePath falls back to inkpress.db when empty. TranslateError
// is enabled so store-level uniqueness violations (category name, post slug,
// like pair) surface as gorm.ErrDuplicatedKey.
func Init(databasePath string) error {
	path := strings.TrimSpace(databasePath)
	if path == "" {
		path = "inkpress.db"
	}

	if err := ensureParentDir(path); err != nil {
		return err
	}

	var err error
	DB, err = gorm.Open(sqlite.Open(path), &gorm.Config{TranslateError: true})
	if err != nil {
		return err
	}

	// auto-migrate the core models
	return DB.AutoMigrate(
		&User{},
		&AuthToken{},
		&Category{},
		&BlogPost{},
		&Like{},
		&Comment{},
	)
}

func ensureParentDir(path string) error {
	dir := filepath.Dir(path)
	if dir == "." || dir == "" {
		return nil
	}

	info, err := os.Stat(dir)
	if err == nil {
		if !info.IsDir() {
			return errors.New("database path parent is not a directory")
		}
		return nil
	}

	if os.IsNotExist(err) {
		return os.MkdirAll(dir, 0o755)
	}

	return err
}
