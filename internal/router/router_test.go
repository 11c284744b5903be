package router

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/inkpress/internal/db"
)

func setupRouterTest(t *testing.T) (*gin.Engine, string, func()) {
	t.Helper()

	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:router-%d?mode=memory&cache=shared", time.Now().UnixNano())
	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	if err := gdb.AutoMigrate(&db.User{}, &db.AuthToken{}, &db.Category{}, &db.BlogPost{}, &db.Like{}, &db.Comment{}); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}
	db.DB = gdb

	uploadDir := t.TempDir()
	r := Setup(gdb, "test-secret", uploadDir, "/static/uploads", 10)
	return r, uploadDir, func() {
		sqlDB, err := gdb.DB()
		if err == nil {
			_ = sqlDB.Close()
		}
	}
}

func TestSetupServesPing(t *testing.T) {
	r, _, cleanup := setupRouterTest(t)
	defer cleanup()

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, rr.Code)
	}
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	r, _, cleanup := setupRouterTest(t)
	defer cleanup()

	routes := []struct {
		method string
		path   string
	}{
		{http.MethodPost, "/api/posts"},
		{http.MethodGet, "/api/my-posts"},
		{http.MethodPost, "/api/posts/some-slug/like"},
		{http.MethodPost, "/api/categories"},
		{http.MethodGet, "/api/auth/profile"},
		{http.MethodDelete, "/api/comments/1"},
		{http.MethodPost, "/api/uploads"},
	}

	for _, route := range routes {
		req := httptest.NewRequest(route.method, route.path, nil)
		rr := httptest.NewRecorder()
		r.ServeHTTP(rr, req)

		if rr.Code != http.StatusUnauthorized {
			t.Fatalf("%s %s: expected 401 without token, got %d", route.method, route.path, rr.Code)
		}
	}
}

func TestStaticRouteServesUploadDir(t *testing.T) {
	r, uploadDir, cleanup := setupRouterTest(t)
	defer cleanup()

	if err := os.WriteFile(filepath.Join(uploadDir, "cover.png"), []byte("png-bytes"), 0o644); err != nil {
		t.Fatalf("failed to write upload fixture: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/static/uploads/cover.png", nil)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected uploaded file to be served, got %d", rr.Code)
	}
}

func TestPublicRoutesOpenToAnonymous(t *testing.T) {
	r, _, cleanup := setupRouterTest(t)
	defer cleanup()

	routes := []string{"/api/posts", "/api/categories"}
	for _, path := range routes {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		rr := httptest.NewRecorder()
		r.ServeHTTP(rr, req)

		if rr.Code != http.StatusOK {
			t.Fatalf("GET %s: expected 200 anonymously, got %d", path, rr.Code)
		}
	}
}
