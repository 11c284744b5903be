package handler

import (
	"gorm.io/gorm"

	"github.com/inkpress/internal/service"
)

// API bundles shared dependencies for HTTP handlers.
type API struct {
	db         *gorm.DB
	auth       *service.AuthService
	categories *service.CategoryService
	posts      *service.PostService
	likes      *service.LikeService
	comments   *service.CommentService
	uploadDir  string
	uploadURL  string
	pageSize   int
}

// NewAPI constructs a handler set with shared services.
func NewAPI(gdb *gorm.DB, uploadDir, uploadURL string, pageSize int) *API {
	if pageSize < 1 {
		pageSize = 10
	}

	return &API{
		db:         gdb,
		auth:       service.NewAuthService(gdb),
		categories: service.NewCategoryService(gdb),
		posts:      service.NewPostService(gdb),
		likes:      service.NewLikeService(gdb),
		comments:   service.NewCommentService(gdb),
		uploadDir:  uploadDir,
		uploadURL:  uploadURL,
		pageSize:   pageSize,
	}
}

// DB exposes the underlying gorm instance.
func (a *API) DB() *gorm.DB {
	return a.db
}
