package service

import (
	"errors"

	"gorm.io/gorm"

	"github.com/inkpress/internal/db"
)

// LikeService flips like membership for (user, post) pairs.
type LikeService struct {
	db *gorm.DB
}

// ToggleResult reports the state after a toggle. Created distinguishes a
// fresh like from the existing row seen by the loser of a concurrent
// toggle, so the handler can pick the right status code.
type ToggleResult struct {
	Liked      bool
	Created    bool
	LikesCount int64
}

// NewLikeService creates a LikeService instance.
func NewLikeService(gdb *gorm.DB) *LikeService {
	return &LikeService{db: gdb}
}

// Toggle likes the published post identified by slug on behalf of userID,
// or removes the like if one already exists. The create path is an atomic
// get-or-create: when two requests race to like, the composite unique index
// rejects the second insert and that caller is reported as already liked
// instead of failing.
func (s *LikeService) Toggle(userID uint, slug string) (*ToggleResult, error) {
	var post db.BlogPost
	err := s.db.Where("slug = ? AND is_published = ?", slug, true).First(&post).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, err
	}

	like := db.Like{UserID: userID, BlogPostID: post.ID}
	res := s.db.Where(db.Like{UserID: userID, BlogPostID: post.ID}).FirstOrCreate(&like)

	result := ToggleResult{}
	switch {
	case res.Error != nil && errors.Is(res.Error, gorm.ErrDuplicatedKey):
		// Lost the creation race; the row exists now.
		result.Liked = true
	case res.Error != nil:
		return nil, res.Error
	case res.RowsAffected > 0:
		result.Liked = true
		result.Created = true
	default:
		if err := s.db.Delete(&db.Like{}, like.ID).Error; err != nil {
			return nil, err
		}
	}

	if err := s.db.Model(&db.Like{}).Where("blog_post_id = ?", post.ID).Count(&result.LikesCount).Error; err != nil {
		return nil, err
	}
	return &result, nil
}
