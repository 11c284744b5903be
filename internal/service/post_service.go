package service

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/inkpress/internal/db"
)

var (
	ErrPostNotFound  = errors.New("post not found")
	ErrPostSlugTaken = errors.New("a post with this title already exists")
)

// Subqueries attaching derived counters to post rows. Counts come from
// relation cardinality on every read, so they can never go stale.
const (
	likesCountSelect    = "(SELECT COUNT(*) FROM likes WHERE likes.blog_post_id = blog_posts.id)"
	commentsCountSelect = "(SELECT COUNT(*) FROM comments WHERE comments.blog_post_id = blog_posts.id AND comments.deleted_at IS NULL)"
)

// PostService wraps blog post related database operations.
type PostService struct {
	db *gorm.DB
}

// PostFilter describes filters for listing posts.
type PostFilter struct {
	CategorySlug string
	Author       string
	Search       string
	Ordering     string
	Page         int
	PerPage      int
}

// PostListResult aggregates paginated list data.
type PostListResult struct {
	Posts      []db.BlogPost
	Total      int64
	TotalPages int
	Page       int
	PerPage    int
}

// PostInput represents fields accepted when creating a post.
type PostInput struct {
	Title       string
	Description string
	Content     string
	ImageURL    string
	CategoryID  uint
	IsPublished bool
	UserID      uint
}

// PostUpdateInput carries partial updates; nil pointers leave the field
// untouched. The slug is derived once at creation and never regenerated.
type PostUpdateInput struct {
	Title       *string
	Description *string
	Content     *string
	ImageURL    *string
	CategoryID  *uint
	IsPublished *bool
}

var postOrderings = map[string]string{
	"created_at": "blog_posts.created_at",
	"updated_at": "blog_posts.updated_at",
	"title":      "blog_posts.title",
}

// NewPostService creates a PostService instance.
func NewPostService(gdb *gorm.DB) *PostService {
	return &PostService{db: gdb}
}

// List returns published posts with filters, search, ordering and
// pagination applied.
func (s *PostService) List(filter PostFilter) (*PostListResult, error) {
	query := s.db.Model(&db.BlogPost{}).Where("blog_posts.is_published = ?", true)
	return s.list(query, filter)
}

// ListOwned returns every post of one author regardless of publication
// state. This backs the my-posts endpoint.
func (s *PostService) ListOwned(userID uint, filter PostFilter) (*PostListResult, error) {
	query := s.db.Model(&db.BlogPost{}).Where("blog_posts.user_id = ?", userID)
	return s.list(query, filter)
}

func (s *PostService) list(query *gorm.DB, filter PostFilter) (*PostListResult, error) {
	if slug := strings.TrimSpace(filter.CategorySlug); slug != "" {
		query = query.Joins("JOIN categories ON categories.id = blog_posts.category_id").
			Where("categories.slug = ?", slug)
	}
	if author := strings.TrimSpace(filter.Author); author != "" {
		query = query.Joins("JOIN users ON users.id = blog_posts.user_id").
			Where("users.username = ?", author)
	}
	if search := strings.TrimSpace(filter.Search); search != "" {
		pattern := "%" + search + "%"
		query = query.Where(
			"blog_posts.title LIKE ? OR blog_posts.description LIKE ? OR blog_posts.content LIKE ?",
			pattern, pattern, pattern,
		)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, err
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	perPage := filter.PerPage
	if perPage < 1 {
		perPage = 10
	}
	totalPages := int((total + int64(perPage) - 1) / int64(perPage))

	var posts []db.BlogPost
	err := query.
		Select("blog_posts.*, " + likesCountSelect + " AS likes_count, " + commentsCountSelect + " AS comments_count").
		Preload("User").
		Preload("Category").
		Order(orderingClause(filter.Ordering, "blog_posts.created_at desc", postOrderings)).
		Limit(perPage).
		Offset((page - 1) * perPage).
		Find(&posts).Error
	if err != nil {
		return nil, err
	}

	return &PostListResult{
		Posts:      posts,
		Total:      total,
		TotalPages: totalPages,
		Page:       page,
		PerPage:    perPage,
	}, nil
}

// GetPublishedBySlug fetches one published post. Unpublished posts are
// invisible here for everyone, the owner included; owners reach their
// drafts through ListOwned.
func (s *PostService) GetPublishedBySlug(slug string) (*db.BlogPost, error) {
	var post db.BlogPost
	err := s.db.
		Select("blog_posts.*, "+likesCountSelect+" AS likes_count, "+commentsCountSelect+" AS comments_count").
		Preload("User").
		Preload("Category").
		Where("blog_posts.slug = ? AND blog_posts.is_published = ?", slug, true).
		First(&post).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, err
	}
	return &post, nil
}

// Create persists a post owned by input.UserID with a slug derived from the
// title. A duplicate slug is a conflict, mirroring the unique column.
func (s *PostService) Create(input PostInput) (*db.BlogPost, error) {
	title := strings.TrimSpace(input.Title)
	slug := Slugify(title)
	if slug == "" {
		return nil, errors.New("post title is required")
	}

	var category db.Category
	if err := s.db.First(&category, input.CategoryID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, err
	}

	post := db.BlogPost{
		Title:       title,
		Slug:        slug,
		Description: strings.TrimSpace(input.Description),
		Content:     input.Content,
		ImageURL:    strings.TrimSpace(input.ImageURL),
		UserID:      input.UserID,
		CategoryID:  category.ID,
		IsPublished: input.IsPublished,
	}
	if err := s.db.Create(&post).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrPostSlugTaken
		}
		return nil, err
	}

	return s.reload(post.ID)
}

// UpdateOwned applies updates to a post only when it belongs to userID. The
// candidate set is pre-filtered by owner, so a foreign post is simply not
// found rather than forbidden.
func (s *PostService) UpdateOwned(slug string, userID uint, input PostUpdateInput) (*db.BlogPost, error) {
	var post db.BlogPost
	err := s.db.Where("slug = ? AND user_id = ?", slug, userID).First(&post).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, err
	}

	if input.Title != nil {
		trimmed := strings.TrimSpace(*input.Title)
		if trimmed == "" {
			return nil, errors.New("post title is required")
		}
		post.Title = trimmed
	}
	if input.Description != nil {
		post.Description = strings.TrimSpace(*input.Description)
	}
	if input.Content != nil {
		post.Content = *input.Content
	}
	if input.ImageURL != nil {
		post.ImageURL = strings.TrimSpace(*input.ImageURL)
	}
	if input.CategoryID != nil {
		var category db.Category
		if err := s.db.First(&category, *input.CategoryID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrCategoryNotFound
			}
			return nil, err
		}
		post.CategoryID = category.ID
	}
	if input.IsPublished != nil {
		post.IsPublished = *input.IsPublished
	}

	if err := s.db.Save(&post).Error; err != nil {
		return nil, err
	}
	return s.reload(post.ID)
}

// DeleteOwned removes a post only when it belongs to userID, with the same
// not-found behaviour as UpdateOwned.
func (s *PostService) DeleteOwned(slug string, userID uint) error {
	var post db.BlogPost
	err := s.db.Where("slug = ? AND user_id = ?", slug, userID).First(&post).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrPostNotFound
		}
		return err
	}
	return s.db.Delete(&post).Error
}

func (s *PostService) reload(id uint) (*db.BlogPost, error) {
	var post db.BlogPost
	err := s.db.
		Select("blog_posts.*, "+likesCountSelect+" AS likes_count, "+commentsCountSelect+" AS comments_count").
		Preload("User").
		Preload("Category").
		First(&post, id).Error
	if err != nil {
		return nil, err
	}
	return &post, nil
}
