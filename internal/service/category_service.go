package service

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/inkpress/internal/db"
)

var (
	ErrCategoryExists   = errors.New("category already exists")
	ErrCategoryNotFound = errors.New("category not found")
)

// CategoryService wraps category related operations.
type CategoryService struct {
	db *gorm.DB
}

// CategoryFilter describes list-endpoint query options.
type CategoryFilter struct {
	Search   string
	Ordering string
	Page     int
	PerPage  int
}

// CategoryListResult aggregates paginated list data.
type CategoryListResult struct {
	Categories []db.Category
	Total      int64
	TotalPages int
	Page       int
	PerPage    int
}

// NewCategoryService creates a CategoryService instance.
func NewCategoryService(gdb *gorm.DB) *CategoryService {
	return &CategoryService{db: gdb}
}

// List returns categories with search, ordering and pagination applied.
// Search matches name and description; ordering accepts name or created_at
// with a leading '-' for descending, falling back to name ascending.
func (s *CategoryService) List(filter CategoryFilter) (*CategoryListResult, error) {
	query := s.db.Model(&db.Category{})

	if search := strings.TrimSpace(filter.Search); search != "" {
		pattern := "%" + search + "%"
		query = query.Where("name LIKE ? OR description LIKE ?", pattern, pattern)
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

	var categories []db.Category
	err := query.
		Order(orderingClause(filter.Ordering, "name asc", map[string]string{
			"name":       "name",
			"created_at": "created_at",
		})).
		Limit(perPage).
		Offset((page - 1) * perPage).
		Find(&categories).Error
	if err != nil {
		return nil, err
	}

	return &CategoryListResult{
		Categories: categories,
		Total:      total,
		TotalPages: totalPages,
		Page:       page,
		PerPage:    perPage,
	}, nil
}

// GetBySlug fetches one category by slug.
func (s *CategoryService) GetBySlug(slug string) (*db.Category, error) {
	var category db.Category
	if err := s.db.Where("slug = ?", slug).First(&category).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, err
	}
	return &category, nil
}

// Create inserts a category, deriving the slug from the name.
func (s *CategoryService) Create(name, description string) (*db.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, errors.New("category name is required")
	}

	category := db.Category{
		Name:        name,
		Slug:        Slugify(name),
		Description: strings.TrimSpace(description),
	}
	if err := s.db.Create(&category).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrCategoryExists
		}
		return nil, err
	}
	return &category, nil
}

// Update renames a category. The slug is derived once at creation and kept
// stable afterwards so existing URLs stay valid.
func (s *CategoryService) Update(slug string, name, description *string) (*db.Category, error) {
	category, err := s.GetBySlug(slug)
	if err != nil {
		return nil, err
	}

	if name != nil {
		trimmed := strings.TrimSpace(*name)
		if trimmed == "" {
			return nil, errors.New("category name is required")
		}
		category.Name = trimmed
	}
	if description != nil {
		category.Description = strings.TrimSpace(*description)
	}

	if err := s.db.Save(category).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrCategoryExists
		}
		return nil, err
	}
	return category, nil
}

// Delete removes a category by slug.
func (s *CategoryService) Delete(slug string) error {
	category, err := s.GetBySlug(slug)
	if err != nil {
		return err
	}
	return s.db.Delete(category).Error
}
