package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/inkpress/internal/service"
)

type categoryCreateRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

type categoryUpdateRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

// GetCategories lists categories with search, ordering and pagination.
func (a *API) GetCategories(c *gin.Context) {
	page, perPage := parsePageQuery(c, a.pageSize)
	result, err := a.categories.List(service.CategoryFilter{
		Search:   c.Query("search"),
		Ordering: c.Query("ordering"),
		Page:     page,
		PerPage:  perPage,
	})
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Failed to list categories")
		return
	}

	items := make([]gin.H, 0, len(result.Categories))
	for i := range result.Categories {
		items = append(items, categoryJSON(&result.Categories[i]))
	}

	c.JSON(http.StatusOK, paginatedJSON(items, result.Total, result.Page, result.TotalPages, result.PerPage))
}

// GetCategory returns a single category by slug.
func (a *API) GetCategory(c *gin.Context) {
	category, err := a.categories.GetBySlug(c.Param("slug"))
	if err != nil {
		if errors.Is(err, service.ErrCategoryNotFound) {
			respondError(c, http.StatusNotFound, "Category not found")
			return
		}
		respondError(c, http.StatusInternalServerError, "Failed to fetch category")
		return
	}

	c.JSON(http.StatusOK, gin.H{"category": categoryJSON(category)})
}

// CreateCategory creates a category, slug derived from the name.
func (a *API) CreateCategory(c *gin.Context) {
	var req categoryCreateRequest
	if !bindJSON(c, &req, "Category name is required") {
		return
	}

	category, err := a.categories.Create(req.Name, req.Description)
	if err != nil {
		if errors.Is(err, service.ErrCategoryExists) {
			respondError(c, http.StatusBadRequest, "A category with this name already exists")
			return
		}
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"category": categoryJSON(category),
		"message":  "Category created successfully",
	})
}

// UpdateCategory renames a category; its slug stays stable.
func (a *API) UpdateCategory(c *gin.Context) {
	var req categoryUpdateRequest
	if !bindJSON(c, &req, "Invalid category payload") {
		return
	}

	category, err := a.categories.Update(c.Param("slug"), req.Name, req.Description)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrCategoryNotFound):
			respondError(c, http.StatusNotFound, "Category not found")
		case errors.Is(err, service.ErrCategoryExists):
			respondError(c, http.StatusBadRequest, "A category with this name already exists")
		default:
			respondError(c, http.StatusBadRequest, err.Error())
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"category": categoryJSON(category),
		"message":  "Category updated successfully",
	})
}

// DeleteCategory removes a category by slug.
func (a *API) DeleteCategory(c *gin.Context) {
	if err := a.categories.Delete(c.Param("slug")); err != nil {
		if errors.Is(err, service.ErrCategoryNotFound) {
			respondError(c, http.StatusNotFound, "Category not found")
			return
		}
		respondError(c, http.StatusInternalServerError, "Failed to delete category")
		return
	}

	c.Status(http.StatusNoContent)
}
