package handler

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/inkpress/internal/service"
)

type postCreateRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description" binding:"required"`
	Content     string `json:"content" binding:"required"`
	Image       string `json:"image"`
	Category    uint   `json:"category" binding:"required"`
	IsPublished bool   `json:"is_published"`
}

type postUpdateRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Content     *string `json:"content"`
	Image       *string `json:"image"`
	Category    *uint   `json:"category"`
	IsPublished *bool   `json:"is_published"`
}

func (a *API) postFilterFromQuery(c *gin.Context) service.PostFilter {
	page, perPage := parsePageQuery(c, a.pageSize)
	return service.PostFilter{
		CategorySlug: c.Query("category"),
		Author:       c.Query("author"),
		Search:       c.Query("search"),
		Ordering:     c.Query("ordering"),
		Page:         page,
		PerPage:      perPage,
	}
}

// GetPosts lists published posts with category/author filters, search,
// ordering and pagination.
func (a *API) GetPosts(c *gin.Context) {
	result, err := a.posts.List(a.postFilterFromQuery(c))
	if err != nil {
		log.Printf("list posts: %v", err)
		respondError(c, http.StatusInternalServerError, "Failed to list posts")
		return
	}

	c.JSON(http.StatusOK, postListPayload(result))
}

// GetMyPosts lists every post of the requester, drafts included.
func (a *API) GetMyPosts(c *gin.Context) {
	result, err := a.posts.ListOwned(currentUser(c).ID, a.postFilterFromQuery(c))
	if err != nil {
		log.Printf("list own posts: %v", err)
		respondError(c, http.StatusInternalServerError, "Failed to list posts")
		return
	}

	c.JSON(http.StatusOK, postListPayload(result))
}

func postListPayload(result *service.PostListResult) gin.H {
	items := make([]gin.H, 0, len(result.Posts))
	for i := range result.Posts {
		items = append(items, postJSON(&result.Posts[i]))
	}
	return paginatedJSON(items, result.Total, result.Page, result.TotalPages, result.PerPage)
}

// GetPost returns the published post detail, markdown rendered.
func (a *API) GetPost(c *gin.Context) {
	post, err := a.posts.GetPublishedBySlug(c.Param("slug"))
	if err != nil {
		if errors.Is(err, service.ErrPostNotFound) {
			respondError(c, http.StatusNotFound, "Post not found")
			return
		}
		respondError(c, http.StatusInternalServerError, "Failed to fetch post")
		return
	}

	c.JSON(http.StatusOK, gin.H{"blog_post": postDetailJSON(post)})
}

// CreatePost creates a post; the author comes from the auth context.
func (a *API) CreatePost(c *gin.Context) {
	var req postCreateRequest
	if !bindJSON(c, &req, "Title, description, content and category are required") {
		return
	}

	post, err := a.posts.Create(service.PostInput{
		Title:       req.Title,
		Description: req.Description,
		Content:     req.Content,
		ImageURL:    req.Image,
		CategoryID:  req.Category,
		IsPublished: req.IsPublished,
		UserID:      currentUser(c).ID,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrPostSlugTaken):
			respondError(c, http.StatusBadRequest, "A post with this title already exists")
		case errors.Is(err, service.ErrCategoryNotFound):
			respondError(c, http.StatusBadRequest, "Category does not exist")
		default:
			respondError(c, http.StatusBadRequest, err.Error())
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"blog_post": postDetailJSON(post),
		"message":   "Blog post created successfully",
	})
}

// UpdatePost applies a partial update to an owned post. Posts outside the
// requester's owned set are reported as not found.
func (a *API) UpdatePost(c *gin.Context) {
	var req postUpdateRequest
	if !bindJSON(c, &req, "Invalid post payload") {
		return
	}

	post, err := a.posts.UpdateOwned(c.Param("slug"), currentUser(c).ID, service.PostUpdateInput{
		Title:       req.Title,
		Description: req.Description,
		Content:     req.Content,
		ImageURL:    req.Image,
		CategoryID:  req.Category,
		IsPublished: req.IsPublished,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrPostNotFound):
			respondError(c, http.StatusNotFound, "Post not found")
		case errors.Is(err, service.ErrCategoryNotFound):
			respondError(c, http.StatusBadRequest, "Category does not exist")
		default:
			respondError(c, http.StatusBadRequest, err.Error())
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"blog_post": postDetailJSON(post),
		"message":   "Blog post updated successfully",
	})
}

// DeletePost removes an owned post.
func (a *API) DeletePost(c *gin.Context) {
	if err := a.posts.DeleteOwned(c.Param("slug"), currentUser(c).ID); err != nil {
		if errors.Is(err, service.ErrPostNotFound) {
			respondError(c, http.StatusNotFound, "Post not found")
			return
		}
		respondError(c, http.StatusInternalServerError, "Failed to delete post")
		return
	}

	c.Status(http.StatusNoContent)
}

// ToggleLike flips like membership on a published post.
func (a *API) ToggleLike(c *gin.Context) {
	result, err := a.likes.Toggle(currentUser(c).ID, c.Param("slug"))
	if err != nil {
		if errors.Is(err, service.ErrPostNotFound) {
			respondError(c, http.StatusNotFound, "Post not found")
			return
		}
		log.Printf("toggle like: %v", err)
		respondError(c, http.StatusInternalServerError, "Failed to toggle like")
		return
	}

	status := http.StatusOK
	message := "Like removed"
	if result.Liked {
		message = "Post liked"
		if result.Created {
			status = http.StatusCreated
		}
	}

	c.JSON(status, gin.H{
		"message":     message,
		"liked":       result.Liked,
		"likes_count": result.LikesCount,
	})
}
