package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/inkpress/internal/service"
)

type commentCreateRequest struct {
	Content string `json:"content" binding:"required"`
	Parent  *uint  `json:"parent"`
}

type commentUpdateRequest struct {
	Content string `json:"content" binding:"required"`
}

// GetComments returns a post's top-level comments with their reply trees.
func (a *API) GetComments(c *gin.Context) {
	comments, err := a.comments.ListTree(c.Param("slug"))
	if err != nil {
		if errors.Is(err, service.ErrPostNotFound) {
			respondError(c, http.StatusNotFound, "Post not found")
			return
		}
		respondError(c, http.StatusInternalServerError, "Failed to list comments")
		return
	}

	response := make([]gin.H, 0, len(comments))
	for i := range comments {
		response = append(response, commentJSON(&comments[i]))
	}

	c.JSON(http.StatusOK, gin.H{"comments": response})
}

// CreateComment adds a comment, or a reply when parent is given. The
// commenting user always comes from the authenticated context.
func (a *API) CreateComment(c *gin.Context) {
	var req commentCreateRequest
	if !bindJSON(c, &req, "Comment content is required") {
		return
	}

	content := sanitizeCommentContent(req.Content)

	comment, err := a.comments.Create(currentUser(c).ID, c.Param("slug"), content, req.Parent)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrPostNotFound):
			respondError(c, http.StatusNotFound, "Post not found")
		case errors.Is(err, service.ErrCommentContentRequired):
			respondError(c, http.StatusBadRequest, "Comment content is required")
		case errors.Is(err, service.ErrCommentParentNotFound):
			respondError(c, http.StatusBadRequest, "Parent comment does not exist")
		case errors.Is(err, service.ErrCommentParentMismatch):
			respondError(c, http.StatusBadRequest, "Parent comment belongs to a different post")
		default:
			respondError(c, http.StatusInternalServerError, "Failed to create comment")
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"comment": commentJSON(comment),
		"message": "Comment created successfully",
	})
}

// GetComment returns any comment with its reply subtree.
func (a *API) GetComment(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, "Invalid comment id")
		return
	}

	comment, err := a.comments.Get(id)
	if err != nil {
		if errors.Is(err, service.ErrCommentNotFound) {
			respondError(c, http.StatusNotFound, "Comment not found")
			return
		}
		respondError(c, http.StatusInternalServerError, "Failed to fetch comment")
		return
	}

	c.JSON(http.StatusOK, gin.H{"comment": commentJSON(comment)})
}

// UpdateComment edits the requester's own comment; anyone else's comment is
// reported as not found.
func (a *API) UpdateComment(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, "Invalid comment id")
		return
	}

	var req commentUpdateRequest
	if !bindJSON(c, &req, "Comment content is required") {
		return
	}

	comment, err := a.comments.UpdateOwned(id, currentUser(c).ID, sanitizeCommentContent(req.Content))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrCommentNotFound):
			respondError(c, http.StatusNotFound, "Comment not found")
		case errors.Is(err, service.ErrCommentContentRequired):
			respondError(c, http.StatusBadRequest, "Comment content is required")
		default:
			respondError(c, http.StatusInternalServerError, "Failed to update comment")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"comment": commentJSON(comment),
		"message": "Comment updated successfully",
	})
}

// DeleteComment removes an owned comment and its whole reply subtree.
func (a *API) DeleteComment(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, "Invalid comment id")
		return
	}

	if err := a.comments.DeleteOwned(id, currentUser(c).ID); err != nil {
		if errors.Is(err, service.ErrCommentNotFound) {
			respondError(c, http.StatusNotFound, "Comment not found")
			return
		}
		respondError(c, http.StatusInternalServerError, "Failed to delete comment")
		return
	}

	c.Status(http.StatusNoContent)
}
