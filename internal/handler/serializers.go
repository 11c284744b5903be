package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/inkpress/internal/db"
)

func userJSON(user *db.User) gin.H {
	return gin.H{
		"id":         user.ID,
		"email":      user.Email,
		"username":   user.Username,
		"first_name": user.FirstName,
		"last_name":  user.LastName,
		"bio":        user.Bio,
		"avatar_url": user.AvatarURL,
		"created_at": user.CreatedAt,
		"updated_at": user.UpdatedAt,
	}
}

func categoryJSON(category *db.Category) gin.H {
	return gin.H{
		"id":          category.ID,
		"name":        category.Name,
		"slug":        category.Slug,
		"description": category.Description,
		"created_at":  category.CreatedAt,
		"updated_at":  category.UpdatedAt,
	}
}

// postJSON shapes a post for list responses; postDetailJSON adds the raw
// markdown and its rendered HTML.
func postJSON(post *db.BlogPost) gin.H {
	return gin.H{
		"id":             post.ID,
		"title":          post.Title,
		"slug":           post.Slug,
		"description":    post.Description,
		"image":          post.ImageURL,
		"author":         userJSON(&post.User),
		"category":       categoryJSON(&post.Category),
		"is_published":   post.IsPublished,
		"likes_count":    post.LikesCount,
		"comments_count": post.CommentsCount,
		"created_at":     post.CreatedAt,
		"updated_at":     post.UpdatedAt,
	}
}

func postDetailJSON(post *db.BlogPost) gin.H {
	payload := postJSON(post)
	payload["content"] = post.Content
	payload["content_html"] = renderMarkdown(post.Content)
	return payload
}

func commentJSON(comment *db.Comment) gin.H {
	replies := make([]gin.H, 0, len(comment.Replies))
	for i := range comment.Replies {
		replies = append(replies, commentJSON(&comment.Replies[i]))
	}

	var parent interface{}
	if comment.ParentID != nil {
		parent = *comment.ParentID
	}

	return gin.H{
		"id":            comment.ID,
		"user":          userJSON(&comment.User),
		"blog_post":     comment.BlogPostID,
		"content":       comment.Content,
		"parent":        parent,
		"replies_count": comment.RepliesCount,
		"replies":       replies,
		"created_at":    comment.CreatedAt,
		"updated_at":    comment.UpdatedAt,
	}
}

func paginatedJSON(results []gin.H, total int64, page, totalPages, perPage int) gin.H {
	return gin.H{
		"count":       total,
		"page":        page,
		"page_size":   perPage,
		"total_pages": totalPages,
		"results":     results,
	}
}
