package service

import (
	"errors"
	"sort"
	"strings"

	"gorm.io/gorm"

	"github.com/inkpress/internal/db"
)

var (
	ErrCommentNotFound        = errors.New("comment not found")
	ErrCommentContentRequired = errors.New("comment content is required")
	ErrCommentParentNotFound  = errors.New("parent comment not found")
	ErrCommentParentMismatch  = errors.New("parent comment belongs to a different post")
)

// CommentService maintains the comment tree hanging under each post.
type CommentService struct {
	db *gorm.DB
}

// NewCommentService creates a CommentService instance.
func NewCommentService(gdb *gorm.DB) *CommentService {
	return &CommentService{db: gdb}
}

// ListTree returns the top-level comments of a published post, newest
// first, with each node carrying its full reply subtree and the direct
// child count.
func (s *CommentService) ListTree(slug string) ([]db.Comment, error) {
	post, err := s.publishedPost(slug)
	if err != nil {
		return nil, err
	}

	all, err := s.postComments(post.ID)
	if err != nil {
		return nil, err
	}

	return assembleTree(all, nil), nil
}

// Get fetches any comment by id together with its reply subtree.
func (s *CommentService) Get(id uint) (*db.Comment, error) {
	var comment db.Comment
	if err := s.db.First(&comment, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCommentNotFound
		}
		return nil, err
	}

	all, err := s.postComments(comment.BlogPostID)
	if err != nil {
		return nil, err
	}

	tree := assembleTree(all, &id)
	if len(tree) == 0 {
		return nil, ErrCommentNotFound
	}
	return &tree[0], nil
}

// Create adds a comment under a published post. The commenting user comes
// from the authenticated context, never from the payload. A parent, when
// given, must exist and hang under the same post.
func (s *CommentService) Create(userID uint, slug, content string, parentID *uint) (*db.Comment, error) {
	post, err := s.publishedPost(slug)
	if err != nil {
		return nil, err
	}

	content = strings.TrimSpace(content)
	if content == "" {
		return nil, ErrCommentContentRequired
	}

	if parentID != nil {
		var parent db.Comment
		if err := s.db.First(&parent, *parentID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrCommentParentNotFound
			}
			return nil, err
		}
		if parent.BlogPostID != post.ID {
			return nil, ErrCommentParentMismatch
		}
	}

	comment := db.Comment{
		Content:    content,
		UserID:     userID,
		BlogPostID: post.ID,
		ParentID:   parentID,
	}
	if err := s.db.Create(&comment).Error; err != nil {
		return nil, err
	}

	if err := s.db.Preload("User").First(&comment, comment.ID).Error; err != nil {
		return nil, err
	}
	comment.Replies = []db.Comment{}
	return &comment, nil
}

// UpdateOwned changes a comment's content only when it belongs to userID;
// foreign comments are not found, never forbidden.
func (s *CommentService) UpdateOwned(id, userID uint, content string) (*db.Comment, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, ErrCommentContentRequired
	}

	var comment db.Comment
	err := s.db.Where("id = ? AND user_id = ?", id, userID).First(&comment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCommentNotFound
		}
		return nil, err
	}

	comment.Content = content
	if err := s.db.Save(&comment).Error; err != nil {
		return nil, err
	}
	return s.Get(comment.ID)
}

// DeleteOwned removes an owned comment and its entire reply subtree in a
// single transaction, so an interrupted cascade can never leave orphaned
// replies behind.
func (s *CommentService) DeleteOwned(id, userID uint) error {
	var comment db.Comment
	err := s.db.Where("id = ? AND user_id = ?", id, userID).First(&comment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCommentNotFound
		}
		return err
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		ids := []uint{comment.ID}
		frontier := []uint{comment.ID}
		for len(frontier) > 0 {
			var children []uint
			if err := tx.Model(&db.Comment{}).
				Where("parent_id IN ?", frontier).
				Pluck("id", &children).Error; err != nil {
				return err
			}
			ids = append(ids, children...)
			frontier = children
		}
		return tx.Delete(&db.Comment{}, "id IN ?", ids).Error
	})
}

func (s *CommentService) publishedPost(slug string) (*db.BlogPost, error) {
	var post db.BlogPost
	err := s.db.Where("slug = ? AND is_published = ?", slug, true).First(&post).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, err
	}
	return &post, nil
}

func (s *CommentService) postComments(postID uint) ([]db.Comment, error) {
	var all []db.Comment
	err := s.db.Preload("User").
		Where("blog_post_id = ?", postID).
		Order("id desc").
		Find(&all).Error
	if err != nil {
		return nil, err
	}
	return all, nil
}

// assembleTree nests a flat comment slice into subtrees without recursion.
// Ids are store-assigned in creation order and a parent always exists
// before its children, so walking ids in descending order guarantees every
// node's subtree is complete before the node is attached to its parent.
// With rootID nil the post's top-level comments are returned newest first;
// otherwise only the subtree rooted at rootID.
func assembleTree(all []db.Comment, rootID *uint) []db.Comment {
	sort.Slice(all, func(i, j int) bool { return all[i].ID > all[j].ID })

	nodes := make(map[uint]*db.Comment, len(all))
	for i := range all {
		all[i].Replies = []db.Comment{}
		nodes[all[i].ID] = &all[i]
	}

	var roots []db.Comment
	for i := range all {
		node := &all[i]
		node.RepliesCount = int64(len(node.Replies))

		if rootID != nil {
			if node.ID == *rootID {
				roots = append(roots, *node)
			} else if node.ParentID != nil {
				if parent, ok := nodes[*node.ParentID]; ok {
					parent.Replies = append(parent.Replies, *node)
				}
			}
			continue
		}

		if node.ParentID == nil {
			roots = append(roots, *node)
		} else if parent, ok := nodes[*node.ParentID]; ok {
			parent.Replies = append(parent.Replies, *node)
		}
	}

	if roots == nil {
		roots = []db.Comment{}
	}
	return roots
}
