package handler

import (
	"net/http"
	"strconv"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/inkpress/internal/db"
)

func TestCreateCommentAndReplyNesting(t *testing.T) {
	api, cleanup := setupTestDB(t)
	defer cleanup()

	alice := seedHandlerUser(t, api, "alice@example.com", "alice")
	bob := seedHandlerUser(t, api, "bob@example.com", "bob")
	seedHandlerPost(t, api, alice, "Hello World", true)

	params := gin.Params{{Key: "slug", Value: "hello-world"}}

	c, w := jsonContext(t, http.MethodPost, "/api/posts/hello-world/comments",
		map[string]any{"content": "first!"}, params, &bob)
	api.CreateComment(c)
	if w.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d: %s", w.Code, w.Body.String())
	}
	created := decodeBody(t, w)
	comment, ok := created["comment"].(map[string]any)
	if !ok {
		t.Fatalf("missing comment in response: %v", created)
	}
	parentID := uint(comment["id"].(float64))

	c, w = jsonContext(t, http.MethodPost, "/api/posts/hello-world/comments",
		map[string]any{"content": "welcome", "parent": parentID}, params, &alice)
	api.CreateComment(c)
	if w.Code != http.StatusCreated {
		t.Fatalf("expected status 201 for reply, got %d: %s", w.Code, w.Body.String())
	}

	c, w = jsonContext(t, http.MethodGet, "/api/posts/hello-world/comments", nil, params, nil)
	api.GetComments(c)
	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}

	listed := decodeBody(t, w)
	comments, ok := listed["comments"].([]any)
	if !ok || len(comments) != 1 {
		t.Fatalf("reply must not be a top-level item, got %v", listed["comments"])
	}
	root := comments[0].(map[string]any)
	if root["replies_count"] != float64(1) {
		t.Fatalf("expected replies_count=1, got %v", root["replies_count"])
	}
	replies, ok := root["replies"].([]any)
	if !ok || len(replies) != 1 {
		t.Fatalf("expected one nested reply, got %v", root["replies"])
	}
	nested := replies[0].(map[string]any)
	if nested["content"] != "welcome" {
		t.Fatalf("unexpected nested reply %v", nested)
	}
}

func TestCreateCommentStripsMarkup(t *testing.T) {
	api, cleanup := setupTestDB(t)
	defer cleanup()

	alice := seedHandlerUser(t, api, "alice@example.com", "alice")
	seedHandlerPost(t, api, alice, "Hello World", true)

	c, w := jsonContext(t, http.MethodPost, "/api/posts/hello-world/comments",
		map[string]any{"content": `hey <script>alert("x")</script>there`},
		gin.Params{{Key: "slug", Value: "hello-world"}}, &alice)
	api.CreateComment(c)

	if w.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d", w.Code)
	}
	parsed := decodeBody(t, w)
	comment := parsed["comment"].(map[string]any)
	content, _ := comment["content"].(string)
	if content == "" {
		t.Fatal("expected surviving text content")
	}
	for _, banned := range []string{"<script>", "alert"} {
		if strings.Contains(content, banned) {
			t.Fatalf("markup must be stripped, got %q", content)
		}
	}
}

func TestCreateCommentParentFromOtherPost(t *testing.T) {
	api, cleanup := setupTestDB(t)
	defer cleanup()

	alice := seedHandlerUser(t, api, "alice@example.com", "alice")
	seedHandlerPost(t, api, alice, "Hello World", true)
	other := seedHandlerPost(t, api, alice, "Other Post", true)

	foreign := db.Comment{Content: "elsewhere", UserID: alice.ID, BlogPostID: other.ID}
	if err := api.db.Create(&foreign).Error; err != nil {
		t.Fatalf("seed foreign comment: %v", err)
	}

	c, w := jsonContext(t, http.MethodPost, "/api/posts/hello-world/comments",
		map[string]any{"content": "hi", "parent": foreign.ID},
		gin.Params{{Key: "slug", Value: "hello-world"}}, &alice)
	api.CreateComment(c)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400 for cross-post parent, got %d", w.Code)
	}
}

func TestDeleteCommentCascades(t *testing.T) {
	api, cleanup := setupTestDB(t)
	defer cleanup()

	alice := seedHandlerUser(t, api, "alice@example.com", "alice")
	bob := seedHandlerUser(t, api, "bob@example.com", "bob")
	post := seedHandlerPost(t, api, alice, "Hello World", true)

	root := db.Comment{Content: "root", UserID: alice.ID, BlogPostID: post.ID}
	if err := api.db.Create(&root).Error; err != nil {
		t.Fatalf("seed root: %v", err)
	}
	reply := db.Comment{Content: "reply", UserID: bob.ID, BlogPostID: post.ID, ParentID: &root.ID}
	if err := api.db.Create(&reply).Error; err != nil {
		t.Fatalf("seed reply: %v", err)
	}

	c, w := jsonContext(t, http.MethodDelete, "/api/comments/"+strconv.Itoa(int(root.ID)), nil,
		gin.Params{{Key: "id", Value: strconv.Itoa(int(root.ID))}}, &alice)
	api.DeleteComment(c)
	// Flush the status set via c.Status; gin defers WriteHeader until a body
	// write, and the engine normally flushes it after the handler chain.
	c.Writer.WriteHeaderNow()
	if w.Code != http.StatusNoContent {
		t.Fatalf("expected status 204, got %d", w.Code)
	}

	c, w = jsonContext(t, http.MethodGet, "/api/comments/"+strconv.Itoa(int(reply.ID)), nil,
		gin.Params{{Key: "id", Value: strconv.Itoa(int(reply.ID))}}, nil)
	api.GetComment(c)
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected former reply to 404, got %d", w.Code)
	}
}

func TestUpdateCommentForeignOwnerNotFound(t *testing.T) {
	api, cleanup := setupTestDB(t)
	defer cleanup()

	alice := seedHandlerUser(t, api, "alice@example.com", "alice")
	mallory := seedHandlerUser(t, api, "mallory@example.com", "mallory")
	post := seedHandlerPost(t, api, alice, "Hello World", true)

	comment := db.Comment{Content: "mine", UserID: alice.ID, BlogPostID: post.ID}
	if err := api.db.Create(&comment).Error; err != nil {
		t.Fatalf("seed comment: %v", err)
	}

	c, w := jsonContext(t, http.MethodPut, "/api/comments/"+strconv.Itoa(int(comment.ID)),
		map[string]any{"content": "hijacked"},
		gin.Params{{Key: "id", Value: strconv.Itoa(int(comment.ID))}}, &mallory)
	api.UpdateComment(c)

	if w.Code != http.StatusNotFound {
		t.Fatalf("expected status 404 for foreign update, got %d", w.Code)
	}
}
