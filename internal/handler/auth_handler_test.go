package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
)

func TestRegisterIssuesToken(t *testing.T) {
	api, cleanup := setupTestDB(t)
	defer cleanup()

	payload := map[string]any{
		"email":            "alice@example.com",
		"username":         "alice",
		"password":         "secret123",
		"password_confirm": "secret123",
		"first_name":       "Alice",
		"last_name":        "Doe",
	}
	c, w := jsonContext(t, http.MethodPost, "/api/auth/register", payload, nil, nil)

	api.Register(c)

	if w.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d: %s", w.Code, w.Body.String())
	}

	parsed := decodeBody(t, w)
	if parsed["token"] == "" || parsed["token"] == nil {
		t.Fatal("expected a token in the response")
	}
	user, ok := parsed["user"].(map[string]any)
	if !ok || user["email"] != "alice@example.com" {
		t.Fatalf("unexpected user payload: %v", parsed["user"])
	}
}

func TestRegisterPasswordMismatch(t *testing.T) {
	api, cleanup := setupTestDB(t)
	defer cleanup()

	payload := map[string]any{
		"email":            "alice@example.com",
		"username":         "alice",
		"password":         "secret123",
		"password_confirm": "different",
		"first_name":       "Alice",
		"last_name":        "Doe",
	}
	c, w := jsonContext(t, http.MethodPost, "/api/auth/register", payload, nil, nil)

	api.Register(c)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", w.Code)
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	api, cleanup := setupTestDB(t)
	defer cleanup()

	seedHandlerUser(t, api, "alice@example.com", "alice")

	payload := map[string]any{
		"email":            "alice@example.com",
		"username":         "alice2",
		"password":         "secret123",
		"password_confirm": "secret123",
		"first_name":       "Alice",
		"last_name":        "Doe",
	}
	c, w := jsonContext(t, http.MethodPost, "/api/auth/register", payload, nil, nil)

	api.Register(c)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", w.Code)
	}
}

// loginEngine mounts the login handler behind the session middleware the
// real router uses.
func loginEngine(api *API) *gin.Engine {
	r := gin.New()
	store := cookie.NewStore([]byte("test-secret"))
	r.Use(sessions.Sessions("test_session", store))
	r.POST("/api/auth/login", api.Login)
	return r
}

func TestLoginRoundTrip(t *testing.T) {
	api, cleanup := setupTestDB(t)
	defer cleanup()

	register := map[string]any{
		"email":            "alice@example.com",
		"username":         "alice",
		"password":         "secret123",
		"password_confirm": "secret123",
		"first_name":       "Alice",
		"last_name":        "Doe",
	}
	c, w := jsonContext(t, http.MethodPost, "/api/auth/register", register, nil, nil)
	api.Register(c)
	if w.Code != http.StatusCreated {
		t.Fatalf("register failed: %d", w.Code)
	}

	r := loginEngine(api)
	body, _ := json.Marshal(map[string]any{"email": "alice@example.com", "password": "secret123"})
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rr.Code, rr.Body.String())
	}

	var parsed map[string]any
	if err := json.Unmarshal(rr.Body.Bytes(), &parsed); err != nil {
		t.Fatalf("decode login response: %v", err)
	}
	if parsed["token"] == nil || parsed["token"] == "" {
		t.Fatal("expected a token in the login response")
	}
}

func TestLoginWrongPassword(t *testing.T) {
	api, cleanup := setupTestDB(t)
	defer cleanup()

	c, w := jsonContext(t, http.MethodPost, "/api/auth/register", map[string]any{
		"email":            "alice@example.com",
		"username":         "alice",
		"password":         "secret123",
		"password_confirm": "secret123",
		"first_name":       "Alice",
		"last_name":        "Doe",
	}, nil, nil)
	api.Register(c)
	if w.Code != http.StatusCreated {
		t.Fatalf("register failed: %d", w.Code)
	}

	r := loginEngine(api)
	body, _ := json.Marshal(map[string]any{"email": "alice@example.com", "password": "wrongpass"})
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("expected status 401, got %d", rr.Code)
	}
}
