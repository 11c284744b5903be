package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/inkpress/internal/db"
)

const currentUserContextKey = "__current_user"

// AuthRequired rejects requests without a valid bearer token and attaches
// the resolved user to the context for downstream handlers.
func (a *API) AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		user := a.userFromToken(c)
		if user == nil {
			respondError(c, http.StatusUnauthorized, "Authentication credentials were not provided or are invalid")
			c.Abort()
			return
		}
		c.Set(currentUserContextKey, user)
		c.Next()
	}
}

// AuthOptional attaches the user when a valid token is present but lets
// anonymous requests through. Read endpoints use this.
func (a *API) AuthOptional() gin.HandlerFunc {
	return func(c *gin.Context) {
		if user := a.userFromToken(c); user != nil {
			c.Set(currentUserContextKey, user)
		}
		c.Next()
	}
}

func (a *API) userFromToken(c *gin.Context) *db.User {
	header := strings.TrimSpace(c.GetHeader("Authorization"))
	if header == "" {
		return nil
	}

	parts := strings.Fields(header)
	if len(parts) != 2 {
		return nil
	}
	scheme := strings.ToLower(parts[0])
	if scheme != "token" && scheme != "bearer" {
		return nil
	}

	user, err := a.auth.ResolveToken(parts[1])
	if err != nil {
		return nil
	}
	return user
}

func currentUser(c *gin.Context) *db.User {
	value, exists := c.Get(currentUserContextKey)
	if !exists {
		return nil
	}
	user, ok := value.(*db.User)
	if !ok {
		return nil
	}
	return user
}
