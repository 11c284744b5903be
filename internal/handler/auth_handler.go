package handler

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"

	"github.com/inkpress/internal/service"
)

type registerRequest struct {
	Email           string `json:"email" binding:"required,email"`
	Username        string `json:"username" binding:"required"`
	Password        string `json:"password" binding:"required,min=8"`
	PasswordConfirm string `json:"password_confirm" binding:"required,eqfield=Password"`
	FirstName       string `json:"first_name" binding:"required"`
	LastName        string `json:"last_name" binding:"required"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type profileUpdateRequest struct {
	Username  *string `json:"username"`
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
	Bio       *string `json:"bio"`
	AvatarURL *string `json:"avatar_url"`
}

// Register creates an account and issues its bearer token in one step.
func (a *API) Register(c *gin.Context) {
	var req registerRequest
	if !bindJSON(c, &req, "Invalid registration payload") {
		return
	}

	user, err := a.auth.Register(service.RegisterInput{
		Email:     req.Email,
		Username:  req.Username,
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEmailTaken):
			respondError(c, http.StatusBadRequest, "A user with this email already exists")
		case errors.Is(err, service.ErrUsernameTaken):
			respondError(c, http.StatusBadRequest, "This username is already taken")
		default:
			log.Printf("register: %v", err)
			respondError(c, http.StatusInternalServerError, "Failed to register user")
		}
		return
	}

	token, err := a.auth.IssueToken(user.ID)
	if err != nil {
		log.Printf("issue token: %v", err)
		respondError(c, http.StatusInternalServerError, "Failed to register user")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"user":    userJSON(user),
		"token":   token.Key,
		"message": "User registered successfully",
	})
}

// Login authenticates by email and password, reusing the persisted token
// when one exists. The web session is set alongside the token.
func (a *API) Login(c *gin.Context) {
	var req loginRequest
	if !bindJSON(c, &req, "Email and password are required") {
		return
	}

	user, err := a.auth.Authenticate(req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			respondError(c, http.StatusUnauthorized, "Invalid email or password")
			return
		}
		log.Printf("login: %v", err)
		respondError(c, http.StatusInternalServerError, "Failed to log in")
		return
	}

	token, err := a.auth.IssueToken(user.ID)
	if err != nil {
		log.Printf("issue token: %v", err)
		respondError(c, http.StatusInternalServerError, "Failed to log in")
		return
	}

	session := sessions.Default(c)
	session.Set("user_id", user.ID)
	if err := session.Save(); err != nil {
		log.Printf("save session: %v", err)
	}

	c.JSON(http.StatusOK, gin.H{
		"user":    userJSON(user),
		"token":   token.Key,
		"message": "Login successful",
	})
}

// Logout revokes the requester's token and clears the session. Revoking an
// already-revoked token is a no-op, not a failure.
func (a *API) Logout(c *gin.Context) {
	user := currentUser(c)

	if err := a.auth.RevokeToken(user.ID); err != nil {
		log.Printf("revoke token: %v", err)
	}

	session := sessions.Default(c)
	session.Clear()
	if err := session.Save(); err != nil {
		log.Printf("save session: %v", err)
	}

	c.JSON(http.StatusOK, gin.H{"message": "Logout successful"})
}

// GetProfile returns the requester's profile.
func (a *API) GetProfile(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"user": userJSON(currentUser(c))})
}

// UpdateProfile applies a partial update to the requester's profile.
func (a *API) UpdateProfile(c *gin.Context) {
	var req profileUpdateRequest
	if !bindJSON(c, &req, "Invalid profile payload") {
		return
	}

	user, err := a.auth.UpdateProfile(currentUser(c).ID, service.ProfileInput{
		Username:  req.Username,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Bio:       req.Bio,
		AvatarURL: req.AvatarURL,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUsernameTaken):
			respondError(c, http.StatusBadRequest, "This username is already taken")
		case errors.Is(err, service.ErrUserNotFound):
			respondError(c, http.StatusNotFound, "User not found")
		default:
			respondError(c, http.StatusBadRequest, err.Error())
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user":    userJSON(user),
		"message": "Profile updated successfully",
	})
}
