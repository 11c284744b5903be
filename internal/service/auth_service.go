package service

import (
	"errors"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/inkpress/internal/db"
)

var (
	ErrEmailTaken         = errors.New("email already registered")
	ErrUsernameTaken      = errors.New("username already taken")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUserNotFound       = errors.New("user not found")
)

// AuthService wraps user identity and bearer-token operations.
type AuthService struct {
	db *gorm.DB
}

// RegisterInput represents fields accepted when creating an account.
type RegisterInput struct {
	Email     string
	Username  string
	Password  string
	FirstName string
	LastName  string
}

// ProfileInput represents the mutable profile fields. Nil pointers are left
// untouched so PATCH-style partial updates work; email is immutable.
type ProfileInput struct {
	Username  *string
	FirstName *string
	LastName  *string
	Bio       *string
	AvatarURL *string
}

// NewAuthService creates an AuthService instance.
func NewAuthService(gdb *gorm.DB) *AuthService {
	return &AuthService{db: gdb}
}

// Register creates a user with a bcrypt hashed password. Email and username
// uniqueness are checked up front so the caller gets a field-specific error
// instead of a bare constraint violation.
func (s *AuthService) Register(input RegisterInput) (*db.User, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))
	username := strings.TrimSpace(input.Username)

	var existing db.User
	if err := s.db.Where("email = ?", email).First(&existing).Error; err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	if err := s.db.Where("username = ?", username).First(&existing).Error; err == nil {
		return nil, ErrUsernameTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := db.User{
		Email:     email,
		Username:  username,
		Password:  string(hashed),
		FirstName: strings.TrimSpace(input.FirstName),
		LastName:  strings.TrimSpace(input.LastName),
	}
	if err := s.db.Create(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// Authenticate resolves an email/password pair to a user. Unknown email and
// wrong password return the same error so nothing about account existence
// leaks.
func (s *AuthService) Authenticate(email, password string) (*db.User, error) {
	var user db.User
	err := s.db.Where("email = ?", strings.ToLower(strings.TrimSpace(email))).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return &user, nil
}

// IssueToken returns the user's persistent token, creating one on first use.
func (s *AuthService) IssueToken(userID uint) (*db.AuthToken, error) {
	token := db.AuthToken{UserID: userID}
	err := s.db.
		Where(db.AuthToken{UserID: userID}).
		Attrs(db.AuthToken{Key: newTokenKey()}).
		FirstOrCreate(&token).Error
	if err != nil {
		return nil, err
	}
	return &token, nil
}

// RevokeToken deletes the user's token. Revoking when no token exists is a
// no-op, so logging out twice succeeds.
func (s *AuthService) RevokeToken(userID uint) error {
	return s.db.Where("user_id = ?", userID).Delete(&db.AuthToken{}).Error
}

// ResolveToken maps a bearer key back to its user.
func (s *AuthService) ResolveToken(key string) (*db.User, error) {
	var token db.AuthToken
	err := s.db.Preload("User").Where("key = ?", key).First(&token).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	return &token.User, nil
}

// GetUser fetches a user by id.
func (s *AuthService) GetUser(id uint) (*db.User, error) {
	var user db.User
	if err := s.db.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

// UpdateProfile applies the provided profile fields to the user.
func (s *AuthService) UpdateProfile(id uint, input ProfileInput) (*db.User, error) {
	user, err := s.GetUser(id)
	if err != nil {
		return nil, err
	}

	if input.Username != nil {
		username := strings.TrimSpace(*input.Username)
		if username == "" {
			return nil, errors.New("username is required")
		}
		var existing db.User
		if err := s.db.Where("username = ? AND id <> ?", username, id).First(&existing).Error; err == nil {
			return nil, ErrUsernameTaken
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		user.Username = username
	}
	if input.FirstName != nil {
		user.FirstName = strings.TrimSpace(*input.FirstName)
	}
	if input.LastName != nil {
		user.LastName = strings.TrimSpace(*input.LastName)
	}
	if input.Bio != nil {
		user.Bio = strings.TrimSpace(*input.Bio)
	}
	if input.AvatarURL != nil {
		user.AvatarURL = strings.TrimSpace(*input.AvatarURL)
	}

	if err := s.db.Save(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

func newTokenKey() string {
	return strings.ReplaceAll(uuid.NewString()+uuid.NewString(), "-", "")
}
