package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/dnk-music/intake/cmd/intake/models"
	"github.com/dnk-music/intake/common/logger"
)

// ErrInvalidCredentials covers unknown accounts and wrong passwords alike
var ErrInvalidCredentials = errors.New("invalid credentials")

// ErrInvalidToken signals a malformed, expired or revoked session token
var ErrInvalidToken = errors.New("invalid session token")

const sessionKeyPrefix = "session:"

// UserStore is the persisted account collection
type UserStore interface {
	Create(ctx context.Context, u *models.User) error
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	List(ctx context.Context) ([]*models.User, error)
	SetPasswordHash(ctx context.Context, username, hash string) error
	SetVerified(ctx context.Context, username string, verified bool) error
	SetLinkUpload(ctx context.Context, username string, enabled bool) error
	Delete(ctx context.Context, username string) error
}

// SessionStore keeps issued tokens so logout can revoke them before expiry
type SessionStore interface {
	SetWithExpiry(ctx context.Context, key, value string, expiry time.Duration) error
	Get(ctx context.Context, key string) (string, bool, error)
	Delete(ctx context.Context, keys ...string) error
}

// UserService owns accounts and sessions
type UserService struct {
	users    UserStore
	sessions SessionStore
	secret   []byte
	tokenTTL time.Duration
	log      *logger.Logger
}

// NewUserService creates the account service
func NewUserService(users UserStore, sessions SessionStore, secret string, tokenTTL time.Duration, log *logger.Logger) *UserService {
	return &UserService{
		users:    users,
		sessions: sessions,
		secret:   []byte(secret),
		tokenTTL: tokenTTL,
		log:      log,
	}
}

// Register creates an account with a hashed credential
func (s *UserService) Register(ctx context.Context, username, password string, isAdmin bool) error {
	if username == "" || password == "" {
		return models.Validationf("username and password are required")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	return s.users.Create(ctx, &models.User{
		Username:     username,
		PasswordHash: string(hash),
		IsAdmin:      isAdmin,
	})
}

// Login verifies the credential and issues a session token
func (s *UserService) Login(ctx context.Context, username, password string) (string, error) {
	user, err := s.users.GetByUsername(ctx, username)
	if errors.Is(err, models.ErrNotFound) {
		return "", ErrInvalidCredentials
	}
	if err != nil {
		return "", err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return "", ErrInvalidCredentials
	}

	now := time.Now()
	claims := jwt.MapClaims{
		"sub":   user.Username,
		"admin": user.IsAdmin,
		"iat":   now.Unix(),
		"exp":   now.Add(s.tokenTTL).Unix(),
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign session token: %w", err)
	}

	if err := s.sessions.SetWithExpiry(ctx, sessionKeyPrefix+token, user.Username, s.tokenTTL); err != nil {
		return "", err
	}

	s.log.Info("user logged in", "username", username)
	return token, nil
}

// Logout revokes a session token
func (s *UserService) Logout(ctx context.Context, token string) error {
	return s.sessions.Delete(ctx, sessionKeyPrefix+token)
}

// Authenticate resolves a session token to its account. The token must both
// verify against the signing secret and still be present in the session store.
func (s *UserService) Authenticate(ctx context.Context, token string) (*models.User, error) {
	parsed, err := jwt.Parse(token, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil || !parsed.Valid {
		return nil, ErrInvalidToken
	}

	username, ok, err := s.sessions.Get(ctx, sessionKeyPrefix+token)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrInvalidToken
	}

	user, err := s.users.GetByUsername(ctx, username)
	if errors.Is(err, models.ErrNotFound) {
		return nil, ErrInvalidToken
	}
	if err != nil {
		return nil, err
	}

	return user, nil
}

// ChangePassword rotates the credential after verifying the current one
func (s *UserService) ChangePassword(ctx context.Context, username, current, updated string) error {
	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		return err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(current)) != nil {
		return ErrInvalidCredentials
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(updated), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	return s.users.SetPasswordHash(ctx, username, string(hash))
}

// List returns all accounts
func (s *UserService) List(ctx context.Context) ([]*models.User, error) {
	return s.users.List(ctx)
}

// Get fetches one account
func (s *UserService) Get(ctx context.Context, username string) (*models.User, error) {
	return s.users.GetByUsername(ctx, username)
}

// SetLinkUpload toggles link-based sourcing for the account
func (s *UserService) SetLinkUpload(ctx context.Context, username string, enabled bool) error {
	return s.users.SetLinkUpload(ctx, username, enabled)
}

// Delete removes an account
func (s *UserService) Delete(ctx context.Context, username string) error {
	return s.users.Delete(ctx, username)
}
