package auth

import (
	"context"
	"encoding/hex"
	"errors"
	"fmt"

	"github.com/andrasnagy-data/authdialog/internal/shared/config"
	"github.com/andrasnagy-data/authdialog/internal/shared/cookie"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrUnverified         = errors.New("user has not verified their email")
)

type (
	servicer interface {
		ValidateCredentials(context.Context, string, string) (*User, error)
		GetUserByID(context.Context, uuid.UUID) (*User, error)
		Codec() *cookie.Codec
	}

	service struct {
		repo  repoer
		codec *cookie.Codec
	}
)

func NewAuthService(cfg *config.Config, repo repoer) (servicer, error) {
	key, err := hex.DecodeString(cfg.SecretKey)
	if err != nil {
		return nil, fmt.Errorf("decode SECRET_KEY: %w", err)
	}
	codec, err := cookie.NewCodec(key)
	if err != nil {
		return nil, fmt.Errorf("SECRET_KEY: %w", err)
	}
	return &service{repo: repo, codec: codec}, nil
}

// ValidateCredentials checks username and password. A correct password for an
// unverified user yields ErrUnverified.
func (s *service) ValidateCredentials(ctx context.Context, username, password string) (*User, error) {
	user, err := s.repo.GetByUsername(ctx, username)
	if errors.Is(err, ErrUserNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}

	err = bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password))
	if err != nil {
		return nil, ErrInvalidCredentials
	}

	if !user.Verified {
		return nil, ErrUnverified
	}
	return user, nil
}

// GetUserByID returns user by ID (for session validation)
func (s *service) GetUserByID(ctx context.Context, userID uuid.UUID) (*User, error) {
	return s.repo.GetByID(ctx, userID)
}

// Codec returns the session cookie codec
func (s *service) Codec() *cookie.Codec {
	return s.codec
}
