package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/andrasnagy-data/authdialog/internal/shared/config"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	ErrUserNotFound = errors.New("user not found")
)

type (
	repoer interface {
		GetByUsername(ctx context.Context, username string) (*User, error)
		GetByID(ctx context.Context, id uuid.UUID) (*User, error)
	}

	repo struct {
		pool *pgxpool.Pool
	}

	// configRepo serves the single user configured through the environment.
	configRepo struct {
		user *User
	}
)

// NewRepo returns a Postgres-backed repo, or the env-configured user when pool is nil.
func NewRepo(cfg *config.Config, pool *pgxpool.Pool) (repoer, error) {
	if pool != nil {
		return &repo{pool: pool}, nil
	}
	return newConfigRepo(cfg)
}

func newConfigRepo(cfg *config.Config) (*configRepo, error) {
	if cfg.Username == "" {
		return &configRepo{}, nil
	}
	id, err := uuid.Parse(cfg.UserId)
	if err != nil {
		return nil, fmt.Errorf("parse USER_ID: %w", err)
	}
	return &configRepo{user: &User{
		ID:           id,
		Username:     cfg.Username,
		PasswordHash: cfg.PasswordHash,
		Verified:     cfg.UserVerified,
	}}, nil
}

func (r *repo) GetByUsername(ctx context.Context, username string) (*User, error) {
	stmt := `
	SELECT id, username, password_hash, verified
	FROM users
	WHERE username = $1`

	return r.scanUser(r.pool.QueryRow(ctx, stmt, username))
}

func (r *repo) GetByID(ctx context.Context, id uuid.UUID) (*User, error) {
	stmt := `
	SELECT id, username, password_hash, verified
	FROM users
	WHERE id = $1`

	return r.scanUser(r.pool.QueryRow(ctx, stmt, id))
}

func (r *repo) scanUser(row pgx.Row) (*User, error) {
	user := new(User)
	err := row.Scan(
		&user.ID,
		&user.Username,
		&user.PasswordHash,
		&user.Verified,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return user, nil
}

func (r *configRepo) GetByUsername(_ context.Context, username string) (*User, error) {
	if r.user == nil || r.user.Username != username {
		return nil, ErrUserNotFound
	}
	u := *r.user
	return &u, nil
}

func (r *configRepo) GetByID(_ context.Context, id uuid.UUID) (*User, error) {
	if r.user == nil || r.user.ID != id {
		return nil, ErrUserNotFound
	}
	u := *r.user
	return &u, nil
}
