// Copyright (c) 2026 juan-jcr. All rights reserved.

package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/juan-jcr/api/internal/platform/apperr"
	"github.com/juan-jcr/api/internal/platform/dberr"
)

// PostgresUserRepository implements the [UserRepository] interface using pgx.
//
// # Error Mapping
//
// Storage-specific errors (like pgx.ErrNoRows) are mapped to domain-friendly
// [apperr.AppError] types so that storage implementation details never leak
// to clients.
type PostgresUserRepository struct {
	pool *pgxpool.Pool
}

// NewUserRepository creates a new PostgreSQL implementation of the UserRepository.
func NewUserRepository(pool *pgxpool.Pool) *PostgresUserRepository {
	return &PostgresUserRepository{pool: pool}
}

// FindByUsername retrieves a user record by its unique username.
//
// # Returns
//
// Returns [*User] if found, or [apperr.NotFound] if no record exists.
func (repository *PostgresUserRepository) FindByUsername(ctx context.Context, username string) (*User, error) {
	const query = `
		SELECT id, username, password_hash, created_at
		FROM users
		WHERE username = $1`

	user := &User{}
	err := repository.pool.QueryRow(ctx, query, username).Scan(
		&user.ID,
		&user.Username,
		&user.PasswordHash,
		&user.CreatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("User")
		}
		return nil, fmt.Errorf("postgres_user_repo_find_by_username_failed: %w", err)
	}

	return user, nil
}

// Create persists a new user record, insert-if-absent.
//
// The INSERT carries ON CONFLICT DO NOTHING on the username key, so two
// concurrent registrations of the same username cannot both succeed; the
// loser observes zero affected rows and gets [apperr.Conflict].
func (repository *PostgresUserRepository) Create(ctx context.Context, user *User) error {
	const query = `
		INSERT INTO users (username, password_hash, created_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (username) DO NOTHING
		RETURNING id`

	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now()
	}

	err := repository.pool.QueryRow(ctx, query,
		user.Username,
		user.PasswordHash,
		user.CreatedAt,
	).Scan(&user.ID)

	if err != nil {
		// DO NOTHING suppresses the conflicting row, so RETURNING yields
		// no row at all for the losing insert.
		if errors.Is(err, pgx.ErrNoRows) {
			return apperr.Conflict("User already exists")
		}
		return dberr.Wrap(err, "postgres_user_repo_create")
	}

	return nil
}
