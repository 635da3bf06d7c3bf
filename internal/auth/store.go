// Copyright (c) 2026 juan-jcr. All rights reserved.

package auth

import (
	"context"
)

// UserRepository defines the data access contract for user records.
//
// # Review Process
//
// This interface is placed in a separate file from user.go so entity changes
// and storage-contract changes can be reviewed independently.
//
// # Implementations
//
// The canonical implementation is PostgreSQL ([PostgresUserRepository]);
// tests use in-memory fakes.
type UserRepository interface {
	// FindByUsername returns the record with the given username.
	//
	// Returns [apperr.NotFound] if the username is unregistered.
	FindByUsername(ctx context.Context, username string) (*User, error)

	// Create persists a brand-new user record, insert-if-absent.
	//
	// The implementation must be atomic with respect to the username key:
	// of two concurrent Create calls for the same username, at most one
	// succeeds and the other returns [apperr.Conflict].
	Create(ctx context.Context, user *User) error
}

// LoginThrottle counts failed login attempts per username inside a fixed
// window, so that password guessing against a single account is bounded.
//
// # Contract
//
// The throttle is advisory state, not a security boundary: implementations
// may lose counters (process restart, cache eviction) without harm. The
// auth service treats a nil throttle as "always allow".
type LoginThrottle interface {
	// Allow reports whether a login attempt for username may proceed.
	Allow(ctx context.Context, username string) (bool, error)

	// RecordFailure counts one failed attempt against username.
	RecordFailure(ctx context.Context, username string) error

	// Reset clears the failure counter after a successful login.
	Reset(ctx context.Context, username string) error
}
