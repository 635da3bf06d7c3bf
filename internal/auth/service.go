// Copyright (c) 2026 juan-jcr. All rights reserved.

package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/juan-jcr/api/internal/platform/apperr"
	"github.com/juan-jcr/api/internal/platform/sec"
)

// invalidCredentialsMessage is the single client-visible message for every
// login failure. Unknown username, wrong password, and throttled account must
// stay externally indistinguishable — a distinct message for any of them
// would let an attacker enumerate valid usernames.
const invalidCredentialsMessage = "Invalid credentials"

// TokenIssuer defines the contract for producing signed access tokens.
type TokenIssuer interface {
	// Issue creates a signed token whose subject is the given username and
	// whose expiry is now plus the issuer's fixed TTL.
	Issue(subject string, now time.Time) (string, error)
}

// Service implements the register and login use cases.
//
// # Review Process
//
// This service is critical for security. Any changes to hashing, registration,
// or login logic must be reviewed carefully.
type Service struct {
	users    UserRepository
	tokens   TokenIssuer
	throttle LoginThrottle // optional; nil disables login throttling
}

// NewService constructs a new [Service] with its dependencies.
//
// throttle may be nil, in which case logins are not throttled.
func NewService(users UserRepository, tokens TokenIssuer, throttle LoginThrottle) *Service {
	return &Service{
		users:    users,
		tokens:   tokens,
		throttle: throttle,
	}
}

// RegisterInput holds the credentials for enrolling a new user. It exists
// only for the duration of the call; neither field is retained afterwards.
type RegisterInput struct {
	Username string
	Password string
}

// Register creates a brand-new user record from the given credentials.
//
// # Returns
//   - A human-readable success message.
//   - [apperr.Conflict] if the username is already registered.
//
// # Flow
//  1. Lookup the username; fail with Conflict if a record exists.
//  2. Hash the password (bcrypt). The plaintext never reaches storage.
//  3. Insert-if-absent; a concurrent duplicate also surfaces as Conflict.
//
// Registration does not issue a token: the caller must log in to obtain one.
func (service *Service) Register(ctx context.Context, input RegisterInput) (string, error) {
	// ── 1. Uniqueness Check ───────────────────────────────────────────────

	_, err := service.users.FindByUsername(ctx, input.Username)
	if err == nil {
		return "", apperr.Conflict("User already exists")
	}

	// ── 2. Security ───────────────────────────────────────────────────────

	hashedPassword, err := sec.HashPassword(input.Password)
	if err != nil {
		return "", fmt.Errorf("auth_service_hash_failed: %w", err)
	}

	// ── 3. Persistence ────────────────────────────────────────────────────

	// Create is insert-if-absent, so the lookup above is only a fast path:
	// a racing duplicate registration still loses here with Conflict.
	user := &User{
		Username:     input.Username,
		PasswordHash: hashedPassword,
	}
	if err := service.users.Create(ctx, user); err != nil {
		return "", err
	}

	return "User registered successfully", nil
}

// LoginInput holds the credentials for an authentication attempt.
type LoginInput struct {
	Username string
	Password string
}

// Login validates user credentials and issues a signed access token.
//
// # Returns
//   - The compact signed token whose subject is the username.
//   - [apperr.Unauthorized] with one uniform message for every credential
//     failure (unknown username, wrong password, throttled account).
func (service *Service) Login(ctx context.Context, input LoginInput) (string, error) {
	// ── 1. Throttle Check ─────────────────────────────────────────────────

	// Fail open on throttle errors: a Redis outage must not lock every
	// user out of the API.
	if service.throttle != nil {
		if allowed, err := service.throttle.Allow(ctx, input.Username); err == nil && !allowed {
			return "", apperr.Unauthorized(invalidCredentialsMessage)
		}
	}

	// ── 2. Fetch User Record ──────────────────────────────────────────────

	user, err := service.users.FindByUsername(ctx, input.Username)
	if err != nil {
		service.recordFailure(ctx, input.Username)
		return "", apperr.Unauthorized(invalidCredentialsMessage)
	}

	// ── 3. Password Verification ──────────────────────────────────────────

	// bcrypt compares in constant time.
	if !sec.CheckPasswordHash(input.Password, user.PasswordHash) {
		service.recordFailure(ctx, input.Username)
		return "", apperr.Unauthorized(invalidCredentialsMessage)
	}

	if service.throttle != nil {
		_ = service.throttle.Reset(ctx, user.Username)
	}

	// ── 4. Token Issuance ─────────────────────────────────────────────────

	token, err := service.tokens.Issue(user.Username, time.Now())
	if err != nil {
		return "", fmt.Errorf("auth_service_token_issue_failed: %w", err)
	}

	return token, nil
}

// recordFailure counts a failed attempt, ignoring throttle transport errors.
func (service *Service) recordFailure(ctx context.Context, username string) {
	if service.throttle != nil {
		_ = service.throttle.RecordFailure(ctx, username)
	}
}
