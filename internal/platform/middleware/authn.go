// Copyright (c) 2026 juan-jcr. All rights reserved.

// Package middleware provides the HTTP middleware chain for the API server.
//
// # Architecture
//
// Middleware intercepts incoming HTTP requests to apply global policies
// before they reach the domain handlers. This includes cross-cutting concerns
// like Logging, AuthN/AuthZ, Rate Limiting, and CORS.
package middleware

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/juan-jcr/api/internal/auth"
	"github.com/juan-jcr/api/internal/platform/apperr"
	"github.com/juan-jcr/api/internal/platform/ctxutil"
	"github.com/juan-jcr/api/internal/platform/respond"
	"github.com/juan-jcr/api/internal/platform/sec"
)

// bearerPrefix is the required Authorization scheme prefix, matched
// case-sensitively and including the trailing space.
const bearerPrefix = "Bearer "

// TokenVerifier defines the interface needed to validate tokens in middleware.
//
// # Why an interface?
//
// Defining TokenVerifier here decouples the middleware from the concrete
// [sec.TokenCodec], allowing us to easily inject mocks during unit testing.
type TokenVerifier interface {
	Validate(token string, now time.Time) (string, error)
}

// UserFinder is the read-only view of the credential store the middleware needs.
type UserFinder interface {
	FindByUsername(ctx context.Context, username string) (*auth.User, error)
}

// Authenticate extracts and validates the bearer token from the Authorization
// header, and attaches an authenticated identity when — and only when — the
// token verifies and its subject still exists in the user store.
//
// # Flow
//  1. No 'Authorization: Bearer <token>' header → proceed anonymously.
//  2. Token present → validate signature and expiry via [TokenVerifier].
//  3. Invalid token → proceed anonymously (no detail leaks to the client).
//  4. Valid token → resolve the subject against [UserFinder]; a token for a
//     since-deleted user attaches nothing.
//  5. Inject [*sec.Identity] into the request context for downstream use.
//
// This stage never short-circuits: whether an anonymous request is acceptable
// is decided per-route by [RequireAuth]. It is read-only with respect to the
// store and idempotent — running it twice on a request changes nothing.
func Authenticate(verifier TokenVerifier, users UserFinder) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			authHeader := request.Header.Get("Authorization")

			// ── 1. Anonymous Access ───────────────────────────────────────────
			tokenString, hasBearer := strings.CutPrefix(authHeader, bearerPrefix)
			if !hasBearer {
				next.ServeHTTP(writer, request)
				return
			}

			// ── 2. Token Validation ───────────────────────────────────────────
			subject, err := verifier.Validate(tokenString, time.Now())
			if err != nil {
				// Uniform outcome for every rejection reason: the request
				// simply stays anonymous.
				next.ServeHTTP(writer, request)
				return
			}

			// ── 3. Subject Resolution ─────────────────────────────────────────
			// A structurally valid token for a nonexistent user must not
			// grant access.
			user, err := users.FindByUsername(request.Context(), subject)
			if err != nil {
				next.ServeHTTP(writer, request)
				return
			}

			// ── 4. Context Injection ──────────────────────────────────────────
			ctx := ctxutil.WithIdentity(request.Context(), &sec.Identity{Username: user.Username})
			next.ServeHTTP(writer, request.WithContext(ctx))
		})
	}
}

// RequireAuth blocks requests that are not authenticated.
//
// # Usage
//
// Must be registered in the router AFTER [Authenticate]. This is the
// authorization stage: [Authenticate] only ever attaches identity, while
// RequireAuth decides that an anonymous request is unacceptable for a route.
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		if ctxutil.GetIdentity(request.Context()) == nil {
			respond.Error(writer, request, apperr.Unauthorized("Authentication required"))
			return
		}
		next.ServeHTTP(writer, request)
	})
}
