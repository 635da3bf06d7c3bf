// Copyright (c) 2026 juan-jcr. All rights reserved.

// Package auth implements the stateless authentication pipeline: credential
// verification, signed-token issuance, and the user credential store contract.
//
// # Architecture
//
// The entities and service in this package have no dependencies on transport
// or storage technology. They interact with collaborators (token codec,
// password hash, repositories) through small interfaces, which keeps the
// core logic highly testable.
package auth

import (
	"time"
)

// User represents a registered principal.
//
// # Rules
//   - Username is the natural key: globally unique, non-empty, whitespace-free.
//   - PasswordHash is produced exclusively by the bcrypt primitive via
//     [Service.Register]; the plaintext password is never stored or logged.
//   - Records are created exactly once at registration and never mutated or
//     deleted by this package.
type User struct {
	// ID is a storage surrogate. It carries no authentication semantics;
	// every auth decision keys on Username.
	ID           int64     `json:"-"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"` // Explicitly omitted from JSON for security.
	CreatedAt    time.Time `json:"created_at"`
}
