// Copyright (c) 2026 juan-jcr. All rights reserved.

// Package sec provides cryptographic primitives and token management.
//
// # Architecture
//
// This package isolates security-sensitive code (Hashing, JWT Signing) from
// the domain logic. It acts as an Infrastructure service injected into the
// Application layer via small, caller-defined interfaces.
package sec

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidToken is the single outcome for every token rejection.
//
// # Security
//
// Malformed encoding, wrong algorithm, signature mismatch, missing claims,
// and expiry all collapse into this one sentinel. Callers must never learn
// which sub-check failed; a distinguishable rejection would hand an attacker
// an oracle for refining forged tokens.
var ErrInvalidToken = errors.New("sec: invalid token")

// TokenCodec signs and verifies compact, self-contained access tokens.
//
// Tokens are JWTs signed with HMAC-SHA512 over a symmetric secret. The secret
// is loaded once at startup and never rotated during the process lifetime, so
// a single codec instance may be shared freely across concurrent requests
// without locking.
type TokenCodec struct {
	secret []byte
	issuer string
	ttl    time.Duration
}

// NewTokenCodec creates a TokenCodec with the given signing secret.
//
// # Parameters
//   - secret: The symmetric HS512 signing key. Must be non-empty.
//   - issuer: The 'iss' claim stamped on and required of every token.
//   - timeToLive: The fixed lifetime applied to every issued token.
func NewTokenCodec(secret []byte, issuer string, timeToLive time.Duration) (*TokenCodec, error) {
	if len(secret) == 0 {
		return nil, errors.New("sec: signing secret must not be empty")
	}
	if timeToLive <= 0 {
		return nil, errors.New("sec: token lifetime must be positive")
	}

	return &TokenCodec{
		secret: secret,
		issuer: issuer,
		ttl:    timeToLive,
	}, nil
}

// Issue creates a signed token vouching for the given subject.
//
// # Parameters
//   - subject: The username the token asserts.
//   - now: The issuance instant; expiry is now plus the codec's fixed TTL.
//
// # Returns
//   - The compact JWT string, or an error if signing fails.
func (codec *TokenCodec) Issue(subject string, now time.Time) (string, error) {
	claims := jwt.RegisteredClaims{
		Subject:   subject,
		Issuer:    codec.issuer,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(codec.ttl)),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS512, claims)
	signedToken, err := token.SignedString(codec.secret)
	if err != nil {
		return "", fmt.Errorf("sec: failed to sign token: %w", err)
	}

	return signedToken, nil
}

// Validate verifies a token string and returns the subject it vouches for.
//
// The claims are trusted only if the signature verifies under the codec's
// secret AND the expiry lies after now. Verification is deterministic: the
// same token, secret, and clock reading always yield the same outcome.
//
// # Returns
//   - The subject username on success.
//   - [ErrInvalidToken] for every rejection, with no further detail.
func (codec *TokenCodec) Validate(tokenString string, now time.Time) (string, error) {
	claims := &jwt.RegisteredClaims{}

	token, err := jwt.ParseWithClaims(tokenString, claims,
		func(token *jwt.Token) (interface{}, error) {
			// Algorithm confusion guard: only HMAC is ever acceptable here.
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("sec: unexpected signing method: %v", token.Header["alg"])
			}
			return codec.secret, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS512.Alg()}),
		jwt.WithIssuer(codec.issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(func() time.Time { return now }),
	)

	if err != nil || !token.Valid {
		return "", ErrInvalidToken
	}

	if claims.Subject == "" {
		return "", ErrInvalidToken
	}

	return claims.Subject, nil
}
