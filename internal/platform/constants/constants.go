// Copyright (c) 2026 juan-jcr. All rights reserved.

/*
Package constants provides centralized, immutable values for the entire service.

It defines default timeouts, rate limits, and the authentication parameters
that are shared between different layers of the system.

Categories:

  - Server Timing: Read/Write/Idle timeouts for the HTTP server.
  - Rate Limiting: Burst capacities and IP tracking TTLs.
  - Authentication: Token lifetime and login throttling limits.

Using this package ensures Magic Strings and Magic Numbers are eliminated
from the business logic.
*/
package constants

import "time"

// # Metadata

const (
	AppName    = "auth-api"
	AppVersion = "0.1.0-dev"
)

// # Server Timing

const (
	// DefaultReadTimeout is the maximum duration for reading the entire request.
	DefaultReadTimeout = 5 * time.Second

	// DefaultWriteTimeout is the maximum duration before timing out writes of the response.
	DefaultWriteTimeout = 10 * time.Second

	// DefaultIdleTimeout is the maximum amount of time to wait for the next request.
	DefaultIdleTimeout = 120 * time.Second

	// DefaultReadHeaderTimeout is the amount of time allowed to read request headers.
	DefaultReadHeaderTimeout = 2 * time.Second

	// GlobalRequestTimeout is the deadline for the entire request lifecycle.
	GlobalRequestTimeout = 30 * time.Second

	// ShutdownTimeout is how long we wait for in-flight requests to complete during shutdown.
	ShutdownTimeout = 30 * time.Second
)

// # Rate Limiting

const (
	// DefaultRateLimitRPS is the requests per second allowed per IP.
	DefaultRateLimitRPS = 100.0

	// DefaultRateLimitBurst is the maximum burst allowed for the rate limiter.
	DefaultRateLimitBurst = 150

	// RateLimitCleanupInterval is how often old IP entries are removed from memory.
	RateLimitCleanupInterval = 1 * time.Minute

	// RateLimitClientTTL is how long a client must be idle before its entry is deleted.
	RateLimitClientTTL = 3 * time.Minute
)

// # Authentication

const (
	// AuthIssuer is the standard 'iss' claim in issued tokens.
	AuthIssuer = "auth-api"

	// AccessTokenTTL is the fixed lifetime of an issued access token.
	// There is no server-side session or revocation list; token validity is
	// computed purely from the token's own expiry claim, so this is the only
	// knob controlling how long a login lasts.
	AccessTokenTTL = 30 * time.Minute

	// MaxLoginAttempts is how many failed logins a username may accumulate
	// within LoginAttemptWindow before further attempts are rejected.
	MaxLoginAttempts = 5

	// LoginAttemptWindow is the fixed window for counting failed logins.
	LoginAttemptWindow = 15 * time.Minute

	// MinPasswordLength is the minimum accepted password length.
	MinPasswordLength = 6
)

// # HTTP Headers

const (
	HeaderXRequestID    = "X-Request-ID"
	HeaderXRealIP       = "X-Real-IP"
	HeaderXForwardedFor = "X-Forwarded-For"
	HeaderAuthorization = "Authorization"
	HeaderOrigin        = "Origin"
)

// # Response Fields

const (
	// FieldStatus is the JSON field carrying the fixed "Error" marker.
	FieldStatus = "Status"

	// FieldMessage is the JSON field carrying the client-safe message.
	FieldMessage = "Message"

	// FieldCode is the JSON field carrying the machine-readable error code.
	FieldCode = "Code"
)
