// Copyright (c) 2026 juan-jcr. All rights reserved.

package sec

// Identity is the authenticated principal attached to a request context.
//
// # Lifecycle
//
// Created by the authentication middleware at most once per request, after a
// bearer token has been validated and its subject confirmed against the user
// store. It lives only inside that request's context and is discarded when
// the request completes — never persisted, never shared across requests.
//
// Downstream handlers trust an attached Identity without re-validating.
type Identity struct {
	// Username is the unique name of the authenticated user.
	Username string
}
