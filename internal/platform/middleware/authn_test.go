// Copyright (c) 2026 juan-jcr. All rights reserved.

package middleware_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/juan-jcr/api/internal/auth"
	"github.com/juan-jcr/api/internal/platform/apperr"
	"github.com/juan-jcr/api/internal/platform/ctxutil"
	"github.com/juan-jcr/api/internal/platform/middleware"
	"github.com/juan-jcr/api/internal/platform/sec"
)

// stubUserFinder resolves a fixed set of usernames.
type stubUserFinder struct {
	users map[string]*auth.User
}

func (finder *stubUserFinder) FindByUsername(_ context.Context, username string) (*auth.User, error) {
	user, ok := finder.users[username]
	if !ok {
		return nil, apperr.NotFound("User")
	}
	return user, nil
}

func newAuthnFixture(t *testing.T) (*sec.TokenCodec, *stubUserFinder) {
	t.Helper()
	codec, err := sec.NewTokenCodec([]byte("middleware-test-secret-0123456789"), "auth-api", 30*time.Minute)
	require.NoError(t, err)

	finder := &stubUserFinder{users: map[string]*auth.User{
		"alice": {ID: 1, Username: "alice"},
	}}
	return codec, finder
}

// identityCapture records the identity visible to the downstream handler.
type identityCapture struct {
	called   bool
	identity *sec.Identity
}

func (capture *identityCapture) handler() http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		capture.called = true
		capture.identity = ctxutil.GetIdentity(request.Context())
		writer.WriteHeader(http.StatusOK)
	})
}

/*
TestAuthenticate_AttachesIdentity verifies a valid token for an existing user
reaches the handler with an identity attached.
*/
func TestAuthenticate_AttachesIdentity(t *testing.T) {
	codec, finder := newAuthnFixture(t)

	token, err := codec.Issue("alice", time.Now())
	require.NoError(t, err)

	capture := &identityCapture{}
	handler := middleware.Authenticate(codec, finder)(capture.handler())

	request := httptest.NewRequest(http.MethodGet, "/", nil)
	request.Header.Set("Authorization", "Bearer "+token)
	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, request)

	assert.Equal(t, http.StatusOK, recorder.Code)
	require.True(t, capture.called)
	require.NotNil(t, capture.identity)
	assert.Equal(t, "alice", capture.identity.Username)
}

/*
TestAuthenticate_NeverShortCircuits verifies every rejection path still calls
the downstream handler, just without an identity.
*/
func TestAuthenticate_NeverShortCircuits(t *testing.T) {
	codec, finder := newAuthnFixture(t)

	validToken, err := codec.Issue("alice", time.Now())
	require.NoError(t, err)
	orphanToken, err := codec.Issue("deleted-user", time.Now())
	require.NoError(t, err)

	tests := []struct {
		name   string
		header string
	}{
		{"no_header", ""},
		{"wrong_scheme", "Basic YWxpY2U6c2VjcmV0"},
		{"lowercase_scheme", "bearer " + validToken},
		{"bare_token_no_scheme", validToken},
		{"garbage_token", "Bearer not-a-jwt"},
		{"valid_token_deleted_user", "Bearer " + orphanToken},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			capture := &identityCapture{}
			handler := middleware.Authenticate(codec, finder)(capture.handler())

			request := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				request.Header.Set("Authorization", tt.header)
			}
			recorder := httptest.NewRecorder()
			handler.ServeHTTP(recorder, request)

			assert.Equal(t, http.StatusOK, recorder.Code)
			assert.True(t, capture.called)
			assert.Nil(t, capture.identity)
		})
	}
}

/*
TestAuthenticate_Idempotent verifies running the stage twice yields the same
single identity.
*/
func TestAuthenticate_Idempotent(t *testing.T) {
	codec, finder := newAuthnFixture(t)

	token, err := codec.Issue("alice", time.Now())
	require.NoError(t, err)

	capture := &identityCapture{}
	stage := middleware.Authenticate(codec, finder)
	handler := stage(stage(capture.handler()))

	request := httptest.NewRequest(http.MethodGet, "/", nil)
	request.Header.Set("Authorization", "Bearer "+token)
	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, request)

	assert.Equal(t, http.StatusOK, recorder.Code)
	require.NotNil(t, capture.identity)
	assert.Equal(t, "alice", capture.identity.Username)
}

/*
TestRequireAuth verifies the authorization stage rejects anonymous requests
and passes authenticated ones.
*/
func TestRequireAuth(t *testing.T) {
	t.Run("anonymous_rejected", func(t *testing.T) {
		capture := &identityCapture{}
		handler := middleware.RequireAuth(capture.handler())

		request := httptest.NewRequest(http.MethodGet, "/", nil)
		recorder := httptest.NewRecorder()
		handler.ServeHTTP(recorder, request)

		assert.Equal(t, http.StatusUnauthorized, recorder.Code)
		assert.False(t, capture.called)
	})

	t.Run("authenticated_passes", func(t *testing.T) {
		capture := &identityCapture{}
		handler := middleware.RequireAuth(capture.handler())

		request := httptest.NewRequest(http.MethodGet, "/", nil)
		ctx := ctxutil.WithIdentity(request.Context(), &sec.Identity{Username: "alice"})
		recorder := httptest.NewRecorder()
		handler.ServeHTTP(recorder, request.WithContext(ctx))

		assert.Equal(t, http.StatusOK, recorder.Code)
		assert.True(t, capture.called)
	})
}
