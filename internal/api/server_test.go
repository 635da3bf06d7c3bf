// Copyright (c) 2026 juan-jcr. All rights reserved.

package api_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/juan-jcr/api/internal/api"
	"github.com/juan-jcr/api/internal/auth"
	"github.com/juan-jcr/api/internal/platform/apperr"
	"github.com/juan-jcr/api/internal/platform/config"
	"github.com/juan-jcr/api/internal/platform/constants"
	"github.com/juan-jcr/api/internal/platform/respond"
	"github.com/juan-jcr/api/internal/platform/sec"
)

// memoryUserRepository backs the full stack with an in-memory user table.
// It serves both the auth service and the authentication middleware.
type memoryUserRepository struct {
	mu    sync.Mutex
	users map[string]*auth.User
}

func (repository *memoryUserRepository) FindByUsername(_ context.Context, username string) (*auth.User, error) {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	user, ok := repository.users[username]
	if !ok {
		return nil, apperr.NotFound("User")
	}
	copied := *user
	return &copied, nil
}

func (repository *memoryUserRepository) Create(_ context.Context, user *auth.User) error {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	if _, exists := repository.users[user.Username]; exists {
		return apperr.Conflict("User already exists")
	}
	user.ID = int64(len(repository.users) + 1)
	user.CreatedAt = time.Now()
	copied := *user
	repository.users[user.Username] = &copied
	return nil
}

// newTestServer wires the complete router over in-memory storage: real
// middleware chain, real codec, real handlers. Only PostgreSQL and Redis are
// replaced.
func newTestServer(t *testing.T) http.Handler {
	t.Helper()

	log := slog.New(slog.NewJSONHandler(io.Discard, nil))
	cfg := &config.Config{
		ServerPort:  "8080",
		Environment: "test",
	}

	codec, err := sec.NewTokenCodec([]byte("server-test-secret-0123456789abc"), constants.AuthIssuer, constants.AccessTokenTTL)
	require.NoError(t, err)

	repository := &memoryUserRepository{users: make(map[string]*auth.User)}
	authService := auth.NewService(repository, codec, nil)

	liveness, readiness := api.NewHealthHandlers(api.HealthDependencies{
		CheckDatabase: func() error { return nil },
	}, log)

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	server := api.NewServer(ctx, cfg, log, codec, repository, api.Handlers{
		Liveness:  liveness,
		Readiness: readiness,
		Auth:      auth.NewHandler(authService),
		Hello:     api.NewHelloHandler(),
	})
	return server.Handler()
}

func doJSON(handler http.Handler, method, path, body, bearer string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	request := httptest.NewRequest(method, path, reader)
	if body != "" {
		request.Header.Set("Content-Type", "application/json")
	}
	if bearer != "" {
		request.Header.Set("Authorization", "Bearer "+bearer)
	}
	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, request)
	return recorder
}

func loginFor(t *testing.T, handler http.Handler, username, password string) string {
	t.Helper()

	signUp := doJSON(handler, http.MethodPost, "/auth/sign-up",
		`{"username":"`+username+`","password":"`+password+`"}`, "")
	require.Equal(t, http.StatusOK, signUp.Code)

	logIn := doJSON(handler, http.MethodPost, "/auth/log-in",
		`{"username":"`+username+`","password":"`+password+`"}`, "")
	require.Equal(t, http.StatusOK, logIn.Code)

	var body struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(logIn.Body.Bytes(), &body))
	require.NotEmpty(t, body.Token)
	return body.Token
}

/*
TestServer_RegisterLoginHello walks the happy path through the full router:
sign up, log in, then reach the protected endpoint with the issued token.
*/
func TestServer_RegisterLoginHello(t *testing.T) {
	handler := newTestServer(t)

	token := loginFor(t, handler, "alice", "secret1")

	hello := doJSON(handler, http.MethodGet, "/api/v1/hello", "", token)
	assert.Equal(t, http.StatusOK, hello.Code)
	assert.Equal(t, "Hello, alice", hello.Body.String())
}

/*
TestServer_ProtectedRouteRejectsAnonymous verifies the protected group
returns 401 without a usable bearer token.
*/
func TestServer_ProtectedRouteRejectsAnonymous(t *testing.T) {
	handler := newTestServer(t)

	tests := []struct {
		name   string
		bearer string
	}{
		{"no_token", ""},
		{"garbage_token", "not-a-jwt"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recorder := doJSON(handler, http.MethodGet, "/api/v1/hello", "", tt.bearer)

			assert.Equal(t, http.StatusUnauthorized, recorder.Code)

			var envelope respond.ErrorEnvelope
			require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &envelope))
			assert.Equal(t, "Error", envelope.Status)
			assert.Equal(t, "UNAUTHORIZED", envelope.Code)
		})
	}
}

/*
TestServer_TokenForDeletedUser verifies a structurally valid token whose
subject no longer exists in the store does not grant access.
*/
func TestServer_TokenForDeletedUser(t *testing.T) {
	handler := newTestServer(t)

	codec, err := sec.NewTokenCodec([]byte("server-test-secret-0123456789abc"), constants.AuthIssuer, constants.AccessTokenTTL)
	require.NoError(t, err)
	orphanToken, err := codec.Issue("ghost", time.Now())
	require.NoError(t, err)

	recorder := doJSON(handler, http.MethodGet, "/api/v1/hello", "", orphanToken)
	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
}

/*
TestServer_PublicRoutesIgnoreInvalidToken verifies a broken Authorization
header does not break public endpoints.
*/
func TestServer_PublicRoutesIgnoreInvalidToken(t *testing.T) {
	handler := newTestServer(t)

	recorder := doJSON(handler, http.MethodPost, "/auth/sign-up",
		`{"username":"alice","password":"secret1"}`, "expired-or-garbage")

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, "User registered successfully", recorder.Body.String())
}

/*
TestServer_HealthProbes verifies liveness and readiness wiring.
*/
func TestServer_HealthProbes(t *testing.T) {
	handler := newTestServer(t)

	health := doJSON(handler, http.MethodGet, "/health", "", "")
	assert.Equal(t, http.StatusOK, health.Code)

	ready := doJSON(handler, http.MethodGet, "/ready", "", "")
	assert.Equal(t, http.StatusOK, ready.Code)

	var body struct {
		Status string `json:"status"`
	}
	require.NoError(t, json.Unmarshal(ready.Body.Bytes(), &body))
	assert.Equal(t, "ready", body.Status)
}

/*
TestServer_ReadinessDegraded verifies a failing dependency check flips the
readiness probe to 503.
*/
func TestServer_ReadinessDegraded(t *testing.T) {
	log := slog.New(slog.NewJSONHandler(io.Discard, nil))
	_, readiness := api.NewHealthHandlers(api.HealthDependencies{
		CheckDatabase: func() error { return context.DeadlineExceeded },
	}, log)

	request := httptest.NewRequest(http.MethodGet, "/ready", nil)
	recorder := httptest.NewRecorder()
	readiness(recorder, request)

	assert.Equal(t, http.StatusServiceUnavailable, recorder.Code)

	var body struct {
		Status string `json:"status"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	assert.Equal(t, "degraded", body.Status)
}

/*
TestServer_RequestIDHeader verifies every response carries a request ID.
*/
func TestServer_RequestIDHeader(t *testing.T) {
	handler := newTestServer(t)

	recorder := doJSON(handler, http.MethodGet, "/health", "", "")
	assert.NotEmpty(t, recorder.Header().Get(constants.HeaderXRequestID))
}

/*
TestServer_UnknownRoute verifies unmatched paths fall through to 404.
*/
func TestServer_UnknownRoute(t *testing.T) {
	handler := newTestServer(t)

	recorder := doJSON(handler, http.MethodGet, "/nope", "", "")
	assert.Equal(t, http.StatusNotFound, recorder.Code)
}
