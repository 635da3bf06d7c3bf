// Copyright (c) 2026 juan-jcr. All rights reserved.

package auth_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/juan-jcr/api/internal/auth"
	"github.com/juan-jcr/api/internal/platform/respond"
	"github.com/juan-jcr/api/internal/platform/sec"
)

// newTestRouter wires a handler over in-memory storage and returns the
// router plus the codec for asserting on issued tokens.
func newTestRouter(t *testing.T) (http.Handler, *sec.TokenCodec) {
	t.Helper()
	codec := newTestCodec(t)
	service := auth.NewService(newMemoryUserRepository(), codec, nil)
	return auth.NewHandler(service).Routes(), codec
}

func postJSON(t *testing.T, router http.Handler, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	request := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	request.Header.Set("Content-Type", "application/json")
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, request)
	return recorder
}

/*
TestSignUp_Success verifies a valid registration returns a plain-text
confirmation.
*/
func TestSignUp_Success(t *testing.T) {
	router, _ := newTestRouter(t)

	recorder := postJSON(t, router, "/sign-up", `{"username":"alice","password":"secret1"}`)

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Header().Get("Content-Type"), "text/plain")
	assert.Equal(t, "User registered successfully", recorder.Body.String())
}

/*
TestSignUp_DuplicateUsername verifies the conflict envelope for an already
registered username.
*/
func TestSignUp_DuplicateUsername(t *testing.T) {
	router, _ := newTestRouter(t)

	first := postJSON(t, router, "/sign-up", `{"username":"alice","password":"secret1"}`)
	require.Equal(t, http.StatusOK, first.Code)

	second := postJSON(t, router, "/sign-up", `{"username":"alice","password":"secret1"}`)
	assert.Equal(t, http.StatusConflict, second.Code)

	var envelope respond.ErrorEnvelope
	require.NoError(t, json.Unmarshal(second.Body.Bytes(), &envelope))
	assert.Equal(t, "Error", envelope.Status)
	assert.Equal(t, "User already exists", envelope.Message)
	assert.Equal(t, "CONFLICT", envelope.Code)
}

/*
TestSignUp_ValidationFailure verifies a malformed payload is rejected with a
bare field → message map, not the error envelope.
*/
func TestSignUp_ValidationFailure(t *testing.T) {
	router, _ := newTestRouter(t)

	recorder := postJSON(t, router, "/sign-up", `{"username":"","password":"123"}`)

	assert.Equal(t, http.StatusConflict, recorder.Code)

	var fields map[string]string
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &fields))
	assert.Equal(t, "This field is required", fields["username"])
	assert.Equal(t, "Minimum 6 characters", fields["password"])
	assert.NotContains(t, fields, "Status")
}

/*
TestSignUp_UsernameWithWhitespace verifies whitespace in the username is a
validation failure.
*/
func TestSignUp_UsernameWithWhitespace(t *testing.T) {
	router, _ := newTestRouter(t)

	recorder := postJSON(t, router, "/sign-up", `{"username":"al ice","password":"secret1"}`)

	assert.Equal(t, http.StatusConflict, recorder.Code)

	var fields map[string]string
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &fields))
	assert.Equal(t, "Must not contain whitespace", fields["username"])
}

/*
TestSignUp_InvalidJSON verifies an undecodable body is rejected at the
boundary.
*/
func TestSignUp_InvalidJSON(t *testing.T) {
	router, _ := newTestRouter(t)

	recorder := postJSON(t, router, "/sign-up", `{"username":`)

	assert.Equal(t, http.StatusConflict, recorder.Code)

	var fields map[string]string
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &fields))
	assert.Equal(t, "Invalid JSON payload", fields["body"])
}

/*
TestLogIn_Success verifies a registered user receives a token whose subject
is their username.
*/
func TestLogIn_Success(t *testing.T) {
	router, codec := newTestRouter(t)

	signUp := postJSON(t, router, "/sign-up", `{"username":"alice","password":"secret1"}`)
	require.Equal(t, http.StatusOK, signUp.Code)

	recorder := postJSON(t, router, "/log-in", `{"username":"alice","password":"secret1"}`)
	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Header().Get("Content-Type"), "application/json")

	var body struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	require.NotEmpty(t, body.Token)

	subject, err := codec.Validate(body.Token, time.Now())
	require.NoError(t, err)
	assert.Equal(t, "alice", subject)
}

/*
TestLogIn_BadCredentials verifies unknown usernames and wrong passwords
return identical 401 bodies.
*/
func TestLogIn_BadCredentials(t *testing.T) {
	router, _ := newTestRouter(t)

	signUp := postJSON(t, router, "/sign-up", `{"username":"alice","password":"secret1"}`)
	require.Equal(t, http.StatusOK, signUp.Code)

	tests := []struct {
		name string
		body string
	}{
		{"unknown_username", `{"username":"nobody","password":"secret1"}`},
		{"wrong_password", `{"username":"alice","password":"wrong-password"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recorder := postJSON(t, router, "/log-in", tt.body)

			assert.Equal(t, http.StatusUnauthorized, recorder.Code)

			var envelope respond.ErrorEnvelope
			require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &envelope))
			assert.Equal(t, "Error", envelope.Status)
			assert.Equal(t, "Invalid credentials", envelope.Message)
			assert.Equal(t, "UNAUTHORIZED", envelope.Code)
		})
	}
}

/*
TestLogIn_ValidationRunsBeforeLookup verifies shape validation rejects the
request before any credential check.
*/
func TestLogIn_ValidationRunsBeforeLookup(t *testing.T) {
	router, _ := newTestRouter(t)

	recorder := postJSON(t, router, "/log-in", `{"username":"alice","password":""}`)

	assert.Equal(t, http.StatusConflict, recorder.Code)

	var fields map[string]string
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &fields))
	assert.Contains(t, fields, "password")
}

/*
TestRoutes_MethodNotAllowed verifies the endpoints only accept POST.
*/
func TestRoutes_MethodNotAllowed(t *testing.T) {
	router, _ := newTestRouter(t)

	request := httptest.NewRequest(http.MethodGet, "/sign-up", nil)
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, request)

	assert.Equal(t, http.StatusMethodNotAllowed, recorder.Code)
}
