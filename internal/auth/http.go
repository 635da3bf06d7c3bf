// Copyright (c) 2026 juan-jcr. All rights reserved.

package auth

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/juan-jcr/api/internal/platform/constants"
	"github.com/juan-jcr/api/internal/platform/respond"
	"github.com/juan-jcr/api/internal/platform/validate"
)

// Handler implements the authentication HTTP endpoints.
//
// # Architecture
//
// Handlers act as the gatekeepers to the system. They are responsible for:
//   - JSON request parsing and strict input shape validation.
//   - Mapping HTTP contexts to service layer method calls.
//   - Standardizing response formats via the [respond] package.
//
// They contain NO business logic or database queries.
type Handler struct {
	authService *Service
}

// NewHandler constructs a new [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{authService: service}
}

// Routes returns a [chi.Router] configured with the authentication routes.
//
// # Endpoints
//   - POST /sign-up : Creates a new account.
//   - POST /log-in  : Authenticates and returns a signed token.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Post("/sign-up", handler.signUp)
	router.Post("/log-in", handler.logIn)

	return router
}

// credentialsRequest represents the JSON payload for both endpoints.
type credentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// validateShape enforces the input shape rules shared by both endpoints:
// username non-empty and whitespace-free, password at least 6 characters.
func (request credentialsRequest) validateShape() error {
	v := &validate.Validator{}
	return v.
		Required("username", request.Username).
		NoWhitespace("username", request.Username).
		Required("password", request.Password).
		MinLen("password", request.Password, constants.MinPasswordLength).
		Err()
}

// signUp handles POST /auth/sign-up requests.
//
// # Returns
//   - HTTP 200 with a plain-text success message.
//   - HTTP 409 with a field → message map if shape validation fails.
//   - HTTP 409 with {Status, Message, Code} if the username is taken.
func (handler *Handler) signUp(writer http.ResponseWriter, request *http.Request) {
	// ── 1. Payload Extraction ─────────────────────────────────────────────

	var input credentialsRequest
	if err := json.NewDecoder(request.Body).Decode(&input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	// ── 2. Boundary Validation ────────────────────────────────────────────

	if err := input.validateShape(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	// ── 3. Application Execution ──────────────────────────────────────────

	// The service handles the uniqueness check and bcrypt hashing. On
	// failure the domain error is passed to the respond helper, which maps
	// it to the correct status and envelope.
	message, err := handler.authService.Register(request.Context(), RegisterInput{
		Username: input.Username,
		Password: input.Password,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	// ── 4. Presentation Output ────────────────────────────────────────────

	respond.Text(writer, http.StatusOK, message)
}

// tokenResponse is the JSON body of a successful login.
type tokenResponse struct {
	Token string `json:"token"`
}

// logIn handles POST /auth/log-in requests.
//
// # Returns
//   - HTTP 200 with {"token": "<jwt>"} on success.
//   - HTTP 401 with {Status, Message, Code} for bad credentials; the body
//     never reveals whether the username or the password was wrong.
func (handler *Handler) logIn(writer http.ResponseWriter, request *http.Request) {
	// ── 1. Payload Extraction ─────────────────────────────────────────────

	var input credentialsRequest
	if err := json.NewDecoder(request.Body).Decode(&input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	// ── 2. Boundary Validation ────────────────────────────────────────────

	if err := input.validateShape(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	// ── 3. Application Execution ──────────────────────────────────────────

	token, err := handler.authService.Login(request.Context(), LoginInput{
		Username: input.Username,
		Password: input.Password,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	// ── 4. Presentation Output ────────────────────────────────────────────

	respond.OK(writer, tokenResponse{Token: token})
}
