// Copyright (c) 2026 juan-jcr. All rights reserved.

// Package respond provides HTTP response helpers used by all API handlers.
//
// # Architecture
//
// This package centralizes the presentation logic for HTTP responses.
// Domain errors leave the service layer as [apperr.AppError] values; this is
// the single place where they are translated into wire status codes and JSON
// bodies, keeping the core transport-agnostic.
//
// # Wire Contract
//
// Error responses use the envelope {"Status","Message","Code"}; validation
// failures are a bare field → message map. Both shapes are fixed parts of the
// public API and must not change without a version bump.
package respond

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/juan-jcr/api/internal/platform/apperr"
	"github.com/juan-jcr/api/internal/platform/ctxutil"
)

// ErrorEnvelope is the JSON envelope for error responses.
type ErrorEnvelope struct {
	Status  string `json:"Status"`
	Message string `json:"Message"`
	Code    string `json:"Code"`
}

// JSON writes a JSON response with the given status code.
func JSON(writer http.ResponseWriter, statusCode int, payload interface{}) {
	writer.Header().Set("Content-Type", "application/json; charset=utf-8")
	writer.WriteHeader(statusCode)
	_ = json.NewEncoder(writer).Encode(payload)
}

// OK writes a 200 OK response with the payload encoded as JSON.
func OK(writer http.ResponseWriter, payload interface{}) {
	JSON(writer, http.StatusOK, payload)
}

// Text writes a plain-text response with the given status code.
func Text(writer http.ResponseWriter, statusCode int, message string) {
	writer.Header().Set("Content-Type", "text/plain; charset=utf-8")
	writer.WriteHeader(statusCode)
	_, _ = writer.Write([]byte(message))
}

// Error converts any Go error into a standardized JSON API error response.
func Error(writer http.ResponseWriter, request *http.Request, err error) {
	var appError *apperr.AppError
	if !errors.As(err, &appError) {
		// Unexpected internal error: log full details but hide them from the client.
		logger := ctxutil.GetLogger(request.Context())
		logger.ErrorContext(request.Context(), "unhandled_error_swallowed",
			slog.String("error", err.Error()),
			slog.String("request_id", ctxutil.GetRequestID(request.Context())),
		)
		appError = apperr.Internal(err)
	}

	// Always log 5xx errors as they indicate server-side issues.
	if appError.HTTPStatus >= 500 {
		logger := ctxutil.GetLogger(request.Context())
		logger.ErrorContext(request.Context(), "api_server_error",
			slog.String("code", appError.Code),
			slog.String("request_id", ctxutil.GetRequestID(request.Context())),
			slog.Any("cause", appError.Cause),
		)
	}

	// Validation failures carry their field map as the entire body.
	if len(appError.Fields) > 0 {
		JSON(writer, appError.HTTPStatus, appError.Fields)
		return
	}

	JSON(writer, appError.HTTPStatus, ErrorEnvelope{
		Status:  "Error",
		Message: appError.Message,
		Code:    appError.Code,
	})
}
