// Copyright (c) 2026 juan-jcr. All rights reserved.

package api

import (
	"net/http"

	"github.com/juan-jcr/api/internal/platform/apperr"
	"github.com/juan-jcr/api/internal/platform/ctxutil"
	"github.com/juan-jcr/api/internal/platform/respond"
)

// NewHelloHandler returns the protected sample endpoint.
//
// It greets the authenticated user by name, proving that the bearer token
// survived validation and that the identity reached the handler. The route
// is mounted behind [middleware.RequireAuth], so the identity check here is
// only a guard against misconfigured routing.
func NewHelloHandler() http.HandlerFunc {
	return func(writer http.ResponseWriter, request *http.Request) {
		identity := ctxutil.GetIdentity(request.Context())
		if identity == nil {
			respond.Error(writer, request, apperr.Unauthorized("Authentication required"))
			return
		}

		respond.Text(writer, http.StatusOK, "Hello, "+identity.Username)
	}
}
