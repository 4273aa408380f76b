package web

// errors.go maps errors to HTTP responses.
//
// Handlers call respondError, which:
//  1. maps the error with core.MapError to a coded user message
//  2. picks the status code from the error's type
//  3. logs the technical error with the request id
//  4. writes JSON for API clients and an HTML page otherwise

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/JonMunkholm/pokedex/internal/core"
	"github.com/JonMunkholm/pokedex/internal/logging"
	"github.com/JonMunkholm/pokedex/internal/web/middleware"
	"github.com/JonMunkholm/pokedex/internal/web/views"
)

// statusFor returns the HTTP status for err.
func statusFor(err error) int {
	var loadErr *core.DataLoadError
	switch {
	case errors.Is(err, core.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, core.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.As(err, &loadErr):
		return http.StatusServiceUnavailable
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	case errors.Is(err, context.Canceled):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// respondError logs err and writes a user-facing response.
func (s *Server) respondError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	msg := core.MapError(err)

	logger := logging.FromContext(r.Context())
	args := []any{
		"path", r.URL.Path,
		"status", status,
		"code", msg.Code,
		"error", err.Error(),
	}
	if status >= http.StatusInternalServerError {
		logger.Error("request error", args...)
	} else {
		logger.Debug("request rejected", args...)
	}

	if wantsJSON(r) {
		middleware.WriteError(w, status, middleware.ErrorDetail{
			Code:    msg.Code,
			Message: msg.Message,
			Action:  msg.Action,
		})
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := views.ErrorPage(msg).Render(r.Context(), w); err != nil {
		logger.Error("render error page", "error", err)
	}
}

// wantsJSON reports whether the client expects a JSON body.
func wantsJSON(r *http.Request) bool {
	if strings.HasPrefix(r.URL.Path, "/api/") || r.URL.Path == "/healthz" {
		return true
	}
	return strings.Contains(r.Header.Get("Accept"), "application/json")
}

func (s *Server) handleNotFound(w http.ResponseWriter, r *http.Request) {
	middleware.WriteError(w, http.StatusNotFound, middleware.ErrorDetail{
		Code:    "NF002",
		Message: "Route not found",
		Action:  "Check the request path",
	})
}
