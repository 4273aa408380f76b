// Package middleware provides HTTP middleware for the web server.
package middleware

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/JonMunkholm/pokedex/internal/logging"
)

// Logger is an HTTP middleware that writes one structured entry per request.
//
// It runs after chi's RequestID and TrustedRealIP, so every entry carries the
// request_id and the resolved client address.
//
// Log fields:
//   - method, path, query
//   - status: HTTP response status code
//   - bytes: response body size
//   - duration_ms: request processing time in milliseconds
//   - ip: client address after proxy resolution
//
// 5xx responses are logged at error level, 4xx at warn.
func Logger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}

		level := slog.LevelInfo
		switch {
		case status >= 500:
			level = slog.LevelError
		case status >= 400:
			level = slog.LevelWarn
		}

		logging.FromContext(r.Context()).Log(r.Context(), level, "request",
			"method", r.Method,
			"path", r.URL.Path,
			"query", r.URL.RawQuery,
			"status", status,
			"bytes", ww.BytesWritten(),
			"duration_ms", time.Since(start).Milliseconds(),
			"ip", r.RemoteAddr,
		)
	})
}

// errorBody is the JSON error envelope shared by middleware and handlers.
type errorBody struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail carries a coded, user-facing error.
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Action  string `json:"action,omitempty"`
}

// WriteError writes {"error":{"code","message","action"}} with status.
func WriteError(w http.ResponseWriter, status int, detail ErrorDetail) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(errorBody{Error: detail}); err != nil {
		slog.Error("json encode error", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, code, message, action string) {
	WriteError(w, status, ErrorDetail{Code: code, Message: message, Action: action})
}
