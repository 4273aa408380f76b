package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var okHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
	_, _ = w.Write([]byte(r.RemoteAddr))
})

func TestTrustedRealIP(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		trusted []string
		remote  string
		headers map[string]string
		want    string
	}{
		{
			name:    "no trusted proxies ignores headers",
			remote:  "203.0.113.9:5555",
			headers: map[string]string{"X-Real-IP": "1.2.3.4"},
			want:    "203.0.113.9:5555",
		},
		{
			name:    "trusted cidr accepts X-Real-IP",
			trusted: []string{"10.0.0.0/8"},
			remote:  "10.1.2.3:4000",
			headers: map[string]string{"X-Real-IP": "198.51.100.7"},
			want:    "198.51.100.7",
		},
		{
			name:    "trusted single address accepts first forwarded hop",
			trusted: []string{"127.0.0.1"},
			remote:  "127.0.0.1:4000",
			headers: map[string]string{"X-Forwarded-For": "198.51.100.8, 10.0.0.1"},
			want:    "198.51.100.8",
		},
		{
			name:    "invalid header value is ignored",
			trusted: []string{"10.0.0.0/8"},
			remote:  "10.1.2.3:4000",
			headers: map[string]string{"X-Real-IP": "not-an-ip"},
			want:    "10.1.2.3:4000",
		},
		{
			name:    "untrusted peer keeps address",
			trusted: []string{"10.0.0.0/8"},
			remote:  "192.0.2.1:4000",
			headers: map[string]string{"X-Real-IP": "198.51.100.7"},
			want:    "192.0.2.1:4000",
		},
		{
			name:    "invalid trusted entry is skipped",
			trusted: []string{"bogus", "10.0.0.0/8"},
			remote:  "10.9.9.9:1",
			headers: map[string]string{"X-Real-IP": "198.51.100.1"},
			want:    "198.51.100.1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.RemoteAddr = tt.remote
			for k, v := range tt.headers {
				req.Header.Set(k, v)
			}
			rec := httptest.NewRecorder()

			TrustedRealIP(tt.trusted)(okHandler).ServeHTTP(rec, req)

			assert.Equal(t, tt.want, rec.Body.String())
		})
	}
}

func TestRateLimiter(t *testing.T) {
	t.Parallel()

	t.Run("rejects after burst with 429 envelope", func(t *testing.T) {
		t.Parallel()

		rl := NewRateLimiter(1, 2)
		defer rl.Close()
		h := rl.Handler(okHandler)

		codes := make([]int, 0, 3)
		var last *httptest.ResponseRecorder
		for range 3 {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.RemoteAddr = "192.0.2.10:1234"
			last = httptest.NewRecorder()
			h.ServeHTTP(last, req)
			codes = append(codes, last.Code)
		}

		assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)
		assert.Equal(t, "60", last.Header().Get("Retry-After"))

		var body struct {
			Error ErrorDetail `json:"error"`
		}
		require.NoError(t, json.Unmarshal(last.Body.Bytes(), &body))
		assert.Equal(t, "RATE001", body.Error.Code)
	})

	t.Run("buckets are per client address", func(t *testing.T) {
		t.Parallel()

		rl := NewRateLimiter(1, 1)
		defer rl.Close()

		assert.True(t, rl.Allow("192.0.2.1"))
		assert.False(t, rl.Allow("192.0.2.1"))
		assert.True(t, rl.Allow("192.0.2.2"))
	})

	t.Run("cleanup drops idle visitors", func(t *testing.T) {
		t.Parallel()

		rl := NewRateLimiter(60, 1)
		defer rl.Close()

		base := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
		rl.now = func() time.Time { return base }
		rl.Allow("192.0.2.1")
		require.Equal(t, 1, rl.visitorCount())

		rl.now = func() time.Time { return base.Add(visitorTTL + time.Second) }
		rl.cleanup()
		assert.Equal(t, 0, rl.visitorCount())
	})

	t.Run("close is idempotent", func(t *testing.T) {
		t.Parallel()

		rl := NewRateLimiter(60, 1)
		rl.Close()
		assert.NotPanics(t, rl.Close)
	})
}

func TestAPIKeyAuth(t *testing.T) {
	t.Parallel()

	h := APIKeyAuth([]string{"alpha", "beta"})(okHandler)

	tests := []struct {
		name string
		key  string
		want int
	}{
		{name: "missing key", key: "", want: http.StatusUnauthorized},
		{name: "wrong key", key: "gamma", want: http.StatusForbidden},
		{name: "second key accepted", key: "beta", want: http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			req := httptest.NewRequest(http.MethodPost, "/", nil)
			if tt.key != "" {
				req.Header.Set("X-API-Key", tt.key)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)
			assert.Equal(t, tt.want, rec.Code)
		})
	}
}

func TestSecurityHeaders(t *testing.T) {
	t.Parallel()

	for _, csp := range []bool{true, false} {
		rec := httptest.NewRecorder()
		SecurityHeaders(csp)(okHandler).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

		assert.Equal(t, "nosniff", rec.Header().Get("X-Content-Type-Options"))
		assert.Equal(t, "DENY", rec.Header().Get("X-Frame-Options"))
		assert.Equal(t, csp, rec.Header().Get("Content-Security-Policy") != "")
	}
}

func TestLogger_PassesThrough(t *testing.T) {
	t.Parallel()

	h := Logger(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
		_, _ = w.Write([]byte("short and stout"))
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/pokemon", nil))

	assert.Equal(t, http.StatusTeapot, rec.Code)
	assert.Equal(t, "short and stout", rec.Body.String())
}
