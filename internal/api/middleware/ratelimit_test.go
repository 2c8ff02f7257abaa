package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func costByPath(r *http.Request) float64 {
	switch r.URL.Path {
	case "/healthz":
		return 0
	case "/synthesize-speech":
		return 4
	default:
		return 1
	}
}

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func hit(t *testing.T, h http.Handler, path, remoteAddr string) int {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, nil)
	req.RemoteAddr = remoteAddr
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec.Code
}

func TestLimitExpensiveRouteDrainsFaster(t *testing.T) {
	rl := NewRateLimiter(0.001, 8, costByPath)
	h := rl.Limit(okHandler())

	// Capacity 8 at cost 4: two synthesis calls, then limited.
	assert.Equal(t, http.StatusOK, hit(t, h, "/synthesize-speech", "10.0.0.1:1111"))
	assert.Equal(t, http.StatusOK, hit(t, h, "/synthesize-speech", "10.0.0.1:2222"))
	assert.Equal(t, http.StatusTooManyRequests, hit(t, h, "/synthesize-speech", "10.0.0.1:3333"))
}

func TestLimitZeroCostNeverLimited(t *testing.T) {
	rl := NewRateLimiter(0.001, 1, costByPath)
	h := rl.Limit(okHandler())

	for i := 0; i < 50; i++ {
		require.Equal(t, http.StatusOK, hit(t, h, "/healthz", "10.0.0.1:1111"))
	}
}

func TestLimitBucketsPerClient(t *testing.T) {
	rl := NewRateLimiter(0.001, 4, costByPath)
	h := rl.Limit(okHandler())

	require.Equal(t, http.StatusOK, hit(t, h, "/synthesize-speech", "10.0.0.1:1111"))
	require.Equal(t, http.StatusTooManyRequests, hit(t, h, "/synthesize-speech", "10.0.0.1:1111"))

	// A different client has its own bucket.
	assert.Equal(t, http.StatusOK, hit(t, h, "/synthesize-speech", "10.0.0.2:1111"))
}

func TestClientKeyStripsPort(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)

	req.RemoteAddr = "10.0.0.1:5000"
	assert.Equal(t, "10.0.0.1", clientKey(req))

	// RealIP rewrites RemoteAddr to a bare IP behind a proxy.
	req.RemoteAddr = "203.0.113.9"
	assert.Equal(t, "203.0.113.9", clientKey(req))
}
