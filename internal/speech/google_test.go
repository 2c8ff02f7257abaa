package speech

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type staticToken string

func (s staticToken) Token(ctx context.Context) (string, error) { return string(s), nil }

func TestGoogleEngineSynthesize(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/text:synthesize", r.URL.Path)
		assert.Equal(t, "Bearer tok-abc", r.Header.Get("Authorization"))

		var req googleSynthesizeReq
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "hello", req.Input.Text)
		assert.Equal(t, "MP3", req.AudioConfig.AudioEncoding)
		assert.NotEmpty(t, req.Voice.Name)

		json.NewEncoder(w).Encode(googleSynthesizeResp{
			AudioContent: base64.StdEncoding.EncodeToString([]byte("mp3-bytes")),
		})
	}))
	defer srv.Close()

	engine := &GoogleEngine{
		tokens:     staticToken("tok-abc"),
		httpClient: &http.Client{Timeout: 5 * time.Second},
		baseURL:    srv.URL,
	}

	clip, err := engine.Synthesize(context.Background(), "hello", "professor")
	require.NoError(t, err)
	assert.Equal(t, []byte("mp3-bytes"), clip.Audio)
	assert.Equal(t, "audio/mpeg", clip.ContentType)
}

func TestGoogleEngineNon2xx(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "quota exceeded", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	engine := &GoogleEngine{
		tokens:     staticToken("tok-abc"),
		httpClient: &http.Client{Timeout: 5 * time.Second},
		baseURL:    srv.URL,
	}

	_, err := engine.Synthesize(context.Background(), "hello", "narrator")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 429")
}
