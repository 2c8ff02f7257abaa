package handlers

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/learnloop/courseai/internal/speech"
)

type fakeSynthesizer struct {
	clip *speech.Clip
	err  error
}

func (f *fakeSynthesizer) Synthesize(ctx context.Context, text, speaker string) (*speech.Clip, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.clip, nil
}

func TestSynthesizeSuccess(t *testing.T) {
	gw := &fakeSynthesizer{clip: &speech.Clip{
		Audio:       []byte("mp3-bytes"),
		ContentType: "audio/mpeg",
		Engine:      "edge",
	}}
	h := NewSpeechHandler(gw, nil, nil)

	rec := postJSON(t, h.Synthesize, `{"text":"hello","speakerId":"narrator"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "audio/mpeg", rec.Header().Get("Content-Type"))
	assert.Equal(t, "edge", rec.Header().Get("X-Speech-Engine"))
	assert.Equal(t, []byte("mp3-bytes"), rec.Body.Bytes())
}

func TestSynthesizeMissingFields(t *testing.T) {
	h := NewSpeechHandler(&fakeSynthesizer{}, nil, nil)

	rec := postJSON(t, h.Synthesize, `{"text":"hello"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = postJSON(t, h.Synthesize, `{"speakerId":"narrator"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSynthesizeAllEnginesFailed(t *testing.T) {
	h := NewSpeechHandler(&fakeSynthesizer{err: speech.ErrAllEnginesFailed}, nil, nil)

	rec := postJSON(t, h.Synthesize, `{"text":"hello","speakerId":"narrator"}`)

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	// Coarse-grained by design: no engine names leak to the caller.
	assert.Contains(t, rec.Body.String(), "speech synthesis failed")
	assert.NotContains(t, rec.Body.String(), "edge")
}

func TestPrefetchWithoutQueue(t *testing.T) {
	h := NewSpeechHandler(&fakeSynthesizer{}, nil, nil)

	rec := postJSON(t, h.Prefetch, `{"items":[{"text":"hello","speakerId":"narrator"}]}`)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestPrefetchEmptyItems(t *testing.T) {
	h := NewSpeechHandler(&fakeSynthesizer{}, nil, nil)

	rec := postJSON(t, h.Prefetch, `{"items":[]}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
