// Package speech synthesizes character-voiced narration by cascading
// across external TTS engines: Edge first (free), then Google Cloud,
// then OpenAI. Engines are tried strictly in order, one attempt each.
package speech

import (
	"context"
	"errors"
)

// Clip is a synthesized audio clip. Audio is non-empty on success and
// Engine names the engine that produced it.
type Clip struct {
	Audio       []byte
	ContentType string
	Engine      string
}

// Engine is a single text-to-speech backend. Implementations resolve
// the speaker identity to their own voice table and must honor ctx
// cancellation.
type Engine interface {
	Synthesize(ctx context.Context, text, speaker string) (*Clip, error)
	Name() string
}

var (
	// ErrAllEnginesFailed is returned when every configured engine
	// failed for a request. Per-engine reasons are logged, not surfaced.
	ErrAllEnginesFailed = errors.New("all speech engines failed")

	// ErrEmptyAudio marks a well-formed engine response carrying zero
	// audio bytes, which is treated as a failure.
	ErrEmptyAudio = errors.New("engine returned empty audio")
)
