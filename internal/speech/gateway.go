package speech

import (
	"context"
	"log/slog"
	"time"

	"github.com/learnloop/courseai/internal/config"
)

// slot pairs an engine with its per-attempt timeout ceiling.
type slot struct {
	engine  Engine
	timeout time.Duration
}

// Gateway drives the engine cascade. It is stateless and safe for
// concurrent use; the only shared state lives inside the Google
// engine's token source.
type Gateway struct {
	slots []slot
}

// NewGateway builds the default cascade from config: Edge, then Google,
// then OpenAI. Engines with missing credentials stay in the list; they
// fail at call time and the cascade moves on.
func NewGateway(cfg config.SpeechConfig) *Gateway {
	return &Gateway{
		slots: []slot{
			{engine: NewEdgeEngine(), timeout: cfg.EdgeTimeout},
			{engine: NewGoogleEngine(cfg.GoogleCredentialsPath), timeout: cfg.GoogleTimeout},
			{engine: NewOpenAIEngine(cfg.OpenAIKey), timeout: cfg.OpenAITimeout},
		},
	}
}

// Synthesize tries each engine in order and returns the first clip
// produced. A response with zero audio bytes counts as a failure.
// There are no retries within an engine; falling through is the only
// resilience mechanism.
func (g *Gateway) Synthesize(ctx context.Context, text, speaker string) (*Clip, error) {
	for _, s := range g.slots {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		attemptCtx, cancel := context.WithTimeout(ctx, s.timeout)
		clip, err := s.engine.Synthesize(attemptCtx, text, speaker)
		cancel()

		if err == nil && (clip == nil || len(clip.Audio) == 0) {
			err = ErrEmptyAudio
		}
		if err != nil {
			slog.Warn("speech engine failed, falling through",
				"engine", s.engine.Name(),
				"speaker", speaker,
				"error", err,
			)
			continue
		}

		clip.Engine = s.engine.Name()
		return clip, nil
	}
	return nil, ErrAllEnginesFailed
}
