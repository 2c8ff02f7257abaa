package workers

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/hibiken/asynq"

	"github.com/learnloop/courseai/internal/cache"
	"github.com/learnloop/courseai/internal/queue"
	"github.com/learnloop/courseai/internal/speech"
)

// NarrationWorker synthesizes pre-fetch jobs through the same engine
// cascade the API uses and fills the narration cache.
type NarrationWorker struct {
	gateway *speech.Gateway
	cache   *cache.NarrationCache
}

func NewNarrationWorker(gw *speech.Gateway, nc *cache.NarrationCache) *NarrationWorker {
	return &NarrationWorker{gateway: gw, cache: nc}
}

func (w *NarrationWorker) ProcessTask(ctx context.Context, t *asynq.Task) error {
	var payload queue.NarrationPrefetchPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return fmt.Errorf("unmarshal payload: %w", err)
	}

	if _, ok := w.cache.Get(ctx, payload.Text, payload.SpeakerID); ok {
		return nil
	}

	clip, err := w.gateway.Synthesize(ctx, payload.Text, payload.SpeakerID)
	if err != nil {
		return fmt.Errorf("prefetch synthesis: %w", err)
	}

	if err := w.cache.Put(ctx, payload.Text, payload.SpeakerID, clip); err != nil {
		return fmt.Errorf("cache narration: %w", err)
	}

	slog.Info("narration prefetched",
		"speaker", payload.SpeakerID,
		"engine", clip.Engine,
		"bytes", len(clip.Audio),
	)
	return nil
}
