package handlers

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/learnloop/courseai/internal/cache"
	"github.com/learnloop/courseai/internal/queue"
	"github.com/learnloop/courseai/internal/speech"
)

// Synthesizer is the slice of the speech gateway this handler needs.
type Synthesizer interface {
	Synthesize(ctx context.Context, text, speaker string) (*speech.Clip, error)
}

// SpeechHandler serves narration audio. Cache and queue are optional;
// without Redis the handler degrades to synthesizing every request.
type SpeechHandler struct {
	gateway Synthesizer
	cache   *cache.NarrationCache
	queue   *queue.Client
}

func NewSpeechHandler(gw Synthesizer, nc *cache.NarrationCache, qc *queue.Client) *SpeechHandler {
	return &SpeechHandler{gateway: gw, cache: nc, queue: qc}
}

type synthesizeRequest struct {
	Text      string `json:"text"`
	SpeakerID string `json:"speakerId"`
}

// Synthesize returns raw audio bytes for one line of narration. The
// X-Speech-Engine header names the engine that produced the clip.
// Callers learn only that synthesis failed, not which engine or why;
// per-engine reasons stay in the logs.
func (h *SpeechHandler) Synthesize(w http.ResponseWriter, r *http.Request) {
	var req synthesizeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	if req.Text == "" || req.SpeakerID == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "text and speakerId required"})
		return
	}

	if h.cache != nil {
		if clip, ok := h.cache.Get(r.Context(), req.Text, req.SpeakerID); ok {
			writeClip(w, clip)
			return
		}
	}

	clip, err := h.gateway.Synthesize(r.Context(), req.Text, req.SpeakerID)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "speech synthesis failed"})
		return
	}

	if h.cache != nil {
		if err := h.cache.Put(r.Context(), req.Text, req.SpeakerID, clip); err != nil {
			slog.Warn("narration cache write failed", "error", err)
		}
	}

	writeClip(w, clip)
}

func writeClip(w http.ResponseWriter, clip *speech.Clip) {
	w.Header().Set("Content-Type", clip.ContentType)
	w.Header().Set("X-Speech-Engine", clip.Engine)
	w.WriteHeader(http.StatusOK)
	w.Write(clip.Audio)
}

type prefetchRequest struct {
	Items []struct {
		Text      string `json:"text"`
		SpeakerID string `json:"speakerId"`
	} `json:"items"`
}

// Prefetch enqueues background synthesis for upcoming narration lines.
func (h *SpeechHandler) Prefetch(w http.ResponseWriter, r *http.Request) {
	var req prefetchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	if len(req.Items) == 0 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "items required"})
		return
	}
	if h.queue == nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"error": "prefetch queue not configured"})
		return
	}

	queued := 0
	for _, item := range req.Items {
		if item.Text == "" || item.SpeakerID == "" {
			continue
		}
		if err := h.queue.EnqueueNarrationPrefetch(queue.NarrationPrefetchPayload{
			Text:      item.Text,
			SpeakerID: item.SpeakerID,
		}); err != nil {
			slog.Warn("prefetch enqueue failed", "error", err)
			continue
		}
		queued++
	}

	writeJSON(w, http.StatusAccepted, map[string]int{"queued": queued})
}
