package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/learnloop/courseai/internal/llm"
	"github.com/learnloop/courseai/internal/tutor"
)

type TeachHandler struct {
	gateway llm.Gateway
	model   string
}

func NewTeachHandler(gw llm.Gateway, model string) *TeachHandler {
	return &TeachHandler{gateway: gw, model: model}
}

type teachSegmentRequest struct {
	Segment       tutor.Segment `json:"segment"`
	WeekNum       int           `json:"weekNum"`
	WeekTitle     string        `json:"weekTitle"`
	SegmentIndex  int           `json:"segmentIndex"`
	TotalSegments int           `json:"totalSegments"`
}

// TeachSegment streams a lecture for one lesson segment. The segment
// is serialized server-side into a single synthetic user instruction.
func (h *TeachHandler) TeachSegment(w http.ResponseWriter, r *http.Request) {
	var req teachSegmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	instruction, err := tutor.TeachingInstruction(req.Segment, req.WeekNum, req.WeekTitle, req.SegmentIndex, req.TotalSegments)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	ch, err := h.gateway.ChatStream(r.Context(), llm.ChatRequest{
		Model: h.model,
		Messages: []llm.Message{
			{Role: "system", Content: tutor.LecturerSystemPrompt()},
			{Role: "user", Content: instruction},
		},
	})
	if err != nil {
		slog.Warn("teach stream failed to start", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "text generation unavailable"})
		return
	}

	streamSSE(w, ch)
}
