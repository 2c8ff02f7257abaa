package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/learnloop/courseai/internal/llm"
	"github.com/learnloop/courseai/internal/tutor"
)

// ChatHandler serves the two tutoring chat endpoints. Both relay the
// upstream token stream as SSE; they differ only in how the system
// instruction is assembled.
type ChatHandler struct {
	gateway llm.Gateway
	model   string
}

func NewChatHandler(gw llm.Gateway, model string) *ChatHandler {
	return &ChatHandler{gateway: gw, model: model}
}

type chatStreamRequest struct {
	Messages      []llm.Message `json:"messages"`
	WeekContext   string        `json:"weekContext,omitempty"`
	Glossary      string        `json:"glossary,omitempty"`
	LessonContext string        `json:"lessonContext,omitempty"`
}

// ChatStream handles free-form tutoring chat.
func (h *ChatHandler) ChatStream(w http.ResponseWriter, r *http.Request) {
	var req chatStreamRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	if len(req.Messages) == 0 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "messages required"})
		return
	}

	system := tutor.SystemPrompt(req.LessonContext, req.Glossary, req.WeekContext)
	h.stream(w, r, system, req.Messages)
}

type lessonChatRequest struct {
	Messages      []llm.Message `json:"messages"`
	WeekNum       int           `json:"weekNum"`
	LessonContext string        `json:"lessonContext"`
}

// LessonChatStream handles lesson-scoped tutoring chat: same stream
// contract, with a scope-limiting instruction prepended.
func (h *ChatHandler) LessonChatStream(w http.ResponseWriter, r *http.Request) {
	var req lessonChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	if len(req.Messages) == 0 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "messages required"})
		return
	}
	if req.LessonContext == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "lessonContext required"})
		return
	}

	system := tutor.LessonScopeInstruction(req.WeekNum) + tutor.SystemPrompt(req.LessonContext, "", "")
	h.stream(w, r, system, req.Messages)
}

func (h *ChatHandler) stream(w http.ResponseWriter, r *http.Request, system string, turns []llm.Message) {
	msgs := make([]llm.Message, 0, len(turns)+1)
	msgs = append(msgs, llm.Message{Role: "system", Content: system})
	msgs = append(msgs, turns...)

	ch, err := h.gateway.ChatStream(r.Context(), llm.ChatRequest{
		Model:    h.model,
		Messages: msgs,
	})
	if err != nil {
		// Provider names and config details stay in the logs.
		slog.Warn("chat stream failed to start", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "text generation unavailable"})
		return
	}

	streamSSE(w, ch)
}
