package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/learnloop/courseai/internal/llm"
)

// streamSSE relays chunks to the client as Server-Sent-Events frames:
// one data: {"content":...} frame per delta, data: [DONE] on
// completion, and a single data: {"error":...} frame if the upstream
// breaks mid-stream. Headers are committed before the first frame, so
// errors after that point travel inside the stream body.
func streamSSE(w http.ResponseWriter, ch <-chan llm.StreamChunk) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "streaming not supported"})
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	for chunk := range ch {
		if chunk.Error != nil {
			payload, _ := json.Marshal(map[string]string{"error": chunk.Error.Error()})
			fmt.Fprintf(w, "data: %s\n\n", payload)
			flusher.Flush()
			return
		}
		if chunk.Done {
			fmt.Fprint(w, "data: [DONE]\n\n")
			flusher.Flush()
			return
		}
		if chunk.Content == "" {
			continue
		}

		payload, _ := json.Marshal(map[string]string{"content": chunk.Content})
		fmt.Fprintf(w, "data: %s\n\n", payload)
		flusher.Flush()
	}

	// Channel closed without a terminal chunk; close out the stream.
	fmt.Fprint(w, "data: [DONE]\n\n")
	flusher.Flush()
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
