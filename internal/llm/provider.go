package llm

import "context"

// Provider abstracts an LLM provider (OpenAI, Anthropic).
type Provider interface {
	ChatCompletion(ctx context.Context, req ChatRequest) (*ChatResponse, error)
	ChatCompletionStream(ctx context.Context, req ChatRequest) (<-chan StreamChunk, error)
	Name() string
	Models() []string
}

// Gateway routes chat requests to a configured provider, with an
// optional fallback for non-streaming calls.
type Gateway interface {
	Chat(ctx context.Context, req ChatRequest) (*ChatResponse, error)
	ChatStream(ctx context.Context, req ChatRequest) (<-chan StreamChunk, error)
	Provider(name string) (Provider, error)
	ListModels() []ModelInfo
}

// Attachment is media attached to a user turn. Images become
// structured multimodal parts; anything else is inlined as plain text
// appended to the turn.
type Attachment struct {
	Kind     string `json:"kind"` // image, file
	MimeType string `json:"mimeType,omitempty"`
	Name     string `json:"name,omitempty"`
	Data     string `json:"data"` // base64 for images, UTF-8 text for files
}

// Message represents a single chat message.
type Message struct {
	Role        string       `json:"role"` // system, user, assistant
	Content     string       `json:"content"`
	Attachments []Attachment `json:"attachments,omitempty"`
}

// ChatRequest is the input for chat completions.
type ChatRequest struct {
	Provider    string    `json:"provider,omitempty"`
	Model       string    `json:"model"`
	Messages    []Message `json:"messages"`
	Temperature float64   `json:"temperature,omitempty"`
	MaxTokens   int       `json:"max_tokens,omitempty"`
}

// ChatResponse is the output from chat completions.
type ChatResponse struct {
	ID           string `json:"id"`
	Provider     string `json:"provider"`
	Model        string `json:"model"`
	Content      string `json:"content"`
	InputTokens  int    `json:"input_tokens"`
	OutputTokens int    `json:"output_tokens"`
	LatencyMs    int64  `json:"latency_ms"`
}

// StreamChunk is a single chunk from a streaming response. Exactly one
// terminal chunk (Done or Error set) ends every stream.
type StreamChunk struct {
	Content string `json:"content,omitempty"`
	Done    bool   `json:"done"`
	Error   error  `json:"-"`
}

// ModelInfo describes an available model.
type ModelInfo struct {
	Provider string `json:"provider"`
	Model    string `json:"model"`
}

// inlineText renders a message's content with non-image attachments
// appended as plain text blocks.
func inlineText(m Message) string {
	text := m.Content
	for _, a := range m.Attachments {
		if a.Kind == "image" {
			continue
		}
		name := a.Name
		if name == "" {
			name = "attachment"
		}
		text += "\n\n[" + name + "]\n" + a.Data
	}
	return text
}
