package speech

import (
	"context"
	"fmt"
	"io"

	openai "github.com/sashabaranov/go-openai"

	"github.com/learnloop/courseai/internal/voices"
)

// OpenAIEngine is the last engine in the cascade: paid, but the most
// reliable of the three.
type OpenAIEngine struct {
	client *openai.Client
}

func NewOpenAIEngine(apiKey string) *OpenAIEngine {
	return &OpenAIEngine{client: openai.NewClient(apiKey)}
}

func (o *OpenAIEngine) Name() string { return "openai" }

func (o *OpenAIEngine) Synthesize(ctx context.Context, text, speaker string) (*Clip, error) {
	voice := voices.OpenAI(speaker)

	req := openai.CreateSpeechRequest{
		Model: openai.TTSModel1,
		Input: text,
		Voice: openai.SpeechVoice(voice.Voice),
	}
	if voice.Speed > 0 {
		req.Speed = voice.Speed
	}

	resp, err := o.client.CreateSpeech(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("openai tts: %w", err)
	}
	defer resp.Close()

	audio, err := io.ReadAll(resp)
	if err != nil {
		return nil, fmt.Errorf("read audio: %w", err)
	}

	return &Clip{Audio: audio, ContentType: "audio/mpeg"}, nil
}
