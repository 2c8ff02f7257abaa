package speech

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/learnloop/courseai/internal/voices"
)

const googleTTSBaseURL = "https://texttospeech.googleapis.com/v1"

// tokenProvider abstracts the access-token source for testing.
type tokenProvider interface {
	Token(ctx context.Context) (string, error)
}

// GoogleEngine synthesizes speech via the Cloud Text-to-Speech REST
// API, authenticating with a service-account JWT-bearer exchange. A
// missing or unreadable key file surfaces as an ordinary engine
// failure, so the cascade just moves past Google.
type GoogleEngine struct {
	tokens     tokenProvider
	httpClient *http.Client
	baseURL    string
}

func NewGoogleEngine(credentialsPath string) *GoogleEngine {
	return &GoogleEngine{
		tokens:     newTokenSource(credentialsPath),
		httpClient: &http.Client{Timeout: 15 * time.Second},
		baseURL:    googleTTSBaseURL,
	}
}

func (g *GoogleEngine) Name() string { return "google" }

type googleSynthesizeReq struct {
	Input struct {
		Text string `json:"text"`
	} `json:"input"`
	Voice struct {
		LanguageCode string `json:"languageCode"`
		Name         string `json:"name"`
	} `json:"voice"`
	AudioConfig struct {
		AudioEncoding string  `json:"audioEncoding"`
		SpeakingRate  float64 `json:"speakingRate,omitempty"`
		Pitch         float64 `json:"pitch,omitempty"`
	} `json:"audioConfig"`
}

type googleSynthesizeResp struct {
	AudioContent string `json:"audioContent"`
}

func (g *GoogleEngine) Synthesize(ctx context.Context, text, speaker string) (*Clip, error) {
	token, err := g.tokens.Token(ctx)
	if err != nil {
		return nil, fmt.Errorf("google token: %w", err)
	}

	voice := voices.Google(speaker)

	var req googleSynthesizeReq
	req.Input.Text = text
	req.Voice.LanguageCode = voice.Language
	req.Voice.Name = voice.Name
	req.AudioConfig.AudioEncoding = "MP3"
	req.AudioConfig.SpeakingRate = voice.SpeakingRate
	req.AudioConfig.Pitch = voice.Pitch

	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, g.baseURL+"/text:synthesize", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+token)

	resp, err := g.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("google tts request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("google tts failed (status %d): %s", resp.StatusCode, string(respBody))
	}

	var sr googleSynthesizeResp
	if err := json.NewDecoder(resp.Body).Decode(&sr); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	audio, err := base64.StdEncoding.DecodeString(sr.AudioContent)
	if err != nil {
		return nil, fmt.Errorf("decode audio content: %w", err)
	}

	return &Clip{Audio: audio, ContentType: "audio/mpeg"}, nil
}
