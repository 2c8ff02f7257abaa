// Package voices maps speaker identities from the course script to
// provider-specific voice configurations. Voice names are not portable
// across providers, so each engine keeps its own table.
package voices

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Speaker identities used by the course content. Any unrecognized
// identity resolves to the narrator.
const (
	Narrator  = "narrator"
	Professor = "professor"
	Rival     = "rival"
	Analyst   = "analyst"
	Intern    = "intern"
)

// EdgeVoice configures a Microsoft Edge neural voice.
type EdgeVoice struct {
	Name  string `yaml:"name"`
	Rate  string `yaml:"rate,omitempty"`  // e.g. "+5%"
	Pitch string `yaml:"pitch,omitempty"` // e.g. "-2Hz"
}

// GoogleVoice configures a Google Cloud TTS voice.
type GoogleVoice struct {
	Language     string  `yaml:"language"`
	Name         string  `yaml:"name"`
	SpeakingRate float64 `yaml:"speaking_rate,omitempty"`
	Pitch        float64 `yaml:"pitch,omitempty"`
}

// OpenAIVoice configures an OpenAI TTS voice.
type OpenAIVoice struct {
	Voice string  `yaml:"voice"`
	Speed float64 `yaml:"speed,omitempty"`
}

var edgeVoices = map[string]EdgeVoice{
	Narrator:  {Name: "en-US-GuyNeural"},
	Professor: {Name: "en-GB-RyanNeural", Rate: "-5%"},
	Rival:     {Name: "en-US-ChristopherNeural", Pitch: "-2Hz"},
	Analyst:   {Name: "en-US-JennyNeural"},
	Intern:    {Name: "en-US-AriaNeural", Rate: "+5%"},
}

var googleVoices = map[string]GoogleVoice{
	Narrator:  {Language: "en-US", Name: "en-US-Neural2-D"},
	Professor: {Language: "en-GB", Name: "en-GB-Neural2-B", SpeakingRate: 0.95},
	Rival:     {Language: "en-US", Name: "en-US-Neural2-J", Pitch: -2},
	Analyst:   {Language: "en-US", Name: "en-US-Neural2-F"},
	Intern:    {Language: "en-US", Name: "en-US-Neural2-C", SpeakingRate: 1.05},
}

var openaiVoices = map[string]OpenAIVoice{
	Narrator:  {Voice: "onyx"},
	Professor: {Voice: "fable", Speed: 0.95},
	Rival:     {Voice: "echo"},
	Analyst:   {Voice: "nova"},
	Intern:    {Voice: "shimmer", Speed: 1.05},
}

// Edge resolves a speaker to an Edge voice, defaulting to the narrator.
func Edge(speaker string) EdgeVoice {
	if v, ok := edgeVoices[speaker]; ok {
		return v
	}
	return edgeVoices[Narrator]
}

// Google resolves a speaker to a Google voice, defaulting to the narrator.
func Google(speaker string) GoogleVoice {
	if v, ok := googleVoices[speaker]; ok {
		return v
	}
	return googleVoices[Narrator]
}

// OpenAI resolves a speaker to an OpenAI voice, defaulting to the narrator.
func OpenAI(speaker string) OpenAIVoice {
	if v, ok := openaiVoices[speaker]; ok {
		return v
	}
	return openaiVoices[Narrator]
}

type overrides struct {
	Edge   map[string]EdgeVoice   `yaml:"edge"`
	Google map[string]GoogleVoice `yaml:"google"`
	OpenAI map[string]OpenAIVoice `yaml:"openai"`
}

// LoadOverrides merges voice entries from a YAML file into the built-in
// tables. Call once at startup, before serving requests; the tables are
// read-only afterwards.
func LoadOverrides(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read voices config: %w", err)
	}

	var o overrides
	if err := yaml.Unmarshal(data, &o); err != nil {
		return fmt.Errorf("parse voices config: %w", err)
	}

	for speaker, v := range o.Edge {
		edgeVoices[speaker] = v
	}
	for speaker, v := range o.Google {
		googleVoices[speaker] = v
	}
	for speaker, v := range o.OpenAI {
		openaiVoices[speaker] = v
	}
	return nil
}
