package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Server ServerConfig
	Redis  RedisConfig
	LLM    LLMConfig
	Speech SpeechConfig
	Voices VoicesConfig
}

type ServerConfig struct {
	Host string
	Port int
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type LLMConfig struct {
	OpenAIKey        string
	AnthropicKey     string
	DefaultProvider  string
	DefaultModel     string
	FallbackProvider string
}

type SpeechConfig struct {
	GoogleCredentialsPath string
	OpenAIKey             string

	// Per-engine synthesis ceilings, chosen to match observed provider
	// latency: Edge and Google respond fast, OpenAI can take longer.
	EdgeTimeout   time.Duration
	GoogleTimeout time.Duration
	OpenAITimeout time.Duration
}

type VoicesConfig struct {
	ConfigPath string // optional YAML override for voice tables
}

func Load() (*Config, error) {
	port, err := getEnvInt("SERVER_PORT", 8080)
	if err != nil {
		return nil, fmt.Errorf("invalid SERVER_PORT: %w", err)
	}

	redisDB, err := getEnvInt("REDIS_DB", 0)
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_DB: %w", err)
	}

	edgeTimeout, err := getEnvSeconds("SPEECH_EDGE_TIMEOUT_SECS", 10)
	if err != nil {
		return nil, fmt.Errorf("invalid SPEECH_EDGE_TIMEOUT_SECS: %w", err)
	}
	googleTimeout, err := getEnvSeconds("SPEECH_GOOGLE_TIMEOUT_SECS", 10)
	if err != nil {
		return nil, fmt.Errorf("invalid SPEECH_GOOGLE_TIMEOUT_SECS: %w", err)
	}
	openaiTimeout, err := getEnvSeconds("SPEECH_OPENAI_TIMEOUT_SECS", 15)
	if err != nil {
		return nil, fmt.Errorf("invalid SPEECH_OPENAI_TIMEOUT_SECS: %w", err)
	}

	cfg := &Config{
		Server: ServerConfig{
			Host: getEnv("SERVER_HOST", "0.0.0.0"),
			Port: port,
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       redisDB,
		},
		LLM: LLMConfig{
			OpenAIKey:        getEnv("OPENAI_API_KEY", ""),
			AnthropicKey:     getEnv("ANTHROPIC_API_KEY", ""),
			DefaultProvider:  getEnv("LLM_DEFAULT_PROVIDER", "openai"),
			DefaultModel:     getEnv("LLM_DEFAULT_MODEL", "gpt-4o-mini"),
			FallbackProvider: getEnv("LLM_FALLBACK_PROVIDER", ""),
		},
		Speech: SpeechConfig{
			GoogleCredentialsPath: getEnv("GOOGLE_APPLICATION_CREDENTIALS", "google-credentials.json"),
			OpenAIKey:             getEnv("OPENAI_API_KEY", ""),
			EdgeTimeout:           edgeTimeout,
			GoogleTimeout:         googleTimeout,
			OpenAITimeout:         openaiTimeout,
		},
		Voices: VoicesConfig{
			ConfigPath: getEnv("VOICES_CONFIG_PATH", ""),
		},
	}

	return cfg, nil
}

func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

// Validate reports credentials the endpoints will need but cannot use.
// None of these stop the process: speech falls through to whichever
// engines do have credentials, so startup warns instead of exiting.
func (c *Config) Validate() error {
	var missing []string

	if c.LLM.OpenAIKey == "" && c.LLM.AnthropicKey == "" {
		missing = append(missing, "OPENAI_API_KEY or ANTHROPIC_API_KEY (chat endpoints will fail)")
	}
	if _, err := os.Stat(c.Speech.GoogleCredentialsPath); err != nil {
		missing = append(missing, fmt.Sprintf("GOOGLE_APPLICATION_CREDENTIALS (%s unreadable, google speech engine will fail)", c.Speech.GoogleCredentialsPath))
	}
	if c.Speech.OpenAIKey == "" {
		missing = append(missing, "OPENAI_API_KEY (openai speech engine will fail)")
	}

	if len(missing) > 0 {
		return fmt.Errorf("missing configuration: %s", strings.Join(missing, "; "))
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	return strconv.Atoi(v)
}

func getEnvSeconds(key string, fallback int) (time.Duration, error) {
	secs, err := getEnvInt(key, fallback)
	if err != nil {
		return 0, err
	}
	return time.Duration(secs) * time.Second, nil
}
