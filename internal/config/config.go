// Package config assembles the explicit configuration object threaded through
// every component. There is no process-wide mutable state: verbosity, tokens
// and endpoints are all decided here, once, at startup.
package config

import (
	"os"
	"time"

	"github.com/joho/godotenv"

	inspectorerrors "inspector/internal/errors"
	"inspector/internal/logging"
)

const (
	// EnvAPIToken holds the Apify platform API token. Its absence is a fatal
	// configuration failure.
	EnvAPIToken = "APIFY_TOKEN"

	// EnvRunID identifies the current platform run for pay-per-event charging.
	EnvRunID = "ACTOR_RUN_ID"

	// EnvDefaultDatasetID is the run's default dataset, the final report sink.
	EnvDefaultDatasetID = "ACTOR_DEFAULT_DATASET_ID"

	// EnvMemoryMbytes is the memory allocated to the run, used to size the
	// actor-start charge.
	EnvMemoryMbytes = "ACTOR_MEMORY_MBYTES"

	// RequestTimeout bounds every outbound HTTP call. A single shared
	// constant across all adapters; a timeout surfaces as a failed call.
	RequestTimeout = 120 * time.Second

	// DefaultModel is the model used when the input does not name one.
	DefaultModel = "gpt-4o-mini"

	// DefaultPlatformBaseURL is the Apify REST API root.
	DefaultPlatformBaseURL = "https://api.apify.com/v2"

	// DefaultRendererBaseURL is the repository-rendering service root.
	DefaultRendererBaseURL = "https://uithub.com"

	// DefaultLLMBaseURL is the OpenAI-compatible completions endpoint root.
	DefaultLLMBaseURL = "https://api.openai.com/v1"
)

// Config carries every externally sourced value a component may need.
type Config struct {
	APIToken         string
	RunID            string
	DatasetID        string
	MemoryMbytes     int
	PlatformBaseURL  string
	RendererBaseURL  string
	LLMBaseURL       string
	LLMAPIKey        string
	Timeout          time.Duration
	LogLevel         logging.Level
}

// Load reads configuration from the process environment, after merging any
// .env file. Real environment variables win over .env entries.
func Load() (*Config, error) {
	// godotenv never overrides variables already present in the environment.
	_ = godotenv.Load()

	token := os.Getenv(EnvAPIToken)
	if token == "" {
		return nil, &inspectorerrors.ConfigError{Key: EnvAPIToken}
	}

	cfg := &Config{
		APIToken:        token,
		RunID:           os.Getenv(EnvRunID),
		DatasetID:       os.Getenv(EnvDefaultDatasetID),
		MemoryMbytes:    envInt(EnvMemoryMbytes, 1024),
		PlatformBaseURL: envOr("APIFY_API_BASE_URL", DefaultPlatformBaseURL),
		RendererBaseURL: envOr("RENDERER_BASE_URL", DefaultRendererBaseURL),
		LLMBaseURL:      envOr("LLM_BASE_URL", DefaultLLMBaseURL),
		LLMAPIKey:       os.Getenv("LLM_API_KEY"),
		Timeout:         RequestTimeout,
		LogLevel:        logging.LevelInfo,
	}
	return cfg, nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n := 0
	for _, c := range v {
		if c < '0' || c > '9' {
			return fallback
		}
		n = n*10 + int(c-'0')
	}
	return n
}

// Input is the invocation payload for a single run.
type Input struct {
	ActorName string `json:"actorName"`
	Pedantic  *bool  `json:"pedantic,omitempty"`
	ModelName string `json:"modelName,omitempty"`
	Debug     *bool  `json:"debug,omitempty"`
}

// Normalize applies input defaults: pedantic and debug default to true, the
// model defaults to DefaultModel. A missing actorName is a fatal input
// validation failure raised before any network call.
func (in *Input) Normalize() error {
	if in.ActorName == "" {
		return &inspectorerrors.ConfigError{
			Key:     "actorName",
			Message: "missing in the input; provide the actor name as user-name/actor-name",
		}
	}
	if in.Pedantic == nil {
		in.Pedantic = boolPtr(true)
	}
	if in.Debug == nil {
		in.Debug = boolPtr(true)
	}
	if in.ModelName == "" {
		in.ModelName = DefaultModel
	}
	return nil
}

func boolPtr(b bool) *bool { return &b }
