package config

import (
	"fmt"
	"log"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Port  string `envconfig:"PORT" default:"8080"`
	Debug bool   `envconfig:"DEBUG" default:"false"`

	DatabaseURL string `envconfig:"DATABASE_URL" required:"true"`

	GoogleSearchAPIKey   string `envconfig:"GOOGLE_SEARCH_API_KEY"`
	GoogleSearchEngineID string `envconfig:"GOOGLE_SEARCH_ENGINE_ID"`

	OpenAIAPIKey string `envconfig:"OPENAI_API_KEY"`
	OpenAIModel  string `envconfig:"OPENAI_MODEL" default:"gpt-4o-mini"`

	// History records older than this many days are pruned by the
	// background worker. 0 disables pruning.
	HistoryRetentionDays int `envconfig:"HISTORY_RETENTION_DAYS" default:"0"`

	// Bootstrap: create an initial user and API key on startup
	InitUsername string `envconfig:"INIT_USERNAME"`
	InitEmail    string `envconfig:"INIT_EMAIL"`
	InitAPIKey   string `envconfig:"INIT_API_KEY"`
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("LUMINA", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}

	return &cfg, nil
}

func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	return cfg
}

func (c *Config) HasGoogleSearch() bool {
	return c.GoogleSearchAPIKey != "" && c.GoogleSearchEngineID != ""
}

func (c *Config) HasOpenAI() bool {
	return c.OpenAIAPIKey != ""
}
