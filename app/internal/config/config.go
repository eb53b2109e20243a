package config

import (
	"fmt"

	"github.com/ilyakaznacheev/cleanenv"
)

// Supported completion providers.
const (
	ProviderAzure  = "azure"
	ProviderOpenAI = "openai"
)

type Config struct {
	IsDev   bool `env:"IS_DEV" env-default:"false"`
	IsDebug bool `env:"IS_DEBUG" env-default:"false"`

	// Agent settings are not env-required. An empty endpoint or key fails
	// when the first question is asked.
	Agent struct {
		Provider      string `env:"AGENT_PROVIDER" env-default:"azure" env-description:"completion provider: azure or openai"`
		Endpoint      string `env:"AZURE_OPENAI_ENDPOINT" env-description:"Azure OpenAI resource URL with trailing slash"`
		APIKey        string `env:"AZURE_OPENAI_KEY" env-description:"Azure OpenAI api-key"`
		APIVersion    string `env:"OPENAI_API_VERSION" env-default:"2024-08-01-preview"`
		Model         string `env:"AGENT_MODEL" env-default:"gpt-4o" env-description:"deployment or model name"`
		OpenAIBaseURL string `env:"OPENAI_BASE_URL" env-default:"https://api.openai.com/v1/"`
		OpenAIAPIKey  string `env:"OPENAI_API_KEY"`
	}
	HTTP struct {
		Port int `env:"PORT" env-default:"8080"`
	}
	Repository struct {
		Type      string `env:"REPOSITORY_TYPE" env-default:"memory"`
		SQLiteDSN string `env:"SQLITE_DSN" env-default:"file:usage?mode=memory&cache=shared"`
	}
	Log struct {
		Level string `env:"LOG_LEVEL" env-default:"info"`
	}
}

// Read builds a fresh Config from the environment.
func Read() (*Config, error) {
	cfg := &Config{}
	if err := cleanenv.ReadEnv(cfg); err != nil {
		return nil, fmt.Errorf("failed to read environment: %w", err)
	}
	return cfg, nil
}

// Usage describes every environment variable the application reads.
func Usage() string {
	header := "Environment variables:"
	help, err := cleanenv.GetDescription(&Config{}, &header)
	if err != nil {
		return header
	}
	return help
}
