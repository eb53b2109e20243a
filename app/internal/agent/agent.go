// Package agent turns a user question into one chat-completion request and
// normalizes the reply.
package agent

import (
	"context"
	"fmt"

	"github.com/marketconnect/riskmap-agent/app/domain/entities"
	"github.com/marketconnect/riskmap-agent/app/internal/config"
)

// Fixed sampling parameters and instruction sent with every question.
const (
	Temperature = 0.8
	MaxTokens   = 60

	SystemPrompt = "You are an expert agent ONLY on React Native. " +
		"Answer ONLY questions about React Native in at most 50 characters. " +
		`If the question is NOT about React Native, reply exactly: "I only know about React Native."`
)

// Asker answers a single, already trimmed question.
type Asker interface {
	Ask(ctx context.Context, question string) (*entities.Answer, error)
}

// Info describes the configured agent for display.
type Info struct {
	Provider    string  `json:"provider"`
	Model       string  `json:"model"`
	Temperature float64 `json:"temperature"`
	MaxTokens   int     `json:"max_tokens"`
}

// messages builds the two-turn conversation for a question.
func messages(question string) []entities.ChatMessage {
	return []entities.ChatMessage{
		{Role: entities.RoleSystem, Content: SystemPrompt},
		{Role: entities.RoleUser, Content: question},
	}
}

// New returns the Asker for the configured provider.
func New(cfg *config.Config) (Asker, Info, error) {
	info := Info{
		Provider:    cfg.Agent.Provider,
		Model:       cfg.Agent.Model,
		Temperature: Temperature,
		MaxTokens:   MaxTokens,
	}

	switch cfg.Agent.Provider {
	case config.ProviderAzure, "":
		info.Provider = config.ProviderAzure
		return NewAzureService(cfg.Agent.Endpoint, cfg.Agent.APIKey, cfg.Agent.APIVersion, cfg.Agent.Model, nil), info, nil
	case config.ProviderOpenAI:
		return NewOpenAIService(cfg.Agent.OpenAIBaseURL, cfg.Agent.OpenAIAPIKey, cfg.Agent.Model, nil), info, nil
	default:
		return nil, info, fmt.Errorf("unknown agent provider %q", cfg.Agent.Provider)
	}
}
