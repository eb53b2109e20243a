package agent

import (
	"context"
	"errors"
	"net"
	"net/http"
	"net/url"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"github.com/marketconnect/riskmap-agent/app/domain/entities"
)

// OpenAIService asks an OpenAI-compatible endpoint through the official SDK.
type OpenAIService struct {
	client openai.Client
	model  string
}

// NewOpenAIService creates an OpenAIService. SDK retries are disabled so
// each Ask issues exactly one request.
func NewOpenAIService(baseURL, apiKey, model string, httpClient *http.Client) *OpenAIService {
	opts := []option.RequestOption{
		option.WithAPIKey(apiKey),
		option.WithMaxRetries(0),
	}
	if baseURL != "" {
		opts = append(opts, option.WithBaseURL(baseURL))
	}
	if httpClient != nil {
		opts = append(opts, option.WithHTTPClient(httpClient))
	}
	return &OpenAIService{
		client: openai.NewClient(opts...),
		model:  model,
	}
}

// Ask sends the question with the fixed system prompt and sampling parameters.
func (s *OpenAIService) Ask(ctx context.Context, question string) (*entities.Answer, error) {
	msgs := messages(question)
	params := openai.ChatCompletionNewParams{
		Model: openai.ChatModel(s.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(msgs[0].Content),
			openai.UserMessage(msgs[1].Content),
		},
		Temperature: openai.Float(Temperature),
		MaxTokens:   openai.Int(MaxTokens),
	}

	log.Debug("asking completion service", "model", s.model, "question_len", len(question))
	completion, err := s.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return nil, classifySDKError(err)
	}
	if len(completion.Choices) == 0 {
		return nil, entities.NewMalformedResponseError(http.StatusOK, errMissing("choices"))
	}
	if !completion.Choices[0].Message.JSON.Content.Valid() {
		return nil, entities.NewMalformedResponseError(http.StatusOK, errMissing("choices[0].message.content"))
	}
	if !completion.JSON.Usage.Valid() {
		return nil, entities.NewMalformedResponseError(http.StatusOK, errMissing("usage"))
	}

	return &entities.Answer{
		Text: strings.TrimSpace(completion.Choices[0].Message.Content),
		Usage: entities.TokenUsage{
			PromptTokens:     int(completion.Usage.PromptTokens),
			CompletionTokens: int(completion.Usage.CompletionTokens),
			TotalTokens:      int(completion.Usage.TotalTokens),
		},
	}, nil
}

// classifySDKError maps SDK failures onto the NetworkError/ServiceError taxonomy.
func classifySDKError(err error) error {
	var apiErr *openai.Error
	if errors.As(err, &apiErr) {
		log.Warn("completion service rejected request", "status", apiErr.StatusCode, "message", apiErr.Message)
		return &entities.ServiceError{StatusCode: apiErr.StatusCode, Message: apiErr.Message, Err: err}
	}

	var urlErr *url.Error
	var netErr net.Error
	if errors.As(err, &urlErr) || errors.As(err, &netErr) || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		log.Warn("completion request failed", "err", err)
		return &entities.NetworkError{Err: err}
	}
	return entities.NewMalformedResponseError(http.StatusOK, err)
}
