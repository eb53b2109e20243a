package agent

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/marketconnect/riskmap-agent/app/domain/entities"
)

// AzureService calls an Azure OpenAI chat-completions deployment.
type AzureService struct {
	endpoint   string
	apiKey     string
	apiVersion string
	model      string
	client     *http.Client
}

// NewAzureService creates an AzureService. endpoint is used verbatim as the
// URL prefix, so it is expected to end with a slash. A nil client means
// http.DefaultClient, which has no timeout.
func NewAzureService(endpoint, apiKey, apiVersion, model string, client *http.Client) *AzureService {
	if client == nil {
		client = http.DefaultClient
	}
	return &AzureService{
		endpoint:   endpoint,
		apiKey:     apiKey,
		apiVersion: apiVersion,
		model:      model,
		client:     client,
	}
}

// URL returns the chat-completions URL for the configured deployment.
func (s *AzureService) URL() string {
	return s.endpoint + "openai/deployments/" + s.model + "/chat/completions?api-version=" + url.QueryEscape(s.apiVersion)
}

// Ask sends exactly one request and returns the trimmed answer with usage.
func (s *AzureService) Ask(ctx context.Context, question string) (*entities.Answer, error) {
	body, err := json.Marshal(entities.ChatCompletionRequest{
		Messages:    messages(question),
		Temperature: Temperature,
		MaxTokens:   MaxTokens,
	})
	if err != nil {
		return nil, err
	}

	targetURL := s.URL()
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, targetURL, bytes.NewReader(body))
	if err != nil {
		// Typically an unparsable endpoint; nothing was sent.
		return nil, &entities.NetworkError{Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("api-key", s.apiKey)

	log.Debug("asking completion service", "deployment", s.model, "question_len", len(question))
	resp, err := s.client.Do(req)
	if err != nil {
		log.Warn("completion request failed", "err", err)
		return nil, &entities.NetworkError{Err: err}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &entities.NetworkError{Err: err}
	}
	log.Debug("completion response received", "status", resp.StatusCode, "bytes", len(respBody))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, serviceError(resp.StatusCode, respBody)
	}
	return parseAnswer(resp.StatusCode, respBody)
}

func serviceError(status int, body []byte) *entities.ServiceError {
	var envelope entities.ErrorResponse
	msg := ""
	if err := json.Unmarshal(body, &envelope); err == nil && envelope.Error != nil {
		msg = envelope.Error.Message
	}
	log.Warn("completion service rejected request", "status", status, "message", msg)
	return &entities.ServiceError{StatusCode: status, Message: msg}
}

func parseAnswer(status int, body []byte) (*entities.Answer, error) {
	var completion entities.ChatCompletionResponse
	if err := json.Unmarshal(body, &completion); err != nil {
		return nil, entities.NewMalformedResponseError(status, err)
	}
	if len(completion.Choices) == 0 {
		return nil, entities.NewMalformedResponseError(status, errMissing("choices"))
	}
	msg := completion.Choices[0].Message
	if msg == nil || msg.Content == nil {
		return nil, entities.NewMalformedResponseError(status, errMissing("choices[0].message.content"))
	}
	if completion.Usage == nil {
		return nil, entities.NewMalformedResponseError(status, errMissing("usage"))
	}

	return &entities.Answer{
		Text:  strings.TrimSpace(*msg.Content),
		Usage: *completion.Usage,
	}, nil
}

type errMissing string

func (e errMissing) Error() string { return "missing " + string(e) }
