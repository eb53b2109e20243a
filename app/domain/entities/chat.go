package entities

// Chat roles used in completion requests.
const (
	RoleSystem = "system"
	RoleUser   = "user"
)

// ChatMessage is a single conversation turn.
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ChatCompletionRequest is the body posted to the completion endpoint.
type ChatCompletionRequest struct {
	Messages    []ChatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
}

// ChatCompletionResponse is the subset of the completion response we read.
// Pointers distinguish absent fields from zero values.
type ChatCompletionResponse struct {
	Choices []struct {
		Message *struct {
			Content *string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Usage *TokenUsage `json:"usage"`
}

// ErrorResponse is the failure envelope returned by the completion service.
type ErrorResponse struct {
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}
