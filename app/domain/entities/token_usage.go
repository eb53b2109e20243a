package entities

// TokenUsage is the token accounting reported by the completion service.
type TokenUsage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// Answer is a normalized reply from the completion service.
type Answer struct {
	Text  string
	Usage TokenUsage
}
