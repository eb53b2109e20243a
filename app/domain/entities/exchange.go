package entities

import "time"

// Exchange is one question and its outcome, newest first in SessionState.
type Exchange struct {
	ID               int64     `json:"id"`
	Question         string    `json:"question"`
	Answer           string    `json:"answer"`
	PromptTokens     int       `json:"prompt_tokens"`
	CompletionTokens int       `json:"completion_tokens"`
	TotalTokens      int       `json:"total_tokens"`
	Failed           bool      `json:"failed"`
	OccurredAt       time.Time `json:"occurred_at"`
}

// Usage returns the token counts recorded on the exchange.
func (e Exchange) Usage() TokenUsage {
	return TokenUsage{
		PromptTokens:     e.PromptTokens,
		CompletionTokens: e.CompletionTokens,
		TotalTokens:      e.TotalTokens,
	}
}

// SessionState is the question log of a single mounted session.
type SessionState struct {
	Exchanges        []Exchange `json:"exchanges"`
	CumulativeTokens int        `json:"cumulative_tokens"`
	Pending          bool       `json:"pending"`
}

// Clone returns a copy that shares no memory with s.
func (s SessionState) Clone() SessionState {
	c := s
	c.Exchanges = make([]Exchange, len(s.Exchanges))
	copy(c.Exchanges, s.Exchanges)
	return c
}
