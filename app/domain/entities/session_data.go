package entities

// SessionData is the usage row kept per session. It counts tokens and
// requests only; question and answer text is never part of it.
type SessionData struct {
	SessionID             string `json:"session_id"`
	TotalPromptTokens     int    `json:"total_prompt_tokens"`
	TotalCompletionTokens int    `json:"total_completion_tokens"`
	TotalTokens           int    `json:"total_tokens"`
	RequestCount          int    `json:"request_count"`
	FailedCount           int    `json:"failed_count"`
}

// Add folds one completed exchange into the row.
func (d *SessionData) Add(ex Exchange) {
	d.TotalPromptTokens += ex.PromptTokens
	d.TotalCompletionTokens += ex.CompletionTokens
	d.TotalTokens += ex.TotalTokens
	d.RequestCount++
	if ex.Failed {
		d.FailedCount++
	}
}
