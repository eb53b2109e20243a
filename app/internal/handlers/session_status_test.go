package handlers

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/marketconnect/riskmap-agent/app/domain/entities"
	"github.com/marketconnect/riskmap-agent/app/internal/agent"
)

type mockSessionManager struct {
	OpenFunc         func() (string, error)
	SubmitFunc       func(sessionID, rawText string) error
	SnapshotFunc     func(sessionID string) (entities.SessionState, error)
	DiscardFunc      func(sessionID string) error
	GetSessionFunc   func(sessionID string) (*entities.SessionData, error)
	ListSessionsFunc func() (map[string]*entities.SessionData, error)
}

func (m *mockSessionManager) Open() (string, error) {
	if m.OpenFunc != nil {
		return m.OpenFunc()
	}
	return "", errors.New("Open not implemented")
}

func (m *mockSessionManager) Submit(sessionID, rawText string) error {
	if m.SubmitFunc != nil {
		return m.SubmitFunc(sessionID, rawText)
	}
	return errors.New("Submit not implemented")
}

func (m *mockSessionManager) Snapshot(sessionID string) (entities.SessionState, error) {
	if m.SnapshotFunc != nil {
		return m.SnapshotFunc(sessionID)
	}
	return entities.SessionState{}, errors.New("Snapshot not implemented")
}

func (m *mockSessionManager) Discard(sessionID string) error {
	if m.DiscardFunc != nil {
		return m.DiscardFunc(sessionID)
	}
	return errors.New("Discard not implemented")
}

func (m *mockSessionManager) GetSession(sessionID string) (*entities.SessionData, error) {
	if m.GetSessionFunc != nil {
		return m.GetSessionFunc(sessionID)
	}
	return nil, errors.New("GetSession not implemented")
}

func (m *mockSessionManager) ListSessions() (map[string]*entities.SessionData, error) {
	if m.ListSessionsFunc != nil {
		return m.ListSessionsFunc()
	}
	return nil, errors.New("ListSessions not implemented")
}

func serve(msm *mockSessionManager, method, path, body string) *httptest.ResponseRecorder {
	router := NewRouter(msm, agent.Info{Provider: "azure", Model: "gpt-4o", Temperature: 0.8, MaxTokens: 60})
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	return rr
}

func TestSessionStatusHandler(t *testing.T) {
	stats := map[string]*entities.SessionData{
		"sess1": {SessionID: "sess1", TotalPromptTokens: 100, TotalCompletionTokens: 50, TotalTokens: 150, RequestCount: 2},
		"sess2": {SessionID: "sess2", RequestCount: 1, FailedCount: 1},
	}
	healthy := func(msm *mockSessionManager) {
		msm.ListSessionsFunc = func() (map[string]*entities.SessionData, error) { return stats, nil }
		msm.GetSessionFunc = func(id string) (*entities.SessionData, error) {
			if d, ok := stats[id]; ok {
				return d, nil
			}
			return nil, entities.ErrSessionNotFound
		}
	}
	broken := func(msm *mockSessionManager) {
		msm.ListSessionsFunc = func() (map[string]*entities.SessionData, error) { return nil, errors.New("db error") }
		msm.GetSessionFunc = func(string) (*entities.SessionData, error) { return nil, errors.New("db error") }
	}

	tests := []struct {
		name     string
		method   string
		path     string
		setup    func(*mockSessionManager)
		wantCode int
		wantJSON string
		wantText string
	}{
		{
			name:     "list",
			method:   http.MethodGet,
			path:     "/sessions/status",
			setup:    healthy,
			wantCode: http.StatusOK,
			wantJSON: `{
				"sess1":{"session_id":"sess1","total_prompt_tokens":100,"total_completion_tokens":50,"total_tokens":150,"request_count":2,"failed_count":0},
				"sess2":{"session_id":"sess2","total_prompt_tokens":0,"total_completion_tokens":0,"total_tokens":0,"request_count":1,"failed_count":1}}`,
		},
		{
			name:   "empty list",
			method: http.MethodGet,
			path:   "/sessions/status",
			setup: func(msm *mockSessionManager) {
				msm.ListSessionsFunc = func() (map[string]*entities.SessionData, error) {
					return map[string]*entities.SessionData{}, nil
				}
			},
			wantCode: http.StatusOK,
			wantJSON: `{}`,
		},
		{
			name:     "list fails",
			method:   http.MethodGet,
			path:     "/sessions/status",
			setup:    broken,
			wantCode: http.StatusInternalServerError,
			wantText: "Internal server error",
		},
		{
			name:     "single",
			method:   http.MethodGet,
			path:     "/sessions/status/sess1",
			setup:    healthy,
			wantCode: http.StatusOK,
			wantJSON: `{"session_id":"sess1","total_prompt_tokens":100,"total_completion_tokens":50,"total_tokens":150,"request_count":2,"failed_count":0}`,
		},
		{
			name:     "single unknown",
			method:   http.MethodGet,
			path:     "/sessions/status/missing",
			setup:    healthy,
			wantCode: http.StatusNotFound,
			wantText: "Session not found",
		},
		{
			name:     "single fails",
			method:   http.MethodGet,
			path:     "/sessions/status/sess1",
			setup:    broken,
			wantCode: http.StatusInternalServerError,
			wantText: "Internal server error",
		},
		{
			name:     "wrong method",
			method:   http.MethodPost,
			path:     "/sessions/status",
			setup:    healthy,
			wantCode: http.StatusMethodNotAllowed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msm := &mockSessionManager{}
			tt.setup(msm)

			rr := serve(msm, tt.method, tt.path, "")

			assert.Equal(t, tt.wantCode, rr.Code)
			if tt.wantJSON != "" {
				assert.JSONEq(t, tt.wantJSON, rr.Body.String())
			}
			if tt.wantText != "" {
				assert.Equal(t, tt.wantText, strings.TrimSpace(rr.Body.String()))
			}
		})
	}
}
