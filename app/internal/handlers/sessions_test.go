package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marketconnect/riskmap-agent/app/domain/entities"
)

func TestSessionsHandler_Open(t *testing.T) {
	msm := &mockSessionManager{OpenFunc: func() (string, error) { return "abc", nil }}

	rr := serve(msm, http.MethodPost, "/v1/sessions", "")

	assert.Equal(t, http.StatusCreated, rr.Code)
	assert.JSONEq(t, `{"session_id":"abc"}`, rr.Body.String())
	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))
}

func TestSessionsHandler_OpenError(t *testing.T) {
	msm := &mockSessionManager{OpenFunc: func() (string, error) { return "", errors.New("disk full") }}

	rr := serve(msm, http.MethodPost, "/v1/sessions", "")
	assert.Equal(t, http.StatusInternalServerError, rr.Code)
}

func TestSessionsHandler_Get(t *testing.T) {
	at := time.Date(2026, 10, 17, 10, 0, 0, 0, time.UTC)
	msm := &mockSessionManager{SnapshotFunc: func(id string) (entities.SessionState, error) {
		if id != "abc" {
			return entities.SessionState{}, entities.ErrSessionNotFound
		}
		return entities.SessionState{
			Exchanges: []entities.Exchange{{
				ID: 1, Question: "What is JSX?", Answer: "JSX is syntax sugar.",
				PromptTokens: 10, CompletionTokens: 5, TotalTokens: 15, OccurredAt: at,
			}},
			CumulativeTokens: 15,
		}, nil
	}}

	rr := serve(msm, http.MethodGet, "/v1/sessions/abc", "")
	require.Equal(t, http.StatusOK, rr.Code)

	var got entities.SessionState
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
	assert.Equal(t, 15, got.CumulativeTokens)
	assert.False(t, got.Pending)
	require.Len(t, got.Exchanges, 1)
	assert.Equal(t, "JSX is syntax sugar.", got.Exchanges[0].Answer)
	assert.True(t, at.Equal(got.Exchanges[0].OccurredAt))

	rr = serve(msm, http.MethodGet, "/v1/sessions/other", "")
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestSessionsHandler_Discard(t *testing.T) {
	var discarded string
	msm := &mockSessionManager{DiscardFunc: func(id string) error {
		if id == "gone" {
			return entities.ErrSessionNotFound
		}
		discarded = id
		return nil
	}}

	rr := serve(msm, http.MethodDelete, "/v1/sessions/abc", "")
	assert.Equal(t, http.StatusNoContent, rr.Code)
	assert.Equal(t, "abc", discarded)

	rr = serve(msm, http.MethodDelete, "/v1/sessions/gone", "")
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestSessionsHandler_Submit(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		submitErr  error
		wantStatus int
		wantText   string
		wantCalled bool
	}{
		{name: "accepted", body: `{"text":"What is JSX?"}`, wantStatus: http.StatusAccepted, wantText: "What is JSX?", wantCalled: true},
		{name: "blank", body: `{"text":"   "}`, submitErr: entities.ErrEmptyQuestion, wantStatus: http.StatusBadRequest, wantText: "   ", wantCalled: true},
		{name: "empty body", body: ``, submitErr: entities.ErrEmptyQuestion, wantStatus: http.StatusBadRequest, wantCalled: true},
		{name: "pending", body: `{"text":"again"}`, submitErr: entities.ErrRequestPending, wantStatus: http.StatusConflict, wantText: "again", wantCalled: true},
		{name: "closed", body: `{"text":"late"}`, submitErr: entities.ErrLogClosed, wantStatus: http.StatusGone, wantText: "late", wantCalled: true},
		{name: "unknown session", body: `{"text":"q"}`, submitErr: entities.ErrSessionNotFound, wantStatus: http.StatusNotFound, wantText: "q", wantCalled: true},
		{name: "invalid json", body: `{"text":`, wantStatus: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var called bool
			var gotID, gotText string
			msm := &mockSessionManager{SubmitFunc: func(id, text string) error {
				called = true
				gotID, gotText = id, text
				return tt.submitErr
			}}

			rr := serve(msm, http.MethodPost, "/v1/sessions/abc/questions", tt.body)

			assert.Equal(t, tt.wantStatus, rr.Code, rr.Body.String())
			assert.Equal(t, tt.wantCalled, called)
			if tt.wantCalled {
				assert.Equal(t, "abc", gotID)
				assert.Equal(t, tt.wantText, gotText)
			}
			if tt.wantStatus == http.StatusAccepted {
				assert.JSONEq(t, `{"accepted":true}`, rr.Body.String())
			}
		})
	}
}

func TestCatalogEndpoints(t *testing.T) {
	rr := serve(&mockSessionManager{}, http.MethodGet, "/v1/zones", "")
	require.Equal(t, http.StatusOK, rr.Code)

	var zones struct {
		Levels []entities.AlertLevel `json:"levels"`
		Zones  []entities.Zone       `json:"zones"`
		Region entities.Region       `json:"initial_region"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &zones))
	assert.Len(t, zones.Levels, 4)
	assert.Len(t, zones.Zones, 5)
	assert.Equal(t, 0.04, zones.Region.LatitudeDelta)

	rr = serve(&mockSessionManager{}, http.MethodGet, "/v1/agent", "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"provider":"azure","model":"gpt-4o","temperature":0.8,"max_tokens":60}`, rr.Body.String())
}
