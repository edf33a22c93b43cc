package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"countdown_timer/internal/models"
	"countdown_timer/internal/service"
)

func TestLogsHandler_ListAndValidation(t *testing.T) {
	now := time.Now().UTC().Truncate(time.Second)
	events := []models.TimerEvent{
		{EventID: "e1", OccurredAt: now, Type: models.EventStart, Description: "timer started"},
		{EventID: "e2", OccurredAt: now.Add(1 * time.Second), Type: models.EventCountdown, Description: "countdown reached zero"},
	}
	logs := &mockEventLog{resp: events}
	s := &service.Service{
		Authorization: &mockAuth{parseID: 99},
		EventLog:      logs,
	}
	r := newTestRouter(s)

	// invalid 'from' → 400
	w := httptest.NewRecorder()
	r.ServeHTTP(w, authedRequest(http.MethodGet, "/api/v1/logs/?from=notatime", ""))
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 invalid 'from', got %d", w.Code)
	}

	// invalid 'to' → 400
	w = httptest.NewRecorder()
	r.ServeHTTP(w, authedRequest(http.MethodGet, "/api/v1/logs/?to=yesterday", ""))
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 invalid 'to', got %d", w.Code)
	}

	// valid range and type; the type is passed through for the service to normalize
	w = httptest.NewRecorder()
	q := "/api/v1/logs/?from=" + now.Format(time.RFC3339) + "&to=" + now.Add(2*time.Second).Format(time.RFC3339) + "&type=countdown"
	r.ServeHTTP(w, authedRequest(http.MethodGet, q, ""))
	if w.Code != http.StatusOK {
		t.Fatalf("logs status=%d, body=%s", w.Code, w.Body.String())
	}
	var out struct {
		Count  int                 `json:"count"`
		Events []models.TimerEvent `json:"events"`
	}
	_ = json.Unmarshal(w.Body.Bytes(), &out)
	if out.Count != 2 || len(out.Events) != 2 {
		t.Fatalf("unexpected response: %+v", out)
	}
	if logs.lastFilter.Type != "countdown" {
		t.Fatalf("expected type countdown, got %q", logs.lastFilter.Type)
	}
	if !logs.lastFilter.From.Equal(now) || !logs.lastFilter.To.Equal(now.Add(2*time.Second)) {
		t.Fatalf("unexpected range: %+v", logs.lastFilter)
	}
}

func TestLogsHandler_DateOnlyToCoversWholeDay(t *testing.T) {
	logs := &mockEventLog{}
	r := newTestRouter(&service.Service{Authorization: &mockAuth{}, EventLog: logs})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, authedRequest(http.MethodGet, "/api/v1/logs/?from=2025-04-01&to=2025-04-01", ""))
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d, body=%s", w.Code, w.Body.String())
	}

	wantFrom := time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC)
	wantTo := time.Date(2025, 4, 1, 23, 59, 59, 999999999, time.UTC)
	if !logs.lastFilter.From.Equal(wantFrom) {
		t.Fatalf("from=%v, want %v", logs.lastFilter.From, wantFrom)
	}
	if !logs.lastFilter.To.Equal(wantTo) {
		t.Fatalf("to=%v, want %v", logs.lastFilter.To, wantTo)
	}
}

func TestLogsHandler_ServiceErrors(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want int
	}{
		{"unknown type", fmt.Errorf("%w: %q", service.ErrUnknownEventType, "pause"), http.StatusBadRequest},
		{"storage failure", errors.New("disk I/O error"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			logs := &mockEventLog{err: tc.err}
			r := newTestRouter(&service.Service{Authorization: &mockAuth{}, EventLog: logs})

			w := httptest.NewRecorder()
			r.ServeHTTP(w, authedRequest(http.MethodGet, "/api/v1/logs/?type=pause", ""))
			if w.Code != tc.want {
				t.Fatalf("status=%d, want %d, body=%s", w.Code, tc.want, w.Body.String())
			}
		})
	}
}
