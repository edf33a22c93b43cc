package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"time"

	"countdown_timer/internal/models"
	"countdown_timer/internal/service"

	"github.com/gin-gonic/gin"
)

// ---- Service Mocks ----

type mockAuth struct {
	signUpID      int
	signUpErr     error
	genTokenToken string
	genTokenErr   error
	parseID       int
	parseErr      error

	lastSignUpUsername string
	lastGenUsername    string
	lastParseToken     string
}

func (m *mockAuth) SignUp(username, _ string) (int, error) {
	m.lastSignUpUsername = username
	return m.signUpID, m.signUpErr
}

func (m *mockAuth) GenerateToken(username, _ string) (string, error) {
	m.lastGenUsername = username
	return m.genTokenToken, m.genTokenErr
}

func (m *mockAuth) ParseToken(token string) (int, error) {
	m.lastParseToken = token
	return m.parseID, m.parseErr
}

// mockTimer records every call; err is returned by all operations.
type mockTimer struct {
	err     error
	presets service.Presets

	calls           []string
	lastFastForward time.Duration
	lastPrevent     bool
	lastSet         service.SetParams
	lastPreset      string
	closed          bool
}

func (m *mockTimer) Start(_ context.Context, ff time.Duration) error {
	m.calls = append(m.calls, "start")
	m.lastFastForward = ff
	return m.err
}

func (m *mockTimer) Stop(context.Context) error {
	m.calls = append(m.calls, "stop")
	return m.err
}

func (m *mockTimer) Reset(_ context.Context, preventCallback bool) error {
	m.calls = append(m.calls, "reset")
	m.lastPrevent = preventCallback
	return m.err
}

func (m *mockTimer) ResetAndStart(_ context.Context, ff time.Duration) error {
	m.calls = append(m.calls, "resetAndStart")
	m.lastFastForward = ff
	return m.err
}

func (m *mockTimer) Set(_ context.Context, p service.SetParams) error {
	m.calls = append(m.calls, "set")
	m.lastSet = p
	return m.err
}

func (m *mockTimer) ApplyPreset(_ context.Context, name string) error {
	m.calls = append(m.calls, "preset")
	m.lastPreset = name
	return m.err
}

func (m *mockTimer) Presets() service.Presets { return m.presets }

func (m *mockTimer) Close() { m.closed = true }

type mockMonitoring struct {
	state models.TimerState
	err   error
}

func (m *mockMonitoring) GetState(context.Context) (models.TimerState, error) {
	return m.state, m.err
}

type mockEventLog struct {
	resp       []models.TimerEvent
	err        error
	lastFilter service.LogFilter
}

func (m *mockEventLog) List(_ context.Context, f service.LogFilter) ([]models.TimerEvent, error) {
	m.lastFilter = f
	return m.resp, m.err
}

// ---- Shared Test Helpers ----

func newTestRouter(s *service.Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	return NewHandler(s, nil).InitRoutes()
}

func authHeader(token string) http.Header {
	h := http.Header{}
	if token != "" {
		h.Set("Authorization", "Bearer "+token)
	}
	return h
}

// authedRequest builds a request carrying a bearer token and, for a
// non-empty body, a JSON content type.
func authedRequest(method, target, body string) *http.Request {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	for k, vv := range authHeader("valid") {
		for _, v := range vv {
			req.Header.Add(k, v)
		}
	}
	return req
}
