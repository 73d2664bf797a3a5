package handlers

import (
	"context"
	"net/http"
	"time"

	ct "controlling_thermostat"
	"controlling_thermostat/internal/engine"
	"controlling_thermostat/internal/service"

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
	lastSignUpPassword string
	lastGenUsername    string
	lastGenPassword    string
	lastParseToken     string
}

func (m *mockAuth) SignUp(username, password string) (int, error) {
	m.lastSignUpUsername = username
	m.lastSignUpPassword = password
	return m.signUpID, m.signUpErr
}
func (m *mockAuth) GenerateToken(username, password string) (string, error) {
	m.lastGenUsername = username
	m.lastGenPassword = password
	return m.genTokenToken, m.genTokenErr
}
func (m *mockAuth) ParseToken(token string) (int, error) {
	m.lastParseToken = token
	return m.parseID, m.parseErr
}

type mockControl struct {
	setModeErr    error
	setLimitsErr  error
	feedErr       error
	lastMode      engine.OperatingMode
	lastLimits    service.LimitParams
	lastTempC     float64
	lastRH        *float64
	setModeCalls  int
	setLimitCalls int
	feedCalls     int
}

func (m *mockControl) SetMode(ctx context.Context, mode engine.OperatingMode) error {
	m.setModeCalls++
	m.lastMode = mode
	return m.setModeErr
}
func (m *mockControl) SetLimits(ctx context.Context, p service.LimitParams) error {
	m.setLimitCalls++
	m.lastLimits = p
	return m.setLimitsErr
}
func (m *mockControl) FeedMeasurement(ctx context.Context, tempC float64, rh *float64) error {
	m.feedCalls++
	m.lastTempC = tempC
	m.lastRH = rh
	return m.feedErr
}

type mockMonitoring struct {
	state ct.ThermostatState
	err   error
}

func (m *mockMonitoring) GetState(ctx context.Context) (ct.ThermostatState, error) {
	return m.state, m.err
}

type mockEventLog struct {
	resp     []ct.ThermostatEvent
	err      error
	lastFrom time.Time
	lastTo   time.Time
	lastType string
}

func (m *mockEventLog) List(ctx context.Context, f service.LogFilter) ([]ct.ThermostatEvent, error) {
	m.lastFrom = f.From
	m.lastTo = f.To
	m.lastType = f.Type
	return m.resp, m.err
}

// ---- Shared Test Helpers ----

func newTestRouter(s *service.Service) *gin.Engine {
	h := NewHandler(s, nil)
	gin.SetMode(gin.TestMode)
	return h.InitRoutes()
}

func authHeader(token string) http.Header {
	h := http.Header{}
	if token != "" {
		h.Set("Authorization", "Bearer "+token)
	}
	return h
}
