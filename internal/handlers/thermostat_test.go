package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	ct "controlling_thermostat"
	"controlling_thermostat/internal/engine"
	"controlling_thermostat/internal/service"
)

func doJSON(t *testing.T, r http.Handler, method, target, body, token string) *httptest.ResponseRecorder {
	t.Helper()
	var buf *bytes.Buffer
	if body != "" {
		buf = bytes.NewBufferString(body)
	} else {
		buf = &bytes.Buffer{}
	}
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, target, buf)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, vv := range authHeader(token) {
		for _, v := range vv {
			req.Header.Add(k, v)
		}
	}
	r.ServeHTTP(w, req)
	return w
}

func TestThermostatHandlers_GetState(t *testing.T) {
	auth := &mockAuth{parseID: 7}
	mon := &mockMonitoring{state: ct.ThermostatState{
		ID: 1, Mode: "heat_to_set_point", CurrentTempC: 17.5, HeatOn: true, FanOn: true,
	}}
	s := &service.Service{
		Authorization: auth,
		Monitoring:    mon,
		Control:       &mockControl{},
	}
	r := newTestRouter(s)

	// Requires auth: 401 without header
	w := doJSON(t, r, http.MethodGet, "/api/v1/thermostat/state", "", "")
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without auth, got %d", w.Code)
	}

	w = doJSON(t, r, http.MethodGet, "/api/v1/thermostat/state", "", "valid")
	if w.Code != http.StatusOK {
		t.Fatalf("state status=%d, body=%s", w.Code, w.Body.String())
	}
	var st ct.ThermostatState
	if err := json.Unmarshal(w.Body.Bytes(), &st); err != nil {
		t.Fatalf("unmarshal state: %v", err)
	}
	if st.Mode != "heat_to_set_point" || !st.HeatOn {
		t.Fatalf("unexpected state: %+v", st)
	}
}

func TestThermostatHandlers_SetMode(t *testing.T) {
	auth := &mockAuth{parseID: 7}
	ctl := &mockControl{}
	s := &service.Service{
		Authorization: auth,
		Monitoring:    &mockMonitoring{state: ct.ThermostatState{ID: 1, Mode: "maintain_range"}},
		Control:       ctl,
	}
	r := newTestRouter(s)

	w := doJSON(t, r, http.MethodPut, "/api/v1/thermostat/mode", `{"mode":"maintain_range"}`, "valid")
	if w.Code != http.StatusOK {
		t.Fatalf("mode status=%d, body=%s", w.Code, w.Body.String())
	}
	if ctl.setModeCalls != 1 || ctl.lastMode != engine.MaintainRange {
		t.Fatalf("SetMode calls=%d mode=%v", ctl.setModeCalls, ctl.lastMode)
	}
	var resp struct {
		Status string             `json:"status"`
		Mode   string             `json:"mode"`
		State  ct.ThermostatState `json:"state"`
	}
	_ = json.Unmarshal(w.Body.Bytes(), &resp)
	if resp.Status != statusModeSet || resp.Mode != "maintain_range" {
		t.Fatalf("bad mode response: %+v", resp)
	}

	// Unknown token is a 400 and never reaches the service.
	w = doJSON(t, r, http.MethodPut, "/api/v1/thermostat/mode", `{"mode":"warp_drive"}`, "valid")
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for unknown mode, got %d", w.Code)
	}
	if ctl.setModeCalls != 1 {
		t.Fatalf("SetMode must not be called for an unknown mode")
	}
}

func TestThermostatHandlers_SetLimits(t *testing.T) {
	auth := &mockAuth{parseID: 7}
	ctl := &mockControl{}
	s := &service.Service{
		Authorization: auth,
		Monitoring:    &mockMonitoring{state: ct.ThermostatState{ID: 1}},
		Control:       ctl,
	}
	r := newTestRouter(s)

	w := doJSON(t, r, http.MethodPut, "/api/v1/thermostat/limits", `{"min_set_c":19,"max_set_c":23}`, "valid")
	if w.Code != http.StatusOK {
		t.Fatalf("limits status=%d, body=%s", w.Code, w.Body.String())
	}
	if ctl.setLimitCalls != 1 {
		t.Fatalf("SetLimits calls=%d", ctl.setLimitCalls)
	}
	if ctl.lastLimits.MinSetC == nil || *ctl.lastLimits.MinSetC != 19 {
		t.Fatalf("min_set_c not passed: %+v", ctl.lastLimits)
	}
	if ctl.lastLimits.MinSafeC != nil {
		t.Fatalf("omitted field must stay nil: %+v", ctl.lastLimits)
	}

	// Validation failure maps to 400 with the engine's message.
	ctl.setLimitsErr = &engine.ConfigError{Field: "max_set_c", Value: 99, Reason: "above the safe maximum"}
	w = doJSON(t, r, http.MethodPut, "/api/v1/thermostat/limits", `{"max_set_c":99}`, "valid")
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for invalid limits, got %d (body=%s)", w.Code, w.Body.String())
	}
}

func TestThermostatHandlers_PostMeasurement(t *testing.T) {
	auth := &mockAuth{parseID: 7}
	ctl := &mockControl{}
	s := &service.Service{
		Authorization: auth,
		Monitoring:    &mockMonitoring{state: ct.ThermostatState{ID: 1, CurrentTempC: 18.5}},
		Control:       ctl,
	}
	r := newTestRouter(s)

	w := doJSON(t, r, http.MethodPost, "/api/v1/thermostat/measurements", `{"temp_c":18.5,"rh":45}`, "valid")
	if w.Code != http.StatusOK {
		t.Fatalf("measurement status=%d, body=%s", w.Code, w.Body.String())
	}
	if ctl.feedCalls != 1 || ctl.lastTempC != 18.5 {
		t.Fatalf("feed calls=%d temp=%v", ctl.feedCalls, ctl.lastTempC)
	}
	if ctl.lastRH == nil || *ctl.lastRH != 45 {
		t.Fatalf("rh not passed: %v", ctl.lastRH)
	}
	var resp struct {
		Status string `json:"status"`
	}
	_ = json.Unmarshal(w.Body.Bytes(), &resp)
	if resp.Status != statusApplied {
		t.Fatalf("expected status %q, got %q", statusApplied, resp.Status)
	}
}

func TestThermostatHandlers_PostMeasurement_ZeroCelsius(t *testing.T) {
	auth := &mockAuth{parseID: 7}
	ctl := &mockControl{}
	s := &service.Service{
		Authorization: auth,
		Monitoring:    &mockMonitoring{state: ct.ThermostatState{ID: 1}},
		Control:       ctl,
	}
	r := newTestRouter(s)

	// 0 degrees is a legitimate reading, not an empty field.
	w := doJSON(t, r, http.MethodPost, "/api/v1/thermostat/measurements", `{"temp_c":0}`, "valid")
	if w.Code != http.StatusOK {
		t.Fatalf("zero reading status=%d, body=%s", w.Code, w.Body.String())
	}
	if ctl.feedCalls != 1 || ctl.lastTempC != 0 {
		t.Fatalf("feed calls=%d temp=%v", ctl.feedCalls, ctl.lastTempC)
	}
	var resp struct {
		Status string `json:"status"`
	}
	_ = json.Unmarshal(w.Body.Bytes(), &resp)
	if resp.Status != statusApplied {
		t.Fatalf("expected status %q, got %q", statusApplied, resp.Status)
	}

	// A body without temp_c is still a 400.
	w = doJSON(t, r, http.MethodPost, "/api/v1/thermostat/measurements", `{"rh":50}`, "valid")
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for missing temp_c, got %d (body=%s)", w.Code, w.Body.String())
	}
	if ctl.feedCalls != 1 {
		t.Fatalf("missing temp_c must not reach the service")
	}
}

func TestThermostatHandlers_PostMeasurement_Deferred(t *testing.T) {
	auth := &mockAuth{parseID: 7}
	ctl := &mockControl{feedErr: &engine.ConstraintError{Actuator: engine.Cool, Kind: engine.MinOffTime}}
	s := &service.Service{
		Authorization: auth,
		Monitoring:    &mockMonitoring{state: ct.ThermostatState{ID: 1}},
		Control:       ctl,
	}
	r := newTestRouter(s)

	// A guard refusal is a 200 with status=deferred, not an error.
	w := doJSON(t, r, http.MethodPost, "/api/v1/thermostat/measurements", `{"temp_c":31}`, "valid")
	if w.Code != http.StatusOK {
		t.Fatalf("deferred status=%d, body=%s", w.Code, w.Body.String())
	}
	var resp struct {
		Status     string `json:"status"`
		Constraint string `json:"constraint"`
	}
	_ = json.Unmarshal(w.Body.Bytes(), &resp)
	if resp.Status != statusDeferred || resp.Constraint == "" {
		t.Fatalf("bad deferred response: %+v", resp)
	}
}
