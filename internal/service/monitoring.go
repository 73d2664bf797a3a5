package service

import (
	"context"
	"time"

	ct "controlling_thermostat"
	"controlling_thermostat/internal/engine"
	"controlling_thermostat/internal/repository"
)

type MonitoringService struct {
	stateRepo repository.StateRepo
}

func NewMonitoringService(stateRepo repository.StateRepo) *MonitoringService {
	return &MonitoringService{stateRepo: stateRepo}
}

// GetState returns the latest persisted snapshot. If nothing has been
// persisted yet, a baseline default snapshot is returned.
func (s *MonitoringService) GetState(ctx context.Context) (ct.ThermostatState, error) {
	state, err := s.stateRepo.Load(ctx)
	if err != nil {
		return ct.ThermostatState{}, err
	}
	if state.ID == 0 {
		return baselineState(), nil
	}
	state.UpdatedAt = toUTC(state.UpdatedAt)
	return state, nil
}

// baselineState mirrors a freshly constructed engine: mode disabled, set
// range equal to the safe range, current temperature at its midpoint.
func baselineState() ct.ThermostatState {
	return ct.ThermostatState{
		ID:           1,
		Mode:         engine.Disabled.Token(),
		CurrentTempC: (engine.DefaultMinimumSafeTemperature + engine.DefaultMaximumSafeTemperature) / 2,
		MinSafeC:     engine.DefaultMinimumSafeTemperature,
		MaxSafeC:     engine.DefaultMaximumSafeTemperature,
		MinSetC:      engine.DefaultMinimumSafeTemperature,
		MaxSetC:      engine.DefaultMaximumSafeTemperature,
		UpdatedAt:    time.Now().UTC(),
	}
}

// toUTC normalizes non-zero time to UTC, preserving zero values.
func toUTC(t time.Time) time.Time {
	if t.IsZero() {
		return t
	}
	return t.UTC()
}
