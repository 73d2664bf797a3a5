package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	ct "controlling_thermostat"
	"controlling_thermostat/internal/engine"
	"controlling_thermostat/internal/repository"
	"controlling_thermostat/internal/telemetry"
)

// Event types recorded in the history.
const (
	EventDecision    = "DECISION"
	EventDeferred    = "DEFERRED"
	EventModeChange  = "MODE_CHANGE"
	EventLimitChange = "LIMIT_CHANGE"
	EventError       = "ERROR"
)

// ControlService owns the engine instance. The engine itself is
// single-threaded; this service is the embedding caller the engine's
// contract requires, so it serializes every entry point with one mutex.
type ControlService struct {
	mu sync.Mutex

	thermo    *engine.Thermostat
	stateRepo repository.StateRepo
	eventRepo repository.EventRepo
	pub       telemetry.Publisher

	// commanded states after the previous feed, to detect decisions
	lastHeat bool
	lastCool bool
	lastFan  bool
}

func NewControlService(thermo *engine.Thermostat, stateRepo repository.StateRepo, eventRepo repository.EventRepo, pub telemetry.Publisher) *ControlService {
	if pub == nil {
		pub = telemetry.Nop{}
	}
	return &ControlService{
		thermo:    thermo,
		stateRepo: stateRepo,
		eventRepo: eventRepo,
		pub:       pub,
	}
}

// SetMode replaces the operating mode. The next measurement is evaluated
// under the new mode.
func (s *ControlService) SetMode(ctx context.Context, mode engine.OperatingMode) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	previous := s.thermo.OperatingMode()
	if err := s.thermo.SetOperatingMode(mode); err != nil {
		return err
	}

	now := time.Now().UTC()
	if err := s.appendLocked(ctx, ct.ThermostatEvent{
		OccurredAt:  now,
		Type:        EventModeChange,
		Description: "Operating mode changed to " + mode.String(),
		Metadata: map[string]any{
			"from": previous.Token(),
			"to":   mode.Token(),
		},
	}); err != nil {
		return err
	}
	return s.persistLocked(ctx, now)
}

// SetLimits applies the provided bounds. Validation failures from the engine
// propagate as *engine.ConfigError with nothing persisted.
//
// When both bounds of a pair move, the order of application matters: raising
// the window must apply the max first, lowering must apply the min first, or
// a valid target window would be rejected as transiently inverted.
func (s *ControlService) SetLimits(ctx context.Context, p LimitParams) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.applyPairLocked(
		p.MinSafeC, p.MaxSafeC,
		s.thermo.MaximumSafeTemperature(),
		s.thermo.SetMinimumSafeTemperature,
		s.thermo.SetMaximumSafeTemperature,
	); err != nil {
		return err
	}
	if err := s.applyPairLocked(
		p.MinSetC, p.MaxSetC,
		s.thermo.MaximumSetTemperature(),
		s.thermo.SetMinimumSetTemperature,
		s.thermo.SetMaximumSetTemperature,
	); err != nil {
		return err
	}

	now := time.Now().UTC()
	if err := s.appendLocked(ctx, ct.ThermostatEvent{
		OccurredAt:  now,
		Type:        EventLimitChange,
		Description: "Temperature limits changed",
		Metadata: map[string]any{
			"min_safe_c": s.thermo.MinimumSafeTemperature(),
			"max_safe_c": s.thermo.MaximumSafeTemperature(),
			"min_set_c":  s.thermo.MinimumSetTemperature(),
			"max_set_c":  s.thermo.MaximumSetTemperature(),
		},
	}); err != nil {
		return err
	}
	return s.persistLocked(ctx, now)
}

func (s *ControlService) applyPairLocked(minV, maxV *float64, currentMax float64, setMin, setMax func(float64) error) error {
	maxFirst := maxV != nil && *maxV > currentMax
	if maxFirst {
		if err := setMax(*maxV); err != nil {
			return err
		}
	}
	if minV != nil {
		if err := setMin(*minV); err != nil {
			return err
		}
	}
	if maxV != nil && !maxFirst {
		if err := setMax(*maxV); err != nil {
			return err
		}
	}
	return nil
}

// FeedMeasurement records a reading and runs one decision. Soft constraint
// refusals come back as *engine.ConstraintError for the caller to retry on a
// later tick; the snapshot and history are updated either way.
func (s *ControlService) FeedMeasurement(ctx context.Context, tempC float64, rh *float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if rh != nil {
		s.thermo.SetCurrentHumidity(*rh)
	}
	decisionErr := s.thermo.SetCurrentTemperature(tempC)
	now := time.Now().UTC()

	// History appends on this path are best-effort: a journal outage must
	// not mask the decision result or stop the snapshot save. SetMode and
	// SetLimits propagate append errors instead; they have no decision to
	// report.
	var ce *engine.ConstraintError
	switch {
	case decisionErr == nil:
		// event appended below once the new commanded states are known
	case errors.As(decisionErr, &ce):
		_ = s.appendLocked(ctx, ct.ThermostatEvent{
			OccurredAt:  now,
			Type:        EventDeferred,
			Description: "Decision deferred: " + ce.Error(),
			Metadata: map[string]any{
				"actuator": ce.Actuator.String(),
				"temp_c":   tempC,
			},
		})
	default:
		_ = s.appendLocked(ctx, ct.ThermostatEvent{
			OccurredAt:  now,
			Type:        EventError,
			Description: "Actuator sequence failed: " + decisionErr.Error(),
			Metadata:    map[string]any{"temp_c": tempC},
		})
	}

	snapshot, snapErr := s.snapshotLocked(now)
	if snapErr == nil {
		if decisionErr == nil && s.outcomeChanged(snapshot) {
			_ = s.appendLocked(ctx, ct.ThermostatEvent{
				OccurredAt:  now,
				Type:        EventDecision,
				Description: "Outcome: " + outcomeLabel(snapshot),
				Metadata: map[string]any{
					"temp_c":  tempC,
					"heat_on": snapshot.HeatOn,
					"cool_on": snapshot.CoolOn,
					"fan_on":  snapshot.FanOn,
				},
			})
		}
		s.lastHeat, s.lastCool, s.lastFan = snapshot.HeatOn, snapshot.CoolOn, snapshot.FanOn
		snapErr = s.stateRepo.Save(ctx, snapshot)
		if snapErr == nil {
			_ = s.pub.PublishState(snapshot)
		}
	}

	if decisionErr != nil {
		return decisionErr
	}
	return snapErr
}

func (s *ControlService) outcomeChanged(snap ct.ThermostatState) bool {
	return snap.HeatOn != s.lastHeat || snap.CoolOn != s.lastCool || snap.FanOn != s.lastFan
}

func outcomeLabel(snap ct.ThermostatState) string {
	switch {
	case snap.HeatOn:
		return "heating"
	case snap.CoolOn:
		return "cooling"
	case snap.FanOn:
		return "fan"
	default:
		return "idle"
	}
}

// snapshotLocked assembles the persisted view from the engine and the
// commanded actuator states.
func (s *ControlService) snapshotLocked(now time.Time) (ct.ThermostatState, error) {
	heat, err := s.thermo.CallingFor(engine.Heat)
	if err != nil {
		return ct.ThermostatState{}, err
	}
	cool, err := s.thermo.CallingFor(engine.Cool)
	if err != nil {
		return ct.ThermostatState{}, err
	}
	fan, err := s.thermo.CallingFor(engine.Fan)
	if err != nil {
		return ct.ThermostatState{}, err
	}
	return ct.ThermostatState{
		ID:           1,
		Mode:         s.thermo.OperatingMode().Token(),
		CurrentTempC: s.thermo.CurrentTemperature(),
		CurrentRH:    s.thermo.CurrentHumidity(),
		MinSafeC:     s.thermo.MinimumSafeTemperature(),
		MaxSafeC:     s.thermo.MaximumSafeTemperature(),
		MinSetC:      s.thermo.MinimumSetTemperature(),
		MaxSetC:      s.thermo.MaximumSetTemperature(),
		HeatOn:       heat,
		CoolOn:       cool,
		FanOn:        fan,
		UpdatedAt:    now,
	}, nil
}

func (s *ControlService) persistLocked(ctx context.Context, now time.Time) error {
	snapshot, err := s.snapshotLocked(now)
	if err != nil {
		return err
	}
	if err := s.stateRepo.Save(ctx, snapshot); err != nil {
		return err
	}
	_ = s.pub.PublishState(snapshot)
	return nil
}

func (s *ControlService) appendLocked(ctx context.Context, e ct.ThermostatEvent) error {
	if e.EventID == "" {
		e.EventID = uuid.NewString()
	}
	if err := s.eventRepo.Append(ctx, e); err != nil {
		return err
	}
	_ = s.pub.PublishEvent(e)
	return nil
}
