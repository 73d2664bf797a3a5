package service

import (
	"context"
	"time"

	ct "controlling_thermostat"
	"controlling_thermostat/internal/engine"
	"controlling_thermostat/internal/logger"
	"controlling_thermostat/internal/repository"
	"controlling_thermostat/internal/sensor"
	"controlling_thermostat/internal/telemetry"
)

// LimitParams carries optional bound updates; nil fields are untouched.
type LimitParams struct {
	MinSafeC *float64
	MaxSafeC *float64
	MinSetC  *float64
	MaxSetC  *float64
}

// LogFilter supports history filtering by time range and type.
type LogFilter struct {
	From time.Time // inclusive; zero means no lower bound
	To   time.Time // inclusive; zero means no upper bound
	Type string    // "", "DECISION", "DEFERRED", "MODE_CHANGE", "LIMIT_CHANGE", "ERROR"
}

type Authorization interface {
	SignUp(username, password string) (int, error)
	GenerateToken(username, password string) (string, error)
	ParseToken(accessToken string) (int, error)
}

// Control is the serialized facade over the decision engine: measurements in,
// configuration changes in, guarded actuator transitions out.
type Control interface {
	SetMode(ctx context.Context, mode engine.OperatingMode) error
	SetLimits(ctx context.Context, p LimitParams) error
	FeedMeasurement(ctx context.Context, tempC float64, rh *float64) error
}

// Monitoring exposes read-only state.
type Monitoring interface {
	GetState(ctx context.Context) (ct.ThermostatState, error)
}

// EventLog exposes the append-only history with filtering.
type EventLog interface {
	List(ctx context.Context, f LogFilter) ([]ct.ThermostatEvent, error)
}

// Driver runs the periodic tick loop that feeds sensor readings into the
// engine. Stop via context cancellation in main() for graceful shutdown.
type Driver interface {
	Run(ctx context.Context, tick time.Duration)
}

// Service aggregates all sub-services.
type Service struct {
	Control
	Monitoring
	EventLog
	Driver
	Authorization
}

// Deps wires the service layer together.
type Deps struct {
	Repos      *repository.Repository
	Thermostat *engine.Thermostat
	Sensor     sensor.Sensor
	Telemetry  telemetry.Publisher // nil means no telemetry
	Log        *logger.Logger
}

func NewService(d Deps) *Service {
	pub := d.Telemetry
	if pub == nil {
		pub = telemetry.Nop{}
	}
	control := NewControlService(d.Thermostat, d.Repos.StateRepo, d.Repos.EventRepo, pub)
	return &Service{
		Control:       control,
		Monitoring:    NewMonitoringService(d.Repos.StateRepo),
		EventLog:      NewEventLogService(d.Repos.EventRepo),
		Driver:        NewDriverService(control, d.Sensor, d.Log),
		Authorization: NewAuthService(d.Repos.Auth),
	}
}
