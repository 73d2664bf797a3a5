package controlling_thermostat

import "time"

// ThermostatState is the persisted snapshot of the controller.
type ThermostatState struct {
	ID           int       `json:"id"`
	Mode         string    `json:"mode"`                     // maintain_range | cool_to_set_point | heat_to_set_point | disabled | disabled_unsafe
	CurrentTempC float64   `json:"current_temp_c"`           // °C
	CurrentRH    float64   `json:"current_rh,omitempty"`     // percent relative humidity, carried only
	MinSafeC     float64   `json:"min_safe_c"`               // hardware protection bound
	MaxSafeC     float64   `json:"max_safe_c"`               // hardware protection bound
	MinSetC      float64   `json:"min_set_c"`                // comfort bound
	MaxSetC      float64   `json:"max_set_c"`                // comfort bound
	HeatOn       bool      `json:"heat_on"`
	CoolOn       bool      `json:"cool_on"`
	FanOn        bool      `json:"fan_on"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// ThermostatEvent is a single log entry.
type ThermostatEvent struct {
	EventID     string    `json:"event_id"`
	OccurredAt  time.Time `json:"occurred_at"`
	Type        string    `json:"type"`        // DECISION | DEFERRED | MODE_CHANGE | LIMIT_CHANGE | ERROR
	Description string    `json:"description"` // human-readable
	Metadata    any       `json:"metadata,omitempty"`
}

type User struct {
	ID           int    `json:"id"`
	Username     string `json:"username"`
	PasswordHash string `json:"-"` // never expose the hash
}
