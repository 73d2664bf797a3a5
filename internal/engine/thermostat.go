package engine

// Default safety bounds in degrees Celsius. Set points default to the safe
// range; the current temperature starts at its midpoint.
const (
	DefaultMinimumSafeTemperature = 15.0
	DefaultMaximumSafeTemperature = 30.0
)

const defaultCurrentTemperature = (DefaultMinimumSafeTemperature + DefaultMaximumSafeTemperature) / 2

// Thermostat is the single-stage control engine. One instance is created per
// controlled system and is exclusively owned by the embedding caller, which
// must serialize calls into it.
type Thermostat struct {
	iface Interface

	mode    OperatingMode
	minSafe float64
	maxSafe float64
	minSet  float64
	maxSet  float64

	currentTemp float64
	currentRH   float64

	heat guard
	cool guard
	fan  guard
}

// New creates a thermostat with default bounds, mode Disabled, and the
// default per-actuator timing policies.
func New(iface Interface) *Thermostat {
	return NewWithTiming(iface, DefaultHeatCoolTiming, DefaultHeatCoolTiming, DefaultFanTiming)
}

// NewWithTiming creates a thermostat with explicit timing policies. Timing is
// not reconfigurable after construction.
func NewWithTiming(iface Interface, heat, cool, fan Timing) *Thermostat {
	return &Thermostat{
		iface:       iface,
		mode:        Disabled,
		minSafe:     DefaultMinimumSafeTemperature,
		maxSafe:     DefaultMaximumSafeTemperature,
		minSet:      DefaultMinimumSafeTemperature,
		maxSet:      DefaultMaximumSafeTemperature,
		currentTemp: defaultCurrentTemperature,
		heat:        guard{actuator: Heat, timing: heat},
		cool:        guard{actuator: Cool, timing: cool},
		fan:         guard{actuator: Fan, timing: fan},
	}
}

// SetCurrentTemperature records a new reading and executes exactly one
// outcome. The reading is stored even if the actuator sequence fails partway.
//
// Precedence: heat when the temperature is under the safe bound (unless mode
// is DisabledUnsafe) or under the set bound (unless mode is CoolToSetPoint);
// else cool on the symmetric high-side breaches (set clause suppressed for
// HeatToSetPoint); else off.
func (t *Thermostat) SetCurrentTemperature(temperature float64) error {
	t.currentTemp = temperature

	switch {
	case (temperature < t.minSafe && t.mode != DisabledUnsafe) ||
		(temperature < t.minSet && t.mode != CoolToSetPoint):
		return t.CallHeat()
	case (temperature > t.maxSafe && t.mode != DisabledUnsafe) ||
		(temperature > t.maxSet && t.mode != HeatToSetPoint):
		return t.CallCool()
	default:
		return t.CallOff()
	}
}

// SetCurrentHumidity records a humidity reading. The control algorithm never
// consults it; it is carried for observers.
func (t *Thermostat) SetCurrentHumidity(rh float64) {
	t.currentRH = rh
}

// CallHeat sequences a heating outcome: the opposing actuator stops first,
// then the fan establishes airflow, then heat is called. The sequence
// short-circuits on the first error, leaving later steps unattempted.
func (t *Thermostat) CallHeat() error {
	if err := t.cool.stop(t.iface); err != nil {
		return err
	}
	if err := t.fan.start(t.iface); err != nil {
		return err
	}
	return t.heat.start(t.iface)
}

// CallCool sequences a cooling outcome: stop heat, start fan, start cool.
func (t *Thermostat) CallCool() error {
	if err := t.heat.stop(t.iface); err != nil {
		return err
	}
	if err := t.fan.start(t.iface); err != nil {
		return err
	}
	return t.cool.start(t.iface)
}

// CallFan runs the fan alone. The threshold logic never selects this outcome
// today; it is kept for circulation-only operation.
func (t *Thermostat) CallFan() error {
	return t.fan.start(t.iface)
}

// CallOff stops everything: cool, then heat, then fan.
func (t *Thermostat) CallOff() error {
	if err := t.cool.stop(t.iface); err != nil {
		return err
	}
	if err := t.heat.stop(t.iface); err != nil {
		return err
	}
	return t.fan.stop(t.iface)
}

// CallingFor reports the commanded state of an actuator.
func (t *Thermostat) CallingFor(a Actuator) (bool, error) {
	return t.iface.CallingFor(a)
}

// SetOperatingMode replaces the operating mode wholesale. The next
// measurement is evaluated under the new mode; no decision runs here.
func (t *Thermostat) SetOperatingMode(mode OperatingMode) error {
	t.mode = mode
	return nil
}

func (t *Thermostat) OperatingMode() OperatingMode { return t.mode }

// SetMinimumSafeTemperature rejects values that would invert the safe range.
func (t *Thermostat) SetMinimumSafeTemperature(temperature float64) error {
	if temperature >= t.maxSafe {
		return &ConfigError{Field: "minimum safe temperature", Value: temperature,
			Reason: "must be below the maximum safe temperature"}
	}
	t.minSafe = temperature
	return nil
}

func (t *Thermostat) MinimumSafeTemperature() float64 { return t.minSafe }

// SetMaximumSafeTemperature rejects values that would invert the safe range.
func (t *Thermostat) SetMaximumSafeTemperature(temperature float64) error {
	if temperature <= t.minSafe {
		return &ConfigError{Field: "maximum safe temperature", Value: temperature,
			Reason: "must be above the minimum safe temperature"}
	}
	t.maxSafe = temperature
	return nil
}

func (t *Thermostat) MaximumSafeTemperature() float64 { return t.maxSafe }

// SetMinimumSetTemperature rejects values outside the safe envelope or above
// the maximum set temperature.
func (t *Thermostat) SetMinimumSetTemperature(temperature float64) error {
	if temperature < t.minSafe || temperature > t.maxSafe {
		return &ConfigError{Field: "minimum set temperature", Value: temperature,
			Reason: "must lie within the safe temperature range"}
	}
	if temperature > t.maxSet {
		return &ConfigError{Field: "minimum set temperature", Value: temperature,
			Reason: "must not exceed the maximum set temperature"}
	}
	t.minSet = temperature
	return nil
}

func (t *Thermostat) MinimumSetTemperature() float64 { return t.minSet }

// SetMaximumSetTemperature rejects values outside the safe envelope or below
// the minimum set temperature.
func (t *Thermostat) SetMaximumSetTemperature(temperature float64) error {
	if temperature < t.minSafe || temperature > t.maxSafe {
		return &ConfigError{Field: "maximum set temperature", Value: temperature,
			Reason: "must lie within the safe temperature range"}
	}
	if temperature < t.minSet {
		return &ConfigError{Field: "maximum set temperature", Value: temperature,
			Reason: "must not fall below the minimum set temperature"}
	}
	t.maxSet = temperature
	return nil
}

func (t *Thermostat) MaximumSetTemperature() float64 { return t.maxSet }

func (t *Thermostat) CurrentTemperature() float64 { return t.currentTemp }

func (t *Thermostat) CurrentHumidity() float64 { return t.currentRH }
