package engine

import "fmt"

// OperatingMode selects which threshold clauses apply when a new temperature
// arrives.
type OperatingMode uint8

const (
	// MaintainRange keeps the temperature between the min and max set points.
	MaintainRange OperatingMode = iota
	// CoolToSetPoint keeps the temperature below the max set point and never
	// heats on a low set-point breach.
	CoolToSetPoint
	// HeatToSetPoint keeps the temperature above the min set point and never
	// cools on a high set-point breach.
	HeatToSetPoint
	// Disabled suppresses no clauses: both the safe bounds and the set
	// points keep driving decisions on every reading.
	Disabled
	// DisabledUnsafe suppresses only the safe-bound clauses; the set-point
	// clauses still apply.
	DisabledUnsafe
)

func (m OperatingMode) String() string {
	switch m {
	case MaintainRange:
		return "Maintain Range"
	case CoolToSetPoint:
		return "Cool to Set Point"
	case HeatToSetPoint:
		return "Heat to Set Point"
	case Disabled:
		return "Disabled"
	case DisabledUnsafe:
		return "Disabled (Unsafe)"
	default:
		return "Unknown"
	}
}

// modeTokens are the wire names used in JSON payloads and config files.
var modeTokens = map[OperatingMode]string{
	MaintainRange:  "maintain_range",
	CoolToSetPoint: "cool_to_set_point",
	HeatToSetPoint: "heat_to_set_point",
	Disabled:       "disabled",
	DisabledUnsafe: "disabled_unsafe",
}

// Token returns the wire name of the mode.
func (m OperatingMode) Token() string {
	if t, ok := modeTokens[m]; ok {
		return t
	}
	return "unknown"
}

// ParseOperatingMode maps a wire name back to its mode.
func ParseOperatingMode(s string) (OperatingMode, error) {
	for m, t := range modeTokens {
		if t == s {
			return m, nil
		}
	}
	return Disabled, fmt.Errorf("unknown operating mode %q", s)
}

func (m OperatingMode) MarshalText() ([]byte, error) {
	return []byte(m.Token()), nil
}

func (m *OperatingMode) UnmarshalText(text []byte) error {
	parsed, err := ParseOperatingMode(string(text))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}
