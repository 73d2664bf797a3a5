// Package engine implements the decision-and-timing core of a single-stage
// HVAC thermostat: threshold evaluation against the operating mode, ordered
// stop-before-start sequencing across the heat/cool/fan actuators, and a
// per-actuator run-time/off-time guard that protects compressors and heaters
// from short-cycling.
//
// The engine owns no goroutines, no locks and no clock of its own. It makes
// one decision per SetCurrentTemperature call and issues commands through the
// injected Interface; scheduling (the tick loop) and serialization of access
// belong to the embedding caller.
package engine

// Actuator identifies one of the three controlled outputs.
type Actuator uint8

const (
	Heat Actuator = iota
	Cool
	Fan
)

func (a Actuator) String() string {
	switch a {
	case Heat:
		return "heat"
	case Cool:
		return "cool"
	case Fan:
		return "fan"
	default:
		return "unknown"
	}
}

// Interface is the physical boundary of the engine. Implementations toggle
// relays (or a simulation) and expose a monotonic clock.
//
// CallingFor reports the currently commanded state and fails only on a
// hardware read failure. CallFor/StopCallFor fail on a hardware write
// failure. Seconds returns seconds elapsed since an arbitrary fixed epoch
// and must be non-decreasing for the lifetime of the process.
type Interface interface {
	CallingFor(a Actuator) (bool, error)
	CallFor(a Actuator) error
	StopCallFor(a Actuator) error
	Seconds() (uint64, error)
}
