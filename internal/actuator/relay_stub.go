//go:build !linux

package actuator

import (
	"errors"

	"controlling_thermostat/internal/engine"
)

// RelayPins maps actuators to GPIO line offsets. Unused off Linux.
type RelayPins struct {
	Heat int
	Cool int
	Fan  int
}

// Relay is not available on non-Linux platforms.
type Relay struct{}

var errNoGPIO = errors.New("actuator: gpio relays require linux")

func NewRelay(chipName string, pins RelayPins) (*Relay, error) {
	return nil, errNoGPIO
}

func (r *Relay) CallingFor(a engine.Actuator) (bool, error) { return false, errNoGPIO }
func (r *Relay) CallFor(a engine.Actuator) error            { return errNoGPIO }
func (r *Relay) StopCallFor(a engine.Actuator) error        { return errNoGPIO }
func (r *Relay) Seconds() (uint64, error)                   { return 0, errNoGPIO }
func (r *Relay) Close() error                               { return nil }
