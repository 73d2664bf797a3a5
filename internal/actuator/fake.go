// Package actuator provides implementations of the engine's physical
// boundary: real relays on the Linux GPIO character device, an in-memory
// simulated set, and a scripted fake for tests.
package actuator

import (
	"fmt"
	"sync"

	"controlling_thermostat/internal/engine"
)

// Fake is a scripted test double for engine.Interface. Tests script the
// clock and failures directly and inspect commanded states and the recorded
// command order.
type Fake struct {
	mu sync.Mutex

	// Now is the scripted monotonic clock, advanced by the test.
	Now uint64

	// Commanded holds the current commanded state per actuator.
	Commanded map[engine.Actuator]bool

	// Commands records every successful command in order, e.g. "call heat".
	Commands []string

	// ReadErr, WriteErr and ClockErr, if set, fail the corresponding
	// operations.
	ReadErr  error
	WriteErr error
	ClockErr error
}

// NewFake creates a fake with everything off and the clock at zero.
func NewFake() *Fake {
	return &Fake{Commanded: map[engine.Actuator]bool{}}
}

func (f *Fake) CallingFor(a engine.Actuator) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.ReadErr != nil {
		return false, f.ReadErr
	}
	return f.Commanded[a], nil
}

func (f *Fake) CallFor(a engine.Actuator) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.WriteErr != nil {
		return f.WriteErr
	}
	f.Commanded[a] = true
	f.Commands = append(f.Commands, fmt.Sprintf("call %s", a))
	return nil
}

func (f *Fake) StopCallFor(a engine.Actuator) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.WriteErr != nil {
		return f.WriteErr
	}
	f.Commanded[a] = false
	f.Commands = append(f.Commands, fmt.Sprintf("stop %s", a))
	return nil
}

func (f *Fake) Seconds() (uint64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.ClockErr != nil {
		return 0, f.ClockErr
	}
	return f.Now, nil
}

// Advance moves the scripted clock forward.
func (f *Fake) Advance(seconds uint64) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Now += seconds
}
