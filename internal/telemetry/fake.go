package telemetry

import (
	"sync"

	ct "controlling_thermostat"
)

// Fake records published messages for tests.
type Fake struct {
	mu     sync.Mutex
	States []ct.ThermostatState
	Events []ct.ThermostatEvent
	Err    error
	Closed bool
}

func NewFake() *Fake { return &Fake{} }

func (f *Fake) PublishState(state ct.ThermostatState) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.Err != nil {
		return f.Err
	}
	f.States = append(f.States, state)
	return nil
}

func (f *Fake) PublishEvent(event ct.ThermostatEvent) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.Err != nil {
		return f.Err
	}
	f.Events = append(f.Events, event)
	return nil
}

func (f *Fake) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Closed = true
	return nil
}
