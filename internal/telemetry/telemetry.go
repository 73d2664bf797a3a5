// Package telemetry publishes thermostat state and decision events to an
// MQTT broker. Publishing is best-effort: the control loop never blocks on a
// broker outage.
package telemetry

import (
	ct "controlling_thermostat"
)

// Default topics, relative to the configured prefix.
const (
	StateTopicSuffix  = "/state"
	EventsTopicSuffix = "/events"
)

// Publisher sends snapshots and events to the broker.
type Publisher interface {
	PublishState(state ct.ThermostatState) error
	PublishEvent(event ct.ThermostatEvent) error
	Close() error
}

// Nop discards everything. Used when no broker is configured.
type Nop struct{}

func (Nop) PublishState(ct.ThermostatState) error { return nil }
func (Nop) PublishEvent(ct.ThermostatEvent) error { return nil }
func (Nop) Close() error                          { return nil }
