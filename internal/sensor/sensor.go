// Package sensor provides temperature/humidity measurement sources for the
// driver loop: a simulated environment and a scripted fake for tests.
package sensor

// Sensor reads one temperature (°C) and relative humidity (percent) sample
// per call. Implementations should wrap failures so callers can classify
// them with engine.ErrMeasurementFailed.
type Sensor interface {
	Read() (tempC, rh float64, err error)
}
