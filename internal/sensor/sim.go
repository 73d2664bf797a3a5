package sensor

import (
	"sync"
	"time"
)

// Thermal rates for the simulated space.
const (
	heatRampCPerSec  = 0.05  // °C per second while heat is called
	coolRampCPerSec  = 0.04  // °C per second while cool is called
	driftCPerSec     = 0.005 // °C per second toward ambient otherwise
	defaultAmbientC  = 12.0
	defaultStartRH   = 45.0
	rhDriftPerSecond = 0.001 // slow wander, carried but never controlled
)

// ActuatorStates exposes the commanded outputs that drive the simulated
// space. Satisfied by actuator.Sim.
type ActuatorStates interface {
	States() (heat, cool, fan bool)
}

// Sim integrates a simple thermal model: the air warms while heat is
// commanded, cools while cool is commanded, and otherwise drifts toward the
// ambient temperature. Humidity wanders slowly and affects nothing.
type Sim struct {
	mu       sync.Mutex
	acts     ActuatorStates
	ambientC float64
	tempC    float64
	rh       float64
	last     time.Time
}

// NewSim creates a simulated space starting at the ambient temperature.
func NewSim(acts ActuatorStates, ambientC float64) *Sim {
	if ambientC == 0 {
		ambientC = defaultAmbientC
	}
	return &Sim{
		acts:     acts,
		ambientC: ambientC,
		tempC:    ambientC,
		rh:       defaultStartRH,
		last:     time.Now(),
	}
}

// Read advances the model by the elapsed wall time and returns the sample.
func (s *Sim) Read() (float64, float64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	elapsed := now.Sub(s.last).Seconds()
	s.last = now
	if elapsed <= 0 {
		return s.tempC, s.rh, nil
	}

	heat, cool, _ := s.acts.States()
	switch {
	case heat:
		s.tempC += heatRampCPerSec * elapsed
	case cool:
		s.tempC -= coolRampCPerSec * elapsed
	case s.tempC > s.ambientC:
		s.tempC = maxFloat(s.tempC-driftCPerSec*elapsed, s.ambientC)
	case s.tempC < s.ambientC:
		s.tempC = minFloat(s.tempC+driftCPerSec*elapsed, s.ambientC)
	}

	s.rh += rhDriftPerSecond * elapsed
	if s.rh > 100 {
		s.rh = 100
	}

	return s.tempC, s.rh, nil
}

func maxFloat(a, b float64) float64 {
	if a >= b {
		return a
	}
	return b
}

func minFloat(a, b float64) float64 {
	if a <= b {
		return a
	}
	return b
}
