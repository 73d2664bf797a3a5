package actuator

import (
	"sync"
	"time"

	"controlling_thermostat/internal/engine"
)

// Sim is an in-memory actuator set for running the controller without
// hardware. Commanded states are held in memory and exposed to the
// environment simulator; the clock is real monotonic time since creation.
type Sim struct {
	mu    sync.Mutex
	start time.Time
	on    map[engine.Actuator]bool
}

func NewSim() *Sim {
	return &Sim{start: time.Now(), on: map[engine.Actuator]bool{}}
}

func (s *Sim) CallingFor(a engine.Actuator) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.on[a], nil
}

func (s *Sim) CallFor(a engine.Actuator) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.on[a] = true
	return nil
}

func (s *Sim) StopCallFor(a engine.Actuator) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.on[a] = false
	return nil
}

func (s *Sim) Seconds() (uint64, error) {
	return uint64(time.Since(s.start) / time.Second), nil
}

// States returns the commanded heat/cool/fan states for the environment
// simulation.
func (s *Sim) States() (heat, cool, fan bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.on[engine.Heat], s.on[engine.Cool], s.on[engine.Fan]
}
