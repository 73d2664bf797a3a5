package sensor

import (
	"testing"
	"time"
)

type scriptedStates struct {
	heat, cool, fan bool
}

func (s *scriptedStates) States() (bool, bool, bool) {
	return s.heat, s.cool, s.fan
}

// backdate pretends the last sample was taken `d` ago.
func backdate(s *Sim, d time.Duration) {
	s.mu.Lock()
	s.last = time.Now().Add(-d)
	s.mu.Unlock()
}

func TestSim_HeatRampsUp(t *testing.T) {
	acts := &scriptedStates{heat: true}
	sim := NewSim(acts, 12.0)
	backdate(sim, 100*time.Second)

	temp, _, err := sim.Read()
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if temp <= 12.0 {
		t.Fatalf("temperature did not rise while heating: %.2f", temp)
	}
}

func TestSim_CoolRampsDown(t *testing.T) {
	acts := &scriptedStates{cool: true}
	sim := NewSim(acts, 20.0)
	backdate(sim, 100*time.Second)

	temp, _, err := sim.Read()
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if temp >= 20.0 {
		t.Fatalf("temperature did not fall while cooling: %.2f", temp)
	}
}

func TestSim_DriftsTowardAmbientAndClamps(t *testing.T) {
	acts := &scriptedStates{}
	sim := NewSim(acts, 15.0)
	sim.tempC = 15.3
	backdate(sim, time.Hour)

	temp, _, err := sim.Read()
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if temp != 15.0 {
		t.Fatalf("drift should clamp at ambient, got %.3f", temp)
	}
}

func TestFake_ReturnsSamplesThenRepeatsLast(t *testing.T) {
	f := NewFake(Sample{TempC: 10, RH: 40}, Sample{TempC: 11, RH: 41})

	for _, want := range []float64{10, 11, 11} {
		temp, _, err := f.Read()
		if err != nil {
			t.Fatalf("read: %v", err)
		}
		if temp != want {
			t.Fatalf("temp = %.1f, want %.1f", temp, want)
		}
	}
}
