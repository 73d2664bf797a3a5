package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"controlling_thermostat/internal/engine"
	"controlling_thermostat/internal/sensor"
)

type recordingControl struct {
	mu    sync.Mutex
	err   error
	temps []float64
	rhs   []float64
}

func (r *recordingControl) SetMode(ctx context.Context, mode engine.OperatingMode) error {
	return nil
}

func (r *recordingControl) SetLimits(ctx context.Context, p LimitParams) error {
	return nil
}

func (r *recordingControl) FeedMeasurement(ctx context.Context, tempC float64, rh *float64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.temps = append(r.temps, tempC)
	if rh != nil {
		r.rhs = append(r.rhs, *rh)
	}
	return r.err
}

func (r *recordingControl) fed() []float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]float64, len(r.temps))
	copy(out, r.temps)
	return out
}

func TestDriver_RunFeedsSensorSamples(t *testing.T) {
	src := sensor.NewFake(
		sensor.Sample{TempC: 18.5, RH: 40},
		sensor.Sample{TempC: 19.0, RH: 41},
	)
	ctl := newControlOnly(t)
	d := NewDriverService(ctl, src, nil)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		d.Run(ctx, 5*time.Millisecond)
		close(done)
	}()

	deadline := time.After(2 * time.Second)
	for {
		if len(ctl.fed()) >= 2 {
			break
		}
		select {
		case <-deadline:
			t.Fatal("driver never fed two samples")
		case <-time.After(5 * time.Millisecond):
		}
	}
	cancel()
	<-done

	temps := ctl.fed()
	if temps[0] != 18.5 || temps[1] != 19.0 {
		t.Fatalf("fed temps = %v", temps[:2])
	}
}

// newControlOnly adapts recordingControl to the Control interface without
// dragging a full engine fixture into loop tests.
func newControlOnly(t *testing.T) *recordingControl {
	t.Helper()
	return &recordingControl{}
}

func TestDriver_TickSkipsOnSensorError(t *testing.T) {
	src := sensor.NewFake()
	ctl := newControlOnly(t)
	d := NewDriverService(ctl, src, nil)

	// Fake with no scripted samples returns a read error.
	d.tick(context.Background())
	if len(ctl.fed()) != 0 {
		t.Fatalf("tick must not feed after a failed read, fed %v", ctl.fed())
	}
}
