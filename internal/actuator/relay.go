//go:build linux

package actuator

import (
	"fmt"
	"time"

	"github.com/warthog618/go-gpiocdev"

	"controlling_thermostat/internal/engine"
)

// RelayPins maps actuators to GPIO line offsets (BCM numbering on a
// Raspberry Pi). Lines are driven active-high into the relay board.
type RelayPins struct {
	Heat int
	Cool int
	Fan  int
}

// Relay drives three relay outputs through the Linux GPIO character device.
// The monotonic clock is seconds since the Relay was opened.
type Relay struct {
	chip  *gpiocdev.Chip
	lines map[engine.Actuator]*gpiocdev.Line
	start time.Time
}

// NewRelay opens the chip and requests the three lines as outputs, initially
// low (everything off).
func NewRelay(chipName string, pins RelayPins) (*Relay, error) {
	chip, err := gpiocdev.NewChip(chipName)
	if err != nil {
		return nil, fmt.Errorf("open gpio chip %q: %w", chipName, err)
	}

	r := &Relay{
		chip:  chip,
		lines: map[engine.Actuator]*gpiocdev.Line{},
		start: time.Now(),
	}
	for a, pin := range map[engine.Actuator]int{
		engine.Heat: pins.Heat,
		engine.Cool: pins.Cool,
		engine.Fan:  pins.Fan,
	} {
		line, err := chip.RequestLine(pin, gpiocdev.AsOutput(0))
		if err != nil {
			_ = r.Close()
			return nil, fmt.Errorf("request %s pin %d: %w", a, pin, err)
		}
		r.lines[a] = line
	}
	return r, nil
}

func (r *Relay) CallingFor(a engine.Actuator) (bool, error) {
	v, err := r.lines[a].Value()
	if err != nil {
		return false, fmt.Errorf("%w: read %s line: %v", engine.ErrHandlerFailed, a, err)
	}
	return v == 1, nil
}

func (r *Relay) CallFor(a engine.Actuator) error {
	if err := r.lines[a].SetValue(1); err != nil {
		return fmt.Errorf("%w: drive %s line high: %v", engine.ErrHandlerFailed, a, err)
	}
	return nil
}

func (r *Relay) StopCallFor(a engine.Actuator) error {
	if err := r.lines[a].SetValue(0); err != nil {
		return fmt.Errorf("%w: drive %s line low: %v", engine.ErrHandlerFailed, a, err)
	}
	return nil
}

func (r *Relay) Seconds() (uint64, error) {
	return uint64(time.Since(r.start) / time.Second), nil
}

// Close drives every line low and releases the chip so relays drop out on
// shutdown.
func (r *Relay) Close() error {
	var firstErr error
	for a, line := range r.lines {
		if err := line.SetValue(0); err != nil && firstErr == nil {
			firstErr = fmt.Errorf("release %s line: %w", a, err)
		}
		if err := line.Close(); err != nil && firstErr == nil {
			firstErr = fmt.Errorf("close %s line: %w", a, err)
		}
	}
	if r.chip != nil {
		if err := r.chip.Close(); err != nil && firstErr == nil {
			firstErr = fmt.Errorf("close chip: %w", err)
		}
	}
	return firstErr
}
