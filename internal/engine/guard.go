package engine

// Timing is the per-actuator transition policy, fixed at construction.
// MaxRunSeconds is carried for a future forced-shutoff check; the guard does
// not enforce it.
type Timing struct {
	MinRunSeconds uint64
	MaxRunSeconds uint64
	MinOffSeconds uint64
}

// Default policies: compressors and heat exchangers get the conservative
// anti-short-cycle numbers, the fan is allowed to cycle faster and run much
// longer.
var (
	DefaultHeatCoolTiming = Timing{MinRunSeconds: 600, MaxRunSeconds: 3600, MinOffSeconds: 300}
	DefaultFanTiming      = Timing{MinRunSeconds: 300, MaxRunSeconds: 43200, MinOffSeconds: 300}
)

// guard gates one actuator's transitions by commanded state and elapsed
// time. lastStart/lastStop are absent until the first recorded transition;
// absent compares as time zero, so the very first start or stop after
// construction is always permitted.
type guard struct {
	actuator Actuator
	timing   Timing

	lastStart uint64
	hasStart  bool
	lastStop  uint64
	hasStop   bool
}

// start commands the actuator on, unless it already is (idempotent) or its
// minimum off time has not elapsed. Hardware errors propagate without
// touching the bookkeeping.
func (g *guard) start(iface Interface) error {
	on, err := iface.CallingFor(g.actuator)
	if err != nil {
		return err
	}
	if on {
		return nil
	}
	now, err := iface.Seconds()
	if err != nil {
		return err
	}
	var stoppedAt uint64
	if g.hasStop {
		stoppedAt = g.lastStop
	}
	if now-stoppedAt < g.timing.MinOffSeconds {
		return &ConstraintError{Actuator: g.actuator, Kind: MinOffTime}
	}
	if err := iface.CallFor(g.actuator); err != nil {
		return err
	}
	g.lastStart = now
	g.hasStart = true
	return nil
}

// stop commands the actuator off, unless it already is or its minimum run
// time has not elapsed.
func (g *guard) stop(iface Interface) error {
	on, err := iface.CallingFor(g.actuator)
	if err != nil {
		return err
	}
	if !on {
		return nil
	}
	now, err := iface.Seconds()
	if err != nil {
		return err
	}
	var startedAt uint64
	if g.hasStart {
		startedAt = g.lastStart
	}
	if now-startedAt < g.timing.MinRunSeconds {
		return &ConstraintError{Actuator: g.actuator, Kind: MinRunTime}
	}
	if err := iface.StopCallFor(g.actuator); err != nil {
		return err
	}
	g.lastStop = now
	g.hasStop = true
	return nil
}
