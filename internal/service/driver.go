package service

import (
	"context"
	"errors"
	"time"

	"controlling_thermostat/internal/engine"
	"controlling_thermostat/internal/logger"
	"controlling_thermostat/internal/sensor"
)

// DriverService is the periodic tick loop: read one sample, feed one
// decision. The engine never schedules or retries on its own, so soft
// constraint refusals are simply retried on the next tick.
type DriverService struct {
	control Control
	sensor  sensor.Sensor
	log     *logger.Logger
}

func NewDriverService(control Control, src sensor.Sensor, log *logger.Logger) *DriverService {
	return &DriverService{control: control, sensor: src, log: log}
}

// Run ticks at the given interval until ctx is canceled.
func (d *DriverService) Run(ctx context.Context, tick time.Duration) {
	t := time.NewTicker(tick)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			d.tick(ctx)
		}
	}
}

func (d *DriverService) tick(ctx context.Context) {
	tempC, rh, err := d.sensor.Read()
	if err != nil {
		if d.log != nil {
			d.log.Warnw("measurement_failed", "err", errors.Join(engine.ErrMeasurementFailed, err))
		}
		return
	}

	err = d.control.FeedMeasurement(ctx, tempC, &rh)
	switch {
	case err == nil:
	case engine.IsConstraint(err):
		// Soft refusal: the same outcome will be requested again next tick.
		if d.log != nil {
			d.log.Debugw("decision_deferred", "err", err, "temp_c", tempC)
		}
	default:
		if d.log != nil {
			d.log.Errorw("decision_failed", "err", err, "temp_c", tempC)
		}
	}
}
