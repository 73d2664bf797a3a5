package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	ct "controlling_thermostat"
)

type StateSQLite struct {
	db *sql.DB
}

func NewStateSQLite(db *sql.DB) *StateSQLite {
	return &StateSQLite{db: db}
}

// The snapshot is a single row with a fixed id.
const (
	thermostatStateRowID = 1

	upsertStateSQL = `
		INSERT INTO thermostat_state (id, mode, temp_c, rh, min_safe_c, max_safe_c, min_set_c, max_set_c, heat_on, cool_on, fan_on, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			mode=excluded.mode,
			temp_c=excluded.temp_c,
			rh=excluded.rh,
			min_safe_c=excluded.min_safe_c,
			max_safe_c=excluded.max_safe_c,
			min_set_c=excluded.min_set_c,
			max_set_c=excluded.max_set_c,
			heat_on=excluded.heat_on,
			cool_on=excluded.cool_on,
			fan_on=excluded.fan_on,
			updated_at=excluded.updated_at
	`

	selectStateSQL = `
		SELECT id, mode, temp_c, rh, min_safe_c, max_safe_c, min_set_c, max_set_c, heat_on, cool_on, fan_on, updated_at
		FROM thermostat_state WHERE id=?
	`
)

// Save upserts the thermostat_state row (id always 1). UpdatedAt is
// persisted as UTC; zero values are replaced with now.
func (r *StateSQLite) Save(ctx context.Context, state ct.ThermostatState) error {
	ts := state.UpdatedAt
	if ts.IsZero() {
		ts = time.Now().UTC()
	} else {
		ts = ts.UTC()
	}

	_, err := r.db.ExecContext(ctx, upsertStateSQL,
		thermostatStateRowID,
		state.Mode,
		state.CurrentTempC,
		state.CurrentRH,
		state.MinSafeC,
		state.MaxSafeC,
		state.MinSetC,
		state.MaxSetC,
		state.HeatOn,
		state.CoolOn,
		state.FanOn,
		ts,
	)
	return err
}

// Load fetches the snapshot row. A missing row returns a zero state with no
// error.
func (r *StateSQLite) Load(ctx context.Context) (ct.ThermostatState, error) {
	row := r.db.QueryRowContext(ctx, selectStateSQL, thermostatStateRowID)

	var s ct.ThermostatState
	if err := row.Scan(
		&s.ID,
		&s.Mode,
		&s.CurrentTempC,
		&s.CurrentRH,
		&s.MinSafeC,
		&s.MaxSafeC,
		&s.MinSetC,
		&s.MaxSetC,
		&s.HeatOn,
		&s.CoolOn,
		&s.FanOn,
		&s.UpdatedAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ct.ThermostatState{}, nil
		}
		return ct.ThermostatState{}, err
	}

	s.UpdatedAt = s.UpdatedAt.UTC()
	return s, nil
}
