package repository_test

import (
	"context"
	"database/sql/driver"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	ct "controlling_thermostat"
	"controlling_thermostat/internal/repository"
)

// argFunc adapts a predicate into a sqlmock argument matcher.
type argFunc func(driver.Value) bool

func (f argFunc) Match(v driver.Value) bool { return f(v) }

// recentUTC matches a time.Time in UTC within a few seconds of now.
func recentUTC() argFunc {
	return func(v driver.Value) bool {
		tm, ok := v.(time.Time)
		if !ok || tm.Location() != time.UTC {
			return false
		}
		now := time.Now().UTC()
		return !tm.Before(now.Add(-5*time.Second)) && !tm.After(now.Add(5*time.Second))
	}
}

func TestStateSQLite_Save_FillsUTCTimestampWhenZero(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New(): %v", err)
	}
	defer db.Close()

	repo := repository.NewStateSQLite(db)

	state := ct.ThermostatState{
		Mode:         "maintain_range",
		CurrentTempC: 19.5,
		CurrentRH:    48.0,
		MinSafeC:     15, MaxSafeC: 30,
		MinSetC: 18, MaxSetC: 22,
		HeatOn: true, FanOn: true,
		// UpdatedAt left zero on purpose
	}

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO thermostat_state")).
		WithArgs(
			1,
			"maintain_range",
			19.5,
			48.0,
			15.0, 30.0, 18.0, 22.0,
			true, false, true,
			recentUTC(),
		).
		WillReturnResult(sqlmock.NewResult(1, 1))

	if err := repo.Save(context.Background(), state); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestStateSQLite_Save_NormalizesProvidedTimeToUTC(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New(): %v", err)
	}
	defer db.Close()

	repo := repository.NewStateSQLite(db)

	loc := time.FixedZone("UTC+5", 5*3600)
	provided := time.Date(2026, 3, 1, 12, 0, 0, 0, loc)

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO thermostat_state")).
		WithArgs(
			1, "disabled", 22.5, 0.0,
			15.0, 30.0, 15.0, 30.0,
			false, false, false,
			argFunc(func(v driver.Value) bool {
				tm, ok := v.(time.Time)
				return ok && tm.Location() == time.UTC && tm.Equal(provided)
			}),
		).
		WillReturnResult(sqlmock.NewResult(1, 1))

	err = repo.Save(context.Background(), ct.ThermostatState{
		Mode:         "disabled",
		CurrentTempC: 22.5,
		MinSafeC:     15, MaxSafeC: 30, MinSetC: 15, MaxSetC: 30,
		UpdatedAt: provided,
	})
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestStateSQLite_Load_ReturnsZeroStateWhenMissing(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New(): %v", err)
	}
	defer db.Close()

	repo := repository.NewStateSQLite(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, mode, temp_c")).
		WithArgs(1).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "mode", "temp_c", "rh", "min_safe_c", "max_safe_c",
			"min_set_c", "max_set_c", "heat_on", "cool_on", "fan_on", "updated_at",
		}))

	st, err := repo.Load(context.Background())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if st.ID != 0 {
		t.Fatalf("expected zero state, got %+v", st)
	}
}

func TestStateSQLite_Load_RoundTripsRow(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New(): %v", err)
	}
	defer db.Close()

	repo := repository.NewStateSQLite(db)

	updated := time.Date(2026, 2, 10, 9, 30, 0, 0, time.UTC)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, mode, temp_c")).
		WithArgs(1).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "mode", "temp_c", "rh", "min_safe_c", "max_safe_c",
			"min_set_c", "max_set_c", "heat_on", "cool_on", "fan_on", "updated_at",
		}).AddRow(1, "cool_to_set_point", 24.5, 51.0, 15.0, 30.0, 18.0, 22.0, false, true, true, updated))

	st, err := repo.Load(context.Background())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if st.Mode != "cool_to_set_point" || !st.CoolOn || !st.FanOn || st.HeatOn {
		t.Fatalf("unexpected state: %+v", st)
	}
	if !st.UpdatedAt.Equal(updated) {
		t.Fatalf("timestamp mismatch: %v", st.UpdatedAt)
	}
}

func TestStateSQLite_Load_PropagatesQueryError(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New(): %v", err)
	}
	defer db.Close()

	repo := repository.NewStateSQLite(db)

	dbErr := errors.New("disk I/O error")
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, mode, temp_c")).
		WithArgs(1).
		WillReturnError(dbErr)

	if _, err := repo.Load(context.Background()); !errors.Is(err, dbErr) {
		t.Fatalf("expected %v, got %v", dbErr, err)
	}
}
