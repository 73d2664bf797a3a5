package repository

import (
	"context"
	"database/sql"
	"time"

	ct "controlling_thermostat"
)

type Authorization interface {
	Create(username, hash string) (int, error)
	GetByUsername(username string) (*ct.User, error)
}

type StateRepo interface {
	Save(ctx context.Context, s ct.ThermostatState) error
	Load(ctx context.Context) (ct.ThermostatState, error)
}

type EventRepo interface {
	Append(ctx context.Context, e ct.ThermostatEvent) error
	List(ctx context.Context, from, to time.Time, typ string) ([]ct.ThermostatEvent, error)
}

type Repository struct {
	StateRepo StateRepo
	EventRepo EventRepo
	Auth      Authorization
}

func NewRepository(conn *sql.DB) *Repository {
	return &Repository{
		StateRepo: NewStateSQLite(conn),
		EventRepo: NewEventSQLite(conn),
		Auth:      NewUserRepository(conn),
	}
}
