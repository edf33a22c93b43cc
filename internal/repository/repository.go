package repository

import (
	"context"
	"database/sql"
	"time"

	"countdown_timer/internal/models"
)

// Authorization stores operator credentials.
type Authorization interface {
	Create(username, hash string) (int, error)
	GetByUsername(username string) (*models.Operator, error)
}

// EventRepo is the append-only audit log of timer lifecycle events.
type EventRepo interface {
	Append(ctx context.Context, e models.TimerEvent) error
	List(ctx context.Context, from, to time.Time, typ string) ([]models.TimerEvent, error)
}

type Repository struct {
	EventRepo EventRepo
	Auth      Authorization
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{
		EventRepo: NewEventSQLite(db),
		Auth:      NewOperatorRepository(db),
	}
}
