package service

import (
	"context"
	"time"

	"countdown_timer/internal/clock"
	"countdown_timer/internal/config"
	"countdown_timer/internal/logger"
	"countdown_timer/internal/models"
	"countdown_timer/internal/repository"
)

type Authorization interface {
	SignUp(username, password string) (int, error)
	GenerateToken(username, password string) (string, error)
	ParseToken(accessToken string) (int, error)
}

// Timer exposes the operations of the hosted timer engine.
type Timer interface {
	Start(ctx context.Context, fastForward time.Duration) error
	Stop(ctx context.Context) error
	Reset(ctx context.Context, preventCallback bool) error
	ResetAndStart(ctx context.Context, fastForward time.Duration) error
	Set(ctx context.Context, p SetParams) error
	ApplyPreset(ctx context.Context, name string) error
	Presets() Presets
	// Close stops the engine and cancels pending actions for good.
	Close()
}

// Monitoring exposes a read-only view of the timer and its display.
type Monitoring interface {
	GetState(ctx context.Context) (models.TimerState, error)
}

// EventLog exposes the audit log with filtering.
type EventLog interface {
	List(ctx context.Context, f LogFilter) ([]models.TimerEvent, error)
}

type Service struct {
	Timer
	Monitoring
	EventLog
	Authorization
}

// Deps are the collaborators NewService wires together.
type Deps struct {
	Repos   *repository.Repository
	Config  *config.Config
	Presets Presets
	Clock   clock.Clock
	Log     *logger.Logger
}

func NewService(d Deps) *Service {
	if d.Clock == nil {
		d.Clock = clock.Real()
	}
	if d.Log == nil {
		d.Log = logger.Nop()
	}
	t := NewTimerService(d.Config.Timer, d.Presets, d.Repos.EventRepo, d.Clock, d.Log)
	return &Service{
		Timer:         t,
		Monitoring:    NewMonitoringService(t),
		EventLog:      NewEventLogService(d.Repos.EventRepo),
		Authorization: NewAuthService(d.Repos.Auth, d.Config.Auth),
	}
}
