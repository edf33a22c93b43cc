package service

import (
	"context"
	"time"

	"countdown_timer/internal/models"
	"countdown_timer/internal/timefmt"
	"countdown_timer/internal/timer"
)

// snapshotter is the read side of TimerService.
type snapshotter interface {
	Snapshot() (timer.Info, timefmt.Parts)
}

type MonitoringService struct {
	source snapshotter
}

func NewMonitoringService(source snapshotter) *MonitoringService {
	return &MonitoringService{source: source}
}

// GetState returns the live timer state with durations in milliseconds.
func (s *MonitoringService) GetState(ctx context.Context) (models.TimerState, error) {
	if err := ctx.Err(); err != nil {
		return models.TimerState{}, err
	}
	info, frame := s.source.Snapshot()
	return toTimerState(info, frame), nil
}

func toTimerState(info timer.Info, frame timefmt.Parts) models.TimerState {
	return models.TimerState{
		Running:       info.Running,
		TimeMs:        info.Time.Milliseconds(),
		StartAtMs:     info.StartAt.Milliseconds(),
		CountDown:     info.CountDown,
		Decreasing:    info.Decreasing,
		LastEventTime: toUTC(info.LastEventTime),
		Display: models.Display{
			Sign:    frame.Sign,
			Hours:   frame.Hours,
			Minutes: frame.Minutes,
			Seconds: frame.Seconds,
			Text:    frame.String(),
		},
	}
}

// toUTC normalizes non-zero time to UTC, preserving zero values.
func toUTC(t time.Time) time.Time {
	if t.IsZero() {
		return t
	}
	return t.UTC()
}
