package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"countdown_timer/internal/clock"
	"countdown_timer/internal/config"
	"countdown_timer/internal/logger"
	"countdown_timer/internal/models"
	"countdown_timer/internal/repository"
	"countdown_timer/internal/timefmt"
	"countdown_timer/internal/timer"
)

const auditTimeout = 3 * time.Second

var ErrTimerClosed = errors.New("timer closed")

// TimerService hosts one engine, records its lifecycle callbacks in the
// audit log and keeps the last rendered frame for readers.
type TimerService struct {
	engine    *timer.Engine
	eventRepo repository.EventRepo
	presets   Presets
	clock     clock.Clock
	log       *logger.Logger

	mu      sync.RWMutex
	display timefmt.Parts
	closed  bool
}

func NewTimerService(cfg config.TimerConfig, presets Presets, eventRepo repository.EventRepo,
	clk clock.Clock, log *logger.Logger) *TimerService {
	if presets == nil {
		presets = Presets{}
	}
	s := &TimerService{
		eventRepo: eventRepo,
		presets:   presets,
		clock:     clk,
		log:       log.Named("timer"),
	}
	s.engine = timer.New(timer.Config{
		StartAt:        cfg.StartAt,
		CountDown:      cfg.CountDown,
		UpdateInterval: cfg.UpdateInterval,
		Display:        s.storeFrame,
		OnStart:        s.audit(models.EventStart, "timer started"),
		OnStop:         s.audit(models.EventStop, "timer stopped"),
		OnReset:        s.audit(models.EventReset, "timer reset"),
		OnCountdown:    s.audit(models.EventCountdown, "countdown reached zero"),
		Clock:          clk,
		Log:            s.log,
	})
	return s
}

func (s *TimerService) Start(ctx context.Context, fastForward time.Duration) error {
	if err := s.ready(ctx); err != nil {
		return err
	}
	s.engine.Start(fastForward)
	return nil
}

func (s *TimerService) Stop(ctx context.Context) error {
	if err := s.ready(ctx); err != nil {
		return err
	}
	s.engine.Stop()
	return nil
}

func (s *TimerService) Reset(ctx context.Context, preventCallback bool) error {
	if err := s.ready(ctx); err != nil {
		return err
	}
	s.engine.Reset(preventCallback)
	return nil
}

func (s *TimerService) ResetAndStart(ctx context.Context, fastForward time.Duration) error {
	if err := s.ready(ctx); err != nil {
		return err
	}
	s.engine.ResetAndStart(fastForward)
	return nil
}

// Set applies p to the engine and records a SET event with the fields that
// were supplied.
func (s *TimerService) Set(ctx context.Context, p SetParams) error {
	if err := s.ready(ctx); err != nil {
		return err
	}
	action := timer.Action(p.Action)
	if a, ok := timer.ParseAction(p.Action); ok {
		action = a
	}
	s.engine.Set(timer.Fields{
		Time:          p.Time,
		StartAt:       p.StartAt,
		CountDown:     p.CountDown,
		Running:       p.Running,
		LastEventTime: p.LastEventTime,
		Action:        action,
		DelayAction:   p.DelayAction,
		Compensate:    p.Compensate,
	})
	s.record(ctx, models.EventSet, "fields applied", setMeta(p))
	return nil
}

// ApplyPreset loads the named preset as the new start value and resets the
// clock to it.
func (s *TimerService) ApplyPreset(ctx context.Context, name string) error {
	if err := s.ready(ctx); err != nil {
		return err
	}
	p, ok := s.presets[name]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownPreset, name)
	}
	s.engine.Set(timer.Fields{
		Time:      timer.Ptr(p.StartAt),
		StartAt:   timer.Ptr(p.StartAt),
		CountDown: timer.Ptr(p.CountDown),
	})
	s.record(ctx, models.EventSet, "preset applied", map[string]any{
		"preset":      name,
		"start_at_ms": p.StartAt.Milliseconds(),
		"count_down":  p.CountDown,
	})
	return nil
}

func (s *TimerService) Presets() Presets {
	return s.presets
}

// Snapshot returns the engine state together with the last rendered frame.
func (s *TimerService) Snapshot() (timer.Info, timefmt.Parts) {
	info := s.engine.Info()
	s.mu.RLock()
	defer s.mu.RUnlock()
	return info, s.display
}

func (s *TimerService) Close() {
	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()
	s.engine.Close()
}

func (s *TimerService) ready(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return ErrTimerClosed
	}
	return nil
}

func (s *TimerService) storeFrame(p timefmt.Parts) {
	s.mu.Lock()
	s.display = p
	s.mu.Unlock()
}

// audit returns an engine callback that appends an event of type typ.
func (s *TimerService) audit(typ, description string) timer.Callback {
	return func(_ *timer.Engine, at timer.Info) {
		s.record(context.Background(), typ, description, infoMeta(at))
	}
}

// record never fails the caller; the audit log is best effort.
func (s *TimerService) record(ctx context.Context, typ, description string, meta any) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), auditTimeout)
	defer cancel()

	err := s.eventRepo.Append(ctx, models.TimerEvent{
		OccurredAt:  s.clock.Now().UTC(),
		Type:        typ,
		Description: description,
		Metadata:    meta,
	})
	if err != nil {
		s.log.Errorw("audit_append_failed", "type", typ, "err", err)
	}
}

func infoMeta(info timer.Info) map[string]any {
	return map[string]any{
		"running":     info.Running,
		"time_ms":     info.Time.Milliseconds(),
		"start_at_ms": info.StartAt.Milliseconds(),
		"count_down":  info.CountDown,
	}
}

func setMeta(p SetParams) map[string]any {
	m := map[string]any{}
	if p.Time != nil {
		m["time_ms"] = p.Time.Milliseconds()
	}
	if p.StartAt != nil {
		m["start_at_ms"] = p.StartAt.Milliseconds()
	}
	if p.CountDown != nil {
		m["count_down"] = *p.CountDown
	}
	if p.Running != nil {
		m["running"] = *p.Running
	}
	if p.LastEventTime != nil {
		m["last_event_time"] = p.LastEventTime.UTC().Format(time.RFC3339Nano)
	}
	if p.Action != "" {
		m["action"] = p.Action
		m["delay_action_ms"] = p.DelayAction.Milliseconds()
		m["compensate"] = p.Compensate
	}
	return m
}
