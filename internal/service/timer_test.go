package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"countdown_timer/internal/clock"
	"countdown_timer/internal/config"
	"countdown_timer/internal/logger"
	"countdown_timer/internal/models"
	"countdown_timer/internal/timefmt"
	"countdown_timer/internal/timer"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testEpoch = time.Date(2025, 4, 1, 9, 0, 0, 0, time.UTC)

func newTestTimer(t *testing.T, cfg config.TimerConfig) (*TimerService, *clock.Fake, *fakeEventRepo) {
	t.Helper()
	c := clock.NewFake(testEpoch)
	repo := &fakeEventRepo{}
	presets := Presets{
		"pomodoro": {StartAt: 25 * time.Minute, CountDown: true},
		"lead-in":  {StartAt: -10 * time.Second, CountDown: true},
	}
	s := NewTimerService(cfg, presets, repo, c, logger.Nop())
	t.Cleanup(s.Close)
	return s, c, repo
}

func TestTimerService_CountdownIsAudited(t *testing.T) {
	s, c, repo := newTestTimer(t, config.TimerConfig{
		StartAt:        2 * time.Second,
		CountDown:      true,
		UpdateInterval: 100 * time.Millisecond,
	})
	ctx := context.Background()

	_, frame := s.Snapshot()
	assert.Equal(t, timefmt.Parts{Seconds: 2}, frame, "initial render is stored")

	require.NoError(t, s.Start(ctx, 0))
	c.Advance(2100 * time.Millisecond)

	assert.Equal(t, []string{models.EventStart, models.EventStop, models.EventCountdown}, repo.types())

	info, frame := s.Snapshot()
	assert.False(t, info.Running)
	assert.Equal(t, 2*time.Second, info.Time)
	assert.Equal(t, timefmt.Parts{}, frame)

	stop := repo.appended[1]
	assert.Equal(t, map[string]any{
		"running":     false,
		"time_ms":     int64(0),
		"start_at_ms": int64(2000),
		"count_down":  true,
	}, stop.Metadata, "stop records the value the countdown ended on")

	last := repo.appended[2]
	assert.Equal(t, testEpoch.Add(2100*time.Millisecond), last.OccurredAt)
	assert.Equal(t, map[string]any{
		"running":     false,
		"time_ms":     int64(2000),
		"start_at_ms": int64(2000),
		"count_down":  true,
	}, last.Metadata)
}

func TestTimerService_ResetCallbackCanBeSuppressed(t *testing.T) {
	s, _, repo := newTestTimer(t, config.TimerConfig{StartAt: time.Minute})
	ctx := context.Background()

	require.NoError(t, s.Reset(ctx, true))
	assert.Empty(t, repo.types())

	require.NoError(t, s.Reset(ctx, false))
	require.NoError(t, s.ResetAndStart(ctx, time.Second))
	require.NoError(t, s.Stop(ctx))
	assert.Equal(t, []string{models.EventReset, models.EventStart, models.EventStop}, repo.types())

	info, _ := s.Snapshot()
	assert.Equal(t, 61*time.Second, info.Time)
}

func TestTimerService_SetResumesAndRecords(t *testing.T) {
	s, c, repo := newTestTimer(t, config.TimerConfig{})
	ctx := context.Background()

	err := s.Set(ctx, SetParams{
		Time:          timer.Ptr(30 * time.Second),
		StartAt:       timer.Ptr(time.Minute),
		CountDown:     timer.Ptr(true),
		Action:        "Start",
		LastEventTime: timer.Ptr(c.Now().Add(-5 * time.Second)),
		Compensate:    true,
	})
	require.NoError(t, err)

	info, _ := s.Snapshot()
	assert.True(t, info.Running)
	assert.Equal(t, 25*time.Second, info.Time)

	assert.Equal(t, []string{models.EventStart, models.EventSet}, repo.types())
	meta := repo.appended[1].Metadata.(map[string]any)
	assert.Equal(t, "Start", meta["action"])
	assert.Equal(t, int64(30000), meta["time_ms"])
	assert.Equal(t, true, meta["compensate"])
	assert.Equal(t, "2025-04-01T08:59:55Z", meta["last_event_time"])
}

func TestTimerService_SetDelayedAction(t *testing.T) {
	s, c, repo := newTestTimer(t, config.TimerConfig{})

	require.NoError(t, s.Set(context.Background(), SetParams{Action: "start", DelayAction: time.Second}))
	assert.Equal(t, []string{models.EventSet}, repo.types())

	c.Advance(time.Second)
	info, _ := s.Snapshot()
	assert.True(t, info.Running)
	assert.Equal(t, []string{models.EventSet, models.EventStart}, repo.types())
}

func TestTimerService_SetUnknownActionOnlyAppliesFields(t *testing.T) {
	s, _, _ := newTestTimer(t, config.TimerConfig{})

	require.NoError(t, s.Set(context.Background(), SetParams{Time: timer.Ptr(time.Second), Action: "jump"}))

	info, frame := s.Snapshot()
	assert.False(t, info.Running)
	assert.Equal(t, time.Second, info.Time)
	assert.Equal(t, timefmt.Parts{Seconds: 1}, frame)
}

func TestTimerService_ApplyPreset(t *testing.T) {
	s, _, repo := newTestTimer(t, config.TimerConfig{StartAt: time.Minute})
	ctx := context.Background()

	err := s.ApplyPreset(ctx, "nope")
	assert.ErrorIs(t, err, ErrUnknownPreset)

	require.NoError(t, s.ApplyPreset(ctx, "lead-in"))
	info, frame := s.Snapshot()
	assert.Equal(t, -10*time.Second, info.StartAt)
	assert.Equal(t, -10*time.Second, info.Time)
	assert.True(t, info.CountDown)
	assert.False(t, info.Decreasing)
	assert.Equal(t, "-00:00:10", frame.String())

	require.Len(t, repo.appended, 1)
	assert.Equal(t, "lead-in", repo.appended[0].Metadata.(map[string]any)["preset"])
	assert.Equal(t, []string{"lead-in", "pomodoro"}, s.Presets().Names())
}

func TestTimerService_AuditFailureDoesNotFailOperation(t *testing.T) {
	s, _, repo := newTestTimer(t, config.TimerConfig{})
	repo.appendFn = func(models.TimerEvent) error { return errors.New("disk full") }

	require.NoError(t, s.Start(context.Background(), 0))
	info, _ := s.Snapshot()
	assert.True(t, info.Running)
}

func TestTimerService_ClosedAndCanceled(t *testing.T) {
	s, c, _ := newTestTimer(t, config.TimerConfig{})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, s.Start(ctx, 0), context.Canceled)

	require.NoError(t, s.Start(context.Background(), 0))
	s.Close()
	assert.Zero(t, c.Pending())

	bg := context.Background()
	assert.ErrorIs(t, s.Start(bg, 0), ErrTimerClosed)
	assert.ErrorIs(t, s.Stop(bg), ErrTimerClosed)
	assert.ErrorIs(t, s.Reset(bg, false), ErrTimerClosed)
	assert.ErrorIs(t, s.ResetAndStart(bg, 0), ErrTimerClosed)
	assert.ErrorIs(t, s.Set(bg, SetParams{}), ErrTimerClosed)
	assert.ErrorIs(t, s.ApplyPreset(bg, "pomodoro"), ErrTimerClosed)
}
