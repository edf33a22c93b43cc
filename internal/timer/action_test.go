package timer

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlanAction(t *testing.T) {
	now := epoch.Add(time.Hour)

	cases := []struct {
		name       string
		lastEvent  time.Time
		delay      time.Duration
		compensate bool
		decreasing bool
		want       actionPlan
	}{
		{"due now", now, 0, false, false, actionPlan{}},
		{"future delay", now, 3 * time.Second, false, false, actionPlan{delay: 3 * time.Second}},
		{"overdue", now.Add(-5 * time.Second), 3 * time.Second, false, false, actionPlan{fastForward: 2 * time.Second}},
		{"overdue keeps sign without compensate", now.Add(-5 * time.Second), 3 * time.Second, false, true, actionPlan{fastForward: 2 * time.Second}},
		{"overdue compensated decreasing", now.Add(-5 * time.Second), 3 * time.Second, true, true, actionPlan{fastForward: -2 * time.Second}},
		{"compensate since last event", now.Add(-10 * time.Second), 0, true, false, actionPlan{fastForward: 10 * time.Second}},
		{"compensate decreasing", now.Add(-10 * time.Second), 0, true, true, actionPlan{fastForward: -10 * time.Second}},
		{"compensate with nothing elapsed", now, 3 * time.Second, true, true, actionPlan{delay: 3 * time.Second}},
		{"compensate pending delay", now.Add(-time.Second), 3 * time.Second, true, false, actionPlan{delay: 2 * time.Second, fastForward: time.Second}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := planAction(now, tc.lastEvent, tc.delay, tc.compensate, tc.decreasing)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestSet_OverdueActionRunsImmediately(t *testing.T) {
	e, c, r := newTestEngine(t, Config{})

	e.Set(Fields{
		Action:        ActionStart,
		LastEventTime: Ptr(c.Now().Add(-5 * time.Second)),
		DelayAction:   3 * time.Second,
	})

	info := e.Info()
	assert.True(t, info.Running)
	assert.Equal(t, 2*time.Second, info.Time)
	assert.Equal(t, 1, r.starts)
	assert.Equal(t, 1, c.Pending(), "only the tick wakeup is armed")
}

func TestSet_DelayedStartOnDecreasingTimer(t *testing.T) {
	e, c, r := newTestEngine(t, Config{StartAt: time.Minute, CountDown: true})

	e.Set(Fields{
		Action:        ActionStart,
		LastEventTime: Ptr(c.Now()),
		DelayAction:   3 * time.Second,
		Compensate:    true,
	})
	assert.False(t, e.Running())

	c.Advance(2999 * time.Millisecond)
	assert.False(t, e.Running())

	c.Advance(time.Millisecond)
	require.True(t, e.Running())
	assert.Equal(t, time.Minute, e.Info().Time)
	assert.Equal(t, 1, r.starts)
}

func TestSet_CompensatedResumeOfCountdown(t *testing.T) {
	e, c, _ := newTestEngine(t, Config{StartAt: time.Minute, CountDown: true})

	e.Set(Fields{
		Action:        ActionStart,
		LastEventTime: Ptr(c.Now().Add(-10 * time.Second)),
		Compensate:    true,
	})

	info := e.Info()
	assert.True(t, info.Running)
	assert.Equal(t, 50*time.Second, info.Time)
}

func TestSet_DecreasingUsesUpdatedFields(t *testing.T) {
	e, c, _ := newTestEngine(t, Config{})

	e.Set(Fields{
		Time:          Ptr(time.Minute),
		StartAt:       Ptr(time.Minute),
		CountDown:     Ptr(true),
		Action:        ActionStart,
		LastEventTime: Ptr(c.Now().Add(-5 * time.Second)),
		Compensate:    true,
	})

	assert.Equal(t, 55*time.Second, e.Info().Time)
}

func TestSet_RunningTrueResumes(t *testing.T) {
	e, c, _ := newTestEngine(t, Config{})

	e.Set(Fields{
		Time:          Ptr(time.Second),
		Running:       Ptr(true),
		LastEventTime: Ptr(c.Now().Add(-4 * time.Second)),
		Compensate:    true,
	})

	assert.True(t, e.Running())
	assert.Equal(t, 5*time.Second, e.Info().Time)
}

func TestSet_DelayedStopAndReset(t *testing.T) {
	e, c, r := newTestEngine(t, Config{StartAt: time.Second, UpdateInterval: 100 * time.Millisecond})
	e.Start(0)

	e.Set(Fields{Action: ActionStop, DelayAction: 500 * time.Millisecond})
	e.Set(Fields{Action: ActionReset, DelayAction: time.Second})

	// The stop was armed before the tick due at the same instant, so it wins.
	c.Advance(500 * time.Millisecond)
	assert.False(t, e.Running())
	assert.Equal(t, 1400*time.Millisecond, e.Info().Time)

	c.Advance(500 * time.Millisecond)
	assert.Equal(t, time.Second, e.Info().Time)
	assert.Equal(t, 1, r.stops)
	assert.Equal(t, 1, r.resets)
}

func TestSet_ResetAndStartAction(t *testing.T) {
	e, c, r := newTestEngine(t, Config{StartAt: 10 * time.Second, CountDown: true})
	e.Set(Fields{Time: Ptr(3 * time.Second)})

	e.Set(Fields{
		Action:        ActionResetAndStart,
		LastEventTime: Ptr(c.Now().Add(-2 * time.Second)),
		Compensate:    true,
	})

	assert.True(t, e.Running())
	assert.Equal(t, 8*time.Second, e.Info().Time)
	assert.Zero(t, r.resets)
}

func TestSet_UnknownActionIsSkipped(t *testing.T) {
	e, c, r := newTestEngine(t, Config{})

	e.Set(Fields{Action: Action("jump"), DelayAction: time.Second})

	assert.False(t, e.Running())
	assert.Zero(t, c.Pending())
	assert.Zero(t, r.starts)
}

func TestSet_ArmedActionSurvivesStop(t *testing.T) {
	e, c, r := newTestEngine(t, Config{})

	e.Set(Fields{Action: ActionStart, DelayAction: time.Second})
	e.Stop()
	c.Advance(time.Second)

	assert.True(t, e.Running())
	assert.Equal(t, 1, r.starts)
}

func TestParseAction(t *testing.T) {
	cases := map[string]Action{
		"start":           ActionStart,
		" STOP ":          ActionStop,
		"reset":           ActionReset,
		"resetAndStart":   ActionResetAndStart,
		"reset-and-start": ActionResetAndStart,
		"restart":         ActionResetAndStart,
	}
	for in, want := range cases {
		got, ok := ParseAction(in)
		assert.True(t, ok, in)
		assert.Equal(t, want, got, in)
	}

	_, ok := ParseAction("pause")
	assert.False(t, ok)
}
