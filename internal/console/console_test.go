package console

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"countdown_timer/internal/clock"
	"countdown_timer/internal/timer"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var epoch = time.Date(2025, 4, 1, 9, 0, 0, 0, time.UTC)

func newTestConsole(t *testing.T, cfg timer.Config) (*Console, *clock.Fake, *bytes.Buffer) {
	t.Helper()
	c := clock.NewFake(epoch)
	cfg.Clock = c
	var out bytes.Buffer
	con := New(cfg, &out)
	t.Cleanup(con.Engine().Close)
	return con, c, &out
}

func lines(b *bytes.Buffer) []string {
	return strings.Split(strings.TrimSpace(b.String()), "\n")
}

func TestConsole_CountdownDisplay(t *testing.T) {
	fired := 0
	con, c, out := newTestConsole(t, timer.Config{
		StartAt:        3 * time.Second,
		CountDown:      true,
		UpdateInterval: 100 * time.Millisecond,
		OnCountdown:    func(*timer.Engine, timer.Info) { fired++ },
	})

	require.NoError(t, con.Exec("start"))
	c.Advance(3100 * time.Millisecond)

	assert.Equal(t, []string{
		"00:00:03",
		"00:00:02",
		"00:00:01",
		"00:00:00",
		"countdown finished",
	}, lines(out))
	assert.Equal(t, 1, fired)
	assert.False(t, con.Engine().Running())
}

func TestConsole_Commands(t *testing.T) {
	con, c, out := newTestConsole(t, timer.Config{StartAt: time.Minute, UpdateInterval: time.Second})
	e := con.Engine()

	require.NoError(t, con.Exec("start 5s"))
	assert.True(t, e.Running())
	assert.Equal(t, 65*time.Second, e.Info().Time)

	require.NoError(t, con.Exec("  STOP "))
	assert.False(t, e.Running())

	require.NoError(t, con.Exec("reset quiet"))
	assert.Equal(t, time.Minute, e.Info().Time)

	require.NoError(t, con.Exec("restart -10s"))
	assert.True(t, e.Running())
	assert.Equal(t, 50*time.Second, e.Info().Time)

	c.Advance(time.Second)
	out.Reset()
	require.NoError(t, con.Exec("info"))
	assert.Contains(t, out.String(), "running=true time=51s start_at=1m0s")

	require.NoError(t, con.Exec(""))
	assert.ErrorIs(t, con.Exec("quit"), ErrQuit)
	assert.ErrorContains(t, con.Exec("pause"), `unknown command "pause"`)
	assert.ErrorIs(t, con.Exec("start soon"), errUsage)
}

func TestConsole_SetCompensatesFromLastEvent(t *testing.T) {
	con, _, _ := newTestConsole(t, timer.Config{})

	require.NoError(t, con.Exec("set action=start last_event=-5s compensate=true"))

	info := con.Engine().Info()
	assert.True(t, info.Running)
	assert.Equal(t, 5*time.Second, info.Time)
}

func TestParseFields(t *testing.T) {
	now := epoch

	f, ignored, err := parseFields([]string{
		"time=30s", "start_at=1m", "count_down=true", "running=false",
		"action=restart", "delay=2s", "compensate=1", "last_event=2025-04-01T08:59:00Z",
	}, now)
	require.NoError(t, err)
	assert.Empty(t, ignored)
	require.NotNil(t, f.Time)
	assert.Equal(t, 30*time.Second, *f.Time)
	assert.Equal(t, time.Minute, *f.StartAt)
	assert.True(t, *f.CountDown)
	assert.False(t, *f.Running)
	assert.Equal(t, timer.ActionResetAndStart, f.Action)
	assert.Equal(t, 2*time.Second, f.DelayAction)
	assert.True(t, f.Compensate)
	assert.Equal(t, now.Add(-time.Minute), *f.LastEventTime)

	f, ignored, err = parseFields([]string{"last_event=-1500ms", "speed=2"}, now)
	require.NoError(t, err)
	assert.Equal(t, []string{"speed"}, ignored)
	assert.Equal(t, now.Add(-1500*time.Millisecond), *f.LastEventTime)
	assert.Nil(t, f.Time)

	bad := map[string][]string{
		"no fields":      nil,
		"not key=value":  {"time"},
		"bad duration":   {"time=fast"},
		"bad bool":       {"count_down=maybe"},
		"unknown action": {"action=pause"},
		"bad instant":    {"last_event=yesterday"},
	}
	for name, args := range bad {
		_, _, err := parseFields(args, now)
		assert.Error(t, err, name)
	}
}

func TestConsole_SetIgnoresUnknownFields(t *testing.T) {
	con, _, out := newTestConsole(t, timer.Config{})
	out.Reset()

	require.NoError(t, con.Exec("set time=30s color=red"))

	assert.Equal(t, 30*time.Second, con.Engine().Info().Time)
	assert.Contains(t, out.String(), `ignoring unknown field "color"`)
}
