package timer

import (
	"time"

	"countdown_timer/internal/clock"
	"countdown_timer/internal/logger"
	"countdown_timer/internal/timefmt"
)

// DefaultUpdateInterval is the tick period used when Config leaves it unset.
const DefaultUpdateInterval = 10 * time.Millisecond

// Callback receives the engine on a lifecycle event together with its
// state at the moment the event happened. The engine may have moved on by
// the time the callback runs.
type Callback func(e *Engine, at Info)

// DisplayFunc receives the formatted clock value on every render.
type DisplayFunc func(p timefmt.Parts)

// Config configures an Engine. Every field is optional.
type Config struct {
	// StartAt is the initial and reset value. A negative value with
	// CountDown counts up toward zero.
	StartAt time.Duration
	// CountDown stops the timer when it reaches zero.
	CountDown bool
	// UpdateInterval is the nominal tick period.
	UpdateInterval time.Duration

	Format  timefmt.Formatter
	Display DisplayFunc

	OnCountdown Callback
	OnStart     Callback
	OnStop      Callback
	OnReset     Callback

	Clock clock.Clock
	Log   *logger.Logger
}

func nopCallback(*Engine, Info) {}
func nopDisplay(timefmt.Parts)  {}

// withDefaults fills unset fields so the engine never checks for nil.
func (c Config) withDefaults() Config {
	if c.UpdateInterval <= 0 {
		c.UpdateInterval = DefaultUpdateInterval
	}
	if c.Format == nil {
		c.Format = timefmt.Format
	}
	if c.Display == nil {
		c.Display = nopDisplay
	}
	if c.OnCountdown == nil {
		c.OnCountdown = nopCallback
	}
	if c.OnStart == nil {
		c.OnStart = nopCallback
	}
	if c.OnStop == nil {
		c.OnStop = nopCallback
	}
	if c.OnReset == nil {
		c.OnReset = nopCallback
	}
	if c.Clock == nil {
		c.Clock = clock.Real()
	}
	if c.Log == nil {
		c.Log = logger.Nop()
	}
	return c
}
