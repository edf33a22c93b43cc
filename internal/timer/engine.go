package timer

import (
	"sync"
	"time"

	"countdown_timer/internal/clock"
)

// Engine is one countdown/elapsed-time clock. The zero value is not usable;
// construct it with New.
type Engine struct {
	mu  sync.Mutex
	cfg Config

	elapsed       time.Duration
	startAt       time.Duration
	countDown     bool
	lastEventTime time.Time
	lastTick      time.Time

	// wakeup is the pending tick; nil while stopped. gen identifies the
	// wakeup a tick was armed by so stale ticks can be dropped.
	wakeup clock.Timer
	gen    uint64

	actions   map[uint64]clock.Timer
	actionSeq uint64
	closed    bool

	// pending holds callbacks raised under mu. One goroutine at a time
	// delivers them, so they run in the order the events happened.
	pending  []func()
	draining bool
}

// Info is a point-in-time snapshot of an Engine.
type Info struct {
	Running       bool
	Time          time.Duration
	StartAt       time.Duration
	CountDown     bool
	Decreasing    bool
	LastEventTime time.Time
}

// New builds a stopped engine and renders its initial value once.
func New(cfg Config) *Engine {
	cfg = cfg.withDefaults()
	e := &Engine{
		cfg:           cfg,
		elapsed:       cfg.StartAt,
		startAt:       cfg.StartAt,
		countDown:     cfg.CountDown,
		lastEventTime: cfg.Clock.Now(),
		actions:       make(map[uint64]clock.Timer),
	}

	e.mu.Lock()
	e.renderLocked()
	e.mu.Unlock()
	e.deliver()
	return e
}

// Start begins ticking, first adding fastForward to the clock value. It is
// a no-op while the engine is running.
func (e *Engine) Start(fastForward time.Duration) {
	e.mu.Lock()
	e.startLocked(fastForward)
	e.mu.Unlock()
	e.deliver()
}

// Stop cancels the pending tick. It is a no-op while the engine is stopped.
func (e *Engine) Stop() {
	e.mu.Lock()
	e.stopLocked()
	e.mu.Unlock()
	e.deliver()
}

// Reset sets the clock back to StartAt. A stopped engine renders at once; a
// running one renders on its next tick.
func (e *Engine) Reset(preventCallback bool) {
	e.mu.Lock()
	e.resetLocked(preventCallback)
	e.mu.Unlock()
	e.deliver()
}

// ResetAndStart resets without firing OnReset, then starts.
func (e *Engine) ResetAndStart(fastForward time.Duration) {
	e.mu.Lock()
	e.resetLocked(true)
	e.startLocked(fastForward)
	e.mu.Unlock()
	e.deliver()
}

// Set applies the present fields and hands any action to the action
// scheduler. Set never starts or stops the engine by itself.
func (e *Engine) Set(f Fields) {
	e.mu.Lock()
	if !e.closed {
		changed := false
		if f.Time != nil {
			e.elapsed = *f.Time
			changed = true
		}
		if f.StartAt != nil {
			e.startAt = *f.StartAt
			changed = true
		}
		if f.CountDown != nil {
			e.countDown = *f.CountDown
			changed = true
		}
		if changed && e.wakeup == nil {
			e.renderLocked()
		}
		// a due action runs after the renders queued above
		if run := e.scheduleActionLocked(f, e.cfg.Clock.Now()); run != nil {
			e.pending = append(e.pending, run)
		}
	}
	e.mu.Unlock()
	e.deliver()
}

// Info returns a snapshot of the engine state.
func (e *Engine) Info() Info {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.infoLocked()
}

func (e *Engine) infoLocked() Info {
	return Info{
		Running:       e.wakeup != nil,
		Time:          e.elapsed,
		StartAt:       e.startAt,
		CountDown:     e.countDown,
		Decreasing:    e.decreasingLocked(),
		LastEventTime: e.lastEventTime,
	}
}

// Running reports whether a tick is pending.
func (e *Engine) Running() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.wakeup != nil
}

// Close cancels the pending tick and every armed action without firing any
// callback. Later operations are no-ops.
func (e *Engine) Close() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return
	}
	e.closed = true
	if e.wakeup != nil {
		e.wakeup.Stop()
		e.wakeup = nil
	}
	for id, t := range e.actions {
		t.Stop()
		delete(e.actions, id)
	}
	e.cfg.Log.Debugw("timer_closed", "time", e.elapsed)
}

func (e *Engine) decreasingLocked() bool {
	return e.startAt > 0 && e.countDown
}

// terminalLocked reports whether a countdown has reached zero.
func (e *Engine) terminalLocked() bool {
	if !e.countDown {
		return false
	}
	if e.decreasingLocked() {
		return e.elapsed <= 0
	}
	return e.elapsed >= 0
}

func (e *Engine) startLocked(fastForward time.Duration) {
	if e.closed || e.wakeup != nil {
		return
	}
	now := e.cfg.Clock.Now()
	e.elapsed += fastForward
	e.lastTick = now
	e.lastEventTime = now
	e.armLocked()
	e.cfg.Log.Debugw("timer_started", "time", e.elapsed, "fast_forward", fastForward)
	e.fireLocked(e.cfg.OnStart)
}

func (e *Engine) stopLocked() {
	if e.wakeup == nil {
		return
	}
	e.wakeup.Stop()
	e.wakeup = nil
	e.lastEventTime = e.cfg.Clock.Now()
	e.cfg.Log.Debugw("timer_stopped", "time", e.elapsed)
	e.fireLocked(e.cfg.OnStop)
	e.renderLocked()
}

func (e *Engine) resetLocked(preventCallback bool) {
	if e.closed {
		return
	}
	e.elapsed = e.startAt
	if e.wakeup == nil {
		e.renderLocked()
	}
	if !preventCallback {
		e.fireLocked(e.cfg.OnReset)
	}
}

func (e *Engine) armLocked() {
	e.gen++
	gen := e.gen
	e.wakeup = e.cfg.Clock.AfterFunc(e.cfg.UpdateInterval, func() { e.tick(gen) })
}

func (e *Engine) tick(gen uint64) {
	e.mu.Lock()
	if e.wakeup == nil || gen != e.gen {
		e.mu.Unlock()
		return
	}

	if e.terminalLocked() {
		e.stopLocked()
		e.elapsed = 0
		e.renderLocked()
		e.elapsed = e.startAt
		e.cfg.Log.Debugw("timer_countdown_reached", "start_at", e.startAt)
		e.fireLocked(e.cfg.OnCountdown)
	} else {
		now := e.cfg.Clock.Now()
		delta := now.Sub(e.lastTick)
		if e.decreasingLocked() {
			delta = -delta
		}
		e.elapsed += delta
		e.lastTick = now
		e.renderLocked()
		e.armLocked()
	}

	e.mu.Unlock()
	e.deliver()
}

func (e *Engine) renderLocked() {
	p := e.cfg.Format(e.elapsed, e.decreasingLocked())
	display := e.cfg.Display
	e.pending = append(e.pending, func() { display(p) })
}

// fireLocked queues cb with the state as of now.
func (e *Engine) fireLocked(cb Callback) {
	at := e.infoLocked()
	e.pending = append(e.pending, func() { cb(e, at) })
}

// deliver runs pending callbacks. If another call is already delivering,
// including one further up this goroutine's stack, it leaves them to that
// call.
func (e *Engine) deliver() {
	e.mu.Lock()
	if e.draining {
		e.mu.Unlock()
		return
	}
	e.draining = true

	finished := false
	defer func() {
		if !finished {
			// a callback panicked; let the next call deliver
			e.mu.Lock()
			e.draining = false
			e.mu.Unlock()
		}
	}()

	for len(e.pending) > 0 {
		batch := e.pending
		e.pending = nil
		e.mu.Unlock()
		for _, f := range batch {
			f()
		}
		e.mu.Lock()
	}
	e.draining = false
	e.mu.Unlock()
	finished = true
}
