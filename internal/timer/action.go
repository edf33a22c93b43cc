package timer

import (
	"strings"
	"time"
)

// Action names an engine operation that Set may invoke now or later.
type Action string

const (
	ActionStart         Action = "start"
	ActionStop          Action = "stop"
	ActionReset         Action = "reset"
	ActionResetAndStart Action = "resetAndStart"
)

// ParseAction maps a user-supplied name onto an Action. It accepts the
// canonical names case-insensitively plus "reset-and-start" and "restart".
func ParseAction(s string) (Action, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "start":
		return ActionStart, true
	case "stop":
		return ActionStop, true
	case "reset":
		return ActionReset, true
	case "resetandstart", "reset-and-start", "reset_and_start", "restart":
		return ActionResetAndStart, true
	}
	return "", false
}

// Fields is the argument of Set. Nil pointers and the zero Action are
// absent fields.
type Fields struct {
	Time      *time.Duration
	StartAt   *time.Duration
	CountDown *bool

	// Running true with no Action resumes the timer, as if Action were
	// ActionStart.
	Running *bool

	// LastEventTime anchors the action; absent means now.
	LastEventTime *time.Time
	Action        Action
	// DelayAction is how long after LastEventTime the action is due.
	DelayAction time.Duration
	// Compensate fast-forwards by the wall time elapsed since
	// LastEventTime.
	Compensate bool
}

// Ptr returns a pointer to v, for filling optional Fields.
func Ptr[T any](v T) *T {
	return &v
}

// actionPlan is when to run an action and with what fast-forward.
type actionPlan struct {
	delay       time.Duration
	fastForward time.Duration
}

// planAction works out how far an action is overdue. An overdue action runs
// at once, fast-forwarded by how late it is. With compensate and nothing
// overdue, the fast-forward is the time since lastEvent. A decreasing timer
// takes the fast-forward negated so it subtracts from the remaining time.
func planAction(now, lastEvent time.Time, delay time.Duration, compensate, decreasing bool) actionPlan {
	var p actionPlan

	remaining := lastEvent.Add(delay).Sub(now)
	overdue := remaining < 0
	if overdue {
		p.fastForward = -remaining
		remaining = 0
	}

	if compensate {
		if !overdue {
			p.fastForward = now.Sub(lastEvent)
		}
		if decreasing {
			p.fastForward = -p.fastForward
		}
	}

	p.delay = remaining
	return p
}

// scheduleActionLocked plans the action named by f. A due action is
// returned so Set can run it once the lock is released; a later one is
// armed on the clock.
func (e *Engine) scheduleActionLocked(f Fields, now time.Time) func() {
	action := f.Action
	if action == "" && f.Running != nil && *f.Running {
		action = ActionStart
	}
	if action == "" {
		return nil
	}

	op, ok := e.operation(action)
	if !ok {
		e.cfg.Log.Debugw("timer_unknown_action", "action", action)
		return nil
	}

	lastEvent := now
	if f.LastEventTime != nil {
		lastEvent = *f.LastEventTime
	}
	p := planAction(now, lastEvent, f.DelayAction, f.Compensate, e.decreasingLocked())
	e.cfg.Log.Debugw("timer_action_planned",
		"action", action, "delay", p.delay, "fast_forward", p.fastForward)

	run := func() { op(p.fastForward) }
	if p.delay == 0 {
		return run
	}

	e.actionSeq++
	id := e.actionSeq
	e.actions[id] = e.cfg.Clock.AfterFunc(p.delay, func() {
		e.mu.Lock()
		_, live := e.actions[id]
		delete(e.actions, id)
		e.mu.Unlock()
		if live {
			run()
		}
	})
	return nil
}

func (e *Engine) operation(a Action) (func(time.Duration), bool) {
	switch a {
	case ActionStart:
		return e.Start, true
	case ActionStop:
		return func(time.Duration) { e.Stop() }, true
	case ActionReset:
		return func(time.Duration) { e.Reset(false) }, true
	case ActionResetAndStart:
		return e.ResetAndStart, true
	}
	return nil, false
}
