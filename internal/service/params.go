package service

import "time"

// SetParams mirrors timer.Fields with the action as a user-supplied name.
// Nil pointers are absent fields.
type SetParams struct {
	Time          *time.Duration
	StartAt       *time.Duration
	CountDown     *bool
	Running       *bool
	LastEventTime *time.Time
	Action        string // start | stop | reset | resetAndStart; unknown names are ignored
	DelayAction   time.Duration
	Compensate    bool
}

// LogFilter supports history filtering by time range and type.
type LogFilter struct {
	From time.Time // inclusive; zero means no lower bound
	To   time.Time // inclusive; zero means no upper bound
	Type string    // "", "START", "STOP", "RESET", "COUNTDOWN", "SET"
}
