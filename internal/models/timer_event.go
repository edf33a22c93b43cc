package models

import "time"

// Audit event types.
const (
	EventStart     = "START"
	EventStop      = "STOP"
	EventReset     = "RESET"
	EventCountdown = "COUNTDOWN"
	EventSet       = "SET"
)

// TimerEvent is a single audit log entry.
type TimerEvent struct {
	EventID     string    `json:"event_id"`
	OccurredAt  time.Time `json:"occurred_at"`
	Type        string    `json:"type"`        // START | STOP | RESET | COUNTDOWN | SET
	Description string    `json:"description"` // human-readable
	Metadata    any       `json:"metadata,omitempty"`
}
