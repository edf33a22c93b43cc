package models

import "time"

// TimerState is the current snapshot of the timer. Durations are in
// milliseconds.
type TimerState struct {
	Running       bool      `json:"running"`
	TimeMs        int64     `json:"time_ms"`
	StartAtMs     int64     `json:"start_at_ms"`
	CountDown     bool      `json:"count_down"`
	Decreasing    bool      `json:"decreasing"`
	LastEventTime time.Time `json:"last_event_time"`
	Display       Display   `json:"display"`
}

// Display is the last rendered clock value.
type Display struct {
	Sign    string `json:"sign" cbor:"1,keyasint"`
	Hours   int64  `json:"hours" cbor:"2,keyasint"`
	Minutes int64  `json:"minutes" cbor:"3,keyasint"`
	Seconds int64  `json:"seconds" cbor:"4,keyasint"`
	Text    string `json:"text" cbor:"5,keyasint"`
}
