// Package timer implements a single countdown/elapsed-time engine that
// drives a display through callbacks.
//
// # Ticking
//
// A running Engine re-arms one wakeup per update interval. Each tick adds
// the wall time measured since the previous tick, not the nominal interval,
// so scheduling jitter does not accumulate.
//
// # Countdown boundary
//
// With CountDown set, the first tick that finds the clock at or past zero
// stops the engine, renders exactly zero once, resets to StartAt and only
// then fires OnCountdown, so the callback sees the reset state.
//
// # Resuming
//
// Set accepts the time of the last start/stop event plus an action name.
// The engine computes how much wall time has passed since then and either
// runs the action immediately with a fast-forward offset or arms it for
// later. This lets a caller that persisted nothing but that timestamp
// rebuild a timer that behaves as if it had kept running.
//
// # Callbacks
//
// Callbacks and display frames run after the engine's lock is released,
// strictly in event order. One goroutine delivers at a time: a call that
// raises events while another goroutine is delivering returns at once and
// leaves its events to that goroutine. Callbacks may call back into the
// engine; the events they raise run after the current callback returns.
package timer
