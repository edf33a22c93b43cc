package clock

import (
	"sort"
	"sync"
	"time"
)

// Fake is a manually driven Clock. Scheduled functions run synchronously on
// the goroutine that advances the clock, in due order.
type Fake struct {
	mu      sync.Mutex
	now     time.Time
	seq     uint64
	pending []*fakeTimer
}

type fakeTimer struct {
	clock *Fake
	due   time.Time
	seq   uint64
	fn    func()
}

// NewFake returns a Fake clock reading start.
func NewFake(start time.Time) *Fake {
	return &Fake{now: start}
}

// Now implements Clock.
func (c *Fake) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// AfterFunc implements Clock.
func (c *Fake) AfterFunc(d time.Duration, f func()) Timer {
	c.mu.Lock()
	defer c.mu.Unlock()
	if d < 0 {
		d = 0
	}
	c.seq++
	t := &fakeTimer{clock: c, due: c.now.Add(d), seq: c.seq, fn: f}
	c.pending = append(c.pending, t)
	return t
}

// Stop implements Timer.
func (t *fakeTimer) Stop() bool {
	c := t.clock
	c.mu.Lock()
	defer c.mu.Unlock()
	for i, p := range c.pending {
		if p == t {
			c.pending = append(c.pending[:i], c.pending[i+1:]...)
			return true
		}
	}
	return false
}

// Advance moves the clock forward by d, firing every timer that falls due
// on the way. Timers armed by fired functions also run if they fall due
// before the new time.
func (c *Fake) Advance(d time.Duration) {
	c.mu.Lock()
	target := c.now.Add(d)
	for {
		t := c.popDueLocked(target)
		if t == nil {
			break
		}
		c.now = t.due
		c.mu.Unlock()
		t.fn()
		c.mu.Lock()
	}
	c.now = target
	c.mu.Unlock()
}

// FireAfter moves the clock forward by d and fires every timer that was
// pending when it was called, whether or not it was due. It simulates a host
// that delivers wakeups early or late.
func (c *Fake) FireAfter(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	fired := c.pending
	c.pending = nil
	c.mu.Unlock()

	sort.Slice(fired, func(i, j int) bool { return fired[i].seq < fired[j].seq })
	for _, t := range fired {
		t.fn()
	}
}

// Pending reports how many scheduled functions have not fired.
func (c *Fake) Pending() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.pending)
}

// NextDue returns the due time of the earliest pending timer.
func (c *Fake) NextDue() (time.Time, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.pending) == 0 {
		return time.Time{}, false
	}
	next := c.pending[0]
	for _, t := range c.pending[1:] {
		if earlier(t, next) {
			next = t
		}
	}
	return next.due, true
}

func (c *Fake) popDueLocked(limit time.Time) *fakeTimer {
	idx := -1
	for i, t := range c.pending {
		if t.due.After(limit) {
			continue
		}
		if idx < 0 || earlier(t, c.pending[idx]) {
			idx = i
		}
	}
	if idx < 0 {
		return nil
	}
	t := c.pending[idx]
	c.pending = append(c.pending[:idx], c.pending[idx+1:]...)
	return t
}

func earlier(a, b *fakeTimer) bool {
	if a.due.Equal(b.due) {
		return a.seq < b.seq
	}
	return a.due.Before(b.due)
}
