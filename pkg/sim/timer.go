package sim

import "sync"

// Timer is a free-running 16-bit counter stepped by an external
// clock source. Channels allocated from it observe every tick.
//
// Stepping and channel programming are serialized by the timer lock:
// channel handlers run with the lock held, and any code outside a
// handler must program channels inside Critical. This mirrors the
// interrupt mask of the real part.
type Timer struct {
	lock  sync.Mutex
	count uint16
	chans []*Channel
}

// NewTimer creates a stopped Timer with no channels.
func NewTimer() *Timer {
	return &Timer{}
}

// Channel allocates a capture/compare channel.
func (t *Timer) Channel() *Channel {
	t.lock.Lock()
	defer t.lock.Unlock()
	ch := &Channel{tmr: t}
	t.chans = append(t.chans, ch)
	return ch
}

// Step advances the counter by ticks, firing channel events.
func (t *Timer) Step(ticks int) {
	t.lock.Lock()
	defer t.lock.Unlock()
	for i := 0; i < ticks; i++ {
		t.count++
		for _, ch := range t.chans {
			ch.step(t.count)
		}
	}
}

// StepAll advances all timers in lockstep, one tick at a time.
// Timers wired to each other through shared lines must be stepped
// this way: stepping one timer a whole chunk ahead would hide every
// level change inside the chunk from the others.
func StepAll(ticks int, timers ...*Timer) {
	for i := 0; i < ticks; i++ {
		for _, tmr := range timers {
			tmr.Step(1)
		}
	}
}

// Count returns the current counter value. Call from a handler or
// inside Critical.
func (t *Timer) Count() uint16 {
	return t.count
}

// Critical runs fn with the timer stopped and handlers masked.
func (t *Timer) Critical(fn func()) {
	t.lock.Lock()
	defer t.lock.Unlock()
	fn()
}
