package sim

import (
	"context"
	"time"

	"github.com/golang/glog"
)

// DefaultStepInterval is how often the oscillator steps its timers.
const DefaultStepInterval = time.Millisecond

// Oscillator steps timers from the wall clock at a fixed tick rate,
// standing in for the crystal driving the timer subsystem.
type Oscillator struct {
	// HZ is the tick rate, e.g. 1000000 for a 1MHz clock.
	HZ int
	// Interval is the stepping granularity. Ticks accumulate
	// between steps so the long-run rate stays exact.
	Interval time.Duration

	Timers []*Timer
}

// NewOscillator creates an Oscillator driving the given timers.
func NewOscillator(hz int, timers ...*Timer) *Oscillator {
	return &Oscillator{HZ: hz, Interval: DefaultStepInterval, Timers: timers}
}

// Run implements framework.Runnable.
func (o *Oscillator) Run(ctx context.Context) error {
	interval := o.Interval
	if interval == 0 {
		interval = DefaultStepInterval
	}
	glog.V(1).Infof("oscillator %dHz, stepping every %v", o.HZ, interval)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	var rem int64
	last := time.Now()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case now := <-ticker.C:
			elapsed := now.Sub(last)
			last = now
			total := rem + elapsed.Nanoseconds()*int64(o.HZ)
			ticks := total / int64(time.Second)
			rem = total % int64(time.Second)
			StepAll(int(ticks), o.Timers...)
		}
	}
}
