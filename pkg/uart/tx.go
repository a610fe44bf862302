package uart

import (
	"context"

	"github.com/golang/glog"

	"github.com/mcusim/softuart/pkg/sim"
)

const (
	// frameBits is start + 8 data + stop.
	frameBits = 10
	// stopMark pre-loads the stop bit above the data bits.
	stopMark = 0x100
)

// Transmitter shifts bytes onto a serial line, one bit per compare
// match. Its mutable state is owned by the channel handler; the only
// outside write is the Submit handoff, gated by the idle token.
type Transmitter struct {
	timing Timing
	tmr    *sim.Timer
	ch     *sim.Channel

	// pending holds start, data and stop bits, low bit the next
	// one loaded into the output unit.
	pending uint16
	bits    int
	active  bool

	idleCh chan struct{}
}

// NewTransmitter arms ch to drive line and returns the engine, idle.
func NewTransmitter(tmr *sim.Timer, ch *sim.Channel, line *sim.Line, timing Timing) *Transmitter {
	t := &Transmitter{
		timing: timing,
		tmr:    tmr,
		ch:     ch,
		idleCh: make(chan struct{}, 1),
	}
	t.idleCh <- struct{}{}
	tmr.Critical(func() {
		ch.BindOutput(line).OnEvent(t.service)
		ch.Drive(sim.Mark)
	})
	return t
}

// Submit queues one byte for transmission, blocking until any
// previous byte has fully left the line. The first bit edge lands one
// bit period after Submit returns the engine to the caller.
func (t *Transmitter) Submit(ctx context.Context, b byte) error {
	select {
	case <-t.idleCh:
	case <-ctx.Done():
		return ctx.Err()
	}
	t.tmr.Critical(func() {
		t.pending = (uint16(b) | stopMark) << 1
		t.bits = frameBits
		t.active = true
		t.ch.SetTarget(t.tmr.Count() + t.timing.Bit)
		t.loadBit()
		t.ch.EnableIRQ()
	})
	glog.V(3).Infof("tx submit %#02x", b)
	return nil
}

// Active reports whether a byte is still being shifted out.
func (t *Transmitter) Active() bool {
	var active bool
	t.tmr.Critical(func() {
		active = t.active
	})
	return active
}

// loadBit latches the low pending bit into the output unit for the
// next compare match.
func (t *Transmitter) loadBit() {
	if t.pending&1 != 0 {
		t.ch.DriveNext(sim.Mark)
	} else {
		t.ch.DriveNext(sim.Space)
	}
	t.pending >>= 1
	t.bits--
}

// service is the compare-match handler: one call per bit period. The
// output unit has already driven the loaded bit at the match tick;
// the handler only programs the next one.
func (t *Transmitter) service(ch *sim.Channel, ev sim.Event) {
	// Advance from the stored absolute target, not from the
	// counter, so dispatch latency never shifts the next edge.
	ch.SetTarget(ch.Target() + t.timing.Bit)
	if t.bits == 0 {
		ch.DisableIRQ()
		t.active = false
		select {
		case t.idleCh <- struct{}{}:
		default:
		}
		return
	}
	t.loadBit()
}
