package uart

import (
	"github.com/golang/glog"

	"github.com/mcusim/softuart/pkg/sim"
)

// dataBits per frame; start and stop bits are consumed by the edge
// detection and the re-arm.
const dataBits = 8

// Receiver assembles bytes from a serial line. It is permanently
// armed: the channel waits in capture mode for the falling edge of a
// start bit, samples the eight data bits at their centers in compare
// mode, then re-arms capture for the next frame. Completed bytes go
// to the mailbox, which wakes the main loop.
//
// An incomplete frame never times out: if the line stops mid-frame
// the engine holds in compare mode until edges resume.
type Receiver struct {
	timing Timing
	tmr    *sim.Timer
	ch     *sim.Channel
	mbox   *Mailbox

	data byte
	bits int
}

// NewReceiver arms ch to sense line and deliver bytes to mbox.
func NewReceiver(tmr *sim.Timer, ch *sim.Channel, line *sim.Line, timing Timing, mbox *Mailbox) *Receiver {
	r := &Receiver{
		timing: timing,
		tmr:    tmr,
		ch:     ch,
		mbox:   mbox,
		bits:   dataBits,
	}
	tmr.Critical(func() {
		ch.BindInput(line).OnEvent(r.service)
		ch.SetCapture(true)
		ch.EnableIRQ()
	})
	return r
}

// Capturing reports whether the engine is waiting for a start edge.
func (r *Receiver) Capturing() bool {
	var capturing bool
	r.tmr.Critical(func() {
		capturing = r.ch.Capturing()
	})
	return capturing
}

// service handles both capture and compare events on the channel.
func (r *Receiver) service(ch *sim.Channel, ev sim.Event) {
	if ev.Capture {
		// Start edge: switch to compare and aim at the middle
		// of the first data bit.
		ch.SetCapture(false)
		ch.SetTarget(ev.Count + r.timing.Bit + r.timing.HalfBit)
		return
	}
	ch.SetTarget(ch.Target() + r.timing.Bit)
	r.data >>= 1
	if ev.Latch == sim.Mark {
		r.data |= 0x80
	}
	r.bits--
	if r.bits == 0 {
		glog.V(3).Infof("rx byte %#02x", r.data)
		r.mbox.Put(r.data)
		r.bits = dataBits
		ch.SetCapture(true)
	}
}
