package uart

import (
	"context"

	"github.com/mcusim/softuart/pkg/sim"
)

// Endpoint is one end of a serial link: a Transmitter driving the tx
// line and a Receiver sensing the rx line, on two channels of the
// same timer.
type Endpoint struct {
	Tx   *Transmitter
	Rx   *Receiver
	Mbox *Mailbox
}

// NewEndpoint allocates two channels of tmr and wires them to the
// lines.
func NewEndpoint(tmr *sim.Timer, tx, rx *sim.Line, timing Timing) *Endpoint {
	mbox := NewMailbox()
	return &Endpoint{
		Tx:   NewTransmitter(tmr, tmr.Channel(), tx, timing),
		Rx:   NewReceiver(tmr, tmr.Channel(), rx, timing, mbox),
		Mbox: mbox,
	}
}

// Send transmits the bytes of p in order, each submitted as soon as
// the previous one has left the line.
func (e *Endpoint) Send(ctx context.Context, p []byte) error {
	for _, b := range p {
		if err := e.Tx.Submit(ctx, b); err != nil {
			return err
		}
	}
	return nil
}

// Print transmits a string.
func (e *Endpoint) Print(ctx context.Context, s string) error {
	return e.Send(ctx, []byte(s))
}
