package serial

import (
	"context"
	"io"

	"github.com/golang/glog"

	"github.com/mcusim/softuart/pkg/uart"
)

// Bridge copies bytes between a host tty and a terminal-side serial
// endpoint: tty input is shifted into the device one 8N1 frame at a
// time, device output is written back to the tty.
type Bridge struct {
	RW   io.ReadWriteCloser
	Port *uart.Endpoint
}

// NewBridge creates a Bridge over an open port.
func NewBridge(rw io.ReadWriteCloser, port *uart.Endpoint) *Bridge {
	return &Bridge{RW: rw, Port: port}
}

// Run implements framework.Runnable. Closing the tty is the only way
// to interrupt a blocked read, so the port is closed on cancel.
func (b *Bridge) Run(ctx context.Context) error {
	subCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	go b.readLoop(subCtx)
	defer b.RW.Close()

	for {
		rx, err := b.Port.Mbox.Wait(ctx)
		if err != nil {
			return err
		}
		if _, err = b.RW.Write([]byte{rx}); err != nil {
			return err
		}
	}
}

func (b *Bridge) readLoop(ctx context.Context) {
	buf := make([]byte, 64)
	for {
		n, err := b.RW.Read(buf)
		if err != nil {
			if ctx.Err() == nil {
				glog.Errorf("tty read: %v", err)
			}
			return
		}
		for _, c := range buf[:n] {
			if err := b.Port.Tx.Submit(ctx, c); err != nil {
				return
			}
		}
	}
}
