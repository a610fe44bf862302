package mqtt

import (
	"context"

	"github.com/golang/glog"

	"github.com/mcusim/softuart/pkg/uart"
)

// Topic conventions below the configured prefix.
const (
	// TopicToDevice carries bytes to shift into the device.
	TopicToDevice = "rx"
	// TopicFromDevice carries bytes the device transmitted.
	TopicFromDevice = "tx"
)

// Bridge pumps bytes between a terminal-side serial endpoint and the
// topic pair: payload bytes published to the rx topic are transmitted
// onto the device's receive line one 8N1 frame at a time, and every
// byte the device sends is published to the tx topic.
type Bridge struct {
	Queue *Queue
	Port  *uart.Endpoint

	downCh chan byte
}

// NewBridge creates a Bridge over the terminal endpoint.
func NewBridge(q *Queue, port *uart.Endpoint) *Bridge {
	return &Bridge{Queue: q, Port: port, downCh: make(chan byte, 256)}
}

// Run implements framework.Runnable.
func (b *Bridge) Run(ctx context.Context) error {
	sub := b.Queue.Sub(TopicToDevice, b.handleDown)
	defer sub.Close()

	subCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	go b.sendLoop(subCtx)

	for {
		rx, err := b.Port.Mbox.Wait(ctx)
		if err != nil {
			return err
		}
		b.Queue.Pub(TopicFromDevice, []byte{rx})
	}
}

func (b *Bridge) handleDown(_ string, payload []byte) {
	for _, c := range payload {
		select {
		case b.downCh <- c:
		default:
			glog.Warning("downlink overflow, byte dropped")
			return
		}
	}
}

func (b *Bridge) sendLoop(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case c := <-b.downCh:
			if err := b.Port.Tx.Submit(ctx, c); err != nil {
				return
			}
		}
	}
}
