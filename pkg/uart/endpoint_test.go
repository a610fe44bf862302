package uart

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mcusim/softuart/pkg/sim"
)

// wirePair cross-connects two endpoints on one timer, like a serial
// cable between two devices sharing a clock.
func wirePair(t *testing.T) (*sim.Timer, *Endpoint, *Endpoint) {
	tmr := sim.NewTimer()
	ab, ba := sim.NewLine(), sim.NewLine()
	a := NewEndpoint(tmr, ab, ba, testTiming)
	b := NewEndpoint(tmr, ba, ab, testTiming)
	return tmr, a, b
}

func TestEndpointRoundTrip(t *testing.T) {
	tmr, a, b := wirePair(t)
	ctx := context.Background()

	for _, payload := range []byte{0x00, 0xff, 0x55, 0xaa, 'A'} {
		require.NoError(t, a.Tx.Submit(ctx, payload))
		tmr.Step(13 * tbit)
		got, ok := b.Mbox.Take()
		require.True(t, ok, "byte %#02x not transferred", payload)
		require.Equal(t, payload, got)

		// Echo it back over the other wire.
		require.NoError(t, b.Tx.Submit(ctx, got))
		tmr.Step(13 * tbit)
		echo, ok := a.Mbox.Take()
		require.True(t, ok, "byte %#02x not echoed", payload)
		require.Equal(t, payload, echo)
	}
}

func TestEndpointRoundTripAcrossTimers(t *testing.T) {
	// Each endpoint on its own timer, as the daemon wires the
	// device and terminal sides. The timers must advance in
	// lockstep; any per-timer chunking longer than a bit period
	// would hide edges from the other side.
	tmrA, tmrB := sim.NewTimer(), sim.NewTimer()
	ab, ba := sim.NewLine(), sim.NewLine()
	a := NewEndpoint(tmrA, ab, ba, testTiming)
	b := NewEndpoint(tmrB, ba, ab, testTiming)
	ctx := context.Background()

	for _, payload := range []byte{0x55, 0x41, 0xaa} {
		require.NoError(t, a.Tx.Submit(ctx, payload))
		sim.StepAll(13*tbit, tmrA, tmrB)
		got, ok := b.Mbox.Take()
		require.True(t, ok, "byte %#02x not transferred", payload)
		require.Equal(t, payload, got)
	}
}

func TestEndpointSend(t *testing.T) {
	tmr, a, b := wirePair(t)
	msg := []byte("OK\r\n")

	// Send submits each byte as soon as the previous one is done,
	// so the sender must be pumped from another goroutine while
	// Send blocks.
	errCh := make(chan error, 1)
	go func() {
		errCh <- a.Send(context.Background(), msg)
	}()

	var got []byte
	for len(got) < len(msg) {
		tmr.Step(tbit)
		if c, ok := b.Mbox.Take(); ok {
			got = append(got, c)
		}
	}
	require.NoError(t, <-errCh)
	require.Equal(t, msg, got)
}
