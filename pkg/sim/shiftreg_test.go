package sim

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func clockIn(data, clock *Pin, bits []byte) {
	for _, b := range bits {
		data.Set(b != 0)
		clock.Set(true)
		clock.Set(false)
	}
}

func TestShiftRegister(t *testing.T) {
	data, clock, latch := NewPin(), NewPin(), NewPin()
	reg := NewShiftRegister(data, clock, latch, nil)

	clockIn(data, clock, []byte{1, 0, 1, 1})
	require.Zero(t, reg.Output(), "outputs hold until latched")

	latch.Set(true)
	latch.Set(false)
	require.Equal(t, uint16(0xb), reg.Output())

	// Further clocking shifts through without disturbing outputs.
	clockIn(data, clock, []byte{1})
	require.Equal(t, uint16(0xb), reg.Output())
	latch.Set(true)
	latch.Set(false)
	require.Equal(t, uint16(0x17), reg.Output())
}

func TestShiftRegisterEnable(t *testing.T) {
	data, clock, latch, enable := NewPin(), NewPin(), NewPin(), NewPin()
	reg := NewShiftRegister(data, clock, latch, enable)

	clockIn(data, clock, []byte{1})
	latch.Set(true)
	latch.Set(false)
	require.Equal(t, uint16(1), reg.Output())

	enable.Set(true) // active low: high disables
	require.Zero(t, reg.Output())
	enable.Set(false)
	require.Equal(t, uint16(1), reg.Output())
}
