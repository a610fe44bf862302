package board

import (
	"sync"

	"github.com/mcusim/softuart/pkg/sim"
)

// RowCount is the number of LED matrix rows (3 row-select pins).
const RowCount = 8

// Display drives the LED matrix: columns through a 16-bit shift
// register bit-banged over data/clock/latch pins, rows through a
// 3-bit binary row select. The protocol is synchronous GPIO with no
// timing constraint.
type Display struct {
	Data   *sim.Pin
	Clock  *sim.Pin
	Latch  *sim.Pin
	Enable *sim.Pin
	Row    [3]*sim.Pin

	Register *sim.ShiftRegister

	lock sync.Mutex
	rows [RowCount]uint16
}

// NewDisplay creates the display with its pins and the shift
// register wired behind them.
func NewDisplay() *Display {
	d := &Display{
		Data:   sim.NewPin(),
		Clock:  sim.NewPin(),
		Latch:  sim.NewPin(),
		Enable: sim.NewPin(),
	}
	for i := range d.Row {
		d.Row[i] = sim.NewPin()
	}
	d.Register = sim.NewShiftRegister(d.Data, d.Clock, d.Latch, d.Enable)
	return d
}

// ShiftOut clocks val into the shift register LSB first and pulses
// the storage latch.
func (d *Display) ShiftOut(val uint16) {
	for i := 0; i < 16; i++ {
		d.Data.Set(val&(1<<uint(i)) != 0)
		d.pulseClock()
	}
	d.Latch.Set(true)
	d.Latch.Set(false)
}

func (d *Display) pulseClock() {
	d.Clock.Set(true)
	d.Clock.Set(false)
}

// SetRow blanks the columns, selects row and shifts out its column
// value.
func (d *Display) SetRow(row int, value uint16) {
	d.ShiftOut(0)
	for i, pin := range d.Row {
		pin.Set(row&(1<<uint(i)) != 0)
	}
	d.ShiftOut(value)
	d.lock.Lock()
	d.rows[row&(RowCount-1)] = value
	d.lock.Unlock()
}

// On enables the matrix outputs (active-low enable pin).
func (d *Display) On() {
	d.Enable.Set(false)
}

// Off disables the matrix outputs.
func (d *Display) Off() {
	d.Enable.Set(true)
}

// Rows returns a snapshot of the row values for monitoring.
func (d *Display) Rows() [RowCount]uint16 {
	d.lock.Lock()
	defer d.lock.Unlock()
	return d.rows
}
