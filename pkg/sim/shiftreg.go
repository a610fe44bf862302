package sim

import "sync"

// ShiftRegister models two cascaded 8-bit serial-in parallel-out
// registers with a storage latch, as wired behind the LED matrix
// columns. Data is sampled on the rising clock edge; the shifted
// value transfers to the outputs on the rising latch edge.
type ShiftRegister struct {
	lock    sync.Mutex
	shift   uint16
	out     uint16
	enabled bool
}

// NewShiftRegister wires the register to its control pins. The
// enable pin is active low; pass nil if the output enable is tied.
func NewShiftRegister(data, clock, latch, enable *Pin) *ShiftRegister {
	r := &ShiftRegister{enabled: true}
	clock.Watch(func(high bool) {
		if !high {
			return
		}
		r.lock.Lock()
		r.shift = r.shift<<1 | uint16(bit(data.High()))
		r.lock.Unlock()
	})
	latch.Watch(func(high bool) {
		if !high {
			return
		}
		r.lock.Lock()
		r.out = r.shift
		r.lock.Unlock()
	})
	if enable != nil {
		enable.Watch(func(high bool) {
			r.lock.Lock()
			r.enabled = !high
			r.lock.Unlock()
		})
	}
	return r
}

// Output returns the latched outputs; zero while disabled.
func (r *ShiftRegister) Output() uint16 {
	r.lock.Lock()
	defer r.lock.Unlock()
	if !r.enabled {
		return 0
	}
	return r.out
}

func bit(high bool) byte {
	if high {
		return 1
	}
	return 0
}
