// Package sim provides the simulated hardware the firmware core runs
// against: a free-running 16-bit timer with capture/compare channels,
// serial lines, GPIO pins and the display shift register.
package sim

// The timer guarantees match the hardware contract the engines rely
// on: a compare channel fires at the programmed absolute counter
// value, and the input line level is latched at the match tick before
// the handler runs, regardless of how late the handler is dispatched.
// Handler dispatch latency is configurable per channel so tests can
// verify the engines survive it.
