// Package uart implements a software serial port on two
// capture/compare channels of a hardware timer, 8N1 framing,
// LSB first.
package uart

// Both engines schedule by absolute counter targets: each bit edge or
// sample point is the previous target plus one bit period, never "now
// plus one bit period". Handler dispatch latency therefore cannot
// accumulate into the bit timing. The receive path additionally
// samples from the channel's input latch, taken by hardware at the
// match tick, so a late handler still reads the level that stood at
// the bit center.
