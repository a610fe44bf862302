package uart

// Timing holds the timer tick counts for one bit period and one half
// bit period at a given clock and baud rate. Values are computed once
// and never change for the life of the port.
type Timing struct {
	Bit     uint16
	HalfBit uint16
}

// ComputeTiming derives Timing from the timer clock rate and the
// baud rate. The caller picks a clock/baud pair whose rounding error
// stays within a few percent of a bit period; 8N1 framing tolerates
// no more across its 10-bit frame.
func ComputeTiming(clockHZ, baud int) Timing {
	return Timing{
		Bit:     uint16(clockHZ / baud),
		HalfBit: uint16(clockHZ / (2 * baud)),
	}
}
