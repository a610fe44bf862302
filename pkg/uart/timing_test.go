package uart

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestComputeTiming(t *testing.T) {
	testCases := []struct {
		name    string
		clockHZ int
		baud    int
		expect  Timing
	}{
		{
			name:    "1MHz 9600",
			clockHZ: 1000000,
			baud:    9600,
			expect:  Timing{Bit: 104, HalfBit: 52},
		},
		{
			name:    "1MHz 4800",
			clockHZ: 1000000,
			baud:    4800,
			expect:  Timing{Bit: 208, HalfBit: 104},
		},
		{
			name:    "1MHz 115200",
			clockHZ: 1000000,
			baud:    115200,
			expect:  Timing{Bit: 8, HalfBit: 4},
		},
		{
			name:    "32kHz watch crystal 1200",
			clockHZ: 32768,
			baud:    1200,
			expect:  Timing{Bit: 27, HalfBit: 13},
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.expect, ComputeTiming(tc.clockHZ, tc.baud))
		})
	}
}
