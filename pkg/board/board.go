// Package board assembles the simulated device: the timer-driven
// serial port, the LED matrix display and the main control loop that
// sleeps between received bytes.
package board

import (
	"context"
	"flag"
	"os"
	"strconv"

	"github.com/golang/glog"

	"github.com/mcusim/softuart/pkg/sim"
	"github.com/mcusim/softuart/pkg/uart"
)

// Config provides the board parameters.
type Config struct {
	// ClockHZ is the timer clock rate.
	ClockHZ int
	// Baud is the serial bit rate.
	Baud int
	// Banner is printed over the serial line at startup.
	Banner string
}

var defaultConfig = Config{
	ClockHZ: 1000000,
	Baud:    9600,
	Banner:  "softuart\r\nREADY.\r\n",
}

func init() {
	if val := os.Getenv("SOFTUART_CLOCK_HZ"); val != "" {
		if hz, err := strconv.Atoi(val); err == nil {
			defaultConfig.ClockHZ = hz
		}
	}
	if val := os.Getenv("SOFTUART_BAUD"); val != "" {
		if baud, err := strconv.Atoi(val); err == nil {
			defaultConfig.Baud = baud
		}
	}
}

// SetupFlags sets up command line flags.
func SetupFlags() {
	flag.IntVar(&defaultConfig.ClockHZ, "clock-hz", defaultConfig.ClockHZ, "Timer clock rate in Hz.")
	flag.IntVar(&defaultConfig.Baud, "baud", defaultConfig.Baud, "Serial baud rate.")
}

// NewConfig creates a Config with default configurations.
func NewConfig() *Config {
	conf := defaultConfig
	return &conf
}

// Board is the simulated device. Its Run loop is the firmware main
// loop: sleep until the receive engine stores a byte, dispatch it to
// the display, echo it back.
type Board struct {
	Config  *Config
	Timer   *sim.Timer
	Port    *uart.Endpoint
	Display *Display

	txLine *sim.Line
	rxLine *sim.Line
}

// NewBoard builds the board from config.
func NewBoard(conf *Config) *Board {
	b := &Board{
		Config: conf,
		Timer:  sim.NewTimer(),
		txLine: sim.NewLine(),
		rxLine: sim.NewLine(),
	}
	timing := uart.ComputeTiming(conf.ClockHZ, conf.Baud)
	b.Port = uart.NewEndpoint(b.Timer, b.txLine, b.rxLine, timing)
	b.Display = NewDisplay()
	b.Display.On()
	return b
}

// Lines returns the device-side tx and rx lines for wiring a peer.
func (b *Board) Lines() (tx, rx *sim.Line) {
	return b.txLine, b.rxLine
}

// Run implements framework.Runnable. It never returns on its own;
// the device runs until power-off, i.e. ctx cancellation.
func (b *Board) Run(ctx context.Context) error {
	if banner := b.Config.Banner; banner != "" {
		if err := b.Port.Print(ctx, banner); err != nil {
			return err
		}
	}
	for {
		rx, err := b.Port.Mbox.Wait(ctx)
		if err != nil {
			return err
		}
		glog.V(2).Infof("dispatch %#02x", rx)
		b.Display.SetRow(0, uint16(rx))
		if err := b.Port.Tx.Submit(ctx, rx); err != nil {
			return err
		}
	}
}
