package main

//go-build: CGO_ENABLED=0

import (
	"flag"
	"os"

	"github.com/golang/glog"

	"github.com/mcusim/softuart/pkg/board"
	fx "github.com/mcusim/softuart/pkg/framework"
	linkmqtt "github.com/mcusim/softuart/pkg/link/mqtt"
	linkserial "github.com/mcusim/softuart/pkg/link/serial"
	"github.com/mcusim/softuart/pkg/monitor"
	"github.com/mcusim/softuart/pkg/sim"
	"github.com/mcusim/softuart/pkg/uart"
)

var serialDev string

func init() {
	board.SetupFlags()
	linkmqtt.SetupFlags()
	monitor.SetupFlags()
	flag.StringVar(&serialDev, "serial-dev", os.Getenv("SOFTUART_SERIAL_DEV"), "Host tty to bridge instead of MQTT.")
}

func main() {
	flag.Parse()

	conf := board.NewConfig()
	brd := board.NewBoard(conf)

	// The terminal endpoint is the other end of the wire pair:
	// its transmitter drives the device's rx line and its
	// receiver senses the device's tx line.
	devTx, devRx := brd.Lines()
	termTimer := sim.NewTimer()
	term := uart.NewEndpoint(termTimer, devRx, devTx, uart.ComputeTiming(conf.ClockHZ, conf.Baud))

	osc := sim.NewOscillator(conf.ClockHZ, brd.Timer, termTimer)

	runner := fx.NewRunner().HandleSignals()
	runner.Go(
		fx.NamedRun("oscillator", osc),
		fx.NamedRun("board", brd),
	)

	if serialDev != "" {
		port, err := linkserial.Open(serialDev, conf.Baud)
		if err != nil {
			glog.Exitf("open %s: %v", serialDev, err)
		}
		runner.Go(fx.NamedRun("serial-link", linkserial.NewBridge(port, term)))
	} else {
		q, err := linkmqtt.NewConfig().NewQueue()
		if err != nil {
			glog.Exit(err)
		}
		q.Connect()
		defer q.Close()
		runner.Go(fx.NamedRun("mqtt-link", linkmqtt.NewBridge(q, term)))
	}

	if mconf := monitor.NewConfig(); mconf.Addr != "" {
		runner.Go(fx.NamedRun("monitor", mconf.NewServer(brd.Display)))
	}

	if err := runner.Wait(); err != nil {
		glog.Exit(err)
	}
}
