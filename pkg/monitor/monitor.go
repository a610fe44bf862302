// Package monitor serves the board display state to browsers over
// websocket as a stream of JSON frames.
package monitor

import (
	"context"
	"flag"
	"net/http"
	"os"
	"time"

	"github.com/golang/glog"
	"golang.org/x/net/websocket"

	"github.com/mcusim/softuart/pkg/board"
)

// Frame is one display snapshot sent to monitoring clients.
type Frame struct {
	Rows [board.RowCount]uint16 `json:"rows"`
}

// Config provides the monitor options.
type Config struct {
	// Addr is the HTTP listen address; empty disables the monitor.
	Addr string
	// Interval is the frame publish period.
	Interval time.Duration
}

var defaultConfig = Config{
	Interval: 100 * time.Millisecond,
}

func init() {
	if val := os.Getenv("SOFTUART_MONITOR_ADDR"); val != "" {
		defaultConfig.Addr = val
	}
}

// SetupFlags sets up command line flags.
func SetupFlags() {
	flag.StringVar(&defaultConfig.Addr, "monitor-addr", defaultConfig.Addr, "Monitor listen address, empty to disable.")
}

// NewConfig creates a Config with default configurations.
func NewConfig() *Config {
	conf := defaultConfig
	return &conf
}

// Server publishes display frames to connected websocket clients.
type Server struct {
	Config  *Config
	Display *board.Display
}

// NewServer creates the Server for a display.
func (c *Config) NewServer(d *board.Display) *Server {
	return &Server{Config: c, Display: d}
}

// Handler returns the websocket handler streaming frames.
func (s *Server) Handler() http.Handler {
	return websocket.Handler(s.serve)
}

// Run implements framework.Runnable.
func (s *Server) Run(ctx context.Context) error {
	mux := http.NewServeMux()
	mux.Handle("/state", s.Handler())
	srv := &http.Server{Addr: s.Config.Addr, Handler: mux}
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()
	glog.V(1).Infof("monitor listening on %s", s.Config.Addr)
	select {
	case <-ctx.Done():
		srv.Close()
		<-errCh
		return ctx.Err()
	case err := <-errCh:
		return err
	}
}

func (s *Server) serve(conn *websocket.Conn) {
	defer conn.Close()
	interval := s.Config.Interval
	if interval == 0 {
		interval = 100 * time.Millisecond
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for range ticker.C {
		if err := websocket.JSON.Send(conn, Frame{Rows: s.Display.Rows()}); err != nil {
			return
		}
	}
}
