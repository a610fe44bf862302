//go:build !linux
// +build !linux

package serial

import "errors"

// Port is an open host serial device in raw 8N1 mode.
type Port struct{}

// Open is unsupported on this platform.
func Open(name string, baud int) (*Port, error) {
	return nil, errors.New("host serial link not supported on this platform")
}

// Name returns the device path.
func (p *Port) Name() string { return "" }

// Read implements io.Reader.
func (p *Port) Read(buf []byte) (int, error) { return 0, errors.New("not supported") }

// Write implements io.Writer.
func (p *Port) Write(buf []byte) (int, error) { return 0, errors.New("not supported") }

// Close implements io.Closer.
func (p *Port) Close() error { return nil }
