//go:build linux
// +build linux

package serial

import (
	"golang.org/x/sys/unix"
)

// Port is an open host serial device in raw 8N1 mode.
type Port struct {
	name string
	fd   int
}

// Open opens the device and configures it raw, 8 data bits, no
// parity, 1 stop bit at the given baud rate.
func Open(name string, baud int) (*Port, error) {
	speed, ok := baudBits[baud]
	if !ok {
		return nil, &BaudError{Baud: baud}
	}
	fd, err := unix.Open(name, unix.O_RDWR|unix.O_NOCTTY, 0)
	if err != nil {
		return nil, err
	}
	port := &Port{name: name, fd: fd}
	tio, err := unix.IoctlGetTermios(fd, unix.TCGETS)
	if err != nil {
		port.Close()
		return nil, err
	}

	tio.Iflag &^= unix.IXON | unix.IXOFF | unix.IXANY | unix.INPCK |
		unix.IGNPAR | unix.PARMRK | unix.ISTRIP | unix.IGNBRK |
		unix.BRKINT | unix.INLCR | unix.IGNCR | unix.ICRNL | unix.IUCLC
	tio.Oflag &^= unix.OPOST
	tio.Lflag &^= unix.ICANON | unix.ECHO | unix.ECHOE | unix.ECHOK |
		unix.ECHONL | unix.ECHOCTL | unix.ECHOPRT | unix.ECHOKE |
		unix.ISIG | unix.IEXTEN

	tio.Cflag |= unix.CREAD | unix.CLOCAL | unix.CS8
	tio.Cflag &^= unix.PARENB | unix.CSTOPB | unix.CRTSCTS
	tio.Cflag &^= unix.CBAUD
	tio.Cflag |= speed
	tio.Ispeed = speed
	tio.Ospeed = speed

	// Block reads until at least one byte is available.
	tio.Cc[unix.VMIN] = 1
	tio.Cc[unix.VTIME] = 0

	if err = unix.IoctlSetTermios(fd, unix.TCSETS, tio); err != nil {
		port.Close()
		return nil, err
	}
	return port, nil
}

// Name returns the device path.
func (p *Port) Name() string {
	return p.name
}

// Read implements io.Reader.
func (p *Port) Read(buf []byte) (int, error) {
	return unix.Read(p.fd, buf)
}

// Write implements io.Writer.
func (p *Port) Write(buf []byte) (int, error) {
	return unix.Write(p.fd, buf)
}

// Close implements io.Closer.
func (p *Port) Close() error {
	return unix.Close(p.fd)
}

var baudBits = map[int]uint32{
	1200:   unix.B1200,
	2400:   unix.B2400,
	4800:   unix.B4800,
	9600:   unix.B9600,
	19200:  unix.B19200,
	38400:  unix.B38400,
	57600:  unix.B57600,
	115200: unix.B115200,
}
