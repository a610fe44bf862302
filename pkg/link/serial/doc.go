// Package serial links the simulated serial line to a host tty in
// raw 8N1 mode, so the device can sit behind a real serial cable or
// a pty.
package serial
