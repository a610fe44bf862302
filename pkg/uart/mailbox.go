package uart

import (
	"context"
	"sync"
)

// Mailbox is the one-slot register between the receive handler and
// the main loop, plus the wake signal ending the loop's sleep. A byte
// stored before the previous one is taken overwrites it; that loss is
// the accepted policy of an unbuffered port.
type Mailbox struct {
	lock sync.Mutex
	data byte
	full bool

	wakeCh chan struct{}
}

// NewMailbox creates an empty Mailbox.
func NewMailbox() *Mailbox {
	return &Mailbox{wakeCh: make(chan struct{}, 1)}
}

// Put stores a byte and wakes the waiter. Safe from handler context.
func (m *Mailbox) Put(b byte) {
	m.lock.Lock()
	m.data, m.full = b, true
	m.lock.Unlock()
	select {
	case m.wakeCh <- struct{}{}:
	default:
	}
}

// Take removes and returns the stored byte, if any.
func (m *Mailbox) Take() (byte, bool) {
	m.lock.Lock()
	defer m.lock.Unlock()
	if !m.full {
		return 0, false
	}
	m.full = false
	return m.data, true
}

// Wait sleeps until a byte is available or ctx ends. Nothing but Put
// wakes it; this is the reduced-power wait of the main loop.
func (m *Mailbox) Wait(ctx context.Context) (byte, error) {
	for {
		if b, ok := m.Take(); ok {
			return b, nil
		}
		select {
		case <-m.wakeCh:
		case <-ctx.Done():
			return 0, ctx.Err()
		}
	}
}
