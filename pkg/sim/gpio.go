package sim

import "sync"

// Pin is a general-purpose output pin with optional change hooks.
type Pin struct {
	lock  sync.Mutex
	high  bool
	hooks []func(high bool)
}

// NewPin creates a low Pin.
func NewPin() *Pin {
	return &Pin{}
}

// Watch registers a hook invoked on every level change.
func (p *Pin) Watch(hook func(high bool)) *Pin {
	p.lock.Lock()
	p.hooks = append(p.hooks, hook)
	p.lock.Unlock()
	return p
}

// Set drives the pin.
func (p *Pin) Set(high bool) {
	p.lock.Lock()
	changed := p.high != high
	p.high = high
	hooks := p.hooks
	p.lock.Unlock()
	if changed {
		for _, hook := range hooks {
			hook(high)
		}
	}
}

// High reads the pin level.
func (p *Pin) High() bool {
	p.lock.Lock()
	defer p.lock.Unlock()
	return p.high
}
