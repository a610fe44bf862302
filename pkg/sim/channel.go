package sim

// Event describes a channel interrupt.
type Event struct {
	// Capture is true for an input-edge event, false for a
	// compare match.
	Capture bool
	// Count is the counter value at the edge or match, not at
	// handler dispatch.
	Count uint16
	// Latch is the input level latched by hardware at Count.
	Latch Level
}

// Handler services channel events. It runs in handler context: the
// timer lock is held and channel methods may be called directly.
type Handler func(ch *Channel, ev Event)

// Channel is one capture/compare unit of a Timer. In capture mode it
// records the counter at a falling edge of the input line; in compare
// mode it fires when the counter equals the programmed target,
// latching the input level at the match tick.
//
// All methods must be called from handler context or inside
// Timer.Critical.
type Channel struct {
	tmr     *Timer
	in      *Line
	out     *Line
	handler Handler

	capture bool
	target  uint16
	irqEn   bool
	lastIn  Level
	latch   Level

	nextOut     Level
	nextOutArmd bool

	delay     uint16
	deferred  Event
	deferDue  uint16
	deferArmd bool
}

// BindInput attaches the sensed line.
func (c *Channel) BindInput(l *Line) *Channel {
	c.in = l
	c.lastIn = l.Level()
	return c
}

// BindOutput attaches the driven line.
func (c *Channel) BindOutput(l *Line) *Channel {
	c.out = l
	return c
}

// OnEvent installs the interrupt handler.
func (c *Channel) OnEvent(h Handler) *Channel {
	c.handler = h
	return c
}

// SetCapture switches between capture mode (true) and compare mode.
// Entering capture mode resynchronizes edge detection to the current
// line level, so a level settled during compare mode is not taken as
// an edge.
func (c *Channel) SetCapture(on bool) {
	c.capture = on
	if on && c.in != nil {
		c.lastIn = c.in.Level()
	}
}

// Capturing reports whether the channel is in capture mode.
func (c *Channel) Capturing() bool {
	return c.capture
}

// SetTarget programs the absolute counter value of the next compare
// match.
func (c *Channel) SetTarget(count uint16) {
	c.target = count
}

// Target returns the programmed compare target.
func (c *Channel) Target() uint16 {
	return c.target
}

// EnableIRQ unmasks the channel interrupt.
func (c *Channel) EnableIRQ() {
	c.irqEn = true
	if c.in != nil {
		c.lastIn = c.in.Level()
	}
}

// DisableIRQ masks the channel interrupt.
func (c *Channel) DisableIRQ() {
	c.irqEn = false
}

// Enabled reports whether the channel interrupt is unmasked.
func (c *Channel) Enabled() bool {
	return c.irqEn
}

// Drive sets the output line level immediately.
func (c *Channel) Drive(level Level) {
	if c.out != nil {
		c.out.Set(level)
	}
}

// DriveNext latches level into the output unit; hardware drives it
// on the line at the next compare match tick, independent of handler
// dispatch latency.
func (c *Channel) DriveNext(level Level) {
	c.nextOut = level
	c.nextOutArmd = true
}

// Latch returns the input level latched at the last edge or match.
func (c *Channel) Latch() Level {
	return c.latch
}

// SetDelay injects a handler dispatch latency of d ticks on
// subsequent events. The hardware actions of an event (edge
// timestamp, input latch) still happen at the edge or match tick; d
// must stay below the shortest event period.
func (c *Channel) SetDelay(d uint16) {
	c.delay = d
}

func (c *Channel) step(count uint16) {
	if c.deferArmd && count == c.deferDue {
		c.deferArmd = false
		c.handler(c, c.deferred)
	}
	if !c.irqEn {
		if c.in != nil {
			c.lastIn = c.in.Level()
		}
		return
	}
	if c.capture {
		if c.in == nil {
			return
		}
		level := c.in.Level()
		if c.lastIn == Mark && level == Space {
			c.latch = level
			c.fire(count, Event{Capture: true, Count: count, Latch: level})
		}
		c.lastIn = level
		return
	}
	if count == c.target {
		if c.nextOutArmd {
			c.nextOutArmd = false
			c.Drive(c.nextOut)
		}
		if c.in != nil {
			c.latch = c.in.Level()
		}
		c.fire(count, Event{Count: count, Latch: c.latch})
	}
}

func (c *Channel) fire(count uint16, ev Event) {
	if c.handler == nil {
		return
	}
	if c.delay == 0 {
		c.handler(c, ev)
		return
	}
	c.deferred = ev
	c.deferDue = count + c.delay
	c.deferArmd = true
}
