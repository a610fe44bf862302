package sim

import "sync"

// Level is a logic level on a wire.
type Level bool

// Serial line levels. An idle line rests at mark; a start bit pulls
// it to space.
const (
	Mark  Level = true
	Space Level = false
)

// Bit returns the level as a data bit.
func (l Level) Bit() byte {
	if l {
		return 1
	}
	return 0
}

// Line is a point-to-point wire between one driving pin and any
// number of sensing pins.
type Line struct {
	lock  sync.Mutex
	level Level
}

// NewLine creates a Line resting at mark.
func NewLine() *Line {
	return &Line{level: Mark}
}

// Set drives the line to level.
func (l *Line) Set(level Level) {
	l.lock.Lock()
	l.level = level
	l.lock.Unlock()
}

// Level senses the current line level.
func (l *Line) Level() Level {
	l.lock.Lock()
	defer l.lock.Unlock()
	return l.level
}
