package serial

import "fmt"

// BaudError indicates an unsupported baud rate.
type BaudError struct {
	Baud int
}

// Error implements error.
func (e *BaudError) Error() string {
	return fmt.Sprintf("unsupported baud rate %d", e.Baud)
}
