package clock

import "errors"

// Sentinel error kinds for this package.
var (
	ErrAlreadyRunning = errors.New("timer already running")
)
