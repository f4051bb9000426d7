package config

import (
	"errors"
)

// Sentinel error kinds for this package. These allow errors.Is/As from callers.
var (
	ErrInvalidConfig        = errors.New("invalid config")
	ErrLoadConfig           = errors.New("load config failed")
	ErrInvalidTimerMethod   = errors.New("timer_method must be \"timepoint\" or \"interval\"")
	ErrInvalidTimerInterval = errors.New("timer_interval must be positive for interval recording")
)
