// Package config defines the observation protocol configuration and
// loading hooks.
//
// Conventions:
// - Keep fields unexported where possible and use functional options.
// - Provide New(...) initializer to build a Config with defaults.
// - External errors must be wrapped via this package's error helpers.
package config

import (
	"context"
)

// Timer method values accepted by Validate.
const (
	TimerMethodTimepoint = "timepoint"
	TimerMethodInterval  = "interval"
)

// defaultTimerInterval is the interval recording cadence in seconds when
// the configuration does not set one.
const defaultTimerInterval = 120

// Action describes one observation button: a short label recorded as the
// event response and a longer tooltip text. Image paths are passthrough
// for rendering collaborators.
type Action struct {
	Label string `koanf:"label"`
	Text  string `koanf:"text"`
	Image string `koanf:"image"`
}

// Config contains the observation protocol configuration. The core reads
// the timer settings and the label lists; colors and images are carried
// for rendering collaborators and treated as opaque here.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Protocol names the observation protocol, written to exports.
	Protocol string `koanf:"protocol"`

	// TimerMethod selects the recording mode: "timepoint" or "interval".
	TimerMethod string `koanf:"timer_method"`

	// TimerInterval is the interval flush cadence in seconds.
	TimerInterval int `koanf:"timer_interval"`

	// StudentActions, InstructorActions, and EngagementImages define the
	// buttons per category; their order defines the response ordering
	// used when a loaded table is sorted.
	StudentActions    []Action `koanf:"student_actions"`
	InstructorActions []Action `koanf:"instructor_actions"`
	EngagementImages  []Action `koanf:"engagement_images"`

	// CategoryOrder fixes the presentation order of categories.
	CategoryOrder []string `koanf:"category_order"`

	// Colors maps category names to hex colors, passthrough for renderers.
	Colors map[string]string `koanf:"colors"`
}

// New creates a Config using built-in defaults. Context is accepted first
// to satisfy the project-wide convention; it is reserved for future use.
func New(_ context.Context) *Config {
	return &Config{
		LogLevel:      "info",
		Protocol:      "Default",
		TimerMethod:   TimerMethodTimepoint,
		TimerInterval: defaultTimerInterval,
		StudentActions: []Action{
			{Label: "Raised Hand", Text: "Student raised a hand"},
			{Label: "Question", Text: "Student asked a question"},
			{Label: "OffTask", Text: "Student off task"},
		},
		InstructorActions: []Action{
			{Label: "Lecturing", Text: "Instructor lecturing"},
			{Label: "Discussion", Text: "Instructor leading discussion"},
			{Label: "Waiting", Text: "Instructor waiting"},
		},
		EngagementImages: []Action{
			{Label: "High", Text: "Most students engaged"},
			{Label: "Medium", Text: "About half engaged"},
			{Label: "Low", Text: "Few students engaged"},
		},
		CategoryOrder: []string{"Student", "Instructor", "Comment", "Engagement"},
		Colors: map[string]string{
			"student":    "#F46715",
			"engagement": "#4169E1",
			"instructor": "#0C8346",
			"comments":   "#808080",
		},
	}
}

// Validate checks the fields the core depends on.
func (c *Config) Validate() error {
	if c.TimerMethod != TimerMethodTimepoint && c.TimerMethod != TimerMethodInterval {
		return ErrInvalidTimerMethod
	}
	if c.TimerMethod == TimerMethodInterval && c.TimerInterval <= 0 {
		return ErrInvalidTimerInterval
	}
	return nil
}
