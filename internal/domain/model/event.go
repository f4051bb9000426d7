// Package model contains domain models passed between layers.
package model

import (
	"strconv"
	"time"
)

// Category identifies the observation category an event belongs to.
type Category string

// Categories produced by the recording surfaces. The loader accepts
// arbitrary category strings from files; these are the ones this module
// writes itself.
const (
	CategoryStudent    Category = "Student"
	CategoryInstructor Category = "Instructor"
	CategoryEngagement Category = "Engagement"
	CategoryComment    Category = "Comment"
)

// Event is one timestamped observation record. Events are immutable once
// recorded; the collector only ever appends them.
type Event struct {
	Elapsed  float64  // seconds since session start, >= 0
	Category Category // e.g. "Student", "Engagement"
	Response string   // button label or comment text
	Value    Value    // optional numeric or free-text payload
}

// Session captures the identity of one recording from start to stop.
type Session struct {
	ID    string    // uuid assigned at start
	Start time.Time // wall-clock start instant
}

// valueKind discriminates the Value variants.
type valueKind int

const (
	valueNone valueKind = iota
	valueNumber
	valueText
)

// Value is the optional payload of an event: absent, a number, or free
// text (e.g. a comment body). The zero Value is absent.
type Value struct {
	kind valueKind
	num  float64
	text string
}

// NumberValue returns a numeric Value.
func NumberValue(n float64) Value {
	return Value{kind: valueNumber, num: n}
}

// TextValue returns a free-text Value.
func TextValue(s string) Value {
	return Value{kind: valueText, text: s}
}

// NoValue returns the absent Value.
func NoValue() Value {
	return Value{}
}

// ParseValue interprets a serialized cell: empty is absent, a float is
// numeric, anything else is text.
func ParseValue(s string) Value {
	if s == "" {
		return Value{}
	}
	if n, err := strconv.ParseFloat(s, 64); err == nil {
		return NumberValue(n)
	}
	return TextValue(s)
}

// IsZero reports whether the value is absent.
func (v Value) IsZero() bool {
	return v.kind == valueNone
}

// Float returns the numeric value and whether the value coerces to a
// number. Text and absent values do not coerce.
func (v Value) Float() (float64, bool) {
	if v.kind != valueNumber {
		return 0, false
	}
	return v.num, true
}

// String renders the value the way it is written to a file: numbers
// without a forced decimal point, text verbatim, absent as empty.
func (v Value) String() string {
	switch v.kind {
	case valueNumber:
		return strconv.FormatFloat(v.num, 'f', -1, 64)
	case valueText:
		return v.text
	default:
		return ""
	}
}
