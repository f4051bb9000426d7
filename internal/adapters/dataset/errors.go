package dataset

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel error kinds for this package. These allow errors.Is/As from callers.
var (
	ErrRead   = errors.New("read observation file failed")
	ErrParse  = errors.New("parse observation file failed")
	ErrSchema = errors.New("invalid observation file format")
)

// SchemaError reports a file whose header lacks required columns.
type SchemaError struct {
	Required []string
}

// NewSchemaError builds a SchemaError carrying the required column set.
func NewSchemaError(required []string) *SchemaError {
	return &SchemaError{Required: required}
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("invalid observation file format - requires %s columns", strings.Join(e.Required, ", "))
}

// Is makes errors.Is(err, ErrSchema) succeed for SchemaError values.
func (e *SchemaError) Is(target error) bool {
	return target == ErrSchema
}
