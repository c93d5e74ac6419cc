package drill

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownColumn is reported when prefix+name is not in the schema
	ErrUnknownColumn = errors.New("unknown column")
	// ErrUnsupportedSignature is reported when a function cannot be lifted
	ErrUnsupportedSignature = errors.New("unsupported signature")
	// ErrNotExpression is reported when an environment-valued reader is used
	// where an expression is required
	ErrNotExpression = errors.New("not an expression")
	// ErrBadArguments is reported when a lifted function's arguments cannot
	// be bound to its parameters
	ErrBadArguments = errors.New("bad arguments")
)

// UnknownColumnError describes a failed field resolution
type UnknownColumnError struct {
	Name       string // logical field name
	Prefix     string // prefix active at resolution
	Suggestion string // closest schema column, if any
}

func (e *UnknownColumnError) Error() string {
	msg := fmt.Sprintf("%s: %q not in schema", ErrUnknownColumn, e.Prefix+e.Name)
	if e.Suggestion != "" {
		msg += fmt.Sprintf(" (did you mean %q?)", e.Suggestion)
	}
	return msg
}

func (e *UnknownColumnError) Is(target error) bool {
	return target == ErrUnknownColumn
}
