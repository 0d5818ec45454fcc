package isodate

import (
	"fmt"
	"strings"
)

// TypeError reports an input, or a column element, that is not text.
type TypeError struct {
	Column string // Column name (empty for a single value)
	Index  int    // Element position, or -1 when the input itself has the wrong shape
	Got    string // Go type of the offending value
}

func (e *TypeError) Error() string {
	if e.Index < 0 {
		return fmt.Sprintf("unsupported input type %s: expected a string or a column of strings", e.Got)
	}
	return fmt.Sprintf("position %d: unsupported element type %s: all elements must be strings", e.Index, e.Got)
}

// FormatError reports a value that does not match the YYYY-MM-DDThh:mm:ss grid.
type FormatError struct {
	Index int // Position in the column, or -1 for a single value
	Value string
}

func (e *FormatError) Error() string {
	msg := fmt.Sprintf("invalid date-time %q: expected YYYY-MM-DDThh:mm:ss", e.Value)
	if e.Index >= 0 {
		return fmt.Sprintf("position %d: %s", e.Index, msg)
	}
	return msg
}

// RangeError reports a value whose grid matched but whose field is out of
// bounds. Err holds the calendar parse failure when there is one.
type RangeError struct {
	Index int
	Field string
	Value string
	Min   int
	Max   int
	Err   error
}

func (e *RangeError) Error() string {
	var msg string
	if e.Err != nil {
		msg = fmt.Sprintf("%s out of range in %q: %v", e.Field, e.Value, e.Err)
	} else {
		msg = fmt.Sprintf("%s out of range [%d, %d] in %q", e.Field, e.Min, e.Max, e.Value)
	}
	if e.Index >= 0 {
		return fmt.Sprintf("position %d: %s", e.Index, msg)
	}
	return msg
}

func (e *RangeError) Unwrap() error {
	return e.Err
}

// ColumnError collects the per-position failures of a column call, in
// positional order.
type ColumnError struct {
	Column string
	Errs   []error
}

func (e *ColumnError) Error() string {
	name := e.Column
	if name == "" {
		name = "column"
	}
	if len(e.Errs) == 1 {
		return fmt.Sprintf("%s: %v", name, e.Errs[0])
	}

	positions := make([]string, len(e.Errs))
	for i, p := range e.Positions() {
		positions[i] = fmt.Sprint(p)
	}
	return fmt.Sprintf("%s: %d invalid values at positions %s: %v",
		name, len(e.Errs), strings.Join(positions, ", "), e.Errs[0])
}

func (e *ColumnError) Unwrap() []error {
	return e.Errs
}

// Positions returns the offending element positions.
func (e *ColumnError) Positions() []int {
	positions := make([]int, 0, len(e.Errs))
	for _, err := range e.Errs {
		switch err := err.(type) {
		case *FormatError:
			positions = append(positions, err.Index)
		case *RangeError:
			positions = append(positions, err.Index)
		case *TypeError:
			positions = append(positions, err.Index)
		}
	}
	return positions
}
