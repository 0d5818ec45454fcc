package isodate

import (
	"fmt"
	"slices"
)

// Column is an ordered, named sequence of values.
type Column[T any] struct {
	Name   string
	Values []T
}

// NewColumn creates a column holding a copy of values. Values is never nil,
// so an empty column encodes as an empty list.
func NewColumn[T any](name string, values ...T) Column[T] {
	return Column[T]{Name: name, Values: append(make([]T, 0, len(values)), values...)}
}

// Len returns the number of values in the column.
func (c Column[T]) Len() int {
	return len(c.Values)
}

// Equal reports whether two columns have the same name and the same values
// in the same order.
func Equal[T comparable](a, b Column[T]) bool {
	return a.Name == b.Name && slices.Equal(a.Values, b.Values)
}

// Input is either a single value or a column of values.
type Input struct {
	value  string
	column *Column[string]
}

// Scalar wraps a single value.
func Scalar(s string) Input {
	return Input{value: s}
}

// Series wraps a column.
func Series(c Column[string]) Input {
	return Input{column: &c}
}

// Value returns the single value and true, or false for a column input.
func (in Input) Value() (string, bool) {
	return in.value, in.column == nil
}

// Column returns the column and true, or false for a single value.
func (in Input) Column() (Column[string], bool) {
	if in.column == nil {
		return Column[string]{}, false
	}
	return *in.column, true
}

// InputFrom converts decoded, untyped data into an Input. Strings become
// single values; []string, []any and Column[string] become columns named
// name. Anything else is a *TypeError.
func InputFrom(name string, v any) (Input, error) {
	switch v := v.(type) {
	case string:
		return Scalar(v), nil
	case []string:
		return Series(NewColumn(name, v...)), nil
	case []any:
		c, err := ColumnFromAny(name, v)
		if err != nil {
			return Input{}, err
		}
		return Series(c), nil
	case Column[string]:
		return Series(v), nil
	default:
		return Input{}, &TypeError{Column: name, Index: -1, Got: typeName(v)}
	}
}

// ColumnFromAny builds a text column from untyped values. Every non-string
// element is reported.
func ColumnFromAny(name string, values []any) (Column[string], error) {
	out := make([]string, len(values))
	var errs []error
	for i, v := range values {
		s, ok := v.(string)
		if !ok {
			errs = append(errs, &TypeError{Column: name, Index: i, Got: typeName(v)})
			continue
		}
		out[i] = s
	}
	if len(errs) > 0 {
		return Column[string]{}, &ColumnError{Column: name, Errs: errs}
	}
	return Column[string]{Name: name, Values: out}, nil
}

func typeName(v any) string {
	if v == nil {
		return "null"
	}
	return fmt.Sprintf("%T", v)
}
