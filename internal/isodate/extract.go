package isodate

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// TimeOfDay is an hour, minute and second triple.
type TimeOfDay struct {
	Hour   int
	Minute int
	Second int
}

// String renders the time as hh:mm:ss.
func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d:%02d", t.Hour, t.Minute, t.Second)
}

// MarshalText renders the time as hh:mm:ss.
func (t TimeOfDay) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// Year returns the four digits of the year as written. No range check.
func Year(s string) (int, error) {
	return extract(-1, s, year)
}

// YearColumn applies Year to every value of c.
func YearColumn(c Column[string]) (Column[int], error) {
	return extractColumn(c, year)
}

// Month returns the month (1-12). The date portion is parsed as a calendar
// date, so a grid-valid month such as "13" is a *RangeError.
func Month(s string) (int, error) {
	return extract(-1, s, month)
}

// MonthColumn applies Month to every value of c.
func MonthColumn(c Column[string]) (Column[int], error) {
	return extractColumn(c, month)
}

// Day returns the day of the month (1-31). The day is not checked against
// the length of the month: "2025-02-31" yields 31.
func Day(s string) (int, error) {
	return extract(-1, s, day)
}

// DayColumn applies Day to every value of c.
func DayColumn(c Column[string]) (Column[int], error) {
	return extractColumn(c, day)
}

// Time returns the time of day. The portion after the "T" is parsed as a
// clock time, so an hour of 24 or a minute of 60 is a *RangeError.
func Time(s string) (TimeOfDay, error) {
	return extract(-1, s, clock)
}

// TimeColumn applies Time to every value of c.
func TimeColumn(c Column[string]) (Column[TimeOfDay], error) {
	return extractColumn(c, clock)
}

// field reads one field from a value that already passed validation.
type field[T any] func(index int, s string) (T, error)

func extract[T any](index int, s string, fn field[T]) (T, error) {
	if err := validate(index, s); err != nil {
		var zero T
		return zero, err
	}
	return fn(index, s)
}

// extractColumn validates the whole column before extracting anything, so
// format errors are reported ahead of range errors.
func extractColumn[T any](c Column[string], fn field[T]) (Column[T], error) {
	if err := ValidateColumn(c); err != nil {
		return Column[T]{}, err
	}

	out := make([]T, len(c.Values))
	var errs []error
	for i, s := range c.Values {
		v, err := fn(i, s)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		out[i] = v
	}
	if len(errs) > 0 {
		return Column[T]{}, &ColumnError{Column: c.Name, Errs: errs}
	}

	return Column[T]{Name: c.Name, Values: out}, nil
}

func year(_ int, s string) (int, error) {
	return strconv.Atoi(s[0:4])
}

func month(index int, s string) (int, error) {
	date, _, _ := strings.Cut(s, "T")
	t, err := time.Parse(time.DateOnly, date)
	if err != nil {
		return 0, &RangeError{Index: index, Field: "date", Value: s, Err: err}
	}
	return int(t.Month()), nil
}

func day(index int, s string) (int, error) {
	d, err := strconv.Atoi(s[8:10])
	if err != nil {
		return 0, err
	}
	if d < 1 || d > 31 {
		return 0, &RangeError{Index: index, Field: "day", Value: s, Min: 1, Max: 31}
	}
	return d, nil
}

func clock(index int, s string) (TimeOfDay, error) {
	_, hms, _ := strings.Cut(s, "T")
	t, err := time.Parse(time.TimeOnly, hms)
	if err != nil {
		return TimeOfDay{}, &RangeError{Index: index, Field: "time", Value: s, Err: err}
	}
	return TimeOfDay{Hour: t.Hour(), Minute: t.Minute(), Second: t.Second()}, nil
}
