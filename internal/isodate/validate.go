// Package isodate extracts calendar fields from YYYY-MM-DDThh:mm:ss strings.
//
// Every operation has a single-value form and a column form. Column forms
// report every offending position rather than stopping at the first one,
// and never return partial results.
package isodate

import "regexp"

// The pattern checks the digit grid only, not calendar ranges.
var pattern = regexp.MustCompile(`^[0-9]{4}-[0-9]{2}-[0-9]{2}T[0-9]{2}:[0-9]{2}:[0-9]{2}$`)

// Validate checks that s matches the YYYY-MM-DDThh:mm:ss digit grid.
// "9999-99-99T99:99:99" is valid.
func Validate(s string) error {
	return validate(-1, s)
}

// ValidateColumn validates every value in c. An empty column is valid.
func ValidateColumn(c Column[string]) error {
	var errs []error
	for i, s := range c.Values {
		if err := validate(i, s); err != nil {
			errs = append(errs, err)
		}
	}
	if len(errs) > 0 {
		return &ColumnError{Column: c.Name, Errs: errs}
	}
	return nil
}

func validate(index int, s string) error {
	if !pattern.MatchString(s) {
		return &FormatError{Index: index, Value: s}
	}
	return nil
}
