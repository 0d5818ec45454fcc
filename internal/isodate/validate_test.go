package isodate

import (
	"errors"
	"reflect"
	"testing"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"valid", "2025-01-15T10:20:30", false},
		{"midnight", "2025-01-01T00:00:00", false},
		{"grid only", "9999-99-99T99:99:99", false},
		{"all zeros", "0000-00-00T00:00:00", false},

		// Error cases
		{"empty string", "", true},
		{"letters in day", "2025-01-XYZT10:20:30", true},
		{"date only", "2025-01-15", true},
		{"time only", "10:20:30", true},
		{"space separator", "2025-01-15 10:20:30", true},
		{"lowercase t", "2025-01-15t10:20:30", true},
		{"slash separators", "2025/01/15T10:20:30", true},
		{"zulu suffix", "2025-01-15T10:20:30Z", true},
		{"offset suffix", "2025-01-15T10:20:30+02:00", true},
		{"fractional seconds", "2025-01-15T10:20:30.123", true},
		{"leading space", " 2025-01-15T10:20:30", true},
		{"trailing newline", "2025-01-15T10:20:30\n", true},
		{"short year", "225-01-15T10:20:30", true},
		{"single digit month", "2025-1-15T10:20:30", true},
		{"non-ascii digit", "2025-01-1٥T10:20:30", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if !tt.wantErr {
				return
			}

			var fe *FormatError
			if !errors.As(err, &fe) {
				t.Fatalf("Validate(%q) error = %T, want *FormatError", tt.input, err)
			}
			if fe.Value != tt.input {
				t.Errorf("FormatError.Value = %q, want %q", fe.Value, tt.input)
			}
			if fe.Index != -1 {
				t.Errorf("FormatError.Index = %d, want -1", fe.Index)
			}
		})
	}
}

func TestValidateColumn(t *testing.T) {
	tests := []struct {
		name          string
		values        []string
		wantPositions []int
	}{
		{
			name:   "empty column",
			values: []string{},
		},
		{
			name:   "nil column",
			values: nil,
		},
		{
			name:   "all valid",
			values: []string{"2025-01-17T10:20:30", "2025-12-25T08:00:00"},
		},
		{
			name:          "one invalid",
			values:        []string{"2025-01-17T10:20:30", "2025-02-XYZT15:45:00", "2025-12-25T08:00:00"},
			wantPositions: []int{1},
		},
		{
			name:          "every invalid position reported",
			values:        []string{"invalid_date", "2025-01-17T10:20:30", "", "2025-12-25"},
			wantPositions: []int{0, 2, 3},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateColumn(NewColumn("dates", tt.values...))
			if len(tt.wantPositions) == 0 {
				if err != nil {
					t.Fatalf("ValidateColumn() unexpected error: %v", err)
				}
				return
			}

			var ce *ColumnError
			if !errors.As(err, &ce) {
				t.Fatalf("ValidateColumn() error = %v, want *ColumnError", err)
			}
			if ce.Column != "dates" {
				t.Errorf("ColumnError.Column = %q, want %q", ce.Column, "dates")
			}
			if got := ce.Positions(); !reflect.DeepEqual(got, tt.wantPositions) {
				t.Errorf("ColumnError.Positions() = %v, want %v", got, tt.wantPositions)
			}

			var fe *FormatError
			if !errors.As(err, &fe) {
				t.Errorf("ValidateColumn() error does not wrap *FormatError: %v", err)
			}
			for _, e := range ce.Errs {
				if _, ok := e.(*FormatError); !ok {
					t.Errorf("ColumnError.Errs contains %T, want only *FormatError", e)
				}
			}
		})
	}
}
