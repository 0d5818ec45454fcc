package runner

import (
	"bytes"
	"strings"
	"sync"
	"testing"

	"github.com/jparise/gh-isofields/internal/isodate"
)

func TestNewOutput(t *testing.T) {
	tests := []struct {
		name       string
		colorize   bool
		hyperlinks bool
	}{
		{
			name:       "with colors and hyperlinks",
			colorize:   true,
			hyperlinks: true,
		},
		{
			name:       "with colors only",
			colorize:   true,
			hyperlinks: false,
		},
		{
			name:       "without colors or hyperlinks",
			colorize:   false,
			hyperlinks: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stdout := &bytes.Buffer{}
			stderr := &bytes.Buffer{}

			output := NewOutput(stdout, stderr, tt.colorize, tt.hyperlinks)
			colorFuncs := []struct {
				name string
				fn   func(string) string
			}{
				{"cyan", output.cyan},
				{"green", output.green},
				{"white", output.white},
				{"yellow", output.yellow},
				{"red", output.red},
			}
			for _, cf := range colorFuncs {
				if cf.fn == nil {
					t.Errorf("NewOutput() %s color func is nil", cf.name)
				}
				s := cf.fn("test")
				if tt.colorize {
					if s == "test" {
						t.Errorf("NewOutput() expected %s color func to return ANSI codes", cf.name)
					}
				} else {
					if s != "test" {
						t.Errorf("NewOutput() expected %s color func to return plain string, got %q", cf.name, s)
					}
				}
			}
		})
	}
}

func TestValue(t *testing.T) {
	tests := []struct {
		name       string
		column     string
		url        string
		index      int
		value      any
		hyperlinks bool
		want       string
	}{
		{
			name:  "unnamed single value",
			index: -1,
			value: 2023,
			want:  "2023\n",
		},
		{
			name:   "named single value",
			column: "dates.yaml",
			index:  -1,
			value:  isodate.TimeOfDay{Hour: 12, Minute: 34, Second: 56},
			want:   "dates.yaml:12:34:56\n",
		},
		{
			name:   "column element",
			column: "args",
			index:  2,
			value:  7,
			want:   "args:2:7\n",
		},
		{
			name:       "column element with hyperlink",
			column:     "cli/cli:dates.txt",
			url:        "https://github.com/cli/cli/blob/trunk/dates.txt",
			index:      0,
			value:      16,
			hyperlinks: true,
			want:       makeHyperlink("https://github.com/cli/cli/blob/trunk/dates.txt", "cli/cli:dates.txt") + ":0:16\n",
		},
		{
			name:       "hyperlinks without url",
			column:     "dates.txt",
			index:      0,
			value:      16,
			hyperlinks: true,
			want:       "dates.txt:0:16\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stdout := &bytes.Buffer{}
			stderr := &bytes.Buffer{}

			output := NewOutput(stdout, stderr, false, tt.hyperlinks)
			output.Value(tt.column, tt.url, tt.index, tt.value)

			if got := stdout.String(); got != tt.want {
				t.Errorf("Value() output = %q, want %q", got, tt.want)
			}
			if stderr.Len() != 0 {
				t.Errorf("Value() wrote to stderr: %q", stderr.String())
			}
		})
	}
}

func TestValid(t *testing.T) {
	tests := []struct {
		name   string
		column string
		count  int
		want   string
	}{
		{"single value", "", -1, "value: valid\n"},
		{"named single value", "dates.json", -1, "dates.json: valid\n"},
		{"column", "args", 3, "args: valid (3 values)\n"},
		{"empty column", "stdin", 0, "stdin: valid (0 values)\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stdout := &bytes.Buffer{}
			output := NewOutput(stdout, &bytes.Buffer{}, false, false)

			output.Valid(tt.column, "", tt.count)
			if got := stdout.String(); got != tt.want {
				t.Errorf("Valid() output = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestEncode(t *testing.T) {
	records := []record{
		{Name: "args", Field: FieldTime, Valid: true, Count: 1, Values: []any{isodate.TimeOfDay{Hour: 8}}},
	}

	tests := []struct {
		name    string
		format  OutputFormat
		want    []string
		wantErr bool
	}{
		{
			name:   "json",
			format: OutputJSON,
			want:   []string{`"name": "args"`, `"field": "time"`, `"08:00:00"`},
		},
		{
			name:   "yaml",
			format: OutputYAML,
			want:   []string{"name: args", "field: time", "08:00:00"},
		},
		{
			name:    "text is not encodable",
			format:  OutputText,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stdout := &bytes.Buffer{}
			output := NewOutput(stdout, &bytes.Buffer{}, false, false)

			err := output.Encode(tt.format, records)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Encode() error = %v, wantErr %v", err, tt.wantErr)
			}
			for _, want := range tt.want {
				if !strings.Contains(stdout.String(), want) {
					t.Errorf("Encode() output = %q, want to contain %q", stdout.String(), want)
				}
			}
		})
	}
}

func TestWarningf(t *testing.T) {
	tests := []struct {
		name   string
		format string
		args   []any
		want   string
	}{
		{
			name:   "simple warning",
			format: "something went wrong",
			want:   "Warning: something went wrong",
		},
		{
			name:   "with format args",
			format: "%s/%s has %d files",
			args:   []any{"owner", "repo", 100000},
			want:   "Warning: owner/repo has 100000 files",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stdout := &bytes.Buffer{}
			stderr := &bytes.Buffer{}
			output := NewOutput(stdout, stderr, false, false)

			output.Warningf(tt.format, tt.args...)
			got := stderr.String()

			if !strings.Contains(got, tt.want) {
				t.Errorf("Warningf() output = %q, want to contain %q", got, tt.want)
			}

			if stdout.Len() != 0 {
				t.Errorf("Warningf() wrote to stdout: %q", stdout.String())
			}
		})
	}
}

func TestErrorf(t *testing.T) {
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	output := NewOutput(stdout, stderr, false, false)

	output.Errorf("%s: %v", "args", "position 1: bad")

	if got, want := stderr.String(), "Error: args: position 1: bad\n"; got != want {
		t.Errorf("Errorf() output = %q, want %q", got, want)
	}
	if stdout.Len() != 0 {
		t.Errorf("Errorf() wrote to stdout: %q", stdout.String())
	}
}

func TestOutputThreadSafety(t *testing.T) {
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	output := NewOutput(stdout, stderr, false, false)

	const numGoroutines = 10
	const numCalls = 100

	var wg sync.WaitGroup
	wg.Add(numGoroutines * 3)

	for range numGoroutines {
		go func() {
			defer wg.Done()
			for i := range numCalls {
				output.Value("args", "", i, 2023)
			}
		}()
		go func() {
			defer wg.Done()
			for range numCalls {
				output.Warningf("warning")
			}
		}()
		go func() {
			defer wg.Done()
			for range numCalls {
				output.Errorf("error")
			}
		}()
	}

	wg.Wait()

	stdoutLines := strings.Count(stdout.String(), "\n")
	stderrLines := strings.Count(stderr.String(), "\n")

	if want := numGoroutines * numCalls; stdoutLines != want {
		t.Errorf("stdout lines = %d, want %d", stdoutLines, want)
	}
	if want := numGoroutines * numCalls * 2; stderrLines != want {
		t.Errorf("stderr lines = %d, want %d (Warningf + Errorf)", stderrLines, want)
	}
}
