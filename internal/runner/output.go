package runner

import (
	"encoding/json"
	"fmt"
	"io"
	"sync"

	"github.com/cli/go-gh/v2/pkg/auth"
	"github.com/mgutz/ansi"
	"gopkg.in/yaml.v3"
)

// Output handles all output formatting with optional color and hyperlink support.
type Output struct {
	mu         sync.Mutex
	stdout     io.Writer
	stderr     io.Writer
	hostname   string
	hyperlinks bool

	cyan   func(string) string
	green  func(string) string
	white  func(string) string
	yellow func(string) string
	red    func(string) string
}

// NewOutput creates a new Output with optional color and hyperlink support.
func NewOutput(stdout, stderr io.Writer, colorize, hyperlinks bool) *Output {
	hostname, _ := auth.DefaultHost()

	color := func(name string) func(string) string {
		if colorize {
			return ansi.ColorFunc(name)
		}
		return ansi.ColorFunc("")
	}

	return &Output{
		stdout:     stdout,
		stderr:     stderr,
		hostname:   hostname,
		hyperlinks: hyperlinks,
		cyan:       color("cyan"),
		green:      color("green+b"),
		white:      color("white"),
		yellow:     color("yellow"),
		red:        color("red+b"),
	}
}

func makeHyperlink(url, text string) string {
	return fmt.Sprintf("\033]8;;%s\033\\%s\033]8;;\033\\", url, text)
}

func (o *Output) name(name, url string) string {
	formatted := o.cyan(name)
	if o.hyperlinks && url != "" {
		formatted = makeHyperlink(url, formatted)
	}
	return formatted
}

// Value writes one extracted value. A column element is written as
// name:index:value, a named single value as name:value, and an unnamed
// single value on its own.
func (o *Output) Value(name, url string, index int, value any) {
	o.mu.Lock()
	defer o.mu.Unlock()

	text := o.white(fmt.Sprint(value))
	switch {
	case name == "":
		fmt.Fprintf(o.stdout, "%s\n", text)
	case index < 0:
		fmt.Fprintf(o.stdout, "%s:%s\n", o.name(name, url), text)
	default:
		fmt.Fprintf(o.stdout, "%s:%s:%s\n", o.name(name, url), o.green(fmt.Sprint(index)), text)
	}
}

// Valid writes a validation summary for one input. count is negative for a
// single value.
func (o *Output) Valid(name, url string, count int) {
	o.mu.Lock()
	defer o.mu.Unlock()

	if name == "" {
		name = "value"
	}
	if count < 0 {
		fmt.Fprintf(o.stdout, "%s: %s\n", o.name(name, url), o.green("valid"))
		return
	}
	fmt.Fprintf(o.stdout, "%s: %s (%d values)\n", o.name(name, url), o.green("valid"), count)
}

// Encode writes v as an indented JSON or YAML document.
func (o *Output) Encode(format OutputFormat, v any) error {
	o.mu.Lock()
	defer o.mu.Unlock()

	switch format {
	case OutputJSON:
		enc := json.NewEncoder(o.stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case OutputYAML:
		enc := yaml.NewEncoder(o.stdout)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("unsupported output format %q", format)
	}
}

// Warningf writes a formatted warning message to stderr.
func (o *Output) Warningf(format string, args ...any) {
	o.mu.Lock()
	defer o.mu.Unlock()
	fmt.Fprintf(o.stderr, o.yellow("Warning: ")+format+"\n", args...)
}

// Errorf writes a formatted error message to stderr.
func (o *Output) Errorf(format string, args ...any) {
	o.mu.Lock()
	defer o.mu.Unlock()
	fmt.Fprintf(o.stderr, o.red("Error: ")+format+"\n", args...)
}
