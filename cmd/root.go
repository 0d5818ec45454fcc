package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cli/go-gh/v2/pkg/term"
	"github.com/jparise/gh-isofields/internal/config"
	"github.com/jparise/gh-isofields/internal/github"
	"github.com/jparise/gh-isofields/internal/runner"
	"github.com/spf13/cobra"
)

// colorMode represents when to use colored output.
type colorMode string

const (
	colorAuto   colorMode = "auto"
	colorAlways colorMode = "always"
	colorNever  colorMode = "never"
)

// String is used both by fmt.Print and by Cobra in help text.
func (c *colorMode) String() string {
	return string(*c)
}

// Set must have pointer receiver to validate and set the value.
func (c *colorMode) Set(v string) error {
	switch v {
	case "auto", "always", "never":
		*c = colorMode(v)
		return nil
	default:
		return fmt.Errorf("must be one of \"auto\", \"always\", or \"never\"")
	}
}

// Type is only used in help text.
func (c *colorMode) Type() string {
	return "colorMode"
}

// formatFlag selects how file and stdin contents are decoded.
type formatFlag runner.Format

func (f *formatFlag) String() string {
	return string(*f)
}

func (f *formatFlag) Set(v string) error {
	switch runner.Format(v) {
	case runner.FormatAuto, runner.FormatLines, runner.FormatCSV, runner.FormatJSON, runner.FormatYAML:
		*f = formatFlag(v)
		return nil
	default:
		return fmt.Errorf("must be one of \"auto\", \"lines\", \"csv\", \"json\", or \"yaml\"")
	}
}

func (f *formatFlag) Type() string {
	return "format"
}

// outputFlag selects how results are rendered.
type outputFlag runner.OutputFormat

func (o *outputFlag) String() string {
	return string(*o)
}

func (o *outputFlag) Set(v string) error {
	switch runner.OutputFormat(v) {
	case runner.OutputText, runner.OutputJSON, runner.OutputYAML:
		*o = outputFlag(v)
		return nil
	default:
		return fmt.Errorf("must be one of \"text\", \"json\", or \"yaml\"")
	}
}

func (o *outputFlag) Type() string {
	return "output"
}

var (
	version = "dev"

	// Flags.
	color      = colorAuto
	format     = formatFlag(runner.FormatAuto)
	output     = outputFlag(runner.OutputText)
	files      []string
	repos      []string
	csvColumn  string
	hyperlinks bool
	noCache    bool
	cacheDir   string
	cacheTTL   time.Duration
	jobs       int
)

var rootCmd = &cobra.Command{
	Use:   "gh-isofields <command> [<value>... | -]",
	Short: "Extract calendar fields from ISO 8601 date-times",
	Long: `gh-isofields extracts the year, month, day, or time of day from date-times
written as YYYY-MM-DDThh:mm:ss.

Values come from arguments, standard input ("-"), local files matched by
--file glob patterns, or files in GitHub repositories (--repo with --file).
A single argument is treated as one value; several arguments, and every file,
are treated as columns whose elements are reported by position.

Files are decoded by extension unless --format is given:
  .csv           One column per header field (or just --column)
  .json, .yaml   A string, a list of strings, or a map of lists
  anything else  One value per line

Defaults for --color, --output, --jobs, --no-cache, --cache-dir and
--cache-ttl can be set with ISOFIELDS_COLOR, ISOFIELDS_OUTPUT,
ISOFIELDS_JOBS, ISOFIELDS_NO_CACHE, ISOFIELDS_CACHE_DIR and
ISOFIELDS_CACHE_TTL.

Examples:
  gh isofields year 2023-07-16T12:34:56
  gh isofields time 2025-01-15T10:20:30 2025-02-25T15:45:00
  gh isofields validate -f "logs/**/*.txt"
  gh isofields month -f data/events.csv --column created -o json
  cat dates.txt | gh isofields day -
  gh isofields year -R octocat/dates@v1 -f "**/*.yaml"`,
	Version:           version,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: preRun,
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.Var(&color, "color",
		"colorize output: auto, always, never")
	flags.VarP(&format, "format", "F",
		"input format: auto, lines, csv, json, yaml")
	flags.VarP(&output, "output", "o",
		"output format: text, json, yaml")
	flags.StringSliceVarP(&files, "file", "f", []string{},
		"glob pattern of files to read (can be specified multiple times)")
	flags.StringSliceVarP(&repos, "repo", "R", []string{},
		"read --file matches from a GitHub repository: owner/repo[@ref]")
	flags.StringVar(&csvColumn, "column", "",
		"CSV column to read (default: all columns)")
	flags.BoolVar(&hyperlinks, "hyperlinks", false,
		"link GitHub-hosted inputs to their web page")
	flags.BoolVar(&noCache, "no-cache", false,
		"bypass cache, always fetch fresh data")
	flags.StringVar(&cacheDir, "cache-dir", "",
		"override cache directory location")
	flags.DurationVar(&cacheTTL, "cache-ttl", 24*time.Hour,
		"cache time-to-live (e.g., 1h, 30m, 24h)")
	flags.IntVarP(&jobs, "jobs", "j", 10,
		"maximum concurrent inputs")

	for _, field := range []runner.Field{
		runner.FieldValidate,
		runner.FieldYear,
		runner.FieldMonth,
		runner.FieldDay,
		runner.FieldTime,
	} {
		rootCmd.AddCommand(newFieldCmd(field))
	}
}

func Execute() error {
	return rootCmd.Execute()
}

// applyConfig fills flags that were not set on the command line from the
// environment.
func applyConfig(cmd *cobra.Command, cfg config.Config) error {
	flags := cmd.Flags()

	if !flags.Changed("color") {
		if err := color.Set(cfg.Color); err != nil {
			return fmt.Errorf("invalid %sCOLOR %q: %w", config.Prefix, cfg.Color, err)
		}
	}
	if !flags.Changed("output") {
		if err := output.Set(cfg.Output); err != nil {
			return fmt.Errorf("invalid %sOUTPUT %q: %w", config.Prefix, cfg.Output, err)
		}
	}
	if !flags.Changed("jobs") {
		jobs = cfg.Jobs
	}
	if !flags.Changed("no-cache") {
		noCache = cfg.NoCache
	}
	if !flags.Changed("cache-dir") {
		cacheDir = cfg.CacheDir
	}
	if !flags.Changed("cache-ttl") {
		cacheTTL = cfg.CacheTTL
	}

	return nil
}

func preRun(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if err := applyConfig(cmd, cfg); err != nil {
		return err
	}

	if jobs < 1 || jobs > 100 {
		return fmt.Errorf("--jobs must be between 1 and 100, got %d", jobs)
	}

	// Validate --repo values
	for _, spec := range repos {
		if _, err := runner.ParseRepoSpec(spec); err != nil {
			return err
		}
	}
	if len(repos) > 0 && len(files) == 0 {
		return fmt.Errorf("--repo requires at least one --file pattern")
	}

	if len(args) == 0 && len(files) == 0 {
		return fmt.Errorf("no values given: pass values, \"-\" for standard input, or --file")
	}

	return nil
}

func newFieldCmd(field runner.Field) *cobra.Command {
	short := map[runner.Field]string{
		runner.FieldValidate: "Check that values are YYYY-MM-DDThh:mm:ss date-times",
		runner.FieldYear:     "Print the year of each value",
		runner.FieldMonth:    "Print the month (1-12) of each value",
		runner.FieldDay:      "Print the day of the month (1-31) of each value",
		runner.FieldTime:     "Print the time of day (hh:mm:ss) of each value",
	}

	return &cobra.Command{
		Use:   string(field) + " [<value>... | -]",
		Short: short[field],
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, field, args)
		},
	}
}

func run(cmd *cobra.Command, field runner.Field, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var colorize bool
	switch color {
	case colorAlways:
		colorize = true
	case colorNever:
		colorize = false
	case colorAuto:
		terminal := term.FromEnv()
		colorize = terminal.IsColorEnabled()
	}

	// Convert validated strings to typed specs
	repoSpecs := make([]runner.RepoSpec, 0, len(repos))
	for _, s := range repos {
		spec, err := runner.ParseRepoSpec(s)
		if err != nil {
			return err
		}
		repoSpecs = append(repoSpecs, spec)
	}

	opts := &runner.Options{
		Field:     field,
		Values:    args,
		Stdin:     cmd.InOrStdin(),
		Patterns:  files,
		Repos:     repoSpecs,
		Format:    runner.Format(format),
		CSVColumn: csvColumn,
		Output:    runner.OutputFormat(output),
		ClientOpts: github.ClientOptions{
			DisableCache: noCache,
			CacheDir:     cacheDir,
			CacheTTL:     cacheTTL,
		},
		Jobs: jobs,
	}

	r := runner.New(cmd.OutOrStdout(), cmd.ErrOrStderr(), colorize, hyperlinks)
	return r.Run(ctx, opts)
}
