// Package runner applies a date-field operation to every input of a run.
package runner

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/jparise/gh-isofields/internal/github"
	"github.com/jparise/gh-isofields/internal/isodate"
	"golang.org/x/sync/semaphore"
)

// Runner orchestrates loading inputs, extracting fields and rendering results.
type Runner struct {
	output *Output
	client *github.Client
}

// New creates a new Runner.
func New(stdout, stderr io.Writer, colorize, hyperlinks bool) *Runner {
	return &Runner{
		output: NewOutput(stdout, stderr, colorize, hyperlinks),
	}
}

// result is the outcome of one decoded input.
type result struct {
	name   string
	url    string
	scalar bool
	values []any
	count  int
	err    error
}

// record is the JSON/YAML rendering of a result.
type record struct {
	Name   string `json:"name" yaml:"name"`
	URL    string `json:"url,omitempty" yaml:"url,omitempty"`
	Field  Field  `json:"field" yaml:"field"`
	Valid  bool   `json:"valid" yaml:"valid"`
	Count  int    `json:"count" yaml:"count"`
	Value  any    `json:"value,omitempty" yaml:"value,omitempty"`
	Values []any  `json:"values,omitempty" yaml:"values,omitempty"`
	Error  string `json:"error,omitempty" yaml:"error,omitempty"`
}

// Run executes the operation based on the provided options.
func (r *Runner) Run(ctx context.Context, opts *Options) error {
	if len(opts.Repos) > 0 {
		client, err := github.NewClient(opts.ClientOpts)
		if err != nil {
			return err
		}
		r.client = client
	}

	sources, err := r.collect(ctx, opts)
	if err != nil {
		return err
	}
	if len(sources) == 0 {
		return fmt.Errorf("no inputs to process")
	}

	jobs := max(opts.Jobs, 1)

	// Process sources concurrently with bounded parallelism. Results are
	// stored by source position so rendering follows input order.
	var wg sync.WaitGroup
	results := make([][]result, len(sources))
	sem := semaphore.NewWeighted(int64(jobs))

	for i, src := range sources {
		if err := sem.Acquire(ctx, 1); err != nil {
			wg.Wait()
			return err
		}

		wg.Add(1)
		go func(i int, src source) {
			defer wg.Done()
			defer sem.Release(1)

			results[i] = r.process(ctx, src, opts)
		}(i, src)
	}

	wg.Wait()

	return r.render(opts, results)
}

func (r *Runner) process(ctx context.Context, src source, opts *Options) []result {
	inputs, err := src.read(ctx)
	if err != nil {
		return []result{{name: src.name, url: src.url, err: err}}
	}

	results := make([]result, 0, len(inputs))
	for _, in := range inputs {
		res := apply(opts.Field, in.input)
		res.name = in.name
		res.url = src.url
		results = append(results, res)
	}
	return results
}

// apply runs field over a single value or a column.
func apply(field Field, in isodate.Input) result {
	switch field {
	case FieldValidate:
		return extract(in,
			func(s string) (struct{}, error) { return struct{}{}, isodate.Validate(s) },
			func(c isodate.Column[string]) (isodate.Column[struct{}], error) {
				return isodate.Column[struct{}]{Name: c.Name, Values: make([]struct{}, c.Len())}, isodate.ValidateColumn(c)
			})
	case FieldYear:
		return extract(in, isodate.Year, isodate.YearColumn)
	case FieldMonth:
		return extract(in, isodate.Month, isodate.MonthColumn)
	case FieldDay:
		return extract(in, isodate.Day, isodate.DayColumn)
	case FieldTime:
		return extract(in, isodate.Time, isodate.TimeColumn)
	default:
		return result{err: fmt.Errorf("unsupported field %q", field)}
	}
}

func extract[T any](in isodate.Input, scalar func(string) (T, error), column func(isodate.Column[string]) (isodate.Column[T], error)) result {
	if s, ok := in.Value(); ok {
		v, err := scalar(s)
		if err != nil {
			return result{scalar: true, err: err}
		}
		return result{scalar: true, values: []any{v}, count: 1}
	}

	c, _ := in.Column()
	out, err := column(c)
	if err != nil {
		return result{err: err}
	}

	values := make([]any, out.Len())
	for i, v := range out.Values {
		values[i] = v
	}
	return result{values: values, count: out.Len()}
}

func (r *Runner) render(opts *Options, sources [][]result) error {
	var total, failed int
	records := []record{}

	for _, results := range sources {
		for _, res := range results {
			total++
			if res.err != nil {
				failed++
				r.reportError(res)
			}

			if opts.Output == OutputJSON || opts.Output == OutputYAML {
				records = append(records, newRecord(opts.Field, res))
				continue
			}
			if res.err != nil {
				continue
			}

			switch {
			case opts.Field == FieldValidate && res.scalar:
				r.output.Valid(res.name, res.url, -1)
			case opts.Field == FieldValidate:
				r.output.Valid(res.name, res.url, res.count)
			case res.scalar:
				r.output.Value(res.name, res.url, -1, res.values[0])
			default:
				for i, v := range res.values {
					r.output.Value(res.name, res.url, i, v)
				}
			}
		}
	}

	if opts.Output == OutputJSON || opts.Output == OutputYAML {
		if err := r.output.Encode(opts.Output, records); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d inputs failed", failed, total)
	}
	return nil
}

// reportError writes every offending position of a failed input.
func (r *Runner) reportError(res result) {
	errs := []error{res.err}
	var ce *isodate.ColumnError
	if errors.As(res.err, &ce) {
		errs = ce.Errs
	}

	for _, err := range errs {
		if res.name == "" {
			r.output.Errorf("%v", err)
		} else {
			r.output.Errorf("%s: %v", res.name, err)
		}
	}
}

func newRecord(field Field, res result) record {
	rec := record{
		Name:  res.name,
		URL:   res.url,
		Field: field,
		Valid: res.err == nil,
		Count: res.count,
	}
	if res.err != nil {
		rec.Error = res.err.Error()
		return rec
	}
	if field == FieldValidate {
		return rec
	}
	if res.scalar {
		rec.Value = res.values[0]
	} else {
		rec.Values = res.values
	}
	return rec
}
