package runner

import (
	"fmt"
	"io"
	"strings"

	"github.com/jparise/gh-isofields/internal/github"
)

// Field is the operation applied to every input.
type Field string

const (
	FieldValidate Field = "validate"
	FieldYear     Field = "year"
	FieldMonth    Field = "month"
	FieldDay      Field = "day"
	FieldTime     Field = "time"
)

// Format is the encoding of file and stdin contents.
type Format string

const (
	FormatAuto  Format = "auto"
	FormatLines Format = "lines"
	FormatCSV   Format = "csv"
	FormatJSON  Format = "json"
	FormatYAML  Format = "yaml"
)

// OutputFormat is the rendering of results.
type OutputFormat string

const (
	OutputText OutputFormat = "text"
	OutputJSON OutputFormat = "json"
	OutputYAML OutputFormat = "yaml"
)

// RepoSpec represents a parsed repository specification.
type RepoSpec struct {
	Owner string // Repository owner (user or organization)
	Repo  string // Repository name
	Ref   string // Branch/tag/SHA (empty means use default branch from API)
}

// String formats the spec as owner/repo[@ref].
func (s RepoSpec) String() string {
	if s.Ref != "" {
		return s.Owner + "/" + s.Repo + "@" + s.Ref
	}
	return s.Owner + "/" + s.Repo
}

// ParseRepoSpec parses "owner/repo" or "owner/repo@ref".
func ParseRepoSpec(spec string) (RepoSpec, error) {
	name, ref, hasRef := strings.Cut(spec, "@")
	if hasRef && ref == "" {
		return RepoSpec{}, fmt.Errorf("invalid repo spec: %s (empty ref)", spec)
	}

	owner, repo, ok := strings.Cut(name, "/")
	if !ok || owner == "" || repo == "" || strings.Contains(repo, "/") {
		return RepoSpec{}, fmt.Errorf("invalid repo spec: %s (expected owner/repo or owner/repo@ref)", spec)
	}

	return RepoSpec{Owner: owner, Repo: repo, Ref: ref}, nil
}

// Options contains all run parameters.
type Options struct {
	Field      Field
	Values     []string  // Literal values; "-" reads Stdin
	Stdin      io.Reader // Source for "-"
	Patterns   []string  // Glob patterns for local files, or repository paths when Repos is set
	Repos      []RepoSpec
	Format     Format
	CSVColumn  string // CSV column to read (empty = all columns)
	Output     OutputFormat
	ClientOpts github.ClientOptions
	Jobs       int // Maximum concurrent inputs
}
