package runner

import (
	"context"
	"fmt"
	"io"
	"os"
	"slices"
	"sync"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/jparise/gh-isofields/internal/github"
	"github.com/jparise/gh-isofields/internal/isodate"
	"golang.org/x/sync/semaphore"
)

// source is one unit of input: the literal arguments, stdin, or a file.
type source struct {
	name string
	url  string
	read func(ctx context.Context) ([]namedInput, error)
}

// argsColumn names the column formed by two or more literal values.
const argsColumn = "args"

// collect resolves every input named by opts, in order: literal values,
// stdin, then files.
func (r *Runner) collect(ctx context.Context, opts *Options) ([]source, error) {
	var sources []source

	var literals []string
	readStdin := false
	for _, v := range opts.Values {
		if v == "-" {
			readStdin = true
			continue
		}
		literals = append(literals, v)
	}

	switch len(literals) {
	case 0:
	case 1:
		in := isodate.Scalar(literals[0])
		sources = append(sources, literalSource("", in))
	default:
		in := isodate.Series(isodate.NewColumn(argsColumn, literals...))
		sources = append(sources, literalSource(argsColumn, in))
	}

	if readStdin {
		if opts.Stdin == nil {
			return nil, fmt.Errorf("no standard input available")
		}
		sources = append(sources, source{
			name: "stdin",
			read: func(context.Context) ([]namedInput, error) {
				data, err := io.ReadAll(opts.Stdin)
				if err != nil {
					return nil, fmt.Errorf("failed to read standard input: %w", err)
				}
				return decode("stdin", resolveFormat(opts.Format, ""), data, opts.CSVColumn)
			},
		})
	}

	if len(opts.Repos) > 0 {
		listed, err := r.listRepos(ctx, opts)
		if err != nil {
			return nil, err
		}
		return append(sources, listed...), nil
	}

	files, err := r.localFiles(opts.Patterns)
	if err != nil {
		return nil, err
	}
	for _, path := range files {
		sources = append(sources, source{
			name: path,
			read: func(context.Context) ([]namedInput, error) {
				data, err := os.ReadFile(path)
				if err != nil {
					return nil, err
				}
				return decode(path, resolveFormat(opts.Format, path), data, opts.CSVColumn)
			},
		})
	}

	return sources, nil
}

func literalSource(name string, in isodate.Input) source {
	return source{
		name: name,
		read: func(context.Context) ([]namedInput, error) {
			return []namedInput{{name: name, input: in}}, nil
		},
	}
}

// localFiles expands glob patterns against the filesystem. Files matched by
// more than one pattern are returned once, in first-match order.
func (r *Runner) localFiles(patterns []string) ([]string, error) {
	seen := make(map[string]bool)
	var files []string

	for _, pattern := range patterns {
		matches, err := doublestar.FilepathGlob(pattern, doublestar.WithFilesOnly())
		if err != nil {
			return nil, fmt.Errorf("invalid pattern %q: %w", pattern, err)
		}
		if len(matches) == 0 {
			r.output.Warningf("%s: no files match", pattern)
			continue
		}

		for _, path := range matches {
			if !seen[path] {
				seen[path] = true
				files = append(files, path)
			}
		}
	}

	return files, nil
}

// listRepos lists every repository in opts.Repos concurrently, bounded by
// opts.Jobs. Sources keep the order the repositories were given in.
func (r *Runner) listRepos(ctx context.Context, opts *Options) ([]source, error) {
	var wg sync.WaitGroup
	listed := make([][]source, len(opts.Repos))
	sem := semaphore.NewWeighted(int64(max(opts.Jobs, 1)))

	for i, spec := range opts.Repos {
		if err := sem.Acquire(ctx, 1); err != nil {
			wg.Wait()
			return nil, err
		}

		wg.Add(1)
		go func(i int, spec RepoSpec) {
			defer wg.Done()
			defer sem.Release(1)

			listed[i] = r.repoSources(ctx, spec, opts)
		}(i, spec)
	}

	wg.Wait()

	return slices.Concat(listed...), nil
}

// repoSources lists the files of a repository that match opts.Patterns. A
// repository that cannot be read becomes a single failed source.
func (r *Runner) repoSources(ctx context.Context, spec RepoSpec, opts *Options) []source {
	failed := func(err error) []source {
		return []source{{
			name: spec.String(),
			read: func(context.Context) ([]namedInput, error) { return nil, err },
		}}
	}

	repo, err := r.client.GetRepo(ctx, spec.Owner, spec.Repo)
	if err != nil {
		return failed(err)
	}
	repo.Ref = spec.Ref

	tree, err := r.client.GetTree(ctx, repo)
	if err != nil {
		return failed(err)
	}
	if tree.Truncated {
		r.output.Warningf("%s: exceeds GitHub's API limit (100k files or 7MB) - results are incomplete", repo.FullName)
	}

	entries, err := filterByPatterns(tree.Tree, opts.Patterns)
	if err != nil {
		return failed(err)
	}
	if len(entries) == 0 {
		r.output.Warningf("%s: no files match", spec)
		return nil
	}

	sources := make([]source, 0, len(entries))
	for _, entry := range entries {
		name := repo.FullName + ":" + entry.Path
		sources = append(sources, source{
			name: name,
			url:  github.BlobURL(r.output.hostname, repo, entry.Path),
			read: func(ctx context.Context) ([]namedInput, error) {
				data, err := r.client.GetBlob(ctx, repo, entry.SHA)
				if err != nil {
					return nil, err
				}
				return decode(name, resolveFormat(opts.Format, entry.Path), data, opts.CSVColumn)
			},
		})
	}

	return sources
}

// filterByPatterns keeps the blobs whose full path matches any pattern.
func filterByPatterns(entries []github.TreeEntry, patterns []string) ([]github.TreeEntry, error) {
	var filtered []github.TreeEntry
	for _, entry := range entries {
		if !entry.IsBlob() {
			continue
		}

		for _, pattern := range patterns {
			matched, err := doublestar.Match(pattern, entry.Path)
			if err != nil {
				return nil, fmt.Errorf("pattern %q failed to match path %q: %w", pattern, entry.Path, err)
			}
			if matched {
				filtered = append(filtered, entry)
				break
			}
		}
	}

	return filtered, nil
}
