// Package github reads repository trees and file contents for gh-isofields.
package github

import (
	"context"
	"encoding/base64"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/cli/go-gh/v2/pkg/api"
)

// ClientOptions configures the GitHub API client.
type ClientOptions struct {
	AuthToken    string
	CacheDir     string
	CacheTTL     time.Duration
	DisableCache bool
}

// Client wraps the go-gh REST client.
type Client struct {
	rest *api.RESTClient
}

// NewClient creates a new GitHub API client with the given options.
func NewClient(opts ClientOptions) (*Client, error) {
	apiOpts := api.ClientOptions{
		AuthToken:   opts.AuthToken,
		CacheDir:    opts.CacheDir,
		CacheTTL:    opts.CacheTTL,
		EnableCache: !opts.DisableCache,
	}

	rest, err := api.NewRESTClient(apiOpts)
	if err != nil {
		return nil, fmt.Errorf("failed to create GitHub client: %w", err)
	}

	return &Client{
		rest: rest,
	}, nil
}

// GetRepo fetches a single repository.
func (c *Client) GetRepo(ctx context.Context, owner, repo string) (Repository, error) {
	var result Repository

	endpoint := fmt.Sprintf("repos/%s/%s", owner, repo)
	err := c.rest.DoWithContext(ctx, "GET", endpoint, nil, &result)
	if err != nil {
		return Repository{}, fmt.Errorf("failed to get repo %s/%s: %w", owner, repo, err)
	}
	if result.Size == 0 {
		return Repository{}, fmt.Errorf("repository is empty (no commits yet)")
	}
	if result.DefaultBranch == "" {
		return Repository{}, fmt.Errorf("repository %s/%s has no default branch", owner, repo)
	}

	return result, nil
}

// GetTree fetches the Git tree for a repository recursively, at the
// repository's TreeRef.
func (c *Client) GetTree(ctx context.Context, repo Repository) (*TreeResponse, error) {
	var tree TreeResponse

	endpoint := fmt.Sprintf("repos/%s/%s/git/trees/%s?recursive=1",
		repo.Owner, repo.Name, escapePath(repo.TreeRef()))

	err := c.rest.DoWithContext(ctx, "GET", endpoint, nil, &tree)
	if err != nil {
		return nil, fmt.Errorf("failed to get tree for %s: %w", repo.FullName, err)
	}

	return &tree, nil
}

// GetBlob fetches and decodes the contents of a file by its blob SHA.
func (c *Client) GetBlob(ctx context.Context, repo Repository, sha string) ([]byte, error) {
	var blob blobResponse

	endpoint := fmt.Sprintf("repos/%s/%s/git/blobs/%s", repo.Owner, repo.Name, sha)
	err := c.rest.DoWithContext(ctx, "GET", endpoint, nil, &blob)
	if err != nil {
		return nil, fmt.Errorf("failed to get blob %s from %s: %w", sha, repo.FullName, err)
	}

	switch blob.Encoding {
	case "base64":
		// The API wraps base64 content at 60 columns.
		content, err := base64.StdEncoding.DecodeString(strings.ReplaceAll(blob.Content, "\n", ""))
		if err != nil {
			return nil, fmt.Errorf("failed to decode blob %s: %w", sha, err)
		}
		return content, nil
	case "utf-8", "":
		return []byte(blob.Content), nil
	default:
		return nil, fmt.Errorf("unsupported blob encoding %q", blob.Encoding)
	}
}

// BlobURL returns the web URL of a file in the repository.
func BlobURL(hostname string, repo Repository, path string) string {
	return fmt.Sprintf("https://%s/%s/%s/blob/%s/%s",
		hostname, repo.Owner, repo.Name, escapePath(repo.TreeRef()), escapePath(path))
}

// escapePath escapes each segment of a slash-separated path.
func escapePath(p string) string {
	segments := strings.Split(p, "/")
	for i, s := range segments {
		segments[i] = url.PathEscape(s)
	}
	return strings.Join(segments, "/")
}
