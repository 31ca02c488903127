package github

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	gh "github.com/google/go-github/v80/github"
	"golang.org/x/oauth2"

	"github.com/custodia-labs/b24docs/internal/core/domain"
	"github.com/custodia-labs/b24docs/internal/core/ports/driven"
	"github.com/custodia-labs/b24docs/internal/logger"
)

const (
	// DefaultTimeout is the default HTTP request timeout.
	DefaultTimeout = 30 * time.Second

	// UserAgent identifies requests made by this client.
	UserAgent = "b24docs"
)

// Client wraps the go-github client with rate limiting and error mapping.
type Client struct {
	mu            sync.Mutex
	gh            *gh.Client
	tokenProvider driven.TokenProvider
	rateLimiter   *RateLimiter
	baseURL       *url.URL
}

// NewClient creates a new GitHub API client with a token provider.
// rps is the proactive request rate; see NewRateLimiter.
func NewClient(tokenProvider driven.TokenProvider, rps float64) *Client {
	return &Client{
		tokenProvider: tokenProvider,
		rateLimiter:   NewRateLimiter(rps),
	}
}

// SetBaseURL points the client at another API root, such as a GitHub
// Enterprise server or a test server.
func (c *Client) SetBaseURL(raw string) error {
	if !strings.HasSuffix(raw, "/") {
		raw += "/"
	}
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("parse base URL: %w", err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.baseURL = u
	if c.gh != nil {
		c.gh.BaseURL = u
	}
	return nil
}

// ensureClient initializes the go-github client if not already done.
// This is called lazily so we can get the token when needed.
func (c *Client) ensureClient(ctx context.Context) (*gh.Client, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.gh != nil {
		return c.gh, nil
	}

	token, err := c.tokenProvider.GetToken(ctx)
	if err != nil {
		return nil, fmt.Errorf("get token: %w", err)
	}

	var hc *http.Client
	if token == "" {
		hc = &http.Client{Timeout: DefaultTimeout}
	} else {
		ts := oauth2.StaticTokenSource(
			&oauth2.Token{AccessToken: token},
		)
		// The token transport outlives ctx; it must not inherit its cancellation.
		hc = oauth2.NewClient(context.Background(), ts)
		hc.Timeout = DefaultTimeout
	}

	c.gh = newGitHub(hc)
	if c.baseURL != nil {
		c.gh.BaseURL = c.baseURL
	}
	return c.gh, nil
}

func newGitHub(hc *http.Client) *gh.Client {
	client := gh.NewClient(hc)
	client.UserAgent = UserAgent
	return client
}

// codeSearchResponse is the subset of the code search payload we read.
// go-github's CodeResult does not expose the relevance score.
type codeSearchResponse struct {
	TotalCount int `json:"total_count"`
	Items      []struct {
		Path    string  `json:"path"`
		HTMLURL string  `json:"html_url"`
		Score   float64 `json:"score"`
	} `json:"items"`
}

// SearchCode runs a code search for query restricted to repo.
func (c *Client) SearchCode(ctx context.Context, query, repo string, perPage int) ([]domain.CodeHit, error) {
	client, err := c.ensureClient(ctx)
	if err != nil {
		return nil, err
	}

	if err := c.rateLimiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	params := url.Values{}
	params.Set("q", query+" repo:"+repo)
	params.Set("per_page", strconv.Itoa(perPage))

	req, err := client.NewRequest(http.MethodGet, "search/code?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("build search request: %w", err)
	}

	var out codeSearchResponse
	resp, err := client.Do(ctx, req, &out)
	c.updateRateLimitFromResponse(resp)
	if err != nil {
		return nil, c.wrapError(err, "search code")
	}

	hits := make([]domain.CodeHit, 0, len(out.Items))
	for _, item := range out.Items {
		hits = append(hits, domain.CodeHit{
			Path:    item.Path,
			HTMLURL: item.HTMLURL,
			Score:   item.Score,
		})
	}
	return hits, nil
}

// GetContents fetches a single file through the contents endpoint.
// A nil content with a nil error means path is a directory.
func (c *Client) GetContents(ctx context.Context, owner, repo, path string) (*gh.RepositoryContent, error) {
	client, err := c.ensureClient(ctx)
	if err != nil {
		return nil, err
	}

	if err := c.rateLimiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	content, _, resp, err := client.Repositories.GetContents(ctx, owner, repo, path, nil)
	c.updateRateLimitFromResponse(resp)
	if err != nil {
		return nil, c.wrapError(err, "get contents")
	}
	return content, nil
}

// GetRepository fetches a single repository.
func (c *Client) GetRepository(ctx context.Context, owner, repo string) (*gh.Repository, error) {
	client, err := c.ensureClient(ctx)
	if err != nil {
		return nil, err
	}

	if err := c.rateLimiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	repository, resp, err := client.Repositories.Get(ctx, owner, repo)
	c.updateRateLimitFromResponse(resp)
	if err != nil {
		return nil, c.wrapError(err, "get repo")
	}
	return repository, nil
}

// GetTree fetches the entire tree for a repository recursively.
// This is efficient for getting all file paths in one API call.
func (c *Client) GetTree(ctx context.Context, owner, repo, sha string) (*gh.Tree, error) {
	client, err := c.ensureClient(ctx)
	if err != nil {
		return nil, err
	}

	if err := c.rateLimiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	tree, resp, err := client.Git.GetTree(ctx, owner, repo, sha, true) // recursive=true
	c.updateRateLimitFromResponse(resp)
	if err != nil {
		return nil, c.wrapError(err, "get tree")
	}
	return tree, nil
}

// GetBlob fetches a blob (file content) by its SHA.
func (c *Client) GetBlob(ctx context.Context, owner, repo, sha string) (*gh.Blob, error) {
	client, err := c.ensureClient(ctx)
	if err != nil {
		return nil, err
	}

	if err := c.rateLimiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	blob, resp, err := client.Git.GetBlob(ctx, owner, repo, sha)
	c.updateRateLimitFromResponse(resp)
	if err != nil {
		return nil, c.wrapError(err, "get blob")
	}
	return blob, nil
}

// updateRateLimitFromResponse updates the rate limiter from GitHub response headers.
func (c *Client) updateRateLimitFromResponse(resp *gh.Response) {
	if resp == nil || resp.Response == nil {
		return
	}
	c.rateLimiter.UpdateFromResponse(resp.Response)

	remaining, limit, resetAt := c.rateLimiter.Snapshot()
	logger.Debug("GitHub quota: %d/%d remaining, resets %s", remaining, limit, resetAt.Format(time.RFC3339))
}

// wrapError converts go-github errors to our error types.
// The raw response body is kept so it can be shown to the caller verbatim.
func (c *Client) wrapError(err error, operation string) error {
	if err == nil {
		return nil
	}

	var rateLimitErr *gh.RateLimitError
	if errors.As(err, &rateLimitErr) {
		return newAPIError(rateLimitErr.Response, rateLimitErr.Message, true)
	}

	var abuseErr *gh.AbuseRateLimitError
	if errors.As(err, &abuseErr) {
		return newAPIError(abuseErr.Response, abuseErr.Message, true)
	}

	var ghErr *gh.ErrorResponse
	if errors.As(err, &ghErr) {
		return newAPIError(ghErr.Response, ghErr.Message, false)
	}

	return fmt.Errorf("%s: %w: %w", operation, domain.ErrRemoteAccess, err)
}

func newAPIError(resp *http.Response, message string, rateLimited bool) *APIError {
	apiErr := &APIError{
		Message:     message,
		RateLimited: rateLimited,
	}
	if resp == nil {
		apiErr.StatusCode = http.StatusForbidden
		return apiErr
	}

	apiErr.StatusCode = resp.StatusCode
	if resp.Request != nil && resp.Request.URL != nil {
		apiErr.URL = resp.Request.URL.String()
	}
	if resp.Body != nil {
		if body, err := io.ReadAll(resp.Body); err == nil {
			apiErr.Body = string(body)
		}
	}
	return apiErr
}
