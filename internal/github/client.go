package github

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/contrib-fyi/server/internal/models"
)

const defaultBaseURL = "https://api.github.com"

// ErrRateLimited signals that GitHub rejected the call with a 403-class
// response. Callers surface it distinctly so a UI can suggest adding a token.
var ErrRateLimited = errors.New("github: rate limit exceeded")

// APIError is any other non-success response from the REST API.
type APIError struct {
	StatusCode int
	Status     string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("github: API error: %s", e.Status)
}

// SearchParams are the knobs of GET /search/issues.
type SearchParams struct {
	Query   string
	Sort    models.Sort
	Order   string
	PerPage int
	Page    int
}

// Client is a minimal wrapper around GitHub's REST API v3.
// It is intentionally light—just the endpoints our services require.
// The token travels with each call because the caller's credential can change
// between requests and affects what GitHub returns.
type Client struct {
	http    *http.Client
	baseURL string
}

// NewClient returns a ready-to-use GitHub API client.
func NewClient() *Client {
	return &Client{
		http: &http.Client{
			Timeout: 10 * time.Second,
		},
		baseURL: defaultBaseURL,
	}
}

// NewClientWithBaseURL targets a non-default endpoint. Used by tests.
func NewClientWithBaseURL(baseURL string) *Client {
	c := NewClient()
	c.baseURL = baseURL
	return c
}

// SearchIssues runs one issue search request and decodes the result page.
func (c *Client) SearchIssues(ctx context.Context, params SearchParams, token string) (models.SearchResponse, error) {
	u := c.baseURL + "/search/issues"

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return models.SearchResponse{}, err
	}

	q := req.URL.Query()
	q.Set("q", params.Query)
	if params.Sort != "" {
		q.Set("sort", string(params.Sort))
	}
	if params.Order != "" {
		q.Set("order", params.Order)
	}
	if params.PerPage > 0 {
		q.Set("per_page", strconv.Itoa(params.PerPage))
	}
	if params.Page > 0 {
		q.Set("page", strconv.Itoa(params.Page))
	}
	req.URL.RawQuery = q.Encode()

	addHeaders(req, token)

	var res models.SearchResponse
	if err := c.do(req, &res); err != nil {
		return models.SearchResponse{}, err
	}
	return res, nil
}

// GetRepository fetches repository metadata by owner and name.
func (c *Client) GetRepository(ctx context.Context, owner, repo, token string) (models.RawRepository, error) {
	u := fmt.Sprintf("%s/repos/%s/%s", c.baseURL, url.PathEscape(owner), url.PathEscape(repo))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return models.RawRepository{}, err
	}

	addHeaders(req, token)

	var repository models.RawRepository
	if err := c.do(req, &repository); err != nil {
		return models.RawRepository{}, err
	}
	return repository, nil
}

// addHeaders sets authentication and Accept headers.
func addHeaders(req *http.Request, token string) {
	req.Header.Set("Accept", "application/vnd.github.v3+json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	req.Header.Set("User-Agent", "contrib-fyi-api")
}

// do executes the HTTP request, translates failure statuses, and decodes
// JSON into v. 403 means GitHub throttled us; everything else non-2xx is a
// generic API error.
func (c *Client) do(req *http.Request, v interface{}) error {
	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusForbidden {
		return ErrRateLimited
	}
	if resp.StatusCode >= 300 {
		return &APIError{StatusCode: resp.StatusCode, Status: resp.Status}
	}

	return json.NewDecoder(resp.Body).Decode(v)
}
