package clients

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
)

// ErrNotFound signals that the collaborator answered and the id does not
// resolve to a record. Any other non-nil error from a client means the
// collaborator could not give an answer at all (unreachable, timed out, or
// returned an unexpected status) and is safe to retry later.
var ErrNotFound = errors.New("not found")

// Client is a base HTTP client for one collaborator service. The underlying
// http.Client carries the bounded upstream timeout and is shared across
// typed clients.
type Client struct {
	name    string
	baseURL *url.URL
	http    *http.Client
}

func NewClient(name, baseURL string, httpClient *http.Client) *Client {
	u, err := url.Parse(baseURL)
	if err != nil {
		// Fail fast: config error
		panic(fmt.Sprintf("invalid %s base url %q: %v", name, baseURL, err))
	}
	return &Client{name: name, baseURL: u, http: httpClient}
}

func (c *Client) getJSON(ctx context.Context, path string, out any) error {
	u := c.baseURL.ResolveReference(&url.URL{Path: path})

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return fmt.Errorf("build %s request: %w", c.name, err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s unreachable: %w", c.name, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decode %s response: %w", c.name, err)
		}
		return nil
	case http.StatusNotFound:
		return ErrNotFound
	default:
		return fmt.Errorf("%s returned status %d", c.name, resp.StatusCode)
	}
}
