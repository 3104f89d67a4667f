package leadsapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

var ErrNotFound = errors.New("lead not found")

// APIError is any non-2xx answer from the API.
type APIError struct {
	StatusCode int
	Title      string
	Detail     string
}

func (e *APIError) Error() string {
	msg := e.Detail
	if msg == "" {
		msg = e.Title
	}
	if msg == "" {
		msg = http.StatusText(e.StatusCode)
	}
	return fmt.Sprintf("leads api: %s (status %d)", msg, e.StatusCode)
}

func (e *APIError) Is(target error) bool {
	return target == ErrNotFound && e.StatusCode == http.StatusNotFound
}

type Client struct {
	baseURL string
	http    *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

func (c *Client) ListInvited(ctx context.Context) ([]Lead, error) {
	return c.list(ctx, "/api/leads/invited")
}

func (c *Client) ListAccepted(ctx context.Context) ([]Lead, error) {
	return c.list(ctx, "/api/leads/accepted")
}

// ListByStatus works for any status, including Declined.
func (c *Client) ListByStatus(ctx context.Context, status string) ([]Lead, error) {
	return c.list(ctx, "/api/leads?status="+url.QueryEscape(status))
}

func (c *Client) Accept(ctx context.Context, id int64) error {
	return c.post(ctx, fmt.Sprintf("/api/leads/accept/%d", id))
}

func (c *Client) Decline(ctx context.Context, id int64) error {
	return c.post(ctx, fmt.Sprintf("/api/leads/decline/%d", id))
}

func (c *Client) list(ctx context.Context, path string) ([]Lead, error) {
	resp, err := c.do(ctx, http.MethodGet, path)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var leads []Lead
	if err := json.NewDecoder(resp.Body).Decode(&leads); err != nil {
		return nil, fmt.Errorf("decode leads: %w", err)
	}
	if leads == nil {
		leads = []Lead{}
	}
	return leads, nil
}

func (c *Client) post(ctx context.Context, path string) error {
	resp, err := c.do(ctx, http.MethodPost, path)
	if err != nil {
		return err
	}
	resp.Body.Close()
	return nil
}

func (c *Client) do(ctx context.Context, method, path string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("leads api request: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		defer resp.Body.Close()
		apiErr := &APIError{StatusCode: resp.StatusCode}

		body, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
		var p problem
		if json.Unmarshal(body, &p) == nil {
			apiErr.Title = p.Title
			apiErr.Detail = p.Detail
		}
		return nil, apiErr
	}

	return resp, nil
}
