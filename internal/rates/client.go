package rates

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"resty.dev/v3"
)

// ErrInvalidPayload is returned when the provider response is not a usable table.
var ErrInvalidPayload = errors.New("invalid rates payload")

// ClientOptions configures a Client.
type ClientOptions struct {
	// Timeout bounds each request.
	Timeout time.Duration

	// Retries is the number of retries after a failed request.
	Retries int

	// RetryWait is the initial wait between retries.
	RetryWait time.Duration
}

// DefaultClientOptions returns the default client options.
func DefaultClientOptions() ClientOptions {
	return ClientOptions{
		Timeout:   10 * time.Second,
		Retries:   2,
		RetryWait: 500 * time.Millisecond,
	}
}

// Client fetches rate tables from a JSON endpoint shaped like
// {"base": "EUR", "date": "2024-06-01", "rates": {"USD": 1.08}}.
type Client struct {
	http *resty.Client
	url  string
}

// payload is the provider's wire format.
type payload struct {
	Base  string             `json:"base"`
	Date  string             `json:"date"`
	Rates map[string]float64 `json:"rates"`
}

// NewClient creates a Client for the endpoint at url.
func NewClient(url string, opts ClientOptions) *Client {
	http := resty.New().
		SetTimeout(opts.Timeout).
		SetRetryCount(opts.Retries).
		SetRetryWaitTime(opts.RetryWait).
		SetRetryMaxWaitTime(4*opts.RetryWait).
		SetHeader("Accept", "application/json").
		SetHeader("User-Agent", "calcsite-rates")
	return &Client{http: http, url: url}
}

// Close releases the underlying HTTP client.
func (c *Client) Close() error {
	return c.http.Close()
}

// Fetch downloads and validates the current table.
func (c *Client) Fetch(ctx context.Context) (*Table, error) {
	resp, err := c.http.R().
		SetContext(ctx).
		Get(c.url)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch rates: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("failed to fetch rates: unexpected status %s", resp.Status())
	}

	var p payload
	if err := json.Unmarshal([]byte(resp.String()), &p); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidPayload, err)
	}
	return p.table(c.url)
}

func (p *payload) table(source string) (*Table, error) {
	base := strings.ToUpper(strings.TrimSpace(p.Base))
	if base == "" {
		return nil, fmt.Errorf("%w: missing base currency", ErrInvalidPayload)
	}
	if len(p.Rates) == 0 {
		return nil, fmt.Errorf("%w: no rates", ErrInvalidPayload)
	}

	t := &Table{
		Base:   base,
		Rates:  make(map[string]float64, len(p.Rates)),
		Source: source,
	}
	for code, r := range p.Rates {
		if r <= 0 {
			continue
		}
		t.Rates[strings.ToUpper(code)] = r
	}
	if p.Date != "" {
		if d, err := time.Parse(time.DateOnly, p.Date); err == nil {
			t.UpdatedAt = d
		} else if d, err := time.Parse(time.RFC3339, p.Date); err == nil {
			t.UpdatedAt = d
		}
	}
	return t, nil
}
