// api/http_client.go
package api

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

// StatusError is returned when the upstream answers with a non-2xx status.
type StatusError struct {
	StatusCode int
	Status     string
}

func (e *StatusError) Error() string {
	return "unexpected status code: " + e.Status
}

// HTTPClient holds the upstream HTTP client configuration
type HTTPClient struct {
	UserAgent  string
	HTTPClient *http.Client
}

// NewHTTPClient creates a new instance of HTTPClient. Every request carries
// the given User-Agent; a zero timeout leaves the client without a deadline.
func NewHTTPClient(userAgent string, timeout time.Duration) *HTTPClient {
	return &HTTPClient{
		UserAgent: userAgent,
		HTTPClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// Get fetches url and returns the raw response body. Non-2xx responses
// return a *StatusError.
func (c *HTTPClient) Get(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	req.Header.Set("Accept", "application/json")
	if c.UserAgent != "" {
		req.Header.Set("User-Agent", c.UserAgent)
	}

	res, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	resBody, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		return nil, &StatusError{StatusCode: res.StatusCode, Status: res.Status}
	}

	return resBody, nil
}
