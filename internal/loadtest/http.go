package loadtest

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// HTTPClient wraps http.Client with timeout.
type HTTPClient struct {
	client  *http.Client
	baseURL string
}

// newHTTPClient creates a new HTTP client with timeout.
func newHTTPClient(baseURL string, timeout time.Duration) *HTTPClient {
	return &HTTPClient{
		client:  &http.Client{Timeout: timeout},
		baseURL: baseURL,
	}
}

// Get performs a GET request.
func (c *HTTPClient) Get(ctx context.Context, path string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	return c.client.Do(req)
}

// Activities fetches the full listing.
func (c *HTTPClient) Activities(ctx context.Context) (map[string]Activity, error) {
	resp, err := c.Get(ctx, "/activities")
	if err != nil {
		return nil, fmt.Errorf("failed to list activities: %w", err)
	}
	body, err := readResponseBody(resp)
	if err != nil {
		return nil, fmt.Errorf("failed to read activities: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("listing activities returned status %d", resp.StatusCode)
	}

	var all map[string]Activity
	if err := json.Unmarshal(body, &all); err != nil {
		return nil, fmt.Errorf("failed to decode activities: %w", err)
	}
	return all, nil
}

// Do sends job and classifies the response.
func (c *HTTPClient) Do(ctx context.Context, job Job) Outcome {
	method := http.MethodPost
	if job.Unregister {
		method = http.MethodDelete
	}

	target := c.baseURL + "/activities/" + url.PathEscape(job.Activity) + signupPathSuffix +
		"?" + url.Values{"email": {job.Email}}.Encode()
	req, err := http.NewRequestWithContext(ctx, method, target, http.NoBody)
	if err != nil {
		return OutcomeFailed
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return OutcomeFailed
	}
	body, err := readResponseBody(resp)
	if err != nil {
		return OutcomeFailed
	}

	return classify(resp.StatusCode, body)
}

// classify maps a status code and error detail onto an Outcome.
func classify(status int, body []byte) Outcome {
	if status == http.StatusOK {
		return OutcomeOK
	}

	var e struct {
		Detail string `json:"detail"`
	}
	_ = json.Unmarshal(body, &e)

	switch {
	case status == http.StatusBadRequest && e.Detail == "Student already signed up for this activity":
		return OutcomeDuplicate
	case status == http.StatusBadRequest && e.Detail == "Activity is full":
		return OutcomeFull
	case status == http.StatusNotFound && e.Detail == "Student not registered for this activity":
		return OutcomeNotRegistered
	case status == http.StatusNotFound:
		return OutcomeNotFound
	default:
		return OutcomeFailed
	}
}

// readResponseBody reads and closes the response body.
func readResponseBody(resp *http.Response) ([]byte, error) {
	defer resp.Body.Close()
	return io.ReadAll(resp.Body)
}
