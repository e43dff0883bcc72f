package paperless

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"
)

// DefaultTimeout bounds a single request, uploads included.
const DefaultTimeout = 2 * time.Minute

// QueryParams is a set of query string values; empty values are skipped.
type QueryParams map[string]string

// Client wraps HTTP calls to the Paperless-ngx REST API.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

// NewClient creates a new API client.
func NewClient(baseURL, token string, timeout ...time.Duration) *Client {
	httpTimeout := DefaultTimeout
	if len(timeout) > 0 && timeout[0] > 0 {
		httpTimeout = timeout[0]
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		httpClient: &http.Client{
			Timeout: httpTimeout,
		},
	}
}

// BaseURL returns the server root the client talks to.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// SetToken updates the API token used for subsequent requests.
func (c *Client) SetToken(token string) {
	c.token = token
}

// do executes an HTTP request and returns the raw response body.
func (c *Client) do(ctx context.Context, method, path string, body io.Reader, contentType string) ([]byte, int, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, 0, fmt.Errorf("create request: %w", err)
	}

	if c.token != "" {
		req.Header.Set("Authorization", "Token "+c.token)
	}
	req.Header.Set("Accept", "application/json")
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, resp.StatusCode, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode >= 400 {
		if msg, ok := extractAPIErrorBody(respBody); ok {
			return nil, resp.StatusCode, &APIError{Status: resp.StatusCode, Message: msg}
		}
		return nil, resp.StatusCode, &APIError{Status: resp.StatusCode, Message: strings.TrimSpace(string(respBody))}
	}

	return respBody, resp.StatusCode, nil
}

// get performs a GET request.
func (c *Client) get(ctx context.Context, path string) ([]byte, error) {
	body, _, err := c.do(ctx, http.MethodGet, path, nil, "")
	return body, err
}

// post performs a JSON POST request.
func (c *Client) post(ctx context.Context, path string, body any) ([]byte, error) {
	data, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("marshal body: %w", err)
	}
	b, _, err := c.do(ctx, http.MethodPost, path, bytes.NewReader(data), "application/json")
	return b, err
}

// relative turns an absolute pagination link into a path under baseURL.
// The server may report a different scheme or host behind a proxy.
func (c *Client) relative(link string) string {
	u, err := url.Parse(link)
	if err != nil || u.Host == "" {
		return link
	}
	return u.RequestURI()
}

// buildQuery appends query params to a path in a stable order.
func buildQuery(path string, params QueryParams) string {
	if len(params) == 0 {
		return path
	}
	keys := make([]string, 0, len(params))
	for k, v := range params {
		if v != "" {
			keys = append(keys, k)
		}
	}
	if len(keys) == 0 {
		return path
	}
	sort.Strings(keys)
	q := url.Values{}
	for _, k := range keys {
		q.Set(k, params[k])
	}
	return path + "?" + q.Encode()
}
