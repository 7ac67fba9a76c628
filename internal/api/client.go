package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// CommandPath is the endpoint that executes submitted command lines.
const CommandPath = "/terminal/command/"

// Client posts command lines to a terminal command endpoint.
type Client struct {
	baseURL string
	format  Format
	http    *http.Client
}

// NewClient creates a new API client. An empty format posts form data.
func NewClient(baseURL string, format Format) *Client {
	if format == "" {
		format = FormatForm
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		format:  format,
		http: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// Execute posts payload to CommandPath and returns the response body as
// text. Non-2xx responses return a *StatusError carrying the body.
func (c *Client) Execute(ctx context.Context, payload map[string]string) (string, error) {
	body, contentType, err := c.encode(payload)
	if err != nil {
		return "", err
	}
	return c.request(ctx, http.MethodPost, CommandPath, body, contentType)
}

func (c *Client) encode(payload map[string]string) (io.Reader, string, error) {
	switch c.format {
	case FormatJSON:
		b, err := json.Marshal(payload)
		if err != nil {
			return nil, "", fmt.Errorf("marshal request: %w", err)
		}
		return bytes.NewReader(b), "application/json", nil
	case FormatForm:
		q := url.Values{}
		for k, v := range payload {
			q.Set(k, v)
		}
		return strings.NewReader(q.Encode()), "application/x-www-form-urlencoded; charset=UTF-8", nil
	default:
		return nil, "", fmt.Errorf("unsupported payload format %q", c.format)
	}
}

func (c *Client) request(ctx context.Context, method, path string, body io.Reader, contentType string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Accept", "text/plain, */*")
	req.Header.Set("X-Requested-With", "XMLHttpRequest")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", &StatusError{StatusCode: resp.StatusCode, Body: string(respBody)}
	}

	return string(respBody), nil
}
