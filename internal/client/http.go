package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// maxErrorBody limits how much of an error response is kept in the message
const maxErrorBody = 512

var errorBodyPolicy = bluemonday.StrictPolicy()

// get makes an authenticated GET request. Non-2xx responses are closed and
// returned as ErrHTTPStatus; the caller owns the body of a successful response.
func (c *Client) get(ctx context.Context, rawURL string) (*http.Response, error) {
	creds, err := c.creds.Credentials()
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, wrapError(ErrInvalidConfig, "failed to create request", err)
	}
	req.SetBasicAuth(creds.Username, creds.Password)
	req.Header.Set("Accept", "application/json")

	c.logger.Debug("http request", "method", req.Method, "url", rawURL, "user", creds.Username)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, wrapError(ErrNetwork, "request canceled", ctx.Err())
		}
		return nil, wrapError(ErrNetwork, "GET "+rawURL, err)
	}

	c.logger.Debug("http response", "url", rawURL, "status", resp.StatusCode)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		defer resp.Body.Close()
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		regErr := NewRegistryError(ErrHTTPStatus,
			fmt.Sprintf("GET %s returned %d%s", rawURL, resp.StatusCode, errorExcerpt(body)))
		regErr.Details["status_code"] = resp.StatusCode
		regErr.Details["url"] = rawURL
		return nil, regErr
	}

	return resp, nil
}

// getJSON makes a GET request and decodes the JSON body into v
func (c *Client) getJSON(ctx context.Context, rawURL string, v interface{}) error {
	resp, err := c.get(ctx, rawURL)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return wrapError(ErrNetwork, "failed to read response from "+rawURL, err)
	}

	if err := json.Unmarshal(body, v); err != nil {
		return wrapError(ErrDecode, "failed to decode response from "+rawURL, err)
	}

	return nil
}

// Status checks that the server is reachable and accepts the credentials
func (c *Client) Status(ctx context.Context) error {
	resp, err := c.get(ctx, c.endpoint.Status())
	if err != nil {
		return err
	}
	resp.Body.Close()
	return nil
}

// errorExcerpt turns an error body (often an HTML page) into a short
// single-line suffix.
func errorExcerpt(body []byte) string {
	text := errorBodyPolicy.Sanitize(string(body))
	text = strings.Join(strings.Fields(text), " ")
	if text == "" {
		return ""
	}
	return ": " + text
}
