// Package lruclient talks to an lruserver instance.
package lruclient

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
)

// StatusError is returned when the server answers with an unexpected status.
type StatusError struct {
	Method string
	Path   string
	Code   int
	Body   string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s %s: unexpected status %d: %s", e.Method, e.Path, e.Code, e.Body)
}

// Stats mirrors the server's GET /v1/stats response.
type Stats struct {
	Size     int `json:"size"`
	Capacity int `json:"capacity"`
}

// Client is a thin HTTP client for the cache server.
type Client struct {
	http *resty.Client
}

// New returns a client for the server at baseURL, e.g. "http://localhost:8080".
func New(baseURL string) *Client {
	return &Client{
		http: resty.New().
			SetHostURL(baseURL).
			SetTimeout(10 * time.Second),
	}
}

// Get fetches key. A missing key is reported as ok == false with a nil error.
func (c *Client) Get(ctx context.Context, key string) (value string, ok bool, err error) {
	resp, err := c.key(ctx, key).Get("/v1/keys/{key}")
	if err != nil {
		return "", false, fmt.Errorf("get %q: %w", key, err)
	}

	switch resp.StatusCode() {
	case http.StatusOK:
		return resp.String(), true, nil
	case http.StatusNotFound:
		return "", false, nil
	default:
		return "", false, statusError(resp)
	}
}

// Put stores value under key.
func (c *Client) Put(ctx context.Context, key, value string) error {
	resp, err := c.key(ctx, key).
		SetHeader("Content-Type", "application/octet-stream").
		SetBody([]byte(value)).
		Put("/v1/keys/{key}")
	if err != nil {
		return fmt.Errorf("put %q: %w", key, err)
	}
	if resp.StatusCode() != http.StatusNoContent {
		return statusError(resp)
	}
	return nil
}

// Contains checks presence without promoting the key on the server.
func (c *Client) Contains(ctx context.Context, key string) (bool, error) {
	resp, err := c.key(ctx, key).Head("/v1/keys/{key}")
	if err != nil {
		return false, fmt.Errorf("contains %q: %w", key, err)
	}

	switch resp.StatusCode() {
	case http.StatusOK:
		return true, nil
	case http.StatusNotFound:
		return false, nil
	default:
		return false, statusError(resp)
	}
}

// Remove deletes key and reports whether it was present.
func (c *Client) Remove(ctx context.Context, key string) (bool, error) {
	resp, err := c.key(ctx, key).Delete("/v1/keys/{key}")
	if err != nil {
		return false, fmt.Errorf("remove %q: %w", key, err)
	}

	switch resp.StatusCode() {
	case http.StatusNoContent:
		return true, nil
	case http.StatusNotFound:
		return false, nil
	default:
		return false, statusError(resp)
	}
}

func (c *Client) Stats(ctx context.Context) (Stats, error) {
	var stats Stats
	resp, err := c.http.R().
		SetContext(ctx).
		SetResult(&stats).
		Get("/v1/stats")
	if err != nil {
		return Stats{}, fmt.Errorf("stats: %w", err)
	}
	if resp.StatusCode() != http.StatusOK {
		return Stats{}, statusError(resp)
	}
	return stats, nil
}

func (c *Client) key(ctx context.Context, key string) *resty.Request {
	return c.http.R().
		SetContext(ctx).
		SetPathParams(map[string]string{"key": key})
}

func statusError(resp *resty.Response) error {
	return &StatusError{
		Method: resp.Request.Method,
		Path:   resp.Request.URL,
		Code:   resp.StatusCode(),
		Body:   resp.String(),
	}
}
