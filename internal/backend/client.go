// Package backend talks to the hosted Postgres backend through its REST
// interface. It is the only package that sees raw backend payloads; rows come
// out already normalized into booking.Booking values.
package backend

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

	"github.com/google/uuid"

	"github.com/tomvoss/rezdesk/internal/booking"
)

// Service is the capability the rest of the application consumes: list a
// table's rows and patch a subset of one row's columns. Implemented by
// *Client and by test fakes.
type Service interface {
	List(ctx context.Context, table string) ([]booking.Booking, error)
	Update(ctx context.Context, table, id string, fields map[string]string) error
}

// Ensure Client implements Service at compile time.
var _ Service = (*Client)(nil)

// Client is an HTTP client for the backend's REST interface. Construct it
// once and pass it down; it holds no global state.
type Client struct {
	baseURL   *url.URL
	key       string
	http      *http.Client
	userAgent string
}

const (
	restPrefix       = "/rest/v1"
	defaultUserAgent = "rezdesk/0.1"
	requestTimeout   = 10 * time.Second
	orderParam       = "created_at.desc"
)

// NewClient builds a Client from the backend endpoint URL and access key.
func NewClient(endpoint, key string) (*Client, error) {
	base, err := parseBaseURL(endpoint)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(key) == "" {
		return nil, fmt.Errorf("backend access key is empty")
	}
	return &Client{
		baseURL: base,
		key:     strings.TrimSpace(key),
		http: &http.Client{
			Timeout: requestTimeout,
		},
		userAgent: defaultUserAgent,
	}, nil
}

// List retrieves every row of table, newest first.
func (c *Client) List(ctx context.Context, table string) ([]booking.Booking, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	if strings.TrimSpace(table) == "" {
		return nil, fmt.Errorf("table name required")
	}
	values := url.Values{}
	values.Set("select", "*")
	values.Set("order", orderParam)
	rel := &url.URL{Path: restPrefix + "/" + table, RawQuery: values.Encode()}

	var rows []booking.Booking
	if err := c.do(ctx, http.MethodGet, rel, nil, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

// Update patches only the provided fields of one row, identified by id.
func (c *Client) Update(ctx context.Context, table, id string, fields map[string]string) error {
	if c == nil {
		return fmt.Errorf("client is nil")
	}
	if strings.TrimSpace(id) == "" {
		return fmt.Errorf("row id required")
	}
	if len(fields) == 0 {
		return fmt.Errorf("no fields to update")
	}
	body, err := json.Marshal(fields)
	if err != nil {
		return fmt.Errorf("encode update: %w", err)
	}
	values := url.Values{}
	values.Set("id", "eq."+id)
	rel := &url.URL{Path: restPrefix + "/" + table, RawQuery: values.Encode()}
	return c.do(ctx, http.MethodPatch, rel, body, nil)
}

func (c *Client) do(ctx context.Context, method string, rel *url.URL, body []byte, dest any) error {
	reqURL := c.baseURL.ResolveReference(rel)

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, reqURL.String(), reader)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("X-Request-Id", uuid.NewString())
	req.Header.Set("apikey", c.key)
	req.Header.Set("Authorization", "Bearer "+c.key)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Prefer", "return=minimal")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return classify(fmt.Errorf("execute request: %w", err))
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= 400 {
		return decodeAPIError(resp)
	}
	if dest == nil {
		return nil
	}
	decoder := json.NewDecoder(resp.Body)
	if err := decoder.Decode(dest); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func decodeAPIError(resp *http.Response) error {
	apiErr := &APIError{StatusCode: resp.StatusCode}
	data, err := io.ReadAll(io.LimitReader(resp.Body, 8*1024))
	if err == nil && len(data) > 0 {
		// Best effort; fall back to the raw body as the message.
		if jsonErr := json.Unmarshal(data, apiErr); jsonErr != nil {
			apiErr.Message = strings.TrimSpace(string(data))
		}
	}
	return apiErr
}

func parseBaseURL(endpoint string) (*url.URL, error) {
	trimmed := strings.TrimSpace(endpoint)
	if trimmed == "" {
		return nil, fmt.Errorf("backend endpoint URL is empty")
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "https://" + trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse endpoint %q: %w", endpoint, err)
	}
	u.Path = strings.TrimSuffix(u.Path, "/")
	u.RawQuery = ""
	u.Fragment = ""
	return u, nil
}
