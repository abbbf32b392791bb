// Package api talks to the worksheet listing and delete endpoints.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/codalab/lazyworksheets/internal/buildinfo"
	"github.com/codalab/lazyworksheets/internal/config"
	"github.com/codalab/lazyworksheets/internal/models"
)

// maxErrorBody bounds how much of a failed response is kept for messages.
const maxErrorBody = 2048

// Service is the remote source of truth for worksheets.
type Service interface {
	ListWorksheets(ctx context.Context) ([]models.Worksheet, error)
	DeleteWorksheet(ctx context.Context, uuid string) error
}

// HTTPError reports a non-2xx response.
type HTTPError struct {
	StatusCode int
	Status     string
	Body       string
}

func (e *HTTPError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("server returned %s", e.Status)
	}
	return fmt.Sprintf("server returned %s: %s", e.Status, e.Body)
}

// StatusText describes err for the list banner, preferring the HTTP status.
func StatusText(err error) string {
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.Status
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return "request timed out"
	}
	return err.Error()
}

// Client is the HTTP implementation of Service.
type Client struct {
	baseURL       string
	listPath      string
	deletePath    string
	token         string
	sessionCookie string
	httpClient    *http.Client
}

// Option customises a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// NewClient builds a client from the configured server and credentials.
func NewClient(cfg *config.AppConfig, opts ...Option) *Client {
	c := &Client{
		baseURL:       strings.TrimRight(cfg.ServerURL, "/"),
		listPath:      cfg.ListPath,
		deletePath:    cfg.DeletePath,
		token:         cfg.APIToken,
		sessionCookie: cfg.SessionCookie,
		httpClient:    &http.Client{Timeout: cfg.Timeout()},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) endpoint(path string) string {
	return c.baseURL + "/" + strings.TrimLeft(path, "/")
}

func (c *Client) newRequest(ctx context.Context, method, path string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.endpoint(path), body)
	if err != nil {
		return nil, fmt.Errorf("build %s request: %w", method, err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", buildinfo.UserAgent())
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	if c.sessionCookie != "" {
		req.Header.Set("Cookie", c.sessionCookie)
	}
	return req, nil
}

func (c *Client) do(req *http.Request) ([]byte, error) {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", req.Method, req.URL.Path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body := strings.TrimSpace(string(data))
		if len(body) > maxErrorBody {
			body = body[:maxErrorBody]
		}
		return nil, &HTTPError{StatusCode: resp.StatusCode, Status: resp.Status, Body: body}
	}
	return data, nil
}

// ListWorksheets fetches every worksheet visible to the caller, in server order.
func (c *Client) ListWorksheets(ctx context.Context) ([]models.Worksheet, error) {
	req, err := c.newRequest(ctx, http.MethodGet, c.listPath, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Cache-Control", "no-cache")

	data, err := c.do(req)
	if err != nil {
		return nil, err
	}

	var worksheets []models.Worksheet
	if err := json.Unmarshal(data, &worksheets); err != nil {
		return nil, fmt.Errorf("decode worksheets: %w", err)
	}
	if worksheets == nil {
		worksheets = []models.Worksheet{}
	}
	return worksheets, nil
}

type deleteRequest struct {
	WorksheetUUID string `json:"worksheet_uuid"`
}

// DeleteWorksheet asks the server to permanently delete a worksheet.
func (c *Client) DeleteWorksheet(ctx context.Context, uuid string) error {
	if strings.TrimSpace(uuid) == "" {
		return errors.New("delete worksheet: empty uuid")
	}

	payload, err := json.Marshal(deleteRequest{WorksheetUUID: uuid})
	if err != nil {
		return fmt.Errorf("encode delete request: %w", err)
	}

	req, err := c.newRequest(ctx, http.MethodPost, c.deletePath, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json; charset=utf-8")

	if _, err := c.do(req); err != nil {
		return fmt.Errorf("delete worksheet %s: %w", uuid, err)
	}
	return nil
}

// WithTimeout derives a request context bounded by d; d <= 0 means no extra bound.
func WithTimeout(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if d <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, d)
}
