// Package client provides the HTTP client for the spendly REST API. It is the
// only component that talks to the remote store; the category and spending
// stores depend on it through small interfaces.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	apperrors "spendly/internal/errors"
	"spendly/internal/logger"
	"spendly/internal/session"
)

// Client communicates with the spendly REST API. Every request carries the
// credentials of the session it was created with.
type Client struct {
	baseURL    string
	session    *session.Session
	httpClient *http.Client
	log        *zap.SugaredLogger
}

// New creates a client for the API rooted at baseURL, e.g.
// "http://localhost:8000/api". A nil httpClient uses http.DefaultClient.
func New(baseURL string, sess *session.Session, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	if sess == nil {
		sess = session.New("")
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		session:    sess,
		httpClient: httpClient,
		log:        logger.Named("sync"),
	}
}

// Session returns the session the client authenticates with.
func (c *Client) Session() *session.Session {
	return c.session
}

func (c *Client) newRequest(ctx context.Context, method, path string, body io.Reader, contentType string) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrTransport, fmt.Errorf("creating request: %w", err))
	}
	req.Header.Set("Accept", "application/json")
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	c.session.Authorize(req)
	return req, nil
}

// doJSON sends in (if non-nil) as a JSON body and decodes the response into
// out (if non-nil).
func (c *Client) doJSON(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	contentType := ""
	if in != nil {
		raw, err := json.Marshal(in)
		if err != nil {
			return apperrors.Wrap(apperrors.ErrTransport, fmt.Errorf("marshaling request: %w", err))
		}
		body = bytes.NewReader(raw)
		contentType = "application/json"
	}

	req, err := c.newRequest(ctx, method, path, body, contentType)
	if err != nil {
		return err
	}
	return c.send(req, out)
}

func (c *Client) send(req *http.Request, out any) error {
	op := req.Method + " " + req.URL.Path
	start := time.Now()

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Debugw("sync request failed", "method", req.Method, "path", req.URL.Path, "error", err)
		return apperrors.Wrap(apperrors.ErrTransport, fmt.Errorf("%s: %w", op, err))
	}
	defer func() { _ = resp.Body.Close() }()

	c.log.Debugw("sync request",
		"method", req.Method,
		"path", req.URL.Path,
		"status", resp.StatusCode,
		"latency_ms", time.Since(start).Milliseconds(),
	)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return decodeError(resp, op)
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return apperrors.Wrap(apperrors.ErrTransport, fmt.Errorf("decoding %s response: %w", op, err))
	}
	return nil
}
