// Package fetch retrieves web pages and reduces them to readable text.
package fetch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
	"unicode/utf8"

	"github.com/sirupsen/logrus"

	"pagereader/internal/extract"
)

// Error kinds surfaced to the caller. All of them are user-facing and
// non-fatal; nothing in this package retries.
var (
	ErrInvalidURL = errors.New("invalid URL")
	ErrNoData     = errors.New("page returned no usable data")
	ErrParsing    = errors.New("no readable text found on page")
)

// NetworkError wraps a transport failure or an unexpected HTTP status.
type NetworkError struct {
	URL    string
	Status int
	Err    error
}

func (e *NetworkError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("fetch %s: unexpected status %d", e.URL, e.Status)
	}
	return fmt.Sprintf("fetch %s: %v", e.URL, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// Client fetches pages. The zero value uses http.DefaultClient's transport
// with a 30 second timeout.
type Client struct {
	HTTPClient *http.Client
	UserAgent  string
}

func (c *Client) httpClient() *http.Client {
	if c.HTTPClient != nil {
		return c.HTTPClient
	}
	return &http.Client{Timeout: 30 * time.Second}
}

// FetchHTML issues a single GET for the URL and returns the raw body.
// Callers are expected to keep at most one fetch in flight.
func (c *Client) FetchHTML(ctx context.Context, rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil || u.Scheme != "http" && u.Scheme != "https" || u.Host == "" {
		return "", fmt.Errorf("%w: %q", ErrInvalidURL, rawURL)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrInvalidURL, rawURL)
	}
	if c.UserAgent != "" {
		req.Header.Set("User-Agent", c.UserAgent)
	}

	resp, err := c.httpClient().Do(req)
	if err != nil {
		return "", &NetworkError{URL: rawURL, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", &NetworkError{URL: rawURL, Status: resp.StatusCode}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &NetworkError{URL: rawURL, Err: err}
	}
	if len(body) == 0 || !utf8.Valid(body) {
		return "", fmt.Errorf("%w: %s", ErrNoData, rawURL)
	}

	return string(body), nil
}

// ReadPage fetches a page and extracts its text. Empty extraction output is
// reported as ErrParsing rather than returned.
func (c *Client) ReadPage(ctx context.Context, rawURL string) (string, error) {
	html, err := c.FetchHTML(ctx, rawURL)
	if err != nil {
		return "", err
	}

	text := extract.Text(html)
	if text == "" {
		logrus.WithField("url", rawURL).Debug("extraction produced no text")
		return "", fmt.Errorf("%w: %s", ErrParsing, rawURL)
	}
	return text, nil
}
