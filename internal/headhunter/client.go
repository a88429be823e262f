// Package headhunter fetches raw vacancy records from the HeadHunter API.
package headhunter

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"jobscout/internal/config"
	"jobscout/internal/logger"
	"jobscout/pkg/utils"
)

var (
	// ErrEmptyKeyword is returned when Fetch is called without a search text.
	ErrEmptyKeyword = errors.New("search keyword is required")

	// ErrUnexpectedStatusCode indicates an HTTP response with unexpected status.
	ErrUnexpectedStatusCode = errors.New("unexpected status code")
)

// maxBodyBytes caps a single page response.
const maxBodyBytes = 8 << 20

// page is the subset of the /vacancies response the client reads.
type page struct {
	Items []map[string]any `json:"items"`
	Found int              `json:"found"`
	Pages int              `json:"pages"`
	Page  int              `json:"page"`
}

// Client pages through /vacancies for a keyword.
type Client struct {
	httpClient *http.Client
	log        *logger.Logger
	headers    http.Header
	sleep      func(ctx context.Context, d time.Duration) error
	baseURL    string
	area       string
	retry      config.RetryPolicy
	perPage    int
	maxPages   int
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// NewClient creates a client for the configured source.
func NewClient(cfg config.SourceConfig, log *logger.Logger, opts ...Option) *Client {
	if log == nil {
		log = logger.NewNop()
	}

	c := &Client{
		httpClient: &http.Client{Timeout: cfg.Retry.GetTimeout()},
		log:        log,
		headers:    utils.NewHTTPHelper(cfg.UserAgent).BuildHeaders(nil),
		sleep:      sleepContext,
		baseURL:    cfg.BaseURL,
		area:       cfg.Area,
		retry:      cfg.Retry,
		perPage:    cfg.PerPage,
		maxPages:   cfg.MaxPages,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Fetch returns the raw items of every page for keyword, in API order.
//
// A page that cannot be fetched ends the walk: the items gathered so far are
// returned without an error and the failure is logged. Only an empty keyword
// or a cancelled context are reported as errors.
func (c *Client) Fetch(ctx context.Context, keyword string) ([]map[string]any, error) {
	if keyword == "" {
		return nil, ErrEmptyKeyword
	}

	items := make([]map[string]any, 0, c.perPage)

	for pageNum := 0; pageNum < c.maxPages; pageNum++ {
		if err := ctx.Err(); err != nil {
			return items, err
		}

		p, err := c.fetchPage(ctx, keyword, pageNum)
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return items, ctxErr
			}

			c.log.Warn("stopping vacancy search", "keyword", keyword, "page", pageNum, "err", err)

			break
		}

		items = append(items, p.Items...)

		c.log.Debug("vacancy page fetched",
			"keyword", keyword, "page", pageNum, "items", len(p.Items), "found", p.Found)

		if len(p.Items) == 0 || (p.Pages > 0 && pageNum+1 >= p.Pages) {
			break
		}
	}

	c.log.Info("vacancy search finished", "keyword", keyword, "count", len(items))

	return items, nil
}

func (c *Client) fetchPage(ctx context.Context, keyword string, pageNum int) (*page, error) {
	target, err := c.pageURL(keyword, pageNum)
	if err != nil {
		return nil, err
	}

	var lastErr error

	for attempt := 1; attempt <= c.retry.MaxAttempts; attempt++ {
		if attempt > 1 {
			if err := c.sleep(ctx, c.retry.GetRetryDelay(attempt)); err != nil {
				return nil, err
			}
		}

		p, retryable, err := c.doRequest(ctx, target)
		if err == nil {
			return p, nil
		}

		lastErr = fmt.Errorf("attempt %d/%d: %w", attempt, c.retry.MaxAttempts, err)

		if !retryable {
			break
		}
	}

	return nil, lastErr
}

func (c *Client) doRequest(ctx context.Context, target string) (*page, bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, http.NoBody)
	if err != nil {
		return nil, false, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header = c.headers.Clone()

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, ctx.Err() == nil, fmt.Errorf("request failed: %w", err)
	}

	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxBodyBytes))

		return nil, isRetryableStatus(resp.StatusCode), fmt.Errorf("%w: %d", ErrUnexpectedStatusCode, resp.StatusCode)
	}

	dec := json.NewDecoder(io.LimitReader(resp.Body, maxBodyBytes))
	dec.UseNumber()

	var p page
	if err := dec.Decode(&p); err != nil {
		return nil, false, fmt.Errorf("failed to decode response: %w", err)
	}

	return &p, false, nil
}

func (c *Client) pageURL(keyword string, pageNum int) (string, error) {
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return "", fmt.Errorf("invalid base url %q: %w", c.baseURL, err)
	}

	q := u.Query()
	q.Set("text", keyword)
	q.Set("page", strconv.Itoa(pageNum))
	q.Set("per_page", strconv.Itoa(c.perPage))

	if c.area != "" {
		q.Set("area", c.area)
	}

	u.RawQuery = q.Encode()

	return u.String(), nil
}

// isRetryableStatus determines if we should retry based on HTTP status code.
func isRetryableStatus(statusCode int) bool {
	switch statusCode {
	case http.StatusServiceUnavailable,
		http.StatusGatewayTimeout,
		http.StatusTooManyRequests,
		http.StatusRequestTimeout:
		return true
	}

	return false
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
