package scrape

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"puzzle-leaderboard/core/puzzle"
	"puzzle-leaderboard/core/storage"
	"puzzle-leaderboard/feature/leaderboard/models"
	"puzzle-leaderboard/feature/leaderboard/reconcile"

	"github.com/cenkalti/backoff/v4"
	"go.uber.org/zap"
)

const archivePrefix = "pages"

var _ reconcile.Fetcher = (*Client)(nil)

// StatusError is a non-2xx response from the leaderboard server.
type StatusError struct {
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("leaderboard returned status %d", e.Code)
}

// Client fetches the leaderboard page.
type Client struct {
	cfg        puzzle.Config
	httpClient *http.Client
	archive    *storage.Archive
	logger     *zap.Logger
	newBackOff func() backoff.BackOff
}

// NewClient creates a leaderboard client. archive may be nil.
func NewClient(cfg puzzle.Config, archive *storage.Archive, logger *zap.Logger) *Client {
	timeout := cfg.TimeoutSeconds
	if timeout <= 0 {
		timeout = 30
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: time.Duration(timeout) * time.Second},
		archive:    archive,
		logger:     logger,
		newBackOff: func() backoff.BackOff {
			b := backoff.NewExponentialBackOff()
			b.InitialInterval = time.Second
			b.MaxInterval = 30 * time.Second
			b.MaxElapsedTime = 0
			return b
		},
	}
}

// Fetch downloads and parses the current leaderboard.
func (c *Client) Fetch(ctx context.Context) (*models.Snapshot, error) {
	body, err := c.FetchRaw(ctx)
	if err != nil {
		return nil, err
	}

	snap, err := Parse(bytes.NewReader(body))
	if err != nil {
		c.archivePage(ctx, body)
		return nil, fmt.Errorf("%w: %w", reconcile.ErrFetch, err)
	}
	return snap, nil
}

// FetchRaw downloads the leaderboard page body, retrying 5xx responses and network errors.
func (c *Client) FetchRaw(ctx context.Context) ([]byte, error) {
	retries := c.cfg.MaxRetries
	if retries < 0 {
		retries = 0
	}

	var body []byte
	attempt := 0
	op := func() error {
		attempt++
		b, err := c.get(ctx)
		if err != nil {
			var se *StatusError
			if errors.As(err, &se) && !retryable(se.Code) {
				return backoff.Permanent(err)
			}
			return err
		}
		body = b
		return nil
	}

	notify := func(err error, wait time.Duration) {
		c.logger.Warn("Leaderboard fetch failed, retrying",
			zap.Int("attempt", attempt),
			zap.Duration("wait", wait),
			zap.Error(err),
		)
	}

	policy := backoff.WithContext(backoff.WithMaxRetries(c.newBackOff(), uint64(retries)), ctx)
	if err := backoff.RetryNotify(op, policy, notify); err != nil {
		return nil, fmt.Errorf("%w: %w", reconcile.ErrFetch, err)
	}
	return body, nil
}

func (c *Client) get(ctx context.Context) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.cfg.URL, nil)
	if err != nil {
		return nil, backoff.Permanent(fmt.Errorf("failed to build request: %w", err))
	}
	if c.cfg.Cookies != "" {
		req.Header.Set("Cookie", c.cfg.Cookies)
	}
	if c.cfg.UserAgent != "" {
		req.Header.Set("User-Agent", c.cfg.UserAgent)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, &StatusError{Code: resp.StatusCode}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read body: %w", err)
	}
	return body, nil
}

func (c *Client) archivePage(ctx context.Context, body []byte) {
	if c.archive == nil {
		return
	}
	key, err := c.archive.Save(ctx, archivePrefix, ".html", "text/html", body)
	if err != nil {
		c.logger.Warn("Failed to archive unparseable page", zap.Error(err))
		return
	}
	c.logger.Info("Archived unparseable page", zap.String("bucket", c.archive.Bucket()), zap.String("key", key))

	if n, err := c.archive.Prune(ctx, archivePrefix); err != nil {
		c.logger.Warn("Failed to prune page archive", zap.Error(err))
	} else if n > 0 {
		c.logger.Debug("Pruned page archive", zap.Int("removed", n))
	}
}

func retryable(code int) bool {
	switch code {
	case http.StatusInternalServerError, http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
		return true
	}
	return false
}
