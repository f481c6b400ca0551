package registry

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/dmitrymomot/qrbench/pkg/cache"
	"github.com/dmitrymomot/qrbench/pkg/logger"
	"github.com/dmitrymomot/qrbench/pkg/sanitizer"
)

// Download periods understood by the downloads API.
const (
	PeriodLastDay   = "last-day"
	PeriodLastWeek  = "last-week"
	PeriodLastMonth = "last-month"
)

const maxNameLength = 214

// Client talks to the npm registry and downloads APIs.
type Client struct {
	cfg     Config
	http    *http.Client
	cache   cache.Cache[PackageInfo]
	backoff Backoff
	breaker *breaker
	logger  *slog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// WithCache replaces the package info cache.
func WithCache(pc cache.Cache[PackageInfo]) Option {
	return func(c *Client) {
		if pc != nil {
			c.cache = pc
		}
	}
}

// WithBackoff sets the retry delay strategy.
func WithBackoff(b Backoff) Option {
	return func(c *Client) {
		if b != nil {
			c.backoff = b
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.logger = l
		}
	}
}

// New creates a Client. Zero fields of cfg take the public npm defaults.
func New(cfg Config, opts ...Option) *Client {
	def := DefaultConfig()
	cfg.RegistryURL = strings.TrimRight(firstNonEmpty(cfg.RegistryURL, def.RegistryURL), "/")
	cfg.DownloadsURL = strings.TrimRight(firstNonEmpty(cfg.DownloadsURL, def.DownloadsURL), "/")
	if cfg.Timeout <= 0 {
		cfg.Timeout = def.Timeout
	}
	if cfg.CacheSize <= 0 {
		cfg.CacheSize = def.CacheSize
	}
	cfg.Retries = sanitizer.ClampMin(cfg.Retries, 0)

	c := &Client{
		cfg:     cfg,
		http:    &http.Client{Timeout: cfg.Timeout},
		backoff: ExponentialBackoff{JitterFactor: 0.1},
		breaker: newBreaker(cfg.BreakerThreshold, cfg.BreakerRecovery),
		logger:  logger.Discard(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.cache == nil {
		c.cache = cache.NewMemory[PackageInfo](cfg.CacheSize, cfg.CacheTTL)
	}
	c.logger = c.logger.With(logger.Component("registry"))
	return c
}

// PackageInfo returns the metadata of the latest version of name together
// with its download statistics.
func (c *Client) PackageInfo(ctx context.Context, name string) (PackageInfo, error) {
	if err := validateName(name); err != nil {
		return PackageInfo{}, err
	}
	if info, ok := c.cache.Get(ctx, name); ok {
		return info, nil
	}

	var (
		doc    document
		weekly PackageStats
		month  DownloadStats
		wErr   error
		mErr   error
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return c.getJSON(gctx, c.cfg.RegistryURL+"/"+escape(name), &doc)
	})
	g.Go(func() error {
		weekly, wErr = c.WeeklyDownloads(gctx, name)
		return nil
	})
	g.Go(func() error {
		month, mErr = c.DownloadRange(gctx, name, PeriodLastMonth)
		return nil
	})
	if err := g.Wait(); err != nil {
		return PackageInfo{}, fmt.Errorf("fetch %s: %w", name, err)
	}

	info, err := doc.info()
	if err != nil {
		return PackageInfo{}, fmt.Errorf("%w: %s", err, name)
	}

	if wErr != nil {
		c.logger.WarnContext(ctx, "weekly downloads unavailable", logger.Package(name), logger.Error(wErr))
	} else {
		info.WeeklyDownloads = weekly.Downloads
	}
	if mErr != nil {
		c.logger.WarnContext(ctx, "download range unavailable", logger.Package(name), logger.Error(mErr))
	} else {
		info.DownloadStats = &month
	}

	c.cache.Set(ctx, name, info)
	return info, nil
}

// WeeklyDownloads returns the download total of the last week.
func (c *Client) WeeklyDownloads(ctx context.Context, name string) (PackageStats, error) {
	if err := validateName(name); err != nil {
		return PackageStats{}, err
	}
	var out PackageStats
	err := c.getJSON(ctx, c.cfg.DownloadsURL+"/point/"+PeriodLastWeek+"/"+escape(name), &out)
	return out, err
}

// DownloadRange returns the per-day downloads of period.
func (c *Client) DownloadRange(ctx context.Context, name, period string) (DownloadStats, error) {
	if err := validateName(name); err != nil {
		return DownloadStats{}, err
	}
	var out DownloadStats
	err := c.getJSON(ctx, c.cfg.DownloadsURL+"/range/"+period+"/"+escape(name), &out)
	return out, err
}

// getJSON decodes the JSON body at rawURL into v, retrying transient failures.
func (c *Client) getJSON(ctx context.Context, rawURL string, v any) error {
	var lastErr error
	for attempt := 0; attempt <= c.cfg.Retries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return errors.Join(lastErr, ctx.Err())
			case <-time.After(c.backoff.NextInterval(attempt)):
			}
		}
		if !c.breaker.allow() {
			return ErrUnavailable
		}

		retry, err := c.fetch(ctx, rawURL, v)
		if err == nil {
			c.breaker.success()
			return nil
		}
		lastErr = err
		if !retry {
			return err
		}
		c.breaker.failure()
		c.logger.DebugContext(ctx, "registry request failed",
			slog.String("url", rawURL),
			slog.Int("attempt", attempt+1),
			logger.Error(err),
		)
	}
	return lastErr
}

// fetch performs one request and reports whether a failure is worth retrying.
func (c *Client) fetch(ctx context.Context, rawURL string, v any) (bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return false, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "qrbench/1.0")

	resp, err := c.http.Do(req)
	if err != nil {
		return ctx.Err() == nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return false, ErrPackageNotFound
	case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500:
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 1<<16))
		return true, fmt.Errorf("%w: %d", ErrUnexpectedStatus, resp.StatusCode)
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return false, fmt.Errorf("%w: %d", ErrUnexpectedStatus, resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return false, errors.Join(ErrDecode, err)
	}
	return false, nil
}

func validateName(name string) error {
	if name == "" || len(name) > maxNameLength || strings.ContainsAny(name, " \t\r\n") {
		return fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	return nil
}

// escape encodes name as a single path segment, so scoped packages keep
// their slash encoded.
func escape(name string) string {
	return url.PathEscape(name)
}
