package cloudstatus

import (
	"context"
	"fmt"
	"log/slog"
	"runtime/debug"
	"time"

	"github.com/google/uuid"

	"github.com/jpalmerr/cloudstatus/internal/fetch"
)

// Fetcher retrieves the body of a status page.
//
// Implementations return the decoded body on success, or an error whose
// message is suitable for display (e.g. "Network error: timed out").
type Fetcher interface {
	Fetch(ctx context.Context, url string, timeout time.Duration) (string, error)
}

// httpFetcher adapts the internal HTTP client to [Fetcher].
type httpFetcher struct {
	client *fetch.Client
}

func (f httpFetcher) Fetch(ctx context.Context, url string, timeout time.Duration) (string, error) {
	resp := f.client.Fetch(ctx, url, timeout)
	if resp.Error != nil {
		return "", resp.Error
	}
	return resp.Body, nil
}

// Checker checks providers from the static table one at a time.
//
// Checker is created with [New] and functional options. Checks are fully
// sequential: a provider is fetched and classified before the next begins.
// Every failure is contained in the returned [CheckResult]; nothing a
// provider does can abort the checks of the others.
type Checker struct {
	fetcher Fetcher
	client  *fetch.Client // nil when a custom fetcher is supplied
	timeout time.Duration
	logger  *slog.Logger
	now     func() time.Time
}

// New creates a [Checker] with the given options.
//
// Defaults:
//   - Fetcher: HTTP GET with User-Agent "CloudStatusChecker/1.0"
//   - Timeout: [DefaultTimeout] (10 seconds)
//   - Logger: slog.Default()
//
// Returns an error if any option is invalid.
func New(opts ...Option) (*Checker, error) {
	cfg := &checkerConfig{
		timeout: DefaultTimeout,
	}

	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}

	logger := cfg.logger
	if logger == nil {
		logger = slog.Default()
	}

	c := &Checker{
		fetcher: cfg.fetcher,
		timeout: cfg.timeout,
		logger:  logger,
		now:     time.Now,
	}
	if c.fetcher == nil {
		c.client = fetch.NewClient()
		c.fetcher = httpFetcher{client: c.client}
	}

	return c, nil
}

// Timeout returns the per-request timeout.
func (c *Checker) Timeout() time.Duration {
	return c.timeout
}

// Check checks a single provider by id. The id is matched case-insensitively.
//
// An id that is not in the provider table yields a [StatusUnknown] result
// with the error "Unknown provider: <id>" and the id exactly as given.
func (c *Checker) Check(ctx context.Context, id string) CheckResult {
	p, ok := LookupProvider(id)
	if !ok {
		c.logger.Warn("unknown provider requested", "provider", id)
		result := unknownResult(id, "Unknown provider: "+id)
		result.CheckedAt = c.now()
		return result
	}
	return c.check(ctx, p)
}

// CheckAll checks every provider in the table's fixed order.
func (c *Checker) CheckAll(ctx context.Context) []CheckResult {
	results := make([]CheckResult, 0, len(providerTable))
	for _, p := range providerTable {
		results = append(results, c.check(ctx, p))
	}
	return results
}

// CheckIDs checks the given provider ids in order. Each id is resolved
// independently, so unknown ids produce unknown results rather than
// stopping the run.
func (c *Checker) CheckIDs(ctx context.Context, ids []string) []CheckResult {
	results := make([]CheckResult, 0, len(ids))
	for _, id := range ids {
		results = append(results, c.Check(ctx, id))
	}
	return results
}

// Close releases idle HTTP connections held by the default fetcher.
// Safe to call multiple times.
func (c *Checker) Close() {
	if c == nil {
		return
	}
	c.client.Close()
}

// check fetches and classifies one provider.
func (c *Checker) check(ctx context.Context, p Provider) CheckResult {
	start := time.Now()
	body, err := c.fetcher.Fetch(ctx, p.url, c.timeout)
	latency := time.Since(start)

	var result CheckResult
	if err != nil {
		result = unknownResult(p.label, err.Error())
	} else {
		result = c.safeClassify(p, body)
	}

	result.Provider = p.label
	result.URL = p.url
	result.Latency = latency
	result.CheckedAt = c.now()

	logAttrs := []any{
		"provider", p.id,
		"status", result.Status.String(),
		"url", p.url,
		"latency_ms", latency.Milliseconds(),
	}
	if result.Error != nil {
		c.logger.Warn("check completed with error", append(logAttrs, "error", *result.Error)...)
	} else {
		c.logger.Debug("check completed", logAttrs...)
	}

	return result
}

// safeClassify calls the provider's classifier with panic recovery.
// If the classifier panics, it logs the full stack trace with a correlation
// ID and returns an unknown result with an error containing the ID.
func (c *Checker) safeClassify(p Provider, body string) (result CheckResult) {
	defer func() {
		if r := recover(); r != nil {
			correlationID := uuid.NewString()
			stack := debug.Stack()

			c.logger.Error("classifier panic",
				"correlation_id", correlationID,
				"provider", p.id,
				"panic", fmt.Sprintf("%v", r),
				"stack", string(stack),
			)

			result = unknownResult(p.label, fmt.Sprintf("classifier panic (correlation_id: %s)", correlationID))
		}
	}()

	result = p.classifier(body)
	if result.Error != nil {
		result.Status = StatusUnknown
	}
	return result
}
