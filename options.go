package cloudstatus

import (
	"errors"
	"log/slog"
	"time"
)

// checkerConfig holds mutable state during Checker construction.
type checkerConfig struct {
	fetcher Fetcher
	timeout time.Duration
	logger  *slog.Logger
}

// Option is a function that configures a [Checker] during construction.
//
// Option implements the functional options pattern. Options return an error
// if validation fails.
//
// Built-in options: [WithFetcher], [WithTimeout], [WithLogger].
type Option func(*checkerConfig) error

// WithFetcher replaces the HTTP fetcher used to retrieve status pages.
//
// This is mainly useful in tests, to serve canned status pages without
// touching the network.
//
// Returns an error if f is nil.
func WithFetcher(f Fetcher) Option {
	return func(cfg *checkerConfig) error {
		if f == nil {
			return errors.New("fetcher cannot be nil")
		}
		cfg.fetcher = f
		return nil
	}
}

// WithTimeout sets the per-request timeout. Defaults to [DefaultTimeout].
//
// A timed-out request yields a [StatusUnknown] result for that provider only.
//
// Returns an error if the duration is zero or negative.
func WithTimeout(d time.Duration) Option {
	return func(cfg *checkerConfig) error {
		if d <= 0 {
			return errors.New("timeout must be positive")
		}
		cfg.timeout = d
		return nil
	}
}

// WithLogger sets the structured logger for check events.
//
// Completed checks are logged at DEBUG, checks ending in an error at WARN and
// recovered classifier panics at ERROR. If not set, slog.Default() is used.
//
// Example:
//
//	logger := slog.New(slog.NewJSONHandler(os.Stderr, nil))
//	c, err := cloudstatus.New(cloudstatus.WithLogger(logger))
func WithLogger(logger *slog.Logger) Option {
	return func(cfg *checkerConfig) error {
		cfg.logger = logger
		return nil
	}
}
