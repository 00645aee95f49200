package platform

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/zettelhaus/zettel/pkg/agents"
)

// options holds the internal configuration for the application graph.
type options struct {
	logger    *slog.Logger
	completer agents.Completer
	fetcher   *http.Client
	clock     func() time.Time
}

// Option defines a functional option for configuring the application.
type Option func(*options)

// defaultOptions returns the default configuration.
func defaultOptions() *options {
	return &options{
		logger: slog.Default(),
		clock:  time.Now,
	}
}

// WithLogger sets the logger shared across the components.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithCompleter enables the agents by providing the model client. Without
// it the application runs with agents disabled.
func WithCompleter(c agents.Completer) Option {
	return func(o *options) { o.completer = c }
}

// WithFetcher replaces the HTTP client used by the web extractor.
func WithFetcher(hc *http.Client) Option {
	return func(o *options) { o.fetcher = hc }
}

// WithClock overrides the wall clock, mainly for deterministic tests.
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		if now != nil {
			o.clock = now
		}
	}
}
