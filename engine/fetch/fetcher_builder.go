package fetch

import (
	"time"

	"go.uber.org/zap"
)

// FetcherBuilderOption is a functional option for configuring a Fetcher via NewFetcher.
type FetcherBuilderOption func(*fetcher)

// WithOrigin sets the content origin assets are resolved against.
//
// Parameters:
//   - origin: an http(s) URL, a file:// URL or a local directory
//
// Returns:
//   - FetcherBuilderOption: a function that applies the origin option to a fetcher
func WithOrigin(origin string) FetcherBuilderOption {
	return func(f *fetcher) {
		f.origin = origin
	}
}

// WithTimeout sets the per-request timeout used by the HTTP backend.
//
// Parameters:
//   - timeout: the request timeout, zero disables it
//
// Returns:
//   - FetcherBuilderOption: a function that applies the timeout option to a fetcher
func WithTimeout(timeout time.Duration) FetcherBuilderOption {
	return func(f *fetcher) {
		f.timeout = timeout
	}
}

// WithLogger sets the logger used for fetch diagnostics.
//
// Parameters:
//   - log: the logger
//
// Returns:
//   - FetcherBuilderOption: a function that applies the logger option to a fetcher
func WithLogger(log *zap.Logger) FetcherBuilderOption {
	return func(f *fetcher) {
		f.log = log
	}
}

// withBackend replaces the transport chosen from the origin.
func withBackend(b fetcherBackend) FetcherBuilderOption {
	return func(f *fetcher) {
		f.backend = b
	}
}
