package fetch

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"path"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/Carmen-Shannon/oxy-viewer/engine/logger"
	"go.uber.org/zap"
)

// AssetsDir is the fixed directory beneath the origin that every asset name resolves into.
const AssetsDir = "assets"

// fetcher is the implementation of the Fetcher interface.
type fetcher struct {
	origin  string
	timeout time.Duration
	backend fetcherBackend
	log     *zap.Logger
}

// Fetcher retrieves raw text and binary assets by relative name.
// Every name resolves to <origin>/assets/<name>. Each call is a single retrieval with no retry or caching.
type Fetcher interface {
	// Origin returns the content origin assets are resolved against.
	//
	// Returns:
	//   - string: the origin URL or directory
	Origin() string

	// Resolve returns the location an asset name resolves to without fetching it.
	//
	// Parameters:
	//   - name: the asset-relative name
	//
	// Returns:
	//   - string: the resolved URL or file path
	//   - error: *FetchError if the name is empty or escapes the assets directory
	Resolve(name string) (string, error)

	// FetchText retrieves an asset and decodes it as UTF-8 text.
	//
	// Parameters:
	//   - ctx: context bounding the retrieval
	//   - name: the asset-relative name
	//
	// Returns:
	//   - string: the decoded text
	//   - error: *FetchError on transport failure or invalid UTF-8
	FetchText(ctx context.Context, name string) (string, error)

	// FetchBinary retrieves an asset as raw bytes.
	//
	// Parameters:
	//   - ctx: context bounding the retrieval
	//   - name: the asset-relative name
	//
	// Returns:
	//   - []byte: the raw bytes
	//   - error: *FetchError on transport failure
	FetchBinary(ctx context.Context, name string) ([]byte, error)
}

var _ Fetcher = &fetcher{}

// NewFetcher creates a Fetcher for the configured origin.
// An origin with an http or https scheme is fetched over HTTP. A file:// URL or a plain path is read from disk.
//
// Parameters:
//   - options: functional options to configure the fetcher
//
// Returns:
//   - Fetcher: the configured fetcher
//   - error: error if the origin is empty or has an unsupported scheme
func NewFetcher(options ...FetcherBuilderOption) (Fetcher, error) {
	f := &fetcher{
		origin:  ".",
		timeout: 30 * time.Second,
	}
	for _, opt := range options {
		opt(f)
	}
	if f.log == nil {
		f.log = logger.Named("fetch")
	}
	if f.backend != nil {
		return f, nil
	}

	backend, err := backendForOrigin(f.origin, f.timeout)
	if err != nil {
		return nil, err
	}
	f.backend = backend
	return f, nil
}

// backendForOrigin picks the backend from the origin's scheme.
func backendForOrigin(origin string, timeout time.Duration) (fetcherBackend, error) {
	if origin == "" {
		return nil, fmt.Errorf("asset origin is empty")
	}
	u, err := url.Parse(origin)
	if err != nil {
		return nil, fmt.Errorf("parse asset origin %q: %w", origin, err)
	}
	switch u.Scheme {
	case "http", "https":
		return newHTTPFetcherBackend(u, timeout), nil
	case "file":
		return newFSFetcherBackend(u.Path), nil
	case "":
		return newFSFetcherBackend(origin), nil
	default:
		// Windows drive letters parse as a one-letter scheme.
		if len(u.Scheme) == 1 {
			return newFSFetcherBackend(origin), nil
		}
		return nil, fmt.Errorf("unsupported asset origin scheme %q", u.Scheme)
	}
}

// cleanName validates an asset name and returns its slash-separated form relative to the assets directory.
func cleanName(name string) (string, error) {
	if strings.TrimSpace(name) == "" {
		return "", &FetchError{Name: name, Reason: "empty asset name"}
	}
	n := strings.ReplaceAll(name, "\\", "/")
	if strings.HasPrefix(n, "/") {
		return "", &FetchError{Name: name, Reason: "asset name must be relative"}
	}
	n = path.Clean(n)
	if n == ".." || strings.HasPrefix(n, "../") {
		return "", &FetchError{Name: name, Reason: "asset name escapes the assets directory"}
	}
	return path.Join(AssetsDir, n), nil
}

func (f *fetcher) Origin() string {
	return f.origin
}

func (f *fetcher) Resolve(name string) (string, error) {
	rel, err := cleanName(name)
	if err != nil {
		return "", err
	}
	return f.backend.Locate(rel), nil
}

func (f *fetcher) FetchText(ctx context.Context, name string) (string, error) {
	data, err := f.FetchBinary(ctx, name)
	if err != nil {
		return "", err
	}
	if !utf8.Valid(data) {
		rel, _ := cleanName(name)
		return "", &FetchError{Name: name, Location: f.backend.Locate(rel), Reason: "response is not valid UTF-8 text"}
	}
	return string(data), nil
}

func (f *fetcher) FetchBinary(ctx context.Context, name string) ([]byte, error) {
	rel, err := cleanName(name)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	data, err := f.backend.Fetch(ctx, rel)
	if err != nil {
		f.log.Warn("fetch failed", zap.String("name", name), zap.Error(err))
		var fe *FetchError
		if errors.As(err, &fe) {
			if fe.Name == "" {
				fe.Name = name
			}
			return nil, fe
		}
		return nil, &FetchError{Name: name, Location: f.backend.Locate(rel), Reason: "retrieval failed", Err: err}
	}

	f.log.Debug("fetched asset",
		zap.String("name", name),
		zap.Int("bytes", len(data)),
		zap.Duration("elapsed", time.Since(start)),
	)
	return data, nil
}
