package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// httpFetcherBackend fetches assets from an http(s) origin.
type httpFetcherBackend struct {
	base   *url.URL
	client *http.Client
}

var _ fetcherBackend = &httpFetcherBackend{}

func newHTTPFetcherBackend(base *url.URL, timeout time.Duration) *httpFetcherBackend {
	return &httpFetcherBackend{
		base:   base,
		client: &http.Client{Timeout: timeout},
	}
}

func (b *httpFetcherBackend) Locate(rel string) string {
	u := *b.base
	u.Path = strings.TrimSuffix(u.Path, "/") + "/" + rel
	u.RawPath = ""
	u.RawQuery = ""
	u.Fragment = ""
	return u.String()
}

func (b *httpFetcherBackend) Fetch(ctx context.Context, rel string) ([]byte, error) {
	loc := b.Locate(rel)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, loc, nil)
	if err != nil {
		return nil, &FetchError{Location: loc, Reason: "build request", Err: err}
	}

	resp, err := b.client.Do(req)
	if err != nil {
		return nil, &FetchError{Location: loc, Reason: "transport failure", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// Drain so the connection can be reused.
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, &FetchError{Location: loc, Reason: fmt.Sprintf("unexpected status %s", resp.Status)}
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &FetchError{Location: loc, Reason: "read response body", Err: err}
	}
	return data, nil
}
