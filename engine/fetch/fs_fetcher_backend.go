package fetch

import (
	"context"
	"os"
	"path/filepath"
)

// fsFetcherBackend reads assets from a local directory origin.
type fsFetcherBackend struct {
	root string
}

var _ fetcherBackend = &fsFetcherBackend{}

func newFSFetcherBackend(root string) *fsFetcherBackend {
	return &fsFetcherBackend{root: root}
}

func (b *fsFetcherBackend) Locate(rel string) string {
	return filepath.Join(b.root, filepath.FromSlash(rel))
}

func (b *fsFetcherBackend) Fetch(ctx context.Context, rel string) ([]byte, error) {
	loc := b.Locate(rel)
	if err := ctx.Err(); err != nil {
		return nil, &FetchError{Location: loc, Reason: "cancelled", Err: err}
	}
	data, err := os.ReadFile(loc)
	if err != nil {
		return nil, &FetchError{Location: loc, Reason: "read file", Err: err}
	}
	return data, nil
}
