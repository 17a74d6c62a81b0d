package fetch

import "context"

// fetcherBackend is the transport behind a Fetcher.
// Paths passed to a backend are already validated, slash-separated and prefixed with the assets directory.
type fetcherBackend interface {
	// Fetch retrieves the bytes stored at the relative path.
	//
	// Parameters:
	//   - ctx: context bounding the retrieval
	//   - rel: the origin-relative path, e.g. "assets/WIP.obj"
	//
	// Returns:
	//   - []byte: the raw bytes
	//   - error: a *FetchError or transport error
	Fetch(ctx context.Context, rel string) ([]byte, error)

	// Locate returns the URL or file path for the relative path.
	//
	// Parameters:
	//   - rel: the origin-relative path
	//
	// Returns:
	//   - string: the resolved location
	Locate(rel string) string
}
