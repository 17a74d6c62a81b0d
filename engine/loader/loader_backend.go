package loader

import "context"

// loaderBackend defines the format-specific half of the Loader: turning an asset name into CPU-side
// mesh and material data. GPU upload is shared by every backend and lives in the Loader.
type loaderBackend interface {
	// Import fetches and parses a model and everything it references, short of texture pixels.
	//
	// Parameters:
	//   - ctx: context bounding every retrieval
	//   - name: the asset-relative model name
	//
	// Returns:
	//   - *importedModel: the imported meshes and materials
	//   - error: *fetch.FetchError, *ParseError, *DegenerateGeometryError or *InvalidMaterialIndexError
	Import(ctx context.Context, name string) (*importedModel, error)
}
