package assets

// AssetBundle is a unit of assets a Manager waits on.
type AssetBundle interface {
	// Construct resets the bundle to a fresh, unloaded state.
	Construct()

	// FullyLoaded reports whether every asset of the bundle is ready to render.
	// It must not block.
	//
	// Returns:
	//   - bool: true once loading has completed successfully
	FullyLoaded() bool

	// StartLoading begins loading the bundle's assets and returns without waiting for them.
	StartLoading()
}
