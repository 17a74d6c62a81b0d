package assets

import "go.uber.org/zap"

type managerConfig struct {
	depthTest bool
	log       *zap.Logger
}

// ManagerBuilderOption is a functional option for configuring a Manager via NewManager.
type ManagerBuilderOption func(*managerConfig)

// WithoutDepth builds the fallback pipeline for a render pass without a depth attachment.
//
// Returns:
//   - ManagerBuilderOption: a function that disables depth on the fallback pipeline
func WithoutDepth() ManagerBuilderOption {
	return func(c *managerConfig) {
		c.depthTest = false
	}
}

// WithLogger sets the logger of the Manager.
//
// Parameters:
//   - log: the logger
//
// Returns:
//   - ManagerBuilderOption: a function that applies the logger
func WithLogger(log *zap.Logger) ManagerBuilderOption {
	return func(c *managerConfig) {
		c.log = log
	}
}
