// Package config handles viewer configuration loading and management.
package config

import (
	"fmt"
	"net/url"
	"time"
)

// Config holds all viewer settings.
type Config struct {
	Window   WindowConfig   `yaml:"window"`
	Graphics GraphicsConfig `yaml:"graphics"`
	Assets   AssetsConfig   `yaml:"assets"`
	Loading  LoadingConfig  `yaml:"loading"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// WindowConfig holds window creation settings.
type WindowConfig struct {
	Title  string `yaml:"title"`
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
}

// GraphicsConfig holds surface and adapter settings.
type GraphicsConfig struct {
	VSync                bool `yaml:"vsync"`
	ForceFallbackAdapter bool `yaml:"force_fallback_adapter"`
	Profile              bool `yaml:"profile"`
}

// AssetsConfig holds the asset origin and the names resolved beneath it.
type AssetsConfig struct {
	// Origin is an http(s) URL, a file:// URL or a local directory. Assets resolve to <origin>/assets/<name>.
	Origin         string        `yaml:"origin"`
	Model          string        `yaml:"model"`
	DefaultDiffuse string        `yaml:"default_diffuse"`
	DefaultNormal  string        `yaml:"default_normal"`
	FetchTimeout   time.Duration `yaml:"fetch_timeout"`
	// SkipDegenerateUVs drops triangles with a zero-area UV mapping from tangent averaging instead of failing the load.
	SkipDegenerateUVs bool `yaml:"skip_degenerate_uvs"`
}

// LoadingConfig holds the worker settings of model loading.
type LoadingConfig struct {
	// Workers is the number of texture-decode workers in the loader.
	Workers int `yaml:"workers"`
	// QueueSize is the task queue capacity of the model bundle's worker pool.
	QueueSize int `yaml:"queue_size"`
	// IdleTimeout is how long an idle worker of the model bundle's pool waits before exiting.
	IdleTimeout time.Duration `yaml:"idle_timeout"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level      string `yaml:"level"`
	LogFile    string `yaml:"log_file"`
	MaxSizeMB  int    `yaml:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups"`
	Console    bool   `yaml:"console"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Window: WindowConfig{
			Title:  "oxy-viewer",
			Width:  1280,
			Height: 720,
		},
		Graphics: GraphicsConfig{
			VSync: true,
		},
		Assets: AssetsConfig{
			Origin:         ".",
			Model:          "WIP.obj",
			DefaultDiffuse: "default_diffuse.qoi",
			DefaultNormal:  "default_normal.qoi",
			FetchTimeout:   30 * time.Second,
		},
		Loading: LoadingConfig{
			Workers:     4,
			QueueSize:   64,
			IdleTimeout: time.Second,
		},
		Logging: LoggingConfig{
			Level:      "info",
			MaxSizeMB:  20,
			MaxBackups: 3,
			Console:    true,
		},
	}
}

// Validate reports the first setting that cannot be used to start the viewer.
//
// Returns:
//   - error: nil if the config is usable
func (c *Config) Validate() error {
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("window size must be positive, got %dx%d", c.Window.Width, c.Window.Height)
	}
	if c.Assets.Origin == "" {
		return fmt.Errorf("assets origin is empty")
	}
	if _, err := url.Parse(c.Assets.Origin); err != nil {
		return fmt.Errorf("assets origin %q: %w", c.Assets.Origin, err)
	}
	if c.Assets.Model == "" {
		return fmt.Errorf("assets model is empty")
	}
	if c.Loading.Workers <= 0 {
		return fmt.Errorf("loading workers must be positive, got %d", c.Loading.Workers)
	}
	if c.Loading.QueueSize <= 0 {
		return fmt.Errorf("loading queue size must be positive, got %d", c.Loading.QueueSize)
	}
	if c.Loading.IdleTimeout <= 0 {
		return fmt.Errorf("loading idle timeout must be positive, got %s", c.Loading.IdleTimeout)
	}
	return nil
}
