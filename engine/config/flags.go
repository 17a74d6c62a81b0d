package config

import "flag"

// Flags holds the command-line overrides. Zero values leave the config untouched.
type Flags struct {
	ConfigPath string
	Origin     string
	Model      string
	Width      int
	Height     int
	VSync      string
	LogLevel   string
	LogFile    string
	Debug      bool
	Profile    bool
}

// ParseFlags parses command-line arguments (without the program name).
func ParseFlags(args []string) (*Flags, error) {
	f := &Flags{}
	fs := flag.NewFlagSet("oxy-viewer", flag.ContinueOnError)
	fs.StringVar(&f.ConfigPath, "config", "", "Path to config file")
	fs.StringVar(&f.Origin, "origin", "", "Asset origin (http(s) URL, file:// URL or directory)")
	fs.StringVar(&f.Model, "model", "", "Model name under <origin>/assets")
	fs.IntVar(&f.Width, "width", 0, "Window width")
	fs.IntVar(&f.Height, "height", 0, "Window height")
	fs.StringVar(&f.VSync, "vsync", "", "Present with vsync (true|false)")
	fs.StringVar(&f.LogLevel, "log-level", "", "Log level (debug|info|warn|error)")
	fs.StringVar(&f.LogFile, "log-file", "", "Rotating log file path")
	fs.BoolVar(&f.Debug, "debug", false, "Enable debug logging")
	fs.BoolVar(&f.Profile, "profile", false, "Log frame and memory statistics")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	return f, nil
}

// apply applies flag overrides to the config.
func (f *Flags) apply(cfg *Config) {
	if f.Origin != "" {
		cfg.Assets.Origin = f.Origin
	}
	if f.Model != "" {
		cfg.Assets.Model = f.Model
	}
	if f.Width > 0 {
		cfg.Window.Width = f.Width
	}
	if f.Height > 0 {
		cfg.Window.Height = f.Height
	}
	switch f.VSync {
	case "true", "1", "on":
		cfg.Graphics.VSync = true
	case "false", "0", "off":
		cfg.Graphics.VSync = false
	}
	if f.LogLevel != "" {
		cfg.Logging.Level = f.LogLevel
	}
	if f.Debug {
		cfg.Logging.Level = "debug"
	}
	if f.LogFile != "" {
		cfg.Logging.LogFile = f.LogFile
	}
	if f.Profile {
		cfg.Graphics.Profile = true
	}
}
