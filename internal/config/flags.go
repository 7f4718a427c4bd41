package config

import "flag"

var (
	flagConfig      = flag.String("config", "", "Path to config file")
	flagWriteConfig = flag.String("write-config", "", "Write the effective config to this path and exit")
	flagDebug       = flag.Bool("debug", false, "Enable debug logging")
	flagHeadless    = flag.Bool("headless", false, "Print heights instead of opening a window")
	flagFullscreen  = flag.Bool("fullscreen", false, "Run in fullscreen mode")
	flagWidth       = flag.Int("width", 0, "Window width")
	flagHeight      = flag.Int("height", 0, "Window height")
	flagGridX       = flag.Int("grid-x", 0, "Vertices along X")
	flagGridZ       = flag.Int("grid-z", 0, "Vertices along Z")
	flagIterations  = flag.Int("iterations", -1, "Steps to run (0 runs until closed)")
	flagTimeSource  = flag.String("time", "", "Time source: wall or iteration")
	flagMode        = flag.String("mode", "", "Render mode: lines, points or triangles")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return *flagConfig
}

// WriteConfigPath returns the --write-config target, if any.
func WriteConfigPath() string {
	return *flagWriteConfig
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) {
	if *flagDebug {
		cfg.Logging.Level = "debug"
	}
	if *flagHeadless {
		cfg.Simulation.Headless = true
	}
	if *flagFullscreen {
		cfg.Window.Fullscreen = true
	}
	if *flagWidth > 0 {
		cfg.Window.Width = *flagWidth
	}
	if *flagHeight > 0 {
		cfg.Window.Height = *flagHeight
	}
	if *flagGridX != 0 {
		cfg.Grid.CountX = *flagGridX
	}
	if *flagGridZ != 0 {
		cfg.Grid.CountZ = *flagGridZ
	}
	if *flagIterations >= 0 {
		cfg.Simulation.Iterations = *flagIterations
	}
	if *flagTimeSource != "" {
		cfg.Simulation.TimeSource = *flagTimeSource
	}
	if *flagMode != "" {
		cfg.Render.Mode = *flagMode
	}
}
