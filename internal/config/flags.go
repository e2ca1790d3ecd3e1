package config

import "flag"

var (
	flagConfig    = flag.String("config", "", "Path to config file")
	flagDebug     = flag.Bool("debug", false, "Enable debug logging")
	flagModel     = flag.String("model", "", "Mesh file to display (.obj, .gltf, .glb)")
	flagWidth     = flag.Int("width", 0, "Render width in pixels")
	flagHeight    = flag.Int("height", 0, "Render height in pixels")
	flagWireframe = flag.Bool("wireframe", false, "Start in wireframe mode")
	flagFill      = flag.String("fill", "", "Fill strategy: barycentric or scanline")
	flagFPS       = flag.Int("fps", 0, "Target frames per second")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// ConfigPath returns the explicit config path if provided via -config.
func ConfigPath() string {
	return *flagConfig
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) {
	if *flagDebug {
		cfg.Logging.Level = "debug"
	}
	if *flagModel != "" {
		cfg.Scene.Model = *flagModel
	}
	if *flagWidth > 0 {
		cfg.Display.Width = *flagWidth
	}
	if *flagHeight > 0 {
		cfg.Display.Height = *flagHeight
	}
	if *flagWireframe {
		cfg.Render.Wireframe = true
	}
	if *flagFill != "" {
		cfg.Render.Fill = *flagFill
	}
	if *flagFPS > 0 {
		cfg.Display.TargetFPS = *flagFPS
	}
}
