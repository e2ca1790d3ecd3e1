// Package config handles viewer configuration loading and management.
package config

import (
	"fmt"

	"github.com/softlit/prism/pkg/render"
)

// Config holds all viewer settings.
type Config struct {
	Display DisplayConfig `yaml:"display"`
	Render  RenderConfig  `yaml:"render"`
	Scene   SceneConfig   `yaml:"scene"`
	Logging LoggingConfig `yaml:"logging"`
}

// DisplayConfig holds output surface settings. The terminal viewer
// sizes its raster from the live terminal instead, so width and height
// apply to the window viewer and saved screenshots. Scale multiplies
// the window size without changing the raster resolution.
type DisplayConfig struct {
	Width     int `yaml:"width"`
	Height    int `yaml:"height"`
	Scale     int `yaml:"scale"`
	TargetFPS int `yaml:"target_fps"`
}

// RenderConfig holds rasterizer settings.
type RenderConfig struct {
	FOV       float32 `yaml:"fov"`
	Near      float32 `yaml:"near"`
	Far       float32 `yaml:"far"`
	Fill      string  `yaml:"fill"`
	Lighting  bool    `yaml:"lighting"`
	DepthTest bool    `yaml:"depth_test"`
	Wireframe bool    `yaml:"wireframe"`
}

// SceneConfig holds the scene description.
type SceneConfig struct {
	Model    string  `yaml:"model"`    // mesh file; empty shows the built-in cube
	SpinX    float32 `yaml:"spin_x"`   // radians per second
	SpinY    float32 `yaml:"spin_y"`   // radians per second
	Distance float32 `yaml:"distance"` // camera distance from the mesh center
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Display: DisplayConfig{
			Width:     640,
			Height:    480,
			Scale:     1,
			TargetFPS: 30,
		},
		Render: RenderConfig{
			FOV:       78,
			Near:      0.1,
			Far:       5.0,
			Fill:      "barycentric",
			Lighting:  true,
			DepthTest: true,
			Wireframe: false,
		},
		Scene: SceneConfig{
			Model:    "",
			SpinX:    0.4,
			SpinY:    0.7,
			Distance: 3,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}

// RendererConfig converts the file settings into a renderer config,
// overriding the raster size when the caller supplies a positive one.
func (c *Config) RendererConfig(width, height int) (render.Config, error) {
	fill, err := render.ParseFillStrategy(c.Render.Fill)
	if err != nil {
		return render.Config{}, fmt.Errorf("render.fill: %w", err)
	}

	rc := render.Config{
		Width:     c.Display.Width,
		Height:    c.Display.Height,
		FOV:       c.Render.FOV,
		Near:      c.Render.Near,
		Far:       c.Render.Far,
		Lighting:  c.Render.Lighting,
		DepthTest: c.Render.DepthTest,
		Wireframe: c.Render.Wireframe,
		Fill:      fill,
	}
	if width > 0 && height > 0 {
		rc.Width, rc.Height = width, height
	}
	return rc, nil
}
