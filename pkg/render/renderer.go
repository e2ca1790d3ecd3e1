package render

import (
	"fmt"

	"github.com/softlit/prism/pkg/geom"
	"github.com/softlit/prism/pkg/math3d"
)

// Config holds the renderer settings.
type Config struct {
	Width  int
	Height int

	// FOV is the vertical field of view in degrees.
	FOV  float32
	Near float32
	Far  float32

	Lighting  bool
	DepthTest bool
	Wireframe bool
	Fill      FillStrategy
}

// DefaultConfig returns the settings the viewers start from.
func DefaultConfig() Config {
	return Config{
		Width:     640,
		Height:    480,
		FOV:       78,
		Near:      0.1,
		Far:       5,
		Lighting:  true,
		DepthTest: true,
		Fill:      FillBarycentric,
	}
}

func (c Config) validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("invalid buffer size %dx%d", c.Width, c.Height)
	}
	if c.FOV <= 0 || c.FOV >= 180 {
		return fmt.Errorf("field of view %v out of range (0, 180)", c.FOV)
	}
	if c.Near <= 0 {
		return fmt.Errorf("near plane %v must be positive", c.Near)
	}
	if c.Far <= c.Near {
		return fmt.Errorf("far plane %v must be beyond near plane %v", c.Far, c.Near)
	}
	return nil
}

// Renderer owns a display buffer and turns meshes into pixels.
type Renderer struct {
	cfg  Config
	buf  *DisplayBuffer
	proj math3d.Mat4
}

// NewRenderer validates the configuration and builds a renderer with a
// cleared buffer.
func NewRenderer(cfg Config) (*Renderer, error) {
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("render config: %w", err)
	}

	buf := NewDisplayBuffer(cfg.Width, cfg.Height)
	buf.SetDepthTest(cfg.DepthTest)

	aspect := float32(cfg.Width) / float32(cfg.Height)
	return &Renderer{
		cfg:  cfg,
		buf:  buf,
		proj: math3d.Perspective(math3d.Radians(cfg.FOV), aspect, cfg.Near, cfg.Far),
	}, nil
}

// Config returns the renderer's settings.
func (r *Renderer) Config() Config {
	return r.cfg
}

// Buffer returns the display buffer for display collaborators.
func (r *Renderer) Buffer() *DisplayBuffer {
	return r.buf
}

// Clear resets the buffer for a new frame.
func (r *Renderer) Clear() {
	r.buf.Clear()
}

// Frame clears the buffer and draws all meshes from cam's viewpoint.
func (r *Renderer) Frame(cam Camera, meshes ...*geom.Mesh) {
	r.Clear()
	for _, m := range meshes {
		r.Draw(m, cam)
	}
}

// SetWireframe toggles wireframe mode.
func (r *Renderer) SetWireframe(on bool) {
	r.cfg.Wireframe = on
}

// SetLighting toggles per-vertex lighting.
func (r *Renderer) SetLighting(on bool) {
	r.cfg.Lighting = on
}

// SetFill selects the triangle fill strategy.
func (r *Renderer) SetFill(s FillStrategy) {
	r.cfg.Fill = s
}
