package render

import "fmt"

// FillStrategy selects the triangle rasterization algorithm.
type FillStrategy int

const (
	// FillBarycentric tests every bounding-box pixel against the
	// triangle's barycentric weights. The default.
	FillBarycentric FillStrategy = iota
	// FillScanline splits the triangle into flat-edged halves and fills
	// spans between the edges.
	FillScanline
)

// String returns the strategy name used in configuration files.
func (s FillStrategy) String() string {
	switch s {
	case FillScanline:
		return "scanline"
	default:
		return "barycentric"
	}
}

// ParseFillStrategy converts a configuration string to a FillStrategy.
func ParseFillStrategy(s string) (FillStrategy, error) {
	switch s {
	case "barycentric", "":
		return FillBarycentric, nil
	case "scanline":
		return FillScanline, nil
	default:
		return FillBarycentric, fmt.Errorf("unknown fill strategy %q", s)
	}
}

// Renderable is a primitive that can draw itself into a display buffer.
type Renderable interface {
	Render(buf *DisplayBuffer)
}

// Triangle is a filled triangle in raster space.
type Triangle struct {
	V    [3]RasterVertex
	Fill FillStrategy
}

// Render rasterizes the triangle with its fill strategy.
func (t Triangle) Render(buf *DisplayBuffer) {
	switch t.Fill {
	case FillScanline:
		fillScanline(buf, t.V[0], t.V[1], t.V[2])
	default:
		fillBarycentric(buf, t.V[0], t.V[1], t.V[2])
	}
}

// LineSegment is a line between two raster-space points.
type LineSegment struct {
	X0, Y0 int
	X1, Y1 int
	Color  Color
}

// Render draws the segment as an overlay line.
func (l LineSegment) Render(buf *DisplayBuffer) {
	buf.DrawLine(l.X0, l.Y0, l.X1, l.Y1, l.Color)
}
