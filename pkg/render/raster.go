package render

import (
	"github.com/chewxy/math32"

	"github.com/softlit/prism/pkg/math3d"
)

// RasterVertex is a vertex after the viewport transform: raster-space
// coordinates, the un-divided clip-space depth, and the shaded color.
type RasterVertex struct {
	X, Y  float32
	Z     float32
	Color Color
}

// lerpRasterVertex linearly interpolates every attribute between a and b.
func lerpRasterVertex(a, b RasterVertex, t float32) RasterVertex {
	return RasterVertex{
		X:     a.X + (b.X-a.X)*t,
		Y:     a.Y + (b.Y-a.Y)*t,
		Z:     a.Z + (b.Z-a.Z)*t,
		Color: lerpColor(a.Color, b.Color, t),
	}
}

// triangleBounds computes the integer bounding box of a raster triangle
// and applies the clipping policy: a triangle reaching past the high x or
// y edge of the buffer is dropped whole (ok = false), while negative mins
// are clamped to zero.
func triangleBounds(buf *DisplayBuffer, v0, v1, v2 RasterVertex) (minX, minY, maxX, maxY int, ok bool) {
	minX = int(min3(v0.X, v1.X, v2.X))
	maxX = int(max3(v0.X, v1.X, v2.X))
	minY = int(min3(v0.Y, v1.Y, v2.Y))
	maxY = int(max3(v0.Y, v1.Y, v2.Y))

	if maxX >= buf.Width() || maxY >= buf.Height() {
		return 0, 0, 0, 0, false
	}
	if minX < 0 {
		minX = 0
	}
	if minY < 0 {
		minY = 0
	}
	return minX, minY, maxX, maxY, true
}

// barycentricBasis precomputes the edge dot products shared by every
// pixel of one triangle.
type barycentricBasis struct {
	origin   math3d.Vec2
	ac, ab   math3d.Vec2
	d00, d01 float32
	d11      float32
	invDenom float32
}

// newBarycentricBasis builds the basis for a triangle. Returns ok = false
// when the triangle is degenerate (zero area).
func newBarycentricBasis(v0, v1, v2 RasterVertex) (barycentricBasis, bool) {
	b := barycentricBasis{
		origin: math3d.V2(v0.X, v0.Y),
		ac:     math3d.V2(v2.X-v0.X, v2.Y-v0.Y),
		ab:     math3d.V2(v1.X-v0.X, v1.Y-v0.Y),
	}
	b.d00 = b.ac.Dot(b.ac)
	b.d01 = b.ac.Dot(b.ab)
	b.d11 = b.ab.Dot(b.ab)

	denom := b.d00*b.d11 - b.d01*b.d01
	if denom == 0 {
		return barycentricBasis{}, false
	}
	b.invDenom = 1.0 / denom
	return b, true
}

// weights returns the barycentric weights of (px, py) relative to the
// triangle's vertices. The weights always sum to 1; a point is inside
// the triangle iff all three are non-negative.
func (b barycentricBasis) weights(px, py float32) (wa, wb, wc float32) {
	ap := math3d.V2(px, py).Sub(b.origin)
	d02 := b.ac.Dot(ap)
	d12 := b.ab.Dot(ap)

	wc = (b.d11*d02 - b.d01*d12) * b.invDenom
	wb = (b.d00*d12 - b.d01*d02) * b.invDenom
	wa = 1 - wb - wc
	return wa, wb, wc
}

// fillBarycentric rasterizes a triangle by testing every pixel of its
// bounding box against the barycentric weights and interpolating depth
// and color as the weighted sum of the vertices.
func fillBarycentric(buf *DisplayBuffer, v0, v1, v2 RasterVertex) {
	minX, minY, maxX, maxY, ok := triangleBounds(buf, v0, v1, v2)
	if !ok {
		return
	}

	basis, ok := newBarycentricBasis(v0, v1, v2)
	if !ok {
		return // Degenerate triangle
	}

	for y := minY; y <= maxY; y++ {
		for x := minX; x <= maxX; x++ {
			wa, wb, wc := basis.weights(float32(x), float32(y))

			// Check if inside triangle
			if wa < 0 || wb < 0 || wc < 0 {
				continue
			}

			z := wa*v0.Z + wb*v1.Z + wc*v2.Z
			c := blendColor3(v0.Color, v1.Color, v2.Color, wa, wb, wc)
			buf.SetPixel(x, y, c, z)
		}
	}
}

// fillScanline rasterizes a triangle by splitting it at the middle vertex
// into two flat-edged halves and filling spans between the edges. On
// triangles whose edges cross pixel centers exactly it lights the same
// pixels as fillBarycentric.
func fillScanline(buf *DisplayBuffer, v0, v1, v2 RasterVertex) {
	if _, _, _, _, ok := triangleBounds(buf, v0, v1, v2); !ok {
		return
	}

	// Degenerate triangles rasterize to nothing.
	ab := math3d.V2(v1.X-v0.X, v1.Y-v0.Y)
	ac := math3d.V2(v2.X-v0.X, v2.Y-v0.Y)
	if ab.Cross(ac) == 0 {
		return
	}

	// Sort by descending Y so v0 is the highest vertex.
	if v1.Y > v0.Y {
		v0, v1 = v1, v0
	}
	if v2.Y > v0.Y {
		v0, v2 = v2, v0
	}
	if v2.Y > v1.Y {
		v1, v2 = v2, v1
	}

	switch {
	case v0.Y == v1.Y:
		// Flat edge on the highest scanline
		fillSpans(buf, v2, v0, v2, v1)
	case v1.Y == v2.Y:
		// Flat edge on the lowest scanline
		fillSpans(buf, v1, v0, v2, v0)
	default:
		// Split at the middle vertex's scanline
		t := (v1.Y - v0.Y) / (v2.Y - v0.Y)
		split := lerpRasterVertex(v0, v2, t)
		split.Y = v1.Y
		fillSpans(buf, v1, v0, split, v0)
		fillSpans(buf, v2, v1, v2, split)
	}
}

// fillSpans fills the scanlines between two edges covering the same y
// range. Each edge runs from its low vertex to its high vertex.
func fillSpans(buf *DisplayBuffer, lo1, hi1, lo2, hi2 RasterVertex) {
	dy := hi1.Y - lo1.Y
	if dy == 0 {
		return
	}

	y0 := int(math32.Ceil(lo1.Y))
	y1 := int(math32.Floor(hi1.Y))
	if y0 < 0 {
		y0 = 0
	}

	for y := y0; y <= y1; y++ {
		fy := float32(y)
		a := lerpRasterVertex(lo1, hi1, (fy-lo1.Y)/dy)
		b := lerpRasterVertex(lo2, hi2, (fy-lo2.Y)/(hi2.Y-lo2.Y))
		if a.X > b.X {
			a, b = b, a
		}

		x0 := int(math32.Ceil(a.X))
		x1 := int(math32.Floor(b.X))
		if x0 < 0 {
			x0 = 0
		}

		span := b.X - a.X
		for x := x0; x <= x1; x++ {
			var t float32
			if span != 0 {
				t = (float32(x) - a.X) / span
			}
			p := lerpRasterVertex(a, b, t)
			buf.SetPixel(x, y, p.Color, p.Z)
		}
	}
}

// DrawLine draws a line from (x0, y0) to (x1, y1) using Bresenham's
// algorithm. Lines are overlay primitives: pixels falling outside the
// buffer are skipped, and depth is written at the near extreme so lines
// always pass the depth test.
func (b *DisplayBuffer) DrawLine(x0, y0, x1, y1 int, c Color) {
	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx := 1
	if x0 > x1 {
		sx = -1
	}
	sy := 1
	if y0 > y1 {
		sy = -1
	}
	err := dx + dy

	for {
		if x0 >= 0 && x0 < b.width && y0 >= 0 && y0 < b.height {
			b.SetPixel(x0, y0, c, math32.MaxFloat32)
		}
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

func min3(a, b, c float32) float32 {
	return math32.Min(a, math32.Min(b, c))
}

func max3(a, b, c float32) float32 {
	return math32.Max(a, math32.Max(b, c))
}
