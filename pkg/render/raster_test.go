package render

import (
	"bytes"
	"testing"

	"github.com/chewxy/math32"
)

// countLit returns the number of pixels with any visible color.
func countLit(b *DisplayBuffer) int {
	count := 0
	for y := 0; y < b.Height(); y++ {
		for x := 0; x < b.Width(); x++ {
			if b.PixelAt(x, y).A > 0 {
				count++
			}
		}
	}
	return count
}

func rv(x, y, z float32, c Color) RasterVertex {
	return RasterVertex{X: x, Y: y, Z: z, Color: c}
}

func TestFillStrategiesMatch(t *testing.T) {
	// Triangles whose edges hit pixel centers exactly must light the
	// same pixels under both fill strategies.
	tests := []struct {
		name       string
		v0, v1, v2 RasterVertex
	}{
		{
			"axis-aligned right triangle",
			rv(10, 10, 1, ColorWhite), rv(42, 10, 1, ColorWhite), rv(10, 42, 1, ColorWhite),
		},
		{
			"split triangle",
			rv(0, 0, 1, ColorWhite), rv(32, 16, 1, ColorWhite), rv(16, 32, 1, ColorWhite),
		},
		{
			"flat top",
			rv(10, 42, 1, ColorWhite), rv(42, 42, 1, ColorWhite), rv(10, 10, 1, ColorWhite),
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			bary := NewDisplayBuffer(64, 64)
			scan := NewDisplayBuffer(64, 64)

			fillBarycentric(bary, tc.v0, tc.v1, tc.v2)
			fillScanline(scan, tc.v0, tc.v1, tc.v2)

			if countLit(bary) == 0 {
				t.Fatal("triangle should light pixels")
			}
			if !bytes.Equal(bary.Pix(), scan.Pix()) {
				t.Errorf("fill strategies disagree: barycentric lit %d, scanline lit %d",
					countLit(bary), countLit(scan))
			}
		})
	}
}

func TestFillPixelCount(t *testing.T) {
	// The right triangle (10,10) (42,10) (10,42) covers x >= 10, y >= 10,
	// x+y <= 52 on the integer lattice: sum of 1..33 pixels.
	const want = 561

	for _, fill := range []FillStrategy{FillBarycentric, FillScanline} {
		buf := NewDisplayBuffer(64, 64)
		Triangle{
			V: [3]RasterVertex{
				rv(10, 10, 1, ColorWhite),
				rv(42, 10, 1, ColorWhite),
				rv(10, 42, 1, ColorWhite),
			},
			Fill: fill,
		}.Render(buf)

		if got := countLit(buf); got != want {
			t.Errorf("%v lit %d pixels, want %d", fill, got, want)
		}
	}
}

func TestTriangleBoundsPolicy(t *testing.T) {
	tests := []struct {
		name       string
		v0, v1, v2 RasterVertex
		wantAny    bool
	}{
		{
			"past right edge drops whole triangle",
			rv(50, 10, 1, ColorWhite), rv(70, 10, 1, ColorWhite), rv(50, 30, 1, ColorWhite),
			false,
		},
		{
			"past high y edge drops whole triangle",
			rv(10, 50, 1, ColorWhite), rv(30, 50, 1, ColorWhite), rv(10, 70, 1, ColorWhite),
			false,
		},
		{
			"negative min clamps and draws the inside part",
			rv(-8, 2, 1, ColorWhite), rv(8, 2, 1, ColorWhite), rv(0, 10, 1, ColorWhite),
			true,
		},
		{
			"touching the last pixel is kept",
			rv(60, 60, 1, ColorWhite), rv(63, 60, 1, ColorWhite), rv(60, 63, 1, ColorWhite),
			true,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			for _, fill := range []FillStrategy{FillBarycentric, FillScanline} {
				buf := NewDisplayBuffer(64, 64)
				Triangle{V: [3]RasterVertex{tc.v0, tc.v1, tc.v2}, Fill: fill}.Render(buf)

				if got := countLit(buf) > 0; got != tc.wantAny {
					t.Errorf("%v: lit pixels = %v, want %v", fill, got, tc.wantAny)
				}
			}
		})
	}
}

func TestDegenerateTriangleSkipped(t *testing.T) {
	for _, fill := range []FillStrategy{FillBarycentric, FillScanline} {
		buf := NewDisplayBuffer(32, 32)

		// Colinear vertices span zero area.
		Triangle{
			V: [3]RasterVertex{
				rv(5, 5, 1, ColorWhite),
				rv(10, 10, 1, ColorWhite),
				rv(15, 15, 1, ColorWhite),
			},
			Fill: fill,
		}.Render(buf)

		if got := countLit(buf); got != 0 {
			t.Errorf("%v drew %d pixels for a degenerate triangle", fill, got)
		}
	}
}

func TestFillInterpolatesDepth(t *testing.T) {
	buf := NewDisplayBuffer(32, 32)
	fillBarycentric(buf,
		rv(0, 0, 8, ColorWhite),
		rv(16, 0, 0, ColorWhite),
		rv(0, 16, 0, ColorWhite),
	)

	if got := buf.DepthAt(0, 0); got != 8 {
		t.Errorf("depth at vertex = %v, want 8", got)
	}
	if got := buf.DepthAt(8, 0); got != 4 {
		t.Errorf("depth at edge midpoint = %v, want 4", got)
	}
}

func TestFillInterpolatesColor(t *testing.T) {
	buf := NewDisplayBuffer(32, 32)
	fillBarycentric(buf,
		rv(0, 0, 1, ColorRed),
		rv(16, 0, 1, ColorGreen),
		rv(0, 16, 1, ColorBlue),
	)

	if got := buf.PixelAt(16, 0); got != ColorGreen {
		t.Errorf("color at vertex = %v, want %v", got, ColorGreen)
	}
	if got := buf.PixelAt(8, 0); got != (Color{R: 127, G: 127, B: 0, A: 255}) {
		t.Errorf("color at edge midpoint = %v, want half red half green", got)
	}
}

func TestFillRespectsDepthBuffer(t *testing.T) {
	buf := NewDisplayBuffer(64, 64)

	near := [3]RasterVertex{
		rv(10, 10, 2, ColorRed), rv(42, 10, 2, ColorRed), rv(10, 42, 2, ColorRed),
	}
	far := [3]RasterVertex{
		rv(10, 10, -2, ColorBlue), rv(42, 10, -2, ColorBlue), rv(10, 42, -2, ColorBlue),
	}

	// Far drawn second must not overwrite near.
	fillBarycentric(buf, near[0], near[1], near[2])
	fillBarycentric(buf, far[0], far[1], far[2])

	if got := buf.PixelAt(15, 15); got != ColorRed {
		t.Errorf("near triangle should occlude far one, got %v", got)
	}
}

func TestDrawLinePath(t *testing.T) {
	buf := NewDisplayBuffer(16, 16)

	buf.DrawLine(2, 5, 9, 5, ColorWhite)
	for x := 2; x <= 9; x++ {
		if buf.PixelAt(x, 5) != ColorWhite {
			t.Errorf("horizontal line missing pixel at (%d, 5)", x)
		}
	}

	buf.Clear()
	buf.DrawLine(3, 1, 3, 8, ColorWhite)
	for y := 1; y <= 8; y++ {
		if buf.PixelAt(3, y) != ColorWhite {
			t.Errorf("vertical line missing pixel at (3, %d)", y)
		}
	}

	buf.Clear()
	buf.DrawLine(0, 0, 7, 7, ColorWhite)
	for i := 0; i <= 7; i++ {
		if buf.PixelAt(i, i) != ColorWhite {
			t.Errorf("diagonal line missing pixel at (%d, %d)", i, i)
		}
	}
}

func TestMin3Max3(t *testing.T) {
	if min3(1, 2, 3) != 1 || min3(3, 1, 2) != 1 || min3(2, 3, 1) != 1 {
		t.Error("min3 failed")
	}
	if max3(1, 2, 3) != 3 || max3(3, 1, 2) != 3 || max3(2, 3, 1) != 3 {
		t.Error("max3 failed")
	}
}

func TestBarycentricWeightsReconstructPoint(t *testing.T) {
	v0 := rv(3, 2, 0, ColorWhite)
	v1 := rv(20, 5, 0, ColorWhite)
	v2 := rv(8, 27, 0, ColorWhite)

	basis, ok := newBarycentricBasis(v0, v1, v2)
	if !ok {
		t.Fatal("triangle reported as degenerate")
	}

	points := []struct{ x, y float32 }{
		{10, 10},
		{3, 2},
		{20, 5},
		{8, 27},
		{11.5, 8.25},
		{-4, 40}, // outside; affine coordinates still apply
	}

	for _, p := range points {
		wa, wb, wc := basis.weights(p.x, p.y)

		if sum := wa + wb + wc; math32.Abs(sum-1) > 1e-5 {
			t.Errorf("weights at (%g, %g) sum to %g, want 1", p.x, p.y, sum)
		}

		rx := wa*v0.X + wb*v1.X + wc*v2.X
		ry := wa*v0.Y + wb*v1.Y + wc*v2.Y
		if math32.Abs(rx-p.x) > 1e-3 || math32.Abs(ry-p.y) > 1e-3 {
			t.Errorf("weights at (%g, %g) reconstruct (%g, %g)", p.x, p.y, rx, ry)
		}
	}
}

func TestBarycentricInsideIndependentOfWinding(t *testing.T) {
	a := rv(1, 0, 0, ColorWhite)
	b := rv(0, 1, 0, ColorWhite)
	c := rv(-1, 0, 0, ColorWhite)

	ccw, ok := newBarycentricBasis(a, b, c)
	if !ok {
		t.Fatal("ccw triangle reported as degenerate")
	}
	cw, ok := newBarycentricBasis(a, c, b)
	if !ok {
		t.Fatal("cw triangle reported as degenerate")
	}

	// (0, 0.5) sits strictly inside regardless of vertex order.
	for name, basis := range map[string]barycentricBasis{"ccw": ccw, "cw": cw} {
		wa, wb, wc := basis.weights(0, 0.5)
		for i, w := range []float32{wa, wb, wc} {
			if w <= 0 || w >= 1 {
				t.Errorf("%s: weight %d = %g, want strictly inside (0, 1)", name, i, w)
			}
		}

		wa, wb, wc = basis.weights(0, 2)
		if wa >= 0 && wb >= 0 && wc >= 0 {
			t.Errorf("%s: (0, 2) classified inside with weights %g, %g, %g", name, wa, wb, wc)
		}
	}
}

func TestDrawLineStartPixel(t *testing.T) {
	buf := NewDisplayBuffer(16, 16)
	buf.DrawLine(0, 1, 6, 4, ColorWhite)

	if buf.PixelAt(0, 1) != ColorWhite {
		t.Error("line (0,1)-(6,4) did not set its start pixel")
	}
	if buf.PixelAt(6, 4) != ColorWhite {
		t.Error("line (0,1)-(6,4) did not set its end pixel")
	}
}

func TestParseFillStrategy(t *testing.T) {
	tests := []struct {
		in      string
		want    FillStrategy
		wantErr bool
	}{
		{"barycentric", FillBarycentric, false},
		{"scanline", FillScanline, false},
		{"", FillBarycentric, false},
		{"bogus", FillBarycentric, true},
	}

	for _, tc := range tests {
		got, err := ParseFillStrategy(tc.in)
		if (err != nil) != tc.wantErr {
			t.Errorf("ParseFillStrategy(%q) error = %v, wantErr %v", tc.in, err, tc.wantErr)
		}
		if got != tc.want {
			t.Errorf("ParseFillStrategy(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}
