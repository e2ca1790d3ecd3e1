package render

import (
	"fmt"
	"image"
	"image/png"
	"os"

	"github.com/chewxy/math32"
)

// BytesPerPixel is the storage size of one pixel in a DisplayBuffer.
const BytesPerPixel = 4

// clearDepth is the "nothing drawn yet" depth. Larger values are closer,
// so the minimum representable float loses every depth comparison.
const clearDepth = -math32.MaxFloat32

// DisplayBuffer is a packed RGBA8 pixel store with a parallel depth buffer.
// Coordinates passed to SetPixel and the accessors are raster coordinates;
// rows are flipped on write so the raw pixel data keeps the last raster row
// first. Display collaborators either read through PixelAt, which un-flips,
// or walk Pix in reverse row order.
type DisplayBuffer struct {
	width     int
	height    int
	pixels    []byte
	depth     []float32
	depthTest bool
}

// NewDisplayBuffer creates a cleared buffer with the given dimensions.
// The depth test is enabled; see SetDepthTest.
func NewDisplayBuffer(width, height int) *DisplayBuffer {
	b := &DisplayBuffer{
		width:     width,
		height:    height,
		pixels:    make([]byte, width*height*BytesPerPixel),
		depth:     make([]float32, width*height),
		depthTest: true,
	}
	b.Clear()
	return b
}

// Width returns the buffer width in pixels.
func (b *DisplayBuffer) Width() int {
	return b.width
}

// Height returns the buffer height in pixels.
func (b *DisplayBuffer) Height() int {
	return b.height
}

// Pix returns the raw RGBA8 pixel data, row-major, 4 bytes per pixel.
func (b *DisplayBuffer) Pix() []byte {
	return b.pixels
}

// SetDepthTest enables or disables the depth comparison in SetPixel.
// With the test disabled, later writes always win (painter's order).
func (b *DisplayBuffer) SetDepthTest(enabled bool) {
	b.depthTest = enabled
}

// Clear resets every pixel to transparent black and every depth cell to
// the far sentinel (call before each frame).
func (b *DisplayBuffer) Clear() {
	for i := range b.pixels {
		b.pixels[i] = 0
	}

	// Use copy-doubling for faster clearing
	n := len(b.depth)
	if n == 0 {
		return
	}
	b.depth[0] = clearDepth
	for i := 1; i < n; i *= 2 {
		copy(b.depth[i:], b.depth[:i])
	}
}

// SetPixel writes a color and depth at raster coordinates (x, y).
// Coordinates outside the buffer are a caller bug and panic; rasterizers
// clip before writing. The write lands only if z beats the stored depth
// (strictly larger means strictly closer), unless the depth test is off.
func (b *DisplayBuffer) SetPixel(x, y int, c Color, z float32) {
	if x < 0 || x >= b.width || y < 0 || y >= b.height {
		panic(fmt.Sprintf("render: pixel (%d, %d) out of bounds for %dx%d buffer", x, y, b.width, b.height))
	}

	idx := (b.height-1-y)*b.width + x
	if b.depthTest && b.depth[idx] >= z {
		return
	}
	b.depth[idx] = z

	pi := idx * BytesPerPixel
	b.pixels[pi+0] = c.R
	b.pixels[pi+1] = c.G
	b.pixels[pi+2] = c.B
	b.pixels[pi+3] = c.A
}

// PixelAt returns the color at raster coordinates (x, y).
// Returns transparent black if out of bounds.
func (b *DisplayBuffer) PixelAt(x, y int) Color {
	if x < 0 || x >= b.width || y < 0 || y >= b.height {
		return Color{}
	}
	pi := ((b.height-1-y)*b.width + x) * BytesPerPixel
	return Color{R: b.pixels[pi+0], G: b.pixels[pi+1], B: b.pixels[pi+2], A: b.pixels[pi+3]}
}

// DepthAt returns the stored depth at raster coordinates (x, y).
// Returns the far sentinel if out of bounds.
func (b *DisplayBuffer) DepthAt(x, y int) float32 {
	if x < 0 || x >= b.width || y < 0 || y >= b.height {
		return clearDepth
	}
	return b.depth[(b.height-1-y)*b.width+x]
}

// ToImage converts the buffer to a standard Go image.RGBA, top row first.
func (b *DisplayBuffer) ToImage() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, b.width, b.height))
	for y := range b.height {
		for x := range b.width {
			img.SetRGBA(x, y, b.PixelAt(x, y))
		}
	}
	return img
}

// SavePNG saves the buffer as a PNG file.
func (b *DisplayBuffer) SavePNG(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer f.Close()

	if err := png.Encode(f, b.ToImage()); err != nil {
		return fmt.Errorf("encoding %s: %w", path, err)
	}
	return nil
}
