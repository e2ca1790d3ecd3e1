// Package render provides the software rasterization pipeline for prism:
// a depth-buffered RGBA display buffer, triangle and line primitives, and
// a mesh renderer that carries geometry through model, view, projection,
// and viewport transforms.
package render

import "image/color"

// Color is an alias for color.RGBA for convenience.
type Color = color.RGBA

// Colors for convenience
var (
	ColorBlack   = color.RGBA{0, 0, 0, 255}
	ColorWhite   = color.RGBA{255, 255, 255, 255}
	ColorRed     = color.RGBA{255, 0, 0, 255}
	ColorGreen   = color.RGBA{0, 255, 0, 255}
	ColorBlue    = color.RGBA{0, 0, 255, 255}
	ColorYellow  = color.RGBA{255, 255, 0, 255}
	ColorCyan    = color.RGBA{0, 255, 255, 255}
	ColorMagenta = color.RGBA{255, 0, 255, 255}
	ColorGray    = color.RGBA{128, 128, 128, 255}
)

// RGB creates an opaque color from RGB values.
func RGB(r, g, b uint8) color.RGBA {
	return color.RGBA{r, g, b, 255}
}

// RGBA creates a color from RGBA values.
func RGBA(r, g, b, a uint8) color.RGBA {
	return color.RGBA{r, g, b, a}
}

// scaleColor scales the RGB channels of c by s. Alpha is left untouched.
func scaleColor(c Color, s float32) Color {
	return Color{
		R: uint8(float32(c.R) * s),
		G: uint8(float32(c.G) * s),
		B: uint8(float32(c.B) * s),
		A: c.A,
	}
}

// lerpColor linearly interpolates between two colors.
func lerpColor(a, b Color, t float32) Color {
	return Color{
		R: uint8(float32(a.R) + (float32(b.R)-float32(a.R))*t),
		G: uint8(float32(a.G) + (float32(b.G)-float32(a.G))*t),
		B: uint8(float32(a.B) + (float32(b.B)-float32(a.B))*t),
		A: uint8(float32(a.A) + (float32(b.A)-float32(a.A))*t),
	}
}

// blendColor3 combines three colors using barycentric weights.
func blendColor3(c0, c1, c2 Color, w0, w1, w2 float32) Color {
	return Color{
		R: uint8(float32(c0.R)*w0 + float32(c1.R)*w1 + float32(c2.R)*w2),
		G: uint8(float32(c0.G)*w0 + float32(c1.G)*w1 + float32(c2.G)*w2),
		B: uint8(float32(c0.B)*w0 + float32(c1.B)*w1 + float32(c2.B)*w2),
		A: uint8(float32(c0.A)*w0 + float32(c1.A)*w1 + float32(c2.A)*w2),
	}
}
