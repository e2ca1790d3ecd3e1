package render

import (
	"image/color"

	uv "github.com/charmbracelet/ultraviolet"
)

// Draw converts the display buffer to terminal cells and draws them on
// the screen. Raster row 0 is the top of the picture, so cells are
// emitted in buffer order. The buffer height should be 2x the terminal
// height.
func (b *DisplayBuffer) Draw(scr uv.Screen, area uv.Rectangle) {
	// Each terminal row represents 2 buffer rows
	// We use ▀ (upper half block) with fg=top color and bg=bottom color

	for row := area.Min.Y; row < area.Max.Y; row++ {
		topY := row * 2
		botY := topY + 1

		for col := area.Min.X; col < area.Max.X && col < b.width; col++ {
			topColor := b.PixelAt(col, topY)
			botColor := b.PixelAt(col, botY)

			cell := &uv.Cell{
				Content: "▀",
				Width:   1,
				Style: uv.Style{
					Fg: rgbaToColor(topColor),
					Bg: rgbaToColor(botColor),
				},
			}
			scr.SetCell(col, row, cell)
		}
	}
}

// rgbaToColor converts color.RGBA to Go's color.Color interface.
func rgbaToColor(c color.RGBA) color.Color {
	if c.A == 0 {
		return nil // Transparent = no color
	}
	return c
}
