package render

import (
	"image/color"

	uv "github.com/charmbracelet/ultraviolet"
	"github.com/lucasb-eyer/go-colorful"
)

// CellWriter is the part of an ultraviolet screen the renderer draws into.
type CellWriter interface {
	SetCell(x, y int, c *uv.Cell)
}

// Draw writes the framebuffer into cols x rows terminal cells starting at
// the top left corner. Each cell is an upper half block with the top pixel
// as foreground and the bottom pixel as background.
func (fb *Framebuffer) Draw(scr CellWriter, cols, rows int) {
	for row := range rows {
		topY := row * 2
		botY := topY + 1

		for col := 0; col < cols && col < fb.Width; col++ {
			cell := &uv.Cell{
				Content: "▀",
				Width:   1,
				Style: uv.Style{
					Fg: rgbaToColor(fb.GetPixel(col, topY)),
					Bg: rgbaToColor(fb.GetPixel(col, botY)),
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

// TerminalRenderer owns the mapping between a terminal and a framebuffer.
type TerminalRenderer struct {
	screen CellWriter
	cols   int
	rows   int
}

// NewTerminalRenderer creates a renderer for a terminal of cols x rows cells.
func NewTerminalRenderer(screen CellWriter, cols, rows int) *TerminalRenderer {
	return &TerminalRenderer{screen: screen, cols: cols, rows: rows}
}

// FramebufferSize returns the framebuffer dimensions matching the terminal.
func (r *TerminalRenderer) FramebufferSize() (width, height int) {
	return r.cols, r.rows * 2
}

// Render copies fb into the terminal's cell buffer.
func (r *TerminalRenderer) Render(fb *Framebuffer) {
	fb.Draw(r.screen, r.cols, r.rows)
}

// Flush pushes pending cells to the terminal, if the screen buffers them.
func (r *TerminalRenderer) Flush() error {
	switch s := r.screen.(type) {
	case interface{ Display() error }:
		return s.Display()
	case interface{ Flush() error }:
		return s.Flush()
	}
	return nil
}

// Color is an alias for color.RGBA for convenience.
type Color = color.RGBA

// Colors used by the overlays.
var (
	ColorBlack = color.RGBA{0, 0, 0, 255}
	ColorWhite = color.RGBA{255, 255, 255, 255}
	ColorRed   = color.RGBA{255, 0, 0, 255}
	ColorGreen = color.RGBA{0, 255, 0, 255}
	ColorBlue  = color.RGBA{0, 0, 255, 255}
	ColorGray  = color.RGBA{128, 128, 128, 255}
)

// RGB creates a color from RGB values.
func RGB(r, g, b uint8) color.RGBA {
	return color.RGBA{r, g, b, 255}
}

// FromColorful converts a colorful colour, clamping out-of-gamut channels.
func FromColorful(c colorful.Color) color.RGBA {
	r, g, b := c.Clamped().RGB255()
	return color.RGBA{r, g, b, 255}
}
