package viz

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/san-kum/fractalsim/internal/palette"
)

const halfBlock = "▀"

// Canvas is a pixel grid sized in pixels. It prints as Width columns by
// (Height+1)/2 rows.
type Canvas struct {
	Width, Height int
	Pixels        []uint32
}

func NewCanvas(w, h int) *Canvas {
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	return &Canvas{Width: w, Height: h, Pixels: make([]uint32, w*h)}
}

// CellSize converts a terminal area into the pixel grid that fills it.
func CellSize(cols, rows int) (w, h int) {
	return cols, rows * 2
}

// Load copies a row-major buffer into the canvas. Short buffers leave the
// remainder untouched.
func (c *Canvas) Load(pixels []uint32) {
	copy(c.Pixels, pixels)
}

func (c *Canvas) Set(x, y int, p uint32) {
	if x < 0 || y < 0 || x >= c.Width || y >= c.Height {
		return
	}
	c.Pixels[y*c.Width+x] = p
}

func (c *Canvas) At(x, y int) uint32 {
	if x < 0 || y < 0 || x >= c.Width || y >= c.Height {
		return 0
	}
	return c.Pixels[y*c.Width+x]
}

// DrawLine draws a line using Bresenham's algorithm
func (c *Canvas) DrawLine(x0, y0, x1, y1 int, p uint32) {
	dx := absInt(x1 - x0)
	dy := absInt(y1 - y0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx - dy

	for {
		c.Set(x0, y0, p)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x0 += sx
		}
		if e2 < dx {
			err += dx
			y0 += sy
		}
	}
}

// Crosshair marks (x, y) with a small plus.
func (c *Canvas) Crosshair(x, y, arm int, p uint32) {
	c.DrawLine(x-arm, y, x+arm, y, p)
	c.DrawLine(x, y-arm, x, y+arm, p)
}

func (c *Canvas) String() string {
	var b strings.Builder
	styles := make(map[[2]uint32]lipgloss.Style)
	for y := 0; y < c.Height; y += 2 {
		for x := 0; x < c.Width; x++ {
			top := c.Pixels[y*c.Width+x]
			bottom := uint32(0)
			if y+1 < c.Height {
				bottom = c.Pixels[(y+1)*c.Width+x]
			}
			key := [2]uint32{top, bottom}
			style, ok := styles[key]
			if !ok {
				style = lipgloss.NewStyle().
					Foreground(lipgloss.Color(palette.Unpack(top).Hex())).
					Background(lipgloss.Color(palette.Unpack(bottom).Hex()))
				styles[key] = style
			}
			b.WriteString(style.Render(halfBlock))
		}
		b.WriteByte('\n')
	}
	return b.String()
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
