// Package viewport maps pixel grids onto the complex plane.
package viewport

import "github.com/san-kum/fractalsim/internal/escape"

// VerticalNudge shifts the top edge of a Mandelbrot view with an odd pixel
// height so that no row lands exactly on the real axis.
const VerticalNudge = 0.001

// Extent is the numeric span of the plane covered by the pixel grid.
type Extent struct {
	Width, Height float64
}

// Zoom scales both spans down by z. Non-positive factors leave the extent
// unchanged.
func (e Extent) Zoom(z float64) Extent {
	if z <= 0 {
		return e
	}
	return Extent{e.Width / z, e.Height / z}
}

// AspectExtent returns the extent for a width×height grid that keeps the
// pixel aspect ratio and never drops below minX horizontally.
func AspectExtent(width, height int, minX, minY float64) Extent {
	if width <= 0 || height <= 0 {
		return Extent{minX, minY}
	}
	w, h := float64(width), float64(height)
	x := minY * w / h
	if x < minX {
		return Extent{minX, minX * h / w}
	}
	return Extent{x, minY}
}

// PixelToPoint maps pixel (col, row) of a width×height grid to the plane.
// Rows grow downwards while the imaginary axis grows upwards.
func PixelToPoint(col, row, width, height int, extent Extent, center escape.Point) escape.Point {
	return NewMapper(width, height, extent, center, 0).Point(col, row)
}

// Mapper caches the per-pixel increments for one grid.
type Mapper struct {
	width        int
	xStep, yStep float64
	left, top    float64
}

func NewMapper(width, height int, extent Extent, center escape.Point, nudge float64) Mapper {
	m := Mapper{
		width: width,
		left:  center.Re - extent.Width/2,
		top:   center.Im + extent.Height/2 + nudge,
	}
	if width > 1 {
		m.xStep = extent.Width / float64(width-1)
	}
	if height > 1 {
		m.yStep = extent.Height / float64(height-1)
	}
	return m
}

func (m Mapper) Point(col, row int) escape.Point {
	return escape.Point{
		Re: float64(col)*m.xStep + m.left,
		Im: -float64(row)*m.yStep + m.top,
	}
}

// At maps a flat row-major pixel index.
func (m Mapper) At(i int) escape.Point {
	if m.width <= 0 {
		return escape.Point{Re: m.left, Im: m.top}
	}
	return m.Point(i%m.width, i/m.width)
}
