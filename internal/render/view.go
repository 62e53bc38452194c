package render

import (
	"fmt"

	"github.com/san-kum/fractalsim/internal/escape"
	"github.com/san-kum/fractalsim/internal/palette"
	"github.com/san-kum/fractalsim/internal/viewport"
)

const (
	DefaultMinXRange = 4.2
	DefaultMinYRange = 3.6
)

// ViewConfig describes which part of the plane a render covers.
type ViewConfig struct {
	MinXRange float64
	MinYRange float64
	Center    escape.Point
	Zoom      float64
	Coloring  escape.Coloring
}

func DefaultView() ViewConfig {
	return ViewConfig{
		MinXRange: DefaultMinXRange,
		MinYRange: DefaultMinYRange,
		Zoom:      1.0,
		Coloring:  escape.Count,
	}
}

// Extent is the zoomed, aspect-preserving span for a width×height grid.
func (v ViewConfig) Extent(width, height int) viewport.Extent {
	return viewport.AspectExtent(width, height, v.MinXRange, v.MinYRange).Zoom(v.Zoom)
}

type Kind int

const (
	Mandelbrot Kind = iota
	Julia
)

func (k Kind) String() string {
	switch k {
	case Mandelbrot:
		return "mandelbrot"
	case Julia:
		return "julia"
	}
	return "unknown"
}

// ParseKind accepts "mandelbrot" or "julia"; empty selects Julia.
func ParseKind(name string) (Kind, error) {
	switch name {
	case "", "julia":
		return Julia, nil
	case "mandelbrot":
		return Mandelbrot, nil
	}
	return Julia, fmt.Errorf("unknown fractal: %s (available: [julia mandelbrot])", name)
}

// Job carries every parameter of one render. Workers only read it.
type Job struct {
	Kind          Kind
	C             escape.Point
	MaxIterations uint32
	Width         int
	Height        int
	View          ViewConfig
	Palette       *palette.Palette
}

func (j Job) pixels() int {
	if j.Width <= 0 || j.Height <= 0 {
		return 0
	}
	return j.Width * j.Height
}

func (j Job) mapper() viewport.Mapper {
	nudge := 0.0
	if j.Kind == Mandelbrot && j.Height%2 == 1 {
		nudge = viewport.VerticalNudge
	}
	return viewport.NewMapper(j.Width, j.Height, j.View.Extent(j.Width, j.Height), j.View.Center, nudge)
}

// symmetric reports whether the second half of a Julia buffer may be mirrored
// from the first.
func (j Job) symmetric() bool {
	return j.Kind == Julia && j.View.Center == (escape.Point{})
}

// escapeAt evaluates pixel i.
func (j Job) escapeAt(m viewport.Mapper, eval escape.Func, i int) float64 {
	p := m.At(i)
	if j.Kind == Julia {
		return eval(p, j.C, j.MaxIterations)
	}
	return eval(escape.Point{}, p, j.MaxIterations)
}

// normalize maps an escape value to the palette's [0, 1] domain.
func (j Job) normalize(v float64) float64 {
	if j.MaxIterations == 0 {
		return 0
	}
	return v / float64(j.MaxIterations)
}
