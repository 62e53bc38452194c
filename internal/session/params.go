package session

import (
	"math"

	"github.com/san-kum/fractalsim/internal/escape"
	"github.com/san-kum/fractalsim/internal/render"
	"github.com/san-kum/fractalsim/internal/viewport"
)

const (
	DefaultIterations   = 50
	IterationJump       = 4
	MinIterations       = 10
	ReferenceIterations = 100
	Translation         = 0.03
	ZoomFactor          = 1.25
	PanFraction         = 0.05
)

type Config struct {
	DefaultIterations   uint32
	IterationJump       uint32
	MinIterations       uint32
	ReferenceIterations uint32
	Translation         float64
	ZoomFactor          float64
	PanFraction         float64
	View                render.ViewConfig
}

func DefaultConfig() Config {
	return Config{
		DefaultIterations:   DefaultIterations,
		IterationJump:       IterationJump,
		MinIterations:       MinIterations,
		ReferenceIterations: ReferenceIterations,
		Translation:         Translation,
		ZoomFactor:          ZoomFactor,
		PanFraction:         PanFraction,
		View:                render.DefaultView(),
	}
}

// Params is the whole view state. It is compared with == to decide whether a
// new frame is needed.
type Params struct {
	C             escape.Point
	Center        escape.Point
	Zoom          float64
	MaxIterations uint32
}

func (c Config) DefaultParams() Params {
	zoom := c.View.Zoom
	if zoom <= 0 {
		zoom = 1
	}
	return Params{
		Center:        c.View.Center,
		Zoom:          zoom,
		MaxIterations: c.DefaultIterations,
	}
}

// Input is one frame's worth of user input.
type Input struct {
	HasMouse       bool
	MouseX, MouseY float64

	// Up, Down, Left and Right move the Julia constant.
	Up, Down, Left, Right bool

	// Pan* move the view centre by a fraction of the visible extent.
	PanUp, PanDown, PanLeft, PanRight bool

	ZoomIn, ZoomOut bool

	MoreIterations, FewerIterations bool
	Reset                           bool

	// Reference shows the Mandelbrot map instead of the Julia set.
	Reference bool
}

// Apply returns the params after one frame of input on a width×height grid.
func (p Params) Apply(in Input, cfg Config, width, height int) Params {
	if in.HasMouse && width > 0 && height > 0 {
		ext := viewport.AspectExtent(width, height, cfg.View.MinXRange, cfg.View.MinYRange)
		p.C = escape.Point{
			Re: (in.MouseX/float64(width) - 0.5) * ext.Width,
			Im: (0.5 - in.MouseY/float64(height)) * ext.Height,
		}
	}

	if in.Up {
		p.C.Im += cfg.Translation
	}
	if in.Down {
		p.C.Im -= cfg.Translation
	}
	if in.Right {
		p.C.Re += cfg.Translation
	}
	if in.Left {
		p.C.Re -= cfg.Translation
	}

	if cfg.ZoomFactor > 0 {
		if in.ZoomIn {
			p.Zoom *= cfg.ZoomFactor
		}
		if in.ZoomOut {
			p.Zoom /= cfg.ZoomFactor
		}
	}

	if in.PanUp || in.PanDown || in.PanLeft || in.PanRight {
		ext := viewport.AspectExtent(width, height, cfg.View.MinXRange, cfg.View.MinYRange).Zoom(p.Zoom)
		dx, dy := ext.Width*cfg.PanFraction, ext.Height*cfg.PanFraction
		if in.PanUp {
			p.Center.Im += dy
		}
		if in.PanDown {
			p.Center.Im -= dy
		}
		if in.PanRight {
			p.Center.Re += dx
		}
		if in.PanLeft {
			p.Center.Re -= dx
		}
	}

	if in.MoreIterations {
		if p.MaxIterations > math.MaxUint32-cfg.IterationJump {
			p.MaxIterations = math.MaxUint32
		} else {
			p.MaxIterations += cfg.IterationJump
		}
	}
	if in.FewerIterations {
		if p.MaxIterations < cfg.MinIterations+cfg.IterationJump {
			p.MaxIterations = cfg.MinIterations
		} else {
			p.MaxIterations -= cfg.IterationJump
		}
	}

	if in.Reset {
		p.MaxIterations = cfg.DefaultIterations
	}
	return p
}
