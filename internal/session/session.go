// Package session owns the explorer's view state and decides when a frame has
// to be rendered again.
//
// A frame is re-rendered if and only if the parameters differ from the ones
// the current buffer was rendered with, or the grid size changed. There is no
// partial re-render: any change invalidates the whole buffer.
package session

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/san-kum/fractalsim/internal/escape"
	"github.com/san-kum/fractalsim/internal/palette"
	"github.com/san-kum/fractalsim/internal/render"
)

// Session is not safe for concurrent use; it belongs to the display loop.
type Session struct {
	cfg      Config
	palette  *palette.Palette
	renderer *render.Renderer
	out      io.Writer

	params Params

	pixels        []uint32
	rendered      Params
	width, height int
	valid         bool

	reference      []uint32
	refW, refH     int
	referenceValid bool
	renders        int
	lastRenderTime time.Duration
}

func New(cfg Config, pal *palette.Palette, r *render.Renderer) *Session {
	if r == nil {
		r = render.New(0)
	}
	return &Session{
		cfg:      cfg,
		palette:  pal,
		renderer: r,
		out:      io.Discard,
		params:   cfg.DefaultParams(),
	}
}

// SetOutput sets where render timings are written.
func (s *Session) SetOutput(w io.Writer) {
	if w == nil {
		w = io.Discard
	}
	s.out = w
}

func (s *Session) Config() Config { return s.cfg }

func (s *Session) Params() Params { return s.params }

// SetParams replaces the view state; the next Update renders if it differs
// from the current frame. An iteration limit below the configured minimum is
// raised to it.
func (s *Session) SetParams(p Params) {
	p.MaxIterations = max(p.MaxIterations, s.cfg.MinIterations, 1)
	s.params = p
}

// Renders counts every render the session has issued, reference frames
// included.
func (s *Session) Renders() int { return s.renders }

func (s *Session) LastRenderTime() time.Duration { return s.lastRenderTime }

// Update applies one frame of input and returns the buffer to display. The
// returned slice is shared with the session until the next re-render.
func (s *Session) Update(ctx context.Context, in Input, width, height int) ([]uint32, error) {
	if in.Reference {
		return s.referenceFrame(ctx, width, height)
	}

	s.params = s.params.Apply(in, s.cfg, width, height)
	if s.valid && s.params == s.rendered && width == s.width && height == s.height {
		return s.pixels, nil
	}

	start := time.Now()
	buf, err := s.renderer.Render(ctx, s.Job(width, height))
	if err != nil {
		return s.pixels, err
	}
	s.track(start)

	s.pixels, s.rendered = buf, s.params
	s.width, s.height, s.valid = width, height, true

	fmt.Fprintf(s.out, "%9s for: Max iters = %3d, c = %6.3f + %6.3fi\n",
		s.lastRenderTime.Round(10*time.Microsecond), s.params.MaxIterations, s.params.C.Re, s.params.C.Im)
	return s.pixels, nil
}

// Job is the Julia render for the current params.
func (s *Session) Job(width, height int) render.Job {
	view := s.cfg.View
	view.Center = s.params.Center
	view.Zoom = s.params.Zoom
	return render.Job{
		Kind:          render.Julia,
		C:             s.params.C,
		MaxIterations: s.params.MaxIterations,
		Width:         width,
		Height:        height,
		View:          view,
		Palette:       s.palette,
	}
}

// ReferenceJob is the full Mandelbrot map used to pick c with the mouse.
func (s *Session) ReferenceJob(width, height int) render.Job {
	view := s.cfg.View
	view.Center = escape.Point{}
	view.Zoom = 1
	return render.Job{
		Kind:          render.Mandelbrot,
		MaxIterations: s.cfg.ReferenceIterations,
		Width:         width,
		Height:        height,
		View:          view,
		Palette:       s.palette,
	}
}

func (s *Session) referenceFrame(ctx context.Context, width, height int) ([]uint32, error) {
	if s.referenceValid && width == s.refW && height == s.refH {
		return s.reference, nil
	}

	start := time.Now()
	buf, err := s.renderer.Render(ctx, s.ReferenceJob(width, height))
	if err != nil {
		return s.reference, err
	}
	s.track(start)

	s.reference, s.refW, s.refH, s.referenceValid = buf, width, height, true
	return s.reference, nil
}

func (s *Session) track(start time.Time) {
	s.lastRenderTime = time.Since(start)
	s.renders++
}
