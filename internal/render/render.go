package render

import (
	"context"
	"errors"
	"runtime"

	"github.com/san-kum/fractalsim/internal/escape"
	"github.com/san-kum/fractalsim/internal/palette"
	"golang.org/x/sync/errgroup"
)

var ErrNoPalette = errors.New("render: job has no palette")

// Chunks smaller than this are not worth a goroutine.
const minChunk = 1024

// cancelCheck is how many pixels a worker computes between context checks.
const cancelCheck = 256

type Renderer struct {
	workers int
}

// New returns a renderer with the given number of workers; non-positive
// values use one worker per CPU.
func New(workers int) *Renderer {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	return &Renderer{workers: workers}
}

func (r *Renderer) Workers() int { return r.workers }

// Render produces the packed pixel buffer for job. A cancelled context yields
// ctx.Err() and no buffer.
func (r *Renderer) Render(ctx context.Context, job Job) ([]uint32, error) {
	if job.Palette == nil {
		return nil, ErrNoPalette
	}
	total := job.pixels()
	buf := make([]uint32, total)
	if total == 0 {
		return buf, nil
	}

	m := job.mapper()
	eval := job.View.Coloring.Func()
	pal := job.Palette

	n := total
	if job.symmetric() {
		n = (total + 1) / 2
	}

	err := fill(ctx, r.workers, buf[:n], func(i int) uint32 {
		return pal.Pixel(job.normalize(job.escapeAt(m, eval, i)))
	})
	if err != nil {
		return nil, err
	}

	// With both dimensions odd the last computed pixel is the centre and has
	// no partner, so the tail is one shorter than the head.
	for i := n; i < total; i++ {
		buf[i] = buf[total-1-i]
	}
	return buf, nil
}

// Escapes returns the raw escape value of every pixel in row-major order.
func (r *Renderer) Escapes(ctx context.Context, job Job) ([]float64, error) {
	total := job.pixels()
	out := make([]float64, total)
	if total == 0 {
		return out, nil
	}

	m := job.mapper()
	eval := job.View.Coloring.Func()
	if err := fill(ctx, r.workers, out, func(i int) float64 {
		return job.escapeAt(m, eval, i)
	}); err != nil {
		return nil, err
	}
	return out, nil
}

// fill writes fn(i) into dst[i] for every index, splitting the range into one
// contiguous chunk per worker.
func fill[T any](ctx context.Context, workers int, dst []T, fn func(i int) T) error {
	n := len(dst)
	if n/minChunk < workers {
		workers = n / minChunk
	}
	if workers < 1 {
		workers = 1
	}
	chunkSize := (n + workers - 1) / workers

	g, ctx := errgroup.WithContext(ctx)
	for w := 0; w < workers; w++ {
		start := w * chunkSize
		end := start + chunkSize
		if end > n {
			end = n
		}
		g.Go(func() error {
			for i := start; i < end; i++ {
				if (i-start)%cancelCheck == 0 {
					if err := ctx.Err(); err != nil {
						return err
					}
				}
				dst[i] = fn(i)
			}
			return nil
		})
	}
	return g.Wait()
}

var defaultRenderer = New(0)

// MandelbrotField renders the Mandelbrot set with the default view. It panics
// if pal is nil.
func MandelbrotField(maxIterations uint32, pal *palette.Palette, width, height int) []uint32 {
	return mustRender(defaultRenderer.Render(context.Background(), Job{
		Kind:          Mandelbrot,
		MaxIterations: maxIterations,
		Width:         width,
		Height:        height,
		View:          DefaultView(),
		Palette:       pal,
	}))
}

// JuliaField renders the Julia set for c with the default view. It panics if
// pal is nil.
func JuliaField(c escape.Point, maxIterations uint32, pal *palette.Palette, width, height int) []uint32 {
	return mustRender(defaultRenderer.Render(context.Background(), Job{
		Kind:          Julia,
		C:             c,
		MaxIterations: maxIterations,
		Width:         width,
		Height:        height,
		View:          DefaultView(),
		Palette:       pal,
	}))
}

func mustRender(buf []uint32, err error) []uint32 {
	if err != nil {
		panic(err)
	}
	return buf
}
