// Package palette maps normalised escape values to colours through sorted
// control points and linear interpolation.
package palette

import (
	"fmt"
	"math"
	"sort"
)

// Stop is a control point of the gradient.
type Stop struct {
	Value float64
	Color RGB
}

// Palette is immutable after New and safe for concurrent use.
type Palette struct {
	stops []Stop
}

// New validates and sorts the stops. The first stop must be exactly 0 and the
// last exactly 1.
func New(stops []Stop) (*Palette, error) {
	if len(stops) == 0 {
		return nil, fmt.Errorf("%w: no stops", ErrInvalidPalette)
	}
	sorted := make([]Stop, len(stops))
	copy(sorted, stops)
	for _, s := range sorted {
		if math.IsNaN(s.Value) {
			return nil, fmt.Errorf("%w: NaN stop", ErrInvalidPalette)
		}
	}
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Value < sorted[j].Value })

	if first := sorted[0].Value; first != 0 {
		return nil, fmt.Errorf("%w: first stop is %v, want 0", ErrInvalidPalette, first)
	}
	if last := sorted[len(sorted)-1].Value; last != 1 {
		return nil, fmt.Errorf("%w: last stop is %v, want 1", ErrInvalidPalette, last)
	}
	return &Palette{stops: sorted}, nil
}

// Must is New for palettes known to be valid at compile time.
func Must(stops []Stop) *Palette {
	p, err := New(stops)
	if err != nil {
		panic(err)
	}
	return p
}

// Value returns the colour at t. Values outside [0, 1] clamp to the end stops.
func (p *Palette) Value(t float64) RGB {
	last := len(p.stops) - 1
	if t > 1 {
		return p.stops[last].Color
	}
	if t < 0 || math.IsNaN(t) {
		return p.stops[0].Color
	}

	i := sort.Search(len(p.stops), func(i int) bool { return p.stops[i].Value >= t })
	if p.stops[i].Value == t {
		return p.stops[i].Color
	}

	lo, hi := p.stops[i-1], p.stops[i]
	f := (t - lo.Value) / (hi.Value - lo.Value)
	return RGB{
		R: lerp(lo.Color.R, hi.Color.R, f),
		G: lerp(lo.Color.G, hi.Color.G, f),
		B: lerp(lo.Color.B, hi.Color.B, f),
	}
}

// Pixel is Value packed as 0x00RRGGBB.
func (p *Palette) Pixel(t float64) uint32 {
	return p.Value(t).Pack()
}

// Stops returns a copy of the sorted stops.
func (p *Palette) Stops() []Stop {
	out := make([]Stop, len(p.stops))
	copy(out, p.stops)
	return out
}

func lerp(a, b uint8, f float64) uint8 {
	v := int(a) + int(math.Round(f*(float64(b)-float64(a))))
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}
