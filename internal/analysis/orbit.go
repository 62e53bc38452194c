package analysis

import (
	"math"

	"github.com/san-kum/fractalsim/internal/escape"
)

// Orbit records z0 and every iterate up to and including the first one
// outside the escape radius, stopping after maxIterations steps.
func Orbit(z0, c escape.Point, maxIterations uint32) []escape.Point {
	points := []escape.Point{z0}
	z := z0
	for n := uint32(0); n < maxIterations && z.Abs2() <= escape.Radius2; n++ {
		z = escape.Point{
			Re: z.Re*z.Re - z.Im*z.Im + c.Re,
			Im: 2*z.Re*z.Im + c.Im,
		}
		points = append(points, z)
	}
	return points
}

// Moduli returns |z| for each point of an orbit.
func Moduli(orbit []escape.Point) []float64 {
	out := make([]float64, len(orbit))
	for i, p := range orbit {
		out[i] = math.Sqrt(p.Abs2())
	}
	return out
}
