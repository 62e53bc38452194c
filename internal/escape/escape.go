package escape

import (
	"fmt"
	"math"
	"strings"
)

// Radius2 is the squared escape radius.
const Radius2 = 4.0

type Point struct {
	Re, Im float64
}

func (p Point) Neg() Point { return Point{-p.Re, -p.Im} }

func (p Point) Add(q Point) Point { return Point{p.Re + q.Re, p.Im + q.Im} }

func (p Point) Abs2() float64 { return p.Re*p.Re + p.Im*p.Im }

func (p Point) String() string {
	return fmt.Sprintf("%.6f%+.6fi", p.Re, p.Im)
}

// iterate runs z = z² + c from z0 until the budget is spent or |z|² exceeds
// Radius2. It returns the step count and the last squared magnitude.
func iterate(z0, c Point, maxIterations uint32) (uint32, float64) {
	zr, zi := z0.Re, z0.Im
	var n uint32
	mag2 := zr*zr + zi*zi
	for n < maxIterations && mag2 <= Radius2 {
		zr, zi = (zr+zi)*(zr-zi)+c.Re, 2*zr*zi+c.Im
		mag2 = zr*zr + zi*zi
		n++
	}
	return n, mag2
}

// Value returns the number of iterations before z escapes, or maxIterations
// when it never does.
func Value(z0, c Point, maxIterations uint32) float64 {
	n, _ := iterate(z0, c, maxIterations)
	return float64(n)
}

// Smooth returns n - log2(log2(|z_n|²)/2) for orbits that escape before the
// budget is spent, and the plain count otherwise.
func Smooth(z0, c Point, maxIterations uint32) float64 {
	n, mag2 := iterate(z0, c, maxIterations)
	if n >= maxIterations || mag2 <= Radius2 {
		return float64(n)
	}
	return float64(n) - math.Log2(math.Log2(mag2)/2)
}

// Renormalized returns n + 1 - ln(ln|z_n|)/ln 2 for escaping orbits.
func Renormalized(z0, c Point, maxIterations uint32) float64 {
	n, mag2 := iterate(z0, c, maxIterations)
	if n >= maxIterations || mag2 <= Radius2 {
		return float64(n)
	}
	return float64(n) + 1 - math.Log(math.Log(math.Sqrt(mag2)))/math.Ln2
}

// Func is the evaluator signature shared by every colouring mode.
type Func func(z0, c Point, maxIterations uint32) float64

type Coloring int

const (
	Count Coloring = iota
	SmoothColoring
	RenormalizedColoring
)

var coloringNames = map[Coloring]string{
	Count:                "count",
	SmoothColoring:       "smooth",
	RenormalizedColoring: "renormalized",
}

func (c Coloring) String() string {
	if name, ok := coloringNames[c]; ok {
		return name
	}
	return fmt.Sprintf("coloring(%d)", int(c))
}

func (c Coloring) Func() Func {
	switch c {
	case SmoothColoring:
		return Smooth
	case RenormalizedColoring:
		return Renormalized
	default:
		return Value
	}
}

func ParseColoring(s string) (Coloring, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return Count, nil
	}
	for c, name := range coloringNames {
		if name == s {
			return c, nil
		}
	}
	return Count, fmt.Errorf("unknown coloring: %s (available: count, smooth, renormalized)", s)
}
