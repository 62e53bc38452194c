package analysis

import (
	"math"
	"strings"
)

// BifurcationPoint is the attractor of x -> x² + c for one real c.
type BifurcationPoint struct {
	Param  float64
	Values []float64
}

// BifurcationDiagram sweeps c along the real axis, the Mandelbrot set's
// spine. Each orbit starts at the critical point 0, runs transient steps to
// settle, then records up to record distinct values. Orbits that escape
// record nothing.
func BifurcationDiagram(cMin, cMax float64, steps, transient, record int) []BifurcationPoint {
	if steps <= 1 {
		steps = 2
	}
	step := (cMax - cMin) / float64(steps-1)

	results := make([]BifurcationPoint, 0, steps)
	for i := 0; i < steps; i++ {
		c := cMin + float64(i)*step
		x := 0.0
		escaped := false
		for n := 0; n < transient; n++ {
			x = x*x + c
			if math.Abs(x) > 2 {
				escaped = true
				break
			}
		}

		var values []float64
		if !escaped {
			// quantize to find distinct values
			seen := make(map[int]bool)
			for n := 0; n < record; n++ {
				x = x*x + c
				if math.Abs(x) > 2 {
					break
				}
				key := int(math.Round(x * 1000))
				if !seen[key] {
					seen[key] = true
					values = append(values, x)
				}
			}
		}
		results = append(results, BifurcationPoint{Param: c, Values: values})
	}
	return results
}

// BifurcationToASCII converts bifurcation data to ASCII art
func BifurcationToASCII(data []BifurcationPoint, width, height int) string {
	if len(data) == 0 || width <= 0 || height <= 0 {
		return ""
	}

	minVal, maxVal := math.Inf(1), math.Inf(-1)
	for _, p := range data {
		for _, v := range p.Values {
			minVal = math.Min(minVal, v)
			maxVal = math.Max(maxVal, v)
		}
	}
	if math.IsInf(minVal, 1) {
		return ""
	}
	if maxVal == minVal {
		maxVal = minVal + 1
	}

	canvas := make([][]rune, height)
	for i := range canvas {
		canvas[i] = []rune(strings.Repeat(" ", width))
	}

	for i, p := range data {
		col := i * width / len(data)
		if col >= width {
			col = width - 1
		}
		for _, v := range p.Values {
			row := height - 1 - int((v-minVal)/(maxVal-minVal)*float64(height-1))
			if row >= 0 && row < height {
				canvas[row][col] = '•'
			}
		}
	}

	var b strings.Builder
	for _, row := range canvas {
		b.WriteString(string(row))
		b.WriteByte('\n')
	}
	return b.String()
}
