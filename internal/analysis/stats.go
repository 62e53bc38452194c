package analysis

import "math"

// Summary describes one field of escape values.
type Summary struct {
	Pixels   int
	Interior int
	// Mean, Min and Max cover escaped pixels only.
	Mean, Min, Max float64
	// Histogram buckets escaped values over [0, maxIterations).
	Histogram []int
}

func (s Summary) InteriorFraction() float64 {
	if s.Pixels == 0 {
		return 0
	}
	return float64(s.Interior) / float64(s.Pixels)
}

// Summarize treats a value at or above maxIterations as interior.
func Summarize(values []float64, maxIterations uint32, bins int) Summary {
	if bins < 1 {
		bins = 1
	}
	s := Summary{Pixels: len(values), Histogram: make([]int, bins)}
	limit := float64(maxIterations)

	sum := 0.0
	escaped := 0
	s.Min = math.Inf(1)
	s.Max = math.Inf(-1)
	for _, v := range values {
		if v >= limit {
			s.Interior++
			continue
		}
		escaped++
		sum += v
		s.Min = math.Min(s.Min, v)
		s.Max = math.Max(s.Max, v)

		b := int(v / limit * float64(bins))
		if b < 0 {
			b = 0
		}
		if b >= bins {
			b = bins - 1
		}
		s.Histogram[b]++
	}

	if escaped == 0 {
		s.Min, s.Max = 0, 0
		return s
	}
	s.Mean = sum / float64(escaped)
	return s
}

// Floats converts the histogram for plotting.
func (s Summary) Floats() []float64 {
	out := make([]float64, len(s.Histogram))
	for i, n := range s.Histogram {
		out[i] = float64(n)
	}
	return out
}
