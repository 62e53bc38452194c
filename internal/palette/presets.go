package palette

import (
	"fmt"
	"sort"
)

var Presets = map[string][]Stop{
	"default": {
		{0.0, RGB{0, 18, 25}},
		{0.1, RGB{20, 33, 61}},
		{0.25, RGB{252, 163, 17}},
		{0.5, RGB{229, 229, 229}},
		{1.0, RGB{255, 255, 255}},
	},
	"grayscale": {
		{0.0, RGB{0, 0, 0}},
		{1.0, RGB{255, 255, 255}},
	},
	"fire": {
		{0.0, RGB{0, 0, 0}},
		{0.2, RGB{128, 0, 0}},
		{0.45, RGB{255, 80, 0}},
		{0.7, RGB{255, 200, 0}},
		{1.0, RGB{255, 255, 224}},
	},
	"ocean": Gradient(RGB{0, 7, 100}, RGB{237, 255, 255}, 8),
}

// Default is the explorer's palette.
func Default() *Palette {
	return Must(Presets["default"])
}

func Named(name string) (*Palette, error) {
	stops, ok := Presets[name]
	if !ok {
		return nil, fmt.Errorf("unknown palette: %s (available: %v)", name, Names())
	}
	return New(stops)
}

func Names() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Gradient samples a Lab blend between two colours into n+1 evenly spaced
// stops. n below 1 is treated as 1.
func Gradient(from, to RGB, n int) []Stop {
	if n < 1 {
		n = 1
	}
	stops := make([]Stop, n+1)
	for i := 0; i <= n; i++ {
		t := float64(i) / float64(n)
		stops[i] = Stop{Value: t, Color: Blend(from, to, t)}
	}
	return stops
}
