package config

import "sort"

// Preset overlays a few fields on DefaultConfig.
type Preset struct {
	Description string
	apply       func(*Config)
}

func julia(re, im float64) func(*Config) {
	return func(c *Config) {
		c.Fractal = "julia"
		c.Julia = PointConfig{Re: re, Im: im}
	}
}

// region frames a Mandelbrot landmark by its centre and visible height.
func region(re, im, height float64) func(*Config) {
	return func(c *Config) {
		c.Fractal = "mandelbrot"
		c.View.Center = PointConfig{Re: re, Im: im}
		c.View.Zoom = c.View.MinYRange / height
		c.Session.DefaultIterations = 256
	}
}

var Presets = map[string]Preset{
	"basilica":      {"Julia set for c = -1", julia(-1, 0)},
	"dendrite":      {"Julia set for c = i", julia(0, 1)},
	"douady-rabbit": {"three-lobed rabbit", julia(-0.123, 0.745)},
	"siegel-disk":   {"Siegel disk around a neutral fixed point", julia(-0.391, -0.587)},
	"galaxy":        {"spiral arms of c = -0.8 + 0.156i", julia(-0.8, 0.156)},

	"seahorse-valley": {"dense filaments and seahorse curls", region(-0.75, 0.10, 0.10)},
	"elephant-valley": {"large bulb with trunk-like tendrils", region(-1.80, -0.06, 0.08)},
	"spiral-minibrot": {"small copy with tight spiral arms", region(-0.74275, 0.13175, 0.0015)},

	"web": {"smaller budget, coarser steps", func(c *Config) {
		c.Session.DefaultIterations = 70
		c.Session.IterationJump = 3
		c.Session.MinIterations = 12
	}},
}

// GetPreset returns a fresh config for the named preset, or nil.
func GetPreset(name string) *Config {
	p, ok := Presets[name]
	if !ok {
		return nil
	}
	cfg := DefaultConfig()
	p.apply(cfg)
	return cfg
}

// ApplyPreset overlays the named preset on an existing config.
func (c *Config) ApplyPreset(name string) bool {
	p, ok := Presets[name]
	if !ok {
		return false
	}
	p.apply(c)
	return true
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
