package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/san-kum/fractalsim/internal/escape"
	"github.com/san-kum/fractalsim/internal/palette"
	"github.com/san-kum/fractalsim/internal/render"
	"github.com/san-kum/fractalsim/internal/session"
	"gopkg.in/yaml.v3"
)

const (
	DefaultWidth  = 1000
	DefaultHeight = 800
)

var ErrInvalidConfig = errors.New("config: invalid value")

type Config struct {
	Fractal  string        `yaml:"fractal"`
	Width    int           `yaml:"width"`
	Height   int           `yaml:"height"`
	Workers  int           `yaml:"workers"`
	Coloring string        `yaml:"coloring"`
	Palette  string        `yaml:"palette"`
	Stops    []StopConfig  `yaml:"stops,omitempty"`
	View     ViewConfig    `yaml:"view"`
	Julia    PointConfig   `yaml:"julia"`
	Session  SessionConfig `yaml:"session"`
}

type PointConfig struct {
	Re float64 `yaml:"re"`
	Im float64 `yaml:"im"`
}

func (p PointConfig) Point() escape.Point { return escape.Point{Re: p.Re, Im: p.Im} }

type StopConfig struct {
	Value float64 `yaml:"value"`
	Color string  `yaml:"color"`
}

type ViewConfig struct {
	MinXRange float64     `yaml:"min_x_range"`
	MinYRange float64     `yaml:"min_y_range"`
	Center    PointConfig `yaml:"center"`
	Zoom      float64     `yaml:"zoom"`
}

type SessionConfig struct {
	DefaultIterations   uint32  `yaml:"default_iterations"`
	IterationJump       uint32  `yaml:"iteration_jump"`
	MinIterations       uint32  `yaml:"min_iterations"`
	ReferenceIterations uint32  `yaml:"reference_iterations"`
	Translation         float64 `yaml:"translation"`
	ZoomFactor          float64 `yaml:"zoom_factor"`
	PanFraction         float64 `yaml:"pan_fraction"`
}

func DefaultConfig() *Config {
	return &Config{
		Fractal:  render.Julia.String(),
		Width:    DefaultWidth,
		Height:   DefaultHeight,
		Coloring: escape.Count.String(),
		Palette:  "default",
		View: ViewConfig{
			MinXRange: render.DefaultMinXRange,
			MinYRange: render.DefaultMinYRange,
			Zoom:      1.0,
		},
		Session: SessionConfig{
			DefaultIterations:   session.DefaultIterations,
			IterationJump:       session.IterationJump,
			MinIterations:       session.MinIterations,
			ReferenceIterations: session.ReferenceIterations,
			Translation:         session.Translation,
			ZoomFactor:          session.ZoomFactor,
			PanFraction:         session.PanFraction,
		},
	}
}

// Load reads a YAML file over the defaults and validates the result.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) Validate() error {
	switch {
	case c.Width < 0 || c.Height < 0:
		return fmt.Errorf("%w: window size %dx%d", ErrInvalidConfig, c.Width, c.Height)
	case c.View.Zoom <= 0:
		return fmt.Errorf("%w: zoom must be positive, got %v", ErrInvalidConfig, c.View.Zoom)
	case c.View.MinXRange <= 0 || c.View.MinYRange <= 0:
		return fmt.Errorf("%w: view ranges must be positive", ErrInvalidConfig)
	case c.Session.MinIterations == 0:
		return fmt.Errorf("%w: min_iterations must be at least 1", ErrInvalidConfig)
	case c.Session.IterationJump == 0:
		return fmt.Errorf("%w: iteration_jump must be at least 1", ErrInvalidConfig)
	case c.Session.DefaultIterations < c.Session.MinIterations:
		return fmt.Errorf("%w: default_iterations %d below min_iterations %d",
			ErrInvalidConfig, c.Session.DefaultIterations, c.Session.MinIterations)
	case c.Session.ZoomFactor <= 1:
		return fmt.Errorf("%w: zoom_factor must be greater than 1, got %v", ErrInvalidConfig, c.Session.ZoomFactor)
	}
	if _, err := escape.ParseColoring(c.Coloring); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if _, err := render.ParseKind(c.Fractal); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if len(c.Stops) == 0 {
		if _, err := palette.Named(c.Palette); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
		}
	}
	return nil
}

// BuildPalette builds the configured palette. Explicit stops win over the named
// palette. Construction errors are returned, never replaced by a default.
func (c *Config) BuildPalette() (*palette.Palette, error) {
	if len(c.Stops) == 0 {
		return palette.Named(c.Palette)
	}
	stops := make([]palette.Stop, len(c.Stops))
	for i, s := range c.Stops {
		rgb, err := palette.ParseHex(s.Color)
		if err != nil {
			return nil, fmt.Errorf("stop %d: %w", i, err)
		}
		stops[i] = palette.Stop{Value: s.Value, Color: rgb}
	}
	return palette.New(stops)
}

// RenderView is the configured starting view with its colouring resolved.
func (c *Config) RenderView() render.ViewConfig {
	coloring, _ := escape.ParseColoring(c.Coloring)
	return render.ViewConfig{
		MinXRange: c.View.MinXRange,
		MinYRange: c.View.MinYRange,
		Center:    c.View.Center.Point(),
		Zoom:      c.View.Zoom,
		Coloring:  coloring,
	}
}

// Kind is the fractal family the one-shot commands render by default.
func (c *Config) Kind() render.Kind {
	k, _ := render.ParseKind(c.Fractal)
	return k
}

func (c *Config) SessionConfig() session.Config {
	return session.Config{
		DefaultIterations:   c.Session.DefaultIterations,
		IterationJump:       c.Session.IterationJump,
		MinIterations:       c.Session.MinIterations,
		ReferenceIterations: c.Session.ReferenceIterations,
		Translation:         c.Session.Translation,
		ZoomFactor:          c.Session.ZoomFactor,
		PanFraction:         c.Session.PanFraction,
		View:                c.RenderView(),
	}
}

// InitialParams is the session's starting view, with the configured Julia
// constant.
func (c *Config) InitialParams() session.Params {
	p := c.SessionConfig().DefaultParams()
	p.C = c.Julia.Point()
	return p
}
