package palette

import (
	"errors"
	"math"
	"testing"
)

var (
	black = RGB{0, 0, 0}
	white = RGB{255, 255, 255}
)

func TestNew_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		stops []Stop
	}{
		{"empty", nil},
		{"single stop at zero", []Stop{{0, black}}},
		{"single stop at one", []Stop{{1, white}}},
		{"missing zero", []Stop{{0.1, black}, {1, white}}},
		{"missing one", []Stop{{0, black}, {0.9, white}}},
		{"beyond one", []Stop{{0, black}, {1.5, white}}},
		{"NaN", []Stop{{0, black}, {math.NaN(), white}, {1, white}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := New(tt.stops)
			if err == nil {
				t.Fatalf("expected error, got palette %+v", p)
			}
			if !errors.Is(err, ErrInvalidPalette) {
				t.Errorf("expected ErrInvalidPalette, got %v", err)
			}
		})
	}
}

func TestNew_SortsAndCopies(t *testing.T) {
	stops := []Stop{{1, white}, {0, black}, {0.5, RGB{10, 20, 30}}}
	p, err := New(stops)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	stops[0].Color = RGB{1, 2, 3}

	got := p.Stops()
	if got[0].Value != 0 || got[1].Value != 0.5 || got[2].Value != 1 {
		t.Errorf("stops not sorted: %+v", got)
	}
	if got[2].Color != white {
		t.Errorf("palette shares the caller's slice: %+v", got[2])
	}
}

func TestValue_Midpoint(t *testing.T) {
	p := Must([]Stop{{0, black}, {1, white}})

	got := p.Value(0.5)
	if got != (RGB{128, 128, 128}) {
		t.Errorf("expected rounded mean 128, got %+v", got)
	}
}

func TestValue_ExactStops(t *testing.T) {
	p := Default()
	for _, s := range p.Stops() {
		if got := p.Value(s.Value); got != s.Color {
			t.Errorf("stop %v: expected %+v, got %+v", s.Value, s.Color, got)
		}
	}
}

func TestValue_Clamp(t *testing.T) {
	for _, name := range Names() {
		p, err := Named(name)
		if err != nil {
			t.Fatalf("%s: %v", name, err)
		}
		if p.Value(-5) != p.Value(0) {
			t.Errorf("%s: value(-5) != value(0)", name)
		}
		if p.Value(5) != p.Value(1) {
			t.Errorf("%s: value(5) != value(1)", name)
		}
		if p.Value(math.NaN()) != p.Value(0) {
			t.Errorf("%s: NaN should clamp to the first stop", name)
		}
	}
}

func TestValue_Interpolation(t *testing.T) {
	p := Must([]Stop{
		{0, RGB{200, 0, 100}},
		{0.5, RGB{0, 200, 100}},
		{1, RGB{0, 0, 0}},
	})

	tests := []struct {
		t        float64
		expected RGB
	}{
		{0.25, RGB{100, 100, 100}},
		{0.125, RGB{150, 50, 100}},
		{0.75, RGB{0, 100, 50}},
	}

	for _, tt := range tests {
		if got := p.Value(tt.t); got != tt.expected {
			t.Errorf("value(%v): expected %+v, got %+v", tt.t, tt.expected, got)
		}
	}
}

func TestPackUnpack(t *testing.T) {
	c := RGB{0x12, 0x34, 0x56}
	if got := c.Pack(); got != 0x00123456 {
		t.Errorf("expected 0x00123456, got %#08x", got)
	}
	if got := Unpack(0xff123456); got != c {
		t.Errorf("expected %+v, got %+v", c, got)
	}
	rgba := c.RGBA()
	if rgba.R != 0x12 || rgba.G != 0x34 || rgba.B != 0x56 || rgba.A != 0xff {
		t.Errorf("unexpected RGBA %+v", rgba)
	}
}

func TestParseHex(t *testing.T) {
	got, err := ParseHex("#fca311")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != (RGB{252, 163, 17}) {
		t.Errorf("expected {252 163 17}, got %+v", got)
	}
	if got.Hex() != "#fca311" {
		t.Errorf("expected #fca311, got %s", got.Hex())
	}

	if _, err := ParseHex("orange"); err == nil {
		t.Error("expected error for non-hex colour")
	}
}

func TestNamed(t *testing.T) {
	if _, err := Named("nonexistent"); err == nil {
		t.Error("expected error for unknown palette")
	}

	names := Names()
	if len(names) != len(Presets) {
		t.Fatalf("expected %d names, got %d", len(Presets), len(names))
	}
	for i := 1; i < len(names); i++ {
		if names[i-1] > names[i] {
			t.Errorf("names not sorted: %v", names)
		}
	}
}

func TestGradient(t *testing.T) {
	stops := Gradient(black, white, 4)
	if len(stops) != 5 {
		t.Fatalf("expected 5 stops, got %d", len(stops))
	}
	if stops[0].Value != 0 || stops[4].Value != 1 {
		t.Errorf("gradient does not span [0, 1]: %+v", stops)
	}
	if _, err := New(stops); err != nil {
		t.Errorf("gradient should build a valid palette: %v", err)
	}
	for i := 1; i < len(stops); i++ {
		if stops[i].Color.R < stops[i-1].Color.R {
			t.Errorf("black to white gradient should brighten: %+v", stops)
		}
	}
}

func BenchmarkValue(b *testing.B) {
	p := Default()
	for i := 0; i < b.N; i++ {
		p.Value(float64(i%1000) / 1000)
	}
}
