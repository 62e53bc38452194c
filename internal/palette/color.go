package palette

import (
	"fmt"
	"image/color"

	"github.com/lucasb-eyer/go-colorful"
)

type RGB struct {
	R, G, B uint8
}

// Pack encodes the colour as 0x00RRGGBB.
func (c RGB) Pack() uint32 {
	return uint32(c.R)<<16 | uint32(c.G)<<8 | uint32(c.B)
}

// Unpack is the inverse of Pack. The top byte is ignored.
func Unpack(p uint32) RGB {
	return RGB{R: uint8(p >> 16), G: uint8(p >> 8), B: uint8(p)}
}

func (c RGB) RGBA() color.RGBA {
	return color.RGBA{R: c.R, G: c.G, B: c.B, A: 0xff}
}

func (c RGB) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// ParseHex accepts "#rrggbb" and "#rgb".
func ParseHex(s string) (RGB, error) {
	c, err := colorful.Hex(s)
	if err != nil {
		return RGB{}, fmt.Errorf("invalid colour %q: %w", s, err)
	}
	r, g, b := c.RGB255()
	return RGB{R: r, G: g, B: b}, nil
}

// Blend mixes two colours in CIE-L*a*b* space, which keeps perceived
// lightness even across the gradient.
func Blend(a, b RGB, t float64) RGB {
	ca := colorful.Color{R: float64(a.R) / 255, G: float64(a.G) / 255, B: float64(a.B) / 255}
	cb := colorful.Color{R: float64(b.R) / 255, G: float64(b.G) / 255, B: float64(b.B) / 255}
	r, g, bl := ca.BlendLab(cb, t).Clamped().RGB255()
	return RGB{R: r, G: g, B: bl}
}
