// Package colormix provides the small numeric and color helpers used to build
// sky, sea and mountain gradients: clamping, linear interpolation, hex color
// parsing and per-channel color mixing.
package colormix

import (
	"fmt"
	"math"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// RGB is an 8-bit-per-channel color.
type RGB struct {
	R, G, B uint8
}

// Clamp limits x to the range [lo, hi]. NaN is mapped to lo.
func Clamp(x, lo, hi float64) float64 {
	if math.IsNaN(x) {
		return lo
	}
	return math.Max(lo, math.Min(hi, x))
}

// Lerp interpolates linearly between a and b. t is not clamped, so values
// outside [0,1] extrapolate; callers clamp t when that is not wanted.
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// ParseHex parses a 3- or 6-digit hex color, with or without the leading '#'.
func ParseHex(hex string) (RGB, error) {
	s := strings.TrimSpace(hex)
	if !strings.HasPrefix(s, "#") {
		s = "#" + s
	}
	c, err := colorful.Hex(s)
	if err != nil {
		return RGB{}, fmt.Errorf("parse color %q: %w", hex, err)
	}
	r, g, b := c.RGB255()
	return RGB{R: r, G: g, B: b}, nil
}

// HexToRGB is ParseHex for rendering code: malformed input yields black.
func HexToRGB(hex string) RGB {
	c, err := ParseHex(hex)
	if err != nil {
		return RGB{}
	}
	return c
}

// RGBToHex formats c as a lowercase "#rrggbb" string.
func RGBToHex(c RGB) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// MixColor blends two hex colors channel by channel, rounding each channel to
// the nearest integer. t=0 returns a, t=1 returns b.
func MixColor(a, b string, t float64) string {
	ca, cb := HexToRGB(a), HexToRGB(b)
	return RGBToHex(RGB{
		R: mixChannel(ca.R, cb.R, t),
		G: mixChannel(ca.G, cb.G, t),
		B: mixChannel(ca.B, cb.B, t),
	})
}

func mixChannel(a, b uint8, t float64) uint8 {
	v := math.Round(Lerp(float64(a), float64(b), t))
	return uint8(Clamp(v, 0, 255))
}
