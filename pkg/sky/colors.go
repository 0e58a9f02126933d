package sky

import (
	"fmt"

	"github.com/chrissnell/skyalmanac/pkg/colormix"
)

// Glow is the soft highlight composited over the sky around the sun.
type Glow struct {
	Center  colormix.Percent `json:"center"`
	Opacity float64          `json:"opacity"`
	Color   string           `json:"color"`
}

// CSS renders the glow layer, or "" when it is fully transparent.
func (g Glow) CSS() string {
	if g.Opacity <= 0 {
		return ""
	}
	c := colormix.HexToRGB(g.Color)
	rgba := func(a float64) string {
		return fmt.Sprintf("rgba(%d,%d,%d,%.3f)", c.R, c.G, c.B, a)
	}
	return fmt.Sprintf("radial-gradient(circle at %.1f%% %.1f%%, %s 0%%, %s 10%%, rgba(%d,%d,%d,0) 22%%)",
		g.Center.X, g.Center.Y, rgba(0.45*g.Opacity), rgba(0.25*g.Opacity), c.R, c.G, c.B)
}

// SkyGradient is the sky background plus its optional glow layer.
type SkyGradient struct {
	Base colormix.Gradient `json:"base"`
	Glow Glow              `json:"glow"`
}

// CSS renders the layered background, glow first.
func (s SkyGradient) CSS() string {
	if g := s.Glow.CSS(); g != "" {
		return g + ", " + s.Base.CSS()
	}
	return s.Base.CSS()
}

// blendStops mixes the palette stops for a phase.
func blendStops(p GradientPalette, ph Phase) colormix.Gradient {
	from, to, t := ph.Segment()
	a, b := p.at(from), p.at(to)
	return colormix.MixGradient(a.Top, a.Bottom, b.Top, b.Bottom, t)
}

func blendMountain(p MountainPalette, ph Phase) MountainColors {
	from, to, t := ph.Segment()
	a, b := p.at(from), p.at(to)
	return MountainColors{
		Top:    colormix.MixColor(a.Top, b.Top, t),
		Bottom: colormix.MixColor(a.Bottom, b.Bottom, t),
		Shade:  colormix.MixColor(a.Shade, b.Shade, t),
	}
}

// ramp is the glow weight at signed offset d from an event: rising over
// leadIn minutes before it, held through hold minutes after it, then fading
// over fade minutes.
func ramp(d, leadIn, hold, fade int) float64 {
	switch {
	case d < -leadIn:
		return 0
	case d < 0:
		return float64(d+leadIn) / float64(leadIn)
	case d <= hold:
		return 1
	case d < hold+fade:
		return 1 - float64(d-hold)/float64(fade)
	default:
		return 0
	}
}
