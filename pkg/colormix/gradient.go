package colormix

import "fmt"

// GradientKind distinguishes the two gradient shapes the sky uses.
type GradientKind int

const (
	// Linear is a vertical top-to-bottom gradient.
	Linear GradientKind = iota
	// Radial is a circle centered on a point, Inner at the center and
	// Outer at the edge.
	Radial
)

// Percent is a position expressed in percent of the viewport.
type Percent struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Gradient is a two-stop gradient descriptor. For Linear gradients the stops
// are Top and Bottom; for Radial gradients Top is the outer stop and Bottom
// the inner stop, so cross-fading between the two kinds keeps the same pairs.
type Gradient struct {
	Kind   GradientKind `json:"kind"`
	Top    string       `json:"top"`
	Bottom string       `json:"bottom"`
	Center Percent      `json:"center"`
}

// LinearGradient returns a vertical gradient from top to bottom.
func LinearGradient(top, bottom string) Gradient {
	return Gradient{Kind: Linear, Top: top, Bottom: bottom}
}

// MixGradient cross-fades two linear gradients by mixing each stop
// independently.
func MixGradient(topA, botA, topB, botB string, t float64) Gradient {
	return LinearGradient(MixColor(topA, topB, t), MixColor(botA, botB, t))
}

// Radial converts g into a radial gradient centered at c.
func (g Gradient) Radial(c Percent) Gradient {
	g.Kind = Radial
	g.Center = c
	return g
}

// CSS renders the gradient as a CSS background image.
func (g Gradient) CSS() string {
	if g.Kind == Radial {
		return fmt.Sprintf("radial-gradient(circle at %.1f%% %.1f%%, %s, %s)", g.Center.X, g.Center.Y, g.Bottom, g.Top)
	}
	return fmt.Sprintf("linear-gradient(180deg, %s, %s)", g.Top, g.Bottom)
}
