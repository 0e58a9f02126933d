package sky

import (
	"math"

	"github.com/chrissnell/skyalmanac/pkg/colormix"
)

// Viewport is the size of the drawing surface in pixels.
type Viewport struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

func (v Viewport) valid() bool {
	return v.Width > 0 && v.Height > 0 && !math.IsInf(v.Width, 0) && !math.IsInf(v.Height, 0)
}

// Point is a pixel position inside a Viewport.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// ArcProgress returns how far along its arc a body is at minutes, from 0 at
// rise to exactly 1 at set. The visible interval includes both ends and
// wraps past midnight when set is before rise. ok is false when the body is
// not up or either time is missing.
func ArcProgress(minutes int, rise, set TimeOfDay) (t float64, ok bool) {
	if !rise.Valid || !set.Valid {
		return 0, false
	}
	r := Wrap(rise.Minutes)
	total := forward(r, set.Minutes)
	elapsed := forward(r, minutes)
	switch {
	case elapsed > total:
		return 0, false
	case elapsed == total:
		return 1, true
	default:
		return float64(elapsed) / float64(total), true
	}
}

// class picks the height scale and top clearance for an aspect ratio.
func (c ArcConfig) class(v Viewport) (scale, clearance float64) {
	ratio := v.Width / v.Height
	switch {
	case ratio < c.PortraitBelow:
		return c.PortraitScale, c.PortraitClearance
	case ratio >= c.LandscapeFrom:
		return c.LandscapeScale, c.LandscapeClearance
	default:
		return c.TabletScale, c.TabletClearance
	}
}

// HeightPercent is the arc's peak height above the baseline in percent of
// the viewport height. The base height is half the arc's pixel width, so the
// arc is close to a semicircle, then scaled per aspect class. The peak never
// rises above Baseline minus the top clearance.
func (c ArcConfig) HeightPercent(v Viewport) float64 {
	if !v.valid() {
		return 0
	}
	scale, clearance := c.class(v)
	widthPx := math.Abs(c.West-c.East) / 100 * v.Width
	h := widthPx / 2 * scale / v.Height * 100

	h = math.Max(c.MinHeight, h)
	h = math.Min(c.Baseline-clearance, h)
	return math.Max(0, h)
}

// percentAt is the position at progress t in viewport percent.
func (c ArcConfig) percentAt(t float64, v Viewport) colormix.Percent {
	t = colormix.Clamp(t, 0, 1)
	return colormix.Percent{
		X: colormix.Lerp(c.East, c.West, t),
		Y: c.Baseline - math.Sin(t*math.Pi)*c.HeightPercent(v),
	}
}

// Position places a body on the arc at minutes. It reports false when the
// body is not visible or the viewport is empty.
func (c ArcConfig) Position(minutes int, rise, set TimeOfDay, v Viewport) (Point, bool) {
	if !v.valid() {
		return Point{}, false
	}
	t, ok := ArcProgress(minutes, rise, set)
	if !ok {
		return Point{}, false
	}
	p := c.percentAt(t, v)
	return Point{X: p.X / 100 * v.Width, Y: p.Y / 100 * v.Height}, true
}
