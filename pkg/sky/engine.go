// Package sky maps a minute of the day, with that day's sunrise, sunset,
// moonrise and moonset, onto what the almanac's sky looks like: the lighting
// phase, the sky, sea and mountain colors, the sun glow, and where the sun
// and moon sit on their arc.
//
// Everything here is a pure function of its arguments. An Engine only
// carries its tuning and is safe for concurrent use.
package sky

import (
	"math"
	"time"

	"github.com/chrissnell/skyalmanac/pkg/colormix"
	"github.com/chrissnell/skyalmanac/pkg/lunar"
)

// MinMoonDisplay keeps a nearly new Moon visible on screen.
const MinMoonDisplay = 0.03

// Engine evaluates the sky for a Config.
type Engine struct {
	cfg      Config
	observer *Observer
}

// Observer is where the sky is seen from. It is only needed when the moon
// is oriented for the observer.
type Observer struct {
	Latitude  float64
	Longitude float64
	Location  *time.Location
}

// WithObserver returns a copy of e that orients the moon for o when the
// moon tuning asks for it.
func (e Engine) WithObserver(o Observer) Engine {
	if o.Location == nil {
		o.Location = time.UTC
	}
	e.observer = &o
	return e
}

// NewEngine returns an Engine for cfg. Negative durations are treated as 0.
func NewEngine(cfg Config) Engine {
	return Engine{cfg: cfg.normalized()}
}

// Config returns the engine's tuning.
func (e Engine) Config() Config {
	return e.cfg
}

// Phase is the sky's lighting phase at minutes.
func (e Engine) Phase(minutes int, day DayAstronomy) Phase {
	return PhaseAt(minutes, day.Sunrise, day.Sunset, e.cfg.Windows)
}

// Arc places a body on the arc. See ArcConfig.Position.
func (e Engine) Arc(minutes int, rise, set TimeOfDay, v Viewport) (Point, bool) {
	return e.cfg.Arc.Position(minutes, rise, set, v)
}

// Glow returns the sun glow at minutes. Its center follows the sun along the
// arc; while the sun is down it sits at whichever of the sunrise and sunset
// points is closer in time.
func (e Engine) Glow(minutes int, day DayAstronomy, v Viewport) Glow {
	g := Glow{Color: e.cfg.Glow.Color}
	if !day.HasDaylight() {
		return g
	}
	rise, set := day.Sunrise.Minutes, day.Sunset.Minutes
	dRise, dSet := signedDistance(minutes, rise), signedDistance(minutes, set)

	gc, w := e.cfg.Glow, e.cfg.Windows
	g.Opacity = math.Max(
		ramp(dRise, gc.DawnLeadIn, w.DawnLag, gc.FadeOut),
		ramp(dSet, gc.DuskLeadIn, w.DuskLag, gc.FadeOut),
	)

	arc := e.cfg.Arc
	if t, ok := ArcProgress(minutes, day.Sunrise, day.Sunset); ok {
		g.Center = arc.percentAt(t, v)
	} else if abs(dRise) <= abs(dSet) {
		g.Center = colormix.Percent{X: arc.East, Y: arc.Baseline}
	} else {
		g.Center = colormix.Percent{X: arc.West, Y: arc.Baseline}
	}
	return g
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// Sky returns the sky background at minutes. Night and day are vertical
// gradients; during dawn and dusk the gradient turns radial around the glow
// center.
func (e Engine) Sky(minutes int, day DayAstronomy, v Viewport) SkyGradient {
	ph := e.Phase(minutes, day)
	glow := e.Glow(minutes, day, v)
	base := blendStops(e.cfg.Sky, ph)
	if ph.State == DawnTransition || ph.State == DuskTransition {
		base = base.Radial(glow.Center)
	}
	return SkyGradient{Base: base, Glow: glow}
}

// Sea returns the sea gradient, which follows the sky Lag minutes late.
func (e Engine) Sea(minutes int, day DayAstronomy) colormix.Gradient {
	return blendStops(e.cfg.Sea, e.Phase(minutes-e.cfg.Lag, day))
}

// Mountain returns the mountain colors, lagged like the sea.
func (e Engine) Mountain(minutes int, day DayAstronomy) MountainColors {
	return blendMountain(e.cfg.Mountain, e.Phase(minutes-e.cfg.Lag, day))
}

// PhaseSample is the lighting of the whole scene at one minute.
type PhaseSample struct {
	Phase    Phase             `json:"phase"`
	Sky      SkyGradient       `json:"sky"`
	Sea      colormix.Gradient `json:"sea"`
	Mountain MountainColors    `json:"mountain"`
}

// Sample evaluates the phase and every color at minutes.
func (e Engine) Sample(minutes int, day DayAstronomy, v Viewport) PhaseSample {
	return PhaseSample{
		Phase:    e.Phase(minutes, day),
		Sky:      e.Sky(minutes, day, v),
		Sea:      e.Sea(minutes, day),
		Mountain: e.Mountain(minutes, day),
	}
}

// Frame is everything needed to draw the scene at one minute.
type Frame struct {
	Minutes    int              `json:"minutes"`
	Time       string           `json:"time"`
	Sample     PhaseSample      `json:"sample"`
	SkyCSS     string           `json:"sky_css"`
	SeaCSS     string           `json:"sea_css"`
	Sun        *Point           `json:"sun,omitempty"`
	Moon       *Point           `json:"moon,omitempty"`
	Appearance lunar.Appearance `json:"appearance"`
	Silhouette lunar.Silhouette `json:"silhouette"`
	// Orientation is set when the moon is oriented for an observer.
	Orientation *lunar.CrescentAngle `json:"orientation,omitempty"`
	Stage       string               `json:"stage"`
}

// Frame assembles one drawable frame. The Moon is drawn from the day's
// measured illumination, never below MinMoonDisplay, and always waxing on
// the first of the month.
func (e Engine) Frame(minutes int, day DayAstronomy, v Viewport) Frame {
	day = day.Sanitize()
	minutes = Wrap(minutes)

	s := e.Sample(minutes, day, v)
	f := Frame{
		Minutes:    minutes,
		Time:       At(minutes).String(),
		Sample:     s,
		SkyCSS:     s.Sky.CSS(),
		SeaCSS:     s.Sea.CSS(),
		Appearance: lunar.FromHebrewDay(day.HebrewDay),
		Stage:      lunar.StageSentence(day.HebrewDay),
	}
	if p, ok := e.Arc(minutes, day.Sunrise, day.Sunset, v); ok {
		f.Sun = &p
	}
	if p, ok := e.Arc(minutes, day.Moonrise, day.Moonset, v); ok {
		f.Moon = &p
	}

	waxing := day.Waxing || day.HebrewDay == 1
	illumination := math.Max(day.Illumination, MinMoonDisplay)
	if at, ok := e.instant(minutes, day); ok {
		a := lunar.CrescentAngleAt(at, e.observer.Latitude, e.observer.Longitude)
		f.Orientation = &a
		f.Silhouette = lunar.NewObservedSilhouette(illumination, waxing, day.HebrewDay, a, e.cfg.Moon)
	} else {
		f.Silhouette = lunar.NewSilhouette(illumination, waxing, day.HebrewDay, e.cfg.Moon)
	}
	return f
}

// instant is the observer's local time at minutes on day, when the moon is
// to be oriented for the observer and the date is known.
func (e Engine) instant(minutes int, day DayAstronomy) (time.Time, bool) {
	if !e.cfg.Moon.ObserverTilt || e.observer == nil || day.Date.IsZero() {
		return time.Time{}, false
	}
	y, m, d := day.Date.Date()
	return time.Date(y, m, d, minutes/60, minutes%60, 0, 0, e.observer.Location), true
}

// MoonStageSentence is the caption for a day of the Hebrew month.
func MoonStageSentence(hebrewDay int) string {
	return lunar.StageSentence(hebrewDay)
}
