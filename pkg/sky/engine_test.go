package sky

import (
	"testing"
	"time"

	"github.com/chrissnell/skyalmanac/pkg/colormix"
	"github.com/chrissnell/skyalmanac/pkg/lunar"
)

func equinox() DayAstronomy {
	return DayAstronomy{
		Sunrise:      At(360),
		Sunset:       At(1080),
		Moonrise:     At(600),
		Moonset:      At(1300),
		HebrewDay:    9,
		Illumination: 0.62,
		Waxing:       true,
	}
}

func TestEngineIdempotent(t *testing.T) {
	e := NewEngine(DefaultConfig())
	v := Viewport{Width: 1000, Height: 800}
	day := equinox()

	for m := 0; m < MinutesPerDay; m += 5 {
		a, b := e.Sample(m, day, v), e.Sample(m, day, v)
		if a != b {
			t.Fatalf("minute %d: samples differ: %+v vs %+v", m, a, b)
		}
		if a.Sky.CSS() != b.Sky.CSS() || a.Sea.CSS() != b.Sea.CSS() {
			t.Fatalf("minute %d: CSS differs", m)
		}
	}
}

func TestEngineSkyKeyframes(t *testing.T) {
	e := NewEngine(DefaultConfig())
	v := Viewport{Width: 1000, Height: 800}
	day := equinox()

	night := e.Sky(0, day, v)
	if night.Base != colormix.LinearGradient("#0f1025", "#000000") {
		t.Errorf("midnight sky = %+v", night.Base)
	}
	if night.Glow.Opacity != 0 {
		t.Errorf("midnight glow opacity = %v", night.Glow.Opacity)
	}
	if got := night.CSS(); got != "linear-gradient(180deg, #0f1025, #000000)" {
		t.Errorf("midnight CSS = %q", got)
	}

	noon := e.Sky(720, day, v)
	if noon.Base != colormix.LinearGradient("#a6d8ff", "#e9f6ff") {
		t.Errorf("noon sky = %+v", noon.Base)
	}

	dawn := e.Sky(360, day, v)
	if dawn.Base.Kind != colormix.Radial {
		t.Errorf("sunrise sky kind = %v, expected radial", dawn.Base.Kind)
	}
	if dawn.Base.Center != (colormix.Percent{X: 5, Y: 85}) {
		t.Errorf("sunrise sky center = %+v, expected the east horizon", dawn.Base.Center)
	}
}

func TestEngineGlow(t *testing.T) {
	e := NewEngine(DefaultConfig())
	v := Viewport{Width: 1000, Height: 800}
	day := equinox()

	tests := []struct {
		minutes int
		opacity float64
		center  colormix.Percent
	}{
		{320, 0, colormix.Percent{X: 5, Y: 85}},
		{345, 0.5, colormix.Percent{X: 5, Y: 85}},
		{360, 1, colormix.Percent{X: 5, Y: 85}},
		{390, 1, colormix.Percent{X: 8.75, Y: 85 - 56.25*0.13052619222005157}},
		{405, 0.5, colormix.Percent{X: 10.625, Y: 85 - 56.25*0.19509032201612825}},
		{1080, 1, colormix.Percent{X: 95, Y: 85}},
		{1125, 0.5, colormix.Percent{X: 95, Y: 85}},
		{1200, 0, colormix.Percent{X: 95, Y: 85}},
	}

	for _, tt := range tests {
		g := e.Glow(tt.minutes, day, v)
		if !approx(g.Opacity, tt.opacity) {
			t.Errorf("minute %d: opacity %v, expected %v", tt.minutes, g.Opacity, tt.opacity)
		}
		if !approx(g.Center.X, tt.center.X) || !approx(g.Center.Y, tt.center.Y) {
			t.Errorf("minute %d: center %+v, expected %+v", tt.minutes, g.Center, tt.center)
		}
	}
}

func TestGlowCSS(t *testing.T) {
	g := Glow{Center: colormix.Percent{X: 5, Y: 85}, Opacity: 1, Color: "#ffb36b"}
	expected := "radial-gradient(circle at 5.0% 85.0%, rgba(255,179,107,0.450) 0%, rgba(255,179,107,0.250) 10%, rgba(255,179,107,0) 22%)"
	if got := g.CSS(); got != expected {
		t.Errorf("CSS = %q, expected %q", got, expected)
	}

	g.Opacity = 0
	if got := g.CSS(); got != "" {
		t.Errorf("transparent glow CSS = %q, expected empty", got)
	}
}

func TestRamp(t *testing.T) {
	tests := []struct {
		d, leadIn, hold, fade int
		expected              float64
	}{
		{-31, 30, 30, 30, 0},
		{-30, 30, 30, 30, 0},
		{-15, 30, 30, 30, 0.5},
		{0, 30, 30, 30, 1},
		{30, 30, 30, 30, 1},
		{45, 30, 30, 30, 0.5},
		{60, 30, 30, 30, 0},
		{-1, 0, 0, 0, 0},
		{0, 0, 0, 0, 1},
		{1, 0, 0, 0, 0},
	}

	for _, tt := range tests {
		if got := ramp(tt.d, tt.leadIn, tt.hold, tt.fade); got != tt.expected {
			t.Errorf("ramp(%d, %d, %d, %d) = %v, expected %v", tt.d, tt.leadIn, tt.hold, tt.fade, got, tt.expected)
		}
	}
}

func TestSeaAndMountainLag(t *testing.T) {
	cfg := DefaultConfig()
	e := NewEngine(cfg)
	day := equinox()

	for m := 0; m < MinutesPerDay; m += 3 {
		lagged := PhaseAt(m-cfg.Lag, day.Sunrise, day.Sunset, cfg.Windows)
		if got, want := e.Sea(m, day), blendStops(cfg.Sea, lagged); got != want {
			t.Fatalf("minute %d: sea %+v, expected %+v", m, got, want)
		}
		if got, want := e.Mountain(m, day), blendMountain(cfg.Mountain, lagged); got != want {
			t.Fatalf("minute %d: mountain %+v, expected %+v", m, got, want)
		}
	}

	// The sky has started to brighten but the sea is still dark.
	if e.Phase(330, day).State != DawnTransition {
		t.Fatal("sky should be in dawn at 05:30")
	}
	if got := e.Sea(330, day); got != colormix.LinearGradient("#1c3550", "#0e2744") {
		t.Errorf("sea at 05:30 = %+v, expected night", got)
	}
	if got := e.Mountain(330, day); got != cfg.Mountain.Night {
		t.Errorf("mountain at 05:30 = %+v, expected night", got)
	}
}

func TestEnginePermanentNight(t *testing.T) {
	e := NewEngine(DefaultConfig())
	v := Viewport{Width: 1000, Height: 800}
	day := DayAstronomy{HebrewDay: 3}

	for m := 0; m < MinutesPerDay; m += 11 {
		s := e.Sample(m, day, v)
		if s.Phase.State != Night || s.Sky.Glow.Opacity != 0 {
			t.Fatalf("minute %d: %+v, expected plain night", m, s)
		}
		if s.Mountain != e.Config().Mountain.Night {
			t.Fatalf("minute %d: mountain %+v", m, s.Mountain)
		}
	}
}

func TestEngineFrame(t *testing.T) {
	e := NewEngine(DefaultConfig())
	v := Viewport{Width: 1000, Height: 800}
	day := equinox()

	f := e.Frame(720, day, v)
	if f.Time != "12:00" {
		t.Errorf("time = %q", f.Time)
	}
	if f.Sun == nil || f.Moon == nil {
		t.Fatalf("sun %v moon %v, expected both up at noon", f.Sun, f.Moon)
	}
	if f.Silhouette.Kind != lunar.Partial || !f.Silhouette.Waxing {
		t.Errorf("silhouette = %+v", f.Silhouette)
	}
	if f.Stage != lunar.StageSentence(9) {
		t.Errorf("stage = %q", f.Stage)
	}
	if f.SkyCSS != f.Sample.Sky.CSS() {
		t.Error("sky CSS does not match the sample")
	}

	night := e.Frame(1400, day, v)
	if night.Sun != nil || night.Moon != nil {
		t.Errorf("sun %v moon %v, expected neither up at 23:20", night.Sun, night.Moon)
	}
}

func TestEngineFrameFirstOfMonth(t *testing.T) {
	e := NewEngine(DefaultConfig())
	day := equinox()
	day.HebrewDay = 1
	day.Illumination = 0.001
	day.Waxing = false

	f := e.Frame(720, day, Viewport{Width: 1000, Height: 800})
	if f.Silhouette.Kind != lunar.Partial {
		t.Errorf("kind = %v, expected a visible sliver", f.Silhouette.Kind)
	}
	if f.Silhouette.Illumination != MinMoonDisplay {
		t.Errorf("illumination = %v, expected %v", f.Silhouette.Illumination, MinMoonDisplay)
	}
	if !f.Silhouette.Waxing {
		t.Error("first of the month should be drawn waxing")
	}
	if !f.Appearance.RightLit {
		t.Error("first of the month should be lit on the right")
	}
}

func TestEngineFrameNearFullMoon(t *testing.T) {
	e := NewEngine(DefaultConfig())
	day := equinox()
	day.HebrewDay = 15
	day.Illumination = 0.995

	s := e.Frame(1300, day, Viewport{Width: 1000, Height: 800}).Silhouette
	if s.Kind != lunar.Partial || !s.Gibbous {
		t.Fatalf("silhouette kind %v gibbous %v", s.Kind, s.Gibbous)
	}
	r := e.Config().Moon.R
	if dark := r - s.RX; dark > 0.5 {
		t.Errorf("dark sliver %.2f of R=%v, expected under 0.5", dark, r)
	}
	if len(s.Craters) == 0 {
		t.Error("lit disc has no crater texture")
	}
}

func TestEngineFrameObserverTilt(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Moon.ObserverTilt = true
	loc := time.FixedZone("IST", 2*3600)
	observed := NewEngine(cfg).WithObserver(Observer{Latitude: 32.0853, Longitude: 34.7818, Location: loc})

	day := equinox()
	day.Date = time.Date(2023, 1, 28, 0, 0, 0, 0, time.UTC)
	v := Viewport{Width: 1000, Height: 800}

	f := observed.Frame(1080, day, v)
	if f.Orientation == nil {
		t.Fatal("no orientation with observer tilt enabled")
	}
	want := lunar.CrescentAngleAt(time.Date(2023, 1, 28, 18, 0, 0, 0, loc), 32.0853, 34.7818)
	if *f.Orientation != want {
		t.Errorf("orientation = %+v, expected %+v", *f.Orientation, want)
	}
	if f.Silhouette.Transform.MirrorX || f.Silhouette.Transform.RotateDeg != want.IconRotation(true) {
		t.Errorf("transform = %+v", f.Silhouette.Transform)
	}

	tests := []struct {
		name string
		e    Engine
		day  DayAstronomy
	}{
		{"option off", NewEngine(DefaultConfig()).WithObserver(Observer{Latitude: 32}), day},
		{"no observer", NewEngine(cfg), day},
		{"unknown date", observed, equinox()},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := tt.e.Frame(1080, tt.day, v)
			if f.Orientation != nil {
				t.Error("unexpected orientation")
			}
			if f.Silhouette.Transform.RotateDeg != cfg.Moon.TiltDeg {
				t.Errorf("rotation = %v, expected the fixed tilt", f.Silhouette.Transform.RotateDeg)
			}
		})
	}
}
