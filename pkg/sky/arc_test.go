package sky

import (
	"math"
	"testing"
)

func approx(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestArcBounds(t *testing.T) {
	arc := DefaultConfig().Arc
	v := Viewport{Width: 1000, Height: 800}
	rise, set := At(360), At(1080)

	p, ok := arc.Position(360, rise, set, v)
	if !ok {
		t.Fatal("sun not visible at sunrise")
	}
	if !approx(p.X, 50) || !approx(p.Y, 680) {
		t.Errorf("sunrise position = %+v, expected east bound on the baseline", p)
	}

	p, ok = arc.Position(1080, rise, set, v)
	if !ok {
		t.Fatal("sun not visible at sunset")
	}
	if !approx(p.X, 950) {
		t.Errorf("sunset x = %v, expected west bound 950", p.X)
	}

	p, _ = arc.Position(720, rise, set, v)
	if !approx(p.X, 500) || !approx(p.Y, 230) {
		t.Errorf("noon position = %+v, expected {500 230}", p)
	}
}

func TestArcProgressExactAtSet(t *testing.T) {
	tests := []struct {
		rise, set int
	}{
		{360, 1080},
		{1200, 300},
		{7, 1433},
		{0, 1439},
	}

	for _, tt := range tests {
		got, ok := ArcProgress(tt.set, At(tt.rise), At(tt.set))
		if !ok || got != 1.0 {
			t.Errorf("ArcProgress at set %d (rise %d) = %v, %v, expected exactly 1", tt.set, tt.rise, got, ok)
		}
		got, ok = ArcProgress(tt.rise, At(tt.rise), At(tt.set))
		if !ok || got != 0 {
			t.Errorf("ArcProgress at rise %d = %v, %v, expected 0", tt.rise, got, ok)
		}
	}
}

func TestArcVisibility(t *testing.T) {
	arc := DefaultConfig().Arc
	v := Viewport{Width: 1280, Height: 720}

	tests := []struct {
		name      string
		rise, set int
		inside    func(m int) bool
	}{
		{"same day", 360, 1080, func(m int) bool { return m >= 360 && m <= 1080 }},
		{"past midnight", 1200, 300, func(m int) bool { return m >= 1200 || m <= 300 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for m := 0; m < MinutesPerDay; m++ {
				_, ok := arc.Position(m, At(tt.rise), At(tt.set), v)
				if ok != tt.inside(m) {
					t.Fatalf("minute %d: visible = %v, expected %v", m, ok, tt.inside(m))
				}
			}
		})
	}
}

func TestArcNotVisible(t *testing.T) {
	arc := DefaultConfig().Arc
	v := Viewport{Width: 1000, Height: 800}

	if _, ok := arc.Position(600, Never, At(1080), v); ok {
		t.Error("visible without a rise time")
	}
	if _, ok := arc.Position(600, At(360), Never, v); ok {
		t.Error("visible without a set time")
	}
	for _, bad := range []Viewport{{}, {Width: 100}, {Width: -5, Height: 100}, {Width: math.NaN(), Height: 100}} {
		if _, ok := arc.Position(600, At(360), At(1080), bad); ok {
			t.Errorf("visible in viewport %+v", bad)
		}
	}
}

func TestArcHeightPercent(t *testing.T) {
	arc := DefaultConfig().Arc
	tests := []struct {
		name     string
		v        Viewport
		expected float64
	}{
		{"portrait", Viewport{Width: 400, Height: 800}, 25.875},
		{"tablet", Viewport{Width: 1000, Height: 800}, 56.25},
		{"landscape capped by clearance", Viewport{Width: 1600, Height: 800}, 65},
		{"tall portrait floored", Viewport{Width: 200, Height: 1000}, 25},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := arc.HeightPercent(tt.v); !approx(got, tt.expected) {
				t.Errorf("HeightPercent = %v, expected %v", got, tt.expected)
			}
		})
	}
}

func TestArcPeakBelowChrome(t *testing.T) {
	arc := DefaultConfig().Arc
	for w := 200.0; w <= 4000; w += 150 {
		for h := 200.0; h <= 3000; h += 130 {
			v := Viewport{Width: w, Height: h}
			_, clearance := arc.class(v)
			p, ok := arc.Position(720, At(360), At(1080), v)
			if !ok {
				t.Fatalf("%vx%v: sun not visible at noon", w, h)
			}
			if p.Y < clearance/100*h-1e-9 {
				t.Fatalf("%vx%v: peak y %v above clearance %v%%", w, h, p.Y, clearance)
			}
		}
	}
}
