package sky

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestSmoothstep(t *testing.T) {
	tests := []struct {
		p, expected float64
	}{
		{-1, 0},
		{0, 0},
		{0.5, 0.5},
		{1, 1},
		{2, 1},
	}

	for _, tt := range tests {
		if got := Smoothstep(tt.p); got != tt.expected {
			t.Errorf("Smoothstep(%v) = %v, expected %v", tt.p, got, tt.expected)
		}
	}
}

func TestPlanSweep(t *testing.T) {
	cfg := DefaultConfig().Sweep
	tests := []struct {
		name     string
		day      DayAstronomy
		expected Sweep
		ok       bool
	}{
		{
			name:     "moon rises by day",
			day:      DayAstronomy{Sunset: At(1080), Moonrise: At(600)},
			expected: Sweep{Start: 570, Span: 1545, Duration: 10 * time.Second},
			ok:       true,
		},
		{
			name:     "moon rises after sunset",
			day:      DayAstronomy{Sunset: At(1080), Moonrise: At(1200)},
			expected: Sweep{Start: 1170, Span: 1710, Duration: 10 * time.Second},
			ok:       true,
		},
		{
			name:     "moon rises just after midnight",
			day:      DayAstronomy{Sunset: At(1080), Moonrise: At(10)},
			expected: Sweep{Start: -20, Span: 1545, Duration: 10 * time.Second},
			ok:       true,
		},
		{
			name: "no moonrise",
			day:  DayAstronomy{Sunset: At(1080), Moonset: At(600)},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := PlanSweep(tt.day, cfg)
			if ok != tt.ok || got != tt.expected {
				t.Errorf("PlanSweep = %+v, %v, expected %+v, %v", got, ok, tt.expected, tt.ok)
			}
		})
	}
}

func TestSweepSample(t *testing.T) {
	s := Sweep{Start: 570, Span: 1545, Duration: 10 * time.Second}

	if m, done := s.Sample(0); m != 570 || done {
		t.Errorf("Sample(0) = %d, %v", m, done)
	}
	if m, done := s.Sample(5 * time.Second); m != Wrap(570+1545/2+1) || done {
		t.Errorf("Sample(5s) = %d, %v", m, done)
	}
	if m, done := s.Sample(10 * time.Second); m != Wrap(570+1545) || !done {
		t.Errorf("Sample(10s) = %d, %v, expected %d, true", m, done, Wrap(570+1545))
	}
	if m, done := s.Sample(time.Minute); m != Wrap(570+1545) || !done {
		t.Errorf("Sample(1m) = %d, %v", m, done)
	}

	last := s.Position(0)
	for e := time.Duration(0); e <= 11*time.Second; e += 37 * time.Millisecond {
		p := s.Position(e)
		if p < last {
			t.Fatalf("position went back at %v: %v < %v", e, p, last)
		}
		last = p
	}
}

func TestSweepRunCompletes(t *testing.T) {
	s := Sweep{Start: 0, Span: 100, Duration: 30 * time.Millisecond}

	var got []int
	err := s.Run(context.Background(), time.Millisecond, func(m int) {
		got = append(got, m)
	})
	if err != nil {
		t.Fatalf("Run returned %v", err)
	}
	if len(got) < 2 {
		t.Fatalf("got %d frames", len(got))
	}
	if got[0] != 0 || got[len(got)-1] != 100 {
		t.Errorf("frames run from %d to %d, expected 0 to 100", got[0], got[len(got)-1])
	}
}

func TestSweepRunCancel(t *testing.T) {
	s := Sweep{Start: 0, Span: 1440, Duration: time.Hour}
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	calls := 0
	err := s.Run(ctx, time.Millisecond, func(int) {
		calls++
		if calls == 3 {
			cancel()
		}
	})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Run returned %v, expected context.Canceled", err)
	}
	if calls != 3 {
		t.Errorf("fn called %d times, expected no calls after cancel", calls)
	}
}

func TestSweepRunAlreadyCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	called := false
	err := Sweep{Span: 10, Duration: time.Second}.Run(ctx, 0, func(int) { called = true })
	if !errors.Is(err, context.Canceled) || called {
		t.Errorf("Run = %v, called = %v", err, called)
	}
}
