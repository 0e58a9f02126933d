package sky

import (
	"context"
	"math"
	"time"

	"github.com/chrissnell/skyalmanac/pkg/colormix"
)

// DefaultTick is the Run interval used when none is given, about one
// display frame.
const DefaultTick = time.Second / 60

// Smoothstep eases p in [0,1] with zero slope at both ends.
func Smoothstep(p float64) float64 {
	p = colormix.Clamp(p, 0, 1)
	return p * p * (3 - 2*p)
}

// Sweep animates the time cursor from Start across Span minutes over
// Duration of wall-clock time. Start may be negative and Start+Span may pass
// 1440; Sample wraps the result onto the clock.
type Sweep struct {
	Start    int           `json:"start"`
	Span     int           `json:"span"`
	Duration time.Duration `json:"duration"`
}

// Position is the unwrapped cursor position after elapsed time. It never
// decreases as elapsed grows and reaches Start+Span at Duration.
func (s Sweep) Position(elapsed time.Duration) float64 {
	p := 1.0
	if s.Duration > 0 {
		p = float64(elapsed) / float64(s.Duration)
	}
	return float64(s.Start) + Smoothstep(p)*float64(s.Span)
}

// Sample returns the cursor minute after elapsed time and whether the sweep
// has finished.
func (s Sweep) Sample(elapsed time.Duration) (minutes int, done bool) {
	done = s.Duration <= 0 || elapsed >= s.Duration
	return Wrap(int(math.Round(s.Position(elapsed)))), done
}

// PlanSweep builds the sweep shown after a date is entered. It starts a
// little before moonrise; when the Moon rises after sunset it runs on to the
// following midnight, otherwise it covers a full day plus the configured
// tail. ok is false when the Moon does not rise that day.
func PlanSweep(day DayAstronomy, cfg SweepConfig) (Sweep, bool) {
	if !day.Moonrise.Valid {
		return Sweep{}, false
	}
	moonrise := day.Moonrise.Minutes
	start := moonrise - nonNegative(cfg.StartBefore)

	span := MinutesPerDay + nonNegative(cfg.Tail)
	if day.Sunset.Valid && moonrise > day.Sunset.Minutes {
		span = 2*MinutesPerDay - Wrap(start)
	}
	return Sweep{Start: start, Span: span, Duration: cfg.Duration}, true
}

// Run drives the sweep, calling fn with the cursor minute on every tick until
// the sweep finishes or ctx is done. fn is never called once cancellation
// has been observed. Run returns ctx.Err() when cancelled and nil when the
// sweep completes.
func (s Sweep) Run(ctx context.Context, tick time.Duration, fn func(minutes int)) error {
	if tick <= 0 {
		tick = DefaultTick
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	begin := time.Now()
	m, done := s.Sample(0)
	fn(m)
	if done {
		return nil
	}

	ticker := time.NewTicker(tick)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case now := <-ticker.C:
			if err := ctx.Err(); err != nil {
				return err
			}
			m, done := s.Sample(now.Sub(begin))
			fn(m)
			if done {
				return nil
			}
		}
	}
}
