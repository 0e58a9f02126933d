// Package generator computes almanac year data for a reference location.
package generator

import (
	"context"
	"fmt"
	"math"
	"runtime"
	"time"

	"github.com/chrissnell/skyalmanac/internal/log"
	"github.com/chrissnell/skyalmanac/internal/store"
	"github.com/chrissnell/skyalmanac/pkg/almanac"
	"github.com/chrissnell/skyalmanac/pkg/config"
	"github.com/chrissnell/skyalmanac/pkg/gematria"
	"github.com/chrissnell/skyalmanac/pkg/lunar"
	"github.com/hebcal/hdate"
	"golang.org/x/sync/errgroup"
)

// Generator builds day records and writes them a year at a time.
type Generator struct {
	loc     *time.Location
	eph     Ephemeris
	store   store.Store
	workers int
}

// New creates a generator for the configured location and ephemeris.
// Workers defaults to the number of CPUs when zero.
func New(location config.LocationData, ephemeris string, st store.Store, workers int) (*Generator, error) {
	loc, err := location.Location()
	if err != nil {
		return nil, fmt.Errorf("failed to load timezone: %w", err)
	}
	eph, err := NewEphemeris(ephemeris, location.Latitude, location.Longitude)
	if err != nil {
		return nil, err
	}
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	return &Generator{loc: loc, eph: eph, store: st, workers: workers}, nil
}

// Day computes the record for the civil date y-m-d at the generator's
// location.
func (g *Generator) Day(y int, m time.Month, d int) almanac.DayRecord {
	day := time.Date(y, m, d, 0, 0, 0, 0, g.loc)

	hd := hdate.FromGregorian(y, m, d)
	month := hd.MonthName("en")

	sunrise, sunset := g.eph.Sun(day)
	moonrise, moonset := g.eph.Moon(day)
	phase := lunar.Calculate(localNoon(day))

	return almanac.DayRecord{
		Gregorian:   day.Format(almanac.DateLayout),
		HebrewDate:  gematria.Label(hd.Day(), month, hd.Year()),
		HebrewDay:   hd.Day(),
		HebrewMonth: gematria.MonthName(month),
		HebrewYear:  gematria.YearLetters(hd.Year()),
		Moon: almanac.MoonInfo{
			Illumination: round(math.Max(0, math.Min(1, phase.Illumination)), 3),
			Age:          round(phase.AgeDays, 2),
			Waxing:       phase.IsWaxing,
		},
		Sun:       almanac.SunTimes{Sunrise: almanac.Clock(sunrise), Sunset: almanac.Clock(sunset)},
		MoonTimes: almanac.MoonTimes{Moonrise: almanac.Clock(moonrise), Moonset: almanac.Clock(moonset)},
	}
}

// Range computes every date in [start, end) that falls in year. Only the
// calendar dates of start and end are used.
func (g *Generator) Range(year int, start, end time.Time) almanac.YearData {
	from := maxDate(civil(start), time.Date(year, 1, 1, 0, 0, 0, 0, time.UTC))
	to := minDate(civil(end), time.Date(year+1, 1, 1, 0, 0, 0, 0, time.UTC))

	y := almanac.YearData{}
	for d := from; d.Before(to); d = d.AddDate(0, 0, 1) {
		r := g.Day(d.Year(), d.Month(), d.Day())
		y[r.Gregorian] = r
	}
	return y
}

// Run generates the years overlapping [start, end) in parallel and writes
// each through the store. The first failure cancels the remaining years.
func (g *Generator) Run(ctx context.Context, start, end time.Time) error {
	start, end = civil(start), civil(end)
	if !end.After(start) {
		return fmt.Errorf("empty range %s..%s", start.Format(almanac.DateLayout), end.Format(almanac.DateLayout))
	}
	lastYear := end.AddDate(0, 0, -1).Year()

	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(g.workers)

	for year := start.Year(); year <= lastYear; year++ {
		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			began := time.Now()
			data := g.Range(year, start, end)
			if err := g.store.WriteYear(ctx, year, data); err != nil {
				return fmt.Errorf("failed to write %d: %w", year, err)
			}

			s := Summarize(data)
			log.Infow("generated year",
				"year", year,
				"days", s.Days,
				"daylight_mean_min", round(s.DaylightMean, 1),
				"daylight_stddev_min", round(s.DaylightStdDev, 1),
				"daylight_min", s.DaylightMin,
				"daylight_max", s.DaylightMax,
				"illumination_mean", round(s.IlluminationMean, 3),
				"polar_days", s.NoDaylight,
				"elapsed", time.Since(began),
			)
			return nil
		})
	}

	return eg.Wait()
}

func round(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}

// civil strips t to its calendar date at UTC midnight.
func civil(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func maxDate(a, b time.Time) time.Time {
	if a.After(b) {
		return a
	}
	return b
}

func minDate(a, b time.Time) time.Time {
	if a.Before(b) {
		return a
	}
	return b
}
