package generator

import (
	"fmt"
	"time"

	"github.com/chrissnell/skyalmanac/pkg/config"
	"github.com/chrissnell/skyalmanac/pkg/solar"
	"github.com/sixdouglas/suncalc"
)

// Ephemeris supplies rise and set instants for one local calendar day. A
// zero time means the event does not happen that day.
type Ephemeris interface {
	Sun(day time.Time) (rise, set time.Time)
	Moon(day time.Time) (rise, set time.Time)
}

// NewEphemeris returns the named ephemeris for an observer.
func NewEphemeris(name string, lat, lon float64) (Ephemeris, error) {
	sc := suncalcEphemeris{lat: lat, lon: lon}
	switch name {
	case config.EphemerisSuncalc, "":
		return sc, nil
	case config.EphemerisApprox:
		return approxEphemeris{suncalcEphemeris: sc}, nil
	default:
		return nil, fmt.Errorf("unknown ephemeris %q", name)
	}
}

type suncalcEphemeris struct {
	lat, lon float64
}

// Sun evaluates at local noon so the result belongs to the civil day.
func (e suncalcEphemeris) Sun(day time.Time) (rise, set time.Time) {
	noon := localNoon(day)
	times := suncalc.GetTimes(noon, e.lat, e.lon)
	return within(times["sunrise"].Value, noon), within(times["sunset"].Value, noon)
}

func (e suncalcEphemeris) Moon(day time.Time) (rise, set time.Time) {
	mt := suncalc.GetMoonTimes(localMidnight(day), e.lat, e.lon, false)
	return within(mt.Rise, localNoon(day)), within(mt.Set, localNoon(day))
}

// approxEphemeris takes the Sun from the declination and equation-of-time
// model in pkg/solar and the Moon from suncalc.
type approxEphemeris struct {
	suncalcEphemeris
}

func (e approxEphemeris) Sun(day time.Time) (rise, set time.Time) {
	t := solar.SunTimes(localNoon(day), e.lat, e.lon)
	if t.Condition != solar.Normal {
		return time.Time{}, time.Time{}
	}
	return t.Sunrise, t.Sunset
}

func localMidnight(day time.Time) time.Time {
	y, m, d := day.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, day.Location())
}

func localNoon(day time.Time) time.Time {
	y, m, d := day.Date()
	return time.Date(y, m, d, 12, 0, 0, 0, day.Location())
}

// within drops results that fall off the civil day, which is how suncalc
// reports polar days and nights, and converts the rest to noon's zone.
func within(t, noon time.Time) time.Time {
	if t.IsZero() {
		return time.Time{}
	}
	if d := t.Sub(noon); d < -13*time.Hour || d > 13*time.Hour {
		return time.Time{}
	}
	return t.In(noon.Location())
}
