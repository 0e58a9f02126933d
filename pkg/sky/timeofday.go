package sky

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// MinutesPerDay is the length of the circular timeline.
const MinutesPerDay = 1440

// TimeOfDay is a local wall-clock time in minutes since midnight. The zero
// value is an event that does not occur that day.
type TimeOfDay struct {
	Minutes int
	Valid   bool
}

// At returns a valid TimeOfDay, wrapping m onto [0,1440).
func At(m int) TimeOfDay {
	return TimeOfDay{Minutes: Wrap(m), Valid: true}
}

// Never is the TimeOfDay of an event that does not occur.
var Never = TimeOfDay{}

// Wrap maps any minute count onto [0,1440).
func Wrap(m int) int {
	return ((m % MinutesPerDay) + MinutesPerDay) % MinutesPerDay
}

// ParseTimeOfDay parses "HH:MM". An empty string or "null" is Never.
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	s = strings.TrimSpace(s)
	if s == "" || s == "null" {
		return Never, nil
	}

	hh, mm, ok := strings.Cut(s, ":")
	if !ok {
		return Never, fmt.Errorf("time %q is not HH:MM", s)
	}
	h, err := strconv.Atoi(hh)
	if err != nil || h < 0 || h > 24 {
		return Never, fmt.Errorf("time %q has invalid hour", s)
	}
	m, err := strconv.Atoi(mm)
	if err != nil || m < 0 || m > 59 {
		return Never, fmt.Errorf("time %q has invalid minute", s)
	}
	return At(h*60 + m), nil
}

// String formats t as "HH:MM", or "" when t does not occur.
func (t TimeOfDay) String() string {
	if !t.Valid {
		return ""
	}
	m := Wrap(t.Minutes)
	return fmt.Sprintf("%02d:%02d", m/60, m%60)
}

// forward is the number of minutes from a to b going forward around the clock.
func forward(a, b int) int {
	return Wrap(b - a)
}

// signedDistance is the shortest signed offset from ref to m, in [-720,720).
func signedDistance(m, ref int) int {
	return Wrap(m-ref+MinutesPerDay/2) - MinutesPerDay/2
}

// DayAstronomy holds the rise and set times and the Hebrew moon data for one
// calendar date.
type DayAstronomy struct {
	// Date is the calendar day at UTC midnight, zero when unknown.
	Date              time.Time
	Sunrise, Sunset   TimeOfDay
	Moonrise, Moonset TimeOfDay
	HebrewDay         int
	Illumination      float64
	Waxing            bool
}

// Sanitize clamps the Hebrew day to [1,30] and the illumination to [0,1] and
// wraps the times onto the clock.
func (d DayAstronomy) Sanitize() DayAstronomy {
	for _, t := range []*TimeOfDay{&d.Sunrise, &d.Sunset, &d.Moonrise, &d.Moonset} {
		if t.Valid {
			t.Minutes = Wrap(t.Minutes)
		} else {
			*t = Never
		}
	}
	if d.HebrewDay < 1 {
		d.HebrewDay = 1
	} else if d.HebrewDay > 30 {
		d.HebrewDay = 30
	}
	if math.IsNaN(d.Illumination) || d.Illumination < 0 {
		d.Illumination = 0
	} else if d.Illumination > 1 {
		d.Illumination = 1
	}
	return d
}

// HasDaylight reports whether the day has a usable sunrise/sunset pair.
func (d DayAstronomy) HasDaylight() bool {
	return daylight(d.Sunrise, d.Sunset) > 0
}

// daylight is the length of the daylight interval, 0 when there is none.
func daylight(rise, set TimeOfDay) int {
	if !rise.Valid || !set.Valid {
		return 0
	}
	return forward(rise.Minutes, set.Minutes)
}
