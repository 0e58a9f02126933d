// Package almanac defines the per-year data files served to the almanac and
// their JSON and MessagePack encodings.
package almanac

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/chrissnell/skyalmanac/pkg/sky"
)

// DateLayout is the key and "gregorian" format of a day record.
const DateLayout = "2006-01-02"

// ErrBadDate is returned for dates that are not YYYY-MM-DD.
var ErrBadDate = errors.New("date must be YYYY-MM-DD")

// MoonInfo is the Moon's phase on a day.
type MoonInfo struct {
	Illumination float64 `json:"illumination"`
	Age          float64 `json:"age"`
	Waxing       bool    `json:"waxing"`
}

// SunTimes holds local "HH:MM" rise and set times; nil means the event does
// not occur that day.
type SunTimes struct {
	Sunrise *string `json:"sunrise"`
	Sunset  *string `json:"sunset"`
}

// MoonTimes is SunTimes for the Moon.
type MoonTimes struct {
	Moonrise *string `json:"moonrise"`
	Moonset  *string `json:"moonset"`
}

// DayRecord is everything known about one Gregorian date.
type DayRecord struct {
	Gregorian   string    `json:"gregorian"`
	HebrewDate  string    `json:"hebrew_date"`
	HebrewDay   int       `json:"hebrew_day"`
	HebrewMonth string    `json:"hebrew_month"`
	HebrewYear  string    `json:"hebrew_year"`
	Moon        MoonInfo  `json:"moon"`
	Sun         SunTimes  `json:"sun"`
	MoonTimes   MoonTimes `json:"moon_times"`
}

// YearData maps YYYY-MM-DD to the record for that date.
type YearData map[string]DayRecord

// Clock formats t as a nullable "HH:MM" string. The zero time is nil.
func Clock(t time.Time) *string {
	if t.IsZero() {
		return nil
	}
	s := t.Format("15:04")
	return &s
}

func parseClock(s *string) (sky.TimeOfDay, error) {
	if s == nil {
		return sky.Never, nil
	}
	return sky.ParseTimeOfDay(*s)
}

// Astronomy converts the record into engine input. Malformed times are
// reported; out-of-range numbers are clamped.
func (r DayRecord) Astronomy() (sky.DayAstronomy, error) {
	var d sky.DayAstronomy
	var err error

	fields := []struct {
		name string
		src  *string
		dst  *sky.TimeOfDay
	}{
		{"sunrise", r.Sun.Sunrise, &d.Sunrise},
		{"sunset", r.Sun.Sunset, &d.Sunset},
		{"moonrise", r.MoonTimes.Moonrise, &d.Moonrise},
		{"moonset", r.MoonTimes.Moonset, &d.Moonset},
	}
	for _, f := range fields {
		if *f.dst, err = parseClock(f.src); err != nil {
			return sky.DayAstronomy{}, fmt.Errorf("%s %s: %w", r.Gregorian, f.name, err)
		}
	}

	if date, err := ParseDate(r.Gregorian); err == nil {
		d.Date = date
	}
	d.HebrewDay = r.HebrewDay
	d.Illumination = r.Moon.Illumination
	d.Waxing = r.Moon.Waxing
	return d.Sanitize(), nil
}

// ParseDate parses a YYYY-MM-DD date as a calendar day in UTC.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%q: %w", s, ErrBadDate)
	}
	return t, nil
}

// Dates returns the keys of y in calendar order.
func (y YearData) Dates() []string {
	keys := make([]string, 0, len(y))
	for k := range y {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
