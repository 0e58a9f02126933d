// Package solar approximates sunrise and sunset from the solar declination
// and the equation of time. It needs no ephemeris tables and is good to a
// few minutes away from the polar circles.
package solar

import (
	"math"
	"time"

	"github.com/soniakeys/meeus/v3/julian"
)

// Condition tells whether the Sun crosses the horizon on a day.
type Condition int

const (
	// Normal days have a sunrise and a sunset.
	Normal Condition = iota
	// AlwaysUp is polar day: the Sun never sets.
	AlwaysUp
	// AlwaysDown is polar night: the Sun never rises.
	AlwaysDown
)

func (c Condition) String() string {
	switch c {
	case AlwaysUp:
		return "always up"
	case AlwaysDown:
		return "always down"
	default:
		return "normal"
	}
}

// horizonAltitude is the Sun's center altitude at rise and set in degrees:
// standard refraction plus the solar semi-diameter.
const horizonAltitude = -0.833

// Times are the sunrise and sunset of one calendar day.
type Times struct {
	Sunrise   time.Time
	Sunset    time.Time
	Condition Condition
}

// CalculateSunriseSunset returns sunrise and sunset as minutes from midnight
// UTC, wrapped onto [0,1440), for a day of the given year. Both are -1 when
// the condition is not Normal.
func CalculateSunriseSunset(year, dayOfYear int, latitude, longitude float64) (sunriseMinutes, sunsetMinutes int, cond Condition) {
	rise, set, cond := solve(year, dayOfYear, latitude, longitude)
	if cond != Normal {
		return -1, -1, cond
	}
	wrap := func(m float64) int {
		return int(math.Mod(math.Round(m)+2*1440, 1440))
	}
	return wrap(rise), wrap(set), Normal
}

// SunTimes returns sunrise and sunset for the calendar day of date, in
// date's location.
func SunTimes(date time.Time, latitude, longitude float64) Times {
	y, m, d := date.Date()
	rise, set, cond := solve(y, date.YearDay(), latitude, longitude)
	if cond != Normal {
		return Times{Condition: cond}
	}

	midnight := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	at := func(minutes float64) time.Time {
		return midnight.Add(time.Duration(math.Round(minutes)) * time.Minute).In(date.Location())
	}
	return Times{Sunrise: at(rise), Sunset: at(set), Condition: Normal}
}

// solve returns sunrise and sunset in minutes after 00:00 UTC of the day.
// The values are not wrapped and may fall outside [0,1440).
func solve(year, dayOfYear int, latitude, longitude float64) (rise, set float64, cond Condition) {
	// Solar declination, the angle between the Sun and the celestial equator
	doy := float64(dayOfYear)
	innerAngle := degToRad(356.6 + 0.9856*doy)
	outerAngle := degToRad(278.97 + 0.9856*doy + 1.9165*math.Sin(innerAngle))
	declination := math.Asin(0.39785 * math.Sin(outerAngle))

	lat := degToRad(latitude)

	// Hour angle at which the Sun's center reaches horizonAltitude
	cosH := (math.Sin(degToRad(horizonAltitude)) - math.Sin(lat)*math.Sin(declination)) /
		(math.Cos(lat) * math.Cos(declination))
	switch {
	case cosH < -1:
		return 0, 0, AlwaysUp
	case cosH > 1:
		return 0, 0, AlwaysDown
	}
	hourAngleMinutes := radToDeg(math.Acos(cosH)) * 4 // 4 minutes per degree

	// Solar noon in UTC, shifted by longitude (4 min per degree, east is
	// earlier) and by the equation of time for that day
	noon := time.Date(year, 1, 1, 12, 0, 0, 0, time.UTC).AddDate(0, 0, dayOfYear-1)
	solarNoon := 720 - 4*longitude - equationOfTime(noon)

	return solarNoon - hourAngleMinutes, solarNoon + hourAngleMinutes, Normal
}

func degToRad(deg float64) float64 {
	return deg * (math.Pi / 180.0)
}

func radToDeg(rad float64) float64 {
	return rad * (180.0 / math.Pi)
}

// fixAngle normalizes an angle to the range [0, 360) degrees
func fixAngle(angle float64) float64 {
	return math.Mod(math.Mod(angle, 360)+360, 360)
}

// equationOfTime is apparent minus mean solar time at t, in minutes.
func equationOfTime(t time.Time) float64 {
	T := (julian.TimeToJD(t) - 2451545.0) / 36525.0 // Julian centuries since J2000.0

	L0 := fixAngle(280.46646 + T*(36000.76983+T*0.0003032))            // mean longitude of the Sun
	M := fixAngle(357.52911 + T*(35999.05029-T*0.0001537))             // mean anomaly of the Sun
	e := 0.016708634 - T*(0.000042037+T*0.0000001267)                  // eccentricity of Earth's orbit
	eps0 := 23 + (26+(21.448-T*(46.815+T*(0.00059-T*0.001813)))/60)/60 // mean obliquity of the ecliptic

	y := math.Tan(degToRad(eps0)/2) * math.Tan(degToRad(eps0)/2)
	return radToDeg(y*math.Sin(degToRad(2*L0))-
		2*e*math.Sin(degToRad(M))+
		4*e*y*math.Sin(degToRad(M))*math.Cos(degToRad(2*L0))-
		0.5*y*y*math.Sin(degToRad(4*L0))-
		1.25*e*e*math.Sin(degToRad(2*M))) * 4
}
