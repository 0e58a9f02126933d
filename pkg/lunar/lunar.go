// Package lunar computes the Moon's phase two ways and turns a phase into a
// drawable silhouette.
//
// Calculate derives the phase of an instant from the ecliptic longitudes of
// the Sun and Moon (accuracy about 1% illumination). FromHebrewDay derives an
// idealized phase from the day of the Hebrew lunar month alone. NewSilhouette
// builds the SVG outline of the lit part of the disc for either.
package lunar

import (
	"math"
	"time"

	"github.com/soniakeys/meeus/v3/julian"
)

// SynodicMonth is the mean length of the lunar cycle in days.
const SynodicMonth = 29.530588853

// MoonPhase is the astronomical phase of the Moon at one instant.
type MoonPhase struct {
	Phase        float64 `json:"phase"`        // [0,1): 0=new, 0.5=full
	Elongation   float64 `json:"elongation"`   // Sun→Moon longitude difference, degrees [0,360)
	Illumination float64 `json:"illumination"` // lit fraction [0,1]
	AgeDays      float64 `json:"age"`          // days since new moon [0,SynodicMonth)
	IsWaxing     bool    `json:"waxing"`
	PhaseName    string  `json:"name"`
}

// Calculate computes the moon phase at t.
func Calculate(t time.Time) MoonPhase {
	T := julianCenturies(julian.TimeToJD(t.UTC()))

	elongation := normalizeAngle(moonEclipticLongitude(T) - sunEclipticLongitude(T))
	phase := elongation / 360.0
	illumination := (1 - math.Cos(degToRad(elongation))) / 2
	waxing := elongation < 180

	return MoonPhase{
		Phase:        phase,
		Elongation:   elongation,
		Illumination: illumination,
		AgeDays:      phase * SynodicMonth,
		IsWaxing:     waxing,
		PhaseName:    PhaseName(illumination, waxing),
	}
}

// PhaseName returns one of the eight conventional phase names.
func PhaseName(illumination float64, waxing bool) string {
	switch {
	case illumination < 0.01:
		return "New Moon"
	case illumination > 0.99:
		return "Full Moon"
	case illumination >= 0.49 && illumination <= 0.51:
		if waxing {
			return "First Quarter"
		}
		return "Third Quarter"
	case illumination < 0.50:
		if waxing {
			return "Waxing Crescent"
		}
		return "Waning Crescent"
	default:
		if waxing {
			return "Waxing Gibbous"
		}
		return "Waning Gibbous"
	}
}

func julianCenturies(jd float64) float64 {
	return (jd - 2451545.0) / 36525.0
}

// normalizeAngle wraps an angle to [0, 360).
func normalizeAngle(angle float64) float64 {
	angle = math.Mod(angle, 360)
	if angle < 0 {
		angle += 360
	}
	return angle
}

func degToRad(deg float64) float64 {
	return deg * math.Pi / 180.0
}

// sunEclipticLongitude is the Sun's apparent longitude in degrees from its
// mean longitude plus the equation of center.
func sunEclipticLongitude(T float64) float64 {
	L0 := 280.46646 + 36000.76983*T + 0.0003032*T*T
	M := degToRad(normalizeAngle(357.52911 + 35999.05029*T - 0.0001537*T*T))

	C := (1.914602-0.004817*T-0.000014*T*T)*math.Sin(M) +
		(0.019993-0.000101*T)*math.Sin(2*M) +
		0.000289*math.Sin(3*M)

	return normalizeAngle(L0 + C)
}

// moonEclipticLongitude is the Moon's longitude in degrees using the five
// largest periodic terms.
func moonEclipticLongitude(T float64) float64 {
	T2, T3, T4 := T*T, T*T*T, T*T*T*T

	L := 218.3164477 + 481267.88123421*T - 0.0015786*T2 + T3/538841 - T4/65194000
	D := degToRad(normalizeAngle(297.8501921 + 445267.1114034*T - 0.0018819*T2 + T3/545868 - T4/113065000))
	Mp := degToRad(normalizeAngle(134.9633964 + 477198.8675055*T + 0.0087414*T2 + T3/69699 - T4/14712000))

	return normalizeAngle(L +
		6.289*math.Sin(Mp) +
		1.274*math.Sin(2*D-Mp) +
		0.658*math.Sin(2*D) +
		0.214*math.Sin(2*Mp) +
		0.110*math.Sin(D))
}
