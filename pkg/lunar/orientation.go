package lunar

import (
	"math"
	"time"

	"github.com/soniakeys/meeus/v3/julian"
)

// CrescentAngle is how the lit limb of the Moon is oriented in the sky.
// Angles are in degrees.
type CrescentAngle struct {
	BrightLimb   float64 `json:"bright_limb"`  // χ, position angle of the bright limb from celestial north toward east
	Terminator   float64 `json:"terminator"`   // χ + 90
	Parallactic  float64 `json:"parallactic"`  // q, 0 when no observer location is given
	Local        float64 `json:"local"`        // terminator relative to the observer's vertical
	Rotation     float64 `json:"rotation"`     // clockwise CSS rotation of a disc lit on the right
	PhaseAngle   float64 `json:"phase_angle"`  // Sun-Moon-Earth angle
	Illumination float64 `json:"illumination"` // lit fraction from the phase angle
}

// IconRotation is the clockwise rotation that points the lit side of an
// unmirrored silhouette at the Sun. Waxing silhouettes are lit on the right,
// waning ones on the left.
func (a CrescentAngle) IconRotation(waxing bool) float64 {
	r := a.Rotation
	if !waxing {
		r += 180
	}
	return normalizeSigned(r)
}

// CrescentAngleAt computes the Moon's orientation at t for an observer at
// latDeg, lonDeg (east positive). With both at zero the parallactic
// correction is skipped and the angle is geocentric.
func CrescentAngleAt(t time.Time, latDeg, lonDeg float64) CrescentAngle {
	jd := julian.TimeToJD(t.UTC())
	T := julianCenturies(jd)
	eps := obliquity(T)

	raSun, decSun := eclipticToEquatorial(sunEclipticLongitude(T), 0, eps)
	raMoon, decMoon := eclipticToEquatorial(moonEclipticLongitude(T), moonEclipticLatitude(T), eps)

	cosE := math.Sin(decMoon)*math.Sin(decSun) + math.Cos(decMoon)*math.Cos(decSun)*math.Cos(raMoon-raSun)
	phaseAngle := math.Pi - math.Acos(math.Max(-1, math.Min(1, cosE)))

	// Meeus 48.5
	dRA := raSun - raMoon
	chi := normalizeRadians(math.Atan2(
		math.Cos(decSun)*math.Sin(dRA),
		math.Sin(decSun)*math.Cos(decMoon)-math.Cos(decSun)*math.Sin(decMoon)*math.Cos(dRA),
	))
	theta := normalizeRadians(chi + math.Pi/2)

	a := CrescentAngle{
		BrightLimb:   radToDeg(chi),
		Terminator:   radToDeg(theta),
		PhaseAngle:   radToDeg(phaseAngle),
		Illumination: (1 + math.Cos(phaseAngle)) / 2,
	}

	local := theta
	if latDeg != 0 || lonDeg != 0 {
		phi := degToRad(latDeg)
		H := localSiderealTime(jd, lonDeg) - raMoon
		q := math.Atan2(math.Sin(H), math.Tan(phi)*math.Cos(decMoon)-math.Sin(decMoon)*math.Cos(H))
		a.Parallactic = radToDeg(q)
		local = normalizeRadians(theta - q)
	}
	a.Local = radToDeg(local)
	a.Rotation = normalizeSigned(-radToDeg(local))
	return a
}

// moonEclipticLatitude is the Moon's latitude in degrees from the four
// largest terms of Meeus table 47.B.
func moonEclipticLatitude(T float64) float64 {
	T2, T3, T4 := T*T, T*T*T, T*T*T*T

	F := degToRad(normalizeAngle(93.2720950 + 483202.0175233*T - 0.0036539*T2 - T3/3526000 + T4/863310000))
	D := degToRad(normalizeAngle(297.8501921 + 445267.1114034*T - 0.0018819*T2 + T3/545868 - T4/113065000))
	Mp := degToRad(normalizeAngle(134.9633964 + 477198.8675055*T + 0.0087414*T2 + T3/69699 - T4/14712000))

	return 5.128*math.Sin(F) +
		0.2806*math.Sin(Mp+F) +
		0.2777*math.Sin(Mp-F) +
		0.1732*math.Sin(2*D-F)
}

// obliquity is the mean obliquity of the ecliptic in degrees.
func obliquity(T float64) float64 {
	return 23.439291111 - 0.013004167*T - 0.00000164*T*T + 0.000000504*T*T*T
}

// eclipticToEquatorial returns right ascension in [0, 2π) and declination,
// both in radians.
func eclipticToEquatorial(lambdaDeg, betaDeg, epsDeg float64) (ra, dec float64) {
	lam, bet, eps := degToRad(lambdaDeg), degToRad(betaDeg), degToRad(epsDeg)

	dec = math.Asin(math.Sin(bet)*math.Cos(eps) + math.Cos(bet)*math.Sin(eps)*math.Sin(lam))
	ra = normalizeRadians(math.Atan2(math.Sin(lam)*math.Cos(eps)-math.Tan(bet)*math.Sin(eps), math.Cos(lam)))
	return ra, dec
}

// greenwichSiderealTime is GMST in degrees (Meeus 12.4).
func greenwichSiderealTime(jd float64) float64 {
	jd0 := math.Floor(jd-0.5) + 0.5
	T := (jd0 - 2451545.0) / 36525.0

	hours := 6.697374558 + 2400.0513369*T + 0.0000258622*T*T - 1.7222e-9*T*T*T
	hours += 1.00273790935 * (jd - jd0) * 24
	return normalizeAngle(hours * 15)
}

// localSiderealTime is in radians.
func localSiderealTime(jd, lonDeg float64) float64 {
	return degToRad(normalizeAngle(greenwichSiderealTime(jd) + lonDeg))
}

func radToDeg(rad float64) float64 {
	return rad * 180 / math.Pi
}

func normalizeRadians(a float64) float64 {
	a = math.Mod(a, 2*math.Pi)
	if a < 0 {
		a += 2 * math.Pi
	}
	return a
}

// normalizeSigned wraps degrees to (-180, 180].
func normalizeSigned(deg float64) float64 {
	deg = normalizeAngle(deg)
	if deg > 180 {
		deg -= 360
	}
	return deg
}
