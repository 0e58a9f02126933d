package sky

// Span is a closed interval of minutes on a single day, 0 <= Start <= End <= 1440.
type Span struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// Midpoint is the middle minute of s, rounded down.
func (s Span) Midpoint() int {
	return s.Start + (s.End-s.Start)/2
}

// Segments splits a circular interval into spans that do not cross
// midnight.
func Segments(start, end int) []Span {
	start, end = Wrap(start), Wrap(end)
	if end >= start {
		return []Span{{start, end}}
	}
	return []Span{{start, MinutesPerDay}, {0, end}}
}

// Intersect returns the non-empty overlaps between two span lists.
func Intersect(a, b []Span) []Span {
	var out []Span
	for _, sa := range a {
		for _, sb := range b {
			s := max(sa.Start, sb.Start)
			e := min(sa.End, sb.End)
			if e > s {
				out = append(out, Span{s, e})
			}
		}
	}
	return out
}

// Midpoint is the middle of the circular interval from start to end.
func Midpoint(start, end int) int {
	if end >= start {
		return start + (end-start)/2
	}
	span := MinutesPerDay - start + end
	return (start + span/2) % MinutesPerDay
}

// DefaultTarget picks the minute to show when a date is given without a
// time: the moment closest to the middle of the Moon's visible window that
// still falls between midnight and sunset. Without any Moon window it falls
// back to the middle of that stretch. ok is false when there is no sunset.
func DefaultTarget(day DayAstronomy) (minutes int, ok bool) {
	if !day.Sunset.Valid {
		return 0, false
	}
	sunset := day.Sunset.Minutes
	daytime := []Span{{0, sunset}}

	var visible []Span
	var mid int
	rise, set := day.Moonrise, day.Moonset
	switch {
	case rise.Valid && set.Valid:
		visible = Segments(rise.Minutes, set.Minutes)
		mid = Midpoint(rise.Minutes, set.Minutes)
	case rise.Valid:
		visible = []Span{{rise.Minutes, MinutesPerDay}}
		mid = Midpoint(rise.Minutes, MinutesPerDay)
	case set.Valid:
		visible = []Span{{0, set.Minutes}}
		mid = Midpoint(0, set.Minutes)
	}

	overlap := Intersect(visible, daytime)
	if len(overlap) == 0 {
		return sunset / 2, true
	}

	best, bestDist := overlap[0].Start, MinutesPerDay+1
	for _, s := range overlap {
		candidate := mid
		if mid < s.Start || mid > s.End {
			candidate = s.End
			if abs(mid-s.Start) < abs(mid-s.End) {
				candidate = s.Start
			}
		}
		if d := abs(signedDistance(candidate, mid)); d < bestDist {
			best, bestDist = candidate, d
		}
	}
	return best, true
}
