package sky

import "github.com/chrissnell/skyalmanac/pkg/colormix"

// PhaseState is the lighting state of the sky.
type PhaseState int

const (
	Night PhaseState = iota
	DawnTransition
	Day
	DuskTransition
)

func (s PhaseState) String() string {
	switch s {
	case DawnTransition:
		return "dawn"
	case Day:
		return "day"
	case DuskTransition:
		return "dusk"
	default:
		return "night"
	}
}

// MarshalText lets PhaseState appear by name in JSON.
func (s PhaseState) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Keyframe names a palette entry. Transitions blend between two keyframes.
type Keyframe int

const (
	KeyNight Keyframe = iota
	KeyDawn
	KeyDay
	KeyDusk
)

// Phase is the state at one minute plus, inside a transition, the progress
// through it in [0,1].
type Phase struct {
	State    PhaseState `json:"state"`
	Progress float64    `json:"progress"`
}

// Segment splits a transition at its midpoint. It returns the two keyframes
// being blended and the position between them in [0,1]. Outside transitions
// both keyframes are the same.
func (p Phase) Segment() (from, to Keyframe, t float64) {
	switch p.State {
	case DawnTransition:
		if p.Progress < 0.5 {
			return KeyNight, KeyDawn, p.Progress / 0.5
		}
		return KeyDawn, KeyDay, (p.Progress - 0.5) / 0.5
	case DuskTransition:
		if p.Progress < 0.5 {
			return KeyDay, KeyDusk, p.Progress / 0.5
		}
		return KeyDusk, KeyNight, (p.Progress - 0.5) / 0.5
	case Day:
		return KeyDay, KeyDay, 0
	default:
		return KeyNight, KeyNight, 0
	}
}

// schedule is the four phase boundaries of one day, in minutes after origin
// (the start of dawn). Night runs from duskEnd back round to origin.
type schedule struct {
	origin   int
	dawnEnd  int
	duskFrom int
	duskEnd  int
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// scheduleFor lays the windows around one sunrise/sunset pair. Windows that
// would overlap on very short or very long days are clipped so the states
// stay in order around the clock. ok is false when there is no daylight.
func (w Windows) scheduleFor(rise, set TimeOfDay) (schedule, bool) {
	dayLen := daylight(rise, set)
	if dayLen == 0 {
		return schedule{}, false
	}
	w = w.normalized()

	s := schedule{
		origin:   Wrap(rise.Minutes - w.DawnLead),
		dawnEnd:  w.DawnLead + w.DawnLag,
		duskFrom: w.DawnLead + dayLen - w.DuskLead,
		duskEnd:  w.DawnLead + dayLen + w.DuskLag,
	}

	s.duskEnd = clampInt(s.duskEnd, 0, MinutesPerDay)
	s.dawnEnd = clampInt(s.dawnEnd, 0, s.duskEnd)
	s.duskFrom = clampInt(s.duskFrom, 0, s.duskEnd)
	if s.duskFrom < s.dawnEnd {
		mid := (s.dawnEnd + s.duskFrom) / 2
		s.dawnEnd, s.duskFrom = mid, mid
	}
	return s, true
}

// progress is the clamped position of x in [start,end]. A zero-length
// window gives 0.
func progress(x, start, end int) float64 {
	if end <= start {
		return 0
	}
	return colormix.Clamp(float64(x-start)/float64(end-start), 0, 1)
}

// at returns the phase at minutes. Boundaries belong to the later state.
func (s schedule) at(minutes int) Phase {
	rel := forward(s.origin, minutes)
	switch {
	case rel < s.dawnEnd:
		return Phase{State: DawnTransition, Progress: progress(rel, 0, s.dawnEnd)}
	case rel < s.duskFrom:
		return Phase{State: Day}
	case rel < s.duskEnd:
		return Phase{State: DuskTransition, Progress: progress(rel, s.duskFrom, s.duskEnd)}
	default:
		return Phase{State: Night}
	}
}

// PhaseAt returns the phase at minutes for a sunrise/sunset pair. Without a
// daylight interval it is always Night.
func PhaseAt(minutes int, rise, set TimeOfDay, w Windows) Phase {
	s, ok := w.scheduleFor(rise, set)
	if !ok {
		return Phase{State: Night}
	}
	return s.at(minutes)
}
