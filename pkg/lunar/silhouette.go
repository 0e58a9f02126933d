package lunar

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// NoHebrewDay tells NewSilhouette that the day of the month is unknown; the
// silhouette is then drawn without tilt or thickness floors for edge days.
const NoHebrewDay = 0

// Kind classifies a silhouette.
type Kind int

const (
	// Partial is a crescent or gibbous outline.
	Partial Kind = iota
	// New is an empty disc.
	New
	// Full is a completely lit disc.
	Full
)

func (k Kind) String() string {
	switch k {
	case New:
		return "new"
	case Full:
		return "full"
	default:
		return "partial"
	}
}

// MarshalText lets Kind appear by name in JSON.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// SilhouetteConfig sets the disc geometry and the rendering tweaks.
type SilhouetteConfig struct {
	CX float64 `yaml:"cx"`
	CY float64 `yaml:"cy"`
	R  float64 `yaml:"r"`
	// TiltDeg rotates the disc clockwise in the first half of the month and
	// counter-clockwise in the second.
	TiltDeg float64 `yaml:"tilt_deg"`
	// EdgeFloor is the minimum width of the sliver between limb and
	// terminator, as a fraction of R, for the first two and last two days
	// of the month.
	EdgeFloor float64 `yaml:"edge_floor"`
	// ThinFloor is the same floor for crescents lit below ThinBelow.
	ThinFloor float64 `yaml:"thin_floor"`
	ThinBelow float64 `yaml:"thin_below"`
	// ObserverTilt replaces the fixed tilt with the Moon's real orientation
	// for the configured location.
	ObserverTilt bool `yaml:"observer_tilt"`
}

// DefaultSilhouetteConfig draws an 80x80 disc.
var DefaultSilhouetteConfig = SilhouetteConfig{
	CX: 40, CY: 40, R: 40,
	TiltDeg:   35,
	EdgeFloor: 0.28,
	ThinFloor: 0.15,
	ThinBelow: 0.06,
}

// Transform is applied to the finished silhouette. It never changes the
// illumination geometry.
type Transform struct {
	RotateDeg float64 `json:"rotate_deg"`
	MirrorX   bool    `json:"mirror_x"`
}

// CSS renders the transform, or "" when it is the identity.
func (t Transform) CSS() string {
	var parts []string
	if t.RotateDeg != 0 {
		parts = append(parts, fmt.Sprintf("rotate(%sdeg)", num(t.RotateDeg)))
	}
	if t.MirrorX {
		parts = append(parts, "scaleX(-1)")
	}
	return strings.Join(parts, " ")
}

// Silhouette is the lit region of the disc.
type Silhouette struct {
	Kind         Kind      `json:"kind"`
	Illumination float64   `json:"illumination"`
	Waxing       bool      `json:"waxing"`
	HebrewDay    int       `json:"hebrew_day,omitempty"`
	RX           float64   `json:"rx"`
	Gibbous      bool      `json:"gibbous"`
	OuterSweep   int       `json:"outer_sweep"`
	InnerSweep   int       `json:"inner_sweep"`
	Transform    Transform `json:"transform"`
	Path         string    `json:"path"`
	// Craters are the texture over the lit region, to be clipped to Path.
	Craters []Crater `json:"craters,omitempty"`
}

// NewSilhouette builds the lit outline for an illuminated fraction. The limb
// is a half circle on the lit side; the terminator is a half ellipse with
// horizontal radius R·|2(1−i)−1| that bulges outward for gibbous phases.
// Out-of-range illumination and Hebrew days are clamped.
func NewSilhouette(illumination float64, waxing bool, hebrewDay int, cfg SilhouetteConfig) Silhouette {
	if hebrewDay != NoHebrewDay {
		hebrewDay = clampDay(hebrewDay)
	}
	return buildSilhouette(illumination, waxing, hebrewDay, tiltFor(hebrewDay, cfg.TiltDeg), cfg)
}

// NewObservedSilhouette is NewSilhouette rotated so the lit side points the
// way it does in the observer's sky, without mirroring.
func NewObservedSilhouette(illumination float64, waxing bool, hebrewDay int, a CrescentAngle, cfg SilhouetteConfig) Silhouette {
	if hebrewDay != NoHebrewDay {
		hebrewDay = clampDay(hebrewDay)
	}
	return buildSilhouette(illumination, waxing, hebrewDay, Transform{RotateDeg: a.IconRotation(waxing)}, cfg)
}

func buildSilhouette(illumination float64, waxing bool, hebrewDay int, tf Transform, cfg SilhouetteConfig) Silhouette {
	if math.IsNaN(illumination) {
		illumination = 0
	}
	illumination = math.Max(0, math.Min(1, illumination))

	s := Silhouette{
		Illumination: illumination,
		Waxing:       waxing,
		HebrewDay:    hebrewDay,
		Transform:    tf,
	}

	R, cx, cy := cfg.R, cfg.CX, cfg.CY
	switch {
	case illumination <= 0.001:
		s.Kind = New
		return s
	case illumination >= 0.999:
		s.Kind = Full
		s.Craters = cratersFor(cfg)
		s.Path = fmt.Sprintf("M %s %s A %s %s 0 1 1 %s %s A %s %s 0 1 1 %s %s Z",
			num(cx), num(cy-R), num(R), num(R), num(cx), num(cy+R), num(R), num(R), num(cx), num(cy-R))
		return s
	}

	i := math.Max(0.001, math.Min(0.999, illumination))
	shadow := 1 - i
	rx := R * math.Abs(2*shadow-1)

	s.Gibbous = shadow < 0.5

	// Floors widen thin crescents only; a gibbous disc is left as measured.
	if !s.Gibbous {
		edgeDay := hebrewDay != NoHebrewDay && (hebrewDay <= 2 || hebrewDay >= 29)
		switch {
		case edgeDay:
			rx = math.Min(rx, R-math.Round(R*cfg.EdgeFloor))
		case i < cfg.ThinBelow:
			rx = math.Min(rx, R-math.Round(R*cfg.ThinFloor))
		}
		rx = math.Max(rx, 0)
	}

	s.Kind = Partial
	s.RX = rx
	s.Craters = cratersFor(cfg)

	// A mirrored disc is drawn lit on the other side so that it renders
	// with the lit side unchanged.
	if waxing != s.Transform.MirrorX {
		s.OuterSweep = 1
		if s.Gibbous {
			s.InnerSweep = 1
		}
	} else if !s.Gibbous {
		s.InnerSweep = 1
	}

	s.Path = fmt.Sprintf("M %s %s A %s %s 0 0 %d %s %s A %s %s 0 0 %d %s %s Z",
		num(cx), num(cy-R),
		num(R), num(R), s.OuterSweep, num(cx), num(cy+R),
		num(rx), num(R), s.InnerSweep, num(cx), num(cy-R))
	return s
}

// cratersFor places the texture on the configured disc.
func cratersFor(cfg SilhouetteConfig) []Crater {
	out := ScaledCraters(cfg.R)
	for i := range out {
		out[i].CX += cfg.CX - cfg.R
		out[i].CY += cfg.CY - cfg.R
	}
	return out
}

func tiltFor(hebrewDay int, tiltDeg float64) Transform {
	if hebrewDay == NoHebrewDay {
		return Transform{}
	}
	if hebrewDay <= 15 {
		return Transform{RotateDeg: tiltDeg, MirrorX: true}
	}
	return Transform{RotateDeg: -tiltDeg, MirrorX: true}
}

func num(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
