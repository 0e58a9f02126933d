package sky

import (
	"time"

	"github.com/chrissnell/skyalmanac/pkg/lunar"
)

// Windows are the transition widths around sunrise and sunset, in minutes.
// Dawn runs from DawnLead minutes before sunrise to DawnLag after it; dusk
// runs from DuskLead before sunset to DuskLag after it.
type Windows struct {
	DawnLead int `yaml:"dawn_lead" json:"dawn_lead"`
	DawnLag  int `yaml:"dawn_lag" json:"dawn_lag"`
	DuskLead int `yaml:"dusk_lead" json:"dusk_lead"`
	DuskLag  int `yaml:"dusk_lag" json:"dusk_lag"`
}

// GlowConfig controls the radial highlight drawn around the sun at dawn and
// dusk.
type GlowConfig struct {
	Color      string `yaml:"color"`
	DawnLeadIn int    `yaml:"dawn_lead_in"`
	DuskLeadIn int    `yaml:"dusk_lead_in"`
	FadeOut    int    `yaml:"fade_out"`
}

// ArcConfig places the sun and moon arc inside the viewport. Positions are
// percentages of the viewport width or height.
type ArcConfig struct {
	East     float64 `yaml:"east"`
	West     float64 `yaml:"west"`
	Baseline float64 `yaml:"baseline"`

	// Aspect ratio (width/height) classes. Below PortraitBelow is portrait,
	// at or above LandscapeFrom is landscape, tablet in between.
	PortraitBelow float64 `yaml:"portrait_below"`
	LandscapeFrom float64 `yaml:"landscape_from"`

	PortraitScale  float64 `yaml:"portrait_scale"`
	TabletScale    float64 `yaml:"tablet_scale"`
	LandscapeScale float64 `yaml:"landscape_scale"`

	// Space kept free at the top of the viewport for overlay chrome.
	PortraitClearance  float64 `yaml:"portrait_clearance"`
	TabletClearance    float64 `yaml:"tablet_clearance"`
	LandscapeClearance float64 `yaml:"landscape_clearance"`

	MinHeight float64 `yaml:"min_height"`
}

// Stops are the two colors of a vertical gradient.
type Stops struct {
	Top    string `yaml:"top" json:"top"`
	Bottom string `yaml:"bottom" json:"bottom"`
}

// GradientPalette holds the gradient shown at each keyframe.
type GradientPalette struct {
	Night Stops `yaml:"night"`
	Dawn  Stops `yaml:"dawn"`
	Day   Stops `yaml:"day"`
	Dusk  Stops `yaml:"dusk"`
}

func (p GradientPalette) at(k Keyframe) Stops {
	switch k {
	case KeyDawn:
		return p.Dawn
	case KeyDay:
		return p.Day
	case KeyDusk:
		return p.Dusk
	default:
		return p.Night
	}
}

// MountainColors are the three fills of the mountain silhouettes.
type MountainColors struct {
	Top    string `yaml:"top" json:"top"`
	Bottom string `yaml:"bottom" json:"bottom"`
	Shade  string `yaml:"shade" json:"shade"`
}

// MountainPalette holds the mountain colors at each keyframe.
type MountainPalette struct {
	Night MountainColors `yaml:"night"`
	Dawn  MountainColors `yaml:"dawn"`
	Day   MountainColors `yaml:"day"`
	Dusk  MountainColors `yaml:"dusk"`
}

func (p MountainPalette) at(k Keyframe) MountainColors {
	switch k {
	case KeyDawn:
		return p.Dawn
	case KeyDay:
		return p.Day
	case KeyDusk:
		return p.Dusk
	default:
		return p.Night
	}
}

// SweepConfig shapes the automatic time-cursor sweep.
type SweepConfig struct {
	// StartBefore is how many minutes before moonrise the sweep starts.
	StartBefore int `yaml:"start_before"`
	// Tail is added to a full day when the sweep does not end at midnight.
	Tail     int           `yaml:"tail"`
	Duration time.Duration `yaml:"duration"`
}

// Config is every tuning value the engine uses.
type Config struct {
	Windows  Windows                `yaml:"windows"`
	Lag      int                    `yaml:"lag"`
	Glow     GlowConfig             `yaml:"glow"`
	Arc      ArcConfig              `yaml:"arc"`
	Sky      GradientPalette        `yaml:"sky"`
	Sea      GradientPalette        `yaml:"sea"`
	Mountain MountainPalette        `yaml:"mountain"`
	Moon     lunar.SilhouetteConfig `yaml:"moon"`
	Sweep    SweepConfig            `yaml:"sweep"`
}

// DefaultConfig returns the stock tuning.
func DefaultConfig() Config {
	return Config{
		Windows: Windows{DawnLead: 60, DawnLag: 30, DuskLead: 45, DuskLag: 30},
		Lag:     30,
		Glow: GlowConfig{
			Color:      "#ffb36b",
			DawnLeadIn: 30,
			DuskLeadIn: 45,
			FadeOut:    30,
		},
		Arc: ArcConfig{
			East:               5,
			West:               95,
			Baseline:           85,
			PortraitBelow:      1.0,
			LandscapeFrom:      1.6,
			PortraitScale:      1.15,
			TabletScale:        1.0,
			LandscapeScale:     0.85,
			PortraitClearance:  25,
			TabletClearance:    22,
			LandscapeClearance: 20,
			MinHeight:          25,
		},
		// Dusk is stored with the warm color at the bottom so that radial
		// gradients keep it at the center, around the sun.
		Sky: GradientPalette{
			Night: Stops{"#0f1025", "#000000"},
			Dawn:  Stops{"#2b1242", "#8a2e4e"},
			Day:   Stops{"#a6d8ff", "#e9f6ff"},
			Dusk:  Stops{"#2b1242", "#ffb36b"},
		},
		Sea: GradientPalette{
			Night: Stops{"#1c3550", "#0e2744"},
			Dawn:  Stops{"#4f99c7", "#1f5a90"},
			Day:   Stops{"#8fd5ff", "#2c79b8"},
			Dusk:  Stops{"#4f99c7", "#1f5a90"},
		},
		Mountain: MountainPalette{
			Night: MountainColors{"#3f3168", "#1a1538", "#251b4a"},
			Dawn:  MountainColors{"#c99d74", "#8e623b", "#a37248"},
			Day:   MountainColors{"#f1dfc8", "#c7925e", "#d39a61"},
			Dusk:  MountainColors{"#7a4f8a", "#3b2a59", "#4a356a"},
		},
		Moon: lunar.DefaultSilhouetteConfig,
		Sweep: SweepConfig{
			StartBefore: 30,
			Tail:        105,
			Duration:    10 * time.Second,
		},
	}
}

func nonNegative(v int) int {
	if v < 0 {
		return 0
	}
	return v
}

func (w Windows) normalized() Windows {
	return Windows{
		DawnLead: nonNegative(w.DawnLead),
		DawnLag:  nonNegative(w.DawnLag),
		DuskLead: nonNegative(w.DuskLead),
		DuskLag:  nonNegative(w.DuskLag),
	}
}

// normalized clears negative durations.
func (c Config) normalized() Config {
	c.Windows = c.Windows.normalized()
	c.Glow.DawnLeadIn = nonNegative(c.Glow.DawnLeadIn)
	c.Glow.DuskLeadIn = nonNegative(c.Glow.DuskLeadIn)
	c.Glow.FadeOut = nonNegative(c.Glow.FadeOut)
	c.Sweep.StartBefore = nonNegative(c.Sweep.StartBefore)
	c.Sweep.Tail = nonNegative(c.Sweep.Tail)
	return c
}
