package generator

import (
	"github.com/chrissnell/skyalmanac/pkg/almanac"
	"github.com/chrissnell/skyalmanac/pkg/sky"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Summary describes one generated year.
type Summary struct {
	Days             int
	NoDaylight       int // days without a sunrise/sunset pair
	DaylightMean     float64
	DaylightStdDev   float64
	DaylightMin      float64
	DaylightMax      float64
	IlluminationMean float64
}

// Summarize computes daylight and illumination statistics for y. Records
// whose times do not parse count as days without daylight.
func Summarize(y almanac.YearData) Summary {
	s := Summary{Days: len(y)}
	if len(y) == 0 {
		return s
	}

	var daylight, illumination []float64
	for _, date := range y.Dates() {
		r := y[date]
		illumination = append(illumination, r.Moon.Illumination)

		d, err := r.Astronomy()
		if err != nil || !d.HasDaylight() {
			s.NoDaylight++
			continue
		}
		daylight = append(daylight, float64(sky.Wrap(d.Sunset.Minutes-d.Sunrise.Minutes)))
	}

	s.IlluminationMean = stat.Mean(illumination, nil)
	if len(daylight) > 0 {
		s.DaylightMean, s.DaylightStdDev = stat.MeanStdDev(daylight, nil)
		s.DaylightMin = floats.Min(daylight)
		s.DaylightMax = floats.Max(daylight)
	}
	return s
}
