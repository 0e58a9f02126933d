package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/chrissnell/skyalmanac/pkg/gematria"
	"github.com/chrissnell/skyalmanac/pkg/lunar"
	"github.com/hebcal/hdate"
)

func main() {
	var timeStr string
	var dateStr string
	var hebrewDay int
	var lat, lon float64
	flag.StringVar(&timeStr, "time", "", "UTC time to calculate phase for (RFC3339 format, e.g., 2024-01-15T12:00:00Z)")
	flag.StringVar(&dateStr, "date", "", "Gregorian date, YYYY-MM-DD; evaluated at 12:00 UTC and used for the Hebrew day")
	flag.IntVar(&hebrewDay, "hebrew-day", 0, "Day of the Hebrew month (1-30); overrides the day derived from the date")
	flag.Float64Var(&lat, "lat", 32.0853, "Observer latitude in degrees; with -lon 0 as well, orientation is geocentric")
	flag.Float64Var(&lon, "lon", 34.7818, "Observer longitude in degrees, east positive")
	flag.Parse()

	t := time.Now().UTC()
	switch {
	case dateStr != "":
		d, err := time.Parse("2006-01-02", dateStr)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error parsing date: %v\n", err)
			os.Exit(1)
		}
		t = d.Add(12 * time.Hour)
	case timeStr != "":
		var err error
		t, err = time.Parse(time.RFC3339, timeStr)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error parsing time: %v\n", err)
			os.Exit(1)
		}
	}

	hd := hdate.FromGregorian(t.Year(), t.Month(), t.Day())
	if hebrewDay == 0 {
		hebrewDay = hd.Day()
	}

	phase := lunar.Calculate(t)

	fmt.Printf("Moon Phase for %s\n", t.Format(time.RFC3339))
	fmt.Printf("  Hebrew Date:  %s\n", gematria.Label(hd.Day(), hd.MonthName("en"), hd.Year()))
	fmt.Printf("  Phase:        %.1f%% (%.4f)\n", phase.Phase*100, phase.Phase)
	fmt.Printf("  Phase Name:   %s\n", phase.PhaseName)
	fmt.Printf("  Illumination: %.1f%%\n", phase.Illumination*100)
	fmt.Printf("  Age:          %.1f days\n", phase.AgeDays)
	fmt.Printf("  Elongation:   %.1f°\n", phase.Elongation)
	if phase.IsWaxing {
		fmt.Printf("  Direction:    Waxing\n")
	} else {
		fmt.Printf("  Direction:    Waning\n")
	}

	app := lunar.FromHebrewDay(hebrewDay)
	side := "left"
	if app.RightLit {
		side = "right"
	}
	fmt.Printf("\nHebrew-day model, day %d\n", hebrewDay)
	fmt.Printf("  Illumination: %.1f%%\n", app.Illumination*100)
	fmt.Printf("  Lit Side:     %s\n", side)
	fmt.Printf("  Stage:        %s\n", lunar.StageSentence(hebrewDay))
	fmt.Printf("  Caption:      %s\n", lunar.BirthdayCaption(hebrewDay, phase.Illumination))

	s := lunar.NewSilhouette(phase.Illumination, phase.IsWaxing, hebrewDay, lunar.DefaultSilhouetteConfig)
	fmt.Printf("\nSilhouette\n")
	fmt.Printf("  Kind:         %s\n", s.Kind)
	fmt.Printf("  Terminator:   rx=%.2f gibbous=%t sweeps=%d/%d\n", s.RX, s.Gibbous, s.OuterSweep, s.InnerSweep)
	fmt.Printf("  Transform:    %s\n", s.Transform.CSS())
	fmt.Printf("  Path:         %s\n", s.Path)
	fmt.Printf("  Craters:      %d\n", len(s.Craters))

	angle := lunar.CrescentAngleAt(t, lat, lon)
	observed := lunar.NewObservedSilhouette(phase.Illumination, phase.IsWaxing, hebrewDay, angle, lunar.DefaultSilhouetteConfig)
	fmt.Printf("\nOrientation at %.4f, %.4f\n", lat, lon)
	fmt.Printf("  Bright Limb:  %.1f°\n", angle.BrightLimb)
	fmt.Printf("  Terminator:   %.1f° (local %.1f°)\n", angle.Terminator, angle.Local)
	fmt.Printf("  Parallactic:  %.1f°\n", angle.Parallactic)
	fmt.Printf("  Phase Angle:  %.1f°\n", angle.PhaseAngle)
	fmt.Printf("  Transform:    %s\n", observed.Transform.CSS())
}
