package lunar

import (
	"fmt"
	"math"
)

// hebrewDayOffset shifts the idealized cycle so that day 15 lands on full
// moon and day 1 on a thin waxing crescent.
const hebrewDayOffset = SynodicMonth/2 - 14

// Appearance is the idealized phase for a day of the Hebrew month.
type Appearance struct {
	PhaseAngle   float64 `json:"phase_angle"` // radians [0,2π)
	Illumination float64 `json:"illumination"`
	RightLit     bool    `json:"right_lit"`
}

// FromHebrewDay approximates the Moon's phase from the day of the Hebrew
// month alone. day is clamped to [1,30].
func FromHebrewDay(day int) Appearance {
	day = clampDay(day)

	idx := math.Mod(float64(day-1)+hebrewDayOffset, SynodicMonth)
	if idx < 0 {
		idx += SynodicMonth
	}
	angle := 2 * math.Pi * idx / SynodicMonth

	return Appearance{
		PhaseAngle:   angle,
		Illumination: (1 - math.Cos(angle)) / 2,
		RightLit:     angle <= math.Pi,
	}
}

func clampDay(day int) int {
	if day < 1 {
		return 1
	}
	if day > 30 {
		return 30
	}
	return day
}

// StageSentence is the short caption shown for a day of the Hebrew month.
func StageSentence(day int) string {
	switch day = clampDay(day); {
	case day <= 3:
		return "תחילת החודש – הירח נולד"
	case day <= 7:
		return "הירח מתמלא – כל יום הוא גדול יותר"
	case day <= 13:
		return "הירח כמעט מלא – צורתו עגולה כמעט לגמרי"
	case day <= 16:
		return "ירח מלא – הלילה הכי מואר בחודש"
	case day <= 21:
		return "הירח מתמעט – הלילה מתחיל להתכהות"
	case day <= 27:
		return "הירח נעלם – כמעט ואינו נראה"
	default:
		return "סוף החודש – הירח דק מאוד ונעלם בקרוב"
	}
}

// BirthdayCaption is the line shown next to the Moon for a birth date: the
// Hebrew day and the rounded illumination percentage.
func BirthdayCaption(hebrewDay int, illumination float64) string {
	pct := int(math.Round(math.Max(0, math.Min(1, illumination)) * 100))
	lit := fmt.Sprintf("ב%d%%", pct)
	if pct < 1 {
		lit = "בפחות מ1%"
	}

	switch hebrewDay {
	case 1:
		return "נולדת בראש חודש! ביום זה לבנה מוארת " + lit
	case 15:
		return "ביום שנולדת הירח היה מלא!"
	default:
		return "ביום שנולדת לבנה הייתה מוארת " + lit
	}
}
