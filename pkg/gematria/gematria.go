// Package gematria formats numbers as Hebrew letter numerals and maps
// transliterated month names to Hebrew.
package gematria

import "strings"

const (
	// Geresh marks a single-letter numeral.
	Geresh = "׳"
	// Gershayim is inserted before the last letter of a multi-letter numeral.
	Gershayim = "״"
)

type numeral struct {
	value  int
	letter string
}

var hundreds = []numeral{
	{400, "ת"}, {300, "ש"}, {200, "ר"}, {100, "ק"},
}

var tens = []numeral{
	{90, "צ"}, {80, "פ"}, {70, "ע"}, {60, "ס"}, {50, "נ"},
	{40, "מ"}, {30, "ל"}, {20, "כ"}, {10, "י"},
}

var ones = []string{"", "א", "ב", "ג", "ד", "ה", "ו", "ז", "ח", "ט"}

// letterValues includes the final forms so Value accepts any spelling.
var letterValues = map[rune]int{
	'א': 1, 'ב': 2, 'ג': 3, 'ד': 4, 'ה': 5, 'ו': 6, 'ז': 7, 'ח': 8, 'ט': 9,
	'י': 10, 'כ': 20, 'ך': 20, 'ל': 30, 'מ': 40, 'ם': 40, 'נ': 50, 'ן': 50,
	'ס': 60, 'ע': 70, 'פ': 80, 'ף': 80, 'צ': 90, 'ץ': 90,
	'ק': 100, 'ר': 200, 'ש': 300, 'ת': 400,
}

// letters decomposes n (0..999) into numeral letters. 15 and 16 are spelled
// 9+6 and 9+7 so they never form a divine name.
func letters(n int) []string {
	var out []string
	for _, h := range hundreds {
		for n >= h.value {
			out = append(out, h.letter)
			n -= h.value
		}
	}
	if n == 15 || n == 16 {
		return append(out, "ט", ones[n-9])
	}
	for _, t := range tens {
		for n >= t.value {
			out = append(out, t.letter)
			n -= t.value
		}
	}
	if n > 0 {
		out = append(out, ones[n])
	}
	return out
}

func punctuate(ls []string) string {
	switch len(ls) {
	case 0:
		return ""
	case 1:
		return ls[0] + Geresh
	}
	last := len(ls) - 1
	return strings.Join(ls[:last], "") + Gershayim + ls[last]
}

// DayLetters formats a day of the Hebrew month. n is clamped to [1,30].
func DayLetters(n int) string {
	if n < 1 {
		n = 1
	} else if n > 30 {
		n = 30
	}
	return punctuate(letters(n))
}

// YearLetters formats a Hebrew year without its thousands, e.g. 5785 → תשפ״ה.
// A year that is a multiple of 1000 yields the empty string.
func YearLetters(year int) string {
	n := ((year % 1000) + 1000) % 1000
	return punctuate(letters(n))
}

// Value decodes a letter numeral back to its integer value. Geresh, gershayim,
// ASCII quotes and anything that is not a Hebrew letter are ignored.
func Value(s string) int {
	total := 0
	for _, r := range s {
		total += letterValues[r]
	}
	return total
}

// Label builds the full Hebrew date string, e.g. "ט״ו בניסן תשפ״ה".
func Label(day int, month string, year int) string {
	return DayLetters(day) + " ב" + MonthName(month) + " " + YearLetters(year)
}
