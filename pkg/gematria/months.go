package gematria

import (
	"strings"
	"unicode"
)

var monthNames = map[string]string{
	"nisan":       "ניסן",
	"iyar":        "אייר",
	"iyyar":       "אייר",
	"sivan":       "סיון",
	"tamuz":       "תמוז",
	"tammuz":      "תמוז",
	"av":          "אב",
	"elul":        "אלול",
	"tishrei":     "תשרי",
	"cheshvan":    "חשון",
	"heshvan":     "חשון",
	"marcheshvan": "חשון",
	"marheshvan":  "חשון",
	"kislev":      "כסלו",
	"tevet":       "טבת",
	"teveth":      "טבת",
	"shevat":      "שבט",
	"shvat":       "שבט",
	"shebat":      "שבט",
	"adar":        "אדר",
	"adari":       "אדר א׳",
	"adar1":       "אדר א׳",
	"adarii":      "אדר ב׳",
	"adar2":       "אדר ב׳",
}

// normalizeMonth lowercases name and strips whitespace, quotes, geresh,
// gershayim and dots.
func normalizeMonth(name string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(name) {
		switch {
		case unicode.IsSpace(r):
		case r == '"' || r == '\'' || r == '.' || r == '׳' || r == '״':
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// MonthName maps a transliterated month name ("Sh'vat", "Adar II", ...) to its
// Hebrew spelling. Names that are not in the table are returned unchanged.
func MonthName(name string) string {
	if heb, ok := monthNames[normalizeMonth(name)]; ok {
		return heb
	}
	return name
}
