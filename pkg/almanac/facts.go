package almanac

import "math/rand/v2"

// DefaultFacts is served when no facts file is configured.
var DefaultFacts = []string{
	"הירח תמיד מראה לנו את אותו הצד.",
	"אור הירח הוא בעצם אור שמש שמוחזר ממנו.",
	"ליקוי ירח מלא צובע את הירח באדום נחושת!",
}

// PickFact returns a random fact other than prev when the list offers one.
// It returns "" for an empty list.
func PickFact(facts []string, prev string, r *rand.Rand) string {
	if len(facts) == 0 {
		return ""
	}
	candidates := make([]string, 0, len(facts))
	for _, f := range facts {
		if f != prev {
			candidates = append(candidates, f)
		}
	}
	if len(candidates) == 0 {
		candidates = facts
	}
	return candidates[r.IntN(len(candidates))]
}
