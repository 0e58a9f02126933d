package lunar

// Crater is a circle of surface texture in disc coordinates (80x80 disc).
type Crater struct {
	CX float64 `json:"cx"`
	CY float64 `json:"cy"`
	R  float64 `json:"r"`
	// Rim marks craters that also get a darker outline.
	Rim bool `json:"rim,omitempty"`
}

// Craters is the texture drawn over the lit region of the disc, clipped to
// the silhouette path.
var Craters = []Crater{
	{35, 15, 2.4, false}, {50, 18, 1.6, false}, {25, 20, 1.8, false}, {42, 12, 1.4, false}, {60, 15, 1.2, false},
	{18, 28, 3.2, true}, {62, 25, 2.8, false}, {45, 28, 1.8, false}, {32, 22, 1.5, false}, {68, 32, 1.6, false},
	{28, 38, 4.2, true}, {55, 35, 3.8, true}, {40, 42, 2.6, false}, {15, 45, 2.4, true}, {65, 40, 2.0, false},
	{22, 48, 2.2, false}, {58, 48, 2.8, true}, {38, 55, 1.8, false}, {45, 52, 1.4, false}, {28, 58, 1.6, false},
	{32, 62, 2.0, false}, {48, 60, 1.6, false}, {55, 65, 1.3, false}, {40, 68, 1.5, false},
	{12, 40, 1.8, false}, {70, 50, 1.4, false}, {10, 25, 1.2, false},
}

// ScaledCraters returns the craters for a disc of radius r.
func ScaledCraters(r float64) []Crater {
	k := r / 40
	out := make([]Crater, len(Craters))
	for i, c := range Craters {
		out[i] = Crater{CX: c.CX * k, CY: c.CY * k, R: c.R * k, Rim: c.Rim}
	}
	return out
}
