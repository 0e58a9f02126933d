package colormix

import (
	"math"
	"testing"
)

func TestClamp(t *testing.T) {
	tests := []struct {
		name     string
		x        float64
		expected float64
	}{
		{"below", -0.5, 0},
		{"inside", 0.25, 0.25},
		{"above", 1.5, 1},
		{"nan", math.NaN(), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Clamp(tt.x, 0, 1); got != tt.expected {
				t.Errorf("Clamp(%v, 0, 1) = %v, expected %v", tt.x, got, tt.expected)
			}
		})
	}
}

func TestLerpDoesNotClamp(t *testing.T) {
	if got := Lerp(0, 10, 1.5); got != 15 {
		t.Errorf("Lerp(0, 10, 1.5) = %v, expected 15", got)
	}
	if got := Lerp(5, 95, 0); got != 5 {
		t.Errorf("Lerp(5, 95, 0) = %v, expected 5", got)
	}
}

func TestHexToRGB(t *testing.T) {
	tests := []struct {
		in       string
		expected RGB
	}{
		{"#ffb36b", RGB{255, 179, 107}},
		{"ffb36b", RGB{255, 179, 107}},
		{"#f0c", RGB{255, 0, 204}},
		{"#000000", RGB{0, 0, 0}},
		{"not-a-color", RGB{0, 0, 0}},
		{"#12345", RGB{0, 0, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := HexToRGB(tt.in); got != tt.expected {
				t.Errorf("HexToRGB(%q) = %+v, expected %+v", tt.in, got, tt.expected)
			}
		})
	}

	if _, err := ParseHex("#zzz"); err == nil {
		t.Error("ParseHex(#zzz) returned no error")
	}
}

func TestRGBToHexRoundTrip(t *testing.T) {
	for _, hex := range []string{"#0f1025", "#a6d8ff", "#e9f6ff", "#2b1242"} {
		if got := RGBToHex(HexToRGB(hex)); got != hex {
			t.Errorf("round trip of %s gave %s", hex, got)
		}
	}
}

func TestMixColor(t *testing.T) {
	tests := []struct {
		name     string
		a, b     string
		t        float64
		expected string
	}{
		{"start", "#000000", "#ffffff", 0, "#000000"},
		{"end", "#000000", "#ffffff", 1, "#ffffff"},
		{"half rounds up", "#000000", "#ffffff", 0.5, "#808080"},
		{"per channel", "#0f1025", "#2b1242", 0.5, "#1d1134"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := MixColor(tt.a, tt.b, tt.t); got != tt.expected {
				t.Errorf("MixColor(%s, %s, %v) = %s, expected %s", tt.a, tt.b, tt.t, got, tt.expected)
			}
		})
	}
}

func TestMixGradient(t *testing.T) {
	g := MixGradient("#000000", "#ffffff", "#ffffff", "#000000", 0.5)
	if g.Top != "#808080" || g.Bottom != "#808080" {
		t.Errorf("MixGradient mid = %+v", g)
	}
	if css := g.CSS(); css != "linear-gradient(180deg, #808080, #808080)" {
		t.Errorf("CSS() = %q", css)
	}
}

func TestRadialCSS(t *testing.T) {
	g := LinearGradient("#2b1242", "#8a2e4e").Radial(Percent{X: 5, Y: 85})
	expected := "radial-gradient(circle at 5.0% 85.0%, #8a2e4e, #2b1242)"
	if css := g.CSS(); css != expected {
		t.Errorf("CSS() = %q, expected %q", css, expected)
	}
}
