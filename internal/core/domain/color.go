package domain

// ColorGamut is the color space a surface is rendered in.
type ColorGamut uint8

const (
	GamutSRGB ColorGamut = iota
	GamutDisplayP3
	GamutBT2020
)

var gamutNames = [...]string{
	GamutSRGB:      "srgb",
	GamutDisplayP3: "p3",
	GamutBT2020:    "bt2020",
}

func (g ColorGamut) String() string {
	if int(g) < len(gamutNames) {
		return gamutNames[g]
	}
	return "srgb"
}

// ParseColorGamut resolves the name produced by String.
func ParseColorGamut(s string) (ColorGamut, bool) {
	for g, name := range gamutNames {
		if name == s {
			return ColorGamut(g), true
		}
	}
	return GamutSRGB, false
}

// WiderThan reports whether g covers strictly more colors than o.
func (g ColorGamut) WiderThan(o ColorGamut) bool {
	return g > o
}

// Screen is the per-frame state of a screen that owns cached windows.
type Screen struct {
	ID                  ScreenID
	PoweredOn           bool
	ProcessOneMoreFrame bool
	Gamut               ColorGamut
	HDROn               bool
	ScRGB               bool
	// GamutAuthoritative marks a display gamut change that must be honored
	// even when it narrows the published target.
	GamutAuthoritative bool
}
