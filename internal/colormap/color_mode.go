package colormap

import "strings"

type ColorMode string

const (
	// Colors as read from the source file
	RGB ColorMode = "RGB"
	// Elevation ramp red, orange, yellow, green, cyan, blue, purple
	Rainbow ColorMode = "RAINBOW"
	// Elevation ramp red, orange, yellow
	Warm ColorMode = "WARM"
	// Elevation ramp green, cyan, blue
	Cold ColorMode = "COLD"
)

func (m ColorMode) String() string {
	switch m {
	case RGB, Rainbow, Warm, Cold:
		return string(m)
	}
	return ""
}

func ParseColorMode(value string) ColorMode {
	switch strings.TrimSpace(strings.ToUpper(value)) {
	case "RGB":
		return RGB
	case "RAINBOW":
		return Rainbow
	case "WARM":
		return Warm
	case "COLD":
		return Cold
	}
	return ""
}
