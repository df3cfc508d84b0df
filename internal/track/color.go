package track

import (
	"fmt"

	"github.com/lucasb-eyer/go-colorful"
)

// DefaultColor is used when neither the element nor the track has a usable colour.
const DefaultColor = "#CCCCCC"

// ValidColor reports whether s is a #RGB or #RRGGBB colour.
func ValidColor(s string) bool {
	_, err := colorful.Hex(s)
	return err == nil
}

// Fade blends hex toward background by 1-opacity.
func Fade(hex, background string, opacity float64) string {
	if opacity >= 1 {
		return hex
	}
	c, err := colorful.Hex(hex)
	if err != nil {
		return hex
	}
	bg, err := colorful.Hex(background)
	if err != nil {
		bg = colorful.Color{}
	}
	if opacity < 0 {
		opacity = 0
	}
	return bg.BlendRgb(c, opacity).Clamped().Hex()
}

// elementColor picks the element colour, then the track colour, then DefaultColor.
// warning is set when a fallback was needed.
func elementColor(el, track string) (color, warning string) {
	if el != "" {
		if ValidColor(el) {
			return el, ""
		}
		warning = fmt.Sprintf("invalid element colour %q", el)
	}
	if ValidColor(track) {
		return track, warning
	}
	return DefaultColor, fmt.Sprintf("colour not found, using %s", DefaultColor)
}
