package sample

// DefaultMinOpacity is the floor reached when zoomed far out.
const DefaultMinOpacity = 0.2

// Opacity fades glyph layers while the view is too dense to read them. ratio is the
// current pixels per unit; below thresholds[1] the opacity falls linearly towards
// minOpacity, which is reached at thresholds[0] and never undershot.
func Opacity(ratio float64, thresholds [2]float64, minOpacity float64) float64 {
	a, b := thresholds[0], thresholds[1]
	if ratio >= b {
		return 1
	}
	if b <= a || ratio <= a {
		return minOpacity
	}
	return (1-minOpacity)/(b-a)*(ratio-a) + minOpacity
}
