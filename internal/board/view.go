package board

import (
	"math"

	"seqview/internal/scale"
)

// Range is a logical window [From, To] on the position axis.
type Range struct {
	From float64
	To   float64
}

func (r Range) Width() float64 { return r.To - r.From }

func (r Range) Domain() [2]float64 { return [2]float64{r.From, r.To} }

// Limits bound navigation: the window stays inside [Min, Max] and its width
// inside [MinZoom, MaxZoom].
type Limits struct {
	Min     float64
	Max     float64
	MinZoom float64
	MaxZoom float64
}

// DefaultLimits are used until SetRange is called.
func DefaultLimits() Limits {
	return Limits{Min: -1.5, Max: 1e9, MinZoom: 20, MaxZoom: 1e9}
}

// Clamp resolves a candidate domain. It reports false when the window is narrower
// than MinZoom. Wider than MaxZoom shows the full extent; otherwise the window is
// translated back inside [Min, Max] keeping its width.
func (l Limits) Clamp(d [2]float64) ([2]float64, bool) {
	w := d[1] - d[0]
	if w < l.MinZoom {
		return d, false
	}
	switch {
	case w > l.MaxZoom:
		return [2]float64{l.Min, l.Max}, true
	case d[0] < l.Min:
		return [2]float64{l.Min, l.Min + w}, true
	case d[1] > l.Max:
		return [2]float64{l.Max - w, l.Max}, true
	}
	return d, true
}

// Transform is a zoom gesture: scale by K, then translate by X pixels. Y is kept for
// pointer input but ignored by the horizontal board.
type Transform struct {
	X float64
	Y float64
	K float64
}

// Identity is the neutral transform.
var Identity = Transform{K: 1}

func (t Transform) IsIdentity() bool {
	return t.X == 0 && t.Y == 0 && t.K == 1
}

// Translate pans by dx pixels.
func Translate(dx float64) Transform {
	return Transform{X: dx, K: 1}
}

// ZoomAt scales by k keeping the pixel px fixed.
func ZoomAt(px, k float64) Transform {
	return Transform{X: px - px*k, K: k}
}

// RescaleX applies the transform to the scale's current domain.
func (t Transform) RescaleX(s scale.Reader) [2]float64 {
	k := t.K
	if k == 0 || math.IsNaN(k) {
		k = 1
	}
	r := s.Range()
	a := s.Invert((r[0] - t.X) / k)
	b := s.Invert((r[1] - t.X) / k)
	if a > b {
		a, b = b, a
	}
	return [2]float64{a, b}
}
