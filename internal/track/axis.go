package track

import (
	"math"
	"strconv"

	"seqview/internal/board"
	"seqview/internal/feature"
)

const axisColor = "#888888"

// Axis draws position ticks for the current window.
type Axis struct {
	base
	ticks []float64
	proj  []int
}

func NewAxis(o Options) *Axis {
	return &Axis{base: newBase(o, nil, 2)}
}

func (a *Axis) Kind() Kind { return KindAxis }

// Ticks returns the tick positions of the last update.
func (a *Axis) Ticks() []float64 { return a.ticks }

func (a *Axis) Update(r board.Range) {
	if a.x == nil {
		return
	}
	rg := a.x.Range()
	// one label every ten cells
	n := max(2, int(math.Abs(rg[1]-rg[0]))/20)
	d := a.x.Domain()
	a.ticks = Ticks(d[0], d[1], n)
	a.Move()
}

func (a *Axis) Move() {
	if a.x == nil {
		return
	}
	a.proj = a.proj[:0]
	for _, t := range a.ticks {
		a.proj = append(a.proj, a.px(t))
	}
}

func (a *Axis) Draw(c *Canvas) {
	a.shade(c)
	for cx := 0; cx < c.Width(); cx++ {
		c.Put(cx, 0, '─', axisColor)
	}
	next := 0
	for i, px := range a.proj {
		cx := px / 2
		c.Put(cx, 0, '┬', axisColor)
		label := FormatTick(a.ticks[i])
		if cx >= next {
			c.Text(cx, 1, label, axisColor)
			next = cx + len(label) + 1
		}
	}
}

func (a *Axis) Hit(int) (feature.Element, bool) { return feature.Element{}, false }

func (a *Axis) Click(int, bool) (feature.Element, bool) { return feature.Element{}, false }

// Ticks returns up to about n integer positions inside [min, max] on a 1, 2, 2.5, 5
// step pattern.
func Ticks(min, max float64, n int) []float64 {
	if n < 2 || math.IsNaN(min) || math.IsNaN(max) {
		return nil
	}
	if max <= min {
		max = min + 1
	}
	span := max - min
	mag := math.Pow(10, math.Floor(math.Log10(span/float64(n-1))))
	bestStep := 0.0
	bestScore := math.MaxFloat64
	for _, m := range []float64{1, 2, 2.5, 5, 10} {
		step := m * mag
		if step < 1 || step != math.Trunc(step) {
			continue
		}
		count := math.Floor(span/step) + 1
		if diff := math.Abs(count - float64(n)); diff < bestScore {
			bestScore = diff
			bestStep = step
		}
	}
	if bestStep == 0 {
		bestStep = 1
	}
	var out []float64
	for v := math.Ceil(min/bestStep) * bestStep; v <= max; v += bestStep {
		out = append(out, v)
	}
	return out
}

func FormatTick(v float64) string {
	return strconv.FormatInt(int64(math.Round(v)), 10)
}
