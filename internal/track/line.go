package track

import (
	"fmt"
	"math"
	"strings"

	"seqview/internal/board"
	"seqview/internal/feature"
	"seqview/internal/sample"
	"seqview/internal/scale"
)

// Interpolation is how consecutive line vertices are joined.
type Interpolation int

const (
	Step Interpolation = iota
	Linear
)

func ParseInterpolation(s string) (Interpolation, error) {
	switch strings.ToLower(s) {
	case "", "step":
		return Step, nil
	case "linear":
		return Linear, nil
	}
	return Step, fmt.Errorf("unknown interpolation %q", s)
}

type LineOptions struct {
	Options
	// Domain is the value range drawn between the bottom and top of the row.
	Domain        []float64
	MaxPoints     int
	Interpolation Interpolation
}

// Line draws a down-sampled scalar series.
type Line struct {
	base
	y         *scale.Linear
	maxPoints int
	interp    Interpolation
	points    []sample.Point
	proj      [][2]int
	byPos     map[int]feature.Element
}

// NewLine fails with scale.ErrUnknownFormat when the value domain or height is unusable.
func NewLine(o LineOptions, data []feature.Element) (*Line, error) {
	l := &Line{
		base:      newBase(o.Options, data, 1),
		maxPoints: o.MaxPoints,
		interp:    o.Interpolation,
	}
	y, err := scale.NewValue(o.Domain, l.Height()*4)
	if err != nil {
		return nil, fmt.Errorf("line track %s: %w", o.ID, err)
	}
	l.y = y
	return l, nil
}

func (l *Line) Kind() Kind { return KindLine }

// Points returns the vertices of the last update.
func (l *Line) Points() []sample.Point { return l.points }

func (l *Line) Update(r board.Range) {
	if l.x == nil {
		return
	}
	els := visible(l.data, r)
	samples := make([]sample.Point, 0, len(els))
	l.byPos = make(map[int]feature.Element, len(els))
	for _, e := range els {
		samples = append(samples, sample.Point{X: float64(e.Begin), Y: e.Value})
		l.byPos[e.Begin] = e
	}
	l.points = sample.Downsample(samples, l.x.Domain(), l.maxPoints)
	l.Move()
}

func (l *Line) Move() {
	if l.x == nil {
		return
	}
	l.proj = l.proj[:0]
	for _, p := range l.points {
		l.proj = append(l.proj, [2]int{l.px(p.X), int(math.Round(l.y.Map(p.Y)))})
	}
}

func (l *Line) Draw(c *Canvas) {
	l.shade(c)
	color := l.color(feature.Element{})
	for i := 1; i < len(l.proj); i++ {
		a, b := l.proj[i-1], l.proj[i]
		if l.interp == Linear {
			c.Line(a[0], a[1], b[0], b[1], color)
			continue
		}
		mid := (a[0] + b[0]) / 2
		c.Line(a[0], a[1], mid, a[1], color)
		c.Line(mid, a[1], mid, b[1], color)
		c.Line(mid, b[1], b[0], b[1], color)
	}
}

func (l *Line) Hit(px int) (feature.Element, bool) {
	if l.x == nil {
		return feature.Element{}, false
	}
	e, ok := l.byPos[l.position(px)]
	return e, ok
}

// Click selects the single position under px.
func (l *Line) Click(px int, additive bool) (feature.Element, bool) {
	if l.x == nil {
		return feature.Element{}, false
	}
	pos := l.position(px)
	e := feature.Span(pos, pos)
	l.selectRegion(e, additive)
	return e, true
}
