package track

import (
	"fmt"

	"seqview/internal/board"
	"seqview/internal/feature"
	"seqview/internal/sample"
	"seqview/internal/scale"
)

// DefaultMinRatio fades letters out below one cell per residue.
var DefaultMinRatio = [2]float64{1, 2}

// Background is the colour faded letters blend into.
var Background = "#000000"

const sequenceRule = "#DDDDDD"

type SequenceOptions struct {
	Options
	// MinRatio is the pixels-per-residue interval over which letters fade in.
	MinRatio [2]float64
}

type glyph struct {
	px    int
	r     rune
	color string
}

// Sequence draws one letter per position.
type Sequence struct {
	base
	minRatio [2]float64
	shown    []feature.Element
	glyphs   []glyph
	opacity  float64
}

func NewSequence(o SequenceOptions, data []feature.Element) *Sequence {
	if o.MinRatio[1] <= 0 {
		o.MinRatio = DefaultMinRatio
	}
	return &Sequence{
		base:     newBase(o.Options, data, 1),
		minRatio: o.MinRatio,
		opacity:  1,
	}
}

func (s *Sequence) Kind() Kind { return KindSequence }

// Opacity is the letter opacity at the current zoom.
func (s *Sequence) Opacity() float64 { return s.opacity }

func (s *Sequence) Update(r board.Range) {
	s.shown = visible(s.data, r)
	for _, e := range s.shown {
		if e.Label == "" {
			s.warnOnce(fmt.Sprintf("no label from position %d on, drawn empty", e.Begin))
			break
		}
	}
	s.Move()
}

func (s *Sequence) Move() {
	if s.x == nil {
		return
	}
	s.opacity = sample.Opacity(scale.PixelsPerUnit(s.x), s.minRatio, sample.DefaultMinOpacity)
	s.glyphs = s.glyphs[:0]
	for _, e := range s.shown {
		color := Fade(s.color(e), Background, s.opacity)
		for i, r := range []rune(e.Label) {
			s.glyphs = append(s.glyphs, glyph{px: s.px(float64(e.Begin + i)), r: r, color: color})
		}
	}
}

func (s *Sequence) Draw(c *Canvas) {
	s.shade(c)
	mid := s.Height() / 2
	for cx := 0; cx < c.Width(); cx += 2 {
		c.Put(cx, mid, '┄', sequenceRule)
	}
	for _, g := range s.glyphs {
		c.Put(g.px/2, mid, g.r, g.color)
	}
}

func (s *Sequence) Hit(px int) (feature.Element, bool) {
	if s.x == nil {
		return feature.Element{}, false
	}
	pos := s.position(px)
	for _, e := range s.shown {
		if pos >= e.Begin && pos < e.Begin+max(1, len([]rune(e.Label))) {
			return e, true
		}
	}
	return feature.Element{}, false
}

// Click selects the residue under px.
func (s *Sequence) Click(px int, additive bool) (feature.Element, bool) {
	if s.x == nil {
		return feature.Element{}, false
	}
	pos := s.position(px)
	e := feature.Span(pos, pos)
	s.selectRegion(e, additive)
	return e, true
}
