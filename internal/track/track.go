// Package track renders board rows into terminal canvases: scalar lines, annotation
// blocks, sequence letters and the position axis.
package track

import (
	"fmt"
	"math"

	"seqview/internal/board"
	"seqview/internal/feature"
	"seqview/internal/logging"
	"seqview/internal/scale"
	"seqview/internal/selection"
)

// Kind is a display type.
type Kind string

const (
	KindLine     Kind = "line"
	KindBlock    Kind = "block"
	KindSequence Kind = "sequence"
	KindAxis     Kind = "axis"
)

// ParseKind validates a display type name.
func ParseKind(s string) (Kind, error) {
	switch k := Kind(s); k {
	case KindLine, KindBlock, KindSequence, KindAxis:
		return k, nil
	}
	return "", fmt.Errorf("unknown display type %q", s)
}

// SelectColor is the background of selected regions.
const SelectColor = "#264F78"

// Track is a board track that draws itself into a Canvas. Pointer positions are
// micro columns, which are board pixels.
type Track interface {
	board.Track
	ID() string
	Title() string
	Kind() Kind
	Draw(c *Canvas)
	// Hit returns the element under px.
	Hit(px int) (feature.Element, bool)
	// Click selects the region under px through the board and returns it.
	Click(px int, additive bool) (feature.Element, bool)
}

// Options are shared by all display types.
type Options struct {
	ID     string
	Title  string
	Color  string
	Height int // in cells
}

type base struct {
	opts      Options
	x         scale.Reader
	highlight board.HighlightFunc
	data      []feature.Element
	marks     map[selection.Mode][]feature.Element
	styles    map[selection.Mode]*board.Style
	spans     map[selection.Mode][][2]int
	warned    map[string]bool
}

func newBase(o Options, data []feature.Element, minHeight int) base {
	if o.Height < minHeight {
		o.Height = minHeight
	}
	return base{
		opts:   o,
		data:   data,
		marks:  make(map[selection.Mode][]feature.Element),
		styles: make(map[selection.Mode]*board.Style),
		spans:  make(map[selection.Mode][][2]int),
		warned: make(map[string]bool),
	}
}

func (b *base) ID() string    { return b.opts.ID }
func (b *base) Title() string { return b.opts.Title }
func (b *base) Height() int   { return b.opts.Height }

// Data returns the elements the track was built with.
func (b *base) Data() []feature.Element { return b.data }

func (b *base) Attach(x scale.Reader, highlight board.HighlightFunc) {
	b.x = x
	b.highlight = highlight
}

func (b *base) HighlightRegion(els []feature.Element, style *board.Style) {
	mode := selection.Select
	if style != nil {
		mode = selection.Hover
	}
	b.marks[mode] = els
	b.styles[mode] = style
	b.MoveSelection(mode)
}

func (b *base) MoveSelection(mode selection.Mode) {
	if b.x == nil {
		return
	}
	els := b.marks[mode]
	spans := make([][2]int, 0, len(els))
	for _, e := range els {
		spans = append(spans, [2]int{b.px(float64(e.Begin) - 0.5), b.px(float64(e.Stop()) + 0.5)})
	}
	b.spans[mode] = spans
}

// Spans returns the highlighted pixel spans for mode.
func (b *base) Spans(mode selection.Mode) [][2]int { return b.spans[mode] }

func (b *base) shade(c *Canvas) {
	for _, s := range b.spans[selection.Select] {
		c.Shade(s[0], s[1], SelectColor)
	}
	hover := board.HoverStyle.Color
	if st := b.styles[selection.Hover]; st != nil && st.Color != "" {
		hover = st.Color
	}
	for _, s := range b.spans[selection.Hover] {
		c.Shade(s[0], s[1], hover)
	}
}

// warnOnce logs each distinct degraded-data message once per track.
func (b *base) warnOnce(msg string) {
	if msg == "" || b.warned[msg] {
		return
	}
	b.warned[msg] = true
	logging.Warnf("track %s: %s", b.opts.ID, msg)
}

func (b *base) color(e feature.Element) string {
	c, warning := elementColor(e.Color, b.opts.Color)
	b.warnOnce(warning)
	return c
}

func (b *base) px(v float64) int {
	return int(math.Round(b.x.Map(v)))
}

// position is the sequence position under pixel px.
func (b *base) position(px int) int {
	return int(math.Round(b.x.Invert(float64(px))))
}

func (b *base) selectRegion(e feature.Element, additive bool) {
	if b.highlight == nil {
		return
	}
	op := selection.Set
	if additive {
		op = selection.Add
	}
	b.highlight(&e, op, selection.Select)
}

func visible(data []feature.Element, r board.Range) []feature.Element {
	var out []feature.Element
	for _, e := range data {
		if e.Overlaps(r.From, r.To) {
			out = append(out, e)
		}
	}
	return out
}
