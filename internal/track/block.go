package track

import (
	"github.com/mattn/go-runewidth"

	"seqview/internal/board"
	"seqview/internal/feature"
)

// Block draws annotation spans as filled bars.
type Block struct {
	base
	shown []feature.Element
	rects [][2]int
}

func NewBlock(o Options, data []feature.Element) *Block {
	return &Block{base: newBase(o, data, 1)}
}

func (b *Block) Kind() Kind { return KindBlock }

func (b *Block) Update(r board.Range) {
	b.shown = visible(b.data, r)
	b.Move()
}

func (b *Block) Move() {
	if b.x == nil {
		return
	}
	b.rects = b.rects[:0]
	for _, e := range b.shown {
		x0 := b.px(float64(e.Begin) - 0.5)
		x1 := b.px(float64(e.Stop()) + 0.5)
		if x1 <= x0 {
			x1 = x0 + 1
		}
		b.rects = append(b.rects, [2]int{x0, x1 - 1})
	}
}

func (b *Block) Draw(c *Canvas) {
	b.shade(c)
	hMic := b.Height() * 4
	top, bottom := 1, hMic-2
	if hMic <= 4 {
		top, bottom = 0, hMic-1
	}
	for i, e := range b.shown {
		r := b.rects[i]
		color := b.color(e)
		for mx := r[0]; mx <= r[1]; mx++ {
			for my := top; my <= bottom; my++ {
				c.SetPixel(mx, my, color)
			}
		}
		if e.Label == "" {
			continue
		}
		cells := r[1]/2 - r[0]/2 - 1
		if w := runewidth.StringWidth(e.Label); w <= cells {
			start := r[0]/2 + 1 + (cells-w)/2
			c.Text(start, b.Height()/2, e.Label, color)
		}
	}
}

// Hit returns the topmost span under px.
func (b *Block) Hit(px int) (feature.Element, bool) {
	for i := len(b.rects) - 1; i >= 0; i-- {
		if px >= b.rects[i][0] && px <= b.rects[i][1] {
			return b.shown[i], true
		}
	}
	return feature.Element{}, false
}

func (b *Block) Click(px int, additive bool) (feature.Element, bool) {
	e, ok := b.Hit(px)
	if !ok {
		return e, false
	}
	b.selectRegion(e, additive)
	return e, true
}
