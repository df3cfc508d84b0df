package board

import (
	"seqview/internal/bus"
	"seqview/internal/feature"
	"seqview/internal/selection"
)

// HighlightRegion changes the selection for mode, announces it and redraws the
// highlights of every track from the full selection. A nil element clears the mode.
func (b *Board) HighlightRegion(e *feature.Element, op selection.Op, mode selection.Mode) {
	if e != nil {
		b.sel.Apply(mode, op, selection.Entry{Element: *e, OwnerID: b.id})
	} else {
		b.sel.ClearSelection(mode)
	}

	b.bus.Publish(bus.Event{Origin: b.id, Payload: bus.SelectionChanged{Mode: mode}})
	if mode == selection.Hover {
		els := b.sel.Elements(selection.Hover)
		for _, fn := range b.hoverListeners {
			fn(els)
		}
	}
	b.redrawHighlight(mode)
}

func (b *Board) redrawHighlight(mode selection.Mode) {
	var style *Style
	if mode == selection.Hover {
		style = HoverStyle
	}
	els := b.sel.Elements(mode)
	for _, t := range b.tracks {
		t.HighlightRegion(els, style)
	}
}

// OnElementClick registers fn for element clicks and double clicks.
func (b *Board) OnElementClick(fn func(feature.Element)) {
	b.clickListeners = append(b.clickListeners, fn)
}

// OnHover registers fn for hover selection changes made by this board.
func (b *Board) OnHover(fn func([]feature.Element)) {
	b.hoverListeners = append(b.hoverListeners, fn)
}

// ElementClick selects e, adding to the selection when additive.
func (b *Board) ElementClick(e feature.Element, additive bool) {
	op := selection.Set
	if additive {
		op = selection.Add
	}
	b.HighlightRegion(&e, op, selection.Select)
	b.ElementClicked(e)
}

// ElementClicked notifies click listeners of a selection a track already made.
func (b *Board) ElementClicked(e feature.Element) {
	for _, fn := range b.clickListeners {
		fn(e)
	}
}

// DoubleClick clears the selection.
func (b *Board) DoubleClick() {
	b.HighlightRegion(nil, selection.Set, selection.Select)
	for _, fn := range b.clickListeners {
		fn(ClearedClick)
	}
}

// ElementEnter hovers an element. Position hover stops until ElementLeave.
func (b *Board) ElementEnter(e feature.Element) {
	if !b.opts.HighlightHoverElement {
		return
	}
	b.bus.SetCondition(bus.StopMouseMoveHoveringHighlight, true)
	b.HighlightRegion(&e, selection.Set, selection.Hover)
}

func (b *Board) ElementLeave() {
	if !b.opts.HighlightHoverElement {
		return
	}
	b.HighlightRegion(nil, selection.Set, selection.Hover)
	b.bus.SetCondition(bus.StopMouseMoveHoveringHighlight, false)
}

// MouseMove hovers the position under the pointer.
func (b *Board) MouseMove(position int) {
	if !b.opts.HighlightHoverPosition || b.bus.Condition(bus.StopMouseMoveHoveringHighlight) {
		return
	}
	e := feature.Element{Begin: position, NonSpecific: true}
	b.HighlightRegion(&e, selection.Set, selection.Hover)
}

// MouseLeave clears the position hover when the pointer leaves the board.
func (b *Board) MouseLeave() {
	b.bus.Publish(bus.Event{Origin: b.id, Payload: bus.BoardHover{Inside: false}})
	if !b.opts.HighlightHoverPosition || b.bus.Condition(bus.StopMouseMoveHoveringHighlight) {
		return
	}
	if b.sel.Len(selection.Hover) > 0 {
		b.HighlightRegion(nil, selection.Set, selection.Hover)
	}
}
