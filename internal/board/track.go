package board

import (
	"seqview/internal/feature"
	"seqview/internal/scale"
	"seqview/internal/selection"
)

// HighlightFunc is handed to tracks so that clicks and hovers on their elements reach
// the board. A nil element clears the mode.
type HighlightFunc func(e *feature.Element, op selection.Op, mode selection.Mode)

// Style decorates highlighted regions; nil means the default select style.
type Style struct {
	Color string
	Class string
}

// HoverStyle is applied to hover highlights.
var HoverStyle = &Style{Color: "#FFCCCC", Class: "hover"}

// Track is a row renderer bound to the board's position scale.
type Track interface {
	Attach(x scale.Reader, highlight HighlightFunc)
	// Update recomputes the track data for a new window.
	Update(r Range)
	// Move repositions already computed data after the scale changed.
	Move()
	HighlightRegion(els []feature.Element, style *Style)
	MoveSelection(mode selection.Mode)
	Height() int
}

// Mount is the surface a board renders into. Observe reports its visibility until
// the returned stop func is called.
type Mount interface {
	Observe(visible func(bool)) (stop func())
}

// MountResolver finds the mount for a board id.
type MountResolver interface {
	Mount(id string) (Mount, bool)
}
