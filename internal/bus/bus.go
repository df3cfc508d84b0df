// Package bus broadcasts board state changes between boards, rows and the front end.
package bus

import (
	"sync"

	"seqview/internal/selection"
)

// Kind identifies an event payload.
type Kind int

const (
	KindScaleChanged Kind = iota
	KindSelectionChanged
	KindTrackVisibilityChanged
	KindRowReady
	KindRowHover
	KindBoardHover
)

func (k Kind) String() string {
	switch k {
	case KindScaleChanged:
		return "scale-changed"
	case KindSelectionChanged:
		return "selection-changed"
	case KindTrackVisibilityChanged:
		return "track-visibility-changed"
	case KindRowReady:
		return "row-ready"
	case KindRowHover:
		return "row-hover"
	case KindBoardHover:
		return "board-hover"
	}
	return "unknown"
}

// Payload is implemented by every event body.
type Payload interface {
	Kind() Kind
}

// ScaleChanged announces a committed domain on the shared position scale.
type ScaleChanged struct{}

// SelectionChanged announces a mutation of the selection store for Mode.
type SelectionChanged struct {
	Mode selection.Mode
}

// TrackVisibilityChanged shows or hides a row.
type TrackVisibilityChanged struct {
	TrackID string
	Visible bool
}

// RowReady reports a laid out row and its height in cells.
type RowReady struct {
	TrackID string
	Height  int
}

// RowHover names the hovered row; empty means none.
type RowHover struct {
	TrackID string
}

// BoardHover reports the pointer entering or leaving a board.
type BoardHover struct {
	Inside bool
}

func (ScaleChanged) Kind() Kind           { return KindScaleChanged }
func (SelectionChanged) Kind() Kind       { return KindSelectionChanged }
func (TrackVisibilityChanged) Kind() Kind { return KindTrackVisibilityChanged }
func (RowReady) Kind() Kind               { return KindRowReady }
func (RowHover) Kind() Kind               { return KindRowHover }
func (BoardHover) Kind() Kind             { return KindBoardHover }

// Event is a payload tagged with the id of the board that produced it.
// Receivers drop events whose Origin is their own id.
type Event struct {
	Origin  string
	Payload Payload
}

// Kind returns the payload kind.
func (e Event) Kind() Kind { return e.Payload.Kind() }

// Condition is a shared interaction flag.
type Condition int

const (
	// StopMouseMoveHoveringHighlight is set while an element is hovered so that
	// pointer movement does not replace the element highlight with a position.
	StopMouseMoveHoveringHighlight Condition = iota
)

type subscriber struct {
	id int
	fn func(Event)
}

// Bus delivers events synchronously, in subscription order.
type Bus struct {
	mu     sync.RWMutex
	subs   []subscriber
	nextID int
	conds  map[Condition]bool
}

func New() *Bus {
	return &Bus{conds: make(map[Condition]bool)}
}

// Subscribe registers fn and returns a function that removes it.
func (b *Bus) Subscribe(fn func(Event)) (unsubscribe func()) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.nextID++
	id := b.nextID
	b.subs = append(b.subs, subscriber{id: id, fn: fn})
	var once sync.Once
	return func() {
		once.Do(func() { b.remove(id) })
	}
}

func (b *Bus) remove(id int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for i, s := range b.subs {
		if s.id == id {
			b.subs = append(b.subs[:i:i], b.subs[i+1:]...)
			return
		}
	}
}

// Publish calls every subscriber with e before returning. Subscribers may publish
// or unsubscribe from inside the callback.
func (b *Bus) Publish(e Event) {
	if e.Payload == nil {
		return
	}
	b.mu.RLock()
	subs := b.subs
	b.mu.RUnlock()

	for _, s := range subs {
		s.fn(e)
	}
}

// Channel forwards events to a buffered channel. Sends never block; events are
// dropped while the buffer is full. cancel unsubscribes and closes the channel.
func (b *Bus) Channel(buffer int) (<-chan Event, func()) {
	ch := make(chan Event, buffer)
	var mu sync.Mutex
	closed := false
	unsub := b.Subscribe(func(e Event) {
		mu.Lock()
		defer mu.Unlock()
		if closed {
			return
		}
		select {
		case ch <- e:
		default:
		}
	})
	return ch, func() {
		unsub()
		mu.Lock()
		defer mu.Unlock()
		if !closed {
			closed = true
			close(ch)
		}
	}
}

func (b *Bus) SetCondition(c Condition, v bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.conds[c] = v
}

func (b *Bus) Condition(c Condition) bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.conds[c]
}
