// Package board owns the visible window of a feature viewer row group: it clamps zoom
// and pan gestures, commits domains into the shared position scale and drives the
// move/update cycle of its tracks.
package board

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"

	"seqview/internal/bus"
	"seqview/internal/feature"
	"seqview/internal/logging"
	"seqview/internal/scale"
	"seqview/internal/selection"
)

// ErrMountNotFound is returned by New when the resolver has no surface for the id.
var ErrMountNotFound = errors.New("board: mount not found")

const (
	DefaultWidth         = 920
	DefaultInnerPadding  = 10
	DefaultUpdateDelay   = 300 * time.Millisecond
	DefaultIncreasedView = 1.0
)

// DefaultWindow is the initial window before SetRange.
var DefaultWindow = Range{From: 1, To: 500}

// ClearedClick is the element passed to click listeners on a double click.
var ClearedClick = feature.Element{Begin: math.MinInt}

// Options configures a Board. Zero values select the defaults; Scale, Selection and
// Bus are shared between boards showing the same sequence.
type Options struct {
	Scale     *scale.Linear
	Selection *selection.Store
	Bus       *bus.Bus
	Scheduler Scheduler
	Mounts    MountResolver

	Width        int
	InnerPadding int
	UpdateDelay  time.Duration
	// IncreasedView is added to ranges narrower than the minimum zoom.
	IncreasedView float64

	HighlightHoverElement  bool
	HighlightHoverPosition bool
	// MirrorHover redraws hover highlights coming from other boards.
	MirrorHover bool
}

// Outcome is the result of a navigation request.
type Outcome int

const (
	Ignored Outcome = iota
	Rejected
	Committed
)

func (o Outcome) String() string {
	switch o {
	case Rejected:
		return "rejected"
	case Committed:
		return "committed"
	}
	return "ignored"
}

// Board is not safe for concurrent use. Scheduled updates must run on the same
// goroutine as the other calls, see NewTimerScheduler.
type Board struct {
	id    string
	x     *scale.Linear
	sel   *selection.Store
	bus   *bus.Bus
	sched Scheduler
	mount Mount

	width         int
	innerPadding  int
	updateDelay   time.Duration
	increasedView float64
	opts          Options

	limits   Limits
	location Range
	tracks   []Track
	started  bool
	closed   bool

	updateTask  Task
	upToDate    bool
	visible     bool
	stopObserve func()
	unsubscribe func()

	clickListeners []func(feature.Element)
	hoverListeners []func([]feature.Element)
}

// New creates a board. An empty id gets a random one.
func New(id string, opts Options) (*Board, error) {
	if id == "" {
		id = uuid.NewString()
	}
	b := &Board{
		id:            id,
		x:             opts.Scale,
		sel:           opts.Selection,
		bus:           opts.Bus,
		sched:         opts.Scheduler,
		width:         opts.Width,
		innerPadding:  opts.InnerPadding,
		updateDelay:   opts.UpdateDelay,
		increasedView: opts.IncreasedView,
		opts:          opts,
		limits:        DefaultLimits(),
		location:      DefaultWindow,
		upToDate:      true,
		visible:       true,
	}
	if b.x == nil {
		b.x = scale.NewPosition()
	}
	if b.sel == nil {
		b.sel = selection.NewStore()
	}
	if b.bus == nil {
		b.bus = bus.New()
	}
	if b.sched == nil {
		b.sched = NewTimerScheduler(nil)
	}
	if b.width <= 0 {
		b.width = DefaultWidth
	}
	if b.innerPadding <= 0 {
		b.innerPadding = DefaultInnerPadding
	}
	if b.updateDelay <= 0 {
		b.updateDelay = DefaultUpdateDelay
	}
	if b.increasedView <= 0 {
		b.increasedView = DefaultIncreasedView
	}
	if opts.Mounts != nil {
		m, ok := opts.Mounts.Mount(id)
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrMountNotFound, id)
		}
		b.mount = m
		b.stopObserve = m.Observe(b.SetVisible)
	}
	b.unsubscribe = b.bus.Subscribe(b.receive)
	return b, nil
}

func (b *Board) ID() string                  { return b.id }
func (b *Board) Limits() Limits              { return b.limits }
func (b *Board) Location() Range             { return b.location }
func (b *Board) Width() int                  { return b.width }
func (b *Board) Scale() scale.Reader         { return b.x }
func (b *Board) Bus() *bus.Bus               { return b.bus }
func (b *Board) Selection() *selection.Store { return b.sel }
func (b *Board) Tracks() []Track             { return b.tracks }
func (b *Board) Visible() bool               { return b.visible }

// UpToDate reports whether the last commit was applied to the tracks.
func (b *Board) UpToDate() bool { return b.upToDate }

// Height is the sum of the track heights.
func (b *Board) Height() int {
	h := 0
	for _, t := range b.tracks {
		h += t.Height()
	}
	return h
}

// SetRange sets the navigable extent and the window to [from, to]. A range narrower
// than the minimum zoom is widened by IncreasedView and becomes the minimum zoom.
// The maximum zoom never exceeds the extent.
func (b *Board) SetRange(from, to float64) {
	if to < from {
		from, to = to, from
	}
	if b.limits.MinZoom > to-from {
		delta := b.increasedView * 0.5
		from, to = from-delta, to+delta
		b.limits.MinZoom = to - from
	}
	b.location = Range{From: from, To: to}
	b.limits.Min, b.limits.Max = from, to
	if to-from < b.limits.MaxZoom {
		b.limits.MaxZoom = to - from
	}
}

// SetZoomLimits overrides the window width bounds. Non-positive values keep the
// current bound.
func (b *Board) SetZoomLimits(minZoom, maxZoom float64) {
	if minZoom > 0 {
		b.limits.MinZoom = minZoom
	}
	if maxZoom > 0 {
		b.limits.MaxZoom = math.Min(maxZoom, b.limits.Max-b.limits.Min)
	}
	if b.limits.MinZoom > b.limits.MaxZoom {
		b.limits.MinZoom = b.limits.MaxZoom
	}
}

// SetWidth changes the pixel width. On a started board the scale range follows.
func (b *Board) SetWidth(px int) {
	if px <= 2*b.innerPadding {
		px = 2*b.innerPadding + 1
	}
	b.width = px
	if !b.started {
		return
	}
	b.x.SetRange(float64(b.innerPadding), float64(b.width-b.innerPadding))
	b.updateAndMove()
}

func (b *Board) pixelRange() [2]float64 {
	return [2]float64{float64(b.innerPadding), float64(b.width - b.innerPadding)}
}

// Start fits the window into the zoom limits, configures the scale and lays out the
// tracks. A selection made against a previous scale configuration is dropped. A new
// window on an already configured shared scale replaces its domain and moves the peers.
func (b *Board) Start() {
	w := b.location.Width()
	if w < b.limits.MinZoom {
		b.location.To = b.location.From + b.limits.MinZoom
	} else if w > b.limits.MaxZoom {
		b.location.To = b.location.From + b.limits.MaxZoom
	}
	shared := b.x.Configured()
	reset := !b.x.CheckAndSet(b.location.Domain(), b.pixelRange())
	if reset && b.sel.Len(selection.Select) > 0 {
		b.sel.ClearSelection(selection.Select)
	}
	d := b.x.Domain()
	b.location = Range{From: d[0], To: d[1]}
	b.started = true

	for _, t := range b.tracks {
		t.Attach(b.x, b.HighlightRegion)
	}
	b.bus.Publish(bus.Event{Origin: b.id, Payload: bus.RowReady{TrackID: b.id, Height: b.Height()}})
	for _, t := range b.tracks {
		t.Update(b.location)
	}
	if reset && shared {
		// peers drawn against the previous domain follow the new one
		b.bus.Publish(bus.Event{Origin: b.id, Payload: bus.ScaleChanged{}})
	}
	logging.Debugf("board %s started at [%g, %g] limits %+v", b.id, b.location.From, b.location.To, b.limits)
}

// AddTrack registers tracks. Tracks added after Start are attached and updated
// right away.
func (b *Board) AddTrack(tracks ...Track) {
	for _, t := range tracks {
		b.tracks = append(b.tracks, t)
		if b.started {
			t.Attach(b.x, b.HighlightRegion)
			t.Update(b.location)
		}
	}
	if b.started {
		b.bus.Publish(bus.Event{Origin: b.id, Payload: bus.RowReady{TrackID: b.id, Height: b.Height()}})
	}
}

// Reset drops all tracks.
func (b *Board) Reset() {
	b.tracks = nil
}

// Close detaches the board from the bus, the mount and the scheduler.
func (b *Board) Close() {
	if b.closed {
		return
	}
	b.closed = true
	if b.updateTask != nil {
		b.updateTask.Stop()
		b.updateTask = nil
	}
	if b.stopObserve != nil {
		b.stopObserve()
	}
	if b.unsubscribe != nil {
		b.unsubscribe()
	}
}

// Gesture applies a zoom transform to the current domain. The identity transform is
// ignored; use Apply to force it.
func (b *Board) Gesture(t Transform) Outcome {
	if t.IsIdentity() {
		return Ignored
	}
	return b.Apply(t, false)
}

// Apply commits t without the identity shortcut. propagated marks a transform that
// was already announced to the other boards.
func (b *Board) Apply(t Transform, propagated bool) Outcome {
	return b.commit(t.RescaleX(b.x), propagated)
}

// SetDomain navigates to [from, to] through the same limits as gestures.
func (b *Board) SetDomain(from, to float64) Outcome {
	if to < from {
		from, to = to, from
	}
	return b.commit([2]float64{from, to}, false)
}

func (b *Board) commit(candidate [2]float64, propagated bool) Outcome {
	if b.closed {
		return Ignored
	}
	d, ok := b.limits.Clamp(candidate)
	if !ok {
		logging.Debugf("board %s rejected window [%g, %g]", b.id, candidate[0], candidate[1])
		return Rejected
	}
	b.x.SetDomain(d[0], d[1])
	b.updateAndMove()
	if !propagated {
		b.bus.Publish(bus.Event{Origin: b.id, Payload: bus.ScaleChanged{}})
	}
	return Committed
}

// SetVisible reports whether the board's mount is on screen. Work deferred while
// hidden is flushed when it becomes visible again.
func (b *Board) SetVisible(v bool) {
	b.visible = v
	if v && !b.upToDate {
		b.updateAndMove()
	}
}

func (b *Board) updateAndMove() {
	if !b.visible {
		b.upToDate = false
		return
	}
	for _, t := range b.tracks {
		t.Move()
	}
	b.moveSelection()
	b.updateWithDelay()
	b.upToDate = true
}

func (b *Board) updateWithDelay() {
	if b.updateTask != nil {
		b.updateTask.Stop()
	}
	b.updateTask = b.sched.AfterFunc(b.updateDelay, b.updateAllTracks)
}

func (b *Board) updateAllTracks() {
	b.updateTask = nil
	if b.closed {
		return
	}
	b.syncLocation()
	for _, t := range b.tracks {
		t.Update(b.location)
	}
}

func (b *Board) syncLocation() {
	d := b.x.Domain()
	b.location = Range{From: math.Trunc(d[0]), To: math.Trunc(d[1])}
}

func (b *Board) moveSelection() {
	for _, mode := range []selection.Mode{selection.Select, selection.Hover} {
		if b.sel.Len(mode) == 0 {
			continue
		}
		for _, t := range b.tracks {
			t.MoveSelection(mode)
		}
	}
}

func (b *Board) receive(e bus.Event) {
	if e.Origin == b.id || b.closed {
		return
	}
	switch p := e.Payload.(type) {
	case bus.ScaleChanged:
		b.updateAndMove()
	case bus.SelectionChanged:
		if p.Mode == selection.Hover && !b.opts.MirrorHover {
			return
		}
		b.redrawHighlight(p.Mode)
	}
}
