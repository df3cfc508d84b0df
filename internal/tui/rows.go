package tui

import (
	"fmt"

	"seqview/internal/board"
	"seqview/internal/config"
	"seqview/internal/feature"
	"seqview/internal/track"
)

// mount is the on-screen surface of a row. The model flips it while laying out rows.
type mount struct {
	shown     bool
	observers map[int]func(bool)
	next      int
}

func (m *mount) Observe(visible func(bool)) (stop func()) {
	if m.observers == nil {
		m.observers = make(map[int]func(bool))
	}
	id := m.next
	m.next++
	m.observers[id] = visible
	return func() { delete(m.observers, id) }
}

func (m *mount) set(v bool) {
	if m.shown == v {
		return
	}
	m.shown = v
	for _, fn := range m.observers {
		fn(v)
	}
}

type row struct {
	cfg     config.Row
	track   track.Track
	board   *board.Board
	mount   *mount
	enabled bool
	// top is the first screen line of the row when laid out, -1 otherwise.
	top int
}

func (r *row) height() int { return r.track.Height() }

// mounts resolves board ids to row mounts.
type mounts map[string]*mount

func (ms mounts) Mount(id string) (board.Mount, bool) {
	m, ok := ms[id]
	return m, ok
}

// buildTrack creates the track for a configuration row.
func buildTrack(r config.Row, els []feature.Element, maxPoints int) (track.Track, error) {
	kind, err := track.ParseKind(r.DisplayType)
	if err != nil {
		return nil, err
	}
	o := track.Options{
		ID:     r.TrackID,
		Title:  r.Title(),
		Color:  r.DisplayColor,
		Height: r.TrackHeight,
	}
	switch kind {
	case track.KindAxis:
		return track.NewAxis(o), nil
	case track.KindBlock:
		return track.NewBlock(o, els), nil
	case track.KindSequence:
		so := track.SequenceOptions{Options: o}
		if len(r.MinRatio) == 2 {
			so.MinRatio = [2]float64{r.MinRatio[0], r.MinRatio[1]}
		}
		return track.NewSequence(so, els), nil
	case track.KindLine:
		interp, err := track.ParseInterpolation(r.Interpolation)
		if err != nil {
			return nil, err
		}
		return track.NewLine(track.LineOptions{
			Options:       o,
			Domain:        r.DisplayDomain,
			MaxPoints:     maxPoints,
			Interpolation: interp,
		}, els)
	}
	return nil, fmt.Errorf("no renderer for %s", kind)
}
