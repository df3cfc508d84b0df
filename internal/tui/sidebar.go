package tui

import (
	list "github.com/charmbracelet/bubbles/list"

	"seqview/internal/bus"
)

type trackItem struct {
	r *row
}

func (t trackItem) Title() string {
	mark := "[ ] "
	if t.r.enabled {
		mark = "[x] "
	}
	return mark + t.r.cfg.Title()
}

func (t trackItem) Description() string { return string(t.r.track.Kind()) }
func (t trackItem) FilterValue() string { return t.r.cfg.Title() }

func (m *Model) refreshTracks() {
	items := make([]list.Item, 0, len(m.rows))
	for _, r := range m.rows {
		items = append(items, trackItem{r: r})
	}
	m.l.SetItems(items)
}

// toggleTrack shows or hides a row and announces the change.
func (m *Model) toggleTrack(r *row) {
	r.enabled = !r.enabled
	m.bus.Publish(bus.Event{Origin: origin, Payload: bus.TrackVisibilityChanged{TrackID: r.cfg.TrackID, Visible: r.enabled}})
	m.refreshTracks()
	m.layout()
}
