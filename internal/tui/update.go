package tui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/key"
	list "github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"seqview/internal/board"
	"seqview/internal/bus"
	"seqview/internal/feature"
	"seqview/internal/logging"
	"seqview/internal/selection"
)

const (
	zoomStep = 1.25
	// panFraction of the board width moves per key press.
	panFraction = 0.1
)

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.l.SetSize(sidebarWidth-2, m.contentHeight()-2)
		m.resize()
		return m, nil
	case taskMsg:
		msg.fn()
		return m, m.queue.wait()
	case busMsg:
		m.observe(msg.e)
		return m, waitEvent(m.events)
	case tea.KeyMsg:
		return m.updateKey(msg)
	case tea.MouseMsg:
		if m.started && !m.showSelection {
			m.updateMouse(msg)
		}
		return m, nil
	}
	return m, nil
}

// observe follows bus traffic that only affects the chrome around the boards.
func (m *Model) observe(e bus.Event) {
	switch p := e.Payload.(type) {
	case bus.RowHover:
		m.glow = p.TrackID
	case bus.BoardHover:
		if !p.Inside {
			m.glow = ""
		}
	case bus.TrackVisibilityChanged:
		state := "hidden"
		if p.Visible {
			state = "shown"
		}
		m.status = fmt.Sprintf("track %s %s", p.TrackID, state)
	case bus.RowReady:
		logging.Debugf("row %s ready, height %d", p.TrackID, p.Height)
	}
}

func (m *Model) updateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.prompting {
		switch msg.String() {
		case "esc":
			m.prompting = false
			m.input.Blur()
			return m, nil
		case "enter":
			m.prompting = false
			m.input.Blur()
			m.goTo(m.input.Value())
			return m, nil
		}
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	// If list is visible and filtering, send keys to list and ignore global commands
	if m.showSidebar && m.l.FilterState() == list.Filtering {
		var cmd tea.Cmd
		m.l, cmd = m.l.Update(msg)
		return m, cmd
	}
	if m.showSelection {
		switch {
		case key.Matches(msg, keys.Selection), msg.String() == "esc":
			m.showSelection = false
			return m, nil
		case key.Matches(msg, keys.Quit):
			return m, tea.Quit
		}
		var cmd tea.Cmd
		m.tbl, cmd = m.tbl.Update(msg)
		return m, cmd
	}

	p := m.primary()
	switch {
	case key.Matches(msg, keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		m.layout()
	case key.Matches(msg, keys.Tracks):
		m.showSidebar = !m.showSidebar
		m.resize()
	case m.showSidebar && key.Matches(msg, keys.Toggle):
		if it, ok := m.l.SelectedItem().(trackItem); ok {
			m.toggleTrack(it.r)
		}
	case m.showSidebar && (key.Matches(msg, keys.ScrollUp) || key.Matches(msg, keys.ScrollDn)):
		var cmd tea.Cmd
		m.l, cmd = m.l.Update(msg)
		return m, cmd
	case key.Matches(msg, keys.ScrollUp):
		if m.scroll > 0 {
			m.scroll--
			m.layout()
		}
	case key.Matches(msg, keys.ScrollDn):
		if m.scroll < len(m.rows)-1 {
			m.scroll++
			m.layout()
		}
	case key.Matches(msg, keys.Selection):
		m.showSelection = true
		m.refreshSelection()
	case key.Matches(msg, keys.GoTo):
		m.prompting = true
		m.input.SetValue("")
		return m, m.input.Focus()
	case p == nil || !m.started:
	case key.Matches(msg, keys.PanLeft):
		m.navigate(p.board, board.Translate(panFraction*float64(m.boardWidth())))
	case key.Matches(msg, keys.PanRight):
		m.navigate(p.board, board.Translate(-panFraction*float64(m.boardWidth())))
	case key.Matches(msg, keys.ZoomIn):
		m.navigate(p.board, board.ZoomAt(float64(m.boardWidth())/2, zoomStep))
	case key.Matches(msg, keys.ZoomOut):
		m.navigate(p.board, board.ZoomAt(float64(m.boardWidth())/2, 1/zoomStep))
	case key.Matches(msg, keys.Reset):
		l := p.board.Limits()
		m.report(p.board, p.board.SetDomain(l.Min, l.Max))
	case key.Matches(msg, keys.Clear):
		p.board.DoubleClick()
	}
	return m, nil
}

func (m *Model) navigate(b *board.Board, t board.Transform) {
	m.report(b, b.Gesture(t))
}

func (m *Model) report(b *board.Board, o board.Outcome) {
	if o == board.Rejected {
		l := b.Limits()
		m.status = fmt.Sprintf("window limited to %g..%g positions", l.MinZoom, l.MaxZoom)
		return
	}
	if o == board.Committed {
		m.status = ""
	}
}

func (m *Model) goTo(s string) {
	from, to, err := parseRange(s)
	if err != nil {
		m.status = "go to: " + err.Error()
		return
	}
	p := m.primary()
	if p == nil || !m.started {
		return
	}
	m.report(p.board, p.board.SetDomain(from, to))
	if m.status == "" {
		m.status = fmt.Sprintf("went to %g-%g", from, to)
	}
}

func (m *Model) updateMouse(msg tea.MouseMsg) {
	px, inX := m.pixelAt(msg.X)
	r := m.rowAt(msg.Y)
	inside := inX && r != nil

	switch {
	case msg.Action == tea.MouseActionPress && (msg.Button == tea.MouseButtonWheelUp || msg.Button == tea.MouseButtonWheelDown):
		if !inside {
			return
		}
		k := zoomStep
		if msg.Button == tea.MouseButtonWheelDown {
			k = 1 / zoomStep
		}
		m.navigate(r.board, board.ZoomAt(float64(px), k))
	case msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft:
		if !inside {
			return
		}
		m.dragging, m.dragged, m.dragPx = true, false, px
		m.selecting = msg.Shift
		if m.selecting {
			m.dragRow, m.anchor = r, m.positionAt(px)
		}
	case msg.Action == tea.MouseActionMotion && m.dragging:
		if !inX || px == m.dragPx {
			return
		}
		if m.selecting {
			m.extendSelection(px)
			return
		}
		b := r
		if b == nil {
			b = m.primary()
		}
		m.navigate(b.board, board.Translate(float64(px-m.dragPx)))
		m.dragPx, m.dragged = px, true
	case msg.Action == tea.MouseActionRelease && m.dragging:
		m.dragging = false
		if m.selecting && m.dragged {
			m.selecting = false
			m.dragRow.board.ElementClicked(m.extent)
			return
		}
		m.selecting = false
		if m.dragged || !inside {
			return
		}
		m.click(r, px, msg.Shift)
	case msg.Action == tea.MouseActionMotion:
		m.hover(r, px, inside)
	}
}

// extendSelection grows a shift-drag range from the anchor to px. The first step adds a
// new entry; later steps replace it so the range is selected once.
func (m *Model) extendSelection(px int) {
	pos := m.positionAt(px)
	e := feature.Span(min(m.anchor, pos), max(m.anchor, pos))
	op := selection.ReplaceLast
	if !m.dragged {
		op = selection.Add
	}
	m.dragRow.board.HighlightRegion(&e, op, selection.Select)
	m.dragPx, m.dragged, m.extent = px, true, e
}

func (m *Model) click(r *row, px int, additive bool) {
	now := time.Now()
	if now.Sub(m.lastClick) < doubleClickWindow && m.lastClickX == px {
		m.lastClick = time.Time{}
		r.board.DoubleClick()
		return
	}
	m.lastClick, m.lastClickX = now, px
	if e, ok := r.track.Click(px, additive); ok {
		r.board.ElementClicked(e)
		return
	}
	m.status = "nothing at position " + fmt.Sprint(m.positionAt(px))
}

func (m *Model) positionAt(px int) int {
	return int(m.x.Invert(float64(px)) + 0.5)
}

// hover drives element and position hover of the row under the pointer.
func (m *Model) hover(r *row, px int, inside bool) {
	if !inside {
		if m.hovering {
			m.leave()
		}
		return
	}
	if m.hoverRow != r {
		if m.hovering {
			m.leave()
		}
		m.bus.Publish(bus.Event{Origin: origin, Payload: bus.RowHover{TrackID: r.cfg.TrackID}})
	}
	m.hovering, m.hoverRow, m.hoverPx = true, r, px
	m.hoverPos = m.positionAt(px)

	if e, ok := r.track.Hit(px); ok {
		if m.hoverEl == nil || !m.hoverEl.Same(e) {
			m.hoverEl = &e
			r.board.ElementEnter(e)
		}
	} else if m.hoverEl != nil {
		m.hoverEl = nil
		r.board.ElementLeave()
	}
	r.board.MouseMove(m.hoverPos)
}

func (m *Model) leave() {
	r := m.hoverRow
	if m.hoverEl != nil {
		m.hoverEl = nil
		r.board.ElementLeave()
	}
	r.board.MouseLeave()
	m.hovering, m.hoverRow = false, nil
	m.hoverEls = nil
}
