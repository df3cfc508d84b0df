// Package tui is the terminal front end: one board per configured row, all sharing
// a position scale, a selection store and an event bus.
package tui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/help"
	list "github.com/charmbracelet/bubbles/list"
	table "github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"seqview/internal/board"
	"seqview/internal/bus"
	"seqview/internal/config"
	"seqview/internal/feature"
	"seqview/internal/logging"
	"seqview/internal/scale"
	"seqview/internal/selection"
)

const (
	labelWidth   = 14
	sidebarWidth = 28
	headerHeight = 1
	// footerHeight is the status line plus the short help.
	footerHeight = 2
	// innerPadding is in board pixels, two per cell.
	innerPadding = 2
	// origin marks bus events published by the model itself.
	origin = "tui"

	doubleClickWindow = 400 * time.Millisecond
)

type Model struct {
	cfg config.Config

	width  int
	height int

	x      *scale.Linear
	sel    *selection.Store
	bus    *bus.Bus
	queue  taskQueue
	events <-chan bus.Event
	cancel func()

	rows    []*row
	mounts  mounts
	started bool
	scroll  int

	showSidebar   bool
	showSelection bool
	prompting     bool

	l     list.Model
	tbl   table.Model
	input textinput.Model
	help  help.Model

	status string

	// pointer state
	glow     string
	hoverRow *row
	hoverPx  int
	hoverPos int
	hovering bool
	hoverEl  *feature.Element
	hoverEls []feature.Element
	dragging bool
	dragged  bool
	dragPx   int
	// shift-drag range selection
	selecting  bool
	dragRow    *row
	anchor     int
	extent     feature.Element
	lastClick  time.Time
	lastClickX int
}

// New builds the boards and tracks of cfg. Boards start on the first window size.
func New(cfg config.Config) (*Model, error) {
	m := &Model{
		cfg:    cfg,
		x:      scale.NewPosition(),
		sel:    selection.NewStore(),
		bus:    bus.New(),
		queue:  make(taskQueue, 64),
		mounts: make(mounts),
		status: "seqview ready",
	}
	m.events, m.cancel = m.bus.Channel(64)
	sched := board.NewTimerScheduler(m.queue.post)

	var all []feature.Element
	for _, r := range cfg.Rows {
		els, err := cfg.Elements(r)
		if err != nil {
			m.Close()
			return nil, fmt.Errorf("row %s: %w", r.TrackID, err)
		}
		t, err := buildTrack(r, els, cfg.Board.MaxPoints)
		if err != nil {
			m.Close()
			return nil, fmt.Errorf("row %s: %w", r.TrackID, err)
		}
		all = append(all, els...)
		m.mounts[r.TrackID] = &mount{shown: true}
		m.rows = append(m.rows, &row{cfg: r, track: t, enabled: r.Visible(), top: -1})
	}
	from, to, ok := cfg.Board.Extent()
	if !ok {
		from, to = board.DefaultWindow.From, board.DefaultWindow.To
		if lo, hi, found := feature.Extent(all); found {
			from, to = float64(lo), float64(hi)
		}
	}

	for _, r := range m.rows {
		b, err := board.New(r.cfg.TrackID, board.Options{
			Scale:                  m.x,
			Selection:              m.sel,
			Bus:                    m.bus,
			Scheduler:              sched,
			Mounts:                 m.mounts,
			InnerPadding:           innerPadding,
			UpdateDelay:            cfg.Board.Delay(),
			HighlightHoverElement:  cfg.Board.HighlightHoverElement,
			HighlightHoverPosition: cfg.Board.HighlightHoverPosition,
			MirrorHover:            true,
		})
		if err != nil {
			m.Close()
			return nil, err
		}
		b.SetZoomLimits(cfg.Board.MinZoom, 0)
		b.SetRange(from, to)
		b.SetZoomLimits(0, cfg.Board.MaxZoom)
		b.AddTrack(r.track)
		b.OnElementClick(m.onClick)
		b.OnHover(m.onHover)
		r.board = b
		r.mount = m.mounts[r.cfg.TrackID]
	}

	d := list.NewDefaultDelegate()
	m.l = list.New(nil, d, 0, 0)
	m.l.Title = "Tracks"
	m.l.SetShowHelp(false)
	m.l.SetShowStatusBar(false)
	m.l.SetFilteringEnabled(true)
	m.refreshTracks()

	m.input = textinput.New()
	m.input.Placeholder = "from-to, e.g. 120-480"
	m.input.Prompt = "go to: "
	m.input.CharLimit = 40

	m.tbl = table.New(table.WithFocused(true))
	m.tbl.SetHeight(12)

	m.help = help.New()
	return m, nil
}

func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.queue.wait(), waitEvent(m.events))
}

// Close detaches every board and stops the bus listener.
func (m *Model) Close() {
	for _, r := range m.rows {
		if r.board != nil {
			r.board.Close()
		}
	}
	if m.cancel != nil {
		m.cancel()
		m.cancel = nil
	}
}

func (m *Model) onClick(e feature.Element) {
	if e.Same(board.ClearedClick) {
		m.status = "selection cleared"
	} else {
		m.status = "selected " + e.String()
	}
	if m.showSelection {
		m.refreshSelection()
	}
}

func (m *Model) onHover(els []feature.Element) {
	m.hoverEls = els
}

// canvasCells is the width of the track canvases in cells.
func (m *Model) canvasCells() int {
	w := m.width - labelWidth
	if m.showSidebar {
		w -= sidebarWidth + 1
	}
	if tw := m.cfg.Board.TrackWidth; tw > 0 {
		w = min(w, tw/2)
	}
	return max(w, innerPadding+2)
}

func (m *Model) boardWidth() int { return m.canvasCells() * 2 }

func (m *Model) contentHeight() int {
	footer := footerHeight
	if m.help.ShowAll {
		footer = 1 + lipgloss.Height(m.help.View(keys))
	}
	return max(m.height-headerHeight-footer, 1)
}

// resize sets the board widths and starts the boards on the first call.
func (m *Model) resize() {
	px := m.boardWidth()
	for _, r := range m.rows {
		r.board.SetWidth(px)
	}
	if !m.started {
		m.started = true
		for _, r := range m.rows {
			r.board.Start()
		}
		logging.Infof("started %d rows at %d px", len(m.rows), px)
	}
	m.layout()
}

// layout assigns screen lines to enabled rows from the scroll offset on. Rows that
// do not fit, are scrolled past or disabled are hidden from their boards.
func (m *Model) layout() {
	avail := m.contentHeight()
	y := headerHeight
	for i, r := range m.rows {
		r.top = -1
		if !r.enabled || i < m.scroll || y+r.height() > headerHeight+avail {
			r.mount.set(false)
			continue
		}
		r.top = y
		y += r.height()
		r.mount.set(true)
	}
}

// primary is the board navigated by keyboard: the first row on screen.
func (m *Model) primary() *row {
	for _, r := range m.rows {
		if r.top >= 0 {
			return r
		}
	}
	if len(m.rows) > 0 {
		return m.rows[0]
	}
	return nil
}

// rowAt returns the row under screen line y.
func (m *Model) rowAt(y int) *row {
	for _, r := range m.rows {
		if r.top >= 0 && y >= r.top && y < r.top+r.height() {
			return r
		}
	}
	return nil
}

// pixelAt maps a screen column to a board pixel. ok is false outside the canvases.
func (m *Model) pixelAt(x int) (int, bool) {
	x0 := labelWidth
	if m.showSidebar {
		x0 += sidebarWidth + 1
	}
	cx := x - x0
	if cx < 0 || cx >= m.canvasCells() {
		return 0, false
	}
	return cx * 2, true
}
