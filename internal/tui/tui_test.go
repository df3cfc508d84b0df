package tui

import (
	"encoding/json"
	"math"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"seqview/internal/bus"
	"seqview/internal/config"
	"seqview/internal/feature"
	"seqview/internal/selection"
	"seqview/internal/track"
)

func testConfig() config.Config {
	cfg := config.Default()
	cfg.Board.Length = 1000
	cfg.Rows = []config.Row{
		{TrackID: "axis", DisplayType: "axis"},
		{TrackID: "dom", DisplayType: "block", TrackData: json.RawMessage(`[{"begin":100,"end":200,"label":"kinase"}]`)},
		{TrackID: "cov", DisplayType: "line", TrackHeight: 3, DisplayDomain: []float64{0, 10},
			TrackData: json.RawMessage(`[{"begin":1,"value":2},{"begin":500,"value":8}]`)},
	}
	return cfg
}

func newTestModel(t *testing.T, w, h int) *Model {
	t.Helper()
	m, err := New(testConfig())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	t.Cleanup(m.Close)
	m.Update(tea.WindowSizeMsg{Width: w, Height: h})
	return m
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func drain(m *Model) []bus.Event {
	var out []bus.Event
	for {
		select {
		case e, ok := <-m.events:
			if !ok {
				return out
			}
			out = append(out, e)
		default:
			return out
		}
	}
}

func TestResizeStartsBoards(t *testing.T) {
	m := newTestModel(t, 120, 30)
	if !m.started {
		t.Fatalf("boards not started")
	}
	want := [2]float64{innerPadding, float64((120-labelWidth)*2 - innerPadding)}
	if got := m.x.Range(); got != want {
		t.Fatalf("range = %v, want %v", got, want)
	}
	for _, r := range m.rows {
		if loc := r.board.Location(); loc.From != 1 || loc.To != 1000 {
			t.Fatalf("%s location = %+v", r.cfg.TrackID, loc)
		}
		if r.top < 0 {
			t.Fatalf("%s not laid out", r.cfg.TrackID)
		}
	}
	if v := m.View(); !strings.Contains(v, "seqview") {
		t.Fatalf("view has no header")
	}
}

func TestZoomAndPanKeys(t *testing.T) {
	m := newTestModel(t, 120, 30)
	m.Update(runes("+"))
	d := m.x.Domain()
	if w := d[1] - d[0]; w >= 999 {
		t.Fatalf("zoom in kept width %g", w)
	}
	m.Update(tea.KeyMsg{Type: tea.KeyRight})
	after := m.x.Domain()
	if after[0] <= d[0] {
		t.Fatalf("pan right moved %v -> %v", d, after)
	}
	if math.Abs((after[1]-after[0])-(d[1]-d[0])) > 1e-9 {
		t.Fatalf("pan changed width %v -> %v", d, after)
	}
	var scaled int
	for _, e := range drain(m) {
		if e.Kind() == bus.KindScaleChanged {
			scaled++
		}
	}
	if scaled != 2 {
		t.Fatalf("scale-changed events = %d, want 2", scaled)
	}
}

func TestZoomLimits(t *testing.T) {
	m := newTestModel(t, 120, 30)
	// zooming out past the extent clamps to it
	m.Update(runes("-"))
	if d := m.x.Domain(); d != [2]float64{1, 1000} {
		t.Fatalf("domain = %v", d)
	}
	m.Update(runes("g"))
	if !m.prompting {
		t.Fatalf("prompt not opened")
	}
	m.input.SetValue("1-5")
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if !strings.Contains(m.status, "window limited") {
		t.Fatalf("status = %q", m.status)
	}
}

func TestGoTo(t *testing.T) {
	m := newTestModel(t, 120, 30)
	m.goTo("200-400")
	if d := m.x.Domain(); d != [2]float64{200, 400} {
		t.Fatalf("domain = %v", d)
	}
	m.goTo("abc")
	if !strings.HasPrefix(m.status, "go to:") {
		t.Fatalf("status = %q", m.status)
	}
	m.Update(runes("0"))
	if d := m.x.Domain(); d != [2]float64{1, 1000} {
		t.Fatalf("reset domain = %v", d)
	}
}

func TestLayoutHidesOverflowRows(t *testing.T) {
	// three content lines: axis (2) and block (1) fit, the line row does not
	m := newTestModel(t, 120, headerHeight+footerHeight+3)
	if m.rows[0].top != 1 || m.rows[1].top != 3 {
		t.Fatalf("tops = %d, %d", m.rows[0].top, m.rows[1].top)
	}
	if m.rows[2].top != -1 || m.rows[2].board.Visible() {
		t.Fatalf("overflow row still shown")
	}
	m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m.Update(tea.KeyMsg{Type: tea.KeyDown})
	if m.rows[0].board.Visible() || m.rows[1].board.Visible() {
		t.Fatalf("scrolled rows still visible")
	}
	if m.rows[2].top != 1 || !m.rows[2].board.Visible() {
		t.Fatalf("line row not shown after scrolling, top %d", m.rows[2].top)
	}
}

func TestHiddenRowCatchesUp(t *testing.T) {
	m := newTestModel(t, 120, 30)
	m.toggleTrack(m.rows[1])
	m.goTo("120-180")
	if m.rows[1].board.UpToDate() {
		t.Fatalf("hidden board moved")
	}
	m.toggleTrack(m.rows[1])
	if !m.rows[1].board.UpToDate() {
		t.Fatalf("shown board not flushed")
	}
}

func TestToggleTrackAnnounces(t *testing.T) {
	m := newTestModel(t, 120, 30)
	drain(m)
	m.toggleTrack(m.rows[1])
	if m.rows[1].enabled || m.rows[1].top != -1 || m.rows[1].board.Visible() {
		t.Fatalf("row not hidden")
	}
	var got *bus.TrackVisibilityChanged
	for _, e := range drain(m) {
		if p, ok := e.Payload.(bus.TrackVisibilityChanged); ok {
			got = &p
		}
	}
	if got == nil || got.TrackID != "dom" || got.Visible {
		t.Fatalf("event = %+v", got)
	}
	m.observe(bus.Event{Payload: *got})
	if m.status != "track dom hidden" {
		t.Fatalf("status = %q", m.status)
	}
	if it := m.l.Items()[1].(trackItem); !strings.HasPrefix(it.Title(), "[ ]") {
		t.Fatalf("sidebar title = %q", it.Title())
	}
}

// screenAt returns the screen cell over position pos of row r.
func screenAt(m *Model, r *row, pos float64) (int, int) {
	px := int(m.x.Map(pos))
	return labelWidth + px/2, r.top
}

func TestClickSelectsBlock(t *testing.T) {
	m := newTestModel(t, 120, 30)
	r := m.rows[1]
	x, y := screenAt(m, r, 150)
	m.Update(tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	m.Update(tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionRelease, Button: tea.MouseButtonLeft})
	got := m.sel.Elements(selection.Select)
	if len(got) != 1 || got[0].Label != "kinase" {
		t.Fatalf("selection = %+v", got)
	}
	if m.status != "selected 100-200" {
		t.Fatalf("status = %q", m.status)
	}
	// a second click on the same cell is a double click
	m.Update(tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	m.Update(tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionRelease, Button: tea.MouseButtonLeft})
	if m.sel.Len(selection.Select) != 0 || m.status != "selection cleared" {
		t.Fatalf("double click left %d selected, status %q", m.sel.Len(selection.Select), m.status)
	}
}

func TestDragPans(t *testing.T) {
	m := newTestModel(t, 120, 30)
	m.goTo("200-400")
	r := m.rows[2]
	x, y := screenAt(m, r, 300)
	m.Update(tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	m.Update(tea.MouseMsg{X: x + 10, Y: y, Action: tea.MouseActionMotion, Button: tea.MouseButtonLeft})
	m.Update(tea.MouseMsg{X: x + 10, Y: y, Action: tea.MouseActionRelease, Button: tea.MouseButtonLeft})
	d := m.x.Domain()
	if d[0] >= 200 || math.Abs(d[1]-d[0]-200) > 1e-9 {
		t.Fatalf("drag right gave %v", d)
	}
	if m.sel.Len(selection.Select) != 0 {
		t.Fatalf("drag selected")
	}
}

func TestShiftDragSelectsRange(t *testing.T) {
	m := newTestModel(t, 120, 30)
	m.rows[1].board.ElementClick(feature.Span(100, 200), false)
	r := m.rows[2]
	x, y := screenAt(m, r, 300)
	press := tea.MouseMsg{X: x, Y: y, Shift: true, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft}
	m.Update(press)
	for _, dx := range []int{5, 10} {
		m.Update(tea.MouseMsg{X: x + dx, Y: y, Shift: true, Action: tea.MouseActionMotion, Button: tea.MouseButtonLeft})
	}
	m.Update(tea.MouseMsg{X: x + 10, Y: y, Shift: true, Action: tea.MouseActionRelease, Button: tea.MouseButtonLeft})

	from, _ := m.pixelAt(x)
	to, _ := m.pixelAt(x + 10)
	want := feature.Span(m.positionAt(from), m.positionAt(to))
	got := m.sel.Elements(selection.Select)
	if len(got) != 2 || got[0].Begin != 100 || !got[1].Same(want) {
		t.Fatalf("selection = %+v, want [100-200 %s]", got, want)
	}
	if d := m.x.Domain(); d != [2]float64{1, 1000} {
		t.Fatalf("shift-drag panned to %v", d)
	}
	if m.status != "selected "+want.String() {
		t.Fatalf("status = %q", m.status)
	}
}

func TestWheelZoomsAtPointer(t *testing.T) {
	m := newTestModel(t, 120, 30)
	r := m.rows[2]
	x, y := screenAt(m, r, 500)
	px, _ := m.pixelAt(x)
	before := m.x.Invert(float64(px))
	m.Update(tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionPress, Button: tea.MouseButtonWheelUp})
	d := m.x.Domain()
	if d[1]-d[0] >= 999 {
		t.Fatalf("wheel did not zoom: %v", d)
	}
	if after := m.x.Invert(float64(px)); math.Abs(after-before) > 1e-6 {
		t.Fatalf("pointer position moved %g -> %g", before, after)
	}
}

func TestHoverElementAndLeave(t *testing.T) {
	m := newTestModel(t, 120, 30)
	r := m.rows[1]
	x, y := screenAt(m, r, 150)
	m.Update(tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionMotion, Button: tea.MouseButtonNone})
	hov := m.sel.Elements(selection.Hover)
	if len(hov) != 1 || hov[0].Label != "kinase" {
		t.Fatalf("hover = %+v", hov)
	}
	if tip := tooltip(m.hoverEls); tip != "100-200 kinase" {
		t.Fatalf("tooltip = %q", tip)
	}
	for _, e := range drain(m) {
		m.observe(e)
	}
	if m.glow != "dom" {
		t.Fatalf("glow = %q", m.glow)
	}

	// off the block the position is hovered instead
	x2, _ := screenAt(m, r, 600)
	m.Update(tea.MouseMsg{X: x2, Y: y, Action: tea.MouseActionMotion, Button: tea.MouseButtonNone})
	hov = m.sel.Elements(selection.Hover)
	if len(hov) != 1 || !hov[0].NonSpecific || hov[0].Begin != m.hoverPos {
		t.Fatalf("position hover = %+v, pos %d", hov, m.hoverPos)
	}

	m.Update(tea.MouseMsg{X: x2, Y: 0, Action: tea.MouseActionMotion, Button: tea.MouseButtonNone})
	if m.hovering || m.sel.Len(selection.Hover) != 0 {
		t.Fatalf("hover kept after leaving")
	}
	for _, e := range drain(m) {
		m.observe(e)
	}
	if m.glow != "" {
		t.Fatalf("glow = %q after leaving", m.glow)
	}
}

func TestSelectionTable(t *testing.T) {
	m := newTestModel(t, 120, 30)
	e := feature.Span(100, 200)
	e.Label = "kinase"
	m.rows[1].board.ElementClick(e, false)
	m.Update(runes("s"))
	if !m.showSelection {
		t.Fatalf("table not shown")
	}
	rows := m.tbl.Rows()
	if len(rows) != 1 || rows[0][1] != "dom" || rows[0][2] != "100-200" || rows[0][4] != "kinase" {
		t.Fatalf("rows = %v", rows)
	}
	m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if m.showSelection {
		t.Fatalf("esc did not close the table")
	}
	m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if m.sel.Len(selection.Select) != 0 {
		t.Fatalf("esc did not clear the selection")
	}
}

func TestParseRange(t *testing.T) {
	tests := []struct {
		in       string
		from, to float64
		wantErr  bool
	}{
		{"120-480", 120, 480, false},
		{"120..480", 120, 480, false},
		{" 120 480 ", 120, 480, false},
		{"1 - 10", 1, 10, false},
		{"480:120", 120, 480, false},
		{"-5-20", -5, 20, false},
		{"7", 0, 0, true},
		{"a-b", 0, 0, true},
		{"", 0, 0, true},
	}
	for _, tt := range tests {
		from, to, err := parseRange(tt.in)
		if (err != nil) != tt.wantErr {
			t.Fatalf("%q: err = %v", tt.in, err)
		}
		if !tt.wantErr && (from != tt.from || to != tt.to) {
			t.Fatalf("%q = %g, %g", tt.in, from, to)
		}
	}
}

func TestBuildTrack(t *testing.T) {
	tests := []struct {
		row     config.Row
		want    track.Kind
		wantErr bool
	}{
		{config.Row{TrackID: "a", DisplayType: "axis"}, track.KindAxis, false},
		{config.Row{TrackID: "b", DisplayType: "block"}, track.KindBlock, false},
		{config.Row{TrackID: "s", DisplayType: "sequence", MinRatio: []float64{2, 4}}, track.KindSequence, false},
		{config.Row{TrackID: "l", DisplayType: "line", DisplayDomain: []float64{0, 1}, Interpolation: "linear"}, track.KindLine, false},
		{config.Row{TrackID: "l", DisplayType: "line", DisplayDomain: []float64{1}}, "", true},
		{config.Row{TrackID: "l", DisplayType: "line", DisplayDomain: []float64{0, 1}, Interpolation: "cubic"}, "", true},
		{config.Row{TrackID: "x", DisplayType: "heatmap"}, "", true},
	}
	for _, tt := range tests {
		got, err := buildTrack(tt.row, nil, 100)
		if (err != nil) != tt.wantErr {
			t.Fatalf("%+v: err = %v", tt.row, err)
		}
		if !tt.wantErr && got.Kind() != tt.want {
			t.Fatalf("%+v: kind = %s", tt.row, got.Kind())
		}
	}
}

func TestMountObserve(t *testing.T) {
	mt := &mount{shown: true}
	var got []bool
	stop := mt.Observe(func(v bool) { got = append(got, v) })
	mt.set(true)
	mt.set(false)
	stop()
	mt.set(true)
	if len(got) != 1 || got[0] {
		t.Fatalf("observed %v", got)
	}
	if _, ok := (mounts{"a": mt}).Mount("b"); ok {
		t.Fatalf("unknown mount resolved")
	}
}

func TestTaskQueueRunsOnUpdate(t *testing.T) {
	m := newTestModel(t, 120, 30)
	ran := false
	m.queue.post(func() { ran = true })
	msg := m.queue.wait()()
	if ran {
		t.Fatalf("task ran before Update")
	}
	if _, cmd := m.Update(msg); cmd == nil || !ran {
		t.Fatalf("task not run, cmd %v", cmd)
	}
}
