package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"seqview/internal/feature"
	"seqview/internal/track"
)

func (m *Model) View() string {
	if m.width == 0 || m.height == 0 || !m.started {
		return ""
	}
	contentHeight := m.contentHeight()

	p := m.primary()
	loc := ""
	if p != nil {
		l := p.board.Location()
		loc = dimStyle.Render(fmt.Sprintf("  %g-%g", l.From, l.To))
	}
	header := titleStyle.Render(" seqview ─ sequence feature viewer ") + loc
	header = lipgloss.NewStyle().Width(m.width).MaxHeight(headerHeight).Render(header)

	var body string
	if m.showSelection {
		w := min(m.canvasCells()+labelWidth, 70)
		m.tbl.SetWidth(w - 4)
		m.tbl.SetHeight(min(contentHeight-2, 20))
		box := boxStyle.Width(w).Render(m.tbl.View())
		body = lipgloss.Place(m.canvasCells()+labelWidth, contentHeight, lipgloss.Center, lipgloss.Center, box)
	} else {
		body = lipgloss.NewStyle().Height(contentHeight).MaxHeight(contentHeight).Render(m.renderRows())
	}
	if m.showSidebar {
		sidebar := lipgloss.NewStyle().Width(sidebarWidth).Render(m.l.View())
		body = lipgloss.JoinHorizontal(lipgloss.Top, sidebar, " ", body)
	}

	ui := lipgloss.JoinVertical(lipgloss.Left, header, body, m.renderFooter())
	return appStyle.Width(m.width).Height(m.height).Render(ui)
}

func (m *Model) renderRows() string {
	var out []string
	cells := m.canvasCells()
	for _, r := range m.rows {
		if r.top < 0 {
			continue
		}
		c := track.NewCanvas(cells, r.height())
		r.track.Draw(c)
		style := labelStyle
		if r.cfg.TrackID == m.glow {
			style = glowStyle
		}
		label := style.Height(r.height()).Render(r.cfg.Title())
		out = append(out, lipgloss.JoinHorizontal(lipgloss.Top, label, c.Render()))
	}
	if len(out) == 0 {
		return dimStyle.Render(" no tracks shown, press tab to pick some")
	}
	return strings.Join(out, "\n")
}

func (m *Model) renderFooter() string {
	var parts []string
	if m.prompting {
		parts = append(parts, m.input.View())
	} else if m.status != "" {
		parts = append(parts, m.status)
	}
	if p := m.primary(); p != nil {
		l := p.board.Limits()
		parts = append(parts, fmt.Sprintf("zoom %g..%g", l.MinZoom, l.MaxZoom))
	}
	if m.hovering {
		parts = append(parts, fmt.Sprintf("pos %d", m.hoverPos))
		if m.cfg.Board.IncludeTooltip {
			if tip := tooltip(m.hoverEls); tip != "" {
				parts = append(parts, tip)
			}
		}
	}
	status := dimStyle.Render(" " + strings.Join(parts, "  ") + " ")
	status = lipgloss.NewStyle().Width(m.width).MaxHeight(1).Render(status)
	return lipgloss.JoinVertical(lipgloss.Left, status, m.help.View(keys))
}

// tooltip describes the hovered elements that are more than a position.
func tooltip(els []feature.Element) string {
	var tips []string
	for _, e := range els {
		if e.NonSpecific {
			continue
		}
		s := e.String()
		if e.Label != "" {
			s += " " + e.Label
		}
		if e.Value != 0 {
			s += fmt.Sprintf(" = %g", e.Value)
		}
		tips = append(tips, s)
	}
	return strings.Join(tips, ", ")
}
