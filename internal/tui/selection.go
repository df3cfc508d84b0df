package tui

import (
	"fmt"
	"strconv"
	"strings"

	table "github.com/charmbracelet/bubbles/table"

	"seqview/internal/selection"
)

// refreshSelection rebuilds the selection table from the store.
func (m *Model) refreshSelection() {
	entries := m.sel.GetSelected(selection.Select)
	cols := []table.Column{
		{Title: "#", Width: 4},
		{Title: "track", Width: 16},
		{Title: "region", Width: 16},
		{Title: "value", Width: 10},
		{Title: "label", Width: 16},
	}
	rows := make([]table.Row, 0, len(entries))
	for i, e := range entries {
		value := ""
		if e.Element.Value != 0 {
			value = strconv.FormatFloat(e.Element.Value, 'g', 6, 64)
		}
		rows = append(rows, table.Row{
			strconv.Itoa(i + 1),
			e.OwnerID,
			e.Element.String(),
			value,
			e.Element.Label,
		})
	}
	// Avoid transient mismatch: clear rows, set columns, then set rows
	m.tbl.SetRows(nil)
	m.tbl.SetColumns(cols)
	m.tbl.SetRows(rows)
}

// parseRange reads "from-to", "from..to", "from:to", "from,to" or "from to".
func parseRange(s string) (from, to float64, err error) {
	s = strings.TrimSpace(s)
	var parts []string
	for _, sep := range []string{"..", ":", ","} {
		if strings.Contains(s, sep) {
			parts = strings.SplitN(s, sep, 2)
			break
		}
	}
	if parts == nil && len(s) > 1 {
		// a leading '-' is a sign, not the separator
		if i := strings.Index(s[1:], "-"); i >= 0 {
			parts = []string{s[:i+1], s[i+2:]}
		}
	}
	if parts == nil {
		parts = strings.Fields(s)
	}
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("want from-to, got %q", s)
	}
	from, err = strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return 0, 0, fmt.Errorf("bad start %q", parts[0])
	}
	to, err = strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return 0, 0, fmt.Errorf("bad end %q", parts[1])
	}
	if to < from {
		from, to = to, from
	}
	return from, to, nil
}
