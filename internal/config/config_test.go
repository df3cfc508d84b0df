package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

const sample = `{
 "board": {"length": 1000, "minZoom": 20, "updateDelay": 150, "highlightHoverElement": true},
 "rows": [
  {"trackId": "axis", "displayType": "axis"},
  {"trackId": "hydro", "rowTitle": "Hydropathy", "displayType": "line", "displayColor": "#2b8cbe",
   "trackHeight": 4, "displayDomain": [-4, 4], "dataFile": "hydro.csv"},
  {"trackId": "dom", "displayType": "block", "trackVisibility": false,
   "trackData": [{"begin": 1, "end": 10, "label": "A", "color": "#fff"}]}
 ]
}`

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "board.json")
	if err := os.WriteFile(p, []byte(sample), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "hydro.csv"), []byte("pos,value\n1,0.5\n2,1.5\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	c, err := Load(p)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if err := c.Validate(); err != nil {
		t.Fatalf("validate: %v", err)
	}
	from, to, ok := c.Board.Extent()
	if !ok || from != 1 || to != 1000 {
		t.Fatalf("extent = %g %g %v", from, to, ok)
	}
	if c.Board.Delay() != 150*time.Millisecond || c.Board.MaxPoints != 1000 {
		t.Fatalf("board = %+v", c.Board)
	}
	if c.Rows[0].Title() != "axis" || c.Rows[1].Title() != "Hydropathy" {
		t.Fatalf("titles = %q %q", c.Rows[0].Title(), c.Rows[1].Title())
	}
	if !c.Rows[1].Visible() || c.Rows[2].Visible() {
		t.Fatalf("visibility wrong")
	}

	els, err := c.Elements(c.Rows[1])
	if err != nil || len(els) != 2 || els[1].Value != 1.5 {
		t.Fatalf("file elements = %+v %v", els, err)
	}
	els, err = c.Elements(c.Rows[2])
	if err != nil || len(els) != 1 || els[0].Stop() != 10 {
		t.Fatalf("inline elements = %+v %v", els, err)
	}
	if els, err := c.Elements(c.Rows[0]); err != nil || els != nil {
		t.Fatalf("axis elements = %+v %v", els, err)
	}
}

func TestRangeOverridesLength(t *testing.T) {
	b := Board{Length: 50, Range: &Range{Min: 10, Max: 20}}
	if from, to, _ := b.Extent(); from != 10 || to != 20 {
		t.Fatalf("extent = %g %g", from, to)
	}
}

func TestValidate(t *testing.T) {
	row := Row{TrackID: "a", DisplayType: "block"}
	cases := []struct {
		name     string
		c        Config
		rangeErr bool
	}{
		{"inverted range", Config{Board: Board{Range: &Range{Min: 5, Max: 5}}, Rows: []Row{row}}, true},
		{"zoom limits", Config{Board: Board{MinZoom: 50, MaxZoom: 10}, Rows: []Row{row}}, true},
		{"no rows", Config{}, false},
		{"unknown type", Config{Rows: []Row{{TrackID: "a", DisplayType: "heatmap"}}}, false},
		{"duplicate id", Config{Rows: []Row{row, row}}, false},
		{"bad interpolation", Config{Rows: []Row{{TrackID: "a", DisplayType: "line", Interpolation: "basis"}}}, false},
		{"bad min ratio", Config{Rows: []Row{{TrackID: "a", DisplayType: "sequence", MinRatio: []float64{1}}}}, false},
	}
	for _, c := range cases {
		err := c.c.Validate()
		if err == nil {
			t.Fatalf("%s: expected error", c.name)
		}
		if errors.Is(err, ErrInvalidRange) != c.rangeErr {
			t.Fatalf("%s: err = %v", c.name, err)
		}
	}
}

func TestDecodeRejectsUnknownFields(t *testing.T) {
	if _, err := Decode(strings.NewReader(`{"board": {"lenght": 10}}`)); err == nil {
		t.Fatalf("typo accepted")
	}
}

func TestFromFile(t *testing.T) {
	dir := t.TempDir()
	cases := []struct {
		name, content, kind string
	}{
		{"p.fasta", ">x\nMKV\n", "sequence"},
		{"score.csv", "pos,value\n1,-2\n2,3\n", "line"},
		{"dom.csv", "start,end\n1,9\n", "block"},
	}
	for _, c := range cases {
		p := filepath.Join(dir, c.name)
		if err := os.WriteFile(p, []byte(c.content), 0o644); err != nil {
			t.Fatalf("write: %v", err)
		}
		cfg, err := FromFile(p)
		if err != nil {
			t.Fatalf("%s: %v", c.name, err)
		}
		if err := cfg.Validate(); err != nil {
			t.Fatalf("%s: validate: %v", c.name, err)
		}
		if len(cfg.Rows) != 2 || cfg.Rows[1].DisplayType != c.kind {
			t.Fatalf("%s: rows = %+v", c.name, cfg.Rows)
		}
		if _, err := cfg.Elements(cfg.Rows[1]); err != nil {
			t.Fatalf("%s: elements: %v", c.name, err)
		}
	}
}

func TestFlags(t *testing.T) {
	f, err := ParseFlags("seqview", []string{"--config", "b.json", "--update-delay", "50ms", "--max-points", "200", "extra.csv"})
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if f.ConfigPath != "b.json" || len(f.Args) != 1 || f.Args[0] != "extra.csv" {
		t.Fatalf("flags = %+v", f)
	}
	c := Default()
	c.ApplyFlags(f)
	if c.Board.UpdateDelay != 50 || c.Board.MaxPoints != 200 {
		t.Fatalf("board = %+v", c.Board)
	}
}
