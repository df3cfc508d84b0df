package trackdata

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func write(t *testing.T, name, content string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	return p
}

func TestLoadCSV(t *testing.T) {
	p := write(t, "hydro.csv", "Position, Score, Label\n1, 0.5, A\n2, -1.25, B\nx, 3, C\n4,,D\n")
	els, err := Load(p)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(els) != 3 {
		t.Fatalf("len = %d, want 3", len(els))
	}
	if els[1].Begin != 2 || els[1].Value != -1.25 || els[1].Label != "B" || !els[1].IsPoint() {
		t.Fatalf("row 2 = %+v", els[1])
	}
	if els[2].Begin != 4 || els[2].Value != 0 {
		t.Fatalf("row 4 = %+v", els[2])
	}
}

func TestLoadCSVSpans(t *testing.T) {
	p := write(t, "domains.csv", "start,end,name,color\n10,40,kinase,#ff0000\n")
	els, err := LoadCSV(p)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(els) != 1 || els[0].Stop() != 40 || els[0].Color != "#ff0000" {
		t.Fatalf("els = %+v", els)
	}
}

func TestLoadCSVErrors(t *testing.T) {
	if _, err := LoadCSV(write(t, "a.csv", "foo,bar\n1,2\n")); err == nil {
		t.Fatalf("expected missing column error")
	}
	if _, err := LoadCSV(write(t, "b.csv", "begin\nx\n")); !errors.Is(err, ErrNoElements) {
		t.Fatalf("err = %v, want ErrNoElements", err)
	}
}

func TestParseJSON(t *testing.T) {
	cases := []struct {
		name  string
		in    string
		n     int
		color string
	}{
		{"array", `[{"begin":1,"end":5,"color":"#fff"},{"begin":7}]`, 2, "#fff"},
		{"wrapped", `{"trackData":[{"begin":3,"value":2.5,"color":"#000"}]}`, 1, "#000"},
		{"non-string colour", `[{"begin":1,"color":12}]`, 1, ""},
		{"missing begin dropped", `[{"end":3},{"begin":2,"color":null}]`, 1, ""},
	}
	for _, c := range cases {
		els, err := ParseJSON([]byte(c.in))
		if err != nil {
			t.Fatalf("%s: %v", c.name, err)
		}
		if len(els) != c.n || els[0].Color != c.color {
			t.Fatalf("%s: %+v", c.name, els)
		}
	}
	if _, err := ParseJSON([]byte(`[]`)); !errors.Is(err, ErrNoElements) {
		t.Fatalf("empty: %v", err)
	}
	if _, err := ParseJSON([]byte(`{`)); err == nil {
		t.Fatalf("malformed json accepted")
	}
}

func TestLoadFASTA(t *testing.T) {
	p := write(t, "p.fasta", ">sp|P69905|HBA\nMVLS\nPADK\n>second\nAAAA\n")
	els, err := Load(p)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(els) != 8 || els[0].Label != "M" || els[0].Begin != 1 || els[7].Label != "K" || els[7].Begin != 8 {
		t.Fatalf("els = %+v", els)
	}
}

func TestUnsupported(t *testing.T) {
	if Supported("x.kml") {
		t.Fatalf("kml reported supported")
	}
	if _, err := Load("x.kml"); err == nil {
		t.Fatalf("expected unsupported error")
	}
}
