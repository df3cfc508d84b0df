// Package trackdata loads track elements from CSV, JSON and FASTA files.
package trackdata

import (
	"bufio"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"seqview/internal/feature"
	"seqview/internal/logging"
)

// ErrNoElements is returned when a source holds no usable element.
var ErrNoElements = errors.New("trackdata: no elements")

// Load reads a data file, picking the format from its extension.
func Load(path string) ([]feature.Element, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".csv", ".tsv":
		return LoadCSV(path)
	case ".json":
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		els, err := ParseJSON(b)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", filepath.Base(path), err)
		}
		return els, nil
	case ".fa", ".fasta", ".seq":
		return LoadFASTA(path)
	default:
		return nil, fmt.Errorf("unsupported data file: %s", ext)
	}
}

// Supported reports whether Load understands the file extension.
func Supported(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv", ".tsv", ".json", ".fa", ".fasta", ".seq":
		return true
	}
	return false
}

// LoadCSV reads elements from a CSV with a header row.
// Column detection (case-insensitive): begin|start|pos|position, end|stop,
// value|score, label|name, color|colour. Rows without a numeric begin are skipped.
func LoadCSV(path string) ([]feature.Element, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	r := csv.NewReader(f)
	r.TrimLeadingSpace = true
	r.FieldsPerRecord = -1
	if strings.EqualFold(filepath.Ext(path), ".tsv") {
		r.Comma = '\t'
	}
	recs, err := r.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(recs) == 0 {
		return nil, fmt.Errorf("%w: empty csv", ErrNoElements)
	}
	idxBegin, idxEnd, idxValue, idxLabel, idxColor := -1, -1, -1, -1, -1
	first := func(idx *int, i int) {
		if *idx == -1 {
			*idx = i
		}
	}
	for i, h := range recs[0] {
		switch strings.ToLower(strings.TrimSpace(h)) {
		case "begin", "start", "pos", "position":
			first(&idxBegin, i)
		case "end", "stop":
			first(&idxEnd, i)
		case "value", "score":
			first(&idxValue, i)
		case "label", "name":
			first(&idxLabel, i)
		case "color", "colour":
			first(&idxColor, i)
		}
	}
	if idxBegin == -1 {
		return nil, errors.New("csv: begin column not found")
	}
	field := func(row []string, idx int) string {
		if idx < 0 || idx >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[idx])
	}
	var out []feature.Element
	for n, row := range recs[1:] {
		begin, err := strconv.Atoi(field(row, idxBegin))
		if err != nil {
			logging.Debugf("csv %s row %d: bad begin %q", filepath.Base(path), n+2, field(row, idxBegin))
			continue
		}
		e := feature.At(begin)
		if s := field(row, idxEnd); s != "" {
			if end, err := strconv.Atoi(s); err == nil {
				e = feature.Span(begin, end)
			}
		}
		if s := field(row, idxValue); s != "" {
			if v, err := strconv.ParseFloat(s, 64); err == nil {
				e.Value = v
			}
		}
		e.Label = field(row, idxLabel)
		e.Color = field(row, idxColor)
		out = append(out, e)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("%w: csv has no valid rows", ErrNoElements)
	}
	return out, nil
}

// rawElement accepts any JSON type for color so one bad element does not fail the file.
type rawElement struct {
	Begin       *int            `json:"begin"`
	End         *int            `json:"end"`
	Value       float64         `json:"value"`
	Label       string          `json:"label"`
	Color       json.RawMessage `json:"color"`
	NonSpecific bool            `json:"nonSpecific"`
}

// ParseJSON decodes an element array, or an object holding it under trackData.
// Elements without begin are dropped; a colour that is not a string is dropped with
// a warning.
func ParseJSON(b []byte) ([]feature.Element, error) {
	var raws []rawElement
	if err := json.Unmarshal(b, &raws); err != nil {
		var wrapped struct {
			TrackData []rawElement `json:"trackData"`
		}
		if err2 := json.Unmarshal(b, &wrapped); err2 != nil {
			return nil, err
		}
		raws = wrapped.TrackData
	}
	out := make([]feature.Element, 0, len(raws))
	for i, r := range raws {
		if r.Begin == nil {
			logging.Warnf("element %d: missing begin", i)
			continue
		}
		e := feature.Element{Begin: *r.Begin, End: r.End, Value: r.Value, Label: r.Label, NonSpecific: r.NonSpecific}
		if len(r.Color) > 0 && string(r.Color) != "null" {
			if err := json.Unmarshal(r.Color, &e.Color); err != nil {
				logging.Warnf("element %d: colour %s is not a string", i, r.Color)
			}
		}
		out = append(out, e)
	}
	if len(out) == 0 {
		return nil, ErrNoElements
	}
	return out, nil
}

// LoadFASTA reads the first record of a FASTA file as one element per residue,
// starting at position 1.
func LoadFASTA(path string) ([]feature.Element, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	var sb strings.Builder
	seen := false
	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 64*1024), 16*1024*1024)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if strings.HasPrefix(line, ">") {
			if seen {
				break
			}
			seen = true
			continue
		}
		sb.WriteString(line)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	els := Residues(sb.String(), 1)
	if len(els) == 0 {
		return nil, fmt.Errorf("%w: empty sequence", ErrNoElements)
	}
	return els, nil
}

// Residues splits seq into one labelled element per letter from position begin.
func Residues(seq string, begin int) []feature.Element {
	out := make([]feature.Element, 0, len(seq))
	for i, r := range []rune(strings.TrimSpace(seq)) {
		e := feature.At(begin + i)
		e.Label = string(r)
		out = append(out, e)
	}
	return out
}
