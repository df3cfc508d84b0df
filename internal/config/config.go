// Package config reads the board and row configuration of a viewer session.
package config

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"seqview/internal/feature"
	"seqview/internal/track"
	"seqview/internal/trackdata"
)

// ErrInvalidRange reports a board extent that cannot be navigated.
var ErrInvalidRange = errors.New("config: invalid range")

type Range struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

type Board struct {
	// Length sets the extent to [1, Length]; Range overrides it.
	Length  int     `json:"length,omitempty"`
	Range   *Range  `json:"range,omitempty"`
	MinZoom float64 `json:"minZoom,omitempty"`
	MaxZoom float64 `json:"maxZoom,omitempty"`
	// UpdateDelay is in milliseconds.
	UpdateDelay            int  `json:"updateDelay,omitempty"`
	MaxPoints              int  `json:"maxPoints,omitempty"`
	TrackWidth             int  `json:"trackWidth,omitempty"`
	IncludeTooltip         bool `json:"includeTooltip"`
	HighlightHoverElement  bool `json:"highlightHoverElement"`
	HighlightHoverPosition bool `json:"highlightHoverPosition"`
}

type Row struct {
	TrackID       string          `json:"trackId"`
	RowTitle      string          `json:"rowTitle,omitempty"`
	DisplayType   string          `json:"displayType"`
	DisplayColor  string          `json:"displayColor,omitempty"`
	TrackHeight   int             `json:"trackHeight,omitempty"`
	DisplayDomain []float64       `json:"displayDomain,omitempty"`
	MinRatio      []float64       `json:"minRatio,omitempty"`
	Interpolation string          `json:"interpolationType,omitempty"`
	Visibility    *bool           `json:"trackVisibility,omitempty"`
	DataFile      string          `json:"dataFile,omitempty"`
	TrackData     json.RawMessage `json:"trackData,omitempty"`
}

// Visible is the initial visibility; rows are shown unless disabled.
func (r Row) Visible() bool { return r.Visibility == nil || *r.Visibility }

// Title falls back to the track id.
func (r Row) Title() string {
	if r.RowTitle != "" {
		return r.RowTitle
	}
	return r.TrackID
}

type Config struct {
	Board Board `json:"board"`
	Rows  []Row `json:"rows"`
	// Dir resolves relative data files.
	Dir string `json:"-"`
}

// Default returns a board with the viewer defaults and no rows.
func Default() Config {
	return Config{
		Board: Board{
			UpdateDelay:            300,
			MaxPoints:              1000,
			HighlightHoverElement:  true,
			HighlightHoverPosition: true,
			IncludeTooltip:         true,
		},
	}
}

// Load decodes a JSON configuration file over the defaults.
func Load(path string) (Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return Config{}, err
	}
	defer f.Close()
	c, err := Decode(f)
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", filepath.Base(path), err)
	}
	c.Dir = filepath.Dir(path)
	return c, nil
}

func Decode(r io.Reader) (Config, error) {
	c := Default()
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&c); err != nil {
		return Config{}, err
	}
	return c, nil
}

// FromFile builds a session for a single data file: an axis row and one row whose
// display type follows the data.
func FromFile(path string) (Config, error) {
	els, err := trackdata.Load(path)
	if err != nil {
		return Config{}, err
	}
	c := Default()
	c.Dir = filepath.Dir(path)
	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	row := Row{TrackID: name, DataFile: filepath.Base(path)}
	switch {
	case hasLabels(els) && allPoints(els):
		row.DisplayType = string(track.KindSequence)
	case allPoints(els):
		row.DisplayType = string(track.KindLine)
		row.TrackHeight = 4
		lo, hi := valueExtent(els)
		row.DisplayDomain = []float64{lo, hi}
	default:
		row.DisplayType = string(track.KindBlock)
	}
	c.Rows = []Row{{TrackID: "axis", DisplayType: string(track.KindAxis)}, row}
	return c, nil
}

func hasLabels(els []feature.Element) bool {
	for _, e := range els {
		if e.Label != "" {
			return true
		}
	}
	return false
}

func allPoints(els []feature.Element) bool {
	for _, e := range els {
		if !e.IsPoint() {
			return false
		}
	}
	return true
}

func valueExtent(els []feature.Element) (lo, hi float64) {
	for i, e := range els {
		if i == 0 || e.Value < lo {
			lo = e.Value
		}
		if i == 0 || e.Value > hi {
			hi = e.Value
		}
	}
	if lo > 0 {
		lo = 0
	}
	if hi <= lo {
		hi = lo + 1
	}
	return lo, hi
}

// Extent returns the navigable range, or ok=false when neither range nor length is set.
func (b Board) Extent() (from, to float64, ok bool) {
	if b.Range != nil {
		return b.Range.Min, b.Range.Max, true
	}
	if b.Length > 0 {
		return 1, float64(b.Length), true
	}
	return 0, 0, false
}

// Delay returns the update debounce window.
func (b Board) Delay() time.Duration {
	return time.Duration(b.UpdateDelay) * time.Millisecond
}

// Validate reports configuration the viewer cannot start with.
func (c Config) Validate() error {
	if from, to, ok := c.Board.Extent(); ok && !(to > from) {
		return fmt.Errorf("%w: [%g, %g]", ErrInvalidRange, from, to)
	}
	if c.Board.MinZoom < 0 || c.Board.MaxZoom < 0 {
		return fmt.Errorf("%w: negative zoom limit", ErrInvalidRange)
	}
	if c.Board.MaxZoom > 0 && c.Board.MinZoom > c.Board.MaxZoom {
		return fmt.Errorf("%w: minZoom %g above maxZoom %g", ErrInvalidRange, c.Board.MinZoom, c.Board.MaxZoom)
	}
	if len(c.Rows) == 0 {
		return errors.New("config: no rows")
	}
	seen := make(map[string]bool)
	for i, r := range c.Rows {
		if r.TrackID == "" {
			return fmt.Errorf("config: row %d has no trackId", i)
		}
		if seen[r.TrackID] {
			return fmt.Errorf("config: duplicate trackId %q", r.TrackID)
		}
		seen[r.TrackID] = true
		if _, err := track.ParseKind(r.DisplayType); err != nil {
			return fmt.Errorf("config: row %s: %w", r.TrackID, err)
		}
		if _, err := track.ParseInterpolation(r.Interpolation); err != nil {
			return fmt.Errorf("config: row %s: %w", r.TrackID, err)
		}
		if len(r.MinRatio) != 0 && len(r.MinRatio) != 2 {
			return fmt.Errorf("config: row %s: minRatio needs two values", r.TrackID)
		}
	}
	return nil
}

// Elements loads the row data from trackData or dataFile. Axis rows have none.
func (c Config) Elements(r Row) ([]feature.Element, error) {
	switch {
	case len(r.TrackData) > 0:
		return trackdata.ParseJSON(r.TrackData)
	case r.DataFile != "":
		p := r.DataFile
		if !filepath.IsAbs(p) && c.Dir != "" {
			p = filepath.Join(c.Dir, p)
		}
		return trackdata.Load(p)
	}
	return nil, nil
}

// Flags are the command line options.
type Flags struct {
	ConfigPath  string
	LogFile     string
	LogLevel    string
	UpdateDelay time.Duration
	MaxPoints   int
	Version     bool
	Args        []string
}

// ParseFlags parses args with a fresh flag set named name.
func ParseFlags(name string, args []string) (Flags, error) {
	var f Flags
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.StringVar(&f.ConfigPath, "config", "", "board configuration (JSON)")
	fs.StringVar(&f.LogFile, "debug", "", "write debug logs to file")
	fs.StringVar(&f.LogLevel, "log-level", "info", "log level: debug, info, warn, error")
	fs.DurationVar(&f.UpdateDelay, "update-delay", 0, "override the update debounce window")
	fs.IntVar(&f.MaxPoints, "max-points", 0, "override the line vertex budget")
	fs.BoolVar(&f.Version, "version", false, "print version and exit")
	if err := fs.Parse(args); err != nil {
		return Flags{}, err
	}
	f.Args = fs.Args()
	return f, nil
}

// ApplyFlags overrides file values with non-zero flags.
func (c *Config) ApplyFlags(f Flags) {
	if f.UpdateDelay > 0 {
		c.Board.UpdateDelay = int(f.UpdateDelay / time.Millisecond)
	}
	if f.MaxPoints > 0 {
		c.Board.MaxPoints = f.MaxPoints
	}
}
