// Package scale maps a logical coordinate domain onto a pixel range and back.
package scale

import (
	"errors"
	"fmt"
	"math"
)

// ErrUnknownFormat reports a scale that cannot be configured from the given input.
var ErrUnknownFormat = errors.New("scale: unknown format")

// Kind distinguishes the position axis from value axes.
type Kind int

const (
	Position Kind = iota
	Value
)

func (k Kind) String() string {
	if k == Value {
		return "value"
	}
	return "position"
}

// Reader is the read-only view of a scale handed to tracks.
type Reader interface {
	Kind() Kind
	Domain() [2]float64
	Range() [2]float64
	Map(v float64) float64
	Invert(px float64) float64
}

// Linear is a linear scale. The owner re-domains it in place, so every holder of the
// pointer observes the latest domain.
type Linear struct {
	kind   Kind
	domain [2]float64
	rng    [2]float64
	set    bool
}

func New(kind Kind) *Linear {
	return &Linear{kind: kind, domain: [2]float64{0, 1}, rng: [2]float64{0, 1}}
}

// NewPosition returns an unconfigured position scale.
func NewPosition() *Linear { return New(Position) }

// NewValue builds a value scale; an empty domain or non-positive height is an error.
func NewValue(domain []float64, height int) (*Linear, error) {
	s := New(Value)
	if err := s.ConfigureValue(domain, height); err != nil {
		return nil, err
	}
	return s, nil
}

// ConfigureValue sets a vertical value scale with a 3 pixel margin; larger values map higher.
func (s *Linear) ConfigureValue(domain []float64, height int) error {
	if len(domain) != 2 || !finite(domain[0]) || !finite(domain[1]) || height <= 0 {
		return fmt.Errorf("%w: domain=%v height=%d", ErrUnknownFormat, domain, height)
	}
	s.domain = [2]float64{domain[0], domain[1]}
	s.rng = [2]float64{float64(height - 3), 3}
	if height < 6 {
		s.rng = [2]float64{float64(height), 0}
	}
	s.set = true
	return nil
}

func (s *Linear) Kind() Kind         { return s.kind }
func (s *Linear) Domain() [2]float64 { return s.domain }
func (s *Linear) Range() [2]float64  { return s.rng }

// Configured reports whether a domain has been assigned.
func (s *Linear) Configured() bool { return s.set }

// Map projects a domain value into the pixel range.
func (s *Linear) Map(v float64) float64 {
	d := s.domain[1] - s.domain[0]
	if d == 0 {
		return s.rng[0]
	}
	return s.rng[0] + (v-s.domain[0])/d*(s.rng[1]-s.rng[0])
}

// Invert maps a pixel back into the domain.
func (s *Linear) Invert(px float64) float64 {
	r := s.rng[1] - s.rng[0]
	if r == 0 {
		return s.domain[0]
	}
	return s.domain[0] + (px-s.rng[0])/r*(s.domain[1]-s.domain[0])
}

// SetDomain re-domains the scale in place.
func (s *Linear) SetDomain(from, to float64) {
	s.domain = [2]float64{from, to}
	s.set = true
}

// SetRange sets the pixel range.
func (s *Linear) SetRange(from, to float64) {
	s.rng = [2]float64{from, to}
}

// CheckAndSet configures the scale unless it already holds the same domain and pixel
// range. It returns true when the configuration was kept, false when domain and range
// were (re)assigned, in which case anything expressed against the old domain is stale.
func (s *Linear) CheckAndSet(domain, rng [2]float64) bool {
	if s.set && s.rng == rng && s.domain == domain && s.domain[1] > s.domain[0] {
		return true
	}
	s.domain = domain
	s.rng = rng
	s.set = true
	return false
}

// PixelsPerUnit is the current zoom level expressed as pixels per domain unit.
func PixelsPerUnit(s Reader) float64 {
	d, r := s.Domain(), s.Range()
	if d[1] == d[0] {
		return 0
	}
	return math.Abs((r[1] - r[0]) / (d[1] - d[0]))
}

func finite(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }
