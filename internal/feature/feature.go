package feature

import "fmt"

// Element is a single annotation or scalar sample on the board coordinate axis.
// A nil End marks a point feature.
type Element struct {
	Begin       int     `json:"begin"`
	End         *int    `json:"end,omitempty"`
	Value       float64 `json:"value,omitempty"`
	Label       string  `json:"label,omitempty"`
	Color       string  `json:"color,omitempty"`
	NonSpecific bool    `json:"nonSpecific,omitempty"`
}

// At returns a point element.
func At(begin int) Element {
	return Element{Begin: begin}
}

// Span returns an element covering [begin, end].
func Span(begin, end int) Element {
	e := end
	return Element{Begin: begin, End: &e}
}

// IsPoint reports whether the element has no end.
func (e Element) IsPoint() bool { return e.End == nil }

// Stop returns the last position covered by the element.
func (e Element) Stop() int {
	if e.End == nil {
		return e.Begin
	}
	return *e.End
}

// Overlaps reports whether any position of e lies in [from, to].
func (e Element) Overlaps(from, to float64) bool {
	if e.End == nil {
		return float64(e.Begin) >= from && float64(e.Begin) <= to
	}
	return !(float64(e.Begin) > to || float64(*e.End) < from)
}

// Contains reports whether pos lies inside the element.
func (e Element) Contains(pos int) bool {
	return pos >= e.Begin && pos <= e.Stop()
}

// Same compares position, value and label; colour is presentation only.
func (e Element) Same(o Element) bool {
	return e.Begin == o.Begin && e.Stop() == o.Stop() && e.IsPoint() == o.IsPoint() &&
		e.Value == o.Value && e.Label == o.Label && e.NonSpecific == o.NonSpecific
}

func (e Element) String() string {
	if e.End == nil {
		return fmt.Sprintf("%d", e.Begin)
	}
	return fmt.Sprintf("%d-%d", e.Begin, *e.End)
}

// Extent returns the smallest [min, max] covering all elements.
func Extent(els []Element) (min, max int, ok bool) {
	for i, e := range els {
		if i == 0 {
			min, max = e.Begin, e.Stop()
			continue
		}
		if e.Begin < min {
			min = e.Begin
		}
		if e.Stop() > max {
			max = e.Stop()
		}
	}
	return min, max, len(els) > 0
}
