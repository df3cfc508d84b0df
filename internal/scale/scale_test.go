package scale

import (
	"errors"
	"math"
	"testing"
)

func TestMapInvertRoundTrip(t *testing.T) {
	s := NewPosition()
	s.SetDomain(1, 500)
	s.SetRange(10, 910)
	for _, v := range []float64{1, 17.5, 250, 500} {
		px := s.Map(v)
		if back := s.Invert(px); math.Abs(back-v) > 1e-9 {
			t.Fatalf("invert(map(%v)) = %v", v, back)
		}
	}
	if px := s.Map(1); px != 10 {
		t.Fatalf("domain start should map to range start, got %v", px)
	}
	if px := s.Map(500); px != 910 {
		t.Fatalf("domain end should map to range end, got %v", px)
	}
}

func TestCheckAndSet(t *testing.T) {
	s := NewPosition()
	if s.CheckAndSet([2]float64{1, 500}, [2]float64{10, 910}) {
		t.Fatalf("first configuration must report a fresh domain")
	}
	if !s.CheckAndSet([2]float64{1, 500}, [2]float64{10, 910}) {
		t.Fatalf("same domain and pixel range should keep the configuration")
	}
	s.SetDomain(100, 200)
	if s.CheckAndSet([2]float64{1, 500}, [2]float64{10, 910}) {
		t.Fatalf("a different window must reassign the domain")
	}
	if d := s.Domain(); d != [2]float64{1, 500} {
		t.Fatalf("domain = %v want [1 500]", d)
	}
	if s.CheckAndSet([2]float64{1, 500}, [2]float64{10, 500}) {
		t.Fatalf("a new pixel range must reassign the scale")
	}
	if d := s.Domain(); d != [2]float64{1, 500} {
		t.Fatalf("domain = %v want [1 500]", d)
	}
}

func TestValueScaleRequiresDomainAndHeight(t *testing.T) {
	if _, err := NewValue(nil, 20); !errors.Is(err, ErrUnknownFormat) {
		t.Fatalf("missing domain: err = %v", err)
	}
	if _, err := NewValue([]float64{0, math.NaN()}, 20); !errors.Is(err, ErrUnknownFormat) {
		t.Fatalf("NaN domain: err = %v", err)
	}
	if _, err := NewValue([]float64{0, 1}, 0); !errors.Is(err, ErrUnknownFormat) {
		t.Fatalf("zero height: err = %v", err)
	}
	s, err := NewValue([]float64{0, 10}, 40)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.Map(10) >= s.Map(0) {
		t.Fatalf("larger values should map higher (smaller y): %v vs %v", s.Map(10), s.Map(0))
	}
}

func TestPixelsPerUnit(t *testing.T) {
	s := NewPosition()
	s.SetDomain(0, 100)
	s.SetRange(0, 200)
	if r := PixelsPerUnit(s); r != 2 {
		t.Fatalf("ratio = %v want 2", r)
	}
}
