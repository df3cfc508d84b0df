// Package sample reduces dense point series to a bounded number of line vertices.
package sample

import (
	"math"
	"sort"
)

// DefaultMaxPoints is the vertex budget used when none is configured.
const DefaultMaxPoints = 1000

// Point is a line vertex: X is the board position, Y the value.
type Point struct {
	X float64
	Y float64
}

// Downsample turns samples at integer positions into an ordered vertex list for the
// visible domain. Unset positions become zero, runs of equal values collapse to their
// end points, zero sentinels pin the line to the domain edges, and the result is reduced
// with LargestTriangleOneBucket when it still exceeds maxPoints.
func Downsample(samples []Point, domain [2]float64, maxPoints int) []Point {
	if maxPoints <= 0 {
		maxPoints = DefaultMaxPoints
	}
	lo, hi := math.MaxFloat64, -math.MaxFloat64
	for _, p := range samples {
		if p.X-0.5 < lo {
			lo = p.X - 0.5
		}
		if p.X+0.5 > hi {
			hi = p.X + 0.5
		}
	}
	lo = math.Max(lo, domain[0])
	hi = math.Min(hi, domain[1])

	var runs []Point
	if lo < hi {
		runs = runBoundaries(samples, lo, hi)
	}

	out := make([]Point, 0, len(runs)+4)
	out = append(out, Point{X: domain[0]})
	if len(runs) > 0 {
		out = append(out, Point{X: lo})
		out = append(out, runs...)
		out = append(out, Point{X: hi})
	}
	out = append(out, Point{X: domain[1]})

	if len(out) > maxPoints {
		out = LargestTriangleOneBucket(out, float64(len(out))/float64(maxPoints))
	}
	return out
}

// runBoundaries yields the integer positions strictly inside (lo, hi), unset ones at
// zero, with every run of equal values reduced to its first and last point. Only
// positions next to a sample can start or end a run, so the window is never materialised.
func runBoundaries(samples []Point, lo, hi float64) []Point {
	first := int64(math.Floor(lo)) + 1
	last := int64(math.Ceil(hi)) - 1
	if first > last {
		return nil
	}
	byPos := make(map[int64]float64, len(samples))
	for _, p := range samples {
		if p.X > lo && p.X < hi {
			byPos[int64(math.Round(p.X))] = p.Y
		}
	}
	seen := map[int64]bool{first: true, last: true}
	cand := []int64{first}
	if last != first {
		cand = append(cand, last)
	}
	for pos := range byPos {
		for c := pos - 1; c <= pos+1; c++ {
			if c >= first && c <= last && !seen[c] {
				seen[c] = true
				cand = append(cand, c)
			}
		}
	}
	sort.Slice(cand, func(i, j int) bool { return cand[i] < cand[j] })

	out := make([]Point, 0, len(cand))
	for _, n := range cand {
		v := byPos[n]
		if n == first || n == last || byPos[n-1] != v || byPos[n+1] != v {
			out = append(out, Point{X: float64(n), Y: v})
		}
	}
	return out
}

// LargestTriangleOneBucket keeps the first and last points and, from each bucket of the
// points between them, the point forming the largest triangle with its two neighbours.
// The global maximum and minimum always replace their bucket's pick, so an isolated
// spike survives however long the flat runs around it are.
func LargestTriangleOneBucket(pts []Point, bucketSize float64) []Point {
	if bucketSize <= 1 || bucketSize >= float64(len(pts)) || len(pts) < 3 {
		return pts
	}
	inner := pts[1 : len(pts)-1]
	areas := make([]float64, len(inner))
	for i := range inner {
		a, b, c := pts[i], pts[i+1], pts[i+2]
		areas[i] = math.Abs((b.X-a.X)*(c.Y-a.Y)-(c.X-a.X)*(b.Y-a.Y)) * 0.5
	}
	hiIdx, loIdx := extrema(inner)
	baseline := (pts[0].Y + pts[len(pts)-1].Y) / 2

	n := int(math.Ceil(float64(len(inner)) / bucketSize))
	out := make([]Point, 0, n+2)
	out = append(out, pts[0])
	for i := 0; i < n; i++ {
		start := int(float64(i) * bucketSize)
		end := int(float64(i+1) * bucketSize)
		if end > len(inner) {
			end = len(inner)
		}
		if start >= end {
			continue
		}
		best := start
		for j := start + 1; j < end; j++ {
			if areas[j] > areas[best] {
				best = j
			}
		}
		hasHi := hiIdx >= start && hiIdx < end
		hasLo := loIdx >= start && loIdx < end
		switch {
		case hasHi && hasLo:
			best = hiIdx
			if math.Abs(inner[loIdx].Y-baseline) > math.Abs(inner[hiIdx].Y-baseline) {
				best = loIdx
			}
		case hasHi:
			best = hiIdx
		case hasLo:
			best = loIdx
		}
		out = append(out, inner[best])
	}
	out = append(out, pts[len(pts)-1])
	return out
}

func extrema(pts []Point) (hi, lo int) {
	for i, p := range pts {
		if p.Y > pts[hi].Y {
			hi = i
		}
		if p.Y < pts[lo].Y {
			lo = i
		}
	}
	return hi, lo
}

// Nearest returns the index of the vertex closest to x in an X-ordered list.
func Nearest(pts []Point, x float64) int {
	if len(pts) == 0 {
		return -1
	}
	i := sort.Search(len(pts), func(i int) bool { return pts[i].X >= x })
	if i == len(pts) {
		return len(pts) - 1
	}
	if i > 0 && x-pts[i-1].X < pts[i].X-x {
		return i - 1
	}
	return i
}
