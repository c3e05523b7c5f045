package decimate

import "math"

// Missing marks a coordinate that has no value. It matches the convention of
// point lists that report out-of-range entries instead of failing.
const Missing = math.MaxFloat64

// MissingPoint is returned by At for indices outside [0, Count).
var MissingPoint = Point{X: Missing, High: Missing, Low: Missing}

// Point summarizes one window of raw samples.
type Point struct {
	X    float64 // Window start in x-units
	High float64 // Window maximum divided by yfreq
	Low  float64 // Window minimum divided by yfreq
}

// IsMissing reports whether any coordinate of p carries the Missing sentinel.
func (p Point) IsMissing() bool {
	return p.X == Missing || p.High == Missing || p.Low == Missing
}

// Window is a half-open range [Start, End) of raw sample indices.
type Window struct {
	Start int
	End   int
}

// Len returns the number of raw samples in the window.
func (w Window) Len() int {
	return w.End - w.Start
}

// PointList is the read side consumed by renderers: they iterate [0, Count).
type PointList interface {
	Count() int
	At(index int) Point
}

// Filter is a PointList whose content is driven by the visible x range.
type Filter interface {
	PointList
	SetBounds(minX, maxX float64, maxPts int)
	MaxPts() int
	Extent() (minX, maxX float64)
}
