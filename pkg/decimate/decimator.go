package decimate

import (
	"math"
	"slices"

	"github.com/go-errors/errors"
	"golang.org/x/exp/constraints"
)

const (
	// DefaultMaxPoints is the point budget used until SetBounds is called.
	DefaultMaxPoints = 2000

	emptyIndex = -1
)

// ErrInvalidArgument is returned for malformed construction inputs.
var ErrInvalidArgument = errors.New("invalid argument")

// Number is any sample type that can be ordered and converted to float64.
type Number interface {
	constraints.Integer | constraints.Float
}

var _ Filter = (*Decimator[float64])(nil)

// Decimator reduces a uniformly sampled series to at most MaxPts points,
// one per window of the visible range, each carrying the window extremes.
//
// A Decimator is not safe for concurrent use. SetBounds is the only mutator
// and the raw samples are never written to.
type Decimator[T Number] struct {
	y     []T
	xfreq float64
	yfreq float64

	maxPts   int
	minIndex int
	maxIndex int

	points []Point
}

// New creates a Decimator over y. xfreq is the number of samples per x-unit
// and yfreq divides every raw value. y is referenced, not copied.
func New[T Number](y []T, xfreq, yfreq float64) (*Decimator[T], error) {
	if len(y) == 0 {
		return nil, errors.WrapPrefix(ErrInvalidArgument, "samples must not be empty", 0)
	}
	if math.IsNaN(xfreq) || math.IsInf(xfreq, 0) || xfreq <= 0 {
		return nil, errors.WrapPrefix(ErrInvalidArgument, "xfreq must be a finite positive number", 0)
	}
	if math.IsNaN(yfreq) || math.IsInf(yfreq, 0) || yfreq == 0 {
		return nil, errors.WrapPrefix(ErrInvalidArgument, "yfreq must be finite and non-zero", 0)
	}

	return &Decimator[T]{
		y:        y,
		xfreq:    xfreq,
		yfreq:    yfreq,
		maxPts:   DefaultMaxPoints,
		minIndex: emptyIndex,
		maxIndex: emptyIndex,
	}, nil
}

// Clone returns an independent copy holding its own copy of the raw samples.
func (d *Decimator[T]) Clone() *Decimator[T] {
	return &Decimator[T]{
		y:        slices.Clone(d.y),
		xfreq:    d.xfreq,
		yfreq:    d.yfreq,
		maxPts:   d.maxPts,
		minIndex: d.minIndex,
		maxIndex: d.maxIndex,
		points:   slices.Clone(d.points),
	}
}

// SetBounds selects the visible x range and rebuilds the output points.
// Infinite bounds (or ±math.MaxFloat64) select the whole series. Ranges
// outside the data, inverted ranges and non-positive budgets yield no points.
func (d *Decimator[T]) SetBounds(minX, maxX float64, maxPts int) {
	d.maxPts = maxPts
	n := len(d.y)

	first := math.Floor(d.xfreq * minX)
	switch {
	case math.IsNaN(first) || first > float64(n):
		d.minIndex = emptyIndex
	case first < 0:
		d.minIndex = 0
	default:
		d.minIndex = int(first)
	}

	last := math.Ceil(d.xfreq * maxX)
	switch {
	case math.IsNaN(last) || last < 0:
		d.maxIndex = emptyIndex
	case last > float64(n):
		d.maxIndex = n
	default:
		d.maxIndex = int(last)
	}

	if d.minIndex == emptyIndex || d.maxIndex == emptyIndex || d.maxIndex < d.minIndex {
		d.minIndex, d.maxIndex = emptyIndex, emptyIndex
	}

	count := 0
	if d.minIndex != emptyIndex {
		count = min(d.maxIndex-d.minIndex, maxPts)
	}
	d.points = d.filter(max(count, 0))
}

// SetFullRange is SetBounds over the whole series.
func (d *Decimator[T]) SetFullRange(maxPts int) {
	d.SetBounds(math.Inf(-1), math.Inf(1), maxPts)
}

// filter scans every sample of [minIndex, maxIndex) exactly once.
func (d *Decimator[T]) filter(count int) []Point {
	points := make([]Point, count)
	if count == 0 {
		return points
	}

	span := d.maxIndex - d.minIndex
	coef := float64(span) / float64(count)
	start := d.minIndex
	for i := range points {
		end := d.minIndex + windowEnd(span, count, i, coef)

		lo, hi := d.y[start], d.y[start]
		for _, v := range d.y[start+1 : end] {
			if v < lo {
				lo = v
			}
			if v > hi {
				hi = v
			}
		}

		points[i] = Point{
			X:    (float64(d.minIndex) + float64(i)*coef) / d.xfreq,
			High: float64(hi) / d.yfreq,
			Low:  float64(lo) / d.yfreq,
		}
		start = end
	}

	return points
}

// windowEnd returns the end of window i relative to the range start.
// The last window is pinned to span so rounding never leaves a gap.
func windowEnd(span, count, i int, coef float64) int {
	if i == count-1 {
		return span
	}
	return int(math.Round(coef * float64(i+1)))
}

// Count returns the number of points produced by the last SetBounds.
func (d *Decimator[T]) Count() int {
	return len(d.points)
}

// MaxPts returns the last configured point budget.
func (d *Decimator[T]) MaxPts() int {
	return d.maxPts
}

// At returns the point at index, or MissingPoint when index is out of range.
func (d *Decimator[T]) At(index int) Point {
	if p, ok := d.Lookup(index); ok {
		return p
	}
	return MissingPoint
}

// Lookup returns the point at index and whether it exists.
func (d *Decimator[T]) Lookup(index int) (Point, bool) {
	if index < 0 || index >= len(d.points) {
		return Point{}, false
	}
	return d.points[index], true
}

// Points returns a copy of the current output.
func (d *Decimator[T]) Points() []Point {
	return slices.Clone(d.points)
}

// Bounds returns the visible index range, or (-1, -1) when it is empty.
func (d *Decimator[T]) Bounds() (minIndex, maxIndex int) {
	return d.minIndex, d.maxIndex
}

// Len returns the number of raw samples.
func (d *Decimator[T]) Len() int {
	return len(d.y)
}

// Extent returns the x range covered by the raw samples.
func (d *Decimator[T]) Extent() (minX, maxX float64) {
	return 0, float64(len(d.y)) / d.xfreq
}

// Windows returns the raw index ranges summarized by the current points.
func (d *Decimator[T]) Windows() []Window {
	count := len(d.points)
	if count == 0 {
		return nil
	}

	span := d.maxIndex - d.minIndex
	coef := float64(span) / float64(count)
	windows := make([]Window, count)
	start := d.minIndex
	for i := range windows {
		end := d.minIndex + windowEnd(span, count, i, coef)
		windows[i] = Window{Start: start, End: end}
		start = end
	}
	return windows
}
