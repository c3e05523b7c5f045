package scope

import (
	"image/color"
	"math"
	"sync"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/widget"
	"github.com/itohio/minmax/pkg/decimate"
	"github.com/samber/lo"
)

// ScopeWidget is a custom Fyne widget that plots a decimated series as one
// high-low bar per pixel column.
type ScopeWidget struct {
	widget.BaseWidget

	// Protected by mu. The filter is only touched while holding the write lock.
	mu     sync.RWMutex
	filter decimate.Filter
	points []decimate.Point

	// Requested view; infinite bounds follow the data extent.
	minX, maxX float64

	// Effective axes of the last update
	xMin, xMax float64
	yMin, yMax float64

	// Upper bound on the point budget; the plot width also caps it.
	maxPoints int
}

// New creates a new ScopeWidget over filter. filter may be nil.
func New(filter decimate.Filter, maxPoints int) *ScopeWidget {
	s := &ScopeWidget{
		filter:    filter,
		minX:      math.Inf(-1),
		maxX:      math.Inf(1),
		maxPoints: maxPoints,
	}
	s.ExtendBaseWidget(s)
	return s
}

// SetFilter replaces the displayed series and resets the view.
func (s *ScopeWidget) SetFilter(filter decimate.Filter) {
	s.mu.Lock()
	s.filter = filter
	s.minX, s.maxX = math.Inf(-1), math.Inf(1)
	s.mu.Unlock()

	s.Refresh()
}

// SetView sets the visible x range.
func (s *ScopeWidget) SetView(minX, maxX float64) {
	s.mu.Lock()
	s.minX, s.maxX = minX, maxX
	s.mu.Unlock()

	s.Refresh()
}

// ResetView shows the whole series.
func (s *ScopeWidget) ResetView() {
	s.SetView(math.Inf(-1), math.Inf(1))
}

// View returns the requested x range.
func (s *ScopeWidget) View() (minX, maxX float64) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.minX, s.maxX
}

// update re-bounds the filter for a plot that is width pixels wide and
// recomputes the axes.
func (s *ScopeWidget) update(width int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.filter == nil {
		s.points = nil
		s.xMin, s.xMax = 0, 1
		s.yMin, s.yMax = 0, 1
		return
	}

	budget := width
	if s.maxPoints > 0 {
		budget = min(budget, s.maxPoints)
	}

	s.xMin, s.xMax = visibleRange(s.filter, s.minX, s.maxX)
	s.filter.SetBounds(s.xMin, s.xMax, budget)
	if s.xMax <= s.xMin {
		// Nothing visible; keep a valid axis.
		s.xMax = s.xMin + 1
	}
	points := make([]decimate.Point, s.filter.Count())
	for i := range points {
		points[i] = s.filter.At(i)
	}
	s.points = points

	s.yMin, s.yMax = autoScale(s.points)
}

// visibleRange clips the requested view to the filter's extent. The result
// is inverted when the view misses the data.
func visibleRange(filter decimate.Filter, minX, maxX float64) (float64, float64) {
	extMin, extMax := filter.Extent()
	return max(minX, extMin), min(maxX, extMax)
}

// autoScale returns the y range of points with a 10% margin.
func autoScale(points []decimate.Point) (yMin, yMax float64) {
	if len(points) == 0 {
		return 0, 1
	}

	yMin = lo.Min(lo.Map(points, func(p decimate.Point, _ int) float64 { return p.Low }))
	yMax = lo.Max(lo.Map(points, func(p decimate.Point, _ int) float64 { return p.High }))

	range_ := yMax - yMin
	if range_ == 0 {
		range_ = 1.0
	}
	margin := range_ * 0.1
	return yMin - margin, yMax + margin
}

// CreateRenderer creates the widget renderer.
func (s *ScopeWidget) CreateRenderer() fyne.WidgetRenderer {
	grid := canvas.NewRectangle(color.RGBA{R: 20, G: 20, B: 20, A: 255}) // Dark background
	return &scopeRenderer{
		scope:   s,
		grid:    grid,
		objects: []fyne.CanvasObject{grid},
	}
}
