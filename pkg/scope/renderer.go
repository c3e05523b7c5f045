package scope

import (
	"image/color"
	"math"
	"strconv"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"github.com/chewxy/math32"
	"github.com/itohio/minmax/pkg/decimate"
)

var (
	gridColor  = color.RGBA{R: 40, G: 40, B: 40, A: 255}
	labelColor = color.RGBA{R: 150, G: 150, B: 150, A: 255}
	barColor   = color.RGBA{R: 255, G: 165, B: 0, A: 255} // Orange
	traceColor = color.RGBA{R: 100, G: 200, B: 255, A: 255}
)

// frame maps data coordinates onto the plot rectangle.
type frame struct {
	x, y, w, h float32
	xMin, xMax float64
	yMin, yMax float64
}

func (f frame) px(x float64) float32 {
	return f.x + math32.Floor(float32((x-f.xMin)/(f.xMax-f.xMin))*f.w)
}

func (f frame) py(y float64) float32 {
	v := f.y + f.h - float32((y-f.yMin)/(f.yMax-f.yMin))*f.h
	return math32.Min(math32.Max(v, f.y), f.y+f.h)
}

// bar is a vertical segment spanning a window's extremes, in pixels.
type bar struct {
	x, top, bottom float32
}

// bars lays out one bar per point. Bars are at least one pixel tall so flat
// windows stay visible.
func bars(points []decimate.Point, f frame) []bar {
	out := make([]bar, 0, len(points))
	for _, p := range points {
		b := bar{x: f.px(p.X), top: f.py(p.High), bottom: f.py(p.Low)}
		if b.bottom-b.top < 1 {
			b.bottom = b.top + 1
		}
		out = append(out, b)
	}
	return out
}

// scopeRenderer renders the scope widget.
type scopeRenderer struct {
	scope *ScopeWidget

	// Background
	grid *canvas.Rectangle

	// Objects list for Fyne
	objects []fyne.CanvasObject

	// Track last size to detect changes
	lastSize fyne.Size
}

// MinSize returns the minimum size of the widget.
func (r *scopeRenderer) MinSize() fyne.Size {
	return fyne.NewSize(400, 300)
}

// Layout arranges the widget components.
func (r *scopeRenderer) Layout(size fyne.Size) {
	r.grid.Resize(size)

	if r.lastSize != size {
		r.lastSize = size
		// The point budget follows the plot width, so redraw on resize.
		r.scope.BaseWidget.Refresh()
	}
}

// Refresh re-bounds the series for the current size and rebuilds the objects.
func (r *scopeRenderer) Refresh() {
	size := r.scope.Size()
	if size.Width == 0 || size.Height == 0 {
		return
	}

	marginLeft := float32(60.0)
	marginRight := float32(20.0)
	marginTop := float32(20.0)
	marginBottom := float32(40.0)

	f := frame{
		x: marginLeft,
		y: marginTop,
		w: math32.Max(size.Width-marginLeft-marginRight, 1),
		h: math32.Max(size.Height-marginTop-marginBottom, 1),
	}

	r.scope.update(int(f.w))

	r.scope.mu.RLock()
	points := r.scope.points
	f.xMin, f.xMax = r.scope.xMin, r.scope.xMax
	f.yMin, f.yMax = r.scope.yMin, r.scope.yMax
	r.scope.mu.RUnlock()

	r.objects = []fyne.CanvasObject{r.grid}
	r.drawGrid(f)
	r.drawBars(bars(points, f))
}

// drawGrid draws the oscilloscope-style grid.
func (r *scopeRenderer) drawGrid(f frame) {
	numHLines := 8
	for i := range numHLines + 1 {
		y := f.y + float32(i)*f.h/float32(numHLines)
		r.addLine(fyne.NewPos(f.x, y), fyne.NewPos(f.x+f.w, y), gridColor, 1)

		value := f.yMax - float64(i)*(f.yMax-f.yMin)/float64(numHLines)
		text := canvas.NewText(formatValue(value), labelColor)
		text.TextSize = 10
		text.Alignment = fyne.TextAlignTrailing
		text.Move(fyne.NewPos(f.x-5, y-6))
		r.objects = append(r.objects, text)
	}

	numVLines := 10
	for i := range numVLines + 1 {
		x := f.x + float32(i)*f.w/float32(numVLines)
		r.addLine(fyne.NewPos(x, f.y), fyne.NewPos(x, f.y+f.h), gridColor, 1)

		value := f.xMin + float64(i)*(f.xMax-f.xMin)/float64(numVLines)
		text := canvas.NewText(formatValue(value), labelColor)
		text.TextSize = 10
		text.Alignment = fyne.TextAlignCenter
		text.Move(fyne.NewPos(x-20, f.y+f.h+5))
		r.objects = append(r.objects, text)
	}
}

// drawBars draws each high-low bar and a trace joining consecutive bars.
func (r *scopeRenderer) drawBars(bs []bar) {
	for i, b := range bs {
		r.addLine(fyne.NewPos(b.x, b.top), fyne.NewPos(b.x, b.bottom), barColor, 1)

		if i == 0 {
			continue
		}
		prev := bs[i-1]
		// Join at the nearest ends so the trace follows the envelope.
		if prev.bottom < b.top {
			r.addLine(fyne.NewPos(prev.x, prev.bottom), fyne.NewPos(b.x, b.top), traceColor, 1)
		} else if prev.top > b.bottom {
			r.addLine(fyne.NewPos(prev.x, prev.top), fyne.NewPos(b.x, b.bottom), traceColor, 1)
		}
	}
}

func (r *scopeRenderer) addLine(p1, p2 fyne.Position, c color.Color, width float32) {
	line := canvas.NewLine(c)
	line.Position1 = p1
	line.Position2 = p2
	line.StrokeWidth = width
	r.objects = append(r.objects, line)
}

// Objects returns all canvas objects for rendering.
func (r *scopeRenderer) Objects() []fyne.CanvasObject {
	return r.objects
}

// Destroy cleans up resources.
func (r *scopeRenderer) Destroy() {
	// Cleanup handled by Fyne
}

func formatValue(v float64) string {
	if math.Abs(v) < 1e-9 {
		return "0"
	}
	return strconv.FormatFloat(v, 'g', 4, 64)
}
