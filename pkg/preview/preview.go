package preview

import (
	"fmt"

	"github.com/itohio/minmax/pkg/decimate"
	"github.com/jesseduffield/asciigraph"
	"github.com/samber/lo"
)

// Options controls the terminal rendering.
type Options struct {
	Height  int
	Caption string
}

// Envelope flattens points into High, Low pairs so a line plot traces every
// window's full excursion.
func Envelope(list decimate.PointList) []float64 {
	out := make([]float64, 0, 2*list.Count())
	for i := 0; i < list.Count(); i++ {
		p := list.At(i)
		out = append(out, p.High, p.Low)
	}
	return out
}

// Render plots list as an ascii graph. An empty list renders as "".
// The caller picks the point budget; two columns are drawn per point.
func Render(list decimate.PointList, opts Options) string {
	series := Envelope(list)
	if len(series) == 0 {
		return ""
	}

	height := 10
	if opts.Height > 0 {
		height = opts.Height
	}

	first, last := list.At(0), list.At(list.Count()-1)
	caption := fmt.Sprintf(
		"%d points, x %.4g..%.4g, y %.4g..%.4g",
		list.Count(),
		first.X,
		last.X,
		lo.Min(series),
		lo.Max(series),
	)
	if opts.Caption != "" {
		caption = opts.Caption + ": " + caption
	}

	return asciigraph.Plot(
		series,
		asciigraph.Height(height),
		asciigraph.Caption(caption),
	)
}
