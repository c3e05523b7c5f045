package main

import (
	"fmt"
	"io"
	"strconv"

	"github.com/itohio/minmax/pkg/config"
	"github.com/itohio/minmax/pkg/preview"
	"github.com/itohio/minmax/pkg/sample"
)

func runPreview(w io.Writer, cfg *config.Config) error {
	filter, err := sample.Load(cfg)
	if err != nil {
		return err
	}

	// Each point takes two columns (high, low).
	budget := max(cfg.Display.Width/2, 1)
	if cfg.Display.MaxPoints > 0 {
		budget = min(budget, cfg.Display.MaxPoints)
	}

	minX, maxX := cfg.Display.Bounds()
	filter.SetBounds(minX, maxX, budget)

	if filter.Count() == 0 {
		extMin, extMax := filter.Extent()
		_, err := fmt.Fprintf(w, "no samples in range; series covers %s\n", formatRange(extMin, extMax))
		return err
	}

	caption := cfg.Series.File
	if caption == "" {
		caption = "synthetic"
	}

	_, err = fmt.Fprintln(w, preview.Render(filter, preview.Options{
		Height:  cfg.Display.Height,
		Caption: caption,
	}))
	return err
}

func formatRange(minX, maxX float64) string {
	return formatFloat(minX) + ".." + formatFloat(maxX)
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', 6, 64)
}
