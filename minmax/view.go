package main

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
	"github.com/itohio/minmax/pkg/config"
	"github.com/itohio/minmax/pkg/sample"
	"github.com/itohio/minmax/pkg/scope"
	"github.com/sirupsen/logrus"
)

func runView(log *logrus.Entry, cfg *config.Config) error {
	filter, err := sample.Load(cfg)
	if err != nil {
		return err
	}

	minX, maxX := filter.Extent()
	log.WithFields(logrus.Fields{
		"file":   cfg.Series.File,
		"format": cfg.Series.Format,
		"max_x":  maxX,
	}).Info("series loaded")

	application := app.NewWithID("com.itohio.minmax")

	title := "minmax"
	if cfg.Series.File != "" {
		title += " - " + cfg.Series.File
	}
	window := application.NewWindow(title)
	window.Resize(fyne.NewSize(1200, 800))
	window.CenterOnScreen()

	scopeWidget := scope.New(filter, cfg.Display.MaxPoints)
	scopeWidget.SetView(cfg.Display.Bounds())

	status := widget.NewLabel("")
	status.SetText(statusText(minX, maxX, cfg))

	window.SetContent(container.NewBorder(nil, status, nil, nil, scopeWidget))
	window.ShowAndRun()

	return nil
}

func statusText(minX, maxX float64, cfg *config.Config) string {
	return "extent " + formatRange(minX, maxX) +
		", xfreq " + formatFloat(cfg.Series.XFreq) +
		", yfreq " + formatFloat(cfg.Series.YFreq)
}
