package main

import (
	"context"
	"os"

	"github.com/go-errors/errors"
	"github.com/itohio/minmax/pkg/capture"
	"github.com/itohio/minmax/pkg/config"
	"github.com/itohio/minmax/pkg/sample"
	"github.com/sirupsen/logrus"
)

func runCapture(log *logrus.Entry, cfg *config.Config, useMock bool, output string) error {
	if output == "" {
		return errors.Errorf("an output file is required")
	}

	var dev capture.Device
	if useMock {
		dev = capture.NewMock(cfg.Synth, 0, 0)
	} else {
		dev = capture.NewSerial(log, cfg.Serial.Port, cfg.Serial.BaudRate, 0)
	}

	if err := dev.Connect(); err != nil {
		return err
	}
	defer dev.Close()

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Serial.Timeout)
	defer cancel()

	log.WithField("samples", cfg.Serial.Samples).Info("capturing")
	samples, err := capture.Collect(ctx, dev, cfg.Serial.Samples)
	if err != nil {
		if len(samples) == 0 {
			return errors.WrapPrefix(err, "no samples captured", 0)
		}
		log.WithError(err).Warnf("capture stopped early after %d samples", len(samples))
	}

	return writeSeries(log, output, samples)
}

func writeSeries(log *logrus.Entry, path string, samples []float64) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.WrapPrefix(err, "failed to create output", 0)
	}

	if err := sample.WriteBinary(f, samples); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return errors.WrapPrefix(err, "failed to close output", 0)
	}

	log.WithFields(logrus.Fields{"file": path, "samples": len(samples)}).Info("series written")
	return nil
}
