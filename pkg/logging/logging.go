package logging

import (
	"io"
	"os"

	"github.com/itohio/minmax/pkg/config"
	"github.com/sirupsen/logrus"
)

// New returns a logger writing text to stderr at the configured level.
// Unknown levels fall back to info.
func New(cfg config.LogConfig) *logrus.Entry {
	log := logrus.New()
	log.SetOutput(os.Stderr)
	log.Formatter = &logrus.TextFormatter{FullTimestamp: true}

	level, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	log.SetLevel(level)

	return log.WithField("app", "minmax")
}

// NewDiscard returns a logger that drops everything, for tests.
func NewDiscard() *logrus.Entry {
	log := logrus.New()
	log.Out = io.Discard
	return log.WithField("test", "test")
}
