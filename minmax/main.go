package main

import (
	"fmt"
	"math"
	"os"

	"github.com/go-errors/errors"
	"github.com/integrii/flaggy"
	"github.com/itohio/minmax/pkg/config"
	"github.com/itohio/minmax/pkg/logging"
	"github.com/samber/lo"
	"github.com/sirupsen/logrus"
)

var version = "unversioned"

// overrides holds command line values that take precedence over the config file.
type overrides struct {
	file      string
	format    string
	xfreq     float64
	yfreq     float64
	minX      float64
	maxX      float64
	maxPoints int
	width     int
	height    int
	port      string
	samples   int
	mock      bool
	output    string
	logLevel  string
}

// newOverrides returns overrides with nothing set. The x bounds start as NaN
// so an explicit zero can be told apart from an absent flag.
func newOverrides() overrides {
	return overrides{minX: math.NaN(), maxX: math.NaN()}
}

func main() {
	var (
		configPath = "config.yaml"
		o          = newOverrides()
	)

	flaggy.SetName("minmax")
	flaggy.SetDescription("Plot very large uniformly sampled series through min/max decimation")
	flaggy.SetVersion(version)

	flaggy.String(&configPath, "c", "config", "Configuration file path")
	flaggy.String(&o.logLevel, "l", "log-level", "Log level override (debug, info, warn, error)")

	viewCmd := flaggy.NewSubcommand("view")
	viewCmd.Description = "Open the series in a scope window"
	addSeriesFlags(viewCmd, &o)
	flaggy.AttachSubcommand(viewCmd, 1)

	previewCmd := flaggy.NewSubcommand("preview")
	previewCmd.Description = "Print a terminal preview of the series"
	addSeriesFlags(previewCmd, &o)
	previewCmd.Int(&o.width, "w", "width", "Preview width in columns")
	previewCmd.Int(&o.height, "", "height", "Preview height in rows")
	flaggy.AttachSubcommand(previewCmd, 1)

	captureCmd := flaggy.NewSubcommand("capture")
	captureCmd.Description = "Capture samples from a serial port into a little-endian f64 file"
	captureCmd.String(&o.port, "p", "port", "Serial port override (e.g., COM3 or /dev/ttyACM0)")
	captureCmd.Int(&o.samples, "n", "samples", "Number of samples to capture")
	captureCmd.Bool(&o.mock, "m", "mock", "Use mocked device instead of serial port")
	captureCmd.String(&o.output, "o", "output", "Output file")
	flaggy.AttachSubcommand(captureCmd, 1)

	flaggy.Parse()

	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	o.apply(cfg)

	log := logging.New(cfg.Log)

	switch {
	case viewCmd.Used:
		err = runView(log, cfg)
	case previewCmd.Used:
		err = runPreview(os.Stdout, cfg)
	case captureCmd.Used:
		err = runCapture(log, cfg, o.mock, o.output)
	default:
		flaggy.ShowHelpAndExit("a subcommand is required")
	}

	if err != nil {
		fail(log, err)
	}
}

func addSeriesFlags(sc *flaggy.Subcommand, o *overrides) {
	sc.String(&o.file, "f", "file", "Series file (synthetic series when empty)")
	sc.String(&o.format, "", "format", "Series format: f64, f32, i32, i16, u16, u8, csv")
	sc.Float64(&o.xfreq, "", "xfreq", "Samples per x-unit")
	sc.Float64(&o.yfreq, "", "yfreq", "Raw value divisor")
	sc.Float64(&o.minX, "", "min-x", "Lower x bound")
	sc.Float64(&o.maxX, "", "max-x", "Upper x bound")
	sc.Int(&o.maxPoints, "", "max-points", "Point budget")
}

// apply copies every set override into cfg.
func (o overrides) apply(cfg *config.Config) {
	if o.file != "" {
		cfg.Series.File = o.file
	}
	if o.format != "" {
		cfg.Series.Format = o.format
	}
	if o.xfreq != 0 {
		cfg.Series.XFreq = o.xfreq
	}
	if o.yfreq != 0 {
		cfg.Series.YFreq = o.yfreq
	}
	if !math.IsNaN(o.minX) {
		cfg.Display.MinX = lo.ToPtr(o.minX)
	}
	if !math.IsNaN(o.maxX) {
		cfg.Display.MaxX = lo.ToPtr(o.maxX)
	}
	if o.maxPoints != 0 {
		cfg.Display.MaxPoints = o.maxPoints
	}
	if o.width != 0 {
		cfg.Display.Width = o.width
	}
	if o.height != 0 {
		cfg.Display.Height = o.height
	}
	if o.port != "" {
		cfg.Serial.Port = o.port
	}
	if o.samples != 0 {
		cfg.Serial.Samples = o.samples
	}
	if o.logLevel != "" {
		cfg.Log.Level = o.logLevel
	}
}

func fail(log *logrus.Entry, err error) {
	stackTrace := errors.Wrap(err, 0).ErrorStack()
	log.Debug(stackTrace)
	log.Fatal(err)
}
