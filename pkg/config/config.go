package config

import (
	"math"
	"os"
	"time"

	"github.com/go-errors/errors"
	"gopkg.in/yaml.v3"
)

// Config represents the application configuration.
type Config struct {
	Series  SeriesConfig  `yaml:"series"`
	Display DisplayConfig `yaml:"display"`
	Serial  SerialConfig  `yaml:"serial"`
	Synth   SynthConfig   `yaml:"synth"`
	Log     LogConfig     `yaml:"log"`
}

// SeriesConfig describes where the raw samples come from and how they scale.
type SeriesConfig struct {
	File   string  `yaml:"file"`   // Empty means synthetic samples
	Format string  `yaml:"format"` // f64, f32, i32, i16, u16, u8 or csv
	Column int     `yaml:"column"` // CSV column holding the samples
	XFreq  float64 `yaml:"xfreq"`  // Samples per x-unit
	YFreq  float64 `yaml:"yfreq"`  // Raw value divisor
}

// DisplayConfig contains the visible range and the point budget.
type DisplayConfig struct {
	MaxPoints int      `yaml:"max_points"`
	Width     int      `yaml:"width"`  // Terminal preview width in columns
	Height    int      `yaml:"height"` // Terminal preview height in rows
	MinX      *float64 `yaml:"min_x,omitempty"` // Unset means from the first sample
	MaxX      *float64 `yaml:"max_x,omitempty"` // Unset means to the last sample
}

// SerialConfig contains capture port configuration.
type SerialConfig struct {
	Port     string        `yaml:"port"`
	BaudRate int           `yaml:"baud_rate"`
	Samples  int           `yaml:"samples"` // Samples to capture
	Timeout  time.Duration `yaml:"timeout"` // Give up after this long
}

// SynthConfig contains synthetic signal parameters.
type SynthConfig struct {
	Samples        int     `yaml:"samples"`
	Seed           uint64  `yaml:"seed"`
	Bias           float64 `yaml:"bias"`
	NoiseLevel     float64 `yaml:"noise_level"`
	PulseAmplitude float64 `yaml:"pulse_amplitude"`
	PulsePeriod    int     `yaml:"pulse_period"` // Samples between pulse starts
	PulseWidth     int     `yaml:"pulse_width"`  // Samples a pulse stays on
	TimeConstant   float64 `yaml:"time_constant"`
}

// LogConfig contains logging options.
type LogConfig struct {
	Level string `yaml:"level"`
}

// Default returns a default configuration with sensible values.
func Default() *Config {
	return &Config{
		Series: SeriesConfig{
			Format: "f64",
			XFreq:  1000, // 1 kHz
			YFreq:  1,
		},
		Display: DisplayConfig{
			MaxPoints: 2000,
			Width:     100,
			Height:    15,
		},
		Serial: SerialConfig{
			Port:     "COM3", // Default for Windows, should be "/dev/ttyACM0" on Linux/Mac
			BaudRate: 115200,
			Samples:  100000,
			Timeout:  time.Minute,
		},
		Synth: SynthConfig{
			Samples:        1_000_000,
			Seed:           1,
			Bias:           0.0,
			NoiseLevel:     0.05,
			PulseAmplitude: 1.0,
			PulsePeriod:    50_000,
			PulseWidth:     5_000,
			TimeConstant:   500,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Load loads configuration from a YAML file. If the file doesn't exist or
// fields are missing, it uses default values.
func Load(filename string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(filename)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, errors.WrapPrefix(err, "failed to read config file", 0)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, errors.WrapPrefix(err, "failed to parse config file", 0)
	}

	cfg.ensureDefaults()

	return cfg, nil
}

// Save saves the configuration to a YAML file.
func (c *Config) Save(filename string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return errors.WrapPrefix(err, "failed to marshal config", 0)
	}

	if err := os.WriteFile(filename, data, 0644); err != nil {
		return errors.WrapPrefix(err, "failed to write config file", 0)
	}

	return nil
}

// Bounds returns the configured visible x range. An unset side is open.
func (d DisplayConfig) Bounds() (minX, maxX float64) {
	minX, maxX = math.Inf(-1), math.Inf(1)
	if d.MinX != nil {
		minX = *d.MinX
	}
	if d.MaxX != nil {
		maxX = *d.MaxX
	}
	return minX, maxX
}

// ensureDefaults ensures that all required fields have default values if missing.
func (c *Config) ensureDefaults() {
	def := Default()

	if c.Series.Format == "" {
		c.Series.Format = def.Series.Format
	}
	if c.Series.XFreq == 0 {
		c.Series.XFreq = def.Series.XFreq
	}
	if c.Series.YFreq == 0 {
		c.Series.YFreq = def.Series.YFreq
	}

	if c.Display.MaxPoints == 0 {
		c.Display.MaxPoints = def.Display.MaxPoints
	}
	if c.Display.Width == 0 {
		c.Display.Width = def.Display.Width
	}
	if c.Display.Height == 0 {
		c.Display.Height = def.Display.Height
	}

	if c.Serial.Port == "" {
		c.Serial.Port = def.Serial.Port
	}
	if c.Serial.BaudRate == 0 {
		c.Serial.BaudRate = def.Serial.BaudRate
	}
	if c.Serial.Samples == 0 {
		c.Serial.Samples = def.Serial.Samples
	}
	if c.Serial.Timeout == 0 {
		c.Serial.Timeout = def.Serial.Timeout
	}

	if c.Synth.Samples == 0 {
		c.Synth.Samples = def.Synth.Samples
	}
	if c.Synth.PulsePeriod == 0 {
		c.Synth.PulsePeriod = def.Synth.PulsePeriod
	}
	if c.Synth.PulseWidth == 0 {
		c.Synth.PulseWidth = def.Synth.PulseWidth
	}
	if c.Synth.TimeConstant == 0 {
		c.Synth.TimeConstant = def.Synth.TimeConstant
	}

	if c.Log.Level == "" {
		c.Log.Level = def.Log.Level
	}
}
