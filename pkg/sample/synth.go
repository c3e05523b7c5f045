package sample

import (
	"math"
	"math/rand/v2"

	"github.com/itohio/minmax/pkg/config"
)

// Generate produces a deterministic test signal: a bias level, periodic
// rectangular pulses seen through a first-order lag, and gaussian noise.
func Generate(cfg config.SynthConfig) []float64 {
	rng := rand.New(rand.NewPCG(cfg.Seed, cfg.Seed^0x9e3779b97f4a7c15))
	out := make([]float64, max(cfg.Samples, 0))

	// Per-sample smoothing factor for the lag.
	alpha := 1.0
	if cfg.TimeConstant > 0 {
		alpha = 1 - math.Exp(-1/cfg.TimeConstant)
	}

	level := cfg.Bias
	for i := range out {
		target := cfg.Bias
		if cfg.PulsePeriod > 0 && i%cfg.PulsePeriod < cfg.PulseWidth {
			target += cfg.PulseAmplitude
		}
		level += alpha * (target - level)
		out[i] = level + rng.NormFloat64()*cfg.NoiseLevel
	}

	return out
}
