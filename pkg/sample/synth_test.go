package sample

import (
	"testing"

	"github.com/itohio/minmax/pkg/config"
	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerate_Deterministic(t *testing.T) {
	cfg := config.Default().Synth
	cfg.Samples = 10_000

	a := Generate(cfg)
	b := Generate(cfg)
	require.Len(t, a, 10_000)
	assert.Equal(t, a, b)

	cfg.Seed++
	assert.NotEqual(t, a, Generate(cfg))
}

func TestGenerate_PulseShape(t *testing.T) {
	cfg := config.SynthConfig{
		Samples:        400,
		Bias:           1,
		PulseAmplitude: 2,
		PulsePeriod:    200,
		PulseWidth:     100,
		TimeConstant:   10,
	}

	out := Generate(cfg)
	require.Len(t, out, 400)

	// Without noise the lag rises monotonically during a pulse and decays after it.
	on := out[:100]
	off := out[100:200]
	assert.True(t, lo.Reduce(on[1:], func(ok bool, v float64, i int) bool { return ok && v >= on[i] }, true))
	assert.True(t, lo.Reduce(off[1:], func(ok bool, v float64, i int) bool { return ok && v <= off[i] }, true))

	assert.InDelta(t, 3.0, out[99], 1e-3)
	assert.InDelta(t, 1.0, out[199], 1e-3)
	assert.Greater(t, lo.Max(out), 2.9)
	assert.GreaterOrEqual(t, lo.Min(out), 1.0)
}

func TestGenerate_NoSamples(t *testing.T) {
	assert.Empty(t, Generate(config.SynthConfig{Samples: -5}))
}
