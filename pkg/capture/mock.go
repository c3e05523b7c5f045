package capture

import (
	"context"
	"sync"
	"time"

	"github.com/itohio/minmax/pkg/config"
	"github.com/itohio/minmax/pkg/sample"
)

// Mock streams a synthetic signal for testing and development.
type Mock struct {
	cfg  config.SynthConfig
	rate time.Duration

	samples   chan float64
	mu        sync.RWMutex
	ctx       context.Context
	cancel    context.CancelFunc
	connected bool
	closed    bool
}

// NewMock creates a mocked device emitting cfg.Samples values, one every
// rate (as fast as possible when rate is zero).
func NewMock(cfg config.SynthConfig, rate time.Duration, bufSize int) *Mock {
	if bufSize <= 0 {
		bufSize = DefaultBufferSize
	}

	ctx, cancel := context.WithCancel(context.Background())

	return &Mock{
		cfg:     cfg,
		rate:    rate,
		samples: make(chan float64, bufSize),
		ctx:     ctx,
		cancel:  cancel,
	}
}

// Connect starts generating samples.
func (m *Mock) Connect() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrClosed
	}
	if m.connected {
		return ErrAlreadyConnected
	}
	m.connected = true

	go m.generateSamples()

	return nil
}

// Close stops the generator, which then closes the samples channel.
func (m *Mock) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.connected {
		return nil
	}

	m.cancel()
	m.connected = false
	m.closed = true

	return nil
}

// Samples returns the channel for reading samples.
func (m *Mock) Samples() <-chan float64 {
	return m.samples
}

// IsConnected returns whether the device is currently connected.
func (m *Mock) IsConnected() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.connected
}

func (m *Mock) generateSamples() {
	defer close(m.samples)

	var tick <-chan time.Time
	if m.rate > 0 {
		ticker := time.NewTicker(m.rate)
		defer ticker.Stop()
		tick = ticker.C
	}

	for _, v := range sample.Generate(m.cfg) {
		if tick != nil {
			select {
			case <-tick:
			case <-m.ctx.Done():
				return
			}
		}

		select {
		case m.samples <- v:
		case <-m.ctx.Done():
			return
		}
	}
}
