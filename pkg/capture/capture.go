package capture

import (
	"context"

	"github.com/go-errors/errors"
)

// DefaultBufferSize is the default size for the samples channel buffer.
const DefaultBufferSize = 4096

var (
	ErrAlreadyConnected = errors.New("already connected")
	ErrNotConnected     = errors.New("not connected")
	ErrClosed           = errors.New("device closed")
)

// Device is a source of raw samples (real or mocked).
// The samples channel is closed when the device stops producing. A device is
// single use: Connect after Close returns ErrClosed.
type Device interface {
	Connect() error
	Close() error
	Samples() <-chan float64
	IsConnected() bool
}

var (
	_ Device = (*Serial)(nil)
	_ Device = (*Mock)(nil)
)

// Collect reads up to n samples from dev. It returns early with what it has
// when the samples channel closes, or with ctx.Err() when ctx ends first.
func Collect(ctx context.Context, dev Device, n int) ([]float64, error) {
	if !dev.IsConnected() {
		return nil, ErrNotConnected
	}

	out := make([]float64, 0, max(n, 0))
	samples := dev.Samples()

	for len(out) < n {
		select {
		case <-ctx.Done():
			return out, ctx.Err()
		case v, ok := <-samples:
			if !ok {
				return out, nil
			}
			out = append(out, v)
		}
	}

	return out, nil
}
