package preview

import (
	"strings"
	"testing"

	"github.com/itohio/minmax/pkg/decimate"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newList(t *testing.T, maxPts int) *decimate.Decimator[int] {
	t.Helper()
	d, err := decimate.New([]int{1, 5, 3, 9, 2, 8, 4, 7, 6, 0}, 1, 1)
	require.NoError(t, err)
	d.SetBounds(0, 10, maxPts)
	return d
}

func TestEnvelope(t *testing.T) {
	d := newList(t, 5)
	assert.Equal(t, []float64{5, 1, 9, 3, 8, 2, 7, 4, 6, 0}, Envelope(d))
}

func TestRender(t *testing.T) {
	d := newList(t, 5)

	out := Render(d, Options{Height: 6, Caption: "example"})
	require.NotEmpty(t, out)
	assert.Contains(t, out, "example: 5 points, x 0..8, y 0..9")
	// Height rows plus the zero row and the caption.
	assert.GreaterOrEqual(t, len(strings.Split(out, "\n")), 7)
}

func TestRender_Empty(t *testing.T) {
	d := newList(t, 5)
	d.SetBounds(-100, -50, 5)

	assert.Equal(t, "", Render(d, Options{}))
}
