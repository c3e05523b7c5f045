package sample

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/go-errors/errors"
	"github.com/itohio/minmax/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadBinary_Int16(t *testing.T) {
	samples := []int16{0, 1, -1, 32767, -32768, 42}

	var buf bytes.Buffer
	require.NoError(t, WriteBinary(&buf, samples))
	assert.Equal(t, 12, buf.Len())
	// Little-endian: 1 is encoded as 0x01 0x00
	assert.Equal(t, []byte{0x01, 0x00}, buf.Bytes()[2:4])

	result, err := ReadBinary[int16](&buf)
	require.NoError(t, err)
	assert.Equal(t, samples, result)
}

func TestReadBinary_Empty(t *testing.T) {
	result, err := ReadBinary[float64](bytes.NewReader(nil))
	require.NoError(t, err)
	assert.Empty(t, result)
}

func TestReadBinary_TrailingBytes(t *testing.T) {
	_, err := ReadBinary[float32](bytes.NewReader([]byte{1, 2, 3, 4, 5}))
	assert.Error(t, err)
}

func TestReadBinary_LargeFile(t *testing.T) {
	// Spans several read chunks.
	samples := make([]float64, 3*readChunk/8+5)
	for i := range samples {
		samples[i] = float64(i) / 3
	}

	path := filepath.Join(t.TempDir(), "large.f64")
	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, WriteBinary(f, samples))
	require.NoError(t, f.Close())

	f, err = os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	result, err := ReadBinary[float64](f)
	require.NoError(t, err)
	assert.Equal(t, samples, result)
	assert.Equal(t, len(samples), cap(result), "result is sized from the file length")
}

func TestReadBinary_ShortReads(t *testing.T) {
	samples := []uint16{1, 2, 3, 65535, 7}

	var buf bytes.Buffer
	require.NoError(t, WriteBinary(&buf, samples))

	result, err := ReadBinary[uint16](iotest.OneByteReader(&buf))
	require.NoError(t, err)
	assert.Equal(t, samples, result)
}

func TestReadBinary_TrailingBytesAfterChunk(t *testing.T) {
	data := make([]byte, readChunk+3)

	_, err := ReadBinary[int32](bytes.NewReader(data))
	assert.Error(t, err)
}

func TestReadCSV_HeaderAndColumn(t *testing.T) {
	input := "time,value\n0,1.5\n1, -2\n2,3e2\n"

	result, err := ReadCSV(strings.NewReader(input), 1)
	require.NoError(t, err)
	assert.Equal(t, []float64{1.5, -2, 300}, result)
}

func TestReadCSV_NoHeader(t *testing.T) {
	result, err := ReadCSV(strings.NewReader("1\n2\n3\n"), 0)
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 2, 3}, result)
}

func TestReadCSV_Errors(t *testing.T) {
	_, err := ReadCSV(strings.NewReader("1\nfoo\n"), 0)
	assert.Error(t, err, "non-numeric value after the first line")

	_, err = ReadCSV(strings.NewReader("1,2\n3\n"), 1)
	assert.Error(t, err, "short record")

	_, err = ReadCSV(strings.NewReader("1\n"), -1)
	assert.Error(t, err, "negative column")
}

func TestOpen_Binary(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "series.f32")

	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, WriteBinary(f, []float32{1, 5, 3, 9, 2, 8, 4, 7, 6, 0}))
	require.NoError(t, f.Close())

	filter, err := Open(config.SeriesConfig{File: path, Format: "f32", XFreq: 1, YFreq: 1})
	require.NoError(t, err)

	minX, maxX := filter.Extent()
	assert.Equal(t, 0.0, minX)
	assert.Equal(t, 10.0, maxX)

	filter.SetBounds(0, 10, 5)
	require.Equal(t, 5, filter.Count())
	assert.Equal(t, 9.0, filter.At(1).High)
	assert.Equal(t, 3.0, filter.At(1).Low)
}

func TestOpen_CSV(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "series.csv")
	require.NoError(t, os.WriteFile(path, []byte("t,v\n0,10\n1,20\n2,30\n3,40\n"), 0644))

	filter, err := Open(config.SeriesConfig{File: path, Format: "csv", Column: 1, XFreq: 2, YFreq: 10})
	require.NoError(t, err)

	filter.SetBounds(0, 2, 2)
	require.Equal(t, 2, filter.Count())
	assert.Equal(t, 2.0, filter.At(0).High)
	assert.Equal(t, 1.0, filter.At(0).Low)
	assert.Equal(t, 1.0, filter.At(1).X)
}

func TestOpen_Errors(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "series.bin")
	require.NoError(t, os.WriteFile(path, []byte{1, 2}, 0644))

	_, err := Open(config.SeriesConfig{File: path, Format: "c128", XFreq: 1, YFreq: 1})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnknownFormat))

	_, err = Open(config.SeriesConfig{File: filepath.Join(dir, "missing"), Format: "f64", XFreq: 1, YFreq: 1})
	assert.Error(t, err)

	// Two bytes decode to a single u16 sample, but xfreq is invalid.
	filter, err := Open(config.SeriesConfig{File: path, Format: "u16", XFreq: 0, YFreq: 1})
	assert.Error(t, err)
	assert.Nil(t, filter)

	// Empty files cannot back a filter.
	empty := filepath.Join(dir, "empty.f64")
	require.NoError(t, os.WriteFile(empty, nil, 0644))
	_, err = Open(config.SeriesConfig{File: empty, Format: "f64", XFreq: 1, YFreq: 1})
	assert.Error(t, err)
}

func TestLoad_Synthetic(t *testing.T) {
	cfg := config.Default()
	cfg.Synth.Samples = 1000
	cfg.Series.XFreq = 100

	filter, err := Load(cfg)
	require.NoError(t, err)

	_, maxX := filter.Extent()
	assert.Equal(t, 10.0, maxX)

	filter.SetBounds(0, 10, 50)
	assert.Equal(t, 50, filter.Count())
}
