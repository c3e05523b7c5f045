package sample

import (
	"encoding/binary"
	"encoding/csv"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/go-errors/errors"
	"github.com/itohio/minmax/pkg/config"
	"github.com/itohio/minmax/pkg/decimate"
)

// ErrUnknownFormat is returned by Open for an unsupported series format.
var ErrUnknownFormat = errors.New("unknown series format")

// Fixed is a numeric sample type with a fixed encoded size.
type Fixed interface {
	~int8 | ~int16 | ~int32 | ~int64 |
		~uint8 | ~uint16 | ~uint32 | ~uint64 |
		~float32 | ~float64
}

// readChunk is the number of bytes decoded per read.
const readChunk = 64 * 1024

// ReadBinary reads packed little-endian samples until EOF. The input is
// decoded in chunks straight into the result, which is sized up front when
// r reports its length (files, bytes.Reader).
func ReadBinary[T Fixed](r io.Reader) ([]T, error) {
	var zero T
	size := binary.Size(zero)

	samples := make([]T, 0, sizeHint(r)/size)
	buf := make([]byte, readChunk/size*size)
	chunk := make([]T, len(buf)/size)

	for {
		n, err := io.ReadFull(r, buf)
		if rem := n % size; rem != 0 {
			return nil, errors.Errorf("%d trailing bytes do not form a %d-byte sample", rem, size)
		}
		if n > 0 {
			m := n / size
			if _, err := binary.Decode(buf[:n], binary.LittleEndian, chunk[:m]); err != nil {
				return nil, errors.WrapPrefix(err, "failed to decode samples", 0)
			}
			samples = append(samples, chunk[:m]...)
		}

		switch {
		case err == nil:
		case errors.Is(err, io.EOF), errors.Is(err, io.ErrUnexpectedEOF):
			return samples, nil
		default:
			return nil, errors.WrapPrefix(err, "failed to read samples", 0)
		}
	}
}

// sizeHint returns the remaining byte count of r when it is cheap to know.
func sizeHint(r io.Reader) int {
	switch v := r.(type) {
	case interface{ Stat() (os.FileInfo, error) }:
		if fi, err := v.Stat(); err == nil && fi.Mode().IsRegular() {
			return int(fi.Size())
		}
	case interface{ Len() int }:
		return v.Len()
	}
	return 0
}

// WriteBinary writes samples packed little-endian.
func WriteBinary[T Fixed](w io.Writer, samples []T) error {
	if err := binary.Write(w, binary.LittleEndian, samples); err != nil {
		return errors.WrapPrefix(err, "failed to write samples", 0)
	}
	return nil
}

// ReadCSV reads one sample per record from the given column. A first record
// that does not parse as a number is treated as a header.
func ReadCSV(r io.Reader, column int) ([]float64, error) {
	if column < 0 {
		return nil, errors.Errorf("invalid column %d", column)
	}

	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.ReuseRecord = true

	var samples []float64
	for line := 1; ; line++ {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.WrapPrefix(err, "failed to read csv", 0)
		}

		if column >= len(record) {
			return nil, errors.Errorf("line %d: column %d out of range (%d fields)", line, column, len(record))
		}

		v, err := strconv.ParseFloat(strings.TrimSpace(record[column]), 64)
		if err != nil {
			if line == 1 {
				continue
			}
			return nil, errors.WrapPrefix(err, "line "+strconv.Itoa(line), 0)
		}
		samples = append(samples, v)
	}

	return samples, nil
}

// Open loads the series file described by cfg and returns a decimating
// filter over it.
func Open(cfg config.SeriesConfig) (decimate.Filter, error) {
	f, err := os.Open(cfg.File)
	if err != nil {
		return nil, errors.WrapPrefix(err, "failed to open series", 0)
	}
	defer f.Close()

	switch cfg.Format {
	case "f64":
		return openBinary[float64](f, cfg)
	case "f32":
		return openBinary[float32](f, cfg)
	case "i32":
		return openBinary[int32](f, cfg)
	case "i16":
		return openBinary[int16](f, cfg)
	case "u16":
		return openBinary[uint16](f, cfg)
	case "u8":
		return openBinary[uint8](f, cfg)
	case "csv":
		y, err := ReadCSV(f, cfg.Column)
		if err != nil {
			return nil, err
		}
		return newFilter(y, cfg)
	default:
		return nil, errors.WrapPrefix(ErrUnknownFormat, cfg.Format, 0)
	}
}

// Load returns a filter over the configured file, or over synthetic samples
// when no file is configured.
func Load(cfg *config.Config) (decimate.Filter, error) {
	if cfg.Series.File == "" {
		return newFilter(Generate(cfg.Synth), cfg.Series)
	}
	return Open(cfg.Series)
}

func openBinary[T Fixed](r io.Reader, cfg config.SeriesConfig) (decimate.Filter, error) {
	y, err := ReadBinary[T](r)
	if err != nil {
		return nil, err
	}
	return newFilter(y, cfg)
}

func newFilter[T decimate.Number](y []T, cfg config.SeriesConfig) (decimate.Filter, error) {
	d, err := decimate.New(y, cfg.XFreq, cfg.YFreq)
	if err != nil {
		return nil, err
	}
	return d, nil
}
