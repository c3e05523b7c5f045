package capture

import (
	"bufio"
	"context"
	"io"
	"strconv"
	"strings"
	"sync"

	"github.com/go-errors/errors"
	"github.com/sirupsen/logrus"
	"go.bug.st/serial"
)

// DefaultBaudRate is used when no baud rate is given.
const DefaultBaudRate = 115200

// Serial reads newline-delimited samples from a serial port. Each line holds
// one value, optionally preceded by comma-separated fields such as a
// timestamp; the last field is the sample.
type Serial struct {
	log      *logrus.Entry
	port     string
	baudRate int

	conn      serial.Port
	samples   chan float64
	mu        sync.RWMutex
	ctx       context.Context
	cancel    context.CancelFunc
	connected bool
	closed    bool
}

// NewSerial creates a serial device for the given port.
func NewSerial(log *logrus.Entry, port string, baudRate int, bufSize int) *Serial {
	if baudRate == 0 {
		baudRate = DefaultBaudRate
	}
	if bufSize == 0 {
		bufSize = DefaultBufferSize
	}

	ctx, cancel := context.WithCancel(context.Background())

	return &Serial{
		log:      log.WithField("port", port),
		port:     port,
		baudRate: baudRate,
		samples:  make(chan float64, bufSize),
		ctx:      ctx,
		cancel:   cancel,
	}
}

// Ports returns the names of available serial ports.
func Ports() ([]string, error) {
	ports, err := serial.GetPortsList()
	if err != nil {
		return nil, errors.WrapPrefix(err, "failed to list serial ports", 0)
	}
	return ports, nil
}

// Connect opens the port and starts reading samples.
func (d *Serial) Connect() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.closed {
		return ErrClosed
	}
	if d.connected {
		return ErrAlreadyConnected
	}

	port, err := serial.Open(d.port, &serial.Mode{BaudRate: d.baudRate})
	if err != nil {
		return errors.WrapPrefix(err, "failed to open serial port "+d.port, 0)
	}

	d.conn = port
	d.connected = true
	d.log.WithField("baud", d.baudRate).Info("connected")

	go d.readSamples(port)

	return nil
}

// Close closes the port. The reader goroutine then closes the samples channel.
func (d *Serial) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if !d.connected {
		return nil
	}

	d.cancel()

	if d.conn != nil {
		if err := d.conn.Close(); err != nil {
			d.log.WithError(err).Warn("error closing serial port")
		}
		d.conn = nil
	}

	d.connected = false
	d.closed = true

	return nil
}

// Samples returns the channel for reading samples.
func (d *Serial) Samples() <-chan float64 {
	return d.samples
}

// IsConnected returns whether the device is currently connected.
func (d *Serial) IsConnected() bool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.connected
}

// readSamples parses lines from r until EOF, a read error or cancellation.
func (d *Serial) readSamples(r io.Reader) {
	defer close(d.samples)

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		v, err := parseLine(line)
		if err != nil {
			d.log.WithError(err).Debugf("skipping line %q", line)
			continue
		}

		select {
		case d.samples <- v:
		case <-d.ctx.Done():
			return
		}
	}

	if err := scanner.Err(); err != nil && d.ctx.Err() == nil {
		d.log.WithError(err).Error("error reading from serial port")
	}
}

// parseLine returns the value in the last comma-separated field of line.
// Example: "1234567890123,0.25" or "2048".
func parseLine(line string) (float64, error) {
	field := line
	if i := strings.LastIndexByte(line, ','); i >= 0 {
		field = line[i+1:]
	}

	v, err := strconv.ParseFloat(strings.TrimSpace(field), 64)
	if err != nil {
		return 0, errors.WrapPrefix(err, "invalid sample", 0)
	}
	return v, nil
}
