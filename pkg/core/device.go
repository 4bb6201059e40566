package core

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"
)

// ErrorCode identifies a failure reported through the device error channel
type ErrorCode int

const (
	ErrorNone ErrorCode = iota
	ErrorUnknown
	ErrorInvalidArgument
	ErrorInvalidOperation
	ErrorBufferGeometryMismatch
	ErrorUnsupported
)

func (c ErrorCode) String() string {
	switch c {
	case ErrorNone:
		return "no error"
	case ErrorInvalidArgument:
		return "invalid argument"
	case ErrorInvalidOperation:
		return "invalid operation"
	case ErrorBufferGeometryMismatch:
		return "buffer geometry mismatch"
	case ErrorUnsupported:
		return "unsupported"
	default:
		return "unknown error"
	}
}

// Sentinel errors for the direct Go return path. Every error produced by
// ReportError wraps one of these, so callers can match with errors.Is.
var (
	ErrInvalidArgument        = errors.New("invalid argument")
	ErrInvalidOperation       = errors.New("invalid operation")
	ErrBufferGeometryMismatch = errors.New("buffer geometry mismatch")
	ErrUnsupported            = errors.New("unsupported")
	ErrUnknown                = errors.New("unknown error")
)

func (c ErrorCode) sentinel() error {
	switch c {
	case ErrorInvalidArgument:
		return ErrInvalidArgument
	case ErrorInvalidOperation:
		return ErrInvalidOperation
	case ErrorBufferGeometryMismatch:
		return ErrBufferGeometryMismatch
	case ErrorUnsupported:
		return ErrUnsupported
	default:
		return ErrUnknown
	}
}

// Logger is the minimal logging interface accepted by a device.
// A nil logger discards all output.
type Logger interface {
	Printf(format string, args ...any)
}

// ErrorFunc receives every failure reported by the device or by one of its
// geometries, in addition to the sticky code retained for polling.
type ErrorFunc func(code ErrorCode, msg string)

// Device is the host object owning geometries, buffers and the error channel
type Device struct {
	mu        sync.Mutex
	verbose   int
	threads   int
	logger    Logger
	errFunc   ErrorFunc
	lastError ErrorCode
	nextGeom  uint32
	released  bool
}

// NewDevice creates a device from a comma-separated key=value configuration
// string (e.g. "verbose=1,threads=4"). Unknown keys and malformed values are
// reported through the error channel and otherwise ignored; the returned
// device is usable either way.
func NewDevice(config string) (*Device, error) {
	d := &Device{}
	var firstErr error
	for _, entry := range strings.Split(config, ",") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		key, value, found := strings.Cut(entry, "=")
		if !found {
			err := d.ReportError(ErrorInvalidArgument, "device config entry %q is not key=value", entry)
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		n, convErr := strconv.Atoi(value)
		if convErr != nil {
			err := d.ReportError(ErrorInvalidArgument, "device config %s=%q: expected integer", key, value)
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		switch key {
		case "verbose":
			d.verbose = n
		case "threads":
			d.threads = n
		default:
			err := d.ReportError(ErrorInvalidArgument, "unknown device config key %q", key)
			if firstErr == nil {
				firstErr = err
			}
		}
	}
	d.Logf(1, "device created (verbose=%d, threads=%d)", d.verbose, d.threads)
	return d, firstErr
}

// SetLogger installs the logger used at verbose levels > 0
func (d *Device) SetLogger(l Logger) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.logger = l
}

// SetErrorFunction installs the callback invoked on every reported error
func (d *Device) SetErrorFunction(fn ErrorFunc) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.errFunc = fn
}

// Error returns the sticky code of the last reported error and clears it
func (d *Device) Error() ErrorCode {
	d.mu.Lock()
	defer d.mu.Unlock()
	code := d.lastError
	d.lastError = ErrorNone
	return code
}

// Verbose returns the configured verbosity level
func (d *Device) Verbose() int { return d.verbose }

// Threads returns the configured thread count hint (0 means automatic)
func (d *Device) Threads() int { return d.threads }

// ReportError records the sticky error code, invokes the error callback,
// logs the message, and returns the same failure as a wrapped Go error.
func (d *Device) ReportError(code ErrorCode, format string, args ...any) error {
	msg := fmt.Sprintf(format, args...)
	d.mu.Lock()
	d.lastError = code
	fn := d.errFunc
	d.mu.Unlock()
	if fn != nil {
		fn(code, msg)
	}
	d.Logf(1, "error (%s): %s", code, msg)
	return fmt.Errorf("%s: %w", msg, code.sentinel())
}

// Logf writes a message if the device verbosity is at or above level
func (d *Device) Logf(level int, format string, args ...any) {
	if d.verbose < level {
		return
	}
	d.mu.Lock()
	l := d.logger
	d.mu.Unlock()
	if l != nil {
		l.Printf(format, args...)
	}
}

// NextGeomID hands out sequential geometry identifiers
func (d *Device) NextGeomID() uint32 {
	d.mu.Lock()
	defer d.mu.Unlock()
	id := d.nextGeom
	d.nextGeom++
	return id
}

// Release frees the device. Further use of geometries created from it is
// caller error; buffers remain owned by their creators.
func (d *Device) Release() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.released {
		return
	}
	d.released = true
	if d.verbose >= 1 && d.logger != nil {
		d.logger.Printf("device released")
	}
}
