// SPDX-License-Identifier: EPL-2.0

package audremix

import (
	"errors"
	"fmt"
)

var (
	ErrEmptyWaveform     = errors.New("waveform is empty")
	ErrInvalidRate       = errors.New("sample rate must be positive")
	ErrInvalidAxis       = errors.New("only the channel axis (0) is supported")
	ErrUnsupportedFormat = errors.New("unsupported audio container")
)

// ErrorKind classifies pipeline failures.
type ErrorKind int

const (
	// KindNone is the kind of a nil error.
	KindNone ErrorKind = iota
	// KindIO covers missing or unreadable files, unsupported containers and
	// write failures.
	KindIO
	// KindValue covers invalid parameters and malformed waveforms.
	KindValue
)

func (k ErrorKind) String() string {
	switch k {
	case KindNone:
		return "none"
	case KindIO:
		return "io"
	case KindValue:
		return "value"
	default:
		return fmt.Sprintf("ErrorKind(%d)", int(k))
	}
}

// Error is returned by every Pipeline operation.
type Error struct {
	Kind ErrorKind
	Op   string
	// Path is the file involved, empty for in-memory operations.
	Path string
	Err  error
}

func (e *Error) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// KindOf returns the kind of the first *Error in err's chain. Errors that
// did not come from the pipeline are reported as KindValue.
func KindOf(err error) ErrorKind {
	if err == nil {
		return KindNone
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindValue
}

func ioError(op, path string, err error) error {
	return &Error{Kind: KindIO, Op: op, Path: path, Err: err}
}

func valueError(op string, err error) error {
	return &Error{Kind: KindValue, Op: op, Err: err}
}
