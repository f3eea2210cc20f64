package stream

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
)

// Error kinds. Every error returned by this package is an *Error whose Kind
// is one of these, so callers can branch with errors.Is.
var (
	// ErrNotFound indicates the target file does not exist where existence
	// was required (read, size and modification time queries).
	ErrNotFound = errors.New("file not found")

	// ErrInvalidRange indicates the end offset precedes the start offset, or
	// an offset cannot be represented as a file position.
	ErrInvalidRange = errors.New("invalid byte range")

	// ErrIO indicates an operating system failure while opening, seeking,
	// reading, writing, truncating or closing a file.
	ErrIO = errors.New("i/o failure")

	// ErrDecode indicates bytes read could not be decoded with the requested
	// text encoding.
	ErrDecode = errors.New("decode failure")
)

var errIsDirectory = errors.New("is a directory")

// Op names the step of a range operation that failed.
type Op string

// Steps of a range operation, in the order they are attempted.
const (
	OpRange    Op = "range"
	OpResolve  Op = "resolve"
	OpOpen     Op = "open"
	OpStat     Op = "stat"
	OpSeek     Op = "seek"
	OpRead     Op = "read"
	OpWrite    Op = "write"
	OpTruncate Op = "truncate"
	OpClose    Op = "close"
	OpDecode   Op = "decode"
)

// Error describes a failed range operation.
type Error struct {
	// Op is the step that failed.
	Op Op

	// Path is the resolved path, or the raw location when resolution failed.
	Path string

	// Offset and End bound the requested span (End exclusive). They are only
	// meaningful for operations that address a span.
	Offset uint64
	End    int64

	// Kind is one of ErrNotFound, ErrInvalidRange, ErrIO or ErrDecode.
	Kind error

	// Err is the underlying cause, usually an operating system error.
	Err error

	ranged bool
}

// Error implements the error interface.
func (e *Error) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "stream: %s %q", e.Op, e.Path)
	if e.ranged {
		fmt.Fprintf(&b, " [%d,%d)", e.Offset, e.End)
	}
	b.WriteString(": ")
	b.WriteString(e.Kind.Error())
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

// Unwrap returns both the kind and the cause, so errors.Is matches either
// a sentinel of this package or the underlying cause (e.g. fs.ErrNotExist).
func (e *Error) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

// IsNotFound reports whether err is an ErrNotFound failure.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsInvalidRange reports whether err is an ErrInvalidRange failure.
func IsInvalidRange(err error) bool {
	return errors.Is(err, ErrInvalidRange)
}

// IsIO reports whether err is an ErrIO failure.
func IsIO(err error) bool {
	return errors.Is(err, ErrIO)
}

// IsDecode reports whether err is an ErrDecode failure.
func IsDecode(err error) bool {
	return errors.Is(err, ErrDecode)
}

func newError(op Op, path string, kind, err error) *Error {
	return &Error{
		Op:   op,
		Path: path,
		Kind: kind,
		Err:  err,
	}
}

func newRangeError(op Op, path string, offset uint64, end int64, kind, err error) *Error {
	return &Error{
		Op:     op,
		Path:   path,
		Offset: offset,
		End:    end,
		Kind:   kind,
		Err:    err,
		ranged: true,
	}
}

// kindOf classifies a filesystem error where a missing file means NotFound.
func kindOf(err error) error {
	if errors.Is(err, fs.ErrNotExist) {
		return ErrNotFound
	}
	return ErrIO
}
