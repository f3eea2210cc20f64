package stream

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"os"
	"time"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/unicode"

	"github.com/input-output-hk/catalyst-forge-libs/filesugar"
)

// RangeReader reads byte spans from files.
//
// Thread Safety: RangeReader is immutable after construction and safe for
// concurrent use by multiple goroutines.
type RangeReader struct {
	fs     filesugar.Filesystem
	logger *slog.Logger
}

// NewRangeReader creates a RangeReader. Without options it reads from the
// native OS filesystem and does not log.
func NewRangeReader(opts ...Option) *RangeReader {
	o := defaultOptions()
	applyOptions(o, opts)

	return &RangeReader{
		fs:     o.fs,
		logger: o.logger,
	}
}

// Read returns the bytes of location in [start, end).
//
// The range is validated before the filesystem is touched: end < start fails
// with ErrInvalidRange. When fewer bytes remain than requested the bytes that
// exist are returned; a start at or beyond the end of file yields an empty
// slice. A missing file fails with ErrNotFound.
func (r *RangeReader) Read(location string, start uint64, end int64) (data []byte, err error) {
	length, err := spanLength(start, end)
	if err != nil {
		return nil, newRangeError(OpRange, location, start, end, ErrInvalidRange, err)
	}

	path, err := filesugar.ResolveLocation(location)
	if err != nil {
		return nil, newRangeError(OpResolve, location, start, end, ErrNotFound, err)
	}

	f, err := r.fs.Open(path)
	if err != nil {
		return nil, newRangeError(OpOpen, path, start, end, kindOf(err), err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			data = nil
			err = newRangeError(OpClose, path, start, end, ErrIO, cerr)
		}
	}()

	info, err := f.Stat()
	if err != nil {
		return nil, newRangeError(OpStat, path, start, end, kindOf(err), err)
	}
	if info.IsDir() {
		return nil, newRangeError(OpStat, path, start, end, ErrIO, errIsDirectory)
	}

	size := info.Size()
	offset := int64(start)
	if length == 0 || offset >= size {
		r.logRead(path, start, end, 0)
		return []byte{}, nil
	}

	if _, err := f.Seek(offset, io.SeekStart); err != nil {
		return nil, newRangeError(OpSeek, path, start, end, ErrIO, err)
	}

	buf := make([]byte, min(length, size-offset))
	n, err := io.ReadFull(f, buf)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return nil, newRangeError(OpRead, path, start, end, ErrIO, err)
	}

	r.logRead(path, start, end, n)
	return buf[:n], nil
}

// ReadString reads [start, end) from location and decodes it with enc.
// A nil enc means UTF-8, which is validated strictly. Bytes that cannot be
// decoded fail with ErrDecode.
func (r *RangeReader) ReadString(location string, start uint64, end int64, enc encoding.Encoding) (string, error) {
	data, err := r.Read(location, start, end)
	if err != nil {
		return "", err
	}

	s, err := decode(data, enc)
	if err != nil {
		return "", newRangeError(OpDecode, location, start, end, ErrDecode, err)
	}
	return s, nil
}

// Size returns the length of location in bytes, taken from file metadata.
func (r *RangeReader) Size(location string) (uint64, error) {
	info, err := r.stat(location)
	if err != nil {
		return 0, err
	}
	return uint64(info.Size()), nil
}

// ModTime returns the modification time of location.
func (r *RangeReader) ModTime(location string) (time.Time, error) {
	info, err := r.stat(location)
	if err != nil {
		return time.Time{}, err
	}
	return info.ModTime(), nil
}

func (r *RangeReader) stat(location string) (os.FileInfo, error) {
	path, err := filesugar.ResolveLocation(location)
	if err != nil {
		return nil, newError(OpResolve, location, ErrNotFound, err)
	}

	info, err := r.fs.Stat(path)
	if err != nil {
		return nil, newError(OpStat, path, kindOf(err), err)
	}
	return info, nil
}

func (r *RangeReader) logRead(path string, start uint64, end int64, n int) {
	if r.logger != nil {
		r.logger.Debug("read range",
			"path", path,
			"start", start,
			"end", end,
			"bytes", n)
	}
}

// spanLength validates [start, end) and returns its length.
func spanLength(start uint64, end int64) (int64, error) {
	if start > math.MaxInt64 {
		return 0, fmt.Errorf("start offset %d exceeds the largest file position", start)
	}
	if end < int64(start) {
		return 0, fmt.Errorf("end offset %d precedes start offset %d", end, start)
	}
	return end - int64(start), nil
}

func decode(data []byte, enc encoding.Encoding) (string, error) {
	if enc == nil || enc == unicode.UTF8 {
		if !utf8.Valid(data) {
			return "", fmt.Errorf("%d bytes are not valid UTF-8", len(data))
		}
		return string(data), nil
	}

	out, err := enc.NewDecoder().Bytes(data)
	if err != nil {
		return "", fmt.Errorf("%d bytes could not be decoded as %s: %w", len(data), encodingName(enc), err)
	}

	// x/text decoders substitute U+FFFD for malformed input instead of
	// failing. A replacement character is only genuine when it encodes back
	// to the original bytes.
	if bytes.ContainsRune(out, utf8.RuneError) {
		back, err := enc.NewEncoder().Bytes(out)
		if err != nil || !bytes.Equal(back, data) {
			return "", fmt.Errorf("%d bytes are not valid %s", len(data), encodingName(enc))
		}
	}
	return string(out), nil
}

func encodingName(enc encoding.Encoding) string {
	if s, ok := enc.(fmt.Stringer); ok {
		return s.String()
	}
	return fmt.Sprintf("%T", enc)
}
