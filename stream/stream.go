package stream

import (
	"time"

	"golang.org/x/text/encoding"
)

var (
	defaultReader = NewRangeReader()
	defaultWriter = NewRangeWriter()
)

// Read reads [start, end) from location on the native filesystem.
func Read(location string, start uint64, end int64) ([]byte, error) {
	return defaultReader.Read(location, start, end)
}

// ReadString reads [start, end) from location on the native filesystem and
// decodes it with enc (nil means UTF-8).
func ReadString(location string, start uint64, end int64, enc encoding.Encoding) (string, error) {
	return defaultReader.ReadString(location, start, end, enc)
}

// Size returns the size in bytes of location on the native filesystem.
func Size(location string) (uint64, error) {
	return defaultReader.Size(location)
}

// ModTime returns the modification time of location on the native filesystem.
func ModTime(location string) (time.Time, error) {
	return defaultReader.ModTime(location)
}

// Write writes data into location at offset on the native filesystem.
func Write(location string, data []byte, offset uint64) error {
	return defaultWriter.Write(location, data, offset)
}

// Truncate empties location on the native filesystem.
func Truncate(location string) error {
	return defaultWriter.Truncate(location)
}
