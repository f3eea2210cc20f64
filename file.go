package filesugar

import "io/fs"

// File represents an open file handle supporting basic I/O operations.
// Implementations should behave consistently with the standard library,
// in particular Seek past the end of file must succeed and a following
// Write must extend the file.
type File interface {
	Close() error
	Name() string
	Read(p []byte) (n int, err error)
	Seek(offset int64, whence int) (int64, error)
	Stat() (fs.FileInfo, error)
	Truncate(size int64) error
	Write(p []byte) (n int, err error)
}
