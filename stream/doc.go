// Package stream provides random-access byte-range I/O on files.
//
// A RangeReader reads an exact span of bytes without loading the whole file;
// a RangeWriter writes a buffer at an arbitrary offset, extending the file
// when the offset lies beyond the current end. Every call is a fresh
// open/seek/operate/close cycle and the file handle is released on every
// exit path.
//
// # Gap bytes
//
// Writing past the end of a file leaves a gap between the old end and the
// write offset. On the in-memory backend the gap is zero-filled; on the
// native backend it follows the host's sparse-file semantics, which read
// back as zero bytes on POSIX systems.
//
// # Concurrency
//
// RangeReader and RangeWriter are immutable after construction and safe for
// concurrent use, but they do not coordinate access to the same file.
// Concurrent writers to one location may interleave; use the pathlock package
// when exclusive access is required. No timeouts are imposed: a hung
// filesystem blocks the caller. A failure part-way through a write leaves
// the file as the operating system left it; nothing is rolled back.
//
// Example:
//
//	w := stream.NewRangeWriter()
//	if err := w.Write("/tmp/data.bin", []byte("Hello, "), 0); err != nil {
//	    return err
//	}
//	if err := w.Write("/tmp/data.bin", []byte("World!"), 7); err != nil {
//	    return err
//	}
//	b, err := stream.NewRangeReader().Read("/tmp/data.bin", 0, 13)
//	// string(b) == "Hello, World!"
package stream
