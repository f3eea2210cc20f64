package fstest

import (
	"bytes"
	"errors"
	"io/fs"
	"testing"

	"github.com/input-output-hk/catalyst-forge-libs/filesugar"
	"github.com/input-output-hk/catalyst-forge-libs/filesugar/stream"
)

// TestRangeIO runs the range read and write scenarios of package stream
// against filesystem.
func TestRangeIO(t *testing.T, filesystem filesugar.Filesystem) {
	reader := stream.NewRangeReader(stream.WithFilesystem(filesystem))
	writer := stream.NewRangeWriter(stream.WithFilesystem(filesystem))

	write := func(t *testing.T, path string, data string, offset uint64) {
		t.Helper()
		if err := writer.Write(path, []byte(data), offset); err != nil {
			t.Fatalf("Write(%q, %q, %d): got error %v, want nil", path, data, offset, err)
		}
	}
	read := func(t *testing.T, path string, start uint64, end int64) []byte {
		t.Helper()
		data, err := reader.Read(path, start, end)
		if err != nil {
			t.Fatalf("Read(%q, %d, %d): got error %v, want nil", path, start, end, err)
		}
		return data
	}
	size := func(t *testing.T, path string) uint64 {
		t.Helper()
		n, err := reader.Size(path)
		if err != nil {
			t.Fatalf("Size(%q): got error %v, want nil", path, err)
		}
		return n
	}

	t.Run("SequentialWrites", func(t *testing.T) {
		write(t, "range/hello.txt", "Hello, ", 0)
		write(t, "range/hello.txt", "World!", 7)
		if got := read(t, "range/hello.txt", 0, 13); string(got) != "Hello, World!" {
			t.Errorf("Read(): got %q, want %q", got, "Hello, World!")
		}
	})

	t.Run("Overwrite", func(t *testing.T) {
		write(t, "range/overwrite.txt", "ABCDEFGH", 0)
		write(t, "range/overwrite.txt", "123", 3)
		if got := read(t, "range/overwrite.txt", 0, 8); string(got) != "ABC123GH" {
			t.Errorf("Read(): got %q, want %q", got, "ABC123GH")
		}
	})

	t.Run("WriteBeyondEOF", func(t *testing.T) {
		write(t, "range/far.txt", "Test Data", 1000)
		if got := size(t, "range/far.txt"); got != 1009 {
			t.Errorf("Size(): got %d, want 1009", got)
		}
		if got := read(t, "range/far.txt", 1000, 1009); string(got) != "Test Data" {
			t.Errorf("Read(): got %q, want %q", got, "Test Data")
		}
		if got := read(t, "range/far.txt", 0, 1000); !bytes.Equal(got, make([]byte, 1000)) {
			t.Errorf("Read() of gap: got non-zero bytes")
		}
	})

	t.Run("ShortRead", func(t *testing.T) {
		write(t, "range/short.txt", "abc", 0)
		if got := read(t, "range/short.txt", 1, 50); string(got) != "bc" {
			t.Errorf("Read(1, 50): got %q, want %q", got, "bc")
		}
		if got := read(t, "range/short.txt", 10, 20); got == nil || len(got) != 0 {
			t.Errorf("Read(10, 20): got %v, want empty non-nil slice", got)
		}
	})

	t.Run("Truncate", func(t *testing.T) {
		write(t, "range/truncate.txt", "content", 0)
		if err := writer.Truncate("range/truncate.txt"); err != nil {
			t.Fatalf("Truncate(): got error %v, want nil", err)
		}
		if got := size(t, "range/truncate.txt"); got != 0 {
			t.Errorf("Size() after Truncate(): got %d, want 0", got)
		}
	})

	t.Run("Errors", func(t *testing.T) {
		_, err := reader.Read("range/missing.txt", 0, 4)
		if !errors.Is(err, stream.ErrNotFound) {
			t.Errorf("Read() of missing file: got error %v, want ErrNotFound", err)
		}

		_, err = reader.Read("range/missing.txt", 4, 0)
		if !errors.Is(err, stream.ErrInvalidRange) {
			t.Errorf("Read() with end < start: got error %v, want ErrInvalidRange", err)
		}

		err = writer.Truncate("range/missing.txt")
		if !errors.Is(err, stream.ErrIO) || !errors.Is(err, fs.ErrNotExist) {
			t.Errorf("Truncate() of missing file: got error %v, want ErrIO wrapping fs.ErrNotExist", err)
		}
	})
}
