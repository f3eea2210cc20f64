package fstest

import (
	"bytes"
	"errors"
	"io"
	"io/fs"
	"testing"

	"github.com/input-output-hk/catalyst-forge-libs/filesugar"
)

const (
	readDir     = "readdir"
	readFile    = "readdir/sample.txt"
	readMissing = "readdir/missing.txt"
)

var readContent = []byte("0123456789abcdef")

// TestReadFS tests read operations: Open, Stat, ReadDir, ReadFile, Exists
// and reads after Seek on an open file.
func TestReadFS(t *testing.T, filesystem filesugar.Filesystem) {
	if err := filesystem.MkdirAll(readDir, 0o755); err != nil {
		t.Fatalf("MkdirAll(%q): setup failed: %v", readDir, err)
	}
	if err := filesystem.WriteFile(readFile, readContent, 0o644); err != nil {
		t.Fatalf("WriteFile(%q): setup failed: %v", readFile, err)
	}

	t.Run("ReadFile", func(t *testing.T) {
		data, err := filesystem.ReadFile(readFile)
		if err != nil {
			t.Fatalf("ReadFile(%q): got error %v, want nil", readFile, err)
		}
		if !bytes.Equal(data, readContent) {
			t.Errorf("ReadFile(%q): got %q, want %q", readFile, data, readContent)
		}
	})

	t.Run("Stat", func(t *testing.T) {
		info, err := filesystem.Stat(readFile)
		if err != nil {
			t.Fatalf("Stat(%q): got error %v, want nil", readFile, err)
		}
		if info.IsDir() {
			t.Errorf("Stat(%q): IsDir() = true, want false", readFile)
		}
		if info.Size() != int64(len(readContent)) {
			t.Errorf("Stat(%q): Size() = %d, want %d", readFile, info.Size(), len(readContent))
		}

		info, err = filesystem.Stat(readDir)
		if err != nil {
			t.Fatalf("Stat(%q): got error %v, want nil", readDir, err)
		}
		if !info.IsDir() {
			t.Errorf("Stat(%q): IsDir() = false, want true", readDir)
		}
	})

	t.Run("ReadDir", func(t *testing.T) {
		entries, err := filesystem.ReadDir(readDir)
		if err != nil {
			t.Fatalf("ReadDir(%q): got error %v, want nil", readDir, err)
		}
		if len(entries) != 1 || entries[0].Name() != "sample.txt" {
			t.Errorf("ReadDir(%q): got %d entries, want only sample.txt", readDir, len(entries))
		}
	})

	t.Run("SeekAndRead", func(t *testing.T) {
		testSeekAndRead(t, filesystem)
	})

	t.Run("FileStat", func(t *testing.T) {
		f, err := filesystem.Open(readFile)
		if err != nil {
			t.Fatalf("Open(%q): got error %v, want nil", readFile, err)
		}
		defer func() { _ = f.Close() }()

		info, err := f.Stat()
		if err != nil {
			t.Fatalf("File.Stat(): got error %v, want nil", err)
		}
		if info.Size() != int64(len(readContent)) {
			t.Errorf("File.Stat(): Size() = %d, want %d", info.Size(), len(readContent))
		}
	})

	t.Run("OpenNotExist", func(t *testing.T) {
		_, err := filesystem.Open(readMissing)
		if !errors.Is(err, fs.ErrNotExist) {
			t.Errorf("Open(%q): got error %v, want fs.ErrNotExist", readMissing, err)
		}
		_, err = filesystem.Stat(readMissing)
		if !errors.Is(err, fs.ErrNotExist) {
			t.Errorf("Stat(%q): got error %v, want fs.ErrNotExist", readMissing, err)
		}
	})

	t.Run("Exists", func(t *testing.T) {
		for path, want := range map[string]bool{
			readFile:    true,
			readDir:     true,
			readMissing: false,
		} {
			got, err := filesystem.Exists(path)
			if err != nil {
				t.Errorf("Exists(%q): got error %v, want nil", path, err)
				continue
			}
			if got != want {
				t.Errorf("Exists(%q): got %v, want %v", path, got, want)
			}
		}
	})
}

// testSeekAndRead checks that Seek positions subsequent reads and that
// reading at end of file yields io.EOF.
func testSeekAndRead(t *testing.T, filesystem filesugar.Filesystem) {
	f, err := filesystem.Open(readFile)
	if err != nil {
		t.Fatalf("Open(%q): got error %v, want nil", readFile, err)
	}
	defer func() { _ = f.Close() }()

	pos, err := f.Seek(10, io.SeekStart)
	if err != nil || pos != 10 {
		t.Fatalf("Seek(10): got (%d, %v), want (10, nil)", pos, err)
	}

	buf := make([]byte, 4)
	if _, err := io.ReadFull(f, buf); err != nil {
		t.Fatalf("ReadFull(): got error %v, want nil", err)
	}
	if string(buf) != "abcd" {
		t.Errorf("Read after Seek(10): got %q, want %q", buf, "abcd")
	}

	if _, err := f.Seek(0, io.SeekEnd); err != nil {
		t.Fatalf("Seek(0, SeekEnd): got error %v, want nil", err)
	}
	n, err := f.Read(buf)
	if n != 0 || !errors.Is(err, io.EOF) {
		t.Errorf("Read at EOF: got (%d, %v), want (0, io.EOF)", n, err)
	}
}
