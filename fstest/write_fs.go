package fstest

import (
	"bytes"
	"io"
	"os"
	"testing"

	"github.com/input-output-hk/catalyst-forge-libs/filesugar"
)

// TestWriteFS tests write operations: Create, OpenFile, WriteFile, MkdirAll,
// writes positioned past end of file and File.Truncate.
func TestWriteFS(t *testing.T, filesystem filesugar.Filesystem) {
	t.Run("CreateAndWrite", func(t *testing.T) {
		testWriteFSCreate(t, filesystem)
	})
	t.Run("WriteFile", func(t *testing.T) {
		testWriteFSWriteFile(t, filesystem)
	})
	t.Run("OpenFileTrunc", func(t *testing.T) {
		testWriteFSOpenFileTrunc(t, filesystem)
	})
	t.Run("MkdirAll", func(t *testing.T) {
		testWriteFSMkdirAll(t, filesystem)
	})
	t.Run("OverwriteKeepsTail", func(t *testing.T) {
		testWriteFSOverwrite(t, filesystem)
	})
	t.Run("SeekPastEOF", func(t *testing.T) {
		testWriteFSSeekPastEOF(t, filesystem)
	})
	t.Run("Truncate", func(t *testing.T) {
		testWriteFSTruncate(t, filesystem)
	})
}

func testWriteFSCreate(t *testing.T, filesystem filesugar.Filesystem) {
	testData := []byte("test data for Create")

	f, err := filesystem.Create("created.txt")
	if err != nil {
		t.Fatalf("Create(%q): got error %v, want nil", "created.txt", err)
	}
	n, err := f.Write(testData)
	if err != nil || n != len(testData) {
		_ = f.Close()
		t.Fatalf("Write(): got (%d, %v), want (%d, nil)", n, err, len(testData))
	}
	if err := f.Close(); err != nil {
		t.Fatalf("Close(): got error %v, want nil", err)
	}

	expectContent(t, filesystem, "created.txt", testData)
}

func testWriteFSWriteFile(t *testing.T, filesystem filesugar.Filesystem) {
	testData := []byte("test data for WriteFile")

	if err := filesystem.WriteFile("nested/dir/writefile.txt", testData, 0o644); err != nil {
		t.Fatalf("WriteFile(%q): got error %v, want nil", "nested/dir/writefile.txt", err)
	}
	expectContent(t, filesystem, "nested/dir/writefile.txt", testData)

	// Permissions on disk are backend specific and not checked.
	if err := filesystem.WriteFile("nested/dir/writefile.txt", []byte("short"), 0o644); err != nil {
		t.Fatalf("WriteFile(%q) overwrite: got error %v, want nil", "nested/dir/writefile.txt", err)
	}
	expectContent(t, filesystem, "nested/dir/writefile.txt", []byte("short"))
}

func testWriteFSOpenFileTrunc(t *testing.T, filesystem filesugar.Filesystem) {
	if err := filesystem.WriteFile("openfile.txt", []byte("long initial content"), 0o644); err != nil {
		t.Fatalf("WriteFile(%q): setup failed: %v", "openfile.txt", err)
	}

	f, err := filesystem.OpenFile("openfile.txt", os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		t.Fatalf("OpenFile(%q, O_WRONLY|O_TRUNC): got error %v, want nil", "openfile.txt", err)
	}
	if _, err := f.Write([]byte("truncated")); err != nil {
		_ = f.Close()
		t.Fatalf("Write(): got error %v, want nil", err)
	}
	if err := f.Close(); err != nil {
		t.Fatalf("Close(): got error %v, want nil", err)
	}

	expectContent(t, filesystem, "openfile.txt", []byte("truncated"))
}

func testWriteFSMkdirAll(t *testing.T, filesystem filesugar.Filesystem) {
	if err := filesystem.MkdirAll("parent/child/grandchild", 0o755); err != nil {
		t.Fatalf("MkdirAll(%q): got error %v, want nil", "parent/child/grandchild", err)
	}

	for _, dir := range []string{"parent", "parent/child", "parent/child/grandchild"} {
		info, err := filesystem.Stat(dir)
		if err != nil {
			t.Errorf("Stat(%q): got error %v, want nil", dir, err)
			continue
		}
		if !info.IsDir() {
			t.Errorf("Stat(%q): IsDir() = false, want true", dir)
		}
	}
}

// testWriteFSOverwrite writes into the middle of a file through an O_RDWR
// handle; bytes after the written span must survive.
func testWriteFSOverwrite(t *testing.T, filesystem filesugar.Filesystem) {
	if err := filesystem.WriteFile("overwrite.txt", []byte("ABCDEFGH"), 0o644); err != nil {
		t.Fatalf("WriteFile(%q): setup failed: %v", "overwrite.txt", err)
	}

	f, err := filesystem.OpenFile("overwrite.txt", os.O_RDWR, 0)
	if err != nil {
		t.Fatalf("OpenFile(%q, O_RDWR): got error %v, want nil", "overwrite.txt", err)
	}
	if _, err := f.Seek(3, io.SeekStart); err != nil {
		_ = f.Close()
		t.Fatalf("Seek(3): got error %v, want nil", err)
	}
	if _, err := f.Write([]byte("123")); err != nil {
		_ = f.Close()
		t.Fatalf("Write(): got error %v, want nil", err)
	}
	if err := f.Close(); err != nil {
		t.Fatalf("Close(): got error %v, want nil", err)
	}

	expectContent(t, filesystem, "overwrite.txt", []byte("ABC123GH"))
}

// testWriteFSSeekPastEOF seeks beyond the end of an existing file and
// writes; the gap must read back as zero bytes.
func testWriteFSSeekPastEOF(t *testing.T, filesystem filesugar.Filesystem) {
	if err := filesystem.WriteFile("sparse.bin", []byte("ab"), 0o644); err != nil {
		t.Fatalf("WriteFile(%q): setup failed: %v", "sparse.bin", err)
	}

	f, err := filesystem.OpenFile("sparse.bin", os.O_RDWR, 0)
	if err != nil {
		t.Fatalf("OpenFile(%q, O_RDWR): got error %v, want nil", "sparse.bin", err)
	}
	if _, err := f.Seek(6, io.SeekStart); err != nil {
		_ = f.Close()
		t.Fatalf("Seek(6): got error %v, want nil", err)
	}
	if _, err := f.Write([]byte("cd")); err != nil {
		_ = f.Close()
		t.Fatalf("Write(): got error %v, want nil", err)
	}
	if err := f.Close(); err != nil {
		t.Fatalf("Close(): got error %v, want nil", err)
	}

	expectContent(t, filesystem, "sparse.bin", []byte{'a', 'b', 0, 0, 0, 0, 'c', 'd'})
}

func testWriteFSTruncate(t *testing.T, filesystem filesugar.Filesystem) {
	if err := filesystem.WriteFile("truncate.txt", []byte("to be removed"), 0o644); err != nil {
		t.Fatalf("WriteFile(%q): setup failed: %v", "truncate.txt", err)
	}

	f, err := filesystem.OpenFile("truncate.txt", os.O_RDWR, 0)
	if err != nil {
		t.Fatalf("OpenFile(%q, O_RDWR): got error %v, want nil", "truncate.txt", err)
	}
	if err := f.Truncate(0); err != nil {
		_ = f.Close()
		t.Fatalf("Truncate(0): got error %v, want nil", err)
	}
	if err := f.Close(); err != nil {
		t.Fatalf("Close(): got error %v, want nil", err)
	}

	info, err := filesystem.Stat("truncate.txt")
	if err != nil {
		t.Fatalf("Stat(%q): got error %v, want nil", "truncate.txt", err)
	}
	if info.Size() != 0 {
		t.Errorf("Stat(%q) after Truncate(0): Size() = %d, want 0", "truncate.txt", info.Size())
	}
}

func expectContent(t *testing.T, filesystem filesugar.Filesystem, path string, want []byte) {
	t.Helper()
	data, err := filesystem.ReadFile(path)
	if err != nil {
		t.Errorf("ReadFile(%q): got error %v, want nil", path, err)
		return
	}
	if !bytes.Equal(data, want) {
		t.Errorf("ReadFile(%q): got %q, want %q", path, data, want)
	}
}
