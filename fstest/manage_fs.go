package fstest

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/input-output-hk/catalyst-forge-libs/filesugar"
)

// TestManageFS tests Remove, RemoveAll, Rename and Walk, and the
// package-level helpers of filesugar that are built on them.
func TestManageFS(t *testing.T, filesystem filesugar.Filesystem) {
	t.Run("Remove", func(t *testing.T) {
		mustWrite(t, filesystem, "remove.txt", "x")
		if err := filesystem.Remove("remove.txt"); err != nil {
			t.Fatalf("Remove(%q): got error %v, want nil", "remove.txt", err)
		}
		expectMissing(t, filesystem, "remove.txt")

		if err := filesystem.Remove("remove.txt"); !errors.Is(err, fs.ErrNotExist) {
			t.Errorf("Remove(%q) twice: got error %v, want fs.ErrNotExist", "remove.txt", err)
		}
	})

	t.Run("RemoveAll", func(t *testing.T) {
		mustWrite(t, filesystem, "tree/a/b.txt", "b")
		mustWrite(t, filesystem, "tree/c.txt", "c")
		if err := filesystem.RemoveAll("tree"); err != nil {
			t.Fatalf("RemoveAll(%q): got error %v, want nil", "tree", err)
		}
		expectMissing(t, filesystem, "tree")

		if err := filesystem.RemoveAll("tree"); err != nil {
			t.Errorf("RemoveAll(%q) on missing path: got error %v, want nil", "tree", err)
		}
	})

	t.Run("Rename", func(t *testing.T) {
		mustWrite(t, filesystem, "old.txt", "moving")
		if err := filesystem.Rename("old.txt", "new.txt"); err != nil {
			t.Fatalf("Rename(%q, %q): got error %v, want nil", "old.txt", "new.txt", err)
		}
		expectMissing(t, filesystem, "old.txt")
		expectContent(t, filesystem, "new.txt", []byte("moving"))
	})

	t.Run("Walk", func(t *testing.T) {
		mustWrite(t, filesystem, "walk/one.txt", "1")
		mustWrite(t, filesystem, "walk/sub/two.txt", "2")

		var files []string
		err := filesystem.Walk("walk", func(path string, info os.FileInfo, err error) error {
			if err != nil {
				return err
			}
			if !info.IsDir() {
				files = append(files, filepath.ToSlash(path))
			}
			return nil
		})
		if err != nil {
			t.Fatalf("Walk(%q): got error %v, want nil", "walk", err)
		}
		slices.Sort(files)
		want := []string{"walk/one.txt", "walk/sub/two.txt"}
		if !slices.Equal(files, want) {
			t.Errorf("Walk(%q): got %v, want %v", "walk", files, want)
		}
	})

	t.Run("Helpers", func(t *testing.T) {
		testManageFSHelpers(t, filesystem)
	})
}

func testManageFSHelpers(t *testing.T, filesystem filesugar.Filesystem) {
	mustWrite(t, filesystem, "helpers/src/a.txt", "alpha")
	mustWrite(t, filesystem, "helpers/src/deep/b.txt", "beta")

	if err := filesugar.Copy(filesystem, "helpers/src", "helpers/dst"); err != nil {
		t.Fatalf("Copy(): got error %v, want nil", err)
	}
	expectContent(t, filesystem, "helpers/dst/a.txt", []byte("alpha"))
	expectContent(t, filesystem, "helpers/dst/deep/b.txt", []byte("beta"))

	if err := filesugar.Copy(filesystem, "helpers/src", "helpers/dst"); !errors.Is(err, filesugar.ErrDestinationExists) {
		t.Errorf("Copy() onto existing destination: got error %v, want ErrDestinationExists", err)
	}

	if err := filesugar.Append(filesystem, "helpers/dst/a.txt", []byte("+")); err != nil {
		t.Fatalf("Append(): got error %v, want nil", err)
	}
	expectContent(t, filesystem, "helpers/dst/a.txt", []byte("alpha+"))

	if err := filesugar.Move(filesystem, "helpers/dst", "helpers/moved"); err != nil {
		t.Fatalf("Move(): got error %v, want nil", err)
	}
	names, err := filesugar.ListDir(filesystem, "helpers/moved")
	if err != nil {
		t.Fatalf("ListDir(): got error %v, want nil", err)
	}
	if want := []string{"a.txt", "deep"}; !slices.Equal(names, want) {
		t.Errorf("ListDir(): got %v, want %v", names, want)
	}

	if err := filesugar.Delete(filesystem, "helpers/moved"); err != nil {
		t.Fatalf("Delete(): got error %v, want nil", err)
	}
	expectMissing(t, filesystem, "helpers/moved")
}

func mustWrite(t *testing.T, filesystem filesugar.Filesystem, path, content string) {
	t.Helper()
	if err := filesystem.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile(%q): setup failed: %v", path, err)
	}
}

func expectMissing(t *testing.T, filesystem filesugar.Filesystem, path string) {
	t.Helper()
	exists, err := filesystem.Exists(path)
	if err != nil {
		t.Errorf("Exists(%q): got error %v, want nil", path, err)
		return
	}
	if exists {
		t.Errorf("Exists(%q): got true, want false", path)
	}
}
