package filesugar

import (
	"os"
	"path/filepath"
	"testing"
)

func TestGetAbs(t *testing.T) {
	t.Run("absolute path passthrough", func(t *testing.T) {
		abs := "/tmp"
		got, err := GetAbs(abs)
		if err != nil {
			t.Fatalf("GetAbs(%q) returned error: %v", abs, err)
		}
		if got != abs {
			t.Errorf("GetAbs(%q) = %q, want %q", abs, got, abs)
		}
	})

	t.Run("relative path conversion", func(t *testing.T) {
		got, err := GetAbs("data/../file.bin")
		if err != nil {
			t.Fatalf("GetAbs returned error: %v", err)
		}
		if !filepath.IsAbs(got) {
			t.Errorf("GetAbs = %q, want absolute path", got)
		}
		if filepath.Base(got) != "file.bin" {
			t.Errorf("GetAbs = %q, want cleaned path ending in file.bin", got)
		}
	})
}

func TestExists(t *testing.T) {
	t.Run("existing file returns true", func(t *testing.T) {
		p := filepath.Join(t.TempDir(), "present.bin")
		if err := os.WriteFile(p, nil, 0o644); err != nil {
			t.Fatalf("WriteFile failed: %v", err)
		}

		ok, err := Exists(p)
		if err != nil {
			t.Fatalf("Exists(%q) returned error: %v", p, err)
		}
		if !ok {
			t.Errorf("Exists(%q) = false, want true", p)
		}
	})

	t.Run("missing file returns false without error", func(t *testing.T) {
		p := filepath.Join(t.TempDir(), "does-not-exist")
		ok, err := Exists(p)
		if err != nil {
			t.Fatalf("Exists(%q) returned error: %v", p, err)
		}
		if ok {
			t.Errorf("Exists(%q) = true, want false", p)
		}
	})
}
