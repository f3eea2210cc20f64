package filesugar

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// GetAbs returns the absolute form of path on the native filesystem.
func GetAbs(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("abs %q: %w", path, err)
	}
	return abs, nil
}

// Exists reports whether path exists on the native filesystem.
// A missing path is not an error.
func Exists(path string) (bool, error) {
	_, err := os.Stat(path)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, fs.ErrNotExist):
		return false, nil
	default:
		return false, fmt.Errorf("stat %q: %w", path, err)
	}
}
