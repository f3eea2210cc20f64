package filesugar

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

var (
	// ErrDestinationExists is returned by Copy and Move when the destination is
	// already present.
	ErrDestinationExists = errors.New("destination already exists")

	// ErrDestinationInsideSource is returned by Copy when a directory would be
	// copied into its own subtree.
	ErrDestinationInsideSource = errors.New("destination is inside source")
)

const defaultDirPerm os.FileMode = 0o755

// Copy copies src to dst within fsys. Directories are copied recursively.
// The destination must not exist yet.
func Copy(fsys Filesystem, src, dst string) error {
	if err := ensureAbsent(fsys, dst); err != nil {
		return err
	}

	info, err := fsys.Stat(src)
	if err != nil {
		return fmt.Errorf("copy %q: %w", src, err)
	}
	if !info.IsDir() {
		return copyFile(fsys, src, dst, info.Mode().Perm())
	}
	if isWithin(src, dst) {
		return fmt.Errorf("copy %q to %q: %w", src, dst, ErrDestinationInsideSource)
	}

	return fsys.Walk(src, func(path string, fi os.FileInfo, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		rel, err := filepath.Rel(src, path)
		if err != nil {
			return fmt.Errorf("copy %q: %w", path, err)
		}
		target := filepath.Join(dst, rel)
		if fi.IsDir() {
			if err := fsys.MkdirAll(target, fi.Mode().Perm()|0o700); err != nil {
				return fmt.Errorf("copy %q: %w", path, err)
			}
			return nil
		}
		return copyFile(fsys, path, target, fi.Mode().Perm())
	})
}

// Move renames src to dst. The destination must not exist yet.
func Move(fsys Filesystem, src, dst string) error {
	if err := ensureAbsent(fsys, dst); err != nil {
		return err
	}
	if err := fsys.Rename(src, dst); err != nil {
		return fmt.Errorf("move %q to %q: %w", src, dst, err)
	}
	return nil
}

// Rename gives the item at path the name newName, keeping it in the same
// directory. newName must be a bare name.
func Rename(fsys Filesystem, path, newName string) (string, error) {
	if newName == "" || newName != filepath.Base(newName) {
		return "", fmt.Errorf("rename %q: invalid name %q", path, newName)
	}

	dst := filepath.Join(filepath.Dir(path), newName)
	if err := Move(fsys, path, dst); err != nil {
		return "", err
	}
	return dst, nil
}

// Delete removes path and, for directories, everything below it.
func Delete(fsys Filesystem, path string) error {
	if err := fsys.RemoveAll(path); err != nil {
		return fmt.Errorf("delete %q: %w", path, err)
	}
	return nil
}

// CreateDir creates path and any missing parents.
func CreateDir(fsys Filesystem, path string) error {
	if err := fsys.MkdirAll(path, defaultDirPerm); err != nil {
		return fmt.Errorf("create dir %q: %w", path, err)
	}
	return nil
}

// Append adds data to the end of path, creating the file when needed.
func Append(fsys Filesystem, path string, data []byte) (err error) {
	f, err := fsys.OpenFile(path, os.O_WRONLY|os.O_APPEND|os.O_CREATE, 0o644)
	if err != nil {
		return fmt.Errorf("append %q: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("append %q: %w", path, cerr)
		}
	}()

	n, err := f.Write(data)
	if err != nil {
		return fmt.Errorf("append %q: %w", path, err)
	}
	if n != len(data) {
		return fmt.Errorf("append %q: %w", path, io.ErrShortWrite)
	}
	return nil
}

// ModTime returns the modification time of path.
func ModTime(fsys Filesystem, path string) (time.Time, error) {
	info, err := fsys.Stat(path)
	if err != nil {
		return time.Time{}, fmt.Errorf("modtime %q: %w", path, err)
	}
	return info.ModTime(), nil
}

// ListDir returns the sorted entry names of the directory at path.
func ListDir(fsys Filesystem, path string) ([]string, error) {
	infos, err := fsys.ReadDir(path)
	if err != nil {
		return nil, fmt.Errorf("list %q: %w", path, err)
	}

	names := make([]string, 0, len(infos))
	for _, info := range infos {
		names = append(names, info.Name())
	}
	sort.Strings(names)
	return names, nil
}

// HasContent reports whether the directory at path has at least one entry.
func HasContent(fsys Filesystem, path string) (bool, error) {
	infos, err := fsys.ReadDir(path)
	if err != nil {
		return false, fmt.Errorf("list %q: %w", path, err)
	}
	return len(infos) > 0, nil
}

func ensureAbsent(fsys Filesystem, path string) error {
	exists, err := fsys.Exists(path)
	if err != nil {
		return err
	}
	if exists {
		return fmt.Errorf("%w: %s", ErrDestinationExists, path)
	}
	return nil
}

// isWithin reports whether path lies below dir.
func isWithin(dir, path string) bool {
	rel, err := filepath.Rel(Normalize(dir), Normalize(path))
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

func copyFile(fsys Filesystem, src, dst string, perm os.FileMode) (err error) {
	in, err := fsys.Open(src)
	if err != nil {
		return fmt.Errorf("copy %q: %w", src, err)
	}
	defer func() { _ = in.Close() }()

	out, err := fsys.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, perm)
	if err != nil {
		return fmt.Errorf("copy %q to %q: %w", src, dst, err)
	}
	defer func() {
		if cerr := out.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("copy %q to %q: %w", src, dst, cerr)
		}
	}()

	if _, err := io.Copy(out, in); err != nil {
		return fmt.Errorf("copy %q to %q: %w", src, dst, err)
	}
	return nil
}
