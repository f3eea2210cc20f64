package filesugar

import (
	"os"
	"path/filepath"
)

// Filesystem is the set of operations the helpers in this module need from a
// backing filesystem. Errors for missing paths must satisfy
// errors.Is(err, fs.ErrNotExist).
type Filesystem interface {
	Create(name string) (File, error)
	Exists(path string) (bool, error)
	MkdirAll(path string, perm os.FileMode) error
	Open(name string) (File, error)
	OpenFile(name string, flag int, perm os.FileMode) (File, error)
	ReadDir(dirname string) ([]os.FileInfo, error)
	ReadFile(path string) ([]byte, error)
	Remove(name string) error
	RemoveAll(path string) error
	Rename(oldpath, newpath string) error
	Stat(name string) (os.FileInfo, error)
	Walk(root string, walkFn filepath.WalkFunc) error
	WriteFile(filename string, data []byte, perm os.FileMode) error
}
