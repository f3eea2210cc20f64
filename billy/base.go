package billy

import (
	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/osfs"
)

// NativeOS is a billy.Filesystem over the native filesystem with no chroot,
// so absolute paths and paths relative to the working directory both resolve
// the way the os package resolves them.
type NativeOS struct {
	osfs.ChrootOS
}

// Chroot returns a new filesystem rooted at the provided path.
//
//nolint:ireturn // billy.Filesystem is an interface; signature is dictated by upstream.
func (n *NativeOS) Chroot(path string) (billy.Filesystem, error) {
	return osfs.New(path), nil
}

// Root returns the root path for this filesystem.
func (n *NativeOS) Root() string {
	return "/"
}

// NewNativeOSFS creates a filesystem that acts like the native filesystem.
// It is the default backend of the stream package.
func NewNativeOSFS() *FS {
	return &FS{
		fs: &NativeOS{},
	}
}
