package billy_test

import (
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/input-output-hk/catalyst-forge-libs/filesugar"
	"github.com/input-output-hk/catalyst-forge-libs/filesugar/billy"
	"github.com/input-output-hk/catalyst-forge-libs/filesugar/fstest"
)

func TestInMemoryFS_Suite(t *testing.T) {
	fstest.TestSuite(t, func() filesugar.Filesystem {
		return billy.NewInMemoryFS()
	})
}

func TestOSFS_Suite(t *testing.T) {
	fstest.TestSuite(t, func() filesugar.Filesystem {
		return billy.NewOSFS(t.TempDir())
	})
}

func TestNativeOSFS_AbsolutePaths(t *testing.T) {
	fsys := billy.NewNativeOSFS()
	root := t.TempDir()
	p := filepath.Join(root, "a", "b", "native.txt")

	require.NoError(t, fsys.WriteFile(p, []byte("native"), 0o644))

	onDisk, err := os.ReadFile(p)
	require.NoError(t, err)
	assert.Equal(t, "native", string(onDisk))

	exists, err := fsys.Exists(p)
	require.NoError(t, err)
	assert.True(t, exists)

	f, err := fsys.OpenFile(p, os.O_RDWR, 0)
	require.NoError(t, err)
	assert.Equal(t, p, f.Name())

	info, err := f.Stat()
	require.NoError(t, err)
	assert.Equal(t, int64(6), info.Size())
	require.NoError(t, f.Close())
}

func TestNativeOSFS_Chroot(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "inside.txt"), []byte("in"), 0o644))

	native := &billy.NativeOS{}
	assert.Equal(t, "/", native.Root())

	chrooted, err := native.Chroot(root)
	require.NoError(t, err)

	data, err := billy.NewFS(chrooted).ReadFile("inside.txt")
	require.NoError(t, err)
	assert.Equal(t, "in", string(data))
}

func TestFS_ErrorsAreWrapped(t *testing.T) {
	fsys := billy.NewInMemoryFS()

	tests := []struct {
		name string
		call func() error
	}{
		{name: "open", call: func() error { _, err := fsys.Open("/nope"); return err }},
		{name: "stat", call: func() error { _, err := fsys.Stat("/nope"); return err }},
		{name: "readfile", call: func() error { _, err := fsys.ReadFile("/nope"); return err }},
		{name: "remove", call: func() error { return fsys.Remove("/nope") }},
		{name: "openfile", call: func() error { _, err := fsys.OpenFile("/nope", os.O_RDWR, 0); return err }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.call()
			require.Error(t, err)
			assert.ErrorIs(t, err, fs.ErrNotExist)
			assert.Contains(t, err.Error(), "billy: "+tt.name)
		})
	}
}

func TestFile_EOFIsNotWrapped(t *testing.T) {
	fsys := billy.NewInMemoryFS()
	require.NoError(t, fsys.WriteFile("/eof.txt", []byte("ab"), 0o644))

	f, err := fsys.Open("/eof.txt")
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	buf := make([]byte, 4)
	_, err = f.Seek(0, io.SeekEnd)
	require.NoError(t, err)
	_, err = f.Read(buf)
	assert.True(t, errors.Is(err, io.EOF))
	assert.Equal(t, io.EOF, err)
}
