package stream_test

import (
	"errors"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/input-output-hk/catalyst-forge-libs/filesugar"
	"github.com/input-output-hk/catalyst-forge-libs/filesugar/billy"
	"github.com/input-output-hk/catalyst-forge-libs/filesugar/stream"
)

var errCloseFailed = errors.New("close failed")

// failingCloseFile closes the wrapped file but always reports a failure.
type failingCloseFile struct {
	filesugar.File
}

func (f *failingCloseFile) Close() error {
	_ = f.File.Close()
	return errCloseFailed
}

// failingCloseFS hands out files whose Close fails.
type failingCloseFS struct {
	*billy.FS
}

//nolint:ireturn // test double for the filesugar.File interface.
func (fsys *failingCloseFS) Open(name string) (filesugar.File, error) {
	f, err := fsys.FS.Open(name)
	if err != nil {
		return nil, err
	}
	return &failingCloseFile{File: f}, nil
}

//nolint:ireturn // test double for the filesugar.File interface.
func (fsys *failingCloseFS) OpenFile(name string, flag int, perm os.FileMode) (filesugar.File, error) {
	f, err := fsys.FS.OpenFile(name, flag, perm)
	if err != nil {
		return nil, err
	}
	return &failingCloseFile{File: f}, nil
}

func TestCloseFailureIsReported(t *testing.T) {
	fsys := &failingCloseFS{FS: billy.NewInMemoryFS()}
	require.NoError(t, fsys.WriteFile("/close.bin", []byte("content"), 0o644))

	reader := stream.NewRangeReader(stream.WithFilesystem(fsys))
	writer := stream.NewRangeWriter(stream.WithFilesystem(fsys))

	assertCloseError := func(t *testing.T, err error) {
		t.Helper()
		require.Error(t, err)
		assert.True(t, stream.IsIO(err))
		assert.ErrorIs(t, err, errCloseFailed)

		var serr *stream.Error
		require.ErrorAs(t, err, &serr)
		assert.Equal(t, stream.OpClose, serr.Op)
	}

	t.Run("read", func(t *testing.T) {
		data, err := reader.Read("/close.bin", 0, 4)
		assertCloseError(t, err)
		assert.Nil(t, data)
	})

	t.Run("write", func(t *testing.T) {
		assertCloseError(t, writer.Write("/close.bin", []byte("C"), 0))
	})

	t.Run("truncate", func(t *testing.T) {
		assertCloseError(t, writer.Truncate("/close.bin"))
	})
}

// staleExistsFS reports every path as missing, as a concurrent creator
// would look to a writer that checked just before the file appeared.
type staleExistsFS struct {
	*billy.FS
}

func (fsys *staleExistsFS) Exists(string) (bool, error) {
	return false, nil
}

func TestRangeWriter_NeverTruncatesAtOffsetZero(t *testing.T) {
	fsys := &staleExistsFS{FS: billy.NewInMemoryFS()}
	require.NoError(t, fsys.WriteFile("/shared.bin", []byte("----0123456789"), 0o644))

	writer := stream.NewRangeWriter(stream.WithFilesystem(fsys))
	require.NoError(t, writer.Write("/shared.bin", []byte("AB"), 0))

	got, err := fsys.ReadFile("/shared.bin")
	require.NoError(t, err)
	assert.Equal(t, "AB--0123456789", string(got))
}
