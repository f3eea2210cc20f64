package stream_test

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/encoding/unicode"

	"github.com/input-output-hk/catalyst-forge-libs/filesugar/billy"
	"github.com/input-output-hk/catalyst-forge-libs/filesugar/stream"
)

func newMemPair(t *testing.T) (*billy.FS, *stream.RangeReader, *stream.RangeWriter) {
	t.Helper()
	fsys := billy.NewInMemoryFS()
	return fsys, stream.NewRangeReader(stream.WithFilesystem(fsys)), stream.NewRangeWriter(stream.WithFilesystem(fsys))
}

func tempName() string {
	return "/data/" + uuid.NewString() + ".bin"
}

func TestRangeReader_Read(t *testing.T) {
	tests := []struct {
		name  string
		start uint64
		end   int64
		want  string
	}{
		{name: "whole file", start: 0, end: 10, want: "0123456789"},
		{name: "middle span", start: 3, end: 6, want: "345"},
		{name: "end beyond EOF is clamped", start: 7, end: 100, want: "789"},
		{name: "empty span", start: 4, end: 4, want: ""},
		{name: "start at EOF", start: 10, end: 20, want: ""},
		{name: "start beyond EOF", start: 50, end: 60, want: ""},
	}

	fsys, reader, _ := newMemPair(t)
	path := tempName()
	require.NoError(t, fsys.WriteFile(path, []byte("0123456789"), 0o644))

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := reader.Read(path, tt.start, tt.end)
			require.NoError(t, err)
			require.NotNil(t, got)
			assert.Equal(t, tt.want, string(got))
		})
	}
}

func TestRangeReader_Read_InvalidRange(t *testing.T) {
	_, reader, _ := newMemPair(t)

	// The file does not exist: the range check must fire first.
	_, err := reader.Read(tempName(), 10, 5)
	require.Error(t, err)
	assert.True(t, stream.IsInvalidRange(err))
	assert.False(t, stream.IsNotFound(err))

	var serr *stream.Error
	require.ErrorAs(t, err, &serr)
	assert.Equal(t, stream.OpRange, serr.Op)
	assert.Equal(t, uint64(10), serr.Offset)
	assert.Equal(t, int64(5), serr.End)
}

func TestRangeReader_Read_NotFound(t *testing.T) {
	_, reader, _ := newMemPair(t)

	_, err := reader.Read(tempName(), 0, 10)
	require.Error(t, err)
	assert.ErrorIs(t, err, stream.ErrNotFound)
	assert.ErrorIs(t, err, fs.ErrNotExist)

	var serr *stream.Error
	require.ErrorAs(t, err, &serr)
	assert.Equal(t, stream.OpOpen, serr.Op)
}

func TestRangeReader_Read_Directory(t *testing.T) {
	fsys, reader, _ := newMemPair(t)
	require.NoError(t, fsys.MkdirAll("/dir", 0o755))

	_, err := reader.Read("/dir", 0, 1)
	require.Error(t, err)
	assert.True(t, stream.IsIO(err))
}

func TestRangeReader_ReadString(t *testing.T) {
	fsys, reader, _ := newMemPair(t)

	utf16le := unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM)
	utf16Bytes, err := utf16le.NewEncoder().Bytes([]byte("héllo"))
	require.NoError(t, err)

	tests := []struct {
		name    string
		content []byte
		start   uint64
		end     int64
		enc     encoding.Encoding
		want    string
		wantErr error
	}{
		{name: "nil means utf-8", content: []byte("héllo wörld"), start: 0, end: 6, want: "héllo"},
		{name: "explicit utf-8", content: []byte("abc"), start: 1, end: 3, enc: unicode.UTF8, want: "bc"},
		{name: "latin-1", content: []byte{'c', 'a', 'f', 0xe9}, start: 0, end: 4, enc: charmap.ISO8859_1, want: "café"},
		{name: "utf-16le", content: utf16Bytes, start: 0, end: int64(len(utf16Bytes)), enc: utf16le, want: "héllo"},
		{name: "split multi-byte rune", content: []byte("héllo"), start: 0, end: 2, wantErr: stream.ErrDecode},
		{name: "invalid utf-8", content: []byte{0xff, 0xfe, 0xfd}, start: 0, end: 3, enc: unicode.UTF8, wantErr: stream.ErrDecode},
		{name: "utf-16le odd byte count", content: []byte{'h', 0, 'i'}, start: 0, end: 3, enc: utf16le, wantErr: stream.ErrDecode},
		{name: "utf-16le lone surrogate", content: []byte{0x00, 0xd8}, start: 0, end: 2, enc: utf16le, wantErr: stream.ErrDecode},
		{name: "utf-16le encoded replacement char", content: []byte{'a', 0, 0xfd, 0xff}, start: 0, end: 4, enc: utf16le, want: "a\uFFFD"},
		{name: "shift-jis invalid trail byte", content: []byte{0x81, 0x20}, start: 0, end: 2, enc: japanese.ShiftJIS, wantErr: stream.ErrDecode},
		{name: "utf-8 bom invalid bytes", content: []byte{0xff, 0xfe}, start: 0, end: 2, enc: unicode.UTF8BOM, wantErr: stream.ErrDecode},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := tempName()
			require.NoError(t, fsys.WriteFile(path, tt.content, 0o644))

			got, err := reader.ReadString(path, tt.start, tt.end, tt.enc)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				assert.Contains(t, err.Error(), "bytes")
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRangeReader_ReadString_PropagatesReadErrors(t *testing.T) {
	_, reader, _ := newMemPair(t)

	_, err := reader.ReadString(tempName(), 0, 4, nil)
	assert.True(t, stream.IsNotFound(err))

	_, err = reader.ReadString(tempName(), 4, 0, nil)
	assert.True(t, stream.IsInvalidRange(err))
}

func TestRangeReader_SizeAndModTime(t *testing.T) {
	fsys, reader, _ := newMemPair(t)
	path := tempName()
	require.NoError(t, fsys.WriteFile(path, []byte("twelve bytes"), 0o644))

	size, err := reader.Size(path)
	require.NoError(t, err)
	assert.Equal(t, uint64(12), size)

	mod, err := reader.ModTime(path)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now(), mod, time.Minute)

	_, err = reader.Size(tempName())
	assert.True(t, stream.IsNotFound(err))

	_, err = reader.ModTime(tempName())
	assert.True(t, stream.IsNotFound(err))
}

func TestRangeReader_FileURI(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "uri.txt")
	require.NoError(t, os.WriteFile(path, []byte("from a uri"), 0o644))

	got, err := stream.Read("file://"+filepath.ToSlash(path), 5, 10)
	require.NoError(t, err)
	assert.Equal(t, "a uri", string(got))
}

func TestRangeReader_EmptyLocation(t *testing.T) {
	_, reader, _ := newMemPair(t)

	_, err := reader.Read("", 0, 1)
	require.Error(t, err)

	var serr *stream.Error
	require.ErrorAs(t, err, &serr)
	assert.Equal(t, stream.OpResolve, serr.Op)
}
