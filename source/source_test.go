package source_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/riftlabs/jpegmeta/source"
)

func writeTemp(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}

func TestOpen_ValidSOI(t *testing.T) {
	path := writeTemp(t, "ok.jpg", []byte{0xFF, 0xD8, 0xFF, 0xD9})

	f, err := source.Open(path)
	require.NoError(t, err)
	defer f.Close()

	var magic [2]byte
	_, err = f.ReadAt(magic[:], 0)
	require.NoError(t, err)
	require.Equal(t, []byte{0xFF, 0xD8}, magic[:])
}

func TestOpen_RejectsNonJpeg(t *testing.T) {
	path := writeTemp(t, "bad.png", []byte{0x89, 0x50, 0x4E, 0x47})

	_, err := source.Open(path)
	require.ErrorIs(t, err, source.ErrNotAJpeg)
}

func TestOpen_MissingFile(t *testing.T) {
	_, err := source.Open(filepath.Join(t.TempDir(), "missing.jpg"))
	require.Error(t, err)
}

func TestOpen_TooShortToHaveSOI(t *testing.T) {
	path := writeTemp(t, "empty.jpg", []byte{0xFF})

	_, err := source.Open(path)
	require.Error(t, err)
}
