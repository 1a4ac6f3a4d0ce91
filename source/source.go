// Package source opens the byte-seekable file handles the rest of the
// library parses (spec §6 "Input"): a file whose first two bytes are not
// FF D8 (SOI) is rejected before any segment scanning begins.
package source

import (
	"os"

	"github.com/pkg/errors"
)

// ErrNotAJpeg is returned by Open when the file's first two bytes are not
// the JPEG SOI marker.
var ErrNotAJpeg = errors.New("source: not a JPEG file")

// File is the scoped, release-guaranteed handle the core parses: an
// io.ReaderAt for random-access TIFF/IFD addressing, plus Close to
// release the underlying descriptor (spec §5: "the file handle is scoped
// to the parse call and released before return, on all exit paths").
type File struct {
	*os.File
}

// Open opens path, verifies its SOI marker, and returns a File positioned
// at the start. The caller must Close it; Open itself closes the
// descriptor on any error path, including rejection.
func Open(path string) (*File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "source: open")
	}

	var magic [2]byte
	if _, err := f.ReadAt(magic[:], 0); err != nil {
		f.Close()
		return nil, errors.Wrap(err, "source: reading SOI")
	}
	if magic[0] != 0xFF || magic[1] != 0xD8 {
		f.Close()
		return nil, ErrNotAJpeg
	}

	return &File{File: f}, nil
}
