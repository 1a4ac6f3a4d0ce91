package exif

import (
	"bytes"
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/riftlabs/jpegmeta/exif/ifds"
	"github.com/riftlabs/jpegmeta/exif/tag"
	"github.com/riftlabs/jpegmeta/imagetype"
	"github.com/riftlabs/jpegmeta/meta"
)

func TestReader_ResolveEntry_InlineValue(t *testing.T) {
	blob := make([]byte, 16)
	rd := newReader(bytes.NewReader(blob), meta.NewExifHeader(binary.LittleEndian, 0, 0, uint32(len(blob)), imagetype.ImageJPEG))

	tg, err := rd.resolveEntry(tag.Orientation, tag.TypeShort, 1, 5)
	require.NoError(t, err)
	require.Equal(t, uint16(5), tg.AsShort())
}

func TestReader_ResolveEntry_OutOfRangeOffset(t *testing.T) {
	blob := make([]byte, 16)
	rd := newReader(bytes.NewReader(blob), meta.NewExifHeader(binary.LittleEndian, 0, 0, uint32(len(blob)), imagetype.ImageJPEG))

	// count*size = 100 bytes, far beyond the 16-byte blob: not inline
	// (>4 bytes) and out of range.
	_, err := rd.resolveEntry(tag.Make, tag.TypeASCII, 100, 0)
	require.ErrorIs(t, err, meta.ErrOutOfRangeOffset)
}

func TestReader_ResolveEntry_UnknownType(t *testing.T) {
	blob := make([]byte, 16)
	rd := newReader(bytes.NewReader(blob), meta.NewExifHeader(binary.LittleEndian, 0, 0, uint32(len(blob)), imagetype.ImageJPEG))

	_, err := rd.resolveEntry(tag.Make, tag.Type(999), 1, 0)
	require.Error(t, err)
}

func TestReader_ScanIFD_DepthCapExceeded(t *testing.T) {
	blob := make([]byte, 16)
	rd := newReader(bytes.NewReader(blob), meta.NewExifHeader(binary.LittleEndian, 0, 0, uint32(len(blob)), imagetype.ImageJPEG))

	_, err := rd.scanIFDDepth(newData(rd, imagetype.ImageJPEG), ifds.NewIFD(ifds.IFD0, 0, 0), maxIfdDepth+1)
	require.ErrorIs(t, err, meta.ErrCycleOrDepth)
}
