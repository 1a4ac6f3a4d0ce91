package exif

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"

	"github.com/pkg/errors"

	"github.com/riftlabs/jpegmeta/exif/ifds"
	"github.com/riftlabs/jpegmeta/exif/tag"
	"github.com/riftlabs/jpegmeta/meta"
)

// maxIfdDepth bounds Sub-IFD recursion (spec §4.D: "the recursion must be
// capped (e.g. 4) to defeat cyclic-pointer attacks").
const maxIfdDepth = 4

// ifdHeaderSize is the 2-byte entry count that opens every IFD.
const ifdHeaderSize = 2

// ifdEntrySize is the fixed width of one TIFF IFD entry: tag(2) +
// type(2) + count(4) + value-or-offset(4).
const ifdEntrySize = 12

// reader is the byte-window reader (component A) fused with the IFD
// walker (component D) and entry resolver (component E): a seekable,
// bounds-checked view over the file's Exif blob, addressed relative to
// tiffBase (exifOffset below), plus the recursive directory walk and
// per-entry value materialization that only make sense in terms of that
// view. This mirrors the teacher's unexported `reader` type embedded in
// exif.Data.
type reader struct {
	r          io.ReaderAt
	byteOrder  binary.ByteOrder
	exifOffset uint32 // tiffBase: absolute file offset of the TIFF header
	exifLength uint32 // bound: valid TIFF offsets are [0, exifLength)
	maxDepth   int    // Sub-IFD recursion cap; set by ParseExifDepth
}

func newReader(r io.ReaderAt, header meta.ExifHeader) *reader {
	return &reader{
		r:          r,
		byteOrder:  header.ByteOrder,
		exifOffset: header.TiffHeaderOffset,
		exifLength: header.ExifLength,
		maxDepth:   maxIfdDepth,
	}
}

// readAt reads n bytes starting at offset relative to tiffBase, bounds
// checked against the declared Exif blob length (spec §4.E bounds rule).
func (rd *reader) readAt(relOffset uint32, n int) ([]byte, error) {
	if n < 0 {
		return nil, meta.ErrUnexpectedEnd
	}
	end := uint64(relOffset) + uint64(n)
	if end > uint64(rd.exifLength) {
		return nil, meta.ErrOutOfRangeOffset
	}
	buf := make([]byte, n)
	if _, err := rd.r.ReadAt(buf, int64(rd.exifOffset)+int64(relOffset)); err != nil {
		return nil, errors.Wrap(meta.ErrUnexpectedEnd, err.Error())
	}
	return buf, nil
}

func (rd *reader) readU16(relOffset uint32) (uint16, error) {
	b, err := rd.readAt(relOffset, 2)
	if err != nil {
		return 0, err
	}
	return rd.byteOrder.Uint16(b), nil
}

func (rd *reader) readU32(relOffset uint32) (uint32, error) {
	b, err := rd.readAt(relOffset, 4)
	if err != nil {
		return 0, err
	}
	return rd.byteOrder.Uint32(b), nil
}

// scanIFD walks one IFD (and, transitively, its Exif/GPS/Interop Sub-IFDs)
// into e's tag map and returns the offset of the next IFD in the chain (0
// if there is none). This is spec §4.D's re-entrant parseIfd procedure.
func (rd *reader) scanIFD(e *Data, ifd ifds.IFD) (uint32, error) {
	return rd.scanIFDDepth(e, ifd, 0)
}

func (rd *reader) scanIFDDepth(e *Data, ifd ifds.IFD, depth int) (uint32, error) {
	if depth > rd.maxDepth {
		return 0, meta.ErrCycleOrDepth
	}

	n, err := rd.readU16(ifd.Offset)
	if err != nil {
		return 0, err
	}

	offset := ifd.Offset + ifdHeaderSize
	for i := 0; i < int(n); i++ {
		entryBuf, err := rd.readAt(offset, ifdEntrySize)
		if err != nil {
			return 0, err
		}
		tagID := tag.ID(rd.byteOrder.Uint16(entryBuf[0:2]))
		rawType := tag.Type(rd.byteOrder.Uint16(entryBuf[2:4]))
		count := rd.byteOrder.Uint32(entryBuf[4:8])
		valueOrOffset := rd.byteOrder.Uint32(entryBuf[8:12])
		offset += ifdEntrySize

		t, rerr := rd.resolveEntry(tagID, rawType, count, valueOrOffset)
		if rerr != nil {
			e.warn("dropping tag 0x%04X in %s: %v", uint16(tagID), ifd.Type, rerr)
			continue
		}
		e.tagMap[ifds.NewKey(ifd.Type, ifd.Index, tagID)] = t

		switch tagID {
		case tag.ExifIFDPointer:
			rd.descend(e, ifds.NewIFD(ifds.ExifIFD, ifd.Index, valueOrOffset), depth, "ExifIFD")
		case tag.GPSIFDPointer:
			rd.descend(e, ifds.NewIFD(ifds.GPSIFD, ifd.Index, valueOrOffset), depth, "GPSIFD")
		case tag.InteropIFDPointer:
			rd.descend(e, ifds.NewIFD(ifds.InteropIFD, ifd.Index, valueOrOffset), depth, "InteropIFD")
		}
	}

	return rd.readU32(offset)
}

// descend recurses into a pointed-to Sub-IFD, flattening its tags into
// the same tag map (spec §4.D: "Sub-IFD tags are flattened into IFD0 for
// image entries"). Failures - including a blown depth cap - terminate
// only this branch, logged as a warning, matching the best-effort policy
// spec §7 applies to malformed entries.
func (rd *reader) descend(e *Data, sub ifds.IFD, depth int, label string) {
	if _, err := rd.scanIFDDepth(e, sub, depth+1); err != nil {
		e.warn("%s at offset %d: %v", label, sub.Offset, err)
	}
}

// resolveEntry materializes a raw TiffEntry into an owned-bytes Tag
// (spec §4.E). size<=4 values are inline in valueOrOffset; larger values
// are read from tiffBase+valueOrOffset.
func (rd *reader) resolveEntry(id tag.ID, rawType tag.Type, count uint32, valueOrOffset uint32) (tag.Tag, error) {
	size, ok := rawType.Size()
	if !ok {
		return tag.Tag{}, fmt.Errorf("exif: unrecognized tag type %d", uint16(rawType))
	}

	total := uint64(count) * uint64(size)
	if total > math.MaxUint32 {
		return tag.Tag{}, meta.ErrOutOfRangeOffset
	}

	if total <= 4 {
		buf := make([]byte, 4)
		rd.byteOrder.PutUint32(buf, valueOrOffset)
		raw := append([]byte(nil), buf[:total]...)
		return tag.New(id, rawType, count, raw, valueOrOffset, rd.byteOrder), nil
	}

	if total > uint64(rd.exifLength) {
		return tag.Tag{}, meta.ErrOutOfRangeOffset
	}
	raw, err := rd.readAt(valueOrOffset, int(total))
	if err != nil {
		return tag.Tag{}, err
	}
	return tag.New(id, rawType, count, raw, valueOrOffset, rd.byteOrder), nil
}
