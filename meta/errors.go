package meta

import "github.com/pkg/errors"

// Sentinel errors shared by the jpeg scanner and the exif/TIFF walker
// (spec §7's error taxonomy). Package-specific errors that never cross a
// package boundary (e.g. jpeg.ErrBadMarker) stay local to their
// package; these are the ones multiple packages need to compare against.
var (
	// ErrNoExif means the scanner reached end of stream without finding
	// an APP1 segment carrying an Exif identifier.
	ErrNoExif = errors.New("meta: no Exif data found")

	// ErrInvalidHeader means an ExifHeader failed IsValid() before a walk
	// was attempted.
	ErrInvalidHeader = errors.New("meta: invalid exif header")

	// ErrUnexpectedEnd means a read ran past the bounds of its source
	// (the file, or the declared Exif blob) before completing.
	ErrUnexpectedEnd = errors.New("meta: unexpected end of data")

	// ErrBadExifHeader means the 6-byte "Exif\0\0" identifier was missing
	// or malformed.
	ErrBadExifHeader = errors.New("meta: bad exif header")

	// ErrBadByteOrder means neither "II" nor "MM" was found where the
	// TIFF byte-order mark belongs.
	ErrBadByteOrder = errors.New("meta: bad tiff byte order")

	// ErrBadTiffMagic means the TIFF header's magic number was not 42.
	ErrBadTiffMagic = errors.New("meta: bad tiff magic number")

	// ErrOutOfRangeOffset means a TIFF value offset (or a thumbnail
	// offset/length pair) pointed outside the addressable Exif blob.
	ErrOutOfRangeOffset = errors.New("meta: offset out of range")

	// ErrCycleOrDepth means IFD recursion exceeded its depth cap, most
	// likely because of a self-referential or cyclic Sub-IFD pointer.
	ErrCycleOrDepth = errors.New("meta: ifd recursion cap exceeded")
)
