// Package meta carries the small pieces of state the JPEG segment scanner
// hands to the Exif/TIFF walker: byte order, where the TIFF header sits in
// the file, and how long the Exif blob runs.
package meta

import (
	"encoding/binary"

	"github.com/riftlabs/jpegmeta/exif/ifds"
	"github.com/riftlabs/jpegmeta/imagetype"
)

// ExifHeader is produced by the jpeg scanner (component C) the moment it
// identifies an APP1-Exif segment, and consumed by exif.ParseExif
// (component D's entry point).
type ExifHeader struct {
	// ByteOrder is the TIFF byte order declared in the 2-byte "II"/"MM"
	// mark (spec §4.D step 3).
	ByteOrder binary.ByteOrder
	// FirstIfdOffset is the offset of IFD0, relative to TiffHeaderOffset.
	FirstIfdOffset uint32
	// TiffHeaderOffset is the absolute file position of the first byte
	// of the TIFF header (i.e. tiffBase in spec §4.D), immediately after
	// the 6-byte "Exif\0\0" identifier.
	TiffHeaderOffset uint32
	// ExifLength is the number of bytes in the Exif blob starting at
	// TiffHeaderOffset; all TIFF offsets must resolve within this bound
	// (spec §4.E bounds check).
	ExifLength uint32
	// ImageType is the container the Exif blob was pulled from.
	ImageType imagetype.ImageType
	// FirstIfd is which IfdType FirstIfdOffset points at. JPEG-Exif
	// always starts at IFD0; the field exists so ParseExif can also be
	// invoked directly against the thumbnail IFD (ifds.IFD1).
	FirstIfd ifds.IfdType
}

// NewExifHeader builds an ExifHeader from the pieces decoded by the JPEG
// scanner while reading an APP1 payload.
func NewExifHeader(order binary.ByteOrder, firstIfdOffset, tiffHeaderOffset, exifLength uint32, it imagetype.ImageType) ExifHeader {
	return ExifHeader{
		ByteOrder:        order,
		FirstIfdOffset:   firstIfdOffset,
		TiffHeaderOffset: tiffHeaderOffset,
		ExifLength:       exifLength,
		ImageType:        it,
		FirstIfd:         ifds.IFD0,
	}
}

// IsValid reports whether the header carries enough information to start
// an IFD walk: a recognized byte order and a non-zero Exif blob length.
func (h ExifHeader) IsValid() bool {
	return h.ByteOrder != nil && h.ExifLength > 0
}
