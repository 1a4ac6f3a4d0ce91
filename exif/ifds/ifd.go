// Package ifds identifies the TIFF Image File Directories an Exif blob can
// contain and keys the merged tag map the exif package builds from them.
package ifds

import "github.com/riftlabs/jpegmeta/exif/tag"

// IfdType names one of the IFDs spec.md's walker (component D) may visit.
type IfdType uint8

const (
	// NullIFD is the zero value, used as a "no IFD"/"not a pointer" sentinel.
	NullIFD IfdType = iota
	// IFD0 is the primary image IFD.
	IFD0
	// ExifIFD is the Exif Sub-IFD (tag 0x8769). The walker stores its
	// entries in the same tag map under this IFD type; exif.Data's
	// ImageTag/ImageTags merge them with IFD0's (spec §4.D).
	ExifIFD
	// GPSIFD is the GPS Sub-IFD (tag 0x8825). Tags are passed through
	// without semantic decoding (spec Non-goals).
	GPSIFD
	// InteropIFD is the Interoperability Sub-IFD (tag 0xA005). Same
	// passthrough treatment as GPSIFD.
	InteropIFD
	// IFD1 is the thumbnail IFD, linked from IFD0's next-IFD offset.
	IFD1
)

func (t IfdType) String() string {
	switch t {
	case IFD0:
		return "IFD0"
	case ExifIFD:
		return "ExifIFD"
	case GPSIFD:
		return "GPSIFD"
	case InteropIFD:
		return "InteropIFD"
	case IFD1:
		return "IFD1"
	default:
		return "NullIFD"
	}
}

// IFD names one directory to parse: its type (for key-space bookkeeping),
// an index (multiple same-typed IFDs are possible, unused by JPEG-Exif but
// kept for the teacher's shape), and its byte offset relative to tiffBase.
type IFD struct {
	Type   IfdType
	Index  uint8
	Offset uint32
}

// NewIFD builds an IFD descriptor.
func NewIFD(t IfdType, index uint8, offset uint32) IFD {
	return IFD{Type: t, Index: index, Offset: offset}
}

// Key identifies one tag within the merged tag map: which IFD it came
// from, that IFD's index, and the tag ID itself. Keying by IFD lets a
// single map hold IFD0, its Sub-IFDs and IFD1 entries, from which
// spec.md's RawMetadata's two logical sets are drawn.
type Key struct {
	Ifd   IfdType
	Index uint8
	TagID tag.ID
}

// NewKey builds a tag map key.
func NewKey(ifd IfdType, index uint8, id tag.ID) Key {
	return Key{Ifd: ifd, Index: index, TagID: id}
}

// TagMap is the merged set of resolved tags produced by the IFD walker.
type TagMap map[Key]tag.Tag
