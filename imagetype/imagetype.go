// Package imagetype identifies the container format a metadata reader is
// operating on.
package imagetype

// ImageType identifies the file container that an Exif blob was extracted
// from. The core only implements ImageJPEG; the enum carries the same shape
// as the teacher library so that future container support does not require
// a breaking change to meta.ExifHeader.
type ImageType uint8

// Supported and recognized-but-unsupported image types.
const (
	ImageUnknown ImageType = iota
	ImageJPEG
)

func (it ImageType) String() string {
	switch it {
	case ImageJPEG:
		return "JPEG"
	default:
		return "Unknown"
	}
}
