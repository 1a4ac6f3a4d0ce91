package tag

// ID is a 16-bit TIFF/Exif tag identifier.
type ID uint16

// Well-known tags: the ones the simple metadata mapper projects (it
// declares its own copies of these IDs), the pointer tags the resolver
// follows, and the thumbnail tags. Not an exhaustive Exif dictionary -
// only the tags this library gives special treatment.
const (
	Make               ID = 0x010F
	Model              ID = 0x0110
	Orientation        ID = 0x0112
	Software           ID = 0x0131
	ModifyDate         ID = 0x0132
	Artist             ID = 0x013B
	Copyright          ID = 0x8298
	ExposureTime       ID = 0x829A
	ExposureProgram    ID = 0x8822
	ISOSpeedRatings    ID = 0x8827
	ExifVersion        ID = 0x9000
	DateTimeOriginal   ID = 0x9003
	ApertureValue      ID = 0x9202
	MaxApertureValue   ID = 0x9205
	LensModel          ID = 0xA434
	FocalLengthIn35mm  ID = 0xA405

	// Pointer tags - their value is the byte offset (from tiffBase) of a
	// nested IFD rather than an ordinary scalar/array value.
	ExifIFDPointer    ID = 0x8769
	GPSIFDPointer     ID = 0x8825
	InteropIFDPointer ID = 0xA005

	// Thumbnail location, found in the thumbnail IFD (IFD1).
	JPEGInterchangeFormat       ID = 0x0201
	JPEGInterchangeFormatLength ID = 0x0202
	Compression                 ID = 0x0103
)
