// Package simple projects the well-known Exif + SOF tags spec.md §6 names
// into a flat, typed struct - the "SimpleMetadata" output the core's raw
// tag map is not itself convenient for.
package simple

import (
	"math"
	"path/filepath"
	"time"

	"github.com/riftlabs/jpegmeta/exif/tag"
	"github.com/riftlabs/jpegmeta/jpeg"
)

// Well-known tag IDs used by the projection (spec §6 table).
const (
	tagSoftware           tag.ID = 0x0131
	tagMake               tag.ID = 0x010F
	tagModel              tag.ID = 0x0110
	tagOrientation        tag.ID = 0x0112
	tagISO                tag.ID = 0x8827
	tagExposureTime       tag.ID = 0x829A
	tagApertureValue      tag.ID = 0x9202
	tagMaxAperture        tag.ID = 0x9205
	tagFocalLengthIn35mm  tag.ID = 0xA405
	tagExposureProgram    tag.ID = 0x8822
	tagLensModel          tag.ID = 0xA434
	tagOriginalCreateDate tag.ID = 0x9003
	tagModifyDate         tag.ID = 0x0132
	tagCopyright          tag.ID = 0x8298
	tagArtist             tag.ID = 0x013B

	exifDateLayout = "2006:01:02 15:04:05"
)

// Orientation is the EXIF 0x0112 enum (spec §6: "enum of 8").
type Orientation uint16

const (
	OrientationUnspecified Orientation = 0
	OrientationNormal      Orientation = 1
	OrientationFlipH       Orientation = 2
	OrientationRotate180   Orientation = 3
	OrientationFlipV       Orientation = 4
	OrientationTranspose   Orientation = 5
	OrientationRotate90CW  Orientation = 6
	OrientationTransverse  Orientation = 7
	OrientationRotate270CW Orientation = 8
)

var orientationNames = map[Orientation]string{
	OrientationUnspecified: "Unspecified",
	OrientationNormal:      "Normal",
	OrientationFlipH:       "Mirror horizontal",
	OrientationRotate180:   "Rotate 180",
	OrientationFlipV:       "Mirror vertical",
	OrientationTranspose:   "Mirror horizontal and rotate 270 CW",
	OrientationRotate90CW:  "Rotate 90 CW",
	OrientationTransverse:  "Mirror horizontal and rotate 90 CW",
	OrientationRotate270CW: "Rotate 270 CW",
}

func (o Orientation) String() string {
	if name, ok := orientationNames[o]; ok {
		return name
	}
	return "Unknown"
}

// ExposureProgram is the EXIF 0x8822 enum (spec §6: "enum of 9").
type ExposureProgram uint16

const (
	ExposureProgramNotDefined     ExposureProgram = 0
	ExposureProgramManual         ExposureProgram = 1
	ExposureProgramNormal         ExposureProgram = 2
	ExposureProgramAperturePriority ExposureProgram = 3
	ExposureProgramShutterPriority ExposureProgram = 4
	ExposureProgramCreative       ExposureProgram = 5
	ExposureProgramAction         ExposureProgram = 6
	ExposureProgramPortrait       ExposureProgram = 7
	ExposureProgramLandscape      ExposureProgram = 8
)

var exposureProgramNames = map[ExposureProgram]string{
	ExposureProgramNotDefined:      "Not Defined",
	ExposureProgramManual:          "Manual",
	ExposureProgramNormal:          "Program AE",
	ExposureProgramAperturePriority: "Aperture-priority AE",
	ExposureProgramShutterPriority: "Shutter speed priority AE",
	ExposureProgramCreative:        "Creative (Slow speed)",
	ExposureProgramAction:          "Action (High speed)",
	ExposureProgramPortrait:        "Portrait",
	ExposureProgramLandscape:       "Landscape",
}

func (p ExposureProgram) String() string {
	if name, ok := exposureProgramNames[p]; ok {
		return name
	}
	return "Unknown"
}

// Metadata is spec §6's SimpleMetadata: a flattened projection of the
// well-known tags plus the SOFn frame fields.
type Metadata struct {
	Name string

	Width           uint16
	Height          uint16
	BitsPerSample   uint8
	Encoding        string
	ColorComponents uint8
	IsColor         bool

	Software           string
	Make               string
	Model              string
	Orientation        Orientation
	ISO                uint32
	ExposureTime       tag.Rational
	ApertureValue      float64 // f-number, derived from the APEX value
	MaxAperture        float64
	FocalLengthIn35mm  uint32
	ExposureProgram    ExposureProgram
	LensModel          string
	OriginalCreateDate time.Time
	ModifyDate         time.Time
	Copyright          string
	Artist             string
}

// Project builds a Metadata from a parsed image-entry tag map and frame
// info (spec §6's getSimple).
func Project(path string, tags map[tag.ID]tag.Tag, frame jpeg.Frame) *Metadata {
	m := &Metadata{
		Name: filepath.Base(path),

		Width:           frame.Width,
		Height:          frame.Height,
		BitsPerSample:   frame.BitsPerSample,
		Encoding:        frame.Encoding(),
		ColorComponents: frame.ColorComponents,
		IsColor:         frame.IsColor,
	}

	if t, ok := tags[tagSoftware]; ok {
		m.Software = t.AsASCII()
	}
	if t, ok := tags[tagMake]; ok {
		m.Make = t.AsASCII()
	}
	if t, ok := tags[tagModel]; ok {
		m.Model = t.AsASCII()
	}
	if t, ok := tags[tagOrientation]; ok {
		m.Orientation = Orientation(t.AsShort())
	}
	if t, ok := tags[tagISO]; ok {
		v, _ := t.TryAsUint()
		m.ISO = v
	}
	if t, ok := tags[tagExposureTime]; ok {
		m.ExposureTime, _ = t.TryAsRational()
	}
	if t, ok := tags[tagApertureValue]; ok {
		if apex, err := t.TryAsRational(); err == nil {
			m.ApertureValue = apexToFNumber(apex.ToDouble())
		}
	}
	if t, ok := tags[tagMaxAperture]; ok {
		if apex, err := t.TryAsRational(); err == nil {
			m.MaxAperture = apexToFNumber(apex.ToDouble())
		}
	}
	if t, ok := tags[tagFocalLengthIn35mm]; ok {
		v, _ := t.TryAsUint()
		m.FocalLengthIn35mm = v
	}
	if t, ok := tags[tagExposureProgram]; ok {
		m.ExposureProgram = ExposureProgram(t.AsShort())
	}
	if t, ok := tags[tagLensModel]; ok {
		m.LensModel = t.AsASCII()
	}
	if t, ok := tags[tagOriginalCreateDate]; ok {
		m.OriginalCreateDate = parseExifDate(t.AsASCII())
	}
	if t, ok := tags[tagModifyDate]; ok {
		m.ModifyDate = parseExifDate(t.AsASCII())
	}
	if t, ok := tags[tagCopyright]; ok {
		m.Copyright = t.AsASCII()
	}
	if t, ok := tags[tagArtist]; ok {
		m.Artist = t.AsASCII()
	}

	return m
}

// apexToFNumber converts an APEX aperture value to an f-number:
// f = exp(apex * ln(2) / 2) (spec §6).
func apexToFNumber(apex float64) float64 {
	return math.Exp(apex * math.Ln2 / 2)
}

func parseExifDate(s string) time.Time {
	t, err := time.Parse(exifDateLayout, s)
	if err != nil {
		return time.Time{}
	}
	return t
}
