package simple_test

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/riftlabs/jpegmeta/exif/tag"
	"github.com/riftlabs/jpegmeta/jpeg"
	"github.com/riftlabs/jpegmeta/simple"
)

func TestProject_Frame(t *testing.T) {
	frame := jpeg.Frame{Marker: 0xC0, Width: 640, Height: 480, BitsPerSample: 8, ColorComponents: 3, IsColor: true}

	m := simple.Project("/tmp/photo.jpg", map[tag.ID]tag.Tag{}, frame)
	require.Equal(t, "photo.jpg", m.Name)
	require.Equal(t, uint16(640), m.Width)
	require.Equal(t, uint16(480), m.Height)
	require.Equal(t, "Baseline", m.Encoding)
	require.True(t, m.IsColor)
}

func TestProject_WellKnownTags(t *testing.T) {
	tags := map[tag.ID]tag.Tag{
		0x010F: tag.New(0x010F, tag.TypeASCII, 5, []byte("Canon"), 0, binary.BigEndian),
		0x0112: tag.New(0x0112, tag.TypeShort, 1, []byte{0, 6}, 0, binary.BigEndian),
		0x8822: tag.New(0x8822, tag.TypeShort, 1, []byte{0, 2}, 0, binary.BigEndian),
	}

	m := simple.Project("cam.jpg", tags, jpeg.Frame{})
	require.Equal(t, "Canon", m.Make)
	require.Equal(t, simple.OrientationRotate90CW, m.Orientation)
	require.Equal(t, "Rotate 90 CW", m.Orientation.String())
	require.Equal(t, simple.ExposureProgramNormal, m.ExposureProgram)
}

func TestApertureValue_ApexConversion(t *testing.T) {
	// APEX aperture value 4 (roughly f/4): exp(4*ln2/2) == 4. ApertureValue
	// is stored as an unsigned TIFF RATIONAL, not SRational.
	raw := make([]byte, 8)
	binary.BigEndian.PutUint32(raw[0:4], 4)
	binary.BigEndian.PutUint32(raw[4:8], 1)
	tags := map[tag.ID]tag.Tag{
		0x9202: tag.New(0x9202, tag.TypeRational, 1, raw, 0, binary.BigEndian),
	}

	m := simple.Project("f.jpg", tags, jpeg.Frame{})
	require.InDelta(t, 4.0, m.ApertureValue, 0.0001)
}
