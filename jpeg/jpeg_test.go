package jpeg_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/riftlabs/jpegmeta/jpeg"
)

func seg(marker byte, body []byte) []byte {
	out := []byte{0xFF, marker, 0, 0}
	length := len(body) + 2
	out[2] = byte(length >> 8)
	out[3] = byte(length)
	return append(out, body...)
}

func TestScanJPEG_MinimalFile(t *testing.T) {
	data := []byte{0xFF, 0xD8, 0xFF, 0xD9}

	res, err := jpeg.ScanJPEG(bytes.NewReader(data), jpeg.Options{})
	require.NoError(t, err)
	require.False(t, res.HasExif)
	require.Empty(t, res.JFIF)
	require.Empty(t, res.XMP)
}

func TestScanJPEG_NotAJpeg(t *testing.T) {
	_, err := jpeg.ScanJPEG(bytes.NewReader([]byte{0x00, 0x01, 0x02}), jpeg.Options{})
	require.ErrorIs(t, err, jpeg.ErrNotAJpeg)
}

func TestScanJPEG_SOF0Baseline(t *testing.T) {
	sofBody := []byte{
		8,    // bits per sample
		0, 10, // height
		0, 20, // width
		3, // components
		1, 0x22, 0, // component 1 specifier
		2, 0x11, 1, // component 2 specifier
		3, 0x11, 1, // component 3 specifier
	}

	var data []byte
	data = append(data, 0xFF, 0xD8)
	data = append(data, seg(0xC0, sofBody)...)
	data = append(data, 0xFF, 0xD9)

	res, err := jpeg.ScanJPEG(bytes.NewReader(data), jpeg.Options{})
	require.NoError(t, err)
	require.Equal(t, "Baseline", res.Frame.Encoding())
	require.Equal(t, uint16(10), res.Frame.Height)
	require.Equal(t, uint16(20), res.Frame.Width)
	require.Equal(t, uint8(3), res.Frame.ColorComponents)
	require.True(t, res.Frame.IsColor)
}

func TestScanJPEG_APP0Jfif(t *testing.T) {
	jfifBody := append([]byte("JFIF\x00"), 1, 2, 0, 1, 1, 0, 0)

	var data []byte
	data = append(data, 0xFF, 0xD8)
	data = append(data, seg(0xE0, jfifBody)...)
	data = append(data, 0xFF, 0xD9)

	res, err := jpeg.ScanJPEG(bytes.NewReader(data), jpeg.Options{})
	require.NoError(t, err)
	require.NotEmpty(t, res.JFIF)
	require.Equal(t, "JFIF\x00", string(res.JFIF[:5]))
}

func TestScanJPEG_APP1Exif(t *testing.T) {
	tiffHeader := []byte{'I', 'I', 42, 0, 8, 0, 0, 0} // little-endian, firstIfdOffset=8
	app1Body := append([]byte("Exif\x00\x00"), tiffHeader...)

	var data []byte
	data = append(data, 0xFF, 0xD8)
	data = append(data, seg(0xE1, app1Body)...)
	data = append(data, 0xFF, 0xD9)

	res, err := jpeg.ScanJPEG(bytes.NewReader(data), jpeg.Options{})
	require.NoError(t, err)
	require.True(t, res.HasExif)
	require.Equal(t, uint32(8), res.ExifHeader.FirstIfdOffset)
	require.NotNil(t, res.ExifHeader.ByteOrder)
}

func TestScanJPEG_APP1Xmp(t *testing.T) {
	xmpBody := []byte("http://ns.adobe.com/xap/1.0/\x00<x:xmpmeta/>")

	var data []byte
	data = append(data, 0xFF, 0xD8)
	data = append(data, seg(0xE1, xmpBody)...)
	data = append(data, 0xFF, 0xD9)

	res, err := jpeg.ScanJPEG(bytes.NewReader(data), jpeg.Options{})
	require.NoError(t, err)
	require.False(t, res.HasExif)
	require.NotEmpty(t, res.XMP)
}

func TestScanJPEG_APP1Exif_TruncatedHeader(t *testing.T) {
	// Only 3 bytes follow the "Exif\0\0" identifier: too short to hold a
	// full 8-byte TIFF header.
	app1Body := append([]byte("Exif\x00\x00"), 'I', 'I', 42)

	var data []byte
	data = append(data, 0xFF, 0xD8)
	data = append(data, seg(0xE1, app1Body)...)
	data = append(data, 0xFF, 0xD9)

	_, err := jpeg.ScanJPEG(bytes.NewReader(data), jpeg.Options{})
	require.ErrorIs(t, err, jpeg.ErrBadExifHeader)
}

func TestScanJPEG_APP1Exif_BadByteOrder(t *testing.T) {
	tiffHeader := []byte{'X', 'X', 42, 0, 8, 0, 0, 0} // neither "II" nor "MM"
	app1Body := append([]byte("Exif\x00\x00"), tiffHeader...)

	var data []byte
	data = append(data, 0xFF, 0xD8)
	data = append(data, seg(0xE1, app1Body)...)
	data = append(data, 0xFF, 0xD9)

	_, err := jpeg.ScanJPEG(bytes.NewReader(data), jpeg.Options{})
	require.ErrorIs(t, err, jpeg.ErrBadByteOrder)
}

func TestScanJPEG_APP1Exif_BadTiffMagic(t *testing.T) {
	tiffHeader := []byte{'I', 'I', 0, 0, 8, 0, 0, 0} // magic should be 42
	app1Body := append([]byte("Exif\x00\x00"), tiffHeader...)

	var data []byte
	data = append(data, 0xFF, 0xD8)
	data = append(data, seg(0xE1, app1Body)...)
	data = append(data, 0xFF, 0xD9)

	_, err := jpeg.ScanJPEG(bytes.NewReader(data), jpeg.Options{})
	require.ErrorIs(t, err, jpeg.ErrBadTiffMagic)
}

func TestScanJPEG_StopsAtFirstSOSByDefault(t *testing.T) {
	sosBody := []byte{1, 0, 0, 0} // 1 component, trivial selector bytes

	var data []byte
	data = append(data, 0xFF, 0xD8)
	data = append(data, seg(0xDA, sosBody)...)
	// Entropy data the default (ParseImageData=false) scan must NOT walk
	// into, followed by a real EOI further down that would only be seen
	// if walking continued.
	data = append(data, 0x00, 0x01, 0x02, 0xFF, 0xD9)

	res, err := jpeg.ScanJPEG(bytes.NewReader(data), jpeg.Options{})
	require.NoError(t, err)
	require.False(t, res.RestartEnabled)
	require.Empty(t, res.ScanSnapshot) // scan data was not walked
}

func TestScanJPEG_WalksScanDataWithStuffingAndRestart(t *testing.T) {
	sosBody := []byte{1, 0, 0, 0}

	var data []byte
	data = append(data, 0xFF, 0xD8)
	data = append(data, seg(0xDD, []byte{0, 4})...) // DRI: restart interval 4
	data = append(data, seg(0xDA, sosBody)...)
	// Entropy data: a literal 0xFF via stuffing (FF 00), then a restart
	// marker (legal because DRI was seen), then the real EOI.
	data = append(data, 0x12, 0xFF, 0x00, 0x34, 0xFF, 0xD0, 0x56)
	data = append(data, 0xFF, 0xD9)

	res, err := jpeg.ScanJPEG(bytes.NewReader(data), jpeg.Options{ParseImageData: true})
	require.NoError(t, err)
	require.True(t, res.RestartEnabled)
	require.NotEmpty(t, res.ScanSnapshot)
}
