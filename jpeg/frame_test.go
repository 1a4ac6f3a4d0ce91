package jpeg_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/riftlabs/jpegmeta/jpeg"
)

func TestFrame_Encoding(t *testing.T) {
	cases := []struct {
		marker byte
		name   string
	}{
		{0xC0, "Baseline"},
		{0xC2, "Progressive"},
		{0xC3, "Lossless"},
		{0xCF, "Differential Lossless Arithmetic"},
	}
	for _, c := range cases {
		f := jpeg.Frame{Marker: c.marker}
		require.Equal(t, c.name, f.Encoding())
	}
}

func TestFrame_UnknownMarker(t *testing.T) {
	f := jpeg.Frame{Marker: 0xC4} // DHT, not a frame marker
	require.Equal(t, "Unknown", f.Encoding())
}

func TestFrame_String(t *testing.T) {
	f := jpeg.Frame{Marker: 0xC0, Width: 100, Height: 50, BitsPerSample: 8, ColorComponents: 3}
	require.Contains(t, f.String(), "Baseline")
	require.Contains(t, f.String(), "100x50")
}
