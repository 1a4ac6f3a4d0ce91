package cache_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/riftlabs/jpegmeta/cache"
)

func TestDiskCache_PutGetRoundTrip(t *testing.T) {
	dir := t.TempDir()
	dc := cache.NewDisk(dir)

	snap := &cache.Snapshot{
		Path: "/tmp/photo.jpg",
		Frame: cache.FrameSnapshot{
			Marker: 0xC0, BitsPerSample: 8, Height: 480, Width: 640,
			ColorComponents: 3, IsColor: true,
		},
		ImageEntries: []cache.TagSnapshot{
			{ID: 0x0112, Type: 3, UnitCount: 1, ValueOffset: 0, Raw: []byte{0, 1}, BigEndian: true},
		},
		ThumbnailEntries:   []cache.TagSnapshot{},
		Thumbnail:          []byte{0xFF, 0xD8, 0xFF, 0xD9},
		ThumbnailHeuristic: true,
		JFIF:               []byte("JFIF\x00"),
		XMP:                nil,
		Warnings:           []string{"sub-ifd depth cap exceeded"},
	}

	require.NoError(t, dc.Put("key1", snap))

	got, ok, err := dc.Get("key1")
	require.NoError(t, err)
	require.True(t, ok)

	require.Equal(t, snap.Path, got.Path)
	require.Equal(t, snap.Frame, got.Frame)
	require.Equal(t, snap.ImageEntries, got.ImageEntries)
	require.Equal(t, snap.Thumbnail, got.Thumbnail)
	require.Equal(t, snap.ThumbnailHeuristic, got.ThumbnailHeuristic)
	require.Equal(t, snap.JFIF, got.JFIF)
	require.Equal(t, snap.Warnings, got.Warnings)
}

func TestDiskCache_GetMissing(t *testing.T) {
	dc := cache.NewDisk(t.TempDir())

	_, ok, err := dc.Get("nope")
	require.NoError(t, err)
	require.False(t, ok)
}

func TestDiskCache_KeySanitization(t *testing.T) {
	dir := t.TempDir()
	dc := cache.NewDisk(dir)

	snap := &cache.Snapshot{Path: "/a/b/c.jpg"}
	require.NoError(t, dc.Put("/a/b:c", snap))

	got, ok, err := dc.Get("/a/b:c")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "/a/b/c.jpg", got.Path)
}
