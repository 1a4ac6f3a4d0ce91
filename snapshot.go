package jpegmeta

import (
	"encoding/binary"

	"github.com/riftlabs/jpegmeta/cache"
	"github.com/riftlabs/jpegmeta/exif/tag"
	"github.com/riftlabs/jpegmeta/jpeg"
)

// ToSnapshot converts r into its disk-cacheable form (cache.Snapshot),
// flattening each tag.Tag down to the fields tag.New needs to rebuild it.
func ToSnapshot(path string, r *RawMetadata) *cache.Snapshot {
	return &cache.Snapshot{
		Path: path,
		Frame: cache.FrameSnapshot{
			Marker:          r.Frame.Marker,
			BitsPerSample:   r.Frame.BitsPerSample,
			Height:          r.Frame.Height,
			Width:           r.Frame.Width,
			ColorComponents: r.Frame.ColorComponents,
			IsColor:         r.Frame.IsColor,
		},
		ImageEntries:       toTagSnapshots(r.ImageEntries),
		ThumbnailEntries:   toTagSnapshots(r.ThumbnailEntries),
		Thumbnail:          r.Thumbnail,
		ThumbnailHeuristic: r.ThumbnailHeuristic,
		JFIF:               r.JFIF,
		XMP:                r.XMP,
		Warnings:           r.Warnings,
	}
}

// FromSnapshot rebuilds a RawMetadata from a decoded cache.Snapshot.
func FromSnapshot(snap *cache.Snapshot) *RawMetadata {
	return &RawMetadata{
		Frame: jpeg.Frame{
			Marker:          snap.Frame.Marker,
			BitsPerSample:   snap.Frame.BitsPerSample,
			Height:          snap.Frame.Height,
			Width:           snap.Frame.Width,
			ColorComponents: snap.Frame.ColorComponents,
			IsColor:         snap.Frame.IsColor,
		},
		ImageEntries:       fromTagSnapshots(snap.ImageEntries),
		ThumbnailEntries:   fromTagSnapshots(snap.ThumbnailEntries),
		Thumbnail:          snap.Thumbnail,
		ThumbnailHeuristic: snap.ThumbnailHeuristic,
		JFIF:               snap.JFIF,
		XMP:                snap.XMP,
		Warnings:           snap.Warnings,
	}
}

func toTagSnapshots(tags map[tag.ID]tag.Tag) []cache.TagSnapshot {
	out := make([]cache.TagSnapshot, 0, len(tags))
	for _, t := range tags {
		out = append(out, cache.TagSnapshot{
			ID:          uint16(t.ID()),
			Type:        uint16(t.Type()),
			UnitCount:   t.UnitCount,
			ValueOffset: t.ValueOffset(),
			Raw:         t.Raw,
			BigEndian:   t.ByteOrder() == binary.BigEndian,
		})
	}
	return out
}

func fromTagSnapshots(snaps []cache.TagSnapshot) map[tag.ID]tag.Tag {
	out := make(map[tag.ID]tag.Tag, len(snaps))
	for _, s := range snaps {
		order := binary.ByteOrder(binary.LittleEndian)
		if s.BigEndian {
			order = binary.BigEndian
		}
		t := tag.New(tag.ID(s.ID), tag.Type(s.Type), s.UnitCount, s.Raw, s.ValueOffset, order)
		out[tag.ID(s.ID)] = t
	}
	return out
}
