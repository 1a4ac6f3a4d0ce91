// Package exif parses the TIFF IFD tree embedded in a JPEG's APP1 Exif
// segment (spec components D and E) and exposes it as a typed, queryable
// tag set (component B, via the exif/tag package).
package exif

import (
	"fmt"
	"io"

	"github.com/riftlabs/jpegmeta/exif/ifds"
	"github.com/riftlabs/jpegmeta/exif/tag"
	"github.com/riftlabs/jpegmeta/imagetype"
	"github.com/riftlabs/jpegmeta/meta"
)

// ParseExif parses Exif metadata from an io.ReaderAt and a TiffHeader.
//
// If the header is invalid ParseExif returns ErrInvalidHeader.
//
// It walks IFD0 (flattening the Exif Sub-IFD, and the GPS/Interop
// Sub-IFDs if present, into the same entry set - spec §4.D), then, if
// IFD0's next-IFD link is non-zero, walks IFD1 (the thumbnail IFD) into
// the same Data under its own key space.
func ParseExif(r io.ReaderAt, header meta.ExifHeader) (*Data, error) {
	return ParseExifDepth(r, header, maxIfdDepth)
}

// ParseExifDepth is ParseExif with an explicit Sub-IFD recursion cap,
// letting a caller tighten or loosen the default (spec §9's Options.Depth
// knob, threaded explicitly rather than read from package state).
func ParseExifDepth(r io.ReaderAt, header meta.ExifHeader, maxDepth int) (*Data, error) {
	if !header.IsValid() {
		return nil, ErrInvalidHeader
	}
	if header.FirstIfd == ifds.NullIFD {
		header.FirstIfd = ifds.IFD0
	}
	if maxDepth <= 0 {
		maxDepth = maxIfdDepth
	}

	rd := newReader(r, header)
	rd.maxDepth = maxDepth
	e := newData(rd, header.ImageType)

	thumbOffset, err := rd.scanIFD(e, ifds.NewIFD(header.FirstIfd, 0, header.FirstIfdOffset))
	if err != nil {
		return e, err
	}
	e.thumbnailIfdOffset = thumbOffset

	if thumbOffset != 0 {
		if _, err := rd.scanIFD(e, ifds.NewIFD(ifds.IFD1, 0, thumbOffset)); err != nil {
			e.warn("thumbnail ifd at offset %d: %v", thumbOffset, err)
		}
	}

	return e, nil
}

// newData creates a new initialized Data object.
func newData(r *reader, it imagetype.ImageType) *Data {
	return &Data{
		reader:    r,
		imageType: it,
		tagMap:    make(ifds.TagMap, 50),
	}
}

// Data holds the parsed Exif information for one file: the merged tag map
// (spec's imageEntries + thumbnailEntries, keyed by which IFD a tag came
// from) plus the warnings side channel for per-entry soft failures.
type Data struct {
	reader             *reader
	tagMap             ifds.TagMap
	imageType          imagetype.ImageType
	thumbnailIfdOffset uint32

	// Warnings collects the per-entry failures spec §7 says must be
	// logged and dropped rather than aborting the parse (unknown type
	// codes, out-of-range offsets, a blown Sub-IFD recursion cap).
	Warnings []string
}

func (e *Data) warn(format string, args ...interface{}) {
	e.Warnings = append(e.Warnings, fmt.Sprintf(format, args...))
}

// ThumbnailIfdOffset returns the offset (relative to tiffBase) of IFD1, or
// 0 if IFD0 had no next-IFD link.
func (e *Data) ThumbnailIfdOffset() uint32 { return e.thumbnailIfdOffset }

// GetTag returns a tag from a specific IFD and returns ErrEmptyTag if it
// doesn't exist.
func (e *Data) GetTag(ifd ifds.IfdType, ifdIndex uint8, tagID tag.ID) (tag.Tag, error) {
	if t, ok := e.tagMap[ifds.NewKey(ifd, ifdIndex, tagID)]; ok {
		return t, nil
	}
	return tag.Tag{}, ErrEmptyTag
}

// ImageTag looks up a single tag from the merged image entry set (IFD0 +
// its Exif Sub-IFD, and GPS/Interop if present) - spec §6's tryGetTag.
func (e *Data) ImageTag(tagID tag.ID) (tag.Tag, bool) {
	for _, ifd := range [...]ifds.IfdType{ifds.IFD0, ifds.ExifIFD, ifds.GPSIFD, ifds.InteropIFD} {
		if t, ok := e.tagMap[ifds.NewKey(ifd, 0, tagID)]; ok {
			return t, true
		}
	}
	return tag.Tag{}, false
}

// ImageTags returns every image-Exif tag as a flat tag-ID-keyed map
// (spec §6's getTags).
func (e *Data) ImageTags() map[tag.ID]tag.Tag {
	return e.tagsFrom(ifds.IFD0, ifds.ExifIFD, ifds.GPSIFD, ifds.InteropIFD)
}

// ThumbnailTags returns every IFD1 (thumbnail) tag as a flat map.
func (e *Data) ThumbnailTags() map[tag.ID]tag.Tag {
	return e.tagsFrom(ifds.IFD1)
}

func (e *Data) tagsFrom(want ...ifds.IfdType) map[tag.ID]tag.Tag {
	set := make(map[ifds.IfdType]bool, len(want))
	for _, w := range want {
		set[w] = true
	}
	out := make(map[tag.ID]tag.Tag, len(e.tagMap))
	for k, v := range e.tagMap {
		if set[k.Ifd] {
			out[k.TagID] = v
		}
	}
	return out
}

// RangeTags returns a chan tag.Tag for ranging over every tag parsed,
// across every IFD.
func (e *Data) RangeTags() chan tag.Tag {
	c := make(chan tag.Tag)
	go func() {
		for _, t := range e.tagMap {
			c <- t
		}
		close(c)
	}()
	return c
}

// GetTagValue returns a tag's value as an interface{}, decoding it
// according to its declared type; it forwards to tag.Tag.Value, which the
// CLI's `dump`/`tag` commands call directly to build a JSON document.
// Prefer the typed accessors on tag.Tag in performance-sensitive code.
func (e *Data) GetTagValue(t tag.Tag) interface{} {
	return t.Value()
}
