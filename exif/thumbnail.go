package exif

import (
	"github.com/riftlabs/jpegmeta/exif/ifds"
	"github.com/riftlabs/jpegmeta/exif/tag"
)

// Thumbnail extracts the IFD1 thumbnail (spec §4.F): present only when
// ThumbnailTags holds both JPEGInterchangeFormat (0x0201) and
// JPEGInterchangeFormatLength (0x0202). heuristic reports whether the
// 0x0103 Compression tag was absent or not the expected value 6 (old
// JPEG) - the thumbnail is still returned in that case, just flagged.
func (e *Data) Thumbnail() (data []byte, heuristic bool, ok bool) {
	offsetTag, hasOffset := e.tagMap[ifds.NewKey(ifds.IFD1, 0, tag.JPEGInterchangeFormat)]
	lengthTag, hasLength := e.tagMap[ifds.NewKey(ifds.IFD1, 0, tag.JPEGInterchangeFormatLength)]
	if !hasOffset || !hasLength {
		return nil, false, false
	}

	offset, err := offsetTag.TryAsUint()
	if err != nil {
		e.warn("thumbnail offset tag: %v", err)
		return nil, false, false
	}
	length, err := lengthTag.TryAsUint()
	if err != nil {
		e.warn("thumbnail length tag: %v", err)
		return nil, false, false
	}

	buf, err := e.reader.readAt(offset, int(length))
	if err != nil {
		e.warn("reading thumbnail at offset %d length %d: %v", offset, length, err)
		return nil, false, false
	}

	heuristic = true
	if compression, hasCompression := e.tagMap[ifds.NewKey(ifds.IFD1, 0, tag.Compression)]; hasCompression {
		if v, err := compression.TryAsUint(); err == nil && v == 6 {
			heuristic = false
		}
	}

	return buf, heuristic, true
}
