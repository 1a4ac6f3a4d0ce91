// Copyright (c) 2018-2022 Evan Oberholster. All rights reserved.
// Use of this source code is governed by a license that can be
// found in the LICENSE file.

// Package jpegmeta is the public facade: it wires the JPEG segment
// scanner (package jpeg) to the Exif/TIFF walker (package exif) and
// exposes the stable output surface spec.md §6 names - ParseRaw,
// GetSimple, TryGetTag, GetTags, GetThumbnail.
package jpegmeta

import (
	log "github.com/dsoprea/go-logging"

	"github.com/riftlabs/jpegmeta/exif"
	"github.com/riftlabs/jpegmeta/exif/tag"
	"github.com/riftlabs/jpegmeta/jpeg"
	"github.com/riftlabs/jpegmeta/simple"
	"github.com/riftlabs/jpegmeta/source"
)

// Options is the process-wide configuration surface threaded explicitly
// through every entry point rather than held as mutable package state
// (spec §5/§9).
type Options struct {
	// ParseImageData, when true, walks entropy-coded scan data instead
	// of stopping at the first SOS. Default false.
	ParseImageData bool
	// Logger receives per-entry soft-failure warnings. Nil disables
	// logging entirely.
	Logger *log.Logger
	// Depth overrides the Sub-IFD recursion cap (0 uses the package
	// default of 4).
	Depth int
}

// RawMetadata is the aggregate produced per file (spec §3).
type RawMetadata struct {
	ImageEntries     map[tag.ID]tag.Tag
	ThumbnailEntries map[tag.ID]tag.Tag
	Thumbnail        []byte
	ThumbnailHeuristic bool
	Frame            jpeg.Frame
	JFIF             []byte
	XMP              []byte
	ScanSnapshot     []byte

	// Warnings collects per-entry soft failures (unknown type codes,
	// out-of-range offsets, a blown Sub-IFD recursion cap) instead of
	// discarding them silently (spec §7, supplemented per SPEC_FULL §5).
	Warnings []string
}

// ParseRaw performs a full parse of the JPEG file at path (spec §6's
// parseRaw).
func ParseRaw(path string, opts Options) (*RawMetadata, error) {
	f, err := source.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	scanRes, err := jpeg.ScanJPEG(f, jpeg.Options{
		ParseImageData: opts.ParseImageData,
	})
	if err != nil {
		return nil, err
	}

	out := &RawMetadata{
		Frame:        scanRes.Frame,
		JFIF:         scanRes.JFIF,
		XMP:          scanRes.XMP,
		ScanSnapshot: scanRes.ScanSnapshot,
	}

	if !scanRes.HasExif {
		out.ImageEntries = map[tag.ID]tag.Tag{}
		out.ThumbnailEntries = map[tag.ID]tag.Tag{}
		return out, nil
	}

	data, err := exif.ParseExifDepth(f, scanRes.ExifHeader, opts.Depth)
	if err != nil {
		// A malformed Exif blob doesn't invalidate the rest of the
		// scan (JFIF/XMP/frame are still valid JPEG-level results);
		// the caller sees the error plus whatever entries were
		// recovered before the failure.
		if data == nil {
			return out, err
		}
	}

	out.ImageEntries = data.ImageTags()
	out.ThumbnailEntries = data.ThumbnailTags()
	out.Warnings = data.Warnings

	if thumb, heuristic, ok := data.Thumbnail(); ok {
		out.Thumbnail = thumb
		out.ThumbnailHeuristic = heuristic
	}

	logWarnings(opts.Logger, out.Warnings)

	return out, err
}

func logWarnings(l *log.Logger, warnings []string) {
	if l == nil {
		return
	}
	for _, w := range warnings {
		l.Warningf(nil, "%s", w)
	}
}

// GetSimple projects the well-known tags spec §6 names into a
// simple.Metadata value (spec §6's getSimple).
func GetSimple(path string, opts Options) (*simple.Metadata, error) {
	raw, err := ParseRaw(path, opts)
	if err != nil && raw == nil {
		return nil, err
	}
	return simple.Project(path, raw.ImageEntries, raw.Frame), err
}

// TryGetTag looks up a single image-Exif tag (spec §6's tryGetTag): ok is
// false when the tag is absent, distinct from "present but wrong type"
// which is reported by the tag's own TryAsXxx accessors.
func TryGetTag(path string, tagID tag.ID, opts Options) (tag.Tag, bool, error) {
	raw, err := ParseRaw(path, opts)
	if err != nil && raw == nil {
		return tag.Tag{}, false, err
	}
	t, ok := raw.ImageEntries[tagID]
	return t, ok, err
}

// GetTags returns every image-Exif tag, including Sub-IFD entries (spec
// §6's getTags). On failure it returns an empty map rather than nil, per
// §7's "convenience getters return an empty result" policy.
func GetTags(path string, opts Options) (map[tag.ID]tag.Tag, error) {
	raw, err := ParseRaw(path, opts)
	if raw == nil {
		return map[tag.ID]tag.Tag{}, err
	}
	return raw.ImageEntries, err
}

// GetThumbnail returns the same bytes as ParseRaw(path).Thumbnail (spec
// §6's getThumbnail), or nil if the file has none.
func GetThumbnail(path string, opts Options) ([]byte, error) {
	raw, err := ParseRaw(path, opts)
	if raw == nil {
		return nil, err
	}
	return raw.Thumbnail, err
}
