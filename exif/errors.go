package exif

import (
	"github.com/pkg/errors"

	"github.com/riftlabs/jpegmeta/meta"
)

// Errors. The boundary-check kinds are aliased from meta so callers can
// compare against one taxonomy regardless of which package raised them
// (spec §7).
var (
	ErrInvalidHeader    = meta.ErrInvalidHeader
	ErrNoExif           = meta.ErrNoExif
	ErrBadExifHeader    = meta.ErrBadExifHeader
	ErrBadByteOrder     = meta.ErrBadByteOrder
	ErrBadTiffMagic     = meta.ErrBadTiffMagic
	ErrOutOfRangeOffset = meta.ErrOutOfRangeOffset
	ErrCycleOrDepth     = meta.ErrCycleOrDepth
	ErrEmptyTag         = errors.New("exif: empty tag")
)
