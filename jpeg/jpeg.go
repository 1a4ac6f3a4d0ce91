// Copyright (c) 2018-2022 Evan Oberholster. All rights reserved.
// Use of this source code is governed by a license that can be
// found in the LICENSE file.

// Package jpeg scans the marker-segment structure of a JPEG file
// (spec component C): SOI/EOI framing, APP0/APP1 sidecar capture, SOFn
// frame headers, and the SOS entropy-coded scan walker.
package jpeg

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"io"

	"github.com/pkg/errors"

	"github.com/riftlabs/jpegmeta/imagetype"
	"github.com/riftlabs/jpegmeta/meta"
)

// Errors
var (
	ErrNoExif        = meta.ErrNoExif
	ErrNotAJpeg      = errors.New("jpeg: missing SOI marker")
	ErrBadMarker     = errors.New("jpeg: expected 0xFF marker prefix")
	ErrUnexpectedEnd = meta.ErrUnexpectedEnd

	// ErrBadExifHeader, ErrBadByteOrder and ErrBadTiffMagic surface a
	// malformed TIFF header inside an otherwise well-formed APP1-Exif
	// segment (spec §7/§8: these must propagate, not be swallowed).
	ErrBadExifHeader = meta.ErrBadExifHeader
	ErrBadByteOrder  = meta.ErrBadByteOrder
	ErrBadTiffMagic  = meta.ErrBadTiffMagic
)

const (
	bufferSize int = 4 * 1024 // 4Kb

	// defaultScanSnapshot bounds how much entropy-coded scan data is
	// preserved verbatim for downstream consumers (spec §1's "bounded
	// snapshot of compressed image data").
	defaultScanSnapshot = 2 * 1024
)

// Options controls how ScanJPEG walks a file, replacing what the source
// material treats as mutable process-wide flags (spec §9 redesign note:
// configuration is a value threaded through the call, not global state).
type Options struct {
	// ParseImageData, when true, walks the SOS entropy-coded scan data
	// instead of stopping at the first SOS (spec §4.C / §8 property 1).
	ParseImageData bool
	// ScanSnapshotLimit bounds how many bytes of scan data are captured
	// into Result.ScanSnapshot. 0 uses defaultScanSnapshot.
	ScanSnapshotLimit int
}

func (o Options) snapshotLimit() int {
	if o.ScanSnapshotLimit > 0 {
		return o.ScanSnapshotLimit
	}
	return defaultScanSnapshot
}

// Result is everything ScanJPEG recovers from the segment walk.
type Result struct {
	Frame Frame

	HasExif    bool
	ExifHeader meta.ExifHeader

	JFIF []byte // raw APP0 payload, including the "JFIF\0" identifier
	XMP  []byte // raw APP1 payload, including the XMP identifier

	// ScanSnapshot holds up to Options.ScanSnapshotLimit bytes of the
	// first entropy-coded scan encountered, captured only when
	// Options.ParseImageData is set (preserving it otherwise would
	// require walking data the caller asked to skip).
	ScanSnapshot []byte

	// RestartEnabled records whether a DRI segment was seen, i.e.
	// whether restart markers (FFD0-FFD7) are legal within scan data.
	RestartEnabled bool
}

// jpegByteOrder: JPEG multi-byte lengths are always big-endian, regardless
// of the byte order a nested Exif TIFF header declares for its own values.
var jpegByteOrder = binary.BigEndian

// Markers refers to the second byte of a JPEG marker; the first is always
// 0xFF.
const (
	markerFirstByte = 0xFF

	// SOF markers - 13 variants (spec §4.F), excludes 0xC4 (DHT),
	// 0xC8 (JPG, reserved), 0xCC (DAC).
	markerSOF0  = 0xC0
	markerSOF1  = 0xC1
	markerSOF2  = 0xC2
	markerSOF3  = 0xC3
	markerSOF5  = 0xC5
	markerSOF6  = 0xC6
	markerSOF7  = 0xC7
	markerSOF9  = 0xC9
	markerSOF10 = 0xCA
	markerSOF11 = 0xCB
	markerSOF13 = 0xCD
	markerSOF14 = 0xCE
	markerSOF15 = 0xCF

	markerDHT = 0xC4
	markerSOI = 0xD8
	markerEOI = 0xD9
	markerSOS = 0xDA
	markerDQT = 0xDB
	markerDRI = 0xDD

	markerAPP0 = 0xE0
	markerAPP1 = 0xE1

	markerRestart0 = 0xD0
	markerRestart7 = 0xD7
)

func isSOFMarker(t byte) bool {
	switch t {
	case markerSOF0, markerSOF1, markerSOF2, markerSOF3,
		markerSOF5, markerSOF6, markerSOF7,
		markerSOF9, markerSOF10, markerSOF11,
		markerSOF13, markerSOF14, markerSOF15:
		return true
	}
	return false
}

func isRestartMarker(t byte) bool {
	return t >= markerRestart0 && t <= markerRestart7
}

// scanner holds the bufio.Reader plus the running "bytes consumed" count
// that doubles as the cursor's absolute file position - the position the
// Exif walker (package exif) later addresses its TIFF offsets from.
type scanner struct {
	br        *bufio.Reader
	discarded uint32
	opts      Options
	res       Result
}

// ScanJPEG scans r for JPEG marker segments from SOI through EOI (or
// through the first SOS, if opts.ParseImageData is false), dispatching
// SOFn, APP0, APP1 and DRI payloads into the returned Result.
//
// Returns ErrNotAJpeg if the stream doesn't open with SOI.
func ScanJPEG(r io.Reader, opts Options) (Result, error) {
	sc := &scanner{br: bufio.NewReaderSize(r, bufferSize), opts: opts}

	if err := sc.expectSOI(); err != nil {
		return sc.res, err
	}

	for {
		t, err := sc.nextMarkerType()
		if err != nil {
			if err == io.EOF {
				return sc.res, nil
			}
			return sc.res, err
		}

		switch {
		case t == markerEOI:
			return sc.res, nil
		case t == markerSOS:
			if err := sc.readSOS(); err != nil {
				return sc.res, err
			}
			if !sc.opts.ParseImageData {
				return sc.res, nil
			}
			if err := sc.walkScanData(); err != nil {
				return sc.res, err
			}
		case t == markerDRI:
			if err := sc.readDRI(); err != nil {
				return sc.res, err
			}
		case isSOFMarker(t):
			if err := sc.readSOF(t); err != nil {
				return sc.res, err
			}
		case t == markerAPP0:
			if err := sc.readAPP0(); err != nil {
				return sc.res, err
			}
		case t == markerAPP1:
			if err := sc.readAPP1(); err != nil {
				return sc.res, err
			}
		default:
			if err := sc.skipSegment(); err != nil {
				return sc.res, err
			}
		}
	}
}

func (sc *scanner) readByte() (byte, error) {
	b, err := sc.br.ReadByte()
	if err != nil {
		return 0, err
	}
	sc.discarded++
	return b, nil
}

func (sc *scanner) discard(n int) error {
	if n <= 0 {
		return nil
	}
	d, err := sc.br.Discard(n)
	sc.discarded += uint32(d)
	return err
}

func (sc *scanner) expectSOI() error {
	buf, err := sc.br.Peek(2)
	if err != nil || buf[0] != markerFirstByte || buf[1] != markerSOI {
		return ErrNotAJpeg
	}
	return sc.discard(2)
}

// nextMarkerType reads the 0xFF prefix and returns the marker type byte,
// skipping any 0xFF fill bytes in between (spec §4.C step 2).
func (sc *scanner) nextMarkerType() (byte, error) {
	m, err := sc.readByte()
	if err != nil {
		return 0, err
	}
	if m != markerFirstByte {
		return 0, ErrBadMarker
	}
	for {
		t, err := sc.readByte()
		if err != nil {
			return 0, err
		}
		if t == markerFirstByte {
			continue // fill byte; keep looking for the real type
		}
		return t, nil
	}
}

// readDeclaredLength reads the big-endian 2-byte segment length that
// follows every marker except SOI/EOI/SOS-entropy and the restart set.
func (sc *scanner) readDeclaredLength() (int, error) {
	buf, err := sc.br.Peek(2)
	if err != nil {
		return 0, err
	}
	if err := sc.discard(2); err != nil {
		return 0, err
	}
	return int(jpegByteOrder.Uint16(buf)), nil
}

// skipSegment reads a segment's declared length and discards its body.
func (sc *scanner) skipSegment() error {
	length, err := sc.readDeclaredLength()
	if err != nil {
		return err
	}
	return sc.discard(length - 2)
}

func (sc *scanner) readDRI() error {
	length, err := sc.readDeclaredLength()
	if err != nil {
		return err
	}
	sc.res.RestartEnabled = true
	return sc.discard(length - 2)
}

const jfifIdentifier = "JFIF\x00"

func (sc *scanner) readAPP0() error {
	length, err := sc.readDeclaredLength()
	if err != nil {
		return err
	}
	body := length - 2
	buf, err := sc.br.Peek(body)
	if err != nil {
		// Still must advance past whatever is actually readable.
		_ = sc.discard(body)
		return err
	}
	if len(buf) >= len(jfifIdentifier) && string(buf[:len(jfifIdentifier)]) == jfifIdentifier {
		sc.res.JFIF = append([]byte(nil), buf...)
	}
	return sc.discard(body)
}

const (
	exifIdentifier = "Exif\x00\x00"
	xmpPrefix      = "http"
	tiffHeaderSize = 8 // byte-order(2) + magic(2) + first-IFD offset(4)
)

func (sc *scanner) readAPP1() error {
	length, err := sc.readDeclaredLength()
	if err != nil {
		return err
	}
	body := length - 2

	peekLen := body
	if peekLen > len(exifIdentifier)+tiffHeaderSize {
		peekLen = len(exifIdentifier) + tiffHeaderSize
	}
	buf, err := sc.br.Peek(peekLen)
	if err != nil {
		_ = sc.discard(body)
		return err
	}

	switch {
	case len(buf) >= len(exifIdentifier) && string(buf[:len(exifIdentifier)]) == exifIdentifier:
		return sc.readExif(buf, body)
	case len(buf) >= len(xmpPrefix) && string(buf[:len(xmpPrefix)]) == xmpPrefix:
		return sc.readXMP(body)
	default:
		return sc.discard(body)
	}
}

func (sc *scanner) readExif(peeked []byte, body int) error {
	if err := sc.discard(len(exifIdentifier)); err != nil {
		return err
	}
	remaining := body - len(exifIdentifier)

	if remaining < tiffHeaderSize {
		_ = sc.discard(remaining)
		return ErrBadExifHeader
	}

	tiffBuf, err := sc.br.Peek(tiffHeaderSize)
	if err != nil {
		_ = sc.discard(remaining)
		return err
	}

	order := meta.BinaryOrder(tiffBuf)
	if order == nil {
		_ = sc.discard(remaining)
		return ErrBadByteOrder
	}
	if !meta.ValidTiffMagic(tiffBuf, order) {
		_ = sc.discard(remaining)
		return ErrBadTiffMagic
	}

	firstIfdOffset := order.Uint32(tiffBuf[4:8])
	sc.res.HasExif = true
	sc.res.ExifHeader = meta.NewExifHeader(order, firstIfdOffset, sc.discarded, uint32(remaining), imagetype.ImageJPEG)

	return sc.discard(remaining)
}

func (sc *scanner) readXMP(body int) error {
	buf, err := sc.br.Peek(body)
	if err != nil {
		_ = sc.discard(body)
		return err
	}
	sc.res.XMP = append([]byte(nil), buf...)
	return sc.discard(body)
}

// readSOS reads the scan header (length-prefixed, component selectors
// etc.) that precedes the implicit-length entropy-coded data.
func (sc *scanner) readSOS() error {
	length, err := sc.readDeclaredLength()
	if err != nil {
		return err
	}
	return sc.discard(length - 2)
}

// walkScanData advances past entropy-coded scan data, honoring marker
// stuffing (FF 00) and, if a DRI segment was seen, restart markers
// (FFD0-FFD7), leaving the cursor positioned at the 0xFF of the next real
// marker (spec §4.C "Scan walker", §8 property 7).
func (sc *scanner) walkScanData() error {
	limit := sc.opts.snapshotLimit()
	var snapshot []byte
	if sc.res.ScanSnapshot == nil {
		snapshot = make([]byte, 0, limit)
	}

	for {
		b, err := sc.br.ReadByte()
		if err != nil {
			return err
		}
		sc.discarded++
		if len(snapshot) < limit {
			snapshot = append(snapshot, b)
		}

		if b != markerFirstByte {
			continue
		}

		peek, err := sc.br.Peek(1)
		if err != nil {
			return err
		}
		next := peek[0]

		if next == 0x00 {
			// Stuffed byte: consume the 0x00, the literal 0xFF it
			// escapes stays in the scan data.
			if err := sc.discard(1); err != nil {
				return err
			}
			if len(snapshot) < limit {
				snapshot = append(snapshot, 0x00)
			}
			continue
		}
		if sc.res.RestartEnabled && isRestartMarker(next) {
			// Restart marker: legal in scan data, consume it and keep
			// walking the next entropy segment.
			if err := sc.discard(1); err != nil {
				return err
			}
			if len(snapshot) < limit {
				snapshot = append(snapshot, next)
			}
			continue
		}

		// A real marker: rewind the 0xFF we already consumed so the
		// main loop reads it again as the start of the next marker.
		sc.discarded--
		sc.rewindOne()
		if sc.res.ScanSnapshot == nil {
			sc.res.ScanSnapshot = snapshot
		}
		return nil
	}
}

// rewindOne puts the marker's 0xFF that walkScanData just consumed back in
// front of the stream. bufio.Reader.UnreadByte cannot do it here: the Peek
// that followed the ReadByte clears the reader's unread state. The reader
// is instead re-wrapped with that byte prepended.
func (sc *scanner) rewindOne() {
	sc.br = bufio.NewReaderSize(io.MultiReader(bytes.NewReader([]byte{markerFirstByte}), sc.br), bufferSize)
}
