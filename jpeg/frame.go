// Copyright (c) 2018-2022 Evan Oberholder. All rights reserved.
// Use of this source code is governed by a license that can be
// found in the LICENSE file.

package jpeg

import "fmt"

// Frame is the image geometry and sample layout declared by a JPEG SOFn
// marker (spec component F: "Frame parsing").
type Frame struct {
	Marker          byte
	BitsPerSample   uint8
	Height          uint16
	Width           uint16
	ColorComponents uint8
	IsColor         bool
}

// Encoding returns the human-readable name of the SOFn variant the frame
// was parsed from, e.g. "Baseline" for SOF0.
func (f Frame) Encoding() string {
	if name, ok := sofEncodingNames[f.Marker]; ok {
		return name
	}
	return "Unknown"
}

func (f Frame) String() string {
	return fmt.Sprintf("%s %dx%d %d-bit %d-component", f.Encoding(), f.Width, f.Height, f.BitsPerSample, f.ColorComponents)
}

// sofEncodingNames names all thirteen SOFn variants (spec §4.F), excluding
// DHT (0xC4), the reserved JPG marker (0xC8), and DAC (0xCC), none of
// which are frame headers.
var sofEncodingNames = map[byte]string{
	markerSOF0:  "Baseline",
	markerSOF1:  "Extended Sequential",
	markerSOF2:  "Progressive",
	markerSOF3:  "Lossless",
	markerSOF5:  "Differential Sequential",
	markerSOF6:  "Differential Progressive",
	markerSOF7:  "Differential Lossless",
	markerSOF9:  "Extended Sequential Arithmetic",
	markerSOF10: "Progressive Arithmetic",
	markerSOF11: "Lossless Arithmetic",
	markerSOF13: "Differential Sequential Arithmetic",
	markerSOF14: "Differential Progressive Arithmetic",
	markerSOF15: "Differential Lossless Arithmetic",
}

// readSOF parses an SOFn segment into sc.res.Frame (spec §4.F): length(2),
// bits-per-sample(1), height(2), width(2), component-count(1), then
// component-count x 3-byte component specifiers (id, sampling, quant
// table - unused beyond counting components here).
func (sc *scanner) readSOF(marker byte) error {
	length, err := sc.readDeclaredLength()
	if err != nil {
		return err
	}
	body := length - 2

	buf, err := sc.br.Peek(body)
	if err != nil {
		_ = sc.discard(body)
		return err
	}
	if len(buf) < 6 {
		_ = sc.discard(body)
		return ErrUnexpectedEnd
	}

	components := buf[5]
	sc.res.Frame = Frame{
		Marker:          marker,
		BitsPerSample:   buf[0],
		Height:          jpegByteOrder.Uint16(buf[1:3]),
		Width:           jpegByteOrder.Uint16(buf[3:5]),
		ColorComponents: components,
		IsColor:         components == 3,
	}

	return sc.discard(body)
}
