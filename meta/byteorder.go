package meta

import "encoding/binary"

// tiffMagic is the fixed value (42) that must follow the byte-order mark
// in a TIFF header, read in that header's own declared order.
const tiffMagic = 0x002A

// BinaryOrder inspects the first two bytes of a peeked TIFF header ("II"
// for Intel/little-endian, "MM" for Motorola/big-endian; spec §4.D step 3)
// and returns the corresponding binary.ByteOrder. It returns nil if
// neither mark matches, so callers can distinguish "unknown order" from a
// valid decode.
func BinaryOrder(buf []byte) binary.ByteOrder {
	if len(buf) < 2 {
		return nil
	}
	switch {
	case buf[0] == 0x49 && buf[1] == 0x49:
		return binary.LittleEndian
	case buf[0] == 0x4D && buf[1] == 0x4D:
		return binary.BigEndian
	default:
		return nil
	}
}

// ValidTiffMagic reports whether buf[2:4], decoded in order, equals the
// required TIFF magic number 42 (spec §4.D step 4).
func ValidTiffMagic(buf []byte, order binary.ByteOrder) bool {
	if len(buf) < 4 || order == nil {
		return false
	}
	return order.Uint16(buf[2:4]) == tiffMagic
}
