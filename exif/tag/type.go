package tag

import "fmt"

// Type is one of the Exif/TIFF physical value types. The numeric values
// match the wire encoding used in a TIFF IFD entry's "type" field.
type Type uint16

// The twelve TIFF 6.0 / Exif physical types.
const (
	TypeByte      Type = 1
	TypeASCII     Type = 2
	TypeShort     Type = 3
	TypeLong      Type = 4
	TypeRational  Type = 5
	TypeSByte     Type = 6
	TypeUndefined Type = 7
	TypeSShort    Type = 8
	TypeSLong     Type = 9
	TypeSRational Type = 10
	TypeFloat     Type = 11
	TypeDouble    Type = 12

	// TypeASCIINoNul is not a wire type; it marks an Ascii-typed Tag whose
	// trailing NUL should be preserved rather than trimmed. Resolver code
	// never emits it, and no accessor decodes it: TryAsASCII reports
	// ErrTypeMismatch for a Tag of this type.
	TypeASCIINoNul Type = 0xFF01
)

// sizes holds the byte width of a single value of each wire type, per
// spec: Byte/Ascii/SByte/Undefined=1, Short/SShort=2, Long/SLong/Float=4,
// Rational/SRational/Double=8.
var sizes = map[Type]int{
	TypeByte:      1,
	TypeASCII:     1,
	TypeShort:     2,
	TypeLong:      4,
	TypeRational:  8,
	TypeSByte:     1,
	TypeUndefined: 1,
	TypeSShort:    2,
	TypeSLong:     4,
	TypeSRational: 8,
	TypeFloat:     4,
	TypeDouble:    8,
}

// Size returns the byte width of a single value of this type, and false if
// the type code is not one of the twelve recognized physical types.
func (t Type) Size() (int, bool) {
	n, ok := sizes[t]
	return n, ok
}

// Valid reports whether t is one of the twelve wire type codes. It does
// not accept the synthetic TypeASCIINoNul marker.
func (t Type) Valid() bool {
	_, ok := sizes[t]
	return ok
}

func (t Type) String() string {
	switch t {
	case TypeByte:
		return "Byte"
	case TypeASCII:
		return "Ascii"
	case TypeShort:
		return "Short"
	case TypeLong:
		return "Long"
	case TypeRational:
		return "Rational"
	case TypeSByte:
		return "SByte"
	case TypeUndefined:
		return "Undefined"
	case TypeSShort:
		return "SShort"
	case TypeSLong:
		return "SLong"
	case TypeSRational:
		return "SRational"
	case TypeFloat:
		return "Float"
	case TypeDouble:
		return "Double"
	default:
		return fmt.Sprintf("Type(%d)", uint16(t))
	}
}
