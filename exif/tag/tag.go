// Package tag implements the Exif typed value model: the twelve TIFF
// physical types, the two rational forms, and the Tag container (spec
// component B) together with its demand-decoding accessors (component E's
// "Accessors on Entry").
package tag

import (
	"encoding/binary"
	"math"

	"github.com/pkg/errors"
)

// ErrTypeMismatch is returned by the strict TryAsXxx accessors when a Tag's
// declared Type does not match the accessor being called.
var ErrTypeMismatch = errors.New("tag: type mismatch")

// Tag is the materialized form of a TIFF IFD entry (spec's Entry): a tag
// ID, its declared physical type, and the owned bytes backing UnitCount
// values of that type. Accessors decode Raw on demand; they never mutate
// it, so a Tag is safe to share after resolution.
//
// Invariant: len(Raw) == UnitCount * size(Type) once a Tag has left the
// resolver (exif.reader.resolveEntry).
type Tag struct {
	id          ID
	tagType     Type
	UnitCount   uint32
	valueOffset uint32 // original TIFF "value or offset" slot, kept for diagnostics
	Raw         []byte
	order       binary.ByteOrder
}

// New builds a Tag. order must be the byte order the TIFF header declared;
// accessors use it to decode Raw regardless of how Raw itself was sourced
// (inline four bytes or an out-of-line read), satisfying the endianness
// law in spec §8.
func New(id ID, t Type, unitCount uint32, raw []byte, valueOffset uint32, order binary.ByteOrder) Tag {
	return Tag{id: id, tagType: t, UnitCount: unitCount, Raw: raw, valueOffset: valueOffset, order: order}
}

// ID returns the tag's 16-bit identifier.
func (t Tag) ID() ID { return t.id }

// Type returns the tag's declared physical type.
func (t Tag) Type() Type { return t.tagType }

// ValueOffset returns the raw on-wire "value or offset" slot this Tag was
// resolved from, useful for diagnosing cameras that mis-encode pointers.
func (t Tag) ValueOffset() uint32 { return t.valueOffset }

// ByteOrder returns the TIFF byte order this Tag's accessors decode Raw
// with.
func (t Tag) ByteOrder() binary.ByteOrder { return t.order }

// IsEmpty reports whether the tag carries no decoded bytes, which happens
// when the resolver dropped it (e.g. an out-of-range offset).
func (t Tag) IsEmpty() bool { return len(t.Raw) == 0 }

func (t Tag) elemAt(i int, size int) ([]byte, bool) {
	start := i * size
	end := start + size
	if i < 0 || end > len(t.Raw) {
		return nil, false
	}
	return t.Raw[start:end], true
}

// count returns how many whole elements of size bytes Raw holds.
func (t Tag) count(size int) int {
	if size <= 0 {
		return 0
	}
	return len(t.Raw) / size
}

// --- Byte / SByte ---

// TryAsByte returns the first Byte value, or ErrTypeMismatch.
func (t Tag) TryAsByte() (uint8, error) {
	if t.tagType != TypeByte || len(t.Raw) < 1 {
		return 0, ErrTypeMismatch
	}
	return t.Raw[0], nil
}

// AsByte returns the first Byte value, or 0 on type mismatch.
func (t Tag) AsByte() uint8 {
	v, _ := t.TryAsByte()
	return v
}

// TryAsSByte returns the first SByte value, or ErrTypeMismatch.
func (t Tag) TryAsSByte() (int8, error) {
	if t.tagType != TypeSByte || len(t.Raw) < 1 {
		return 0, ErrTypeMismatch
	}
	return int8(t.Raw[0]), nil
}

// AsSByte returns the first SByte value, or 0 on type mismatch.
func (t Tag) AsSByte() int8 {
	v, _ := t.TryAsSByte()
	return v
}

// --- Ascii / Undefined ---

// TryAsASCII decodes the tag as a NUL-trimmed ASCII string. Accepts
// TypeASCII, TypeUndefined and TypeByte (many cameras mis-tag ASCII fields
// as Undefined or Byte), matching the teacher's GetTagValue dispatch.
func (t Tag) TryAsASCII() (string, error) {
	if t.tagType != TypeASCII && t.tagType != TypeUndefined && t.tagType != TypeByte {
		return "", ErrTypeMismatch
	}
	s := t.Raw
	for len(s) > 0 && s[len(s)-1] == 0x00 {
		s = s[:len(s)-1]
	}
	return string(s), nil
}

// AsASCII returns the decoded string, or "" on type mismatch.
func (t Tag) AsASCII() string {
	v, _ := t.TryAsASCII()
	return v
}

// TryAsUndefined returns the raw bytes unchanged, or ErrTypeMismatch if the
// tag isn't TypeUndefined.
func (t Tag) TryAsUndefined() ([]byte, error) {
	if t.tagType != TypeUndefined {
		return nil, ErrTypeMismatch
	}
	return t.Raw, nil
}

// AsUndefined returns the raw bytes, or nil on type mismatch.
func (t Tag) AsUndefined() []byte {
	v, _ := t.TryAsUndefined()
	return v
}

// --- Short / SShort ---

// TryAsShorts decodes all Short values.
func (t Tag) TryAsShorts() ([]uint16, error) {
	if t.tagType != TypeShort {
		return nil, ErrTypeMismatch
	}
	n := t.count(2)
	out := make([]uint16, n)
	for i := 0; i < n; i++ {
		b, _ := t.elemAt(i, 2)
		out[i] = t.order.Uint16(b)
	}
	return out, nil
}

// TryAsShort decodes the first Short value.
func (t Tag) TryAsShort() (uint16, error) {
	vs, err := t.TryAsShorts()
	if err != nil || len(vs) == 0 {
		return 0, ErrTypeMismatch
	}
	return vs[0], nil
}

// AsShort returns the first Short value, or 0 on type mismatch.
func (t Tag) AsShort() uint16 {
	v, _ := t.TryAsShort()
	return v
}

// TryAsSShorts decodes all SShort values.
func (t Tag) TryAsSShorts() ([]int16, error) {
	if t.tagType != TypeSShort {
		return nil, ErrTypeMismatch
	}
	n := t.count(2)
	out := make([]int16, n)
	for i := 0; i < n; i++ {
		b, _ := t.elemAt(i, 2)
		out[i] = int16(t.order.Uint16(b))
	}
	return out, nil
}

// AsSShort returns the first SShort value, or 0 on type mismatch.
func (t Tag) AsSShort() int16 {
	vs, err := t.TryAsSShorts()
	if err != nil || len(vs) == 0 {
		return 0
	}
	return vs[0]
}

// --- Long / SLong ---

// TryAsLongs decodes all Long values.
func (t Tag) TryAsLongs() ([]uint32, error) {
	if t.tagType != TypeLong {
		return nil, ErrTypeMismatch
	}
	n := t.count(4)
	out := make([]uint32, n)
	for i := 0; i < n; i++ {
		b, _ := t.elemAt(i, 4)
		out[i] = t.order.Uint32(b)
	}
	return out, nil
}

// TryAsLong decodes the first Long value.
func (t Tag) TryAsLong() (uint32, error) {
	vs, err := t.TryAsLongs()
	if err != nil || len(vs) == 0 {
		return 0, ErrTypeMismatch
	}
	return vs[0], nil
}

// AsLong returns the first Long value, or 0 on type mismatch.
func (t Tag) AsLong() uint32 {
	v, _ := t.TryAsLong()
	return v
}

// TryAsSLongs decodes all SLong values.
func (t Tag) TryAsSLongs() ([]int32, error) {
	if t.tagType != TypeSLong {
		return nil, ErrTypeMismatch
	}
	n := t.count(4)
	out := make([]int32, n)
	for i := 0; i < n; i++ {
		b, _ := t.elemAt(i, 4)
		out[i] = int32(t.order.Uint32(b))
	}
	return out, nil
}

// AsSLong returns the first SLong value, or 0 on type mismatch.
func (t Tag) AsSLong() int32 {
	vs, err := t.TryAsSLongs()
	if err != nil || len(vs) == 0 {
		return 0
	}
	return vs[0]
}

// --- ShortOrLong: a declared-type-aware integer accessor (spec §9 ISO note) ---

// TryAsUint decodes a Short or Long tag as a uint32, whichever type it
// actually is. Cameras disagree on whether ISO is Short or Long; callers
// that don't care which should use this instead of TryAsShort.
func (t Tag) TryAsUint() (uint32, error) {
	switch t.tagType {
	case TypeShort:
		v, err := t.TryAsShort()
		return uint32(v), err
	case TypeLong:
		return t.TryAsLong()
	default:
		return 0, ErrTypeMismatch
	}
}

// AsUint returns the first Short or Long value widened to uint32, or 0.
func (t Tag) AsUint() uint32 {
	v, _ := t.TryAsUint()
	return v
}

// --- Rational / SRational ---

// TryAsRationals decodes all Rational values.
func (t Tag) TryAsRationals() ([]Rational, error) {
	if t.tagType != TypeRational {
		return nil, ErrTypeMismatch
	}
	n := t.count(8)
	out := make([]Rational, n)
	for i := 0; i < n; i++ {
		b, _ := t.elemAt(i, 8)
		out[i] = Rational{Numerator: t.order.Uint32(b[0:4]), Denominator: t.order.Uint32(b[4:8])}
	}
	return out, nil
}

// TryAsRational decodes the first Rational value.
func (t Tag) TryAsRational() (Rational, error) {
	vs, err := t.TryAsRationals()
	if err != nil || len(vs) == 0 {
		return Rational{}, ErrTypeMismatch
	}
	return vs[0], nil
}

// AsRational returns the first Rational value, or the zero Rational.
func (t Tag) AsRational() Rational {
	v, _ := t.TryAsRational()
	return v
}

// TryAsSRationals decodes all SRational values.
func (t Tag) TryAsSRationals() ([]SRational, error) {
	if t.tagType != TypeSRational {
		return nil, ErrTypeMismatch
	}
	n := t.count(8)
	out := make([]SRational, n)
	for i := 0; i < n; i++ {
		b, _ := t.elemAt(i, 8)
		out[i] = SRational{Numerator: int32(t.order.Uint32(b[0:4])), Denominator: int32(t.order.Uint32(b[4:8]))}
	}
	return out, nil
}

// TryAsSRational decodes the first SRational value.
func (t Tag) TryAsSRational() (SRational, error) {
	vs, err := t.TryAsSRationals()
	if err != nil || len(vs) == 0 {
		return SRational{}, ErrTypeMismatch
	}
	return vs[0], nil
}

// AsSRational returns the first SRational value, or the zero SRational.
func (t Tag) AsSRational() SRational {
	v, _ := t.TryAsSRational()
	return v
}

// --- Float / Double ---

// TryAsFloats decodes all Float (IEEE-754 single precision) values.
func (t Tag) TryAsFloats() ([]float32, error) {
	if t.tagType != TypeFloat {
		return nil, ErrTypeMismatch
	}
	n := t.count(4)
	out := make([]float32, n)
	for i := 0; i < n; i++ {
		b, _ := t.elemAt(i, 4)
		out[i] = math.Float32frombits(t.order.Uint32(b))
	}
	return out, nil
}

// AsFloat returns the first Float value, or 0 on type mismatch.
func (t Tag) AsFloat() float32 {
	vs, err := t.TryAsFloats()
	if err != nil || len(vs) == 0 {
		return 0
	}
	return vs[0]
}

// TryAsDoubles decodes all Double (IEEE-754 double precision) values.
func (t Tag) TryAsDoubles() ([]float64, error) {
	if t.tagType != TypeDouble {
		return nil, ErrTypeMismatch
	}
	n := t.count(8)
	out := make([]float64, n)
	for i := 0; i < n; i++ {
		b, _ := t.elemAt(i, 8)
		out[i] = math.Float64frombits(t.order.Uint64(b))
	}
	return out, nil
}

// AsDouble returns the first Double value, or 0 on type mismatch.
func (t Tag) AsDouble() float64 {
	vs, err := t.TryAsDoubles()
	if err != nil || len(vs) == 0 {
		return 0
	}
	return vs[0]
}

// --- generic dispatch, for callers that don't know a tag's type ahead of time ---

const asciiDisplayLimit = 256

// Value decodes t according to its declared Type and returns it as an
// interface{}. Short, SShort, Long and SLong give a scalar when UnitCount
// is 1 and a slice otherwise; Rational, SRational, Float and Double always
// give a slice; Byte, Ascii and Undefined give a string cut to 256 bytes;
// SByte gives its first value. Intended for generic dumping (e.g. the
// CLI's JSON output); prefer
// the typed AsXxx/TryAsXxx accessors in performance-sensitive code.
func (t Tag) Value() interface{} {
	switch t.tagType {
	case TypeASCII, TypeUndefined, TypeByte:
		s := t.AsASCII()
		if len(s) > asciiDisplayLimit {
			s = s[:asciiDisplayLimit]
		}
		return s
	case TypeShort:
		if t.UnitCount > 1 {
			v, _ := t.TryAsShorts()
			return v
		}
		return t.AsShort()
	case TypeSShort:
		if t.UnitCount > 1 {
			v, _ := t.TryAsSShorts()
			return v
		}
		return t.AsSShort()
	case TypeLong:
		if t.UnitCount > 1 {
			v, _ := t.TryAsLongs()
			return v
		}
		return t.AsLong()
	case TypeSLong:
		if t.UnitCount > 1 {
			v, _ := t.TryAsSLongs()
			return v
		}
		return t.AsSLong()
	case TypeRational:
		v, _ := t.TryAsRationals()
		return v
	case TypeSRational:
		v, _ := t.TryAsSRationals()
		return v
	case TypeFloat:
		v, _ := t.TryAsFloats()
		return v
	case TypeDouble:
		v, _ := t.TryAsDoubles()
		return v
	case TypeSByte:
		return t.AsSByte()
	default:
		return nil
	}
}
