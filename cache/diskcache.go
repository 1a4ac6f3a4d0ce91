package cache

import (
	"os"

	"github.com/pkg/errors"
	"github.com/tinylib/msgp/msgp"
)

// Snapshot is the disk-persisted form of a parsed file's metadata: a
// msgp-encodable mirror of jpegmeta.RawMetadata (every field except
// ScanSnapshot, which is not kept) plus enough of each Tag's
// internals (ID, Type, ValueOffset, Raw, byte order) to reconstruct it via
// tag.New on load, since tag.Tag itself keeps those fields unexported.
type Snapshot struct {
	Path string

	Frame FrameSnapshot

	ImageEntries     []TagSnapshot
	ThumbnailEntries []TagSnapshot

	Thumbnail          []byte
	ThumbnailHeuristic bool

	JFIF []byte
	XMP  []byte

	Warnings []string
}

// FrameSnapshot mirrors jpeg.Frame.
type FrameSnapshot struct {
	Marker          uint8
	BitsPerSample   uint8
	Height          uint16
	Width           uint16
	ColorComponents uint8
	IsColor         bool
}

// TagSnapshot mirrors the fields tag.New needs to rebuild a tag.Tag.
type TagSnapshot struct {
	ID          uint16
	Type        uint16
	UnitCount   uint32
	ValueOffset uint32
	Raw         []byte
	BigEndian   bool
}

// DiskCache persists Snapshots as one msgp-encoded file per key under dir,
// the disk-backed counterpart to the in-memory Cache (spec §9: cache is a
// "separable concern"; this variant exists to give tinylib/msgp a real
// caller instead of a declared-but-unused dependency).
type DiskCache struct {
	dir string
}

// NewDisk returns a DiskCache rooted at dir. The directory must already
// exist.
func NewDisk(dir string) *DiskCache {
	return &DiskCache{dir: dir}
}

func (d *DiskCache) path(key string) string {
	return d.dir + "/" + sanitizeKey(key) + ".msgp"
}

func sanitizeKey(key string) string {
	out := make([]byte, len(key))
	for i := 0; i < len(key); i++ {
		switch c := key[i]; c {
		case '/', '\\', ':':
			out[i] = '_'
		default:
			out[i] = c
		}
	}
	return string(out)
}

// Put msgp-encodes snap and writes it to dir/<key>.msgp.
func (d *DiskCache) Put(key string, snap *Snapshot) error {
	buf, err := snap.MarshalMsg(nil)
	if err != nil {
		return errors.Wrap(err, "cache: marshaling snapshot")
	}
	return errors.Wrap(os.WriteFile(d.path(key), buf, 0o644), "cache: writing snapshot")
}

// Get reads and msgp-decodes the snapshot stored for key, if any.
func (d *DiskCache) Get(key string) (*Snapshot, bool, error) {
	buf, err := os.ReadFile(d.path(key))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, false, nil
		}
		return nil, false, errors.Wrap(err, "cache: reading snapshot")
	}
	snap := new(Snapshot)
	if _, err := snap.UnmarshalMsg(buf); err != nil {
		return nil, false, errors.Wrap(err, "cache: unmarshaling snapshot")
	}
	return snap, true, nil
}

// --- hand-written msgp codec (no code generation; see DESIGN.md) ---

const (
	keyPath               = "path"
	keyFrame              = "frame"
	keyImageEntries       = "image"
	keyThumbnailEntries   = "thumbnail_entries"
	keyThumbnail          = "thumbnail"
	keyThumbnailHeuristic = "thumbnail_heuristic"
	keyJFIF               = "jfif"
	keyXMP                = "xmp"
	keyWarnings           = "warnings"

	keyFrameMarker     = "marker"
	keyFrameBits       = "bits"
	keyFrameHeight     = "height"
	keyFrameWidth      = "width"
	keyFrameComponents = "components"
	keyFrameIsColor    = "is_color"

	keyTagID          = "id"
	keyTagType        = "type"
	keyTagUnitCount   = "count"
	keyTagValueOffset = "offset"
	keyTagRaw         = "raw"
	keyTagBigEndian   = "big_endian"
)

// MarshalMsg appends s's msgp encoding to b and returns the result,
// satisfying msgp.Marshaler.
func (s *Snapshot) MarshalMsg(b []byte) ([]byte, error) {
	o := msgp.AppendMapHeader(b, 9)
	o = msgp.AppendString(o, keyPath)
	o = msgp.AppendString(o, s.Path)

	o = msgp.AppendString(o, keyFrame)
	o = s.Frame.appendMsg(o)

	o = msgp.AppendString(o, keyImageEntries)
	o = appendTagSnapshots(o, s.ImageEntries)

	o = msgp.AppendString(o, keyThumbnailEntries)
	o = appendTagSnapshots(o, s.ThumbnailEntries)

	o = msgp.AppendString(o, keyThumbnail)
	o = msgp.AppendBytes(o, s.Thumbnail)

	o = msgp.AppendString(o, keyThumbnailHeuristic)
	o = msgp.AppendBool(o, s.ThumbnailHeuristic)

	o = msgp.AppendString(o, keyJFIF)
	o = msgp.AppendBytes(o, s.JFIF)

	o = msgp.AppendString(o, keyXMP)
	o = msgp.AppendBytes(o, s.XMP)

	o = msgp.AppendString(o, keyWarnings)
	o = msgp.AppendArrayHeader(o, uint32(len(s.Warnings)))
	for _, w := range s.Warnings {
		o = msgp.AppendString(o, w)
	}

	return o, nil
}

// UnmarshalMsg decodes a Snapshot from the front of bts and returns the
// remaining bytes, satisfying msgp.Unmarshaler.
func (s *Snapshot) UnmarshalMsg(bts []byte) ([]byte, error) {
	n, bts, err := msgp.ReadMapHeaderBytes(bts)
	if err != nil {
		return bts, errors.Wrap(err, "cache: reading snapshot map header")
	}

	for i := uint32(0); i < n; i++ {
		var key string
		key, bts, err = msgp.ReadStringBytes(bts)
		if err != nil {
			return bts, errors.Wrap(err, "cache: reading snapshot field name")
		}

		switch key {
		case keyPath:
			s.Path, bts, err = msgp.ReadStringBytes(bts)
		case keyFrame:
			bts, err = s.Frame.unmarshalMsg(bts)
		case keyImageEntries:
			s.ImageEntries, bts, err = readTagSnapshots(bts)
		case keyThumbnailEntries:
			s.ThumbnailEntries, bts, err = readTagSnapshots(bts)
		case keyThumbnail:
			s.Thumbnail, bts, err = msgp.ReadBytesBytes(bts, nil)
		case keyThumbnailHeuristic:
			s.ThumbnailHeuristic, bts, err = msgp.ReadBoolBytes(bts)
		case keyJFIF:
			s.JFIF, bts, err = msgp.ReadBytesBytes(bts, nil)
		case keyXMP:
			s.XMP, bts, err = msgp.ReadBytesBytes(bts, nil)
		case keyWarnings:
			var wn uint32
			wn, bts, err = msgp.ReadArrayHeaderBytes(bts)
			if err != nil {
				break
			}
			s.Warnings = make([]string, wn)
			for j := uint32(0); j < wn; j++ {
				s.Warnings[j], bts, err = msgp.ReadStringBytes(bts)
				if err != nil {
					break
				}
			}
		default:
			bts, err = msgp.Skip(bts)
		}
		if err != nil {
			return bts, errors.Wrapf(err, "cache: reading snapshot field %q", key)
		}
	}

	return bts, nil
}

func (f FrameSnapshot) appendMsg(o []byte) []byte {
	o = msgp.AppendMapHeader(o, 6)
	o = msgp.AppendString(o, keyFrameMarker)
	o = msgp.AppendUint8(o, f.Marker)
	o = msgp.AppendString(o, keyFrameBits)
	o = msgp.AppendUint8(o, f.BitsPerSample)
	o = msgp.AppendString(o, keyFrameHeight)
	o = msgp.AppendUint16(o, f.Height)
	o = msgp.AppendString(o, keyFrameWidth)
	o = msgp.AppendUint16(o, f.Width)
	o = msgp.AppendString(o, keyFrameComponents)
	o = msgp.AppendUint8(o, f.ColorComponents)
	o = msgp.AppendString(o, keyFrameIsColor)
	o = msgp.AppendBool(o, f.IsColor)
	return o
}

func (f *FrameSnapshot) unmarshalMsg(bts []byte) ([]byte, error) {
	n, bts, err := msgp.ReadMapHeaderBytes(bts)
	if err != nil {
		return bts, err
	}
	for i := uint32(0); i < n; i++ {
		var key string
		key, bts, err = msgp.ReadStringBytes(bts)
		if err != nil {
			return bts, err
		}
		switch key {
		case keyFrameMarker:
			f.Marker, bts, err = msgp.ReadUint8Bytes(bts)
		case keyFrameBits:
			f.BitsPerSample, bts, err = msgp.ReadUint8Bytes(bts)
		case keyFrameHeight:
			f.Height, bts, err = msgp.ReadUint16Bytes(bts)
		case keyFrameWidth:
			f.Width, bts, err = msgp.ReadUint16Bytes(bts)
		case keyFrameComponents:
			f.ColorComponents, bts, err = msgp.ReadUint8Bytes(bts)
		case keyFrameIsColor:
			f.IsColor, bts, err = msgp.ReadBoolBytes(bts)
		default:
			bts, err = msgp.Skip(bts)
		}
		if err != nil {
			return bts, err
		}
	}
	return bts, nil
}

func appendTagSnapshots(o []byte, tags []TagSnapshot) []byte {
	o = msgp.AppendArrayHeader(o, uint32(len(tags)))
	for _, t := range tags {
		o = t.appendMsg(o)
	}
	return o
}

func readTagSnapshots(bts []byte) ([]TagSnapshot, []byte, error) {
	n, bts, err := msgp.ReadArrayHeaderBytes(bts)
	if err != nil {
		return nil, bts, err
	}
	out := make([]TagSnapshot, n)
	for i := uint32(0); i < n; i++ {
		bts, err = out[i].unmarshalMsg(bts)
		if err != nil {
			return out, bts, err
		}
	}
	return out, bts, nil
}

func (t TagSnapshot) appendMsg(o []byte) []byte {
	o = msgp.AppendMapHeader(o, 6)
	o = msgp.AppendString(o, keyTagID)
	o = msgp.AppendUint16(o, t.ID)
	o = msgp.AppendString(o, keyTagType)
	o = msgp.AppendUint16(o, t.Type)
	o = msgp.AppendString(o, keyTagUnitCount)
	o = msgp.AppendUint32(o, t.UnitCount)
	o = msgp.AppendString(o, keyTagValueOffset)
	o = msgp.AppendUint32(o, t.ValueOffset)
	o = msgp.AppendString(o, keyTagRaw)
	o = msgp.AppendBytes(o, t.Raw)
	o = msgp.AppendString(o, keyTagBigEndian)
	o = msgp.AppendBool(o, t.BigEndian)
	return o
}

func (t *TagSnapshot) unmarshalMsg(bts []byte) ([]byte, error) {
	n, bts, err := msgp.ReadMapHeaderBytes(bts)
	if err != nil {
		return bts, err
	}
	for i := uint32(0); i < n; i++ {
		var key string
		key, bts, err = msgp.ReadStringBytes(bts)
		if err != nil {
			return bts, err
		}
		switch key {
		case keyTagID:
			t.ID, bts, err = msgp.ReadUint16Bytes(bts)
		case keyTagType:
			t.Type, bts, err = msgp.ReadUint16Bytes(bts)
		case keyTagUnitCount:
			t.UnitCount, bts, err = msgp.ReadUint32Bytes(bts)
		case keyTagValueOffset:
			t.ValueOffset, bts, err = msgp.ReadUint32Bytes(bts)
		case keyTagRaw:
			t.Raw, bts, err = msgp.ReadBytesBytes(bts, nil)
		case keyTagBigEndian:
			t.BigEndian, bts, err = msgp.ReadBoolBytes(bts)
		default:
			bts, err = msgp.Skip(bts)
		}
		if err != nil {
			return bts, err
		}
	}
	return bts, nil
}
