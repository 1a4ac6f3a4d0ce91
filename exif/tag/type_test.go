package tag_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/riftlabs/jpegmeta/exif/tag"
)

func TestType_Size(t *testing.T) {
	cases := []struct {
		typ  tag.Type
		size int
	}{
		{tag.TypeByte, 1},
		{tag.TypeASCII, 1},
		{tag.TypeShort, 2},
		{tag.TypeLong, 4},
		{tag.TypeRational, 8},
		{tag.TypeSByte, 1},
		{tag.TypeUndefined, 1},
		{tag.TypeSShort, 2},
		{tag.TypeSLong, 4},
		{tag.TypeSRational, 8},
		{tag.TypeFloat, 4},
		{tag.TypeDouble, 8},
	}
	for _, c := range cases {
		size, ok := c.typ.Size()
		require.True(t, ok, c.typ.String())
		require.Equal(t, c.size, size, c.typ.String())
	}
}

func TestType_Invalid(t *testing.T) {
	unknown := tag.Type(999)
	_, ok := unknown.Size()
	require.False(t, ok)
	require.False(t, unknown.Valid())
}
