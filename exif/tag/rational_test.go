package tag_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/riftlabs/jpegmeta/exif/tag"
)

func TestRational_ToDouble(t *testing.T) {
	r := tag.Rational{Numerator: 1, Denominator: 2}
	require.Equal(t, 0.5, r.ToDouble())
}

func TestRational_ZeroDenominator(t *testing.T) {
	r := tag.Rational{Numerator: 7, Denominator: 0}
	require.Equal(t, float64(0), r.ToDouble())
	require.Equal(t, int32(0), r.ToInt32())
}

func TestSRational_Negative(t *testing.T) {
	r := tag.SRational{Numerator: -3, Denominator: 2}
	require.Equal(t, -1.5, r.ToDouble())
}

func TestSRational_ZeroDenominator(t *testing.T) {
	r := tag.SRational{Numerator: -3, Denominator: 0}
	require.Equal(t, float64(0), r.ToDouble())
	require.Equal(t, int32(0), r.ToInt32())
}
