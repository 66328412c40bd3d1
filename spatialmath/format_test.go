package spatialmath

import (
	"math"
	"testing"

	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
	"go.viam.com/test"
)

func TestFormatReal(t *testing.T) {
	for _, tc := range []struct {
		value    float64
		expected string
	}{
		{1, "1.0"},
		{0, "0.0"},
		{math.Copysign(0, -1), "-0.0"},
		{0.5, "0.5"},
		{-12.25, "-12.25"},
		{math.NaN(), "NaN"},
		{math.Inf(1), "+Inf"},
	} {
		test.That(t, formatReal(tc.value), test.ShouldEqual, tc.expected)
	}
	test.That(t, formatRealPrecision(1, 3), test.ShouldEqual, "1.000")
	test.That(t, formatRealPrecision(0.1, -1), test.ShouldEqual, "0.1")
	test.That(t, formatRealPrecision(-1e-9, 3), test.ShouldEqual, "0.000")
	test.That(t, formatRealPrecision(math.Copysign(0, -1), 2), test.ShouldEqual, "0.00")
	test.That(t, formatRealPrecision(-0.0006, 3), test.ShouldEqual, "-0.001")
}

func TestVectorText(t *testing.T) {
	v := r3.Vector{X: 1, Y: -0.25, Z: 1e-12}
	test.That(t, FormatVector(v, -1), test.ShouldEqual, "[1.0, -0.25, 0.000000000001]")
	test.That(t, FormatVector(v, 2), test.ShouldEqual, "[1.00, -0.25, 0.00]")

	parsed, err := ParseVector(FormatVector(v, -1))
	test.That(t, err, test.ShouldBeNil)
	test.That(t, parsed, test.ShouldResemble, v)

	for _, bad := range []string{"[1, 2]", "[1, inf, 0]", "[NaN, 0, 0]", "[1, 2, +Inf]"} {
		_, err = ParseVector(bad)
		test.That(t, errors.Is(err, ErrDomainViolation), test.ShouldBeTrue)
	}
}

func TestSplitBracketed(t *testing.T) {
	fields, err := splitBracketed("[[1, 2], [3], 4]")
	test.That(t, err, test.ShouldBeNil)
	test.That(t, fields, test.ShouldResemble, []string{"[1, 2]", "[3]", "4"})

	fields, err = splitBracketed(" [] ")
	test.That(t, err, test.ShouldBeNil)
	test.That(t, fields, test.ShouldBeEmpty)

	for _, bad := range []string{"1, 2", "[1, 2", "[[1, 2]", "[1]], [2]"} {
		_, err := splitBracketed(bad)
		test.That(t, err, test.ShouldNotBeNil)
	}
}

func TestParseRealList(t *testing.T) {
	values, err := parseRealList("[1.5, -2, 3e2]", 3)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, values, test.ShouldResemble, []float64{1.5, -2, 300})

	_, err = parseRealList("[1, 2]", 3)
	test.That(t, err, test.ShouldNotBeNil)
	_, err = parseRealList("[1, two, 3]", 3)
	test.That(t, err, test.ShouldNotBeNil)
}
