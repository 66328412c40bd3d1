package spatialmath

import (
	"math"
	"strconv"
	"strings"

	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
	"github.com/samber/lo"
)

// formatReal prints the shortest representation that parses back to v, always keeping a decimal point
// so that integral values read as reals ("1.0", "-0.0").
func formatReal(v float64) string {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if math.IsInf(v, 0) || math.IsNaN(v) || strings.ContainsAny(s, ".e") {
		return s
	}
	return s + ".0"
}

// formatRealPrecision prints v with a fixed number of decimals. Values rounding to zero lose their sign.
func formatRealPrecision(v float64, precision int) string {
	if precision < 0 {
		return formatReal(v)
	}
	s := strconv.FormatFloat(v, 'f', precision, 64)
	if strings.Trim(s, "-0.") == "" {
		return strings.TrimPrefix(s, "-")
	}
	return s
}

func formatList(values []float64, format func(float64) string) string {
	return "[" + strings.Join(lo.Map(values, func(v float64, _ int) string { return format(v) }), ", ") + "]"
}

// splitBracketed strips one pair of enclosing brackets and splits the content on top level commas.
func splitBracketed(s string) ([]string, error) {
	s = strings.TrimSpace(s)
	if len(s) < 2 || s[0] != '[' || s[len(s)-1] != ']' {
		return nil, errors.New("expected a bracketed list")
	}
	inner := s[1 : len(s)-1]
	if strings.TrimSpace(inner) == "" {
		return nil, nil
	}
	var (
		fields []string
		depth  int
		start  int
	)
	for i, r := range inner {
		switch r {
		case '[':
			depth++
		case ']':
			depth--
			if depth < 0 {
				return nil, errors.New("unbalanced brackets")
			}
		case ',':
			if depth == 0 {
				fields = append(fields, strings.TrimSpace(inner[start:i]))
				start = i + 1
			}
		}
	}
	if depth != 0 {
		return nil, errors.New("unbalanced brackets")
	}
	return append(fields, strings.TrimSpace(inner[start:])), nil
}

// parseRealList parses "[a, b, ...]" holding exactly count reals.
func parseRealList(s string, count int) ([]float64, error) {
	fields, err := splitBracketed(s)
	if err != nil {
		return nil, err
	}
	if len(fields) != count {
		return nil, errors.Errorf("expected %d values, got %d", count, len(fields))
	}
	values := make([]float64, 0, count)
	for _, field := range fields {
		v, err := parseReal(field)
		if err != nil {
			return nil, err
		}
		values = append(values, v)
	}
	return values, nil
}

// parseReal parses one finite real.
func parseReal(s string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, errors.Errorf("%q is not a finite number", s)
	}
	return v, nil
}

// FormatVector prints v as "[x, y, z]" with a fixed number of decimals, or in the shortest exact form when
// precision is negative.
func FormatVector(v r3.Vector, precision int) string {
	return formatList([]float64{v.X, v.Y, v.Z}, func(f float64) string { return formatRealPrecision(f, precision) })
}

// ParseVector reads "[x, y, z]".
func ParseVector(s string) (r3.Vector, error) {
	values, err := parseRealList(s, 3)
	if err != nil {
		return r3.Vector{}, NewParseError("vector", s, err)
	}
	return r3.Vector{X: values[0], Y: values[1], Z: values[2]}, nil
}
