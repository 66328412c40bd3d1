package spatialmath

import (
	"math"
	"strings"

	"github.com/golang/geo/r3"
	"github.com/pkg/errors"

	"github.com/spatialkit/rotation/utils"
)

// AngleUnit is the unit an Angle value is expressed in.
type AngleUnit int

// The supported angle units.
const (
	UndefinedAngleUnit AngleUnit = iota
	Radian
	Degree
	Arcminute
	Arcsecond
	Revolution
)

type angleUnitInfo struct {
	name    string
	symbol  string
	siRatio float64 // radians per unit
	period  float64 // one full turn in this unit
}

var angleUnits = map[AngleUnit]angleUnitInfo{
	Radian:     {"Radian", "rad", 1, 2 * math.Pi},
	Degree:     {"Degree", "deg", math.Pi / 180, 360},
	Arcminute:  {"Arcminute", "amin", math.Pi / 10800, 21600},
	Arcsecond:  {"Arcsecond", "asec", math.Pi / 648000, 1296000},
	Revolution: {"Revolution", "rev", 2 * math.Pi, 1},
}

// String returns the unit name, e.g. "Degree".
func (u AngleUnit) String() string {
	if info, ok := angleUnits[u]; ok {
		return info.name
	}
	return "Undefined"
}

// Symbol returns the short unit symbol used in textual angles, e.g. "deg".
func (u AngleUnit) Symbol() string {
	return angleUnits[u].symbol
}

// ParseAngleUnit accepts either a unit name or its symbol, case insensitively.
func ParseAngleUnit(s string) (AngleUnit, error) {
	s = strings.TrimSpace(s)
	for unit, info := range angleUnits {
		if strings.EqualFold(s, info.name) || strings.EqualFold(s, info.symbol) {
			return unit, nil
		}
	}
	switch strings.ToLower(s) {
	case "radians":
		return Radian, nil
	case "degrees":
		return Degree, nil
	}
	return UndefinedAngleUnit, errors.Wrapf(ErrDomainViolation, "angle unit %q not recognized", s)
}

// Angle is a scalar angle tagged with its unit. The zero value is undefined.
type Angle struct {
	value float64
	unit  AngleUnit
}

// NewAngle returns an angle of value in unit. A NaN value or an undefined unit yields an undefined angle.
func NewAngle(value float64, unit AngleUnit) Angle {
	if _, ok := angleUnits[unit]; !ok || math.IsNaN(value) {
		return UndefinedAngle()
	}
	return Angle{value: value, unit: unit}
}

// Radians returns an angle in radians.
func Radians(value float64) Angle { return NewAngle(value, Radian) }

// Degrees returns an angle in degrees.
func Degrees(value float64) Angle { return NewAngle(value, Degree) }

// Arcminutes returns an angle in arcminutes.
func Arcminutes(value float64) Angle { return NewAngle(value, Arcminute) }

// Arcseconds returns an angle in arcseconds.
func Arcseconds(value float64) Angle { return NewAngle(value, Arcsecond) }

// Revolutions returns an angle in revolutions.
func Revolutions(value float64) Angle { return NewAngle(value, Revolution) }

// ZeroAngle returns 0 rad.
func ZeroAngle() Angle { return Radians(0) }

// HalfPiAngle returns π/2 rad.
func HalfPiAngle() Angle { return Radians(math.Pi / 2) }

// PiAngle returns π rad.
func PiAngle() Angle { return Radians(math.Pi) }

// TwoPiAngle returns 2π rad.
func TwoPiAngle() Angle { return Radians(2 * math.Pi) }

// UndefinedAngle returns the undefined angle.
func UndefinedAngle() Angle { return Angle{} }

// AngleBetween returns the unsigned angle in radians between two non-zero vectors.
func AngleBetween(v1, v2 r3.Vector) (Angle, error) {
	if v1.Norm() == 0 || v2.Norm() == 0 {
		return UndefinedAngle(), NewDomainError("angle between %v and %v: zero vector", v1, v2)
	}
	return Radians(float64(v1.Angle(v2))), nil
}

// IsDefined reports whether the angle holds a value.
func (a Angle) IsDefined() bool {
	return a.unit != UndefinedAngleUnit
}

func (a Angle) check() error {
	if !a.IsDefined() {
		return NewUndefinedOperandError("angle")
	}
	return nil
}

// convert assumes a is defined.
func (a Angle) convert(unit AngleUnit) float64 {
	if a.unit == unit {
		return a.value
	}
	return a.value * angleUnits[a.unit].siRatio / angleUnits[unit].siRatio
}

// radians assumes a is defined.
func (a Angle) radians() float64 {
	return a.convert(Radian)
}

// Unit returns the unit the angle is stored in.
func (a Angle) Unit() (AngleUnit, error) {
	if err := a.check(); err != nil {
		return UndefinedAngleUnit, err
	}
	return a.unit, nil
}

// In returns the angle value expressed in unit.
func (a Angle) In(unit AngleUnit) (float64, error) {
	if err := a.check(); err != nil {
		return math.NaN(), err
	}
	if _, ok := angleUnits[unit]; !ok {
		return math.NaN(), errors.Wrapf(ErrDomainViolation, "cannot express angle in unit %v", unit)
	}
	return a.convert(unit), nil
}

// InRadians returns the angle in radians.
func (a Angle) InRadians() (float64, error) { return a.In(Radian) }

// InDegrees returns the angle in degrees.
func (a Angle) InDegrees() (float64, error) { return a.In(Degree) }

// InArcminutes returns the angle in arcminutes.
func (a Angle) InArcminutes() (float64, error) { return a.In(Arcminute) }

// InArcseconds returns the angle in arcseconds.
func (a Angle) InArcseconds() (float64, error) { return a.In(Arcsecond) }

// InRevolutions returns the angle in revolutions.
func (a Angle) InRevolutions() (float64, error) { return a.In(Revolution) }

// InRadiansRange returns the angle in radians reduced into [lower, upper). The span must be 2π.
func (a Angle) InRadiansRange(lower, upper float64) (float64, error) {
	return a.inRange(Radian, lower, upper)
}

// InDegreesRange returns the angle in degrees reduced into [lower, upper). The span must be 360.
func (a Angle) InDegreesRange(lower, upper float64) (float64, error) {
	return a.inRange(Degree, lower, upper)
}

func (a Angle) inRange(unit AngleUnit, lower, upper float64) (float64, error) {
	if err := a.check(); err != nil {
		return math.NaN(), err
	}
	period := angleUnits[unit].period
	if !utils.Float64AlmostEqual(upper-lower, period, 1e-12*period) {
		return math.NaN(), NewDomainError("range [%v, %v) does not span one period of %v %s", lower, upper, period, unit.Symbol())
	}
	return utils.ReduceRange(a.convert(unit), lower, upper), nil
}

// IsZero reports whether the angle is exactly zero.
func (a Angle) IsZero() (bool, error) {
	if err := a.check(); err != nil {
		return false, err
	}
	return a.value == 0, nil
}

// IsNegative reports whether the stored value is below zero.
func (a Angle) IsNegative() (bool, error) {
	if err := a.check(); err != nil {
		return false, err
	}
	return a.value < 0, nil
}

// IsNear reports whether two angles are within tolerance of each other, wrapping around a full turn.
func (a Angle) IsNear(other, tolerance Angle) (bool, error) {
	if err := a.check(); err != nil {
		return false, err
	}
	if err := other.check(); err != nil {
		return false, err
	}
	if err := tolerance.check(); err != nil {
		return false, errors.Wrap(err, "tolerance")
	}
	first := utils.ReduceRange(a.convert(Degree), 0, 360)
	second := utils.ReduceRange(other.convert(Degree), 0, 360)
	diff := math.Abs(second - first)
	tol := math.Abs(tolerance.convert(Degree))
	return diff <= tol || 360-diff <= tol, nil
}

// Equal reports whether other, expressed in this angle's unit and reduced by whole turns, equals this
// angle exactly. Undefined angles are never equal.
func (a Angle) Equal(other Angle) bool {
	if !a.IsDefined() || !other.IsDefined() {
		return false
	}
	period := angleUnits[a.unit].period
	return a.value == utils.ReduceRange(other.convert(a.unit), a.value, a.value+period)
}

// Add returns a + other in the unit of a.
func (a Angle) Add(other Angle) (Angle, error) {
	if err := a.check(); err != nil {
		return UndefinedAngle(), err
	}
	if err := other.check(); err != nil {
		return UndefinedAngle(), err
	}
	return Angle{value: a.value + other.convert(a.unit), unit: a.unit}, nil
}

// Sub returns a - other in the unit of a.
func (a Angle) Sub(other Angle) (Angle, error) {
	if err := a.check(); err != nil {
		return UndefinedAngle(), err
	}
	if err := other.check(); err != nil {
		return UndefinedAngle(), err
	}
	return Angle{value: a.value - other.convert(a.unit), unit: a.unit}, nil
}

// Scale returns a * factor.
func (a Angle) Scale(factor float64) (Angle, error) {
	if err := a.check(); err != nil {
		return UndefinedAngle(), err
	}
	return NewAngle(a.value*factor, a.unit), nil
}

// Divide returns a / divisor.
func (a Angle) Divide(divisor float64) (Angle, error) {
	if err := a.check(); err != nil {
		return UndefinedAngle(), err
	}
	if divisor == 0 {
		return UndefinedAngle(), NewDomainError("cannot divide angle by zero")
	}
	return NewAngle(a.value/divisor, a.unit), nil
}

// Negate returns -a.
func (a Angle) Negate() (Angle, error) {
	return a.Scale(-1)
}

// String formats the angle as "<value> [<symbol>]", e.g. "45.0 [deg]".
func (a Angle) String() string {
	if !a.IsDefined() {
		return "Undefined"
	}
	return formatReal(a.value) + " [" + a.unit.Symbol() + "]"
}

// ParseAngle reads an angle in the form produced by String.
func ParseAngle(s string) (Angle, error) {
	trimmed := strings.TrimSpace(s)
	open := strings.LastIndex(trimmed, "[")
	if open < 0 || !strings.HasSuffix(trimmed, "]") {
		return UndefinedAngle(), NewParseError("angle", s, nil)
	}
	unit, err := ParseAngleUnit(trimmed[open+1 : len(trimmed)-1])
	if err != nil {
		return UndefinedAngle(), NewParseError("angle", s, err)
	}
	value, err := parseReal(trimmed[:open])
	if err != nil {
		return UndefinedAngle(), NewParseError("angle", s, err)
	}
	return NewAngle(value, unit), nil
}
