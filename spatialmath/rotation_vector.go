package spatialmath

import (
	"math"
	"strings"

	"github.com/golang/geo/r3"
	"github.com/pkg/errors"

	"github.com/spatialkit/rotation/utils"
)

// See here for a thorough explanation: https://en.wikipedia.org/wiki/Axis%E2%80%93angle_representation
// A rotation vector pairs a unit axis with an angle about it. Its rectified form keeps the angle in
// [0, π], flipping the axis when needed, so that every rotation has one canonical (axis, angle) pair.

// RotationVector represents a rotation as a unit axis and an angle. The zero value is undefined.
type RotationVector struct {
	axis  r3.Vector
	angle Angle
}

// NewRotationVector pairs a unit axis with an angle.
func NewRotationVector(axis r3.Vector, angle Angle) (RotationVector, error) {
	if err := angle.check(); err != nil {
		return UndefinedRotationVector(), err
	}
	if math.Abs(axis.Norm()-1) > UnitaryTolerance {
		return UndefinedRotationVector(), NewDomainError("rotation vector axis %v is not unitary", axis)
	}
	return RotationVector{axis: axis, angle: angle}, nil
}

// NewRotationVectorFromVector reads the angle, in unit, from the magnitude of v and the axis from its
// direction. A zero vector yields a zero rotation about +Z.
func NewRotationVectorFromVector(v r3.Vector, unit AngleUnit) (RotationVector, error) {
	if _, ok := angleUnits[unit]; !ok {
		return UndefinedRotationVector(), errors.Wrapf(ErrDomainViolation, "rotation vector unit %v", unit)
	}
	norm := v.Norm()
	if math.IsNaN(norm) || math.IsInf(norm, 0) {
		return UndefinedRotationVector(), NewDomainError("rotation vector %v is not finite", v)
	}
	if norm == 0 {
		return RotationVector{axis: r3.Vector{Z: 1}, angle: NewAngle(0, unit)}, nil
	}
	return RotationVector{axis: v.Mul(1 / norm), angle: NewAngle(norm, unit)}, nil
}

// UnitRotationVector returns the zero rotation about +Z.
func UnitRotationVector() RotationVector {
	return RotationVector{axis: r3.Vector{Z: 1}, angle: ZeroAngle()}
}

// UndefinedRotationVector returns the undefined rotation vector.
func UndefinedRotationVector() RotationVector {
	return RotationVector{}
}

// RotationVectorX returns a rotation of angle about +X.
func RotationVectorX(angle Angle) (RotationVector, error) {
	return NewRotationVector(r3.Vector{X: 1}, angle)
}

// RotationVectorY returns a rotation of angle about +Y.
func RotationVectorY(angle Angle) (RotationVector, error) {
	return NewRotationVector(r3.Vector{Y: 1}, angle)
}

// RotationVectorZ returns a rotation of angle about +Z.
func RotationVectorZ(angle Angle) (RotationVector, error) {
	return NewRotationVector(r3.Vector{Z: 1}, angle)
}

// RotationVectorFromQuaternion converts a quaternion after rectifying it. A vanishing vector part yields
// the zero rotation about +Z.
func RotationVectorFromQuaternion(q Quaternion) (RotationVector, error) {
	rectified, err := q.ToRectified()
	if err != nil {
		return UndefinedRotationVector(), err
	}
	normalized, err := rectified.ToNormalized()
	if err != nil {
		return UndefinedRotationVector(), err
	}
	n := normalized.number
	v := r3.Vector{X: n.Imag, Y: n.Jmag, Z: n.Kmag}
	norm := v.Norm()
	if norm == 0 {
		return UnitRotationVector(), nil
	}
	return RotationVector{axis: v.Mul(1 / norm), angle: Radians(2 * math.Atan2(norm, n.Real))}, nil
}

// RotationVectorFromRotationMatrix converts through the quaternion form.
func RotationVectorFromRotationMatrix(rm RotationMatrix) (RotationVector, error) {
	q, err := QuaternionFromRotationMatrix(rm)
	if err != nil {
		return UndefinedRotationVector(), err
	}
	return RotationVectorFromQuaternion(q)
}

// RotationVectorFromEulerAngle converts through the quaternion form.
func RotationVectorFromEulerAngle(ea EulerAngle) (RotationVector, error) {
	q, err := QuaternionFromEulerAngle(ea)
	if err != nil {
		return UndefinedRotationVector(), err
	}
	return RotationVectorFromQuaternion(q)
}

// IsDefined reports whether the rotation vector holds an axis and an angle.
func (rv RotationVector) IsDefined() bool {
	return rv.angle.IsDefined()
}

func (rv RotationVector) check() error {
	if !rv.IsDefined() {
		return NewUndefinedOperandError("rotation vector")
	}
	return nil
}

// Axis returns the unit rotation axis.
func (rv RotationVector) Axis() (r3.Vector, error) {
	return rv.axis, rv.check()
}

// Angle returns the rotation angle.
func (rv RotationVector) Angle() (Angle, error) {
	return rv.angle, rv.check()
}

// ToVector returns axis·angle, with the angle expressed in unit.
func (rv RotationVector) ToVector(unit AngleUnit) (r3.Vector, error) {
	if err := rv.check(); err != nil {
		return r3.Vector{}, err
	}
	magnitude, err := rv.angle.In(unit)
	if err != nil {
		return r3.Vector{}, err
	}
	return rv.axis.Mul(magnitude), nil
}

// ToRectified returns the canonical form: the angle reduced into [0, half turn] in its own unit, the
// axis flipped when the reduced angle passed the half turn.
func (rv RotationVector) ToRectified() (RotationVector, error) {
	if err := rv.check(); err != nil {
		return UndefinedRotationVector(), err
	}
	period := angleUnits[rv.angle.unit].period
	reduced := utils.ReduceRange(rv.angle.value, 0, period)
	axis := rv.axis
	if reduced > period/2 {
		reduced = period - reduced
		axis = r3.Vector{
			X: utils.NegativeZeroToZero(-axis.X),
			Y: utils.NegativeZeroToZero(-axis.Y),
			Z: utils.NegativeZeroToZero(-axis.Z),
		}
	}
	return RotationVector{axis: axis, angle: Angle{value: reduced, unit: rv.angle.unit}}, nil
}

// Rectify replaces rv by its canonical form.
func (rv *RotationVector) Rectify() error {
	rectified, err := rv.ToRectified()
	if err != nil {
		return err
	}
	*rv = rectified
	return nil
}

// Equal compares rectified forms. Two zero rotations are equal whatever their axes, and a half turn
// about an axis equals a half turn about its opposite. Undefined rotation vectors are never equal.
func (rv RotationVector) Equal(other RotationVector) bool {
	if !rv.IsDefined() || !other.IsDefined() {
		return false
	}
	a, _ := rv.ToRectified()
	b, _ := other.ToRectified()
	if !a.angle.Equal(b.angle) {
		return false
	}
	if a.angle.value == 0 {
		return true
	}
	if a.axis == b.axis {
		return true
	}
	return a.angle.value == angleUnits[a.angle.unit].period/2 && a.axis == b.axis.Mul(-1)
}

// IsNear reports whether the two rotations differ by at most tolerance.
func (rv RotationVector) IsNear(other RotationVector, tolerance Angle) (bool, error) {
	q, err := QuaternionFromRotationVector(rv)
	if err != nil {
		return false, err
	}
	p, err := QuaternionFromRotationVector(other)
	if err != nil {
		return false, err
	}
	return q.IsNear(p, tolerance)
}

// ToString formats the axis and the angle, e.g. "[0.0, 0.0, 1.0] : 0.0 [rad]".
func (rv RotationVector) ToString() (string, error) {
	if err := rv.check(); err != nil {
		return "", err
	}
	return formatList([]float64{rv.axis.X, rv.axis.Y, rv.axis.Z}, formatReal) + " : " + rv.angle.String(), nil
}

func (rv RotationVector) String() string {
	if !rv.IsDefined() {
		return "Undefined"
	}
	s, _ := rv.ToString()
	return s
}

// ParseRotationVector reads the form produced by ToString.
func ParseRotationVector(s string) (RotationVector, error) {
	axisText, angleText, found := strings.Cut(s, " : ")
	if !found {
		return UndefinedRotationVector(), NewParseError("rotation vector", s, errors.New("missing \" : \" separator"))
	}
	values, err := parseRealList(axisText, 3)
	if err != nil {
		return UndefinedRotationVector(), NewParseError("rotation vector", s, err)
	}
	angle, err := ParseAngle(angleText)
	if err != nil {
		return UndefinedRotationVector(), err
	}
	rv, err := NewRotationVector(r3.Vector{X: values[0], Y: values[1], Z: values[2]}, angle)
	if err != nil {
		return UndefinedRotationVector(), NewParseError("rotation vector", s, err)
	}
	return rv, nil
}
