package spatialmath

import (
	"math"
	"testing"

	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
	"go.viam.com/test"
)

func TestUnitRotationVector(t *testing.T) {
	rv, err := NewRotationVector(r3.Vector{Z: 1}, Radians(0))
	test.That(t, err, test.ShouldBeNil)
	test.That(t, rv, test.ShouldResemble, UnitRotationVector())

	q, err := QuaternionFromRotationVector(rv)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, q, test.ShouldResemble, UnitQuaternion())

	back, err := RotationVectorFromQuaternion(q)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, back.Equal(rv), test.ShouldBeTrue)
	test.That(t, back, test.ShouldResemble, UnitRotationVector())

	s, err := rv.ToString()
	test.That(t, err, test.ShouldBeNil)
	test.That(t, s, test.ShouldEqual, "[0.0, 0.0, 1.0] : 0.0 [rad]")
	parsed, err := ParseRotationVector(s)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, parsed, test.ShouldResemble, rv)
}

func TestRotationVectorConstruction(t *testing.T) {
	_, err := NewRotationVector(r3.Vector{X: 1, Y: 1}, Degrees(10))
	test.That(t, errors.Is(err, ErrDomainViolation), test.ShouldBeTrue)
	_, err = NewRotationVector(r3.Vector{X: 1}, UndefinedAngle())
	test.That(t, errors.Is(err, ErrUndefinedOperand), test.ShouldBeTrue)

	rv, err := NewRotationVectorFromVector(r3.Vector{Z: -2}, Radian)
	test.That(t, err, test.ShouldBeNil)
	axis, err := rv.Axis()
	test.That(t, err, test.ShouldBeNil)
	test.That(t, axis, test.ShouldResemble, r3.Vector{Z: -1})
	angle, err := rv.Angle()
	test.That(t, err, test.ShouldBeNil)
	test.That(t, angle, test.ShouldResemble, Radians(2))

	rv, err = NewRotationVectorFromVector(r3.Vector{X: 3, Y: 4}, Degree)
	test.That(t, err, test.ShouldBeNil)
	vectorShouldAlmostEqual(t, rv.axis, r3.Vector{X: 0.6, Y: 0.8}, 1e-15)
	test.That(t, rv.angle, test.ShouldResemble, Degrees(5))

	rv, err = NewRotationVectorFromVector(r3.Vector{}, Degree)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, rv.axis, test.ShouldResemble, r3.Vector{Z: 1})
	test.That(t, rv.angle, test.ShouldResemble, Degrees(0))

	_, err = NewRotationVectorFromVector(r3.Vector{X: math.Inf(1)}, Degree)
	test.That(t, errors.Is(err, ErrDomainViolation), test.ShouldBeTrue)
	_, err = NewRotationVectorFromVector(r3.Vector{X: 1}, UndefinedAngleUnit)
	test.That(t, errors.Is(err, ErrDomainViolation), test.ShouldBeTrue)

	for _, tc := range []struct {
		build func(Angle) (RotationVector, error)
		axis  r3.Vector
	}{
		{RotationVectorX, r3.Vector{X: 1}},
		{RotationVectorY, r3.Vector{Y: 1}},
		{RotationVectorZ, r3.Vector{Z: 1}},
	} {
		rv, err := tc.build(Degrees(30))
		test.That(t, err, test.ShouldBeNil)
		test.That(t, rv.axis, test.ShouldResemble, tc.axis)
	}

	v, err := RotationVector{axis: r3.Vector{X: 1}, angle: Radians(math.Pi / 2)}.ToVector(Degree)
	test.That(t, err, test.ShouldBeNil)
	vectorShouldAlmostEqual(t, v, r3.Vector{X: 90}, 1e-12)
}

func TestUndefinedRotationVector(t *testing.T) {
	rv := UndefinedRotationVector()
	test.That(t, rv.IsDefined(), test.ShouldBeFalse)
	test.That(t, rv.Equal(rv), test.ShouldBeFalse)
	test.That(t, rv.String(), test.ShouldEqual, "Undefined")
	_, err := rv.Axis()
	test.That(t, errors.Is(err, ErrUndefinedOperand), test.ShouldBeTrue)
	_, err = rv.ToString()
	test.That(t, errors.Is(err, ErrUndefinedOperand), test.ShouldBeTrue)
	_, err = QuaternionFromRotationVector(rv)
	test.That(t, errors.Is(err, ErrUndefinedOperand), test.ShouldBeTrue)
	_, err = RotationVectorFromQuaternion(UndefinedQuaternion())
	test.That(t, errors.Is(err, ErrUndefinedOperand), test.ShouldBeTrue)
	err = rv.Rectify()
	test.That(t, errors.Is(err, ErrUndefinedOperand), test.ShouldBeTrue)
}

func TestRotationVectorRectify(t *testing.T) {
	for _, tc := range []struct {
		name          string
		axis          r3.Vector
		angle         Angle
		expectedAxis  r3.Vector
		expectedAngle Angle
	}{
		{"in range", r3.Vector{X: 1}, Degrees(90), r3.Vector{X: 1}, Degrees(90)},
		{"past half turn", r3.Vector{X: 1}, Degrees(270), r3.Vector{X: -1}, Degrees(90)},
		{"negative", r3.Vector{Y: 1}, Degrees(-90), r3.Vector{Y: -1}, Degrees(90)},
		{"several turns", r3.Vector{Z: 1}, Degrees(720 + 45), r3.Vector{Z: 1}, Degrees(45)},
		{"half turn", r3.Vector{Z: 1}, Degrees(180), r3.Vector{Z: 1}, Degrees(180)},
		{"revolutions", r3.Vector{Z: 1}, Revolutions(0.75), r3.Vector{Z: -1}, Revolutions(0.25)},
	} {
		t.Run(tc.name, func(t *testing.T) {
			rv, err := NewRotationVector(tc.axis, tc.angle)
			test.That(t, err, test.ShouldBeNil)
			once, err := rv.ToRectified()
			test.That(t, err, test.ShouldBeNil)
			test.That(t, once.axis, test.ShouldResemble, tc.expectedAxis)
			test.That(t, once.angle, test.ShouldResemble, tc.expectedAngle)

			twice := once
			test.That(t, twice.Rectify(), test.ShouldBeNil)
			test.That(t, twice, test.ShouldResemble, once)

			test.That(t, rv.Equal(once), test.ShouldBeTrue)
		})
	}
}

func TestRotationVectorRectifyText(t *testing.T) {
	rv, err := RotationVectorX(Degrees(330))
	test.That(t, err, test.ShouldBeNil)
	test.That(t, rv.Rectify(), test.ShouldBeNil)

	axis, err := rv.Axis()
	test.That(t, err, test.ShouldBeNil)
	test.That(t, math.Signbit(axis.Y), test.ShouldBeFalse)
	test.That(t, math.Signbit(axis.Z), test.ShouldBeFalse)

	s, err := rv.ToString()
	test.That(t, err, test.ShouldBeNil)
	test.That(t, s, test.ShouldEqual, "[-1.0, 0.0, 0.0] : 30.0 [deg]")
}

func TestRotationVectorEquality(t *testing.T) {
	build := func(axis r3.Vector, angle Angle) RotationVector {
		rv, err := NewRotationVector(axis, angle)
		test.That(t, err, test.ShouldBeNil)
		return rv
	}
	x, y := r3.Vector{X: 1}, r3.Vector{Y: 1}
	test.That(t, build(x, Degrees(270)).Equal(build(x.Mul(-1), Degrees(90))), test.ShouldBeTrue)
	test.That(t, build(x, Degrees(180)).Equal(build(x.Mul(-1), Degrees(180))), test.ShouldBeTrue)
	test.That(t, build(x, Degrees(0)).Equal(build(y, Degrees(0))), test.ShouldBeTrue)
	test.That(t, build(x, Degrees(90)).Equal(build(y, Degrees(90))), test.ShouldBeFalse)
	test.That(t, build(x, Degrees(90)).Equal(build(x, Degrees(91))), test.ShouldBeFalse)

	near, err := build(x, Degrees(90)).IsNear(build(x, Degrees(90.0001)), Degrees(0.001))
	test.That(t, err, test.ShouldBeNil)
	test.That(t, near, test.ShouldBeTrue)
	near, err = build(x, Degrees(90)).IsNear(build(y, Degrees(90)), Degrees(1))
	test.That(t, err, test.ShouldBeNil)
	test.That(t, near, test.ShouldBeFalse)
}

func TestRotationVectorConversions(t *testing.T) {
	rv, err := RotationVectorX(Degrees(90))
	test.That(t, err, test.ShouldBeNil)

	q, err := QuaternionFromRotationVector(rv)
	test.That(t, err, test.ShouldBeNil)
	quaternionShouldAlmostEqual(t, q, qx90, 1e-12)

	back, err := RotationVectorFromQuaternion(qx90)
	test.That(t, err, test.ShouldBeNil)
	vectorShouldAlmostEqual(t, back.axis, r3.Vector{X: 1}, 1e-12)
	test.That(t, back.angle.radians(), test.ShouldAlmostEqual, math.Pi/2)

	// the antipode describes the same rotation
	antipode, err := qx90.Scale(-1)
	test.That(t, err, test.ShouldBeNil)
	back, err = RotationVectorFromQuaternion(antipode)
	test.That(t, err, test.ShouldBeNil)
	vectorShouldAlmostEqual(t, back.axis, r3.Vector{X: 1}, 1e-12)
	test.That(t, back.angle.radians(), test.ShouldAlmostEqual, math.Pi/2)

	rm, err := RotationMatrixFromRotationVector(rv)
	test.That(t, err, test.ShouldBeNil)
	rx, err := RX(Degrees(90))
	test.That(t, err, test.ShouldBeNil)
	matrixShouldAlmostEqual(t, rm, rx, 1e-12)

	fromMatrix, err := RotationVectorFromRotationMatrix(rx)
	test.That(t, err, test.ShouldBeNil)
	near, err := fromMatrix.IsNear(rv, Radians(1e-12))
	test.That(t, err, test.ShouldBeNil)
	test.That(t, near, test.ShouldBeTrue)

	ea, err := EulerAngleXYZ(Degrees(90), Degrees(0), Degrees(0))
	test.That(t, err, test.ShouldBeNil)
	fromEuler, err := RotationVectorFromEulerAngle(ea)
	test.That(t, err, test.ShouldBeNil)
	near, err = fromEuler.IsNear(rv, Radians(1e-12))
	test.That(t, err, test.ShouldBeNil)
	test.That(t, near, test.ShouldBeTrue)

	// half turns keep a well defined axis
	half, err := RotationVectorFromQuaternion(QuaternionXYZS(0, 1, 0, 0))
	test.That(t, err, test.ShouldBeNil)
	test.That(t, half.axis, test.ShouldResemble, r3.Vector{Y: 1})
	test.That(t, half.angle.radians(), test.ShouldEqual, math.Pi)
}

func TestRotationVectorParse(t *testing.T) {
	rv, err := RotationVectorY(Degrees(30))
	test.That(t, err, test.ShouldBeNil)
	s, err := rv.ToString()
	test.That(t, err, test.ShouldBeNil)
	test.That(t, s, test.ShouldEqual, "[0.0, 1.0, 0.0] : 30.0 [deg]")
	parsed, err := ParseRotationVector(s)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, parsed, test.ShouldResemble, rv)

	for _, bad := range []string{
		"[0.0, 1.0, 0.0] 30.0 [deg]",
		"[0.0, 1.0] : 30.0 [deg]",
		"[0.0, 2.0, 0.0] : 30.0 [deg]",
		"[0.0, 1.0, 0.0] : 30.0",
	} {
		_, err := ParseRotationVector(bad)
		test.That(t, errors.Is(err, ErrDomainViolation), test.ShouldBeTrue)
	}
}
