package spatialmath

import (
	"fmt"

	"github.com/golang/geo/r3"
)

// Orientation is an interface used to express the different parameterizations of a rotation in 3D
// Euclidean space. It is implemented by exactly Quaternion, RotationVector, RotationMatrix and
// EulerAngle; each converts itself into the others.
type Orientation interface {
	fmt.Stringer
	IsDefined() bool
	Quaternion() (Quaternion, error)
	RotationVector() (RotationVector, error)
	RotationMatrix() (RotationMatrix, error)
	EulerAngle(seq AxisSequence) (EulerAngle, error)
	RotateVector(v r3.Vector) (r3.Vector, error)

	rawOrientation() (RawOrientation, error)
}

// NewZeroOrientation returns an orientation which signifies no rotation.
func NewZeroOrientation() Orientation {
	return UnitQuaternion()
}

// OrientationAlmostEqual reports whether two orientations describe rotations within tolerance of each
// other. Undefined orientations are never almost equal.
func OrientationAlmostEqual(o1, o2 Orientation, tolerance Angle) bool {
	q1, err := o1.Quaternion()
	if err != nil {
		return false
	}
	q2, err := o2.Quaternion()
	if err != nil {
		return false
	}
	near, err := q1.IsNear(q2, tolerance)
	return err == nil && near
}

// OrientationBetween returns the rotation r such that applying o1 then r is the rotation o2.
func OrientationBetween(o1, o2 Orientation) (Orientation, error) {
	q1, err := o1.Quaternion()
	if err != nil {
		return nil, err
	}
	q2, err := o2.Quaternion()
	if err != nil {
		return nil, err
	}
	return asOrientation(q2.Divide(q1))
}

// asOrientation keeps a failed conversion from leaking a non-nil Orientation.
func asOrientation[T Orientation](o T, err error) (Orientation, error) {
	if err != nil {
		return nil, err
	}
	return o, nil
}

// Quaternion returns q.
func (q Quaternion) Quaternion() (Quaternion, error) {
	return q, q.check()
}

// RotationVector converts q to a rotation vector.
func (q Quaternion) RotationVector() (RotationVector, error) {
	return RotationVectorFromQuaternion(q)
}

// RotationMatrix converts q to a rotation matrix.
func (q Quaternion) RotationMatrix() (RotationMatrix, error) {
	return RotationMatrixFromQuaternion(q)
}

// EulerAngle decomposes q along seq.
func (q Quaternion) EulerAngle(seq AxisSequence) (EulerAngle, error) {
	return EulerAngleFromQuaternion(q, seq)
}

// Quaternion converts rv to a quaternion.
func (rv RotationVector) Quaternion() (Quaternion, error) {
	return QuaternionFromRotationVector(rv)
}

// RotationVector returns rv.
func (rv RotationVector) RotationVector() (RotationVector, error) {
	return rv, rv.check()
}

// RotationMatrix converts rv to a rotation matrix.
func (rv RotationVector) RotationMatrix() (RotationMatrix, error) {
	return RotationMatrixFromRotationVector(rv)
}

// EulerAngle decomposes rv along seq.
func (rv RotationVector) EulerAngle(seq AxisSequence) (EulerAngle, error) {
	return EulerAngleFromRotationVector(rv, seq)
}

// RotateVector applies the rotation to v.
func (rv RotationVector) RotateVector(v r3.Vector) (r3.Vector, error) {
	rm, err := RotationMatrixFromRotationVector(rv)
	if err != nil {
		return r3.Vector{}, err
	}
	return rm.RotateVector(v)
}

// Quaternion converts rm to a quaternion.
func (rm RotationMatrix) Quaternion() (Quaternion, error) {
	return QuaternionFromRotationMatrix(rm)
}

// RotationVector converts rm to a rotation vector.
func (rm RotationMatrix) RotationVector() (RotationVector, error) {
	return RotationVectorFromRotationMatrix(rm)
}

// RotationMatrix returns rm.
func (rm RotationMatrix) RotationMatrix() (RotationMatrix, error) {
	return rm, rm.check()
}

// EulerAngle decomposes rm along seq.
func (rm RotationMatrix) EulerAngle(seq AxisSequence) (EulerAngle, error) {
	return EulerAngleFromRotationMatrix(rm, seq)
}

// Quaternion converts ea to a quaternion.
func (ea EulerAngle) Quaternion() (Quaternion, error) {
	return QuaternionFromEulerAngle(ea)
}

// RotationVector converts ea to a rotation vector.
func (ea EulerAngle) RotationVector() (RotationVector, error) {
	return RotationVectorFromEulerAngle(ea)
}

// RotationMatrix converts ea to a rotation matrix.
func (ea EulerAngle) RotationMatrix() (RotationMatrix, error) {
	return RotationMatrixFromEulerAngle(ea)
}

// EulerAngle returns ea when seq is its own sequence and decomposes the rotation along seq otherwise.
func (ea EulerAngle) EulerAngle(seq AxisSequence) (EulerAngle, error) {
	if err := ea.check(); err != nil {
		return UndefinedEulerAngle(), err
	}
	if seq == ea.sequence {
		return ea, nil
	}
	q, err := QuaternionFromEulerAngle(ea)
	if err != nil {
		return UndefinedEulerAngle(), err
	}
	return EulerAngleFromQuaternion(q, seq)
}

// RotateVector applies the rotation to v.
func (ea EulerAngle) RotateVector(v r3.Vector) (r3.Vector, error) {
	rm, err := RotationMatrixFromEulerAngle(ea)
	if err != nil {
		return r3.Vector{}, err
	}
	return rm.RotateVector(v)
}
