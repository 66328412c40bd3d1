package spatialmath

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
	"go.uber.org/multierr"
	"go.viam.com/test"
)

func matrixShouldAlmostEqual(t *testing.T, actual, expected RotationMatrix, tol float64) {
	t.Helper()
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			a, err := actual.At(i, j)
			test.That(t, err, test.ShouldBeNil)
			e, err := expected.At(i, j)
			test.That(t, err, test.ShouldBeNil)
			test.That(t, a, test.ShouldAlmostEqual, e, tol)
		}
	}
}

func TestUnitRotationMatrix(t *testing.T) {
	rz, err := RZ(Degrees(0))
	test.That(t, err, test.ShouldBeNil)
	test.That(t, rz.Equal(UnitRotationMatrix()), test.ShouldBeTrue)

	m, err := UnitRotationMatrix().Matrix()
	test.That(t, err, test.ShouldBeNil)
	test.That(t, m, test.ShouldResemble, mgl64.Ident3())

	s, err := UnitRotationMatrix().ToString()
	test.That(t, err, test.ShouldBeNil)
	test.That(t, s, test.ShouldEqual, "[[1.0, 0.0, 0.0], [0.0, 1.0, 0.0], [0.0, 0.0, 1.0]]")
	parsed, err := ParseRotationMatrix(s)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, parsed.Equal(UnitRotationMatrix()), test.ShouldBeTrue)

	q, err := QuaternionFromRotationMatrix(UnitRotationMatrix())
	test.That(t, err, test.ShouldBeNil)
	test.That(t, q, test.ShouldResemble, UnitQuaternion())

	v := r3.Vector{X: 1, Y: 2, Z: 3}
	same, err := UnitRotationMatrix().RotateVector(v)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, same, test.ShouldResemble, v)
}

func TestRotationMatrixValidation(t *testing.T) {
	rm, err := NewRotationMatrix([]float64{0, 1, 0, -1, 0, 0, 0, 0, 1})
	test.That(t, err, test.ShouldBeNil)
	rz, err := RZ(Degrees(90))
	test.That(t, err, test.ShouldBeNil)
	matrixShouldAlmostEqual(t, rm, rz, 1e-12)

	rows, err := RotationMatrixFromRows(r3.Vector{Y: 1}, r3.Vector{X: -1}, r3.Vector{Z: 1})
	test.That(t, err, test.ShouldBeNil)
	test.That(t, rows.Equal(rm), test.ShouldBeTrue)

	cols, err := RotationMatrixFromColumns(r3.Vector{Y: -1}, r3.Vector{X: 1}, r3.Vector{Z: 1})
	test.That(t, err, test.ShouldBeNil)
	test.That(t, cols.Equal(rm), test.ShouldBeTrue)

	_, err = NewRotationMatrix([]float64{1, 0, 0, 0, 1, 0, 0, 0})
	test.That(t, errors.Is(err, ErrDomainViolation), test.ShouldBeTrue)

	// scaled column and wrong determinant are both reported
	_, err = NewRotationMatrix([]float64{2, 0, 0, 0, 1, 0, 0, 0, 1})
	test.That(t, errors.Is(err, ErrDomainViolation), test.ShouldBeTrue)
	test.That(t, err.Error(), test.ShouldStartWith, "invalid rotation matrix")
	test.That(t, multierr.Errors(errors.Cause(err)), test.ShouldHaveLength, 2)

	// reflections are not rotations
	_, err = NewRotationMatrix([]float64{1, 0, 0, 0, 1, 0, 0, 0, -1})
	test.That(t, errors.Is(err, ErrDomainViolation), test.ShouldBeTrue)
	test.That(t, err.Error(), test.ShouldContainSubstring, "determinant")

	_, err = NewRotationMatrix([]float64{1, 0.1, 0, 0, 1, 0, 0, 0, 1})
	test.That(t, errors.Is(err, ErrDomainViolation), test.ShouldBeTrue)
	test.That(t, err.Error(), test.ShouldContainSubstring, "not orthogonal")

	_, err = NewRotationMatrix([]float64{math.NaN(), 0, 0, 0, 1, 0, 0, 0, 1})
	test.That(t, errors.Is(err, ErrDomainViolation), test.ShouldBeTrue)
}

func TestUndefinedRotationMatrix(t *testing.T) {
	rm := UndefinedRotationMatrix()
	test.That(t, rm.IsDefined(), test.ShouldBeFalse)
	test.That(t, rm.Equal(rm), test.ShouldBeFalse)
	test.That(t, rm.String(), test.ShouldEqual, "Undefined")
	_, err := rm.Row(0)
	test.That(t, errors.Is(err, ErrUndefinedOperand), test.ShouldBeTrue)
	_, err = rm.Multiply(UnitRotationMatrix())
	test.That(t, errors.Is(err, ErrUndefinedOperand), test.ShouldBeTrue)
	_, err = QuaternionFromRotationMatrix(rm)
	test.That(t, errors.Is(err, ErrUndefinedOperand), test.ShouldBeTrue)
	_, err = RX(UndefinedAngle())
	test.That(t, errors.Is(err, ErrUndefinedOperand), test.ShouldBeTrue)
	err = rm.Transpose()
	test.That(t, errors.Is(err, ErrUndefinedOperand), test.ShouldBeTrue)
}

func TestRotationMatrixAccessors(t *testing.T) {
	rx, err := RX(Degrees(90))
	test.That(t, err, test.ShouldBeNil)

	row, err := rx.Row(1)
	test.That(t, err, test.ShouldBeNil)
	vectorShouldAlmostEqual(t, row, r3.Vector{Z: 1}, 1e-12)
	col, err := rx.Column(1)
	test.That(t, err, test.ShouldBeNil)
	vectorShouldAlmostEqual(t, col, r3.Vector{Z: -1}, 1e-12)
	v, err := rx.At(2, 1)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, v, test.ShouldAlmostEqual, -1)

	for _, i := range []int{-1, 3} {
		_, err = rx.Row(i)
		test.That(t, errors.Is(err, ErrDomainViolation), test.ShouldBeTrue)
		_, err = rx.Column(i)
		test.That(t, errors.Is(err, ErrDomainViolation), test.ShouldBeTrue)
		_, err = rx.At(0, i)
		test.That(t, errors.Is(err, ErrDomainViolation), test.ShouldBeTrue)
	}
}

func TestElementaryRotations(t *testing.T) {
	for _, tc := range []struct {
		name     string
		build    func(Angle) (RotationMatrix, error)
		input    r3.Vector
		expected r3.Vector
	}{
		{"x", RX, r3.Vector{Y: 1}, r3.Vector{Z: -1}},
		{"y", RY, r3.Vector{Z: 1}, r3.Vector{X: -1}},
		{"z", RZ, r3.Vector{X: 1}, r3.Vector{Y: -1}},
	} {
		t.Run(tc.name, func(t *testing.T) {
			rm, err := tc.build(Degrees(90))
			test.That(t, err, test.ShouldBeNil)
			rotated, err := rm.RotateVector(tc.input)
			test.That(t, err, test.ShouldBeNil)
			vectorShouldAlmostEqual(t, rotated, tc.expected, 1e-12)

			m, err := rm.Matrix()
			test.That(t, err, test.ShouldBeNil)
			test.That(t, m.Det(), test.ShouldAlmostEqual, 1)
		})
	}
}

func TestRotationMatrixTranspose(t *testing.T) {
	rm, err := RotationMatrixFromEulerAngle(EulerAngle{Degrees(30), Degrees(-20), Degrees(75), ZXY})
	test.That(t, err, test.ShouldBeNil)

	transposed, err := rm.ToTransposed()
	test.That(t, err, test.ShouldBeNil)
	inverse, err := rm.ToInverse()
	test.That(t, err, test.ShouldBeNil)
	test.That(t, transposed.Equal(inverse), test.ShouldBeTrue)

	identity, err := rm.Multiply(transposed)
	test.That(t, err, test.ShouldBeNil)
	matrixShouldAlmostEqual(t, identity, UnitRotationMatrix(), 1e-12)

	inPlace := rm
	test.That(t, inPlace.Transpose(), test.ShouldBeNil)
	test.That(t, inPlace.Equal(transposed), test.ShouldBeTrue)
	test.That(t, inPlace.Transpose(), test.ShouldBeNil)
	test.That(t, inPlace.Equal(rm), test.ShouldBeTrue)
}

func TestRotationMatrixConversions(t *testing.T) {
	rz, err := RZ(Degrees(90))
	test.That(t, err, test.ShouldBeNil)

	fromQuaternion, err := RotationMatrixFromQuaternion(qz90)
	test.That(t, err, test.ShouldBeNil)
	matrixShouldAlmostEqual(t, fromQuaternion, rz, 1e-12)

	q, err := QuaternionFromRotationMatrix(rz)
	test.That(t, err, test.ShouldBeNil)
	quaternionShouldAlmostEqual(t, q, qz90, 1e-12)

	// non unit quaternions are normalized first
	scaled, err := qz90.Scale(3)
	test.That(t, err, test.ShouldBeNil)
	fromScaled, err := RotationMatrixFromQuaternion(scaled)
	test.That(t, err, test.ShouldBeNil)
	matrixShouldAlmostEqual(t, fromScaled, rz, 1e-12)

	// M(q1 ⊗ q2) = M(q1)·M(q2)
	composite, err := qz90.CrossMultiply(qx90)
	test.That(t, err, test.ShouldBeNil)
	fromComposite, err := RotationMatrixFromQuaternion(composite)
	test.That(t, err, test.ShouldBeNil)
	rx, err := RX(Degrees(90))
	test.That(t, err, test.ShouldBeNil)
	product, err := rz.Multiply(rx)
	test.That(t, err, test.ShouldBeNil)
	matrixShouldAlmostEqual(t, fromComposite, product, 1e-12)

	// every branch of the matrix to quaternion extraction
	for _, angle := range []float64{10, 170, -170, 179.9} {
		for _, build := range []func(Angle) (RotationMatrix, error){RX, RY, RZ} {
			rm, err := build(Degrees(angle))
			test.That(t, err, test.ShouldBeNil)
			q, err := QuaternionFromRotationMatrix(rm)
			test.That(t, err, test.ShouldBeNil)
			back, err := RotationMatrixFromQuaternion(q)
			test.That(t, err, test.ShouldBeNil)
			matrixShouldAlmostEqual(t, back, rm, 1e-12)
		}
	}
}

func TestVectorBasis(t *testing.T) {
	rm, err := VectorBasis(r3.Vector{X: 1}, r3.Vector{Y: 1}, r3.Vector{Y: 1}, r3.Vector{X: -1})
	test.That(t, err, test.ShouldBeNil)
	for _, tc := range []struct{ in, out r3.Vector }{
		{r3.Vector{X: 1}, r3.Vector{Y: 1}},
		{r3.Vector{Y: 1}, r3.Vector{X: -1}},
		{r3.Vector{Z: 1}, r3.Vector{Z: 1}},
	} {
		rotated, err := rm.RotateVector(tc.in)
		test.That(t, err, test.ShouldBeNil)
		vectorShouldAlmostEqual(t, rotated, tc.out, 1e-12)
	}

	// inputs are orthonormalized before use
	skewed, err := VectorBasis(r3.Vector{X: 2}, r3.Vector{X: 1, Y: 1}, r3.Vector{Y: 3}, r3.Vector{X: -1, Y: 5})
	test.That(t, err, test.ShouldBeNil)
	matrixShouldAlmostEqual(t, skewed, rm, 1e-12)

	_, err = VectorBasis(r3.Vector{X: 1}, r3.Vector{X: 2}, r3.Vector{Y: 1}, r3.Vector{X: 1})
	test.That(t, errors.Is(err, ErrDomainViolation), test.ShouldBeTrue)
	test.That(t, err.Error(), test.ShouldContainSubstring, "source basis")
	_, err = VectorBasis(r3.Vector{X: 1}, r3.Vector{Y: 1}, r3.Vector{}, r3.Vector{X: 1})
	test.That(t, errors.Is(err, ErrDomainViolation), test.ShouldBeTrue)
	test.That(t, err.Error(), test.ShouldContainSubstring, "destination basis")
}

func TestRotationMatrixParse(t *testing.T) {
	for _, bad := range []string{
		"[[1, 0, 0], [0, 1, 0]]",
		"[[1, 0, 0], [0, 1, 0], [0, 0]]",
		"[1, 0, 0, 0, 1, 0, 0, 0, 1]",
		"[[2, 0, 0], [0, 1, 0], [0, 0, 1]]",
		"[[1, 0, 0], [0, 1, 0], [0, 0, 1]",
	} {
		_, err := ParseRotationMatrix(bad)
		test.That(t, errors.Is(err, ErrDomainViolation), test.ShouldBeTrue)
	}
}
