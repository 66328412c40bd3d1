package spatialmath

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
	"go.uber.org/multierr"
	"gonum.org/v1/gonum/num/quat"
)

// RotationMatrix is an orthonormal 3x3 matrix with determinant +1. Elementary rotations follow the frame
// rotation convention, RX(θ) = [[1, 0, 0], [0, c, s], [0, -s, c]], and RotateVector computes M·v.
// The zero value is undefined.
type RotationMatrix struct {
	matrix  mgl64.Mat3
	defined bool
}

// NewRotationMatrix builds a matrix from nine row-major values and validates it.
func NewRotationMatrix(data []float64) (RotationMatrix, error) {
	if len(data) != 9 {
		return UndefinedRotationMatrix(), NewDomainError("rotation matrix needs 9 values, got %d", len(data))
	}
	return newValidatedRotationMatrix(mgl64.Mat3FromRows(
		mgl64.Vec3{data[0], data[1], data[2]},
		mgl64.Vec3{data[3], data[4], data[5]},
		mgl64.Vec3{data[6], data[7], data[8]},
	))
}

// RotationMatrixFromRows builds a matrix from its three rows and validates it.
func RotationMatrixFromRows(row0, row1, row2 r3.Vector) (RotationMatrix, error) {
	return newValidatedRotationMatrix(mgl64.Mat3FromRows(toVec3(row0), toVec3(row1), toVec3(row2)))
}

// RotationMatrixFromColumns builds a matrix from its three columns and validates it.
func RotationMatrixFromColumns(col0, col1, col2 r3.Vector) (RotationMatrix, error) {
	return newValidatedRotationMatrix(mgl64.Mat3FromCols(toVec3(col0), toVec3(col1), toVec3(col2)))
}

func newValidatedRotationMatrix(m mgl64.Mat3) (RotationMatrix, error) {
	if err := validateRotation(m); err != nil {
		return UndefinedRotationMatrix(), errors.Wrap(err, "invalid rotation matrix")
	}
	return RotationMatrix{matrix: m, defined: true}, nil
}

// validateRotation reports every broken invariant at once.
func validateRotation(m mgl64.Mat3) error {
	var err error
	for i := 0; i < 3; i++ {
		col := m.Col(i)
		if math.IsNaN(col.Len()) || math.IsInf(col.Len(), 0) {
			return NewDomainError("rotation matrix column %d is not finite", i)
		}
		if math.Abs(col.Len()-1) > OrthonormalityTolerance {
			err = multierr.Append(err, NewDomainError("rotation matrix column %d has norm %v", i, col.Len()))
		}
		j := (i + 1) % 3
		if dot := col.Dot(m.Col(j)); math.Abs(dot) > OrthonormalityTolerance {
			err = multierr.Append(err, NewDomainError("rotation matrix columns %d and %d are not orthogonal (dot %v)", i, j, dot))
		}
	}
	if det := m.Det(); math.Abs(det-1) > OrthonormalityTolerance {
		err = multierr.Append(err, NewDomainError("rotation matrix determinant is %v", det))
	}
	return err
}

// UnitRotationMatrix returns the identity matrix.
func UnitRotationMatrix() RotationMatrix {
	return RotationMatrix{matrix: mgl64.Ident3(), defined: true}
}

// UndefinedRotationMatrix returns the undefined rotation matrix.
func UndefinedRotationMatrix() RotationMatrix {
	return RotationMatrix{}
}

func toVec3(v r3.Vector) mgl64.Vec3 {
	return mgl64.Vec3{v.X, v.Y, v.Z}
}

func fromVec3(v mgl64.Vec3) r3.Vector {
	return r3.Vector{X: v[0], Y: v[1], Z: v[2]}
}

func elementaryMatrix(axis r3.Vector, angle float64) mgl64.Mat3 {
	s, c := math.Sincos(angle)
	switch {
	case axis.X != 0:
		return mgl64.Mat3FromRows(mgl64.Vec3{1, 0, 0}, mgl64.Vec3{0, c, s}, mgl64.Vec3{0, -s, c})
	case axis.Y != 0:
		return mgl64.Mat3FromRows(mgl64.Vec3{c, 0, -s}, mgl64.Vec3{0, 1, 0}, mgl64.Vec3{s, 0, c})
	default:
		return mgl64.Mat3FromRows(mgl64.Vec3{c, s, 0}, mgl64.Vec3{-s, c, 0}, mgl64.Vec3{0, 0, 1})
	}
}

func elementaryRotation(axis r3.Vector, angle Angle) (RotationMatrix, error) {
	if err := angle.check(); err != nil {
		return UndefinedRotationMatrix(), err
	}
	return RotationMatrix{matrix: elementaryMatrix(axis, angle.radians()), defined: true}, nil
}

// RX returns the frame rotation of angle about X.
func RX(angle Angle) (RotationMatrix, error) { return elementaryRotation(r3.Vector{X: 1}, angle) }

// RY returns the frame rotation of angle about Y.
func RY(angle Angle) (RotationMatrix, error) { return elementaryRotation(r3.Vector{Y: 1}, angle) }

// RZ returns the frame rotation of angle about Z.
func RZ(angle Angle) (RotationMatrix, error) { return elementaryRotation(r3.Vector{Z: 1}, angle) }

// RotationMatrixFromQuaternion converts a quaternion, normalizing it first.
func RotationMatrixFromQuaternion(q Quaternion) (RotationMatrix, error) {
	normalized, err := q.ToNormalized()
	if err != nil {
		return UndefinedRotationMatrix(), err
	}
	return RotationMatrix{matrix: quatToMatrix(normalized.number), defined: true}, nil
}

func quatToMatrix(n quat.Number) mgl64.Mat3 {
	x, y, z, s := n.Imag, n.Jmag, n.Kmag, n.Real
	return mgl64.Mat3FromRows(
		mgl64.Vec3{x*x - y*y - z*z + s*s, 2 * (x*y + z*s), 2 * (x*z - y*s)},
		mgl64.Vec3{2 * (y*x - z*s), -x*x + y*y - z*z + s*s, 2 * (y*z + x*s)},
		mgl64.Vec3{2 * (z*x + y*s), 2 * (z*y - x*s), -x*x - y*y + z*z + s*s},
	)
}

// RotationMatrixFromRotationVector converts a rotation vector with the Rodrigues formula.
func RotationMatrixFromRotationVector(rv RotationVector) (RotationMatrix, error) {
	if err := rv.check(); err != nil {
		return UndefinedRotationMatrix(), err
	}
	x, y, z := rv.axis.X, rv.axis.Y, rv.axis.Z
	s, c := math.Sincos(rv.angle.radians())
	t := 1 - c
	return RotationMatrix{
		matrix: mgl64.Mat3FromRows(
			mgl64.Vec3{c + t*x*x, t*x*y + s*z, t*x*z - s*y},
			mgl64.Vec3{t*y*x - s*z, c + t*y*y, t*y*z + s*x},
			mgl64.Vec3{t*z*x + s*y, t*z*y - s*x, c + t*z*z},
		),
		defined: true,
	}, nil
}

// RotationMatrixFromEulerAngle composes the elementary rotations of the axis sequence, first angle
// applied first.
func RotationMatrixFromEulerAngle(ea EulerAngle) (RotationMatrix, error) {
	if err := ea.check(); err != nil {
		return UndefinedRotationMatrix(), err
	}
	axes := axisSequences[ea.sequence].axes
	first := elementaryMatrix(axes[0], ea.phi.radians())
	middle := elementaryMatrix(axes[1], ea.theta.radians())
	last := elementaryMatrix(axes[2], ea.psi.radians())
	return RotationMatrix{matrix: last.Mul3(middle).Mul3(first), defined: true}, nil
}

// VectorBasis returns the rotation mapping the frame spanned by the source pair onto the frame spanned by
// the destination pair. Each pair is orthonormalized with Gram-Schmidt, so only the direction of the
// first vector and the plane of both are significant. Zero or collinear pairs are rejected.
func VectorBasis(srcFirst, srcSecond, dstFirst, dstSecond r3.Vector) (RotationMatrix, error) {
	src, err := orthonormalFrame(srcFirst, srcSecond)
	if err != nil {
		return UndefinedRotationMatrix(), errors.Wrap(err, "source basis")
	}
	dst, err := orthonormalFrame(dstFirst, dstSecond)
	if err != nil {
		return UndefinedRotationMatrix(), errors.Wrap(err, "destination basis")
	}
	return RotationMatrix{matrix: dst.Mul3(src.Transpose()), defined: true}, nil
}

// basisTolerance is the smallest vector norm accepted while orthonormalizing a basis.
const basisTolerance = 1e-12

// orthonormalFrame returns the matrix whose columns are the Gram-Schmidt frame of first and second.
func orthonormalFrame(first, second r3.Vector) (mgl64.Mat3, error) {
	if first.Norm() < basisTolerance || second.Norm() < basisTolerance {
		return mgl64.Mat3{}, NewDomainError("zero basis vector")
	}
	e1 := first.Normalize()
	residual := second.Sub(e1.Mul(second.Dot(e1)))
	if residual.Norm() < basisTolerance*second.Norm() {
		return mgl64.Mat3{}, NewDomainError("collinear basis vectors %v and %v", first, second)
	}
	e2 := residual.Normalize()
	e3 := e1.Cross(e2)
	return mgl64.Mat3FromCols(toVec3(e1), toVec3(e2), toVec3(e3)), nil
}

// IsDefined reports whether the matrix holds values.
func (rm RotationMatrix) IsDefined() bool {
	return rm.defined
}

func (rm RotationMatrix) check() error {
	if !rm.defined {
		return NewUndefinedOperandError("rotation matrix")
	}
	return nil
}

func checkIndex(what string, i int) error {
	if i < 0 || i > 2 {
		return NewIndexError(what, i)
	}
	return nil
}

// At returns the element at row i, column j.
func (rm RotationMatrix) At(i, j int) (float64, error) {
	if err := rm.check(); err != nil {
		return math.NaN(), err
	}
	if err := multierr.Combine(checkIndex("row", i), checkIndex("column", j)); err != nil {
		return math.NaN(), err
	}
	return rm.matrix.At(i, j), nil
}

// Row returns row i.
func (rm RotationMatrix) Row(i int) (r3.Vector, error) {
	if err := rm.check(); err != nil {
		return r3.Vector{}, err
	}
	if err := checkIndex("row", i); err != nil {
		return r3.Vector{}, err
	}
	return fromVec3(rm.matrix.Row(i)), nil
}

// Column returns column j.
func (rm RotationMatrix) Column(j int) (r3.Vector, error) {
	if err := rm.check(); err != nil {
		return r3.Vector{}, err
	}
	if err := checkIndex("column", j); err != nil {
		return r3.Vector{}, err
	}
	return fromVec3(rm.matrix.Col(j)), nil
}

// Matrix returns a copy of the underlying matrix.
func (rm RotationMatrix) Matrix() (mgl64.Mat3, error) {
	return rm.matrix, rm.check()
}

// ToTransposed returns the transpose, which is also the inverse rotation.
func (rm RotationMatrix) ToTransposed() (RotationMatrix, error) {
	if err := rm.check(); err != nil {
		return UndefinedRotationMatrix(), err
	}
	return RotationMatrix{matrix: rm.matrix.Transpose(), defined: true}, nil
}

// Transpose transposes the matrix in place.
func (rm *RotationMatrix) Transpose() error {
	transposed, err := rm.ToTransposed()
	if err != nil {
		return err
	}
	*rm = transposed
	return nil
}

// ToInverse returns the inverse rotation.
func (rm RotationMatrix) ToInverse() (RotationMatrix, error) {
	return rm.ToTransposed()
}

// Multiply returns rm·other, the rotation that applies other then rm.
func (rm RotationMatrix) Multiply(other RotationMatrix) (RotationMatrix, error) {
	if err := multierr.Combine(rm.check(), other.check()); err != nil {
		return UndefinedRotationMatrix(), err
	}
	return RotationMatrix{matrix: rm.matrix.Mul3(other.matrix), defined: true}, nil
}

// RotateVector returns M·v.
func (rm RotationMatrix) RotateVector(v r3.Vector) (r3.Vector, error) {
	if err := rm.check(); err != nil {
		return r3.Vector{}, err
	}
	return fromVec3(rm.matrix.Mul3x1(toVec3(v))), nil
}

// Equal reports exact equality of every element. Undefined matrices are never equal.
func (rm RotationMatrix) Equal(other RotationMatrix) bool {
	return rm.defined && other.defined && rm.matrix == other.matrix
}

// IsNear reports whether the two rotations differ by at most tolerance.
func (rm RotationMatrix) IsNear(other RotationMatrix, tolerance Angle) (bool, error) {
	q, err := QuaternionFromRotationMatrix(rm)
	if err != nil {
		return false, err
	}
	p, err := QuaternionFromRotationMatrix(other)
	if err != nil {
		return false, err
	}
	return q.IsNear(p, tolerance)
}

func (rm RotationMatrix) rows() [][]float64 {
	rows := make([][]float64, 3)
	for i := range rows {
		row := rm.matrix.Row(i)
		rows[i] = row[:]
	}
	return rows
}

// ToString formats the rows, e.g. "[[1.0, 0.0, 0.0], [0.0, 1.0, 0.0], [0.0, 0.0, 1.0]]".
func (rm RotationMatrix) ToString() (string, error) {
	if err := rm.check(); err != nil {
		return "", err
	}
	text := "["
	for i, row := range rm.rows() {
		if i > 0 {
			text += ", "
		}
		text += formatList(row, formatReal)
	}
	return text + "]", nil
}

func (rm RotationMatrix) String() string {
	if !rm.defined {
		return "Undefined"
	}
	s, _ := rm.ToString()
	return s
}

// ParseRotationMatrix reads three bracketed rows and validates the result.
func ParseRotationMatrix(s string) (RotationMatrix, error) {
	rows, err := splitBracketed(s)
	if err != nil {
		return UndefinedRotationMatrix(), NewParseError("rotation matrix", s, err)
	}
	if len(rows) != 3 {
		return UndefinedRotationMatrix(), NewParseError("rotation matrix", s, errors.Errorf("expected 3 rows, got %d", len(rows)))
	}
	data := make([]float64, 0, 9)
	for _, row := range rows {
		values, err := parseRealList(row, 3)
		if err != nil {
			return UndefinedRotationMatrix(), NewParseError("rotation matrix", s, err)
		}
		data = append(data, values...)
	}
	return NewRotationMatrix(data)
}
