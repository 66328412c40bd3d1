package spatialmath

import (
	"math"
	"strings"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/num/quat"

	"github.com/spatialkit/rotation/utils"
)

// QuaternionFormat is the order in which the four quaternion components are read or written.
type QuaternionFormat int

const (
	// XYZS lists the vector part first, then the scalar part.
	XYZS QuaternionFormat = iota
	// SXYZ lists the scalar part first, then the vector part.
	SXYZ
)

func (f QuaternionFormat) String() string {
	switch f {
	case XYZS:
		return "XYZS"
	case SXYZ:
		return "SXYZ"
	default:
		return "Undefined"
	}
}

// ParseQuaternionFormat reads "xyzs" or "sxyz", case insensitively.
func ParseQuaternionFormat(s string) (QuaternionFormat, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "XYZS":
		return XYZS, nil
	case "SXYZ":
		return SXYZ, nil
	default:
		return XYZS, errors.Wrapf(ErrDomainViolation, "quaternion format %q not recognized", s)
	}
}

// logVectorEpsilon is the vector part norm under which Log treats a quaternion as a pure scalar.
const logVectorEpsilon = 1e-15

// Quaternion represents a rotation as (x, y, z, s), with x, y, z the vector part and s the scalar part.
// It follows the frame rotation convention: the product used by CrossMultiply is
// (v1, s1) ⊗ (v2, s2) = (s1·v2 + s2·v1 - v1×v2, s1·s2 - v1·v2), so the right operand of a product is
// applied first and the rotation matrix of q1 ⊗ q2 is M(q1)·M(q2).
// The zero value is undefined.
type Quaternion struct {
	number  quat.Number
	defined bool
}

// NewQuaternion builds a quaternion from four components given in format order. The components are not
// normalized.
func NewQuaternion(a, b, c, d float64, format QuaternionFormat) Quaternion {
	if format == SXYZ {
		return quaternionFromNumber(quat.Number{Real: a, Imag: b, Jmag: c, Kmag: d})
	}
	return quaternionFromNumber(quat.Number{Real: d, Imag: a, Jmag: b, Kmag: c})
}

// QuaternionXYZS is shorthand for NewQuaternion(x, y, z, s, XYZS).
func QuaternionXYZS(x, y, z, s float64) Quaternion {
	return NewQuaternion(x, y, z, s, XYZS)
}

// NewQuaternionFromParts builds a quaternion from its vector and scalar parts.
func NewQuaternionFromParts(vector r3.Vector, scalar float64) Quaternion {
	return quaternionFromNumber(quat.Number{Real: scalar, Imag: vector.X, Jmag: vector.Y, Kmag: vector.Z})
}

// UnitQuaternion returns the identity rotation (0, 0, 0, 1).
func UnitQuaternion() Quaternion {
	return Quaternion{number: quat.Number{Real: 1}, defined: true}
}

// UndefinedQuaternion returns the undefined quaternion.
func UndefinedQuaternion() Quaternion {
	return Quaternion{}
}

func quaternionFromNumber(n quat.Number) Quaternion {
	if math.IsNaN(n.Real) || math.IsNaN(n.Imag) || math.IsNaN(n.Jmag) || math.IsNaN(n.Kmag) {
		return UndefinedQuaternion()
	}
	return Quaternion{number: n, defined: true}
}

// product returns p1 ⊗ p2, the composition that applies p2 first.
func product(p1, p2 quat.Number) quat.Number {
	return quat.Mul(p2, p1)
}

// axisQuaternion returns the rotation of angle radians about a unit axis.
func axisQuaternion(axis r3.Vector, angle float64) quat.Number {
	sin, cos := math.Sincos(angle / 2)
	return quat.Number{Real: cos, Imag: sin * axis.X, Jmag: sin * axis.Y, Kmag: sin * axis.Z}
}

// QuaternionFromRotationVector converts a rotation vector. A zero angle yields (0, 0, 0, 1).
func QuaternionFromRotationVector(rv RotationVector) (Quaternion, error) {
	if err := rv.check(); err != nil {
		return UndefinedQuaternion(), err
	}
	return quaternionFromNumber(axisQuaternion(rv.axis, rv.angle.radians())), nil
}

// QuaternionFromRotationMatrix converts a rotation matrix, choosing the best conditioned of the four
// extraction branches and normalizing the result.
func QuaternionFromRotationMatrix(rm RotationMatrix) (Quaternion, error) {
	if err := rm.check(); err != nil {
		return UndefinedQuaternion(), err
	}
	return quaternionFromNumber(matrixToQuat(rm.matrix)), nil
}

func matrixToQuat(m mgl64.Mat3) quat.Number {
	trace := m.Trace()
	m00, m11, m22 := m.At(0, 0), m.At(1, 1), m.At(2, 2)
	var x, y, z, s float64
	switch {
	case trace >= m00 && trace >= m11 && trace >= m22:
		x = m.At(1, 2) - m.At(2, 1)
		y = m.At(2, 0) - m.At(0, 2)
		z = m.At(0, 1) - m.At(1, 0)
		s = 1 + trace
	case m00 >= m11 && m00 >= m22:
		x = 1 + 2*m00 - trace
		y = m.At(0, 1) + m.At(1, 0)
		z = m.At(0, 2) + m.At(2, 0)
		s = m.At(1, 2) - m.At(2, 1)
	case m11 >= m22:
		x = m.At(1, 0) + m.At(0, 1)
		y = 1 + 2*m11 - trace
		z = m.At(1, 2) + m.At(2, 1)
		s = m.At(2, 0) - m.At(0, 2)
	default:
		x = m.At(2, 0) + m.At(0, 2)
		y = m.At(2, 1) + m.At(1, 2)
		z = 1 + 2*m22 - trace
		s = m.At(0, 1) - m.At(1, 0)
	}
	n := quat.Number{Real: s, Imag: x, Jmag: y, Kmag: z}
	return quat.Scale(1/quat.Abs(n), n)
}

// QuaternionFromEulerAngle converts Euler angles by composing the three elementary rotations of their
// axis sequence, first angle applied first.
func QuaternionFromEulerAngle(ea EulerAngle) (Quaternion, error) {
	if err := ea.check(); err != nil {
		return UndefinedQuaternion(), err
	}
	axes := axisSequences[ea.sequence].axes
	first := axisQuaternion(axes[0], ea.phi.radians())
	middle := axisQuaternion(axes[1], ea.theta.radians())
	last := axisQuaternion(axes[2], ea.psi.radians())
	return quaternionFromNumber(product(last, product(middle, first))), nil
}

// ShortestRotation returns the smallest rotation q such that q.RotateVector(from) points along to.
// Parallel vectors yield the identity; antiparallel vectors yield a half turn about an axis perpendicular
// to from, built from the basis axis least aligned with it.
func ShortestRotation(from, to r3.Vector) (Quaternion, error) {
	if from.Norm() == 0 || to.Norm() == 0 {
		return UndefinedQuaternion(), NewDomainError("shortest rotation between %v and %v: zero vector", from, to)
	}
	u, v := from.Normalize(), to.Normalize()
	cross := v.Cross(u)
	if u.Dot(v) < 0 && cross.Norm() <= antiparallelTolerance {
		axis := u.Cross(leastAlignedAxis(u)).Normalize()
		return NewQuaternionFromParts(axis, 0), nil
	}
	// |u+v|²/2 equals 1+u·v without its cancellation near the half turn
	n := quat.Number{Real: u.Add(v).Norm2() / 2, Imag: cross.X, Jmag: cross.Y, Kmag: cross.Z}
	return quaternionFromNumber(quat.Scale(1/quat.Abs(n), n)), nil
}

func leastAlignedAxis(v r3.Vector) r3.Vector {
	a := v.Abs()
	switch {
	case a.X <= a.Y && a.X <= a.Z:
		return r3.Vector{X: 1}
	case a.Y <= a.Z:
		return r3.Vector{Y: 1}
	default:
		return r3.Vector{Z: 1}
	}
}

// IsDefined reports whether the quaternion holds components.
func (q Quaternion) IsDefined() bool {
	return q.defined
}

func (q Quaternion) check() error {
	if !q.defined {
		return NewUndefinedOperandError("quaternion")
	}
	return nil
}

func checkQuaternions(qs ...Quaternion) error {
	for _, q := range qs {
		if err := q.check(); err != nil {
			return err
		}
	}
	return nil
}

// X returns the first vector component.
func (q Quaternion) X() (float64, error) { return q.number.Imag, q.check() }

// Y returns the second vector component.
func (q Quaternion) Y() (float64, error) { return q.number.Jmag, q.check() }

// Z returns the third vector component.
func (q Quaternion) Z() (float64, error) { return q.number.Kmag, q.check() }

// S returns the scalar component.
func (q Quaternion) S() (float64, error) { return q.number.Real, q.check() }

// VectorPart returns (x, y, z).
func (q Quaternion) VectorPart() (r3.Vector, error) {
	return r3.Vector{X: q.number.Imag, Y: q.number.Jmag, Z: q.number.Kmag}, q.check()
}

// ScalarPart returns s.
func (q Quaternion) ScalarPart() (float64, error) { return q.S() }

// Number returns the components as a gonum quaternion, Real holding the scalar part.
func (q Quaternion) Number() (quat.Number, error) { return q.number, q.check() }

// ToVector returns the four components in format order.
func (q Quaternion) ToVector(format QuaternionFormat) ([4]float64, error) {
	if err := q.check(); err != nil {
		return [4]float64{}, err
	}
	n := q.number
	if format == SXYZ {
		return [4]float64{n.Real, n.Imag, n.Jmag, n.Kmag}, nil
	}
	return [4]float64{n.Imag, n.Jmag, n.Kmag, n.Real}, nil
}

// Norm returns the Euclidean norm of the four components.
func (q Quaternion) Norm() (float64, error) {
	return quat.Abs(q.number), q.check()
}

// IsUnitary reports whether the squared norm is within UnitaryTolerance of one.
func (q Quaternion) IsUnitary() (bool, error) {
	if err := q.check(); err != nil {
		return false, err
	}
	return math.Abs(quatDot(q.number, q.number)-1) <= UnitaryTolerance, nil
}

// Equal reports exact equality of the components, also accepting the exact antipode since q and -q
// are the same rotation. Undefined quaternions are never equal.
func (q Quaternion) Equal(p Quaternion) bool {
	if !q.defined || !p.defined {
		return false
	}
	return q.number == p.number || q.number == quat.Scale(-1, p.number)
}

// IsNear reports whether the rotations of q and p are within tolerance. Antipodal quaternions are near
// each other.
func (q Quaternion) IsNear(p Quaternion, tolerance Angle) (bool, error) {
	if err := tolerance.check(); err != nil {
		return false, errors.Wrap(err, "tolerance")
	}
	diff, err := q.AngularDifferenceWith(p)
	if err != nil {
		return false, err
	}
	return diff.value <= math.Abs(tolerance.radians()), nil
}

// AngularDifferenceWith returns the angle in [0, π] of the rotation taking p onto q.
func (q Quaternion) AngularDifferenceWith(p Quaternion) (Angle, error) {
	if err := checkQuaternions(q, p); err != nil {
		return UndefinedAngle(), err
	}
	qn, pn := quat.Abs(q.number), quat.Abs(p.number)
	if qn == 0 || pn == 0 {
		return UndefinedAngle(), NewDomainError("angular difference with a zero quaternion")
	}
	rel := product(quat.Scale(1/qn, q.number), quat.Conj(quat.Scale(1/pn, p.number)))
	vector := math.Sqrt(rel.Imag*rel.Imag + rel.Jmag*rel.Jmag + rel.Kmag*rel.Kmag)
	return Radians(2 * math.Atan2(vector, math.Abs(rel.Real))), nil
}

// CrossMultiply returns q ⊗ p, the rotation that applies p then q.
func (q Quaternion) CrossMultiply(p Quaternion) (Quaternion, error) {
	if err := checkQuaternions(q, p); err != nil {
		return UndefinedQuaternion(), err
	}
	return quaternionFromNumber(product(q.number, p.number)), nil
}

// DotMultiply returns the component-wise product of q and p.
func (q Quaternion) DotMultiply(p Quaternion) (Quaternion, error) {
	if err := checkQuaternions(q, p); err != nil {
		return UndefinedQuaternion(), err
	}
	return quaternionFromNumber(quat.Number{
		Real: q.number.Real * p.number.Real,
		Imag: q.number.Imag * p.number.Imag,
		Jmag: q.number.Jmag * p.number.Jmag,
		Kmag: q.number.Kmag * p.number.Kmag,
	}), nil
}

func quatDot(a, b quat.Number) float64 {
	return a.Real*b.Real + a.Imag*b.Imag + a.Jmag*b.Jmag + a.Kmag*b.Kmag
}

// DotProduct returns the four dimensional inner product of q and p.
func (q Quaternion) DotProduct(p Quaternion) (float64, error) {
	if err := checkQuaternions(q, p); err != nil {
		return math.NaN(), err
	}
	return quatDot(q.number, p.number), nil
}

// Add returns the component-wise sum.
func (q Quaternion) Add(p Quaternion) (Quaternion, error) {
	if err := checkQuaternions(q, p); err != nil {
		return UndefinedQuaternion(), err
	}
	return quaternionFromNumber(quat.Add(q.number, p.number)), nil
}

// Scale multiplies every component by f.
func (q Quaternion) Scale(f float64) (Quaternion, error) {
	if err := q.check(); err != nil {
		return UndefinedQuaternion(), err
	}
	return quaternionFromNumber(quat.Scale(f, q.number)), nil
}

// Divide returns q ⊗ p⁻¹.
func (q Quaternion) Divide(p Quaternion) (Quaternion, error) {
	inv, err := p.ToInverse()
	if err != nil {
		return UndefinedQuaternion(), err
	}
	return q.CrossMultiply(inv)
}

// Exp returns the quaternion exponential.
func (q Quaternion) Exp() (Quaternion, error) {
	if err := q.check(); err != nil {
		return UndefinedQuaternion(), err
	}
	return quaternionFromNumber(quat.Exp(q.number)), nil
}

// Log returns the quaternion logarithm. When the vector part vanishes the result is the real logarithm
// of the norm.
func (q Quaternion) Log() (Quaternion, error) {
	if err := q.check(); err != nil {
		return UndefinedQuaternion(), err
	}
	n := q.number
	if math.Sqrt(n.Imag*n.Imag+n.Jmag*n.Jmag+n.Kmag*n.Kmag) <= logVectorEpsilon {
		return quaternionFromNumber(quat.Number{Real: math.Log(quat.Abs(n))}), nil
	}
	return quaternionFromNumber(quat.Log(n)), nil
}

// Pow raises q to a real power through exp(t·log(q)). For a unit quaternion this scales the rotation
// angle by t about the same axis. Pow(1) returns q unchanged.
func (q Quaternion) Pow(t float64) (Quaternion, error) {
	if err := q.check(); err != nil {
		return UndefinedQuaternion(), err
	}
	if t == 1 {
		return q, nil
	}
	log, err := q.Log()
	if err != nil {
		return UndefinedQuaternion(), err
	}
	return quaternionFromNumber(quat.Exp(quat.Scale(t, log.number))), nil
}

// ToNormalized returns q scaled to unit norm.
func (q Quaternion) ToNormalized() (Quaternion, error) {
	if err := q.check(); err != nil {
		return UndefinedQuaternion(), err
	}
	norm := quat.Abs(q.number)
	if norm == 0 {
		return UndefinedQuaternion(), NewDomainError("cannot normalize a zero quaternion")
	}
	return quaternionFromNumber(quat.Scale(1/norm, q.number)), nil
}

// Normalize scales q to unit norm in place.
func (q *Quaternion) Normalize() error {
	return q.assign(q.ToNormalized())
}

// ToConjugate returns q with its vector part negated.
func (q Quaternion) ToConjugate() (Quaternion, error) {
	if err := q.check(); err != nil {
		return UndefinedQuaternion(), err
	}
	return quaternionFromNumber(quat.Conj(q.number)), nil
}

// Conjugate negates the vector part in place.
func (q *Quaternion) Conjugate() error {
	return q.assign(q.ToConjugate())
}

// ToInverse returns the multiplicative inverse, which is the conjugate for a unit quaternion.
func (q Quaternion) ToInverse() (Quaternion, error) {
	if err := q.check(); err != nil {
		return UndefinedQuaternion(), err
	}
	if quat.Abs(q.number) == 0 {
		return UndefinedQuaternion(), NewDomainError("cannot invert a zero quaternion")
	}
	return quaternionFromNumber(quat.Inv(q.number)), nil
}

// Inverse replaces q by its inverse.
func (q *Quaternion) Inverse() error {
	return q.assign(q.ToInverse())
}

// ToRectified returns q or -q, whichever has a non-negative scalar part.
func (q Quaternion) ToRectified() (Quaternion, error) {
	if err := q.check(); err != nil {
		return UndefinedQuaternion(), err
	}
	if q.number.Real < 0 {
		return quaternionFromNumber(quat.Scale(-1, q.number)), nil
	}
	return q, nil
}

// Rectify flips the sign of q in place when its scalar part is negative.
func (q *Quaternion) Rectify() error {
	return q.assign(q.ToRectified())
}

func (q *Quaternion) assign(result Quaternion, err error) error {
	if err != nil {
		return err
	}
	*q = result
	return nil
}

// RotateVector applies the rotation to v, computing the vector part of q ⊗ (v, 0) ⊗ q*.
func (q Quaternion) RotateVector(v r3.Vector) (r3.Vector, error) {
	unitary, err := q.IsUnitary()
	if err != nil {
		return r3.Vector{}, err
	}
	if !unitary {
		return r3.Vector{}, NewDomainError("cannot rotate a vector with non unitary quaternion %v", q)
	}
	pure := quat.Number{Imag: v.X, Jmag: v.Y, Kmag: v.Z}
	rotated := product(product(q.number, pure), quat.Conj(q.number))
	return r3.Vector{X: rotated.Imag, Y: rotated.Jmag, Z: rotated.Kmag}, nil
}

// Lerp linearly interpolates the components of a and b. The result is not normalized.
func Lerp(a, b Quaternion, ratio float64) (Quaternion, error) {
	if err := checkInterpolation(a, b, ratio); err != nil {
		return UndefinedQuaternion(), err
	}
	return quaternionFromNumber(quat.Add(quat.Scale(1-ratio, a.number), quat.Scale(ratio, b.number))), nil
}

// Nlerp is Lerp followed by normalization.
func Nlerp(a, b Quaternion, ratio float64) (Quaternion, error) {
	lerp, err := Lerp(a, b, ratio)
	if err != nil {
		return UndefinedQuaternion(), err
	}
	return lerp.ToNormalized()
}

// Slerp interpolates along the shorter great arc between a and b. Above SlerpLinearThreshold the
// quaternions are close enough that Nlerp is used instead.
func Slerp(a, b Quaternion, ratio float64) (Quaternion, error) {
	if err := checkInterpolation(a, b, ratio); err != nil {
		return UndefinedQuaternion(), err
	}
	switch {
	case ratio == 0:
		return a, nil
	case ratio == 1:
		return b, nil
	case a.Equal(b):
		return a, nil
	}
	target := b.number
	dot := quatDot(a.number, target)
	if dot < 0 {
		target = quat.Scale(-1, target)
		dot = -dot
	}
	if dot > SlerpLinearThreshold {
		return Nlerp(a, quaternionFromNumber(target), ratio)
	}
	theta := math.Acos(utils.Clamp(dot, -1, 1))
	sinTheta := math.Sin(theta)
	wa := math.Sin((1-ratio)*theta) / sinTheta
	wb := math.Sin(ratio*theta) / sinTheta
	return quaternionFromNumber(quat.Add(quat.Scale(wa, a.number), quat.Scale(wb, target))).ToNormalized()
}

func checkInterpolation(a, b Quaternion, ratio float64) error {
	if err := checkQuaternions(a, b); err != nil {
		return err
	}
	if !(ratio >= 0 && ratio <= 1) {
		return NewDomainError("interpolation ratio %v outside [0, 1]", ratio)
	}
	return nil
}

// ToString formats the components in format order, e.g. "[0.0, 0.0, 0.0, 1.0]".
func (q Quaternion) ToString(format QuaternionFormat) (string, error) {
	return q.ToStringWithPrecision(-1, format)
}

// ToStringWithPrecision formats every component with a fixed number of decimals. A negative precision
// selects the shortest exact form used by ToString.
func (q Quaternion) ToStringWithPrecision(precision int, format QuaternionFormat) (string, error) {
	components, err := q.ToVector(format)
	if err != nil {
		return "", err
	}
	return formatList(components[:], func(v float64) string { return formatRealPrecision(v, precision) }), nil
}

func (q Quaternion) String() string {
	if !q.defined {
		return "Undefined"
	}
	s, _ := q.ToString(XYZS)
	return s
}

// ParseQuaternion reads four bracketed components in format order.
func ParseQuaternion(s string, format QuaternionFormat) (Quaternion, error) {
	values, err := parseRealList(s, 4)
	if err != nil {
		return UndefinedQuaternion(), NewParseError("quaternion", s, err)
	}
	return NewQuaternion(values[0], values[1], values[2], values[3], format), nil
}
