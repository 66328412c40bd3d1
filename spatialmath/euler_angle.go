package spatialmath

import (
	"math"
	"strconv"
	"strings"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
	"go.uber.org/multierr"

	"github.com/spatialkit/rotation/utils"
)

// AxisSequence names the axes of the three successive frame rotations of an EulerAngle, first rotation
// first. ZYX rotates by phi about Z, then theta about the new Y, then psi about the new X.
type AxisSequence int

// The supported axis sequences.
const (
	UndefinedAxisSequence AxisSequence = iota
	XYZ
	ZXY
	ZYX
)

var (
	xAxis = r3.Vector{X: 1}
	yAxis = r3.Vector{Y: 1}
	zAxis = r3.Vector{Z: 1}
)

// eulerExtraction holds the matrix terms a sequence reads its angles from.
type eulerExtraction struct {
	phi, sinTheta, cosTheta, psi float64
}

type axisSequenceInfo struct {
	name    string
	axes    [3]r3.Vector
	extract func(m mgl64.Mat3) eulerExtraction
}

var axisSequences = map[AxisSequence]axisSequenceInfo{
	// M = RZ(psi)·RY(theta)·RX(phi)
	XYZ: {"XYZ", [3]r3.Vector{xAxis, yAxis, zAxis}, func(m mgl64.Mat3) eulerExtraction {
		return eulerExtraction{
			phi:      math.Atan2(-m.At(2, 1), m.At(2, 2)),
			sinTheta: m.At(2, 0),
			cosTheta: math.Hypot(m.At(2, 1), m.At(2, 2)),
			psi:      math.Atan2(-m.At(1, 0), m.At(0, 0)),
		}
	}},
	// M = RY(psi)·RX(theta)·RZ(phi)
	ZXY: {"ZXY", [3]r3.Vector{zAxis, xAxis, yAxis}, func(m mgl64.Mat3) eulerExtraction {
		return eulerExtraction{
			phi:      math.Atan2(-m.At(1, 0), m.At(1, 1)),
			sinTheta: m.At(1, 2),
			cosTheta: math.Hypot(m.At(1, 0), m.At(1, 1)),
			psi:      math.Atan2(-m.At(0, 2), m.At(2, 2)),
		}
	}},
	// M = RX(psi)·RY(theta)·RZ(phi)
	ZYX: {"ZYX", [3]r3.Vector{zAxis, yAxis, xAxis}, func(m mgl64.Mat3) eulerExtraction {
		return eulerExtraction{
			phi:      math.Atan2(m.At(0, 1), m.At(0, 0)),
			sinTheta: -m.At(0, 2),
			cosTheta: math.Hypot(m.At(0, 0), m.At(0, 1)),
			psi:      math.Atan2(m.At(1, 2), m.At(2, 2)),
		}
	}},
}

func (seq AxisSequence) String() string {
	if info, ok := axisSequences[seq]; ok {
		return info.name
	}
	return "Undefined"
}

// ParseAxisSequence reads a sequence name such as "ZYX", case insensitively.
func ParseAxisSequence(s string) (AxisSequence, error) {
	for seq, info := range axisSequences {
		if strings.EqualFold(strings.TrimSpace(s), info.name) {
			return seq, nil
		}
	}
	return UndefinedAxisSequence, errors.Wrapf(ErrDomainViolation, "axis sequence %q not recognized", s)
}

func checkAxisSequence(seq AxisSequence) error {
	if _, ok := axisSequences[seq]; !ok {
		return errors.Wrapf(ErrDomainViolation, "axis sequence %v not supported", seq)
	}
	return nil
}

// elementaryAngle reads the angle of a matrix known to be a single frame rotation about axis.
func elementaryAngle(axis r3.Vector, m mgl64.Mat3) float64 {
	switch {
	case axis.X != 0:
		return math.Atan2(m.At(1, 2), m.At(1, 1))
	case axis.Y != 0:
		return math.Atan2(m.At(2, 0), m.At(0, 0))
	default:
		return math.Atan2(m.At(0, 1), m.At(0, 0))
	}
}

// decompose returns phi, theta and psi in radians such that composing the sequence reproduces m.
// When cos(theta) falls under GimbalLockThreshold psi is pinned to zero and phi is read from
// R_middle(theta)ᵀ·m, which is then a pure rotation about the first axis.
func decompose(seq AxisSequence, m mgl64.Mat3) (phi, theta, psi float64) {
	info := axisSequences[seq]
	e := info.extract(m)
	theta = math.Atan2(e.sinTheta, e.cosTheta)
	phi, psi = e.phi, e.psi
	if e.cosTheta < GimbalLockThreshold {
		psi = 0
		residual := elementaryMatrix(info.axes[1], theta).Transpose().Mul3(m)
		phi = elementaryAngle(info.axes[0], residual)
	}
	return phi, theta, psi
}

// EulerAngle represents a rotation as three successive frame rotations, phi then theta then psi, about
// the axes of its AxisSequence. The zero value is undefined.
type EulerAngle struct {
	phi, theta, psi Angle
	sequence        AxisSequence
}

// NewEulerAngle builds Euler angles. All three angles must be defined and the sequence supported.
func NewEulerAngle(phi, theta, psi Angle, seq AxisSequence) (EulerAngle, error) {
	if err := multierr.Combine(phi.check(), theta.check(), psi.check()); err != nil {
		return UndefinedEulerAngle(), err
	}
	if err := checkAxisSequence(seq); err != nil {
		return UndefinedEulerAngle(), err
	}
	return EulerAngle{phi: phi, theta: theta, psi: psi, sequence: seq}, nil
}

// NewEulerAngleFromVector reads phi, theta and psi from the components of v, expressed in unit.
func NewEulerAngleFromVector(v r3.Vector, unit AngleUnit, seq AxisSequence) (EulerAngle, error) {
	return NewEulerAngle(NewAngle(v.X, unit), NewAngle(v.Y, unit), NewAngle(v.Z, unit), seq)
}

// EulerAngleXYZ builds XYZ Euler angles.
func EulerAngleXYZ(phi, theta, psi Angle) (EulerAngle, error) {
	return NewEulerAngle(phi, theta, psi, XYZ)
}

// EulerAngleZXY builds ZXY Euler angles.
func EulerAngleZXY(phi, theta, psi Angle) (EulerAngle, error) {
	return NewEulerAngle(phi, theta, psi, ZXY)
}

// EulerAngleZYX builds ZYX Euler angles.
func EulerAngleZYX(phi, theta, psi Angle) (EulerAngle, error) {
	return NewEulerAngle(phi, theta, psi, ZYX)
}

// UnitEulerAngle returns zero ZYX angles.
func UnitEulerAngle() EulerAngle {
	return EulerAngle{phi: ZeroAngle(), theta: ZeroAngle(), psi: ZeroAngle(), sequence: ZYX}
}

// UndefinedEulerAngle returns the undefined Euler angles.
func UndefinedEulerAngle() EulerAngle {
	return EulerAngle{}
}

// EulerAngleFromQuaternion decomposes a unitary quaternion along seq. The result is in radians and
// rectified.
func EulerAngleFromQuaternion(q Quaternion, seq AxisSequence) (EulerAngle, error) {
	unitary, err := q.IsUnitary()
	if err != nil {
		return UndefinedEulerAngle(), err
	}
	if !unitary {
		return UndefinedEulerAngle(), NewDomainError("quaternion %v is not unitary", q)
	}
	return eulerAngleFromMatrix(quatToMatrix(q.number), seq)
}

// EulerAngleFromRotationVector decomposes a rotation vector along seq.
func EulerAngleFromRotationVector(rv RotationVector, seq AxisSequence) (EulerAngle, error) {
	q, err := QuaternionFromRotationVector(rv)
	if err != nil {
		return UndefinedEulerAngle(), err
	}
	return EulerAngleFromQuaternion(q, seq)
}

// EulerAngleFromRotationMatrix decomposes a rotation matrix along seq.
func EulerAngleFromRotationMatrix(rm RotationMatrix, seq AxisSequence) (EulerAngle, error) {
	if err := rm.check(); err != nil {
		return UndefinedEulerAngle(), err
	}
	return eulerAngleFromMatrix(rm.matrix, seq)
}

func eulerAngleFromMatrix(m mgl64.Mat3, seq AxisSequence) (EulerAngle, error) {
	if err := checkAxisSequence(seq); err != nil {
		return UndefinedEulerAngle(), err
	}
	phi, theta, psi := decompose(seq, m)
	return EulerAngle{phi: Radians(phi), theta: Radians(theta), psi: Radians(psi), sequence: seq}.ToRectified()
}

// IsDefined reports whether all three angles and the sequence are defined.
func (ea EulerAngle) IsDefined() bool {
	return ea.phi.IsDefined() && ea.theta.IsDefined() && ea.psi.IsDefined() && ea.sequence != UndefinedAxisSequence
}

func (ea EulerAngle) check() error {
	if !ea.IsDefined() {
		return NewUndefinedOperandError("euler angle")
	}
	return nil
}

// Phi returns the first rotation angle.
func (ea EulerAngle) Phi() (Angle, error) { return ea.phi, ea.check() }

// Theta returns the second rotation angle.
func (ea EulerAngle) Theta() (Angle, error) { return ea.theta, ea.check() }

// Psi returns the third rotation angle.
func (ea EulerAngle) Psi() (Angle, error) { return ea.psi, ea.check() }

// AxisSequence returns the sequence the angles apply to.
func (ea EulerAngle) AxisSequence() (AxisSequence, error) { return ea.sequence, ea.check() }

// IsUnitary reports whether all three angles are exactly zero.
func (ea EulerAngle) IsUnitary() (bool, error) {
	if err := ea.check(); err != nil {
		return false, err
	}
	return ea.phi.value == 0 && ea.theta.value == 0 && ea.psi.value == 0, nil
}

// IsGimbalLocked reports whether cos(theta) is under GimbalLockThreshold, where phi and psi are no longer
// separately determined.
func (ea EulerAngle) IsGimbalLocked() (bool, error) {
	if err := ea.check(); err != nil {
		return false, err
	}
	return math.Abs(math.Cos(ea.theta.radians())) < GimbalLockThreshold, nil
}

func rectifiedValue(a Angle) float64 {
	half := angleUnits[a.unit].period / 2
	return utils.NegativeZeroToZero(utils.ReduceRange(a.value, -half, half))
}

// ToRectified reduces every angle into [-half turn, half turn) of its own unit. When phi is then
// negative the equivalent triple (phi + half turn, half turn - theta, psi + half turn) is used instead, so
// phi always ends in [0, half turn). Rectification is idempotent.
func (ea EulerAngle) ToRectified() (EulerAngle, error) {
	if err := ea.check(); err != nil {
		return UndefinedEulerAngle(), err
	}
	phi, theta, psi := rectifiedValue(ea.phi), rectifiedValue(ea.theta), rectifiedValue(ea.psi)
	if phi < 0 {
		halfPhi := angleUnits[ea.phi.unit].period / 2
		// a tiny negative phi can round onto the half turn, in which case it is zero for our purposes
		if phi+halfPhi < halfPhi {
			phi += halfPhi
			theta = rectifiedValue(Angle{angleUnits[ea.theta.unit].period/2 - theta, ea.theta.unit})
			psi = rectifiedValue(Angle{psi + angleUnits[ea.psi.unit].period/2, ea.psi.unit})
		} else {
			phi = 0
		}
	}
	return EulerAngle{
		phi:      Angle{phi, ea.phi.unit},
		theta:    Angle{theta, ea.theta.unit},
		psi:      Angle{psi, ea.psi.unit},
		sequence: ea.sequence,
	}, nil
}

// Rectify replaces ea by its rectified form.
func (ea *EulerAngle) Rectify() error {
	rectified, err := ea.ToRectified()
	if err != nil {
		return err
	}
	*ea = rectified
	return nil
}

// alternate returns (phi + half turn, half turn - theta, psi + half turn), the other triple describing the
// same rotation.
func (ea EulerAngle) alternate() EulerAngle {
	half := func(a Angle) float64 { return angleUnits[a.unit].period / 2 }
	return EulerAngle{
		phi:      Angle{ea.phi.value + half(ea.phi), ea.phi.unit},
		theta:    Angle{half(ea.theta) - ea.theta.value, ea.theta.unit},
		psi:      Angle{ea.psi.value + half(ea.psi), ea.psi.unit},
		sequence: ea.sequence,
	}
}

func (ea EulerAngle) equalAngles(other EulerAngle) bool {
	return ea.phi.Equal(other.phi) && ea.theta.Equal(other.theta) && ea.psi.Equal(other.psi)
}

// Equal reports whether both triples share a sequence and have equal angles, either directly or through
// the alternate triple of other. Undefined Euler angles are never equal.
func (ea EulerAngle) Equal(other EulerAngle) bool {
	if !ea.IsDefined() || !other.IsDefined() || ea.sequence != other.sequence {
		return false
	}
	return ea.equalAngles(other) || ea.equalAngles(other.alternate())
}

// IsNear compares the rotations described by both triples, whatever their sequences.
func (ea EulerAngle) IsNear(other EulerAngle, tolerance Angle) (bool, error) {
	q, err := QuaternionFromEulerAngle(ea)
	if err != nil {
		return false, err
	}
	p, err := QuaternionFromEulerAngle(other)
	if err != nil {
		return false, err
	}
	return q.IsNear(p, tolerance)
}

// ToVector returns (phi, theta, psi) expressed in unit.
func (ea EulerAngle) ToVector(unit AngleUnit) (r3.Vector, error) {
	if err := ea.check(); err != nil {
		return r3.Vector{}, err
	}
	phi, err := ea.phi.In(unit)
	if err != nil {
		return r3.Vector{}, err
	}
	return r3.Vector{X: phi, Y: ea.theta.convert(unit), Z: ea.psi.convert(unit)}, nil
}

// ToString formats the angles in unit followed by the sequence, e.g. "[0, 0, 0] (ZYX)".
func (ea EulerAngle) ToString(unit AngleUnit) (string, error) {
	v, err := ea.ToVector(unit)
	if err != nil {
		return "", err
	}
	format := func(f float64) string { return strconv.FormatFloat(utils.NegativeZeroToZero(f), 'g', -1, 64) }
	return formatList([]float64{v.X, v.Y, v.Z}, format) + " (" + ea.sequence.String() + ")", nil
}

// String formats the angles in degrees.
func (ea EulerAngle) String() string {
	if !ea.IsDefined() {
		return "Undefined"
	}
	s, _ := ea.ToString(Degree)
	return s
}

// ParseEulerAngle reads the form produced by ToString, interpreting the values in unit.
func ParseEulerAngle(s string, unit AngleUnit) (EulerAngle, error) {
	trimmed := strings.TrimSpace(s)
	open := strings.LastIndex(trimmed, "(")
	if open < 0 || !strings.HasSuffix(trimmed, ")") {
		return UndefinedEulerAngle(), NewParseError("euler angle", s, errors.New("missing axis sequence"))
	}
	seq, err := ParseAxisSequence(trimmed[open+1 : len(trimmed)-1])
	if err != nil {
		return UndefinedEulerAngle(), NewParseError("euler angle", s, err)
	}
	values, err := parseRealList(trimmed[:open], 3)
	if err != nil {
		return UndefinedEulerAngle(), NewParseError("euler angle", s, err)
	}
	ea, err := NewEulerAngleFromVector(r3.Vector{X: values[0], Y: values[1], Z: values[2]}, unit, seq)
	if err != nil {
		return UndefinedEulerAngle(), NewParseError("euler angle", s, err)
	}
	return ea, nil
}
