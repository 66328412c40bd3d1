package cli

import (
	"strings"

	"github.com/pkg/errors"

	"github.com/spatialkit/rotation/spatialmath"
)

// Representations accepted by --from and --to.
const (
	quaternionRepresentation = "quaternion"
	vectorRepresentation     = "vector"
	matrixRepresentation     = "matrix"
	eulerRepresentation      = "euler"
)

// parseOrientation reads text in the given representation. Rotation vectors are read as
// "[x, y, z]" whose magnitude is the angle in the configured unit. Euler angles are read either as
// "[phi, theta, psi]" along the configured sequence or as "[phi, theta, psi] (SEQ)".
func parseOrientation(s *settings, representation, text string) (spatialmath.Orientation, error) {
	switch representation {
	case quaternionRepresentation:
		q, err := parseQuaternion(s, text)
		if err != nil {
			return nil, err
		}
		return q, nil
	case vectorRepresentation:
		v, err := spatialmath.ParseVector(text)
		if err != nil {
			return nil, err
		}
		rv, err := spatialmath.NewRotationVectorFromVector(v, s.unit)
		if err != nil {
			return nil, err
		}
		return rv, nil
	case matrixRepresentation:
		rm, err := spatialmath.ParseRotationMatrix(text)
		if err != nil {
			return nil, err
		}
		return rm, nil
	case eulerRepresentation:
		if strings.Contains(text, "(") {
			ea, err := spatialmath.ParseEulerAngle(text, s.unit)
			if err != nil {
				return nil, err
			}
			return ea, nil
		}
		v, err := spatialmath.ParseVector(text)
		if err != nil {
			return nil, err
		}
		ea, err := spatialmath.NewEulerAngleFromVector(v, s.unit, s.sequence)
		if err != nil {
			return nil, err
		}
		return ea, nil
	default:
		return nil, errors.Errorf("unknown representation %q, expected %s", representation, representationUsage)
	}
}

// parseQuaternion reads a quaternion in the configured format, normalizing it with a warning when it
// is not unitary.
func parseQuaternion(s *settings, text string) (spatialmath.Quaternion, error) {
	q, err := spatialmath.ParseQuaternion(text, s.format)
	if err != nil {
		return spatialmath.UndefinedQuaternion(), err
	}
	unitary, err := q.IsUnitary()
	if err != nil {
		return spatialmath.UndefinedQuaternion(), err
	}
	if unitary {
		return q, nil
	}
	warningf(s.errWriter, "quaternion %s is not unitary, normalizing it", q)
	return q.ToNormalized()
}

// formatOrientation prints o in the given representation, honoring the configured unit, sequence,
// quaternion format and precision.
func formatOrientation(s *settings, o spatialmath.Orientation, representation string) (string, error) {
	switch representation {
	case quaternionRepresentation:
		q, err := o.Quaternion()
		if err != nil {
			return "", err
		}
		return q.ToStringWithPrecision(s.precision, s.format)
	case vectorRepresentation:
		rv, err := o.RotationVector()
		if err != nil {
			return "", err
		}
		v, err := rv.ToVector(s.unit)
		if err != nil {
			return "", err
		}
		return spatialmath.FormatVector(v, s.precision), nil
	case matrixRepresentation:
		rm, err := o.RotationMatrix()
		if err != nil {
			return "", err
		}
		rows := make([]string, 0, 3)
		for i := 0; i < 3; i++ {
			row, err := rm.Row(i)
			if err != nil {
				return "", err
			}
			rows = append(rows, spatialmath.FormatVector(row, s.precision))
		}
		return "[" + strings.Join(rows, ", ") + "]", nil
	case eulerRepresentation:
		ea, err := o.EulerAngle(s.sequence)
		if err != nil {
			return "", err
		}
		locked, err := ea.IsGimbalLocked()
		if err != nil {
			return "", err
		}
		if locked {
			s.logger.Warnw("euler angles are gimbal locked, psi is pinned to zero", "sequence", s.sequence, "angles", ea)
		}
		if s.precision < 0 {
			return ea.ToString(s.unit)
		}
		v, err := ea.ToVector(s.unit)
		if err != nil {
			return "", err
		}
		return spatialmath.FormatVector(v, s.precision) + " (" + s.sequence.String() + ")", nil
	default:
		return "", errors.Errorf("unknown representation %q, expected %s", representation, representationUsage)
	}
}
