package spatialmath

import (
	"encoding/json"

	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
)

// OrientationType defines what orientation representation a RawOrientation holds.
type OrientationType string

// The set of allowed representations for orientation.
const (
	NoOrientationType         = OrientationType("")
	QuaternionType            = OrientationType("quaternion")
	RotationVectorDegreesType = OrientationType("rotation_vector_degrees")
	RotationMatrixType        = OrientationType("rotation_matrix")
	EulerAnglesDegreesType    = OrientationType("euler_angles_degrees")
)

// defaultJSONSequence is used when euler angle JSON carries no sequence.
const defaultJSONSequence = ZYX

// RawOrientation holds the underlying type of orientation, and the value.
type RawOrientation struct {
	Type  OrientationType `json:"type"`
	Value json.RawMessage `json:"value"`
}

type quaternionJSON struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
	S float64 `json:"s"`
}

type rotationVectorJSON struct {
	Theta float64 `json:"th"`
	RX    float64 `json:"x"`
	RY    float64 `json:"y"`
	RZ    float64 `json:"z"`
}

type rotationMatrixJSON struct {
	Mat [9]float64 `json:"mat"`
}

type eulerAngleJSON struct {
	Phi      float64 `json:"phi"`
	Theta    float64 `json:"theta"`
	Psi      float64 `json:"psi"`
	Sequence string  `json:"sequence,omitempty"`
}

func newRawOrientation(t OrientationType, value interface{}) (RawOrientation, error) {
	bytes, err := json.Marshal(value)
	if err != nil {
		return RawOrientation{}, err
	}
	return RawOrientation{Type: t, Value: bytes}, nil
}

func (q Quaternion) rawOrientation() (RawOrientation, error) {
	if err := q.check(); err != nil {
		return RawOrientation{}, err
	}
	n := q.number
	return newRawOrientation(QuaternionType, quaternionJSON{X: n.Imag, Y: n.Jmag, Z: n.Kmag, S: n.Real})
}

func (rv RotationVector) rawOrientation() (RawOrientation, error) {
	if err := rv.check(); err != nil {
		return RawOrientation{}, err
	}
	return newRawOrientation(RotationVectorDegreesType, rotationVectorJSON{
		Theta: rv.angle.convert(Degree), RX: rv.axis.X, RY: rv.axis.Y, RZ: rv.axis.Z,
	})
}

func (rm RotationMatrix) rawOrientation() (RawOrientation, error) {
	if err := rm.check(); err != nil {
		return RawOrientation{}, err
	}
	var value rotationMatrixJSON
	for i, row := range rm.rows() {
		copy(value.Mat[3*i:], row)
	}
	return newRawOrientation(RotationMatrixType, value)
}

func (ea EulerAngle) rawOrientation() (RawOrientation, error) {
	if err := ea.check(); err != nil {
		return RawOrientation{}, err
	}
	return newRawOrientation(EulerAnglesDegreesType, eulerAngleJSON{
		Phi:      ea.phi.convert(Degree),
		Theta:    ea.theta.convert(Degree),
		Psi:      ea.psi.convert(Degree),
		Sequence: ea.sequence.String(),
	})
}

// NewRawOrientation encodes an orientation in its own representation.
func NewRawOrientation(o Orientation) (RawOrientation, error) {
	if o == nil {
		return RawOrientation{}, errors.New("cannot encode a nil orientation")
	}
	return o.rawOrientation()
}

// OrientationMap encodes an orientation as a generic map with "type" and "value" keys.
func OrientationMap(o Orientation) (map[string]interface{}, error) {
	raw, err := NewRawOrientation(o)
	if err != nil {
		return nil, err
	}
	var value map[string]interface{}
	if err := json.Unmarshal(raw.Value, &value); err != nil {
		return nil, err
	}
	return map[string]interface{}{"type": string(raw.Type), "value": value}, nil
}

// ParseOrientation will use the Type in RawOrientation to unmarshal the Value into the correct struct
// that implements Orientation. An empty RawOrientation yields the zero orientation.
func ParseOrientation(ro RawOrientation) (Orientation, error) {
	switch ro.Type {
	case NoOrientationType:
		return NewZeroOrientation(), nil
	case QuaternionType:
		var v quaternionJSON
		if err := json.Unmarshal(ro.Value, &v); err != nil {
			return nil, err
		}
		return asOrientation(QuaternionXYZS(v.X, v.Y, v.Z, v.S).ToNormalized())
	case RotationVectorDegreesType:
		var v rotationVectorJSON
		if err := json.Unmarshal(ro.Value, &v); err != nil {
			return nil, err
		}
		axis := r3.Vector{X: v.RX, Y: v.RY, Z: v.RZ}
		if axis.Norm() == 0 {
			return nil, NewDomainError("rotation vector axis is zero")
		}
		return asOrientation(NewRotationVector(axis.Normalize(), Degrees(v.Theta)))
	case RotationMatrixType:
		var v rotationMatrixJSON
		if err := json.Unmarshal(ro.Value, &v); err != nil {
			return nil, err
		}
		return asOrientation(NewRotationMatrix(v.Mat[:]))
	case EulerAnglesDegreesType:
		var v eulerAngleJSON
		if err := json.Unmarshal(ro.Value, &v); err != nil {
			return nil, err
		}
		seq := defaultJSONSequence
		if v.Sequence != "" {
			var err error
			if seq, err = ParseAxisSequence(v.Sequence); err != nil {
				return nil, err
			}
		}
		return asOrientation(NewEulerAngle(Degrees(v.Phi), Degrees(v.Theta), Degrees(v.Psi), seq))
	default:
		return nil, errors.Errorf("orientation type %s not recognized", ro.Type)
	}
}
