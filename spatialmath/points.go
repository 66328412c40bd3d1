package spatialmath

import (
	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
	"github.com/samber/lo"
)

// RotatePoints applies o to every point. The rotation is converted to a matrix once.
func RotatePoints(o Orientation, points []r3.Vector) ([]r3.Vector, error) {
	if o == nil {
		return nil, errors.New("cannot rotate points with a nil orientation")
	}
	rm, err := o.RotationMatrix()
	if err != nil {
		return nil, err
	}
	return lo.Map(points, func(p r3.Vector, _ int) r3.Vector {
		return fromVec3(rm.matrix.Mul3x1(toVec3(p)))
	}), nil
}
