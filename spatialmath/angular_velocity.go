package spatialmath

import (
	"math"

	"github.com/golang/geo/r3"
)

// AngularVelocity contains angular velocity in rad/s across x/y/z axes.
type AngularVelocity r3.Vector

// OrientationToAngularVel treats o as the rotation accumulated over dt seconds and returns the constant
// angular velocity producing it: the rotation vector in radians divided by dt.
func OrientationToAngularVel(o Orientation, dt float64) (AngularVelocity, error) {
	if dt == 0 || math.IsNaN(dt) {
		return AngularVelocity{}, NewDomainError("angular velocity over a time difference of %v", dt)
	}
	rv, err := o.RotationVector()
	if err != nil {
		return AngularVelocity{}, err
	}
	v, err := rv.ToVector(Radian)
	if err != nil {
		return AngularVelocity{}, err
	}
	return AngularVelocity(v.Mul(1 / dt)), nil
}

// AngularVelocityBetween returns the angular velocity that rotates from into to over dt seconds.
func AngularVelocityBetween(from, to Orientation, dt float64) (AngularVelocity, error) {
	diff, err := OrientationBetween(from, to)
	if err != nil {
		return AngularVelocity{}, err
	}
	return OrientationToAngularVel(diff, dt)
}

// Vector returns the angular velocity as a vector.
func (av AngularVelocity) Vector() r3.Vector {
	return r3.Vector(av)
}
