package spatialmath

const (
	// UnitaryTolerance bounds |‖q‖² - 1| for a quaternion to count as unitary, and |‖axis‖ - 1| for a
	// rotation vector axis.
	UnitaryTolerance = 1e-12

	// OrthonormalityTolerance bounds the column norm, column orthogonality and determinant errors
	// accepted when validating a rotation matrix.
	OrthonormalityTolerance = 1e-12

	// SlerpLinearThreshold is the quaternion dot product above which Slerp falls back to Nlerp.
	SlerpLinearThreshold = 0.9995

	// GimbalLockThreshold is the value of cos(theta) under which an Euler decomposition is treated as
	// gimbal locked: psi is pinned to zero and phi absorbs the residual rotation.
	GimbalLockThreshold = 1e-9

	// antiparallelTolerance bounds |from × to| of normalized vectors for ShortestRotation to treat
	// them as opposite.
	antiparallelTolerance = 1e-15

	// defaultAngularToleranceRadians backs DefaultAngularTolerance.
	defaultAngularToleranceRadians = 1e-9
)

// DefaultAngularTolerance is the tolerance used by OrientationAlmostEqual when none is given.
var DefaultAngularTolerance = Radians(defaultAngularToleranceRadians)
