package geometry

import (
	"fmt"
	"math"
)

// planeEpsilon is the smallest projection denominator considered
// non-singular. Rays closer to parallel than this cannot be
// projected onto the plane.
const planeEpsilon = 1e-12

// XYZ is a 3D point or direction in angle space.
type XYZ struct {
	X float64
	Y float64
	Z float64
}

// RotationAboutY returns the rotation about the Y axis, where 0
// rotation points along the -Z axis and positive rotation heads
// towards the -X axis.
func (p XYZ) RotationAboutY() float64 {
	return math.Atan2(-p.X, -p.Z)
}

// ProjectOntoPlane projects from the origin through p onto the plane.
// Solving A*s*x + B*s*y + C*s*z + D = 0 for the scale s gives
// s = -D / (A*x + B*y + C*z); the projection is (s*x, s*y, s*z).
// Returns an error when the ray through p is parallel to the plane.
func (p XYZ) ProjectOntoPlane(pl Plane) (XYZ, error) {
	denom := pl.A*p.X + pl.B*p.Y + pl.C*p.Z
	if math.Abs(denom) < planeEpsilon {
		return XYZ{}, fmt.Errorf("ray (%g, %g, %g) is parallel to plane %v", p.X, p.Y, p.Z, pl)
	}
	s := -pl.D / denom
	return XYZ{X: s * p.X, Y: s * p.Y, Z: s * p.Z}, nil
}

// DistanceFrom returns the Euclidean distance to another point.
func (p XYZ) DistanceFrom(q XYZ) float64 {
	dx := p.X - q.X
	dy := p.Y - q.Y
	dz := p.Z - q.Z
	return math.Sqrt(dx*dx + dy*dy + dz*dz)
}

// XZDistanceFrom returns the horizontal distance to another point,
// ignoring the Y components.
func (p XYZ) XZDistanceFrom(q XYZ) float64 {
	dx := p.X - q.X
	dz := p.Z - q.Z
	return math.Sqrt(dx*dx + dz*dz)
}
