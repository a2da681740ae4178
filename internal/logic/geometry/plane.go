package geometry

import (
	"fmt"
	"math"
)

// Plane is the screen surface expressed as A*x + B*y + C*z + D = 0.
// The normal (A, B, C) is unit length and points towards the origin,
// so D is also the distance of the plane from the origin.
type Plane struct {
	A float64
	B float64
	C float64
	D float64
}

// VerticalPlaneThrough constructs the vertical plane (B = 0) that
// contains both p and q, oriented so the normal points towards the
// origin. Since the plane is vertical only the X and Z components of
// the two points matter. Returns an error when p and q coincide in
// X-Z or the plane would pass through the origin.
func VerticalPlaneThrough(p, q XYZ) (Plane, error) {
	// Normal is perpendicular to the X-Z segment from p to q.
	a := q.Z - p.Z
	c := -(q.X - p.X)
	length := math.Sqrt(a*a + c*c)
	if length < planeEpsilon {
		return Plane{}, fmt.Errorf("points (%g, %g) and (%g, %g) coincide in X-Z", p.X, p.Z, q.X, q.Z)
	}
	a /= length
	c /= length
	d := -(a*p.X + c*p.Z)
	if d < 0 {
		a, c, d = -a, -c, -d
	}
	if d < planeEpsilon {
		return Plane{}, fmt.Errorf("plane through (%g, %g, %g) and (%g, %g, %g) passes through the origin", p.X, p.Y, p.Z, q.X, q.Y, q.Z)
	}
	return Plane{A: a, B: 0, C: c, D: d}, nil
}

// DistanceFromOrigin returns the distance from the origin to the plane.
func (pl Plane) DistanceFromOrigin() float64 {
	return pl.D
}

// ClosestPointToOrigin returns the foot of the perpendicular dropped
// from the origin onto the plane.
func (pl Plane) ClosestPointToOrigin() XYZ {
	return XYZ{X: -pl.D * pl.A, Y: -pl.D * pl.B, Z: -pl.D * pl.C}
}

func (pl Plane) String() string {
	return fmt.Sprintf("%gx + %gy + %gz + %g = 0", pl.A, pl.B, pl.C, pl.D)
}
