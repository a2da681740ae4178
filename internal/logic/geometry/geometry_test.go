package geometry

import (
	"math"
	"testing"
)

const epsilon = 1e-9 // tolerance for float comparisons

func TestRotationAboutY_FixedPoints(t *testing.T) {
	cases := []struct {
		name string
		p    XYZ
		want float64
	}{
		{"straight_ahead", XYZ{0, 0, -1}, 0},
		{"left", XYZ{-1, 0, 0}, math.Pi / 2},
		{"right", XYZ{1, 0, 0}, -math.Pi / 2},
		{"behind_left", XYZ{-1, 0, 1}, 3 * math.Pi / 4},
		{"half_left", XYZ{-1, 0, -1}, math.Pi / 4},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := tc.p.RotationAboutY()
			if math.Abs(got-tc.want) > epsilon {
				t.Errorf("RotationAboutY(%v) = %v, want %v", tc.p, got, tc.want)
			}
		})
	}
}

func TestRotationAboutY_IgnoresY(t *testing.T) {
	flat := XYZ{-1, 0, -1}
	raised := XYZ{-1, 5, -1}
	if math.Abs(flat.RotationAboutY()-raised.RotationAboutY()) > epsilon {
		t.Errorf("rotation should not depend on Y: %v vs %v", flat.RotationAboutY(), raised.RotationAboutY())
	}
}

func TestProjectOntoPlane_ResultOnPlaneAndCollinear(t *testing.T) {
	cases := []struct {
		name string
		pl   Plane
		p    XYZ
	}{
		{"unit_z_plane", Plane{0, 0, 1, 1}, XYZ{0.3, -0.2, -1.5}},
		{"tilted_plane", Plane{0.6, 0, 0.8, 2}, XYZ{-0.4, 0.7, -2}},
		{"far_plane", Plane{0, 0, 1, 10}, XYZ{1, 1, -0.5}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			q, err := tc.p.ProjectOntoPlane(tc.pl)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			// On the plane: A*x + B*y + C*z + D ~ 0.
			residual := tc.pl.A*q.X + tc.pl.B*q.Y + tc.pl.C*q.Z + tc.pl.D
			if math.Abs(residual) > epsilon {
				t.Errorf("projection not on plane, residual = %v", residual)
			}
			// Collinear with the origin and p: q = s*p for one scale.
			s := 0.0
			switch {
			case math.Abs(tc.p.X) > epsilon:
				s = q.X / tc.p.X
			case math.Abs(tc.p.Y) > epsilon:
				s = q.Y / tc.p.Y
			default:
				s = q.Z / tc.p.Z
			}
			scaled := XYZ{s * tc.p.X, s * tc.p.Y, s * tc.p.Z}
			if q.DistanceFrom(scaled) > epsilon {
				t.Errorf("projection %v is not collinear with origin and %v", q, tc.p)
			}
		})
	}
}

func TestProjectOntoPlane_ParallelRayFails(t *testing.T) {
	pl := Plane{0, 0, 1, 1} // z = -1
	parallel := XYZ{1, 0.5, 0}
	if _, err := parallel.ProjectOntoPlane(pl); err == nil {
		t.Error("expected error for ray parallel to plane, got nil")
	}
}

func TestDistanceFrom(t *testing.T) {
	a := XYZ{1, 2, 3}
	b := XYZ{4, 6, 3}
	if got := a.DistanceFrom(b); math.Abs(got-5) > epsilon {
		t.Errorf("DistanceFrom = %v, want 5", got)
	}
	if got := a.DistanceFrom(a); got != 0 {
		t.Errorf("distance to self = %v, want 0", got)
	}
}

func TestXZDistanceFrom_IgnoresY(t *testing.T) {
	a := XYZ{0, 10, 0}
	b := XYZ{3, -7, 4}
	if got := a.XZDistanceFrom(b); math.Abs(got-5) > epsilon {
		t.Errorf("XZDistanceFrom = %v, want 5", got)
	}
}

func TestVerticalPlaneThrough_NormalTowardsOrigin(t *testing.T) {
	cases := []struct {
		name string
		p, q XYZ
	}{
		{"straight_ahead", XYZ{-1, 0, -2}, XYZ{1, 0, -2}},
		{"rotated", XYZ{-1, 0.5, -1}, XYZ{2, -0.25, -3}},
		{"behind", XYZ{-1, 0, 2}, XYZ{1, 0, 2}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			pl, err := VerticalPlaneThrough(tc.p, tc.q)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if pl.B != 0 {
				t.Errorf("plane is not vertical: B = %v", pl.B)
			}
			norm := math.Sqrt(pl.A*pl.A + pl.C*pl.C)
			if math.Abs(norm-1) > epsilon {
				t.Errorf("normal is not unit length: %v", norm)
			}
			if pl.D <= 0 {
				t.Errorf("normal does not point towards the origin: D = %v", pl.D)
			}
			// Both defining points satisfy the equation.
			for _, pt := range []XYZ{tc.p, tc.q} {
				if r := pl.A*pt.X + pl.C*pt.Z + pl.D; math.Abs(r) > epsilon {
					t.Errorf("point %v not on plane, residual %v", pt, r)
				}
			}
		})
	}
}

func TestVerticalPlaneThrough_Degenerate(t *testing.T) {
	if _, err := VerticalPlaneThrough(XYZ{1, 0, -1}, XYZ{1, 5, -1}); err == nil {
		t.Error("expected error for points coinciding in X-Z, got nil")
	}
	if _, err := VerticalPlaneThrough(XYZ{-1, 0, -1}, XYZ{1, 0, 1}); err == nil {
		t.Error("expected error for plane through the origin, got nil")
	}
}

func TestPlaneClosestPointToOrigin(t *testing.T) {
	pl := Plane{0, 0, 1, 2} // z = -2
	got := pl.ClosestPointToOrigin()
	want := XYZ{0, 0, -2}
	if got.DistanceFrom(want) > epsilon {
		t.Errorf("ClosestPointToOrigin = %v, want %v", got, want)
	}
}

func TestReflectedHorizontally_Involution(t *testing.T) {
	b := RectBounds{Left: -0.3, Right: 0.5, Top: 0.2, Bottom: -0.4}
	if got := b.ReflectedHorizontally().ReflectedHorizontally(); got != b {
		t.Errorf("double reflection = %+v, want original %+v", got, b)
	}
}

func TestReflectedHorizontally_SwapsAndNegates(t *testing.T) {
	b := RectBounds{Left: -0.3, Right: 0.5, Top: 0.2, Bottom: -0.4}
	got := b.ReflectedHorizontally()
	want := RectBounds{Left: -0.5, Right: 0.3, Top: 0.2, Bottom: -0.4}
	if got != want {
		t.Errorf("ReflectedHorizontally = %+v, want %+v", got, want)
	}
}

func TestRectBoundsWidthHeight(t *testing.T) {
	b := RectBounds{Left: -0.25, Right: 0.75, Top: 0.5, Bottom: -0.5}
	if math.Abs(b.Width()-1) > epsilon {
		t.Errorf("Width = %v, want 1", b.Width())
	}
	if math.Abs(b.Height()-1) > epsilon {
		t.Errorf("Height = %v, want 1", b.Height())
	}
}
