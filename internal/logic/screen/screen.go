// Package screen fits the physical display surface to the measured
// mapping table, producing the plane equation, field of view and
// center of projection that the mesh builder consumes.
package screen

import (
	"errors"
	"fmt"
	"math"

	"github.com/hljgirl/distortionizer/internal/config"
	"github.com/hljgirl/distortionizer/internal/debug"
	"github.com/hljgirl/distortionizer/internal/logic/geometry"
	"github.com/hljgirl/distortionizer/internal/logic/mapping"
)

var (
	// ErrInsufficientData means the mapping table does not contain
	// enough non-degenerate samples to fit a screen plane.
	ErrInsufficientData = errors.New("insufficient data for screen fit")

	// ErrDegenerateScreen means the fitted or supplied bounds yield a
	// screen with non-positive width or height, or a plane that
	// cannot be projected onto.
	ErrDegenerateScreen = errors.New("degenerate screen geometry")
)

// Description is the analytic description of the fitted screen.
// The plane, extreme points and maximum Y extent are byproducts of
// fitting that the mesh builder requires, so they are carried here
// rather than recomputed.
type Description struct {
	HFOVDegrees    float64
	VFOVDegrees    float64
	OverlapPercent float64
	XCOP           float64 // center of projection, [0,1] screen units
	YCOP           float64

	Plane       geometry.Plane
	ScreenLeft  geometry.XYZ // left-most point on the screen plane
	ScreenRight geometry.XYZ // right-most point on the screen plane
	MaxY        float64      // maximum |y| over all screen-plane points
}

// Fit produces a screen description from the mapping table and the
// run parameters. When ComputeScreenBounds is false the supplied
// bounds are used analytically (reflected for the right eye) and the
// table is not consulted.
func Fit(table mapping.Table, cfg *config.Config) (Description, error) {
	if !cfg.ComputeScreenBounds {
		bounds := cfg.Bounds()
		if cfg.UseRightEye {
			bounds = bounds.ReflectedHorizontally()
		}
		return FromBounds(bounds, cfg.Depth, cfg.OverlapPercent)
	}
	return fit(table, cfg.OverlapPercent, cfg.Verbose())
}

// fit determines the screen from the angle-space sample directions.
// The plane is not a free least-squares fit: it is the vertical plane
// through the leftmost and rightmost sample directions, which keeps
// the center sample's rotation about Y aligned with the screen's
// forward-facing normal.
func fit(table mapping.Table, overlapPercent float64, verbose bool) (Description, error) {
	if len(table) < 3 {
		return Description{}, fmt.Errorf("%w: need at least 3 samples, got %d", ErrInsufficientData, len(table))
	}

	// Horizontal extremes by rotation about Y: the leftmost sample
	// has the largest rotation (towards -X), the rightmost the
	// smallest.
	leftIdx, rightIdx := 0, 0
	leftAngle := table[0].XYZ.RotationAboutY()
	rightAngle := leftAngle
	for i, m := range table[1:] {
		angle := m.XYZ.RotationAboutY()
		if angle > leftAngle {
			leftAngle = angle
			leftIdx = i + 1
		}
		if angle < rightAngle {
			rightAngle = angle
			rightIdx = i + 1
		}
	}
	hFOVRadians := leftAngle - rightAngle
	if hFOVRadians >= math.Pi {
		return Description{}, fmt.Errorf("%w: horizontal span %.4f rad wraps behind the viewer", ErrDegenerateScreen, hFOVRadians)
	}
	debug.Verbose("fit: leftmost sample %d at %.4f rad, rightmost sample %d at %.4f rad", leftIdx, leftAngle, rightIdx, rightAngle)

	plane, err := geometry.VerticalPlaneThrough(table[leftIdx].XYZ, table[rightIdx].XYZ)
	if err != nil {
		return Description{}, fmt.Errorf("%w: %v", ErrDegenerateScreen, err)
	}
	debug.Verbose("fit: screen plane %v", plane)

	screenLeft, err := table[leftIdx].XYZ.ProjectOntoPlane(plane)
	if err != nil {
		return Description{}, fmt.Errorf("%w: leftmost sample %d: %v", ErrDegenerateScreen, leftIdx, err)
	}
	screenRight, err := table[rightIdx].XYZ.ProjectOntoPlane(plane)
	if err != nil {
		return Description{}, fmt.Errorf("%w: rightmost sample %d: %v", ErrDegenerateScreen, rightIdx, err)
	}

	// Vertical extent: largest |y| among all samples projected onto
	// the screen plane.
	maxY := 0.0
	for i, m := range table {
		p, err := m.XYZ.ProjectOntoPlane(plane)
		if err != nil {
			return Description{}, fmt.Errorf("%w: sample %d: %v", ErrDegenerateScreen, i, err)
		}
		if y := math.Abs(p.Y); y > maxY {
			maxY = y
		}
	}

	width := screenLeft.XZDistanceFrom(screenRight)
	height := 2 * maxY
	if width <= 0 || height <= 0 {
		return Description{}, fmt.Errorf("%w: screen is %g x %g", ErrDegenerateScreen, width, height)
	}

	// The vertical field of view is realized at the point on the
	// screen closest to the eye.
	vFOVRadians := 2 * math.Atan2(maxY, plane.DistanceFromOrigin())

	// Center of projection: where the forward axis (the perpendicular
	// from the origin) meets the screen, as a fraction of the
	// left-to-right span. The fitted screen is vertically symmetric
	// about y = 0, so yCOP is the vertical midpoint.
	cop := plane.ClosestPointToOrigin()
	ux := (screenRight.X - screenLeft.X) / width
	uz := (screenRight.Z - screenLeft.Z) / width
	xCOP := ((cop.X-screenLeft.X)*ux + (cop.Z-screenLeft.Z)*uz) / width

	desc := Description{
		HFOVDegrees:    hFOVRadians * 180 / math.Pi,
		VFOVDegrees:    vFOVRadians * 180 / math.Pi,
		OverlapPercent: overlapPercent,
		XCOP:           xCOP,
		YCOP:           0.5,
		Plane:          plane,
		ScreenLeft:     screenLeft,
		ScreenRight:    screenRight,
		MaxY:           maxY,
	}

	if verbose {
		if rms, ok := planarityRMS(table); ok {
			debug.Verbose("fit: least-squares planarity residual RMS %.6g", rms)
		}
	}
	debug.Screen(desc.HFOVDegrees, desc.VFOVDegrees, desc.OverlapPercent, desc.XCOP, desc.YCOP)

	return desc, nil
}

// FromBounds derives the screen description analytically from a
// supplied rectangle at the given eye-to-screen depth. The screen
// plane is z = -depth with the normal facing the viewer.
func FromBounds(bounds geometry.RectBounds, depth, overlapPercent float64) (Description, error) {
	width := bounds.Width()
	height := bounds.Height()
	if width <= 0 || height <= 0 {
		return Description{}, fmt.Errorf("%w: supplied bounds are %g x %g", ErrDegenerateScreen, width, height)
	}
	if depth <= 0 {
		return Description{}, fmt.Errorf("%w: depth %g is not positive", ErrDegenerateScreen, depth)
	}

	hFOVRadians := math.Atan2(-bounds.Left, depth) - math.Atan2(-bounds.Right, depth)
	vFOVRadians := math.Atan2(bounds.Top, depth) - math.Atan2(bounds.Bottom, depth)

	return Description{
		HFOVDegrees:    hFOVRadians * 180 / math.Pi,
		VFOVDegrees:    vFOVRadians * 180 / math.Pi,
		OverlapPercent: overlapPercent,
		XCOP:           -bounds.Left / width,
		YCOP:           -bounds.Bottom / height,
		Plane:          geometry.Plane{A: 0, B: 0, C: 1, D: depth},
		ScreenLeft:     geometry.XYZ{X: bounds.Left, Y: 0, Z: -depth},
		ScreenRight:    geometry.XYZ{X: bounds.Right, Y: 0, Z: -depth},
		MaxY:           math.Max(math.Abs(bounds.Top), math.Abs(bounds.Bottom)),
	}, nil
}

// Overlap derives the horizontal overlap percent between the two
// eyes' screens: the intersection of their horizontal angular
// intervals as a fraction of the wider eye's span. Disjoint screens
// yield 0.
func Overlap(left, right Description) float64 {
	lLo, lHi := horizontalInterval(left)
	rLo, rHi := horizontalInterval(right)
	span := math.Max(lHi-lLo, rHi-rLo)
	if span <= 0 {
		return 0
	}
	shared := math.Min(lHi, rHi) - math.Max(lLo, rLo)
	if shared <= 0 {
		return 0
	}
	return 100 * shared / span
}

// horizontalInterval returns the screen's angular extent about Y as
// (min, max) rotations.
func horizontalInterval(d Description) (lo, hi float64) {
	return d.ScreenRight.RotationAboutY(), d.ScreenLeft.RotationAboutY()
}
