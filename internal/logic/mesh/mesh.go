// Package mesh builds the distortion-correction mesh: for every
// sample in the mapping table it re-projects the angle-space
// direction through the fitted screen plane and pairs the resulting
// normalized screen position with the normalized raw sample position.
package mesh

import (
	"errors"
	"fmt"

	"github.com/hljgirl/distortionizer/internal/debug"
	"github.com/hljgirl/distortionizer/internal/logic/geometry"
	"github.com/hljgirl/distortionizer/internal/logic/mapping"
	"github.com/hljgirl/distortionizer/internal/logic/screen"
)

// ErrProjectionSingular means a sample's angle-space ray is parallel
// to the fitted screen plane. A single singular sample fails the
// whole mesh build: a mesh silently missing rows would corrupt
// downstream rendering.
var ErrProjectionSingular = errors.New("projection ray parallel to screen plane")

// Entry is one mesh correspondence. From is the physical-display
// normalized coordinate obtained by projecting the sample through the
// screen plane; To is the sample's raw screen position under the same
// normalization. Both are nominally in [-1, 1] but are never clamped,
// since out-of-bounds samples carry real distortion information.
type Entry struct {
	From geometry.Point2d
	To   geometry.Point2d
}

// Description is the ordered mesh, one entry per input mapping, in
// input order, so external consumers can correlate entries
// positionally with the samples.
type Description []Entry

// Build produces the mesh for the given table and fitted screen.
// bounds is the physical-coordinate rectangle used to normalize the
// raw sample positions: the supplied screen bounds when those were
// configured, otherwise the extent of the table itself. The right eye
// mirrors the bounds horizontally.
func Build(table mapping.Table, desc screen.Description, bounds geometry.RectBounds, useRightEye bool) (Description, error) {
	width := desc.ScreenLeft.XZDistanceFrom(desc.ScreenRight)
	if width <= 0 || desc.MaxY <= 0 {
		return nil, fmt.Errorf("%w: screen span %g, maxY %g", screen.ErrDegenerateScreen, width, desc.MaxY)
	}
	if useRightEye {
		bounds = bounds.ReflectedHorizontally()
	}
	if bounds.Width() <= 0 || bounds.Height() <= 0 {
		return nil, fmt.Errorf("%w: physical bounds are %g x %g", screen.ErrDegenerateScreen, bounds.Width(), bounds.Height())
	}

	// Unit direction along the screen from left to right in X-Z.
	ux := (desc.ScreenRight.X - desc.ScreenLeft.X) / width
	uz := (desc.ScreenRight.Z - desc.ScreenLeft.Z) / width

	out := make(Description, 0, len(table))
	for i, m := range table {
		p, err := m.XYZ.ProjectOntoPlane(desc.Plane)
		if err != nil {
			return nil, fmt.Errorf("%w: sample %d: %v", ErrProjectionSingular, i, err)
		}

		frac := ((p.X-desc.ScreenLeft.X)*ux + (p.Z-desc.ScreenLeft.Z)*uz) / width
		from := geometry.Point2d{
			X: -1 + 2*frac,
			Y: p.Y / desc.MaxY,
		}
		to := geometry.Point2d{
			X: -1 + 2*(m.XYLatLong.X-bounds.Left)/bounds.Width(),
			Y: -1 + 2*(m.XYLatLong.Y-bounds.Bottom)/bounds.Height(),
		}
		debug.Sample(i, from.X, from.Y, to.X, to.Y)
		out = append(out, Entry{From: from, To: to})
	}
	debug.MeshStats(len(out))
	return out, nil
}
