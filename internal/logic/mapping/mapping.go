// Package mapping holds the measured correspondence table between
// physical screen locations and the angular directions a viewer's eye
// perceives at those locations. The ordered table is the sole input
// to screen fitting and mesh building.
package mapping

import (
	"math"

	"github.com/hljgirl/distortionizer/internal/logic/geometry"
)

// XYLatLong is one raw sample: a 2D screen-space location (x, y) in
// physical units paired with the latitude/longitude angle (radians)
// the eye sees at that location. Immutable once constructed.
type XYLatLong struct {
	X         float64
	Y         float64
	Latitude  float64
	Longitude float64
}

// Mapping pairs a raw sample with its 3D angle-space direction.
type Mapping struct {
	XYLatLong XYLatLong
	XYZ       geometry.XYZ
}

// Table is the ordered sequence of mappings. Order is irrelevant to
// fitting correctness but is preserved so downstream mesh entries
// correspond 1:1 with input samples.
type Table []Mapping

// FromFieldAngles converts independent field angles to an angle-space
// direction. The longitude and latitude are measured independently
// against a screen straight ahead along -Z, so x = -tan(longitude)
// (positive longitude heads towards -X, matching RotationAboutY),
// y = tan(latitude), z = -1.
func FromFieldAngles(ll geometry.LongLat) geometry.XYZ {
	return geometry.XYZ{
		X: -math.Tan(ll.Longitude),
		Y: math.Tan(ll.Latitude),
		Z: -1,
	}
}

// NewFromAngles builds a mapping from a raw sample whose angles are
// field angles, decoding them into the 3D direction.
func NewFromAngles(sample XYLatLong) Mapping {
	return Mapping{
		XYLatLong: sample,
		XYZ: FromFieldAngles(geometry.LongLat{
			Longitude: sample.Longitude,
			Latitude:  sample.Latitude,
		}),
	}
}

// NewFromDirection builds a mapping from a raw sample paired with a
// precomputed 3D direction (use_field_angles = false). The stored
// latitude/longitude are derived from the direction so the
// verification pass still has angles to compare against.
func NewFromDirection(x, y float64, dir geometry.XYZ) Mapping {
	horiz := math.Sqrt(dir.X*dir.X + dir.Z*dir.Z)
	return Mapping{
		XYLatLong: XYLatLong{
			X:         x,
			Y:         y,
			Longitude: dir.RotationAboutY(),
			Latitude:  math.Atan2(dir.Y, horiz),
		},
		XYZ: dir,
	}
}

// Bounds returns the min/max rectangle of the physical screen
// coordinates present in the table. Used to normalize mesh "to"
// coordinates when no screen bounds are supplied.
func (t Table) Bounds() geometry.RectBounds {
	if len(t) == 0 {
		return geometry.RectBounds{}
	}
	b := geometry.RectBounds{
		Left:   t[0].XYLatLong.X,
		Right:  t[0].XYLatLong.X,
		Top:    t[0].XYLatLong.Y,
		Bottom: t[0].XYLatLong.Y,
	}
	for _, m := range t[1:] {
		b.Left = math.Min(b.Left, m.XYLatLong.X)
		b.Right = math.Max(b.Right, m.XYLatLong.X)
		b.Bottom = math.Min(b.Bottom, m.XYLatLong.Y)
		b.Top = math.Max(b.Top, m.XYLatLong.Y)
	}
	return b
}
