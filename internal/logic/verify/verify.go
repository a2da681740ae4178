// Package verify is the optional diagnostic pass that checks the
// measured angles against a linear prediction from the raw screen
// positions. It never changes the fitted screen or the mesh; it only
// reports the samples that deviate beyond tolerance.
package verify

import (
	"math"

	"github.com/hljgirl/distortionizer/internal/debug"
	"github.com/hljgirl/distortionizer/internal/logic/geometry"
	"github.com/hljgirl/distortionizer/internal/logic/mapping"
)

// Transform is the 2x2 linear map from a raw screen position to an
// expected (longitude, latitude) angle in radians:
//
//	longitude = XX*x + XY*y
//	latitude  = YX*x + YY*y
type Transform struct {
	XX float64
	XY float64
	YX float64
	YY float64
}

// Apply predicts the angle for a raw screen position.
func (t Transform) Apply(x, y float64) geometry.LongLat {
	return geometry.LongLat{
		Longitude: t.XX*x + t.XY*y,
		Latitude:  t.YX*x + t.YY*y,
	}
}

// Mismatch records one sample whose measured angle deviates from the
// prediction by more than the configured tolerance.
type Mismatch struct {
	Index       int
	Expected    geometry.LongLat
	Measured    geometry.LongLat
	DiffDegrees float64
}

// Angles compares every sample's measured angle against the
// transform's prediction and returns the samples deviating by more
// than maxAngleDiffDegrees. The deviation is the Euclidean distance
// between predicted and measured (longitude, latitude), in degrees.
// All mismatches are accumulated; none are fatal.
func Angles(table mapping.Table, t Transform, maxAngleDiffDegrees float64) []Mismatch {
	var mismatches []Mismatch
	for i, m := range table {
		expected := t.Apply(m.XYLatLong.X, m.XYLatLong.Y)
		dLong := expected.Longitude - m.XYLatLong.Longitude
		dLat := expected.Latitude - m.XYLatLong.Latitude
		diffDegrees := math.Hypot(dLong, dLat) * 180 / math.Pi
		if diffDegrees > maxAngleDiffDegrees {
			debug.Mismatch(i, diffDegrees)
			mismatches = append(mismatches, Mismatch{
				Index:    i,
				Expected: expected,
				Measured: geometry.LongLat{
					Longitude: m.XYLatLong.Longitude,
					Latitude:  m.XYLatLong.Latitude,
				},
				DiffDegrees: diffDegrees,
			})
		}
	}
	return mismatches
}
