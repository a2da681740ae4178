package geometry

// Point2d is an ordered pair of real numbers, used both for angle
// coordinates and for 2D screen coordinates.
type Point2d struct {
	X float64
	Y float64
}

// LongLat assigns longitude and latitude meaning to a Point2d.
// Longitude is the angle in x, latitude the angle in y, both in
// radians measured in eye space (not geographic).
type LongLat struct {
	Longitude float64
	Latitude  float64
}

// Point2d returns the pair with longitude first and latitude second.
func (ll LongLat) Point2d() Point2d {
	return Point2d{X: ll.Longitude, Y: ll.Latitude}
}
