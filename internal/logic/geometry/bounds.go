package geometry

// RectBounds is an axis-aligned rectangle in screen coordinates.
type RectBounds struct {
	Left   float64
	Right  float64
	Top    float64
	Bottom float64
}

// ReflectedHorizontally mirrors the bounds about the vertical axis,
// swapping and negating left/right. Applying it twice returns the
// original bounds. Used to derive a right-eye screen bound from a
// left-eye one.
func (b RectBounds) ReflectedHorizontally() RectBounds {
	return RectBounds{Left: -b.Right, Right: -b.Left, Top: b.Top, Bottom: b.Bottom}
}

// Width returns the horizontal extent (right minus left).
func (b RectBounds) Width() float64 {
	return b.Right - b.Left
}

// Height returns the vertical extent (top minus bottom).
func (b RectBounds) Height() float64 {
	return b.Top - b.Bottom
}
