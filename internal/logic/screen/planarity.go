package screen

import (
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/hljgirl/distortionizer/internal/logic/mapping"
)

// planarityRMS fits a free least-squares plane n·p = 1 through the
// sample directions and returns the RMS point-to-plane residual.
// Purely diagnostic: the fitted screen plane stays the constrained
// one, this only tells the operator how planar the measured surface
// is. Returns ok = false when the system cannot be solved (e.g. all
// samples on a plane through the origin).
func planarityRMS(table mapping.Table) (rms float64, ok bool) {
	n := len(table)
	if n < 3 {
		return 0, false
	}

	a := mat.NewDense(n, 3, nil)
	b := mat.NewVecDense(n, nil)
	for i, m := range table {
		a.Set(i, 0, m.XYZ.X)
		a.Set(i, 1, m.XYZ.Y)
		a.Set(i, 2, m.XYZ.Z)
		b.SetVec(i, 1)
	}

	var qr mat.QR
	qr.Factorize(a)

	var normal mat.VecDense
	if err := qr.SolveVecTo(&normal, false, b); err != nil {
		return 0, false
	}
	length := math.Sqrt(normal.AtVec(0)*normal.AtVec(0) +
		normal.AtVec(1)*normal.AtVec(1) +
		normal.AtVec(2)*normal.AtVec(2))
	if length == 0 {
		return 0, false
	}

	var sum float64
	for _, m := range table {
		r := (m.XYZ.X*normal.AtVec(0) + m.XYZ.Y*normal.AtVec(1) + m.XYZ.Z*normal.AtVec(2) - 1) / length
		sum += r * r
	}
	return math.Sqrt(sum / float64(n)), true
}
