package mapping

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/hljgirl/distortionizer/internal/logic/geometry"
)

// ParseOptions controls how a raw mapping table is interpreted.
type ParseOptions struct {
	// UseFieldAngles selects the 4-column angle format
	// "x y latitude longitude" (angles in degrees). When false the
	// 5-column direction format "x y dx dy dz" is expected.
	UseFieldAngles bool
	// ToMeters scales the physical x/y coordinates into meters.
	ToMeters float64
}

// Parse reads a whitespace-separated mapping table, one sample per
// line. Blank lines and lines starting with '#' are skipped. Angles
// are converted from degrees to radians and physical coordinates are
// scaled by ToMeters on load.
func Parse(r io.Reader, opts ParseOptions) (Table, error) {
	scale := opts.ToMeters
	if scale == 0 {
		scale = 1
	}

	var table Table
	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)

		want := 5
		if opts.UseFieldAngles {
			want = 4
		}
		if len(fields) != want {
			return nil, fmt.Errorf("line %d: expected %d fields, got %d", lineNo, want, len(fields))
		}
		values := make([]float64, len(fields))
		for i, f := range fields {
			v, err := strconv.ParseFloat(f, 64)
			if err != nil {
				return nil, fmt.Errorf("line %d: field %d: %w", lineNo, i+1, err)
			}
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return nil, fmt.Errorf("line %d: field %d: value %g is not finite", lineNo, i+1, v)
			}
			values[i] = v
		}

		x := values[0] * scale
		y := values[1] * scale
		if opts.UseFieldAngles {
			table = append(table, NewFromAngles(XYLatLong{
				X:         x,
				Y:         y,
				Latitude:  values[2] * math.Pi / 180,
				Longitude: values[3] * math.Pi / 180,
			}))
		} else {
			table = append(table, NewFromDirection(x, y, geometry.XYZ{
				X: values[2],
				Y: values[3],
				Z: values[4],
			}))
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read mapping table: %w", err)
	}
	return table, nil
}
