// Package pipeline wires the geometry passes together: mapping table
// in, fitted screen and distortion mesh out, with the optional angle
// verification on the side.
package pipeline

import (
	"fmt"

	"github.com/hljgirl/distortionizer/internal/config"
	"github.com/hljgirl/distortionizer/internal/debug"
	"github.com/hljgirl/distortionizer/internal/logic/mapping"
	"github.com/hljgirl/distortionizer/internal/logic/mesh"
	"github.com/hljgirl/distortionizer/internal/logic/screen"
	"github.com/hljgirl/distortionizer/internal/logic/verify"
)

// Result aggregates the artifacts of one eye's run. Mismatches is nil
// unless angle verification was enabled.
type Result struct {
	Screen     screen.Description
	Mesh       mesh.Description
	Mismatches []verify.Mismatch
}

// Run executes the full pass for a single eye: fit the screen, build
// the mesh, and verify angles when configured. Fitting and mesh
// errors propagate unchanged; verification mismatches never fail the
// run.
func Run(cfg *config.Config, table mapping.Table) (*Result, error) {
	debug.Step(1, "fitting screen")
	scr, err := screen.Fit(table, cfg)
	if err != nil {
		return nil, fmt.Errorf("fit screen: %w", err)
	}

	// Supplied bounds describe the left eye and get mirrored for the
	// right one; bounds measured from the table already describe the
	// eye being processed.
	bounds := cfg.Bounds()
	mirror := cfg.UseRightEye
	if cfg.ComputeScreenBounds {
		bounds = table.Bounds()
		mirror = false
	}

	debug.Step(2, "building distortion mesh")
	m, err := mesh.Build(table, scr, bounds, mirror)
	if err != nil {
		return nil, fmt.Errorf("build mesh: %w", err)
	}

	result := &Result{Screen: scr, Mesh: m}
	if cfg.VerifyAngles {
		debug.Step(3, "verifying angles")
		t := verify.Transform{XX: cfg.Verify.XX, XY: cfg.Verify.XY, YX: cfg.Verify.YX, YY: cfg.Verify.YY}
		result.Mismatches = verify.Angles(table, t, cfg.Verify.MaxAngleDiffDegrees)
	}
	return result, nil
}

// RunBothEyes processes the two eyes' tables together. The overlap
// percent is derived from the two fitted screens instead of being
// taken from the configuration, and is written back into both
// results.
func RunBothEyes(cfg *config.Config, leftTable, rightTable mapping.Table) (left, right *Result, err error) {
	leftCfg := *cfg
	leftCfg.UseRightEye = false
	rightCfg := *cfg
	rightCfg.UseRightEye = true

	left, err = Run(&leftCfg, leftTable)
	if err != nil {
		return nil, nil, fmt.Errorf("left eye: %w", err)
	}
	right, err = Run(&rightCfg, rightTable)
	if err != nil {
		return nil, nil, fmt.Errorf("right eye: %w", err)
	}

	overlap := screen.Overlap(left.Screen, right.Screen)
	debug.Value("Derived overlap percent", overlap)
	left.Screen.OverlapPercent = overlap
	right.Screen.OverlapPercent = overlap
	return left, right, nil
}
