// Command anglestoconfig converts a measured table of display-surface
// sample points into a partial display description and a distortion
// mesh, printed as JSON for the renderer configuration to consume.
//
// The mapping table is read from the file given as the positional
// argument, or from stdin. One sample per line: "x y latitude
// longitude" with angles in degrees, or "x y dx dy dz" with
// -field-angles=false.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/hljgirl/distortionizer/internal/config"
	"github.com/hljgirl/distortionizer/internal/debug"
	"github.com/hljgirl/distortionizer/internal/logic/mapping"
	"github.com/hljgirl/distortionizer/internal/logic/pipeline"
)

func main() {
	cfgPath := flag.String("config", "", "path to YAML config file (optional; flags override it)")
	rightEye := flag.Bool("right-eye", false, "process right-eye geometry")
	fieldAngles := flag.Bool("field-angles", true, "interpret input as field angles rather than direction vectors")
	depth := flag.Float64("depth", 0, "override eye-to-screen distance in meters")
	toMeters := flag.Float64("to-meters", 0, "override unit scale for physical coordinates")
	overlap := flag.Float64("overlap", -1, "override overlap percent between the eyes (0-100)")
	verifyAngles := flag.Bool("verify-angles", false, "run the angle-verification diagnostic pass")
	screenBounds := &screenFlag{}
	flag.Var(screenBounds, "screen", "supplied screen bounds as left,bottom,right,top (meters); disables bounds fitting")
	debugLevel := flag.Int("debug", 0, "debug level 0-3 (0=off, 1=info, 2=verbose, 3=trace)")
	flag.Parse()

	fieldAnglesSet := false
	flag.Visit(func(f *flag.Flag) {
		if f.Name == "field-angles" {
			fieldAnglesSet = true
		}
	})

	cfg, err := loadConfig(*cfgPath)
	if err != nil {
		log.Fatalf("load config failed: %v", err)
	}
	applyOverrides(cfg, overrides{
		rightEye:       *rightEye,
		fieldAngles:    *fieldAngles,
		fieldAnglesSet: fieldAnglesSet,
		depth:          *depth,
		toMeters:       *toMeters,
		overlap:        *overlap,
		verifyAngles:   *verifyAngles,
		screen:         screenBounds,
		debugLevel:     *debugLevel,
	})
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	debug.Init(cfg.DebugLevel)
	debug.Section("Configuration")
	debug.Value("Right eye", cfg.UseRightEye)
	debug.Value("Compute screen bounds", cfg.ComputeScreenBounds)
	debug.Value("Field angles", cfg.UseFieldAngles)
	debug.Value("Depth (m)", cfg.Depth)

	in, err := openInput(flag.Args())
	if err != nil {
		log.Fatalf("open input failed: %v", err)
	}
	defer in.Close()

	table, err := mapping.Parse(in, mapping.ParseOptions{
		UseFieldAngles: cfg.UseFieldAngles,
		ToMeters:       cfg.ToMeters,
	})
	if err != nil {
		log.Fatalf("parse mapping table failed: %v", err)
	}
	debug.Info("loaded %d samples", len(table))

	result, err := pipeline.Run(cfg, table)
	if err != nil {
		log.Fatalf("%v", err)
	}

	// Mismatches are diagnostics: report them on stderr, keep the
	// exit status clean.
	for _, mm := range result.Mismatches {
		fmt.Fprintf(os.Stderr, "verify: sample %d deviates by %.4f degrees (expected long=%.6f lat=%.6f, measured long=%.6f lat=%.6f)\n",
			mm.Index, mm.DiffDegrees,
			mm.Expected.Longitude, mm.Expected.Latitude,
			mm.Measured.Longitude, mm.Measured.Latitude)
	}

	if err := writeJSON(os.Stdout, result); err != nil {
		log.Fatalf("write output failed: %v", err)
	}
}

// loadConfig returns the defaults when no path is given.
func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		cfg := config.Default()
		return &cfg, nil
	}
	return config.Load(path)
}

// overrides carries the CLI flag values applied on top of the config
// file. Zero/negative sentinels mean "keep the config value".
type overrides struct {
	rightEye       bool
	fieldAngles    bool
	fieldAnglesSet bool
	depth          float64
	toMeters       float64
	overlap        float64
	verifyAngles   bool
	screen         *screenFlag
	debugLevel     int
}

func applyOverrides(cfg *config.Config, o overrides) {
	if o.rightEye {
		cfg.UseRightEye = true
	}
	if o.fieldAnglesSet {
		cfg.UseFieldAngles = o.fieldAngles
	}
	if o.depth > 0 {
		cfg.Depth = o.depth
	}
	if o.toMeters > 0 {
		cfg.ToMeters = o.toMeters
	}
	if o.overlap >= 0 {
		cfg.OverlapPercent = o.overlap
	}
	if o.verifyAngles {
		cfg.VerifyAngles = true
	}
	if o.screen != nil && o.screen.set {
		cfg.ComputeScreenBounds = false
		cfg.ScreenBounds = &config.BoundsConfig{
			Left:   o.screen.left,
			Right:  o.screen.right,
			Top:    o.screen.top,
			Bottom: o.screen.bottom,
		}
	}
	if o.debugLevel > 0 {
		cfg.DebugLevel = o.debugLevel
	}
}

func openInput(args []string) (io.ReadCloser, error) {
	if len(args) == 0 {
		return os.Stdin, nil
	}
	if len(args) > 1 {
		return nil, fmt.Errorf("expected at most one input file, got %d arguments", len(args))
	}
	return os.Open(args[0])
}

// screenFlag implements flag.Value for -screen left,bottom,right,top.
type screenFlag struct {
	set                      bool
	left, bottom, right, top float64
}

func (s *screenFlag) String() string {
	if !s.set {
		return ""
	}
	return fmt.Sprintf("%g,%g,%g,%g", s.left, s.bottom, s.right, s.top)
}

func (s *screenFlag) Set(v string) error {
	parts := strings.Split(v, ",")
	if len(parts) != 4 {
		return fmt.Errorf("expected left,bottom,right,top, got %q", v)
	}
	vals := make([]float64, 4)
	for i, p := range parts {
		f, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return fmt.Errorf("component %d of %q: %w", i+1, v, err)
		}
		vals[i] = f
	}
	s.left, s.bottom, s.right, s.top = vals[0], vals[1], vals[2], vals[3]
	if s.right <= s.left {
		return fmt.Errorf("right (%g) must be > left (%g)", s.right, s.left)
	}
	if s.top <= s.bottom {
		return fmt.Errorf("top (%g) must be > bottom (%g)", s.top, s.bottom)
	}
	s.set = true
	return nil
}

// output is the JSON shape handed to the renderer-config serializer:
// the screen summary plus the plane/extent internals a later mesh
// build can reuse, and the mesh as [[fromX,fromY],[toX,toY]] pairs.
type output struct {
	Screen screenJSON     `json:"screen"`
	Mesh   [][2][2]float64 `json:"mesh"`
}

type screenJSON struct {
	HFOVDegrees    float64    `json:"hfov_degrees"`
	VFOVDegrees    float64    `json:"vfov_degrees"`
	OverlapPercent float64    `json:"overlap_percent"`
	XCOP           float64    `json:"x_cop"`
	YCOP           float64    `json:"y_cop"`
	Plane          [4]float64 `json:"plane"`
	ScreenLeft     [3]float64 `json:"screen_left"`
	ScreenRight    [3]float64 `json:"screen_right"`
	MaxY           float64    `json:"max_y"`
}

func writeJSON(w io.Writer, result *pipeline.Result) error {
	out := output{
		Screen: screenJSON{
			HFOVDegrees:    result.Screen.HFOVDegrees,
			VFOVDegrees:    result.Screen.VFOVDegrees,
			OverlapPercent: result.Screen.OverlapPercent,
			XCOP:           result.Screen.XCOP,
			YCOP:           result.Screen.YCOP,
			Plane:          [4]float64{result.Screen.Plane.A, result.Screen.Plane.B, result.Screen.Plane.C, result.Screen.Plane.D},
			ScreenLeft:     [3]float64{result.Screen.ScreenLeft.X, result.Screen.ScreenLeft.Y, result.Screen.ScreenLeft.Z},
			ScreenRight:    [3]float64{result.Screen.ScreenRight.X, result.Screen.ScreenRight.Y, result.Screen.ScreenRight.Z},
			MaxY:           result.Screen.MaxY,
		},
		Mesh: make([][2][2]float64, 0, len(result.Mesh)),
	}
	for _, e := range result.Mesh {
		out.Mesh = append(out.Mesh, [2][2]float64{
			{e.From.X, e.From.Y},
			{e.To.X, e.To.Y},
		})
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
