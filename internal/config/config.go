package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/hljgirl/distortionizer/internal/logic/geometry"
)

// BoundsConfig describes a supplied screen rectangle in meters at the
// configured depth. Only used when compute_screen_bounds is false.
type BoundsConfig struct {
	Left   float64 `yaml:"left"`
	Right  float64 `yaml:"right"`
	Top    float64 `yaml:"top"`
	Bottom float64 `yaml:"bottom"`
}

// VerifyConfig holds the 2x2 linear transform mapping raw screen
// positions to expected angles, plus the tolerance for flagging
// samples whose measured angle deviates from the prediction.
type VerifyConfig struct {
	XX                  float64 `yaml:"xx"`
	XY                  float64 `yaml:"xy"`
	YX                  float64 `yaml:"yx"`
	YY                  float64 `yaml:"yy"`
	MaxAngleDiffDegrees float64 `yaml:"max_angle_diff_degrees"`
}

// Config aggregates the immutable run parameters for one invocation.
type Config struct {
	UseRightEye         bool          `yaml:"use_right_eye"`         // process right-eye geometry
	ComputeScreenBounds bool          `yaml:"compute_screen_bounds"` // fit the screen vs. use supplied bounds
	ScreenBounds        *BoundsConfig `yaml:"screen_bounds,omitempty"`
	UseFieldAngles      bool          `yaml:"use_field_angles"` // inputs are field angles vs. direction vectors
	ToMeters            float64       `yaml:"to_meters"`        // unit scale for physical coordinates
	Depth               float64       `yaml:"depth"`            // assumed eye-to-screen distance in meters
	OverlapPercent      float64       `yaml:"overlap_percent"`  // horizontal overlap between the eyes
	VerifyAngles        bool          `yaml:"verify_angles"`
	Verify              VerifyConfig  `yaml:"verify"`
	DebugLevel          int           `yaml:"debug_level"` // 0=off, 1=info, 2=verbose, 3=trace
}

// Default returns a configuration with the stock run parameters:
// left eye, fitted screen bounds, field-angle input, coordinates
// already in meters, 2 m eye-to-screen depth, full overlap.
func Default() Config {
	return Config{
		ComputeScreenBounds: true,
		UseFieldAngles:      true,
		ToMeters:            1.0,
		Depth:               2.0,
		OverlapPercent:      100.0,
	}
}

// Load reads a YAML file on top of the defaults and validates the
// result. Fields absent from the file keep their default values.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("unmarshal yaml: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the run parameters for consistency.
func (c *Config) Validate() error {
	if c.ToMeters <= 0 {
		return fmt.Errorf("to_meters must be > 0, got %g", c.ToMeters)
	}
	if c.Depth <= 0 {
		return fmt.Errorf("depth must be > 0, got %g", c.Depth)
	}
	if c.OverlapPercent < 0 || c.OverlapPercent > 100 {
		return fmt.Errorf("overlap_percent must be between 0 and 100, got %g", c.OverlapPercent)
	}
	if !c.ComputeScreenBounds {
		if c.ScreenBounds == nil {
			return fmt.Errorf("screen_bounds is required when compute_screen_bounds is false")
		}
		if c.ScreenBounds.Right <= c.ScreenBounds.Left {
			return fmt.Errorf("screen_bounds: right (%g) must be > left (%g)", c.ScreenBounds.Right, c.ScreenBounds.Left)
		}
		if c.ScreenBounds.Top <= c.ScreenBounds.Bottom {
			return fmt.Errorf("screen_bounds: top (%g) must be > bottom (%g)", c.ScreenBounds.Top, c.ScreenBounds.Bottom)
		}
	}
	if c.VerifyAngles && c.Verify.MaxAngleDiffDegrees <= 0 {
		return fmt.Errorf("verify.max_angle_diff_degrees must be > 0 when verify_angles is set, got %g", c.Verify.MaxAngleDiffDegrees)
	}
	if c.DebugLevel < 0 {
		return fmt.Errorf("debug_level must be >= 0, got %d", c.DebugLevel)
	}
	return nil
}

// Bounds returns the supplied screen bounds as a geometry rectangle.
// Only meaningful when ComputeScreenBounds is false.
func (c *Config) Bounds() geometry.RectBounds {
	if c.ScreenBounds == nil {
		return geometry.RectBounds{}
	}
	return geometry.RectBounds{
		Left:   c.ScreenBounds.Left,
		Right:  c.ScreenBounds.Right,
		Top:    c.ScreenBounds.Top,
		Bottom: c.ScreenBounds.Bottom,
	}
}

// Verbose reports whether verbose diagnostics are enabled.
func (c *Config) Verbose() bool {
	return c.DebugLevel >= 2
}
