package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/hljgirl/distortionizer/internal/logic/geometry"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write temp config: %v", err)
	}
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()
	if !cfg.ComputeScreenBounds {
		t.Error("ComputeScreenBounds should default to true")
	}
	if !cfg.UseFieldAngles {
		t.Error("UseFieldAngles should default to true")
	}
	if cfg.ToMeters != 1.0 {
		t.Errorf("ToMeters = %v, want 1.0", cfg.ToMeters)
	}
	if cfg.Depth != 2.0 {
		t.Errorf("Depth = %v, want 2.0", cfg.Depth)
	}
	if cfg.OverlapPercent != 100.0 {
		t.Errorf("OverlapPercent = %v, want 100.0", cfg.OverlapPercent)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults must validate: %v", err)
	}
}

func TestLoad_KeepsDefaultsForAbsentFields(t *testing.T) {
	path := writeConfig(t, "use_right_eye: true\n")
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !cfg.UseRightEye {
		t.Error("use_right_eye: true was not applied")
	}
	if !cfg.ComputeScreenBounds || !cfg.UseFieldAngles || cfg.Depth != 2.0 {
		t.Error("absent fields must keep their defaults")
	}
}

func TestLoad_ExplicitFalseOverridesDefault(t *testing.T) {
	path := writeConfig(t, `
compute_screen_bounds: false
screen_bounds:
  left: -0.5
  right: 0.5
  top: 0.25
  bottom: -0.25
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.ComputeScreenBounds {
		t.Error("compute_screen_bounds: false was not applied")
	}
	want := geometry.RectBounds{Left: -0.5, Right: 0.5, Top: 0.25, Bottom: -0.25}
	if cfg.Bounds() != want {
		t.Errorf("Bounds = %+v, want %+v", cfg.Bounds(), want)
	}
}

func TestLoad_FullConfig(t *testing.T) {
	path := writeConfig(t, `
use_right_eye: true
to_meters: 0.001
depth: 1.5
overlap_percent: 50
verify_angles: true
verify:
  xx: 1
  xy: 0
  yx: 0
  yy: 1
  max_angle_diff_degrees: 0.01
debug_level: 2
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.ToMeters != 0.001 || cfg.Depth != 1.5 || cfg.OverlapPercent != 50 {
		t.Errorf("numeric fields not applied: %+v", cfg)
	}
	if !cfg.VerifyAngles || cfg.Verify.XX != 1 || cfg.Verify.MaxAngleDiffDegrees != 0.01 {
		t.Errorf("verify fields not applied: %+v", cfg.Verify)
	}
	if !cfg.Verbose() {
		t.Error("debug_level 2 should enable Verbose()")
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file, got nil")
	}
}

func TestLoad_MalformedYAML(t *testing.T) {
	path := writeConfig(t, "depth: [not a number\n")
	if _, err := Load(path); err == nil {
		t.Error("expected error for malformed yaml, got nil")
	}
}

func TestValidate_Errors(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero_to_meters", func(c *Config) { c.ToMeters = 0 }},
		{"negative_depth", func(c *Config) { c.Depth = -1 }},
		{"overlap_too_large", func(c *Config) { c.OverlapPercent = 101 }},
		{"negative_overlap", func(c *Config) { c.OverlapPercent = -1 }},
		{"missing_bounds", func(c *Config) { c.ComputeScreenBounds = false }},
		{"inverted_bounds", func(c *Config) {
			c.ComputeScreenBounds = false
			c.ScreenBounds = &BoundsConfig{Left: 0.5, Right: -0.5, Top: 0.25, Bottom: -0.25}
		}},
		{"flat_bounds", func(c *Config) {
			c.ComputeScreenBounds = false
			c.ScreenBounds = &BoundsConfig{Left: -0.5, Right: 0.5, Top: -0.25, Bottom: 0.25}
		}},
		{"verify_without_tolerance", func(c *Config) { c.VerifyAngles = true }},
		{"negative_debug_level", func(c *Config) { c.DebugLevel = -1 }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Default()
			tc.mutate(&cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("expected validation error, got nil")
			}
		})
	}
}

func TestBounds_NilScreenBounds(t *testing.T) {
	cfg := Default()
	if cfg.Bounds() != (geometry.RectBounds{}) {
		t.Errorf("Bounds with nil ScreenBounds = %+v, want zero", cfg.Bounds())
	}
}
