package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultValidates(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
	if cfg.NumLandmarks != 21 {
		t.Fatalf("expected 21 landmarks, got %d", cfg.NumLandmarks)
	}
}

func TestLoadYAMLOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "prep.yml")
	raw := []byte(`rotation_range: 30
hflip_prob: 0.25
grayscale_mean: [0.5]
grayscale_std: [0.25]
`)
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.RotationRange != 30 {
		t.Fatalf("rotation_range not applied: %g", cfg.RotationRange)
	}
	if cfg.HFlipProb != 0.25 {
		t.Fatalf("hflip_prob not applied: %g", cfg.HFlipProb)
	}
	if len(cfg.GrayscaleMean) != 1 || cfg.GrayscaleMean[0] != 0.5 {
		t.Fatalf("grayscale_mean not applied: %v", cfg.GrayscaleMean)
	}
	if cfg.ImageSize != 224 {
		t.Fatalf("untouched field lost its default: %d", cfg.ImageSize)
	}
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("HANDPREP_ROTATION_RANGE", "12.5")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.RotationRange != 12.5 {
		t.Fatalf("env override not applied: %g", cfg.RotationRange)
	}
}

func TestLoadMissingFileFallsBackToDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Seed != 42 {
		t.Fatalf("expected default seed, got %d", cfg.Seed)
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Hyperparameters)
	}{
		{"flip prob above one", func(c *Hyperparameters) { c.HFlipProb = 1.5 }},
		{"negative rotation range", func(c *Hyperparameters) { c.RotationRange = -1 }},
		{"mean/std length mismatch", func(c *Hyperparameters) { c.GrayscaleStd = []float64{0.2, 0.3} }},
		{"zero std", func(c *Hyperparameters) { c.GrayscaleStd = []float64{0} }},
		{"zero landmarks", func(c *Hyperparameters) { c.NumLandmarks = 0 }},
		{"zero image size", func(c *Hyperparameters) { c.ImageSize = 0 }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Default()
			tc.mutate(&cfg)
			if err := cfg.Validate(); err == nil {
				t.Fatal("expected validation error")
			}
		})
	}
}

func TestApplyOverrides(t *testing.T) {
	cfg := Default()
	cfg.ApplyOverrides(Overrides{RotationRange: 45, Seed: 7})
	if cfg.RotationRange != 45 {
		t.Fatalf("rotation override lost: %g", cfg.RotationRange)
	}
	if cfg.Seed != 7 {
		t.Fatalf("seed override lost: %d", cfg.Seed)
	}
	if cfg.HFlipProb != 0.5 {
		t.Fatalf("zero override must not clobber default: %g", cfg.HFlipProb)
	}
}
