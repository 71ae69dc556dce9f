// Package config carries the preprocessing hyperparameters as an explicit
// object passed into each routine.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Hyperparameters captures the numeric knobs for dataset preprocessing.
type Hyperparameters struct {
	GrayscaleMean []float64 `koanf:"grayscale_mean"`
	GrayscaleStd  []float64 `koanf:"grayscale_std"`
	RotationRange float64   `koanf:"rotation_range"`
	HFlipProb     float64   `koanf:"hflip_prob"`
	NumLandmarks  int       `koanf:"num_landmarks"`
	ImageSize     int       `koanf:"image_size"`
	Seed          int64     `koanf:"seed"`
}

// Overrides captures caller supplied values.
type Overrides struct {
	GrayscaleMean []float64
	GrayscaleStd  []float64
	RotationRange float64
	HFlipProb     float64
	NumLandmarks  int
	ImageSize     int
	Seed          int64
}

// Default returns the stock hyperparameters for grayscale hand crops.
func Default() Hyperparameters {
	return Hyperparameters{
		GrayscaleMean: []float64{0.485},
		GrayscaleStd:  []float64{0.229},
		RotationRange: 15,
		HFlipProb:     0.5,
		NumLandmarks:  21,
		ImageSize:     224,
		Seed:          42,
	}
}

// Load merges YAML (if present) with env vars (prefix `HANDPREP_`,
// delimiter `__`) on top of the defaults. A missing file is tolerated so
// env-only configuration works.
func Load(path string) (Hyperparameters, error) {
	k := koanf.New(".")
	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil &&
			!errors.Is(err, fs.ErrNotExist) {
			return Hyperparameters{}, fmt.Errorf("load config: %w", err)
		}
	}
	_ = k.Load(env.Provider("HANDPREP_", ".", func(s string) string {
		return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, "HANDPREP_")), "__", ".")
	}), nil)

	cfg := Default()
	if err := k.Unmarshal("", &cfg); err != nil {
		return cfg, fmt.Errorf("parse config: %w", err)
	}
	applyDefaults(&cfg)
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// ApplyOverrides updates cfg using any non-zero override.
func (c *Hyperparameters) ApplyOverrides(o Overrides) {
	if len(o.GrayscaleMean) > 0 {
		c.GrayscaleMean = o.GrayscaleMean
	}
	if len(o.GrayscaleStd) > 0 {
		c.GrayscaleStd = o.GrayscaleStd
	}
	if o.RotationRange > 0 {
		c.RotationRange = o.RotationRange
	}
	if o.HFlipProb > 0 {
		c.HFlipProb = o.HFlipProb
	}
	if o.NumLandmarks > 0 {
		c.NumLandmarks = o.NumLandmarks
	}
	if o.ImageSize > 0 {
		c.ImageSize = o.ImageSize
	}
	if o.Seed != 0 {
		c.Seed = o.Seed
	}
}

// Validate verifies the hyperparameters are usable.
func (c *Hyperparameters) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}
	if len(c.GrayscaleMean) == 0 {
		return errors.New("grayscale_mean must not be empty")
	}
	if len(c.GrayscaleMean) != len(c.GrayscaleStd) {
		return fmt.Errorf("grayscale_mean has %d channels, grayscale_std has %d",
			len(c.GrayscaleMean), len(c.GrayscaleStd))
	}
	for i, s := range c.GrayscaleStd {
		if s <= 0 {
			return fmt.Errorf("grayscale_std[%d] must be > 0 (got %g)", i, s)
		}
	}
	if c.RotationRange < 0 {
		return fmt.Errorf("rotation_range must be >= 0 (got %g)", c.RotationRange)
	}
	if c.HFlipProb < 0 || c.HFlipProb > 1 {
		return fmt.Errorf("hflip_prob must be in [0,1] (got %g)", c.HFlipProb)
	}
	if c.NumLandmarks <= 0 {
		return fmt.Errorf("num_landmarks must be > 0 (got %d)", c.NumLandmarks)
	}
	if c.ImageSize <= 0 {
		return fmt.Errorf("image_size must be > 0 (got %d)", c.ImageSize)
	}
	return nil
}

func applyDefaults(c *Hyperparameters) {
	def := Default()
	if len(c.GrayscaleMean) == 0 {
		c.GrayscaleMean = def.GrayscaleMean
	}
	if len(c.GrayscaleStd) == 0 {
		c.GrayscaleStd = def.GrayscaleStd
	}
	if c.NumLandmarks == 0 {
		c.NumLandmarks = def.NumLandmarks
	}
	if c.ImageSize == 0 {
		c.ImageSize = def.ImageSize
	}
	if c.Seed == 0 {
		c.Seed = def.Seed
	}
}
