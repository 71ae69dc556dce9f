// Package transform prepares (image, landmarks) training samples:
// per-channel normalization and its inverse, random rotate/flip
// augmentation, and the pipeline composing them.
package transform

import (
	"errors"
	"fmt"
	"image"
	"math/rand"

	"handprep/config"
	"handprep/landmarks"
	"handprep/tensor"
)

// SampleOptions configures the sample pipeline.
type SampleOptions struct {
	RotateFlip    bool
	RotationRange float64
	HFlipProb     float64
	Normalize     bool
	Rand          *rand.Rand
}

// DefaultSampleOptions enables augmentation and landmark normalization
// with ranges and seed taken from cfg.
func DefaultSampleOptions(cfg config.Hyperparameters) SampleOptions {
	return SampleOptions{
		RotateFlip:    true,
		RotationRange: cfg.RotationRange,
		HFlipProb:     cfg.HFlipProb,
		Normalize:     true,
		Rand:          rand.New(rand.NewSource(cfg.Seed)),
	}
}

// Sample produces one training sample from a raw image and its raw
// landmarks in [0,1]. With RotateFlip set, image and landmarks are jointly
// augmented first (landmarks stay in [0,1], the image stays native). With
// Normalize set, landmarks are recentered on the wrist into [-1,1]. The
// caller-supplied imgT then performs the tensor conversion. Sample draws
// no randomness of its own beyond what opts.Rand feeds the augmentation.
func Sample(img image.Image, set landmarks.Set, imgT ImageTransform, opts SampleOptions) (*tensor.Tensor, *tensor.Tensor, error) {
	if img == nil {
		return nil, nil, errors.New("transform: nil image")
	}
	if imgT == nil {
		return nil, nil, errors.New("transform: nil image transform")
	}

	pts := set
	if opts.RotateFlip {
		rf := NewRandomRotateFlip(opts.RotationRange, opts.HFlipProb, opts.Rand)
		var err error
		img, pts, err = rf.Apply(img, pts)
		if err != nil {
			return nil, nil, err
		}
	}
	if opts.Normalize {
		pts = landmarks.NormalizeWrist(pts)
	}

	it, err := imgT(img)
	if err != nil {
		return nil, nil, fmt.Errorf("image transform: %w", err)
	}
	return it, pts.ToTensor(), nil
}
