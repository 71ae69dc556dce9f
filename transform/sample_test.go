package transform

import (
	"errors"
	"image"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"handprep/config"
	"handprep/landmarks"
	"handprep/tensor"
)

func TestSamplePassthrough(t *testing.T) {
	img := testImage(8, 8)
	set := testSet()
	opts := SampleOptions{RotateFlip: false, Normalize: false}

	it, lt, err := Sample(img, set, ToTensor(), opts)
	require.NoError(t, err)

	want := tensor.FromImage(img)
	assert.Equal(t, want.Shape(), it.Shape())
	assert.Equal(t, want.Data(), it.Data())

	require.Equal(t, []int{landmarks.Count, 3}, lt.Shape())
	for i, p := range set {
		assert.Equal(t, p.X, lt.At(i, 0))
		assert.Equal(t, p.Y, lt.At(i, 1))
		assert.Equal(t, p.Z, lt.At(i, 2))
	}
}

func TestSampleNormalizedLandmarksInRange(t *testing.T) {
	img := testImage(8, 8)
	set := testSet()
	opts := SampleOptions{
		RotateFlip:    true,
		RotationRange: 20,
		HFlipProb:     0.5,
		Normalize:     true,
		Rand:          rand.New(rand.NewSource(11)),
	}

	_, lt, err := Sample(img, set, ToTensor(), opts)
	require.NoError(t, err)

	for _, v := range lt.Data() {
		if v < -1 || v > 1 {
			t.Fatalf("normalized landmark out of [-1,1]: %f", v)
		}
	}
	// wrist is the reference point, so its row is the origin
	assert.InDelta(t, 0.0, lt.At(landmarks.Wrist, 0), 1e-12)
	assert.InDelta(t, 0.0, lt.At(landmarks.Wrist, 1), 1e-12)
	assert.InDelta(t, 0.0, lt.At(landmarks.Wrist, 2), 1e-12)
}

func TestSampleWithStandardTransform(t *testing.T) {
	cfg := config.Default()
	cfg.ImageSize = 8

	it, lt, err := Sample(testImage(32, 32), testSet(), Standard(cfg), DefaultSampleOptions(cfg))
	require.NoError(t, err)
	require.Equal(t, []int{3, 8, 8}, it.Shape())
	require.Equal(t, []int{landmarks.Count, 3}, lt.Shape())
	for _, v := range it.Data() {
		if v < 0 || v > 1 {
			t.Fatalf("image tensor value out of [0,1]: %f", v)
		}
	}
}

func TestSampleDeterministicWithSeed(t *testing.T) {
	img := testImage(8, 8)
	set := testSet()

	run := func() []float64 {
		opts := SampleOptions{
			RotateFlip:    true,
			RotationRange: 15,
			HFlipProb:     0.5,
			Normalize:     true,
			Rand:          rand.New(rand.NewSource(21)),
		}
		_, lt, err := Sample(img, set, ToTensor(), opts)
		require.NoError(t, err)
		return lt.Data()
	}

	assert.Equal(t, run(), run())
}

func TestSamplePropagatesTransformErrors(t *testing.T) {
	boom := errors.New("boom")
	failing := ImageTransform(func(image.Image) (*tensor.Tensor, error) {
		return nil, boom
	})

	_, _, err := Sample(testImage(4, 4), testSet(), failing, SampleOptions{})
	if !errors.Is(err, boom) {
		t.Fatalf("expected wrapped transform error, got %v", err)
	}
}

func TestSampleRejectsNilArguments(t *testing.T) {
	if _, _, err := Sample(nil, testSet(), ToTensor(), SampleOptions{}); err == nil {
		t.Fatal("expected error for nil image")
	}
	if _, _, err := Sample(testImage(4, 4), testSet(), nil, SampleOptions{}); err == nil {
		t.Fatal("expected error for nil transform")
	}
}
