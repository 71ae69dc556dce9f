package transform

import (
	"errors"
	"image"

	"github.com/anthonynsimon/bild/effect"
	bildtransform "github.com/anthonynsimon/bild/transform"

	"handprep/config"
	"handprep/tensor"
)

// ImageTransform converts a native image into its final tensor form. The
// caller supplies one to the sample pipeline; the stock implementations
// below cover the common resize/grayscale/tensorize cases.
type ImageTransform func(image.Image) (*tensor.Tensor, error)

// Resize scales the image to w-by-h.
func Resize(w, h int) func(image.Image) image.Image {
	return func(img image.Image) image.Image {
		return bildtransform.Resize(img, w, h, bildtransform.CatmullRom)
	}
}

// Grayscale converts the image to grayscale while keeping three channels.
func Grayscale() func(image.Image) image.Image {
	return func(img image.Image) image.Image {
		return effect.Grayscale(img)
	}
}

// ToTensor converts the image to a 3xHxW tensor in [0,1].
func ToTensor() ImageTransform {
	return func(img image.Image) (*tensor.Tensor, error) {
		if img == nil {
			return nil, errors.New("transform: nil image")
		}
		return tensor.FromImage(img), nil
	}
}

// ToGrayTensor converts the image to a 1xHxW intensity tensor in [0,1].
func ToGrayTensor() ImageTransform {
	return func(img image.Image) (*tensor.Tensor, error) {
		if img == nil {
			return nil, errors.New("transform: nil image")
		}
		return tensor.GrayFromImage(img), nil
	}
}

// Compose chains image-to-image steps and finishes with a tensorizing
// transform.
func Compose(steps []func(image.Image) image.Image, final ImageTransform) ImageTransform {
	return func(img image.Image) (*tensor.Tensor, error) {
		if final == nil {
			return nil, errors.New("transform: nil final transform")
		}
		for _, step := range steps {
			img = step(img)
		}
		return final(img)
	}
}

// Standard is the usual deterministic transform: resize to the configured
// square size, then tensorize.
func Standard(cfg config.Hyperparameters) ImageTransform {
	return Compose(
		[]func(image.Image) image.Image{Resize(cfg.ImageSize, cfg.ImageSize)},
		ToTensor(),
	)
}
