package transform

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/floats"

	"handprep/tensor"
)

// ErrChannelMismatch indicates the tensor's channel count does not match
// the mean/std vectors.
var ErrChannelMismatch = errors.New("transform: channel count mismatch")

// Denormalize inverts a per-channel normalization x -> (x-mean)/std by
// applying x -> x*std[i] + mean[i] to each channel in place. It returns
// the same tensor for chaining; the caller's tensor is mutated.
func Denormalize(t *tensor.Tensor, mean, std []float64) (*tensor.Tensor, error) {
	if t == nil {
		return nil, errors.New("transform: nil tensor")
	}
	if err := checkChannels(t, mean, std); err != nil {
		return nil, err
	}
	for c := range mean {
		plane := t.Channel(c)
		floats.Scale(std[c], plane)
		floats.AddConst(mean[c], plane)
	}
	return t, nil
}

// Normalize is the pure counterpart of Denormalize: it returns a new
// tensor with x -> (x-mean[i])/std[i] applied per channel. The input is
// untouched.
func Normalize(t *tensor.Tensor, mean, std []float64) (*tensor.Tensor, error) {
	if t == nil {
		return nil, errors.New("transform: nil tensor")
	}
	if err := checkChannels(t, mean, std); err != nil {
		return nil, err
	}
	for i, s := range std {
		if s == 0 {
			return nil, fmt.Errorf("transform: std[%d] is zero", i)
		}
	}
	out := t.Clone()
	for c := range mean {
		plane := out.Channel(c)
		floats.AddConst(-mean[c], plane)
		floats.Scale(1/std[c], plane)
	}
	return out, nil
}

func checkChannels(t *tensor.Tensor, mean, std []float64) error {
	if len(mean) != len(std) || t.Channels() != len(mean) {
		return fmt.Errorf("%w: %d channels, %d means, %d stds",
			ErrChannelMismatch, t.Channels(), len(mean), len(std))
	}
	return nil
}
