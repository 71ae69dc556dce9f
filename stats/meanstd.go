// Package stats estimates dataset-wide pixel statistics.
package stats

import (
	"errors"
	"math"

	"gonum.org/v1/gonum/floats"

	"handprep/tensor"
)

// ErrEmptyDataset indicates the estimator saw zero elements.
var ErrEmptyDataset = errors.New("stats: empty dataset")

// Batch pairs a stacked image tensor with its labels. The estimator
// ignores labels.
type Batch struct {
	Images *tensor.Tensor
	Labels []int
}

// Accumulator gathers running pixel statistics across batches.
type Accumulator struct {
	count int
	sum   float64
	sumSq float64
}

// Add folds every element of t into the running statistics.
func (a *Accumulator) Add(t *tensor.Tensor) {
	if t == nil || t.Len() == 0 {
		return
	}
	v := t.Data()
	a.count += len(v)
	a.sum += floats.Sum(v)
	a.sumSq += floats.Dot(v, v)
}

// Count returns the number of elements accumulated so far.
func (a *Accumulator) Count() int {
	return a.count
}

// MeanStd returns the global mean and standard deviation of everything
// accumulated. The variance is clamped at zero before the square root,
// since E[x^2] - E[x]^2 can go slightly negative under cancellation.
func (a *Accumulator) MeanStd() (float64, float64, error) {
	if a.count == 0 {
		return 0, 0, ErrEmptyDataset
	}
	n := float64(a.count)
	mean := a.sum / n
	variance := a.sumSq/n - mean*mean
	if variance < 0 {
		variance = 0
	}
	return mean, math.Sqrt(variance), nil
}

// DatasetMeanStd drains batches and returns the global pixel mean and
// standard deviation. The channel is consumed in a single pass; batches
// with a nil image tensor are skipped.
func DatasetMeanStd(batches <-chan Batch) (float64, float64, error) {
	var acc Accumulator
	for b := range batches {
		acc.Add(b.Images)
	}
	return acc.MeanStd()
}
