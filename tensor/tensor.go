package tensor

import (
	"fmt"
)

// Tensor is a dense row-major float64 array with an explicit shape.
type Tensor struct {
	shape []int
	data  []float64
}

// New returns a zero-filled tensor with the given shape.
func New(shape ...int) *Tensor {
	n := 1
	for _, d := range shape {
		if d < 0 {
			panic(fmt.Sprintf("tensor: negative dimension %d", d))
		}
		n *= d
	}
	return &Tensor{shape: append([]int(nil), shape...), data: make([]float64, n)}
}

// FromData wraps data in a tensor of the given shape. The slice is not copied.
func FromData(data []float64, shape ...int) (*Tensor, error) {
	n := 1
	for _, d := range shape {
		if d < 0 {
			return nil, fmt.Errorf("tensor: negative dimension %d", d)
		}
		n *= d
	}
	if n != len(data) {
		return nil, fmt.Errorf("tensor: shape %v wants %d elements, got %d", shape, n, len(data))
	}
	return &Tensor{shape: append([]int(nil), shape...), data: data}, nil
}

// Shape returns a copy of the tensor's dimensions.
func (t *Tensor) Shape() []int {
	return append([]int(nil), t.shape...)
}

// Len returns the total number of elements.
func (t *Tensor) Len() int {
	return len(t.data)
}

// Data returns the backing slice. Mutations are visible to the tensor;
// the in-place transforms rely on this.
func (t *Tensor) Data() []float64 {
	return t.data
}

// Clone returns a deep copy.
func (t *Tensor) Clone() *Tensor {
	return &Tensor{
		shape: append([]int(nil), t.shape...),
		data:  append([]float64(nil), t.data...),
	}
}

// At returns the element at the given indices.
func (t *Tensor) At(idx ...int) float64 {
	return t.data[t.offset(idx)]
}

// Set stores v at the given indices.
func (t *Tensor) Set(v float64, idx ...int) {
	t.data[t.offset(idx)] = v
}

func (t *Tensor) offset(idx []int) int {
	if len(idx) != len(t.shape) {
		panic(fmt.Sprintf("tensor: %d indices for rank-%d tensor", len(idx), len(t.shape)))
	}
	off := 0
	for i, x := range idx {
		if x < 0 || x >= t.shape[i] {
			panic(fmt.Sprintf("tensor: index %d out of range for dimension %d (size %d)", x, i, t.shape[i]))
		}
		off = off*t.shape[i] + x
	}
	return off
}

// Channels returns the size of the leading dimension, or 0 for an empty shape.
func (t *Tensor) Channels() int {
	if len(t.shape) == 0 {
		return 0
	}
	return t.shape[0]
}

// Channel returns the backing slice for one leading-dimension plane.
// Mutating it mutates the tensor.
func (t *Tensor) Channel(i int) []float64 {
	if len(t.shape) < 2 {
		panic(fmt.Sprintf("tensor: Channel on rank-%d tensor", len(t.shape)))
	}
	if i < 0 || i >= t.shape[0] {
		panic(fmt.Sprintf("tensor: channel %d out of range (have %d)", i, t.shape[0]))
	}
	plane := len(t.data) / t.shape[0]
	return t.data[i*plane : (i+1)*plane]
}
