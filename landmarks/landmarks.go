// Package landmarks holds hand keypoint coordinates and their
// wrist-relative normalization.
package landmarks

import (
	"fmt"
	"math"

	"handprep/tensor"
)

// Count is the number of keypoints in a full hand annotation.
const Count = 21

// Wrist is the index of the reference keypoint used for normalization.
const Wrist = 0

// Point is a single keypoint coordinate.
type Point struct {
	X, Y, Z float64
}

// Set is an ordered collection of keypoints.
type Set []Point

// FromSlice builds a Set from (x, y, z) triples.
func FromSlice(v [][3]float64) Set {
	out := make(Set, len(v))
	for i, p := range v {
		out[i] = Point{X: p[0], Y: p[1], Z: p[2]}
	}
	return out
}

// Clone returns a copy of the set.
func (s Set) Clone() Set {
	return append(Set(nil), s...)
}

// Validate checks the set has the full keypoint count and finite values.
func (s Set) Validate() error {
	if len(s) != Count {
		return fmt.Errorf("landmarks: want %d points, got %d", Count, len(s))
	}
	for i, p := range s {
		for _, v := range [3]float64{p.X, p.Y, p.Z} {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return fmt.Errorf("landmarks: point %d is not finite", i)
			}
		}
	}
	return nil
}

// InRange reports whether every coordinate lies within [lo, hi].
func (s Set) InRange(lo, hi float64) bool {
	for _, p := range s {
		for _, v := range [3]float64{p.X, p.Y, p.Z} {
			if v < lo || v > hi {
				return false
			}
		}
	}
	return true
}

// Clamp limits every coordinate to [lo, hi] in place.
func (s Set) Clamp(lo, hi float64) {
	for i := range s {
		s[i].X = clamp(s[i].X, lo, hi)
		s[i].Y = clamp(s[i].Y, lo, hi)
		s[i].Z = clamp(s[i].Z, lo, hi)
	}
}

// ToTensor returns the set as an n-by-3 tensor.
func (s Set) ToTensor() *tensor.Tensor {
	t := tensor.New(len(s), 3)
	for i, p := range s {
		t.Set(p.X, i, 0)
		t.Set(p.Y, i, 1)
		t.Set(p.Z, i, 2)
	}
	return t
}

// NormalizeWrist recenters the set on the wrist keypoint. For input in
// [0,1] the result lies in [-1,1] with the wrist at the origin. The input
// is not modified.
func NormalizeWrist(s Set) Set {
	out := s.Clone()
	if len(out) == 0 {
		return out
	}
	w := s[Wrist]
	for i := range out {
		out[i].X -= w.X
		out[i].Y -= w.Y
		out[i].Z -= w.Z
	}
	out.Clamp(-1, 1)
	return out
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
