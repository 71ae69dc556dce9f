package transform

import (
	"errors"
	"image"
	"math"
	"math/rand"

	bildtransform "github.com/anthonynsimon/bild/transform"
	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/math/f64"

	"handprep/landmarks"
)

const defaultSeed = 42

// RandomRotateFlip jointly augments an image and its landmarks with a
// random rotation about the image center and an optional horizontal flip.
// The landmarks are carried through the exact pixel-space matrix applied
// to the image, then clamped back to [0,1]. The image stays a native
// image; tensor conversion is left to a later transform.
type RandomRotateFlip struct {
	RotationRange float64 // degrees, symmetric around 0
	HFlipProb     float64
	rng           *rand.Rand
}

// NewRandomRotateFlip builds the augmentation with an injected PRNG for
// reproducibility. A nil rng falls back to a fixed-seed source.
func NewRandomRotateFlip(rotationRange, hflipProb float64, rng *rand.Rand) *RandomRotateFlip {
	if rng == nil {
		rng = rand.New(rand.NewSource(defaultSeed))
	}
	return &RandomRotateFlip{
		RotationRange: rotationRange,
		HFlipProb:     hflipProb,
		rng:           rng,
	}
}

// Apply returns the augmented image and landmarks. The input set is not
// modified.
func (rf *RandomRotateFlip) Apply(img image.Image, set landmarks.Set) (image.Image, landmarks.Set, error) {
	if img == nil {
		return nil, nil, errors.New("transform: nil image")
	}
	out := img
	pts := set.Clone()

	if rf.RotationRange > 0 {
		angle := (rf.rng.Float64()*2 - 1) * rf.RotationRange
		b := img.Bounds()
		out = rotateImage(out, angle)
		pts = rotatePoints(pts, angle, b.Dx(), b.Dy())
	}
	if rf.HFlipProb > 0 && rf.rng.Float64() < rf.HFlipProb {
		out = bildtransform.FlipH(out)
		for i := range pts {
			pts[i].X = 1 - pts[i].X
		}
	}
	pts.Clamp(0, 1)
	return out, pts, nil
}

// rotateImage rotates the image content by angle degrees about its center,
// keeping the original bounds. Pixels rotated in from outside are black.
func rotateImage(img image.Image, angle float64) image.Image {
	b := img.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))

	sin, cos := math.Sincos(angle * math.Pi / 180)
	csx := float64(b.Min.X) + float64(b.Dx())/2
	csy := float64(b.Min.Y) + float64(b.Dy())/2
	cdx := float64(b.Dx()) / 2
	cdy := float64(b.Dy()) / 2

	// dst = R(angle)*(src - cSrc) + cDst
	m := f64.Aff3{
		cos, -sin, cdx - cos*csx + sin*csy,
		sin, cos, cdy - sin*csx - cos*csy,
	}
	xdraw.BiLinear.Transform(dst, m, img, b, xdraw.Src, nil)
	return dst
}

// rotatePoints applies the same pixel-space rotation to normalized
// coordinates, scaling by the image dimensions so non-square images
// rotate correctly.
func rotatePoints(set landmarks.Set, angle float64, w, h int) landmarks.Set {
	sin, cos := math.Sincos(angle * math.Pi / 180)
	cx := float64(w) / 2
	cy := float64(h) / 2
	out := set.Clone()
	for i, p := range set {
		px := p.X*float64(w) - cx
		py := p.Y*float64(h) - cy
		out[i].X = (cos*px - sin*py + cx) / float64(w)
		out[i].Y = (sin*px + cos*py + cy) / float64(h)
	}
	return out
}
