package tensor

import (
	"errors"
	"image"
	"image/color"
)

// FromImage converts an image to a 3xHxW tensor with values in [0,1].
// The alpha channel is dropped.
func FromImage(img image.Image) *Tensor {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	t := New(3, h, w)
	plane := h * w
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			r, g, bl, _ := img.At(b.Min.X+x, b.Min.Y+y).RGBA()
			i := y*w + x
			t.data[i] = float64(r) / 65535.0
			t.data[plane+i] = float64(g) / 65535.0
			t.data[2*plane+i] = float64(bl) / 65535.0
		}
	}
	return t
}

// GrayFromImage converts an image to a 1xHxW intensity tensor in [0,1],
// averaging the color channels.
func GrayFromImage(img image.Image) *Tensor {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	t := New(1, h, w)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			r, g, bl, _ := img.At(b.Min.X+x, b.Min.Y+y).RGBA()
			t.data[y*w+x] = (float64(r) + float64(g) + float64(bl)) / (3 * 65535.0)
		}
	}
	return t
}

// ToImage renders a 1- or 3-channel CHW tensor back to an image for
// visualization. Values are clamped to [0,1] before quantization.
func (t *Tensor) ToImage() (image.Image, error) {
	if len(t.shape) != 3 {
		return nil, errors.New("tensor: ToImage wants a rank-3 CHW tensor")
	}
	c, h, w := t.shape[0], t.shape[1], t.shape[2]
	switch c {
	case 1:
		img := image.NewGray(image.Rect(0, 0, w, h))
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				img.SetGray(x, y, color.Gray{Y: quantize(t.data[y*w+x])})
			}
		}
		return img, nil
	case 3:
		img := image.NewRGBA(image.Rect(0, 0, w, h))
		plane := h * w
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				i := y*w + x
				img.SetRGBA(x, y, color.RGBA{
					R: quantize(t.data[i]),
					G: quantize(t.data[plane+i]),
					B: quantize(t.data[2*plane+i]),
					A: 255,
				})
			}
		}
		return img, nil
	default:
		return nil, errors.New("tensor: ToImage wants 1 or 3 channels")
	}
}

func quantize(v float64) uint8 {
	if v < 0 {
		v = 0
	}
	if v > 1 {
		v = 1
	}
	return uint8(v*255 + 0.5)
}
