package imaging

import (
	"fmt"
	"image"
	"slices"
	"strings"
)

// Array is a dense, row-major n-dimensional array of float64 values.
//
// The last axis varies fastest. An image of height H and width W is stored
// with Shape (H, W), or (H, W, C) when it has C channels.
type Array struct {
	Shape []int
	Data  []float64
}

// NewArray allocates a zero-filled Array with the given shape.
//
// It panics if any dimension is negative.
func NewArray(shape ...int) *Array {
	n := 1
	for _, d := range shape {
		if d < 0 {
			panic(fmt.Sprintf("imaging: negative dimension %d in shape %v", d, shape))
		}
		n *= d
	}
	return &Array{Shape: slices.Clone(shape), Data: make([]float64, n)}
}

// ArrayFrom wraps data in an Array of the given shape.
//
// The slice is used directly, not copied. An error is returned when the
// number of elements does not match the shape.
func ArrayFrom(data []float64, shape ...int) (*Array, error) {
	n := 1
	for _, d := range shape {
		if d < 0 {
			return nil, fmt.Errorf("negative dimension %d in shape %v", d, shape)
		}
		n *= d
	}
	if n != len(data) {
		return nil, fmt.Errorf("%d elements cannot fill shape %v", len(data), shape)
	}
	return &Array{Shape: slices.Clone(shape), Data: data}, nil
}

// MaskFrom builds a mask Array from booleans, 1 for true and 0 for false.
func MaskFrom(bits []bool, shape ...int) (*Array, error) {
	data := make([]float64, len(bits))
	for i, b := range bits {
		if b {
			data[i] = 1
		}
	}
	return ArrayFrom(data, shape...)
}

// Len returns the number of elements.
func (a *Array) Len() int {
	return len(a.Data)
}

// Ndim returns the number of axes.
func (a *Array) Ndim() int {
	return len(a.Shape)
}

// SameShape reports whether a and b have identical shapes.
func (a *Array) SameShape(b *Array) bool {
	return slices.Equal(a.Shape, b.Shape)
}

// At returns the element at the given multi-index.
func (a *Array) At(idx ...int) float64 {
	return a.Data[a.offset(idx)]
}

// Set stores v at the given multi-index.
func (a *Array) Set(v float64, idx ...int) {
	a.Data[a.offset(idx)] = v
}

func (a *Array) offset(idx []int) int {
	if len(idx) != len(a.Shape) {
		panic(fmt.Sprintf("imaging: index %v does not match shape %v", idx, a.Shape))
	}
	off := 0
	for i, v := range idx {
		if v < 0 || v >= a.Shape[i] {
			panic(fmt.Sprintf("imaging: index %v out of range for shape %v", idx, a.Shape))
		}
		off = off*a.Shape[i] + v
	}
	return off
}

// MinMax returns the smallest and largest element. Both are 0 for an empty
// Array.
func (a *Array) MinMax() (lo, hi float64) {
	if len(a.Data) == 0 {
		return 0, 0
	}
	lo, hi = a.Data[0], a.Data[0]
	for _, v := range a.Data[1:] {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	return lo, hi
}

// String formats the Array shape, e.g. "Array(480x640x3)".
func (a *Array) String() string {
	dims := make([]string, len(a.Shape))
	for i, d := range a.Shape {
		dims[i] = fmt.Sprint(d)
	}
	return "Array(" + strings.Join(dims, "x") + ")"
}

// ArrayFromImage converts an image into an Array and reports the byte depth
// of the source (8 or 16).
//
// Grayscale images (*image.Gray, *image.Gray16) produce shape (H, W). All
// other images produce shape (H, W, 3) holding the R, G and B channels; alpha
// is dropped. Values stay in the native range of the source depth.
func ArrayFromImage(img image.Image) (*Array, int) {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()

	depth := 8
	switch img.(type) {
	case *image.Gray16, *image.RGBA64, *image.NRGBA64:
		depth = 16
	}
	shift := uint(16 - depth)

	switch src := img.(type) {
	case *image.Gray:
		out := NewArray(h, w)
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				out.Data[y*w+x] = float64(src.GrayAt(bounds.Min.X+x, bounds.Min.Y+y).Y)
			}
		}
		return out, depth
	case *image.Gray16:
		out := NewArray(h, w)
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				out.Data[y*w+x] = float64(src.Gray16At(bounds.Min.X+x, bounds.Min.Y+y).Y)
			}
		}
		return out, depth
	}

	out := NewArray(h, w, 3)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			r, g, b, _ := img.At(bounds.Min.X+x, bounds.Min.Y+y).RGBA()
			i := (y*w + x) * 3
			out.Data[i] = float64(r >> shift)
			out.Data[i+1] = float64(g >> shift)
			out.Data[i+2] = float64(b >> shift)
		}
	}
	return out, depth
}
