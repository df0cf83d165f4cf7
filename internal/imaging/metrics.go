package imaging

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
)

// DefaultByteDepth is the bit depth assumed for PSNR and SSIM when none is
// known: 8 bits per channel.
const DefaultByteDepth = 8

var (
	// ErrShapeMismatch is returned when two compared arrays differ in shape.
	ErrShapeMismatch = errors.New("arrays must have the same shape")

	// ErrEmptyUnion is returned by IOU when neither mask has a set element.
	ErrEmptyUnion = errors.New("intersection over union of two empty masks")
)

func checkShapes(a, b *Array) error {
	if !a.SameShape(b) {
		return fmt.Errorf("%w: %v vs %v", ErrShapeMismatch, a.Shape, b.Shape)
	}
	return nil
}

// MSE returns the mean squared error between two arrays of the same shape.
//
// The difference is computed in float64. Identical arrays give exactly 0.
// Empty arrays give NaN.
func MSE(a, b *Array) (float64, error) {
	if err := checkShapes(a, b); err != nil {
		return 0, err
	}
	if a.Len() == 0 {
		return math.NaN(), nil
	}
	diff := floats.SubTo(make([]float64, a.Len()), a.Data, b.Data)
	return floats.Dot(diff, diff) / float64(len(diff)), nil
}

// PSNR returns the peak signal-to-noise ratio in dB between two arrays.
//
// The peak value is 2^byteDepth - 1. Identical arrays return +Inf. Lower MSE
// always gives a higher PSNR for a fixed byte depth.
func PSNR(a, b *Array, byteDepth int) (float64, error) {
	mse, err := MSE(a, b)
	if err != nil {
		return 0, err
	}
	if mse == 0 {
		return math.Inf(1), nil
	}
	maxPixel := math.Exp2(float64(byteDepth)) - 1
	return 20 * math.Log10(maxPixel/math.Sqrt(mse)), nil
}

// IOU returns the intersection over union of two masks.
//
// Any non-zero element counts as set. If neither mask has a set element the
// union is empty and ErrEmptyUnion is returned.
func IOU(mask1, mask2 *Array) (float64, error) {
	if err := checkShapes(mask1, mask2); err != nil {
		return 0, err
	}

	var intersection, union int
	for i, v := range mask1.Data {
		set1, set2 := v != 0, mask2.Data[i] != 0
		if set1 && set2 {
			intersection++
		}
		if set1 || set2 {
			union++
		}
	}
	if union == 0 {
		return 0, ErrEmptyUnion
	}
	return float64(intersection) / float64(union), nil
}
