package imaging

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat"
)

const (
	defaultSSIMWindow = 7
	ssimK1            = 0.01
	ssimK2            = 0.03
)

// ErrInvalidWindow is returned by SSIM for window sizes that are even,
// smaller than 3, or larger than a dimension of the compared arrays.
var ErrInvalidWindow = errors.New("invalid SSIM window size")

// SSIMOptions configures SSIM.
type SSIMOptions struct {
	// ByteDepth sets the data range to 2^ByteDepth.
	ByteDepth int

	// WinSize is the side length of the uniform window. It must be odd and
	// at least 3. Zero selects 7.
	WinSize int

	// Multichannel treats the last axis as channels: SSIM is computed for
	// each channel separately and the results are averaged. When false the
	// window slides along every axis, channels included.
	Multichannel bool
}

// DefaultSSIMOptions returns 8-bit depth with the default window size.
func DefaultSSIMOptions() SSIMOptions {
	return SSIMOptions{ByteDepth: DefaultByteDepth}
}

// SSIM returns the mean structural similarity index between two arrays.
//
// Local means, variances and the covariance are computed with a uniform
// window of WinSize elements along each axis, using sample covariance
// normalization. The similarity map is averaged over the elements whose
// window lies fully inside the array. The score is typically in [-1, 1] and
// identical arrays give 1.
//
// The data range is 2^ByteDepth, one more than the peak value PSNR uses.
func SSIM(a, b *Array, opts SSIMOptions) (float64, error) {
	if err := checkShapes(a, b); err != nil {
		return 0, err
	}

	if !opts.Multichannel {
		return ssimND(a.Data, b.Data, a.Shape, opts)
	}

	if a.Ndim() < 2 {
		return 0, fmt.Errorf("multichannel SSIM needs at least 2 axes, got shape %v", a.Shape)
	}
	channels := a.Shape[a.Ndim()-1]
	spatial := a.Shape[:a.Ndim()-1]
	n := a.Len() / max(channels, 1)

	var total float64
	chA := make([]float64, n)
	chB := make([]float64, n)
	for c := 0; c < channels; c++ {
		for i := 0; i < n; i++ {
			chA[i] = a.Data[i*channels+c]
			chB[i] = b.Data[i*channels+c]
		}
		score, err := ssimND(chA, chB, spatial, opts)
		if err != nil {
			return 0, fmt.Errorf("channel %d: %w", c, err)
		}
		total += score
	}
	return total / float64(channels), nil
}

func ssimND(x, y []float64, shape []int, opts SSIMOptions) (float64, error) {
	win := opts.WinSize
	if win == 0 {
		win = defaultSSIMWindow
	}
	if len(shape) == 0 {
		return 0, fmt.Errorf("%w: scalar arrays have no window", ErrInvalidWindow)
	}
	if win < 3 || win%2 == 0 {
		return 0, fmt.Errorf("%w: %d must be odd and at least 3", ErrInvalidWindow, win)
	}
	for _, d := range shape {
		if d < win {
			return 0, fmt.Errorf("%w: %d exceeds array extent %v", ErrInvalidWindow, win, shape)
		}
	}

	np := math.Pow(float64(win), float64(len(shape)))
	covNorm := np / (np - 1)

	xx := make([]float64, len(x))
	yy := make([]float64, len(x))
	xy := make([]float64, len(x))
	for i := range x {
		xx[i] = x[i] * x[i]
		yy[i] = y[i] * y[i]
		xy[i] = x[i] * y[i]
	}

	ux := uniformFilter(x, shape, win)
	uy := uniformFilter(y, shape, win)
	uxx := uniformFilter(xx, shape, win)
	uyy := uniformFilter(yy, shape, win)
	uxy := uniformFilter(xy, shape, win)

	dataRange := math.Exp2(float64(opts.ByteDepth))
	c1 := (ssimK1 * dataRange) * (ssimK1 * dataRange)
	c2 := (ssimK2 * dataRange) * (ssimK2 * dataRange)

	pad := (win - 1) / 2
	inner := make([]float64, 0, len(x))
	forEachInterior(shape, pad, func(i int) {
		vx := covNorm * (uxx[i] - ux[i]*ux[i])
		vy := covNorm * (uyy[i] - uy[i]*uy[i])
		vxy := covNorm * (uxy[i] - ux[i]*uy[i])

		a1 := 2*ux[i]*uy[i] + c1
		a2 := 2*vxy + c2
		b1 := ux[i]*ux[i] + uy[i]*uy[i] + c1
		b2 := vx + vy + c2
		inner = append(inner, (a1*a2)/(b1*b2))
	})
	return stat.Mean(inner, nil), nil
}

// uniformFilter returns the mean of every size-wide neighbourhood along each
// axis in turn. Borders are extended by mirror reflection (d c b a | a b c d).
func uniformFilter(data []float64, shape []int, size int) []float64 {
	out := append([]float64(nil), data...)
	tmp := make([]float64, len(data))
	half := size / 2

	stride := 1
	for axis := len(shape) - 1; axis >= 0; axis-- {
		n := shape[axis]
		block := n * stride
		outer := len(data) / max(block, 1)
		line := make([]float64, n)

		for o := 0; o < outer; o++ {
			for in := 0; in < stride; in++ {
				base := o*block + in
				for i := 0; i < n; i++ {
					line[i] = out[base+i*stride]
				}
				for i := 0; i < n; i++ {
					var sum float64
					for k := i - half; k <= i+half; k++ {
						sum += line[reflectIndex(k, n)]
					}
					tmp[base+i*stride] = sum / float64(size)
				}
			}
		}
		out, tmp = tmp, out
		stride = block
	}
	return out
}

func reflectIndex(i, n int) int {
	for i < 0 || i >= n {
		if i < 0 {
			i = -i - 1
		} else {
			i = 2*n - i - 1
		}
	}
	return i
}

// forEachInterior calls fn with the flat offset of every element whose index
// is at least pad away from both ends of every axis.
func forEachInterior(shape []int, pad int, fn func(int)) {
	idx := make([]int, len(shape))
	for i := range idx {
		idx[i] = pad
		if shape[i]-pad <= pad {
			return
		}
	}
	for {
		off := 0
		for i, v := range idx {
			off = off*shape[i] + v
		}
		fn(off)

		axis := len(shape) - 1
		for ; axis >= 0; axis-- {
			idx[axis]++
			if idx[axis] < shape[axis]-pad {
				break
			}
			idx[axis] = pad
		}
		if axis < 0 {
			return
		}
	}
}
