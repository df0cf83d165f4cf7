package imaging

import (
	"errors"
	"testing"
)

func TestSSIM_Identical(t *testing.T) {
	for _, shape := range [][]int{{7, 7}, {16, 12}, {9, 9, 9}} {
		a := rampArray(shape...)
		got, err := SSIM(a, a, DefaultSSIMOptions())
		if err != nil {
			t.Fatalf("SSIM failed for %v: %v", shape, err)
		}
		if !almostEqual(got, 1, 1e-12) {
			t.Errorf("SSIM(x, x) for %v: got %v, want 1", shape, got)
		}
	}
}

func TestSSIM_ConstantImages(t *testing.T) {
	// With zero variance only the luminance term remains:
	// (2*u1*u2 + C1) / (u1^2 + u2^2 + C1).
	a := NewArray(10, 10)
	b := NewArray(10, 10)
	for i := range a.Data {
		a.Data[i] = 100
		b.Data[i] = 110
	}
	c1 := (0.01 * 256) * (0.01 * 256)
	want := (2*100*110 + c1) / (100*100 + 110*110 + c1)

	got, err := SSIM(a, b, DefaultSSIMOptions())
	if err != nil {
		t.Fatalf("SSIM failed: %v", err)
	}
	if !almostEqual(got, want, 1e-12) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestSSIM_DegradesWithNoise(t *testing.T) {
	a := rampArray(20, 20)
	prev := 1.0
	for _, amplitude := range []float64{5, 20, 60} {
		b := NewArray(20, 20)
		for i, v := range a.Data {
			sign := 1.0
			if i%2 == 0 {
				sign = -1
			}
			b.Data[i] = v + sign*amplitude
		}
		got, err := SSIM(a, b, DefaultSSIMOptions())
		if err != nil {
			t.Fatalf("SSIM failed: %v", err)
		}
		if got >= prev {
			t.Errorf("amplitude %v: SSIM %v did not decrease from %v", amplitude, got, prev)
		}
		if got < -1 || got > 1 {
			t.Errorf("amplitude %v: SSIM %v outside [-1, 1]", amplitude, got)
		}
		prev = got
	}
}

func TestSSIM_WindowValidation(t *testing.T) {
	a := rampArray(8, 8)

	tests := []struct {
		name string
		win  int
	}{
		{"even", 4},
		{"too small", 1},
		{"negative", -3},
		{"exceeds extent", 9},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := SSIM(a, a, SSIMOptions{ByteDepth: 8, WinSize: tt.win})
			if !errors.Is(err, ErrInvalidWindow) {
				t.Errorf("expected ErrInvalidWindow, got %v", err)
			}
		})
	}

	// The default window of 7 does not fit a 3-channel axis.
	rgb := rampArray(10, 10, 3)
	if _, err := SSIM(rgb, rgb, DefaultSSIMOptions()); !errors.Is(err, ErrInvalidWindow) {
		t.Errorf("expected ErrInvalidWindow for channel axis, got %v", err)
	}
}

func TestSSIM_CustomWindow(t *testing.T) {
	a := rampArray(5, 5)
	got, err := SSIM(a, a, SSIMOptions{ByteDepth: 8, WinSize: 3})
	if err != nil {
		t.Fatalf("SSIM failed: %v", err)
	}
	if !almostEqual(got, 1, 1e-12) {
		t.Errorf("got %v, want 1", got)
	}
}

func TestSSIM_Multichannel(t *testing.T) {
	a := rampArray(10, 10, 3)
	opts := DefaultSSIMOptions()
	opts.Multichannel = true

	got, err := SSIM(a, a, opts)
	if err != nil {
		t.Fatalf("SSIM failed: %v", err)
	}
	if !almostEqual(got, 1, 1e-12) {
		t.Errorf("got %v, want 1", got)
	}

	// Perturbing one channel lowers the average.
	b := NewArray(10, 10, 3)
	copy(b.Data, a.Data)
	for i := 0; i < len(b.Data); i += 3 {
		b.Data[i] = 255 - b.Data[i]
	}
	got, err = SSIM(a, b, opts)
	if err != nil {
		t.Fatalf("SSIM failed: %v", err)
	}
	if got >= 1 {
		t.Errorf("perturbed SSIM: got %v, want < 1", got)
	}
}

func TestSSIM_ShapeMismatch(t *testing.T) {
	if _, err := SSIM(NewArray(8, 8), NewArray(8, 9), DefaultSSIMOptions()); !errors.Is(err, ErrShapeMismatch) {
		t.Errorf("expected ErrShapeMismatch, got %v", err)
	}
}

func TestUniformFilter(t *testing.T) {
	// 1-D reflection: [1 2 3 4] extends to 1 | 1 2 3 4 | 4.
	got := uniformFilter([]float64{1, 2, 3, 4}, []int{4}, 3)
	want := []float64{4.0 / 3, 2, 3, 11.0 / 3}
	for i := range want {
		if !almostEqual(got[i], want[i], 1e-12) {
			t.Errorf("index %d: got %v, want %v", i, got[i], want[i])
		}
	}

	// A constant field stays constant in any dimension.
	data := make([]float64, 4*5*6)
	for i := range data {
		data[i] = 7
	}
	for i, v := range uniformFilter(data, []int{4, 5, 6}, 3) {
		if !almostEqual(v, 7, 1e-12) {
			t.Fatalf("index %d: got %v, want 7", i, v)
		}
	}
}

func TestReflectIndex(t *testing.T) {
	tests := []struct{ i, n, want int }{
		{-1, 4, 0},
		{-2, 4, 1},
		{4, 4, 3},
		{5, 4, 2},
		{2, 4, 2},
		{-3, 1, 0},
	}
	for _, tt := range tests {
		if got := reflectIndex(tt.i, tt.n); got != tt.want {
			t.Errorf("reflectIndex(%d, %d): got %d, want %d", tt.i, tt.n, got, tt.want)
		}
	}
}
