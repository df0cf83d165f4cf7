package imaging

import (
	"image"
	"image/color"
	"image/png"
	"math"
	"os"
	"path/filepath"
	"testing"
)

// createInMemoryImage creates a solid color RGBA image.
func createInMemoryImage(width, height int, c color.Color) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, c)
		}
	}
	return img
}

// createGradientGray creates a horizontal gradient in an 8-bit gray image.
func createGradientGray(width, height int) *image.Gray {
	img := image.NewGray(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.SetGray(x, y, color.Gray{Y: uint8((x * 255) / max(width-1, 1))})
		}
	}
	return img
}

// writePNG encodes img into dir/name and returns the path.
func writePNG(t *testing.T, dir, name string, img image.Image) string {
	t.Helper()
	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("failed to create file: %v", err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatalf("failed to encode image: %v", err)
	}
	return path
}

// mustArray builds an Array or fails the test.
func mustArray(t *testing.T, data []float64, shape ...int) *Array {
	t.Helper()
	a, err := ArrayFrom(data, shape...)
	if err != nil {
		t.Fatalf("ArrayFrom failed: %v", err)
	}
	return a
}

// rampArray fills an Array of the given shape with a deterministic pattern.
func rampArray(shape ...int) *Array {
	a := NewArray(shape...)
	for i := range a.Data {
		a.Data[i] = float64((i*37 + 11) % 256)
	}
	return a
}

func almostEqual(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}
