//go:build ocr

package ocr

import (
	"errors"
	"image"
	"image/color"
	"image/draw"
	"path/filepath"
	"strings"
	"testing"

	"github.com/disintegration/imaging"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/ironsheep/vision-tools/internal/textutil"
)

// renderText draws text in black on white with basicfont and enlarges it by
// scale, which Tesseract reads far more reliably than 13 pixel glyphs.
func renderText(text string, scale int) *image.NRGBA {
	width := len(text)*7 + 40
	height := 40

	small := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(small, small.Bounds(), image.White, image.Point{}, draw.Src)
	d := &font.Drawer{
		Dst:  small,
		Src:  image.NewUniform(color.Black),
		Face: basicfont.Face7x13,
		Dot:  fixed.P(20, 25),
	}
	d.DrawString(text)

	return imaging.Resize(small, width*scale, height*scale, imaging.NearestNeighbor)
}

func writeTextImage(t *testing.T, text string, scale int) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "text.png")
	if err := imaging.Save(renderText(text, scale), path); err != nil {
		t.Fatalf("failed to save image: %v", err)
	}
	return path
}

func skipIfUnavailable(t *testing.T, err error) {
	t.Helper()
	if err != nil && (strings.Contains(err.Error(), "tesseract") || strings.Contains(err.Error(), "language")) {
		t.Skipf("Tesseract not available: %v", err)
	}
}

func TestExtractText_NonExistentFile(t *testing.T) {
	_, err := ExtractText("/nonexistent/path/image.png", DefaultLanguage)
	if err == nil {
		t.Error("ExtractText should fail for non-existent file")
	}
}

func TestExtractText_Digits(t *testing.T) {
	path := writeTextImage(t, "1234567890", 4)

	result, err := ExtractText(path, "")
	skipIfUnavailable(t, err)
	if err != nil {
		t.Fatalf("ExtractText failed: %v", err)
	}
	if !strings.Contains(strings.ReplaceAll(result.Text, " ", ""), "1234567890") {
		t.Errorf("Text = %q, want it to contain 1234567890", result.Text)
	}
	for _, w := range result.Words {
		if w.Confidence < 0 || w.Confidence > 1 {
			t.Errorf("word %q confidence %v outside [0, 1]", w.Text, w.Confidence)
		}
	}
}

func TestFindNumbers(t *testing.T) {
	path := writeTextImage(t, "Gain 42 offset 7", 4)

	nums, err := FindNumbers(path, DefaultLanguage)
	skipIfUnavailable(t, err)
	if err != nil {
		t.Fatalf("FindNumbers failed: %v", err)
	}

	want := []textutil.Number{textutil.IntNumber(42), textutil.IntNumber(7)}
	if len(nums) != len(want) {
		t.Fatalf("FindNumbers = %v, want %v", nums, want)
	}
	for i := range want {
		if nums[i] != want[i] {
			t.Errorf("number %d = %v, want %v", i, nums[i], want[i])
		}
	}
}

func TestFindNumbers_NoDigits(t *testing.T) {
	path := writeTextImage(t, "no digits here", 4)

	_, err := FindNumbers(path, DefaultLanguage)
	skipIfUnavailable(t, err)
	if !errors.Is(err, textutil.ErrNoNumbers) {
		t.Errorf("FindNumbers error = %v, want ErrNoNumbers", err)
	}
}

func TestExtractTextFromRegion_BoundsOffset(t *testing.T) {
	img := renderText("2024", 4)
	canvas := image.NewNRGBA(image.Rect(0, 0, img.Bounds().Dx()+200, img.Bounds().Dy()+100))
	draw.Draw(canvas, canvas.Bounds(), image.White, image.Point{}, draw.Src)
	offset := image.Pt(200, 100)
	draw.Draw(canvas, img.Bounds().Add(offset), img, image.Point{}, draw.Src)

	region := image.Rectangle{Min: offset, Max: canvas.Bounds().Max}
	result, err := ExtractTextFromRegion(canvas, region, DefaultLanguage)
	skipIfUnavailable(t, err)
	if err != nil {
		t.Fatalf("ExtractTextFromRegion failed: %v", err)
	}
	for _, w := range result.Words {
		if !w.Bounds.In(region) {
			t.Errorf("word %q bounds %v not inside region %v", w.Text, w.Bounds, region)
		}
	}
}

func TestExtractTextFromRegion_OutsideImage(t *testing.T) {
	img := renderText("1", 1)
	_, err := ExtractTextFromRegion(img, image.Rect(5000, 5000, 6000, 6000), DefaultLanguage)
	if err == nil {
		t.Error("ExtractTextFromRegion should fail for a region outside the image")
	}
}

func TestVersion(t *testing.T) {
	if Version() == "" {
		t.Error("Version returned empty string")
	}
}
