//go:build ocr

package ocr

import (
	"fmt"
	"image"
	"os"

	"github.com/disintegration/imaging"
	"github.com/otiai10/gosseract/v2"

	"github.com/ironsheep/vision-tools/internal/textutil"
)

// DefaultLanguage is the Tesseract language used when none is given.
const DefaultLanguage = "eng"

// Word is one recognized word with its location and confidence.
type Word struct {
	// Text is the recognized word.
	Text string `json:"text"`

	// Confidence is the recognition confidence in [0, 1].
	Confidence float64 `json:"confidence"`

	// Bounds is the word's bounding box in source image coordinates.
	Bounds image.Rectangle `json:"bounds"`
}

// Result holds the text recognized in an image.
type Result struct {
	// Text is the full recognized text with Tesseract's line breaks.
	Text string `json:"text"`

	// Words may be empty when word boxes are unavailable; Text is still set.
	Words []Word `json:"words"`
}

// ExtractText runs OCR on the image file at path.
//
// An empty language selects DefaultLanguage.
func ExtractText(path, language string) (*Result, error) {
	if language == "" {
		language = DefaultLanguage
	}

	client := gosseract.NewClient()
	defer client.Close()

	if err := client.SetLanguage(language); err != nil {
		return nil, fmt.Errorf("failed to set language: %w", err)
	}
	if err := client.SetImage(path); err != nil {
		return nil, fmt.Errorf("failed to set image: %w", err)
	}

	text, err := client.Text()
	if err != nil {
		return nil, fmt.Errorf("OCR failed: %w", err)
	}

	result := &Result{Text: text, Words: []Word{}}
	boxes, err := client.GetBoundingBoxes(gosseract.RIL_WORD)
	if err != nil {
		return result, nil
	}
	for _, box := range boxes {
		if box.Word == "" {
			continue
		}
		result.Words = append(result.Words, Word{
			Text:       box.Word,
			Confidence: float64(box.Confidence) / 100.0,
			Bounds:     box.Box,
		})
	}
	return result, nil
}

// ExtractTextFromRegion runs OCR on the part of img inside region. Word
// bounds in the result are translated back to img coordinates.
func ExtractTextFromRegion(img image.Image, region image.Rectangle, language string) (*Result, error) {
	region = region.Intersect(img.Bounds())
	if region.Empty() {
		return nil, fmt.Errorf("region %v lies outside image bounds %v", region, img.Bounds())
	}
	cropped := imaging.Crop(img, region)

	tmpFile, err := os.CreateTemp("", "vtools-ocr-*.png")
	if err != nil {
		return nil, fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmpFile.Name()
	tmpFile.Close()
	defer os.Remove(tmpPath)

	if err := imaging.Save(cropped, tmpPath); err != nil {
		return nil, fmt.Errorf("failed to encode temp image: %w", err)
	}

	result, err := ExtractText(tmpPath, language)
	if err != nil {
		return nil, err
	}
	for i := range result.Words {
		result.Words[i].Bounds = result.Words[i].Bounds.Add(region.Min)
	}
	return result, nil
}

// FindNumbers runs OCR on the image file at path and extracts the numbers in
// the recognized text. It returns textutil.ErrNoNumbers when the text holds
// none.
func FindNumbers(path, language string) ([]textutil.Number, error) {
	result, err := ExtractText(path, language)
	if err != nil {
		return nil, err
	}
	return textutil.FindNumbers(result.Text)
}

// FindNumbersInRegion is FindNumbers restricted to a region of img.
func FindNumbersInRegion(img image.Image, region image.Rectangle, language string) ([]textutil.Number, error) {
	result, err := ExtractTextFromRegion(img, region, language)
	if err != nil {
		return nil, err
	}
	return textutil.FindNumbers(result.Text)
}

// Version returns the linked Tesseract version.
func Version() string {
	client := gosseract.NewClient()
	defer client.Close()
	return client.Version()
}
