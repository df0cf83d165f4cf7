//go:build ocr

package main

import (
	"github.com/ironsheep/vision-tools/internal/ocr"
	"github.com/ironsheep/vision-tools/internal/textutil"
)

func findNumbersInImage(path, language string) ([]textutil.Number, error) {
	return ocr.FindNumbers(path, language)
}
