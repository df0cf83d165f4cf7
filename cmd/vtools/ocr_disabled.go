//go:build !ocr

package main

import (
	"errors"

	"github.com/ironsheep/vision-tools/internal/textutil"
)

var errOCRUnavailable = errors.New("OCR support is not built in; rebuild with -tags ocr")

func findNumbersInImage(string, string) ([]textutil.Number, error) {
	return nil, errOCRUnavailable
}
