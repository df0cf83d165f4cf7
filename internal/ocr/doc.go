// Package ocr reads text and numbers from images with Tesseract.
//
// The package wraps the Tesseract engine through gosseract/v2, which needs cgo
// and the libtesseract development files. It is therefore only compiled with
// the "ocr" build tag:
//
//	go build -tags ocr ./...
//
// Without the tag the package is empty and the vtools "numbers --image" flag
// reports that OCR support is missing.
//
// # Prerequisites
//
// Tesseract and its language data must be installed on the system:
//   - Ubuntu/Debian: apt-get install libtesseract-dev tesseract-ocr-eng
//   - macOS: brew install tesseract
//
// # Languages
//
// Languages use Tesseract codes such as "eng", "deu" or "fra". DefaultLanguage
// is "eng".
//
// # Numbers
//
// FindNumbers and FindNumbersInRegion run OCR and pass the recognized text to
// textutil.FindNumbers, so an image of "Exposure 1/250 at f2.8" yields 1, 250
// and 2.8 just as the same string would.
package ocr
