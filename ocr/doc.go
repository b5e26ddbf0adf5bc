// Package ocr extracts text from images.
//
// The default engine runs the tesseract CLI. Building with the gosseract tag
// adds an in-process engine on top of libtesseract, selected with
// ocr.engine: gosseract; tesseract stays registered as the fallback.
package ocr
