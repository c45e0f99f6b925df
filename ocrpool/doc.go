// Package ocrpool manages a fixed-size pool of OCR engine instances for
// concurrent section recognition.
//
// A [Pool] owns its engines for the lifetime of one upload session:
// acquire with [Pool.Init] before the first recognition, release
// unconditionally with [Pool.Terminate] afterward. Sections are dispatched
// to workers deterministically by section index modulo pool size, and
// [Pool.RecognizeAll] joins a batch all-or-nothing: if any section fails,
// the whole batch fails and no partial results are returned.
//
// The Tesseract-backed engine (via gosseract) is compiled in only with the
// "ocr" build tag and requires Tesseract to be installed. On macOS:
//
//	brew install tesseract
//
// On Ubuntu/Debian:
//
//	apt-get install tesseract-ocr
//
// Without the tag, engine construction fails with [ErrOCRNotEnabled].
// Tests and embedding applications can supply their own engines through
// [Config.NewEngine].
package ocrpool
