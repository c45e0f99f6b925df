package ocrpool

import "errors"

// ErrOCRNotEnabled is returned when the platform engine is requested but
// OCR support was not compiled in. Rebuild with -tags ocr to enable it.
var ErrOCRNotEnabled = errors.New("OCR support not enabled; rebuild with -tags ocr")

// Engine is a single OCR engine instance. Engines are stateful and not
// safe for concurrent use; the pool serializes access per worker.
type Engine interface {
	// Recognize performs OCR on PNG-encoded image data and returns the
	// recognized text plus a confidence signal in [0,1].
	Recognize(png []byte) (string, float64, error)

	// Close releases engine resources.
	Close() error
}
