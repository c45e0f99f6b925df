//go:build !ocr

package ocrpool

// newPlatformEngine is the stub used when the "ocr" build tag is not set.
// Pools configured without a custom engine factory fail to initialize.
func newPlatformEngine(Config) (Engine, error) {
	return nil, ErrOCRNotEnabled
}
