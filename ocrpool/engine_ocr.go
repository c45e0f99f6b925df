//go:build ocr

package ocrpool

import (
	"fmt"
	"strings"

	"github.com/otiai10/gosseract/v2"
)

// tesseractEngine wraps a gosseract client configured for inventory
// listings.
type tesseractEngine struct {
	client *gosseract.Client
}

// newPlatformEngine builds a Tesseract-backed engine from the pool
// configuration.
func newPlatformEngine(cfg Config) (Engine, error) {
	client := gosseract.NewClient()

	if err := client.SetLanguage(cfg.Language); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to set language: %w", err)
	}
	if err := client.SetPageSegMode(gosseract.PageSegMode(cfg.PageSegMode)); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to set page segmentation mode: %w", err)
	}
	if cfg.Whitelist != "" {
		if err := client.SetWhitelist(cfg.Whitelist); err != nil {
			client.Close()
			return nil, fmt.Errorf("failed to set character whitelist: %w", err)
		}
	}
	if cfg.DisableDictionary {
		for _, key := range []string{"load_system_dawg", "load_freq_dawg"} {
			if err := client.SetVariable(gosseract.SettableVariable(key), "0"); err != nil {
				client.Close()
				return nil, fmt.Errorf("failed to disable dictionary bias: %w", err)
			}
		}
	}

	return &tesseractEngine{client: client}, nil
}

// Recognize performs OCR on PNG image data. Confidence is the mean word
// confidence reported by Tesseract, scaled to [0,1].
func (e *tesseractEngine) Recognize(png []byte) (string, float64, error) {
	if err := e.client.SetImageFromBytes(png); err != nil {
		return "", 0, fmt.Errorf("failed to set image: %w", err)
	}

	text, err := e.client.Text()
	if err != nil {
		return "", 0, fmt.Errorf("OCR failed: %w", err)
	}

	confidence := 0.0
	if boxes, err := e.client.GetBoundingBoxesVerbose(); err == nil && len(boxes) > 0 {
		var sum float64
		for _, box := range boxes {
			sum += box.Confidence
		}
		confidence = sum / float64(len(boxes)) / 100
	}

	return strings.TrimSpace(text), confidence, nil
}

// Close releases the underlying Tesseract client.
func (e *tesseractEngine) Close() error {
	if e.client != nil {
		return e.client.Close()
	}
	return nil
}
