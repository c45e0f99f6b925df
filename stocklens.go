// Package stocklens provides a fluent API for turning photographed or
// scanned product listings into structured, validated inventory records.
//
// Basic usage:
//
//	records, err := stocklens.FromFile("listing.jpg").Records(ctx)
//	if err != nil {
//	    // handle error
//	}
//
// With options:
//
//	records, err := stocklens.FromBytes(data, "image/png").
//	    PoolSize(4).
//	    Sections(4).
//	    Language("eng").
//	    Records(ctx)
//
// The pipeline preprocesses the image (bitmap package), recognizes its
// sections on a pool of OCR engines (ocrpool package, Tesseract behind
// the "ocr" build tag), and parses the recognized text into records
// (extract package). The lower-level packages remain available for
// advanced use.
package stocklens

import (
	"fmt"
	"os"

	"github.com/tsawler/stocklens/format"
	"github.com/tsawler/stocklens/ocrpool"
)

// RawImage is the opaque pipeline input: an immutable byte buffer plus
// its declared MIME type. An empty MIME type is filled in by sniffing the
// buffer's magic bytes.
type RawImage struct {
	Data []byte
	MIME string
}

// FromBytes starts an extraction from in-memory image data. The MIME type
// may be empty, in which case it is detected from the data.
func FromBytes(data []byte, mime string) *Extractor {
	if mime == "" {
		mime = format.DetectFromMagic(data).MIME()
	}
	return &Extractor{
		img:      RawImage{Data: data, MIME: mime},
		haveData: true,
		options:  defaultOptions(),
	}
}

// FromFile starts an extraction from an image file. The file is read when
// a terminal operation runs.
func FromFile(filename string) *Extractor {
	return &Extractor{
		filename: filename,
		options:  defaultOptions(),
	}
}

// load materializes the image bytes for a terminal operation.
func (e *Extractor) load() (RawImage, error) {
	if e.haveData {
		return e.img, nil
	}
	if e.filename == "" {
		return RawImage{}, fmt.Errorf("no image specified")
	}

	data, err := os.ReadFile(e.filename)
	if err != nil {
		return RawImage{}, fmt.Errorf("failed to read image file: %w", err)
	}

	mime := format.Detect(e.filename).MIME()
	if mime == "" {
		mime = format.DetectFromMagic(data).MIME()
	}
	return RawImage{Data: data, MIME: mime}, nil
}

// Must is a helper that wraps a call to a function returning (T, error)
// and panics if the error is non-nil. It is intended for use in scripts
// or tests where error handling would be cumbersome.
//
// Example:
//
//	records := stocklens.Must(stocklens.FromFile("listing.jpg").Records(ctx))
func Must[T any](val T, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}

// NewPool constructs a worker pool from the extractor's accumulated pool
// options. Hosting components that manage the pool lifecycle themselves
// can initialize it once per upload session and share it across
// extractions via WithPool.
func (e *Extractor) NewPool() (*ocrpool.Pool, error) {
	return ocrpool.New(e.options.pool)
}
