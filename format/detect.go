// Package format provides raster image format detection for the stocklens
// library.
package format

import (
	"bytes"
	"path/filepath"
	"strings"
)

// Format represents a supported raster image format.
type Format int

const (
	// Unknown indicates an unrecognized format.
	Unknown Format = iota
	// PNG indicates a PNG image.
	PNG
	// JPEG indicates a JPEG image.
	JPEG
	// GIF indicates a GIF image.
	GIF
	// BMP indicates a Windows bitmap image.
	BMP
	// TIFF indicates a TIFF image.
	TIFF
	// WebP indicates a WebP image.
	WebP
)

// String returns the string representation of the format.
func (f Format) String() string {
	switch f {
	case PNG:
		return "PNG"
	case JPEG:
		return "JPEG"
	case GIF:
		return "GIF"
	case BMP:
		return "BMP"
	case TIFF:
		return "TIFF"
	case WebP:
		return "WebP"
	default:
		return "Unknown"
	}
}

// MIME returns the canonical MIME type for the format, or the empty string
// for Unknown.
func (f Format) MIME() string {
	switch f {
	case PNG:
		return "image/png"
	case JPEG:
		return "image/jpeg"
	case GIF:
		return "image/gif"
	case BMP:
		return "image/bmp"
	case TIFF:
		return "image/tiff"
	case WebP:
		return "image/webp"
	default:
		return ""
	}
}

// Detect determines the image format from a filename extension.
func Detect(filename string) Format {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".png":
		return PNG
	case ".jpg", ".jpeg":
		return JPEG
	case ".gif":
		return GIF
	case ".bmp":
		return BMP
	case ".tif", ".tiff":
		return TIFF
	case ".webp":
		return WebP
	default:
		return Unknown
	}
}

// DetectFromMIME maps a declared MIME type to a Format. It tolerates the
// common "image/jpg" misspelling.
func DetectFromMIME(mime string) Format {
	switch strings.ToLower(strings.TrimSpace(mime)) {
	case "image/png":
		return PNG
	case "image/jpeg", "image/jpg":
		return JPEG
	case "image/gif":
		return GIF
	case "image/bmp", "image/x-ms-bmp":
		return BMP
	case "image/tiff":
		return TIFF
	case "image/webp":
		return WebP
	default:
		return Unknown
	}
}

// DetectFromMagic checks magic bytes to determine the image format.
// This is more reliable than extension-based detection. It returns Unknown
// if the data does not begin with a recognized signature.
func DetectFromMagic(data []byte) Format {
	if len(data) < 4 {
		return Unknown
	}

	switch {
	// PNG magic: \x89PNG
	case bytes.HasPrefix(data, []byte{0x89, 'P', 'N', 'G'}):
		return PNG

	// JPEG magic: \xFF\xD8\xFF
	case bytes.HasPrefix(data, []byte{0xFF, 0xD8, 0xFF}):
		return JPEG

	// GIF magic: GIF87a or GIF89a
	case bytes.HasPrefix(data, []byte("GIF8")):
		return GIF

	// TIFF magic: II*\x00 (little-endian) or MM\x00* (big-endian)
	case bytes.HasPrefix(data, []byte{'I', 'I', 0x2A, 0x00}),
		bytes.HasPrefix(data, []byte{'M', 'M', 0x00, 0x2A}):
		return TIFF

	// WebP magic: RIFF....WEBP
	case len(data) >= 12 && bytes.HasPrefix(data, []byte("RIFF")) &&
		bytes.Equal(data[8:12], []byte("WEBP")):
		return WebP

	// BMP magic: BM. Checked last because it is only two bytes.
	case bytes.HasPrefix(data, []byte("BM")):
		return BMP

	default:
		return Unknown
	}
}
