package bitmap

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/png"

	// Raster decoders for the formats accepted at the pipeline boundary.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"golang.org/x/image/draw"
)

// ErrDecode indicates the input bytes could not be decoded as a supported
// raster image.
var ErrDecode = errors.New("unreadable image")

// Bitmap is a mutable pixel buffer with 4-channel 8-bit samples (RGBA
// order). After thresholding, the three color channels all carry the
// bilevel value and alpha is opaque.
type Bitmap struct {
	Width  int
	Height int
	Pix    []uint8 // 4 bytes per pixel, row-major
}

// Section is a horizontal band of a preprocessed bitmap plus the integer
// index used to assign it to a recognition worker and to reassemble output
// in order. Sections produced by Preprocess never overlap.
type Section struct {
	Index  int
	Bitmap *Bitmap
}

// New returns an all-zero bitmap of the given dimensions.
func New(width, height int) *Bitmap {
	return &Bitmap{
		Width:  width,
		Height: height,
		Pix:    make([]uint8, width*height*4),
	}
}

// Decode decodes raw image bytes into a Bitmap. Unsupported or corrupt
// input yields an error wrapping ErrDecode; this is the preprocessor's
// only failure mode.
func Decode(data []byte) (*Bitmap, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	return FromImage(img), nil
}

// FromImage copies an image.Image into a Bitmap.
func FromImage(img image.Image) *Bitmap {
	bounds := img.Bounds()
	rgba := image.NewRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	draw.Draw(rgba, rgba.Bounds(), img, bounds.Min, draw.Src)

	return &Bitmap{
		Width:  bounds.Dx(),
		Height: bounds.Dy(),
		Pix:    rgba.Pix,
	}
}

// Image returns the bitmap as an image.RGBA sharing the pixel buffer.
func (b *Bitmap) Image() *image.RGBA {
	return &image.RGBA{
		Pix:    b.Pix,
		Stride: b.Width * 4,
		Rect:   image.Rect(0, 0, b.Width, b.Height),
	}
}

// PNG encodes the bitmap as PNG data, the form consumed by the OCR
// engines.
func (b *Bitmap) PNG() ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, b.Image()); err != nil {
		return nil, fmt.Errorf("failed to encode PNG: %w", err)
	}
	return buf.Bytes(), nil
}

// Clone returns a deep copy of the bitmap.
func (b *Bitmap) Clone() *Bitmap {
	pix := make([]uint8, len(b.Pix))
	copy(pix, b.Pix)
	return &Bitmap{Width: b.Width, Height: b.Height, Pix: pix}
}

// at returns the byte offset of pixel (x, y).
func (b *Bitmap) at(x, y int) int {
	return (y*b.Width + x) * 4
}
