package bitmap

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"math"
	"testing"
)

// solidPNG encodes a uniform-color PNG for decode tests.
func solidPNG(width, height int, c color.Color) []byte {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, c)
		}
	}
	var buf bytes.Buffer
	_ = png.Encode(&buf, img)
	return buf.Bytes()
}

// grayBitmap builds a 1-row bitmap whose pixels take the given gray values.
func grayBitmap(values []uint8) *Bitmap {
	b := New(len(values), 1)
	for i, v := range values {
		b.Pix[i*4] = v
		b.Pix[i*4+1] = v
		b.Pix[i*4+2] = v
		b.Pix[i*4+3] = 255
	}
	return b
}

func TestDecodeRejectsGarbage(t *testing.T) {
	_, err := Decode([]byte("definitely not an image"))
	if err == nil {
		t.Fatal("expected error for undecodable input")
	}
	if !errors.Is(err, ErrDecode) {
		t.Errorf("expected ErrDecode, got %v", err)
	}
}

func TestDecodeDimensions(t *testing.T) {
	b, err := Decode(solidPNG(40, 25, color.White))
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if b.Width != 40 || b.Height != 25 {
		t.Errorf("got %dx%d, want 40x25", b.Width, b.Height)
	}
	if len(b.Pix) != 40*25*4 {
		t.Errorf("pixel buffer length = %d, want %d", len(b.Pix), 40*25*4)
	}
}

func TestScale(t *testing.T) {
	tests := []struct {
		name      string
		w, h      int
		targetDim int
		wantW     int
		wantH     int
	}{
		{"small capture upscaled at cap", 100, 50, 1600, 300, 150},
		{"longer dimension already at target", 3200, 1600, 1600, 3200, 1600},
		{"oversized capture downscaled", 3200, 3200, 1600, 1600, 1600},
		{"exact fit unchanged", 1600, 1600, 1600, 1600, 1600},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Scale(New(tt.w, tt.h), tt.targetDim)
			if got.Width != tt.wantW || got.Height != tt.wantH {
				t.Errorf("got %dx%d, want %dx%d", got.Width, got.Height, tt.wantW, tt.wantH)
			}
		})
	}
}

func TestGrayscaleLumaWeights(t *testing.T) {
	tests := []struct {
		name    string
		r, g, b uint8
		want    float64
	}{
		{"red", 255, 0, 0, 76.2},
		{"green", 0, 255, 0, 149.7},
		{"blue", 0, 0, 255, 29.1},
		{"white", 255, 255, 255, 255},
		{"black", 0, 0, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bm := New(1, 1)
			bm.Pix[0], bm.Pix[1], bm.Pix[2], bm.Pix[3] = tt.r, tt.g, tt.b, 255
			Grayscale(bm)

			got := float64(bm.Pix[0])
			if math.Abs(got-tt.want) > 1 {
				t.Errorf("gray = %v, want %v +/- 1", got, tt.want)
			}
			if bm.Pix[0] != bm.Pix[1] || bm.Pix[1] != bm.Pix[2] {
				t.Error("channels differ after grayscale conversion")
			}
		})
	}
}

// TestOtsuThresholdBimodal verifies threshold selection on a synthetic
// histogram with Gaussian-ish peaks at 50 and 200; the maximizing
// threshold must land between the peaks, near 125.
func TestOtsuThresholdBimodal(t *testing.T) {
	const sigma = 30.0
	var values []uint8
	for v := 0; v < 256; v++ {
		fv := float64(v)
		weight := math.Exp(-(fv-50)*(fv-50)/(2*sigma*sigma)) +
			math.Exp(-(fv-200)*(fv-200)/(2*sigma*sigma))
		count := int(weight*100 + 0.5)
		for i := 0; i < count; i++ {
			values = append(values, uint8(v))
		}
	}

	got := OtsuThreshold(grayBitmap(values))
	if got < 110 || got > 140 {
		t.Errorf("threshold = %d, want approximately 125", got)
	}
}

func TestOtsuThresholdDegenerate(t *testing.T) {
	// A uniform image has no maximizing split; the result just has to be
	// a usable byte value, not a panic.
	uniform := grayBitmap(bytes.Repeat([]byte{128}, 64))
	_ = OtsuThreshold(uniform)

	empty := New(0, 0)
	if got := OtsuThreshold(empty); got != 127 {
		t.Errorf("empty bitmap threshold = %d, want fallback 127", got)
	}
}

func TestAdaptiveThresholdBinarizes(t *testing.T) {
	// Left half dark, right half bright.
	b := New(20, 10)
	for y := 0; y < 10; y++ {
		for x := 0; x < 20; x++ {
			v := uint8(30)
			if x >= 10 {
				v = 220
			}
			i := b.at(x, y)
			b.Pix[i], b.Pix[i+1], b.Pix[i+2], b.Pix[i+3] = v, v, v, 255
		}
	}

	AdaptiveThreshold(b, OtsuThreshold(b), 5, 0.7)

	for i := 0; i < len(b.Pix); i += 4 {
		if b.Pix[i] != 0 && b.Pix[i] != 255 {
			t.Fatalf("pixel %d not bilevel after thresholding: %d", i/4, b.Pix[i])
		}
	}
	if b.Pix[b.at(0, 5)] != 0 {
		t.Error("dark region not mapped to black")
	}
	if b.Pix[b.at(19, 5)] != 255 {
		t.Error("bright region not mapped to white")
	}
}

func TestSharpenUniformUnchanged(t *testing.T) {
	b := New(5, 5)
	for i := 0; i < len(b.Pix); i += 4 {
		b.Pix[i], b.Pix[i+1], b.Pix[i+2], b.Pix[i+3] = 100, 100, 100, 255
	}

	Sharpen(b)

	// Kernel weights sum to 1, so a flat region is a fixed point.
	for i := 0; i < len(b.Pix); i += 4 {
		if b.Pix[i] != 100 {
			t.Fatalf("uniform region changed by sharpening: %d", b.Pix[i])
		}
	}
}

func TestSharpenClampsAndSkipsBorder(t *testing.T) {
	b := New(5, 5)
	for i := 0; i < len(b.Pix); i += 4 {
		b.Pix[i], b.Pix[i+1], b.Pix[i+2], b.Pix[i+3] = 0, 0, 0, 255
	}
	// Bright pixel in the center gets amplified and must clamp at 255.
	i := b.at(2, 2)
	b.Pix[i], b.Pix[i+1], b.Pix[i+2] = 200, 200, 200

	Sharpen(b)

	if b.Pix[b.at(2, 2)] != 255 {
		t.Errorf("center = %d, want clamped 255", b.Pix[b.at(2, 2)])
	}
	if b.Pix[b.at(0, 0)] != 0 {
		t.Errorf("border pixel processed, got %d", b.Pix[b.at(0, 0)])
	}
}

func TestMedianFilterRemovesSaltNoise(t *testing.T) {
	b := New(7, 7)
	for i := 3; i < len(b.Pix); i += 4 {
		b.Pix[i] = 255
	}
	// Single white speck on black.
	i := b.at(3, 3)
	b.Pix[i], b.Pix[i+1], b.Pix[i+2] = 255, 255, 255

	MedianFilter(b, 1)

	if b.Pix[b.at(3, 3)] != 0 {
		t.Errorf("speck survived median filter: %d", b.Pix[b.at(3, 3)])
	}
}

func TestMedianFilterZeroRadiusNoOp(t *testing.T) {
	b := grayBitmap([]uint8{1, 2, 3, 4})
	before := append([]uint8(nil), b.Pix...)
	MedianFilter(b, 0)
	if !bytes.Equal(before, b.Pix) {
		t.Error("zero-radius median filter modified pixels")
	}
}

func TestSplitPartitionsExactly(t *testing.T) {
	tests := []struct {
		name     string
		height   int
		sections int
		want     int // expected section count after clamping
	}{
		{"even split", 12, 3, 3},
		{"uneven split", 7, 3, 3},
		{"single section", 10, 1, 1},
		{"more sections than rows", 2, 8, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sections := Split(New(4, tt.height), tt.sections)
			if len(sections) != tt.want {
				t.Fatalf("got %d sections, want %d", len(sections), tt.want)
			}

			total := 0
			for i, s := range sections {
				if s.Index != i {
					t.Errorf("section %d has index %d", i, s.Index)
				}
				if s.Bitmap.Height < 1 {
					t.Errorf("section %d is empty", i)
				}
				if s.Bitmap.Width != 4 {
					t.Errorf("section %d width = %d, want 4", i, s.Bitmap.Width)
				}
				total += s.Bitmap.Height
			}
			if total != tt.height {
				t.Errorf("section heights sum to %d, want %d", total, tt.height)
			}
		})
	}
}

func TestPreprocessBytes(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Sections = 2
	cfg.TargetDim = 100

	sections, err := PreprocessBytes(solidPNG(60, 40, color.White), cfg)
	if err != nil {
		t.Fatalf("PreprocessBytes failed: %v", err)
	}
	if len(sections) != 2 {
		t.Fatalf("got %d sections, want 2", len(sections))
	}

	for _, s := range sections {
		for i := 0; i < len(s.Bitmap.Pix); i += 4 {
			if v := s.Bitmap.Pix[i]; v != 0 && v != 255 {
				t.Fatalf("section %d pixel not bilevel: %d", s.Index, v)
			}
		}
	}

	if _, err := PreprocessBytes([]byte("junk"), cfg); !errors.Is(err, ErrDecode) {
		t.Errorf("expected ErrDecode for junk input, got %v", err)
	}
}

func TestConfigValidate(t *testing.T) {
	if err := DefaultConfig().Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero target dim", func(c *Config) { c.TargetDim = 0 }},
		{"zero local radius", func(c *Config) { c.LocalRadius = 0 }},
		{"negative median radius", func(c *Config) { c.MedianRadius = -1 }},
		{"weight above one", func(c *Config) { c.LocalWeight = 1.5 }},
		{"zero sections", func(c *Config) { c.Sections = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			if cfg.Validate() == nil {
				t.Error("expected validation error")
			}
		})
	}
}
