package bitmap

import (
	"image"
	"sort"

	"golang.org/x/image/draw"
)

// maxUpscale caps the scale factor so low-resolution captures are enlarged
// for OCR without runaway memory use.
const maxUpscale = 3.0

// Preprocess runs the full enhancement sequence over a decoded bitmap and
// returns its section partition. Every step is a total function; cfg is
// assumed to have passed Validate.
func Preprocess(b *Bitmap, cfg Config) []Section {
	out := Scale(b, cfg.TargetDim)
	Grayscale(out)
	global := OtsuThreshold(out)
	AdaptiveThreshold(out, global, cfg.LocalRadius, cfg.LocalWeight)
	Sharpen(out)
	MedianFilter(out, cfg.MedianRadius)
	return Split(out, cfg.Sections)
}

// PreprocessBytes decodes raw image bytes and preprocesses the result.
// It fails only when decoding fails, with an error wrapping ErrDecode.
func PreprocessBytes(data []byte, cfg Config) ([]Section, error) {
	b, err := Decode(data)
	if err != nil {
		return nil, err
	}
	return Preprocess(b, cfg), nil
}

// Scale resamples the bitmap so its longer dimension approaches targetDim.
// The scale factor is min(3, max(targetDim/width, targetDim/height)); a
// factor of 1 returns the input unchanged.
func Scale(b *Bitmap, targetDim int) *Bitmap {
	if b.Width == 0 || b.Height == 0 {
		return b
	}

	factor := float64(targetDim) / float64(b.Width)
	if f := float64(targetDim) / float64(b.Height); f > factor {
		factor = f
	}
	if factor > maxUpscale {
		factor = maxUpscale
	}

	dw := int(float64(b.Width)*factor + 0.5)
	dh := int(float64(b.Height)*factor + 0.5)
	if dw == b.Width && dh == b.Height {
		return b
	}
	if dw < 1 {
		dw = 1
	}
	if dh < 1 {
		dh = 1
	}

	dst := image.NewRGBA(image.Rect(0, 0, dw, dh))
	draw.CatmullRom.Scale(dst, dst.Bounds(), b.Image(), b.Image().Bounds(), draw.Src, nil)

	return &Bitmap{Width: dw, Height: dh, Pix: dst.Pix}
}

// Grayscale converts the bitmap in place using the luma weights
// 0.299R + 0.587G + 0.114B, which match human contrast perception for
// text.
func Grayscale(b *Bitmap) {
	for i := 0; i < len(b.Pix); i += 4 {
		r := float64(b.Pix[i])
		g := float64(b.Pix[i+1])
		bl := float64(b.Pix[i+2])
		gray := uint8(0.299*r + 0.587*g + 0.114*bl)
		b.Pix[i] = gray
		b.Pix[i+1] = gray
		b.Pix[i+2] = gray
	}
}

// OtsuThreshold selects the global binarization threshold that maximizes
// between-class variance over the bitmap's gray-value histogram. The
// bitmap must already be grayscale; the red channel is read as the gray
// value.
func OtsuThreshold(b *Bitmap) uint8 {
	var hist [256]int
	total := b.Width * b.Height
	if total == 0 {
		return 127
	}

	for i := 0; i < len(b.Pix); i += 4 {
		hist[b.Pix[i]]++
	}

	var sum float64
	for v, count := range hist {
		sum += float64(v) * float64(count)
	}

	var (
		sumB    float64
		wB      int
		best    = 127
		bestVar float64
	)
	for t := 0; t < 256; t++ {
		wB += hist[t]
		if wB == 0 {
			continue
		}
		wF := total - wB
		if wF == 0 {
			break
		}
		sumB += float64(t) * float64(hist[t])

		mB := sumB / float64(wB)
		mF := (sum - sumB) / float64(wF)
		variance := float64(wB) * float64(wF) * (mB - mF) * (mB - mF)
		if variance > bestVar {
			bestVar = variance
			best = t
		}
	}

	return uint8(best)
}

// AdaptiveThreshold binarizes the grayscale bitmap in place. Each pixel is
// compared against a blend of the mean gray value in a surrounding window
// and the global threshold, compensating for uneven lighting across the
// capture.
func AdaptiveThreshold(b *Bitmap, global uint8, radius int, localWeight float64) {
	w, h := b.Width, b.Height
	if w == 0 || h == 0 {
		return
	}

	// Summed-area table over the gray channel, one row/column of padding.
	integral := make([]uint64, (w+1)*(h+1))
	for y := 0; y < h; y++ {
		var rowSum uint64
		for x := 0; x < w; x++ {
			rowSum += uint64(b.Pix[b.at(x, y)])
			integral[(y+1)*(w+1)+x+1] = integral[y*(w+1)+x+1] + rowSum
		}
	}

	globalWeight := 1 - localWeight
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			x0, y0 := x-radius, y-radius
			x1, y1 := x+radius+1, y+radius+1
			if x0 < 0 {
				x0 = 0
			}
			if y0 < 0 {
				y0 = 0
			}
			if x1 > w {
				x1 = w
			}
			if y1 > h {
				y1 = h
			}

			area := uint64((x1 - x0) * (y1 - y0))
			sum := integral[y1*(w+1)+x1] - integral[y0*(w+1)+x1] -
				integral[y1*(w+1)+x0] + integral[y0*(w+1)+x0]
			localMean := float64(sum) / float64(area)

			threshold := localWeight*localMean + globalWeight*float64(global)

			var value uint8
			if float64(b.Pix[b.at(x, y)]) > threshold {
				value = 255
			}
			i := b.at(x, y)
			b.Pix[i] = value
			b.Pix[i+1] = value
			b.Pix[i+2] = value
			b.Pix[i+3] = 255
		}
	}
}

// sharpenKernel is the 3x3 convolution kernel applied by Sharpen.
var sharpenKernel = [9]int{
	-1, -1, -1,
	-1, 9, -1,
	-1, -1, -1,
}

// Sharpen applies a 3x3 sharpening convolution per color channel, clamped
// to [0,255]. The one-pixel border is left unprocessed to avoid
// out-of-bounds reads.
func Sharpen(b *Bitmap) {
	if b.Width < 3 || b.Height < 3 {
		return
	}

	src := b.Clone()
	for y := 1; y < b.Height-1; y++ {
		for x := 1; x < b.Width-1; x++ {
			for ch := 0; ch < 3; ch++ {
				var acc int
				k := 0
				for ky := -1; ky <= 1; ky++ {
					for kx := -1; kx <= 1; kx++ {
						acc += sharpenKernel[k] * int(src.Pix[src.at(x+kx, y+ky)+ch])
						k++
					}
				}
				b.Pix[b.at(x, y)+ch] = clamp8(acc)
			}
		}
	}
}

// MedianFilter replaces each sample with the median of its
// (2*radius+1)^2 neighborhood, channel by channel. Median filtering
// removes the salt-and-pepper artifacts thresholding introduces without
// blurring edges the way a mean filter would. The window is clipped at
// image borders. A radius of zero is a no-op.
func MedianFilter(b *Bitmap, radius int) {
	if radius <= 0 || b.Width == 0 || b.Height == 0 {
		return
	}

	src := b.Clone()
	window := make([]int, 0, (2*radius+1)*(2*radius+1))
	for y := 0; y < b.Height; y++ {
		for x := 0; x < b.Width; x++ {
			for ch := 0; ch < 3; ch++ {
				window = window[:0]
				for ky := -radius; ky <= radius; ky++ {
					for kx := -radius; kx <= radius; kx++ {
						sx, sy := x+kx, y+ky
						if sx < 0 || sy < 0 || sx >= b.Width || sy >= b.Height {
							continue
						}
						window = append(window, int(src.Pix[src.at(sx, sy)+ch]))
					}
				}
				sort.Ints(window)
				b.Pix[b.at(x, y)+ch] = uint8(window[len(window)/2])
			}
		}
	}
}

// Split partitions the bitmap into n non-overlapping horizontal bands that
// cover it exactly. n is clamped to [1, height] so every section holds at
// least one row.
func Split(b *Bitmap, n int) []Section {
	if n < 1 {
		n = 1
	}
	if b.Height > 0 && n > b.Height {
		n = b.Height
	}

	sections := make([]Section, 0, n)
	rowBytes := b.Width * 4
	for i := 0; i < n; i++ {
		y0 := i * b.Height / n
		y1 := (i + 1) * b.Height / n

		band := New(b.Width, y1-y0)
		copy(band.Pix, b.Pix[y0*rowBytes:y1*rowBytes])
		sections = append(sections, Section{Index: i, Bitmap: band})
	}
	return sections
}

func clamp8(v int) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}
