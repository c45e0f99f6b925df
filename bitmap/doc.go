// Package bitmap prepares photographed or scanned product listings for
// optical character recognition.
//
// The entry point is [Preprocess], which runs a fixed sequence of
// transforms over a decoded image:
//
//  1. Scaling toward a target resolution (capped at 3x upscale)
//  2. Luma-weighted grayscale conversion
//  3. Global threshold selection via Otsu's method
//  4. Local adaptive thresholding blended with the global threshold
//  5. 3x3 convolution sharpening
//  6. Median-filter noise reduction
//
// The result is one or more non-overlapping [Section] bands that together
// partition the processed bitmap exactly, ready for parallel recognition.
//
// Every step after decoding is a total function: only [Decode] can fail,
// with an error wrapping [ErrDecode].
package bitmap
