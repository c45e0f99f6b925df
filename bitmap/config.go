package bitmap

import "fmt"

// Config holds preprocessing parameters.
type Config struct {
	// TargetDim is the resolution the longer image dimension is scaled
	// toward. Upscaling is capped at 3x to bound memory use.
	TargetDim int

	// LocalRadius is the window radius, in pixels, used to compute the
	// local mean for adaptive thresholding.
	LocalRadius int

	// LocalWeight is the blend weight given to the local mean when it is
	// combined with the global Otsu threshold. The global threshold
	// receives 1 - LocalWeight.
	LocalWeight float64

	// MedianRadius is the half-width of the median filter window; the
	// window covers (2*MedianRadius+1)^2 samples.
	MedianRadius int

	// Sections is the number of horizontal bands the processed bitmap is
	// split into for parallel recognition. It is clamped to the image
	// height.
	Sections int
}

// DefaultConfig returns the preprocessing defaults.
func DefaultConfig() Config {
	return Config{
		TargetDim:    1600,
		LocalRadius:  20,
		LocalWeight:  0.7,
		MedianRadius: 2,
		Sections:     1,
	}
}

// Validate checks the configuration for values the transforms cannot work
// with.
func (c Config) Validate() error {
	if c.TargetDim < 1 {
		return fmt.Errorf("target dimension must be positive, got %d", c.TargetDim)
	}
	if c.LocalRadius < 1 {
		return fmt.Errorf("local threshold radius must be positive, got %d", c.LocalRadius)
	}
	if c.LocalWeight < 0 || c.LocalWeight > 1 {
		return fmt.Errorf("local threshold weight must be in [0,1], got %g", c.LocalWeight)
	}
	if c.MedianRadius < 0 {
		return fmt.Errorf("median filter radius must be non-negative, got %d", c.MedianRadius)
	}
	if c.Sections < 1 {
		return fmt.Errorf("section count must be positive, got %d", c.Sections)
	}
	return nil
}
