package ocrpool

import "fmt"

// PageSegMode represents Tesseract page segmentation modes. These control
// how the engine analyzes page layout before recognition.
type PageSegMode int

// Page segmentation modes.
const (
	PSMOSDOnly             PageSegMode = 0  // Orientation and script detection only
	PSMAutoOSD             PageSegMode = 1  // Automatic with OSD
	PSMAutoOnly            PageSegMode = 2  // Automatic, no OSD or OCR
	PSMAuto                PageSegMode = 3  // Fully automatic
	PSMSingleColumn        PageSegMode = 4  // Single column of variable sizes
	PSMSingleBlockVertText PageSegMode = 5  // Single uniform block of vertical text
	PSMSingleBlock         PageSegMode = 6  // Single uniform block of text
	PSMSingleLine          PageSegMode = 7  // Single text line
	PSMSingleWord          PageSegMode = 8  // Single word
	PSMCircleWord          PageSegMode = 9  // Single word in a circle
	PSMSingleChar          PageSegMode = 10 // Single character
	PSMSparseText          PageSegMode = 11 // Find as much text as possible
	PSMSparseTextOSD       PageSegMode = 12 // Sparse text with OSD
	PSMRawLine             PageSegMode = 13 // Treat image as single text line
)

// Config enumerates every recognized engine and pool tuning option.
type Config struct {
	// Size is the number of independently initialized engine instances.
	Size int

	// Language is the Tesseract language pack, "+"-separated for multiple
	// languages (e.g. "eng+fra").
	Language string

	// PageSegMode is the layout assumption given to the engine. Product
	// listings are treated as a single uniform block by default.
	PageSegMode PageSegMode

	// Whitelist restricts recognition to the given characters. Empty
	// means no restriction.
	Whitelist string

	// DisableDictionary turns off the engine's dictionary bias. Inventory
	// SKUs and codes are not natural-language words, so dictionary
	// correction hurts more than it helps.
	DisableDictionary bool

	// NewEngine overrides engine construction. When nil the pool builds
	// the platform engine, which requires the "ocr" build tag.
	NewEngine func(Config) (Engine, error)

	// OnProgress, when set, receives aggregate progress events during
	// recognition.
	OnProgress func(ProgressEvent)
}

// DefaultConfig returns the pool defaults: four engines tuned for
// inventory listings.
func DefaultConfig() Config {
	return Config{
		Size:              4,
		Language:          "eng",
		PageSegMode:       PSMSingleBlock,
		Whitelist:         "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789-.,/#&()' ",
		DisableDictionary: true,
	}
}

// Validate checks the configuration.
func (c Config) Validate() error {
	if c.Size < 1 {
		return fmt.Errorf("pool size must be positive, got %d", c.Size)
	}
	if c.Language == "" {
		return fmt.Errorf("language must not be empty")
	}
	if c.PageSegMode < PSMOSDOnly || c.PageSegMode > PSMRawLine {
		return fmt.Errorf("invalid page segmentation mode %d", c.PageSegMode)
	}
	return nil
}
