package stocklens

import (
	"context"
	"fmt"
	"strings"

	"github.com/tsawler/stocklens/bitmap"
	"github.com/tsawler/stocklens/extract"
	"github.com/tsawler/stocklens/model"
	"github.com/tsawler/stocklens/ocrpool"
)

// Extractor provides a fluent interface for extracting inventory records
// from a listing image. Each configuration method returns a new Extractor
// instance, making it safe for concurrent use and allowing method
// chaining.
type Extractor struct {
	// Source
	filename string
	img      RawImage
	haveData bool

	// Shared pool supplied by the hosting component; when nil the
	// extractor owns a pool for the duration of one run.
	pool *ocrpool.Pool

	// Configuration
	options ExtractOptions

	// Accumulated error (fail-fast)
	err error
}

// clone creates a shallow copy of the Extractor with a deep copy of
// options. This ensures immutability: each chain method returns a new
// instance.
func (e *Extractor) clone() *Extractor {
	return &Extractor{
		filename: e.filename,
		img:      e.img,
		haveData: e.haveData,
		pool:     e.pool,
		options:  e.options.clone(),
		err:      e.err,
	}
}

// Sections sets how many horizontal bands the preprocessed bitmap is
// split into for parallel recognition.
func (e *Extractor) Sections(n int) *Extractor {
	newExt := e.clone()
	newExt.options.bitmap.Sections = n
	return newExt
}

// TargetDim sets the resolution the longer image dimension is scaled
// toward during preprocessing.
func (e *Extractor) TargetDim(n int) *Extractor {
	newExt := e.clone()
	newExt.options.bitmap.TargetDim = n
	return newExt
}

// PoolSize sets the number of OCR engine instances for an
// extractor-owned pool.
func (e *Extractor) PoolSize(n int) *Extractor {
	newExt := e.clone()
	newExt.options.pool.Size = n
	return newExt
}

// Language sets the OCR language pack, "+"-separated for multiple
// languages (e.g. "eng+fra").
func (e *Extractor) Language(lang string) *Extractor {
	newExt := e.clone()
	newExt.options.pool.Language = lang
	return newExt
}

// Progress installs a callback for aggregate recognition progress.
func (e *Extractor) Progress(fn func(ocrpool.ProgressEvent)) *Extractor {
	newExt := e.clone()
	newExt.options.pool.OnProgress = fn
	return newExt
}

// EngineFactory overrides OCR engine construction for extractor-owned
// pools. It is primarily useful for testing and for embedding
// alternative recognition backends.
func (e *Extractor) EngineFactory(fn func(ocrpool.Config) (ocrpool.Engine, error)) *Extractor {
	newExt := e.clone()
	newExt.options.pool.NewEngine = fn
	return newExt
}

// Strategies replaces the default parsing strategies with the given set,
// evaluated in the given order.
func (e *Extractor) Strategies(strats ...extract.Strategy) *Extractor {
	newExt := e.clone()
	newExt.options.strategies = strats
	return newExt
}

// WithPool attaches a caller-managed worker pool. The caller is
// responsible for initializing it before the terminal operation and for
// terminating it afterward; the extractor will not touch its lifecycle.
func (e *Extractor) WithPool(pool *ocrpool.Pool) *Extractor {
	newExt := e.clone()
	newExt.pool = pool
	return newExt
}

// Records runs the full pipeline and returns the final validated record
// set. If the heuristics find nothing usable the run fails with
// extract.ErrNoRecords.
func (e *Extractor) Records(ctx context.Context) ([]model.Record, error) {
	text, err := e.recognize(ctx)
	if err != nil {
		return nil, err
	}
	return extract.Run(text, e.options.strategies)
}

// Candidates runs the pipeline up to, but not including, deduplication
// and validation. It exposes each strategy's raw output for debugging.
func (e *Extractor) Candidates(ctx context.Context) ([]model.CandidateRecord, error) {
	text, err := e.recognize(ctx)
	if err != nil {
		return nil, err
	}

	strats := e.options.strategies
	if strats == nil {
		strats = extract.DefaultStrategies()
	}
	return extract.ExtractAll(extract.Normalize(text), strats), nil
}

// Text runs preprocessing and recognition only, returning the normalized
// recognized text.
func (e *Extractor) Text(ctx context.Context) (string, error) {
	text, err := e.recognize(ctx)
	if err != nil {
		return "", err
	}
	return extract.Normalize(text), nil
}

// recognize performs preprocessing and section recognition, joining the
// per-section text in index order.
func (e *Extractor) recognize(ctx context.Context) (string, error) {
	if e.err != nil {
		return "", e.err
	}
	if err := e.options.bitmap.Validate(); err != nil {
		return "", fmt.Errorf("invalid preprocessing config: %w", err)
	}

	img, err := e.load()
	if err != nil {
		return "", err
	}

	sections, err := bitmap.PreprocessBytes(img.Data, e.options.bitmap)
	if err != nil {
		return "", fmt.Errorf("preprocessing: %w", err)
	}

	pool := e.pool
	if pool == nil {
		// Extractor-owned pool: acquire before the first recognition,
		// release unconditionally afterward.
		pool, err = ocrpool.New(e.options.pool)
		if err != nil {
			return "", err
		}
		if err := pool.Init(); err != nil {
			return "", fmt.Errorf("initializing worker pool: %w", err)
		}
		defer pool.Terminate()
	}

	results, err := pool.RecognizeAll(ctx, sections)
	if err != nil {
		return "", fmt.Errorf("recognition: %w", err)
	}

	texts := make([]string, 0, len(results))
	for _, r := range results {
		if r.Text != "" {
			texts = append(texts, r.Text)
		}
	}
	return strings.Join(texts, "\n"), nil
}
