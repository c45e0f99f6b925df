package stocklens

import (
	"github.com/tsawler/stocklens/bitmap"
	"github.com/tsawler/stocklens/extract"
	"github.com/tsawler/stocklens/ocrpool"
)

// ExtractOptions holds configuration for one extraction run.
type ExtractOptions struct {
	// Preprocessing parameters.
	bitmap bitmap.Config

	// Worker pool parameters, used when the extractor owns its pool.
	pool ocrpool.Config

	// Parsing strategies in evaluation order; nil means the default set.
	strategies []extract.Strategy
}

// defaultOptions returns the default extraction options.
func defaultOptions() ExtractOptions {
	return ExtractOptions{
		bitmap: bitmap.DefaultConfig(),
		pool:   ocrpool.DefaultConfig(),
	}
}

// clone creates a deep copy of ExtractOptions.
func (o ExtractOptions) clone() ExtractOptions {
	newOpts := ExtractOptions{
		bitmap: o.bitmap,
		pool:   o.pool,
	}

	if o.strategies != nil {
		newOpts.strategies = make([]extract.Strategy, len(o.strategies))
		copy(newOpts.strategies, o.strategies)
	}

	return newOpts
}
