package ocrpool

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/tsawler/stocklens/bitmap"
)

// State is the pool lifecycle state.
type State int

// Pool lifecycle states.
const (
	StateUninitialized State = iota
	StateInitializing
	StateReady
	StateDraining
	StateTerminated
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateInitializing:
		return "initializing"
	case StateReady:
		return "ready"
	case StateDraining:
		return "draining"
	case StateTerminated:
		return "terminated"
	default:
		return "unknown"
	}
}

var (
	// ErrNotInitialized is returned when recognition is attempted on a
	// pool that is not in the ready state.
	ErrNotInitialized = errors.New("worker pool not initialized")

	// ErrAlreadyInitialized is returned when Init is called on a ready
	// pool. A ready pool must be terminated before it can be
	// reinitialized.
	ErrAlreadyInitialized = errors.New("worker pool already initialized")
)

// RecognitionError reports the failure of a single section's OCR call.
// Under the pool's all-or-nothing join it aborts the whole batch.
type RecognitionError struct {
	Section int
	Err     error
}

// Error implements the error interface.
func (e *RecognitionError) Error() string {
	return fmt.Sprintf("recognition failed for section %d: %v", e.Section, e.Err)
}

// Unwrap returns the underlying cause.
func (e *RecognitionError) Unwrap() error {
	return e.Err
}

// ProgressEvent is emitted through Config.OnProgress as sections complete.
// All numeric fields are bounded: Fraction and Overall are in [0,1].
type ProgressEvent struct {
	// Worker is the index of the engine that produced the event.
	Worker int
	// Section is the index of the section being recognized.
	Section int
	// Fraction is the worker-level progress for this section.
	Fraction float64
	// Overall is the aggregate pool progress. It never decreases within
	// one batch.
	Overall float64
}

// Result is the recognized text for one section.
type Result struct {
	// Index is the section index, for reassembly in order.
	Index int
	// Text is the recognized text, whitespace-trimmed.
	Text string
	// Confidence is the engine's confidence signal in [0,1].
	Confidence float64
}

// Pool is a fixed-size set of independently initialized OCR engines.
// The zero value is not usable; construct with New.
type Pool struct {
	cfg Config

	mu       sync.Mutex
	state    State
	engines  []Engine
	workerMu []sync.Mutex
	inflight sync.WaitGroup

	// progressSum accumulates completed section fractions, divided by
	// pool size, clamped to 1. It only grows within a batch.
	progressSum float64
}

// New creates a pool from the given configuration. The pool is
// uninitialized; call Init before recognizing.
func New(cfg Config) (*Pool, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid pool config: %w", err)
	}
	return &Pool{cfg: cfg}, nil
}

// State returns the current lifecycle state.
func (p *Pool) State() State {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

// Size returns the configured number of engine instances.
func (p *Pool) Size() int {
	return p.cfg.Size
}

// Init constructs the pool's engine instances. Initializing a ready pool
// is rejected with ErrAlreadyInitialized; a terminated pool may be
// initialized again. If any engine fails to construct, the ones already
// built are closed and the pool stays uninitialized.
func (p *Pool) Init() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	switch p.state {
	case StateReady:
		return ErrAlreadyInitialized
	case StateInitializing, StateDraining:
		return fmt.Errorf("worker pool busy (%s)", p.state)
	}

	p.state = StateInitializing

	factory := p.cfg.NewEngine
	if factory == nil {
		factory = newPlatformEngine
	}

	engines := make([]Engine, 0, p.cfg.Size)
	for i := 0; i < p.cfg.Size; i++ {
		engine, err := factory(p.cfg)
		if err != nil {
			for _, e := range engines {
				e.Close()
			}
			p.state = StateUninitialized
			return fmt.Errorf("failed to initialize engine %d: %w", i, err)
		}
		engines = append(engines, engine)
	}

	p.engines = engines
	p.workerMu = make([]sync.Mutex, len(engines))
	p.progressSum = 0
	p.state = StateReady
	return nil
}

// Recognize runs OCR on one section, dispatched to the worker selected by
// the section index modulo pool size. It fails with ErrNotInitialized if
// the pool is not ready. There is no mid-recognition cancellation: ctx is
// checked only before dispatch.
func (p *Pool) Recognize(ctx context.Context, sec bitmap.Section) (Result, error) {
	p.mu.Lock()
	if p.state != StateReady {
		p.mu.Unlock()
		return Result{}, ErrNotInitialized
	}
	worker := sec.Index % len(p.engines)
	engine := p.engines[worker]
	wmu := &p.workerMu[worker]
	p.inflight.Add(1)
	p.mu.Unlock()
	defer p.inflight.Done()

	if err := ctx.Err(); err != nil {
		return Result{}, err
	}

	png, err := sec.Bitmap.PNG()
	if err != nil {
		return Result{}, &RecognitionError{Section: sec.Index, Err: err}
	}

	wmu.Lock()
	text, confidence, err := engine.Recognize(png)
	wmu.Unlock()
	if err != nil {
		return Result{}, &RecognitionError{Section: sec.Index, Err: err}
	}

	p.report(worker, sec.Index, 1)

	return Result{Index: sec.Index, Text: text, Confidence: confidence}, nil
}

// RecognizeAll dispatches every section concurrently and joins
// all-or-nothing: if any section fails, the batch fails with that
// section's error and no partial results are returned. Results come back
// in section index order. Progress accumulation restarts with each batch.
func (p *Pool) RecognizeAll(ctx context.Context, sections []bitmap.Section) ([]Result, error) {
	p.mu.Lock()
	if p.state != StateReady {
		p.mu.Unlock()
		return nil, ErrNotInitialized
	}
	p.progressSum = 0
	p.mu.Unlock()

	results := make([]Result, len(sections))
	errs := make([]error, len(sections))

	var wg sync.WaitGroup
	for i, sec := range sections {
		i, sec := i, sec
		wg.Add(1)
		go func() {
			defer wg.Done()
			results[i], errs[i] = p.Recognize(ctx, sec)
		}()
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return results, nil
}

// Terminate releases all engine resources. It is idempotent, waits for
// in-flight recognitions to drain, and must run on every exit path.
func (p *Pool) Terminate() error {
	p.mu.Lock()
	switch p.state {
	case StateUninitialized, StateTerminated:
		p.mu.Unlock()
		return nil
	}
	p.state = StateDraining
	engines := p.engines
	p.engines = nil
	p.workerMu = nil
	p.mu.Unlock()

	p.inflight.Wait()

	var firstErr error
	for _, e := range engines {
		if err := e.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}

	p.mu.Lock()
	p.state = StateTerminated
	p.mu.Unlock()
	return firstErr
}

// report folds a completed worker fraction into the aggregate and
// delivers it. The aggregate divides by pool size, so batches with fewer
// sections than workers top out below 1; it is an approximation for UI
// feedback, guaranteed only to never decrease within a batch.
func (p *Pool) report(worker, section int, fraction float64) {
	cb := p.cfg.OnProgress
	if cb == nil {
		return
	}

	p.mu.Lock()
	p.progressSum += fraction / float64(p.cfg.Size)
	if p.progressSum > 1 {
		p.progressSum = 1
	}
	overall := p.progressSum
	p.mu.Unlock()

	cb(ProgressEvent{Worker: worker, Section: section, Fraction: fraction, Overall: overall})
}
