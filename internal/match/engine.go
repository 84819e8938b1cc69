package match

import (
	"errors"
	"sync"

	"github.com/panjf2000/ants/v2"
)

// DefaultParallelThreshold is the corpus size at which a pooled engine
// starts scoring candidates concurrently
const DefaultParallelThreshold = 64

// Engine scores a query against a candidate corpus and ranks the results.
// It holds no per-call state and may be shared between goroutines.
type Engine struct {
	factors           []Factor
	pool              *ants.Pool
	parallelThreshold int
}

// Option configures an Engine
type Option func(*Engine) error

// WithFactors replaces the default factor set
func WithFactors(factors ...Factor) Option {
	return func(e *Engine) error {
		if len(factors) == 0 {
			return errors.New("at least one factor is required")
		}
		e.factors = factors
		return nil
	}
}

// WithPool scores large corpora on a worker pool of the given size
func WithPool(size int) Option {
	return func(e *Engine) error {
		if size < 1 {
			size = 1
		}
		if e.pool != nil {
			e.pool.Release()
		}

		pool, err := ants.NewPool(size)
		if err != nil {
			return err
		}
		e.pool = pool
		return nil
	}
}

// WithParallelThreshold sets the minimum corpus size scored on the pool
func WithParallelThreshold(n int) Option {
	return func(e *Engine) error {
		if n < 1 {
			return errors.New("parallel threshold must be at least 1")
		}
		e.parallelThreshold = n
		return nil
	}
}

// NewEngine creates an Engine. Without WithPool all scoring is serial.
func NewEngine(opts ...Option) (*Engine, error) {
	e := &Engine{
		factors:           DefaultFactors(),
		parallelThreshold: DefaultParallelThreshold,
	}

	for _, opt := range opts {
		if err := opt(e); err != nil {
			e.Release()
			return nil, err
		}
	}

	return e, nil
}

// Release frees the worker pool, if any
func (e *Engine) Release() {
	if e.pool != nil {
		e.pool.Release()
		e.pool = nil
	}
}

// Factors returns the factors the engine evaluates, in order
func (e *Engine) Factors() []Factor {
	return append([]Factor(nil), e.factors...)
}

// Score evaluates every factor for one candidate
func (e *Engine) Score(query, candidate Item) MatchResult {
	results := make([]FactorResult, len(e.factors))
	for i, f := range e.factors {
		results[i] = f.Score(query, candidate)
	}

	return MatchResult{
		Item:    candidate,
		Score:   Aggregate(results),
		Factors: results,
	}
}

// FindMatches scores every candidate against query and returns the ranked,
// thresholded result list. It never fails; an empty corpus yields an empty list.
func (e *Engine) FindMatches(query Item, candidates []Item, opts Options) []MatchResult {
	return Rank(e.scoreAll(query, candidates), opts)
}

func (e *Engine) scoreAll(query Item, candidates []Item) []MatchResult {
	results := make([]MatchResult, len(candidates))

	if e.pool == nil || len(candidates) < e.parallelThreshold {
		for i, c := range candidates {
			results[i] = e.Score(query, c)
		}
		return results
	}

	// Each task owns one slot, so the gathered order equals the input order
	var wg sync.WaitGroup
	for i, c := range candidates {
		i, c := i, c
		wg.Add(1)
		err := e.pool.Submit(func() {
			defer wg.Done()
			results[i] = e.Score(query, c)
		})
		if err != nil {
			wg.Done()
			results[i] = e.Score(query, c)
		}
	}
	wg.Wait()

	return results
}

var defaultEngine = &Engine{
	factors:           DefaultFactors(),
	parallelThreshold: DefaultParallelThreshold,
}

// FindMatches ranks candidates against query with the default serial engine
func FindMatches(query Item, candidates []Item, opts Options) []MatchResult {
	return defaultEngine.FindMatches(query, candidates, opts)
}
