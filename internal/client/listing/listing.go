// Package listing fetches one page of a listing at a time and tracks the
// loading, empty, error and populated phases of the result.
package listing

import (
	"context"
	"sync"

	"github.com/dmitrijs2005/trustcart/internal/client/models"
)

type Phase string

const (
	Loading   Phase = "loading"
	Empty     Phase = "empty"
	Failed    Phase = "error"
	Populated Phase = "populated"
)

// State is what a listing renders.
type State[T any] struct {
	Phase   Phase
	Items   []T
	Pages   int
	Results int
	Err     error
}

// Fetcher loads one page.
type Fetcher[T any] func(ctx context.Context) (models.Page[T], error)

// View is one listing. Every load takes a new generation; a result that
// arrives for an older generation is dropped, so a slow earlier response
// never overwrites a later one.
type View[T any] struct {
	mu    sync.Mutex
	gen   uint64
	state State[T]
}

func NewView[T any]() *View[T] {
	return &View[T]{state: State[T]{Phase: Loading}}
}

// Begin starts a load and returns its generation.
func (v *View[T]) Begin() uint64 {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.gen++
	v.state = State[T]{Phase: Loading}
	return v.gen
}

// Finish records the result of generation gen. It reports false when a
// newer load has started since, in which case the result is discarded.
func (v *View[T]) Finish(gen uint64, page models.Page[T], err error) bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	if gen != v.gen {
		return false
	}
	switch {
	case err != nil:
		v.state = State[T]{Phase: Failed, Err: err}
	case len(page.Items) == 0:
		v.state = State[T]{Phase: Empty, Pages: page.NumberOfPages, Results: page.Results}
	default:
		v.state = State[T]{Phase: Populated, Items: page.Items, Pages: page.NumberOfPages, Results: page.Results}
	}
	return true
}

// Load runs fetch as a new generation and returns the state it produced,
// or the current state if the result was superseded.
func (v *View[T]) Load(ctx context.Context, fetch Fetcher[T]) State[T] {
	gen := v.Begin()
	page, err := fetch(ctx)
	v.Finish(gen, page, err)
	return v.State()
}

func (v *View[T]) State() State[T] {
	v.mu.Lock()
	defer v.mu.Unlock()
	s := v.state
	s.Items = append([]T(nil), v.state.Items...)
	return s
}
