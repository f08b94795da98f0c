// Package workerpool implements the single, process-wide goroutine pool
// described in spec.md §5: instantiated lazily on first use from a
// configured thread count, with all parallel work structured as
// submit-a-batch-then-join. There are no long-lived worker tasks and no
// cooperative suspension.
//
// The shape is a direct generalization of the teacher's one-off
// channel-and-WaitGroup fan-outs (internal/inmapref/run.go's
// Calculations, internal/inmapref/vargrid.go's addCells and
// SetEmissionsFlux) into a single reusable pool that every caller submits
// jobs to instead of spinning up its own goroutines each time.
package workerpool

import (
	"runtime"
	"sync"
)

// Pool is a fixed-size set of worker goroutines draining a shared job
// channel. The zero value is not usable; construct with New.
type Pool struct {
	jobs chan func()
	wg   sync.WaitGroup
	once sync.Once
	n    int
}

var (
	defaultPool *Pool
	defaultOnce sync.Once
)

// Default returns the process-wide pool, initializing it on first call
// with runtime.GOMAXPROCS(0) workers; later calls return the same pool.
// The threads setting is not consulted here; Reset replaces the pool
// with one of a given size.
func Default() *Pool {
	defaultOnce.Do(func() {
		defaultPool = New(runtime.GOMAXPROCS(0))
	})
	return defaultPool
}

// Reset replaces the process-wide pool with one sized to n workers, for
// callers that apply a configured thread count (settings.Settings does
// not call it) and for tests that need a deterministic worker count; it
// must not be called while
// jobs are in flight on the old pool.
func Reset(n int) *Pool {
	defaultPool = New(n)
	return defaultPool
}

// New constructs a Pool with n worker goroutines. n is clamped to at
// least 1.
func New(n int) *Pool {
	if n < 1 {
		n = 1
	}
	p := &Pool{jobs: make(chan func()), n: n}
	for i := 0; i < n; i++ {
		go p.worker()
	}
	return p
}

func (p *Pool) worker() {
	for job := range p.jobs {
		job()
	}
}

// N reports the number of worker goroutines in the pool.
func (p *Pool) N() int { return p.n }

// Batch accumulates jobs to submit together and then joins on all of
// them, mirroring the teacher's "build a channel, fan jobs into it,
// drain results, close" idiom but packaged so callers don't re-derive it
// at every call site.
//
// A panic inside a submitted job is recovered and recorded rather than
// crashing the process, per spec.md §4.2/§7: "Any panic in a worker is
// converted into an aggregated fault after all workers have joined."
// Join reports the first recovered panic, if any.
type Batch struct {
	pool *Pool
	wg   sync.WaitGroup

	mu      sync.Mutex
	panics  []any
}

// NewBatch returns a Batch bound to pool.
func (p *Pool) NewBatch() *Batch {
	return &Batch{pool: p}
}

// Submit enqueues fn to run on the pool. Submit may be called concurrently
// with other Submit calls on the same Batch.
func (b *Batch) Submit(fn func()) {
	b.wg.Add(1)
	b.pool.jobs <- func() {
		defer b.wg.Done()
		defer func() {
			if r := recover(); r != nil {
				b.mu.Lock()
				b.panics = append(b.panics, r)
				b.mu.Unlock()
			}
		}()
		fn()
	}
}

// Join blocks until every job submitted to this Batch has completed and
// returns the first panic recovered from any of them, or nil if none
// panicked.
func (b *Batch) Join() any {
	b.wg.Wait()
	b.mu.Lock()
	defer b.mu.Unlock()
	if len(b.panics) == 0 {
		return nil
	}
	return b.panics[0]
}
