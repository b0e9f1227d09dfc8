// Package taskpool implements the fixed-size work-distributing pool that
// every parallel entry point in this module takes as a value parameter
// (spec.md section 4.N): MSM, multi-pairing, batch verification, and KZG
// proof construction all accept a *Pool rather than owning one.
//
// Grounded on golang.org/x/sync/errgroup's fan-out/join pattern (see the
// fflonk prover's commitToLRO in the example corpus, which spawns a fixed
// handful of goroutines via errgroup.Group and joins with Wait) combined
// with the teacher's explicit-lifetime subsystem pattern (pkg/node/node.go
// starts goroutines in Start and stops them in Shutdown via a close(stop)
// channel): workers here are long-lived goroutines pulling from a shared
// job channel, started by New and stopped by Shutdown, and a SyncScope
// uses a plain WaitGroup to join every task spawned inside it before
// returning — the errgroup-style barrier semantics spec.md calls for,
// built directly on the pool's own workers instead of ad hoc goroutines.
package taskpool

import (
	"errors"
	"runtime"
	"sync"

	"github.com/eth2030/curvecore/log"
)

var poolLog = log.Default().Module("taskpool")

// ErrShutdown is returned by Spawn/SyncScope when the pool has already
// been shut down. Re-creating a pool with New after Shutdown is legal;
// there is no way to "restart" a shut-down Pool value itself.
var ErrShutdown = errors.New("taskpool: pool is shut down")

type job struct {
	fn     func() error
	onDone func(error)
}

// Pool is a fixed-size worker pool. Lifetime strictly brackets any
// parallel call site: construct with New, use via SyncScope/ParallelFor,
// and Shutdown when done — an idle pool still holds n live goroutines
// parked on the jobs channel, which is why spec.md's benchmarks insist
// on a genuine shutdown between phases rather than keeping one around
// "just in case".
type Pool struct {
	n        int
	jobs     chan job
	wg       sync.WaitGroup // worker goroutines
	mu       sync.Mutex
	shutdown bool
	done     chan struct{}
}

// New starts a pool of n workers. n <= 0 means one worker per logical
// CPU (runtime.GOMAXPROCS(0)), the default spec.md section 4.N calls for.
func New(n int) *Pool {
	if n <= 0 {
		n = runtime.GOMAXPROCS(0)
	}
	p := &Pool{
		n:    n,
		jobs: make(chan job),
		done: make(chan struct{}),
	}
	p.wg.Add(n)
	for i := 0; i < n; i++ {
		go p.work()
	}
	poolLog.Info("pool started", "workers", n)
	return p
}

func (p *Pool) work() {
	defer p.wg.Done()
	for j := range p.jobs {
		j.onDone(j.fn())
	}
}

// Workers returns the pool's worker count.
func (p *Pool) Workers() int { return p.n }

// Shutdown stops every worker, waiting for in-flight jobs to finish.
// Safe to call once; calling it again is a no-op.
func (p *Pool) Shutdown() {
	p.mu.Lock()
	if p.shutdown {
		p.mu.Unlock()
		return
	}
	p.shutdown = true
	close(p.done)
	p.mu.Unlock()

	close(p.jobs)
	p.wg.Wait()
	poolLog.Info("pool shut down", "workers", p.n)
}

// Scope is the handle passed into a SyncScope callback. Every task
// spawned on it is guaranteed complete before SyncScope returns
// (spec.md section 4.N's sync_scope barrier).
type Scope struct {
	pool *Pool
	wg   sync.WaitGroup
	mu   sync.Mutex
	err  error
}

func (s *Scope) setErr(err error) {
	s.mu.Lock()
	if s.err == nil {
		s.err = err
	}
	s.mu.Unlock()
}

// Spawn submits f to run on one of the pool's workers. Spawn does not
// block waiting for f to finish — only the enclosing SyncScope does.
// If the first error from any task spawned in this scope is non-nil,
// SyncScope returns it; later errors from other tasks are discarded
// (the same first-error-wins contract as errgroup.Group).
func (s *Scope) Spawn(f func() error) {
	s.pool.mu.Lock()
	closed := s.pool.shutdown
	s.pool.mu.Unlock()
	if closed {
		s.setErr(ErrShutdown)
		return
	}
	s.wg.Add(1)
	j := job{
		fn: f,
		onDone: func(err error) {
			if err != nil {
				s.setErr(err)
			}
			s.wg.Done()
		},
	}
	select {
	case s.pool.jobs <- j:
	case <-s.pool.done:
		s.setErr(ErrShutdown)
		s.wg.Done()
	}
}

// SyncScope runs fn, which may call scope.Spawn any number of times, and
// blocks until every spawned task has completed before returning. This
// is the pool's only join point besides Shutdown (spec.md section 4.N).
func (p *Pool) SyncScope(fn func(scope *Scope)) error {
	s := &Scope{pool: p}
	fn(s)
	s.wg.Wait()
	return s.err
}

// ParallelFor runs f(i) for every i in [0,n) across the pool, waiting
// for all of them to finish. f must write only to index-disjoint state
// (spec.md section 4.N: "per-worker output buffers are disjoint"); the
// caller owns combining results afterward, by sequential reduction or a
// pairwise tree.
func (p *Pool) ParallelFor(n int, f func(i int) error) error {
	return p.SyncScope(func(scope *Scope) {
		for i := 0; i < n; i++ {
			i := i
			scope.Spawn(func() error { return f(i) })
		}
	})
}

// Chunks splits [0,n) into at most p.Workers() contiguous, roughly equal
// ranges, for callers that want one task per worker rather than one task
// per element (MSM and multi-pairing sharding both want this: a task per
// scalar would be far finer-grained than the bucket/Miller-loop work it
// wraps).
func (p *Pool) Chunks(n int) [][2]int {
	workers := p.n
	if workers > n {
		workers = n
	}
	if workers <= 0 {
		return nil
	}
	base := n / workers
	rem := n % workers
	chunks := make([][2]int, 0, workers)
	start := 0
	for i := 0; i < workers; i++ {
		size := base
		if i < rem {
			size++
		}
		if size == 0 {
			continue
		}
		chunks = append(chunks, [2]int{start, start + size})
		start += size
	}
	return chunks
}
