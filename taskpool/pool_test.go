package taskpool

import (
	"errors"
	"sync/atomic"
	"testing"
)

func TestParallelForWritesDisjointSlots(t *testing.T) {
	pool := New(4)
	defer pool.Shutdown()

	const n = 1000
	out := make([]int, n)
	err := pool.ParallelFor(n, func(i int) error {
		out[i] = i * i
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}
	for i := range out {
		if out[i] != i*i {
			t.Fatalf("out[%d] = %d, want %d", i, out[i], i*i)
		}
	}
}

func TestSyncScopeReturnsFirstError(t *testing.T) {
	pool := New(2)
	defer pool.Shutdown()

	boom := errors.New("boom")
	err := pool.SyncScope(func(scope *Scope) {
		scope.Spawn(func() error { return nil })
		scope.Spawn(func() error { return boom })
		scope.Spawn(func() error { return nil })
	})
	if err != boom {
		t.Fatalf("expected boom, got %v", err)
	}
}

func TestSpawnAfterShutdownFails(t *testing.T) {
	pool := New(2)
	pool.Shutdown()

	err := pool.SyncScope(func(scope *Scope) {
		scope.Spawn(func() error { return nil })
	})
	if err != ErrShutdown {
		t.Fatalf("expected ErrShutdown, got %v", err)
	}
}

func TestShutdownIsIdempotent(t *testing.T) {
	pool := New(1)
	pool.Shutdown()
	pool.Shutdown() // must not panic or block
}

func TestRecreateAfterShutdown(t *testing.T) {
	pool := New(2)
	pool.Shutdown()

	pool2 := New(2)
	defer pool2.Shutdown()
	err := pool2.ParallelFor(10, func(i int) error { return nil })
	if err != nil {
		t.Fatal(err)
	}
}

func TestChunksCoversWholeRangeDisjointly(t *testing.T) {
	pool := New(3)
	defer pool.Shutdown()

	total := 0
	prev := 0
	for _, c := range pool.Chunks(17) {
		if c[0] != prev {
			t.Fatalf("chunk gap: expected start %d, got %d", prev, c[0])
		}
		if c[1] <= c[0] {
			t.Fatalf("empty chunk %v", c)
		}
		total += c[1] - c[0]
		prev = c[1]
	}
	if total != 17 {
		t.Fatalf("chunks covered %d elements, want 17", total)
	}
}

func TestParkUntilUnblocksOnFlag(t *testing.T) {
	var flag atomic.Bool
	done := make(chan struct{})
	go func() {
		ParkUntil(&flag)
		close(done)
	}()
	flag.Store(true)
	<-done
}
