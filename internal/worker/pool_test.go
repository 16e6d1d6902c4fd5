package worker

import (
	"context"
	"sync/atomic"
	"testing"
	"time"
)

// indexedResult carries its job index so tests can check reassembly
type indexedResult struct {
	index int
	err   error
}

func (r *indexedResult) GetError() error { return r.err }

// sleepJob sleeps then returns its index
type sleepJob struct {
	index    int
	duration time.Duration
	executed *int32
}

func (j *sleepJob) Execute(ctx context.Context) Result {
	if j.executed != nil {
		atomic.AddInt32(j.executed, 1)
	}
	if j.duration > 0 {
		select {
		case <-time.After(j.duration):
		case <-ctx.Done():
			return &indexedResult{index: j.index, err: ctx.Err()}
		}
	}
	return &indexedResult{index: j.index}
}

func TestNewPool_Defaults(t *testing.T) {
	if p := NewPool(4); p.workers != 4 {
		t.Errorf("expected 4 workers, got %d", p.workers)
	}
	if p := NewPool(0); p.workers != 1 {
		t.Errorf("expected 1 worker for zero input, got %d", p.workers)
	}
	if p := NewPool(-3); p.workers != 1 {
		t.Errorf("expected 1 worker for negative input, got %d", p.workers)
	}
}

func TestPool_RunsEveryJobOnce(t *testing.T) {
	pool := NewPool(3)
	pool.Start()

	var executed int32
	count := 12
	for i := 0; i < count; i++ {
		pool.Submit(&sleepJob{index: i, executed: &executed})
	}

	results := pool.Wait()

	if len(results) != count {
		t.Errorf("expected %d results, got %d", count, len(results))
	}
	if atomic.LoadInt32(&executed) != int32(count) {
		t.Errorf("expected %d executions, got %d", count, executed)
	}

	// Every index appears exactly once, whatever the completion order
	seen := make(map[int]bool)
	for _, r := range results {
		ir := r.(*indexedResult)
		if seen[ir.index] {
			t.Errorf("index %d appeared twice", ir.index)
		}
		seen[ir.index] = true
	}
}

func TestPool_IndexReassembly(t *testing.T) {
	pool := NewPool(4)
	pool.Start()

	// Earlier jobs sleep longer so completion order inverts submission order
	count := 6
	for i := 0; i < count; i++ {
		pool.Submit(&sleepJob{index: i, duration: time.Duration(count-i) * 10 * time.Millisecond})
	}

	slots := make([]int, count)
	for i := range slots {
		slots[i] = -1
	}
	for _, r := range pool.Wait() {
		ir := r.(*indexedResult)
		slots[ir.index] = ir.index
	}

	for i, v := range slots {
		if v != i {
			t.Errorf("slot %d not filled by its own result (got %d)", i, v)
		}
	}
}

func TestPool_MoreJobsThanChannelCapacity(t *testing.T) {
	// Submission happens before Wait, so job counts well past the buffered
	// channel capacity (5x workers) must not wedge Submit.
	workers := 2
	count := workers*5 + 20

	pool := NewPool(workers)
	pool.Start()

	var executed int32
	done := make(chan []Result, 1)
	go func() {
		for i := 0; i < count; i++ {
			pool.Submit(&sleepJob{index: i, executed: &executed})
		}
		done <- pool.Wait()
	}()

	select {
	case results := <-done:
		if len(results) != count {
			t.Errorf("expected %d results, got %d", count, len(results))
		}
		if atomic.LoadInt32(&executed) != int32(count) {
			t.Errorf("expected %d executions, got %d", count, executed)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("pool wedged submitting more jobs than channel capacity")
	}
}

func TestPool_Shutdown(t *testing.T) {
	pool := NewPool(2)
	pool.Start()

	for i := 0; i < 4; i++ {
		pool.Submit(&sleepJob{index: i, duration: 5 * time.Second})
	}

	done := make(chan struct{})
	go func() {
		pool.Shutdown()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Shutdown did not return promptly")
	}
}
