package pipeline

import (
	"context"
	"fmt"
	"sync"

	"github.com/parzip/parzip/errs"
)

// WorkFunc processes one task's input and returns the produced bytes.
// The pool's direction (compress vs decompress) is fixed by the WorkFunc it
// is constructed with.
type WorkFunc func(*Task) ([]byte, error)

// WorkerPool runs a fixed set of worker goroutines over a shared bounded
// task queue and publishes results into a completed collection keyed by
// chunk index.
//
// All shared state is guarded by one mutex with a single condition variable
// broadcast on every state transition: task enqueued, task dequeued, result
// published, pool closed, error captured. Producer backpressure, the
// writer's ordered wait, and worker wake-up all ride the same signal.
type WorkerPool struct {
	mu   sync.Mutex
	cond *sync.Cond

	queue     []*Task
	completed map[uint64]*Task
	inFlight  int
	closed    bool  // no more submissions; workers drain the queue then exit
	err       error // first worker failure or cancellation; queued work is abandoned

	depth int
	work  WorkFunc
	wg    sync.WaitGroup
}

// NewWorkerPool creates a pool with the given worker count and queue depth
// and starts its workers.
//
// A worker count below 1 is raised to 1. A depth below 1 selects the
// default of twice the worker count, which keeps every worker busy while
// bounding producer read-ahead.
func NewWorkerPool(workers, depth int, work WorkFunc) *WorkerPool {
	if workers < 1 {
		workers = 1
	}
	if depth < 1 {
		depth = 2 * workers
	}

	p := &WorkerPool{
		completed: make(map[uint64]*Task),
		depth:     depth,
		work:      work,
	}
	p.cond = sync.NewCond(&p.mu)

	p.wg.Add(workers)
	for i := 0; i < workers; i++ {
		go p.worker()
	}

	return p
}

// worker is the loop run by each pool goroutine: block until a task is
// available or the pool is stopping, process the head task, publish the
// result. A worker that observes Close with tasks still pending drains them
// before exiting; only a captured error abandons queued work.
func (p *WorkerPool) worker() {
	defer p.wg.Done()

	for {
		p.mu.Lock()
		for len(p.queue) == 0 && !p.closed && p.err == nil {
			p.cond.Wait()
		}

		if p.err != nil || (p.closed && len(p.queue) == 0) {
			p.mu.Unlock()
			return
		}

		task := p.queue[0]
		p.queue = p.queue[1:]
		p.inFlight++
		p.cond.Broadcast() // queue shrank; unblock a backpressured producer
		p.mu.Unlock()

		out, err := p.work(task)

		if task.release != nil && !aliases(out, task.Input) {
			task.release()
		}
		task.Input = nil
		task.Output = out

		p.mu.Lock()
		p.inFlight--
		switch {
		case err != nil:
			if p.err == nil {
				p.err = fmt.Errorf("chunk %d: %w", task.Index, err)
			}
		case p.err == nil:
			p.completed[task.Index] = task
		}
		p.cond.Broadcast()
		p.mu.Unlock()
	}
}

// Submit enqueues a task, blocking while the queue is at its depth limit.
//
// Returns the pool's captured error if a worker has failed, the context's
// error if ctx is cancelled (provided the context is wired to the pool via
// WatchContext), or errs.ErrPoolClosed after Close.
func (p *WorkerPool) Submit(ctx context.Context, task *Task) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	for len(p.queue) >= p.depth && !p.closed && p.err == nil {
		p.cond.Wait()
	}

	if p.err != nil {
		return p.err
	}
	if p.closed {
		return errs.ErrPoolClosed
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	p.queue = append(p.queue, task)
	p.cond.Broadcast()

	return nil
}

// TryTakeCompleted atomically removes and returns the result for index if it
// has been published. A false second return means "not yet available", which
// is not an error; the error return surfaces a captured worker failure.
func (p *WorkerPool) TryTakeCompleted(index uint64) (*Task, bool, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.err != nil {
		return nil, false, p.err
	}

	task, ok := p.completed[index]
	if !ok {
		return nil, false, nil
	}
	delete(p.completed, index)

	return task, ok, nil
}

// TakeCompleted blocks until the result for index is published, then removes
// and returns it.
//
// The wait is event-driven: the caller sleeps on the pool's condition
// variable and is woken by each publish. If the pool becomes quiescent
// (closed, no pending tasks, none in flight) while index is still missing,
// the task was lost and TakeCompleted fails with errs.ErrPipelineStalled.
// That condition is an internal invariant violation and must not be retried.
func (p *WorkerPool) TakeCompleted(index uint64) (*Task, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	for {
		if p.err != nil {
			return nil, p.err
		}

		if task, ok := p.completed[index]; ok {
			delete(p.completed, index)
			return task, nil
		}

		if p.closed && len(p.queue) == 0 && p.inFlight == 0 {
			return nil, fmt.Errorf("%w: chunk %d", errs.ErrPipelineStalled, index)
		}

		p.cond.Wait()
	}
}

// Quiescent reports whether no task is pending and none is in flight.
func (p *WorkerPool) Quiescent() bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	return len(p.queue) == 0 && p.inFlight == 0
}

// Close stops intake. Workers drain the pending queue to completion and then
// exit; Close never discards submitted work. Safe to call more than once.
func (p *WorkerPool) Close() {
	p.mu.Lock()
	p.closed = true
	p.cond.Broadcast()
	p.mu.Unlock()
}

// Fail records err as the pool's failure (first caller wins), unblocking
// every waiter. Queued tasks are abandoned.
func (p *WorkerPool) Fail(err error) {
	if err == nil {
		return
	}

	p.mu.Lock()
	if p.err == nil {
		p.err = err
	}
	p.cond.Broadcast()
	p.mu.Unlock()
}

// Err returns the pool's captured error, if any.
func (p *WorkerPool) Err() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.err
}

// Wait blocks until every worker has observed the drained-and-stopped (or
// failed) condition and exited.
func (p *WorkerPool) Wait() {
	p.wg.Wait()
}

// WatchContext fails the pool when ctx is cancelled, so blocked submitters,
// waiters, and idle workers unblock promptly. The returned stop function
// releases the watcher and must be called when the pipeline finishes.
func (p *WorkerPool) WatchContext(ctx context.Context) (stop func()) {
	done := make(chan struct{})

	go func() {
		select {
		case <-ctx.Done():
			p.Fail(ctx.Err())
		case <-done:
		}
	}()

	return func() { close(done) }
}
