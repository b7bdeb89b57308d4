// Package performance provides concurrency utilities for running many
// independent student analyses in parallel. The analysis pipeline itself
// is pure and synchronous; parallelism is the caller's concern and each
// invocation gets its own input slice with no cross-student aliasing.
package performance

import (
	"context"
	"runtime"
	"sync"
	"sync/atomic"
)

// WorkerPool manages a pool of workers for concurrent task execution.
type WorkerPool struct {
	workers    int
	taskQueue  chan func()
	wg         sync.WaitGroup
	ctx        context.Context
	cancel     context.CancelFunc
	running    atomic.Bool
	tasksTotal atomic.Uint64
	tasksDone  atomic.Uint64
}

// NewWorkerPool creates a new worker pool with the specified number of
// workers. If workers is 0, it defaults to runtime.NumCPU().
func NewWorkerPool(workers int) *WorkerPool {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &WorkerPool{
		workers:   workers,
		taskQueue: make(chan func(), workers*16),
		ctx:       ctx,
		cancel:    cancel,
	}
}

// Start starts the worker pool.
func (p *WorkerPool) Start() {
	if p.running.Swap(true) {
		return
	}
	for i := 0; i < p.workers; i++ {
		p.wg.Add(1)
		go p.worker()
	}
}

func (p *WorkerPool) worker() {
	defer p.wg.Done()
	for {
		select {
		case <-p.ctx.Done():
			return
		case task, ok := <-p.taskQueue:
			if !ok {
				return
			}
			task()
			p.tasksDone.Add(1)
		}
	}
}

// Submit submits a task to the worker pool. Returns false if the pool is
// not running or the queue is full.
func (p *WorkerPool) Submit(task func()) bool {
	if !p.running.Load() {
		return false
	}
	select {
	case p.taskQueue <- task:
		p.tasksTotal.Add(1)
		return true
	default:
		return false
	}
}

// Stop stops the worker pool and waits for all workers to finish.
func (p *WorkerPool) Stop() {
	if !p.running.Swap(false) {
		return
	}
	p.cancel()
	close(p.taskQueue)
	p.wg.Wait()
}

// Stats returns pool statistics.
func (p *WorkerPool) Stats() PoolStats {
	return PoolStats{
		Workers:    p.workers,
		Running:    p.running.Load(),
		TasksTotal: p.tasksTotal.Load(),
		TasksDone:  p.tasksDone.Load(),
		QueueLen:   len(p.taskQueue),
	}
}

// PoolStats contains worker pool statistics.
type PoolStats struct {
	Workers    int
	Running    bool
	TasksTotal uint64
	TasksDone  uint64
	QueueLen   int
}
