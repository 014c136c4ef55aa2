package utils

import (
	"errors"
	"sync"
)

var (
	ErrPoolClosed = errors.New("worker pool is closed")
	ErrPoolFull   = errors.New("worker pool queue is full")
)

// WorkerPool runs queued tasks on a fixed number of goroutines.
type WorkerPool struct {
	taskChan chan func()
	wg       sync.WaitGroup

	mu     sync.Mutex
	closed bool
}

// NewWorkerPool starts maxWorkers workers with room for queueSize pending tasks.
func NewWorkerPool(maxWorkers, queueSize int) *WorkerPool {
	if maxWorkers < 1 {
		maxWorkers = 1
	}
	if queueSize < 0 {
		queueSize = 0
	}
	pool := &WorkerPool{
		taskChan: make(chan func(), queueSize),
	}
	for i := 0; i < maxWorkers; i++ {
		go pool.worker()
	}
	return pool
}

func (p *WorkerPool) worker() {
	for task := range p.taskChan {
		p.run(task)
	}
}

func (p *WorkerPool) run(task func()) {
	defer p.wg.Done()
	task()
}

// AddTask queues task without blocking. It returns ErrPoolFull when the queue
// has no room and ErrPoolClosed once the pool is closed.
func (p *WorkerPool) AddTask(task func()) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return ErrPoolClosed
	}
	p.wg.Add(1)
	select {
	case p.taskChan <- task:
		return nil
	default:
		p.wg.Done()
		return ErrPoolFull
	}
}

// Wait blocks until every queued task has finished.
func (p *WorkerPool) Wait() {
	p.wg.Wait()
}

// Close stops accepting tasks, waits for queued ones and stops the workers.
func (p *WorkerPool) Close() {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return
	}
	p.closed = true
	p.mu.Unlock()

	p.wg.Wait()
	close(p.taskChan)
}
