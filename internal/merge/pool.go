package merge

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
)

// Task is one unit of merge work executed by the pool.
type Task func(ctx context.Context)

// Pool is a bounded merge worker pool. Submissions beyond the queue capacity
// are rejected with ErrQueueFull so callers can apply backpressure instead of
// piling up unbounded work.
type Pool struct {
	mu      sync.Mutex
	tasks   chan Task
	workers int
	logger  *slog.Logger

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewPool creates a worker pool with the given concurrency and queue size.
func NewPool(workers, queueSize int) *Pool {
	return &Pool{
		tasks:   make(chan Task, queueSize),
		workers: workers,
		logger:  slog.Default(),
	}
}

// WithLogger sets a custom logger.
func (p *Pool) WithLogger(logger *slog.Logger) *Pool {
	p.logger = logger
	return p
}

// Start launches the worker goroutines.
func (p *Pool) Start(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.ctx != nil {
		return fmt.Errorf("pool already started")
	}
	p.ctx, p.cancel = context.WithCancel(ctx)

	for i := 0; i < p.workers; i++ {
		p.wg.Add(1)
		go p.worker()
	}

	p.logger.Info("merge pool started",
		slog.Int("workers", p.workers),
		slog.Int("queue_size", cap(p.tasks)),
	)
	return nil
}

// Stop cancels in-flight work and waits for the workers to exit.
func (p *Pool) Stop() {
	p.mu.Lock()
	if p.cancel != nil {
		p.cancel()
	}
	p.mu.Unlock()

	p.wg.Wait()
	p.logger.Info("merge pool stopped")
}

// Submit enqueues a task. Returns ErrQueueFull when the queue is saturated.
func (p *Pool) Submit(task Task) error {
	select {
	case p.tasks <- task:
		return nil
	default:
		return ErrQueueFull
	}
}

func (p *Pool) worker() {
	defer p.wg.Done()

	for {
		select {
		case <-p.ctx.Done():
			return
		case task := <-p.tasks:
			func() {
				defer func() {
					if r := recover(); r != nil {
						p.logger.Error("merge task panicked", slog.Any("panic", r))
					}
				}()
				task(p.ctx)
			}()
		}
	}
}
